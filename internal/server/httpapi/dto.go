package httpapi

import (
	"time"

	"github.com/dmitrijs2005/snipkeeper/internal/server/models"
)

type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,max=72"`
}

type userResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	HasAvatar   bool   `json:"hasAvatar"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Username:    u.UserName,
		DisplayName: u.DisplayName,
		HasAvatar:   u.HasAvatar(),
	}
}

type loginResponse struct {
	AccessToken string       `json:"accessToken"`
	User        userResponse `json:"user"`
}

type profileForm struct {
	DisplayName string `json:"displayName" form:"displayName"`
}

type createSnippetRequest struct {
	Title    string `json:"title" validate:"required"`
	Language string `json:"language" validate:"required"`
	Code     string `json:"code" validate:"required"`
}

// updateSnippetRequest distinguishes absent fields (nil) from empty ones.
type updateSnippetRequest struct {
	Title    *string `json:"title"`
	Language *string `json:"language"`
	Code     *string `json:"code"`
}

type snippetResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Title     string    `json:"title"`
	Language  string    `json:"language"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toSnippetResponse(s *models.Snippet) snippetResponse {
	return snippetResponse{
		ID:        s.ID,
		OwnerID:   s.UserID,
		Title:     s.Title,
		Language:  s.Language,
		Code:      s.Code,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
