// Package models holds the client-side view of server resources.
package models

import "time"

type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	HasAvatar   bool   `json:"hasAvatar"`
}

type Snippet struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Title     string    `json:"title"`
	Language  string    `json:"language"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewSnippet is the payload for creating a snippet.
type NewSnippet struct {
	Title    string `json:"title"`
	Language string `json:"language"`
	Code     string `json:"code"`
}

// SnippetChanges is a partial update; nil fields are left unchanged.
type SnippetChanges struct {
	Title    *string `json:"title,omitempty"`
	Language *string `json:"language,omitempty"`
	Code     *string `json:"code,omitempty"`
}

func (c SnippetChanges) Empty() bool {
	return c.Title == nil && c.Language == nil && c.Code == nil
}

// ProfileUpdate carries an optional new display name and avatar.
type ProfileUpdate struct {
	DisplayName string
	AvatarName  string
	Avatar      []byte
}

type Session struct {
	ServerURL   string `json:"serverUrl"`
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
}
