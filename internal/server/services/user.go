// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login and profile management.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/snipkeeper/internal/common"
	"github.com/dmitrijs2005/snipkeeper/internal/dbx"
	"github.com/dmitrijs2005/snipkeeper/internal/server/auth"
	"github.com/dmitrijs2005/snipkeeper/internal/server/avatars"
	"github.com/dmitrijs2005/snipkeeper/internal/server/models"
	"github.com/dmitrijs2005/snipkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// maxPasswordBytes is the longest password bcrypt accepts.
const maxPasswordBytes = 72

// LoginResult is returned by a successful Login.
type LoginResult struct {
	AccessToken string
	User        *models.User
}

// UserService provides account operations:
// - Register / VerifyCredentials / Login
// - GetProfile / UpdateProfile
// - GetAvatar
type UserService struct {
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenIssuer
	hasher      *auth.PasswordHasher
	avatars     avatars.Store
}

// NewUserService wires account storage, token issuing, hashing and the avatar store.
func NewUserService(m repomanager.RepositoryManager, tokens *auth.TokenIssuer, hasher *auth.PasswordHasher, store avatars.Store) *UserService {
	return &UserService{
		repomanager: m,
		tokens:      tokens,
		hasher:      hasher,
		avatars:     store,
	}
}

// IdentityOf projects a user onto the claims embedded in a token.
func IdentityOf(u *models.User) auth.Identity {
	return auth.Identity{
		UserID:      u.ID,
		Username:    u.UserName,
		DisplayName: u.DisplayName,
		HasAvatar:   u.HasAvatar(),
	}
}

func validateCredentials(username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: username and password are required", common.ErrInvalidInput)
	}
	if len(password) > maxPasswordBytes {
		return "", fmt.Errorf("%w: password longer than %d bytes", common.ErrInvalidInput, maxPasswordBytes)
	}
	return username, nil
}

// Register creates a user whose display name starts out as the username.
// A taken username yields common.ErrConflict.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username, err := validateCredentials(username, password)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{UserName: username, PasswordHash: hash, DisplayName: username}
	u, err := s.repomanager.Users(s.repomanager.Conn()).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// VerifyCredentials returns the user when password matches. Unknown users
// yield common.ErrUnknownUser, wrong passwords common.ErrInvalidCredentials.
func (s *UserService) VerifyCredentials(ctx context.Context, username, password string) (*models.User, error) {
	username, err := validateCredentials(username, password)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.repomanager.Conn()).GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.CompareDummy(password)
			return nil, common.ErrUnknownUser
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	ok, err := s.hasher.Compare(user.PasswordHash, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}
	return user, nil
}

// Login verifies credentials and issues an access token.
func (s *UserService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.VerifyCredentials(ctx, username, password)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(IdentityOf(user))
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: token, User: user}, nil
}

// GetProfile reads the current user record.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	if !isID(userID) {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Users(s.repomanager.Conn()).GetByID(ctx, userID)
}

// UpdateProfile changes the display name and/or avatar. A nil or blank
// displayName and a nil avatar leave the respective field unchanged.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, displayName *string, avatar *models.Avatar) (*models.User, error) {
	if !isID(userID) {
		return nil, common.ErrorNotFound
	}

	var user *models.User
	err := s.repomanager.InTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if displayName != nil {
			if name := strings.TrimSpace(*displayName); name != "" {
				if err := repo.UpdateDisplayName(ctx, userID, name); err != nil {
					return err
				}
			}
		}
		if avatar != nil {
			if err := s.avatars.Save(ctx, repo, userID, avatar); err != nil {
				return err
			}
		}

		var err error
		user, err = repo.GetByID(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetAvatar returns the stored picture or common.ErrorNotFound.
func (s *UserService) GetAvatar(ctx context.Context, userID string) (*models.Avatar, error) {
	if !isID(userID) {
		return nil, common.ErrorNotFound
	}
	return s.avatars.Load(ctx, s.repomanager.Users(s.repomanager.Conn()), userID)
}

func isID(s string) bool {
	return uuid.Validate(s) == nil
}
