// Package users persists user accounts and their profile data.
package users

import (
	"context"

	"github.com/dmitrijs2005/snipkeeper/internal/server/models"
)

type Repository interface {
	// Create inserts a user and fills in ID and timestamps.
	// A taken username yields common.ErrConflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, userName string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateDisplayName(ctx context.Context, id, displayName string) error
	// SetAvatar replaces the avatar. data may be nil when the bytes live elsewhere.
	SetAvatar(ctx context.Context, id string, data []byte, mimeType string) error
	// GetAvatar returns common.ErrorNotFound when no avatar was uploaded.
	GetAvatar(ctx context.Context, id string) (*models.Avatar, error)
}
