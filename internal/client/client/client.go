package client

import (
	"context"

	"github.com/dmitrijs2005/snipkeeper/internal/client/models"
)

// Client is the API contract the CLI depends on.
type Client interface {
	Ping(ctx context.Context) (string, error)
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, *models.User, error)
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error)
	ListSnippets(ctx context.Context) ([]models.Snippet, error)
	CreateSnippet(ctx context.Context, s models.NewSnippet) (*models.Snippet, error)
	UpdateSnippet(ctx context.Context, id string, ch models.SnippetChanges) (*models.Snippet, error)
	DeleteSnippet(ctx context.Context, id string) error
	SetToken(token string)
}
