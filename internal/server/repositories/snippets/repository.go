// Package snippets persists code snippets. Every mutation is filtered by
// owner in the same statement that performs it.
package snippets

import (
	"context"

	"github.com/dmitrijs2005/snipkeeper/internal/server/models"
)

type Repository interface {
	// ListByOwner returns the owner's snippets, most recently updated first.
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Snippet, error)
	Create(ctx context.Context, snippet *models.Snippet) (*models.Snippet, error)
	// UpdateOwned applies patch to snippet id only if it belongs to ownerID and
	// refreshes updated_at. Returns common.ErrorNotFound when no row matched.
	UpdateOwned(ctx context.Context, id, ownerID string, patch models.SnippetPatch) (*models.Snippet, error)
	// DeleteOwned removes snippet id only if it belongs to ownerID.
	// Returns common.ErrorNotFound when no row matched.
	DeleteOwned(ctx context.Context, id, ownerID string) error
	// Exists reports whether any snippet with id exists, regardless of owner.
	Exists(ctx context.Context, id string) (bool, error)
}
