package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/snipkeeper/internal/common"
	"github.com/dmitrijs2005/snipkeeper/internal/server/models"
	"github.com/dmitrijs2005/snipkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/snipkeeper/internal/server/repositories/snippets"
)

// SnippetService implements owner-scoped snippet CRUD. Ownership is never
// read from the client: ownerID always comes from the verified token.
type SnippetService struct {
	repomanager repomanager.RepositoryManager
}

// NewSnippetService returns a service storing snippets through m.
func NewSnippetService(m repomanager.RepositoryManager) *SnippetService {
	return &SnippetService{repomanager: m}
}

func (s *SnippetService) repo() snippets.Repository {
	return s.repomanager.Snippets(s.repomanager.Conn())
}

// List returns ownerID's snippets, most recently updated first.
func (s *SnippetService) List(ctx context.Context, ownerID string) ([]*models.Snippet, error) {
	return s.repo().ListByOwner(ctx, ownerID)
}

// Create stores a snippet for ownerID. Blank title, language or code is
// common.ErrInvalidInput and nothing is stored.
func (s *SnippetService) Create(ctx context.Context, ownerID, title, language, code string) (*models.Snippet, error) {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"title", title}, {"language", language}, {"code", code},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s required", common.ErrInvalidInput, strings.Join(missing, ", "))
	}

	snippet := &models.Snippet{UserID: ownerID, Title: title, Language: language, Code: code}
	out, err := s.repo().Create(ctx, snippet)
	if err != nil {
		return nil, fmt.Errorf("error creating snippet: %w", err)
	}
	return out, nil
}

// Update applies patch to a snippet owned by ownerID. A field that is
// present but blank is rejected; an empty patch only refreshes updatedAt.
func (s *SnippetService) Update(ctx context.Context, id, ownerID string, patch models.SnippetPatch) (*models.Snippet, error) {
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"title", patch.Title}, {"language", patch.Language}, {"code", patch.Code},
	} {
		if f.value != nil && strings.TrimSpace(*f.value) == "" {
			return nil, fmt.Errorf("%w: %s must not be empty", common.ErrInvalidInput, f.name)
		}
	}
	if !isID(id) {
		return nil, common.ErrorNotFound
	}

	repo := s.repo()
	out, err := repo.UpdateOwned(ctx, id, ownerID, patch)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, s.missOrForbidden(ctx, repo, id)
		}
		return nil, err
	}
	return out, nil
}

// Delete removes a snippet owned by ownerID.
func (s *SnippetService) Delete(ctx context.Context, id, ownerID string) error {
	if !isID(id) {
		return common.ErrorNotFound
	}

	repo := s.repo()
	if err := repo.DeleteOwned(ctx, id, ownerID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return s.missOrForbidden(ctx, repo, id)
		}
		return err
	}
	return nil
}

// missOrForbidden classifies an owner-filtered statement that matched no
// row: the snippet either does not exist or belongs to someone else.
func (s *SnippetService) missOrForbidden(ctx context.Context, repo snippets.Repository, id string) error {
	exists, err := repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if exists {
		return common.ErrForbidden
	}
	return common.ErrorNotFound
}
