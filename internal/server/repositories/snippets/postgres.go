package snippets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/snipkeeper/internal/common"
	"github.com/dmitrijs2005/snipkeeper/internal/dbx"
	"github.com/dmitrijs2005/snipkeeper/internal/server/models"
)

// PostgresRepository implements snippet storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository returns a snippet store running its queries on db.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Snippet, error) {
	query :=
		`SELECT id, user_id, title, language, code, created_at, updated_at FROM snippets
		 WHERE user_id = $1
		 ORDER BY updated_at DESC`

	result := make([]*models.Snippet, 0)
	if err := r.db.SelectContext(ctx, &result, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to select snippets: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, snippet *models.Snippet) (*models.Snippet, error) {
	query :=
		`INSERT INTO snippets (user_id, title, language, code)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query, snippet.UserID, snippet.Title, snippet.Language, snippet.Code).
		Scan(&snippet.ID, &snippet.CreatedAt, &snippet.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return snippet, nil
}

func (r *PostgresRepository) UpdateOwned(ctx context.Context, id, ownerID string, patch models.SnippetPatch) (*models.Snippet, error) {
	query :=
		`UPDATE snippets SET
			title = COALESCE($3, title),
			language = COALESCE($4, language),
			code = COALESCE($5, code),
			updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, title, language, code, created_at, updated_at`

	snippet := &models.Snippet{}
	err := r.db.GetContext(ctx, snippet, query, id, ownerID, patch.Title, patch.Language, patch.Code)
	if err != nil {
		// an id that is not a UUID cannot match any row
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidText(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return snippet, nil
}

func (r *PostgresRepository) DeleteOwned(ctx context.Context, id, ownerID string) error {
	query := `DELETE FROM snippets WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if dbx.IsInvalidText(err) {
		return common.ErrorNotFound
	}
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func (r *PostgresRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowxContext(ctx, `SELECT EXISTS (SELECT 1 FROM snippets WHERE id = $1)`, id).Scan(&exists)
	if dbx.IsInvalidText(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}
