package snippets

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/snipkeeper/internal/common"
	"github.com/dmitrijs2005/snipkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_OwnerScoping(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	a, err := r.Create(ctx, &models.Snippet{UserID: "alice", Title: "a", Language: "go", Code: "1"})
	require.NoError(t, err)
	_, err = r.Create(ctx, &models.Snippet{UserID: "bob", Title: "b", Language: "go", Code: "2"})
	require.NoError(t, err)

	list, err := r.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)

	_, err = r.UpdateOwned(ctx, a.ID, "bob", models.SnippetPatch{Title: strPtr("hijack")})
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, r.DeleteOwned(ctx, a.ID, "bob"), common.ErrorNotFound)

	list, err = r.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "a", list[0].Title)

	exists, err := r.Exists(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, r.DeleteOwned(ctx, a.ID, "alice"))
	exists, err = r.Exists(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryRepository_UpdateAdvancesTimestamp(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	s, err := r.Create(ctx, &models.Snippet{UserID: "alice", Title: "a", Language: "go", Code: "1"})
	require.NoError(t, err)

	got, err := r.UpdateOwned(ctx, s.ID, "alice", models.SnippetPatch{})
	require.NoError(t, err)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))
	assert.Equal(t, "a", got.Title)
}

func TestMemoryRepository_ListOrder(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	first, err := r.Create(ctx, &models.Snippet{UserID: "alice", Title: "first"})
	require.NoError(t, err)
	_, err = r.Create(ctx, &models.Snippet{UserID: "alice", Title: "second"})
	require.NoError(t, err)

	_, err = r.UpdateOwned(ctx, first.ID, "alice", models.SnippetPatch{Code: strPtr("x")})
	require.NoError(t, err)

	list, err := r.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Title)
	assert.Equal(t, "second", list[1].Title)

	empty, err := r.ListByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
