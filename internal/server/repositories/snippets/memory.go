package snippets

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/snipkeeper/internal/common"
	"github.com/dmitrijs2005/snipkeeper/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps snippets in process memory. Safe for concurrent use.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*models.Snippet
	now   func() time.Time
	last  time.Time
}

// NewMemoryRepository returns an empty map-backed snippet store safe for concurrent use.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		items: make(map[string]*models.Snippet),
		now:   time.Now,
	}
}

// tick returns a timestamp strictly after every one handed out before.
// Caller holds mu.
func (r *MemoryRepository) tick() time.Time {
	t := r.now().UTC()
	if !t.After(r.last) {
		t = r.last.Add(time.Microsecond)
	}
	r.last = t
	return t
}

func (r *MemoryRepository) ListByOwner(_ context.Context, ownerID string) ([]*models.Snippet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Snippet, 0)
	for _, s := range r.items {
		if s.UserID == ownerID {
			item := *s
			result = append(result, &item)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

func (r *MemoryRepository) Create(_ context.Context, snippet *models.Snippet) (*models.Snippet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.tick()
	snippet.ID = uuid.NewString()
	snippet.CreatedAt = now
	snippet.UpdatedAt = now

	stored := *snippet
	r.items[snippet.ID] = &stored
	return snippet, nil
}

func (r *MemoryRepository) UpdateOwned(_ context.Context, id, ownerID string, patch models.SnippetPatch) (*models.Snippet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[id]
	if !ok || s.UserID != ownerID {
		return nil, common.ErrorNotFound
	}
	patch.Apply(s)
	s.UpdatedAt = r.tick()

	out := *s
	return &out, nil
}

func (r *MemoryRepository) DeleteOwned(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[id]
	if !ok || s.UserID != ownerID {
		return common.ErrorNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *MemoryRepository) Exists(_ context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[id]
	return ok, nil
}
