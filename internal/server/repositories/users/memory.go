package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/snipkeeper/internal/common"
	"github.com/dmitrijs2005/snipkeeper/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps users in process memory. Safe for concurrent use.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.User
	byLogin map[string]string
	avatars map[string][]byte
	now     func() time.Time
}

// NewMemoryRepository returns an empty map-backed user store safe for concurrent use.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]*models.User),
		byLogin: make(map[string]string),
		avatars: make(map[string][]byte),
		now:     time.Now,
	}
}

func (r *MemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byLogin[user.UserName]; ok {
		return nil, common.ErrConflict
	}

	now := r.now().UTC()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	r.byID[user.ID] = &stored
	r.byLogin[user.UserName] = user.ID

	return user, nil
}

func (r *MemoryRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	r.mu.RLock()
	id, ok := r.byLogin[userName]
	r.mu.RUnlock()
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

func (r *MemoryRepository) UpdateDisplayName(_ context.Context, id, displayName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.DisplayName = displayName
	u.UpdatedAt = r.now().UTC()
	return nil
}

func (r *MemoryRepository) SetAvatar(_ context.Context, id string, data []byte, mimeType string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.AvatarMimeType = mimeType
	u.UpdatedAt = r.now().UTC()
	if data == nil {
		delete(r.avatars, id)
	} else {
		r.avatars[id] = append([]byte(nil), data...)
	}
	return nil
}

func (r *MemoryRepository) GetAvatar(_ context.Context, id string) (*models.Avatar, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok || u.AvatarMimeType == "" {
		return nil, common.ErrorNotFound
	}
	return &models.Avatar{
		Data:     append([]byte(nil), r.avatars[id]...),
		MimeType: u.AvatarMimeType,
	}, nil
}
