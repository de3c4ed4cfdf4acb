// Package avatars stores profile pictures either inline in the users table
// or in an S3-compatible bucket. The content type always lives with the
// user record so that HasAvatar needs no blob round-trip.
package avatars

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/snipkeeper/internal/common"
	"github.com/dmitrijs2005/snipkeeper/internal/server/models"
	"github.com/dmitrijs2005/snipkeeper/internal/server/repositories/users"
)

// Store saves and loads avatar bytes. The users repository is passed per
// call so the store can take part in the caller's transaction.
type Store interface {
	Save(ctx context.Context, repo users.Repository, userID string, avatar *models.Avatar) error
	Load(ctx context.Context, repo users.Repository, userID string) (*models.Avatar, error)
}

// Normalize validates an uploaded picture. An empty or generic declared
// content type is replaced by a sniffed one. Non-image content, empty
// files and files larger than limit are rejected with common.ErrInvalidInput.
func Normalize(data []byte, declaredMime string, limit int64) (*models.Avatar, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", common.ErrInvalidInput)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", common.ErrInvalidInput, limit)
	}

	mime := strings.TrimSpace(strings.ToLower(declaredMime))
	if mime == "" || mime == "application/octet-stream" {
		mime = http.DetectContentType(data)
	}
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	if !strings.HasPrefix(mime, "image/") {
		return nil, fmt.Errorf("%w: %s is not an image", common.ErrInvalidInput, mime)
	}

	return &models.Avatar{Data: data, MimeType: mime}, nil
}

// DBStore keeps avatar bytes in the users table.
type DBStore struct{}

func NewDBStore() *DBStore {
	return &DBStore{}
}

func (DBStore) Save(ctx context.Context, repo users.Repository, userID string, avatar *models.Avatar) error {
	return repo.SetAvatar(ctx, userID, avatar.Data, avatar.MimeType)
}

func (DBStore) Load(ctx context.Context, repo users.Repository, userID string) (*models.Avatar, error) {
	return repo.GetAvatar(ctx, userID)
}
