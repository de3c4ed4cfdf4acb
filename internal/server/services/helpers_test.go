package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/snipkeeper/internal/dbx"
	"github.com/dmitrijs2005/snipkeeper/internal/server/auth"
	"github.com/dmitrijs2005/snipkeeper/internal/server/avatars"
	"github.com/dmitrijs2005/snipkeeper/internal/server/models"
	"github.com/dmitrijs2005/snipkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/snipkeeper/internal/server/repositories/snippets"
	"github.com/dmitrijs2005/snipkeeper/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- helpers ---

func newUserService(t *testing.T, m repomanager.RepositoryManager) *UserService {
	t.Helper()
	return NewUserService(m,
		auth.NewTokenIssuer([]byte("k"), time.Hour),
		auth.NewPasswordHasher(bcrypt.MinCost),
		avatars.NewDBStore(),
	)
}

func newMemoryServices(t *testing.T) (*UserService, *SnippetService) {
	t.Helper()
	m := repomanager.NewInMemoryRepositoryManager()
	return newUserService(t, m), NewSnippetService(m)
}

func mustRegister(t *testing.T, s *UserService, username string) *models.User {
	t.Helper()
	u, err := s.Register(context.Background(), username, "pw-"+username)
	require.NoError(t, err)
	return u
}

func strPtr(s string) *string { return &s }

// fakeRepoManager hands out whatever repositories a test wires in.
type fakeRepoManager struct {
	u users.Repository
	s snippets.Repository
}

func (m *fakeRepoManager) RunMigrations(context.Context) error { return nil }
func (m *fakeRepoManager) Conn() dbx.DBTX                      { return nil }
func (m *fakeRepoManager) InTx(ctx context.Context, fn func(context.Context, dbx.DBTX) error) error {
	return fn(ctx, nil)
}
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository       { return m.u }
func (m *fakeRepoManager) Snippets(dbx.DBTX) snippets.Repository { return m.s }
func (m *fakeRepoManager) Close() error                          { return nil }

type fakeUsersRepo struct {
	users.Repository
	err error
}

func (f *fakeUsersRepo) Create(context.Context, *models.User) (*models.User, error) {
	return nil, f.err
}
func (f *fakeUsersRepo) GetUserByLogin(context.Context, string) (*models.User, error) {
	return nil, f.err
}

type fakeSnippetsRepo struct {
	snippets.Repository
	err       error
	existsErr error
}

func (f *fakeSnippetsRepo) Create(context.Context, *models.Snippet) (*models.Snippet, error) {
	return nil, f.err
}
func (f *fakeSnippetsRepo) UpdateOwned(context.Context, string, string, models.SnippetPatch) (*models.Snippet, error) {
	return nil, f.err
}
func (f *fakeSnippetsRepo) DeleteOwned(context.Context, string, string) error { return f.err }
func (f *fakeSnippetsRepo) Exists(context.Context, string) (bool, error)      { return false, f.existsErr }
