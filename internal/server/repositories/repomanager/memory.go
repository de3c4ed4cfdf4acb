package repomanager

import (
	"context"

	"github.com/dmitrijs2005/snipkeeper/internal/dbx"
	"github.com/dmitrijs2005/snipkeeper/internal/server/repositories/snippets"
	"github.com/dmitrijs2005/snipkeeper/internal/server/repositories/users"
)

// InMemoryRepositoryManager serves process-local repositories. The DBTX
// handles are ignored and transactions are not isolated; each repository
// call is atomic on its own.
type InMemoryRepositoryManager struct {
	users    *users.MemoryRepository
	snippets *snippets.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:    users.NewMemoryRepository(),
		snippets: snippets.NewMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *InMemoryRepositoryManager) Conn() dbx.DBTX { return nil }

func (m *InMemoryRepositoryManager) InTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	return fn(ctx, nil)
}

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *InMemoryRepositoryManager) Snippets(dbx.DBTX) snippets.Repository { return m.snippets }

func (m *InMemoryRepositoryManager) Close() error { return nil }
