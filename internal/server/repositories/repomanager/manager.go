package repomanager

import (
	"context"

	"github.com/dmitrijs2005/snipkeeper/internal/dbx"
	"github.com/dmitrijs2005/snipkeeper/internal/server/repositories/snippets"
	"github.com/dmitrijs2005/snipkeeper/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a connection or a
// transaction and owns the underlying storage lifecycle.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	// Conn is the handle for non-transactional work.
	Conn() dbx.DBTX
	// InTx runs fn inside a transaction; fn must use the handle it receives.
	InTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error
	Users(db dbx.DBTX) users.Repository
	Snippets(db dbx.DBTX) snippets.Repository
	Close() error
}
