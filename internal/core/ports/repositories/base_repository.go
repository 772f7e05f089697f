package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager exposes transaction scoping to the services. Services own
// the transaction lifecycle; repositories receive the pgx.Tx explicitly.
type TransactionManager interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction.
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction. Rolling back an already finished
	// transaction is a no-op.
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// RepositoryWithTx marks repositories that support transaction scoping.
type RepositoryWithTx interface {
	TransactionManager
}
