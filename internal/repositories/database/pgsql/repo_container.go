package pgsql

import (
	portsrepo "github.com/bizpilot/bizpilot_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all Postgres-backed repositories onto a shared
// connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		AccountRepo: newPgxAccountRepository(pool),
		PartyRepo:   newPgxPartyRepository(pool),
		JournalRepo: newPgxJournalRepository(pool),
		ProductRepo: newPgxProductRepository(pool),
	}
}
