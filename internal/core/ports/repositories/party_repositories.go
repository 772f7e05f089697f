package repositories

import (
	"context"
	"time"

	"github.com/bizpilot/bizpilot_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PartyReader defines read operations for party data
type PartyReader interface {
	// FindPartiesByIDs retrieves multiple parties keyed by party ID. Returns
	// ErrNotFound if any requested party is missing.
	FindPartiesByIDs(ctx context.Context, partyIDs []string) (map[string]domain.Party, error)
}

// PartyBalanceWriter defines the transactional balance mutations applied when a
// posted journal line references a party.
type PartyBalanceWriter interface {
	// FindPartiesByIDsForUpdate retrieves parties by IDs and locks their rows
	// for the remainder of the transaction.
	FindPartiesByIDsForUpdate(ctx context.Context, tx pgx.Tx, partyIDs []string) (map[string]domain.Party, error)

	// IncrementPartyBalancesInTx applies signed deltas to current_balance as
	// relative SQL increments within the transaction.
	IncrementPartyBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// PartyRepositoryFacade combines party repository interfaces
type PartyRepositoryFacade interface {
	PartyReader
	PartyBalanceWriter
}
