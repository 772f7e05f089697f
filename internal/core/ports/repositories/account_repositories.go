package repositories

import (
	"context"
	"time"

	"github.com/bizpilot/bizpilot_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountsByIDs retrieves multiple accounts (with their normal-balance
	// classification resolved) keyed by account ID. Returns ErrNotFound if any
	// requested account is missing.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
}

// AccountBalanceWriter defines the transactional balance mutations used by the
// ledger posting engine. Balance changes are expressed as relative increments
// at the storage layer, never as read-modify-write.
type AccountBalanceWriter interface {
	// FindAccountsByIDsForUpdate retrieves accounts by IDs and locks their rows
	// for the remainder of the transaction.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// IncrementAccountBalancesInTx applies signed deltas to current_balance as
	// relative SQL increments within the transaction.
	IncrementAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines account repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountBalanceWriter
}
