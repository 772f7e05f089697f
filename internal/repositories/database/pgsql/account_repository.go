package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/bizpilot/bizpilot_backend/internal/apperrors"
	"github.com/bizpilot/bizpilot_backend/internal/core/domain"
	portsrepo "github.com/bizpilot/bizpilot_backend/internal/core/ports/repositories"
	"github.com/bizpilot/bizpilot_backend/internal/models"
	"github.com/bizpilot/bizpilot_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// accountSelect joins account_types so every fetched account carries its
// normal-balance classification.
const accountSelect = `
	SELECT a.account_id, a.business_id, a.account_type_id, a.name,
	       at.normal_balance, a.is_active, a.current_balance,
	       a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
	FROM accounts a
	JOIN account_types at ON a.account_type_id = at.account_type_id
`

// FindAccountsByIDs retrieves multiple accounts by their IDs. Returns
// ErrNotFound if any requested account is missing.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := accountSelect + ` WHERE a.account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	return r.collectAccounts(rows, accountIDs)
}

// FindAccountsByIDsForUpdate retrieves accounts by IDs and locks their rows
// for the remainder of the transaction. FOR UPDATE OF a locks only the
// accounts rows, not the joined account_types rows.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	// Lock in a deterministic order to avoid deadlocks between concurrent
	// postings touching overlapping account sets.
	query := accountSelect + ` WHERE a.account_id = ANY($1) ORDER BY a.account_id FOR UPDATE OF a;`
	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts for update: %w", mapPgError(err))
	}
	defer rows.Close()

	return r.collectAccounts(rows, accountIDs)
}

func (r *PgxAccountRepository) collectAccounts(rows pgx.Rows, requestedIDs []string) (map[string]domain.Account, error) {
	accounts := make(map[string]domain.Account, len(requestedIDs))
	for rows.Next() {
		var m models.Account
		err := rows.Scan(
			&m.AccountID,
			&m.BusinessID,
			&m.AccountTypeID,
			&m.Name,
			&m.NormalBalance,
			&m.IsActive,
			&m.CurrentBalance,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts[m.AccountID] = mapping.ToDomainAccount(m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}

	for _, id := range requestedIDs {
		if _, ok := accounts[id]; !ok {
			return nil, fmt.Errorf("account %s: %w", id, apperrors.ErrNotFound)
		}
	}

	return accounts, nil
}

// IncrementAccountBalancesInTx applies signed deltas to current_balance as
// relative increments within the transaction. The read-modify-write happens in
// SQL, so concurrent postings never lose updates.
func (r *PgxAccountRepository) IncrementAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	query := `
		UPDATE accounts
		SET current_balance = COALESCE(current_balance, 0) + $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE account_id = $1;
	`
	batch := &pgx.Batch{}
	for accountID, delta := range balanceChanges {
		batch.Queue(query, accountID, delta, now, userID)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	for range balanceChanges {
		cmdTag, err := br.Exec()
		if err != nil {
			return fmt.Errorf("failed to increment account balance: %w", mapPgError(err))
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("account missing during balance update: %w", apperrors.ErrNotFound)
		}
	}

	return nil
}
