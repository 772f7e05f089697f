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

type PgxPartyRepository struct {
	BaseRepository
}

// newPgxPartyRepository creates a new repository for party data.
func newPgxPartyRepository(pool *pgxpool.Pool) portsrepo.PartyRepositoryFacade {
	return &PgxPartyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPartyRepository implements portsrepo.PartyRepositoryFacade
var _ portsrepo.PartyRepositoryFacade = (*PgxPartyRepository)(nil)

const partySelect = `
	SELECT party_id, business_id, name, party_type, current_balance,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM parties
`

// FindPartiesByIDs retrieves multiple parties by their IDs. Returns
// ErrNotFound if any requested party is missing.
func (r *PgxPartyRepository) FindPartiesByIDs(ctx context.Context, partyIDs []string) (map[string]domain.Party, error) {
	if len(partyIDs) == 0 {
		return map[string]domain.Party{}, nil
	}

	query := partySelect + ` WHERE party_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, partyIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query parties by IDs: %w", err)
	}
	defer rows.Close()

	return r.collectParties(rows, partyIDs)
}

// FindPartiesByIDsForUpdate retrieves parties by IDs and locks their rows for
// the remainder of the transaction.
func (r *PgxPartyRepository) FindPartiesByIDsForUpdate(ctx context.Context, tx pgx.Tx, partyIDs []string) (map[string]domain.Party, error) {
	if len(partyIDs) == 0 {
		return map[string]domain.Party{}, nil
	}

	query := partySelect + ` WHERE party_id = ANY($1) ORDER BY party_id FOR UPDATE;`
	rows, err := tx.Query(ctx, query, partyIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock parties for update: %w", mapPgError(err))
	}
	defer rows.Close()

	return r.collectParties(rows, partyIDs)
}

func (r *PgxPartyRepository) collectParties(rows pgx.Rows, requestedIDs []string) (map[string]domain.Party, error) {
	parties := make(map[string]domain.Party, len(requestedIDs))
	for rows.Next() {
		var m models.Party
		err := rows.Scan(
			&m.PartyID,
			&m.BusinessID,
			&m.Name,
			&m.PartyType,
			&m.CurrentBalance,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan party row: %w", err)
		}
		parties[m.PartyID] = mapping.ToDomainParty(m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating party rows: %w", err)
	}

	for _, id := range requestedIDs {
		if _, ok := parties[id]; !ok {
			return nil, fmt.Errorf("party %s: %w", id, apperrors.ErrNotFound)
		}
	}

	return parties, nil
}

// IncrementPartyBalancesInTx applies signed deltas to current_balance as
// relative increments within the transaction.
func (r *PgxPartyRepository) IncrementPartyBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	query := `
		UPDATE parties
		SET current_balance = COALESCE(current_balance, 0) + $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE party_id = $1;
	`
	batch := &pgx.Batch{}
	for partyID, delta := range balanceChanges {
		batch.Queue(query, partyID, delta, now, userID)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	for range balanceChanges {
		cmdTag, err := br.Exec()
		if err != nil {
			return fmt.Errorf("failed to increment party balance: %w", mapPgError(err))
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("party missing during balance update: %w", apperrors.ErrNotFound)
		}
	}

	return nil
}
