package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bizpilot/bizpilot_backend/internal/apperrors"
	"github.com/bizpilot/bizpilot_backend/internal/core/domain"
	portsrepo "github.com/bizpilot/bizpilot_backend/internal/core/ports/repositories"
	"github.com/bizpilot/bizpilot_backend/internal/models"
	"github.com/bizpilot/bizpilot_backend/internal/utils/mapping"
	"github.com/bizpilot/bizpilot_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

const journalEntryColumns = `
	journal_entry_id, business_id, entry_date, reference_type, reference_id,
	description, is_posted, posted_at,
	created_at, created_by, last_updated_at, last_updated_by
`

// CreateEntryInTx inserts a journal entry header and all of its lines using
// the caller's transaction. The caller commits or rolls back.
func (r *PgxJournalRepository) CreateEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) error {
	modelEntry := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (
			journal_entry_id, business_id, entry_date, reference_type, reference_id,
			description, is_posted, posted_at,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := tx.Exec(ctx, entryQuery,
		modelEntry.JournalEntryID,
		modelEntry.BusinessID,
		modelEntry.EntryDate,
		modelEntry.ReferenceType,
		modelEntry.ReferenceID,
		modelEntry.Description,
		modelEntry.IsPosted,
		modelEntry.PostedAt,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry %s: %w", modelEntry.JournalEntryID, mapPgError(err))
	}

	lineQuery := `
		INSERT INTO journal_lines (
			journal_line_id, journal_entry_id, account_id, party_id,
			debit_amount, credit_amount, description,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		modelLine := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			modelLine.JournalLineID,
			modelLine.JournalEntryID,
			modelLine.AccountID,
			modelLine.PartyID,
			modelLine.DebitAmount,
			modelLine.CreditAmount,
			modelLine.Description,
			modelLine.CreatedAt,
			modelLine.CreatedBy,
			modelLine.LastUpdatedAt,
			modelLine.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert lines for journal entry %s: %w", modelEntry.JournalEntryID, mapPgError(err))
	}

	return nil
}

// FindEntryByID retrieves a journal entry header by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE journal_entry_id = $1;`
	return r.scanEntryRow(r.Pool.QueryRow(ctx, query, journalEntryID), journalEntryID)
}

// FindEntryByIDForUpdate retrieves a journal entry header and locks its row for
// the remainder of the transaction. Posting uses this lock to serialize
// concurrent attempts on the same entry.
func (r *PgxJournalRepository) FindEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, journalEntryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE journal_entry_id = $1 FOR UPDATE;`
	return r.scanEntryRow(tx.QueryRow(ctx, query, journalEntryID), journalEntryID)
}

func (r *PgxJournalRepository) scanEntryRow(row pgx.Row, journalEntryID string) (*domain.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.JournalEntryID,
		&m.BusinessID,
		&m.EntryDate,
		&m.ReferenceType,
		&m.ReferenceID,
		&m.Description,
		&m.IsPosted,
		&m.PostedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", journalEntryID, err)
	}

	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// FindLinesByEntryID retrieves all lines belonging to a journal entry, in
// insertion order.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, journalEntryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT journal_line_id, journal_entry_id, account_id, party_id,
		       debit_amount, credit_amount, description,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM journal_lines
		WHERE journal_entry_id = $1
		ORDER BY created_at, journal_line_id;
	`
	rows, err := r.Pool.Query(ctx, query, journalEntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for journal entry %s: %w", journalEntryID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		var l models.JournalLine
		err := rows.Scan(
			&l.JournalLineID,
			&l.JournalEntryID,
			&l.AccountID,
			&l.PartyID,
			&l.DebitAmount,
			&l.CreditAmount,
			&l.Description,
			&l.CreatedAt,
			&l.CreatedBy,
			&l.LastUpdatedAt,
			&l.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line row for journal entry %s: %w", journalEntryID, err)
		}
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows for journal entry %s: %w", journalEntryID, err)
	}

	return mapping.ToDomainJournalLineSlice(lines), nil
}

// ListEntriesByBusiness retrieves a paginated list of journal entries for a
// business using token-based pagination. It returns the entries, a token for
// the next page, and an error.
func (r *PgxJournalRepository) ListEntriesByBusiness(ctx context.Context, businessID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
		WHERE business_id = $1
	`
	// Ordering is crucial and must be stable
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{businessID}

	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("invalid nextToken: %w", apperrors.ErrValidation)
		}

		// Tuple comparison is concise and efficient in Postgres
		cursorClause := `AND (entry_date, created_at) < ($2, $3)`
		args = append(args, lastEntryDate, lastCreatedAt)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)

		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journal entries for business %s: %w", businessID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		var m models.JournalEntry
		scanErr := rows.Scan(
			&m.JournalEntryID,
			&m.BusinessID,
			&m.EntryDate,
			&m.ReferenceType,
			&m.ReferenceID,
			&m.Description,
			&m.IsPosted,
			&m.PostedAt,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan journal entry row for business %s: %w", businessID, scanErr)
		}
		modelEntries = append(modelEntries, m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating journal entry rows for business %s: %w", businessID, err)
	}

	// Determine the next token
	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		// The token points to the last item included in this response page.
		lastEntry := modelEntries[limit-1]
		newToken := pagination.EncodeToken(lastEntry.EntryDate, lastEntry.CreatedAt)
		nextTokenVal = &newToken
		results = modelEntries[:limit]
	}

	entries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}

	return entries, nextTokenVal, nil
}

// MarkEntryPostedInTx flips is_posted and stamps posted_at within the caller's
// transaction. The is_posted = FALSE guard makes the flip idempotence-safe at
// the storage layer even if a caller skips the locked re-check.
func (r *PgxJournalRepository) MarkEntryPostedInTx(ctx context.Context, tx pgx.Tx, journalEntryID string, postedBy string, postedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET is_posted = TRUE,
		    posted_at = $2,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE journal_entry_id = $1 AND is_posted = FALSE;
	`
	cmdTag, err := tx.Exec(ctx, query, journalEntryID, postedAt, postedBy)
	if err != nil {
		return fmt.Errorf("failed to mark journal entry %s posted: %w", journalEntryID, mapPgError(err))
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("journal entry %s: %w", journalEntryID, apperrors.ErrAlreadyPosted)
	}

	return nil
}
