package repositories

import (
	"context"
	"time"

	"github.com/bizpilot/bizpilot_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// JournalEntryReader defines read operations for journal entry data
type JournalEntryReader interface {
	// FindEntryByID retrieves a journal entry header by its unique identifier.
	FindEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves all lines belonging to a journal entry.
	FindLinesByEntryID(ctx context.Context, journalEntryID string) ([]domain.JournalLine, error)

	// ListEntriesByBusiness retrieves a page of journal entries for a business,
	// newest first, using token-based pagination. Returns the entries and a
	// token for the next page, nil when there are no further pages.
	ListEntriesByBusiness(ctx context.Context, businessID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalEntryWriter defines transactional write operations for journal entry data.
// Every method takes the active transaction explicitly; the caller owns the
// transaction's lifecycle and guarantees commit or rollback on all exit paths.
type JournalEntryWriter interface {
	// CreateEntryInTx persists an entry header and all of its lines atomically.
	// The entry and its lines appear together or not at all.
	CreateEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) error

	// FindEntryByIDForUpdate retrieves an entry header and locks its row for the
	// remainder of the transaction. Used to serialize posting.
	FindEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, journalEntryID string) (*domain.JournalEntry, error)

	// MarkEntryPostedInTx flips is_posted and stamps posted_at. Fails if the
	// entry does not exist or is already posted.
	MarkEntryPostedInTx(ctx context.Context, tx pgx.Tx, journalEntryID string, postedBy string, postedAt time.Time) error
}

// JournalRepositoryFacade combines all journal-entry repository interfaces
type JournalRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
