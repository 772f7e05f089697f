package services

import (
	"context"

	"github.com/bizpilot/bizpilot_backend/internal/core/domain"
	"github.com/bizpilot/bizpilot_backend/internal/dto"
)

// JournalReaderSvc defines read operations for journal entry data
type JournalReaderSvc interface {
	// GetJournalEntryByID retrieves a journal entry with its lines.
	GetJournalEntryByID(ctx context.Context, businessID string, journalEntryID string) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves a page of journal entries for a business
	// using token-based pagination.
	ListJournalEntries(ctx context.Context, businessID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalWriterSvc defines the ledger posting engine operations
type JournalWriterSvc interface {
	// CreateJournalEntry validates a draft and persists it unposted with its lines.
	CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error)

	// PostJournalEntry applies an entry's balance effects to accounts and
	// parties exactly once and marks the entry posted.
	PostJournalEntry(ctx context.Context, journalEntryID string, postedBy string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-entry service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
