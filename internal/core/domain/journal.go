package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry represents a dated, balanced set of debit/credit lines recording
// a financial event. Immutable once posted.
type JournalEntry struct {
	JournalEntryID string     `json:"journalEntryID"` // Primary Key (UUID)
	BusinessID     string     `json:"businessID"`     // Owning business (Not Null)
	EntryDate      time.Time  `json:"entryDate"`      // Date the event occurred
	ReferenceType  *string    `json:"referenceType"`  // Optional link to a source document
	ReferenceID    *string    `json:"referenceID"`
	Description    string     `json:"description"` // Nullable user description
	IsPosted       bool       `json:"isPosted"`
	PostedAt       *time.Time `json:"postedAt"` // Set exactly once, when posted
	AuditFields
	Lines []JournalLine `json:"lines"` // Lifecycle owned by the entry
}

// JournalLine is a single debit/credit line within a JournalEntry, affecting one
// account and optionally one party. Well-formed lines carry an amount on exactly
// one side.
type JournalLine struct {
	JournalLineID  string          `json:"journalLineID"`  // Primary Key (UUID)
	JournalEntryID string          `json:"journalEntryID"` // FK -> JournalEntry (Not Null)
	AccountID      string          `json:"accountID"`      // FK -> Account (Not Null)
	PartyID        *string         `json:"partyID"`        // Optional FK -> Party
	DebitAmount    decimal.Decimal `json:"debitAmount"`    // Non-negative
	CreditAmount   decimal.Decimal `json:"creditAmount"`   // Non-negative
	Description    string          `json:"description"`
	AuditFields
}
