package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry maps to the journal_entries table.
type JournalEntry struct {
	JournalEntryID string     `db:"journal_entry_id"`
	BusinessID     string     `db:"business_id"`
	EntryDate      time.Time  `db:"entry_date"`
	ReferenceType  *string    `db:"reference_type"`
	ReferenceID    *string    `db:"reference_id"`
	Description    string     `db:"description"`
	IsPosted       bool       `db:"is_posted"`
	PostedAt       *time.Time `db:"posted_at"`
	AuditFields
}

// JournalLine maps to the journal_lines table. Rows are created and destroyed
// with their parent entry.
type JournalLine struct {
	JournalLineID  string          `db:"journal_line_id"`
	JournalEntryID string          `db:"journal_entry_id"`
	AccountID      string          `db:"account_id"`
	PartyID        *string         `db:"party_id"`
	DebitAmount    decimal.Decimal `db:"debit_amount"`
	CreditAmount   decimal.Decimal `db:"credit_amount"`
	Description    string          `db:"description"`
	AuditFields
}
