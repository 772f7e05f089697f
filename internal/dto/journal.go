package dto

import (
	"time"

	"github.com/bizpilot/bizpilot_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is a single debit/credit line in a journal entry draft.
type JournalLineRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	PartyID      *string         `json:"partyID"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description"`
}

// CreateJournalEntryRequest is the draft submitted to the ledger posting engine.
type CreateJournalEntryRequest struct {
	BusinessID    string               `json:"businessID" binding:"required"`
	EntryDate     time.Time            `json:"entryDate" binding:"required"`
	ReferenceType *string              `json:"referenceType"`
	ReferenceID   *string              `json:"referenceID"`
	Description   string               `json:"description"`
	CreatedBy     string               `json:"createdBy" binding:"required"`
	Lines         []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// PostJournalEntryRequest identifies who is posting an entry.
type PostJournalEntryRequest struct {
	PostedBy string `json:"postedBy" binding:"required"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	JournalLineID string          `json:"journalLineID"`
	AccountID     string          `json:"accountID"`
	PartyID       *string         `json:"partyID,omitempty"`
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	Description   string          `json:"description,omitempty"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	JournalEntryID string                `json:"journalEntryID"`
	BusinessID     string                `json:"businessID"`
	EntryDate      time.Time             `json:"entryDate"`
	ReferenceType  *string               `json:"referenceType,omitempty"`
	ReferenceID    *string               `json:"referenceID,omitempty"`
	Description    string                `json:"description,omitempty"`
	IsPosted       bool                  `json:"isPosted"`
	PostedAt       *time.Time            `json:"postedAt,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	CreatedBy      string                `json:"createdBy"`
	Lines          []JournalLineResponse `json:"lines,omitempty"`
}

// ToJournalLineResponse converts a domain.JournalLine to JournalLineResponse.
func ToJournalLineResponse(l *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		JournalLineID: l.JournalLineID,
		AccountID:     l.AccountID,
		PartyID:       l.PartyID,
		DebitAmount:   l.DebitAmount,
		CreditAmount:  l.CreditAmount,
		Description:   l.Description,
	}
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		JournalEntryID: e.JournalEntryID,
		BusinessID:     e.BusinessID,
		EntryDate:      e.EntryDate,
		ReferenceType:  e.ReferenceType,
		ReferenceID:    e.ReferenceID,
		Description:    e.Description,
		IsPosted:       e.IsPosted,
		PostedAt:       e.PostedAt,
		CreatedAt:      e.CreatedAt,
		CreatedBy:      e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToJournalLineResponse(&e.Lines[i])
		}
	}
	return resp
}

// ListJournalEntriesResponse is a page of journal entries with a pagination
// token for the next page.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalEntryResponses converts a slice of domain.JournalEntry.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToJournalEntryResponse(&entries[i])
	}
	return responses
}
