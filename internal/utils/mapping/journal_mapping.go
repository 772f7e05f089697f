package mapping

import (
	"github.com/bizpilot/bizpilot_backend/internal/core/domain"
	"github.com/bizpilot/bizpilot_backend/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		JournalEntryID: d.JournalEntryID,
		BusinessID:     d.BusinessID,
		EntryDate:      d.EntryDate,
		ReferenceType:  d.ReferenceType,
		ReferenceID:    d.ReferenceID,
		Description:    d.Description,
		IsPosted:       d.IsPosted,
		PostedAt:       d.PostedAt,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		JournalEntryID: m.JournalEntryID,
		BusinessID:     m.BusinessID,
		EntryDate:      m.EntryDate,
		ReferenceType:  m.ReferenceType,
		ReferenceID:    m.ReferenceID,
		Description:    m.Description,
		IsPosted:       m.IsPosted,
		PostedAt:       m.PostedAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		JournalLineID:  d.JournalLineID,
		JournalEntryID: d.JournalEntryID,
		AccountID:      d.AccountID,
		PartyID:        d.PartyID,
		DebitAmount:    d.DebitAmount,
		CreditAmount:   d.CreditAmount,
		Description:    d.Description,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		JournalLineID:  m.JournalLineID,
		JournalEntryID: m.JournalEntryID,
		AccountID:      m.AccountID,
		PartyID:        m.PartyID,
		DebitAmount:    m.DebitAmount,
		CreditAmount:   m.CreditAmount,
		Description:    m.Description,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines to domain JournalLines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
