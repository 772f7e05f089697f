package mapping

import (
	"github.com/bizpilot/bizpilot_backend/internal/core/domain"
	"github.com/bizpilot/bizpilot_backend/internal/models"
)

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		BusinessID:     m.BusinessID,
		AccountTypeID:  m.AccountTypeID,
		Name:           m.Name,
		NormalBalance:  domain.NormalBalance(m.NormalBalance),
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
		CurrentBalance: m.CurrentBalance,
	}
}

// ToDomainParty converts a model Party to a domain Party
func ToDomainParty(m models.Party) domain.Party {
	return domain.Party{
		PartyID:        m.PartyID,
		BusinessID:     m.BusinessID,
		Name:           m.Name,
		PartyType:      domain.PartyType(m.PartyType),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
		CurrentBalance: m.CurrentBalance,
	}
}
