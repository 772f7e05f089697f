package domain

import "github.com/shopspring/decimal"

// PartyType classifies a counterparty for balance polarity.
type PartyType string

const (
	Debtor   PartyType = "DEBTOR"
	Creditor PartyType = "CREDITOR"
	Employee PartyType = "EMPLOYEE"
)

// Party represents a counterparty (customer, supplier, employee) with its own
// running balance. The balance is mutated only when a posted journal line
// references the party.
type Party struct {
	PartyID    string    `json:"partyID"`    // Primary Key (UUID)
	BusinessID string    `json:"businessID"` // Owning business
	Name       string    `json:"name"`
	PartyType  PartyType `json:"partyType"`
	AuditFields
	CurrentBalance decimal.Decimal `json:"currentBalance"`
}
