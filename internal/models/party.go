package models

import "github.com/shopspring/decimal"

// PartyType classifies a counterparty.
type PartyType string

const (
	Debtor   PartyType = "DEBTOR"
	Creditor PartyType = "CREDITOR"
	Employee PartyType = "EMPLOYEE"
)

// Party maps to the parties table.
type Party struct {
	PartyID    string    `db:"party_id"`
	BusinessID string    `db:"business_id"`
	Name       string    `db:"name"`
	PartyType  PartyType `db:"party_type"`
	AuditFields
	CurrentBalance decimal.Decimal `db:"current_balance"`
}
