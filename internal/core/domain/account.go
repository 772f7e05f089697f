package domain

import (
	"github.com/shopspring/decimal"
)

// NormalBalance defines which side of the ledger increases an account.
type NormalBalance string

const (
	NormalDebit  NormalBalance = "DEBIT"
	NormalCredit NormalBalance = "CREDIT"
)

// AccountType is the classification of an account, carrying its normal balance.
type AccountType struct {
	AccountTypeID string        `json:"accountTypeID"`
	Name          string        `json:"name"`
	NormalBalance NormalBalance `json:"normalBalance"`
}

// Account represents a ledger account within the core domain.
// CurrentBalance is mutated only by the posting step of the ledger engine,
// always as a relative increment inside a transaction.
type Account struct {
	AccountID     string          `json:"accountID"`     // Primary Key (UUID)
	BusinessID    string          `json:"businessID"`    // Owning business (multi-tenant scope)
	AccountTypeID string          `json:"accountTypeID"` // FK -> AccountType
	Name          string          `json:"name"`
	NormalBalance NormalBalance   `json:"normalBalance"` // Resolved from the account type on read
	IsActive      bool            `json:"isActive"`
	AuditFields
	CurrentBalance decimal.Decimal `json:"currentBalance"`
}
