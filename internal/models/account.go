package models

import (
	"github.com/shopspring/decimal"
)

// NormalBalance mirrors the account type classification stored in account_types.
type NormalBalance string

const (
	NormalDebit  NormalBalance = "DEBIT"
	NormalCredit NormalBalance = "CREDIT"
)

// AccountType maps to the account_types table.
type AccountType struct {
	AccountTypeID string        `db:"account_type_id"`
	Name          string        `db:"name"`
	NormalBalance NormalBalance `db:"normal_balance"`
}

// Account maps to the accounts table. NormalBalance is populated by joining
// account_types on reads; it is not a column of accounts itself.
type Account struct {
	AccountID     string        `db:"account_id"`
	BusinessID    string        `db:"business_id"`
	AccountTypeID string        `db:"account_type_id"`
	Name          string        `db:"name"`
	NormalBalance NormalBalance `db:"normal_balance"`
	IsActive      bool          `db:"is_active"`
	AuditFields
	CurrentBalance decimal.Decimal `db:"current_balance"`
}
