package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrAlreadyPosted indicates that a journal entry's balance effects were already applied.
// Posting is not idempotent; a second attempt is a caller logic error.
var ErrAlreadyPosted = errors.New("journal entry already posted")

// ErrConflict indicates a transactional/concurrency failure (serialization conflict,
// deadlock). The caller may safely retry the entire operation.
var ErrConflict = errors.New("transaction conflict")

// ErrMissingField indicates that a required input field is absent.
var ErrMissingField = errors.New("required field missing")

// ErrStructural indicates that an input is structurally invalid (for example a
// journal entry with fewer than two lines). Rejected before any persistence.
var ErrStructural = errors.New("structurally invalid input")

// ErrUnbalancedEntry indicates that a journal entry's debit and credit totals differ
// beyond the accepted tolerance.
var ErrUnbalancedEntry = errors.New("journal entry unbalanced")

// ErrInsufficientStock indicates that a stock movement would drive a product's
// stock level negative.
var ErrInsufficientStock = errors.New("insufficient stock")

// MissingFieldError reports which required field was absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required field missing: %s", e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// NewMissingFieldError creates a MissingFieldError for the given field name.
func NewMissingFieldError(field string) error {
	return &MissingFieldError{Field: field}
}

// UnbalancedEntryError carries both totals for diagnostics.
type UnbalancedEntryError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("journal entry unbalanced: debits %s != credits %s",
		e.TotalDebit.String(), e.TotalCredit.String())
}

func (e *UnbalancedEntryError) Unwrap() error {
	return ErrUnbalancedEntry
}

// InsufficientStockError carries the product name, its current stock level, and the
// requested reduction that would have driven it negative.
type InsufficientStockError struct {
	ProductName  string
	CurrentStock decimal.Decimal
	Requested    decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: current %s, requested reduction %s",
		e.ProductName, e.CurrentStock.String(), e.Requested.Abs().String())
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
