package accounting

import (
	"fmt"

	"github.com/bizpilot/bizpilot_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountBalanceDelta resolves the signed change to an account's running balance
// for a debit/credit pair, based on the account's normal-balance classification.
//
// DEBIT-normal accounts (assets, expenses) grow with debits: delta = debit - credit.
// CREDIT-normal accounts (liabilities, equity, income) grow with credits: delta = credit - debit.
//
// An unknown classification is a configuration error, never a silent default.
func AccountBalanceDelta(normalBalance domain.NormalBalance, debit, credit decimal.Decimal) (decimal.Decimal, error) {
	switch normalBalance {
	case domain.NormalDebit:
		return debit.Sub(credit), nil
	case domain.NormalCredit:
		return credit.Sub(debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown normal balance classification '%s'", normalBalance)
	}
}

// PartyBalanceDelta resolves the signed change to a party's running balance for a
// debit/credit pair. Debtor balances grow with debits (money owed to us);
// creditor and employee balances grow with credits (money we owe).
func PartyBalanceDelta(partyType domain.PartyType, debit, credit decimal.Decimal) (decimal.Decimal, error) {
	switch partyType {
	case domain.Debtor:
		return debit.Sub(credit), nil
	case domain.Creditor, domain.Employee:
		return credit.Sub(debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown party type '%s'", partyType)
	}
}

// EntryTotals sums the debit and credit sides of a set of journal lines.
func EntryTotals(lines []domain.JournalLine) (totalDebit, totalCredit decimal.Decimal) {
	totalDebit = decimal.Zero
	totalCredit = decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.DebitAmount)
		totalCredit = totalCredit.Add(line.CreditAmount)
	}
	return totalDebit, totalCredit
}
