package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bizpilot/bizpilot_backend/internal/apperrors"
	"github.com/bizpilot/bizpilot_backend/internal/core/domain"
	portsrepo "github.com/bizpilot/bizpilot_backend/internal/core/ports/repositories"
	portssvc "github.com/bizpilot/bizpilot_backend/internal/core/ports/services"
	"github.com/bizpilot/bizpilot_backend/internal/dto"
	"github.com/bizpilot/bizpilot_backend/internal/middleware"
	"github.com/bizpilot/bizpilot_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var (
	// ErrEntryMinLines rejects entries that cannot balance structurally.
	ErrEntryMinLines = fmt.Errorf("%w: journal entry must have at least 2 lines", apperrors.ErrStructural)
	// ErrLineBothSides rejects lines carrying an amount on both sides.
	ErrLineBothSides = fmt.Errorf("%w: journal line must not carry both a debit and a credit amount", apperrors.ErrValidation)
	// ErrLineNegativeAmount rejects negative debit or credit amounts.
	ErrLineNegativeAmount = fmt.Errorf("%w: journal line amounts must be non-negative", apperrors.ErrValidation)
)

// balanceTolerance is the accepted absolute difference between total debits and
// total credits of an entry, in currency units.
var balanceTolerance = decimal.RequireFromString("0.01")

// journalService is the ledger posting engine. It validates journal entry
// drafts, persists them unposted, and applies their balance effects to
// accounts and parties exactly once.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryWithTx
	accountRepo portsrepo.AccountRepositoryFacade
	partyRepo   portsrepo.PartyRepositoryFacade
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryWithTx, accountRepo portsrepo.AccountRepositoryFacade, partyRepo portsrepo.PartyRepositoryFacade) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		partyRepo:   partyRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// validateDraft enforces the structural and balance invariants on a proposed
// entry before anything is persisted.
func (s *journalService) validateDraft(req dto.CreateJournalEntryRequest) error {
	if req.BusinessID == "" {
		return apperrors.NewMissingFieldError("businessID")
	}
	if req.EntryDate.IsZero() {
		return apperrors.NewMissingFieldError("entryDate")
	}
	if req.CreatedBy == "" {
		return apperrors.NewMissingFieldError("createdBy")
	}
	if len(req.Lines) == 0 {
		return apperrors.NewMissingFieldError("lines")
	}
	if len(req.Lines) < 2 {
		return ErrEntryMinLines
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range req.Lines {
		if line.AccountID == "" {
			return apperrors.NewMissingFieldError("lines.accountID")
		}
		if line.DebitAmount.IsNegative() || line.CreditAmount.IsNegative() {
			return ErrLineNegativeAmount
		}
		// A line represents exactly one side of the entry.
		if line.DebitAmount.IsPositive() && line.CreditAmount.IsPositive() {
			return ErrLineBothSides
		}
		totalDebit = totalDebit.Add(line.DebitAmount)
		totalCredit = totalCredit.Add(line.CreditAmount)
	}

	if totalDebit.Sub(totalCredit).Abs().GreaterThan(balanceTolerance) {
		return &apperrors.UnbalancedEntryError{TotalDebit: totalDebit, TotalCredit: totalCredit}
	}
	return nil
}

// CreateJournalEntry validates the draft and persists the entry header and all
// of its lines atomically, unposted. Balance effects are deferred to posting.
func (s *journalService) CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.validateDraft(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     req.CreatedBy,
		LastUpdatedAt: now,
		LastUpdatedBy: req.CreatedBy,
	}

	entry := domain.JournalEntry{
		JournalEntryID: entryID,
		BusinessID:     req.BusinessID,
		EntryDate:      req.EntryDate,
		ReferenceType:  req.ReferenceType,
		ReferenceID:    req.ReferenceID,
		Description:    req.Description,
		IsPosted:       false,
		AuditFields:    audit,
	}

	lines := make([]domain.JournalLine, len(req.Lines))
	for i, lineReq := range req.Lines {
		lines[i] = domain.JournalLine{
			JournalLineID:  uuid.NewString(),
			JournalEntryID: entryID,
			AccountID:      lineReq.AccountID,
			PartyID:        lineReq.PartyID,
			DebitAmount:    lineReq.DebitAmount,
			CreditAmount:   lineReq.CreditAmount,
			Description:    lineReq.Description,
			AuditFields:    audit,
		}
	}

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.journalRepo.Rollback(ctx, tx)

	if err := s.journalRepo.CreateEntryInTx(ctx, tx, entry, lines); err != nil {
		logger.Error("Failed to persist journal entry", slog.String("error", err.Error()), slog.String("business_id", req.BusinessID))
		return nil, fmt.Errorf("failed to persist journal entry: %w", err)
	}

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit journal entry %s: %w", entryID, err)
	}

	logger.Info("Journal entry created", slog.String("journal_entry_id", entryID), slog.String("business_id", req.BusinessID))
	entry.Lines = lines
	return &entry, nil
}

// PostJournalEntry applies the entry's balance effects to accounts and parties
// and marks the entry posted, all within a single transaction. Posting an
// already-posted entry fails with ErrAlreadyPosted; balances stay untouched.
func (s *journalService) PostJournalEntry(ctx context.Context, journalEntryID string, postedBy string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if journalEntryID == "" {
		return nil, apperrors.NewMissingFieldError("journalEntryID")
	}
	if postedBy == "" {
		return nil, apperrors.NewMissingFieldError("postedBy")
	}

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer s.journalRepo.Rollback(ctx, tx)

	// Locking the entry row serializes concurrent posting attempts; the
	// is_posted check below is therefore race-free.
	entry, err := s.journalRepo.FindEntryByIDForUpdate(ctx, tx, journalEntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal entry %s: %w", journalEntryID, err)
	}
	if entry.IsPosted {
		return nil, fmt.Errorf("journal entry %s: %w", journalEntryID, apperrors.ErrAlreadyPosted)
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, journalEntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lines for journal entry %s: %w", journalEntryID, err)
	}

	// Re-check balance on the stored lines before touching any balances.
	totalDebit, totalCredit := accounting.EntryTotals(lines)
	if totalDebit.Sub(totalCredit).Abs().GreaterThan(balanceTolerance) {
		return nil, &apperrors.UnbalancedEntryError{TotalDebit: totalDebit, TotalCredit: totalCredit}
	}

	accountIDs := make([]string, 0, len(lines))
	partyIDs := make([]string, 0)
	seenAccounts := make(map[string]struct{}, len(lines))
	seenParties := make(map[string]struct{})
	for _, line := range lines {
		if _, ok := seenAccounts[line.AccountID]; !ok {
			seenAccounts[line.AccountID] = struct{}{}
			accountIDs = append(accountIDs, line.AccountID)
		}
		if line.PartyID != nil {
			if _, ok := seenParties[*line.PartyID]; !ok {
				seenParties[*line.PartyID] = struct{}{}
				partyIDs = append(partyIDs, *line.PartyID)
			}
		}
	}

	accounts, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts for posting: %w", err)
	}

	var parties map[string]domain.Party
	if len(partyIDs) > 0 {
		parties, err = s.partyRepo.FindPartiesByIDsForUpdate(ctx, tx, partyIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to lock parties for posting: %w", err)
		}
	}

	accountChanges := make(map[string]decimal.Decimal, len(accountIDs))
	partyChanges := make(map[string]decimal.Decimal, len(partyIDs))
	for _, line := range lines {
		account, ok := accounts[line.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: account %s referenced by journal entry %s", apperrors.ErrNotFound, line.AccountID, journalEntryID)
		}

		delta, err := accounting.AccountBalanceDelta(account.NormalBalance, line.DebitAmount, line.CreditAmount)
		if err != nil {
			logger.Error("Balance policy resolution failed", slog.String("error", err.Error()), slog.String("account_id", line.AccountID))
			return nil, fmt.Errorf("failed to resolve balance delta for account %s: %w", line.AccountID, err)
		}
		accountChanges[line.AccountID] = accountChanges[line.AccountID].Add(delta)

		if line.PartyID != nil {
			party, ok := parties[*line.PartyID]
			if !ok {
				return nil, fmt.Errorf("%w: party %s referenced by journal entry %s", apperrors.ErrNotFound, *line.PartyID, journalEntryID)
			}
			partyDelta, err := accounting.PartyBalanceDelta(party.PartyType, line.DebitAmount, line.CreditAmount)
			if err != nil {
				logger.Error("Party policy resolution failed", slog.String("error", err.Error()), slog.String("party_id", *line.PartyID))
				return nil, fmt.Errorf("failed to resolve balance delta for party %s: %w", *line.PartyID, err)
			}
			partyChanges[*line.PartyID] = partyChanges[*line.PartyID].Add(partyDelta)
		}
	}

	now := time.Now().UTC()
	if err := s.accountRepo.IncrementAccountBalancesInTx(ctx, tx, accountChanges, postedBy, now); err != nil {
		return nil, fmt.Errorf("failed to update account balances for journal entry %s: %w", journalEntryID, err)
	}
	if len(partyChanges) > 0 {
		if err := s.partyRepo.IncrementPartyBalancesInTx(ctx, tx, partyChanges, postedBy, now); err != nil {
			return nil, fmt.Errorf("failed to update party balances for journal entry %s: %w", journalEntryID, err)
		}
	}
	if err := s.journalRepo.MarkEntryPostedInTx(ctx, tx, journalEntryID, postedBy, now); err != nil {
		return nil, fmt.Errorf("failed to mark journal entry %s posted: %w", journalEntryID, err)
	}

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit posting of journal entry %s: %w", journalEntryID, err)
	}

	logger.Info("Journal entry posted",
		slog.String("journal_entry_id", journalEntryID),
		slog.Int("account_count", len(accountChanges)),
		slog.Int("party_count", len(partyChanges)),
	)

	entry.IsPosted = true
	entry.PostedAt = &now
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = postedBy
	entry.Lines = lines
	return entry, nil
}

// GetJournalEntryByID retrieves a journal entry with its lines.
func (s *journalService) GetJournalEntryByID(ctx context.Context, businessID string, journalEntryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, journalEntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal entry %s: %w", journalEntryID, err)
	}

	// Entries from another business are reported as missing.
	if entry.BusinessID != businessID {
		return nil, apperrors.ErrNotFound
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, journalEntryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lines for journal entry %s: %w", journalEntryID, err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListJournalEntries retrieves a page of journal entries for a business using
// token-based pagination.
func (s *journalService) ListJournalEntries(ctx context.Context, businessID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if businessID == "" {
		return nil, nil, apperrors.NewMissingFieldError("businessID")
	}
	if limit <= 0 {
		limit = 20
	}
	entries, newNextToken, err := s.journalRepo.ListEntriesByBusiness(ctx, businessID, limit, nextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return entries, newNextToken, nil
}
