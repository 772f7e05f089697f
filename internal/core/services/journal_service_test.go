package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bizpilot/bizpilot_backend/internal/apperrors"
	"github.com/bizpilot/bizpilot_backend/internal/core/domain"
	portsrepo "github.com/bizpilot/bizpilot_backend/internal/core/ports/repositories"
	portssvc "github.com/bizpilot/bizpilot_backend/internal/core/ports/services"
	"github.com/bizpilot/bizpilot_backend/internal/core/services"
	"github.com/bizpilot/bizpilot_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryWithTx = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockJournalRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) CreateEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, tx, entry, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, journalEntryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tx, journalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, journalEntryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, journalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntriesByBusiness(ctx context.Context, businessID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, businessID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) MarkEntryPostedInTx(ctx context.Context, tx pgx.Tx, journalEntryID string, postedBy string, postedAt time.Time) error {
	args := m.Called(ctx, tx, journalEntryID, postedBy, postedAt)
	return args.Error(0)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) IncrementAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

// --- Mock PartyRepository ---
type MockPartyRepository struct {
	mock.Mock
}

var _ portsrepo.PartyRepositoryFacade = (*MockPartyRepository)(nil)

func (m *MockPartyRepository) FindPartiesByIDs(ctx context.Context, partyIDs []string) (map[string]domain.Party, error) {
	args := m.Called(ctx, partyIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Party), args.Error(1)
}

func (m *MockPartyRepository) FindPartiesByIDsForUpdate(ctx context.Context, tx pgx.Tx, partyIDs []string) (map[string]domain.Party, error) {
	args := m.Called(ctx, tx, partyIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Party), args.Error(1)
}

func (m *MockPartyRepository) IncrementPartyBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	mockPartyRepo   *MockPartyRepository
	service         portssvc.JournalSvcFacade
	businessID      string
	userID          string
	cashAccount     domain.Account
	salesAccount    domain.Account
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockPartyRepo = new(MockPartyRepository)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo, suite.mockPartyRepo)

	suite.businessID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID:     uuid.NewString(),
		BusinessID:    suite.businessID,
		AccountTypeID: "ASSET",
		Name:          "Cash",
		NormalBalance: domain.NormalDebit,
		IsActive:      true,
	}
	suite.salesAccount = domain.Account{
		AccountID:     uuid.NewString(),
		BusinessID:    suite.businessID,
		AccountTypeID: "INCOME",
		Name:          "Sales",
		NormalBalance: domain.NormalCredit,
		IsActive:      true,
	}
}

func (suite *JournalServiceTestSuite) balancedRequest() dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		BusinessID:  suite.businessID,
		EntryDate:   time.Now().UTC(),
		Description: "Cash sale",
		CreatedBy:   suite.userID,
		Lines: []dto.JournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, DebitAmount: decimal.NewFromInt(100)},
			{AccountID: suite.salesAccount.AccountID, CreditAmount: decimal.NewFromInt(100)},
		},
	}
}

// --- CreateJournalEntry ---

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_Success() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.mockJournalRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockJournalRepo.On("CreateEntryInTx", ctx, mock.Anything, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()
	suite.mockJournalRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	entry, err := suite.service.CreateJournalEntry(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.JournalEntryID)
	suite.Equal(suite.businessID, entry.BusinessID)
	suite.False(entry.IsPosted)
	suite.Nil(entry.PostedAt)
	suite.Len(entry.Lines, 2)
	suite.Equal(entry.JournalEntryID, entry.Lines[0].JournalEntryID)
	suite.Equal(suite.userID, entry.CreatedBy)

	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_SingleLineRejected() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines = req.Lines[:1]

	entry, err := suite.service.CreateJournalEntry(ctx, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrStructural)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_NoLinesRejected() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines = nil

	_, err := suite.service.CreateJournalEntry(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrMissingField)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_UnbalancedRejected() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[1].CreditAmount = decimal.NewFromInt(90)

	entry, err := suite.service.CreateJournalEntry(ctx, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrUnbalancedEntry)

	var unbalanced *apperrors.UnbalancedEntryError
	suite.Require().True(errors.As(err, &unbalanced))
	suite.True(unbalanced.TotalDebit.Equal(decimal.NewFromInt(100)))
	suite.True(unbalanced.TotalCredit.Equal(decimal.NewFromInt(90)))

	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_WithinToleranceAccepted() {
	ctx := context.Background()
	req := suite.balancedRequest()
	// 100.00 vs 99.99 differs by exactly the rounding tolerance
	req.Lines[1].CreditAmount = decimal.RequireFromString("99.99")

	suite.mockJournalRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockJournalRepo.On("CreateEntryInTx", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockJournalRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, mock.Anything).Return(nil)

	entry, err := suite.service.CreateJournalEntry(ctx, req)

	suite.Require().NoError(err)
	suite.NotNil(entry)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_BothSidesRejected() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[0].CreditAmount = decimal.NewFromInt(10)

	_, err := suite.service.CreateJournalEntry(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_NegativeAmountRejected() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[0].DebitAmount = decimal.NewFromInt(-100)

	_, err := suite.service.CreateJournalEntry(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_MissingBusinessID() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.BusinessID = ""

	_, err := suite.service.CreateJournalEntry(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrMissingField)

	var missing *apperrors.MissingFieldError
	suite.Require().True(errors.As(err, &missing))
	suite.Equal("businessID", missing.Field)
}

func (suite *JournalServiceTestSuite) TestCreateJournalEntry_PersistFailureRollsBack() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.mockJournalRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockJournalRepo.On("CreateEntryInTx", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("insert failed")).Once()
	suite.mockJournalRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	entry, err := suite.service.CreateJournalEntry(ctx, req)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

// --- PostJournalEntry ---

func (suite *JournalServiceTestSuite) unpostedEntry(entryID string) *domain.JournalEntry {
	return &domain.JournalEntry{
		JournalEntryID: entryID,
		BusinessID:     suite.businessID,
		EntryDate:      time.Now().UTC(),
		IsPosted:       false,
	}
}

func (suite *JournalServiceTestSuite) TestPostJournalEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()

	lines := []domain.JournalLine{
		{JournalLineID: uuid.NewString(), JournalEntryID: entryID, AccountID: suite.cashAccount.AccountID, DebitAmount: decimal.NewFromInt(100), CreditAmount: decimal.Zero},
		{JournalLineID: uuid.NewString(), JournalEntryID: entryID, AccountID: suite.salesAccount.AccountID, DebitAmount: decimal.Zero, CreditAmount: decimal.NewFromInt(100)},
	}
	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID:  suite.cashAccount,
		suite.salesAccount.AccountID: suite.salesAccount,
	}

	suite.mockJournalRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, mock.Anything).Return(nil)
	suite.mockJournalRepo.On("FindEntryByIDForUpdate", ctx, mock.Anything, entryID).Return(suite.unpostedEntry(entryID), nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", ctx, mock.Anything, []string{suite.cashAccount.AccountID, suite.salesAccount.AccountID}).Return(accountsMap, nil).Once()

	// Debit-normal cash gains 100, credit-normal sales gains 100.
	suite.mockAccountRepo.On("IncrementAccountBalancesInTx", ctx, mock.Anything, mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return len(changes) == 2 &&
			changes[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(100)) &&
			changes[suite.salesAccount.AccountID].Equal(decimal.NewFromInt(100))
	}), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockJournalRepo.On("MarkEntryPostedInTx", ctx, mock.Anything, entryID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockJournalRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	posted, err := suite.service.PostJournalEntry(ctx, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(posted)
	suite.True(posted.IsPosted)
	suite.NotNil(posted.PostedAt)
	suite.Len(posted.Lines, 2)

	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockPartyRepo.AssertNotCalled(suite.T(), "IncrementPartyBalancesInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostJournalEntry_DebitOnCreditNormalSubtracts() {
	ctx := context.Background()
	entryID := uuid.NewString()

	// A debit against a credit-normal account moves its balance down.
	lines := []domain.JournalLine{
		{JournalLineID: uuid.NewString(), JournalEntryID: entryID, AccountID: suite.salesAccount.AccountID, DebitAmount: decimal.NewFromInt(40), CreditAmount: decimal.Zero},
		{JournalLineID: uuid.NewString(), JournalEntryID: entryID, AccountID: suite.cashAccount.AccountID, DebitAmount: decimal.Zero, CreditAmount: decimal.NewFromInt(40)},
	}
	accountsMap := map[string]domain.Account{
		suite.cashAccount.AccountID:  suite.cashAccount,
		suite.salesAccount.AccountID: suite.salesAccount,
	}

	suite.mockJournalRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, mock.Anything).Return(nil)
	suite.mockJournalRepo.On("FindEntryByIDForUpdate", ctx, mock.Anything, entryID).Return(suite.unpostedEntry(entryID), nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", ctx, mock.Anything, mock.Anything).Return(accountsMap, nil).Once()

	suite.mockAccountRepo.On("IncrementAccountBalancesInTx", ctx, mock.Anything, mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return changes[suite.salesAccount.AccountID].Equal(decimal.NewFromInt(-40)) &&
			changes[suite.cashAccount.AccountID].Equal(decimal.NewFromInt(-40))
	}), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockJournalRepo.On("MarkEntryPostedInTx", ctx, mock.Anything, entryID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockJournalRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	_, err := suite.service.PostJournalEntry(ctx, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostJournalEntry_PartyBalances() {
	ctx := context.Background()
	entryID := uuid.NewString()

	debtorID := uuid.NewString()
	creditorID := uuid.NewString()
	partiesMap := map[string]domain.Party{
		debtorID:   {PartyID: debtorID, BusinessID: suite.businessID, Name: "Customer", PartyType: domain.Debtor},
		creditorID: {PartyID: creditorID, BusinessID: suite.businessID, Name: "Supplier", PartyType: domain.Creditor},
	}

	receivableAccount := domain.Account{
		AccountID:     uuid.NewString(),
		BusinessID:    suite.businessID,
		AccountTypeID: "ASSET",
		Name:          "Accounts Receivable",
		NormalBalance: domain.NormalDebit,
	}
	payableAccount := domain.Account{
		AccountID:     uuid.NewString(),
		BusinessID:    suite.businessID,
		AccountTypeID: "LIABILITY",
		Name:          "Accounts Payable",
		NormalBalance: domain.NormalCredit,
	}
	accountsMap := map[string]domain.Account{
		receivableAccount.AccountID: receivableAccount,
		payableAccount.AccountID:    payableAccount,
	}

	// Debit 50 against the debtor raises what they owe us; credit 50 against
	// the creditor raises what we owe them.
	lines := []domain.JournalLine{
		{JournalLineID: uuid.NewString(), JournalEntryID: entryID, AccountID: receivableAccount.AccountID, PartyID: &debtorID, DebitAmount: decimal.NewFromInt(50), CreditAmount: decimal.Zero},
		{JournalLineID: uuid.NewString(), JournalEntryID: entryID, AccountID: payableAccount.AccountID, PartyID: &creditorID, DebitAmount: decimal.Zero, CreditAmount: decimal.NewFromInt(50)},
	}

	suite.mockJournalRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, mock.Anything).Return(nil)
	suite.mockJournalRepo.On("FindEntryByIDForUpdate", ctx, mock.Anything, entryID).Return(suite.unpostedEntry(entryID), nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDsForUpdate", ctx, mock.Anything, mock.Anything).Return(accountsMap, nil).Once()
	suite.mockPartyRepo.On("FindPartiesByIDsForUpdate", ctx, mock.Anything, []string{debtorID, creditorID}).Return(partiesMap, nil).Once()

	suite.mockAccountRepo.On("IncrementAccountBalancesInTx", ctx, mock.Anything, mock.Anything, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockPartyRepo.On("IncrementPartyBalancesInTx", ctx, mock.Anything, mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return len(changes) == 2 &&
			changes[debtorID].Equal(decimal.NewFromInt(50)) &&
			changes[creditorID].Equal(decimal.NewFromInt(50))
	}), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockJournalRepo.On("MarkEntryPostedInTx", ctx, mock.Anything, entryID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockJournalRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	_, err := suite.service.PostJournalEntry(ctx, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.mockPartyRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostJournalEntry_AlreadyPosted() {
	ctx := context.Background()
	entryID := uuid.NewString()

	postedAt := time.Now().UTC()
	postedEntry := suite.unpostedEntry(entryID)
	postedEntry.IsPosted = true
	postedEntry.PostedAt = &postedAt

	suite.mockJournalRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, mock.Anything).Return(nil)
	suite.mockJournalRepo.On("FindEntryByIDForUpdate", ctx, mock.Anything, entryID).Return(postedEntry, nil).Once()

	result, err := suite.service.PostJournalEntry(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrAlreadyPosted)

	// No balances may move on a repeated post.
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "IncrementAccountBalancesInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostJournalEntry_UnbalancedStoredLines() {
	ctx := context.Background()
	entryID := uuid.NewString()

	// Lines tampered with after validation must not reach the balances.
	lines := []domain.JournalLine{
		{JournalLineID: uuid.NewString(), JournalEntryID: entryID, AccountID: suite.cashAccount.AccountID, DebitAmount: decimal.NewFromInt(100), CreditAmount: decimal.Zero},
		{JournalLineID: uuid.NewString(), JournalEntryID: entryID, AccountID: suite.salesAccount.AccountID, DebitAmount: decimal.Zero, CreditAmount: decimal.NewFromInt(60)},
	}

	suite.mockJournalRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, mock.Anything).Return(nil)
	suite.mockJournalRepo.On("FindEntryByIDForUpdate", ctx, mock.Anything, entryID).Return(suite.unpostedEntry(entryID), nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()

	_, err := suite.service.PostJournalEntry(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnbalancedEntry)

	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDsForUpdate", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "IncrementAccountBalancesInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostJournalEntry_NotFound() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockJournalRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, mock.Anything).Return(nil)
	suite.mockJournalRepo.On("FindEntryByIDForUpdate", ctx, mock.Anything, entryID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.PostJournalEntry(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestPostJournalEntry_MissingPostedBy() {
	ctx := context.Background()

	_, err := suite.service.PostJournalEntry(ctx, uuid.NewString(), "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrMissingField)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

// --- Reads ---

func (suite *JournalServiceTestSuite) TestGetJournalEntryByID_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := suite.unpostedEntry(entryID)
	lines := []domain.JournalLine{
		{JournalLineID: uuid.NewString(), JournalEntryID: entryID, AccountID: suite.cashAccount.AccountID, DebitAmount: decimal.NewFromInt(10)},
		{JournalLineID: uuid.NewString(), JournalEntryID: entryID, AccountID: suite.salesAccount.AccountID, CreditAmount: decimal.NewFromInt(10)},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()

	result, err := suite.service.GetJournalEntryByID(ctx, suite.businessID, entryID)

	suite.Require().NoError(err)
	suite.Len(result.Lines, 2)
}

func (suite *JournalServiceTestSuite) TestGetJournalEntryByID_WrongBusinessHidden() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := suite.unpostedEntry(entryID)

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()

	result, err := suite.service.GetJournalEntryByID(ctx, uuid.NewString(), entryID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindLinesByEntryID", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestListJournalEntries_PassesToken() {
	ctx := context.Background()
	token := "opaque-token"
	entries := []domain.JournalEntry{*suite.unpostedEntry(uuid.NewString())}

	suite.mockJournalRepo.On("ListEntriesByBusiness", ctx, suite.businessID, 10, &token).Return(entries, "next-token", nil).Once()

	result, nextToken, err := suite.service.ListJournalEntries(ctx, suite.businessID, 10, &token)

	suite.Require().NoError(err)
	suite.Len(result, 1)
	suite.Require().NotNil(nextToken)
	suite.Equal("next-token", *nextToken)
}

func (suite *JournalServiceTestSuite) TestListJournalEntries_DefaultLimit() {
	ctx := context.Background()
	entries := []domain.JournalEntry{}

	suite.mockJournalRepo.On("ListEntriesByBusiness", ctx, suite.businessID, 20, (*string)(nil)).Return(entries, nil, nil).Once()

	_, nextToken, err := suite.service.ListJournalEntries(ctx, suite.businessID, 0, nil)

	suite.Require().NoError(err)
	suite.Nil(nextToken)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
