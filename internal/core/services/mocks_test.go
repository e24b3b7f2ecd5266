package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/nexkeep/internal/core/domain"
	portsrepo "github.com/SscSPs/nexkeep/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Users ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByProvider(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, provider, providerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, userID string, passwordHash string) error {
	return m.Called(ctx, userID, passwordHash).Error(0)
}

func (m *MockUserRepository) LinkProvider(ctx context.Context, userID string, provider domain.AuthProvider, providerUserID string, emailVerified bool) error {
	return m.Called(ctx, userID, provider, providerUserID, emailVerified).Error(0)
}

func (m *MockUserRepository) EnsureShareToken(ctx context.Context, userID string, candidate string) (string, error) {
	args := m.Called(ctx, userID, candidate)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) ReplaceShareToken(ctx context.Context, userID string, token string) error {
	return m.Called(ctx, userID, token).Error(0)
}

func (m *MockUserRepository) FindUserByShareToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Ledger ---

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) GetBudget(ctx context.Context, userID string) (*domain.Budget, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockLedgerRepository) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (decimal.Decimal, error) {
	args := m.Called(ctx, txn)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) DeleteTransaction(ctx context.Context, userID, transactionID string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, transactionID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) UpdateBudgetInitial(ctx context.Context, userID string, budgetInitial decimal.Decimal, updatedAt time.Time) (*domain.Budget, error) {
	args := m.Called(ctx, userID, budgetInitial, updatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

// --- Categories ---

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) InsertMissingCategories(ctx context.Context, categories []domain.Category) (int, error) {
	args := m.Called(ctx, categories)
	return args.Int(0), args.Error(1)
}

func (m *MockCategoryRepository) CountTransactionsInCategory(ctx context.Context, name string) (int, error) {
	args := m.Called(ctx, name)
	return args.Int(0), args.Error(1)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	return m.Called(ctx, categoryID).Error(0)
}

// --- Directory ---

type MockDirectoryRepository struct {
	mock.Mock
}

func (m *MockDirectoryRepository) SaveOrganisation(ctx context.Context, org domain.Organisation) error {
	return m.Called(ctx, org).Error(0)
}

func (m *MockDirectoryRepository) FindOrganisationByID(ctx context.Context, userID, organisationID string) (*domain.Organisation, error) {
	args := m.Called(ctx, userID, organisationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organisation), args.Error(1)
}

func (m *MockDirectoryRepository) ListOrganisations(ctx context.Context, userID string) ([]domain.Organisation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Organisation), args.Error(1)
}

func (m *MockDirectoryRepository) UpdateOrganisation(ctx context.Context, org domain.Organisation) error {
	return m.Called(ctx, org).Error(0)
}

func (m *MockDirectoryRepository) DeleteOrganisation(ctx context.Context, userID, organisationID string) error {
	return m.Called(ctx, userID, organisationID).Error(0)
}

func (m *MockDirectoryRepository) SaveClient(ctx context.Context, client domain.Client) error {
	return m.Called(ctx, client).Error(0)
}

func (m *MockDirectoryRepository) FindClientByID(ctx context.Context, userID, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, userID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockDirectoryRepository) ListClients(ctx context.Context, userID string) ([]domain.Client, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockDirectoryRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	return m.Called(ctx, client).Error(0)
}

func (m *MockDirectoryRepository) DeleteClient(ctx context.Context, userID, clientID string) error {
	return m.Called(ctx, userID, clientID).Error(0)
}

func (m *MockDirectoryRepository) SaveArticle(ctx context.Context, article domain.Article) error {
	return m.Called(ctx, article).Error(0)
}

func (m *MockDirectoryRepository) FindArticleByID(ctx context.Context, userID, articleID string) (*domain.Article, error) {
	args := m.Called(ctx, userID, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockDirectoryRepository) FindArticlesByIDs(ctx context.Context, userID string, articleIDs []string) (map[string]domain.Article, error) {
	args := m.Called(ctx, userID, articleIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Article), args.Error(1)
}

func (m *MockDirectoryRepository) ListArticles(ctx context.Context, userID string, includeInactive bool) ([]domain.Article, error) {
	args := m.Called(ctx, userID, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Article), args.Error(1)
}

func (m *MockDirectoryRepository) UpdateArticle(ctx context.Context, article domain.Article) error {
	return m.Called(ctx, article).Error(0)
}

func (m *MockDirectoryRepository) DeleteArticle(ctx context.Context, userID, articleID string) error {
	return m.Called(ctx, userID, articleID).Error(0)
}

// --- Invoices ---

// MockInvoiceRepository runs the allocator it is given against LastNumber, like the
// database implementation does under its advisory lock.
type MockInvoiceRepository struct {
	mock.Mock
	LastNumber *string
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, userID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, userID string, status domain.InvoiceStatus) ([]domain.Invoice, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindLatestInvoiceNumber(ctx context.Context, userID string) (*string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

func (m *MockInvoiceRepository) CreateInvoice(ctx context.Context, inv domain.Invoice, allocate portsrepo.NumberAllocator) (*domain.Invoice, error) {
	args := m.Called(ctx, inv)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	number, err := allocate(m.LastNumber)
	if err != nil {
		return nil, err
	}
	inv.Number = number
	m.LastNumber = &number
	return &inv, nil
}

func (m *MockInvoiceRepository) UpdateInvoice(ctx context.Context, inv domain.Invoice, replaceItems bool) error {
	return m.Called(ctx, inv, replaceItems).Error(0)
}

func (m *MockInvoiceRepository) DeleteInvoice(ctx context.Context, userID, invoiceID string) error {
	return m.Called(ctx, userID, invoiceID).Error(0)
}

type MockInvoiceRenderer struct {
	mock.Mock
}

func (m *MockInvoiceRenderer) Render(doc domain.InvoiceDocument) ([]byte, error) {
	args := m.Called(doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// --- Reimbursements ---

type MockReimbursementRepository struct {
	mock.Mock
}

func (m *MockReimbursementRepository) FindRequestByID(ctx context.Context, userID, requestID string) (*domain.ReimbursementRequest, error) {
	args := m.Called(ctx, userID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReimbursementRequest), args.Error(1)
}

func (m *MockReimbursementRepository) ListRequests(ctx context.Context, userID string, filter portsrepo.ReimbursementFilter) ([]domain.ReimbursementRequest, int, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ReimbursementRequest), args.Int(1), args.Error(2)
}

func (m *MockReimbursementRepository) SaveRequest(ctx context.Context, req domain.ReimbursementRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockReimbursementRepository) UpdateRequest(ctx context.Context, req domain.ReimbursementRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockReimbursementRepository) DeleteRequest(ctx context.Context, userID, requestID string) error {
	return m.Called(ctx, userID, requestID).Error(0)
}

func (m *MockReimbursementRepository) RecordPayment(ctx context.Context, payment domain.Reimbursement, expense domain.Transaction) (*domain.PaymentOutcome, error) {
	args := m.Called(ctx, payment, expense)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentOutcome), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendReimbursementConfirmation(ctx context.Context, notice domain.ReimbursementNotice) error {
	return m.Called(ctx, notice).Error(0)
}

func (m *MockNotifier) SendOwnerNotification(ctx context.Context, notice domain.ReimbursementNotice) error {
	return m.Called(ctx, notice).Error(0)
}

type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, key, contentType, data)
	return args.String(0), args.Error(1)
}
