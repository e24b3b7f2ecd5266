package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/nexkeep/internal/core/domain"
	portssvc "github.com/SscSPs/nexkeep/internal/core/ports/services"
	"github.com/SscSPs/nexkeep/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) CreateOAuthUser(ctx context.Context, identity portssvc.GoogleIdentity) (*domain.User, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	return m.Called(ctx, userID, req).Error(0)
}
func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Mock GoogleOAuthService ---
type MockGoogleOAuthService struct {
	mock.Mock
}

func (m *MockGoogleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return m.Called(ctx, state).String(0)
}
func (m *MockGoogleOAuthService) ExchangeCode(ctx context.Context, code string) (*portssvc.GoogleIdentity, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.GoogleIdentity), args.Error(1)
}

var _ portssvc.GoogleOAuthSvcFacade = (*MockGoogleOAuthService)(nil)

// --- Mock ShareTokenService ---
type MockShareTokenService struct {
	mock.Mock
}

func (m *MockShareTokenService) GetOrCreateShareToken(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}
func (m *MockShareTokenService) RegenerateShareToken(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}
func (m *MockShareTokenService) ResolveShareToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockShareTokenService) ShareURL(token string) string {
	return "https://app.test/remboursement/" + token
}

var _ portssvc.ShareTokenSvcFacade = (*MockShareTokenService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetBudget(ctx context.Context, userID string) (*domain.Budget, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}
func (m *MockLedgerService) UpdateBudgetInitial(ctx context.Context, userID string, budgetInitial decimal.Decimal) (*domain.Budget, error) {
	args := m.Called(ctx, userID, budgetInitial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}
func (m *MockLedgerService) ApplyTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, decimal.Decimal, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, decimal.Zero, args.Error(2)
	}
	return args.Get(0).(*domain.Transaction), args.Get(1).(decimal.Decimal), args.Error(2)
}
func (m *MockLedgerService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}
func (m *MockLedgerService) DeleteTransaction(ctx context.Context, userID, transactionID string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, transactionID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock InvoiceService ---
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) BuildInvoice(ctx context.Context, userID string, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) UpdateInvoice(ctx context.Context, userID, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error) {
	args := m.Called(ctx, userID, invoiceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) GetInvoice(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, userID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) ListInvoices(ctx context.Context, userID string, params dto.ListInvoicesParams) ([]domain.Invoice, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}
func (m *MockInvoiceService) DeleteInvoice(ctx context.Context, userID, invoiceID string) error {
	return m.Called(ctx, userID, invoiceID).Error(0)
}
func (m *MockInvoiceService) NextInvoiceNumber(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}
func (m *MockInvoiceService) RenderInvoicePDF(ctx context.Context, userID, invoiceID string) ([]byte, string, error) {
	args := m.Called(ctx, userID, invoiceID)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

var _ portssvc.InvoiceSvcFacade = (*MockInvoiceService)(nil)

// --- Mock ReimbursementService ---
type MockReimbursementService struct {
	mock.Mock
}

func (m *MockReimbursementService) CreateRequest(ctx context.Context, userID string, req dto.CreateReimbursementRequest) (*domain.ReimbursementRequest, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReimbursementRequest), args.Error(1)
}
func (m *MockReimbursementService) SubmitPublicRequest(ctx context.Context, req dto.PublicReimbursementRequest) (*domain.ReimbursementRequest, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReimbursementRequest), args.Error(1)
}
func (m *MockReimbursementService) GetRequest(ctx context.Context, userID, requestID string) (*domain.ReimbursementRequest, error) {
	args := m.Called(ctx, userID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReimbursementRequest), args.Error(1)
}
func (m *MockReimbursementService) ListRequests(ctx context.Context, userID string, params dto.ListReimbursementsParams) (*dto.ListReimbursementsResponse, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListReimbursementsResponse), args.Error(1)
}
func (m *MockReimbursementService) UpdateRequest(ctx context.Context, userID, requestID string, req dto.UpdateReimbursementRequest) (*domain.ReimbursementRequest, error) {
	args := m.Called(ctx, userID, requestID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReimbursementRequest), args.Error(1)
}
func (m *MockReimbursementService) DeleteRequest(ctx context.Context, userID, requestID string) error {
	return m.Called(ctx, userID, requestID).Error(0)
}
func (m *MockReimbursementService) PayRequest(ctx context.Context, userID, requestID string, req dto.PayReimbursementRequest) (*domain.PaymentOutcome, error) {
	args := m.Called(ctx, userID, requestID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentOutcome), args.Error(1)
}

var _ portssvc.ReimbursementSvcFacade = (*MockReimbursementService)(nil)

// --- Mock UploadService ---
type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) Upload(ctx context.Context, fileName string, data []byte) (*domain.StoredFile, error) {
	args := m.Called(ctx, fileName, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoredFile), args.Error(1)
}

var _ portssvc.UploadSvcFacade = (*MockUploadService)(nil)
