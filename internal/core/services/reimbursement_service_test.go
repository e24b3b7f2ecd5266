package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/nexkeep/internal/apperrors"
	"github.com/SscSPs/nexkeep/internal/core/domain"
	portsrepo "github.com/SscSPs/nexkeep/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/nexkeep/internal/core/ports/services"
	"github.com/SscSPs/nexkeep/internal/core/services"
	"github.com/SscSPs/nexkeep/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReimbursementServiceTestSuite struct {
	suite.Suite
	repo     *MockReimbursementRepository
	users    *MockUserRepository
	notifier *MockNotifier
	service  portssvc.ReimbursementSvcFacade
	ctx      context.Context
}

func (suite *ReimbursementServiceTestSuite) SetupTest() {
	suite.repo = new(MockReimbursementRepository)
	suite.users = new(MockUserRepository)
	suite.notifier = new(MockNotifier)
	shareTokens := services.NewShareTokenService(suite.users, "https://app.example.com")
	suite.service = services.NewReimbursementService(suite.repo, shareTokens, suite.notifier)
	suite.ctx = context.Background()
}

func (suite *ReimbursementServiceTestSuite) TestCreateRequest() {
	suite.repo.On("SaveRequest", suite.ctx, mock.MatchedBy(func(r domain.ReimbursementRequest) bool {
		return r.UserID == "u1" && r.Status == domain.ReimbursementPending && !r.IsPublicRequest && r.RequesterEmail == nil
	})).Return(nil).Once()

	req, err := suite.service.CreateRequest(suite.ctx, "u1", dto.CreateReimbursementRequest{
		RequesterName: "Alice", Amount: amount("12.40"), Description: "Billets de train",
	})

	suite.Require().NoError(err)
	suite.Equal(domain.ReimbursementPending, req.Status)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *ReimbursementServiceTestSuite) TestCreateRequest_Validation() {
	cases := []dto.CreateReimbursementRequest{
		{RequesterName: "", Amount: amount("1"), Description: "x"},
		{RequesterName: "A", Amount: amount("0"), Description: "x"},
		{RequesterName: "A", Amount: amount("-3"), Description: "x"},
		{RequesterName: "A", Amount: amount("3"), Description: " "},
	}
	for _, c := range cases {
		_, err := suite.service.CreateRequest(suite.ctx, "u1", c)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
	suite.repo.AssertNotCalled(suite.T(), "SaveRequest", mock.Anything, mock.Anything)
}

func (suite *ReimbursementServiceTestSuite) TestSubmitPublicRequest_NotificationsDoNotAbort() {
	suite.users.On("FindUserByShareToken", suite.ctx, "tok").Return(&domain.User{UserID: "u1", Email: "owner@example.com"}, nil).Once()
	suite.repo.On("SaveRequest", suite.ctx, mock.MatchedBy(func(r domain.ReimbursementRequest) bool {
		return r.UserID == "u1" && r.IsPublicRequest && r.Status == domain.ReimbursementPending &&
			r.Amount.Equal(decimal.RequireFromString("42.00")) && *r.RequesterEmail == "a@b.com"
	})).Return(nil).Once()
	suite.notifier.On("SendReimbursementConfirmation", mock.Anything, mock.MatchedBy(func(n domain.ReimbursementNotice) bool {
		return n.RequesterEmail == "a@b.com" && n.OwnerEmail == "owner@example.com"
	})).Return(errors.New("smtp down")).Once()
	suite.notifier.On("SendOwnerNotification", mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()

	req, err := suite.service.SubmitPublicRequest(suite.ctx, dto.PublicReimbursementRequest{
		Token: "tok", RequesterName: "Bob", RequesterEmail: "a@b.com", Amount: amount("42.00"), Description: "Matériel",
	})

	suite.Require().NoError(err)
	suite.True(req.IsPublicRequest)
	suite.Equal("u1", req.UserID)
	suite.Equal(domain.ReimbursementPending, req.Status)
	suite.notifier.AssertExpectations(suite.T())
}

func (suite *ReimbursementServiceTestSuite) TestSubmitPublicRequest_UnknownToken() {
	suite.users.On("FindUserByShareToken", suite.ctx, "stale").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.SubmitPublicRequest(suite.ctx, dto.PublicReimbursementRequest{
		Token: "stale", RequesterName: "Bob", RequesterEmail: "a@b.com", Amount: amount("1"), Description: "x",
	})

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.repo.AssertNotCalled(suite.T(), "SaveRequest", mock.Anything, mock.Anything)
}

func (suite *ReimbursementServiceTestSuite) TestSubmitPublicRequest_BadEmail() {
	suite.users.On("FindUserByShareToken", suite.ctx, "tok").Return(&domain.User{UserID: "u1"}, nil)

	_, err := suite.service.SubmitPublicRequest(suite.ctx, dto.PublicReimbursementRequest{
		Token: "tok", RequesterName: "Bob", RequesterEmail: "not-an-email", Amount: amount("1"), Description: "x",
	})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.SubmitPublicRequest(suite.ctx, dto.PublicReimbursementRequest{
		Token: "tok", RequesterName: "Bob", Amount: amount("1"), Description: "x",
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReimbursementServiceTestSuite) TestPayRequest_Scenario() {
	pending := &domain.ReimbursementRequest{
		RequestID: "r1", UserID: "u1", RequesterName: "Bob", Amount: dec("42.00"),
		Description: "Matériel", Status: domain.ReimbursementPending,
	}
	suite.repo.On("FindRequestByID", suite.ctx, "u1", "r1").Return(pending, nil).Once()

	outcome := &domain.PaymentOutcome{}
	suite.repo.On("RecordPayment", suite.ctx,
		mock.MatchedBy(func(p domain.Reimbursement) bool {
			return p.RequestID == "r1" && p.Method == domain.PaymentTransfer && p.Amount.Equal(dec("42"))
		}),
		mock.MatchedBy(func(t domain.Transaction) bool {
			return t.Type == domain.Expense && t.SignedAmount().Equal(dec("-42.00")) &&
				*t.Category == domain.ReimbursementCategory && t.ReimbursementID != nil
		}),
	).Run(func(args mock.Arguments) {
		payment := args.Get(1).(domain.Reimbursement)
		expense := args.Get(2).(domain.Transaction)
		paid := *pending
		paid.Status = domain.ReimbursementPaid
		*outcome = domain.PaymentOutcome{Reimbursement: payment, Request: paid, Transaction: expense, NewBudget: dec("58")}
	}).Return(outcome, nil).Once()

	result, err := suite.service.PayRequest(suite.ctx, "u1", "r1", dto.PayReimbursementRequest{Amount: amount("42.00"), Method: "transfer"})

	suite.Require().NoError(err)
	suite.Equal(domain.ReimbursementPaid, result.Request.Status)
	suite.Equal(result.Reimbursement.TransactionID, result.Transaction.TransactionID)
	suite.Equal(result.Reimbursement.ReimbursementID, *result.Transaction.ReimbursementID)
	suite.True(result.Transaction.SignedAmount().Equal(dec("-42")))
	suite.True(result.NewBudget.Equal(dec("58")))
	suite.repo.AssertExpectations(suite.T())
}

func (suite *ReimbursementServiceTestSuite) TestPayRequest_RejectsSecondPayment() {
	suite.repo.On("FindRequestByID", suite.ctx, "u1", "r1").
		Return(&domain.ReimbursementRequest{RequestID: "r1", UserID: "u1", Status: domain.ReimbursementPaid}, nil).Once()

	_, err := suite.service.PayRequest(suite.ctx, "u1", "r1", dto.PayReimbursementRequest{Amount: amount("1"), Method: "cash"})

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.repo.AssertNotCalled(suite.T(), "RecordPayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReimbursementServiceTestSuite) TestPayRequest_Validation() {
	_, err := suite.service.PayRequest(suite.ctx, "u1", "r1", dto.PayReimbursementRequest{Amount: amount("0"), Method: "cash"})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.PayRequest(suite.ctx, "u1", "r1", dto.PayReimbursementRequest{Amount: amount("5"), Method: "paypal"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReimbursementServiceTestSuite) TestSubCentAmountsAreRejected() {
	for _, raw := range []string{"0.001", "10.005"} {
		_, err := suite.service.CreateRequest(suite.ctx, "u1", dto.CreateReimbursementRequest{
			RequesterName: "Alice", Amount: amount(raw), Description: "Taxi",
		})
		suite.ErrorIs(err, apperrors.ErrValidation, raw)

		_, err = suite.service.PayRequest(suite.ctx, "u1", "r1", dto.PayReimbursementRequest{Amount: amount(raw), Method: "cash"})
		suite.ErrorIs(err, apperrors.ErrValidation, raw)
	}

	suite.repo.On("FindRequestByID", suite.ctx, "u1", "r2").
		Return(&domain.ReimbursementRequest{RequestID: "r2", Amount: dec("5"), Status: domain.ReimbursementPending}, nil).Once()
	_, err := suite.service.UpdateRequest(suite.ctx, "u1", "r2", dto.UpdateReimbursementRequest{Amount: amount("9.999")})
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.repo.AssertNotCalled(suite.T(), "SaveRequest", mock.Anything, mock.Anything)
	suite.repo.AssertNotCalled(suite.T(), "UpdateRequest", mock.Anything, mock.Anything)
	suite.repo.AssertNotCalled(suite.T(), "RecordPayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReimbursementServiceTestSuite) TestUpdateRequest_StatusRules() {
	status := func(s string) *string { return &s }

	suite.repo.On("FindRequestByID", suite.ctx, "u1", "pending").
		Return(&domain.ReimbursementRequest{RequestID: "pending", Status: domain.ReimbursementPending}, nil)
	suite.repo.On("FindRequestByID", suite.ctx, "u1", "rejected").
		Return(&domain.ReimbursementRequest{RequestID: "rejected", Status: domain.ReimbursementRejected}, nil)
	suite.repo.On("FindRequestByID", suite.ctx, "u1", "paid").
		Return(&domain.ReimbursementRequest{RequestID: "paid", Status: domain.ReimbursementPaid}, nil)
	suite.repo.On("UpdateRequest", suite.ctx, mock.Anything).Return(nil)

	_, err := suite.service.UpdateRequest(suite.ctx, "u1", "pending", dto.UpdateReimbursementRequest{Status: status("paid")})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.UpdateRequest(suite.ctx, "u1", "rejected", dto.UpdateReimbursementRequest{Status: status("approved")})
	suite.ErrorIs(err, apperrors.ErrConflict)

	_, err = suite.service.UpdateRequest(suite.ctx, "u1", "paid", dto.UpdateReimbursementRequest{Notes: status("late edit")})
	suite.ErrorIs(err, apperrors.ErrConflict)

	updated, err := suite.service.UpdateRequest(suite.ctx, "u1", "pending", dto.UpdateReimbursementRequest{Status: status("approved"), Amount: amount("9.5")})
	suite.Require().NoError(err)
	suite.Equal(domain.ReimbursementApproved, updated.Status)
	suite.True(updated.Amount.Equal(dec("9.5")))
}

func (suite *ReimbursementServiceTestSuite) TestListRequests_Pagination() {
	suite.repo.On("ListRequests", suite.ctx, "u1", portsrepo.ReimbursementFilter{Status: domain.ReimbursementPending, Limit: 10, Offset: 10}).
		Return([]domain.ReimbursementRequest{{RequestID: "r11"}}, 11, nil).Once()

	resp, err := suite.service.ListRequests(suite.ctx, "u1", dto.ListReimbursementsParams{Status: "pending", Page: 2, Limit: 10})

	suite.Require().NoError(err)
	suite.Len(resp.Requests, 1)
	suite.Equal(dto.PageInfo{Page: 2, Limit: 10, Total: 11, TotalPages: 2}, resp.Pagination)
}

func (suite *ReimbursementServiceTestSuite) TestDeleteRequest_WithPayments() {
	suite.repo.On("DeleteRequest", suite.ctx, "u1", "r1").Return(apperrors.ErrConflict).Once()

	suite.ErrorIs(suite.service.DeleteRequest(suite.ctx, "u1", "r1"), apperrors.ErrConflict)
}

func (suite *ReimbursementServiceTestSuite) TestNotificationTimeoutIsBounded() {
	suite.users.On("FindUserByShareToken", suite.ctx, "tok").Return(&domain.User{UserID: "u1"}, nil).Once()
	suite.repo.On("SaveRequest", suite.ctx, mock.Anything).Return(nil).Once()
	suite.notifier.On("SendReimbursementConfirmation", mock.MatchedBy(func(ctx context.Context) bool {
		deadline, ok := ctx.Deadline()
		return ok && time.Until(deadline) <= 10*time.Second
	}), mock.Anything).Return(nil).Once()

	_, err := suite.service.SubmitPublicRequest(suite.ctx, dto.PublicReimbursementRequest{
		Token: "tok", RequesterName: "Bob", RequesterEmail: "a@b.com", Amount: amount("1"), Description: "x",
	})

	suite.Require().NoError(err)
	// The owner has no email address, so only the confirmation goes out.
	suite.notifier.AssertNotCalled(suite.T(), "SendOwnerNotification", mock.Anything, mock.Anything)
	suite.notifier.AssertExpectations(suite.T())
}

func TestReimbursementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReimbursementServiceTestSuite))
}
