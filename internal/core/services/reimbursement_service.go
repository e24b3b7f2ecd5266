package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/nexkeep/internal/apperrors"
	"github.com/SscSPs/nexkeep/internal/core/domain"
	portsrepo "github.com/SscSPs/nexkeep/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/nexkeep/internal/core/ports/services"
	"github.com/SscSPs/nexkeep/internal/dto"
	"github.com/SscSPs/nexkeep/internal/platform/metrics"
	"github.com/SscSPs/nexkeep/internal/utils/accounting"
	"github.com/SscSPs/nexkeep/internal/utils/pagination"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// notificationTimeout bounds each email sent after a public submission.
const notificationTimeout = 10 * time.Second

type reimbursementService struct {
	BaseService
	repo       portsrepo.ReimbursementRepositoryFacade
	shareToken portssvc.ShareTokenSvcFacade
	notifier   portssvc.Notifier
	validate   *validator.Validate
}

// NewReimbursementService creates the reimbursement workflow service.
func NewReimbursementService(
	repo portsrepo.ReimbursementRepositoryFacade,
	shareToken portssvc.ShareTokenSvcFacade,
	notifier portssvc.Notifier,
) portssvc.ReimbursementSvcFacade {
	return &reimbursementService{
		repo:       repo,
		shareToken: shareToken,
		notifier:   notifier,
		validate:   validator.New(),
	}
}

var _ portssvc.ReimbursementSvcFacade = (*reimbursementService)(nil)

type requestDraft struct {
	requesterName  string
	requesterEmail *string
	amount         *decimal.Decimal
	description    string
	receiptURL     *string
	ribURL         *string
	notes          *string
}

func (s *reimbursementService) newRequest(userID string, d requestDraft, public bool) (*domain.ReimbursementRequest, error) {
	name := strings.TrimSpace(d.requesterName)
	if name == "" {
		return nil, fmt.Errorf("%w: requesterName is required", apperrors.ErrValidation)
	}
	if err := accounting.ValidatePositiveCents("amount", d.amount); err != nil {
		return nil, err
	}
	description := strings.TrimSpace(d.description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}
	if d.requesterEmail != nil && *d.requesterEmail != "" {
		if err := s.validate.Var(*d.requesterEmail, "email"); err != nil {
			return nil, fmt.Errorf("%w: requesterEmail is not a valid email address", apperrors.ErrValidation)
		}
	}
	return &domain.ReimbursementRequest{
		RequestID:       uuid.NewString(),
		UserID:          userID,
		RequesterName:   name,
		RequesterEmail:  d.requesterEmail,
		Amount:          *d.amount,
		Description:     description,
		ReceiptURL:      d.receiptURL,
		RibURL:          d.ribURL,
		Notes:           d.notes,
		Status:          domain.ReimbursementPending,
		IsPublicRequest: public,
		AuditFields:     domain.NewAuditFields(userID, s.now()),
	}, nil
}

func (s *reimbursementService) CreateRequest(ctx context.Context, userID string, req dto.CreateReimbursementRequest) (*domain.ReimbursementRequest, error) {
	request, err := s.newRequest(userID, requestDraft{
		requesterName:  req.RequesterName,
		requesterEmail: req.RequesterEmail,
		amount:         req.Amount,
		description:    req.Description,
		receiptURL:     req.ReceiptURL,
		ribURL:         req.RibURL,
		notes:          req.Notes,
	}, false)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveRequest(ctx, *request); err != nil {
		s.LogError(ctx, err, "Failed to save reimbursement request", slog.String("user_id", userID))
		return nil, err
	}
	s.LogInfo(ctx, "Reimbursement request created", slog.String("request_id", request.RequestID))
	return request, nil
}

func (s *reimbursementService) SubmitPublicRequest(ctx context.Context, req dto.PublicReimbursementRequest) (*domain.ReimbursementRequest, error) {
	email := strings.TrimSpace(req.RequesterEmail)
	if email == "" {
		return nil, fmt.Errorf("%w: requesterEmail is required", apperrors.ErrValidation)
	}
	owner, err := s.shareToken.ResolveShareToken(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	request, err := s.newRequest(owner.UserID, requestDraft{
		requesterName:  req.RequesterName,
		requesterEmail: &email,
		amount:         req.Amount,
		description:    req.Description,
		receiptURL:     req.ReceiptURL,
		ribURL:         req.RibURL,
		notes:          req.Notes,
	}, true)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveRequest(ctx, *request); err != nil {
		s.LogError(ctx, err, "Failed to save public reimbursement request", slog.String("owner_id", owner.UserID))
		return nil, err
	}
	s.LogInfo(ctx, "Public reimbursement request submitted",
		slog.String("request_id", request.RequestID),
		slog.String("owner_id", owner.UserID))

	s.notify(ctx, domain.ReimbursementNotice{
		RequestID:      request.RequestID,
		RequesterName:  request.RequesterName,
		RequesterEmail: email,
		OwnerEmail:     owner.Email,
		Amount:         request.Amount,
		Description:    request.Description,
		SubmittedAt:    request.CreatedAt,
	})
	return request, nil
}

// notify sends both emails of a public submission. Failures are logged and counted, never returned:
// the request is already stored.
func (s *reimbursementService) notify(ctx context.Context, notice domain.ReimbursementNotice) {
	if s.notifier == nil {
		metrics.NotificationsSent.WithLabelValues("requester_confirmation", "skipped").Inc()
		metrics.NotificationsSent.WithLabelValues("owner_notification", "skipped").Inc()
		return
	}
	// The emails must go out even if the client disconnects.
	base := context.WithoutCancel(ctx)

	send := func(kind string, fn func(context.Context, domain.ReimbursementNotice) error) {
		sendCtx, cancel := context.WithTimeout(base, notificationTimeout)
		defer cancel()
		if err := fn(sendCtx, notice); err != nil {
			metrics.NotificationsSent.WithLabelValues(kind, "failed").Inc()
			s.LogError(ctx, err, "Failed to send reimbursement email",
				slog.String("kind", kind), slog.String("request_id", notice.RequestID))
			return
		}
		metrics.NotificationsSent.WithLabelValues(kind, "sent").Inc()
	}
	send("requester_confirmation", s.notifier.SendReimbursementConfirmation)
	if notice.OwnerEmail != "" {
		send("owner_notification", s.notifier.SendOwnerNotification)
	}
}

func (s *reimbursementService) GetRequest(ctx context.Context, userID, requestID string) (*domain.ReimbursementRequest, error) {
	request, err := s.repo.FindRequestByID(ctx, userID, requestID)
	if err != nil {
		s.logUnlessExpected(ctx, err, "Failed to find reimbursement request", slog.String("request_id", requestID))
		return nil, err
	}
	return request, nil
}

func (s *reimbursementService) ListRequests(ctx context.Context, userID string, params dto.ListReimbursementsParams) (*dto.ListReimbursementsResponse, error) {
	filter := portsrepo.ReimbursementFilter{}
	if params.Status != "" && params.Status != "all" {
		status := domain.ReimbursementStatus(params.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, params.Status)
		}
		filter.Status = status
	}
	page := pagination.Normalize(params.Page, params.Limit)
	filter.Limit = page.Limit
	filter.Offset = page.Offset()

	requests, total, err := s.repo.ListRequests(ctx, userID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list reimbursement requests", slog.String("user_id", userID))
		return nil, err
	}
	if requests == nil {
		requests = []domain.ReimbursementRequest{}
	}
	return &dto.ListReimbursementsResponse{
		Requests: requests,
		Pagination: dto.PageInfo{
			Page:       page.Page,
			Limit:      page.Limit,
			Total:      total,
			TotalPages: page.TotalPages(total),
		},
	}, nil
}

func (s *reimbursementService) UpdateRequest(ctx context.Context, userID, requestID string, req dto.UpdateReimbursementRequest) (*domain.ReimbursementRequest, error) {
	request, err := s.GetRequest(ctx, userID, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status == domain.ReimbursementPaid {
		return nil, fmt.Errorf("%w: a paid request can no longer be edited", apperrors.ErrConflict)
	}

	if req.Status != nil && *req.Status != "" {
		next := domain.ReimbursementStatus(*req.Status)
		if !next.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, *req.Status)
		}
		// Paying has side effects and must go through PayRequest.
		if next == domain.ReimbursementPaid {
			return nil, fmt.Errorf("%w: use the pay operation to mark a request as paid", apperrors.ErrValidation)
		}
		if !request.Status.CanTransitionTo(next) {
			return nil, fmt.Errorf("%w: cannot move a request from %s to %s", apperrors.ErrConflict, request.Status, next)
		}
		request.Status = next
	}
	if req.RequesterName != nil {
		name := strings.TrimSpace(*req.RequesterName)
		if name == "" {
			return nil, fmt.Errorf("%w: requesterName must not be empty", apperrors.ErrValidation)
		}
		request.RequesterName = name
	}
	if req.RequesterEmail != nil {
		if *req.RequesterEmail != "" {
			if err := s.validate.Var(*req.RequesterEmail, "email"); err != nil {
				return nil, fmt.Errorf("%w: requesterEmail is not a valid email address", apperrors.ErrValidation)
			}
		}
		request.RequesterEmail = req.RequesterEmail
	}
	if req.Amount != nil {
		if err := accounting.ValidatePositiveCents("amount", req.Amount); err != nil {
			return nil, err
		}
		request.Amount = *req.Amount
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, fmt.Errorf("%w: description must not be empty", apperrors.ErrValidation)
		}
		request.Description = description
	}
	if req.ReceiptURL != nil {
		request.ReceiptURL = req.ReceiptURL
	}
	if req.RibURL != nil {
		request.RibURL = req.RibURL
	}
	if req.Notes != nil {
		request.Notes = req.Notes
	}
	request.Touch(userID, s.now())

	if err := s.repo.UpdateRequest(ctx, *request); err != nil {
		s.logUnlessExpected(ctx, err, "Failed to update reimbursement request", slog.String("request_id", requestID))
		return nil, err
	}
	return request, nil
}

func (s *reimbursementService) DeleteRequest(ctx context.Context, userID, requestID string) error {
	if err := s.repo.DeleteRequest(ctx, userID, requestID); err != nil {
		s.logUnlessExpected(ctx, err, "Failed to delete reimbursement request", slog.String("request_id", requestID))
		return err
	}
	s.LogInfo(ctx, "Reimbursement request deleted", slog.String("request_id", requestID))
	return nil
}

func (s *reimbursementService) PayRequest(ctx context.Context, userID, requestID string, req dto.PayReimbursementRequest) (*domain.PaymentOutcome, error) {
	if err := accounting.ValidatePositiveCents("amount", req.Amount); err != nil {
		return nil, err
	}
	method := domain.PaymentMethod(req.Method)
	if !method.IsValid() {
		return nil, fmt.Errorf("%w: method must be transfer, cash or check", apperrors.ErrValidation)
	}

	request, err := s.GetRequest(ctx, userID, requestID)
	if err != nil {
		return nil, err
	}
	// Checked again under lock by the repository.
	if !request.Status.CanBePaid() {
		return nil, fmt.Errorf("%w: request is already %s", apperrors.ErrConflict, request.Status)
	}

	now := s.now()
	paymentID := uuid.NewString()
	transactionID := uuid.NewString()
	category := domain.ReimbursementCategory
	description := fmt.Sprintf("Remboursement à %s : %s", request.RequesterName, request.Description)

	txnDate := now
	if req.TransferDate != nil && !req.TransferDate.IsZero() {
		txnDate = *req.TransferDate
	}

	payment := domain.Reimbursement{
		ReimbursementID: paymentID,
		RequestID:       request.RequestID,
		UserID:          userID,
		Amount:          *req.Amount,
		Method:          method,
		TransferDate:    req.TransferDate,
		Reference:       req.Reference,
		Notes:           req.Notes,
		TransactionID:   transactionID,
		CreatedAt:       now,
	}
	expense := domain.Transaction{
		TransactionID:   transactionID,
		UserID:          userID,
		Name:            "Remboursement - " + request.RequesterName,
		Amount:          *req.Amount,
		Type:            domain.Expense,
		Description:     &description,
		Category:        &category,
		Date:            txnDate,
		ReimbursementID: &paymentID,
		AuditFields:     domain.NewAuditFields(userID, now),
	}

	outcome, err := s.repo.RecordPayment(ctx, payment, expense)
	if err != nil {
		s.logUnlessExpected(ctx, err, "Failed to record reimbursement payment", slog.String("request_id", requestID))
		return nil, err
	}
	metrics.ReimbursementsPaid.Inc()
	s.LogInfo(ctx, "Reimbursement paid",
		slog.String("request_id", requestID),
		slog.String("amount", payment.Amount.String()),
		slog.String("method", string(method)),
		slog.String("new_budget", outcome.NewBudget.String()))
	return outcome, nil
}
