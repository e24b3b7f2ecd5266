package services

import (
	"context"

	"github.com/SscSPs/nexkeep/internal/core/domain"
	"github.com/SscSPs/nexkeep/internal/dto"
)

// ReimbursementSvcFacade runs the reimbursement workflow.
type ReimbursementSvcFacade interface {
	CreateRequest(ctx context.Context, userID string, req dto.CreateReimbursementRequest) (*domain.ReimbursementRequest, error)
	// SubmitPublicRequest files a request on behalf of the owner of req.Token and notifies both parties.
	SubmitPublicRequest(ctx context.Context, req dto.PublicReimbursementRequest) (*domain.ReimbursementRequest, error)
	GetRequest(ctx context.Context, userID, requestID string) (*domain.ReimbursementRequest, error)
	ListRequests(ctx context.Context, userID string, params dto.ListReimbursementsParams) (*dto.ListReimbursementsResponse, error)
	UpdateRequest(ctx context.Context, userID, requestID string, req dto.UpdateReimbursementRequest) (*domain.ReimbursementRequest, error)
	DeleteRequest(ctx context.Context, userID, requestID string) error
	PayRequest(ctx context.Context, userID, requestID string, req dto.PayReimbursementRequest) (*domain.PaymentOutcome, error)
}

// UploadSvcFacade stores receipts and bank details documents.
type UploadSvcFacade interface {
	Upload(ctx context.Context, fileName string, data []byte) (*domain.StoredFile, error)
}
