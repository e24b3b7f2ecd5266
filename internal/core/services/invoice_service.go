package services

import (
	"context"
	"errors"
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
	"github.com/SscSPs/nexkeep/internal/utils/numbering"
	"github.com/google/uuid"
)

// maxNumberAttempts bounds invoice creation retries after a number collision.
const maxNumberAttempts = 3

// InvoiceSettings configures numbering and due dates.
type InvoiceSettings struct {
	NumberPrefix string
	DueDays      int
}

type invoiceService struct {
	BaseService
	invoiceRepo   portsrepo.InvoiceRepositoryFacade
	directoryRepo portsrepo.DirectoryRepositoryFacade
	renderer      portssvc.InvoiceRenderer
	settings      InvoiceSettings
}

// NewInvoiceService creates the invoice service.
func NewInvoiceService(
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	directoryRepo portsrepo.DirectoryRepositoryFacade,
	renderer portssvc.InvoiceRenderer,
	settings InvoiceSettings,
) portssvc.InvoiceSvcFacade {
	if settings.NumberPrefix == "" {
		settings.NumberPrefix = numbering.DefaultPrefix
	}
	if settings.DueDays <= 0 {
		settings.DueDays = 30
	}
	return &invoiceService{
		invoiceRepo:   invoiceRepo,
		directoryRepo: directoryRepo,
		renderer:      renderer,
		settings:      settings,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func (s *invoiceService) allocateNumber(last *string) (string, error) {
	number, err := numbering.Next(s.settings.NumberPrefix, last)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}
	return number, nil
}

// checkParties verifies the organisation and client both belong to userID.
func (s *invoiceService) checkParties(ctx context.Context, userID, organisationID, clientID string) error {
	if _, err := s.directoryRepo.FindOrganisationByID(ctx, userID, organisationID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: organisation", apperrors.ErrNotFound)
		}
		return err
	}
	if _, err := s.directoryRepo.FindClientByID(ctx, userID, clientID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: client", apperrors.ErrNotFound)
		}
		return err
	}
	return nil
}

// buildItems resolves referenced articles once and computes every line.
// Values explicitly given on a line take precedence over the article's.
func (s *invoiceService) buildItems(ctx context.Context, userID string, reqs []dto.InvoiceItemRequest) ([]domain.InvoiceItem, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: an invoice needs at least one item", apperrors.ErrValidation)
	}

	var articleIDs []string
	for _, r := range reqs {
		if r.ArticleID != nil && *r.ArticleID != "" {
			articleIDs = append(articleIDs, *r.ArticleID)
		}
	}
	articles := map[string]domain.Article{}
	if len(articleIDs) > 0 {
		found, err := s.directoryRepo.FindArticlesByIDs(ctx, userID, articleIDs)
		if err != nil {
			return nil, err
		}
		articles = found
	}

	items := make([]domain.InvoiceItem, 0, len(reqs))
	for i, r := range reqs {
		item := domain.InvoiceItem{ItemID: uuid.NewString()}
		var article *domain.Article
		if r.ArticleID != nil && *r.ArticleID != "" {
			a, ok := articles[*r.ArticleID]
			if !ok {
				return nil, fmt.Errorf("%w: article %s", apperrors.ErrNotFound, *r.ArticleID)
			}
			article = &a
			item.ArticleID = &a.ArticleID
		}

		switch {
		case r.Description != nil && strings.TrimSpace(*r.Description) != "":
			item.Description = strings.TrimSpace(*r.Description)
		case article != nil:
			item.Description = article.LineDescription()
		default:
			return nil, fmt.Errorf("%w: item %d: description is required", apperrors.ErrValidation, i+1)
		}

		switch {
		case r.UnitPrice != nil:
			item.UnitPrice = *r.UnitPrice
		case article != nil:
			item.UnitPrice = article.Price
		default:
			return nil, fmt.Errorf("%w: item %d: unitPrice is required", apperrors.ErrValidation, i+1)
		}

		switch {
		case r.TaxRate != nil:
			item.TaxRate = *r.TaxRate
		case article != nil:
			item.TaxRate = article.TaxRate
		default:
			return nil, fmt.Errorf("%w: item %d: tvaRate is required", apperrors.ErrValidation, i+1)
		}

		if r.Quantity == nil {
			return nil, fmt.Errorf("%w: item %d: quantity is required", apperrors.ErrValidation, i+1)
		}
		item.Quantity = *r.Quantity

		amounts, err := accounting.ComputeLineItem(item.Quantity, item.UnitPrice, item.TaxRate)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		item.Subtotal = amounts.Subtotal
		item.TaxAmount = amounts.TaxAmount
		item.Total = amounts.Total
		items = append(items, item)
	}
	return items, nil
}

func parseInvoiceStatus(raw *string, fallback domain.InvoiceStatus) (domain.InvoiceStatus, error) {
	if raw == nil || *raw == "" {
		return fallback, nil
	}
	status := domain.InvoiceStatus(*raw)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: unknown invoice status %q", apperrors.ErrValidation, *raw)
	}
	return status, nil
}

func (s *invoiceService) BuildInvoice(ctx context.Context, userID string, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	status, err := parseInvoiceStatus(req.Status, domain.InvoiceDraft)
	if err != nil {
		return nil, err
	}
	if err := s.checkParties(ctx, userID, req.OrganisationID, req.ClientID); err != nil {
		s.logUnlessExpected(ctx, err, "Invoice parties check failed", slog.String("user_id", userID))
		return nil, err
	}
	items, err := s.buildItems(ctx, userID, req.Items)
	if err != nil {
		s.logUnlessExpected(ctx, err, "Failed to build invoice items", slog.String("user_id", userID))
		return nil, err
	}

	now := s.now()
	date := now
	if req.Date != nil && !req.Date.IsZero() {
		date = *req.Date
	}
	dueDate := date.AddDate(0, 0, s.settings.DueDays)
	if req.DueDate != nil && !req.DueDate.IsZero() {
		dueDate = *req.DueDate
	}
	if dueDate.Before(date) {
		return nil, fmt.Errorf("%w: dueDate is before date", apperrors.ErrValidation)
	}

	inv := domain.Invoice{
		InvoiceID:      uuid.NewString(),
		UserID:         userID,
		OrganisationID: req.OrganisationID,
		ClientID:       req.ClientID,
		Date:           date,
		DueDate:        dueDate,
		Status:         status,
		Notes:          req.Notes,
		PaymentTerms:   req.PaymentTerms,
		AuditFields:    domain.NewAuditFields(userID, now),
	}
	inv.SetItems(items)

	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		created, err := s.invoiceRepo.CreateInvoice(ctx, inv, s.allocateNumber)
		if err == nil {
			metrics.InvoicesCreated.Inc()
			s.LogInfo(ctx, "Invoice created",
				slog.String("invoice_id", created.InvoiceID),
				slog.String("number", created.Number),
				slog.String("total", created.Total.String()))
			return created, nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to create invoice", slog.String("user_id", userID))
			return nil, err
		}
		metrics.InvoiceNumberRetries.Inc()
		s.LogInfo(ctx, "Invoice number collision, retrying", slog.Int("attempt", attempt))
	}
	return nil, fmt.Errorf("%w: could not allocate an invoice number after %d attempts", apperrors.ErrConflict, maxNumberAttempts)
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, userID, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error) {
	inv, err := s.GetInvoice(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}

	if req.OrganisationID != nil {
		inv.OrganisationID = *req.OrganisationID
	}
	if req.ClientID != nil {
		inv.ClientID = *req.ClientID
	}
	if req.OrganisationID != nil || req.ClientID != nil {
		if err := s.checkParties(ctx, userID, inv.OrganisationID, inv.ClientID); err != nil {
			return nil, err
		}
	}
	if inv.Status, err = parseInvoiceStatus(req.Status, inv.Status); err != nil {
		return nil, err
	}
	if req.Date != nil && !req.Date.IsZero() {
		inv.Date = *req.Date
	}
	if req.DueDate != nil && !req.DueDate.IsZero() {
		inv.DueDate = *req.DueDate
	}
	if inv.DueDate.Before(inv.Date) {
		return nil, fmt.Errorf("%w: dueDate is before date", apperrors.ErrValidation)
	}
	if req.Notes != nil {
		inv.Notes = req.Notes
	}
	if req.PaymentTerms != nil {
		inv.PaymentTerms = req.PaymentTerms
	}

	replaceItems := req.Items != nil
	if replaceItems {
		items, err := s.buildItems(ctx, userID, req.Items)
		if err != nil {
			return nil, err
		}
		inv.SetItems(items)
	}
	inv.Touch(userID, s.now())

	if err := s.invoiceRepo.UpdateInvoice(ctx, *inv, replaceItems); err != nil {
		s.logUnlessExpected(ctx, err, "Failed to update invoice", slog.String("invoice_id", invoiceID))
		return nil, err
	}
	s.LogInfo(ctx, "Invoice updated", slog.String("invoice_id", invoiceID), slog.Bool("items_replaced", replaceItems))
	return inv, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, userID, invoiceID)
	if err != nil {
		s.logUnlessExpected(ctx, err, "Failed to find invoice", slog.String("invoice_id", invoiceID))
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, userID string, params dto.ListInvoicesParams) ([]domain.Invoice, error) {
	var status domain.InvoiceStatus
	if params.Status != "" && params.Status != "all" {
		status = domain.InvoiceStatus(params.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: unknown invoice status %q", apperrors.ErrValidation, params.Status)
		}
	}
	invoices, err := s.invoiceRepo.ListInvoices(ctx, userID, status)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices", slog.String("user_id", userID))
		return nil, err
	}
	if invoices == nil {
		return []domain.Invoice{}, nil
	}
	return invoices, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, userID, invoiceID string) error {
	if err := s.invoiceRepo.DeleteInvoice(ctx, userID, invoiceID); err != nil {
		s.logUnlessExpected(ctx, err, "Failed to delete invoice", slog.String("invoice_id", invoiceID))
		return err
	}
	s.LogInfo(ctx, "Invoice deleted", slog.String("invoice_id", invoiceID))
	return nil
}

func (s *invoiceService) NextInvoiceNumber(ctx context.Context, userID string) (string, error) {
	last, err := s.invoiceRepo.FindLatestInvoiceNumber(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find latest invoice number", slog.String("user_id", userID))
		return "", err
	}
	return s.allocateNumber(last)
}

func (s *invoiceService) RenderInvoicePDF(ctx context.Context, userID, invoiceID string) ([]byte, string, error) {
	inv, err := s.GetInvoice(ctx, userID, invoiceID)
	if err != nil {
		return nil, "", err
	}
	org, err := s.directoryRepo.FindOrganisationByID(ctx, userID, inv.OrganisationID)
	if err != nil {
		s.logUnlessExpected(ctx, err, "Failed to load invoice organisation", slog.String("invoice_id", invoiceID))
		return nil, "", err
	}
	client, err := s.directoryRepo.FindClientByID(ctx, userID, inv.ClientID)
	if err != nil {
		s.logUnlessExpected(ctx, err, "Failed to load invoice client", slog.String("invoice_id", invoiceID))
		return nil, "", err
	}

	start := time.Now()
	pdf, err := s.renderer.Render(domain.InvoiceDocument{Invoice: *inv, Organisation: *org, Client: *client})
	if err != nil {
		s.LogError(ctx, err, "Failed to render invoice", slog.String("invoice_id", invoiceID))
		return nil, "", fmt.Errorf("%w: failed to render invoice", apperrors.ErrInternal)
	}
	s.LogDebug(ctx, "Invoice rendered", slog.String("invoice_id", invoiceID), slog.Int("bytes", len(pdf)), slog.Duration("took", time.Since(start)))
	return pdf, "facture-" + inv.Number + ".pdf", nil
}
