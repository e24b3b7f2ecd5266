package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/nexkeep/internal/apperrors"
	"github.com/SscSPs/nexkeep/internal/core/domain"
	portsrepo "github.com/SscSPs/nexkeep/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/nexkeep/internal/core/ports/services"
	"github.com/SscSPs/nexkeep/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// defaultArticleTaxRate applies when an article is created without a rate.
var defaultArticleTaxRate = decimal.NewFromInt(20)

type directoryService struct {
	BaseService
	repo portsrepo.DirectoryRepositoryFacade
}

// NewDirectoryService creates the service managing organisations, clients and articles.
func NewDirectoryService(repo portsrepo.DirectoryRepositoryFacade) portssvc.DirectorySvcFacade {
	return &directoryService{repo: repo}
}

var _ portssvc.DirectorySvcFacade = (*directoryService)(nil)

func requireName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	return name, nil
}

// --- Organisations ---

func applyOrganisationRequest(org *domain.Organisation, req dto.OrganisationRequest, name string) {
	org.Name = name
	org.Address = req.Address
	org.City = req.City
	org.PostalCode = req.PostalCode
	org.Country = req.Country
	org.Siret = req.Siret
	org.TaxNumber = req.TaxNumber
	org.Phone = req.Phone
	org.Email = req.Email
	org.Website = req.Website
	org.Logo = req.Logo
}

func (s *directoryService) CreateOrganisation(ctx context.Context, userID string, req dto.OrganisationRequest) (*domain.Organisation, error) {
	name, err := requireName(req.Name)
	if err != nil {
		return nil, err
	}
	org := domain.Organisation{
		OrganisationID: uuid.NewString(),
		UserID:         userID,
		AuditFields:    domain.NewAuditFields(userID, s.now()),
	}
	applyOrganisationRequest(&org, req, name)
	if err := s.repo.SaveOrganisation(ctx, org); err != nil {
		s.logUnlessExpected(ctx, err, "Failed to save organisation", slog.String("user_id", userID))
		return nil, err
	}
	return &org, nil
}

func (s *directoryService) GetOrganisation(ctx context.Context, userID, organisationID string) (*domain.Organisation, error) {
	org, err := s.repo.FindOrganisationByID(ctx, userID, organisationID)
	if err != nil {
		s.logUnlessExpected(ctx, err, "Failed to find organisation", slog.String("organisation_id", organisationID))
		return nil, err
	}
	return org, nil
}

func (s *directoryService) ListOrganisations(ctx context.Context, userID string) ([]domain.Organisation, error) {
	orgs, err := s.repo.ListOrganisations(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list organisations", slog.String("user_id", userID))
		return nil, err
	}
	if orgs == nil {
		return []domain.Organisation{}, nil
	}
	return orgs, nil
}

func (s *directoryService) UpdateOrganisation(ctx context.Context, userID, organisationID string, req dto.OrganisationRequest) (*domain.Organisation, error) {
	name, err := requireName(req.Name)
	if err != nil {
		return nil, err
	}
	org, err := s.GetOrganisation(ctx, userID, organisationID)
	if err != nil {
		return nil, err
	}
	applyOrganisationRequest(org, req, name)
	org.Touch(userID, s.now())
	if err := s.repo.UpdateOrganisation(ctx, *org); err != nil {
		s.logUnlessExpected(ctx, err, "Failed to update organisation", slog.String("organisation_id", organisationID))
		return nil, err
	}
	return org, nil
}

func (s *directoryService) DeleteOrganisation(ctx context.Context, userID, organisationID string) error {
	if err := s.repo.DeleteOrganisation(ctx, userID, organisationID); err != nil {
		s.logUnlessExpected(ctx, err, "Failed to delete organisation", slog.String("organisation_id", organisationID))
		return err
	}
	return nil
}

// --- Clients ---

func applyClientRequest(client *domain.Client, req dto.ClientRequest, name string) {
	client.Name = name
	client.FirstName = req.FirstName
	client.LastName = req.LastName
	client.Company = req.Company
	client.Address = req.Address
	client.City = req.City
	client.PostalCode = req.PostalCode
	client.Country = req.Country
	client.Email = req.Email
	client.Phone = req.Phone
	client.Siret = req.Siret
	client.TaxNumber = req.TaxNumber
	client.Notes = req.Notes
}

func (s *directoryService) CreateClient(ctx context.Context, userID string, req dto.ClientRequest) (*domain.Client, error) {
	name, err := requireName(req.Name)
	if err != nil {
		return nil, err
	}
	client := domain.Client{
		ClientID:    uuid.NewString(),
		UserID:      userID,
		AuditFields: domain.NewAuditFields(userID, s.now()),
	}
	applyClientRequest(&client, req, name)
	if err := s.repo.SaveClient(ctx, client); err != nil {
		s.logUnlessExpected(ctx, err, "Failed to save client", slog.String("user_id", userID))
		return nil, err
	}
	return &client, nil
}

func (s *directoryService) GetClient(ctx context.Context, userID, clientID string) (*domain.Client, error) {
	client, err := s.repo.FindClientByID(ctx, userID, clientID)
	if err != nil {
		s.logUnlessExpected(ctx, err, "Failed to find client", slog.String("client_id", clientID))
		return nil, err
	}
	return client, nil
}

func (s *directoryService) ListClients(ctx context.Context, userID string) ([]domain.Client, error) {
	clients, err := s.repo.ListClients(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list clients", slog.String("user_id", userID))
		return nil, err
	}
	if clients == nil {
		return []domain.Client{}, nil
	}
	return clients, nil
}

func (s *directoryService) UpdateClient(ctx context.Context, userID, clientID string, req dto.ClientRequest) (*domain.Client, error) {
	name, err := requireName(req.Name)
	if err != nil {
		return nil, err
	}
	client, err := s.GetClient(ctx, userID, clientID)
	if err != nil {
		return nil, err
	}
	applyClientRequest(client, req, name)
	client.Touch(userID, s.now())
	if err := s.repo.UpdateClient(ctx, *client); err != nil {
		s.logUnlessExpected(ctx, err, "Failed to update client", slog.String("client_id", clientID))
		return nil, err
	}
	return client, nil
}

func (s *directoryService) DeleteClient(ctx context.Context, userID, clientID string) error {
	if err := s.repo.DeleteClient(ctx, userID, clientID); err != nil {
		s.logUnlessExpected(ctx, err, "Failed to delete client", slog.String("client_id", clientID))
		return err
	}
	return nil
}

// --- Articles ---

func validateArticlePricing(price, rate decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", apperrors.ErrValidation)
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: tva rate must be between 0 and 100", apperrors.ErrValidation)
	}
	return nil
}

func (s *directoryService) CreateArticle(ctx context.Context, userID string, req dto.ArticleRequest) (*domain.Article, error) {
	name, err := requireName(req.Name)
	if err != nil {
		return nil, err
	}
	if req.Price == nil {
		return nil, fmt.Errorf("%w: price is required", apperrors.ErrValidation)
	}
	rate := defaultArticleTaxRate
	if req.TaxRate != nil {
		rate = *req.TaxRate
	}
	if err := validateArticlePricing(*req.Price, rate); err != nil {
		return nil, err
	}
	article := domain.Article{
		ArticleID:   uuid.NewString(),
		UserID:      userID,
		Name:        name,
		Description: req.Description,
		Price:       *req.Price,
		TaxRate:     rate,
		Unit:        req.Unit,
		Category:    req.Category,
		IsActive:    req.IsActive == nil || *req.IsActive,
		AuditFields: domain.NewAuditFields(userID, s.now()),
	}
	if err := s.repo.SaveArticle(ctx, article); err != nil {
		s.logUnlessExpected(ctx, err, "Failed to save article", slog.String("user_id", userID))
		return nil, err
	}
	return &article, nil
}

func (s *directoryService) GetArticle(ctx context.Context, userID, articleID string) (*domain.Article, error) {
	article, err := s.repo.FindArticleByID(ctx, userID, articleID)
	if err != nil {
		s.logUnlessExpected(ctx, err, "Failed to find article", slog.String("article_id", articleID))
		return nil, err
	}
	return article, nil
}

func (s *directoryService) ListArticles(ctx context.Context, userID string, params dto.ListArticlesParams) ([]domain.Article, error) {
	articles, err := s.repo.ListArticles(ctx, userID, params.IncludeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list articles", slog.String("user_id", userID))
		return nil, err
	}
	if articles == nil {
		return []domain.Article{}, nil
	}
	return articles, nil
}

// UpdateArticle changes the catalog entry only; invoice lines created from it keep their snapshot.
func (s *directoryService) UpdateArticle(ctx context.Context, userID, articleID string, req dto.ArticleRequest) (*domain.Article, error) {
	name, err := requireName(req.Name)
	if err != nil {
		return nil, err
	}
	article, err := s.GetArticle(ctx, userID, articleID)
	if err != nil {
		return nil, err
	}
	if req.Price != nil {
		article.Price = *req.Price
	}
	if req.TaxRate != nil {
		article.TaxRate = *req.TaxRate
	}
	if err := validateArticlePricing(article.Price, article.TaxRate); err != nil {
		return nil, err
	}
	article.Name = name
	article.Description = req.Description
	article.Unit = req.Unit
	article.Category = req.Category
	if req.IsActive != nil {
		article.IsActive = *req.IsActive
	}
	article.Touch(userID, s.now())
	if err := s.repo.UpdateArticle(ctx, *article); err != nil {
		s.logUnlessExpected(ctx, err, "Failed to update article", slog.String("article_id", articleID))
		return nil, err
	}
	return article, nil
}

func (s *directoryService) DeleteArticle(ctx context.Context, userID, articleID string) error {
	if err := s.repo.DeleteArticle(ctx, userID, articleID); err != nil {
		s.logUnlessExpected(ctx, err, "Failed to delete article", slog.String("article_id", articleID))
		return err
	}
	return nil
}
