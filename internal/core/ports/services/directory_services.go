package services

import (
	"context"

	"github.com/SscSPs/nexkeep/internal/core/domain"
	"github.com/SscSPs/nexkeep/internal/dto"
)

// OrganisationSvc manages the caller's organisations.
type OrganisationSvc interface {
	CreateOrganisation(ctx context.Context, userID string, req dto.OrganisationRequest) (*domain.Organisation, error)
	GetOrganisation(ctx context.Context, userID, organisationID string) (*domain.Organisation, error)
	ListOrganisations(ctx context.Context, userID string) ([]domain.Organisation, error)
	UpdateOrganisation(ctx context.Context, userID, organisationID string, req dto.OrganisationRequest) (*domain.Organisation, error)
	DeleteOrganisation(ctx context.Context, userID, organisationID string) error
}

// ClientSvc manages the caller's clients.
type ClientSvc interface {
	CreateClient(ctx context.Context, userID string, req dto.ClientRequest) (*domain.Client, error)
	GetClient(ctx context.Context, userID, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, userID string) ([]domain.Client, error)
	UpdateClient(ctx context.Context, userID, clientID string, req dto.ClientRequest) (*domain.Client, error)
	DeleteClient(ctx context.Context, userID, clientID string) error
}

// ArticleSvc manages the caller's article catalog.
type ArticleSvc interface {
	CreateArticle(ctx context.Context, userID string, req dto.ArticleRequest) (*domain.Article, error)
	GetArticle(ctx context.Context, userID, articleID string) (*domain.Article, error)
	ListArticles(ctx context.Context, userID string, params dto.ListArticlesParams) ([]domain.Article, error)
	UpdateArticle(ctx context.Context, userID, articleID string, req dto.ArticleRequest) (*domain.Article, error)
	DeleteArticle(ctx context.Context, userID, articleID string) error
}

// DirectorySvcFacade combines organisation, client and article management.
type DirectorySvcFacade interface {
	OrganisationSvc
	ClientSvc
	ArticleSvc
}
