package repositories

import (
	"context"

	"github.com/SscSPs/nexkeep/internal/core/domain"
)

// All lookups are owner scoped: a row owned by another user is reported as apperrors.ErrNotFound.

// OrganisationRepository persists organisations.
type OrganisationRepository interface {
	SaveOrganisation(ctx context.Context, org domain.Organisation) error
	FindOrganisationByID(ctx context.Context, userID, organisationID string) (*domain.Organisation, error)
	ListOrganisations(ctx context.Context, userID string) ([]domain.Organisation, error)
	UpdateOrganisation(ctx context.Context, org domain.Organisation) error
	// DeleteOrganisation returns apperrors.ErrConflict while invoices reference the organisation.
	DeleteOrganisation(ctx context.Context, userID, organisationID string) error
}

// ClientRepository persists clients.
type ClientRepository interface {
	SaveClient(ctx context.Context, client domain.Client) error
	FindClientByID(ctx context.Context, userID, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, userID string) ([]domain.Client, error)
	UpdateClient(ctx context.Context, client domain.Client) error
	// DeleteClient returns apperrors.ErrConflict while invoices reference the client.
	DeleteClient(ctx context.Context, userID, clientID string) error
}

// ArticleRepository persists catalog articles.
type ArticleRepository interface {
	SaveArticle(ctx context.Context, article domain.Article) error
	FindArticleByID(ctx context.Context, userID, articleID string) (*domain.Article, error)
	// FindArticlesByIDs returns the owner's articles among articleIDs keyed by ID. Unknown IDs are omitted.
	FindArticlesByIDs(ctx context.Context, userID string, articleIDs []string) (map[string]domain.Article, error)
	ListArticles(ctx context.Context, userID string, includeInactive bool) ([]domain.Article, error)
	UpdateArticle(ctx context.Context, article domain.Article) error
	DeleteArticle(ctx context.Context, userID, articleID string) error
}

// DirectoryRepositoryFacade groups the invoicing directory repositories.
type DirectoryRepositoryFacade interface {
	OrganisationRepository
	ClientRepository
	ArticleRepository
}
