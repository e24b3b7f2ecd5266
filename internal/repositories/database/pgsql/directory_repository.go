package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/nexkeep/internal/core/domain"
	portsrepo "github.com/SscSPs/nexkeep/internal/core/ports/repositories"
	"github.com/SscSPs/nexkeep/internal/models"
	"github.com/SscSPs/nexkeep/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	organisationColumns = `organisation_id, user_id, name, address, city, postal_code, country, siret, tax_number,
	phone, email, website, logo, created_at, created_by, last_updated_at, last_updated_by`
	clientColumns = `client_id, user_id, name, first_name, last_name, company, address, city, postal_code, country,
	email, phone, siret, tax_number, notes, created_at, created_by, last_updated_at, last_updated_by`
	articleColumns = `article_id, user_id, name, description, price, tax_rate, unit, category, is_active,
	created_at, created_by, last_updated_at, last_updated_by`
)

// PgxDirectoryRepository stores organisations, clients and articles. Every query is scoped by user_id.
type PgxDirectoryRepository struct {
	BaseRepository
}

func newPgxDirectoryRepository(pool *pgxpool.Pool) portsrepo.DirectoryRepositoryFacade {
	return &PgxDirectoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DirectoryRepositoryFacade = (*PgxDirectoryRepository)(nil)

// --- Organisations ---

func scanOrganisation(row pgx.Row) (models.Organisation, error) {
	var m models.Organisation
	err := row.Scan(
		&m.OrganisationID, &m.UserID, &m.Name, &m.Address, &m.City, &m.PostalCode, &m.Country,
		&m.Siret, &m.TaxNumber, &m.Phone, &m.Email, &m.Website, &m.Logo,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxDirectoryRepository) SaveOrganisation(ctx context.Context, org domain.Organisation) error {
	m := mapping.ToModelOrganisation(org)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO organisations (`+organisationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`,
		m.OrganisationID, m.UserID, m.Name, m.Address, m.City, m.PostalCode, m.Country,
		m.Siret, m.TaxNumber, m.Phone, m.Email, m.Website, m.Logo,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapPgError(err, "save organisation "+m.OrganisationID)
}

func (r *PgxDirectoryRepository) FindOrganisationByID(ctx context.Context, userID, organisationID string) (*domain.Organisation, error) {
	query := `SELECT ` + organisationColumns + ` FROM organisations WHERE organisation_id = $1 AND user_id = $2`
	m, err := scanOrganisation(r.Pool.QueryRow(ctx, query, organisationID, userID))
	if err != nil {
		return nil, mapPgError(err, "find organisation "+organisationID)
	}
	org := mapping.ToDomainOrganisation(m)
	return &org, nil
}

func (r *PgxDirectoryRepository) ListOrganisations(ctx context.Context, userID string) ([]domain.Organisation, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+organisationColumns+` FROM organisations WHERE user_id = $1 ORDER BY name`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query organisations: %w", err)
	}
	defer rows.Close()
	orgs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Organisation, error) {
		m, err := scanOrganisation(row)
		return mapping.ToDomainOrganisation(m), err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan organisations: %w", err)
	}
	return orgs, nil
}

func (r *PgxDirectoryRepository) UpdateOrganisation(ctx context.Context, org domain.Organisation) error {
	m := mapping.ToModelOrganisation(org)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE organisations SET
			name = $3, address = $4, city = $5, postal_code = $6, country = $7, siret = $8, tax_number = $9,
			phone = $10, email = $11, website = $12, logo = $13, last_updated_at = $14, last_updated_by = $15
		WHERE organisation_id = $1 AND user_id = $2;
	`,
		m.OrganisationID, m.UserID, m.Name, m.Address, m.City, m.PostalCode, m.Country, m.Siret, m.TaxNumber,
		m.Phone, m.Email, m.Website, m.Logo, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "update organisation "+m.OrganisationID)
	}
	return expectOneRow(tag, "organisation", m.OrganisationID)
}

func (r *PgxDirectoryRepository) DeleteOrganisation(ctx context.Context, userID, organisationID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM organisations WHERE organisation_id = $1 AND user_id = $2`, organisationID, userID)
	if err != nil {
		return mapPgError(err, "delete organisation "+organisationID)
	}
	return expectOneRow(tag, "organisation", organisationID)
}

// --- Clients ---

func scanClient(row pgx.Row) (models.Client, error) {
	var m models.Client
	err := row.Scan(
		&m.ClientID, &m.UserID, &m.Name, &m.FirstName, &m.LastName, &m.Company, &m.Address, &m.City,
		&m.PostalCode, &m.Country, &m.Email, &m.Phone, &m.Siret, &m.TaxNumber, &m.Notes,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxDirectoryRepository) SaveClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO clients (`+clientColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`,
		m.ClientID, m.UserID, m.Name, m.FirstName, m.LastName, m.Company, m.Address, m.City,
		m.PostalCode, m.Country, m.Email, m.Phone, m.Siret, m.TaxNumber, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapPgError(err, "save client "+m.ClientID)
}

func (r *PgxDirectoryRepository) FindClientByID(ctx context.Context, userID, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = $1 AND user_id = $2`
	m, err := scanClient(r.Pool.QueryRow(ctx, query, clientID, userID))
	if err != nil {
		return nil, mapPgError(err, "find client "+clientID)
	}
	client := mapping.ToDomainClient(m)
	return &client, nil
}

func (r *PgxDirectoryRepository) ListClients(ctx context.Context, userID string) ([]domain.Client, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+clientColumns+` FROM clients WHERE user_id = $1 ORDER BY name`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()
	clients, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Client, error) {
		m, err := scanClient(row)
		return mapping.ToDomainClient(m), err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan clients: %w", err)
	}
	return clients, nil
}

func (r *PgxDirectoryRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE clients SET
			name = $3, first_name = $4, last_name = $5, company = $6, address = $7, city = $8, postal_code = $9,
			country = $10, email = $11, phone = $12, siret = $13, tax_number = $14, notes = $15,
			last_updated_at = $16, last_updated_by = $17
		WHERE client_id = $1 AND user_id = $2;
	`,
		m.ClientID, m.UserID, m.Name, m.FirstName, m.LastName, m.Company, m.Address, m.City, m.PostalCode,
		m.Country, m.Email, m.Phone, m.Siret, m.TaxNumber, m.Notes, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "update client "+m.ClientID)
	}
	return expectOneRow(tag, "client", m.ClientID)
}

func (r *PgxDirectoryRepository) DeleteClient(ctx context.Context, userID, clientID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM clients WHERE client_id = $1 AND user_id = $2`, clientID, userID)
	if err != nil {
		return mapPgError(err, "delete client "+clientID)
	}
	return expectOneRow(tag, "client", clientID)
}

// --- Articles ---

func scanArticle(row pgx.Row) (models.Article, error) {
	var m models.Article
	err := row.Scan(
		&m.ArticleID, &m.UserID, &m.Name, &m.Description, &m.Price, &m.TaxRate, &m.Unit, &m.Category, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxDirectoryRepository) collectArticles(rows pgx.Rows) ([]domain.Article, error) {
	defer rows.Close()
	articles, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Article, error) {
		m, err := scanArticle(row)
		return mapping.ToDomainArticle(m), err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan articles: %w", err)
	}
	return articles, nil
}

func (r *PgxDirectoryRepository) SaveArticle(ctx context.Context, article domain.Article) error {
	m := mapping.ToModelArticle(article)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO articles (`+articleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`,
		m.ArticleID, m.UserID, m.Name, m.Description, m.Price, m.TaxRate, m.Unit, m.Category, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return mapPgError(err, "save article "+m.ArticleID)
}

func (r *PgxDirectoryRepository) FindArticleByID(ctx context.Context, userID, articleID string) (*domain.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE article_id = $1 AND user_id = $2`
	m, err := scanArticle(r.Pool.QueryRow(ctx, query, articleID, userID))
	if err != nil {
		return nil, mapPgError(err, "find article "+articleID)
	}
	article := mapping.ToDomainArticle(m)
	return &article, nil
}

func (r *PgxDirectoryRepository) FindArticlesByIDs(ctx context.Context, userID string, articleIDs []string) (map[string]domain.Article, error) {
	found := make(map[string]domain.Article, len(articleIDs))
	if len(articleIDs) == 0 {
		return found, nil
	}
	query := `SELECT ` + articleColumns + ` FROM articles WHERE user_id = $1 AND article_id = ANY($2)`
	rows, err := r.Pool.Query(ctx, query, userID, articleIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	articles, err := r.collectArticles(rows)
	if err != nil {
		return nil, err
	}
	for _, a := range articles {
		found[a.ArticleID] = a
	}
	return found, nil
}

func (r *PgxDirectoryRepository) ListArticles(ctx context.Context, userID string, includeInactive bool) ([]domain.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE user_id = $1 AND ($2 OR is_active) ORDER BY name`
	rows, err := r.Pool.Query(ctx, query, userID, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	return r.collectArticles(rows)
}

func (r *PgxDirectoryRepository) UpdateArticle(ctx context.Context, article domain.Article) error {
	m := mapping.ToModelArticle(article)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE articles SET
			name = $3, description = $4, price = $5, tax_rate = $6, unit = $7, category = $8, is_active = $9,
			last_updated_at = $10, last_updated_by = $11
		WHERE article_id = $1 AND user_id = $2;
	`,
		m.ArticleID, m.UserID, m.Name, m.Description, m.Price, m.TaxRate, m.Unit, m.Category, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "update article "+m.ArticleID)
	}
	return expectOneRow(tag, "article", m.ArticleID)
}

// DeleteArticle removes a catalog entry. Invoice lines keep their snapshot; their article_id is cleared.
func (r *PgxDirectoryRepository) DeleteArticle(ctx context.Context, userID, articleID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM articles WHERE article_id = $1 AND user_id = $2`, articleID, userID)
	if err != nil {
		return mapPgError(err, "delete article "+articleID)
	}
	return expectOneRow(tag, "article", articleID)
}
