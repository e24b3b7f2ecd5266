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

const categoryColumns = `category_id, name, category_type, color, icon, created_at, created_by, last_updated_at, last_updated_by`

type PgxCategoryRepository struct {
	BaseRepository
}

func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func scanCategory(row pgx.Row) (models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID,
		&m.Name,
		&m.CategoryType,
		&m.Color,
		&m.Icon,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY category_type, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Category, error) {
		m, err := scanCategory(row)
		return mapping.ToDomainCategory(m), err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan categories: %w", err)
	}
	return categories, nil
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	m, err := scanCategory(r.Pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE category_id = $1`, categoryID))
	if err != nil {
		return nil, mapPgError(err, "find category "+categoryID)
	}
	category := mapping.ToDomainCategory(m)
	return &category, nil
}

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO categories (`+categoryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`, m.CategoryID, m.Name, m.CategoryType, m.Color, m.Icon, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return mapPgError(err, "save category "+m.Name)
	}
	return nil
}

// InsertMissingCategories queues one insert per category and counts the rows actually written.
func (r *PgxCategoryRepository) InsertMissingCategories(ctx context.Context, categories []domain.Category) (int, error) {
	if len(categories) == 0 {
		return 0, nil
	}
	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (name) DO NOTHING;
	`
	batch := &pgx.Batch{}
	for _, c := range categories {
		m := mapping.ToModelCategory(c)
		batch.Queue(query, m.CategoryID, m.Name, m.CategoryType, m.Color, m.Icon, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	br := tx.SendBatch(ctx, batch)
	inserted := 0
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		tag, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = mapPgError(err, "insert category "+categories[i].Name)
			}
			continue
		}
		inserted += int(tag.RowsAffected())
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close category batch: %w", err)
	}
	if batchErr != nil {
		return 0, batchErr
	}
	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *PgxCategoryRepository) CountTransactionsInCategory(ctx context.Context, name string) (int, error) {
	var count int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE category = $1`, name).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions in category %s: %w", name, err)
	}
	return count, nil
}

func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM categories WHERE category_id = $1`, categoryID)
	if err != nil {
		return mapPgError(err, "delete category "+categoryID)
	}
	return expectOneRow(tag, "category", categoryID)
}
