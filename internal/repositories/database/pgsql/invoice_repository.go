package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/nexkeep/internal/core/domain"
	portsrepo "github.com/SscSPs/nexkeep/internal/core/ports/repositories"
	"github.com/SscSPs/nexkeep/internal/models"
	"github.com/SscSPs/nexkeep/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	invoiceColumns = `invoice_id, user_id, number, organisation_id, client_id, invoice_date, due_date, status,
	subtotal, tax_amount, total, notes, payment_terms, created_at, created_by, last_updated_at, last_updated_by`
	invoiceItemColumns = `item_id, invoice_id, article_id, position, description, quantity, unit_price, tax_rate,
	subtotal, tax_amount, total`
)

// latestNumberSQL orders by creation time and then by counter length so FAC-10000 sorts after FAC-9999.
const latestNumberSQL = `
	SELECT number, created_at FROM invoices WHERE user_id = $1
	ORDER BY created_at DESC, length(number) DESC, number DESC
	LIMIT 1`

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID, &m.UserID, &m.Number, &m.OrganisationID, &m.ClientID, &m.InvoiceDate, &m.DueDate, &m.Status,
		&m.Subtotal, &m.TaxAmount, &m.Total, &m.Notes, &m.PaymentTerms,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, userID, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1 AND user_id = $2`
	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID, userID))
	if err != nil {
		return nil, mapPgError(err, "find invoice "+invoiceID)
	}
	inv := mapping.ToDomainInvoice(m)

	rows, err := r.Pool.Query(ctx, `SELECT `+invoiceItemColumns+` FROM invoice_items WHERE invoice_id = $1 ORDER BY position`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items of invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.InvoiceItem, error) {
		var it models.InvoiceItem
		err := row.Scan(
			&it.ItemID, &it.InvoiceID, &it.ArticleID, &it.Position, &it.Description, &it.Quantity,
			&it.UnitPrice, &it.TaxRate, &it.Subtotal, &it.TaxAmount, &it.Total,
		)
		return mapping.ToDomainInvoiceItem(it), err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan items of invoice %s: %w", invoiceID, err)
	}
	inv.Items = items
	return &inv, nil
}

func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, userID string, status domain.InvoiceStatus) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + ` FROM invoices
		WHERE user_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY invoice_date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()
	invoices, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Invoice, error) {
		m, err := scanInvoice(row)
		return mapping.ToDomainInvoice(m), err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan invoices: %w", err)
	}
	return invoices, nil
}

func (r *PgxInvoiceRepository) FindLatestInvoiceNumber(ctx context.Context, userID string) (*string, error) {
	rows, err := r.Pool.Query(ctx, latestNumberSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest invoice number: %w", err)
	}
	latest, err := collectLatestInvoice(rows)
	if err != nil || latest == nil {
		return nil, err
	}
	return &latest.Number, nil
}

type latestInvoice struct {
	Number    string    `db:"number"`
	CreatedAt time.Time `db:"created_at"`
}

func collectLatestInvoice(rows pgx.Rows) (*latestInvoice, error) {
	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[latestInvoice])
	if err != nil {
		return nil, fmt.Errorf("failed to scan latest invoice number: %w", err)
	}
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

// creationStamp is the created_at of an invoice inserted under the numbering lock.
// It is strictly after the latest invoice, so created_at order follows allocation order.
func creationStamp(now time.Time, latest *latestInvoice) time.Time {
	now = now.UTC().Truncate(time.Microsecond)
	if latest == nil {
		return now
	}
	floor := latest.CreatedAt.UTC().Truncate(time.Microsecond).Add(time.Microsecond)
	if now.Before(floor) {
		return floor
	}
	return now
}

// CreateInvoice holds a per-owner advisory lock for the whole transaction, so two creations
// for the same owner cannot read the same latest number. The UNIQUE(user_id, number)
// constraint still reports any collision as apperrors.ErrDuplicate.
func (r *PgxInvoiceRepository) CreateInvoice(ctx context.Context, inv domain.Invoice, allocate portsrepo.NumberAllocator) (*domain.Invoice, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('invoice-number:' || $1))`, inv.UserID); err != nil {
		return nil, fmt.Errorf("failed to lock invoice numbering: %w", err)
	}
	rows, err := tx.Query(ctx, latestNumberSQL, inv.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest invoice number: %w", err)
	}
	latest, err := collectLatestInvoice(rows)
	if err != nil {
		return nil, err
	}
	var last *string
	if latest != nil {
		last = &latest.Number
	}
	number, err := allocate(last)
	if err != nil {
		return nil, err
	}
	inv.Number = number
	inv.CreatedAt = creationStamp(time.Now(), latest)
	inv.LastUpdatedAt = inv.CreatedAt

	m := mapping.ToModelInvoice(inv)
	_, err = tx.Exec(ctx, `
		INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`,
		m.InvoiceID, m.UserID, m.Number, m.OrganisationID, m.ClientID, m.InvoiceDate, m.DueDate, m.Status,
		m.Subtotal, m.TaxAmount, m.Total, m.Notes, m.PaymentTerms,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return nil, mapPgError(err, "insert invoice "+m.Number)
	}
	if err := insertItemsTx(ctx, tx, inv.Items); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &inv, nil
}

func insertItemsTx(ctx context.Context, tx pgx.Tx, items []domain.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `INSERT INTO invoice_items (` + invoiceItemColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`
	batch := &pgx.Batch{}
	for _, item := range items {
		m := mapping.ToModelInvoiceItem(item)
		batch.Queue(query, m.ItemID, m.InvoiceID, m.ArticleID, m.Position, m.Description, m.Quantity,
			m.UnitPrice, m.TaxRate, m.Subtotal, m.TaxAmount, m.Total)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = mapPgError(err, fmt.Sprintf("insert invoice item %d", i))
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close invoice item batch: %w", err)
	}
	return batchErr
}

func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, inv domain.Invoice, replaceItems bool) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelInvoice(inv)
	tag, err := tx.Exec(ctx, `
		UPDATE invoices SET
			organisation_id = $3, client_id = $4, invoice_date = $5, due_date = $6, status = $7,
			subtotal = $8, tax_amount = $9, total = $10, notes = $11, payment_terms = $12,
			last_updated_at = $13, last_updated_by = $14
		WHERE invoice_id = $1 AND user_id = $2;
	`,
		m.InvoiceID, m.UserID, m.OrganisationID, m.ClientID, m.InvoiceDate, m.DueDate, m.Status,
		m.Subtotal, m.TaxAmount, m.Total, m.Notes, m.PaymentTerms, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "update invoice "+m.InvoiceID)
	}
	if err := expectOneRow(tag, "invoice", m.InvoiceID); err != nil {
		return err
	}

	if replaceItems {
		if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, inv.InvoiceID); err != nil {
			return mapPgError(err, "delete items of invoice "+inv.InvoiceID)
		}
		if err := insertItemsTx(ctx, tx, inv.Items); err != nil {
			return err
		}
	}
	return r.Commit(ctx, tx)
}

// DeleteInvoice removes the invoice; its items go with it through ON DELETE CASCADE.
func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, userID, invoiceID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM invoices WHERE invoice_id = $1 AND user_id = $2`, invoiceID, userID)
	if err != nil {
		return mapPgError(err, "delete invoice "+invoiceID)
	}
	return expectOneRow(tag, "invoice", invoiceID)
}
