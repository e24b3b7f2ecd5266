package pgsql

import (
	portsrepo "github.com/SscSPs/nexkeep/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:          newPgxUserRepository(dbPool),
		LedgerRepo:        newPgxLedgerRepository(dbPool),
		CategoryRepo:      newPgxCategoryRepository(dbPool),
		DirectoryRepo:     newPgxDirectoryRepository(dbPool),
		InvoiceRepo:       newPgxInvoiceRepository(dbPool),
		ReimbursementRepo: newPgxReimbursementRepository(dbPool),
	}
}
