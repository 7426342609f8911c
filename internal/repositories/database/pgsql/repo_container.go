package pgsql

import (
	portsrepo "github.com/SscSPs/ledger_report_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the pgx implementations of every repository port.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ReportingRepo: newReportingRepository(dbPool),
		VoucherRepo:   newPgxVoucherRepository(dbPool),
	}
}
