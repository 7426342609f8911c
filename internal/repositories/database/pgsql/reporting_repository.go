package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_report_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

const accountColumns = `
	a.account_id, a.code, a.name, a.account_type, a.debit, a.liquidity,
	COALESCE(a.parent_code, ''), COALESCE(a.root_code, ''), a.level, a.for_user`

// FindAccounts retrieves the accounts of one type ordered by code.
func (r *reportingRepository) FindAccounts(ctx context.Context, scope domain.Scope, accountType domain.AccountType, filter portsrepo.AccountFilter) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + `
		FROM accounts a
		WHERE a.tenant_id = $1
			AND a.company_id = $2
			AND a.account_type = $3
			AND ($4 = FALSE OR a.for_user)
			AND (cardinality($5::text[]) = 0 OR a.code = ANY($5))
		ORDER BY a.code, a.account_id
	`
	codes := filter.Codes
	if codes == nil {
		codes = []string{}
	}

	rows, err := r.Pool.Query(ctx, query, scope.TenantID, scope.CompanyID, string(accountType), filter.ForUserOnly, codes)
	if err != nil {
		return nil, fmt.Errorf("error querying %s accounts: %w", accountType, err)
	}
	return collectAccounts(rows)
}

// FindAccountsByIDs retrieves accounts keyed by id.
func (r *reportingRepository) FindAccountsByIDs(ctx context.Context, scope domain.Scope, accountIDs []string) (map[string]domain.Account, error) {
	result := make(map[string]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + accountColumns + `
		FROM accounts a
		WHERE a.tenant_id = $1
			AND a.company_id = $2
			AND a.account_id = ANY($3)
	`
	rows, err := r.Pool.Query(ctx, query, scope.TenantID, scope.CompanyID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("error querying accounts by id: %w", err)
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}
	for _, acc := range accounts {
		result[acc.AccountID] = acc
	}
	return result, nil
}

func collectAccounts(rows pgx.Rows) ([]domain.Account, error) {
	defer rows.Close()

	result := []domain.Account{}
	for rows.Next() {
		var acc domain.Account
		var accountType string
		if err := rows.Scan(
			&acc.AccountID,
			&acc.Code,
			&acc.Name,
			&accountType,
			&acc.Debit,
			&acc.Liquidity,
			&acc.ParentCode,
			&acc.RootCode,
			&acc.Level,
			&acc.ForUser,
		); err != nil {
			return nil, fmt.Errorf("error scanning account row: %w", err)
		}
		acc.AccountType = domain.AccountType(accountType)
		result = append(result, acc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return result, nil
}

// FindLineItems retrieves line items of accounts of the given types posted in [start, end].
func (r *reportingRepository) FindLineItems(ctx context.Context, scope domain.Scope, accountTypes []domain.AccountType, start, end time.Time) ([]domain.LineItem, error) {
	query := `
		SELECT li.line_item_id, li.amount, li.debit, li.account_id, v.voucher_id, v.voucher_date
		FROM line_items li
		JOIN vouchers v ON li.voucher_id = v.voucher_id
		JOIN accounts a ON li.account_id = a.account_id
		WHERE v.tenant_id = $1
			AND v.company_id = $2
			AND a.account_type = ANY($3)
			AND v.voucher_date BETWEEN $4 AND $5
		ORDER BY v.voucher_date, li.line_item_id
	`
	types := make([]string, len(accountTypes))
	for i, t := range accountTypes {
		types[i] = string(t)
	}

	rows, err := r.Pool.Query(ctx, query, scope.TenantID, scope.CompanyID, types, start, end)
	if err != nil {
		return nil, fmt.Errorf("error querying line items: %w", err)
	}
	defer rows.Close()

	result := []domain.LineItem{}
	for rows.Next() {
		var item domain.LineItem
		if err := rows.Scan(
			&item.LineItemID,
			&item.Amount,
			&item.Debit,
			&item.AccountID,
			&item.Voucher.VoucherID,
			&item.Voucher.Date,
		); err != nil {
			return nil, fmt.Errorf("error scanning line item row: %w", err)
		}
		item.Voucher.Date = item.Voucher.Date.UTC()
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line item rows: %w", err)
	}
	return result, nil
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)
