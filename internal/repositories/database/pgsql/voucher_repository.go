package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_report_engine/internal/apperrors"
	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_report_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxVoucherRepository implements the voucher repository ports with pgx.
type PgxVoucherRepository struct {
	BaseRepository
}

func newPgxVoucherRepository(pool *pgxpool.Pool) *PgxVoucherRepository {
	return &PgxVoucherRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.VoucherRepositoryFacade = (*PgxVoucherRepository)(nil)
	_ portsrepo.TransactionManager      = (*PgxVoucherRepository)(nil)
)

// SaveVoucher inserts a voucher and its line items in one transaction.
func (r *PgxVoucherRepository) SaveVoucher(ctx context.Context, scope domain.Scope, voucher domain.Voucher) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op once committed

	voucherQuery := `
		INSERT INTO vouchers (voucher_id, tenant_id, company_id, voucher_date, memo)
		VALUES ($1, $2, $3, $4, $5);
	`
	if _, err := tx.Exec(ctx, voucherQuery, voucher.VoucherID, scope.TenantID, scope.CompanyID, voucher.Date, voucher.Memo); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: voucher %s already exists", apperrors.ErrDuplicate, voucher.VoucherID)
		}
		return apperrors.NewAppError(500, "failed to insert voucher "+voucher.VoucherID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO line_items (line_item_id, voucher_id, account_id, amount, debit)
		VALUES ($1, $2, $3, $4, $5);
	`
	for _, line := range voucher.Lines {
		batch.Queue(lineQuery, line.LineItemID, voucher.VoucherID, line.AccountID, line.Amount, line.Debit)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("%w: line item references unknown account", apperrors.ErrNotFound)
		}
		return apperrors.NewAppError(500, "failed to insert line items for voucher "+voucher.VoucherID, err)
	}

	return r.Commit(ctx, tx)
}

// FindVoucherByID retrieves a voucher and its line items.
func (r *PgxVoucherRepository) FindVoucherByID(ctx context.Context, scope domain.Scope, voucherID string) (*domain.Voucher, error) {
	query := `
		SELECT voucher_id, voucher_date, COALESCE(memo, '')
		FROM vouchers
		WHERE voucher_id = $1 AND tenant_id = $2 AND company_id = $3;
	`
	var voucher domain.Voucher
	err := r.Pool.QueryRow(ctx, query, voucherID, scope.TenantID, scope.CompanyID).Scan(&voucher.VoucherID, &voucher.Date, &voucher.Memo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: voucher %s", apperrors.ErrNotFound, voucherID)
		}
		return nil, fmt.Errorf("error querying voucher %s: %w", voucherID, err)
	}
	voucher.Date = voucher.Date.UTC()

	linesQuery := `
		SELECT line_item_id, amount, debit, account_id
		FROM line_items
		WHERE voucher_id = $1
		ORDER BY line_item_id;
	`
	rows, err := r.Pool.Query(ctx, linesQuery, voucherID)
	if err != nil {
		return nil, fmt.Errorf("error querying line items of voucher %s: %w", voucherID, err)
	}
	defer rows.Close()

	for rows.Next() {
		line := domain.LineItem{Voucher: domain.VoucherRef{VoucherID: voucher.VoucherID, Date: voucher.Date}}
		if err := rows.Scan(&line.LineItemID, &line.Amount, &line.Debit, &line.AccountID); err != nil {
			return nil, fmt.Errorf("error scanning line item row: %w", err)
		}
		voucher.Lines = append(voucher.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line item rows: %w", err)
	}
	return &voucher, nil
}
