package repositories

import (
	"context"

	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
)

// VoucherReader defines read operations for vouchers
type VoucherReader interface {
	// FindVoucherByID retrieves a voucher with its line items.
	FindVoucherByID(ctx context.Context, scope domain.Scope, voucherID string) (*domain.Voucher, error)
}

// VoucherWriter defines write operations for vouchers
type VoucherWriter interface {
	// SaveVoucher persists a voucher and its line items atomically.
	SaveVoucher(ctx context.Context, scope domain.Scope, voucher domain.Voucher) error
}

// VoucherRepositoryFacade combines all voucher-related repository interfaces
type VoucherRepositoryFacade interface {
	VoucherReader
	VoucherWriter
}
