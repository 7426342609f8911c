package services

import (
	"context"

	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
)

// VoucherSvc defines operations for validating and posting vouchers
type VoucherSvc interface {
	// ValidateVoucher checks the voucher against the chart of accounts and the double-entry rule.
	ValidateVoucher(ctx context.Context, scope domain.Scope, voucher domain.Voucher) error

	// PostVoucher validates and persists a voucher, assigning ids where missing.
	PostVoucher(ctx context.Context, scope domain.Scope, voucher domain.Voucher) (*domain.Voucher, error)

	// GetVoucher retrieves a persisted voucher.
	GetVoucher(ctx context.Context, scope domain.Scope, voucherID string) (*domain.Voucher, error)
}
