package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_report_engine/internal/apperrors"
	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_report_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_report_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_report_engine/internal/utils/accounting"
	"github.com/google/uuid"
)

// voucherService implements the VoucherSvc interface
type voucherService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	voucherRepo portsrepo.VoucherRepositoryFacade
}

// NewVoucherService creates a new voucher service
func NewVoucherService(accountRepo portsrepo.AccountReader, voucherRepo portsrepo.VoucherRepositoryFacade) portssvc.VoucherSvc {
	return &voucherService{accountRepo: accountRepo, voucherRepo: voucherRepo}
}

var _ portssvc.VoucherSvc = (*voucherService)(nil)

// ValidateVoucher checks the voucher legs against the scope's chart of accounts.
func (s *voucherService) ValidateVoucher(ctx context.Context, scope domain.Scope, voucher domain.Voucher) error {
	accountIDs := make([]string, 0, len(voucher.Lines))
	for _, line := range voucher.Lines {
		accountIDs = append(accountIDs, line.AccountID)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, scope, uniqueStrings(accountIDs))
	if err != nil {
		return fmt.Errorf("failed to find accounts: %w", err)
	}
	return accounting.ValidateVoucher(voucher, accounts)
}

// PostVoucher assigns missing ids, validates the voucher and saves it. A voucher
// that fails validation is never saved.
func (s *voucherService) PostVoucher(ctx context.Context, scope domain.Scope, voucher domain.Voucher) (*domain.Voucher, error) {
	if voucher.VoucherID == "" {
		voucher.VoucherID = uuid.NewString()
	}
	lines := make([]domain.LineItem, len(voucher.Lines))
	for i, line := range voucher.Lines {
		if line.LineItemID == "" {
			line.LineItemID = uuid.NewString()
		}
		line.Voucher = domain.VoucherRef{VoucherID: voucher.VoucherID, Date: voucher.Date}
		lines[i] = line
	}
	voucher.Lines = lines

	if err := s.ValidateVoucher(ctx, scope, voucher); err != nil {
		s.LogWarn(ctx, "Rejected voucher",
			slog.String("voucher_id", voucher.VoucherID),
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.voucherRepo.SaveVoucher(ctx, scope, voucher); err != nil {
		s.LogError(ctx, err, "Failed to save voucher", slog.String("voucher_id", voucher.VoucherID))
		return nil, fmt.Errorf("failed to save voucher: %w", err)
	}

	s.LogInfo(ctx, "Voucher posted successfully",
		slog.String("voucher_id", voucher.VoucherID),
		slog.Int("line_count", len(voucher.Lines)))
	return &voucher, nil
}

// GetVoucher retrieves a voucher with its line items.
func (s *voucherService) GetVoucher(ctx context.Context, scope domain.Scope, voucherID string) (*domain.Voucher, error) {
	voucher, err := s.voucherRepo.FindVoucherByID(ctx, scope, voucherID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find voucher %s: %w", voucherID, err)
	}
	if voucher == nil {
		return nil, fmt.Errorf("%w: voucher %s", apperrors.ErrNotFound, voucherID)
	}
	return voucher, nil
}

func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	out := make([]string, 0, len(input))
	for _, v := range input {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
