package accounting

import (
	"fmt"

	"github.com/SscSPs/ledger_report_engine/internal/apperrors"
	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
	"github.com/SscSPs/ledger_report_engine/internal/utils/decimalops"
	"github.com/shopspring/decimal"
)

// ErrUnbalancedVoucher is returned when a voucher's debits and credits differ.
var ErrUnbalancedVoucher = fmt.Errorf("%w: voucher debits and credits do not balance", apperrors.ErrDataIntegrity)

// SignedAmount applies the side-aware sign to a line item amount.
// An entry posted to the account's normal side increases its balance, the other side decreases it.
func SignedAmount(item domain.LineItem, normalDebit bool) decimal.Decimal {
	if item.Debit == normalDebit {
		return item.Amount
	}
	return item.Amount.Neg()
}

// ValidateVoucher checks that a voucher has at least two legs, that every amount
// is positive, that every leg posts to a known account and that debits equal credits.
func ValidateVoucher(voucher domain.Voucher, accounts map[string]domain.Account) error {
	if len(voucher.Lines) < 2 {
		return fmt.Errorf("%w: voucher must have at least two line items", apperrors.ErrValidation)
	}

	for _, line := range voucher.Lines {
		if !line.Amount.IsPositive() {
			return fmt.Errorf("%w: line item amount must be positive for line item %s", apperrors.ErrValidation, line.LineItemID)
		}
		if _, ok := accounts[line.AccountID]; !ok {
			return fmt.Errorf("%w: account %s for line item %s", apperrors.ErrNotFound, line.AccountID, line.LineItemID)
		}
	}

	if !decimalops.IsBalancedDecimal(voucher.Debits(), voucher.Credits()) {
		return fmt.Errorf("%w: debits %s, credits %s", ErrUnbalancedVoucher,
			decimalops.SumDecimal(voucher.Debits()...).String(),
			decimalops.SumDecimal(voucher.Credits()...).String())
	}
	return nil
}
