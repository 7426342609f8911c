package dto

import (
	"time"

	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLineItemRequest is one leg of a posted voucher.
type CreateLineItemRequest struct {
	LineItemID string          `json:"lineItemID" binding:"omitempty,max=64"`
	AccountID  string          `json:"accountID" binding:"required,max=64"`
	Amount     decimal.Decimal `json:"amount"` // must be positive, checked on validation
	Debit      bool            `json:"debit"`
}

// CreateVoucherRequest is the body of POST /vouchers.
type CreateVoucherRequest struct {
	VoucherID string                  `json:"voucherID" binding:"omitempty,max=64"`
	Date      string                  `json:"date" binding:"required,datetime=2006-01-02"`
	Memo      string                  `json:"memo" binding:"max=512"`
	Lines     []CreateLineItemRequest `json:"lines" binding:"required,min=2,dive"`
}

// ToDomain converts the request into a voucher. Date must already be validated.
func (r CreateVoucherRequest) ToDomain() domain.Voucher {
	date, _ := time.Parse(DateLayout, r.Date)
	v := domain.Voucher{
		VoucherID: r.VoucherID,
		Date:      date.UTC(),
		Memo:      r.Memo,
		Lines:     make([]domain.LineItem, len(r.Lines)),
	}
	for i, l := range r.Lines {
		v.Lines[i] = domain.LineItem{
			LineItemID: l.LineItemID,
			AccountID:  l.AccountID,
			Amount:     l.Amount,
			Debit:      l.Debit,
		}
	}
	return v
}

// VoucherResponse is the representation of a stored voucher.
type VoucherResponse struct {
	VoucherID string             `json:"voucherID"`
	Date      string             `json:"date"`
	Memo      string             `json:"memo"`
	Lines     []LineItemResponse `json:"lines"`
}

// LineItemResponse is one leg of a VoucherResponse.
type LineItemResponse struct {
	LineItemID string          `json:"lineItemID"`
	AccountID  string          `json:"accountID"`
	Amount     decimal.Decimal `json:"amount"`
	Debit      bool            `json:"debit"`
}

// ToVoucherResponse converts a domain voucher to its response DTO.
func ToVoucherResponse(v *domain.Voucher) VoucherResponse {
	resp := VoucherResponse{
		VoucherID: v.VoucherID,
		Date:      v.Date.Format(DateLayout),
		Memo:      v.Memo,
		Lines:     make([]LineItemResponse, len(v.Lines)),
	}
	for i, l := range v.Lines {
		resp.Lines[i] = LineItemResponse{LineItemID: l.LineItemID, AccountID: l.AccountID, Amount: l.Amount, Debit: l.Debit}
	}
	return resp
}
