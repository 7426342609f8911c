package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherRef is the posting a line item belongs to.
type VoucherRef struct {
	VoucherID string    `json:"voucherID"`
	Date      time.Time `json:"date"`
}

// LineItem is one debit or credit leg of a voucher, posted to one account.
type LineItem struct {
	LineItemID string          `json:"lineItemID"`
	Amount     decimal.Decimal `json:"amount"` // positive value
	Debit      bool            `json:"debit"`  // side the entry posts to
	AccountID  string          `json:"accountID"`
	Voucher    VoucherRef      `json:"voucher"`
}

// Voucher is a single accounting posting. Its debits must equal its credits.
type Voucher struct {
	VoucherID string     `json:"voucherID"`
	Date      time.Time  `json:"date"`
	Memo      string     `json:"memo"`
	Lines     []LineItem `json:"lines"`
}

// Debits returns the amounts of the debit legs.
func (v Voucher) Debits() []decimal.Decimal {
	return v.side(true)
}

// Credits returns the amounts of the credit legs.
func (v Voucher) Credits() []decimal.Decimal {
	return v.side(false)
}

func (v Voucher) side(debit bool) []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(v.Lines))
	for _, l := range v.Lines {
		if l.Debit == debit {
			out = append(out, l.Amount)
		}
	}
	return out
}
