package memory

import (
	"fmt"
	"os"
	"time"

	"github.com/SscSPs/ledger_report_engine/internal/apperrors"
	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Snapshot is the YAML document holding one company's chart of accounts and postings.
type Snapshot struct {
	TenantID  string           `yaml:"tenant"`
	CompanyID string           `yaml:"company"`
	Accounts  []domain.Account `yaml:"accounts"`
	Vouchers  []VoucherRecord  `yaml:"vouchers"`
}

// VoucherRecord is a voucher as written in a snapshot file.
type VoucherRecord struct {
	ID    string       `yaml:"id"`
	Date  string       `yaml:"date"` // YYYY-MM-DD or RFC 3339
	Memo  string       `yaml:"memo"`
	Lines []LineRecord `yaml:"lines"`
}

// LineRecord is a line item as written in a snapshot file. Amounts are strings
// so they never pass through a float.
type LineRecord struct {
	ID        string `yaml:"id"`
	AccountID string `yaml:"account"`
	Amount    string `yaml:"amount"`
	Debit     bool   `yaml:"debit"`
}

// Scope returns the tenant and company the snapshot belongs to.
func (s Snapshot) Scope() domain.Scope {
	return domain.Scope{TenantID: s.TenantID, CompanyID: s.CompanyID}
}

// ParseSnapshot decodes a YAML snapshot.
func ParseSnapshot(raw []byte) (Snapshot, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: decoding snapshot: %v", apperrors.ErrValidation, err)
	}
	return snap, nil
}

// ReadSnapshot reads and decodes a YAML snapshot file.
func ReadSnapshot(path string) (Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading snapshot %s: %w", path, err)
	}
	return ParseSnapshot(raw)
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, s)
}

func (rec VoucherRecord) voucher() (domain.Voucher, error) {
	date, err := parseDate(rec.Date)
	if err != nil {
		return domain.Voucher{}, fmt.Errorf("voucher %s: %w", rec.ID, err)
	}

	v := domain.Voucher{VoucherID: rec.ID, Date: date, Memo: rec.Memo, Lines: make([]domain.LineItem, 0, len(rec.Lines))}
	for i, line := range rec.Lines {
		amount, err := decimal.NewFromString(line.Amount)
		if err != nil {
			return domain.Voucher{}, fmt.Errorf("%w: voucher %s line %d: invalid amount %q", apperrors.ErrValidation, rec.ID, i, line.Amount)
		}
		id := line.ID
		if id == "" {
			id = fmt.Sprintf("%s-%d", rec.ID, i+1)
		}
		v.Lines = append(v.Lines, domain.LineItem{
			LineItemID: id,
			Amount:     amount,
			Debit:      line.Debit,
			AccountID:  line.AccountID,
			Voucher:    domain.VoucherRef{VoucherID: rec.ID, Date: date},
		})
	}
	return v, nil
}
