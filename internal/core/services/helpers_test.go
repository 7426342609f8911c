package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_report_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_report_engine/internal/repositories/memory"
	"github.com/SscSPs/ledger_report_engine/internal/utils/decimalops"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T) (*memory.Repository, domain.Scope) {
	t.Helper()
	repo, scope, err := memory.LoadFile("testdata/company.yaml")
	require.NoError(t, err)
	return repo, scope
}

func newCalc() *decimalops.Calculator {
	return decimalops.New(decimalops.DefaultConfig())
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func period(start, end time.Time) domain.PeriodRange {
	return domain.PeriodRange{Start: start, End: end}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func rowByCode(t *testing.T, rows []domain.ReportRow, code string) domain.ReportRow {
	t.Helper()
	for _, r := range rows {
		if r.Code == code {
			return r
		}
	}
	require.Failf(t, "row not found", "code %s", code)
	return domain.ReportRow{}
}

func rowCodes(rows []domain.ReportRow) []string {
	codes := make([]string, len(rows))
	for i, r := range rows {
		codes[i] = r.Code
	}
	return codes
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) FindAccounts(ctx context.Context, scope domain.Scope, accountType domain.AccountType, filter portsrepo.AccountFilter) ([]domain.Account, error) {
	args := m.Called(ctx, scope, accountType, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockReportingRepository) FindAccountsByIDs(ctx context.Context, scope domain.Scope, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, scope, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockReportingRepository) FindLineItems(ctx context.Context, scope domain.Scope, accountTypes []domain.AccountType, start, end time.Time) ([]domain.LineItem, error) {
	args := m.Called(ctx, scope, accountTypes, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LineItem), args.Error(1)
}

// --- Mock VoucherRepository ---
type MockVoucherRepository struct {
	mock.Mock
}

var _ portsrepo.VoucherRepositoryFacade = (*MockVoucherRepository)(nil)

func (m *MockVoucherRepository) SaveVoucher(ctx context.Context, scope domain.Scope, voucher domain.Voucher) error {
	args := m.Called(ctx, scope, voucher)
	return args.Error(0)
}

func (m *MockVoucherRepository) FindVoucherByID(ctx context.Context, scope domain.Scope, voucherID string) (*domain.Voucher, error) {
	args := m.Called(ctx, scope, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}
