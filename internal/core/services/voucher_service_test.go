package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/ledger_report_engine/internal/apperrors"
	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
	"github.com/SscSPs/ledger_report_engine/internal/core/services"
	"github.com/SscSPs/ledger_report_engine/internal/utils/accounting"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type VoucherServiceTestSuite struct {
	suite.Suite
	accountRepo *MockReportingRepository
	voucherRepo *MockVoucherRepository
	scope       domain.Scope
	accounts    map[string]domain.Account
}

func (s *VoucherServiceTestSuite) SetupTest() {
	s.accountRepo = new(MockReportingRepository)
	s.voucherRepo = new(MockVoucherRepository)
	s.scope = domain.Scope{TenantID: "acme", CompanyID: "acme-trading"}
	s.accounts = map[string]domain.Account{
		"a1101": {AccountID: "a1101", Code: "1101", AccountType: domain.Asset, Debit: true},
		"a41":   {AccountID: "a41", Code: "41", AccountType: domain.Revenue},
	}
}

func TestVoucherServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VoucherServiceTestSuite))
}

func (s *VoucherServiceTestSuite) voucher(debit, credit string) domain.Voucher {
	return domain.Voucher{
		Date: date(2024, 7, 1),
		Memo: "cash sale",
		Lines: []domain.LineItem{
			{AccountID: "a1101", Amount: dec(debit), Debit: true},
			{AccountID: "a41", Amount: dec(credit)},
		},
	}
}

func (s *VoucherServiceTestSuite) TestPostVoucher_Success() {
	svc := services.NewVoucherService(s.accountRepo, s.voucherRepo)
	s.accountRepo.On("FindAccountsByIDs", mock.Anything, s.scope, []string{"a1101", "a41"}).Return(s.accounts, nil).Once()
	s.voucherRepo.On("SaveVoucher", mock.Anything, s.scope, mock.MatchedBy(func(v domain.Voucher) bool {
		return v.VoucherID != "" && len(v.Lines) == 2 && v.Lines[0].Voucher.VoucherID == v.VoucherID
	})).Return(nil).Once()

	posted, err := svc.PostVoucher(context.Background(), s.scope, s.voucher("120.50", "120.50"))
	s.Require().NoError(err)
	s.NotEmpty(posted.VoucherID)
	for _, line := range posted.Lines {
		s.NotEmpty(line.LineItemID)
		s.Equal(date(2024, 7, 1), line.Voucher.Date)
	}
	s.accountRepo.AssertExpectations(s.T())
	s.voucherRepo.AssertExpectations(s.T())
}

func (s *VoucherServiceTestSuite) TestPostVoucher_UnbalancedIsNeverSaved() {
	svc := services.NewVoucherService(s.accountRepo, s.voucherRepo)
	s.accountRepo.On("FindAccountsByIDs", mock.Anything, s.scope, mock.Anything).Return(s.accounts, nil)

	posted, err := svc.PostVoucher(context.Background(), s.scope, s.voucher("100", "99.99"))
	s.Nil(posted)
	s.ErrorIs(err, accounting.ErrUnbalancedVoucher)
	s.ErrorIs(err, apperrors.ErrDataIntegrity)
	s.voucherRepo.AssertNotCalled(s.T(), "SaveVoucher", mock.Anything, mock.Anything, mock.Anything)
}

func (s *VoucherServiceTestSuite) TestPostVoucher_UnknownAccount() {
	svc := services.NewVoucherService(s.accountRepo, s.voucherRepo)
	s.accountRepo.On("FindAccountsByIDs", mock.Anything, s.scope, mock.Anything).
		Return(map[string]domain.Account{"a1101": s.accounts["a1101"]}, nil)

	_, err := svc.PostVoucher(context.Background(), s.scope, s.voucher("10", "10"))
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.voucherRepo.AssertNotCalled(s.T(), "SaveVoucher", mock.Anything, mock.Anything, mock.Anything)
}

func (s *VoucherServiceTestSuite) TestPostVoucher_SaveFailure() {
	svc := services.NewVoucherService(s.accountRepo, s.voucherRepo)
	boom := errors.New("disk full")
	s.accountRepo.On("FindAccountsByIDs", mock.Anything, s.scope, mock.Anything).Return(s.accounts, nil)
	s.voucherRepo.On("SaveVoucher", mock.Anything, s.scope, mock.Anything).Return(boom)

	_, err := svc.PostVoucher(context.Background(), s.scope, s.voucher("10", "10"))
	s.ErrorIs(err, boom)
}

func (s *VoucherServiceTestSuite) TestValidateVoucher_LookupFailure() {
	svc := services.NewVoucherService(s.accountRepo, s.voucherRepo)
	boom := errors.New("timeout")
	s.accountRepo.On("FindAccountsByIDs", mock.Anything, s.scope, mock.Anything).Return(nil, boom)

	err := svc.ValidateVoucher(context.Background(), s.scope, s.voucher("10", "10"))
	s.ErrorIs(err, boom)
}

func (s *VoucherServiceTestSuite) TestGetVoucher() {
	svc := services.NewVoucherService(s.accountRepo, s.voucherRepo)
	stored := &domain.Voucher{VoucherID: "v1"}
	s.voucherRepo.On("FindVoucherByID", mock.Anything, s.scope, "v1").Return(stored, nil)
	s.voucherRepo.On("FindVoucherByID", mock.Anything, s.scope, "v2").Return(nil, nil)

	got, err := svc.GetVoucher(context.Background(), s.scope, "v1")
	s.Require().NoError(err)
	s.Equal("v1", got.VoucherID)

	_, err = svc.GetVoucher(context.Background(), s.scope, "v2")
	s.ErrorIs(err, apperrors.ErrNotFound)
}
