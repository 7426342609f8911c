package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/ledger_report_engine/internal/apperrors"
	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_report_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_report_engine/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	service portssvc.ReportingService
	scope   domain.Scope
	year    domain.PeriodRange
}

func (s *ReportingServiceTestSuite) SetupTest() {
	repo, scope := loadFixture(s.T())
	s.service = services.NewReportingService(repo, newCalc())
	s.scope = scope
	s.year = period(date(2024, 1, 1), date(2024, 12, 31))
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}

func (s *ReportingServiceTestSuite) TestBalanceSheet() {
	report, err := s.service.GenerateReport(context.Background(), s.scope, domain.BalanceSheet, s.year)
	s.Require().NoError(err)

	s.Equal(domain.PeriodRange{Start: domain.Epoch, End: date(2023, 12, 31)}, report.PriorPeriod)
	s.Equal([]string{
		"11", "1101", "1102", "1201", "15", "1501", services.TotalAssetCode,
		"21", "2101", "25", "2501", services.TotalLiabilityCode,
		"31", "3101", services.TotalEquityCode,
		services.TotalLiabilityAndEquityCode,
	}, rowCodes(report.Content))

	current := rowByCode(s.T(), report.Content, "11")
	s.True(dec("14500").Equal(current.CurAmount))
	s.True(dec("83").Equal(current.CurPercentage))
	s.True(dec("1000").Equal(current.PriorAmount))
	s.True(dec("100").Equal(current.PriorPercentage))
	s.Equal(0, current.Indent)

	cash := rowByCode(s.T(), report.Content, "1101")
	s.True(dec("7500").Equal(cash.CurAmount))
	s.True(dec("43").Equal(cash.CurPercentage))
	s.Equal(1, cash.Indent)

	total := rowByCode(s.T(), report.Content, services.TotalAssetCode)
	s.Equal("17,500.00", total.CurFormatted)
	s.True(dec("100").Equal(total.CurPercentage))

	loan := rowByCode(s.T(), report.Content, "25")
	s.True(dec("5000").Equal(loan.CurAmount), "credit-normal balances are positive")
	s.True(dec("31").Equal(loan.CurPercentage))
	s.True(loan.PriorAmount.IsZero())

	info, ok := report.OtherInfo.(services.PeriodInfo[services.BalanceSheetInfo])
	s.Require().True(ok)
	s.True(dec("17500").Equal(info.Current.TotalAssets))
	s.True(dec("16000").Equal(info.Current.TotalLiabilitiesAndEquity))
	s.False(info.Current.Balanced, "current earnings are not closed into equity")
	s.False(info.Current.CurrentRatio.Valid, "no liquid liabilities")
	s.Require().True(info.Current.DebtRatio.Valid)
	s.True(dec("0.29").Equal(info.Current.DebtRatio.Decimal.Round(2)))
	s.True(info.Prior.Balanced)
}

func (s *ReportingServiceTestSuite) TestIncomeStatement() {
	report, err := s.service.GenerateReport(context.Background(), s.scope, domain.IncomeStatement, s.year)
	s.Require().NoError(err)

	s.Equal(period(date(2023, 1, 1), date(2023, 12, 31)), report.PriorPeriod)
	s.Equal([]string{"41", services.TotalRevenueCode, "51", services.TotalExpenseCode, services.NetIncomeCode}, rowCodes(report.Content))

	net := rowByCode(s.T(), report.Content, services.NetIncomeCode)
	s.True(dec("1500").Equal(net.CurAmount))
	s.True(dec("75").Equal(net.CurPercentage))
	s.True(net.PriorAmount.IsZero())
	s.True(net.PriorPercentage.IsZero(), "zero revenue yields no percentage")

	rent := rowByCode(s.T(), report.Content, "51")
	s.True(dec("25").Equal(rent.CurPercentage))

	info := report.OtherInfo.(services.PeriodInfo[services.IncomeStatementInfo])
	s.True(dec("0.75").Equal(info.Current.NetMargin.Decimal))
	s.True(dec("0.25").Equal(info.Current.ExpenseRatio.Decimal))
	s.False(info.Prior.NetMargin.Valid)
}

func (s *ReportingServiceTestSuite) TestCashFlowStatement() {
	report, err := s.service.GenerateReport(context.Background(), s.scope, domain.CashFlowStatement, s.year)
	s.Require().NoError(err)

	s.Equal([]string{
		"CF_OPERATING", "CF_OPE_GENERAL",
		"CF_INVESTING", "CF_INV_LONG_TERM_ASSETS",
		"CF_FINANCING", "CF_FIN_DEBT", "CF_FIN_EQUITY",
		services.NetChangeCode,
	}, rowCodes(report.Content))

	s.True(dec("-500").Equal(rowByCode(s.T(), report.Content, "CF_OPERATING").CurAmount))
	s.True(dec("-3000").Equal(rowByCode(s.T(), report.Content, "CF_INV_LONG_TERM_ASSETS").CurAmount))

	debt := rowByCode(s.T(), report.Content, "CF_FIN_DEBT")
	s.True(dec("5000").Equal(debt.CurAmount))
	s.True(dec("33").Equal(debt.CurPercentage))
	s.Equal(1, debt.Indent)

	equity := rowByCode(s.T(), report.Content, "CF_FIN_EQUITY")
	s.True(dec("10000").Equal(equity.CurAmount))
	s.True(dec("1000").Equal(equity.PriorAmount))

	net := rowByCode(s.T(), report.Content, services.NetChangeCode)
	s.True(dec("11500").Equal(net.CurAmount), "net change equals the movement of liquid accounts")

	info := report.OtherInfo.(services.PeriodInfo[services.CashFlowInfo])
	s.True(dec("15000").Equal(info.Current.Financing))
	s.True(info.Current.Unclassified.IsZero())
}

func (s *ReportingServiceTestSuite) TestCustomCashFlowLinesLeaveUnclassified() {
	repo, scope := loadFixture(s.T())
	lines, err := services.ParseCashFlowLines([]byte(`
lines:
  - code: CF_FIN_CAPITAL
    name: Capital
    activity: financing
    credit:
      code: ["^31"]
`))
	s.Require().NoError(err)

	svc := services.NewReportingService(repo, newCalc(), services.WithCashFlowLines(lines))
	report, err := svc.GenerateReport(context.Background(), scope, domain.CashFlowStatement, s.year)
	s.Require().NoError(err)

	s.Equal([]string{"CF_OPERATING", "CF_INVESTING", "CF_FINANCING", "CF_FIN_CAPITAL", services.NetChangeCode}, rowCodes(report.Content))
	info := report.OtherInfo.(services.PeriodInfo[services.CashFlowInfo])
	s.True(dec("10000").Equal(info.Current.NetChange))
	s.True(dec("1500").Equal(info.Current.Unclassified), "equipment, loan and rent vouchers match no line")
}

func (s *ReportingServiceTestSuite) TestValidation() {
	ctx := context.Background()

	_, err := s.service.GenerateReport(ctx, s.scope, domain.ReportType("PNL"), s.year)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.service.GenerateReport(ctx, s.scope, domain.BalanceSheet, period(date(2024, 2, 1), date(2024, 1, 1)))
	s.ErrorIs(err, domain.ErrInvalidPeriod)
}

func (s *ReportingServiceTestSuite) TestEmptyScopeProducesZeroRows() {
	report, err := s.service.GenerateReport(context.Background(), domain.Scope{TenantID: "x", CompanyID: "y"}, domain.IncomeStatement, s.year)
	s.Require().NoError(err)
	s.Equal([]string{services.TotalRevenueCode, services.TotalExpenseCode, services.NetIncomeCode}, rowCodes(report.Content))
}

func (s *ReportingServiceTestSuite) TestFetchFailureFailsReport() {
	repo := new(MockReportingRepository)
	boom := errors.New("connection reset")
	repo.On("FindAccounts", mock.Anything, s.scope, domain.Liability, mock.Anything).Return(nil, boom)
	repo.On("FindAccounts", mock.Anything, s.scope, mock.Anything, mock.Anything).Return([]domain.Account{}, nil)
	repo.On("FindLineItems", mock.Anything, s.scope, mock.Anything, mock.Anything, mock.Anything).Return([]domain.LineItem{}, nil)

	svc := services.NewReportingService(repo, newCalc())
	report, err := svc.GenerateReport(context.Background(), s.scope, domain.BalanceSheet, s.year)
	s.Nil(report)
	s.ErrorIs(err, boom)
}
