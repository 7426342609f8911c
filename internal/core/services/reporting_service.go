package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_report_engine/internal/apperrors"
	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_report_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_report_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_report_engine/internal/utils/accounting"
	"github.com/SscSPs/ledger_report_engine/internal/utils/decimalops"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	calc          *decimalops.Calculator
	matcher       *accounting.Matcher
	cashFlowLines []domain.CashFlowLine
	statements    map[domain.ReportType]Statement
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithCashFlowLines replaces the built-in cash flow classification lines.
func WithCashFlowLines(lines []domain.CashFlowLine) ReportingServiceOption {
	return func(s *reportingService) {
		s.cashFlowLines = lines
	}
}

// WithPatternMatcher sets the matcher used to classify cash flow vouchers.
func WithPatternMatcher(matcher *accounting.Matcher) ReportingServiceOption {
	return func(s *reportingService) {
		s.matcher = matcher
	}
}

// WithStatement registers an additional or replacement statement strategy.
func WithStatement(stmt Statement) ReportingServiceOption {
	return func(s *reportingService) {
		s.statements[stmt.ReportType()] = stmt
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, calc *decimalops.Calculator, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo: repo,
		calc:          calc,
		statements:    make(map[domain.ReportType]Statement),
	}

	for _, option := range options {
		option(svc)
	}

	if svc.matcher == nil {
		svc.matcher = accounting.NewMatcher(accounting.DefaultPatternCacheTTL)
	}
	defaults := []Statement{
		NewBalanceSheetStatement(calc),
		NewIncomeStatement(calc),
		NewCashFlowStatement(calc, svc.matcher, svc.cashFlowLines),
	}
	for _, stmt := range defaults {
		if _, overridden := svc.statements[stmt.ReportType()]; !overridden {
			svc.statements[stmt.ReportType()] = stmt
		}
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// GenerateReport builds the requested statement for the period and its prior period.
func (s *reportingService) GenerateReport(ctx context.Context, scope domain.Scope, reportType domain.ReportType, period domain.PeriodRange) (*domain.FinancialReport, error) {
	stmt, ok := s.statements[reportType]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported report type %q", apperrors.ErrValidation, reportType)
	}
	return s.generate(ctx, stmt, scope, period)
}

// generate is the pipeline shared by every statement.
func (s *reportingService) generate(ctx context.Context, stmt Statement, scope domain.Scope, period domain.PeriodRange) (*domain.FinancialReport, error) {
	logger := s.GetLogger(ctx).With(scopeAttrs(scope)...).With(slog.String("report_type", string(stmt.ReportType())))

	if err := period.Validate(); err != nil {
		logger.Warn("Rejected report period", slog.String("error", err.Error()))
		return nil, err
	}
	prior := domain.PriorPeriod(stmt.ReportType(), period)

	data, err := fetchStatementData(ctx, s.reportingRepo, scope, stmt.AccountTypes(),
		domain.FetchWindow(stmt.ReportType(), period),
		domain.FetchWindow(stmt.ReportType(), prior))
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve statement data", scopeAttrs(scope)...)
		return nil, fmt.Errorf("failed to retrieve statement data: %w", err)
	}

	curContent, err := s.runPeriod(logger, stmt, StatementInput{Period: period, Accounts: data.accounts, Items: data.items[0]})
	if err != nil {
		s.LogError(ctx, err, "Failed to compute current period content", scopeAttrs(scope)...)
		return nil, err
	}
	priorContent, err := s.runPeriod(logger, stmt, StatementInput{Period: prior, Accounts: data.accounts, Items: data.items[1]})
	if err != nil {
		s.LogError(ctx, err, "Failed to compute prior period content", scopeAttrs(scope)...)
		return nil, err
	}

	report := &domain.FinancialReport{
		ReportType:  stmt.ReportType(),
		Scope:       scope,
		Period:      period,
		PriorPeriod: prior,
		Content:     BuildReportRows(s.calc, logger, stmt.Flatten(curContent), stmt.Flatten(priorContent)),
		OtherInfo:   stmt.OtherInfo(curContent, priorContent),
	}

	logger.Info("Financial report generated successfully",
		slog.String("start", period.Start.Format(time.DateOnly)),
		slog.String("end", period.End.Format(time.DateOnly)),
		slog.Int("accounts", len(data.accounts)),
		slog.Int("current_items", len(data.items[0])),
		slog.Int("prior_items", len(data.items[1])),
		slog.Int("rows", len(report.Content)))
	return report, nil
}

// runPeriod builds a fresh forest for one period and computes its content.
func (s *reportingService) runPeriod(logger *slog.Logger, stmt Statement, in StatementInput) (*ContentMap, error) {
	forest := stmt.BuildTree(logger, in)
	return stmt.BuildContentMap(forest, in)
}
