package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_report_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_report_engine/internal/core/ports/services"
)

// trialBalanceService implements the TrialBalanceService interface
type trialBalanceService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewTrialBalanceService creates a new trial balance service
func NewTrialBalanceService(repo portsrepo.ReportingRepository) portssvc.TrialBalanceService {
	return &trialBalanceService{reportingRepo: repo}
}

var _ portssvc.TrialBalanceService = (*trialBalanceService)(nil)

// TrialBalance reads every account type and all items up to the period end, then
// aggregates them per account.
func (s *trialBalanceService) TrialBalance(ctx context.Context, scope domain.Scope, period domain.PeriodRange, sort domain.TrialBalanceSort) (*domain.TrialBalanceReport, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	if _, _, err := resolveTrialBalanceSort(sort); err != nil {
		s.LogWarn(ctx, "Rejected trial balance sort", slog.String("sort_by", sort.SortBy), slog.String("order", sort.Order))
		return nil, err
	}

	data, err := fetchStatementData(ctx, s.reportingRepo, scope, domain.AllAccountTypes,
		domain.PeriodRange{Start: domain.Epoch, End: period.End})
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data", scopeAttrs(scope)...)
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	report, err := ProcessTrialBalance(data.accounts, data.items[0], period, sort)
	if err != nil {
		s.LogError(ctx, err, "Failed to process trial balance", scopeAttrs(scope)...)
		return nil, err
	}

	s.LogInfo(ctx, "Trial balance generated successfully",
		slog.String("company_id", scope.CompanyID),
		slog.Int("row_count", len(report.Items)),
		slog.Bool("balanced", report.Balanced))
	return report, nil
}
