package services

import (
	"fmt"

	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_report_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_report_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_report_engine/internal/platform/config"
	"github.com/SscSPs/ledger_report_engine/internal/utils/accounting"
	"github.com/SscSPs/ledger_report_engine/internal/utils/decimalops"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) (*portssvc.ServiceContainer, error) {
	calc := decimalops.New(cfg.DecimalConfig())
	matcher := accounting.NewMatcher(cfg.PatternCacheTTL)

	var lines []domain.CashFlowLine
	if cfg.CashFlowRulesFile != "" {
		loaded, err := LoadCashFlowLines(cfg.CashFlowRulesFile)
		if err != nil {
			return nil, fmt.Errorf("loading cash flow rules from %s: %w", cfg.CashFlowRulesFile, err)
		}
		lines = loaded
	}

	return &portssvc.ServiceContainer{
		Reporting:    NewReportingService(repos.ReportingRepo, calc, WithPatternMatcher(matcher), WithCashFlowLines(lines)),
		TrialBalance: NewTrialBalanceService(repos.ReportingRepo),
		Ledger:       NewLedgerService(repos.ReportingRepo),
		Voucher:      NewVoucherService(repos.ReportingRepo, repos.VoucherRepo),
	}, nil
}
