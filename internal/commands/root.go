package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_report_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_report_engine/internal/core/services"
	"github.com/SscSPs/ledger_report_engine/internal/dto"
	"github.com/SscSPs/ledger_report_engine/internal/platform/config"
	"github.com/SscSPs/ledger_report_engine/internal/platform/logging"
	"github.com/SscSPs/ledger_report_engine/internal/repositories/memory"
)

type rootOptions struct {
	snapshot      string
	cashFlowRules string
	logLevel      string
}

// engine is the service layer wired over one loaded snapshot.
type engine struct {
	repo     *memory.Repository
	scope    domain.Scope
	services *portssvc.ServiceContainer
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "reportctl",
		Short: "Financial statements, ledgers and trial balances from a ledger snapshot",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.snapshot, "snapshot", "", "YAML snapshot with accounts and vouchers (required)")
	_ = rootCmd.MarkPersistentFlagRequired("snapshot")
	rootCmd.PersistentFlags().StringVar(&opts.cashFlowRules, "cashflow-rules", "", "YAML cash flow classification lines")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")

	rootCmd.AddCommand(
		newReportCommand(opts),
		newLedgerCommand(opts),
		newTrialBalanceCommand(opts),
		newValidateCommand(opts),
	)

	return rootCmd
}

func (o *rootOptions) load(cmd *cobra.Command) (*engine, error) {
	slog.SetDefault(logging.New(cmd.ErrOrStderr(), "text", o.logLevel))

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if o.cashFlowRules != "" {
		cfg.CashFlowRulesFile = o.cashFlowRules
	}

	repo, scope, err := memory.LoadFile(o.snapshot)
	if err != nil {
		return nil, err
	}
	container, err := services.NewServiceContainer(cfg, memory.NewRepositoryProvider(repo))
	if err != nil {
		return nil, err
	}
	return &engine{repo: repo, scope: scope, services: container}, nil
}

// periodFlags registers --start and --end on cmd.
func periodFlags(cmd *cobra.Command, q *dto.PeriodQuery) {
	cmd.Flags().StringVar(&q.Start, "start", "", "period start, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&q.End, "end", "", "period end, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
