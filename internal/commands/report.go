package commands

import (
	"github.com/spf13/cobra"

	"github.com/SscSPs/ledger_report_engine/internal/core/domain"
	"github.com/SscSPs/ledger_report_engine/internal/dto"
)

func newReportCommand(opts *rootOptions) *cobra.Command {
	var query dto.PeriodQuery

	cmd := &cobra.Command{
		Use:       "report <balance_sheet|income_statement|cash_flow_statement>",
		Short:     "Generate a financial statement compared with its prior period",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(domain.BalanceSheet), string(domain.IncomeStatement), string(domain.CashFlowStatement)},
		RunE: func(cmd *cobra.Command, args []string) error {
			reportType, err := domain.ParseReportType(args[0])
			if err != nil {
				return err
			}
			period, err := query.Period()
			if err != nil {
				return err
			}

			e, err := opts.load(cmd)
			if err != nil {
				return err
			}
			report, err := e.services.Reporting.GenerateReport(cmd.Context(), e.scope, reportType, period)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}
	periodFlags(cmd, &query)

	return cmd
}
