package commands

import (
	"github.com/spf13/cobra"

	"github.com/SscSPs/ledger_report_engine/internal/dto"
)

func newTrialBalanceCommand(opts *rootOptions) *cobra.Command {
	var query dto.TrialBalanceQuery

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Print beginning, midterm and ending totals per account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := query.Period()
			if err != nil {
				return err
			}

			e, err := opts.load(cmd)
			if err != nil {
				return err
			}
			report, err := e.services.TrialBalance.TrialBalance(cmd.Context(), e.scope, period, query.Sort())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}
	periodFlags(cmd, &query.PeriodQuery)
	cmd.Flags().StringVar(&query.SortBy, "sort-by", "code", "code, name or amount")
	cmd.Flags().StringVar(&query.Order, "order", "asc", "asc or desc")

	return cmd
}
