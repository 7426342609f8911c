package commands

import (
	"github.com/spf13/cobra"

	"github.com/SscSPs/ledger_report_engine/internal/dto"
)

func newLedgerCommand(opts *rootOptions) *cobra.Command {
	var query dto.PeriodQuery

	cmd := &cobra.Command{
		Use:   "ledger <account-code>",
		Short: "Print the running-balance ledger of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := query.Period()
			if err != nil {
				return err
			}

			e, err := opts.load(cmd)
			if err != nil {
				return err
			}
			ledger, err := e.services.Ledger.AccountLedger(cmd.Context(), e.scope, args[0], period)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), ledger)
		},
	}
	periodFlags(cmd, &query)

	return cmd
}
