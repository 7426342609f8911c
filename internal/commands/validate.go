package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

type voucherCheck struct {
	VoucherID string `json:"voucherID"`
	Valid     bool   `json:"valid"`
	Error     string `json:"error,omitempty"`
}

func newValidateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that every voucher in the snapshot is balanced and references known accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.load(cmd)
			if err != nil {
				return err
			}
			vouchers, err := e.repo.ListVouchers(cmd.Context(), e.scope)
			if err != nil {
				return err
			}

			checks := make([]voucherCheck, 0, len(vouchers))
			failed := 0
			for _, v := range vouchers {
				check := voucherCheck{VoucherID: v.VoucherID, Valid: true}
				if err := e.services.Voucher.ValidateVoucher(cmd.Context(), e.scope, v); err != nil {
					check.Valid = false
					check.Error = err.Error()
					failed++
				}
				checks = append(checks, check)
			}

			if err := writeJSON(cmd.OutOrStdout(), checks); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d vouchers failed validation", failed, len(vouchers))
			}
			return nil
		},
	}
}
