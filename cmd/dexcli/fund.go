package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// fundCmd is the dev/test-only escape hatch for crediting native currency:
// there is no public dispatchable for currency issuance since that belongs
// to a native-currency module this repo does not implement.
var fundCmd = &cobra.Command{
	Use:   "fund <account> <amount>",
	Short: "Credit native currency to account (offline testing only, no real dispatchable)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		acct, err := parseAddr(args[0])
		if err != nil {
			return err
		}
		amount, err := parseUint64("amount", args[1])
		if err != nil {
			return err
		}
		if err := env.Currency.Fund(acct, amount); err != nil {
			return err
		}
		fmt.Println("funded")
		return nil
	},
}
