package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Transfer, approve and inspect asset balances",
}

var ledgerTransferCmd = &cobra.Command{
	Use:   "transfer <caller> <asset_id> <target> <amount>",
	Short: "Move amount of asset from caller to target",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, err := parseAddr(args[0])
		if err != nil {
			return err
		}
		asset, err := parseAssetID(args[1])
		if err != nil {
			return err
		}
		target, err := parseAddr(args[2])
		if err != nil {
			return err
		}
		amount, err := parseUint64("amount", args[3])
		if err != nil {
			return err
		}
		if err := env.Ledger.Transfer(signedOrigin(caller), asset, target, amount); err != nil {
			return err
		}
		fmt.Println("transfer ok")
		return nil
	},
}

var ledgerAllowCmd = &cobra.Command{
	Use:   "allow <owner> <asset_id> <spender> <amount>",
	Short: "Set the allowance spender may draw from owner's balance",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, err := parseAddr(args[0])
		if err != nil {
			return err
		}
		asset, err := parseAssetID(args[1])
		if err != nil {
			return err
		}
		spender, err := parseAddr(args[2])
		if err != nil {
			return err
		}
		amount, err := parseUint64("amount", args[3])
		if err != nil {
			return err
		}
		if err := env.Ledger.Allow(signedOrigin(owner), asset, spender, amount); err != nil {
			return err
		}
		fmt.Println("allow ok")
		return nil
	},
}

var ledgerTransferFromCmd = &cobra.Command{
	Use:   "transfer-from <spender> <asset_id> <owner> <target> <amount>",
	Short: "Move amount from owner to target, drawing down spender's allowance",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		spender, err := parseAddr(args[0])
		if err != nil {
			return err
		}
		asset, err := parseAssetID(args[1])
		if err != nil {
			return err
		}
		owner, err := parseAddr(args[2])
		if err != nil {
			return err
		}
		target, err := parseAddr(args[3])
		if err != nil {
			return err
		}
		amount, err := parseUint64("amount", args[4])
		if err != nil {
			return err
		}
		if err := env.Ledger.TransferFrom(signedOrigin(spender), asset, owner, target, amount); err != nil {
			return err
		}
		fmt.Println("transfer_from ok")
		return nil
	},
}

var ledgerBalanceCmd = &cobra.Command{
	Use:   "balance <asset_id> <account>",
	Short: "Print an account's balance of asset",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		asset, err := parseAssetID(args[0])
		if err != nil {
			return err
		}
		acct, err := parseAddr(args[1])
		if err != nil {
			return err
		}
		fmt.Println(env.Ledger.BalanceOf(asset, acct))
		return nil
	},
}

var ledgerAllowanceCmd = &cobra.Command{
	Use:   "allowance <asset_id> <owner> <spender>",
	Short: "Print the allowance spender holds over owner's asset balance",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		asset, err := parseAssetID(args[0])
		if err != nil {
			return err
		}
		owner, err := parseAddr(args[1])
		if err != nil {
			return err
		}
		spender, err := parseAddr(args[2])
		if err != nil {
			return err
		}
		fmt.Println(env.Ledger.AllowanceOf(asset, owner, spender))
		return nil
	},
}

func init() {
	ledgerCmd.AddCommand(ledgerTransferCmd, ledgerAllowCmd, ledgerTransferFromCmd, ledgerBalanceCmd, ledgerAllowanceCmd)
}
