package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"zlkdex/core"
)

var assetCmd = &cobra.Command{
	Use:   "asset",
	Short: "Issue and inspect ledger assets",
}

var assetIssueCmd = &cobra.Command{
	Use:   "issue <issuer> <total> <name> <symbol> <decimals>",
	Short: "Issue a new asset with caller as its sole initial holder",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		issuer, err := parseAddr(args[0])
		if err != nil {
			return err
		}
		total, err := parseUint64("total", args[1])
		if err != nil {
			return err
		}
		decimals, err := parseUint64("decimals", args[4])
		if err != nil {
			return err
		}
		info := core.NewAssetInfo(args[2], args[3], uint8(decimals))
		id, err := env.Ledger.Issue(core.Signed(issuer), total, info)
		if err != nil {
			return err
		}
		fmt.Printf("issued asset %d\n", id)
		return nil
	},
}

var assetShowCmd = &cobra.Command{
	Use:   "show <asset_id>",
	Short: "Print an asset's metadata and total supply",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseAssetID(args[0])
		if err != nil {
			return err
		}
		info, ok := env.Ledger.AssetInfo(id)
		if !ok {
			return fmt.Errorf("asset %d does not exist", id)
		}
		fmt.Printf("asset %d: name=%q symbol=%q decimals=%d total_supply=%d\n",
			id, info.NameString(), info.SymbolString(), info.Decimals, env.Ledger.TotalSupply(id))
		return nil
	},
}

func init() {
	assetCmd.AddCommand(assetIssueCmd, assetShowCmd)
}
