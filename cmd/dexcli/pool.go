package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Create pools and manage liquidity",
}

var poolCreateCmd = &cobra.Command{
	Use:   "create <caller> <token_id>",
	Short: "Create an exchange pairing token_id with the native currency",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, err := parseAddr(args[0])
		if err != nil {
			return err
		}
		tokenID, err := parseAssetID(args[1])
		if err != nil {
			return err
		}
		pid, err := env.Engine.CreateExchange(signedOrigin(caller), tokenID)
		if err != nil {
			return err
		}
		fmt.Printf("created pool %d\n", pid)
		return nil
	},
}

var poolShowCmd = &cobra.Command{
	Use:   "show <pool_id>",
	Short: "Print a pool's token, LP asset, account and live reserves",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pid, err := parsePoolID(args[0])
		if err != nil {
			return err
		}
		pool, ok := env.Pools.PoolByID(pid)
		if !ok {
			return fmt.Errorf("pool %d does not exist", pid)
		}
		tokenReserve := env.Ledger.BalanceOf(pool.TokenID, pool.Account)
		currencyReserve := env.Currency.FreeBalance(pool.Account)
		lpSupply := env.Ledger.TotalSupply(pool.LiquidityID)
		fmt.Printf("pool %d: token=%d liquidity_asset=%d account=%s token_reserve=%d currency_reserve=%d lp_supply=%d\n",
			pool.ID, pool.TokenID, pool.LiquidityID, pool.Account, tokenReserve, currencyReserve, lpSupply)
		return nil
	},
}

var poolListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every pool in the registry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, pool := range env.Pools.AllPools() {
			fmt.Printf("pool %d: token=%d liquidity_asset=%d account=%s\n", pool.ID, pool.TokenID, pool.LiquidityID, pool.Account)
		}
		return nil
	},
}

var poolAddLiquidityCmd = &cobra.Command{
	Use:   "add-liquidity <caller> <pool_id> <currency_amount> <min_liquidity> <max_tokens> <deadline>",
	Short: "Deposit currency and token into a pool, minting LP shares",
	Args:  cobra.ExactArgs(6),
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, err := parseAddr(args[0])
		if err != nil {
			return err
		}
		pid, err := parsePoolID(args[1])
		if err != nil {
			return err
		}
		currencyAmount, err := parseUint64("currency_amount", args[2])
		if err != nil {
			return err
		}
		minLiquidity, err := parseUint64("min_liquidity", args[3])
		if err != nil {
			return err
		}
		maxTokens, err := parseUint64("max_tokens", args[4])
		if err != nil {
			return err
		}
		deadline, err := parseUint64("deadline", args[5])
		if err != nil {
			return err
		}
		tokenAmount, err := env.Engine.AddLiquidity(signedOrigin(caller), pid, currencyAmount, minLiquidity, maxTokens, deadline)
		if err != nil {
			return err
		}
		fmt.Printf("deposited %d tokens, minted liquidity\n", tokenAmount)
		return nil
	},
}

var poolRemoveLiquidityCmd = &cobra.Command{
	Use:   "remove-liquidity <caller> <pool_id> <shares> <min_currency> <min_tokens> <deadline>",
	Short: "Burn LP shares and withdraw a proportional share of both reserves",
	Args:  cobra.ExactArgs(6),
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, err := parseAddr(args[0])
		if err != nil {
			return err
		}
		pid, err := parsePoolID(args[1])
		if err != nil {
			return err
		}
		shares, err := parseUint64("shares", args[2])
		if err != nil {
			return err
		}
		minCurrency, err := parseUint64("min_currency", args[3])
		if err != nil {
			return err
		}
		minTokens, err := parseUint64("min_tokens", args[4])
		if err != nil {
			return err
		}
		deadline, err := parseUint64("deadline", args[5])
		if err != nil {
			return err
		}
		currencyOut, tokenOut, err := env.Engine.RemoveLiquidity(signedOrigin(caller), pid, shares, minCurrency, minTokens, deadline)
		if err != nil {
			return err
		}
		fmt.Printf("withdrew %d currency and %d tokens\n", currencyOut, tokenOut)
		return nil
	},
}

func init() {
	poolCmd.AddCommand(poolCreateCmd, poolShowCmd, poolListCmd, poolAddLiquidityCmd, poolRemoveLiquidityCmd)
}
