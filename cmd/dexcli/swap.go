package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"zlkdex/core"
)

var swapCmd = &cobra.Command{
	Use:   "swap",
	Short: "Trade against a pool's reserves",
}

var swapCurrencyToTokensInputCmd = &cobra.Command{
	Use:   "currency-to-tokens-input <caller> <pool_id> <currency_sold> <min_tokens> <deadline> <recipient>",
	Short: "Sell an exact amount of currency for at least min_tokens",
	Args:  cobra.ExactArgs(6),
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, pid, recipient, nums, err := parseSwapArgs(args, "currency_sold", "min_tokens", "deadline")
		if err != nil {
			return err
		}
		bought, err := env.Engine.CurrencyToTokensInput(signedOrigin(caller), pid, nums[0], nums[1], nums[2], recipient)
		if err != nil {
			return err
		}
		fmt.Printf("bought %d tokens\n", bought)
		return nil
	},
}

var swapCurrencyToTokensOutputCmd = &cobra.Command{
	Use:   "currency-to-tokens-output <caller> <pool_id> <tokens_bought> <max_currency> <deadline> <recipient>",
	Short: "Buy an exact amount of tokens, paying at most max_currency",
	Args:  cobra.ExactArgs(6),
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, pid, recipient, nums, err := parseSwapArgs(args, "tokens_bought", "max_currency", "deadline")
		if err != nil {
			return err
		}
		sold, err := env.Engine.CurrencyToTokensOutput(signedOrigin(caller), pid, nums[0], nums[1], nums[2], recipient)
		if err != nil {
			return err
		}
		fmt.Printf("paid %d currency\n", sold)
		return nil
	},
}

var swapTokensToCurrencyInputCmd = &cobra.Command{
	Use:   "tokens-to-currency-input <caller> <pool_id> <tokens_sold> <min_currency> <deadline> <recipient>",
	Short: "Sell an exact amount of tokens for at least min_currency",
	Args:  cobra.ExactArgs(6),
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, pid, recipient, nums, err := parseSwapArgs(args, "tokens_sold", "min_currency", "deadline")
		if err != nil {
			return err
		}
		bought, err := env.Engine.TokensToCurrencyInput(signedOrigin(caller), pid, nums[0], nums[1], nums[2], recipient)
		if err != nil {
			return err
		}
		fmt.Printf("bought %d currency\n", bought)
		return nil
	},
}

var swapTokensToCurrencyOutputCmd = &cobra.Command{
	Use:   "tokens-to-currency-output <caller> <pool_id> <currency_bought> <max_tokens> <deadline> <recipient>",
	Short: "Buy an exact amount of currency, paying at most max_tokens",
	Args:  cobra.ExactArgs(6),
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, pid, recipient, nums, err := parseSwapArgs(args, "currency_bought", "max_tokens", "deadline")
		if err != nil {
			return err
		}
		sold, err := env.Engine.TokensToCurrencyOutput(signedOrigin(caller), pid, nums[0], nums[1], nums[2], recipient)
		if err != nil {
			return err
		}
		fmt.Printf("paid %d tokens\n", sold)
		return nil
	},
}

var swapTokenToTokenInputCmd = &cobra.Command{
	Use:   "token-to-token-input <caller> <pool_id> <other_pool_id> <tokens_sold> <min_other_tokens> <deadline> <recipient>",
	Short: "Sell tokens of one pool for at least min_other_tokens of another, routed through currency",
	Args:  cobra.ExactArgs(7),
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, pid, otherPid, recipient, nums, err := parseTwoHopArgs(args, "tokens_sold", "min_other_tokens", "deadline")
		if err != nil {
			return err
		}
		bought, err := env.Engine.TokenToTokenInput(signedOrigin(caller), pid, otherPid, nums[0], nums[1], nums[2], recipient)
		if err != nil {
			return err
		}
		fmt.Printf("bought %d tokens\n", bought)
		return nil
	},
}

var swapTokenToTokenOutputCmd = &cobra.Command{
	Use:   "token-to-token-output <caller> <pool_id> <other_pool_id> <other_tokens_bought> <max_tokens> <deadline> <recipient>",
	Short: "Buy an exact amount of another pool's token, paying at most max_tokens of this pool's token",
	Args:  cobra.ExactArgs(7),
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, pid, otherPid, recipient, nums, err := parseTwoHopArgs(args, "other_tokens_bought", "max_tokens", "deadline")
		if err != nil {
			return err
		}
		sold, err := env.Engine.TokenToTokenOutput(signedOrigin(caller), pid, otherPid, nums[0], nums[1], nums[2], recipient)
		if err != nil {
			return err
		}
		fmt.Printf("paid %d tokens\n", sold)
		return nil
	},
}

var swapQuoteCmd = &cobra.Command{
	Use:   "quote <pool_id> <currency_in> <amount_in>",
	Short: "Estimate a single-hop swap's output without executing it",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		pid, err := parsePoolID(args[0])
		if err != nil {
			return err
		}
		currencyIn, err := parseBool("currency_in", args[1])
		if err != nil {
			return err
		}
		amountIn, err := parseUint64("amount_in", args[2])
		if err != nil {
			return err
		}
		out, err := env.Engine.Quote(pid, currencyIn, amountIn)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

// parseSwapArgs parses the common single-hop swap argument shape:
// <caller> <pool_id> <n0> <n1> <n2> <recipient>.
func parseSwapArgs(args []string, n0, n1, n2 string) (caller core.Address, pid core.PoolID, recipient core.Address, nums [3]uint64, err error) {
	caller, err = parseAddr(args[0])
	if err != nil {
		return
	}
	pid, err = parsePoolID(args[1])
	if err != nil {
		return
	}
	nums[0], err = parseUint64(n0, args[2])
	if err != nil {
		return
	}
	nums[1], err = parseUint64(n1, args[3])
	if err != nil {
		return
	}
	nums[2], err = parseUint64(n2, args[4])
	if err != nil {
		return
	}
	recipient, err = parseAddr(args[5])
	return
}

// parseTwoHopArgs parses the two-hop shape:
// <caller> <pool_id> <other_pool_id> <n0> <n1> <n2> <recipient>.
func parseTwoHopArgs(args []string, n0, n1, n2 string) (caller core.Address, pid, otherPid core.PoolID, recipient core.Address, nums [3]uint64, err error) {
	caller, err = parseAddr(args[0])
	if err != nil {
		return
	}
	pid, err = parsePoolID(args[1])
	if err != nil {
		return
	}
	otherPid, err = parsePoolID(args[2])
	if err != nil {
		return
	}
	nums[0], err = parseUint64(n0, args[3])
	if err != nil {
		return
	}
	nums[1], err = parseUint64(n1, args[4])
	if err != nil {
		return
	}
	nums[2], err = parseUint64(n2, args[5])
	if err != nil {
		return
	}
	recipient, err = parseAddr(args[6])
	return
}

func init() {
	swapCmd.AddCommand(
		swapCurrencyToTokensInputCmd,
		swapCurrencyToTokensOutputCmd,
		swapTokensToCurrencyInputCmd,
		swapTokensToCurrencyOutputCmd,
		swapTokenToTokenInputCmd,
		swapTokenToTokenOutputCmd,
		swapQuoteCmd,
	)
}
