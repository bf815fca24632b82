package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clockCmd = &cobra.Command{
	Use:   "clock",
	Short: "Inspect and advance the stand-in block clock deadlines are checked against",
}

var clockShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current block number",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(env.Clock.BlockNumber())
		return nil
	},
}

var clockAdvanceCmd = &cobra.Command{
	Use:   "advance <delta>",
	Short: "Move the clock forward by delta blocks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		delta, err := parseUint64("delta", args[0])
		if err != nil {
			return err
		}
		fmt.Println(env.Clock.Advance(delta))
		return nil
	},
}

func init() {
	clockCmd.AddCommand(clockShowCmd, clockAdvanceCmd)
}
