// Command dexcli is the offline/scripting front end over the Asset Ledger
// and Swap Engine (spec.md §1 expansion), grounded in the teacher's
// cmd/cli/amm.go command structure: one Cobra command per dispatchable,
// a thin controller-free call straight into core, uint64 args parsed with
// strconv. Unlike the teacher's CLI, dexcli never assumes a live chain
// node is running — it loads its whole working state from a local JSON
// snapshot (--state) before the command runs and writes it back after, so
// state survives across separate invocations of the binary.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	appconfig "zlkdex/cmd/config"
	"zlkdex/internal/appstate"
)

var (
	statePath string
	env       *appstate.Env
)

var rootCmd = &cobra.Command{
	Use:           "dexcli",
	Short:         "Offline client for the asset ledger and swap engine",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load() // optional local .env; a missing file is not an error

		appconfig.LoadConfig(os.Getenv("ZLKDEX_ENV"))

		var err error
		env, err = appstate.Load(statePath, appconfig.AppConfig.Ledger.ExistentialDeposit, log.StandardLogger())
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if env == nil {
			return nil
		}
		return env.Save(statePath)
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&statePath, "state", "zlkdex-state.json", "path to the JSON state snapshot this CLI reads and writes")
	rootCmd.AddCommand(assetCmd, ledgerCmd, poolCmd, swapCmd, clockCmd, fundCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
