// Package appstate wires together a Ledger, PoolRegistry, SwapEngine and
// Clock from an optional JSON snapshot file, and saves them back. Both
// cmd/dexcli and cmd/dexserver use it so the two binaries share one notion
// of "the node's state" without either owning a real chain runtime.
package appstate

import (
	"encoding/json"
	"os"

	log "github.com/sirupsen/logrus"

	"zlkdex/core"
)

// Env is the fully wired set of core components one process needs.
type Env struct {
	Logger   *log.Logger
	Events   *core.LogEventSink
	Ledger   *core.Ledger
	Currency *core.LedgerCurrency
	Pools    *core.PoolRegistry
	Clock    *core.SystemClock
	Engine   *core.SwapEngine
}

// Load builds an Env from the JSON snapshot at path, if it exists, or a
// fresh empty one otherwise. existentialDeposit is applied on top of
// whatever the snapshot carried, so config always wins over a stale file.
func Load(path string, existentialDeposit uint64, logger *log.Logger) (*Env, error) {
	if logger == nil {
		logger = log.StandardLogger()
	}
	events := core.NewLogEventSink(logger, 1024)
	ledger := core.NewLedger(logger, events)
	pools := core.NewPoolRegistry(ledger, nil, events)
	var clock *core.SystemClock

	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			var s core.State
			if err := json.Unmarshal(data, &s); err != nil {
				return nil, err
			}
			ledger.ImportState(s.Ledger)
			pools.ImportState(s.Pools)
			clock = core.NewSystemClockAt(s.BlockNumber)
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}
	if clock == nil {
		clock = core.NewSystemClock()
	}
	ledger.SetExistentialDeposit(existentialDeposit)

	currency := core.NewLedgerCurrency(ledger)
	engine := core.NewSwapEngine(ledger, pools, currency, clock, events)

	return &Env{
		Logger:   logger,
		Events:   events,
		Ledger:   ledger,
		Currency: currency,
		Pools:    pools,
		Clock:    clock,
		Engine:   engine,
	}, nil
}

// Save writes the Env's current state to path as JSON, creating it if
// necessary. Called after every cmd/dexcli command (read-only ones too) so
// the next invocation resumes where this one left off.
func (e *Env) Save(path string) error {
	if path == "" {
		return nil
	}
	s := core.State{
		Ledger:      e.Ledger.ExportState(),
		Pools:       e.Pools.ExportState(),
		BlockNumber: e.Clock.BlockNumber(),
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
