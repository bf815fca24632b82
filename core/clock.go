package core

import "sync/atomic"

// Clock supplies the current block number used by deadline checks
// (spec.md §6: "current_block_number()"). The core never reads wall-clock
// time directly.
type Clock interface {
	BlockNumber() uint64
}

// SystemClock is a monotonic counter advanced explicitly by the host
// (cmd/dexcli's `clock advance`) in lieu of a real chain's block
// production; cmd/dexserver only reads it.
type SystemClock struct {
	n uint64
}

func NewSystemClock() *SystemClock { return &SystemClock{} }

// NewSystemClockAt resumes a SystemClock at a previously persisted height
// (cmd/dexcli's state file), rather than always restarting at zero.
func NewSystemClockAt(n uint64) *SystemClock { return &SystemClock{n: n} }

func (c *SystemClock) BlockNumber() uint64 { return atomic.LoadUint64(&c.n) }

// Advance moves the clock forward by delta blocks and returns the new
// height.
func (c *SystemClock) Advance(delta uint64) uint64 {
	return atomic.AddUint64(&c.n, delta)
}

// FixedClock is a test double reporting a constant height.
type FixedClock uint64

func (c FixedClock) BlockNumber() uint64 { return uint64(c) }
