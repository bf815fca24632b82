package core

import "fmt"

// ErrKind enumerates the error taxonomy of spec.md §7. Callers (CLI, HTTP
// layer, property tests) switch on kind, never on message text.
type ErrKind int

const (
	ErrNotSigned ErrKind = iota
	ErrTokenNotExists
	ErrExchangeNotExists
	ErrExchangeAlreadyExists
	ErrAmountZero
	ErrZeroCurrency
	ErrZeroTokens
	ErrBurnZeroShares
	ErrDeadline
	ErrBalanceLow
	ErrAllowanceLow
	ErrNoLiquidity
	ErrTooManyTokens
	ErrTooLowLiquidity
	ErrRequestedZeroLiquidity
	ErrNotEnoughCurrency
	ErrNotEnoughTokens
	ErrTooExpensiveCurrency
	ErrTooExpensiveTokens
	ErrOverflow
	ErrInsufficientBalance
)

var kindNames = map[ErrKind]string{
	ErrNotSigned:              "NotSigned",
	ErrTokenNotExists:         "TokenNotExists",
	ErrExchangeNotExists:      "ExchangeNotExists",
	ErrExchangeAlreadyExists:  "ExchangeAlreadyExists",
	ErrAmountZero:             "AmountZero",
	ErrZeroCurrency:           "ZeroCurrency",
	ErrZeroTokens:             "ZeroTokens",
	ErrBurnZeroShares:         "BurnZeroShares",
	ErrDeadline:               "Deadline",
	ErrBalanceLow:             "BalanceLow",
	ErrAllowanceLow:           "AllowanceLow",
	ErrNoLiquidity:            "NoLiquidity",
	ErrTooManyTokens:          "TooManyTokens",
	ErrTooLowLiquidity:        "TooLowLiquidity",
	ErrRequestedZeroLiquidity: "RequestedZeroLiquidity",
	ErrNotEnoughCurrency:      "NotEnoughCurrency",
	ErrNotEnoughTokens:        "NotEnoughTokens",
	ErrTooExpensiveCurrency:   "TooExpensiveCurrency",
	ErrTooExpensiveTokens:     "TooExpensiveTokens",
	ErrOverflow:               "Overflow",
	ErrInsufficientBalance:    "InsufficientBalance",
}

func (k ErrKind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "Unknown"
}

// Error is the single typed failure value the core ever returns. Every
// dispatchable reverts on Error (spec.md §7) — no partial writes, no events.
type Error struct {
	Kind ErrKind
	msg  string
}

func newError(kind ErrKind, msg string) *Error { return &Error{Kind: kind, msg: msg} }

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Kind, e.msg) }

// Is lets callers write errors.Is(err, core.ErrKind(...)) style checks via
// a sentinel-shaped wrapper; mostly callers compare (*core.Error).Kind
// directly, this exists for stdlib-idiomatic call sites.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf extracts the ErrKind from any error returned by this package, or
// false if err is nil or not a *core.Error.
func KindOf(err error) (ErrKind, bool) {
	if err == nil {
		return 0, false
	}
	e, ok := err.(*Error)
	if !ok {
		return 0, false
	}
	return e.Kind, true
}
