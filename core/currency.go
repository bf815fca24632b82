package core

// currency.go implements the Currency Adapter of spec.md §4.B. The real
// system treats this as an opaque capability owned by a separate "native
// currency" module (out of scope per spec.md §1); LedgerCurrency is the
// concrete stand-in that lets this module run without a host runtime,
// by keeping the native currency as CurrencyAssetID inside the same
// Asset Ledger.

// Currency is the host capability the swap engine composes with, never
// inherits from (spec.md §9).
type Currency interface {
	FreeBalance(acct Address) uint64
	// Transfer moves amount from 'from' to 'to'. KeepAlive fails with
	// InsufficientBalance if it would leave 'from' below the existential
	// deposit; AllowDeath does not check it.
	Transfer(from, to Address, amount uint64, liveness Liveness) error
}

// LedgerCurrency backs the Currency capability with the ledger's
// CurrencyAssetID balances, so unit tests and the CLI/server do not need a
// separate chain-runtime currency module.
type LedgerCurrency struct {
	ledger *Ledger
}

func NewLedgerCurrency(l *Ledger) *LedgerCurrency { return &LedgerCurrency{ledger: l} }

// FreeBalance reads the ledger's CurrencyAssetID balance directly, without
// taking the ledger's lock, so the swap engine can call it from inside a
// Ledger.Transaction (which already holds the write lock), like Transfer.
func (c *LedgerCurrency) FreeBalance(acct Address) uint64 {
	return c.ledger.balances[CurrencyAssetID][acct]
}

// Transfer must be called from inside the caller's Ledger.Transaction —
// it mutates ledger state directly via TransferInner and participates in
// that transaction's rollback.
func (c *LedgerCurrency) Transfer(from, to Address, amount uint64, liveness Liveness) error {
	if liveness == KeepAlive {
		bal := c.ledger.balances[CurrencyAssetID][from]
		ed := c.ledger.existentialDeposit
		if bal < amount || bal-amount < ed {
			return newError(ErrInsufficientBalance, "transfer would drop below existential deposit")
		}
	}
	return c.ledger.TransferInner(CurrencyAssetID, from, to, amount)
}

// Fund credits amount of native currency to acct, incrementing total
// supply. Used by the CLI/tests to seed accounts; there is no public
// dispatchable for this because currency issuance is the native-currency
// module's business, out of scope here (spec.md §1).
func (c *LedgerCurrency) Fund(acct Address, amount uint64) error {
	return c.ledger.Transaction(func() error {
		return c.ledger.Mint(CurrencyAssetID, acct, amount)
	})
}
