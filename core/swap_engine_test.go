package core

import "testing"

// testRig wires a ledger, currency, pool registry and swap engine together,
// the way cmd/dexserver and cmd/dexcli do at startup.
type testRig struct {
	ledger   *Ledger
	currency *LedgerCurrency
	pools    *PoolRegistry
	engine   *SwapEngine
	clock    *FixedClock
}

func newTestRig() *testRig {
	events := NewLogEventSink(nil, 256)
	ledger := NewLedger(nil, events)
	currency := NewLedgerCurrency(ledger)
	pools := NewPoolRegistry(ledger, nil, events)
	clock := FixedClock(0)
	engine := NewSwapEngine(ledger, pools, currency, &clock, events)
	return &testRig{ledger: ledger, currency: currency, pools: pools, engine: engine, clock: &clock}
}

// fund seeds acct with native currency using the test-only Fund escape
// hatch (currency issuance has no public dispatchable, spec.md §1).
func (r *testRig) fund(acct Address, amount uint64) {
	if err := r.currency.Fund(acct, amount); err != nil {
		panic(err)
	}
}

// TestCreateExchangeAndAddLiquidity is scenario S5 of spec.md §8: first
// liquidity provision mints LP shares equal to the currency deposited.
func TestCreateExchangeAndAddLiquidity(t *testing.T) {
	r := newTestRig()
	issuer := addr(1)
	lp := addr(2)

	tokenID, err := r.ledger.Issue(Signed(issuer), 1_000_000, NewAssetInfo("Foo", "FOO", 0))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := r.ledger.Transfer(Signed(issuer), tokenID, lp, 100_000); err != nil {
		t.Fatalf("seed lp tokens: %v", err)
	}
	r.fund(lp, 50_000)

	poolID, err := r.engine.CreateExchange(Signed(lp), tokenID)
	if err != nil {
		t.Fatalf("create_exchange: %v", err)
	}
	pool, _ := r.pools.PoolByID(poolID)

	if err := r.ledger.Allow(Signed(lp), tokenID, pool.Account, 10_000); err != nil {
		t.Fatalf("allow: %v", err)
	}

	tokenAmount, err := r.engine.AddLiquidity(Signed(lp), poolID, 5_000, 1, 10_000, 100)
	if err != nil {
		t.Fatalf("add_liquidity: %v", err)
	}
	if tokenAmount != 10_000 {
		t.Fatalf("first provision token_amount: got %d want 10000 (== max_tokens)", tokenAmount)
	}
	if got := r.ledger.BalanceOf(pool.LiquidityID, lp); got != 5_000 {
		t.Fatalf("first provision mints liquidity == currency_amount: got %d want 5000", got)
	}
	if got := r.currency.FreeBalance(pool.Account); got != 5_000 {
		t.Fatalf("pool currency reserve: got %d want 5000", got)
	}
	if got := r.ledger.BalanceOf(tokenID, pool.Account); got != 10_000 {
		t.Fatalf("pool token reserve: got %d want 10000", got)
	}
}

// TestAddLiquiditySubsequentProvision is scenario S6: a second provider
// must match the pool's existing price ratio and receives proportional LP
// shares.
func TestAddLiquiditySubsequentProvision(t *testing.T) {
	r := newTestRig()
	issuer := addr(1)
	lp1 := addr(2)
	lp2 := addr(3)

	tokenID, _ := r.ledger.Issue(Signed(issuer), 1_000_000, NewAssetInfo("Foo", "FOO", 0))
	r.ledger.Transfer(Signed(issuer), tokenID, lp1, 100_000)
	r.ledger.Transfer(Signed(issuer), tokenID, lp2, 100_000)
	r.fund(lp1, 50_000)
	r.fund(lp2, 50_000)

	poolID, _ := r.engine.CreateExchange(Signed(lp1), tokenID)
	pool, _ := r.pools.PoolByID(poolID)

	r.ledger.Allow(Signed(lp1), tokenID, pool.Account, 10_000)
	if _, err := r.engine.AddLiquidity(Signed(lp1), poolID, 5_000, 1, 10_000, 100); err != nil {
		t.Fatalf("first add_liquidity: %v", err)
	}

	// Pool is now 10000 token / 5000 currency. lp2 deposits 2500 currency,
	// must supply ceil(2500*10000/5000) = 5000 tokens, and mints
	// floor(2500*5000/5000) = 2500 liquidity.
	r.ledger.Allow(Signed(lp2), tokenID, pool.Account, 5_000)
	tokenAmount, err := r.engine.AddLiquidity(Signed(lp2), poolID, 2_500, 1, 5_000, 100)
	if err != nil {
		t.Fatalf("second add_liquidity: %v", err)
	}
	if tokenAmount != 5_000 {
		t.Fatalf("subsequent token_amount: got %d want 5000", tokenAmount)
	}
	if got := r.ledger.BalanceOf(pool.LiquidityID, lp2); got != 2_500 {
		t.Fatalf("subsequent minted liquidity: got %d want 2500", got)
	}
}

// TestAddLiquidityTooManyTokensRejectedAtomically checks that a caller who
// under-bounds max_tokens sees the whole operation revert, not a partial
// charge (spec.md §5, §8 property 3).
func TestAddLiquidityTooManyTokensRejectedAtomically(t *testing.T) {
	r := newTestRig()
	issuer := addr(1)
	lp1 := addr(2)
	lp2 := addr(3)

	tokenID, _ := r.ledger.Issue(Signed(issuer), 1_000_000, NewAssetInfo("Foo", "FOO", 0))
	r.ledger.Transfer(Signed(issuer), tokenID, lp1, 100_000)
	r.ledger.Transfer(Signed(issuer), tokenID, lp2, 100_000)
	r.fund(lp1, 50_000)
	r.fund(lp2, 50_000)

	poolID, _ := r.engine.CreateExchange(Signed(lp1), tokenID)
	pool, _ := r.pools.PoolByID(poolID)
	r.ledger.Allow(Signed(lp1), tokenID, pool.Account, 10_000)
	r.engine.AddLiquidity(Signed(lp1), poolID, 5_000, 1, 10_000, 100)

	lp2CurBefore := r.currency.FreeBalance(lp2)
	lp2TokBefore := r.ledger.BalanceOf(tokenID, lp2)

	r.ledger.Allow(Signed(lp2), tokenID, pool.Account, 100)
	_, err := r.engine.AddLiquidity(Signed(lp2), poolID, 2_500, 1, 100, 100)
	if kind, ok := KindOf(err); !ok || kind != ErrTooManyTokens {
		t.Fatalf("expected TooManyTokens, got %v", err)
	}
	if got := r.currency.FreeBalance(lp2); got != lp2CurBefore {
		t.Fatalf("currency balance changed after reverted add_liquidity: got %d want %d", got, lp2CurBefore)
	}
	if got := r.ledger.BalanceOf(tokenID, lp2); got != lp2TokBefore {
		t.Fatalf("token balance changed after reverted add_liquidity: got %d want %d", got, lp2TokBefore)
	}
}

// TestRemoveLiquidity is scenario S7: burning all LP shares returns the
// full pool reserves to the sole provider.
func TestRemoveLiquidity(t *testing.T) {
	r := newTestRig()
	issuer := addr(1)
	lp := addr(2)

	tokenID, _ := r.ledger.Issue(Signed(issuer), 1_000_000, NewAssetInfo("Foo", "FOO", 0))
	r.ledger.Transfer(Signed(issuer), tokenID, lp, 100_000)
	r.fund(lp, 50_000)

	poolID, _ := r.engine.CreateExchange(Signed(lp), tokenID)
	pool, _ := r.pools.PoolByID(poolID)
	r.ledger.Allow(Signed(lp), tokenID, pool.Account, 10_000)
	r.engine.AddLiquidity(Signed(lp), poolID, 5_000, 1, 10_000, 100)

	shares := r.ledger.BalanceOf(pool.LiquidityID, lp)
	currencyOut, tokenOut, err := r.engine.RemoveLiquidity(Signed(lp), poolID, shares, 1, 1, 100)
	if err != nil {
		t.Fatalf("remove_liquidity: %v", err)
	}
	if currencyOut != 5_000 {
		t.Fatalf("currency_out: got %d want 5000", currencyOut)
	}
	if tokenOut != 10_000 {
		t.Fatalf("token_out: got %d want 10000", tokenOut)
	}
	if got := r.ledger.BalanceOf(pool.LiquidityID, lp); got != 0 {
		t.Fatalf("lp shares after full redemption: got %d want 0", got)
	}
	if got := r.currency.FreeBalance(pool.Account); got != 0 {
		t.Fatalf("pool currency reserve after full redemption: got %d want 0", got)
	}
	if got := r.ledger.BalanceOf(tokenID, pool.Account); got != 0 {
		t.Fatalf("pool token reserve after full redemption: got %d want 0", got)
	}
}

func seedPool(t *testing.T, r *testRig, issuer, lp Address, tokenSupply, tokenReserve, currencyReserve uint64) (AssetID, PoolID, Pool) {
	t.Helper()
	tokenID, err := r.ledger.Issue(Signed(issuer), tokenSupply, NewAssetInfo("Foo", "FOO", 0))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := r.ledger.Transfer(Signed(issuer), tokenID, lp, tokenReserve); err != nil {
		t.Fatalf("seed lp tokens: %v", err)
	}
	r.fund(lp, currencyReserve)

	poolID, err := r.engine.CreateExchange(Signed(lp), tokenID)
	if err != nil {
		t.Fatalf("create_exchange: %v", err)
	}
	pool, _ := r.pools.PoolByID(poolID)
	if err := r.ledger.Allow(Signed(lp), tokenID, pool.Account, tokenReserve); err != nil {
		t.Fatalf("allow: %v", err)
	}
	if _, err := r.engine.AddLiquidity(Signed(lp), poolID, currencyReserve, 1, tokenReserve, 100); err != nil {
		t.Fatalf("add_liquidity: %v", err)
	}
	return tokenID, poolID, pool
}

func TestFourSwapDirectionsAgreeWithPricing(t *testing.T) {
	issuer, lp, trader, recipient := addr(1), addr(2), addr(3), addr(4)

	t.Run("currency_to_tokens_input", func(t *testing.T) {
		r := newTestRig()
		tokenID, poolID, _ := seedPool(t, r, issuer, lp, 1_000_000, 10_000, 10_000)
		r.fund(trader, 1_000)
		want, _ := InputPrice(1_000, 10_000, 10_000)
		got, err := r.engine.CurrencyToTokensInput(Signed(trader), poolID, 1_000, 1, 100, recipient)
		if err != nil {
			t.Fatalf("swap: %v", err)
		}
		if got != want {
			t.Fatalf("got %d want %d", got, want)
		}
		if bal := r.ledger.BalanceOf(tokenID, recipient); bal != got {
			t.Fatalf("recipient balance: got %d want %d", bal, got)
		}
	})

	t.Run("currency_to_tokens_output", func(t *testing.T) {
		r := newTestRig()
		tokenID, poolID, _ := seedPool(t, r, issuer, lp, 1_000_000, 10_000, 10_000)
		r.fund(trader, 10_000)
		want, _ := OutputPrice(500, 10_000, 10_000)
		got, err := r.engine.CurrencyToTokensOutput(Signed(trader), poolID, 500, 10_000, 100, recipient)
		if err != nil {
			t.Fatalf("swap: %v", err)
		}
		if got != want {
			t.Fatalf("got %d want %d", got, want)
		}
		if bal := r.ledger.BalanceOf(tokenID, recipient); bal != 500 {
			t.Fatalf("recipient token balance: got %d want 500", bal)
		}
	})

	t.Run("tokens_to_currency_input", func(t *testing.T) {
		r := newTestRig()
		tokenID, poolID, pool := seedPool(t, r, issuer, lp, 1_000_000, 10_000, 10_000)
		r.ledger.Transfer(Signed(issuer), tokenID, trader, 1_000)
		r.ledger.Allow(Signed(trader), tokenID, pool.Account, 1_000)
		want, _ := InputPrice(1_000, 10_000, 10_000)
		got, err := r.engine.TokensToCurrencyInput(Signed(trader), poolID, 1_000, 1, 100, recipient)
		if err != nil {
			t.Fatalf("swap: %v", err)
		}
		if got != want {
			t.Fatalf("got %d want %d", got, want)
		}
	})

	t.Run("tokens_to_currency_output", func(t *testing.T) {
		r := newTestRig()
		tokenID, poolID, pool := seedPool(t, r, issuer, lp, 1_000_000, 10_000, 10_000)
		r.ledger.Transfer(Signed(issuer), tokenID, trader, 10_000)
		r.ledger.Allow(Signed(trader), tokenID, pool.Account, 10_000)
		want, _ := OutputPrice(500, 10_000, 10_000)
		got, err := r.engine.TokensToCurrencyOutput(Signed(trader), poolID, 500, 10_000, 100, recipient)
		if err != nil {
			t.Fatalf("swap: %v", err)
		}
		if got != want {
			t.Fatalf("got %d want %d", got, want)
		}
		if bal := r.currency.FreeBalance(recipient); bal != 500 {
			t.Fatalf("recipient currency balance: got %d want 500", bal)
		}
	})
}

// TestSwapDeadlineInclusive checks spec.md §9 Open Question 1: swaps use an
// inclusive `>=` deadline check, distinct from add/remove liquidity's
// strict `>`.
func TestSwapDeadlineInclusive(t *testing.T) {
	r := newTestRig()
	issuer, lp, trader, recipient := addr(1), addr(2), addr(3), addr(4)
	_, poolID, _ := seedPool(t, r, issuer, lp, 1_000_000, 10_000, 10_000)
	r.fund(trader, 1_000)

	*r.clock = FixedClock(5)

	_, err := r.engine.CurrencyToTokensInput(Signed(trader), poolID, 100, 1, 5, recipient)
	if kind, ok := KindOf(err); !ok || kind != ErrDeadline {
		t.Fatalf("expected Deadline at now==deadline for swap, got %v", err)
	}

	_, err = r.engine.CurrencyToTokensInput(Signed(trader), poolID, 100, 1, 6, recipient)
	if err != nil {
		t.Fatalf("swap with future deadline should succeed: %v", err)
	}
}

// TestAddLiquidityDeadlineStrict checks the other half of Open Question 1:
// add/remove liquidity only fails when now is strictly past the deadline.
func TestAddLiquidityDeadlineStrict(t *testing.T) {
	r := newTestRig()
	issuer, lp := addr(1), addr(2)
	tokenID, _ := r.ledger.Issue(Signed(issuer), 1_000_000, NewAssetInfo("Foo", "FOO", 0))
	r.ledger.Transfer(Signed(issuer), tokenID, lp, 10_000)
	r.fund(lp, 10_000)
	poolID, _ := r.engine.CreateExchange(Signed(lp), tokenID)
	pool, _ := r.pools.PoolByID(poolID)
	r.ledger.Allow(Signed(lp), tokenID, pool.Account, 10_000)

	*r.clock = FixedClock(5)
	_, err := r.engine.AddLiquidity(Signed(lp), poolID, 100, 1, 10_000, 5)
	if err != nil {
		t.Fatalf("add_liquidity at now==deadline should succeed (strict >): %v", err)
	}

	_, err = r.engine.AddLiquidity(Signed(lp), poolID, 100, 1, 10_000, 4)
	if kind, ok := KindOf(err); !ok || kind != ErrDeadline {
		t.Fatalf("expected Deadline once now > deadline, got %v", err)
	}
}

// TestTokenToTokenInput is the two-hop routing of spec.md §4.F.5: a single
// fee is charged on each hop, preserved per Open Question 2.
func TestTokenToTokenInput(t *testing.T) {
	r := newTestRig()
	issuerA, issuerB, lp, trader, recipient := addr(1), addr(5), addr(2), addr(3), addr(4)

	tokenA, poolA, poolAInfo := seedPool(t, r, issuerA, lp, 1_000_000, 10_000, 10_000)
	tokenB, poolB, poolBInfo := seedPool(t, r, issuerB, lp, 1_000_000, 20_000, 10_000)

	r.ledger.Transfer(Signed(issuerA), tokenA, trader, 1_000)
	r.ledger.Allow(Signed(trader), tokenA, poolAInfo.Account, 1_000)

	intermediate, err := InputPrice(1_000, 10_000, 10_000)
	if err != nil {
		t.Fatalf("InputPrice: %v", err)
	}
	wantOtherBought, err := InputPrice(intermediate, 10_000, 20_000)
	if err != nil {
		t.Fatalf("InputPrice: %v", err)
	}

	got, err := r.engine.TokenToTokenInput(Signed(trader), poolA, poolB, 1_000, 1, 100, recipient)
	if err != nil {
		t.Fatalf("token_to_token_input: %v", err)
	}
	if got != wantOtherBought {
		t.Fatalf("got %d want %d", got, wantOtherBought)
	}
	if bal := r.ledger.BalanceOf(tokenB, recipient); bal != got {
		t.Fatalf("recipient tokenB balance: got %d want %d", bal, got)
	}
	if bal := r.currency.FreeBalance(poolBInfo.Account); bal != 10_000+intermediate {
		t.Fatalf("poolB currency reserve after hop: got %d want %d", bal, 10_000+intermediate)
	}
}

// TestExchangeNotExistsRejectsSwap covers the ExchangeNotExists path of
// spec.md §7.
func TestExchangeNotExistsRejectsSwap(t *testing.T) {
	r := newTestRig()
	trader, recipient := addr(3), addr(4)
	_, err := r.engine.CurrencyToTokensInput(Signed(trader), PoolID(999), 100, 1, 100, recipient)
	if kind, ok := KindOf(err); !ok || kind != ErrExchangeNotExists {
		t.Fatalf("expected ExchangeNotExists, got %v", err)
	}
}

// TestSwapSequencePreservesConstantProductTrend is a property-style test
// (spec.md §8 property 5): repeated same-direction, same-size swaps against
// one pool must yield a strictly non-increasing amount bought each time,
// since every swap depletes the token reserve and swells the currency
// reserve against the trader.
func TestSwapSequencePreservesConstantProductTrend(t *testing.T) {
	r := newTestRig()
	issuer, lp, recipient := addr(1), addr(2), addr(9)
	_, poolID, _ := seedPool(t, r, issuer, lp, 10_000_000, 1_000_000, 1_000_000)

	const amount = 1_000
	var lastBought uint64 = ^uint64(0)
	for i := 0; i < 20; i++ {
		trader := addr(byte(100 + i))
		r.fund(trader, amount)
		bought, err := r.engine.CurrencyToTokensInput(Signed(trader), poolID, amount, 0, 100, recipient)
		if err != nil {
			t.Fatalf("swap %d: %v", i, err)
		}
		if bought > lastBought {
			t.Fatalf("swap %d: bought %d exceeds previous swap's %d for the same input size, constant-product pools should only get worse for the same direction", i, bought, lastBought)
		}
		lastBought = bought
	}
}
