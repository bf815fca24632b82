package core

// swap_engine.go implements the Swap Engine of spec.md §4.F: the
// dispatchable operations users actually submit. It holds no state of its
// own (spec.md §3 "Ownership") — it is stateless logic over the Asset
// Ledger, the Pool Registry, and the Currency capability, matching the
// teacher's AMM/router split (core/amm.go composing core/liquidity_pools.go
// in the teacher) generalized to the exact-in/exact-out/two-hop surface
// spec.md requires.

// SwapEngine dispatches every operation in spec.md §4.F/§6. Construct one
// per ledger; it is safe for concurrent use (all mutation happens inside
// Ledger.Transaction).
type SwapEngine struct {
	ledger   *Ledger
	pools    *PoolRegistry
	currency Currency
	clock    Clock
	events   EventSink
}

func NewSwapEngine(ledger *Ledger, pools *PoolRegistry, currency Currency, clock Clock, events EventSink) *SwapEngine {
	return &SwapEngine{ledger: ledger, pools: pools, currency: currency, clock: clock, events: events}
}

// checkDeadline enforces spec.md §4.F's deadline asymmetry: strict `>` for
// add/remove liquidity, inclusive `>=` for every swap variant. Preserved
// exactly as specified (spec.md §9 Open Question 1) — not "fixed".
func (e *SwapEngine) checkDeadline(deadline uint64, inclusive bool) error {
	now := e.clock.BlockNumber()
	if inclusive {
		if now >= deadline {
			return newError(ErrDeadline, "deadline passed")
		}
	} else {
		if now > deadline {
			return newError(ErrDeadline, "deadline passed")
		}
	}
	return nil
}

func (e *SwapEngine) mustPool(pid PoolID) (Pool, error) {
	p, ok := e.pools.PoolByID(pid)
	if !ok {
		return Pool{}, newError(ErrExchangeNotExists, "exchange does not exist")
	}
	return p, nil
}

// reserves reads a pool's live token and currency reserves (spec.md §3
// invariant 6). Must be called from inside a Ledger.Transaction.
func (e *SwapEngine) reserves(p Pool) (tokenReserve, currencyReserve uint64) {
	return e.pools.reserves(p, e.currency)
}

//---------------------------------------------------------------------
// create_exchange
//---------------------------------------------------------------------

// CreateExchange implements spec.md §4.F.1: create_exchange(caller, token_id).
func (e *SwapEngine) CreateExchange(origin Origin, tokenID AssetID) (PoolID, error) {
	_, err := origin.ensureSigned()
	if err != nil {
		return 0, err
	}
	var pid PoolID
	err = e.ledger.Transaction(func() error {
		var innerErr error
		pid, innerErr = e.pools.Create(tokenID)
		return innerErr
	})
	return pid, err
}

//---------------------------------------------------------------------
// add_liquidity
//---------------------------------------------------------------------

// AddLiquidity implements spec.md §4.F.2.
func (e *SwapEngine) AddLiquidity(origin Origin, poolID PoolID, currencyAmount, minLiquidity, maxTokens, deadline uint64) (tokenAmount uint64, err error) {
	caller, err := origin.ensureSigned()
	if err != nil {
		return 0, err
	}
	if err := e.checkDeadline(deadline, false); err != nil {
		return 0, err
	}
	if currencyAmount == 0 {
		return 0, newError(ErrZeroCurrency, "currency_amount must be non-zero")
	}
	if maxTokens == 0 {
		return 0, newError(ErrZeroTokens, "max_tokens must be non-zero")
	}
	pool, err := e.mustPool(poolID)
	if err != nil {
		return 0, err
	}

	var minted uint64
	err = e.ledger.Transaction(func() error {
		liquiditySupply := e.ledger.totalSupply[pool.LiquidityID]
		tokenReserve, currencyReserve := e.reserves(pool)

		if liquiditySupply == 0 {
			if err := e.currency.Transfer(caller, pool.Account, currencyAmount, KeepAlive); err != nil {
				return err
			}
			tokenAmount = maxTokens
			if err := e.ledger.TransferFromInner(pool.TokenID, pool.Account, caller, pool.Account, tokenAmount); err != nil {
				return err
			}
			minted = e.currency.FreeBalance(pool.Account)
			return e.ledger.Mint(pool.LiquidityID, caller, minted)
		}

		if minLiquidity == 0 {
			return newError(ErrRequestedZeroLiquidity, "min_liquidity must be non-zero")
		}

		tokenAmount, err = mulDivCeil(currencyAmount, tokenReserve, currencyReserve)
		if err != nil {
			return err
		}
		if tokenAmount > maxTokens {
			return newError(ErrTooManyTokens, "required token amount exceeds max_tokens")
		}
		minted, err = mulDivFloor(currencyAmount, liquiditySupply, currencyReserve)
		if err != nil {
			return err
		}
		if minted < minLiquidity {
			return newError(ErrTooLowLiquidity, "minted liquidity below min_liquidity")
		}

		if err := e.currency.Transfer(caller, pool.Account, currencyAmount, KeepAlive); err != nil {
			return err
		}
		if err := e.ledger.TransferFromInner(pool.TokenID, pool.Account, caller, pool.Account, tokenAmount); err != nil {
			return err
		}
		return e.ledger.Mint(pool.LiquidityID, caller, minted)
	})
	if err != nil {
		return 0, err
	}

	e.events.Emit(Event{LiquidityAdded: &LiquidityAddedEvent{Pool: poolID, Caller: caller, Currency: currencyAmount, Tokens: tokenAmount}})
	return tokenAmount, nil
}

//---------------------------------------------------------------------
// remove_liquidity
//---------------------------------------------------------------------

// RemoveLiquidity implements spec.md §4.F.3.
func (e *SwapEngine) RemoveLiquidity(origin Origin, poolID PoolID, shares, minCurrency, minTokens, deadline uint64) (currencyOut, tokenOut uint64, err error) {
	caller, err := origin.ensureSigned()
	if err != nil {
		return 0, 0, err
	}
	if err := e.checkDeadline(deadline, false); err != nil {
		return 0, 0, err
	}
	if shares == 0 {
		return 0, 0, newError(ErrBurnZeroShares, "shares must be non-zero")
	}
	pool, err := e.mustPool(poolID)
	if err != nil {
		return 0, 0, err
	}

	err = e.ledger.Transaction(func() error {
		supply := e.ledger.totalSupply[pool.LiquidityID]
		if supply == 0 {
			return newError(ErrNoLiquidity, "pool has no liquidity")
		}
		currencyReserve := e.ledger.balances[CurrencyAssetID][pool.Account]
		tokenReserve := e.ledger.balances[pool.TokenID][pool.Account]

		var err error
		currencyOut, err = mulDivFloor(shares, currencyReserve, supply)
		if err != nil {
			return err
		}
		tokenOut, err = mulDivFloor(shares, tokenReserve, supply)
		if err != nil {
			return err
		}
		if currencyOut < minCurrency {
			return newError(ErrNotEnoughCurrency, "currency out below min_currency")
		}
		if tokenOut < minTokens {
			return newError(ErrNotEnoughTokens, "token out below min_tokens")
		}

		if err := e.ledger.Burn(pool.LiquidityID, caller, shares); err != nil {
			return err
		}
		if err := e.currency.Transfer(pool.Account, caller, currencyOut, AllowDeath); err != nil {
			return err
		}
		return e.ledger.TransferInner(pool.TokenID, pool.Account, caller, tokenOut)
	})
	if err != nil {
		return 0, 0, err
	}

	e.events.Emit(Event{LiquidityRemoved: &LiquidityRemovedEvent{Pool: poolID, Caller: caller, Currency: currencyOut, Tokens: tokenOut}})
	return currencyOut, tokenOut, nil
}

//---------------------------------------------------------------------
// Single-hop swap variants (spec.md §4.F.4)
//---------------------------------------------------------------------

// CurrencyToTokensInput implements currency_to_tokens_input.
func (e *SwapEngine) CurrencyToTokensInput(origin Origin, poolID PoolID, currencySold, minTokens, deadline uint64, recipient Address) (tokensBought uint64, err error) {
	caller, err := origin.ensureSigned()
	if err != nil {
		return 0, err
	}
	if err := e.checkDeadline(deadline, true); err != nil {
		return 0, err
	}
	if currencySold == 0 {
		return 0, newError(ErrZeroCurrency, "currency_sold must be non-zero")
	}
	pool, err := e.mustPool(poolID)
	if err != nil {
		return 0, err
	}

	err = e.ledger.Transaction(func() error {
		tokenReserve, currencyReserve := e.reserves(pool)
		var err error
		tokensBought, err = InputPrice(currencySold, currencyReserve, tokenReserve)
		if err != nil {
			return err
		}
		if tokensBought < minTokens {
			return newError(ErrNotEnoughTokens, "tokens bought below min_tokens")
		}
		if err := e.currency.Transfer(caller, pool.Account, currencySold, KeepAlive); err != nil {
			return err
		}
		return e.ledger.TransferInner(pool.TokenID, pool.Account, recipient, tokensBought)
	})
	if err != nil {
		return 0, err
	}

	e.events.Emit(Event{TokenPurchase: &TokenPurchaseEvent{Pool: poolID, Buyer: caller, Recipient: recipient, CurrencySold: currencySold, TokensBought: tokensBought}})
	return tokensBought, nil
}

// CurrencyToTokensOutput implements currency_to_tokens_output.
func (e *SwapEngine) CurrencyToTokensOutput(origin Origin, poolID PoolID, tokensBought, maxCurrency, deadline uint64, recipient Address) (currencySold uint64, err error) {
	caller, err := origin.ensureSigned()
	if err != nil {
		return 0, err
	}
	if err := e.checkDeadline(deadline, true); err != nil {
		return 0, err
	}
	if tokensBought == 0 {
		return 0, newError(ErrZeroTokens, "tokens_bought must be non-zero")
	}
	pool, err := e.mustPool(poolID)
	if err != nil {
		return 0, err
	}

	err = e.ledger.Transaction(func() error {
		tokenReserve, currencyReserve := e.reserves(pool)
		var err error
		currencySold, err = OutputPrice(tokensBought, currencyReserve, tokenReserve)
		if err != nil {
			return err
		}
		if currencySold > maxCurrency {
			return newError(ErrTooExpensiveCurrency, "required currency exceeds max_currency")
		}
		if err := e.currency.Transfer(caller, pool.Account, currencySold, KeepAlive); err != nil {
			return err
		}
		return e.ledger.TransferInner(pool.TokenID, pool.Account, recipient, tokensBought)
	})
	if err != nil {
		return 0, err
	}

	e.events.Emit(Event{TokenPurchase: &TokenPurchaseEvent{Pool: poolID, Buyer: caller, Recipient: recipient, CurrencySold: currencySold, TokensBought: tokensBought}})
	return currencySold, nil
}

// TokensToCurrencyInput implements tokens_to_currency_input.
func (e *SwapEngine) TokensToCurrencyInput(origin Origin, poolID PoolID, tokensSold, minCurrency, deadline uint64, recipient Address) (currencyBought uint64, err error) {
	caller, err := origin.ensureSigned()
	if err != nil {
		return 0, err
	}
	if err := e.checkDeadline(deadline, true); err != nil {
		return 0, err
	}
	if tokensSold == 0 {
		return 0, newError(ErrZeroTokens, "tokens_sold must be non-zero")
	}
	pool, err := e.mustPool(poolID)
	if err != nil {
		return 0, err
	}

	err = e.ledger.Transaction(func() error {
		tokenReserve, currencyReserve := e.reserves(pool)
		var err error
		currencyBought, err = InputPrice(tokensSold, tokenReserve, currencyReserve)
		if err != nil {
			return err
		}
		if currencyBought < minCurrency {
			return newError(ErrNotEnoughCurrency, "currency bought below min_currency")
		}
		if err := e.ledger.TransferFromInner(pool.TokenID, pool.Account, caller, pool.Account, tokensSold); err != nil {
			return err
		}
		return e.currency.Transfer(pool.Account, recipient, currencyBought, AllowDeath)
	})
	if err != nil {
		return 0, err
	}

	e.events.Emit(Event{CurrencyPurchase: &CurrencyPurchaseEvent{Pool: poolID, Seller: caller, Recipient: recipient, TokensSold: tokensSold, CurrencyBought: currencyBought}})
	return currencyBought, nil
}

// TokensToCurrencyOutput implements tokens_to_currency_output.
func (e *SwapEngine) TokensToCurrencyOutput(origin Origin, poolID PoolID, currencyBought, maxTokens, deadline uint64, recipient Address) (tokensSold uint64, err error) {
	caller, err := origin.ensureSigned()
	if err != nil {
		return 0, err
	}
	if err := e.checkDeadline(deadline, true); err != nil {
		return 0, err
	}
	if currencyBought == 0 {
		return 0, newError(ErrZeroCurrency, "currency_bought must be non-zero")
	}
	pool, err := e.mustPool(poolID)
	if err != nil {
		return 0, err
	}

	err = e.ledger.Transaction(func() error {
		tokenReserve, currencyReserve := e.reserves(pool)
		var err error
		tokensSold, err = OutputPrice(currencyBought, tokenReserve, currencyReserve)
		if err != nil {
			return err
		}
		if tokensSold > maxTokens {
			return newError(ErrTooExpensiveTokens, "required tokens exceed max_tokens")
		}
		if err := e.ledger.TransferFromInner(pool.TokenID, pool.Account, caller, pool.Account, tokensSold); err != nil {
			return err
		}
		return e.currency.Transfer(pool.Account, recipient, currencyBought, AllowDeath)
	})
	if err != nil {
		return 0, err
	}

	e.events.Emit(Event{CurrencyPurchase: &CurrencyPurchaseEvent{Pool: poolID, Seller: caller, Recipient: recipient, TokensSold: tokensSold, CurrencyBought: currencyBought}})
	return tokensSold, nil
}

//---------------------------------------------------------------------
// Two-hop token<->token variants (spec.md §4.F.5)
//---------------------------------------------------------------------

// TokenToTokenInput implements token_to_token_input: sell tokensSold of
// poolID's token into poolID, routing the intermediate currency directly
// into otherPoolID to buy its token for recipient.
func (e *SwapEngine) TokenToTokenInput(origin Origin, poolID, otherPoolID PoolID, tokensSold, minOtherTokens, deadline uint64, recipient Address) (otherTokensBought uint64, err error) {
	caller, err := origin.ensureSigned()
	if err != nil {
		return 0, err
	}
	if err := e.checkDeadline(deadline, true); err != nil {
		return 0, err
	}
	if tokensSold == 0 {
		return 0, newError(ErrZeroTokens, "tokens_sold must be non-zero")
	}
	pool, err := e.mustPool(poolID)
	if err != nil {
		return 0, err
	}
	other, err := e.mustPool(otherPoolID)
	if err != nil {
		return 0, err
	}

	var intermediate uint64
	err = e.ledger.Transaction(func() error {
		tokenReserve, currencyReserve := e.reserves(pool)
		var err error
		intermediate, err = InputPrice(tokensSold, tokenReserve, currencyReserve)
		if err != nil {
			return err
		}

		otherTokenReserve, otherCurrencyReserve := e.reserves(other)
		otherTokensBought, err = InputPrice(intermediate, otherCurrencyReserve, otherTokenReserve)
		if err != nil {
			return err
		}
		if otherTokensBought < minOtherTokens {
			return newError(ErrNotEnoughTokens, "other tokens bought below min_other_tokens")
		}

		if err := e.ledger.TransferFromInner(pool.TokenID, pool.Account, caller, pool.Account, tokensSold); err != nil {
			return err
		}
		if err := e.currency.Transfer(pool.Account, other.Account, intermediate, KeepAlive); err != nil {
			return err
		}
		return e.ledger.TransferInner(other.TokenID, other.Account, recipient, otherTokensBought)
	})
	if err != nil {
		return 0, err
	}

	e.events.Emit(Event{OtherTokenPurchase: &OtherTokenPurchaseEvent{Pool: poolID, OtherPool: otherPoolID, Trader: caller, Recipient: recipient, TokensSold: tokensSold, OtherBought: otherTokensBought, IntermediateCy: intermediate}})
	return otherTokensBought, nil
}

// TokenToTokenOutput implements token_to_token_output: buy otherTokensBought
// of otherPoolID's token, paying with poolID's token (at most maxTokens),
// routing the intermediate currency directly between the two pool accounts.
func (e *SwapEngine) TokenToTokenOutput(origin Origin, poolID, otherPoolID PoolID, otherTokensBought, maxTokens, deadline uint64, recipient Address) (tokensSold uint64, err error) {
	caller, err := origin.ensureSigned()
	if err != nil {
		return 0, err
	}
	if err := e.checkDeadline(deadline, true); err != nil {
		return 0, err
	}
	if otherTokensBought == 0 {
		return 0, newError(ErrZeroTokens, "other_tokens_bought must be non-zero")
	}
	pool, err := e.mustPool(poolID)
	if err != nil {
		return 0, err
	}
	other, err := e.mustPool(otherPoolID)
	if err != nil {
		return 0, err
	}

	var intermediate uint64
	err = e.ledger.Transaction(func() error {
		otherTokenReserve, otherCurrencyReserve := e.reserves(other)
		var err error
		intermediate, err = OutputPrice(otherTokensBought, otherCurrencyReserve, otherTokenReserve)
		if err != nil {
			return err
		}

		tokenReserve, currencyReserve := e.reserves(pool)
		tokensSold, err = OutputPrice(intermediate, tokenReserve, currencyReserve)
		if err != nil {
			return err
		}
		if tokensSold > maxTokens {
			return newError(ErrTooExpensiveTokens, "required tokens exceed max_tokens")
		}

		if err := e.ledger.TransferFromInner(pool.TokenID, pool.Account, caller, pool.Account, tokensSold); err != nil {
			return err
		}
		if err := e.currency.Transfer(pool.Account, other.Account, intermediate, KeepAlive); err != nil {
			return err
		}
		return e.ledger.TransferInner(other.TokenID, other.Account, recipient, otherTokensBought)
	})
	if err != nil {
		return 0, err
	}

	e.events.Emit(Event{OtherTokenPurchase: &OtherTokenPurchaseEvent{Pool: poolID, OtherPool: otherPoolID, Trader: caller, Recipient: recipient, TokensSold: tokensSold, OtherBought: otherTokensBought, IntermediateCy: intermediate}})
	return tokensSold, nil
}

// Quote mirrors InputPrice for a single pool without mutating state, for
// the CLI/HTTP read-only surface. currencyIn selects which reserve is the
// input: the currency reserve if true, the token reserve otherwise.
func (e *SwapEngine) Quote(poolID PoolID, currencyIn bool, amountIn uint64) (uint64, error) {
	pool, err := e.mustPool(poolID)
	if err != nil {
		return 0, err
	}
	var out uint64
	e.ledger.View(func() {
		tokenReserve, currencyReserve := e.reserves(pool)
		if currencyIn {
			out, err = InputPrice(amountIn, currencyReserve, tokenReserve)
		} else {
			out, err = InputPrice(amountIn, tokenReserve, currencyReserve)
		}
	})
	return out, err
}
