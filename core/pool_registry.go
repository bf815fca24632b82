package core

// pool_registry.go implements the Pool Registry of spec.md §4.D: the
// token<->pool mapping and the monotonic pool-id counter. Internal to the
// swap engine — callers never reach these methods directly, only through
// SwapEngine.CreateExchange (swap_engine.go).

import "sync"

// PoolRegistry owns every Pool record, keyed by PoolID, plus the partial
// injective token_id -> PoolID map (spec.md §3 invariant 4).
type PoolRegistry struct {
	mu           sync.RWMutex
	ledger       *Ledger
	deriver      AccountDeriver
	events       EventSink
	pools        map[PoolID]Pool
	tokenToPool  map[AssetID]PoolID
	nextPoolID   PoolID
}

// lpAssetName / lpAssetSymbol are the fixed LP metadata of spec.md §6.
const (
	lpAssetName   = "liquidity_zlk_v1"
	lpAssetSymbol = "ZLK\x00\x00\x00\x00\x00"
)

func NewPoolRegistry(ledger *Ledger, deriver AccountDeriver, events EventSink) *PoolRegistry {
	if deriver == nil {
		deriver = Blake2bDeriver{}
	}
	return &PoolRegistry{
		ledger:      ledger,
		deriver:     deriver,
		events:      events,
		pools:       make(map[PoolID]Pool),
		tokenToPool: make(map[AssetID]PoolID),
	}
}

// Create implements spec.md §4.D's create(token_id) -> PoolId. Must be
// called from inside the caller's Ledger.Transaction so that the LP-asset
// mint reverts with the rest of the dispatchable on failure. The registry's
// own maps are not part of the ledger's snapshot; Create writes them only
// after all of its checks have passed.
func (r *PoolRegistry) Create(tokenID AssetID) (PoolID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ledger.assetInfo[tokenID]; !ok {
		return 0, newError(ErrTokenNotExists, "token does not exist")
	}
	if _, ok := r.tokenToPool[tokenID]; ok {
		return 0, newError(ErrExchangeAlreadyExists, "exchange already exists for token")
	}

	pid := r.nextPoolID
	next, ok := addUint64(uint64(pid), 1)
	if !ok {
		return 0, newError(ErrOverflow, "pool id counter overflow")
	}

	account := r.deriver.SubAccount(ModuleTag, pid)
	info := NewAssetInfo(lpAssetName, lpAssetSymbol, 0)
	liquidityID := r.ledger.mintAssetLocked(account, 0, info)

	pool := Pool{ID: pid, TokenID: tokenID, LiquidityID: liquidityID, Account: account}
	r.pools[pid] = pool
	r.tokenToPool[tokenID] = pid
	r.nextPoolID = PoolID(next)

	if r.events != nil {
		r.events.Emit(Event{ExchangeCreated: &ExchangeCreatedEvent{Pool: pid, Account: account}})
	}
	return pid, nil
}

// PoolByID returns the registry record for pid.
func (r *PoolRegistry) PoolByID(pid PoolID) (Pool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pools[pid]
	return p, ok
}

// PoolByToken returns the registry record for the pool paired with tokenID,
// if one exists (spec.md §3 invariant 4: at most one pool per token).
func (r *PoolRegistry) PoolByToken(tokenID AssetID) (Pool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pid, ok := r.tokenToPool[tokenID]
	if !ok {
		return Pool{}, false
	}
	return r.pools[pid], true
}

// AllPools returns every pool record, for the HTTP query surface.
func (r *PoolRegistry) AllPools() []Pool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Pool, 0, len(r.pools))
	for _, p := range r.pools {
		out = append(out, p)
	}
	return out
}

// reserves returns the pool's current token and currency reserves: the
// pool account's token balance and free currency balance (spec.md §3
// invariant 6). Must be read under the ledger's own lock by the caller's
// Transaction; safe to call standalone for read-only queries.
func (r *PoolRegistry) reserves(p Pool, cur Currency) (tokenReserve, currencyReserve uint64) {
	tokenReserve = r.ledger.balances[p.TokenID][p.Account]
	currencyReserve = cur.FreeBalance(p.Account)
	return
}
