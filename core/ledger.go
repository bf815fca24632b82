package core

// ledger.go implements the Asset Ledger of spec.md §4.A: a multi-asset
// fungible-token registry of balances, allowances, supplies and metadata,
// plus the atomicity combinator (§5, §9) every dispatchable in swap_engine.go
// builds on. Grounded on the teacher's BalanceTable/BaseToken locking
// discipline (core/tokens.go) and its ledger.Snapshot rollback idiom
// (core/liquidity_pools.go), generalized here into one reusable
// Ledger.Transaction used by every mutating operation, not just the AMM.

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// Ledger owns every balance, allowance, supply and asset-metadata entry.
// All public methods are safe for concurrent use; each commits or reverts
// as a whole (spec.md §5: "no partial writes, no events").
type Ledger struct {
	mu     sync.RWMutex
	logger *log.Logger
	events EventSink

	nextAssetID AssetID
	assetInfo   map[AssetID]AssetInfo
	totalSupply map[AssetID]uint64
	balances    map[AssetID]map[Address]uint64
	allowances  map[AssetID]map[Address]map[Address]uint64 // [asset][owner][spender]

	// existentialDeposit is consulted only by LedgerCurrency's KeepAlive
	// transfers (core/currency.go); it has no bearing on plain asset
	// transfers, which never carry a liveness hint.
	existentialDeposit uint64
}

// NewLedger constructs an empty ledger. logger/events may be nil, in which
// case logrus's standard logger and a fresh LogEventSink are used.
func NewLedger(logger *log.Logger, events EventSink) *Ledger {
	if logger == nil {
		logger = log.StandardLogger()
	}
	if events == nil {
		events = NewLogEventSink(logger, 256)
	}
	return &Ledger{
		logger:      logger,
		events:      events,
		nextAssetID: 1, // asset 0 is reserved for the native currency, see CurrencyAssetID
		assetInfo:   make(map[AssetID]AssetInfo),
		totalSupply: make(map[AssetID]uint64),
		balances:    make(map[AssetID]map[Address]uint64),
		allowances:  make(map[AssetID]map[Address]map[Address]uint64),
	}
}

// SetExistentialDeposit configures the minimum balance KeepAlive currency
// transfers must leave behind in the source account.
func (l *Ledger) SetExistentialDeposit(ed uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.existentialDeposit = ed
}

//---------------------------------------------------------------------
// Atomicity: stage writes against a snapshot, commit or roll back whole.
//---------------------------------------------------------------------

// txnSnapshot is a deep copy of every map the ledger can mutate. Taken
// before a Transaction's closure runs; restored verbatim on error.
type txnSnapshot struct {
	nextAssetID AssetID
	assetInfo   map[AssetID]AssetInfo
	totalSupply map[AssetID]uint64
	balances    map[AssetID]map[Address]uint64
	allowances  map[AssetID]map[Address]map[Address]uint64
}

func (l *Ledger) snapshotLocked() txnSnapshot {
	s := txnSnapshot{
		nextAssetID: l.nextAssetID,
		assetInfo:   make(map[AssetID]AssetInfo, len(l.assetInfo)),
		totalSupply: make(map[AssetID]uint64, len(l.totalSupply)),
		balances:    make(map[AssetID]map[Address]uint64, len(l.balances)),
		allowances:  make(map[AssetID]map[Address]map[Address]uint64, len(l.allowances)),
	}
	for k, v := range l.assetInfo {
		s.assetInfo[k] = v
	}
	for k, v := range l.totalSupply {
		s.totalSupply[k] = v
	}
	for asset, byAddr := range l.balances {
		cp := make(map[Address]uint64, len(byAddr))
		for a, v := range byAddr {
			cp[a] = v
		}
		s.balances[asset] = cp
	}
	for asset, byOwner := range l.allowances {
		cp := make(map[Address]map[Address]uint64, len(byOwner))
		for owner, bySpender := range byOwner {
			cp2 := make(map[Address]uint64, len(bySpender))
			for spender, v := range bySpender {
				cp2[spender] = v
			}
			cp[owner] = cp2
		}
		s.allowances[asset] = cp
	}
	return s
}

func (l *Ledger) restoreLocked(s txnSnapshot) {
	l.nextAssetID = s.nextAssetID
	l.assetInfo = s.assetInfo
	l.totalSupply = s.totalSupply
	l.balances = s.balances
	l.allowances = s.allowances
}

// Transaction runs fn with the ledger's write lock held. If fn returns a
// non-nil error, every mutation fn made is rolled back and the error is
// returned — no partial state change (spec.md §7). On success the
// mutations stand. Nested calls are not supported; fn must not itself call
// Transaction.
func (l *Ledger) Transaction(fn func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	snap := l.snapshotLocked()
	if err := fn(); err != nil {
		l.restoreLocked(snap)
		return err
	}
	return nil
}

// View runs fn with the ledger's read lock held, for multi-field reads that
// must observe one consistent snapshot (e.g. the HTTP query surface).
func (l *Ledger) View(fn func()) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	fn()
}

//---------------------------------------------------------------------
// Queries (no locking assumptions on caller; each takes its own RLock)
//---------------------------------------------------------------------

func (l *Ledger) BalanceOf(asset AssetID, acct Address) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[asset][acct]
}

func (l *Ledger) AllowanceOf(asset AssetID, owner, spender Address) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.allowances[asset][owner][spender]
}

func (l *Ledger) TotalSupply(asset AssetID) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totalSupply[asset]
}

func (l *Ledger) AssetInfo(asset AssetID) (AssetInfo, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	info, ok := l.assetInfo[asset]
	return info, ok
}

//---------------------------------------------------------------------
// Public dispatchables: issue, transfer, allow, transfer_from
//---------------------------------------------------------------------

// Issue allocates a fresh asset id, attributes its entire supply to caller,
// and records its immutable metadata. Public surface of spec.md §4.A.
func (l *Ledger) Issue(origin Origin, total uint64, info AssetInfo) (AssetID, error) {
	caller, err := origin.ensureSigned()
	if err != nil {
		return 0, err
	}
	var id AssetID
	err = l.Transaction(func() error {
		id = l.mintAssetLocked(caller, total, info)
		return nil
	})
	if err != nil {
		return 0, err
	}
	l.events.Emit(Event{Issued: &IssuedEvent{Asset: id, Issuer: caller, Total: total}})
	l.logger.WithFields(log.Fields{"asset": id, "issuer": caller, "total": total}).Info("asset issued")
	return id, nil
}

// Transfer moves amount of asset from caller to target. Self-transfer is a
// no-op on balance but still emits Transferred (spec.md §4.A edge case).
func (l *Ledger) Transfer(origin Origin, asset AssetID, target Address, amount uint64) error {
	caller, err := origin.ensureSigned()
	if err != nil {
		return err
	}
	if err := l.transferDispatch(asset, caller, target, amount); err != nil {
		return err
	}
	l.events.Emit(Event{Transferred: &TransferredEvent{Asset: asset, From: caller, To: target, Amount: amount}})
	l.logger.WithFields(log.Fields{"asset": asset, "from": caller, "to": target, "amount": amount}).Info("transfer")
	return nil
}

func (l *Ledger) transferDispatch(asset AssetID, from, to Address, amount uint64) error {
	if amount == 0 {
		return newError(ErrAmountZero, "transfer amount must be non-zero")
	}
	return l.Transaction(func() error {
		return l.transferInnerLocked(asset, from, to, amount)
	})
}

// Allow overwrites the allowance owner grants spender over asset. Setting
// zero clears it (spec.md §4.A).
func (l *Ledger) Allow(origin Origin, asset AssetID, spender Address, amount uint64) error {
	caller, err := origin.ensureSigned()
	if err != nil {
		return err
	}
	err = l.Transaction(func() error {
		l.setAllowanceLocked(asset, caller, spender, amount)
		return nil
	})
	if err != nil {
		return err
	}
	l.events.Emit(Event{Approval: &ApprovalEvent{Asset: asset, Owner: caller, Spender: spender, Amount: amount}})
	l.logger.WithFields(log.Fields{"asset": asset, "owner": caller, "spender": spender, "amount": amount}).Info("approval")
	return nil
}

// TransferFrom draws down caller's allowance over owner's asset balance and
// moves amount from owner to target. If the inner transfer fails, the
// allowance decrement is rolled back too (whole operation reverts).
func (l *Ledger) TransferFrom(origin Origin, asset AssetID, owner, target Address, amount uint64) error {
	caller, err := origin.ensureSigned()
	if err != nil {
		return err
	}
	err = l.Transaction(func() error {
		return l.transferFromInnerLocked(asset, caller, owner, target, amount)
	})
	if err != nil {
		return err
	}
	l.events.Emit(Event{Transferred: &TransferredEvent{Asset: asset, From: owner, To: target, Amount: amount}})
	l.logger.WithFields(log.Fields{"asset": asset, "from": owner, "to": target, "amount": amount, "spender": caller}).Info("transfer_from")
	return nil
}

//---------------------------------------------------------------------
// Internal surface: callable by the swap engine without an origin, under
// the caller's own Transaction. Never called directly by external users.
//---------------------------------------------------------------------

// MintAsset issues a fresh asset with an arbitrary initial holder — used
// only by pool creation to mint the LP-share asset (spec.md §4.A).
func (l *Ledger) MintAsset(issuer Address, total uint64, info AssetInfo) AssetID {
	return l.mintAssetLocked(issuer, total, info)
}

func (l *Ledger) mintAssetLocked(issuer Address, total uint64, info AssetInfo) AssetID {
	id := l.nextAssetID
	l.nextAssetID++
	if l.balances[id] == nil {
		l.balances[id] = make(map[Address]uint64)
	}
	l.balances[id][issuer] = total
	l.totalSupply[id] = total
	l.assetInfo[id] = info
	return id
}

// Mint increases to's balance and the asset's total supply. Fails Overflow
// if either would wrap.
func (l *Ledger) Mint(asset AssetID, to Address, amount uint64) error {
	if l.balances[asset] == nil {
		l.balances[asset] = make(map[Address]uint64)
	}
	bal := l.balances[asset][to]
	newBal, ok := addUint64(bal, amount)
	if !ok {
		return newError(ErrOverflow, "mint balance overflow")
	}
	newSupply, ok := addUint64(l.totalSupply[asset], amount)
	if !ok {
		return newError(ErrOverflow, "mint supply overflow")
	}
	l.balances[asset][to] = newBal
	l.totalSupply[asset] = newSupply
	return nil
}

// Burn decreases from's balance and the asset's total supply.
func (l *Ledger) Burn(asset AssetID, from Address, amount uint64) error {
	bal := l.balances[asset][from]
	if bal < amount {
		return newError(ErrBalanceLow, "burn amount exceeds balance")
	}
	l.balances[asset][from] = bal - amount
	l.totalSupply[asset] -= amount
	return nil
}

// TransferInner is the same semantics as Transfer but callable without an
// origin signature — the caller is trusted to enforce authorization
// (spec.md §4.A). Must run inside the caller's own Transaction.
func (l *Ledger) TransferInner(asset AssetID, from, to Address, amount uint64) error {
	return l.transferInnerLocked(asset, from, to, amount)
}

func (l *Ledger) transferInnerLocked(asset AssetID, from, to Address, amount uint64) error {
	bal := l.balances[asset][from]
	if bal < amount {
		return newError(ErrBalanceLow, "insufficient balance")
	}
	l.balances[asset][from] = bal - amount
	if l.balances[asset] == nil {
		l.balances[asset] = make(map[Address]uint64)
	}
	l.balances[asset][to] += amount
	return nil
}

// TransferFromInner is transfer_from_inner of spec.md §4.A.
func (l *Ledger) TransferFromInner(asset AssetID, spender, owner, to Address, amount uint64) error {
	return l.transferFromInnerLocked(asset, spender, owner, to, amount)
}

func (l *Ledger) transferFromInnerLocked(asset AssetID, spender, owner, to Address, amount uint64) error {
	allowed := l.allowances[asset][owner][spender]
	if allowed < amount {
		return newError(ErrAllowanceLow, "allowance too low")
	}
	l.setAllowanceLocked(asset, owner, spender, allowed-amount)
	return l.transferInnerLocked(asset, owner, to, amount)
}

func (l *Ledger) setAllowanceLocked(asset AssetID, owner, spender Address, amount uint64) {
	if l.allowances[asset] == nil {
		l.allowances[asset] = make(map[Address]map[Address]uint64)
	}
	if l.allowances[asset][owner] == nil {
		l.allowances[asset][owner] = make(map[Address]uint64)
	}
	l.allowances[asset][owner][spender] = amount
}

func addUint64(a, b uint64) (uint64, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}
