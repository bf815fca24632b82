package core

import (
	"encoding/hex"
	"fmt"
)

// Address is an opaque account identifier. Equality and ordering are the
// host's: we only need byte-wise comparison and a stable map key.
type Address [32]byte

func (a Address) String() string { return hex.EncodeToString(a[:]) }

// MarshalText/UnmarshalText let Address serialize as a plain hex string
// wherever it appears in JSON, including as a map key (core/state.go).
func (a Address) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := AddressFromString(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// AddressZero is the reserved all-zero account; never a valid caller.
var AddressZero Address

// AssetID identifies an asset in the ledger. Never reused; issued ids are
// dense from 1, since 0 is CurrencyAssetID.
type AssetID uint64

// PoolID identifies a pool in the registry. Dense from zero.
type PoolID uint64

// CurrencyAssetID is the asset id the ledger reserves for the native
// currency when LedgerCurrency (core/currency.go) backs the Currency
// capability. Asset ids handed out by Issue/MintAsset start at 1 so this
// slot is never collided with.
const CurrencyAssetID AssetID = 0

// AssetInfo is fixed-width, immutable metadata attached to an asset at
// issuance time.
type AssetInfo struct {
	Name     [16]byte
	Symbol   [8]byte
	Decimals uint8
}

// NewAssetInfo builds an AssetInfo from plain strings, truncating/padding to
// the fixed widths spec.md §3 requires.
func NewAssetInfo(name, symbol string, decimals uint8) AssetInfo {
	var info AssetInfo
	copy(info.Name[:], name)
	copy(info.Symbol[:], symbol)
	info.Decimals = decimals
	return info
}

func (i AssetInfo) NameString() string   { return cstr(i.Name[:]) }
func (i AssetInfo) SymbolString() string { return cstr(i.Symbol[:]) }

func cstr(b []byte) string {
	n := 0
	for n < len(b) && b[n] != 0 {
		n++
	}
	return string(b[:n])
}

// Pool is the immutable registry record for one liquidity pool: its paired
// token, the LP-share asset it minted at birth, and its deterministic
// holding account. Reserves are not stored here — they are the pool
// account's live balances (spec.md §3 invariant 6).
type Pool struct {
	ID          PoolID
	TokenID     AssetID
	LiquidityID AssetID
	Account     Address
}

// Liveness governs whether a currency transfer may drain its source below
// the existential deposit.
type Liveness int

const (
	// AllowDeath permits the source account to be fully drained.
	AllowDeath Liveness = iota
	// KeepAlive requires the source to retain at least the existential
	// deposit after the transfer.
	KeepAlive
)

// Origin authenticates a dispatchable call. An unsigned origin fails every
// operation in §4.F/§4.A's public surface with ErrNotSigned.
type Origin struct {
	Signed bool
	Caller Address
}

// Signed builds a signed Origin for the given caller — the common case in
// tests, the CLI, and any host adapter.
func Signed(caller Address) Origin { return Origin{Signed: true, Caller: caller} }

func (o Origin) ensureSigned() (Address, error) {
	if !o.Signed {
		return AddressZero, newError(ErrNotSigned, "origin is not signed")
	}
	return o.Caller, nil
}

// AddressFromString parses the hex form produced by Address.String, for the
// CLI and HTTP layers. It does not need to be constant-time: these are
// public account identifiers, not secrets.
func AddressFromString(s string) (Address, error) {
	var a Address
	b, err := hex.DecodeString(s)
	if err != nil {
		return a, fmt.Errorf("invalid address %q: %w", s, err)
	}
	if len(b) != len(a) {
		return a, fmt.Errorf("invalid address %q: want %d bytes, got %d", s, len(a), len(b))
	}
	copy(a[:], b)
	return a, nil
}
