package core

// pricing.go implements the AMM Pricing of spec.md §4.E: pure integer
// functions, no storage. Fee numerator/denominator are fixed at 997/1000.
//
// Every intermediate product is computed in uint256.Int (widened beyond
// uint64) so that in_res*out*d cannot overflow within the supported
// reserve domain, per spec.md §4.E/§9. Grounded on holiman/uint256, a
// dependency already present in the teacher's closure (transitively, via
// its go-ethereum/libp2p stack) and used directly for exactly this purpose
// by the pack's parsdao-pars repo.

import (
	"github.com/holiman/uint256"
)

const (
	feeNumerator   = 997
	feeDenominator = 1000
)

// InputPrice returns the amount received when exactly in units are
// supplied against reserves (inRes, outRes), per spec.md's floor-division
// formula: (in*f*outRes) / (inRes*d + in*f).
//
// Preconditions: inRes and outRes must both be strictly positive (the pool
// must have liquidity). in may be zero, yielding zero out.
func InputPrice(in, inRes, outRes uint64) (uint64, error) {
	if inRes == 0 || outRes == 0 {
		return 0, newError(ErrNoLiquidity, "pool has no liquidity")
	}
	inU := uint256.NewInt(in)
	inResU := uint256.NewInt(inRes)
	outResU := uint256.NewInt(outRes)
	f := uint256.NewInt(feeNumerator)
	d := uint256.NewInt(feeDenominator)

	inWithFee := new(uint256.Int).Mul(inU, f) // in*f
	numerator := new(uint256.Int).Mul(inWithFee, outResU)

	denomA := new(uint256.Int).Mul(inResU, d) // inRes*d
	denominator := new(uint256.Int).Add(denomA, inWithFee)
	if denominator.IsZero() {
		return 0, newError(ErrOverflow, "input_price: zero denominator")
	}

	out := new(uint256.Int).Div(numerator, denominator)
	return narrowToUint64(out)
}

// OutputPrice returns the amount that must be supplied to receive exactly
// out units from reserves (inRes, outRes), per spec.md's ceiling-via-+1
// formula: floor(inRes*out*d / ((outRes-out)*f)) + 1.
//
// Preconditions: outRes > out (there must be enough liquidity to pay out);
// inRes and outRes strictly positive.
func OutputPrice(out, inRes, outRes uint64) (uint64, error) {
	if inRes == 0 || outRes == 0 {
		return 0, newError(ErrNoLiquidity, "pool has no liquidity")
	}
	if out >= outRes {
		return 0, newError(ErrNotEnoughTokens, "requested output exceeds reserve")
	}
	outU := uint256.NewInt(out)
	inResU := uint256.NewInt(inRes)
	outResU := uint256.NewInt(outRes)
	f := uint256.NewInt(feeNumerator)
	d := uint256.NewInt(feeDenominator)

	numerator := new(uint256.Int).Mul(inResU, outU)
	numerator.Mul(numerator, d) // inRes*out*d

	remaining := new(uint256.Int).Sub(outResU, outU) // outRes-out
	denominator := new(uint256.Int).Mul(remaining, f)
	if denominator.IsZero() {
		return 0, newError(ErrOverflow, "output_price: zero denominator")
	}

	quotient := new(uint256.Int).Div(numerator, denominator)
	quotient.AddUint64(quotient, 1)
	return narrowToUint64(quotient)
}

// mulDivFloor returns floor(a*b/c) computed in uint256 to avoid overflow,
// used for add_liquidity's liquidity_minted and both remove_liquidity
// outputs (spec.md §4.F.2/§4.F.3); add_liquidity's token_amount rounds up
// via mulDivCeil instead.
func mulDivFloor(a, b, c uint64) (uint64, error) {
	if c == 0 {
		return 0, newError(ErrNoLiquidity, "division by zero reserve")
	}
	prod := new(uint256.Int).Mul(uint256.NewInt(a), uint256.NewInt(b))
	q := new(uint256.Int).Div(prod, uint256.NewInt(c))
	return narrowToUint64(q)
}

// mulDivCeil returns ceil(a*b/c), used by add_liquidity's subsequent-
// provision token_amount (spec.md §4.F.2).
func mulDivCeil(a, b, c uint64) (uint64, error) {
	if c == 0 {
		return 0, newError(ErrNoLiquidity, "division by zero reserve")
	}
	prod := new(uint256.Int).Mul(uint256.NewInt(a), uint256.NewInt(b))
	cU := uint256.NewInt(c)
	q := new(uint256.Int).Div(prod, cU)
	rem := new(uint256.Int).Mod(prod, cU)
	if !rem.IsZero() {
		q.AddUint64(q, 1)
	}
	return narrowToUint64(q)
}

// narrowToUint64 casts a widened result back to the ledger's uint64 balance
// domain, failing Overflow rather than silently truncating (spec.md §9:
// "panicking overflow is a bug, not a feature" — here surfaced as a typed
// revertible error instead of a panic, matching §7's propagation rule).
func narrowToUint64(v *uint256.Int) (uint64, error) {
	if !v.IsUint64() {
		return 0, newError(ErrOverflow, "price result exceeds uint64 domain")
	}
	return v.Uint64(), nil
}
