package core

import "testing"

func TestInputPriceKnownValue(t *testing.T) {
	// 1000 in against 10000/10000 reserves, 0.3% fee:
	// out = (1000*997*10000) / (10000*1000 + 1000*997) = 9970000000 / 10997000 = 906
	got, err := InputPrice(1000, 10000, 10000)
	if err != nil {
		t.Fatalf("InputPrice: %v", err)
	}
	if got != 906 {
		t.Fatalf("got %d want 906", got)
	}
}

func TestInputPriceZeroReservesFails(t *testing.T) {
	_, err := InputPrice(100, 0, 10000)
	if kind, ok := KindOf(err); !ok || kind != ErrNoLiquidity {
		t.Fatalf("expected NoLiquidity, got %v", err)
	}
	_, err = InputPrice(100, 10000, 0)
	if kind, ok := KindOf(err); !ok || kind != ErrNoLiquidity {
		t.Fatalf("expected NoLiquidity, got %v", err)
	}
}

func TestInputPriceZeroInput(t *testing.T) {
	got, err := InputPrice(0, 10000, 10000)
	if err != nil {
		t.Fatalf("InputPrice: %v", err)
	}
	if got != 0 {
		t.Fatalf("got %d want 0", got)
	}
}

func TestOutputPriceKnownValue(t *testing.T) {
	// request 906 out of a 10000/10000 pool: should round-trip close to the
	// 1000 paid in TestInputPriceKnownValue, rounded up via the +1 ceiling.
	got, err := OutputPrice(906, 10000, 10000)
	if err != nil {
		t.Fatalf("OutputPrice: %v", err)
	}
	if got < 1000 {
		t.Fatalf("output_price should not undercharge relative to the matching input_price: got %d", got)
	}
}

func TestOutputPriceRejectsFullReserveDrain(t *testing.T) {
	_, err := OutputPrice(10000, 10000, 10000)
	if kind, ok := KindOf(err); !ok || kind != ErrNotEnoughTokens {
		t.Fatalf("expected NotEnoughTokens, got %v", err)
	}
	_, err = OutputPrice(10001, 10000, 10000)
	if kind, ok := KindOf(err); !ok || kind != ErrNotEnoughTokens {
		t.Fatalf("expected NotEnoughTokens, got %v", err)
	}
}

// TestInputOutputPriceRoundTrip is property 7 of spec.md §8: paying
// output_price(out, ...) as input to input_price must yield at least out
// back (the ceiling on output_price never lets a trader underpay).
func TestInputOutputPriceRoundTrip(t *testing.T) {
	reserves := []struct{ in, out uint64 }{
		{10000, 10000},
		{1_000_000, 500_000},
		{123456, 987654},
	}
	wants := []uint64{1, 50, 1000, 9999}
	for _, r := range reserves {
		for _, want := range wants {
			if want >= r.out {
				continue
			}
			paid, err := OutputPrice(want, r.in, r.out)
			if err != nil {
				t.Fatalf("OutputPrice(%d, %d, %d): %v", want, r.in, r.out, err)
			}
			got, err := InputPrice(paid, r.in, r.out)
			if err != nil {
				t.Fatalf("InputPrice(%d, %d, %d): %v", paid, r.in, r.out, err)
			}
			if got < want {
				t.Fatalf("round trip undercharged: OutputPrice(%d)=%d then InputPrice=%d, want >= %d", want, paid, got, want)
			}
		}
	}
}

func TestMulDivFloorAndCeil(t *testing.T) {
	f, err := mulDivFloor(7, 3, 2)
	if err != nil {
		t.Fatalf("mulDivFloor: %v", err)
	}
	if f != 10 {
		t.Fatalf("mulDivFloor(7,3,2) = %d want 10", f)
	}
	c, err := mulDivCeil(7, 3, 2)
	if err != nil {
		t.Fatalf("mulDivCeil: %v", err)
	}
	if c != 11 {
		t.Fatalf("mulDivCeil(7,3,2) = %d want 11", c)
	}

	f, err = mulDivFloor(8, 4, 2)
	if err != nil {
		t.Fatalf("mulDivFloor: %v", err)
	}
	c, err = mulDivCeil(8, 4, 2)
	if err != nil {
		t.Fatalf("mulDivCeil: %v", err)
	}
	if f != c || f != 16 {
		t.Fatalf("exact division should agree: floor=%d ceil=%d want 16", f, c)
	}
}

func TestNarrowToUint64Overflow(t *testing.T) {
	// A small out against 32-bit reserves yields a result that fits in
	// uint64: the success path must not spuriously report Overflow.
	_, err := OutputPrice(1, ^uint64(0)>>32, ^uint64(0)>>32)
	if err != nil {
		t.Fatalf("unexpected overflow on bounded reserves: %v", err)
	}

	// out == outRes-1 against maximal reserves: the widened quotient
	// (about 2^128*1000/997) does not fit in uint64 and narrowing fails.
	_, err = OutputPrice(^uint64(0)-1, ^uint64(0), ^uint64(0))
	if kind, ok := KindOf(err); !ok || kind != ErrOverflow {
		t.Fatalf("expected Overflow when the result exceeds uint64, got %v", err)
	}
}
