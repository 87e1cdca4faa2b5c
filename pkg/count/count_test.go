package count

import (
	"math"
	"testing"
)

func TestExactArithmetic(t *testing.T) {
	a := Exact(3)
	b := Exact(4)
	if got := a.Mul(b); got.String() != "12" {
		t.Errorf("Mul = %s, want 12", got.String())
	}
	if got := a.Add(b); got.String() != "7" {
		t.Errorf("Add = %s, want 7", got.String())
	}
}

func TestZeroAbsorbsMul(t *testing.T) {
	if got := Zero.Mul(Exact(42)); !got.IsZero() {
		t.Errorf("Zero * 42 should be zero, got %s", got.String())
	}
}

func TestOverflowLiftsToScientific(t *testing.T) {
	a := Exact(math.MaxUint64)
	b := Exact(2)
	got := a.Mul(b)
	if !got.Overflowed() {
		t.Fatalf("expected overflow, got exact %s", got.String())
	}
	if _, ok := got.Exact64(); ok {
		t.Errorf("Exact64 should fail once overflowed")
	}
}

func TestAddPreservesOverflowState(t *testing.T) {
	overflowed := Exact(math.MaxUint64).Mul(Exact(3))
	sum := overflowed.Add(Exact(1))
	if !sum.Overflowed() {
		t.Errorf("sum of overflowed + exact should stay overflowed")
	}
}

func TestScientificAddFarApartExponentsKeepsLarger(t *testing.T) {
	small := Scientific{Mantissa: 1, Exponent: 0}
	large := Scientific{Mantissa: 1, Exponent: 30}
	got := small.Add(large)
	if got.Exponent != 30 {
		t.Errorf("expected the larger exponent to dominate, got %d", got.Exponent)
	}
}

func TestMarshalUnmarshalExactRoundTrip(t *testing.T) {
	want := Exact(123456789)
	data, err := want.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	var got Result
	if err := got.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if got.String() != want.String() || got.Overflowed() != want.Overflowed() {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestMarshalUnmarshalOverflowedRoundTrip(t *testing.T) {
	want := Exact(math.MaxUint64).Mul(Exact(3))
	data, err := want.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	var got Result
	if err := got.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if !got.Overflowed() || got.String() != want.String() {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestUnmarshalBinaryRejectsMalformedPayload(t *testing.T) {
	var r Result
	if err := r.UnmarshalBinary(nil); err == nil {
		t.Error("expected error for empty payload")
	}
	if err := r.UnmarshalBinary([]byte{0, 1, 2}); err == nil {
		t.Error("expected error for short exact payload")
	}
	if err := r.UnmarshalBinary([]byte{9}); err == nil {
		t.Error("expected error for unknown tag")
	}
}
