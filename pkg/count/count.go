// Package count provides an overflow-safe representation for exact-cover
// solution counts.
//
// Counts start as an exact uint64. Once a multiplication or addition would
// overflow 2^64, the value is transparently lifted to a normalised
// mantissa/exponent pair (scientific notation) and every subsequent
// operation stays in that representation.
package count

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Scientific is a normalised mantissa * 10^Exponent representation with
// 1 <= |Mantissa| < 10 (or Mantissa == 0).
type Scientific struct {
	Mantissa float64
	Exponent int
}

func newScientific(v uint64) Scientific {
	if v == 0 {
		return Scientific{}
	}
	s := Scientific{Mantissa: float64(v)}
	s.normalize()
	return s
}

func (s *Scientific) normalize() {
	if s.Mantissa == 0 {
		s.Exponent = 0
		return
	}
	for math.Abs(s.Mantissa) >= 10 {
		s.Mantissa /= 10
		s.Exponent++
	}
	for math.Abs(s.Mantissa) < 1 && s.Mantissa != 0 {
		s.Mantissa *= 10
		s.Exponent--
	}
}

// IsZero reports whether the scientific value represents zero.
func (s Scientific) IsZero() bool { return s.Mantissa == 0 }

// String renders the value as "<mantissa>e<exponent>", e.g. "1.234567e+12".
func (s Scientific) String() string {
	sign := "+"
	if s.Exponent < 0 {
		sign = ""
	}
	return fmt.Sprintf("%fe%s%d", s.Mantissa, sign, s.Exponent)
}

// Mul multiplies two scientific values.
func (s Scientific) Mul(o Scientific) Scientific {
	r := Scientific{Mantissa: s.Mantissa * o.Mantissa, Exponent: s.Exponent + o.Exponent}
	r.normalize()
	return r
}

// Add sums two scientific values, dropping the smaller operand outright when
// the exponents are too far apart to affect the mantissa (matches the
// source's tolerance of a 15-order-of-magnitude gap).
func (s Scientific) Add(o Scientific) Scientific {
	if s.IsZero() {
		return o
	}
	if o.IsZero() {
		return s
	}
	diff := s.Exponent - o.Exponent
	if diff > 15 || diff < -15 {
		if s.Exponent > o.Exponent {
			return s
		}
		return o
	}
	var r Scientific
	if diff >= 0 {
		r.Mantissa = s.Mantissa*math.Pow(10, float64(diff)) + o.Mantissa
		r.Exponent = o.Exponent
	} else {
		r.Mantissa = s.Mantissa + o.Mantissa*math.Pow(10, float64(-diff))
		r.Exponent = s.Exponent
	}
	r.normalize()
	return r
}

// Result is a solution count that starts exact and lifts to Scientific
// notation on overflow. The zero value represents the count 0.
type Result struct {
	exact      uint64
	overflowed bool
	sci        Scientific
}

// Exact constructs a Result holding an exact 64-bit count.
func Exact(v uint64) Result {
	return Result{exact: v, sci: newScientific(v)}
}

// Zero is the count of zero solutions.
var Zero = Exact(0)

// One is the count of exactly one solution (the empty exact cover).
var One = Exact(1)

// IsZero reports whether the result represents zero solutions.
func (r Result) IsZero() bool {
	if r.overflowed {
		return r.sci.IsZero()
	}
	return r.exact == 0
}

// Overflowed reports whether the result has been lifted to scientific form.
func (r Result) Overflowed() bool { return r.overflowed }

// Exact64 returns the exact count and true if the result has not overflowed.
func (r Result) Exact64() (uint64, bool) {
	if r.overflowed {
		return 0, false
	}
	return r.exact, true
}

// Scientific returns the scientific-notation view of the result. Valid
// regardless of overflow state (a non-overflowed result's Scientific is kept
// in sync for exactly this purpose).
func (r Result) Scientific() Scientific { return r.sci }

// String renders the exact integer when possible, otherwise mantissa+exponent.
func (r Result) String() string {
	if r.overflowed {
		return r.sci.String()
	}
	return fmt.Sprintf("%d", r.exact)
}

// Mul multiplies two results, promoting to scientific notation on overflow.
func (r Result) Mul(o Result) Result {
	if r.IsZero() || o.IsZero() {
		return Zero
	}
	if r.overflowed || o.overflowed {
		return Result{overflowed: true, sci: r.sci.Mul(o.sci)}
	}
	if r.exact <= math.MaxUint64/o.exact {
		return Exact(r.exact * o.exact)
	}
	return Result{overflowed: true, sci: r.sci.Mul(o.sci)}
}

// MarshalBinary encodes a Result for storage in a byte-oriented cache (see
// pkg/memo's Redis-backed accelerator). The wire form is a one-byte
// overflow flag followed by either the exact uint64 or the mantissa and
// exponent, all little-endian.
func (r Result) MarshalBinary() ([]byte, error) {
	if !r.overflowed {
		buf := make([]byte, 9)
		buf[0] = 0
		binary.LittleEndian.PutUint64(buf[1:], r.exact)
		return buf, nil
	}
	buf := make([]byte, 17)
	buf[0] = 1
	binary.LittleEndian.PutUint64(buf[1:9], math.Float64bits(r.sci.Mantissa))
	binary.LittleEndian.PutUint64(buf[9:17], uint64(r.sci.Exponent))
	return buf, nil
}

// UnmarshalBinary decodes a Result produced by MarshalBinary.
func (r *Result) UnmarshalBinary(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("count: empty payload")
	}
	switch data[0] {
	case 0:
		if len(data) < 9 {
			return fmt.Errorf("count: short exact payload")
		}
		*r = Exact(binary.LittleEndian.Uint64(data[1:9]))
	case 1:
		if len(data) < 17 {
			return fmt.Errorf("count: short scientific payload")
		}
		mantissa := math.Float64frombits(binary.LittleEndian.Uint64(data[1:9]))
		exponent := int(binary.LittleEndian.Uint64(data[9:17]))
		*r = Result{overflowed: true, sci: Scientific{Mantissa: mantissa, Exponent: exponent}}
	default:
		return fmt.Errorf("count: unknown payload tag %d", data[0])
	}
	return nil
}

// Add sums two results, promoting to scientific notation on overflow.
func (r Result) Add(o Result) Result {
	if r.IsZero() {
		return o
	}
	if o.IsZero() {
		return r
	}
	if r.overflowed || o.overflowed {
		return Result{overflowed: true, sci: r.sci.Add(o.sci)}
	}
	if r.exact <= math.MaxUint64-o.exact {
		return Exact(r.exact + o.exact)
	}
	return Result{overflowed: true, sci: r.sci.Add(o.sci)}
}
