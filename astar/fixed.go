// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package astar

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
)

const fixedDecimals = 18

var fixedAccuracy = uint256.NewInt(1_000_000_000_000_000_000)

// FixedU128 is an unsigned fixed point number with 18 decimals, used for prices.
type FixedU128 struct {
	inner uint256.Int
}

// FixedFromInt returns v as a fixed point number.
func FixedFromInt(v uint64) FixedU128 {
	var f FixedU128
	f.inner.Mul(uint256.NewInt(v), fixedAccuracy)
	return f
}

// FixedFromRational returns n/d, or zero when d is zero.
func FixedFromRational(n, d uint64) FixedU128 {
	var f FixedU128
	if d == 0 {
		return f
	}
	f.inner.Mul(uint256.NewInt(n), fixedAccuracy)
	f.inner.Div(&f.inner, uint256.NewInt(d))
	return f
}

// ParseFixedU128 parses a decimal string such as "0.05".
func ParseFixedU128(s string) (FixedU128, error) {
	s = strings.TrimSpace(s)
	intPart, fracPart, _ := strings.Cut(s, ".")
	if intPart == "" {
		intPart = "0"
	}
	if len(fracPart) > fixedDecimals {
		return FixedU128{}, fmt.Errorf("too many decimals in %q", s)
	}
	fracPart += strings.Repeat("0", fixedDecimals-len(fracPart))
	digits := strings.TrimLeft(intPart+fracPart, "0")
	if digits == "" {
		return FixedU128{}, nil
	}
	v, err := uint256.FromDecimal(digits)
	if err != nil {
		return FixedU128{}, fmt.Errorf("invalid fixed point %q: %w", s, err)
	}
	return FixedU128{inner: *v}, nil
}

// MustParseFixedU128 parses s and panics on error.
func MustParseFixedU128(s string) FixedU128 {
	f, err := ParseFixedU128(s)
	if err != nil {
		panic(err)
	}
	return f
}

// SaturatingMulInt returns floor(f*v), clamped to math.MaxUint64.
func (f FixedU128) SaturatingMulInt(v uint64) uint64 {
	res, overflow := new(uint256.Int).MulOverflow(&f.inner, uint256.NewInt(v))
	if overflow {
		return math.MaxUint64
	}
	res.Div(res, fixedAccuracy)
	if !res.IsUint64() {
		return math.MaxUint64
	}
	return res.Uint64()
}

// Add returns f+o, saturating on overflow.
func (f FixedU128) Add(o FixedU128) FixedU128 {
	var r FixedU128
	if _, overflow := r.inner.AddOverflow(&f.inner, &o.inner); overflow {
		r.inner.SetAllOne()
	}
	return r
}

// DivInt returns f/v, or zero when v is zero.
func (f FixedU128) DivInt(v uint64) FixedU128 {
	var r FixedU128
	if v == 0 {
		return r
	}
	r.inner.Div(&f.inner, uint256.NewInt(v))
	return r
}

// Cmp compares f and o.
func (f FixedU128) Cmp(o FixedU128) int {
	return f.inner.Cmp(&o.inner)
}

// IsZero reports whether f is zero.
func (f FixedU128) IsZero() bool {
	return f.inner.IsZero()
}

func (f FixedU128) String() string {
	var q, r uint256.Int
	q.DivMod(&f.inner, fixedAccuracy, &r)
	if r.IsZero() {
		return q.Dec()
	}
	frac := r.Dec()
	frac = strings.Repeat("0", fixedDecimals-len(frac)) + frac
	return q.Dec() + "." + strings.TrimRight(frac, "0")
}

// MarshalText implements encoding.TextMarshaler.
func (f FixedU128) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *FixedU128) UnmarshalText(text []byte) error {
	parsed, err := ParseFixedU128(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// EncodeRLP implements rlp.Encoder.
func (f FixedU128) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, f.inner.ToBig())
}

// DecodeRLP implements rlp.Decoder.
func (f *FixedU128) DecodeRLP(s *rlp.Stream) error {
	v, err := s.BigInt()
	if err != nil {
		return err
	}
	if f.inner.SetFromBig(v) {
		return fmt.Errorf("fixed point overflow")
	}
	return nil
}
