// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package astar

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
)

// MaxBalance is the largest representable balance (u128).
var MaxBalance = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// Balances are *big.Int values kept within [0, MaxBalance]. Every helper below
// returns a fresh value and never mutates its arguments.

// Zero returns a new zero balance.
func Zero() *big.Int {
	return new(big.Int)
}

// IsZero reports whether b is nil or zero.
func IsZero(b *big.Int) bool {
	return b == nil || b.Sign() == 0
}

// IsPositive reports whether b is greater than zero.
func IsPositive(b *big.Int) bool {
	return b != nil && b.Sign() > 0
}

// Copy returns a copy of b, treating nil as zero.
func Copy(b *big.Int) *big.Int {
	if b == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(b)
}

// clamp bounds v; zero results are returned in canonical form.
func clamp(v *big.Int) *big.Int {
	if v.Sign() <= 0 {
		return new(big.Int)
	}
	if v.Cmp(MaxBalance) > 0 {
		return v.Set(MaxBalance)
	}
	return v
}

// SaturatingAdd returns a+b clamped to MaxBalance.
func SaturatingAdd(a, b *big.Int) *big.Int {
	return clamp(new(big.Int).Add(Copy(a), Copy(b)))
}

// SaturatingSub returns a-b floored at zero.
func SaturatingSub(a, b *big.Int) *big.Int {
	return clamp(new(big.Int).Sub(Copy(a), Copy(b)))
}

// SaturatingMul returns a*b clamped to MaxBalance.
func SaturatingMul(a, b *big.Int) *big.Int {
	return clamp(new(big.Int).Mul(Copy(a), Copy(b)))
}

// MulDiv returns floor(a*b/c), or zero when c is zero.
func MulDiv(a, b, c *big.Int) *big.Int {
	if IsZero(c) {
		return new(big.Int)
	}
	v := new(big.Int).Mul(Copy(a), Copy(b))
	return clamp(v.Quo(v, c))
}

// Min returns a copy of the smaller of a and b.
func Min(a, b *big.Int) *big.Int {
	if Copy(a).Cmp(Copy(b)) <= 0 {
		return Copy(a)
	}
	return Copy(b)
}

// Max returns a copy of the larger of a and b.
func Max(a, b *big.Int) *big.Int {
	if Copy(a).Cmp(Copy(b)) >= 0 {
		return Copy(a)
	}
	return Copy(b)
}

// Cmp compares a and b, treating nil as zero.
func Cmp(a, b *big.Int) int {
	return Copy(a).Cmp(Copy(b))
}

// ParseBalance parses a decimal or 0x-prefixed hex balance.
func ParseBalance(s string) (*big.Int, error) {
	v, ok := math.ParseBig256(s)
	if !ok {
		return nil, fmt.Errorf("invalid balance %q", s)
	}
	if v.Sign() < 0 || v.Cmp(MaxBalance) > 0 {
		return nil, fmt.Errorf("balance out of range %q", s)
	}
	return v, nil
}

// MustParseBalance parses a balance and panics on error.
func MustParseBalance(s string) *big.Int {
	v, err := ParseBalance(s)
	if err != nil {
		panic(err)
	}
	return v
}
