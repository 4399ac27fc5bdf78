// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package astar

import (
	"fmt"
	"math/big"
)

const (
	// PermillAccuracy is the denominator of Permill.
	PermillAccuracy = 1_000_000
	// PerbillAccuracy is the denominator of Perbill.
	PerbillAccuracy = 1_000_000_000
)

// Permill is a fraction in parts per million, saturated at one.
type Permill uint32

// Perbill is a fraction in parts per billion, saturated at one.
type Perbill uint32

// PermillFromPercent returns p percent.
func PermillFromPercent(p uint32) Permill {
	return Permill(min(uint64(p)*PermillAccuracy/100, PermillAccuracy))
}

// PermillFromParts returns parts/1_000_000, saturated at one.
func PermillFromParts(parts uint32) Permill {
	return Permill(min(uint64(parts), PermillAccuracy))
}

// PermillFromRational returns floor(n/d) in parts per million, saturated at one.
func PermillFromRational(n, d *big.Int) Permill {
	return Permill(fromRational(n, d, PermillAccuracy))
}

// Mul returns p*x rounded to the nearest integer, ties rounding down.
func (p Permill) Mul(x *big.Int) *big.Int {
	return mulRounded(uint64(p), PermillAccuracy, x)
}

// IsOne reports whether p is 100%.
func (p Permill) IsOne() bool { return p >= PermillAccuracy }

// Parts returns the raw parts value.
func (p Permill) Parts() uint32 { return uint32(p) }

func (p Permill) String() string {
	return fmt.Sprintf("%d.%04d%%", uint32(p)/10_000, uint32(p)%10_000)
}

// PerbillFromPercent returns p percent.
func PerbillFromPercent(p uint32) Perbill {
	return Perbill(min(uint64(p)*PerbillAccuracy/100, PerbillAccuracy))
}

// PerbillFromParts returns parts/1_000_000_000, saturated at one.
func PerbillFromParts(parts uint32) Perbill {
	return Perbill(min(uint64(parts), PerbillAccuracy))
}

// PerbillFromRational returns floor(n/d) in parts per billion, saturated at one.
func PerbillFromRational(n, d *big.Int) Perbill {
	return Perbill(fromRational(n, d, PerbillAccuracy))
}

// Mul returns p*x rounded to the nearest integer, ties rounding down.
func (p Perbill) Mul(x *big.Int) *big.Int {
	return mulRounded(uint64(p), PerbillAccuracy, x)
}

// IsOne reports whether p is 100%.
func (p Perbill) IsOne() bool { return p >= PerbillAccuracy }

// Parts returns the raw parts value.
func (p Perbill) Parts() uint32 { return uint32(p) }

func (p Perbill) String() string {
	return fmt.Sprintf("%d.%07d%%", uint32(p)/10_000_000, uint32(p)%10_000_000)
}

func fromRational(n, d *big.Int, accuracy uint64) uint64 {
	if IsZero(d) || Cmp(n, d) >= 0 {
		return accuracy
	}
	v := new(big.Int).Mul(Copy(n), new(big.Int).SetUint64(accuracy))
	return v.Quo(v, d).Uint64()
}

func mulRounded(parts, accuracy uint64, x *big.Int) *big.Int {
	if parts >= accuracy {
		return Copy(x)
	}
	v := new(big.Int).Mul(Copy(x), new(big.Int).SetUint64(parts))
	v.Add(v, new(big.Int).SetUint64(accuracy/2-1))
	return clamp(v.Quo(v, new(big.Int).SetUint64(accuracy)))
}
