// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package astar

import "math"

type (
	// EraNumber counts eras since genesis, starting at 1.
	EraNumber = uint32
	// PeriodNumber counts periods since genesis, starting at 1.
	PeriodNumber = uint32
	// BlockNumber is the height of a block.
	BlockNumber = uint32
)

// SaturatingAddU32 returns a+b clamped to math.MaxUint32.
func SaturatingAddU32(a, b uint32) uint32 {
	if a > math.MaxUint32-b {
		return math.MaxUint32
	}
	return a + b
}

// SaturatingSubU32 returns a-b floored at zero.
func SaturatingSubU32(a, b uint32) uint32 {
	if b > a {
		return 0
	}
	return a - b
}

// SaturatingMulU32 returns a*b clamped to math.MaxUint32.
func SaturatingMulU32(a, b uint32) uint32 {
	v := uint64(a) * uint64(b)
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
