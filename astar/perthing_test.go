// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package astar

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermillMul(t *testing.T) {
	tests := []struct {
		name string
		p    Permill
		x    int64
		want int64
	}{
		{"zero", 0, 1000, 0},
		{"one", PermillAccuracy, 1234, 1234},
		{"half", PermillFromPercent(50), 1001, 500},
		{"tie rounds down", PermillFromPercent(50), 1, 0},
		{"above tie rounds up", 500_001, 1, 1},
		{"ten percent", PermillFromPercent(10), 10_000, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, big.NewInt(tt.want), tt.p.Mul(big.NewInt(tt.x)))
		})
	}
}

func TestPerbillFromRational(t *testing.T) {
	assert.Equal(t, Perbill(PerbillAccuracy), PerbillFromRational(big.NewInt(5), big.NewInt(5)))
	assert.Equal(t, Perbill(PerbillAccuracy), PerbillFromRational(big.NewInt(5), big.NewInt(0)))
	assert.Equal(t, Perbill(333_333_333), PerbillFromRational(big.NewInt(1), big.NewInt(3)))
	assert.Equal(t, Permill(250_000), PermillFromRational(big.NewInt(1), big.NewInt(4)))
}

func TestPerthingSaturates(t *testing.T) {
	assert.True(t, PermillFromPercent(150).IsOne())
	assert.True(t, PerbillFromParts(PerbillAccuracy+1).IsOne())
	assert.Equal(t, MaxBalance, PermillFromPercent(100).Mul(MaxBalance))
	assert.Equal(t, "12.5000%", PermillFromParts(125_000).String())
}
