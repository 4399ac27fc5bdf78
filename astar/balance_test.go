// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package astar

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaturatingBalance(t *testing.T) {
	one := big.NewInt(1)

	assert.Equal(t, MaxBalance, SaturatingAdd(MaxBalance, one))
	assert.Equal(t, MaxBalance, SaturatingMul(MaxBalance, big.NewInt(2)))
	assert.Equal(t, big.NewInt(0), SaturatingSub(one, big.NewInt(2)))
	assert.Equal(t, big.NewInt(3), SaturatingAdd(nil, big.NewInt(3)))
	assert.True(t, IsZero(nil))
	assert.True(t, IsPositive(one))
	assert.False(t, IsPositive(nil))
	assert.False(t, IsPositive(big.NewInt(0)))
	assert.False(t, IsPositive(big.NewInt(-1)))

	a := big.NewInt(10)
	SaturatingSub(a, one)
	assert.Equal(t, big.NewInt(10), a, "arguments are never mutated")
}

func TestMulDiv(t *testing.T) {
	assert.Equal(t, big.NewInt(3333), MulDiv(big.NewInt(10_000), big.NewInt(1), big.NewInt(3)))
	assert.Equal(t, big.NewInt(0), MulDiv(big.NewInt(10_000), big.NewInt(1), big.NewInt(0)))
}

func TestParseBalance(t *testing.T) {
	v, err := ParseBalance("0x10")
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(16), v)

	_, err = ParseBalance("-1")
	assert.Error(t, err)
	_, err = ParseBalance("340282366920938463463374607431768211456")
	assert.Error(t, err)
}

func TestSaturatingU32(t *testing.T) {
	assert.Equal(t, uint32(math.MaxUint32), SaturatingAddU32(math.MaxUint32, 1))
	assert.Equal(t, uint32(0), SaturatingSubU32(1, 2))
	assert.Equal(t, uint32(math.MaxUint32), SaturatingMulU32(math.MaxUint32, 2))
}
