// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package balances

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astar-network/astar/builtin/reverts"
	"github.com/astar-network/astar/test/datagen"
	"github.com/astar-network/astar/test/teststate"
)

func TestFreezeAndReserve(t *testing.T) {
	st, _ := teststate.New(t)
	b := New(st)
	alice := datagen.RandAddress()
	teststate.Fund(st, alice, big.NewInt(1000))

	require.NoError(t, b.Freeze(alice, big.NewInt(600)))
	usable, err := b.Usable(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(400), usable)

	assert.ErrorIs(t, b.Freeze(alice, big.NewInt(1001)), reverts.ErrLiquidityRestricted)
	assert.ErrorIs(t, b.Reserve(alice, big.NewInt(401)), reverts.ErrInsufficientBalance)

	require.NoError(t, b.Reserve(alice, big.NewInt(400)))
	acc, err := b.Account(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(600), acc.Free)
	assert.Equal(t, big.NewInt(400), acc.Reserved)

	moved, err := b.Unreserve(alice, big.NewInt(1000))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(400), moved)

	require.NoError(t, b.Thaw(alice))
	usable, err = b.Usable(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), usable)
}

func TestTransferAndDeposit(t *testing.T) {
	st, _ := teststate.New(t)
	b := New(st)
	alice, bob := datagen.RandAddress(), datagen.RandAddress()
	teststate.Fund(st, alice, big.NewInt(100))

	require.NoError(t, b.Freeze(alice, big.NewInt(50)))
	assert.ErrorIs(t, b.Transfer(alice, bob, big.NewInt(51)), reverts.ErrInsufficientBalance)
	require.NoError(t, b.Transfer(alice, bob, big.NewInt(50)))

	free, err := b.Free(bob)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(50), free)

	require.NoError(t, b.Deposit(bob, big.NewInt(25)))
	issuance, err := b.TotalIssuance()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(125), issuance)
}

func TestNegativeAmounts(t *testing.T) {
	st, _ := teststate.New(t)
	b := New(st)
	alice, bob := datagen.RandAddress(), datagen.RandAddress()
	teststate.Fund(st, alice, big.NewInt(100))
	teststate.Fund(st, bob, big.NewInt(100))

	assert.ErrorIs(t, b.Transfer(alice, bob, big.NewInt(-50)), reverts.ErrInvalidAmount)
	assert.ErrorIs(t, b.Reserve(alice, big.NewInt(-50)), reverts.ErrInvalidAmount)
	assert.ErrorIs(t, b.Deposit(alice, big.NewInt(-50)), reverts.ErrInvalidAmount)

	moved, err := b.Unreserve(alice, big.NewInt(-50))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(0), moved)

	acc, err := b.Account(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100), acc.Free)
	assert.Equal(t, big.NewInt(0), acc.Reserved)

	free, err := b.Free(bob)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100), free)

	issuance, err := b.TotalIssuance()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(200), issuance)
}
