// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package teststate provides in-memory states for tests.
package teststate

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/lvldb"
	"github.com/astar-network/astar/state"
)

// New returns an empty state over an in-memory leveldb closed at test cleanup.
func New(t testing.TB) (*state.State, *lvldb.LevelDB) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return state.New(db), db
}

// Fund mints amount into the free balance of addr.
func Fund(st *state.State, addr astar.Address, amount *big.Int) {
	acc, err := st.GetAccount(addr)
	if err != nil {
		panic(err)
	}
	acc.Free = astar.SaturatingAdd(acc.Free, amount)
	st.SetAccount(addr, acc)

	issuance, err := st.GetTotalIssuance()
	if err != nil {
		panic(err)
	}
	st.SetTotalIssuance(astar.SaturatingAdd(issuance, amount))
}
