// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/reverts"
	"github.com/astar-network/astar/builtin/storage"
	"github.com/astar-network/astar/test/datagen"
	"github.com/astar-network/astar/test/teststate"
)

func newOracle(t *testing.T, capacity uint32) *Oracle {
	st, _ := teststate.New(t)
	return New(storage.NewContext(datagen.RandAddress(), st), Config{
		Capacity:     capacity,
		DefaultPrice: astar.MustParseFixedU128("0.05"),
	})
}

func TestAveragePriceDefault(t *testing.T) {
	o := newOracle(t, 3)
	price, err := o.AveragePrice()
	require.NoError(t, err)
	assert.Equal(t, "0.05", price.String())

	assert.ErrorIs(t, o.SubmitPrice(astar.FixedU128{}), reverts.ErrInvalidPrice)
}

func TestAveragePriceRing(t *testing.T) {
	o := newOracle(t, 3)

	for _, p := range []string{"0.1", "0.2", "0.3"} {
		require.NoError(t, o.SubmitPrice(astar.MustParseFixedU128(p)))
	}
	price, err := o.AveragePrice()
	require.NoError(t, err)
	assert.Equal(t, "0.2", price.String())

	// overwrites the oldest entry
	require.NoError(t, o.SubmitPrice(astar.MustParseFixedU128("0.4")))
	price, err = o.AveragePrice()
	require.NoError(t, err)
	assert.Equal(t, "0.3", price.String())

	prices, err := o.Prices()
	require.NoError(t, err)
	var got []string
	for _, p := range prices {
		got = append(got, p.String())
	}
	assert.Equal(t, []string{"0.2", "0.3", "0.4"}, got)
}
