// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astar-network/astar/builtin/storage"
	"github.com/astar-network/astar/test/datagen"
	"github.com/astar-network/astar/test/teststate"
)

func TestProtocolState(t *testing.T) {
	ps := Genesis(20)
	assert.Equal(t, uint32(1), ps.Era)
	assert.Equal(t, uint32(21), ps.NextEraStart)
	assert.Equal(t, Voting, ps.Subperiod())
	assert.False(t, ps.IsNewEra(20))
	assert.True(t, ps.IsNewEra(21))
	assert.False(t, ps.IsLastEraOfPeriod())

	ps.Era = 2
	ps.AdvanceToNextSubperiod(5, 31)
	assert.Equal(t, BuildAndEarn, ps.Subperiod())
	assert.Equal(t, uint32(1), ps.PeriodNumber())
	assert.Equal(t, uint32(5), ps.PeriodEndEra())

	ps.Era = 4
	assert.True(t, ps.IsLastEraOfPeriod())

	ps.Era = 5
	ps.AdvanceToNextSubperiod(6, 71)
	assert.Equal(t, Voting, ps.Subperiod())
	assert.Equal(t, uint32(2), ps.PeriodNumber())
	assert.Equal(t, uint32(71), ps.NextEraStart)
}

func TestService(t *testing.T) {
	st, _ := teststate.New(t)
	svc := New(storage.NewContext(datagen.RandAddress(), st))

	ok, err := svc.IsInitialized()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, svc.Set(Genesis(10)))
	ps, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, Genesis(10), ps)
}
