// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package erainfo

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astar-network/astar/builtin/dappstaking/ledger"
	"github.com/astar-network/astar/builtin/dappstaking/protocol"
	"github.com/astar-network/astar/builtin/storage"
	"github.com/astar-network/astar/test/datagen"
	"github.com/astar-network/astar/test/teststate"
)

func TestLocking(t *testing.T) {
	info := Genesis(1, 1)
	info.AddLocked(big.NewInt(1000))
	info.UnlockingStarted(big.NewInt(300))
	assert.Equal(t, big.NewInt(700), info.TotalLocked)
	assert.Equal(t, big.NewInt(300), info.Unlocking)

	info.Relocked(big.NewInt(100))
	info.UnlockingRemoved(big.NewInt(200))
	assert.Equal(t, big.NewInt(800), info.TotalLocked)
	assert.Equal(t, big.NewInt(0), info.Unlocking)
}

func TestMigrateToNextEra(t *testing.T) {
	info := Genesis(1, 1)
	info.AddStakeAmount(big.NewInt(100), protocol.Voting)
	assert.Equal(t, big.NewInt(0), info.CurrentStaked())

	bne := protocol.BuildAndEarn
	info.MigrateToNextEra(&bne)
	assert.Equal(t, uint32(2), info.CurrentStakeAmount.Era)
	assert.Equal(t, big.NewInt(100), info.CurrentStaked())

	info.AddStakeAmount(big.NewInt(50), protocol.BuildAndEarn)
	info.UnstakeParts(
		ledger.StakeAmount{Voting: big.NewInt(10), BuildAndEarn: big.NewInt(0)},
		ledger.StakeAmount{Voting: big.NewInt(10), BuildAndEarn: big.NewInt(50)},
	)
	info.MigrateToNextEra(nil)
	assert.Equal(t, uint32(3), info.CurrentStakeAmount.Era)
	assert.Equal(t, uint32(4), info.NextStakeAmount.Era)
	assert.Equal(t, big.NewInt(90), info.CurrentStaked())

	voting := protocol.Voting
	info.MigrateToNextEra(&voting)
	assert.Equal(t, uint32(2), info.CurrentStakeAmount.Period)
	assert.True(t, info.CurrentStakeAmount.IsEmpty())
	assert.True(t, info.NextStakeAmount.IsEmpty())
}

func TestService(t *testing.T) {
	st, _ := teststate.New(t)
	svc := New(storage.NewContext(datagen.RandAddress(), st))

	info, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(0), info.TotalLocked)

	info = Genesis(4, 2)
	info.AddLocked(big.NewInt(5))
	require.NoError(t, svc.Set(info))

	got, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(5), got.TotalLocked)
	assert.Equal(t, uint32(4), got.CurrentStakeAmount.Era)
}
