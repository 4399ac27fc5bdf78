// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dappstaking

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/dappstaking/migration"
	"github.com/astar-network/astar/builtin/dappstaking/tiers"
	"github.com/astar-network/astar/builtin/storage"
)

// newV6Test returns an engine in period 2 whose records were rewritten in
// the version 6 layout and committed.
func newV6Test(t *testing.T, tierRecord *migration.DAppTierRewardsV6) *DappStakingTest {
	ts := newTest(t)
	ts.Account(1_000_000)
	ts.RunToEra(5)

	legacy := newLegacyStore(ts.store.sctx)
	require.NoError(t, legacy.paramsV6.Set(&migration.TierParametersV6{
		RewardPortion:    testTierParams().RewardPortion,
		SlotDistribution: testTierParams().SlotDistribution,
		TierThresholds: []migration.ThresholdV6{
			{Amount: big.NewInt(5000)},
			{Dynamic: true, Amount: big.NewInt(2000), MinimumAmount: big.NewInt(1500)},
			{Amount: big.NewInt(1000)},
			{Amount: big.NewInt(100)},
		},
		BaseSlots: 10,
	}))
	require.NoError(t, legacy.dappTiersV6.Set(storage.U32Key(1), tierRecord))
	require.NoError(t, ts.SetStorageVersion(6))
	require.NoError(t, ts.st.Commit(ts.db))
	return ts
}

func TestMigrateFromV6(t *testing.T) {
	ts := newV6Test(t, &migration.DAppTierRewardsV6{
		DApps:   []migration.DAppTierV6{{ID: 0, Tier: 2}, {ID: 3, Tier: 0}},
		Rewards: []*big.Int{big.NewInt(400), big.NewInt(300), big.NewInt(200), big.NewInt(100)},
		Period:  1,
	})
	issuance, err := ts.bal.TotalIssuance()
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1_000_000), issuance)

	from, err := ts.Migrate(context.Background(), ts.db)
	require.NoError(t, err)
	assert.Equal(t, uint32(6), from)

	version, err := ts.StorageVersion()
	require.NoError(t, err)
	assert.Equal(t, StorageVersion, version)

	params, err := ts.StaticTierParams()
	require.NoError(t, err)
	require.True(t, params.IsValid(4))
	assert.Equal(t, tiers.FixedShare(astar.PerbillFromParts(5_000_000)), params.TierThresholds[0])
	assert.Equal(t, tiers.DynamicShare(astar.PerbillFromParts(2_000_000), astar.PerbillFromParts(1_500_000)), params.TierThresholds[1])

	cfg, err := ts.TierConfig()
	require.NoError(t, err)
	assert.Equal(t, uint16(10), cfg.NumberOfSlots)
	assert.Equal(t, []uint16{1, 2, 3, 4}, cfg.SlotsPerTier)
	assert.Equal(t, []*big.Int{big.NewInt(5000), big.NewInt(2000), big.NewInt(1000), big.NewInt(100)}, cfg.TierThresholds)

	record, ok, err := ts.DAppTiers(1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, record.RankRewards, 4)
	ranked, reward, err := record.TryClaim(3)
	require.NoError(t, err)
	assert.Equal(t, tiers.NewRankedTier(0, 0), ranked)
	assert.Equal(t, big.NewInt(400), reward)

	// already migrated
	from, err = ts.Migrate(context.Background(), ts.db)
	require.NoError(t, err)
	assert.Equal(t, StorageVersion, from)
}

func TestMigrateRejectsCorruptRecords(t *testing.T) {
	ts := newV6Test(t, &migration.DAppTierRewardsV6{
		DApps:   []migration.DAppTierV6{{ID: 0, Tier: 5}},
		Rewards: []*big.Int{big.NewInt(400)},
		Period:  1,
	})

	_, err := ts.Migrate(context.Background(), ts.db)
	assert.ErrorContains(t, err, "unknown tier")

	version, err := ts.StorageVersion()
	require.NoError(t, err)
	assert.Equal(t, uint32(6), version)
}

func TestMigrateUnsupportedVersion(t *testing.T) {
	ts := newTest(t)

	require.NoError(t, ts.SetStorageVersion(5))
	_, err := ts.Migrate(context.Background(), ts.db)
	assert.ErrorContains(t, err, "cannot be migrated")

	require.NoError(t, ts.SetStorageVersion(StorageVersion+1))
	_, err = ts.Migrate(context.Background(), ts.db)
	assert.ErrorContains(t, err, "newer")
}

func TestMigrateFromV7(t *testing.T) {
	ts := newTest(t)
	ts.Account(1_000_000)
	require.NoError(t, ts.SetStorageVersion(7))
	require.NoError(t, ts.st.Commit(ts.db))

	from, err := ts.Migrate(context.Background(), ts.db)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), from)

	params, err := ts.StaticTierParams()
	require.NoError(t, err)
	for _, threshold := range params.TierThresholds {
		assert.True(t, threshold.Kind.IsPercentage())
	}
	assert.Equal(t, tiers.FixedShare(astar.PerbillFromParts(100_000)), params.TierThresholds[3])
}
