// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tiers

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/reverts"
)

func amounts(v ...int64) []*big.Int {
	out := make([]*big.Int, len(v))
	for i, x := range v {
		out[i] = big.NewInt(x)
	}
	return out
}

func percents(v ...uint32) []astar.Permill {
	out := make([]astar.Permill, len(v))
	for i, x := range v {
		out[i] = astar.PermillFromPercent(x)
	}
	return out
}

func TestRankedTier(t *testing.T) {
	r := NewRankedTier(3, 7)
	assert.Equal(t, uint8(3), r.Tier())
	assert.Equal(t, uint8(7), r.Rank())
	assert.Equal(t, RankedTier(0x37), r)
	assert.Equal(t, "3/7", r.String())

	assert.Equal(t, uint8(MaxRank), NewRankedTier(1, 15).Rank())
}

func TestFindRank(t *testing.T) {
	tests := []struct {
		lower, upper, stake int64
		want                uint8
	}{
		{100, 200, 100, 0},
		{100, 200, 109, 0},
		{100, 200, 110, 1},
		{100, 200, 155, 5},
		{100, 200, 199, 9},
		{100, 200, 200, 10},
		{100, 200, 1000, 10},
		{100, 105, 104, 0},
		{200, 100, 150, 0},
	}
	for _, tt := range tests {
		got := FindRank(big.NewInt(tt.lower), big.NewInt(tt.upper), big.NewInt(tt.stake))
		assert.Equal(t, tt.want, got, "lower %d upper %d stake %d", tt.lower, tt.upper, tt.stake)
	}
}

func TestAssignOnlyTopInHighestTier(t *testing.T) {
	cfg := &TiersConfiguration{
		NumberOfSlots:  100,
		SlotsPerTier:   []uint16{10, 20, 30, 40},
		RewardPortion:  percents(10, 20, 30, 40),
		TierThresholds: amounts(950, 940, 930, 500),
	}
	require.True(t, cfg.IsValid())

	dapps := []StakedDApp{
		{ID: 0, Stake: big.NewInt(1000)},
		{ID: 1, Stake: big.NewInt(900)},
		{ID: 2, Stake: big.NewInt(800)},
		{ID: 3, Stake: big.NewInt(700)},
		{ID: 4, Stake: big.NewInt(600)},
	}
	result := Assign(dapps, cfg, big.NewInt(1_000_000), 3, false)

	assert.Equal(t, uint32(3), result.Period)
	require.Len(t, result.DApps, 5)
	counts := make(map[uint8]int)
	for i, d := range result.DApps {
		assert.Equal(t, uint16(i), d.ID)
		counts[d.RankedTier.Tier()]++
	}
	assert.Equal(t, map[uint8]int{0: 1, 3: 4}, counts)

	top, ok := result.Get(0)
	require.True(t, ok)
	assert.Equal(t, uint8(0), top.Tier())

	for tier, reward := range result.Rewards {
		assert.Equal(t, big.NewInt(10_000), reward, "tier %d", tier)
		assert.Zero(t, result.RankRewards[tier].Sign())
	}
}

func TestAssignThresholdIsInclusive(t *testing.T) {
	cfg := &TiersConfiguration{
		NumberOfSlots:  2,
		SlotsPerTier:   []uint16{1, 1},
		RewardPortion:  percents(60, 40),
		TierThresholds: amounts(500, 100),
	}
	result := Assign([]StakedDApp{
		{ID: 7, Stake: big.NewInt(500)},
		{ID: 8, Stake: big.NewInt(99)},
		{ID: 9, Stake: big.NewInt(0)},
	}, cfg, big.NewInt(1000), 1, true)

	require.Len(t, result.DApps, 1)
	assert.Equal(t, DAppTier{ID: 7, RankedTier: NewRankedTier(0, 0)}, result.DApps[0])
	_, ok := result.Get(8)
	assert.False(t, ok)
}

func TestAssignSlotCapacityOverflowsToLowerTier(t *testing.T) {
	cfg := &TiersConfiguration{
		NumberOfSlots:  3,
		SlotsPerTier:   []uint16{1, 2},
		RewardPortion:  percents(50, 50),
		TierThresholds: amounts(100, 10),
	}
	result := Assign([]StakedDApp{
		{ID: 3, Stake: big.NewInt(200)},
		{ID: 1, Stake: big.NewInt(200)},
		{ID: 2, Stake: big.NewInt(200)},
		{ID: 4, Stake: big.NewInt(200)},
	}, cfg, big.NewInt(1000), 1, false)

	// ties resolve by id, the last one does not fit anywhere
	assert.Equal(t, []DAppTier{
		{ID: 1, RankedTier: NewRankedTier(0, 0)},
		{ID: 2, RankedTier: NewRankedTier(1, 0)},
		{ID: 3, RankedTier: NewRankedTier(1, 0)},
	}, result.DApps)
}

func TestAssignRankRewards(t *testing.T) {
	cfg := &TiersConfiguration{
		NumberOfSlots:  7,
		SlotsPerTier:   []uint16{1, 2, 4},
		RewardPortion:  percents(50, 30, 20),
		TierThresholds: amounts(1000, 500, 100),
	}
	result := Assign([]StakedDApp{
		{ID: 1, Stake: big.NewInt(1200)},
		{ID: 2, Stake: big.NewInt(750)},
		{ID: 3, Stake: big.NewInt(100)},
		{ID: 4, Stake: big.NewInt(460)},
	}, cfg, big.NewInt(1_000_000), 2, true)

	assert.Equal(t, []DAppTier{
		{ID: 1, RankedTier: NewRankedTier(0, 0)},
		{ID: 2, RankedTier: NewRankedTier(1, 5)},
		{ID: 3, RankedTier: NewRankedTier(2, 0)},
		{ID: 4, RankedTier: NewRankedTier(2, 9)},
	}, result.DApps)
	assert.Equal(t, amounts(500_000, 150_000, 50_000), result.Rewards)
	// tier 1 is limited by the unused slot, tier 2 by the gap to the tier above
	assert.Equal(t, amounts(0, 30_000, 10_000), result.RankRewards)

	want := map[uint16]int64{1: 500_000, 2: 300_000, 3: 50_000, 4: 140_000}
	for id, reward := range want {
		_, got, err := result.TryClaim(id)
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(reward), got, "dapp %d", id)
	}
	assert.Empty(t, result.DApps)
}

func TestTryClaimTwice(t *testing.T) {
	rewards := &DAppTierRewards{
		DApps:       []DAppTier{{ID: 1, RankedTier: NewRankedTier(0, 0)}, {ID: 5, RankedTier: NewRankedTier(1, 2)}},
		Rewards:     amounts(100, 50),
		RankRewards: amounts(0, 3),
		Period:      4,
	}
	ranked, reward, err := rewards.TryClaim(5)
	require.NoError(t, err)
	assert.Equal(t, NewRankedTier(1, 2), ranked)
	assert.Equal(t, big.NewInt(56), reward)

	_, _, err = rewards.TryClaim(5)
	assert.ErrorIs(t, err, reverts.ErrNoClaimableRewards)
	_, _, err = rewards.TryClaim(2)
	assert.ErrorIs(t, err, reverts.ErrNoClaimableRewards)
	assert.Len(t, rewards.DApps, 1)
}

func TestDistributeSlots(t *testing.T) {
	thirds := []astar.Permill{333_333, 333_333, 333_334}
	assert.Equal(t, []uint16{3, 3, 4}, DistributeSlots(10, thirds))
	assert.Equal(t, []uint16{1, 2, 3, 4}, DistributeSlots(10, percents(10, 20, 30, 40)))
	assert.Equal(t, []uint16{0, 0, 1}, DistributeSlots(1, percents(20, 30, 50)))
	assert.Equal(t, []uint16{1, 1, 1}, DistributeSlots(3, thirds))
}

func TestNumberOfSlots(t *testing.T) {
	params := &TierParameters{SlotsPerPrice: 100, BaseSlots: 10}
	assert.Equal(t, uint16(60), NumberOfSlots(params, astar.MustParseFixedU128("0.5"), 200))
	assert.Equal(t, uint16(200), NumberOfSlots(params, astar.MustParseFixedU128("5"), 200))
	assert.Equal(t, uint16(1), NumberOfSlots(&TierParameters{}, astar.FixedU128{}, 200))
}

func testParams() *TierParameters {
	return &TierParameters{
		RewardPortion:    percents(40, 30, 20, 10),
		SlotDistribution: percents(10, 20, 30, 40),
		TierThresholds: []TierThreshold{
			DynamicTvl(big.NewInt(1000), big.NewInt(800)),
			DynamicTvl(big.NewInt(600), big.NewInt(400)),
			FixedTvl(big.NewInt(300)),
			FixedTvl(big.NewInt(100)),
		},
		SlotsPerPrice: 100,
	}
}

func TestTierParametersIsValid(t *testing.T) {
	params := testParams()
	assert.True(t, params.IsValid(4))
	assert.False(t, params.IsValid(3))

	bad := params.Copy()
	bad.RewardPortion[0] = astar.PermillFromPercent(41)
	assert.False(t, bad.IsValid(4))
	assert.True(t, params.IsValid(4), "copy must not alias")

	bad = params.Copy()
	bad.TierThresholds[2] = FixedTvl(big.NewInt(600))
	assert.False(t, bad.IsValid(4))

	bad = params.Copy()
	bad.TierThresholds[3] = FixedShare(astar.PerbillFromPercent(1))
	assert.False(t, bad.IsValid(4))

	bad = params.Copy()
	bad.TierThresholds[0] = DynamicTvl(big.NewInt(1000), big.NewInt(2000))
	assert.False(t, bad.IsValid(4))
}

func TestCalculateDynamicThresholds(t *testing.T) {
	params := testParams()
	issuance := big.NewInt(1_000_000)

	first := Calculate(nil, params, astar.MustParseFixedU128("0.1"), issuance, 500)
	require.True(t, first.IsValid())
	assert.Equal(t, uint16(10), first.NumberOfSlots)
	assert.Equal(t, []uint16{1, 2, 3, 4}, first.SlotsPerTier)
	assert.Equal(t, amounts(1000, 600, 300, 100), first.TierThresholds)

	// twice the slots halve the dynamic thresholds, down to their minimum
	second := Calculate(first, params, astar.MustParseFixedU128("0.2"), issuance, 500)
	assert.Equal(t, uint16(20), second.NumberOfSlots)
	assert.Equal(t, amounts(800, 400, 300, 100), second.TierThresholds)

	// fewer slots raise them again
	third := Calculate(second, params, astar.MustParseFixedU128("0.1"), issuance, 500)
	assert.Equal(t, amounts(1600, 800, 300, 100), third.TierThresholds)
}

func TestCalculatePercentageThresholds(t *testing.T) {
	params := testParams()
	params.TierThresholds = []TierThreshold{
		DynamicShare(astar.PerbillFromPercent(4), astar.PerbillFromPercent(3)),
		FixedShare(astar.PerbillFromPercent(2)),
		FixedShare(astar.PerbillFromPercent(1)),
		FixedShare(astar.PerbillFromParts(5_000_000)),
	}
	require.True(t, params.IsValid(4))

	cfg := Calculate(nil, params, astar.MustParseFixedU128("0.1"), big.NewInt(1_000_000), 500)
	assert.Equal(t, amounts(40_000, 20_000, 10_000, 5_000), cfg.TierThresholds)
}

func TestRecalculateKeepsPreviousOnInvalid(t *testing.T) {
	params := testParams()
	prev := Calculate(nil, params, astar.MustParseFixedU128("0.1"), big.NewInt(1_000_000), 500)

	// the dynamic tier would fall below the fixed one
	params.TierThresholds[1] = DynamicTvl(big.NewInt(600), big.NewInt(0))
	params.TierThresholds[2] = FixedTvl(big.NewInt(500))
	next := Recalculate(prev, params, astar.MustParseFixedU128("1"), big.NewInt(1_000_000), 500)
	assert.Same(t, prev, next)
}

func genStakedDApps() gopter.Gen {
	return gen.SliceOf(gen.Int64Range(0, 2000)).Map(func(stakes []int64) []StakedDApp {
		dapps := make([]StakedDApp, len(stakes))
		for i, s := range stakes {
			dapps[len(stakes)-1-i] = StakedDApp{ID: uint16(i), Stake: big.NewInt(s)}
		}
		return dapps
	})
}

func TestAssignProperties(t *testing.T) {
	cfg := &TiersConfiguration{
		NumberOfSlots:  10,
		SlotsPerTier:   []uint16{1, 2, 3, 4},
		RewardPortion:  percents(40, 30, 20, 10),
		TierThresholds: amounts(1500, 1000, 500, 100),
	}
	pool := big.NewInt(10_000_000)

	properties := gopter.NewProperties(nil)
	properties.Property("assignment is deterministic", prop.ForAll(
		func(dapps []StakedDApp) bool {
			a := Assign(dapps, cfg, pool, 1, true)
			b := Assign(dapps, cfg, pool, 1, true)
			return assert.ObjectsAreEqual(a, b)
		},
		genStakedDApps(),
	))
	properties.Property("tiers respect thresholds and capacity", prop.ForAll(
		func(dapps []StakedDApp) bool {
			stakes := make(map[uint16]*big.Int)
			for _, d := range dapps {
				stakes[d.ID] = d.Stake
			}
			result := Assign(dapps, cfg, pool, 1, true)
			filled := make([]int, len(cfg.SlotsPerTier))
			for i, d := range result.DApps {
				if i > 0 && result.DApps[i-1].ID >= d.ID {
					return false
				}
				tier := d.RankedTier.Tier()
				if stakes[d.ID].Cmp(cfg.TierThresholds[tier]) < 0 {
					return false
				}
				filled[tier]++
			}
			for tier, n := range filled {
				if n > int(cfg.SlotsPerTier[tier]) {
					return false
				}
			}
			return true
		},
		genStakedDApps(),
	))
	properties.Property("payouts stay within the pool", prop.ForAll(
		func(dapps []StakedDApp) bool {
			result := Assign(dapps, cfg, pool, 1, true)
			total := new(big.Int)
			for _, d := range result.DApps {
				total.Add(total, result.RewardOf(d.RankedTier))
			}
			return total.Cmp(pool) <= 0
		},
		genStakedDApps(),
	))
	properties.TestingRun(t)
}
