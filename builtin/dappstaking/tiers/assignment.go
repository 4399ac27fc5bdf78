// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tiers

import (
	"cmp"
	"math/big"
	"slices"

	"github.com/astar-network/astar/astar"
)

// StakedDApp is the input of the tier assignment.
type StakedDApp struct {
	ID    uint16
	Stake *big.Int
}

// Assign distributes dApps into tiers and prices every slot out of pool.
//
// DApps are ordered by stake, highest first, ties by ID. Tiers are filled
// from the top while a dApp reaches the tier threshold and slots are left;
// a dApp below every threshold gets nothing. A slot earns the tier portion
// of pool divided by the tier slot count, filled or not. With ranking
// enabled, dApps below the top tier also earn a rank reward funded by the
// unused slots of their tier.
func Assign(dapps []StakedDApp, cfg *TiersConfiguration, pool *big.Int, period uint32, rankingEnabled bool) *DAppTierRewards {
	sorted := make([]StakedDApp, 0, len(dapps))
	for _, d := range dapps {
		if d.Stake != nil && d.Stake.Sign() > 0 {
			sorted = append(sorted, d)
		}
	}
	slices.SortFunc(sorted, func(a, b StakedDApp) int {
		if c := b.Stake.Cmp(a.Stake); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	n := len(cfg.SlotsPerTier)
	filled := make([]uint64, n)
	ranksSum := make([]uint64, n)
	entries := make([]DAppTier, 0, len(sorted))

	next := 0
	for tier := 0; tier < n && next < len(sorted); tier++ {
		threshold := cfg.TierThresholds[tier]
		for filled[tier] < uint64(cfg.SlotsPerTier[tier]) && next < len(sorted) && sorted[next].Stake.Cmp(threshold) >= 0 {
			var rank uint8
			if rankingEnabled && tier > 0 {
				rank = FindRank(threshold, cfg.TierThresholds[tier-1], sorted[next].Stake)
			}
			entries = append(entries, DAppTier{ID: sorted[next].ID, RankedTier: NewRankedTier(uint8(tier), rank)})
			filled[tier]++
			ranksSum[tier] += uint64(rank)
			next++
		}
	}
	slices.SortFunc(entries, func(a, b DAppTier) int { return cmp.Compare(a.ID, b.ID) })

	perSlot := make([]*big.Int, n)
	for tier := range n {
		perSlot[tier] = astar.Zero()
		if slots := cfg.SlotsPerTier[tier]; slots > 0 {
			perSlot[tier] = new(big.Int).Quo(cfg.RewardPortion[tier].Mul(pool), big.NewInt(int64(slots)))
		}
	}

	rankRewards := make([]*big.Int, n)
	for tier := range n {
		rankRewards[tier] = astar.Zero()
		if !rankingEnabled || tier == 0 || ranksSum[tier] == 0 {
			continue
		}
		unused := astar.SaturatingMul(perSlot[tier], new(big.Int).SetUint64(uint64(cfg.SlotsPerTier[tier])-filled[tier]))
		perRank := new(big.Int).Quo(unused, new(big.Int).SetUint64(ranksSum[tier]))
		maxPerRank := new(big.Int).Quo(astar.SaturatingSub(perSlot[tier-1], perSlot[tier]), big.NewInt(MaxRank))
		rankRewards[tier] = astar.Min(perRank, maxPerRank)
	}

	return &DAppTierRewards{
		DApps:       entries,
		Rewards:     perSlot,
		Period:      period,
		RankRewards: rankRewards,
	}
}
