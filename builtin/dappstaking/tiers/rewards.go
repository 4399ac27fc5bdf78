// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tiers

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/reverts"
)

// MaxRank is the highest rank inside a tier.
const MaxRank = 10

// RankedTier packs a tier in the high nibble and a rank in the low nibble.
type RankedTier uint8

// NewRankedTier packs tier and rank. The rank saturates at MaxRank.
func NewRankedTier(tier, rank uint8) RankedTier {
	return RankedTier(tier<<4 | min(rank, MaxRank))
}

// Tier returns the tier index, 0 being the highest.
func (r RankedTier) Tier() uint8 {
	return uint8(r) >> 4
}

// Rank returns the rank inside the tier.
func (r RankedTier) Rank() uint8 {
	return uint8(r) & 0x0f
}

func (r RankedTier) String() string {
	return fmt.Sprintf("%d/%d", r.Tier(), r.Rank())
}

// FindRank returns the rank of stake between the lower threshold of its tier
// and the threshold of the tier above, in steps of a tenth of the gap.
func FindRank(lower, upper, stake *big.Int) uint8 {
	if astar.Cmp(upper, lower) <= 0 {
		return 0
	}
	step := new(big.Int).Quo(astar.SaturatingSub(upper, lower), big.NewInt(MaxRank))
	if step.Sign() == 0 {
		return 0
	}
	rank := new(big.Int).Quo(astar.SaturatingSub(stake, lower), step)
	if rank.Cmp(big.NewInt(MaxRank)) > 0 {
		return MaxRank
	}
	return uint8(rank.Uint64())
}

// DAppTier is the assignment of one dApp.
type DAppTier struct {
	ID         uint16     `json:"id"`
	RankedTier RankedTier `json:"rankedTier"`
}

// DAppTierRewards is the immutable outcome of the tier assignment of a
// period. DApps is sorted by ID; entries are removed once claimed.
type DAppTierRewards struct {
	DApps       []DAppTier `json:"dapps"`
	Rewards     []*big.Int `json:"rewards"`
	Period      uint32     `json:"period"`
	RankRewards []*big.Int `json:"rankRewards"`
}

func (d *DAppTierRewards) find(id uint16) (int, bool) {
	i := sort.Search(len(d.DApps), func(i int) bool { return d.DApps[i].ID >= id })
	return i, i < len(d.DApps) && d.DApps[i].ID == id
}

// Get returns the assignment of dApp id.
func (d *DAppTierRewards) Get(id uint16) (RankedTier, bool) {
	i, ok := d.find(id)
	if !ok {
		return 0, false
	}
	return d.DApps[i].RankedTier, true
}

// RewardOf returns the reward earned by ranked.
func (d *DAppTierRewards) RewardOf(ranked RankedTier) *big.Int {
	tier := int(ranked.Tier())
	if tier >= len(d.Rewards) {
		return astar.Zero()
	}
	reward := astar.Copy(d.Rewards[tier])
	if tier < len(d.RankRewards) {
		bonus := astar.SaturatingMul(d.RankRewards[tier], big.NewInt(int64(ranked.Rank())))
		reward = astar.SaturatingAdd(reward, bonus)
	}
	return reward
}

// TryClaim removes the entry of dApp id and returns its tier and reward.
func (d *DAppTierRewards) TryClaim(id uint16) (RankedTier, *big.Int, error) {
	i, ok := d.find(id)
	if !ok {
		return 0, nil, reverts.ErrNoClaimableRewards
	}
	ranked := d.DApps[i].RankedTier
	d.DApps = append(d.DApps[:i], d.DApps[i+1:]...)
	return ranked, d.RewardOf(ranked), nil
}
