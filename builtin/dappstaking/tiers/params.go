// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tiers

import (
	"math"
	"math/big"
	"slices"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/log"
)

var logger = log.WithContext("pkg", "tiers")

// TierParameters are the governance set inputs of the tier configuration.
// Tier 0 is the highest tier.
type TierParameters struct {
	RewardPortion    []astar.Permill `json:"rewardPortion" yaml:"reward-portion"`
	SlotDistribution []astar.Permill `json:"slotDistribution" yaml:"slot-distribution"`
	TierThresholds   []TierThreshold `json:"tierThresholds" yaml:"tier-thresholds"`

	// number of slots = price * SlotsPerPrice + BaseSlots
	SlotsPerPrice uint64 `json:"slotsPerPrice" yaml:"slots-per-price"`
	BaseSlots     uint64 `json:"baseSlots" yaml:"base-slots"`
}

// IsValid reports whether the parameters describe between one and maxTiers
// tiers with portions and distribution summing to one, and strictly
// decreasing thresholds of a single family.
func (p *TierParameters) IsValid(maxTiers uint32) bool {
	n := len(p.RewardPortion)
	if n == 0 || uint32(n) > maxTiers || len(p.SlotDistribution) != n || len(p.TierThresholds) != n {
		return false
	}
	if sumPermill(p.RewardPortion) != astar.PermillAccuracy || sumPermill(p.SlotDistribution) != astar.PermillAccuracy {
		return false
	}
	for i, t := range p.TierThresholds {
		if !t.isValid() || t.Kind.IsPercentage() != p.TierThresholds[0].Kind.IsPercentage() {
			return false
		}
		if i > 0 && !t.less(p.TierThresholds[i-1]) {
			return false
		}
	}
	return true
}

// Copy returns a deep copy.
func (p *TierParameters) Copy() *TierParameters {
	c := *p
	c.RewardPortion = slices.Clone(p.RewardPortion)
	c.SlotDistribution = slices.Clone(p.SlotDistribution)
	c.TierThresholds = slices.Clone(p.TierThresholds)
	return &c
}

func sumPermill(v []astar.Permill) uint64 {
	var sum uint64
	for _, p := range v {
		sum += uint64(p)
	}
	return sum
}

// TiersConfiguration is the configuration derived once per era and used by
// the tier assignment.
type TiersConfiguration struct {
	NumberOfSlots  uint16          `json:"numberOfSlots"`
	SlotsPerTier   []uint16        `json:"slotsPerTier"`
	RewardPortion  []astar.Permill `json:"rewardPortion"`
	TierThresholds []*big.Int      `json:"tierThresholds"`
}

// IsValid reports whether the configuration is consistent: one entry per
// tier in every list, slots adding up exactly, and strictly decreasing thresholds.
func (c *TiersConfiguration) IsValid() bool {
	n := len(c.SlotsPerTier)
	if n == 0 || len(c.RewardPortion) != n || len(c.TierThresholds) != n {
		return false
	}
	var slots uint64
	for _, s := range c.SlotsPerTier {
		slots += uint64(s)
	}
	if slots != uint64(c.NumberOfSlots) {
		return false
	}
	for i := 1; i < n; i++ {
		if astar.Cmp(c.TierThresholds[i], c.TierThresholds[i-1]) >= 0 {
			return false
		}
	}
	return true
}

// NumberOfSlots returns the total number of slots for price, between one and maxSlots.
func NumberOfSlots(params *TierParameters, price astar.FixedU128, maxSlots uint32) uint16 {
	n := price.SaturatingMulInt(params.SlotsPerPrice)
	if n > math.MaxUint64-params.BaseSlots {
		n = math.MaxUint64
	} else {
		n += params.BaseSlots
	}
	n = min(max(n, 1), uint64(maxSlots), math.MaxUint16)
	return uint16(max(n, 1))
}

// DistributeSlots splits total slots by distribution with the largest
// remainder method. Slots left after flooring go to the tiers with the
// largest remainders, lower tier index first on ties, so the result sums up
// to total whenever the distribution sums to one.
func DistributeSlots(total uint16, distribution []astar.Permill) []uint16 {
	type remainder struct {
		tier  int
		value uint64
	}
	slots := make([]uint16, len(distribution))
	rems := make([]remainder, len(distribution))
	var assigned uint64
	for i, d := range distribution {
		exact := uint64(total) * uint64(d)
		slots[i] = uint16(exact / astar.PermillAccuracy)
		rems[i] = remainder{tier: i, value: exact % astar.PermillAccuracy}
		assigned += uint64(slots[i])
	}
	slices.SortStableFunc(rems, func(a, b remainder) int {
		switch {
		case a.value > b.value:
			return -1
		case a.value < b.value:
			return 1
		}
		return a.tier - b.tier
	})
	for _, r := range rems {
		if assigned >= uint64(total) || r.value == 0 {
			break
		}
		slots[r.tier]++
		assigned++
	}
	return slots
}

// Calculate derives the configuration of the next era. Dynamic thresholds
// move from their previous value: down when slots were added, up when slots
// were removed, by the changed share of the new number of slots.
func Calculate(prev *TiersConfiguration, params *TierParameters, price astar.FixedU128, issuance *big.Int, maxSlots uint32) *TiersConfiguration {
	slots := NumberOfSlots(params, price, maxSlots)

	usePrev := prev != nil && prev.NumberOfSlots > 0 && len(prev.TierThresholds) == len(params.TierThresholds)
	thresholds := make([]*big.Int, len(params.TierThresholds))
	for i, t := range params.TierThresholds {
		if !t.Kind.IsDynamic() || !usePrev {
			thresholds[i] = t.Resolve(issuance)
			continue
		}
		thresholds[i] = astar.Max(
			adjust(prev.TierThresholds[i], prev.NumberOfSlots, slots),
			t.Minimum(issuance),
		)
	}

	return &TiersConfiguration{
		NumberOfSlots:  slots,
		SlotsPerTier:   DistributeSlots(slots, params.SlotDistribution),
		RewardPortion:  slices.Clone(params.RewardPortion),
		TierThresholds: thresholds,
	}
}

func adjust(amount *big.Int, oldSlots, newSlots uint16) *big.Int {
	switch {
	case newSlots > oldSlots:
		delta := astar.PerbillFromRational(big.NewInt(int64(newSlots-oldSlots)), big.NewInt(int64(newSlots)))
		return astar.SaturatingSub(amount, delta.Mul(amount))
	case newSlots < oldSlots:
		delta := astar.PerbillFromRational(big.NewInt(int64(oldSlots-newSlots)), big.NewInt(int64(newSlots)))
		return astar.SaturatingAdd(amount, delta.Mul(amount))
	}
	return astar.Copy(amount)
}

// Recalculate derives the next configuration, keeping prev when the result
// is invalid.
func Recalculate(prev *TiersConfiguration, params *TierParameters, price astar.FixedU128, issuance *big.Int, maxSlots uint32) *TiersConfiguration {
	next := Calculate(prev, params, price, issuance, maxSlots)
	if next.IsValid() {
		return next
	}
	logger.Warn("derived tier configuration is invalid, keeping the previous one",
		"slots", next.NumberOfSlots,
		"thresholds", next.TierThresholds,
	)
	if prev == nil {
		return next
	}
	return prev
}
