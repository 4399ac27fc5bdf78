// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package migration converts dApp staking records of older storage layouts.
//
// Layout 6 stores thresholds as plain amounts and tier assignments without
// ranks. Layout 7 introduces ranked assignments with a rank reward per tier.
// Layout 8 expresses thresholds as shares of the total issuance.
package migration

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/dappstaking/tiers"
)

// ThresholdV6 is a layout 6 tier threshold.
type ThresholdV6 struct {
	Dynamic       bool
	Amount        *big.Int
	MinimumAmount *big.Int
}

// TierParametersV6 are the layout 6 static tier parameters.
type TierParametersV6 struct {
	RewardPortion    []astar.Permill
	SlotDistribution []astar.Permill
	TierThresholds   []ThresholdV6
	SlotsPerPrice    uint64
	BaseSlots        uint64
}

// DAppTierV6 is a layout 6 assignment, the tier without rank.
type DAppTierV6 struct {
	ID   uint16
	Tier uint8
}

// DAppTierRewardsV6 are the layout 6 tier rewards of one period.
type DAppTierRewardsV6 struct {
	DApps   []DAppTierV6
	Rewards []*big.Int
	Period  uint32
}

// ParamsV6ToV7 keeps the amounts and moves them to the typed thresholds.
func ParamsV6ToV7(p *TierParametersV6) *tiers.TierParameters {
	thresholds := make([]tiers.TierThreshold, len(p.TierThresholds))
	for i, t := range p.TierThresholds {
		if t.Dynamic {
			thresholds[i] = tiers.DynamicTvl(astar.Copy(t.Amount), astar.Copy(t.MinimumAmount))
		} else {
			thresholds[i] = tiers.FixedTvl(astar.Copy(t.Amount))
		}
	}
	return &tiers.TierParameters{
		RewardPortion:    append([]astar.Permill(nil), p.RewardPortion...),
		SlotDistribution: append([]astar.Permill(nil), p.SlotDistribution...),
		TierThresholds:   thresholds,
		SlotsPerPrice:    p.SlotsPerPrice,
		BaseSlots:        p.BaseSlots,
	}
}

// TierRewardsV6ToV7 ranks every assignment at zero and adds an empty rank
// reward per tier, so claims pay exactly the tier reward as before.
func TierRewardsV6ToV7(r *DAppTierRewardsV6) *tiers.DAppTierRewards {
	out := &tiers.DAppTierRewards{
		DApps:       make([]tiers.DAppTier, len(r.DApps)),
		Rewards:     make([]*big.Int, len(r.Rewards)),
		Period:      r.Period,
		RankRewards: make([]*big.Int, len(r.Rewards)),
	}
	for i, d := range r.DApps {
		out.DApps[i] = tiers.DAppTier{ID: d.ID, RankedTier: tiers.NewRankedTier(d.Tier, 0)}
	}
	for i, reward := range r.Rewards {
		out.Rewards[i] = astar.Copy(reward)
		out.RankRewards[i] = astar.Zero()
	}
	return out
}

// ParamsV7ToV8 converts amount thresholds into shares of issuance.
// Thresholds already expressed as shares are kept.
func ParamsV7ToV8(p *tiers.TierParameters, issuance *big.Int) (*tiers.TierParameters, error) {
	if astar.IsZero(issuance) {
		return nil, errors.New("zero total issuance")
	}
	out := p.Copy()
	for i, t := range p.TierThresholds {
		switch t.Kind {
		case tiers.FixedTvlAmount:
			out.TierThresholds[i] = tiers.FixedShare(astar.PerbillFromRational(t.Amount, issuance))
		case tiers.DynamicTvlAmount:
			out.TierThresholds[i] = tiers.DynamicShare(
				astar.PerbillFromRational(t.Amount, issuance),
				astar.PerbillFromRational(t.MinimumAmount, issuance),
			)
		}
	}
	return out, nil
}

// CheckTierConfig verifies the slots of cfg add up to its number of slots and
// its thresholds strictly decrease.
func CheckTierConfig(cfg *tiers.TiersConfiguration) error {
	if cfg == nil {
		return errors.New("missing tier configuration")
	}
	var slots uint64
	for _, s := range cfg.SlotsPerTier {
		slots += uint64(s)
	}
	if slots != uint64(cfg.NumberOfSlots) {
		return errors.Errorf("tier slots add up to %d, want %d", slots, cfg.NumberOfSlots)
	}
	for i := 1; i < len(cfg.TierThresholds); i++ {
		if astar.Cmp(cfg.TierThresholds[i], cfg.TierThresholds[i-1]) >= 0 {
			return errors.Errorf("threshold of tier %d does not decrease", i)
		}
	}
	if !cfg.IsValid() {
		return errors.New("invalid tier configuration")
	}
	return nil
}

// CheckConvertedThresholds verifies every converted threshold resolves to
// the old amount within one part per billion of issuance.
func CheckConvertedThresholds(old, converted *tiers.TierParameters, issuance *big.Int) error {
	if len(old.TierThresholds) != len(converted.TierThresholds) {
		return errors.Errorf("converted %d thresholds, want %d", len(converted.TierThresholds), len(old.TierThresholds))
	}
	// one part per billion, plus one for the rounding of the share itself
	tolerance := new(big.Int).Quo(issuance, big.NewInt(astar.PerbillAccuracy))
	tolerance.Add(tolerance, big.NewInt(1))

	within := func(tier int, want, got *big.Int) error {
		diff := new(big.Int).Sub(want, got)
		if diff.Abs(diff).Cmp(tolerance) > 0 {
			return errors.Errorf("threshold of tier %d converted to %v, want %v", tier, got, want)
		}
		return nil
	}
	for i, t := range old.TierThresholds {
		c := converted.TierThresholds[i]
		if err := within(i, t.Resolve(issuance), c.Resolve(issuance)); err != nil {
			return err
		}
		if t.Kind.IsDynamic() {
			if err := within(i, t.Minimum(issuance), c.Minimum(issuance)); err != nil {
				return err
			}
		}
	}
	return nil
}
