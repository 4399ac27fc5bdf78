// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tiers

import (
	"fmt"
	"math/big"

	"github.com/astar-network/astar/astar"
)

// ThresholdKind tells how a tier threshold resolves to an amount.
type ThresholdKind uint8

const (
	// FixedTvlAmount is a constant amount.
	FixedTvlAmount ThresholdKind = iota
	// DynamicTvlAmount follows the number of slots, never below a minimum amount.
	DynamicTvlAmount
	// FixedPercentage is a constant share of the total issuance.
	FixedPercentage
	// DynamicPercentage follows the number of slots, never below a minimum share of the total issuance.
	DynamicPercentage
)

func (k ThresholdKind) String() string {
	switch k {
	case FixedTvlAmount:
		return "FixedTvlAmount"
	case DynamicTvlAmount:
		return "DynamicTvlAmount"
	case FixedPercentage:
		return "FixedPercentage"
	case DynamicPercentage:
		return "DynamicPercentage"
	}
	return "Unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (k ThresholdKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ThresholdKind) UnmarshalText(text []byte) error {
	for _, kind := range []ThresholdKind{FixedTvlAmount, DynamicTvlAmount, FixedPercentage, DynamicPercentage} {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown threshold kind %q", text)
}

// IsPercentage reports whether the threshold is expressed as a share of the issuance.
func (k ThresholdKind) IsPercentage() bool {
	return k == FixedPercentage || k == DynamicPercentage
}

// IsDynamic reports whether the threshold adapts to the number of slots.
func (k ThresholdKind) IsDynamic() bool {
	return k == DynamicTvlAmount || k == DynamicPercentage
}

// TierThreshold is the minimum stake required to enter a tier.
type TierThreshold struct {
	Kind              ThresholdKind `json:"kind" yaml:"kind"`
	Amount            *big.Int      `json:"amount,omitempty" yaml:"amount,omitempty"`
	MinimumAmount     *big.Int      `json:"minimumAmount,omitempty" yaml:"minimum-amount,omitempty"`
	Percentage        astar.Perbill `json:"percentage,omitempty" yaml:"percentage,omitempty"`
	MinimumPercentage astar.Perbill `json:"minimumPercentage,omitempty" yaml:"minimum-percentage,omitempty"`
}

// FixedTvl returns a threshold of a static staked amount.
func FixedTvl(amount *big.Int) TierThreshold {
	return TierThreshold{Kind: FixedTvlAmount, Amount: amount, MinimumAmount: astar.Zero()}
}

// DynamicTvl returns a staked amount threshold that follows the number of
// slots, never below minimum.
func DynamicTvl(amount, minimum *big.Int) TierThreshold {
	return TierThreshold{Kind: DynamicTvlAmount, Amount: amount, MinimumAmount: minimum}
}

// FixedShare returns a threshold of a static share of the total issuance.
func FixedShare(percentage astar.Perbill) TierThreshold {
	return TierThreshold{Kind: FixedPercentage, Amount: astar.Zero(), MinimumAmount: astar.Zero(), Percentage: percentage}
}

// DynamicShare returns a share of issuance threshold that follows the number
// of slots, never below minimum.
func DynamicShare(percentage, minimum astar.Perbill) TierThreshold {
	return TierThreshold{
		Kind:              DynamicPercentage,
		Amount:            astar.Zero(),
		MinimumAmount:     astar.Zero(),
		Percentage:        percentage,
		MinimumPercentage: minimum,
	}
}

// Resolve returns the static amount of the threshold.
func (t TierThreshold) Resolve(issuance *big.Int) *big.Int {
	if t.Kind.IsPercentage() {
		return t.Percentage.Mul(issuance)
	}
	return astar.Copy(t.Amount)
}

// Minimum returns the lowest amount a dynamic threshold may reach.
func (t TierThreshold) Minimum(issuance *big.Int) *big.Int {
	switch t.Kind {
	case DynamicTvlAmount:
		return astar.Copy(t.MinimumAmount)
	case DynamicPercentage:
		return t.MinimumPercentage.Mul(issuance)
	}
	return t.Resolve(issuance)
}

// less compares the static values of two thresholds of the same family.
func (t TierThreshold) less(o TierThreshold) bool {
	if t.Kind.IsPercentage() {
		return t.Percentage < o.Percentage
	}
	return astar.Cmp(t.Amount, o.Amount) < 0
}

func (t TierThreshold) isValid() bool {
	switch t.Kind {
	case FixedTvlAmount:
		return true
	case DynamicTvlAmount:
		return astar.Cmp(t.MinimumAmount, t.Amount) <= 0
	case FixedPercentage:
		return t.Percentage <= astar.PerbillAccuracy
	case DynamicPercentage:
		return t.Percentage <= astar.PerbillAccuracy && t.MinimumPercentage <= t.Percentage
	}
	return false
}
