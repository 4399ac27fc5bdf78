// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package inflation

import (
	"math/big"

	"github.com/astar-network/astar/astar"
)

// Params split the maximum yearly emission between its beneficiaries.
// All parts but IdealStakingRate must sum up to exactly one.
type Params struct {
	MaxInflationRate      astar.Perbill `yaml:"max-inflation-rate" json:"maxInflationRate"`
	TreasuryPart          astar.Perbill `yaml:"treasury-part" json:"treasuryPart"`
	CollatorsPart         astar.Perbill `yaml:"collators-part" json:"collatorsPart"`
	DAppsPart             astar.Perbill `yaml:"dapps-part" json:"dappsPart"`
	BaseStakersPart       astar.Perbill `yaml:"base-stakers-part" json:"baseStakersPart"`
	AdjustableStakersPart astar.Perbill `yaml:"adjustable-stakers-part" json:"adjustableStakersPart"`
	BonusPart             astar.Perbill `yaml:"bonus-part" json:"bonusPart"`
	IdealStakingRate      astar.Perbill `yaml:"ideal-staking-rate" json:"idealStakingRate"`
}

// DefaultParams returns the parameters of dev chains.
func DefaultParams() Params {
	return Params{
		MaxInflationRate:      astar.PerbillFromPercent(7),
		TreasuryPart:          astar.PerbillFromPercent(5),
		CollatorsPart:         astar.PerbillFromParts(32_000_000),
		DAppsPart:             astar.PerbillFromPercent(13),
		BaseStakersPart:       astar.PerbillFromPercent(10),
		AdjustableStakersPart: astar.PerbillFromParts(588_000_000),
		BonusPart:             astar.PerbillFromPercent(10),
		IdealStakingRate:      astar.PerbillFromPercent(50),
	}
}

// IsValid reports whether the distribution parts sum up to one.
func (p Params) IsValid() bool {
	sum := uint64(p.TreasuryPart) + uint64(p.CollatorsPart) + uint64(p.DAppsPart) +
		uint64(p.BaseStakersPart) + uint64(p.AdjustableStakersPart) + uint64(p.BonusPart)
	return sum == astar.PerbillAccuracy
}

// Configuration is the emission schedule derived from Params at the start of
// every cycle. It holds until RecalculationEra.
type Configuration struct {
	RecalculationEra                 uint32        `json:"recalculationEra"`
	IssuanceSafetyCap                *big.Int      `json:"issuanceSafetyCap"`
	CollatorRewardPerBlock           *big.Int      `json:"collatorRewardPerBlock"`
	TreasuryRewardPerBlock           *big.Int      `json:"treasuryRewardPerBlock"`
	DAppRewardPoolPerEra             *big.Int      `json:"dappRewardPoolPerEra"`
	BaseStakerRewardPoolPerEra       *big.Int      `json:"baseStakerRewardPoolPerEra"`
	AdjustableStakerRewardPoolPerEra *big.Int      `json:"adjustableStakerRewardPoolPerEra"`
	BonusRewardPoolPerPeriod         *big.Int      `json:"bonusRewardPoolPerPeriod"`
	IdealStakingRate                 astar.Perbill `json:"idealStakingRate"`
}
