// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dappstaking

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/cycle"
)

// Config holds the constants of the engine, fixed for the chain lifetime.
type Config struct {
	Cycle cycle.Configuration `yaml:"cycle"`

	MaxNumberOfContracts       uint32   `yaml:"max-number-of-contracts"`
	MaxUnlockingChunks         uint32   `yaml:"max-unlocking-chunks"`
	MinimumLockedAmount        *big.Int `yaml:"minimum-locked-amount"`
	UnlockingPeriod            uint32   `yaml:"unlocking-period"` // in eras
	MaxNumberOfStakedContracts uint32   `yaml:"max-number-of-staked-contracts"`
	MinimumStakeAmount         *big.Int `yaml:"minimum-stake-amount"`
	NumberOfTiers              uint32   `yaml:"number-of-tiers"`
	RankingEnabled             bool     `yaml:"ranking-enabled"`
	RewardRetentionInPeriods   uint32   `yaml:"reward-retention-in-periods"`
	EraRewardSpanLength        uint32   `yaml:"era-reward-span-length"`
	RegistrationDeposit        *big.Int `yaml:"registration-deposit"`
}

// DefaultConfig returns the mainnet constants.
func DefaultConfig() Config {
	return Config{
		Cycle:                      cycle.Default(),
		MaxNumberOfContracts:       500,
		MaxUnlockingChunks:         8,
		MinimumLockedAmount:        astar.MustParseBalance("500000000000000000000"),
		UnlockingPeriod:            9,
		MaxNumberOfStakedContracts: 16,
		MinimumStakeAmount:         astar.MustParseBalance("500000000000000000000"),
		NumberOfTiers:              4,
		RankingEnabled:             true,
		RewardRetentionInPeriods:   4,
		EraRewardSpanLength:        16,
		RegistrationDeposit:        astar.MustParseBalance("1000000000000000000000"),
	}
}

// Validate checks the constants are usable.
func (c *Config) Validate() error {
	if err := c.Cycle.Validate(); err != nil {
		return err
	}
	switch {
	case c.MaxNumberOfContracts == 0 || c.MaxNumberOfContracts > 1<<16-1:
		return errors.Errorf("max number of contracts must be in [1, %d]", 1<<16-1)
	case c.MaxUnlockingChunks == 0:
		return errors.New("max unlocking chunks must be positive")
	case c.MaxNumberOfStakedContracts == 0:
		return errors.New("max number of staked contracts must be positive")
	case c.NumberOfTiers == 0 || c.NumberOfTiers > 16:
		return errors.New("number of tiers must be in [1, 16]")
	case c.RewardRetentionInPeriods == 0:
		return errors.New("reward retention must be at least one period")
	case c.EraRewardSpanLength == 0:
		return errors.New("era reward span length must be positive")
	case c.MinimumLockedAmount == nil || c.MinimumStakeAmount == nil || c.RegistrationDeposit == nil:
		return errors.New("amounts must be set")
	case c.MinimumStakeAmount.Cmp(c.MinimumLockedAmount) > 0:
		return errors.New("minimum stake amount exceeds minimum locked amount")
	}
	return nil
}

// unlockingBlocks is the number of blocks an unlocking chunk waits.
func (c *Config) unlockingBlocks() uint32 {
	return astar.SaturatingMulU32(c.UnlockingPeriod, c.Cycle.BlocksPerEra)
}
