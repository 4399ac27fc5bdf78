// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package cycle describes how blocks group into eras, eras into periods and
// periods into inflation cycles.
package cycle

import (
	"github.com/pkg/errors"
)

// Configuration is fixed for the lifetime of a chain.
type Configuration struct {
	PeriodsPerCycle              uint32 `yaml:"periods-per-cycle" json:"periodsPerCycle"`
	ErasPerVotingSubperiod       uint32 `yaml:"eras-per-voting-subperiod" json:"erasPerVotingSubperiod"`
	ErasPerBuildAndEarnSubperiod uint32 `yaml:"eras-per-build-and-earn-subperiod" json:"erasPerBuildAndEarnSubperiod"`
	BlocksPerEra                 uint32 `yaml:"blocks-per-era" json:"blocksPerEra"`
}

// Default returns the configuration used by dev chains.
func Default() Configuration {
	return Configuration{
		PeriodsPerCycle:              4,
		ErasPerVotingSubperiod:       2,
		ErasPerBuildAndEarnSubperiod: 10,
		BlocksPerEra:                 20,
	}
}

// Validate checks every value is non-zero.
func (c Configuration) Validate() error {
	switch {
	case c.PeriodsPerCycle == 0:
		return errors.New("periods per cycle must be positive")
	case c.ErasPerVotingSubperiod == 0:
		return errors.New("eras per voting subperiod must be positive")
	case c.ErasPerBuildAndEarnSubperiod == 0:
		return errors.New("eras per build&earn subperiod must be positive")
	case c.BlocksPerEra == 0:
		return errors.New("blocks per era must be positive")
	}
	return nil
}

// ErasPerPeriod is the number of eras one period spans when counting eras.
// The voting subperiod counts as a single, longer era.
func (c Configuration) ErasPerPeriod() uint32 {
	return c.ErasPerBuildAndEarnSubperiod + 1
}

// ErasPerCycle is the number of eras one cycle spans.
func (c Configuration) ErasPerCycle() uint32 {
	return c.PeriodsPerCycle * c.ErasPerPeriod()
}

// BuildAndEarnErasPerCycle is the number of reward paying eras in one cycle.
func (c Configuration) BuildAndEarnErasPerCycle() uint32 {
	return c.PeriodsPerCycle * c.ErasPerBuildAndEarnSubperiod
}

// BlocksPerCycle is the number of blocks one cycle spans.
func (c Configuration) BlocksPerCycle() uint64 {
	return uint64(c.BlocksPerEra) * uint64(c.PeriodsPerCycle) *
		uint64(c.ErasPerVotingSubperiod+c.ErasPerBuildAndEarnSubperiod)
}

// VotingSubperiodLength is the length of the voting subperiod in blocks.
func (c Configuration) VotingSubperiodLength() uint32 {
	return c.ErasPerVotingSubperiod * c.BlocksPerEra
}
