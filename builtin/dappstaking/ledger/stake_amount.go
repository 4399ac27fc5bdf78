// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/dappstaking/protocol"
)

// StakeAmount is an amount staked in a period, split by the subperiod in
// which it was staked, valid from Era on.
type StakeAmount struct {
	Voting       *big.Int `json:"voting"`
	BuildAndEarn *big.Int `json:"buildAndEarn"`
	Era          uint32   `json:"era"`
	Period       uint32   `json:"period"`
}

// NewStakeAmount returns an empty amount for era and period.
func NewStakeAmount(era, period uint32) StakeAmount {
	return StakeAmount{
		Voting:       astar.Zero(),
		BuildAndEarn: astar.Zero(),
		Era:          era,
		Period:       period,
	}
}

// Copy returns a deep copy.
func (s StakeAmount) Copy() StakeAmount {
	return StakeAmount{
		Voting:       astar.Copy(s.Voting),
		BuildAndEarn: astar.Copy(s.BuildAndEarn),
		Era:          s.Era,
		Period:       s.Period,
	}
}

// IsEmpty reports whether nothing is staked.
func (s StakeAmount) IsEmpty() bool {
	return astar.IsZero(s.Voting) && astar.IsZero(s.BuildAndEarn)
}

// Total returns the sum of both subperiod amounts.
func (s StakeAmount) Total() *big.Int {
	return astar.SaturatingAdd(s.Voting, s.BuildAndEarn)
}

// For returns the amount staked in subperiod.
func (s StakeAmount) For(subperiod protocol.Subperiod) *big.Int {
	if subperiod == protocol.Voting {
		return astar.Copy(s.Voting)
	}
	return astar.Copy(s.BuildAndEarn)
}

// Add adds amount to the part of subperiod.
func (s *StakeAmount) Add(amount *big.Int, subperiod protocol.Subperiod) {
	if subperiod == protocol.Voting {
		s.Voting = astar.SaturatingAdd(s.Voting, amount)
	} else {
		s.BuildAndEarn = astar.SaturatingAdd(s.BuildAndEarn, amount)
	}
}

// Subtract removes amount, taking from the build&earn part first.
func (s *StakeAmount) Subtract(amount *big.Int) {
	fromBuildAndEarn := astar.Min(amount, s.BuildAndEarn)
	s.BuildAndEarn = astar.SaturatingSub(s.BuildAndEarn, fromBuildAndEarn)
	s.Voting = astar.SaturatingSub(s.Voting, astar.SaturatingSub(amount, fromBuildAndEarn))
}

// SubtractParts removes exactly the voting and build&earn parts of delta.
func (s *StakeAmount) SubtractParts(delta StakeAmount) {
	s.Voting = astar.SaturatingSub(s.Voting, delta.Voting)
	s.BuildAndEarn = astar.SaturatingSub(s.BuildAndEarn, delta.BuildAndEarn)
}

// AddParts adds the voting and build&earn parts of delta.
func (s *StakeAmount) AddParts(delta StakeAmount) {
	s.Voting = astar.SaturatingAdd(s.Voting, delta.Voting)
	s.BuildAndEarn = astar.SaturatingAdd(s.BuildAndEarn, delta.BuildAndEarn)
}

// Diff returns the per part amounts by which s exceeds after.
func (s StakeAmount) Diff(after StakeAmount) StakeAmount {
	return StakeAmount{
		Voting:       astar.SaturatingSub(s.Voting, after.Voting),
		BuildAndEarn: astar.SaturatingSub(s.BuildAndEarn, after.BuildAndEarn),
		Era:          s.Era,
		Period:       s.Period,
	}
}
