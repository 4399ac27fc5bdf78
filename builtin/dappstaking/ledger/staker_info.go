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

// StakerInfo is the stake of one account on one contract in one period.
// Staked is the latest amount, valid from Staked.Era on; Previous is the
// amount valid before that.
type StakerInfo struct {
	Previous StakeAmount `json:"previous"`
	Staked   StakeAmount `json:"staked"`
	Loyal    bool        `json:"loyal"`
}

// NewStakerInfo returns an empty entry of period. Entries opened in Voting
// start loyal.
func NewStakerInfo(period uint32, subperiod protocol.Subperiod) *StakerInfo {
	return &StakerInfo{
		Previous: NewStakeAmount(0, period),
		Staked:   NewStakeAmount(0, period),
		Loyal:    subperiod == protocol.Voting,
	}
}

// Period returns the period of the entry.
func (s *StakerInfo) Period() uint32 {
	return s.Staked.Period
}

// Total returns the latest staked amount.
func (s *StakerInfo) Total() *big.Int {
	return s.Staked.Total()
}

// IsEmpty reports whether nothing is staked anymore.
func (s *StakerInfo) IsEmpty() bool {
	return s.Staked.IsEmpty()
}

// VotingStake returns the part staked during Voting.
func (s *StakerInfo) VotingStake() *big.Int {
	return astar.Copy(s.Staked.Voting)
}

// IsBonusEligible reports whether the entry earns the bonus of its period.
func (s *StakerInfo) IsBonusEligible() bool {
	return s.Loyal && !astar.IsZero(s.Staked.Voting)
}

// Current returns the amount valid at era.
func (s *StakerInfo) Current(era uint32) StakeAmount {
	if s.Staked.Era <= era {
		return s.Staked
	}
	return s.Previous
}

// Stake adds amount in subperiod, valid from the next era. Any change during
// Build&Earn forfeits loyalty.
func (s *StakerInfo) Stake(amount *big.Int, era uint32, subperiod protocol.Subperiod) {
	if s.Staked.Era <= era {
		s.Previous = s.Staked.Copy()
	}
	s.Staked.Add(amount, subperiod)
	s.Staked.Era = astar.SaturatingAddU32(era, 1)
	if subperiod == protocol.BuildAndEarn {
		s.Loyal = false
	}
}

// Unstake removes amount. The part added for the next era goes first, the
// rest also reduces the amount valid now. It returns the parts removed from
// the current and from the next era. Any reduction forfeits loyalty.
func (s *StakerInfo) Unstake(amount *big.Int, era uint32) (current, future StakeAmount) {
	pending := astar.SaturatingSub(s.Staked.Total(), s.Current(era).Total())
	currentReduce := astar.SaturatingSub(amount, astar.Min(amount, pending))

	before := s.Staked.Copy()
	s.Staked.Subtract(amount)
	future = before.Diff(s.Staked)

	if s.Staked.Era > era {
		beforeCurrent := s.Previous.Copy()
		s.Previous.Subtract(currentReduce)
		current = beforeCurrent.Diff(s.Previous)
	} else {
		current = future.Copy()
	}

	s.Loyal = false
	return current, future
}
