// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/astar-network/astar/astar"
)

// EraReward holds the reward pools of one finished era and the stake they
// are shared by.
type EraReward struct {
	StakerRewardPool *big.Int `json:"stakerRewardPool"`
	Staked           *big.Int `json:"staked"`
	DAppRewardPool   *big.Int `json:"dappRewardPool"`
}

// EraRewardSpan stores the rewards of consecutive eras [FirstEra, LastEra].
type EraRewardSpan struct {
	Span     []EraReward `json:"span"`
	FirstEra uint32      `json:"firstEra"`
	LastEra  uint32      `json:"lastEra"`
}

// Len returns the number of eras in the span.
func (s *EraRewardSpan) Len() int {
	return len(s.Span)
}

// Push appends the reward of era, which must directly follow the last one.
func (s *EraRewardSpan) Push(era uint32, reward EraReward, capacity uint32) error {
	if len(s.Span) == 0 {
		s.Span = []EraReward{reward}
		s.FirstEra, s.LastEra = era, era
		return nil
	}
	if era != s.LastEra+1 {
		return errors.Errorf("non contiguous era reward: last %d, pushed %d", s.LastEra, era)
	}
	if uint32(len(s.Span)) >= capacity {
		return errors.Errorf("era reward span full at era %d", era)
	}
	s.Span = append(s.Span, reward)
	s.LastEra = era
	return nil
}

// Get returns the reward of era.
func (s *EraRewardSpan) Get(era uint32) (EraReward, bool) {
	if len(s.Span) == 0 || era < s.FirstEra || era > s.LastEra {
		return EraReward{}, false
	}
	return s.Span[era-s.FirstEra], true
}

// SpanIndex returns the key of the span storing era.
func SpanIndex(era, spanLength uint32) uint32 {
	return era - era%spanLength
}

// PeriodEndInfo is recorded when a period ends.
type PeriodEndInfo struct {
	BonusRewardPool *big.Int `json:"bonusRewardPool"`
	TotalVpStake    *big.Int `json:"totalVpStake"`
	FinalEra        uint32   `json:"finalEra"`
}

// CleanupMarker tracks the removal of expired reward data, one item per block.
type CleanupMarker struct {
	EraRewardIndex    uint32 `json:"eraRewardIndex"`
	DAppTiersIndex    uint32 `json:"dappTiersIndex"`
	OldestValidEra    uint32 `json:"oldestValidEra"`
	OldestValidPeriod uint32 `json:"oldestValidPeriod"`
}

// HasPendingCleanups reports whether expired items are left.
func (m *CleanupMarker) HasPendingCleanups(spanLength uint32) bool {
	return m.EraRewardIndex+spanLength <= m.OldestValidEra || m.DAppTiersIndex < m.OldestValidPeriod
}

// StakerReward returns the share of the era staker pool earned by stake.
func StakerReward(reward EraReward, stake *big.Int) *big.Int {
	return astar.MulDiv(reward.StakerRewardPool, stake, reward.Staked)
}

// BonusReward returns the share of the bonus pool earned by votingStake.
func BonusReward(info *PeriodEndInfo, votingStake *big.Int) *big.Int {
	return astar.MulDiv(info.BonusRewardPool, votingStake, info.TotalVpStake)
}
