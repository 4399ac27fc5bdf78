// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"math/big"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/storage"
)

var (
	slotEraRewards     = storage.Slot("era-rewards")
	slotPeriodEnd      = storage.Slot("period-end")
	slotCleanupMarker  = storage.Slot("history-cleanup-marker")
	slotBuildEarnStart = storage.Slot("build-and-earn-start-era")
)

// Service stores era reward spans and period end records.
type Service struct {
	spanLength uint32

	spans         *storage.Mapping[storage.U32Key, *EraRewardSpan]
	periodEnds    *storage.Mapping[storage.U32Key, *PeriodEndInfo]
	cleanupMarker *storage.Value[*CleanupMarker]
	bneStartEra   *storage.Value[uint32]
}

func New(sctx *storage.Context, spanLength uint32) *Service {
	return &Service{
		spanLength:    max(spanLength, 1),
		spans:         storage.NewMapping[storage.U32Key, *EraRewardSpan](sctx, slotEraRewards),
		periodEnds:    storage.NewMapping[storage.U32Key, *PeriodEndInfo](sctx, slotPeriodEnd),
		cleanupMarker: storage.NewValue[*CleanupMarker](sctx, slotCleanupMarker),
		bneStartEra:   storage.NewValue[uint32](sctx, slotBuildEarnStart),
	}
}

// SpanLength returns the number of eras per span.
func (s *Service) SpanLength() uint32 {
	return s.spanLength
}

// Push records the reward of era.
func (s *Service) Push(era uint32, reward EraReward) error {
	idx := storage.U32Key(SpanIndex(era, s.spanLength))
	span, _, err := s.spans.Get(idx)
	if err != nil {
		return err
	}
	if err := span.Push(era, reward, s.spanLength); err != nil {
		return err
	}
	return s.spans.Set(idx, span)
}

// Span returns the span stored at index.
func (s *Service) Span(index uint32) (*EraRewardSpan, bool, error) {
	return s.spans.Get(storage.U32Key(index))
}

// EraReward returns the reward of era, or false when it isn't, or no longer, stored.
func (s *Service) EraReward(era uint32) (EraReward, bool, error) {
	span, ok, err := s.spans.Get(storage.U32Key(SpanIndex(era, s.spanLength)))
	if err != nil || !ok {
		return EraReward{}, false, err
	}
	reward, ok := span.Get(era)
	return reward, ok, nil
}

// DAppRewardPool sums the dApp pools of eras [first, last].
func (s *Service) DAppRewardPool(first, last uint32) (*big.Int, error) {
	sum := astar.Zero()
	for era := first; era <= last && era >= first; era++ {
		reward, ok, err := s.EraReward(era)
		if err != nil {
			return nil, err
		}
		if ok {
			sum = astar.SaturatingAdd(sum, reward.DAppRewardPool)
		}
	}
	return sum, nil
}

// SetPeriodEnd records the end of period.
func (s *Service) SetPeriodEnd(period uint32, info *PeriodEndInfo) error {
	return s.periodEnds.Set(storage.U32Key(period), info)
}

// PeriodEnd returns the end record of period.
func (s *Service) PeriodEnd(period uint32) (*PeriodEndInfo, bool, error) {
	return s.periodEnds.Get(storage.U32Key(period))
}

// BuildAndEarnStartEra returns the first build&earn era of the current period.
func (s *Service) BuildAndEarnStartEra() (uint32, error) {
	return s.bneStartEra.Get()
}

// SetBuildAndEarnStartEra records the first build&earn era of the current period.
func (s *Service) SetBuildAndEarnStartEra(era uint32) error {
	return s.bneStartEra.Set(era)
}

// CleanupMarker returns the cleanup progress.
func (s *Service) CleanupMarker() (*CleanupMarker, error) {
	return s.cleanupMarker.Get()
}

// SetCleanupMarker stores the cleanup progress.
func (s *Service) SetCleanupMarker(m *CleanupMarker) error {
	return s.cleanupMarker.Set(m)
}

// RemoveSpan deletes the span stored at index.
func (s *Service) RemoveSpan(index uint32) {
	s.spans.Delete(storage.U32Key(index))
}

// RemovePeriodEnd deletes the end record of period.
func (s *Service) RemovePeriodEnd(period uint32) {
	s.periodEnds.Delete(storage.U32Key(period))
}
