// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package erainfo

import (
	"math/big"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/dappstaking/ledger"
	"github.com/astar-network/astar/builtin/dappstaking/protocol"
	"github.com/astar-network/astar/builtin/storage"
)

var slotEraInfo = storage.Slot("current-era-info")

// EraInfo holds protocol wide totals of the current and the next era.
type EraInfo struct {
	TotalLocked        *big.Int           `json:"totalLocked"`
	Unlocking          *big.Int           `json:"unlocking"`
	CurrentStakeAmount ledger.StakeAmount `json:"currentStakeAmount"`
	NextStakeAmount    ledger.StakeAmount `json:"nextStakeAmount"`
}

// Genesis returns the totals at era, period.
func Genesis(era, period uint32) *EraInfo {
	return &EraInfo{
		TotalLocked:        astar.Zero(),
		Unlocking:          astar.Zero(),
		CurrentStakeAmount: ledger.NewStakeAmount(era, period),
		NextStakeAmount:    ledger.NewStakeAmount(era+1, period),
	}
}

// AddLocked accounts for newly locked funds.
func (e *EraInfo) AddLocked(amount *big.Int) {
	e.TotalLocked = astar.SaturatingAdd(e.TotalLocked, amount)
}

// UnlockingStarted moves amount from locked to unlocking.
func (e *EraInfo) UnlockingStarted(amount *big.Int) {
	e.TotalLocked = astar.SaturatingSub(e.TotalLocked, amount)
	e.Unlocking = astar.SaturatingAdd(e.Unlocking, amount)
}

// UnlockingRemoved accounts for claimed unlocked funds.
func (e *EraInfo) UnlockingRemoved(amount *big.Int) {
	e.Unlocking = astar.SaturatingSub(e.Unlocking, amount)
}

// Relocked moves amount from unlocking back to locked.
func (e *EraInfo) Relocked(amount *big.Int) {
	e.Unlocking = astar.SaturatingSub(e.Unlocking, amount)
	e.TotalLocked = astar.SaturatingAdd(e.TotalLocked, amount)
}

// AddStakeAmount accounts stake valid from the next era.
func (e *EraInfo) AddStakeAmount(amount *big.Int, subperiod protocol.Subperiod) {
	e.NextStakeAmount.Add(amount, subperiod)
}

// UnstakeParts removes the parts computed for one unstake.
func (e *EraInfo) UnstakeParts(current, future ledger.StakeAmount) {
	e.CurrentStakeAmount.SubtractParts(current)
	e.NextStakeAmount.SubtractParts(future)
}

// CurrentStaked returns the total stake of the current era.
func (e *EraInfo) CurrentStaked() *big.Int {
	return e.CurrentStakeAmount.Total()
}

// MigrateToNextEra shifts the totals by one era. Entering Voting starts a
// new period with nothing staked.
func (e *EraInfo) MigrateToNextEra(nextSubperiod *protocol.Subperiod) {
	era := astar.SaturatingAddU32(e.CurrentStakeAmount.Era, 1)
	if nextSubperiod != nil && *nextSubperiod == protocol.Voting {
		period := astar.SaturatingAddU32(e.CurrentStakeAmount.Period, 1)
		e.CurrentStakeAmount = ledger.NewStakeAmount(era, period)
		e.NextStakeAmount = ledger.NewStakeAmount(astar.SaturatingAddU32(era, 1), period)
		return
	}
	e.CurrentStakeAmount = e.NextStakeAmount.Copy()
	e.CurrentStakeAmount.Era = era
	e.NextStakeAmount.Era = astar.SaturatingAddU32(era, 1)
}

// Service stores the era info singleton.
type Service struct {
	info *storage.Value[*EraInfo]
}

func New(sctx *storage.Context) *Service {
	return &Service{info: storage.NewValue[*EraInfo](sctx, slotEraInfo)}
}

// Get returns the era info.
func (s *Service) Get() (*EraInfo, error) {
	info, err := s.info.Get()
	if err != nil {
		return nil, err
	}
	if info.TotalLocked == nil {
		return Genesis(0, 0), nil
	}
	return info, nil
}

// Set stores the era info.
func (s *Service) Set(info *EraInfo) error {
	return s.info.Set(info)
}
