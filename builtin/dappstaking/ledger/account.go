// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/dappstaking/protocol"
	"github.com/astar-network/astar/builtin/reverts"
)

// UnlockingChunk is an amount waiting for UnlockBlock to become claimable.
type UnlockingChunk struct {
	Amount      *big.Int `json:"amount"`
	UnlockBlock uint32   `json:"unlockBlock"`
}

// AccountLedger tracks the locked funds of one account and the sum of its
// stakes. Staked is valid from Staked.Era on; StakedFuture, when set, holds
// the stake that becomes valid at the next era.
type AccountLedger struct {
	Locked             *big.Int         `json:"locked"`
	Unlocking          []UnlockingChunk `json:"unlocking"`
	Staked             StakeAmount      `json:"staked"`
	StakedFuture       *StakeAmount     `json:"stakedFuture" rlp:"nil"`
	ContractStakeCount uint32           `json:"contractStakeCount"`
}

// New returns an empty ledger.
func New() *AccountLedger {
	return &AccountLedger{
		Locked: astar.Zero(),
		Staked: NewStakeAmount(0, 0),
	}
}

// Normalize replaces nil amounts left by decoding an absent entry.
func (l *AccountLedger) Normalize() *AccountLedger {
	if l.Locked == nil {
		l.Locked = astar.Zero()
	}
	if l.Staked.Voting == nil {
		l.Staked.Voting = astar.Zero()
	}
	if l.Staked.BuildAndEarn == nil {
		l.Staked.BuildAndEarn = astar.Zero()
	}
	return l
}

// IsEmpty reports whether the ledger holds nothing and can be removed.
func (l *AccountLedger) IsEmpty() bool {
	return astar.IsZero(l.Locked) &&
		len(l.Unlocking) == 0 &&
		l.Staked.IsEmpty() &&
		l.StakedFuture == nil &&
		l.ContractStakeCount == 0
}

// ActiveLocked returns the locked amount not being unlocked.
func (l *AccountLedger) ActiveLocked() *big.Int {
	return astar.Copy(l.Locked)
}

// UnlockingAmount returns the sum of all unlocking chunks.
func (l *AccountLedger) UnlockingAmount() *big.Int {
	sum := astar.Zero()
	for _, c := range l.Unlocking {
		sum = astar.SaturatingAdd(sum, c.Amount)
	}
	return sum
}

// TotalLocked returns the amount the currency must keep frozen.
func (l *AccountLedger) TotalLocked() *big.Int {
	return astar.SaturatingAdd(l.Locked, l.UnlockingAmount())
}

// AddLockAmount increases the active locked amount.
func (l *AccountLedger) AddLockAmount(amount *big.Int) {
	l.Locked = astar.SaturatingAdd(l.Locked, amount)
}

// SubtractLockAmount decreases the active locked amount.
func (l *AccountLedger) SubtractLockAmount(amount *big.Int) {
	l.Locked = astar.SaturatingSub(l.Locked, amount)
}

// AddUnlockingChunk schedules amount to unlock at block. Chunks unlocking at
// the same block merge.
func (l *AccountLedger) AddUnlockingChunk(amount *big.Int, block uint32, maxChunks uint32) error {
	if astar.IsZero(amount) {
		return nil
	}
	for i := range l.Unlocking {
		if l.Unlocking[i].UnlockBlock == block {
			l.Unlocking[i].Amount = astar.SaturatingAdd(l.Unlocking[i].Amount, amount)
			return nil
		}
	}
	if uint32(len(l.Unlocking)) >= maxChunks {
		return reverts.ErrTooManyUnlockingChunks
	}
	l.Unlocking = append(l.Unlocking, UnlockingChunk{Amount: astar.Copy(amount), UnlockBlock: block})
	return nil
}

// ClaimableUnlocked returns the amount of chunks matured at block now.
func (l *AccountLedger) ClaimableUnlocked(now uint32) *big.Int {
	sum := astar.Zero()
	for _, c := range l.Unlocking {
		if c.UnlockBlock <= now {
			sum = astar.SaturatingAdd(sum, c.Amount)
		}
	}
	return sum
}

// ClaimUnlocked removes the chunks matured at block now and returns their amount.
func (l *AccountLedger) ClaimUnlocked(now uint32) *big.Int {
	sum := astar.Zero()
	kept := l.Unlocking[:0]
	for _, c := range l.Unlocking {
		if c.UnlockBlock <= now {
			sum = astar.SaturatingAdd(sum, c.Amount)
		} else {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		kept = nil
	}
	l.Unlocking = kept
	return sum
}

// ConsumeUnlockingChunks removes every chunk and returns their amount.
func (l *AccountLedger) ConsumeUnlockingChunks() *big.Int {
	sum := l.UnlockingAmount()
	l.Unlocking = nil
	return sum
}

// Roll promotes the future stake once it became valid, provided nothing
// older is left.
func (l *AccountLedger) Roll(era uint32) {
	if l.StakedFuture != nil && l.StakedFuture.Era <= era && l.Staked.IsEmpty() {
		l.Staked = *l.StakedFuture
		l.StakedFuture = nil
	}
}

// StakedPeriod returns the period of the latest stake, if any.
func (l *AccountLedger) StakedPeriod() (uint32, bool) {
	if l.StakedFuture != nil {
		return l.StakedFuture.Period, true
	}
	if !l.Staked.IsEmpty() {
		return l.Staked.Period, true
	}
	return 0, false
}

// EarliestStakedEra returns the first era with stake not yet claimed for.
func (l *AccountLedger) EarliestStakedEra() (uint32, bool) {
	if !l.Staked.IsEmpty() {
		return l.Staked.Era, true
	}
	if l.StakedFuture != nil {
		return l.StakedFuture.Era, true
	}
	return 0, false
}

// StakedAmount returns the latest stake of period.
func (l *AccountLedger) StakedAmount(period uint32) *big.Int {
	if l.StakedFuture != nil && l.StakedFuture.Period == period {
		return l.StakedFuture.Total()
	}
	if l.Staked.Period == period {
		return l.Staked.Total()
	}
	return astar.Zero()
}

// StakeableAmount returns the locked amount not yet staked in period.
func (l *AccountLedger) StakeableAmount(period uint32) *big.Int {
	return astar.SaturatingSub(l.Locked, l.StakedAmount(period))
}

// StakeAt returns the stake valid at era.
func (l *AccountLedger) StakeAt(era uint32) *big.Int {
	if l.StakedFuture != nil && l.StakedFuture.Era <= era {
		return l.StakedFuture.Total()
	}
	if !l.Staked.IsEmpty() && l.Staked.Era <= era {
		return l.Staked.Total()
	}
	return astar.Zero()
}

// HasUnclaimedRewards reports whether stake of past eras or periods is still
// waiting to be claimed for.
func (l *AccountLedger) HasUnclaimedRewards(era, period uint32) bool {
	if !l.Staked.IsEmpty() && (l.Staked.Period < period || l.Staked.Era < era) {
		return true
	}
	return l.StakedFuture != nil && l.StakedFuture.Period < period
}

// MaybeCleanupExpired drops stake of periods older than threshold, whose
// rewards can no longer be claimed.
func (l *AccountLedger) MaybeCleanupExpired(threshold uint32) bool {
	period, ok := l.StakedPeriod()
	if !ok || period >= threshold {
		return false
	}
	l.Staked = NewStakeAmount(0, 0)
	l.StakedFuture = nil
	return true
}

// AddStakeAmount stakes amount in subperiod of the current period, valid
// from the next era.
func (l *AccountLedger) AddStakeAmount(amount *big.Int, era uint32, info protocol.PeriodInfo) {
	if astar.IsZero(amount) {
		return
	}
	if l.StakedFuture == nil {
		future := NewStakeAmount(0, info.Number)
		if l.Staked.Period == info.Number {
			future = l.Staked.Copy()
		}
		l.StakedFuture = &future
	}
	l.StakedFuture.Era = astar.SaturatingAddU32(era, 1)
	l.StakedFuture.Period = info.Number
	l.StakedFuture.Add(amount, info.Subperiod)
}

// UnstakeParts removes current from the stake valid now and future from the
// stake valid at the next era.
func (l *AccountLedger) UnstakeParts(current, future StakeAmount) {
	if !l.Staked.IsEmpty() {
		l.Staked.SubtractParts(current)
	}
	if l.StakedFuture != nil {
		l.StakedFuture.SubtractParts(future)
		if l.StakedFuture.IsEmpty() && l.Staked.IsEmpty() {
			l.StakedFuture = nil
		}
	}
	if l.Staked.IsEmpty() && l.StakedFuture == nil {
		l.Staked = NewStakeAmount(0, 0)
	}
}

// ClaimUpTo marks every era up to last as claimed. Once the final era of
// the staked period is claimed the stake is dropped altogether.
func (l *AccountLedger) ClaimUpTo(last uint32, periodEnded bool) {
	if periodEnded {
		l.Staked = NewStakeAmount(0, 0)
		l.StakedFuture = nil
		return
	}
	next := astar.SaturatingAddU32(last, 1)
	if l.StakedFuture != nil && l.StakedFuture.Era <= next {
		l.Staked = *l.StakedFuture
		l.StakedFuture = nil
	}
	l.Staked.Era = next
}
