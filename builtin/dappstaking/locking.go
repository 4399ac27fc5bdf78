// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dappstaking

import (
	"math/big"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/dappstaking/erainfo"
	"github.com/astar-network/astar/builtin/reverts"
)

// Lock locks up to amount of the usable balance of the origin.
func (d *DappStaking) Lock(origin Origin, amount *big.Int) error {
	account, err := origin.ensureSigned()
	if err != nil {
		return err
	}
	logger.Debug("locking", "account", account, "amount", amount)

	if _, err := d.enabledState(); err != nil {
		return err
	}
	if !astar.IsPositive(amount) {
		return reverts.ErrZeroAmount
	}
	l, err := d.store.ledger(account)
	if err != nil {
		return err
	}
	usable, err := d.currency.Usable(account)
	if err != nil {
		return err
	}
	locked := astar.Min(amount, usable)
	if astar.IsZero(locked) {
		return reverts.ErrZeroAmount
	}

	l.AddLockAmount(locked)
	if l.ActiveLocked().Cmp(d.cfg.MinimumLockedAmount) < 0 {
		return reverts.ErrLockedAmountBelowThreshold
	}
	if err := d.currency.Freeze(account, l.TotalLocked()); err != nil {
		return err
	}
	if err := d.store.setLedger(account, l); err != nil {
		return err
	}
	if err := d.updateEraInfo(func(info *erainfo.EraInfo) { info.AddLocked(locked) }); err != nil {
		return err
	}

	d.emit(LockedEvent{Account: account, Amount: locked})
	logger.Info("locked", "account", account, "amount", locked)
	return nil
}

// Unlock starts unlocking amount of the locked funds not staked in the
// current period. A remainder below the minimum locked amount is unlocked too.
func (d *DappStaking) Unlock(origin Origin, amount *big.Int, now uint32) error {
	account, err := origin.ensureSigned()
	if err != nil {
		return err
	}
	logger.Debug("unlocking", "account", account, "amount", amount)

	ps, err := d.enabledState()
	if err != nil {
		return err
	}
	if !astar.IsPositive(amount) {
		return reverts.ErrZeroAmount
	}
	l, err := d.store.ledger(account)
	if err != nil {
		return err
	}
	staked := l.StakedAmount(ps.PeriodNumber())
	if amount.Cmp(astar.SaturatingSub(l.ActiveLocked(), staked)) > 0 {
		return reverts.ErrUnstakeAmountTooLarge
	}
	remaining := astar.SaturatingSub(l.ActiveLocked(), amount)
	if !astar.IsZero(remaining) && remaining.Cmp(d.cfg.MinimumLockedAmount) < 0 {
		if !astar.IsZero(staked) {
			return reverts.ErrRemainingStakePreventsFullUnlock
		}
		amount = l.ActiveLocked()
	}
	amount = astar.Copy(amount)

	l.SubtractLockAmount(amount)
	if err := l.AddUnlockingChunk(amount, astar.SaturatingAddU32(now, d.cfg.unlockingBlocks()), d.cfg.MaxUnlockingChunks); err != nil {
		return err
	}
	if err := d.store.setLedger(account, l); err != nil {
		return err
	}
	if err := d.updateEraInfo(func(info *erainfo.EraInfo) { info.UnlockingStarted(amount) }); err != nil {
		return err
	}

	d.emit(UnlockingEvent{Account: account, Amount: amount})
	logger.Info("unlocking", "account", account, "amount", amount)
	return nil
}

// ClaimUnlocked releases the unlocking chunks matured at block now.
func (d *DappStaking) ClaimUnlocked(origin Origin, now uint32) error {
	account, err := origin.ensureSigned()
	if err != nil {
		return err
	}
	logger.Debug("claiming unlocked", "account", account)

	if _, err := d.enabledState(); err != nil {
		return err
	}
	l, err := d.store.ledger(account)
	if err != nil {
		return err
	}
	amount := l.ClaimUnlocked(now)
	if astar.IsZero(amount) {
		return reverts.ErrNoUnlockedChunksToClaim
	}

	if l.IsEmpty() {
		err = d.currency.Thaw(account)
	} else {
		err = d.currency.Freeze(account, l.TotalLocked())
	}
	if err != nil {
		return err
	}
	if err := d.store.setLedger(account, l); err != nil {
		return err
	}
	if err := d.updateEraInfo(func(info *erainfo.EraInfo) { info.UnlockingRemoved(amount) }); err != nil {
		return err
	}

	d.emit(ClaimedUnlockedEvent{Account: account, Amount: amount})
	logger.Info("claimed unlocked", "account", account, "amount", amount)
	return nil
}

// RelockUnlocking locks every unlocking chunk again.
func (d *DappStaking) RelockUnlocking(origin Origin) error {
	account, err := origin.ensureSigned()
	if err != nil {
		return err
	}
	logger.Debug("relocking", "account", account)

	if _, err := d.enabledState(); err != nil {
		return err
	}
	l, err := d.store.ledger(account)
	if err != nil {
		return err
	}
	if len(l.Unlocking) == 0 {
		return reverts.ErrNoUnlockingChunks
	}
	amount := l.ConsumeUnlockingChunks()
	l.AddLockAmount(amount)
	if l.ActiveLocked().Cmp(d.cfg.MinimumLockedAmount) < 0 {
		return reverts.ErrLockedAmountBelowThreshold
	}
	if err := d.store.setLedger(account, l); err != nil {
		return err
	}
	if err := d.updateEraInfo(func(info *erainfo.EraInfo) { info.Relocked(amount) }); err != nil {
		return err
	}

	d.emit(RelockEvent{Account: account, Amount: amount})
	logger.Info("relocked", "account", account, "amount", amount)
	return nil
}

func (d *DappStaking) updateEraInfo(update func(info *erainfo.EraInfo)) error {
	info, err := d.eraInfoService.Get()
	if err != nil {
		return err
	}
	update(info)
	return d.eraInfoService.Set(info)
}
