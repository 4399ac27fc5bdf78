// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dappstaking

import (
	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/reverts"
)

// CleanupExpiredEntries removes the staker infos of the origin that can't
// earn anything anymore: expired ones and those of past periods without bonus.
func (d *DappStaking) CleanupExpiredEntries(origin Origin) error {
	account, err := origin.ensureSigned()
	if err != nil {
		return err
	}
	logger.Debug("cleaning up expired entries", "account", account)

	ps, err := d.enabledState()
	if err != nil {
		return err
	}
	period := ps.PeriodNumber()
	oldest := d.oldestClaimablePeriod(period)

	var removed uint32
	err = d.store.stakedContracts(account).Iter(func(contract astar.Address) error {
		info, ok, err := d.store.stakerInfo(account, contract)
		if err != nil || !ok {
			return err
		}
		if info.Period() < oldest || (info.Period() < period && !info.IsBonusEligible()) {
			removed++
			return d.store.removeStakerInfo(account, contract)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if removed == 0 {
		return reverts.ErrNoExpiredEntries
	}

	l, err := d.store.ledger(account)
	if err != nil {
		return err
	}
	l.ContractStakeCount = astar.SaturatingSubU32(l.ContractStakeCount, removed)
	if err := d.store.setLedger(account, l); err != nil {
		return err
	}

	d.emit(ExpiredEntriesRemovedEvent{Account: account, Count: removed})
	logger.Info("removed expired entries", "account", account, "count", removed)
	return nil
}
