// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dappstaking

import (
	"math/big"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/dappstaking/erainfo"
	"github.com/astar-network/astar/builtin/dappstaking/ledger"
	"github.com/astar-network/astar/builtin/dappstaking/protocol"
	"github.com/astar-network/astar/builtin/reverts"
)

// Vote stakes amount on contract during the voting subperiod. Votes are
// eligible for the bonus reward of the period.
func (d *DappStaking) Vote(origin Origin, contract astar.Address, amount *big.Int) error {
	return d.stake(origin, contract, amount, protocol.Voting)
}

// Stake stakes amount on contract during the build&earn subperiod.
func (d *DappStaking) Stake(origin Origin, contract astar.Address, amount *big.Int) error {
	return d.stake(origin, contract, amount, protocol.BuildAndEarn)
}

func (d *DappStaking) stake(origin Origin, contract astar.Address, amount *big.Int, subperiod protocol.Subperiod) error {
	account, err := origin.ensureSigned()
	if err != nil {
		return err
	}
	logger.Debug("staking", "account", account, "contract", contract, "amount", amount, "subperiod", subperiod)

	ps, err := d.enabledState()
	if err != nil {
		return err
	}
	if ps.Subperiod() != subperiod {
		if subperiod == protocol.BuildAndEarn {
			return reverts.ErrCannotStakeInVotingSubperiod
		}
		return reverts.ErrCannotVoteInBuildAndEarnSubperiod
	}
	if !astar.IsPositive(amount) {
		return reverts.ErrZeroAmount
	}
	dapp, ok, err := d.store.registeredDApp(contract)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.ErrNotOperatedContract
	}
	if ps.IsLastEraOfPeriod() {
		return reverts.ErrPeriodEndsInNextEra
	}

	era, period := ps.Era, ps.PeriodNumber()
	oldest := d.oldestClaimablePeriod(period)

	l, err := d.store.ledger(account)
	if err != nil {
		return err
	}
	l.Roll(era)
	l.MaybeCleanupExpired(oldest)
	if l.HasUnclaimedRewards(era, period) {
		return reverts.ErrUnclaimedRewards
	}
	if l.StakeableAmount(period).Cmp(amount) < 0 {
		return reverts.ErrInsufficientAvailableStake
	}

	info, exists, err := d.store.stakerInfo(account, contract)
	if err != nil {
		return err
	}
	var isNew, newForPeriod bool
	switch {
	case !exists:
		if l.ContractStakeCount >= d.cfg.MaxNumberOfStakedContracts {
			return reverts.ErrTooManyStakedContracts
		}
		info = ledger.NewStakerInfo(period, subperiod)
		isNew = true
	case info.Period() != period:
		// the bonus of an older period must be claimed before the entry is reused
		if info.IsBonusEligible() && info.Period() >= oldest {
			return reverts.ErrUnclaimedRewards
		}
		info = ledger.NewStakerInfo(period, subperiod)
		newForPeriod = true
	}

	info.Stake(amount, era, subperiod)
	if info.Total().Cmp(d.cfg.MinimumStakeAmount) < 0 {
		return reverts.ErrInsufficientStakeAmount
	}
	l.AddStakeAmount(amount, era, ps.PeriodInfo)
	if isNew {
		l.ContractStakeCount++
		if err := d.store.stakedContracts(account).Add(contract); err != nil {
			return err
		}
	}

	cs, err := d.store.contractStake(dapp.ID)
	if err != nil {
		return err
	}
	cs.Stake(amount, era, ps.PeriodInfo)
	if isNew || newForPeriod {
		cs.StakerCount++
	}

	if err := d.store.setStakerInfo(account, contract, info); err != nil {
		return err
	}
	if err := d.store.setLedger(account, l); err != nil {
		return err
	}
	if err := d.store.setContractStake(dapp.ID, cs); err != nil {
		return err
	}
	if err := d.updateEraInfo(func(e *erainfo.EraInfo) { e.AddStakeAmount(amount, subperiod) }); err != nil {
		return err
	}

	d.emit(StakeEvent{Account: account, SmartContract: contract, Amount: astar.Copy(amount)})
	logger.Info("staked", "account", account, "contract", contract, "amount", amount)
	return nil
}

// Unstake withdraws amount of the current period stake on contract. A
// remainder below the minimum stake amount is withdrawn too.
func (d *DappStaking) Unstake(origin Origin, contract astar.Address, amount *big.Int) error {
	account, err := origin.ensureSigned()
	if err != nil {
		return err
	}
	logger.Debug("unstaking", "account", account, "contract", contract, "amount", amount)

	ps, err := d.enabledState()
	if err != nil {
		return err
	}
	if !astar.IsPositive(amount) {
		return reverts.ErrZeroAmount
	}
	dapp, ok, err := d.store.registeredDApp(contract)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.ErrNotOperatedContract
	}
	info, err := d.currentStakerInfo(account, contract, ps.PeriodNumber())
	if err != nil {
		return err
	}
	if amount.Cmp(info.Total()) > 0 {
		return reverts.ErrUnstakeAmountTooLarge
	}
	remaining := astar.SaturatingSub(info.Total(), amount)
	if !astar.IsZero(remaining) && remaining.Cmp(d.cfg.MinimumStakeAmount) < 0 {
		amount = info.Total()
	}
	amount = astar.Copy(amount)

	l, err := d.unstakeLedger(account, ps)
	if err != nil {
		return err
	}
	current, future := info.Unstake(amount, ps.Era)
	l.UnstakeParts(current, future)

	cs, err := d.store.contractStake(dapp.ID)
	if err != nil {
		return err
	}
	cs.Unstake(current, future, ps.Era, ps.PeriodNumber())

	if info.IsEmpty() {
		if err := d.store.removeStakerInfo(account, contract); err != nil {
			return err
		}
		l.ContractStakeCount = astar.SaturatingSubU32(l.ContractStakeCount, 1)
		cs.StakerCount = astar.SaturatingSubU32(cs.StakerCount, 1)
	} else if err := d.store.setStakerInfo(account, contract, info); err != nil {
		return err
	}
	if err := d.store.setLedger(account, l); err != nil {
		return err
	}
	if err := d.store.setContractStake(dapp.ID, cs); err != nil {
		return err
	}
	if err := d.updateEraInfo(func(e *erainfo.EraInfo) { e.UnstakeParts(current, future) }); err != nil {
		return err
	}

	d.emit(UnstakeEvent{Account: account, SmartContract: contract, Amount: amount})
	logger.Info("unstaked", "account", account, "contract", contract, "amount", amount)
	return nil
}

// UnstakeFromUnregistered withdraws the whole current period stake on an
// unregistered contract.
func (d *DappStaking) UnstakeFromUnregistered(origin Origin, contract astar.Address) error {
	account, err := origin.ensureSigned()
	if err != nil {
		return err
	}
	logger.Debug("unstaking from unregistered", "account", account, "contract", contract)

	ps, err := d.enabledState()
	if err != nil {
		return err
	}
	dapp, err := d.store.dapp(contract)
	if err != nil {
		return err
	}
	if dapp == nil {
		return reverts.ErrContractNotFound
	}
	if dapp.IsRegistered() {
		return reverts.ErrContractStillActive
	}
	info, err := d.currentStakerInfo(account, contract, ps.PeriodNumber())
	if err != nil {
		return err
	}
	l, err := d.unstakeLedger(account, ps)
	if err != nil {
		return err
	}

	amount := info.Total()
	current, future := info.Unstake(amount, ps.Era)
	l.UnstakeParts(current, future)
	l.ContractStakeCount = astar.SaturatingSubU32(l.ContractStakeCount, 1)

	if err := d.store.removeStakerInfo(account, contract); err != nil {
		return err
	}
	if err := d.store.setLedger(account, l); err != nil {
		return err
	}
	if err := d.updateEraInfo(func(e *erainfo.EraInfo) { e.UnstakeParts(current, future) }); err != nil {
		return err
	}

	d.emit(UnstakeFromUnregisteredEvent{Account: account, SmartContract: contract, Amount: amount})
	logger.Info("unstaked from unregistered", "account", account, "contract", contract, "amount", amount)
	return nil
}

// currentStakerInfo returns the stake of account on contract, which must
// belong to period.
func (d *DappStaking) currentStakerInfo(account, contract astar.Address, period uint32) (*ledger.StakerInfo, error) {
	info, ok, err := d.store.stakerInfo(account, contract)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, reverts.ErrStakingInfoNotFound
	}
	if info.Period() != period {
		return nil, reverts.ErrUnstakeFromPastPeriod
	}
	return info, nil
}

// unstakeLedger loads the ledger of account, which must have no rewards
// left to claim.
func (d *DappStaking) unstakeLedger(account astar.Address, ps *protocol.ProtocolState) (*ledger.AccountLedger, error) {
	l, err := d.store.ledger(account)
	if err != nil {
		return nil, err
	}
	l.Roll(ps.Era)
	if l.HasUnclaimedRewards(ps.Era, ps.PeriodNumber()) {
		return nil, reverts.ErrUnclaimedRewards
	}
	return l, nil
}
