// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dappstaking

import (
	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/dappstaking/protocol"
	"github.com/astar-network/astar/builtin/dappstaking/rewards"
	"github.com/astar-network/astar/builtin/reverts"
	"github.com/astar-network/astar/builtin/storage"
)

// ClaimStakerRewards pays the staker rewards of every finished era the
// origin has stake for, up to the end of its staked period.
func (d *DappStaking) ClaimStakerRewards(origin Origin) error {
	account, err := origin.ensureSigned()
	if err != nil {
		return err
	}
	logger.Debug("claiming staker rewards", "account", account)

	ps, err := d.enabledState()
	if err != nil {
		return err
	}
	l, err := d.store.ledger(account)
	if err != nil {
		return err
	}
	first, ok := l.EarliestStakedEra()
	if !ok {
		return reverts.ErrNoClaimableRewards
	}
	stakedPeriod, _ := l.StakedPeriod()
	expired := stakedPeriod < d.oldestClaimablePeriod(ps.PeriodNumber())

	var (
		last        uint32
		periodEnded bool
	)
	if stakedPeriod == ps.PeriodNumber() {
		if ps.Subperiod() == protocol.Voting {
			return reverts.ErrNoClaimableRewards
		}
		last = ps.Era - 1
	} else {
		end, ok, err := d.rewardsService.PeriodEnd(stakedPeriod)
		if err != nil {
			return err
		}
		if !ok {
			// the period end was already cleaned up
			l.ClaimUpTo(first, true)
			if err := d.store.setLedger(account, l); err != nil {
				return err
			}
			d.emit(RewardExpiredEvent{Account: account, Era: first, Period: stakedPeriod})
			logger.Info("staker rewards expired", "account", account, "period", stakedPeriod)
			return nil
		}
		last = end.FinalEra
		periodEnded = true
	}
	if first > last {
		return reverts.ErrNoClaimableRewards
	}

	total := astar.Zero()
	for era, stake := range l.EraStakes(first, last) {
		if astar.IsZero(stake) {
			continue
		}
		reward, ok, err := d.rewardsService.EraReward(era)
		if err != nil {
			return err
		}
		if expired || !ok {
			d.emit(RewardExpiredEvent{Account: account, Era: era, Period: stakedPeriod})
			continue
		}
		amount := rewards.StakerReward(reward, stake)
		total = astar.SaturatingAdd(total, amount)
		d.emit(RewardEvent{Account: account, Era: era, Amount: amount})
	}

	if !astar.IsZero(total) {
		if err := d.source.PayoutReward(account, total); err != nil {
			return err
		}
	}
	l.ClaimUpTo(last, periodEnded)
	if err := d.store.setLedger(account, l); err != nil {
		return err
	}

	metricRewardsClaimed().AddWithLabel(units(total), map[string]string{"kind": "staker"})
	logger.Info("claimed staker rewards", "account", account, "first", first, "last", last, "amount", total)
	return nil
}

// ClaimBonusReward pays the loyalty bonus of a finished period earned by
// the voting stake of the origin on contract.
func (d *DappStaking) ClaimBonusReward(origin Origin, contract astar.Address) error {
	account, err := origin.ensureSigned()
	if err != nil {
		return err
	}
	logger.Debug("claiming bonus reward", "account", account, "contract", contract)

	ps, err := d.enabledState()
	if err != nil {
		return err
	}
	info, ok, err := d.store.stakerInfo(account, contract)
	if err != nil {
		return err
	}
	if !ok || info.Period() >= ps.PeriodNumber() {
		return reverts.ErrNoClaimableRewards
	}
	if info.Period() < d.oldestClaimablePeriod(ps.PeriodNumber()) {
		return reverts.ErrRewardExpired
	}
	if !info.IsBonusEligible() {
		return reverts.ErrNotEligibleForBonusReward
	}
	end, ok, err := d.rewardsService.PeriodEnd(info.Period())
	if err != nil {
		return err
	}
	if !ok {
		return reverts.ErrRewardExpired
	}

	amount := rewards.BonusReward(end, info.VotingStake())
	if !astar.IsZero(amount) {
		if err := d.source.PayoutReward(account, amount); err != nil {
			return err
		}
	}
	if err := d.store.removeStakerInfo(account, contract); err != nil {
		return err
	}
	l, err := d.store.ledger(account)
	if err != nil {
		return err
	}
	l.ContractStakeCount = astar.SaturatingSubU32(l.ContractStakeCount, 1)
	if err := d.store.setLedger(account, l); err != nil {
		return err
	}

	d.emit(BonusRewardEvent{Account: account, SmartContract: contract, Period: info.Period(), Amount: amount})
	metricRewardsClaimed().AddWithLabel(units(amount), map[string]string{"kind": "bonus"})
	logger.Info("claimed bonus reward", "account", account, "contract", contract, "amount", amount)
	return nil
}

// ClaimDAppReward pays the tier reward of contract for a finished period to
// its beneficiary. Anyone may submit the claim.
func (d *DappStaking) ClaimDAppReward(origin Origin, contract astar.Address, period uint32) error {
	if _, err := origin.ensureSigned(); err != nil {
		return err
	}
	logger.Debug("claiming dapp reward", "contract", contract, "period", period)

	ps, err := d.enabledState()
	if err != nil {
		return err
	}
	dapp, ok, err := d.store.registeredDApp(contract)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.ErrContractNotFound
	}
	if period >= ps.PeriodNumber() {
		return reverts.ErrInvalidClaimPeriod
	}
	if period < d.oldestClaimablePeriod(ps.PeriodNumber()) {
		return reverts.ErrRewardExpired
	}
	assigned, ok, err := d.store.dappTiers.Get(storage.U32Key(period))
	if err != nil {
		return err
	}
	if !ok {
		return reverts.ErrNoDAppTierInfo
	}
	ranked, amount, err := assigned.TryClaim(dapp.ID)
	if err != nil {
		return err
	}
	if err := d.store.dappTiers.Set(storage.U32Key(period), assigned); err != nil {
		return err
	}
	beneficiary := dapp.Beneficiary()
	if !astar.IsZero(amount) {
		if err := d.source.PayoutReward(beneficiary, amount); err != nil {
			return err
		}
	}

	d.emit(DAppRewardEvent{
		Beneficiary:   beneficiary,
		SmartContract: contract,
		RankedTier:    ranked,
		Period:        period,
		Amount:        amount,
	})
	metricRewardsClaimed().AddWithLabel(units(amount), map[string]string{"kind": "dapp"})
	logger.Info("claimed dapp reward", "contract", contract, "period", period, "tier", ranked, "amount", amount)
	return nil
}
