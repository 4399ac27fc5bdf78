// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dappstaking

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/dappstaking/erainfo"
	"github.com/astar-network/astar/builtin/dappstaking/protocol"
	"github.com/astar-network/astar/builtin/dappstaking/rewards"
	"github.com/astar-network/astar/builtin/dappstaking/tiers"
	"github.com/astar-network/astar/builtin/storage"
)

// Housekeep runs at the start of block now. It advances the era when due,
// otherwise it removes one item of expired reward history.
func (d *DappStaking) Housekeep(now uint32) error {
	ps, err := d.protocolService.Get()
	if err != nil {
		return err
	}
	if ps.Maintenance {
		return nil
	}
	if ps.IsNewEra(now) {
		return d.advanceEra(ps, now)
	}
	return d.cleanupStep()
}

func (d *DappStaking) advanceEra(ps *protocol.ProtocolState, now uint32) error {
	cfg := d.cfg.Cycle
	era, period := ps.Era, ps.PeriodNumber()
	nextEra := astar.SaturatingAddU32(era, 1)
	logger.Debug("advancing era", "era", era, "period", period, "subperiod", ps.Subperiod())

	eraInfo, err := d.eraInfoService.Get()
	if err != nil {
		return err
	}

	var nextSubperiod *protocol.Subperiod
	switch {
	case ps.Subperiod() == protocol.Voting:
		// the voting subperiod earns nothing, it only records the stake
		reward := rewards.EraReward{
			StakerRewardPool: astar.Zero(),
			Staked:           eraInfo.CurrentStaked(),
			DAppRewardPool:   astar.Zero(),
		}
		if err := d.rewardsService.Push(era, reward); err != nil {
			return err
		}
		if err := d.rewardsService.SetBuildAndEarnStartEra(nextEra); err != nil {
			return err
		}
		ps.AdvanceToNextSubperiod(
			astar.SaturatingAddU32(nextEra, cfg.ErasPerBuildAndEarnSubperiod),
			astar.SaturatingAddU32(now, cfg.BlocksPerEra),
		)
		next := protocol.BuildAndEarn
		nextSubperiod = &next

	case ps.PeriodInfo.IsNextPeriod(nextEra):
		if err := d.pushEraReward(era, eraInfo); err != nil {
			return err
		}
		if err := d.endPeriod(ps, eraInfo); err != nil {
			return err
		}
		ps.AdvanceToNextSubperiod(
			astar.SaturatingAddU32(nextEra, 1),
			astar.SaturatingAddU32(now, cfg.VotingSubperiodLength()),
		)
		if err := d.updateCleanupMarker(ps.PeriodNumber()); err != nil {
			return err
		}
		next := protocol.Voting
		nextSubperiod = &next

	default:
		if err := d.pushEraReward(era, eraInfo); err != nil {
			return err
		}
		ps.NextEraStart = astar.SaturatingAddU32(now, cfg.BlocksPerEra)
	}

	ps.Era = nextEra
	eraInfo.MigrateToNextEra(nextSubperiod)
	if err := d.recalculateTierConfig(); err != nil {
		return err
	}
	if observer, ok := d.source.(CycleObserver); ok {
		if err := observer.BlockBeforeNewEra(nextEra); err != nil {
			return err
		}
	}
	if err := d.protocolService.Set(ps); err != nil {
		return err
	}
	if err := d.eraInfoService.Set(eraInfo); err != nil {
		return err
	}

	d.emit(NewEraEvent{Era: nextEra})
	if nextSubperiod != nil {
		d.emit(NewSubperiodEvent{Subperiod: *nextSubperiod, Number: ps.PeriodNumber()})
		metricSubperiods().AddWithLabel(1, map[string]string{"subperiod": nextSubperiod.String()})
	}
	metricEra().Set(int64(nextEra))
	metricPeriod().Set(int64(ps.PeriodNumber()))
	metricTotalLocked().Set(units(eraInfo.TotalLocked))
	metricTotalStaked().Set(units(eraInfo.CurrentStaked()))

	logger.Info("new era", "era", nextEra, "period", ps.PeriodNumber(), "subperiod", ps.Subperiod(), "nextEraStart", ps.NextEraStart)
	return nil
}

// pushEraReward records the reward pools of the finished build&earn era.
func (d *DappStaking) pushEraReward(era uint32, eraInfo *erainfo.EraInfo) error {
	staked := eraInfo.CurrentStaked()
	stakerPool, dappPool, err := d.source.StakerAndDAppRewardPools(staked)
	if err != nil {
		return errors.Wrap(err, "reward pools")
	}
	return d.rewardsService.Push(era, rewards.EraReward{
		StakerRewardPool: stakerPool,
		Staked:           staked,
		DAppRewardPool:   dappPool,
	})
}

// endPeriod records the period end and ranks the staked dApps into tiers.
func (d *DappStaking) endPeriod(ps *protocol.ProtocolState, eraInfo *erainfo.EraInfo) error {
	era, period := ps.Era, ps.PeriodNumber()

	bonus, err := d.source.BonusRewardPool()
	if err != nil {
		return errors.Wrap(err, "bonus pool")
	}
	if err := d.rewardsService.SetPeriodEnd(period, &rewards.PeriodEndInfo{
		BonusRewardPool: bonus,
		TotalVpStake:    astar.Copy(eraInfo.CurrentStakeAmount.Voting),
		FinalEra:        era,
	}); err != nil {
		return err
	}

	start, err := d.rewardsService.BuildAndEarnStartEra()
	if err != nil {
		return err
	}
	pool, err := d.rewardsService.DAppRewardPool(start, era)
	if err != nil {
		return err
	}
	assigned, err := d.assignTiers(era, period, pool)
	if err != nil {
		return err
	}
	if err := d.store.dappTiers.Set(storage.U32Key(period), assigned); err != nil {
		return err
	}
	metricTieredDApps().Observe(int64(len(assigned.DApps)))
	logger.Info("period ended", "period", period, "finalEra", era, "bonusPool", bonus, "dappPool", pool, "tiered", len(assigned.DApps))
	return nil
}

// assignTiers ranks the registered dApps by their stake at era.
func (d *DappStaking) assignTiers(era, period uint32, pool *big.Int) (*tiers.DAppTierRewards, error) {
	cfg, err := d.store.tierConfiguration()
	if err != nil {
		return nil, err
	}
	var staked []tiers.StakedDApp
	err = d.store.registered.Iter(func(contract astar.Address) error {
		dapp, err := d.store.dapp(contract)
		if err != nil || dapp == nil {
			return err
		}
		cs, err := d.store.contractStake(dapp.ID)
		if err != nil {
			return err
		}
		if amount, ok := cs.Get(era, period); ok {
			staked = append(staked, tiers.StakedDApp{ID: dapp.ID, Stake: amount.Total()})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tiers.Assign(staked, cfg, pool, period, d.cfg.RankingEnabled), nil
}

// updateCleanupMarker moves the validity bounds of the reward history once
// period started.
func (d *DappStaking) updateCleanupMarker(period uint32) error {
	marker, err := d.rewardsService.CleanupMarker()
	if err != nil {
		return err
	}
	marker.OldestValidPeriod = d.oldestClaimablePeriod(period)
	if marker.OldestValidPeriod > 1 {
		end, ok, err := d.rewardsService.PeriodEnd(marker.OldestValidPeriod - 1)
		if err != nil {
			return err
		}
		if ok {
			marker.OldestValidEra = astar.SaturatingAddU32(end.FinalEra, 1)
		}
	}
	return d.rewardsService.SetCleanupMarker(marker)
}

// cleanupStep removes one expired era reward span, or the tier rewards and
// end record of one expired period.
func (d *DappStaking) cleanupStep() error {
	marker, err := d.rewardsService.CleanupMarker()
	if err != nil {
		return err
	}
	spanLength := d.rewardsService.SpanLength()
	if !marker.HasPendingCleanups(spanLength) {
		return nil
	}

	if marker.EraRewardIndex+spanLength <= marker.OldestValidEra {
		d.rewardsService.RemoveSpan(marker.EraRewardIndex)
		logger.Debug("removed era reward span", "index", marker.EraRewardIndex)
		marker.EraRewardIndex += spanLength
	} else {
		d.store.dappTiers.Delete(storage.U32Key(marker.DAppTiersIndex))
		d.rewardsService.RemovePeriodEnd(marker.DAppTiersIndex)
		logger.Debug("removed period history", "period", marker.DAppTiersIndex)
		marker.DAppTiersIndex++
	}
	return d.rewardsService.SetCleanupMarker(marker)
}
