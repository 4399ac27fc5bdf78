// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dappstaking

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/astar-network/astar/builtin/dappstaking/migration"
	"github.com/astar-network/astar/builtin/dappstaking/protocol"
	"github.com/astar-network/astar/builtin/dappstaking/rewards"
	"github.com/astar-network/astar/builtin/dappstaking/tiers"
	"github.com/astar-network/astar/builtin/storage"
	"github.com/astar-network/astar/kv"
	"github.com/astar-network/astar/state"
)

// oldestMigratableVersion is the oldest layout Migrate converts from.
const oldestMigratableVersion uint32 = 6

// legacyStore reads the records whose layout changed since version 6.
type legacyStore struct {
	paramsV6    *storage.Value[*migration.TierParametersV6]
	dappTiersV6 *storage.Mapping[storage.U32Key, *migration.DAppTierRewardsV6]
}

func newLegacyStore(sctx *storage.Context) *legacyStore {
	return &legacyStore{
		paramsV6:    storage.NewValue[*migration.TierParametersV6](sctx, slotStaticTierParams),
		dappTiersV6: storage.NewMapping[storage.U32Key, *migration.DAppTierRewardsV6](sctx, slotDAppTiers),
	}
}

// Migrate upgrades the records to StorageVersion and returns the version
// found before. The stored records are first checked in parallel, each check
// over its own read only state on db, so db must hold the same records as the
// state of the engine.
func (d *DappStaking) Migrate(ctx context.Context, db kv.Getter) (uint32, error) {
	from, err := d.store.version.Get()
	if err != nil {
		return 0, err
	}
	switch {
	case from == StorageVersion:
		return from, nil
	case from > StorageVersion:
		return from, errors.Errorf("storage version %d is newer than %d", from, StorageVersion)
	case from < oldestMigratableVersion:
		return from, errors.Errorf("storage version %d cannot be migrated", from)
	}

	logger.Info("migrating dapp staking storage", "from", from, "to", StorageVersion)
	if err := d.precheck(ctx, db, from); err != nil {
		return from, errors.Wrap(err, "pre check")
	}

	if from < 7 {
		if err := d.migrateV6ToV7(); err != nil {
			return from, errors.Wrap(err, "migrate to v7")
		}
	}
	if err := d.migrateV7ToV8(); err != nil {
		return from, errors.Wrap(err, "migrate to v8")
	}
	if err := d.store.version.Set(StorageVersion); err != nil {
		return from, err
	}
	logger.Info("dapp staking storage migrated", "version", StorageVersion)
	return from, nil
}

// tierRecordPeriods returns the periods which may still hold tier rewards.
func tierRecordPeriods(sctx *storage.Context, spanLength uint32) (first, last uint32, err error) {
	ps, err := protocol.New(sctx).Get()
	if err != nil {
		return 0, 0, err
	}
	marker, err := rewards.New(sctx, spanLength).CleanupMarker()
	if err != nil {
		return 0, 0, err
	}
	return max(marker.DAppTiersIndex, 1), ps.PeriodNumber(), nil
}

func (d *DappStaking) precheck(ctx context.Context, db kv.Getter, from uint32) error {
	address := d.store.sctx.Address()
	view := func() *storage.Context {
		return storage.NewContext(address, state.New(db))
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sctx := view()
		var params *tiers.TierParameters
		if from < 7 {
			v6, err := newLegacyStore(sctx).paramsV6.Get()
			if err != nil {
				return errors.Wrap(err, "decode tier params")
			}
			if v6 == nil {
				return errors.New("missing tier params")
			}
			params = migration.ParamsV6ToV7(v6)
		} else {
			p, err := newStore(sctx).staticTierParams()
			if err != nil {
				return errors.Wrap(err, "decode tier params")
			}
			params = p
		}
		if params == nil || !params.IsValid(d.cfg.NumberOfTiers) {
			return errors.New("invalid tier params")
		}
		return nil
	})
	g.Go(func() error {
		sctx := view()
		first, last, err := tierRecordPeriods(sctx, d.cfg.EraRewardSpanLength)
		if err != nil {
			return err
		}
		legacy := newLegacyStore(sctx)
		for period := first; period < last; period++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if from >= 7 {
				if _, _, err := newStore(sctx).dappTiers.Get(storage.U32Key(period)); err != nil {
					return errors.Wrapf(err, "decode tier rewards of period %d", period)
				}
				continue
			}
			r, ok, err := legacy.dappTiersV6.Get(storage.U32Key(period))
			if err != nil {
				return errors.Wrapf(err, "decode tier rewards of period %d", period)
			}
			if !ok {
				continue
			}
			for _, dapp := range r.DApps {
				if int(dapp.Tier) >= len(r.Rewards) {
					return errors.Errorf("dapp %d of period %d in unknown tier %d", dapp.ID, period, dapp.Tier)
				}
			}
		}
		return nil
	})
	g.Go(func() error {
		issuance, err := view().State().GetTotalIssuance()
		if err != nil {
			return err
		}
		if issuance.Sign() == 0 {
			return errors.New("zero total issuance")
		}
		return nil
	})
	return g.Wait()
}

func (d *DappStaking) migrateV6ToV7() error {
	legacy := newLegacyStore(d.store.sctx)

	v6, err := legacy.paramsV6.Get()
	if err != nil {
		return err
	}
	if err := d.store.tierParams.Set(migration.ParamsV6ToV7(v6)); err != nil {
		return err
	}

	first, last, err := tierRecordPeriods(d.store.sctx, d.cfg.EraRewardSpanLength)
	if err != nil {
		return err
	}
	var converted int
	for period := first; period < last; period++ {
		r, ok, err := legacy.dappTiersV6.Get(storage.U32Key(period))
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := d.store.dappTiers.Set(storage.U32Key(period), migration.TierRewardsV6ToV7(r)); err != nil {
			return err
		}
		converted++
	}
	logger.Info("migrated to v7", "tierRecords", converted)
	return nil
}

func (d *DappStaking) migrateV7ToV8() error {
	old, err := d.store.staticTierParams()
	if err != nil {
		return err
	}
	issuance, err := d.currency.TotalIssuance()
	if err != nil {
		return err
	}
	params, err := migration.ParamsV7ToV8(old, issuance)
	if err != nil {
		return err
	}
	if !params.IsValid(d.cfg.NumberOfTiers) {
		return errors.New("converted tier params are invalid")
	}
	if err := migration.CheckConvertedThresholds(old, params, issuance); err != nil {
		return err
	}

	prev, err := d.store.tierConfiguration()
	if err != nil {
		return err
	}
	price, err := d.oracle.AveragePrice()
	if err != nil {
		return err
	}
	if prev != nil && prev.NumberOfSlots == 0 {
		prev = nil
	}
	cfg := tiers.Calculate(prev, params, price, issuance, d.cfg.MaxNumberOfContracts)
	if err := migration.CheckTierConfig(cfg); err != nil {
		return err
	}

	if err := d.store.tierParams.Set(params); err != nil {
		return err
	}
	if err := d.store.tierConfig.Set(cfg); err != nil {
		return err
	}
	logger.Info("migrated to v8", "slots", cfg.NumberOfSlots, "thresholds", cfg.TierThresholds)
	return nil
}
