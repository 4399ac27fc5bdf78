// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dappstaking

import (
	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/dappstaking/protocol"
	"github.com/astar-network/astar/builtin/dappstaking/tiers"
	"github.com/astar-network/astar/builtin/reverts"
)

// SetMaintenanceMode enables or disables every other operation. It remains
// callable in maintenance.
func (d *DappStaking) SetMaintenanceMode(origin Origin, enabled bool) error {
	if err := origin.ensureRoot(); err != nil {
		return err
	}
	ps, err := d.protocolService.Get()
	if err != nil {
		return err
	}
	ps.Maintenance = enabled
	if err := d.protocolService.Set(ps); err != nil {
		return err
	}
	d.emit(MaintenanceModeEvent{Enabled: enabled})
	logger.Info("maintenance mode changed", "enabled", enabled)
	return nil
}

// SetStaticTierParams replaces the tier parameters; the tier configuration
// picks them up at the next era.
func (d *DappStaking) SetStaticTierParams(origin Origin, params *tiers.TierParameters) error {
	if err := origin.ensureRoot(); err != nil {
		return err
	}
	if _, err := d.enabledState(); err != nil {
		return err
	}
	if params == nil || !params.IsValid(d.cfg.NumberOfTiers) {
		return reverts.ErrInvalidTierParams
	}
	if err := d.store.tierParams.Set(params); err != nil {
		return err
	}
	d.emit(NewTierParametersEvent{Params: params.Copy()})
	logger.Info("tier parameters changed", "tiers", len(params.RewardPortion))
	return nil
}

// Force ends the current era, or the current subperiod, at the next block.
func (d *DappStaking) Force(origin Origin, forcing protocol.ForcingType, now uint32) error {
	if err := origin.ensureRoot(); err != nil {
		return err
	}
	ps, err := d.enabledState()
	if err != nil {
		return err
	}
	ps.NextEraStart = astar.SaturatingAddU32(now, 1)
	if forcing == protocol.ForceSubperiod {
		ps.PeriodInfo.SubperiodEndEra = astar.SaturatingAddU32(ps.Era, 1)
	}
	if err := d.protocolService.Set(ps); err != nil {
		return err
	}
	d.emit(ForceEvent{ForcingType: forcing})
	logger.Info("forced", "type", forcing, "nextEraStart", ps.NextEraStart)
	return nil
}
