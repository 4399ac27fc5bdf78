// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dappstaking

import (
	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/dappstaking/contracts"
	"github.com/astar-network/astar/builtin/dappstaking/erainfo"
	"github.com/astar-network/astar/builtin/dappstaking/ledger"
	"github.com/astar-network/astar/builtin/dappstaking/protocol"
	"github.com/astar-network/astar/builtin/dappstaking/rewards"
	"github.com/astar-network/astar/builtin/dappstaking/tiers"
	"github.com/astar-network/astar/builtin/storage"
)

// ProtocolState returns the current era, period and subperiod.
func (d *DappStaking) ProtocolState() (*protocol.ProtocolState, error) {
	return d.protocolService.Get()
}

// CurrentEra returns the current era number.
func (d *DappStaking) CurrentEra() (uint32, error) {
	ps, err := d.protocolService.Get()
	if err != nil {
		return 0, err
	}
	return ps.Era, nil
}

// IsStaked reports whether account has anything locked in dApp staking.
func (d *DappStaking) IsStaked(account astar.Address) (bool, error) {
	l, err := d.store.ledger(account)
	if err != nil {
		return false, err
	}
	return !l.IsEmpty(), nil
}

// DApp returns the registration record of contract, nil if never registered.
func (d *DappStaking) DApp(contract astar.Address) (*contracts.DAppInfo, error) {
	return d.store.dapp(contract)
}

// DApps returns the registered smart contracts.
func (d *DappStaking) DApps() ([]astar.Address, error) {
	return d.store.registered.Slice()
}

// DAppCount returns the number of registered dApps.
func (d *DappStaking) DAppCount() (uint32, error) {
	return d.store.dappCount.Get()
}

func (d *DappStaking) Ledger(account astar.Address) (*ledger.AccountLedger, error) {
	return d.store.ledger(account)
}

// StakerInfo returns the stake of account on contract.
func (d *DappStaking) StakerInfo(account, contract astar.Address) (*ledger.StakerInfo, bool, error) {
	return d.store.stakerInfo(account, contract)
}

// StakerInfos returns every staker info of account keyed by contract.
func (d *DappStaking) StakerInfos(account astar.Address) (map[astar.Address]*ledger.StakerInfo, error) {
	infos := make(map[astar.Address]*ledger.StakerInfo)
	err := d.store.stakedContracts(account).Iter(func(contract astar.Address) error {
		info, ok, err := d.store.stakerInfo(account, contract)
		if ok {
			infos[contract] = info
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return infos, nil
}

// ContractStake returns the aggregated stake on the dApp with id.
func (d *DappStaking) ContractStake(id uint16) (*contracts.ContractStakeAmount, error) {
	return d.store.contractStake(id)
}

func (d *DappStaking) EraInfo() (*erainfo.EraInfo, error) {
	return d.eraInfoService.Get()
}

// EraReward returns the reward pools of a finished era.
func (d *DappStaking) EraReward(era uint32) (rewards.EraReward, bool, error) {
	return d.rewardsService.EraReward(era)
}

func (d *DappStaking) PeriodEnd(period uint32) (*rewards.PeriodEndInfo, bool, error) {
	return d.rewardsService.PeriodEnd(period)
}

func (d *DappStaking) CleanupMarker() (*rewards.CleanupMarker, error) {
	return d.rewardsService.CleanupMarker()
}

// DAppTiers returns the tier assignment of a finished period.
func (d *DappStaking) DAppTiers(period uint32) (*tiers.DAppTierRewards, bool, error) {
	return d.store.dappTiers.Get(storage.U32Key(period))
}

// TierConfig returns the tier configuration of the current era.
func (d *DappStaking) TierConfig() (*tiers.TiersConfiguration, error) {
	return d.store.tierConfiguration()
}

func (d *DappStaking) StaticTierParams() (*tiers.TierParameters, error) {
	return d.store.staticTierParams()
}

// StorageVersion returns the version of the stored layout.
func (d *DappStaking) StorageVersion() (uint32, error) {
	return d.store.version.Get()
}

// SetStorageVersion records the layout version reached by a migration.
func (d *DappStaking) SetStorageVersion(v uint32) error {
	return d.store.version.Set(v)
}
