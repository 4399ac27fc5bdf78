// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dappstaking

import (
	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/dappstaking/contracts"
	"github.com/astar-network/astar/builtin/dappstaking/ledger"
	"github.com/astar-network/astar/builtin/dappstaking/tiers"
	"github.com/astar-network/astar/builtin/storage"
)

var (
	slotDAppInfos        = storage.Slot("integrated-dapps")
	slotDAppIDs          = storage.Slot("dapp-ids")
	slotRegisteredDApps  = storage.Slot("registered-dapps")
	slotNextDAppID       = storage.Slot("next-dapp-id")
	slotDAppCount        = storage.Slot("integrated-dapps-count")
	slotContractStake    = storage.Slot("contract-stake")
	slotLedger           = storage.Slot("ledger")
	slotStakerInfo       = storage.Slot("staker-info")
	slotStakedContracts  = storage.Slot("staked-contracts")
	slotDAppTiers        = storage.Slot("dapp-tiers")
	slotTierConfig       = storage.Slot("tier-config")
	slotStaticTierParams = storage.Slot("static-tier-params")
	slotStorageVersion   = storage.Slot("storage-version")
)

// store groups the storage items owned by the engine besides those of the
// sub-package services.
type store struct {
	sctx *storage.Context

	dapps          *storage.Mapping[astar.Address, *contracts.DAppInfo]
	dappIDs        *storage.Mapping[storage.U16Key, astar.Address]
	registered     *storage.LinkedList
	nextDAppID     *storage.Value[uint16]
	dappCount      *storage.Value[uint32]
	contractStakes *storage.Mapping[storage.U16Key, *contracts.ContractStakeAmount]

	ledgers     *storage.Mapping[astar.Address, *ledger.AccountLedger]
	stakerInfos *storage.Mapping[storage.PairKey, *ledger.StakerInfo]

	dappTiers  *storage.Mapping[storage.U32Key, *tiers.DAppTierRewards]
	tierConfig *storage.Value[*tiers.TiersConfiguration]
	tierParams *storage.Value[*tiers.TierParameters]
	version    *storage.Value[uint32]
}

func newStore(sctx *storage.Context) *store {
	return &store{
		sctx:           sctx,
		dapps:          storage.NewMapping[astar.Address, *contracts.DAppInfo](sctx, slotDAppInfos),
		dappIDs:        storage.NewMapping[storage.U16Key, astar.Address](sctx, slotDAppIDs),
		registered:     storage.NewLinkedList(sctx, slotRegisteredDApps),
		nextDAppID:     storage.NewValue[uint16](sctx, slotNextDAppID),
		dappCount:      storage.NewValue[uint32](sctx, slotDAppCount),
		contractStakes: storage.NewMapping[storage.U16Key, *contracts.ContractStakeAmount](sctx, slotContractStake),
		ledgers:        storage.NewMapping[astar.Address, *ledger.AccountLedger](sctx, slotLedger),
		stakerInfos:    storage.NewMapping[storage.PairKey, *ledger.StakerInfo](sctx, slotStakerInfo),
		dappTiers:      storage.NewMapping[storage.U32Key, *tiers.DAppTierRewards](sctx, slotDAppTiers),
		tierConfig:     storage.NewValue[*tiers.TiersConfiguration](sctx, slotTierConfig),
		tierParams:     storage.NewValue[*tiers.TierParameters](sctx, slotStaticTierParams),
		version:        storage.NewValue[uint32](sctx, slotStorageVersion),
	}
}

// stakedContracts lists the contracts account holds staker info for.
func (s *store) stakedContracts(account astar.Address) *storage.LinkedList {
	return storage.NewLinkedList(s.sctx, astar.Blake2b(slotStakedContracts.Bytes(), account.Bytes()))
}

// dapp returns the info of contract, nil when it was never registered.
func (s *store) dapp(contract astar.Address) (*contracts.DAppInfo, error) {
	info, ok, err := s.dapps.Get(contract)
	if err != nil || !ok {
		return nil, err
	}
	return info, nil
}

// registeredDApp returns the info of contract when it is registered.
func (s *store) registeredDApp(contract astar.Address) (*contracts.DAppInfo, bool, error) {
	info, err := s.dapp(contract)
	if err != nil || info == nil || !info.IsRegistered() {
		return nil, false, err
	}
	return info, true, nil
}

func (s *store) ledger(account astar.Address) (*ledger.AccountLedger, error) {
	l, _, err := s.ledgers.Get(account)
	if err != nil {
		return nil, err
	}
	return l.Normalize(), nil
}

// setLedger stores l, removing it once empty.
func (s *store) setLedger(account astar.Address, l *ledger.AccountLedger) error {
	if l.IsEmpty() {
		s.ledgers.Delete(account)
		return nil
	}
	return s.ledgers.Set(account, l)
}

func (s *store) stakerInfo(account, contract astar.Address) (*ledger.StakerInfo, bool, error) {
	return s.stakerInfos.Get(storage.PairKey{First: account, Second: contract})
}

func (s *store) setStakerInfo(account, contract astar.Address, info *ledger.StakerInfo) error {
	return s.stakerInfos.Set(storage.PairKey{First: account, Second: contract}, info)
}

func (s *store) removeStakerInfo(account, contract astar.Address) error {
	s.stakerInfos.Delete(storage.PairKey{First: account, Second: contract})
	return s.stakedContracts(account).Remove(contract)
}

func (s *store) contractStake(id uint16) (*contracts.ContractStakeAmount, error) {
	c, _, err := s.contractStakes.Get(storage.U16Key(id))
	if err != nil {
		return nil, err
	}
	return c.Normalize(), nil
}

func (s *store) setContractStake(id uint16, c *contracts.ContractStakeAmount) error {
	return s.contractStakes.Set(storage.U16Key(id), c)
}

func (s *store) tierConfiguration() (*tiers.TiersConfiguration, error) {
	return s.tierConfig.Get()
}

func (s *store) staticTierParams() (*tiers.TierParameters, error) {
	return s.tierParams.Get()
}
