// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dappstaking

import (
	"math"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/dappstaking/contracts"
	"github.com/astar-network/astar/builtin/reverts"
	"github.com/astar-network/astar/builtin/storage"
)

// Register integrates contract as a dApp owned by owner and reserves the
// registration deposit from owner. The origin is owner itself or root.
func (d *DappStaking) Register(origin Origin, owner, contract astar.Address) error {
	logger.Debug("registering dapp", "owner", owner, "contract", contract)

	if !origin.Root && origin.Signer != owner {
		return reverts.ErrBadOrigin
	}
	if _, err := d.enabledState(); err != nil {
		return err
	}
	if contract.IsZero() || owner.IsZero() {
		return reverts.ErrInvalidSmartContract
	}

	existing, err := d.store.dapp(contract)
	if err != nil {
		return err
	}
	if existing != nil {
		return reverts.ErrContractAlreadyRegistered
	}
	count, err := d.store.dappCount.Get()
	if err != nil {
		return err
	}
	if count >= d.cfg.MaxNumberOfContracts {
		return reverts.ErrExceededMaxNumberOfContracts
	}
	id, err := d.store.nextDAppID.Get()
	if err != nil {
		return err
	}
	if id == math.MaxUint16 {
		return reverts.ErrNewDAppIdUnavailable
	}

	if err := d.currency.Reserve(owner, d.cfg.RegistrationDeposit); err != nil {
		return err
	}
	info := &contracts.DAppInfo{
		Owner:   owner,
		ID:      id,
		Deposit: astar.Copy(d.cfg.RegistrationDeposit),
	}
	if err := d.store.dapps.Set(contract, info); err != nil {
		return err
	}
	if err := d.store.dappIDs.Set(storage.U16Key(id), contract); err != nil {
		return err
	}
	if err := d.store.registered.Add(contract); err != nil {
		return err
	}
	if err := d.store.nextDAppID.Set(id + 1); err != nil {
		return err
	}
	if err := d.store.dappCount.Set(count + 1); err != nil {
		return err
	}

	d.emit(DAppRegisteredEvent{Owner: owner, SmartContract: contract, DAppID: id})
	metricRegisteredDApp().Set(int64(count + 1))
	logger.Info("registered dapp", "contract", contract, "id", id)
	return nil
}

// Unregister removes contract from the registered dApps. Its stakers may
// withdraw with UnstakeFromUnregistered; the contract can't be registered again.
func (d *DappStaking) Unregister(origin Origin, contract astar.Address) error {
	logger.Debug("unregistering dapp", "contract", contract)

	ps, err := d.enabledState()
	if err != nil {
		return err
	}
	info, ok, err := d.store.registeredDApp(contract)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.ErrContractNotFound
	}
	if !origin.Root && origin.Signer != info.Owner {
		return reverts.ErrOriginNotOwner
	}

	info.UnregisteredEra = ps.Era
	deposit := info.Deposit
	info.Deposit = astar.Zero()
	if err := d.store.dapps.Set(contract, info); err != nil {
		return err
	}
	d.store.contractStakes.Delete(storage.U16Key(info.ID))
	if err := d.store.registered.Remove(contract); err != nil {
		return err
	}
	count, err := d.store.dappCount.Get()
	if err != nil {
		return err
	}
	if err := d.store.dappCount.Set(astar.SaturatingSubU32(count, 1)); err != nil {
		return err
	}
	if _, err := d.currency.Unreserve(info.Owner, deposit); err != nil {
		return err
	}

	d.emit(DAppUnregisteredEvent{SmartContract: contract, Era: ps.Era})
	metricRegisteredDApp().Set(int64(astar.SaturatingSubU32(count, 1)))
	logger.Info("unregistered dapp", "contract", contract, "era", ps.Era)
	return nil
}

// SetDAppOwner transfers the ownership of contract, moving the deposit
// reservation to the new owner.
func (d *DappStaking) SetDAppOwner(origin Origin, contract, newOwner astar.Address) error {
	logger.Debug("changing dapp owner", "contract", contract, "newOwner", newOwner)

	if _, err := d.enabledState(); err != nil {
		return err
	}
	if newOwner.IsZero() {
		return reverts.ErrInvalidArgs
	}
	info, ok, err := d.store.registeredDApp(contract)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.ErrContractNotFound
	}
	if !origin.Root && origin.Signer != info.Owner {
		return reverts.ErrOriginNotOwner
	}

	if newOwner != info.Owner {
		moved, err := d.currency.Unreserve(info.Owner, info.Deposit)
		if err != nil {
			return err
		}
		if err := d.currency.Reserve(newOwner, moved); err != nil {
			return err
		}
		info.Deposit = moved
	}
	info.Owner = newOwner
	if err := d.store.dapps.Set(contract, info); err != nil {
		return err
	}

	d.emit(DAppOwnerChangedEvent{SmartContract: contract, NewOwner: newOwner})
	logger.Info("changed dapp owner", "contract", contract, "newOwner", newOwner)
	return nil
}

// SetDAppRewardBeneficiary sets the account receiving the dApp rewards of
// contract. A nil beneficiary pays the owner again.
func (d *DappStaking) SetDAppRewardBeneficiary(origin Origin, contract astar.Address, beneficiary *astar.Address) error {
	logger.Debug("setting dapp beneficiary", "contract", contract, "beneficiary", beneficiary)

	if _, err := d.enabledState(); err != nil {
		return err
	}
	info, ok, err := d.store.registeredDApp(contract)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.ErrContractNotFound
	}
	if origin.Root || origin.Signer != info.Owner {
		return reverts.ErrOriginNotOwner
	}

	info.RewardBeneficiary = astar.Address{}
	if beneficiary != nil {
		info.RewardBeneficiary = *beneficiary
	}
	if err := d.store.dapps.Set(contract, info); err != nil {
		return err
	}

	d.emit(DAppRewardDestinationUpdatedEvent{SmartContract: contract, Beneficiary: beneficiary})
	logger.Info("set dapp beneficiary", "contract", contract)
	return nil
}
