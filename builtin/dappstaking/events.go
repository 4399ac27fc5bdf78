// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dappstaking

import (
	"math/big"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/dappstaking/protocol"
	"github.com/astar-network/astar/builtin/dappstaking/tiers"
)

// Event is emitted by a successful operation. Events of a reverted call are
// discarded by the caller together with its state changes.
type Event interface {
	Name() string
}

type MaintenanceModeEvent struct {
	Enabled bool `json:"enabled"`
}

type NewEraEvent struct {
	Era uint32 `json:"era"`
}

type NewSubperiodEvent struct {
	Subperiod protocol.Subperiod `json:"subperiod"`
	Number    uint32             `json:"number"`
}

type DAppRegisteredEvent struct {
	Owner         astar.Address `json:"owner"`
	SmartContract astar.Address `json:"smartContract"`
	DAppID        uint16        `json:"dappId"`
}

type DAppRewardDestinationUpdatedEvent struct {
	SmartContract astar.Address  `json:"smartContract"`
	Beneficiary   *astar.Address `json:"beneficiary"`
}

type DAppOwnerChangedEvent struct {
	SmartContract astar.Address `json:"smartContract"`
	NewOwner      astar.Address `json:"newOwner"`
}

type DAppUnregisteredEvent struct {
	SmartContract astar.Address `json:"smartContract"`
	Era           uint32        `json:"era"`
}

type LockedEvent struct {
	Account astar.Address `json:"account"`
	Amount  *big.Int      `json:"amount"`
}

type UnlockingEvent struct {
	Account astar.Address `json:"account"`
	Amount  *big.Int      `json:"amount"`
}

type ClaimedUnlockedEvent struct {
	Account astar.Address `json:"account"`
	Amount  *big.Int      `json:"amount"`
}

type RelockEvent struct {
	Account astar.Address `json:"account"`
	Amount  *big.Int      `json:"amount"`
}

type StakeEvent struct {
	Account       astar.Address `json:"account"`
	SmartContract astar.Address `json:"smartContract"`
	Amount        *big.Int      `json:"amount"`
}

type UnstakeEvent struct {
	Account       astar.Address `json:"account"`
	SmartContract astar.Address `json:"smartContract"`
	Amount        *big.Int      `json:"amount"`
}

type RewardEvent struct {
	Account astar.Address `json:"account"`
	Era     uint32        `json:"era"`
	Amount  *big.Int      `json:"amount"`
}

// RewardExpiredEvent reports an era skipped by a staker claim.
type RewardExpiredEvent struct {
	Account astar.Address `json:"account"`
	Era     uint32        `json:"era"`
	Period  uint32        `json:"period"`
}

type BonusRewardEvent struct {
	Account       astar.Address `json:"account"`
	SmartContract astar.Address `json:"smartContract"`
	Period        uint32        `json:"period"`
	Amount        *big.Int      `json:"amount"`
}

type DAppRewardEvent struct {
	Beneficiary   astar.Address    `json:"beneficiary"`
	SmartContract astar.Address    `json:"smartContract"`
	RankedTier    tiers.RankedTier `json:"rankedTier"`
	Period        uint32           `json:"period"`
	Amount        *big.Int         `json:"amount"`
}

type UnstakeFromUnregisteredEvent struct {
	Account       astar.Address `json:"account"`
	SmartContract astar.Address `json:"smartContract"`
	Amount        *big.Int      `json:"amount"`
}

type ExpiredEntriesRemovedEvent struct {
	Account astar.Address `json:"account"`
	Count   uint32        `json:"count"`
}

type ForceEvent struct {
	ForcingType protocol.ForcingType `json:"forcingType"`
}

type NewTierParametersEvent struct {
	Params *tiers.TierParameters `json:"params"`
}

func (MaintenanceModeEvent) Name() string              { return "MaintenanceMode" }
func (NewEraEvent) Name() string                       { return "NewEra" }
func (NewSubperiodEvent) Name() string                 { return "NewSubperiod" }
func (DAppRegisteredEvent) Name() string               { return "DAppRegistered" }
func (DAppRewardDestinationUpdatedEvent) Name() string { return "DAppRewardDestinationUpdated" }
func (DAppOwnerChangedEvent) Name() string             { return "DAppOwnerChanged" }
func (DAppUnregisteredEvent) Name() string             { return "DAppUnregistered" }
func (LockedEvent) Name() string                       { return "Locked" }
func (UnlockingEvent) Name() string                    { return "Unlocking" }
func (ClaimedUnlockedEvent) Name() string              { return "ClaimedUnlocked" }
func (RelockEvent) Name() string                       { return "Relock" }
func (StakeEvent) Name() string                        { return "Stake" }
func (UnstakeEvent) Name() string                      { return "Unstake" }
func (RewardEvent) Name() string                       { return "Reward" }
func (RewardExpiredEvent) Name() string                { return "RewardExpired" }
func (BonusRewardEvent) Name() string                  { return "BonusReward" }
func (DAppRewardEvent) Name() string                   { return "DAppReward" }
func (UnstakeFromUnregisteredEvent) Name() string      { return "UnstakeFromUnregistered" }
func (ExpiredEntriesRemovedEvent) Name() string        { return "ExpiredEntriesRemoved" }
func (ForceEvent) Name() string                        { return "Force" }
func (NewTierParametersEvent) Name() string            { return "NewTierParameters" }
