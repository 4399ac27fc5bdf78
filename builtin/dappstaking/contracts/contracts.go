// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contracts

import (
	"math/big"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/dappstaking/ledger"
	"github.com/astar-network/astar/builtin/dappstaking/protocol"
)

// DAppInfo is the registration record of a smart contract.
type DAppInfo struct {
	Owner             astar.Address `json:"owner"`
	ID                uint16        `json:"id"`
	RewardBeneficiary astar.Address `json:"rewardBeneficiary"`
	Deposit           *big.Int      `json:"deposit"`
	// UnregisteredEra is set once the dApp is unregistered; such entries are
	// kept so the contract can't be registered again.
	UnregisteredEra uint32 `json:"unregisteredEra,omitempty"`
}

// IsRegistered reports whether the dApp is still operated.
func (d *DAppInfo) IsRegistered() bool {
	return d.UnregisteredEra == 0
}

// Beneficiary returns the account receiving dApp rewards.
func (d *DAppInfo) Beneficiary() astar.Address {
	if d.RewardBeneficiary.IsZero() {
		return d.Owner
	}
	return d.RewardBeneficiary
}

// ContractStakeAmount aggregates every stake on one dApp. Staked is valid
// from Staked.Era on, StakedFuture from the next era.
type ContractStakeAmount struct {
	Staked       ledger.StakeAmount  `json:"staked"`
	StakedFuture *ledger.StakeAmount `json:"stakedFuture" rlp:"nil"`
	StakerCount  uint32              `json:"stakerCount"`
}

// NewContractStakeAmount returns an empty aggregate.
func NewContractStakeAmount() *ContractStakeAmount {
	return &ContractStakeAmount{Staked: ledger.NewStakeAmount(0, 0)}
}

// Normalize replaces nil amounts left by decoding an absent entry.
func (c *ContractStakeAmount) Normalize() *ContractStakeAmount {
	if c.Staked.Voting == nil {
		c.Staked = ledger.NewStakeAmount(c.Staked.Era, c.Staked.Period)
	}
	return c
}

// IsEmpty reports whether nothing is staked.
func (c *ContractStakeAmount) IsEmpty() bool {
	return c.Staked.IsEmpty() && (c.StakedFuture == nil || c.StakedFuture.IsEmpty())
}

// Roll promotes the future amount once it became valid at era.
func (c *ContractStakeAmount) Roll(era uint32) {
	if c.StakedFuture != nil && c.StakedFuture.Era <= era {
		c.Staked = *c.StakedFuture
		c.StakedFuture = nil
	}
}

// Get returns the amount valid at era of period.
func (c *ContractStakeAmount) Get(era, period uint32) (ledger.StakeAmount, bool) {
	if c.StakedFuture != nil && c.StakedFuture.Era <= era && c.StakedFuture.Period == period {
		return *c.StakedFuture, true
	}
	if c.Staked.Era <= era && c.Staked.Period == period && !c.Staked.IsEmpty() {
		return c.Staked, true
	}
	return ledger.StakeAmount{}, false
}

// TotalStaked returns the latest amount of period.
func (c *ContractStakeAmount) TotalStaked(period uint32) *big.Int {
	if c.StakedFuture != nil && c.StakedFuture.Period == period {
		return c.StakedFuture.Total()
	}
	if c.Staked.Period == period {
		return c.Staked.Total()
	}
	return astar.Zero()
}

// Stake adds amount staked at era, valid from the next era. The aggregate of
// an older period is discarded first.
func (c *ContractStakeAmount) Stake(amount *big.Int, era uint32, info protocol.PeriodInfo) {
	c.Roll(era)
	if c.Staked.Period != info.Number {
		c.Staked = ledger.NewStakeAmount(era, info.Number)
		c.StakedFuture = nil
		c.StakerCount = 0
	}
	if c.StakedFuture == nil {
		future := c.Staked.Copy()
		c.StakedFuture = &future
	}
	c.StakedFuture.Era = astar.SaturatingAddU32(era, 1)
	c.StakedFuture.Period = info.Number
	c.StakedFuture.Add(amount, info.Subperiod)
}

// Unstake removes the parts computed for one staker.
func (c *ContractStakeAmount) Unstake(current, future ledger.StakeAmount, era, period uint32) {
	c.Roll(era)
	if c.Staked.Period != period {
		return
	}
	if c.StakedFuture != nil {
		c.Staked.SubtractParts(current)
		c.StakedFuture.SubtractParts(future)
	} else {
		c.Staked.SubtractParts(future)
	}
}
