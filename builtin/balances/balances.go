// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package balances is the native currency provider: free, reserved and frozen
// balances per account plus the total issuance.
package balances

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/reverts"
	"github.com/astar-network/astar/log"
	"github.com/astar-network/astar/state"
)

var logger = log.WithContext("pkg", "balances")

// Balances implements the currency and freeze operations over state accounts.
type Balances struct {
	state *state.State
}

// New creates a balances instance over st.
func New(st *state.State) *Balances {
	return &Balances{state: st}
}

// Account returns the balance record of addr.
func (b *Balances) Account(addr astar.Address) (*state.Account, error) {
	return b.state.GetAccount(addr)
}

// Free returns the free balance of addr, frozen part included.
func (b *Balances) Free(addr astar.Address) (*big.Int, error) {
	acc, err := b.state.GetAccount(addr)
	if err != nil {
		return nil, err
	}
	return acc.Free, nil
}

// Usable returns the free balance of addr that is not frozen.
func (b *Balances) Usable(addr astar.Address) (*big.Int, error) {
	acc, err := b.state.GetAccount(addr)
	if err != nil {
		return nil, err
	}
	return acc.Usable(), nil
}

// Freeze sets the frozen amount of addr to total. Frozen funds stay in the
// free balance but can't be moved.
func (b *Balances) Freeze(addr astar.Address, total *big.Int) error {
	acc, err := b.state.GetAccount(addr)
	if err != nil {
		return err
	}
	if total.Cmp(acc.Free) > 0 {
		return reverts.ErrLiquidityRestricted
	}
	acc.Frozen = astar.Copy(total)
	b.state.SetAccount(addr, acc)
	return nil
}

// Thaw releases every frozen fund of addr.
func (b *Balances) Thaw(addr astar.Address) error {
	acc, err := b.state.GetAccount(addr)
	if err != nil {
		return err
	}
	acc.Frozen = astar.Zero()
	b.state.SetAccount(addr, acc)
	return nil
}

// Reserve moves amount from the usable balance into the reserved balance.
func (b *Balances) Reserve(addr astar.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return reverts.ErrInvalidAmount
	}
	acc, err := b.state.GetAccount(addr)
	if err != nil {
		return err
	}
	if acc.Usable().Cmp(amount) < 0 {
		return reverts.ErrInsufficientBalance
	}
	acc.Free = astar.SaturatingSub(acc.Free, amount)
	acc.Reserved = astar.SaturatingAdd(acc.Reserved, amount)
	b.state.SetAccount(addr, acc)
	return nil
}

// Unreserve moves up to amount back from reserved to free, returning the
// amount actually moved.
func (b *Balances) Unreserve(addr astar.Address, amount *big.Int) (*big.Int, error) {
	if !astar.IsPositive(amount) {
		return astar.Zero(), nil
	}
	acc, err := b.state.GetAccount(addr)
	if err != nil {
		return nil, err
	}
	moved := astar.Min(acc.Reserved, amount)
	acc.Reserved = astar.SaturatingSub(acc.Reserved, moved)
	acc.Free = astar.SaturatingAdd(acc.Free, moved)
	b.state.SetAccount(addr, acc)
	return moved, nil
}

// Transfer moves amount of usable balance from one account to another.
func (b *Balances) Transfer(from, to astar.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return reverts.ErrInvalidAmount
	}
	if amount.Sign() == 0 || from == to {
		return nil
	}
	src, err := b.state.GetAccount(from)
	if err != nil {
		return err
	}
	if src.Usable().Cmp(amount) < 0 {
		return reverts.ErrInsufficientBalance
	}
	dst, err := b.state.GetAccount(to)
	if err != nil {
		return err
	}
	src.Free = astar.SaturatingSub(src.Free, amount)
	dst.Free = astar.SaturatingAdd(dst.Free, amount)
	b.state.SetAccount(from, src)
	b.state.SetAccount(to, dst)

	logger.Debug("transferred", "from", from, "to", to, "amount", amount)
	return nil
}

// Deposit mints amount into the free balance of addr, increasing the total issuance.
func (b *Balances) Deposit(addr astar.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return reverts.ErrInvalidAmount
	}
	if amount.Sign() == 0 {
		return nil
	}
	issuance, err := b.state.GetTotalIssuance()
	if err != nil {
		return err
	}
	if new(big.Int).Add(issuance, amount).Cmp(astar.MaxBalance) > 0 {
		return errors.Errorf("issuance overflow minting %v", amount)
	}
	acc, err := b.state.GetAccount(addr)
	if err != nil {
		return err
	}
	acc.Free = astar.SaturatingAdd(acc.Free, amount)
	b.state.SetAccount(addr, acc)
	b.state.SetTotalIssuance(new(big.Int).Add(issuance, amount))
	return nil
}

// TotalIssuance returns the amount of native currency in existence.
func (b *Balances) TotalIssuance() (*big.Int, error) {
	return b.state.GetTotalIssuance()
}
