// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"

	"github.com/astar-network/astar/astar"
)

// Account is the balance record of an address.
// Frozen is a restriction on Free and never exceeds it; Reserved is held
// aside and not part of Free.
type Account struct {
	Free     *big.Int
	Reserved *big.Int
	Frozen   *big.Int
}

func emptyAccount() *Account {
	return &Account{Free: new(big.Int), Reserved: new(big.Int), Frozen: new(big.Int)}
}

// IsEmpty returns if an account is empty.
func (a *Account) IsEmpty() bool {
	return astar.IsZero(a.Free) && astar.IsZero(a.Reserved) && astar.IsZero(a.Frozen)
}

// Usable returns the part of free balance not frozen.
func (a *Account) Usable() *big.Int {
	return astar.SaturatingSub(a.Free, a.Frozen)
}

// Total returns free plus reserved balance.
func (a *Account) Total() *big.Int {
	return astar.SaturatingAdd(a.Free, a.Reserved)
}

func (a *Account) copy() *Account {
	return &Account{
		Free:     astar.Copy(a.Free),
		Reserved: astar.Copy(a.Reserved),
		Frozen:   astar.Copy(a.Frozen),
	}
}
