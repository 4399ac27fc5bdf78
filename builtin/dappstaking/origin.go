// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dappstaking

import (
	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/reverts"
)

// Origin is the dispatcher of a call: a signed account or the privileged root.
type Origin struct {
	Signer astar.Address
	Root   bool
}

// Signed returns the origin of an account.
func Signed(account astar.Address) Origin {
	return Origin{Signer: account}
}

// RootOrigin returns the privileged origin.
func RootOrigin() Origin {
	return Origin{Root: true}
}

func (o Origin) ensureRoot() error {
	if !o.Root {
		return reverts.ErrBadOrigin
	}
	return nil
}

func (o Origin) ensureSigned() (astar.Address, error) {
	if o.Root || o.Signer.IsZero() {
		return astar.Address{}, reverts.ErrBadOrigin
	}
	return o.Signer, nil
}
