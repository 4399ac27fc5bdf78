// Copyright (c) 2018 The VeChainThor developers
// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"

	"github.com/astar-network/astar/astar"
)

func RandAddress() (addr astar.Address) {
	rand.Read(addr[:])
	return
}

func RandomHash() (b astar.Bytes32) {
	rand.Read(b[:])
	return
}
