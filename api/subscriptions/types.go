// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"github.com/astar-network/astar/runtime"
)

// EventMessage is an event located in its block. Extrinsic is nil for the
// events of the block hooks.
type EventMessage struct {
	Block     uint32  `json:"block"`
	Extrinsic *uint32 `json:"extrinsic"`
	*runtime.EventRecord
}
