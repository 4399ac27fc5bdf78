// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"encoding/binary"

	"github.com/astar-network/astar/astar"
)

// Key is anything usable as a mapping key.
type Key interface {
	Bytes() []byte
}

// U16Key is a uint16 mapping key.
type U16Key uint16

func (k U16Key) Bytes() []byte {
	return binary.BigEndian.AppendUint16(nil, uint16(k))
}

// U32Key is a uint32 mapping key.
type U32Key uint32

func (k U32Key) Bytes() []byte {
	return binary.BigEndian.AppendUint32(nil, uint32(k))
}

// PairKey is a composite key of two addresses.
type PairKey struct {
	First  astar.Address
	Second astar.Address
}

func (k PairKey) Bytes() []byte {
	return append(k.First.Bytes(), k.Second.Bytes()...)
}

// Slot derives a storage position from a human readable name.
func Slot(name string) astar.Bytes32 {
	return astar.BytesToBytes32([]byte(name))
}
