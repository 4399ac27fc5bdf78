// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/astar-network/astar/astar"
)

// Value is a single typed storage slot.
type Value[V any] struct {
	context *Context
	pos     astar.Bytes32
}

func NewValue[V any](context *Context, pos astar.Bytes32) *Value[V] {
	return &Value[V]{context: context, pos: pos}
}

// Get returns the stored value, or the zero value when the slot is empty.
func (v *Value[V]) Get() (value V, err error) {
	exists := false
	err = v.context.state.DecodeStorage(v.context.address, v.pos, func(raw []byte) error {
		v.context.meter.Read(len(raw))
		if len(raw) == 0 {
			return nil
		}
		exists = true
		return rlp.DecodeBytes(raw, &value)
	})
	if err == nil && !exists {
		value = zero[V]()
	}
	return
}

// Exists reports whether the slot holds a value.
func (v *Value[V]) Exists() (bool, error) {
	raw, err := v.context.state.GetRawStorage(v.context.address, v.pos)
	if err != nil {
		return false, err
	}
	return len(raw) > 0, nil
}

// Set stores value in the slot.
func (v *Value[V]) Set(value V) error {
	return v.context.state.EncodeStorage(v.context.address, v.pos, func() ([]byte, error) {
		val, err := rlp.EncodeToBytes(value)
		if err != nil {
			return nil, err
		}
		v.context.meter.Write(len(val))
		return val, nil
	})
}

// Clear empties the slot.
func (v *Value[V]) Clear() {
	v.context.meter.Write(0)
	v.context.state.SetRawStorage(v.context.address, v.pos, nil)
}
