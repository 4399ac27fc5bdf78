// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/astar-network/astar/astar"
)

// Mapping is a typed key/value storage item. Values are rlp encoded at
// Blake2b(key, basePos). Reading a missing key yields the zero value, or a
// new zero object when V is a pointer.
type Mapping[K Key, V any] struct {
	context *Context
	basePos astar.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos astar.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

func (m *Mapping[K, V]) position(key K) astar.Bytes32 {
	return astar.Blake2b(key.Bytes(), m.basePos.Bytes())
}

// Get returns the value at key and whether it exists.
func (m *Mapping[K, V]) Get(key K) (value V, exists bool, err error) {
	err = m.context.state.DecodeStorage(m.context.address, m.position(key), func(raw []byte) error {
		m.context.meter.Read(len(raw))
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

// Has reports whether key is present.
func (m *Mapping[K, V]) Has(key K) (bool, error) {
	raw, err := m.context.state.GetRawStorage(m.context.address, m.position(key))
	if err != nil {
		return false, err
	}
	m.context.meter.Read(len(raw))
	return len(raw) > 0, nil
}

// Set stores value at key.
func (m *Mapping[K, V]) Set(key K, value V) error {
	return m.context.state.EncodeStorage(m.context.address, m.position(key), func() ([]byte, error) {
		val, err := rlp.EncodeToBytes(value)
		if err != nil {
			return nil, err
		}
		m.context.meter.Write(len(val))
		return val, nil
	})
}

// Delete removes key.
func (m *Mapping[K, V]) Delete(key K) {
	m.context.meter.Write(0)
	m.context.state.SetRawStorage(m.context.address, m.position(key), nil)
}

func zero[V any]() V {
	var value V
	if t := reflect.TypeOf(value); t != nil && t.Kind() == reflect.Ptr {
		return reflect.New(t.Elem()).Interface().(V)
	}
	return value
}
