// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/kv"
	"github.com/astar-network/astar/log"
	"github.com/astar-network/astar/stackedmap"
)

var logger = log.WithContext("pkg", "state")

// key prefixes of the persisted layout
const (
	accountPrefix  = "a"
	storagePrefix  = "s"
	issuanceKeyStr = "i"
)

type (
	accountKey  astar.Address
	storageKey  struct {
		addr astar.Address
		key  astar.Bytes32
	}
	issuanceKey struct{}
)

func (k accountKey) dbKey() []byte {
	return append([]byte(accountPrefix), k[:]...)
}

func (k storageKey) dbKey() []byte {
	b := make([]byte, 0, len(storagePrefix)+astar.AddressLength+32)
	b = append(b, storagePrefix...)
	b = append(b, k.addr[:]...)
	return append(b, k.key[:]...)
}

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// State manages accounts, module storage and total issuance on top of a kv store.
// Changes are journaled in memory until Commit.
type State struct {
	db kv.Getter
	sm *stackedmap.StackedMap
}

// New create state object.
func New(db kv.Getter) *State {
	s := &State{db: db}
	s.reset()
	return s
}

func (s *State) reset() {
	s.sm = stackedmap.New(s.dbGetter)
}

// dbGetter implements stackedmap.MapGetter.
func (s *State) dbGetter(key any) (any, bool, error) {
	switch k := key.(type) {
	case accountKey:
		data, err := s.get(k.dbKey())
		if err != nil {
			return nil, false, err
		}
		acc := emptyAccount()
		if len(data) > 0 {
			if err := rlp.DecodeBytes(data, acc); err != nil {
				return nil, false, err
			}
		}
		return acc, true, nil
	case storageKey:
		data, err := s.get(k.dbKey())
		if err != nil {
			return nil, false, err
		}
		return rlp.RawValue(data), true, nil
	case issuanceKey:
		data, err := s.get([]byte(issuanceKeyStr))
		if err != nil {
			return nil, false, err
		}
		v := new(big.Int)
		if len(data) > 0 {
			if err := rlp.DecodeBytes(data, v); err != nil {
				return nil, false, err
			}
		}
		return v, true, nil
	}
	panic(fmt.Errorf("unexpected key type %+v", key))
}

func (s *State) get(key []byte) ([]byte, error) {
	data, err := s.db.Get(key)
	if err != nil {
		if s.db.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// GetAccount returns a copy of the account at addr.
func (s *State) GetAccount(addr astar.Address) (*Account, error) {
	v, _, err := s.sm.Get(accountKey(addr))
	if err != nil {
		return nil, &Error{err}
	}
	return v.(*Account).copy(), nil
}

// SetAccount updates the account at addr.
func (s *State) SetAccount(addr astar.Address, acc *Account) {
	s.sm.Put(accountKey(addr), acc.copy())
}

// GetRawStorage returns storage value in rlp raw for given key.
func (s *State) GetRawStorage(addr astar.Address, key astar.Bytes32) (rlp.RawValue, error) {
	v, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return v.(rlp.RawValue), nil
}

// SetRawStorage set storage value in rlp raw. Empty raw deletes the entry.
func (s *State) SetRawStorage(addr astar.Address, key astar.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by *Error type.
func (s *State) DecodeStorage(addr astar.Address, key astar.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by end will be absorbed by *Error type.
func (s *State) EncodeStorage(addr astar.Address, key astar.Bytes32, enc func() ([]byte, error)) error {
	data, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, data)
	return nil
}

// GetTotalIssuance returns the total issuance of the native currency.
func (s *State) GetTotalIssuance() (*big.Int, error) {
	v, _, err := s.sm.Get(issuanceKey{})
	if err != nil {
		return nil, &Error{err}
	}
	return astar.Copy(v.(*big.Int)), nil
}

// SetTotalIssuance sets the total issuance of the native currency.
func (s *State) SetTotalIssuance(v *big.Int) {
	s.sm.Put(issuanceKey{}, astar.Copy(v))
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	if revision < 0 {
		panic("negative revision")
	}
	s.sm.PopTo(revision)
	if s.sm.Depth() == 0 {
		s.sm.Push()
	}
}

// Changes returns the number of journaled writes not yet committed.
func (s *State) Changes() int {
	n := 0
	s.sm.Journal(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Commit writes all journaled changes into the store as a single bulk and
// starts a fresh journal on top of it.
func (s *State) Commit(store kv.Store) error {
	bulk := store.Bulk()

	var err error
	s.sm.Journal(func(k, v any) bool {
		switch key := k.(type) {
		case accountKey:
			acc := v.(*Account)
			if acc.IsEmpty() {
				err = bulk.Delete(key.dbKey())
				break
			}
			var data []byte
			if data, err = rlp.EncodeToBytes(acc); err == nil {
				err = bulk.Put(key.dbKey(), data)
			}
		case storageKey:
			raw := v.(rlp.RawValue)
			if len(raw) == 0 {
				err = bulk.Delete(key.dbKey())
			} else {
				err = bulk.Put(key.dbKey(), raw)
			}
		case issuanceKey:
			var data []byte
			if data, err = rlp.EncodeToBytes(v.(*big.Int)); err == nil {
				err = bulk.Put([]byte(issuanceKeyStr), data)
			}
		default:
			err = fmt.Errorf("unexpected key type %+v", k)
		}
		return err == nil
	})
	if err != nil {
		return &Error{err}
	}

	n := bulk.Len()
	if err := bulk.Write(); err != nil {
		return &Error{err}
	}
	logger.Debug("state committed", "writes", n)

	s.db = store
	s.reset()
	return nil
}
