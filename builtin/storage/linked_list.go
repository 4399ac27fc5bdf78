// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"github.com/astar-network/astar/astar"
)

// LinkedList is an insertion ordered set of non-zero addresses kept in storage.
// All positions are derived from the namespace, so several lists can share a context.
type LinkedList struct {
	head  *Value[astar.Address]
	tail  *Value[astar.Address]
	count *Value[uint32]
	next  *Mapping[astar.Address, astar.Address]
	prev  *Mapping[astar.Address, astar.Address]
}

// NewLinkedList creates a list rooted at namespace.
func NewLinkedList(sctx *Context, namespace astar.Bytes32) *LinkedList {
	pos := func(name string) astar.Bytes32 {
		return astar.Blake2b(namespace.Bytes(), []byte(name))
	}
	return &LinkedList{
		head:  NewValue[astar.Address](sctx, pos("head")),
		tail:  NewValue[astar.Address](sctx, pos("tail")),
		count: NewValue[uint32](sctx, pos("count")),
		next:  NewMapping[astar.Address, astar.Address](sctx, pos("next")),
		prev:  NewMapping[astar.Address, astar.Address](sctx, pos("prev")),
	}
}

// Contains reports whether address is in the list.
func (l *LinkedList) Contains(address astar.Address) (bool, error) {
	if address.IsZero() {
		return false, nil
	}
	head, err := l.head.Get()
	if err != nil {
		return false, err
	}
	if head == address {
		return true, nil
	}
	prev, _, err := l.prev.Get(address)
	if err != nil {
		return false, err
	}
	return !prev.IsZero(), nil
}

// Add appends address to the end of the list. Adding a present address is a no-op.
func (l *LinkedList) Add(address astar.Address) error {
	if address.IsZero() {
		return nil
	}
	if ok, err := l.Contains(address); err != nil || ok {
		return err
	}

	oldTail, err := l.tail.Get()
	if err != nil {
		return err
	}

	if oldTail.IsZero() {
		// empty list, the entry becomes head and tail
		if err := l.head.Set(address); err != nil {
			return err
		}
	} else {
		if err := l.next.Set(oldTail, address); err != nil {
			return err
		}
		if err := l.prev.Set(address, oldTail); err != nil {
			return err
		}
	}
	if err := l.tail.Set(address); err != nil {
		return err
	}
	return l.add(1)
}

// Remove unlinks address from anywhere in the list. Removing a missing address is a no-op.
func (l *LinkedList) Remove(address astar.Address) error {
	if ok, err := l.Contains(address); err != nil || !ok {
		return err
	}

	prev, _, err := l.prev.Get(address)
	if err != nil {
		return err
	}
	next, _, err := l.next.Get(address)
	if err != nil {
		return err
	}

	if prev.IsZero() {
		if next.IsZero() {
			l.head.Clear()
		} else if err := l.head.Set(next); err != nil {
			return err
		}
	} else if next.IsZero() {
		l.next.Delete(prev)
	} else if err := l.next.Set(prev, next); err != nil {
		return err
	}

	if next.IsZero() {
		if prev.IsZero() {
			l.tail.Clear()
		} else if err := l.tail.Set(prev); err != nil {
			return err
		}
	} else if prev.IsZero() {
		l.prev.Delete(next)
	} else if err := l.prev.Set(next, prev); err != nil {
		return err
	}

	l.next.Delete(address)
	l.prev.Delete(address)
	return l.add(-1)
}

// Len returns the number of entries.
func (l *LinkedList) Len() (uint32, error) {
	return l.count.Get()
}

// Iter traverses the list in insertion order until callback returns an error.
// Removing the visited entry inside the callback is allowed.
func (l *LinkedList) Iter(callback func(astar.Address) error) error {
	ptr, err := l.head.Get()
	if err != nil {
		return err
	}

	for !ptr.IsZero() {
		next, _, err := l.next.Get(ptr)
		if err != nil {
			return err
		}
		if err := callback(ptr); err != nil {
			return err
		}
		ptr = next
	}
	return nil
}

// Slice returns all entries in order.
func (l *LinkedList) Slice() ([]astar.Address, error) {
	var out []astar.Address
	err := l.Iter(func(a astar.Address) error {
		out = append(out, a)
		return nil
	})
	return out, err
}

func (l *LinkedList) add(delta int) error {
	count, err := l.count.Get()
	if err != nil {
		return err
	}
	if delta < 0 {
		count = astar.SaturatingSubU32(count, uint32(-delta))
	} else {
		count = astar.SaturatingAddU32(count, uint32(delta))
	}
	if count == 0 {
		l.count.Clear()
		return nil
	}
	return l.count.Set(count)
}
