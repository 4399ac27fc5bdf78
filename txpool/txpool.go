// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package txpool keeps the extrinsics waiting for a block, in arrival order.
package txpool

import (
	"sync"

	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/cache"
	"github.com/astar-network/astar/log"
	"github.com/astar-network/astar/runtime"
)

const (
	// MaxArgsSize is the max size of the arguments of an extrinsic.
	MaxArgsSize = 16 * 1024
	// DefaultLimit is the default number of pending extrinsics.
	DefaultLimit = 10_000
)

var logger = log.WithContext("pkg", "txpool")

// Options options for the pool.
type Options struct {
	Limit int

	// SkipVerify accepts unsigned extrinsics. Dev chains only.
	SkipVerify bool
}

// TxEvent is posted when an extrinsic is added.
type TxEvent struct {
	Extrinsic *runtime.Extrinsic
}

// TxPool is a FIFO of pending extrinsics.
type TxPool struct {
	options Options

	lock    sync.Mutex
	queue   []*runtime.Extrinsic
	pending map[astar.Bytes32]struct{}

	// hashes of extrinsics already handed out for execution
	recent *cache.LRU
	closed bool

	txFeed event.Feed
	scope  event.SubscriptionScope
}

// New creates a pool.
func New(options Options) *TxPool {
	if options.Limit <= 0 {
		options.Limit = DefaultLimit
	}
	recent, err := cache.NewLRU("txpool_recent", options.Limit)
	if err != nil {
		panic(err)
	}
	return &TxPool{
		options: options,
		pending: make(map[astar.Bytes32]struct{}),
		recent:  recent,
	}
}

// Add appends x to the pool.
func (p *TxPool) Add(x *runtime.Extrinsic) error {
	if err := p.validate(x); err != nil {
		metricRejected().AddWithLabel(1, map[string]string{"reason": "invalid"})
		return err
	}
	hash := x.Hash()

	p.lock.Lock()
	switch {
	case p.closed:
		p.lock.Unlock()
		return errClosed
	case p.has(hash):
		p.lock.Unlock()
		metricRejected().AddWithLabel(1, map[string]string{"reason": "known"})
		return errKnownTx
	case len(p.queue) >= p.options.Limit:
		p.lock.Unlock()
		metricRejected().AddWithLabel(1, map[string]string{"reason": "full"})
		return errPoolFull
	}
	p.queue = append(p.queue, x)
	p.pending[hash] = struct{}{}
	metricPending().Set(int64(len(p.queue)))
	p.lock.Unlock()

	logger.Debug("extrinsic added", "hash", hash, "call", x.Call, "signer", x.Signer)
	p.goFeed(x)
	return nil
}

func (p *TxPool) goFeed(x *runtime.Extrinsic) {
	go p.txFeed.Send(&TxEvent{Extrinsic: x})
}

func (p *TxPool) has(hash astar.Bytes32) bool {
	if _, ok := p.pending[hash]; ok {
		return true
	}
	return p.recent.Contains(hash)
}

func (p *TxPool) validate(x *runtime.Extrinsic) error {
	if len(x.Args) > MaxArgsSize {
		return errTooLarge
	}
	if p.options.SkipVerify {
		return nil
	}
	if err := x.Verify(); err != nil {
		return errors.Wrap(errBadSignature, err.Error())
	}
	return nil
}

// Executables removes and returns up to limit extrinsics, oldest first.
func (p *TxPool) Executables(limit int) []*runtime.Extrinsic {
	p.lock.Lock()
	defer p.lock.Unlock()

	n := min(limit, len(p.queue))
	if n <= 0 {
		return nil
	}
	out := make([]*runtime.Extrinsic, n)
	copy(out, p.queue)
	p.queue = append(p.queue[:0], p.queue[n:]...)
	for _, x := range out {
		hash := x.Hash()
		delete(p.pending, hash)
		p.recent.Add(hash, struct{}{})
	}
	metricPending().Set(int64(len(p.queue)))
	return out
}

// Dump returns the pending extrinsics without removing them.
func (p *TxPool) Dump() []*runtime.Extrinsic {
	p.lock.Lock()
	defer p.lock.Unlock()
	return append([]*runtime.Extrinsic(nil), p.queue...)
}

// Len returns the number of pending extrinsics.
func (p *TxPool) Len() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return len(p.queue)
}

// SubscribeTxEvent receives an event for every added extrinsic.
func (p *TxPool) SubscribeTxEvent(ch chan *TxEvent) event.Subscription {
	return p.scope.Track(p.txFeed.Subscribe(ch))
}

// Close rejects further extrinsics and ends the subscriptions.
func (p *TxPool) Close() {
	p.lock.Lock()
	p.closed = true
	p.lock.Unlock()
	p.scope.Close()
	logger.Debug("closed")
}
