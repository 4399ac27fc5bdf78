// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package node drives a single block producer: it owns the committed state,
// feeds the pool to the runtime and serves consistent read views.
package node

import (
	"context"
	"encoding/binary"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"

	"github.com/astar-network/astar/cache"
	"github.com/astar-network/astar/co"
	"github.com/astar-network/astar/genesis"
	"github.com/astar-network/astar/kv"
	"github.com/astar-network/astar/log"
	"github.com/astar-network/astar/metrics"
	"github.com/astar-network/astar/runtime"
	"github.com/astar-network/astar/state"
	"github.com/astar-network/astar/txpool"
)

var (
	logger = log.WithContext("pkg", "node")

	metricBestBlock = metrics.LazyLoadGauge("node_best_block")
	metricFailures  = metrics.LazyLoadCounter("node_block_failures_count")

	metaBucket = kv.Bucket("n")
	bestKey    = []byte("best")
)

// Options for Node.
type Options struct {
	BlockInterval time.Duration

	// OnDemand produces a block as soon as an extrinsic arrives instead
	// of every BlockInterval.
	OnDemand bool

	MaxExtrinsics int
	ReceiptsCache int
}

// DefaultOptions returns the options of a dev node.
func DefaultOptions() Options {
	return Options{
		BlockInterval: 6 * time.Second,
		MaxExtrinsics: 1000,
		ReceiptsCache: 256,
	}
}

// Reader is a read-only view of the state at the best block.
type Reader struct {
	*runtime.Modules
	Number uint32
}

// Node is the abstraction of local node.
type Node struct {
	options  Options
	db       kv.Store
	meta     kv.Store
	executor *runtime.Executor
	pool     *txpool.TxPool

	lock   sync.RWMutex
	st     *state.State
	number uint32
	blocks *cache.LRU

	blockFeed event.Feed
	scope     event.SubscriptionScope
}

// New opens the chain in db. An empty store is initialized from gene, an
// existing one has its storage migrated before any block is produced.
func New(ctx context.Context, db kv.Store, gene *genesis.Genesis, pool *txpool.TxPool, options Options) (*Node, error) {
	if options.MaxExtrinsics <= 0 {
		options.MaxExtrinsics = DefaultOptions().MaxExtrinsics
	}
	if options.ReceiptsCache <= 0 {
		options.ReceiptsCache = DefaultOptions().ReceiptsCache
	}
	blocks, err := cache.NewLRU("node_blocks", options.ReceiptsCache)
	if err != nil {
		return nil, err
	}

	n := &Node{
		options:  options,
		db:       db,
		meta:     metaBucket.NewStore(db),
		executor: runtime.NewExecutor(db, gene.Config()),
		pool:     pool,
		st:       state.New(db),
		blocks:   blocks,
	}
	if err := n.open(ctx, gene); err != nil {
		return nil, err
	}
	metricBestBlock().Set(int64(n.number))
	return n, nil
}

func (n *Node) open(ctx context.Context, gene *genesis.Genesis) error {
	initialized, err := genesis.IsInitialized(n.st, gene.Config())
	if err != nil {
		return err
	}
	if !initialized {
		if err := gene.Build(n.st); err != nil {
			return errors.Wrap(err, "build genesis")
		}
		if err := n.st.Commit(n.db); err != nil {
			return errors.Wrap(err, "commit genesis")
		}
		return n.saveBest(0)
	}

	if n.number, err = n.loadBest(); err != nil {
		return err
	}
	mods := runtime.NewModules(n.st, gene.Config())
	from, err := mods.DappStaking.Migrate(ctx, n.db)
	if err != nil {
		return errors.Wrap(err, "migrate")
	}
	if err := n.st.Commit(n.db); err != nil {
		return errors.Wrap(err, "commit migration")
	}
	logger.Info("chain opened", "best", n.number, "storageVersion", from)
	return nil
}

func (n *Node) loadBest() (uint32, error) {
	data, err := n.meta.Get(bestKey)
	if err != nil {
		if n.meta.IsNotFound(err) {
			return 0, nil
		}
		return 0, err
	}
	if len(data) != 4 {
		return 0, errors.Errorf("corrupted best block %x", data)
	}
	return binary.BigEndian.Uint32(data), nil
}

func (n *Node) saveBest(number uint32) error {
	return n.meta.Put(bestKey, binary.BigEndian.AppendUint32(nil, number))
}

// Config returns the runtime configuration.
func (n *Node) Config() runtime.Config {
	return n.executor.Config()
}

// Number returns the number of the best block.
func (n *Node) Number() uint32 {
	n.lock.RLock()
	defer n.lock.RUnlock()
	return n.number
}

// View calls fn with a read view of the best block. The view must not be
// retained after fn returns.
func (n *Node) View(fn func(r *Reader) error) error {
	n.lock.RLock()
	defer n.lock.RUnlock()
	return fn(&Reader{
		Modules: runtime.NewModules(state.New(n.db), n.executor.Config()),
		Number:  n.number,
	})
}

// Block returns the outcome of a recent block.
func (n *Node) Block(number uint32) (*runtime.Block, bool) {
	if v, ok := n.blocks.Get(number); ok {
		return v.(*runtime.Block), true
	}
	return nil, false
}

// Submit adds x to the pool.
func (n *Node) Submit(x *runtime.Extrinsic) error {
	return n.pool.Add(x)
}

// Produce executes the next block with the pending extrinsics and
// announces it to the subscribers.
func (n *Node) Produce() (*runtime.Block, error) {
	block, err := n.produce()
	if err != nil {
		return nil, err
	}
	n.blockFeed.Send(block)
	return block, nil
}

func (n *Node) produce() (*runtime.Block, error) {
	n.lock.Lock()
	defer n.lock.Unlock()

	number := n.number + 1
	extrinsics := n.pool.Executables(n.options.MaxExtrinsics)
	block, err := n.executor.ExecuteBlock(n.st, number, extrinsics)
	if err != nil {
		metricFailures().Add(1)
		return nil, errors.Wrapf(err, "block %d", number)
	}
	if err := n.saveBest(number); err != nil {
		return nil, err
	}
	n.number = number
	n.blocks.Add(number, block)
	metricBestBlock().Set(int64(number))

	logger.Info("📦 new block", "number", number, "extrinsics", len(extrinsics), "events", len(block.Events))
	return block, nil
}

// SubscribeNewBlock delivers every produced block to ch. Production waits
// for ch to accept the block.
func (n *Node) SubscribeNewBlock(ch chan *runtime.Block) event.Subscription {
	return n.scope.Track(n.blockFeed.Subscribe(ch))
}

// Run produces blocks until ctx is canceled.
func (n *Node) Run(ctx context.Context) error {
	goes := &co.Goes{}
	defer goes.Wait()

	if n.options.OnDemand {
		logger.Info("producing blocks on demand")
		goes.Go(func() { n.onDemandLoop(ctx) })
	} else {
		logger.Info("producing blocks", "interval", n.options.BlockInterval)
		goes.Go(func() { n.intervalLoop(ctx) })
	}
	<-ctx.Done()
	n.scope.Close()
	return nil
}

func (n *Node) intervalLoop(ctx context.Context) {
	ticker := time.NewTicker(n.options.BlockInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("stopping interval block production......")
			return
		case <-ticker.C:
			if _, err := n.Produce(); err != nil {
				logger.Error("failed to produce block", "err", err)
			}
		}
	}
}

func (n *Node) onDemandLoop(ctx context.Context) {
	ch := make(chan *txpool.TxEvent, 100)
	sub := n.pool.SubscribeTxEvent(ch)
	defer sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			logger.Info("stopping on demand block production......")
			return
		case <-sub.Err():
			return
		case <-ch:
			if n.pool.Len() == 0 {
				continue
			}
			if _, err := n.Produce(); err != nil {
				logger.Error("failed to produce block", "err", err)
			}
		}
	}
}
