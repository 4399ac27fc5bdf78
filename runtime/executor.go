// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime executes blocks: the per block hooks of the builtin
// modules followed by the extrinsics dispatched to them.
package runtime

import (
	"time"

	"github.com/pkg/errors"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/dappstaking"
	"github.com/astar-network/astar/builtin/reverts"
	"github.com/astar-network/astar/builtin/weightmeter"
	"github.com/astar-network/astar/kv"
	"github.com/astar-network/astar/log"
	"github.com/astar-network/astar/metrics"
	"github.com/astar-network/astar/state"
)

var (
	logger = log.WithContext("pkg", "runtime")

	metricBlockExecution = metrics.LazyLoadHistogram("runtime_block_execution_ms", metrics.BucketBlockExecution)
	metricExtrinsics     = metrics.LazyLoadCounterVec("runtime_extrinsics_count", []string{"call", "outcome"})
	metricBlockWeight    = metrics.LazyLoadGauge("runtime_block_weight")
)

// EventRecord is an event emitted during a block.
type EventRecord struct {
	Name string            `json:"name"`
	Data dappstaking.Event `json:"data"`
}

func records(events []dappstaking.Event) []*EventRecord {
	out := make([]*EventRecord, 0, len(events))
	for _, e := range events {
		out = append(out, &EventRecord{Name: e.Name(), Data: e})
	}
	return out
}

// Receipt is the outcome of one extrinsic. Error is empty on success.
type Receipt struct {
	Index  uint32         `json:"index"`
	Hash   astar.Bytes32  `json:"hash"`
	Call   string         `json:"call"`
	Signer astar.Address  `json:"signer"`
	Error  string         `json:"error,omitempty"`
	Events []*EventRecord `json:"events"`
	Weight uint64         `json:"weight"`
}

// Succeeded reports whether the extrinsic was applied.
func (r *Receipt) Succeeded() bool {
	return r.Error == ""
}

// Block is the outcome of an executed block.
type Block struct {
	Number uint32 `json:"number"`

	// Events emitted by the block hooks.
	Events   []*EventRecord `json:"events"`
	Receipts []*Receipt     `json:"receipts"`
	Weight   uint64         `json:"weight"`
}

// Executor executes blocks over a state and commits them to a store.
type Executor struct {
	cfg Config
	db  kv.Store
}

// NewExecutor creates an executor committing into db.
func NewExecutor(db kv.Store, cfg Config) *Executor {
	if cfg.BlockWeightLimit == 0 {
		cfg.BlockWeightLimit = DefaultBlockWeightLimit
	}
	return &Executor{cfg: cfg, db: db}
}

// Config returns the runtime configuration.
func (e *Executor) Config() Config {
	return e.cfg
}

// ExecuteBlock runs the hooks of block number then the extrinsics, and
// commits st. A reverted extrinsic leaves no change and its error is
// recorded in its receipt. Any other failure aborts the block, leaving st as
// it was before the call.
func (e *Executor) ExecuteBlock(st *state.State, number uint32, extrinsics []*Extrinsic) (*Block, error) {
	startTime := time.Now()
	checkpoint := st.NewCheckpoint()

	block, err := e.execute(st, number, extrinsics)
	if err != nil {
		st.RevertTo(checkpoint)
		return nil, err
	}
	if err := st.Commit(e.db); err != nil {
		st.RevertTo(checkpoint)
		return nil, errors.Wrap(err, "commit")
	}

	elapsed := time.Since(startTime)
	metricBlockExecution().Observe(elapsed.Milliseconds())
	metricBlockWeight().Set(int64(block.Weight))
	logger.Debug("executed block",
		"number", number,
		"extrinsics", len(extrinsics),
		"weight", block.Weight,
		"elapsed", elapsed,
	)
	return block, nil
}

func (e *Executor) execute(st *state.State, number uint32, extrinsics []*Extrinsic) (*Block, error) {
	mods := NewModules(st, e.cfg)
	block := &Block{Number: number, Receipts: make([]*Receipt, 0, len(extrinsics))}

	if err := mods.Inflation.OnBlock(); err != nil {
		return nil, errors.Wrap(err, "inflation hook")
	}
	if err := mods.DappStaking.Housekeep(number); err != nil {
		return nil, errors.Wrap(err, "dapp staking hook")
	}
	block.Events = records(mods.DappStaking.TakeEvents())

	for i, x := range extrinsics {
		receipt, err := e.apply(mods, number, block.Weight, x)
		if err != nil {
			return nil, errors.Wrapf(err, "extrinsic %d (%s)", i, x.Call)
		}
		receipt.Index = uint32(i)
		if receipt.Error != reverts.ErrExhaustsBlock.Code() {
			block.Weight += receipt.Weight
		}
		block.Receipts = append(block.Receipts, receipt)
	}
	return block, nil
}

// apply dispatches x under its own checkpoint.
func (e *Executor) apply(mods *Modules, number uint32, used uint64, x *Extrinsic) (*Receipt, error) {
	receipt := &Receipt{
		Hash:   x.Hash(),
		Call:   x.Call,
		Signer: x.Signer,
		Events: []*EventRecord{},
	}

	meter := weightmeter.New()
	meter.Charge(weightmeter.BaseWeight)
	mods.SetMeter(meter)
	defer mods.SetMeter(nil)

	checkpoint := mods.State.NewCheckpoint()
	err := e.dispatch(mods, number, x)
	if (err == nil || reverts.IsRevertErr(err)) && used+meter.Consumed() > e.cfg.BlockWeightLimit {
		err = reverts.ErrExhaustsBlock
	}
	receipt.Weight = meter.Consumed()

	if err != nil {
		if !reverts.IsRevertErr(err) {
			return nil, err
		}
		mods.State.RevertTo(checkpoint)
		mods.DappStaking.TakeEvents()
		receipt.Error = reverts.AsRevert(err).Code()
		metricExtrinsics().AddWithLabel(1, map[string]string{"call": x.Call, "outcome": "reverted"})
		logger.Debug("extrinsic reverted", "call", x.Call, "signer", x.Signer, "err", err)
		return receipt, nil
	}

	receipt.Events = records(mods.DappStaking.TakeEvents())
	metricExtrinsics().AddWithLabel(1, map[string]string{"call": x.Call, "outcome": "applied"})
	return receipt, nil
}

func (e *Executor) dispatch(mods *Modules, number uint32, x *Extrinsic) error {
	c, ok := calls[x.Call]
	if !ok {
		return reverts.ErrUnknownCall
	}

	origin := dappstaking.Signed(x.Signer)
	isSudo := !e.cfg.Sudo.IsZero() && x.Signer == e.cfg.Sudo
	switch c.origin {
	case root:
		if !isSudo {
			return reverts.ErrBadOrigin
		}
		origin = dappstaking.RootOrigin()
	case managed:
		if isSudo {
			origin = dappstaking.RootOrigin()
		}
	}

	return c.run(&env{
		Modules: mods,
		origin:  origin,
		number:  number,
		args:    x.Args,
	})
}
