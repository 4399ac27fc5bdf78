// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package oracle keeps the most recent native currency prices reported by
// the feeder and serves their average.
package oracle

import (
	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/reverts"
	"github.com/astar-network/astar/builtin/storage"
	"github.com/astar-network/astar/log"
)

var (
	logger = log.WithContext("pkg", "oracle")

	slotPrices = storage.Slot("prices")
)

// Config of the price oracle.
type Config struct {
	// Capacity is the number of prices averaged.
	Capacity uint32 `yaml:"capacity"`
	// DefaultPrice is served until the first price is submitted.
	DefaultPrice astar.FixedU128 `yaml:"default-price"`
}

// DefaultConfig returns the dev chain oracle configuration.
func DefaultConfig() Config {
	return Config{
		Capacity:     8,
		DefaultPrice: astar.MustParseFixedU128("0.05"),
	}
}

// ring is the bounded circular buffer of submitted prices.
type ring struct {
	Prices []astar.FixedU128
	Next   uint32
}

// Oracle implements the price provider.
type Oracle struct {
	cfg    Config
	prices *storage.Value[*ring]
}

// New creates an oracle over sctx.
func New(sctx *storage.Context, cfg Config) *Oracle {
	if cfg.Capacity == 0 {
		cfg.Capacity = 1
	}
	return &Oracle{
		cfg:    cfg,
		prices: storage.NewValue[*ring](sctx, slotPrices),
	}
}

// SubmitPrice appends price, overwriting the oldest one when the buffer is full.
func (o *Oracle) SubmitPrice(price astar.FixedU128) error {
	if price.IsZero() {
		return reverts.ErrInvalidPrice
	}
	r, err := o.prices.Get()
	if err != nil {
		return err
	}
	if uint32(len(r.Prices)) < o.cfg.Capacity {
		r.Prices = append(r.Prices, price)
	} else {
		r.Prices[r.Next%uint32(len(r.Prices))] = price
	}
	r.Next = (r.Next + 1) % o.cfg.Capacity
	if err := o.prices.Set(r); err != nil {
		return err
	}

	logger.Debug("price submitted", "price", price)
	return nil
}

// Prices returns the buffered prices, oldest first.
func (o *Oracle) Prices() ([]astar.FixedU128, error) {
	r, err := o.prices.Get()
	if err != nil {
		return nil, err
	}
	if uint32(len(r.Prices)) < o.cfg.Capacity {
		return r.Prices, nil
	}
	n := r.Next % uint32(len(r.Prices))
	return append(append([]astar.FixedU128{}, r.Prices[n:]...), r.Prices[:n]...), nil
}

// AveragePrice returns the arithmetic mean of the buffered prices, or the
// configured default when none has been submitted.
func (o *Oracle) AveragePrice() (astar.FixedU128, error) {
	r, err := o.prices.Get()
	if err != nil {
		return astar.FixedU128{}, err
	}
	if len(r.Prices) == 0 {
		return o.cfg.DefaultPrice, nil
	}
	var sum astar.FixedU128
	for _, p := range r.Prices {
		sum = sum.Add(p)
	}
	return sum.DivInt(uint64(len(r.Prices))), nil
}
