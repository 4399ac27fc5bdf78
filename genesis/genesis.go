// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis builds the initial state of a chain.
package genesis

import (
	"github.com/pkg/errors"

	"github.com/astar-network/astar/log"
	"github.com/astar-network/astar/runtime"
	"github.com/astar-network/astar/state"
)

var logger = log.WithContext("pkg", "genesis")

// Genesis to build the initial state.
type Genesis struct {
	name    string
	cfg     runtime.Config
	builder *Builder
}

// New creates a genesis from a builder.
func New(name string, cfg runtime.Config, builder *Builder) *Genesis {
	return &Genesis{name: name, cfg: cfg, builder: builder}
}

// Name returns the network name.
func (g *Genesis) Name() string {
	return g.name
}

// Config returns the runtime configuration the genesis was built for.
func (g *Genesis) Config() runtime.Config {
	return g.cfg
}

// Builder returns the builder, for further customization before Build.
func (g *Genesis) Builder() *Builder {
	return g.builder
}

// Build writes the genesis into an empty st.
func (g *Genesis) Build(st *state.State) error {
	ok, err := IsInitialized(st, g.cfg)
	if err != nil {
		return err
	}
	if ok {
		return errors.New("state already initialized")
	}
	if err := g.builder.Build(st, g.cfg); err != nil {
		return err
	}
	logger.Info("genesis built", "name", g.name, "sudo", g.cfg.Sudo)
	return nil
}

// IsInitialized reports whether st already holds a chain.
func IsInitialized(st *state.State, cfg runtime.Config) (bool, error) {
	version, err := runtime.NewModules(st, cfg).DappStaking.StorageVersion()
	if err != nil {
		return false, err
	}
	return version != 0, nil
}
