// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/dappstaking/tiers"
	"github.com/astar-network/astar/builtin/inflation"
	"github.com/astar-network/astar/runtime"
	"github.com/astar-network/astar/state"
)

type alloc struct {
	addr    astar.Address
	balance *big.Int
}

// Builder helper to build the genesis state.
type Builder struct {
	allocs          []alloc
	tierParams      *tiers.TierParameters
	inflationParams *inflation.Params
	stateProcs      []func(mods *runtime.Modules) error
}

// Alloc mints balance into addr.
func (b *Builder) Alloc(addr astar.Address, balance *big.Int) *Builder {
	b.allocs = append(b.allocs, alloc{addr, balance})
	return b
}

// TierParams sets the static tier parameters.
func (b *Builder) TierParams(params *tiers.TierParameters) *Builder {
	b.tierParams = params
	return b
}

// InflationParams sets the inflation parameters.
func (b *Builder) InflationParams(params inflation.Params) *Builder {
	b.inflationParams = &params
	return b
}

// State add a state process, run after the modules are initialized.
func (b *Builder) State(proc func(mods *runtime.Modules) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// Build writes the genesis into st. The allocations come first so the
// initial tier configuration sees the full issuance.
func (b *Builder) Build(st *state.State, cfg runtime.Config) error {
	if b.tierParams == nil {
		return errors.New("tier parameters not set")
	}
	params := inflation.DefaultParams()
	if b.inflationParams != nil {
		params = *b.inflationParams
	}

	mods := runtime.NewModules(st, cfg)
	for _, a := range b.allocs {
		if err := mods.Balances.Deposit(a.addr, a.balance); err != nil {
			return errors.Wrapf(err, "alloc %v", a.addr)
		}
	}
	if err := mods.Inflation.Init(params, 1); err != nil {
		return errors.Wrap(err, "init inflation")
	}
	if err := mods.DappStaking.Init(b.tierParams); err != nil {
		return errors.Wrap(err, "init dapp staking")
	}
	for _, proc := range b.stateProcs {
		if err := proc(mods); err != nil {
			return errors.Wrap(err, "state process")
		}
	}
	return nil
}
