// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/balances"
	"github.com/astar-network/astar/builtin/dappstaking"
	"github.com/astar-network/astar/builtin/inflation"
	"github.com/astar-network/astar/builtin/oracle"
	"github.com/astar-network/astar/builtin/storage"
	"github.com/astar-network/astar/builtin/weightmeter"
	"github.com/astar-network/astar/state"
)

// Storage addresses of the builtin modules.
var (
	DappStakingAddress = astar.BytesToAddress([]byte("DappStaking"))
	InflationAddress   = astar.BytesToAddress([]byte("Inflation"))
	OracleAddress      = astar.BytesToAddress([]byte("PriceOracle"))
)

// DefaultBlockWeightLimit bounds the weight of the extrinsics of a block.
const DefaultBlockWeightLimit uint64 = 500_000_000

// Config holds the chain constants of the runtime.
type Config struct {
	DappStaking   dappstaking.Config      `yaml:"dapp-staking"`
	Oracle        oracle.Config           `yaml:"oracle"`
	Beneficiaries inflation.Beneficiaries `yaml:"beneficiaries"`

	// Sudo is the account dispatching privileged calls.
	Sudo             astar.Address `yaml:"sudo"`
	BlockWeightLimit uint64        `yaml:"block-weight-limit"`
}

// DefaultConfig returns the dev chain runtime configuration.
func DefaultConfig() Config {
	return Config{
		DappStaking:      dappstaking.DefaultConfig(),
		Oracle:           oracle.DefaultConfig(),
		BlockWeightLimit: DefaultBlockWeightLimit,
	}
}

// Modules are the builtin modules bound to one state.
type Modules struct {
	State       *state.State
	Balances    *balances.Balances
	Oracle      *oracle.Oracle
	Inflation   *inflation.Inflation
	DappStaking *dappstaking.DappStaking

	contexts []*storage.Context
}

// NewModules binds the modules to st.
func NewModules(st *state.State, cfg Config) *Modules {
	var (
		bal         = balances.New(st)
		stakingCtx  = storage.NewContext(DappStakingAddress, st)
		inflaCtx    = storage.NewContext(InflationAddress, st)
		oracleCtx   = storage.NewContext(OracleAddress, st)
		prices      = oracle.New(oracleCtx, cfg.Oracle)
		rewardsPool = inflation.New(inflaCtx, bal, cfg.DappStaking.Cycle, cfg.Beneficiaries)
	)
	return &Modules{
		State:       st,
		Balances:    bal,
		Oracle:      prices,
		Inflation:   rewardsPool,
		DappStaking: dappstaking.New(stakingCtx, bal, prices, rewardsPool, cfg.DappStaking),
		contexts:    []*storage.Context{stakingCtx, inflaCtx, oracleCtx},
	}
}

// SetMeter charges the storage accesses of every module to m.
func (m *Modules) SetMeter(meter *weightmeter.Meter) {
	for _, sctx := range m.contexts {
		sctx.SetMeter(meter)
	}
}
