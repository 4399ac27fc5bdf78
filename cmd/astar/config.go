// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/astar-network/astar/builtin/dappstaking/tiers"
	"github.com/astar-network/astar/builtin/inflation"
	"github.com/astar-network/astar/genesis"
	"github.com/astar-network/astar/runtime"
)

// chainConfig is the layout of the file passed with --config. Absent
// sections keep the dev chain defaults.
type chainConfig struct {
	Runtime    runtime.Config        `yaml:"runtime"`
	TierParams *tiers.TierParameters `yaml:"tier-params"`
	Inflation  *inflation.Params     `yaml:"inflation"`
}

func defaultChainConfig() *chainConfig {
	return &chainConfig{Runtime: runtime.DefaultConfig()}
}

func loadChainConfig(path string) (*chainConfig, error) {
	cfg := defaultChainConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func (c *chainConfig) validate() error {
	if err := c.Runtime.DappStaking.Validate(); err != nil {
		return err
	}
	if c.TierParams != nil && !c.TierParams.IsValid(c.Runtime.DappStaking.NumberOfTiers) {
		return errors.New("invalid tier params")
	}
	if c.Inflation != nil && !c.Inflation.IsValid() {
		return errors.New("invalid inflation params")
	}
	return nil
}

// genesis returns the dev chain genesis with the overrides applied.
func (c *chainConfig) genesis() *genesis.Genesis {
	gene := genesis.NewDevnet(c.Runtime)
	if c.TierParams != nil {
		gene.Builder().TierParams(c.TierParams)
	}
	if c.Inflation != nil {
		gene.Builder().InflationParams(*c.Inflation)
	}
	return gene
}

// marshal encodes the effective configuration, defaults included.
func (c *chainConfig) marshal() ([]byte, error) {
	out := chainConfig{
		Runtime:    c.genesis().Config(),
		TierParams: c.TierParams,
		Inflation:  c.Inflation,
	}
	if out.TierParams == nil {
		out.TierParams = genesis.DevTierParams()
	}
	if out.Inflation == nil {
		params := inflation.DefaultParams()
		out.Inflation = &params
	}
	return yaml.Marshal(&out)
}
