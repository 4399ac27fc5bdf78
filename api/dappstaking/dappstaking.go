// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dappstaking

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/astar-network/astar/api/utils"
	"github.com/astar-network/astar/builtin/dappstaking/erainfo"
	"github.com/astar-network/astar/builtin/dappstaking/protocol"
	"github.com/astar-network/astar/builtin/dappstaking/rewards"
	"github.com/astar-network/astar/builtin/dappstaking/tiers"
	"github.com/astar-network/astar/cache"
	"github.com/astar-network/astar/node"
)

const tierRewardsCacheSize = 128

type DappStaking struct {
	node *node.Node

	// tier rewards keyed by period and block, claims remove entries
	tierRewards *cache.LRU
}

func New(n *node.Node) *DappStaking {
	tierRewards, err := cache.NewLRU("api_tier_rewards", tierRewardsCacheSize)
	if err != nil {
		panic(err)
	}
	return &DappStaking{node: n, tierRewards: tierRewards}
}

func (d *DappStaking) handleGetState(w http.ResponseWriter, _ *http.Request) error {
	var ps *protocol.ProtocolState
	if err := d.node.View(func(r *node.Reader) (err error) {
		ps, err = r.DappStaking.ProtocolState()
		return
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, ps)
}

func (d *DappStaking) handleGetEraInfo(w http.ResponseWriter, _ *http.Request) error {
	var info *erainfo.EraInfo
	if err := d.node.View(func(r *node.Reader) (err error) {
		info, err = r.DappStaking.EraInfo()
		return
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, info)
}

func (d *DappStaking) handleGetTierParams(w http.ResponseWriter, _ *http.Request) error {
	var params *tiers.TierParameters
	if err := d.node.View(func(r *node.Reader) (err error) {
		params, err = r.DappStaking.StaticTierParams()
		return
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, params)
}

func (d *DappStaking) handleGetTierConfig(w http.ResponseWriter, _ *http.Request) error {
	var cfg *tiers.TiersConfiguration
	if err := d.node.View(func(r *node.Reader) (err error) {
		cfg, err = r.DappStaking.TierConfig()
		return
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, cfg)
}

func (d *DappStaking) handleGetDApps(w http.ResponseWriter, _ *http.Request) error {
	var dapps []*DApp
	err := d.node.View(func(r *node.Reader) error {
		contracts, err := r.DappStaking.DApps()
		if err != nil {
			return err
		}
		dapps = make([]*DApp, 0, len(contracts))
		for _, contract := range contracts {
			dapp, err := loadDApp(r, contract)
			if err != nil {
				return err
			}
			if dapp != nil {
				dapps = append(dapps, dapp)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, dapps)
}

func (d *DappStaking) handleGetDApp(w http.ResponseWriter, req *http.Request) error {
	contract, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var dapp *DApp
	if err := d.node.View(func(r *node.Reader) (err error) {
		dapp, err = loadDApp(r, contract)
		return
	}); err != nil {
		return err
	}
	if dapp == nil {
		return utils.NotFound(errors.New("dapp not found"))
	}
	return utils.WriteJSON(w, dapp)
}

func (d *DappStaking) handleGetEraReward(w http.ResponseWriter, req *http.Request) error {
	era, err := utils.Uint32Var(req, "era")
	if err != nil {
		return err
	}
	var (
		reward rewards.EraReward
		found  bool
	)
	if err := d.node.View(func(r *node.Reader) (err error) {
		reward, found, err = r.DappStaking.EraReward(era)
		return
	}); err != nil {
		return err
	}
	if !found {
		return utils.NotFound(errors.Errorf("no reward for era %d", era))
	}
	return utils.WriteJSON(w, &reward)
}

func (d *DappStaking) handleGetPeriodEnd(w http.ResponseWriter, req *http.Request) error {
	period, err := utils.Uint32Var(req, "period")
	if err != nil {
		return err
	}
	var (
		info  *rewards.PeriodEndInfo
		found bool
	)
	if err := d.node.View(func(r *node.Reader) (err error) {
		info, found, err = r.DappStaking.PeriodEnd(period)
		return
	}); err != nil {
		return err
	}
	if !found {
		return utils.NotFound(errors.Errorf("period %d not ended", period))
	}
	return utils.WriteJSON(w, info)
}

type tierRewardsKey struct {
	period uint32
	block  uint32
}

func (d *DappStaking) handleGetPeriodTiers(w http.ResponseWriter, req *http.Request) error {
	period, err := utils.Uint32Var(req, "period")
	if err != nil {
		return err
	}
	key := tierRewardsKey{period: period, block: d.node.Number()}
	v, err := d.tierRewards.GetOrLoad(key, func(any) (any, error) {
		var (
			record *tiers.DAppTierRewards
			found  bool
		)
		if err := d.node.View(func(r *node.Reader) (err error) {
			record, found, err = r.DappStaking.DAppTiers(period)
			return
		}); err != nil {
			return nil, err
		}
		if !found {
			return nil, utils.NotFound(errors.Errorf("no tier rewards for period %d", period))
		}
		return record, nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, v)
}

func (d *DappStaking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/state").
		Methods(http.MethodGet).
		Name("dappstaking_get_state").
		HandlerFunc(utils.WrapHandlerFunc(d.handleGetState))
	sub.Path("/era-info").
		Methods(http.MethodGet).
		Name("dappstaking_get_era_info").
		HandlerFunc(utils.WrapHandlerFunc(d.handleGetEraInfo))
	sub.Path("/tier-params").
		Methods(http.MethodGet).
		Name("dappstaking_get_tier_params").
		HandlerFunc(utils.WrapHandlerFunc(d.handleGetTierParams))
	sub.Path("/tier-config").
		Methods(http.MethodGet).
		Name("dappstaking_get_tier_config").
		HandlerFunc(utils.WrapHandlerFunc(d.handleGetTierConfig))
	sub.Path("/dapps").
		Methods(http.MethodGet).
		Name("dappstaking_get_dapps").
		HandlerFunc(utils.WrapHandlerFunc(d.handleGetDApps))
	sub.Path("/dapps/{address}").
		Methods(http.MethodGet).
		Name("dappstaking_get_dapp").
		HandlerFunc(utils.WrapHandlerFunc(d.handleGetDApp))
	sub.Path("/era-rewards/{era:[0-9]+}").
		Methods(http.MethodGet).
		Name("dappstaking_get_era_reward").
		HandlerFunc(utils.WrapHandlerFunc(d.handleGetEraReward))
	sub.Path("/periods/{period:[0-9]+}/end").
		Methods(http.MethodGet).
		Name("dappstaking_get_period_end").
		HandlerFunc(utils.WrapHandlerFunc(d.handleGetPeriodEnd))
	sub.Path("/periods/{period:[0-9]+}/tiers").
		Methods(http.MethodGet).
		Name("dappstaking_get_period_tiers").
		HandlerFunc(utils.WrapHandlerFunc(d.handleGetPeriodTiers))
}
