// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dappstaking

import (
	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/dappstaking/contracts"
	"github.com/astar-network/astar/node"
)

// DApp is a registered contract with its current stake.
type DApp struct {
	Contract astar.Address                  `json:"contract"`
	Info     *contracts.DAppInfo            `json:"info"`
	Stake    *contracts.ContractStakeAmount `json:"stake"`
}

// loadDApp returns nil for a contract never registered.
func loadDApp(r *node.Reader, contract astar.Address) (*DApp, error) {
	info, err := r.DappStaking.DApp(contract)
	if err != nil || info == nil {
		return nil, err
	}
	stake, err := r.DappStaking.ContractStake(info.ID)
	if err != nil {
		return nil, err
	}
	return &DApp{Contract: contract, Info: info, Stake: stake}, nil
}
