// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"

	"github.com/astar-network/astar/api/utils"
	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/dappstaking/ledger"
	"github.com/astar-network/astar/node"
)

type Accounts struct {
	node *node.Node
}

func New(n *node.Node) *Accounts {
	return &Accounts{n}
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var acc Account
	err = a.node.View(func(r *node.Reader) error {
		raw, err := r.Balances.Account(addr)
		if err != nil {
			return err
		}
		usable, err := r.Balances.Usable(addr)
		if err != nil {
			return err
		}
		acc = Account{
			Free:     (*math.HexOrDecimal256)(raw.Free),
			Reserved: (*math.HexOrDecimal256)(raw.Reserved),
			Frozen:   (*math.HexOrDecimal256)(raw.Frozen),
			Usable:   (*math.HexOrDecimal256)(usable),
		}
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &acc)
}

func (a *Accounts) handleGetLedger(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var l *ledger.AccountLedger
	if err := a.node.View(func(r *node.Reader) (err error) {
		l, err = r.DappStaking.Ledger(addr)
		return
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, l)
}

func (a *Accounts) handleGetStakes(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var infos map[astar.Address]*ledger.StakerInfo
	if err := a.node.View(func(r *node.Reader) (err error) {
		infos, err = r.DappStaking.StakerInfos(addr)
		return
	}); err != nil {
		return err
	}
	stakes := make([]*Stake, 0, len(infos))
	for contract, info := range infos {
		stakes = append(stakes, &Stake{Contract: contract, StakerInfo: info})
	}
	sortStakes(stakes)
	return utils.WriteJSON(w, stakes)
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("accounts_get_account").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
	sub.Path("/{address}/ledger").
		Methods(http.MethodGet).
		Name("accounts_get_ledger").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetLedger))
	sub.Path("/{address}/stakes").
		Methods(http.MethodGet).
		Name("accounts_get_stakes").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetStakes))
}
