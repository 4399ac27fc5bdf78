// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"

	"github.com/astar-network/astar/api/utils"
	"github.com/astar-network/astar/builtin/dappstaking/protocol"
	"github.com/astar-network/astar/node"
)

// Info is the status of the node.
type Info struct {
	Number         uint32                  `json:"number"`
	ProtocolState  *protocol.ProtocolState `json:"protocolState"`
	StorageVersion uint32                  `json:"storageVersion"`
	DAppCount      uint32                  `json:"dappCount"`
	TotalIssuance  *math.HexOrDecimal256   `json:"totalIssuance"`
}

type Node struct {
	node *node.Node
}

func New(n *node.Node) *Node {
	return &Node{n}
}

func (n *Node) handleGetInfo(w http.ResponseWriter, _ *http.Request) error {
	var info Info
	err := n.node.View(func(r *node.Reader) (err error) {
		info.Number = r.Number
		if info.ProtocolState, err = r.DappStaking.ProtocolState(); err != nil {
			return
		}
		if info.StorageVersion, err = r.DappStaking.StorageVersion(); err != nil {
			return
		}
		if info.DAppCount, err = r.DappStaking.DAppCount(); err != nil {
			return
		}
		issuance, err := r.Balances.TotalIssuance()
		if err != nil {
			return
		}
		info.TotalIssuance = (*math.HexOrDecimal256)(issuance)
		return
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &info)
}

func (n *Node) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("node_get_info").
		HandlerFunc(utils.WrapHandlerFunc(n.handleGetInfo))
}
