// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package extrinsics

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/astar-network/astar/api/utils"
	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/node"
	"github.com/astar-network/astar/runtime"
	"github.com/astar-network/astar/txpool"
)

type Extrinsics struct {
	node *node.Node
}

func New(n *node.Node) *Extrinsics {
	return &Extrinsics{n}
}

func (e *Extrinsics) handleSendExtrinsic(w http.ResponseWriter, req *http.Request) error {
	var x runtime.Extrinsic
	if err := utils.ParseJSON(req.Body, &x); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := e.node.Submit(&x); err != nil {
		switch {
		case txpool.IsBadTx(err):
			return utils.BadRequest(err)
		case txpool.IsErrKnownTx(err):
			return utils.Forbidden(err)
		case txpool.IsErrPoolFull(err):
			return utils.HTTPError(err, http.StatusServiceUnavailable)
		}
		return err
	}
	return utils.WriteJSON(w, map[string]astar.Bytes32{"hash": x.Hash()})
}

func (e *Extrinsics) handleGetCalls(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, runtime.Calls())
}

func (e *Extrinsics) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("extrinsics_send_extrinsic").
		HandlerFunc(utils.WrapHandlerFunc(e.handleSendExtrinsic))
	sub.Path("/calls").
		Methods(http.MethodGet).
		Name("extrinsics_get_calls").
		HandlerFunc(utils.WrapHandlerFunc(e.handleGetCalls))
}
