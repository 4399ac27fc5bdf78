// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package blocks

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/astar-network/astar/api/utils"
	"github.com/astar-network/astar/node"
	"github.com/astar-network/astar/runtime"
)

type Blocks struct {
	node *node.Node
}

func New(n *node.Node) *Blocks {
	return &Blocks{n}
}

// only recent blocks are kept
func (b *Blocks) getBlock(req *http.Request) (*runtime.Block, error) {
	number, err := utils.Uint32Var(req, "number")
	if err != nil {
		return nil, err
	}
	block, ok := b.node.Block(number)
	if !ok {
		return nil, utils.NotFound(errors.Errorf("block %d not found", number))
	}
	return block, nil
}

func (b *Blocks) handleGetBlock(w http.ResponseWriter, req *http.Request) error {
	block, err := b.getBlock(req)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, block)
}

func (b *Blocks) handleGetReceipts(w http.ResponseWriter, req *http.Request) error {
	block, err := b.getBlock(req)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, block.Receipts)
}

func (b *Blocks) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{number:[0-9]+}").
		Methods(http.MethodGet).
		Name("blocks_get_block").
		HandlerFunc(utils.WrapHandlerFunc(b.handleGetBlock))
	sub.Path("/{number:[0-9]+}/receipts").
		Methods(http.MethodGet).
		Name("blocks_get_receipts").
		HandlerFunc(utils.WrapHandlerFunc(b.handleGetReceipts))
}
