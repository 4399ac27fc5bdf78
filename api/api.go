// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/astar-network/astar/api/accounts"
	"github.com/astar-network/astar/api/blocks"
	"github.com/astar-network/astar/api/dappstaking"
	"github.com/astar-network/astar/api/extrinsics"
	apinode "github.com/astar-network/astar/api/node"
	"github.com/astar-network/astar/api/subscriptions"
	"github.com/astar-network/astar/log"
	"github.com/astar-network/astar/node"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins  string
	EnableReqLogger bool
	EnableMetrics   bool
}

// New return api router and the function closing the subscriptions.
func New(n *node.Node, opts Options) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	apinode.New(n).
		Mount(router, "/node")
	accounts.New(n).
		Mount(router, "/accounts")
	dappstaking.New(n).
		Mount(router, "/dappstaking")
	extrinsics.New(n).
		Mount(router, "/extrinsics")
	blocks.New(n).
		Mount(router, "/blocks")
	subs := subscriptions.New(n, origins)
	subs.Mount(router, "/subscriptions")

	if opts.EnableMetrics {
		router.Use(metricsHandler)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	if opts.EnableReqLogger {
		handler = RequestLoggerHandler(handler, logger)
	}
	return handler.ServeHTTP, subs.Close
}
