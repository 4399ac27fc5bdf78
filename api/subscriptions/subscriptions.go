// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/astar-network/astar/api/utils"
	"github.com/astar-network/astar/log"
	"github.com/astar-network/astar/node"
	"github.com/astar-network/astar/runtime"
)

var logger = log.WithContext("pkg", "subscriptions")

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 7) / 10

	// Blocks buffered per subscriber before it is dropped.
	queueSize = 64
)

var (
	errNodeStopped       = errors.New("node stopped")
	errSubscriberLagging = errors.New("subscriber too slow")
)

type Subscriptions struct {
	node     *node.Node
	upgrader *websocket.Upgrader
	done     chan struct{}
	wg       sync.WaitGroup
}

// New creates the websocket subscriptions. Origins are matched like the
// CORS allowed origins, "*" accepting any.
func New(n *node.Node, allowedOrigins []string) *Subscriptions {
	return &Subscriptions{
		node: n,
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(r *http.Request) bool {
				origin := strings.ToLower(r.Header.Get("Origin"))
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == origin || allowed == "*" {
						return true
					}
				}
				return false
			},
		},
		done: make(chan struct{}),
	}
}

// filter selects the messages sent for a block.
type filter func(b *runtime.Block) []any

func blockFilter(b *runtime.Block) []any {
	return []any{b}
}

func eventFilter(names map[string]bool) filter {
	return func(b *runtime.Block) []any {
		var msgs []any
		add := func(r *runtime.EventRecord, index *uint32) {
			if len(names) == 0 || names[r.Name] {
				msgs = append(msgs, &EventMessage{Block: b.Number, Extrinsic: index, EventRecord: r})
			}
		}
		for _, r := range b.Events {
			add(r, nil)
		}
		for _, receipt := range b.Receipts {
			for _, r := range receipt.Events {
				add(r, &receipt.Index)
			}
		}
		return msgs
	}
}

func (s *Subscriptions) handleSubscribeBlock(w http.ResponseWriter, req *http.Request) error {
	return s.pipe(w, req, blockFilter)
}

func (s *Subscriptions) handleSubscribeEvent(w http.ResponseWriter, req *http.Request) error {
	names := make(map[string]bool)
	if query := req.URL.Query().Get("name"); query != "" {
		for _, name := range strings.Split(query, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names[name] = true
			}
		}
	}
	return s.pipe(w, req, eventFilter(names))
}

// relay moves blocks from the feed to out without ever blocking the feed. A
// subscriber whose queue is full is dropped. out is closed on return.
func relay(sub event.Subscription, in <-chan *runtime.Block, out chan<- *runtime.Block, stop <-chan struct{}) error {
	defer close(out)
	defer sub.Unsubscribe()

	for {
		select {
		case <-stop:
			return nil
		case err := <-sub.Err():
			if err == nil {
				err = errNodeStopped
			}
			return err
		case b := <-in:
			select {
			case out <- b:
			default:
				return errSubscriberLagging
			}
		}
	}
}

func (s *Subscriptions) pipe(w http.ResponseWriter, req *http.Request, f filter) error {
	// subscribe before the handshake completes so no block is missed
	blocks := make(chan *runtime.Block)
	sub := s.node.SubscribeNewBlock(blocks)

	queue := make(chan *runtime.Block, queueSize)
	stop := make(chan struct{})
	relayErr := make(chan error, 1)
	go func() {
		relayErr <- relay(sub, blocks, queue, stop)
	}()
	defer func() {
		close(stop)
		for range queue {
		}
	}()

	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		// the upgrader already responded
		logger.Debug("upgrade failed", "err", err)
		return nil
	}
	s.wg.Add(1)
	defer s.wg.Done()

	closed := make(chan struct{})
	// the reader detects the peer going away
	go func() {
		defer close(closed)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	err = s.writeLoop(conn, f, queue, relayErr, closed)
	if err != nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		logger.Debug("subscription closed", "err", err)
	}
	conn.Close()
	<-closed
	return nil
}

func (s *Subscriptions) writeLoop(conn *websocket.Conn, f filter, queue <-chan *runtime.Block, relayErr <-chan error, closed <-chan struct{}) error {
	pingTicker := time.NewTicker(pingPeriod)
	defer pingTicker.Stop()

	closeWith := func(code int, text string) error {
		return conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(code, text),
			time.Now().Add(writeWait))
	}

	for {
		select {
		case <-s.done:
			return closeWith(websocket.CloseGoingAway, "service shutdown")
		case <-closed:
			return nil
		case b, ok := <-queue:
			if !ok {
				err := <-relayErr
				if errors.Is(err, errSubscriberLagging) {
					closeWith(websocket.CloseTryAgainLater, err.Error())
				} else {
					closeWith(websocket.CloseGoingAway, err.Error())
				}
				return err
			}
			for _, msg := range f(b) {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(msg); err != nil {
					return err
				}
			}
		case <-pingTicker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return err
			}
		}
	}
}

// Close ends every subscription and waits for them.
func (s *Subscriptions) Close() {
	close(s.done)
	s.wg.Wait()
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/block").
		Methods(http.MethodGet).
		Name("subscriptions_block").
		HandlerFunc(utils.WrapHandlerFunc(s.handleSubscribeBlock))
	sub.Path("/event").
		Methods(http.MethodGet).
		Name("subscriptions_event").
		HandlerFunc(utils.WrapHandlerFunc(s.handleSubscribeEvent))
}
