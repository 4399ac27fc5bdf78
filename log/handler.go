// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"io"
	"log/slog"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// leveledHandler filters records below a level that may change while
// logging, e.g. a *slog.LevelVar.
type leveledHandler struct {
	slog.Handler
	level slog.Leveler
}

func withLeveler(h slog.Handler, level slog.Leveler) slog.Handler {
	return &leveledHandler{Handler: h, level: level}
}

func (h *leveledHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level.Level() && h.Handler.Enabled(ctx, level)
}

func (h *leveledHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return withLeveler(h.Handler.WithAttrs(attrs), h.level)
}

func (h *leveledHandler) WithGroup(name string) slog.Handler {
	return withLeveler(h.Handler.WithGroup(name), h.level)
}

// NewTerminalHandler returns a human readable handler filtering below level.
func NewTerminalHandler(wr io.Writer, level slog.Leveler, useColor bool) slog.Handler {
	return withLeveler(ethlog.NewTerminalHandlerWithLevel(wr, LevelTrace, useColor), level)
}

// NewJSONHandler returns a JSON lines handler filtering below level.
func NewJSONHandler(wr io.Writer, level slog.Leveler) slog.Handler {
	return withLeveler(ethlog.JSONHandlerWithLevel(wr, LevelTrace), level)
}

// DiscardHandler returns a no-op handler.
func DiscardHandler() slog.Handler {
	return ethlog.DiscardHandler()
}
