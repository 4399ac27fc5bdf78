// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log is a thin layer over go-ethereum's slog based logger.
// Package level loggers created with WithContext follow the root logger
// installed by SetDefault, even when they are created before it.
package log

import (
	"context"
	"log/slog"
	"sync/atomic"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// Levels of the underlying logger.
const (
	LevelTrace = ethlog.LevelTrace
	LevelDebug = ethlog.LevelDebug
	LevelInfo  = ethlog.LevelInfo
	LevelWarn  = ethlog.LevelWarn
	LevelError = ethlog.LevelError
	LevelCrit  = ethlog.LevelCrit
)

// Logger writes key/value pairs to the root handler.
type Logger interface {
	With(ctx ...any) Logger
	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Crit(msg string, ctx ...any)
	Enabled(level slog.Level) bool
}

var generation atomic.Uint64

// SetDefault installs h as the root handler.
func SetDefault(h slog.Handler) {
	ethlog.SetDefault(ethlog.NewLogger(h))
	generation.Add(1)
}

// Root returns the root logger.
func Root() Logger {
	return &contextLogger{}
}

// WithContext returns a logger carrying ctx on every record.
func WithContext(ctx ...any) Logger {
	return &contextLogger{ctx: ctx}
}

// New is an alias of WithContext.
func New(ctx ...any) Logger {
	return WithContext(ctx...)
}

// FromLegacyLevel converts the 0 (crit) to 5 (trace) verbosity scale into a level.
func FromLegacyLevel(lvl int) slog.Level {
	switch {
	case lvl <= 0:
		return LevelCrit
	case lvl == 1:
		return LevelError
	case lvl == 2:
		return LevelWarn
	case lvl == 3:
		return LevelInfo
	case lvl == 4:
		return LevelDebug
	default:
		return LevelTrace
	}
}

type bound struct {
	gen uint64
	l   ethlog.Logger
}

type contextLogger struct {
	ctx   []any
	cache atomic.Pointer[bound]
}

func (c *contextLogger) inner() ethlog.Logger {
	gen := generation.Load()
	if b := c.cache.Load(); b != nil && b.gen == gen {
		return b.l
	}
	l := ethlog.Root()
	if len(c.ctx) > 0 {
		l = l.With(c.ctx...)
	}
	c.cache.Store(&bound{gen, l})
	return l
}

func (c *contextLogger) With(ctx ...any) Logger {
	merged := make([]any, 0, len(c.ctx)+len(ctx))
	merged = append(merged, c.ctx...)
	return &contextLogger{ctx: append(merged, ctx...)}
}

func (c *contextLogger) Trace(msg string, ctx ...any) { c.inner().Trace(msg, ctx...) }
func (c *contextLogger) Debug(msg string, ctx ...any) { c.inner().Debug(msg, ctx...) }
func (c *contextLogger) Info(msg string, ctx ...any)  { c.inner().Info(msg, ctx...) }
func (c *contextLogger) Warn(msg string, ctx ...any)  { c.inner().Warn(msg, ctx...) }
func (c *contextLogger) Error(msg string, ctx ...any) { c.inner().Error(msg, ctx...) }
func (c *contextLogger) Crit(msg string, ctx ...any)  { c.inner().Crit(msg, ctx...) }

func (c *contextLogger) Enabled(level slog.Level) bool {
	return c.inner().Enabled(context.Background(), level)
}
