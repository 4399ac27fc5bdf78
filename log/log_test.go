// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextLoggerFollowsDefault(t *testing.T) {
	logger := WithContext("pkg", "test")

	var buf bytes.Buffer
	var level slog.LevelVar
	level.Set(LevelInfo)
	SetDefault(NewJSONHandler(&buf, &level))
	t.Cleanup(func() { SetDefault(DiscardHandler()) })

	logger.Info("hello", "era", 3)
	assert.Contains(t, buf.String(), `"pkg":"test"`)
	assert.Contains(t, buf.String(), `"era":3`)

	buf.Reset()
	logger.Debug("hidden")
	assert.Empty(t, buf.String())
	assert.False(t, logger.Enabled(LevelDebug))

	logger.With("sub", "x").Warn("warned")
	assert.Contains(t, buf.String(), `"sub":"x"`)
	assert.Contains(t, buf.String(), `"pkg":"test"`)
}

func TestFromLegacyLevel(t *testing.T) {
	assert.Equal(t, LevelCrit, FromLegacyLevel(0))
	assert.Equal(t, LevelInfo, FromLegacyLevel(3))
	assert.Equal(t, LevelTrace, FromLegacyLevel(9))
}

func TestHandlerLevelAdjustable(t *testing.T) {
	logger := WithContext("pkg", "test")

	var buf bytes.Buffer
	var level slog.LevelVar
	level.Set(LevelWarn)
	SetDefault(NewTerminalHandler(&buf, &level, false))
	t.Cleanup(func() { SetDefault(DiscardHandler()) })

	logger.Info("quiet")
	assert.Empty(t, buf.String())

	level.Set(LevelDebug)
	logger.With("era", 7).Debug("loud")
	assert.Contains(t, buf.String(), "loud")
	assert.Contains(t, buf.String(), "era=7")
	assert.True(t, logger.Enabled(LevelDebug))
	assert.False(t, logger.Enabled(LevelTrace))
}
