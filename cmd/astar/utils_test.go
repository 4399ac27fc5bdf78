// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"testing"

	"github.com/elastic/gosigar"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeCacheSize(t *testing.T) {
	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		t.Skip("total memory unavailable")
	}
	limitMB := int(mem.Total / 1024 / 1024 / 2)

	assert.Equal(t, min(128, limitMB), normalizeCacheSize(1))
	assert.Equal(t, limitMB, normalizeCacheSize(limitMB+1))
}

func TestFullVersion(t *testing.T) {
	assert.Equal(t, "--dev", fullVersion())
}
