// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package weightmeter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeter(t *testing.T) {
	m := New()
	m.Read(0)
	m.Read(33)
	m.Write(32)
	m.Charge(7)

	assert.Equal(t, 3*ReadWeight+WriteWeight+7, m.Consumed())
	assert.Contains(t, m.Breakdown(), "READ: 3 words")

	var nilMeter *Meter
	nilMeter.Read(10)
	nilMeter.Charge(1)
	assert.Zero(t, nilMeter.Consumed())
}
