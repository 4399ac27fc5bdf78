// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfiguration(t *testing.T) {
	c := Default()
	assert.NoError(t, c.Validate())
	assert.Equal(t, uint32(11), c.ErasPerPeriod())
	assert.Equal(t, uint32(44), c.ErasPerCycle())
	assert.Equal(t, uint32(40), c.BuildAndEarnErasPerCycle())
	assert.Equal(t, uint64(20*4*12), c.BlocksPerCycle())
	assert.Equal(t, uint32(40), c.VotingSubperiodLength())

	c.BlocksPerEra = 0
	assert.Error(t, c.Validate())
}
