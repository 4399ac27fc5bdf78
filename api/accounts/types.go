// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"bytes"
	"sort"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/dappstaking/ledger"
)

// Account for marshal account
type Account struct {
	Free     *math.HexOrDecimal256 `json:"free"`
	Reserved *math.HexOrDecimal256 `json:"reserved"`
	Frozen   *math.HexOrDecimal256 `json:"frozen"`
	Usable   *math.HexOrDecimal256 `json:"usable"`
}

// Stake is the stake of an account on one contract.
type Stake struct {
	Contract astar.Address `json:"contract"`
	*ledger.StakerInfo
}

func sortStakes(stakes []*Stake) {
	sort.Slice(stakes, func(i, j int) bool {
		return bytes.Compare(stakes[i].Contract[:], stakes[j].Contract[:]) < 0
	})
}
