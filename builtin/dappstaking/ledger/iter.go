// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"iter"
	"math/big"
)

// EraStakes yields the stake of every era in [first, last]. The eras before
// StakedFuture.Era pair with Staked, the rest with StakedFuture.
func (l *AccountLedger) EraStakes(first, last uint32) iter.Seq2[uint32, *big.Int] {
	return func(yield func(uint32, *big.Int) bool) {
		for era := first; era <= last && era >= first; era++ {
			if !yield(era, l.StakeAt(era)) {
				return
			}
		}
	}
}
