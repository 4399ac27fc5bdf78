// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dappstaking

import (
	"math/big"

	"github.com/astar-network/astar/metrics"
)

var (
	metricEra            = metrics.LazyLoadGauge("dappstaking_era")
	metricPeriod         = metrics.LazyLoadGauge("dappstaking_period")
	metricSubperiods     = metrics.LazyLoadCounterVec("dappstaking_subperiods_count", []string{"subperiod"})
	metricTotalLocked    = metrics.LazyLoadGauge("dappstaking_total_locked")
	metricTotalStaked    = metrics.LazyLoadGauge("dappstaking_total_staked")
	metricRewardsClaimed = metrics.LazyLoadCounterVec("dappstaking_rewards_claimed", []string{"kind"})
	metricRegisteredDApp = metrics.LazyLoadGauge("dappstaking_registered_dapps")
	metricTieredDApps    = metrics.LazyLoadHistogram("dappstaking_tiered_dapps", []int64{0, 1, 5, 10, 20, 50, 100, 200, 500})
)

var unit = big.NewInt(1e18)

// units converts an amount to whole tokens for gauges.
func units(amount *big.Int) int64 {
	if amount == nil {
		return 0
	}
	return new(big.Int).Quo(amount, unit).Int64()
}
