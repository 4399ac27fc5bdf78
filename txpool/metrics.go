// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package txpool

import (
	"github.com/astar-network/astar/metrics"
)

var (
	metricPending  = metrics.LazyLoadGauge("txpool_pending_count")
	metricRejected = metrics.LazyLoadCounterVec("txpool_rejected_count", []string{"reason"})
)
