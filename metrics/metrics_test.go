// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	assert.Nil(t, defaultNoopMetrics().GetOrCreateHandler())

	lazy := LazyLoadCounter("noop_lazy")
	lazy().Add(1)
	assert.Equal(t, lazy(), lazy())
}

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()

	Counter("era_count").Add(1)
	Counter("era_count").Add(2)
	CounterVec("claims", []string{"kind"}).AddWithLabel(5, map[string]string{"kind": "staker"})
	Gauge("locked").Set(42)
	GaugeVec("tier_slots", []string{"tier"}).SetWithLabel(3, map[string]string{"tier": "0"})
	Histogram("block_ms", BucketBlockExecution).Observe(7)
	HistogramVec("req_ms", []string{"path"}, BucketHTTPReqs).ObserveWithLabels(4, map[string]string{"path": "/"})

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	found := make(map[string]*dto.MetricFamily)
	for _, mf := range families {
		found[mf.GetName()] = mf
	}

	require.Contains(t, found, "astar_metrics_era_count")
	assert.Equal(t, float64(3), found["astar_metrics_era_count"].Metric[0].GetCounter().GetValue())
	assert.Equal(t, float64(42), found["astar_metrics_locked"].Metric[0].GetGauge().GetValue())
	assert.Equal(t, float64(5), found["astar_metrics_claims"].Metric[0].GetCounter().GetValue())
	assert.Equal(t, float64(7), found["astar_metrics_block_ms"].Metric[0].GetHistogram().GetSampleSum())
	assert.NotNil(t, HTTPHandler())
}
