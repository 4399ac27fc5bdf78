// Copyright (c) 2018 The VeChainThor developers
// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/astar-network/astar/metrics"
)

var metricCacheHits = metrics.LazyLoadCounterVec("cache_hits_count", []string{"name", "hit"})

// LRU a LRU cache extends golang-lru.
type LRU struct {
	*lru.Cache
	name string
}

// NewLRU create a LRU cache instance.
// maxSize should be > 0, or an error returned.
func NewLRU(name string, maxSize int) (*LRU, error) {
	cache, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &LRU{cache, name}, nil
}

// Loader defines loader to load value.
type Loader func(key any) (any, error)

// GetOrLoad first try to get from cache, do load if missed.
// Values that fail to load are not cached.
func (l *LRU) GetOrLoad(key any, loader Loader) (any, error) {
	if v, ok := l.Get(key); ok {
		metricCacheHits().AddWithLabel(1, map[string]string{"name": l.name, "hit": "true"})
		return v, nil
	}
	metricCacheHits().AddWithLabel(1, map[string]string{"name": l.name, "hit": "false"})

	v, err := loader(key)
	if err != nil {
		return nil, err
	}
	l.Add(key, v)
	return v, nil
}
