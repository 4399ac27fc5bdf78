// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package weightmeter

import "fmt"

// Weights of storage operations, per 32 byte word touched.
const (
	ReadWeight  uint64 = 25_000
	WriteWeight uint64 = 100_000
	// BaseWeight is charged once per dispatched call.
	BaseWeight uint64 = 50_000
)

// Meter accumulates the weight consumed by one dispatch.
// A nil *Meter is valid and records nothing.
type Meter struct {
	reads    uint64
	writes   uint64
	custom   uint64
	consumed uint64
}

// New returns an empty meter.
func New() *Meter {
	return &Meter{}
}

func words(size int) uint64 {
	return (uint64(size) + 31) / 32
}

// Read charges reading size bytes.
func (m *Meter) Read(size int) {
	if m == nil {
		return
	}
	w := max(words(size), 1)
	m.reads += w
	m.consumed += w * ReadWeight
}

// Write charges writing size bytes.
func (m *Meter) Write(size int) {
	if m == nil {
		return
	}
	w := max(words(size), 1)
	m.writes += w
	m.consumed += w * WriteWeight
}

// Charge adds an arbitrary weight.
func (m *Meter) Charge(weight uint64) {
	if m == nil {
		return
	}
	m.custom += weight
	m.consumed += weight
}

// Consumed returns the total weight recorded.
func (m *Meter) Consumed() uint64 {
	if m == nil {
		return 0
	}
	return m.consumed
}

// Breakdown describes the consumed weight per kind.
func (m *Meter) Breakdown() string {
	if m == nil {
		return "no meter"
	}
	return fmt.Sprintf(
		"READ: %d words (%d) | WRITE: %d words (%d) | CUSTOM: %d | TOTAL: %d",
		m.reads, m.reads*ReadWeight,
		m.writes, m.writes*WriteWeight,
		m.custom,
		m.consumed,
	)
}
