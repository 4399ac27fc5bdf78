// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package protocol

import (
	"github.com/pkg/errors"

	"github.com/astar-network/astar/astar"
)

// Subperiod of a period.
type Subperiod uint8

const (
	// Voting is the single era subperiod in which stake is bonus eligible.
	Voting Subperiod = iota
	// BuildAndEarn is the multi era subperiod in which rewards accrue.
	BuildAndEarn
)

// Next returns the subperiod following s.
func (s Subperiod) Next() Subperiod {
	if s == Voting {
		return BuildAndEarn
	}
	return Voting
}

func (s Subperiod) String() string {
	if s == Voting {
		return "Voting"
	}
	return "BuildAndEarn"
}

// MarshalText implements encoding.TextMarshaler.
func (s Subperiod) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ForcingType selects what Force advances.
type ForcingType uint8

const (
	// ForceEra ends the current era at the next block.
	ForceEra ForcingType = iota
	// ForceSubperiod ends the current subperiod at the next block.
	ForceSubperiod
)

func (f ForcingType) String() string {
	if f == ForceEra {
		return "Era"
	}
	return "Subperiod"
}

// MarshalText implements encoding.TextMarshaler.
func (f ForcingType) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *ForcingType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Era":
		*f = ForceEra
	case "Subperiod":
		*f = ForceSubperiod
	default:
		return errors.Errorf("unknown forcing type %q", text)
	}
	return nil
}

// PeriodInfo locates the protocol inside a period.
type PeriodInfo struct {
	Number          uint32    `json:"number"`
	Subperiod       Subperiod `json:"subperiod"`
	SubperiodEndEra uint32    `json:"subperiodEndEra"`
}

// IsNextPeriod reports whether era nextEra starts a new subperiod.
func (p PeriodInfo) IsNextPeriod(nextEra uint32) bool {
	return nextEra >= p.SubperiodEndEra
}

// ProtocolState is the singleton describing where the protocol is.
type ProtocolState struct {
	Era          uint32     `json:"era"`
	NextEraStart uint32     `json:"nextEraStart"`
	PeriodInfo   PeriodInfo `json:"periodInfo"`
	Maintenance  bool       `json:"maintenance"`
}

// Genesis returns the state at the first block: era 1 of period 1 in Voting.
func Genesis(votingLength uint32) *ProtocolState {
	return &ProtocolState{
		Era:          1,
		NextEraStart: astar.SaturatingAddU32(1, votingLength),
		PeriodInfo: PeriodInfo{
			Number:          1,
			Subperiod:       Voting,
			SubperiodEndEra: 2,
		},
	}
}

// Subperiod returns the current subperiod.
func (p *ProtocolState) Subperiod() Subperiod {
	return p.PeriodInfo.Subperiod
}

// PeriodNumber returns the current period.
func (p *ProtocolState) PeriodNumber() uint32 {
	return p.PeriodInfo.Number
}

// PeriodEndEra returns the era at which the current subperiod ends.
func (p *ProtocolState) PeriodEndEra() uint32 {
	return p.PeriodInfo.SubperiodEndEra
}

// IsNewEra reports whether block now crosses into the next era.
func (p *ProtocolState) IsNewEra(now uint32) bool {
	return p.NextEraStart <= now
}

// IsLastEraOfPeriod reports whether the current era is the last build&earn era.
func (p *ProtocolState) IsLastEraOfPeriod() bool {
	return p.Subperiod() == BuildAndEarn && p.PeriodInfo.IsNextPeriod(astar.SaturatingAddU32(p.Era, 1))
}

// AdvanceToNextSubperiod flips the subperiod, starting a new period when
// entering Voting.
func (p *ProtocolState) AdvanceToNextSubperiod(subperiodEndEra, nextEraStart uint32) {
	next := p.Subperiod().Next()
	number := p.PeriodInfo.Number
	if next == Voting {
		number = astar.SaturatingAddU32(number, 1)
	}
	p.PeriodInfo = PeriodInfo{
		Number:          number,
		Subperiod:       next,
		SubperiodEndEra: subperiodEndEra,
	}
	p.NextEraStart = nextEraStart
}
