// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package protocol

import (
	"github.com/astar-network/astar/builtin/storage"
)

var slotProtocolState = storage.Slot("active-protocol-state")

// Service stores the protocol state.
type Service struct {
	state *storage.Value[*ProtocolState]
}

func New(sctx *storage.Context) *Service {
	return &Service{
		state: storage.NewValue[*ProtocolState](sctx, slotProtocolState),
	}
}

// Get returns the protocol state.
func (s *Service) Get() (*ProtocolState, error) {
	return s.state.Get()
}

// Set stores the protocol state.
func (s *Service) Set(state *ProtocolState) error {
	return s.state.Set(state)
}

// IsInitialized reports whether genesis has written a protocol state.
func (s *Service) IsInitialized() (bool, error) {
	return s.state.Exists()
}
