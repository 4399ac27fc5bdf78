// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package storage

import (
	"github.com/astar-network/astar/astar"
	"github.com/astar-network/astar/builtin/weightmeter"
	"github.com/astar-network/astar/state"
)

// Context binds typed storage items to a module account in the state.
type Context struct {
	address astar.Address
	state   *state.State
	meter   *weightmeter.Meter
}

// NewContext creates a storage context for the module at address.
func NewContext(address astar.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

// Address returns the module account owning the storage.
func (c *Context) Address() astar.Address {
	return c.address
}

// State returns the backing state.
func (c *Context) State() *state.State {
	return c.state
}

// SetMeter installs the meter charged by subsequent storage accesses.
// Passing nil disables metering.
func (c *Context) SetMeter(m *weightmeter.Meter) {
	c.meter = m
}

// Meter returns the installed meter, possibly nil.
func (c *Context) Meter() *weightmeter.Meter {
	return c.meter
}
