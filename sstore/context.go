// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sstore

import (
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/farm"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/state"
)

// Context binds structured storage accessors to a contract address on a state.
type Context struct {
	address farm.Address
	state   *state.State
}

func NewContext(address farm.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() farm.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}
