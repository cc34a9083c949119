// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sstore

import (
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/farm"
)

// Key is anything usable as a mapping key.
type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction similar to the mapping in
// Solidity. Values are stored at positions derived from the base slot and
// the key, encoded with rlp or, when *V implements the state codec
// interfaces, with the value's own codec.
type Mapping[K Key, V any] struct {
	context *Context
	basePos farm.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos farm.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

func (m *Mapping[K, V]) position(key K) farm.Bytes32 {
	return farm.Blake2b(key.Bytes(), m.basePos.Bytes())
}

func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	err = m.context.state.GetStructuredStorage(m.context.address, m.position(key), &value)
	return
}

func (m *Mapping[K, V]) Set(key K, value V) error {
	return m.context.state.SetStructuredStorage(m.context.address, m.position(key), &value)
}
