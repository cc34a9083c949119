// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sstore

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/farm"
)

// AddressList is an append-only array of addresses, similar to a dynamic
// array in a smart contract. The length lives at the base slot, element i at
// a position derived from the base slot and i.
type AddressList struct {
	context *Context
	pos     farm.Bytes32
}

func NewAddressList(context *Context, pos farm.Bytes32) *AddressList {
	return &AddressList{context: context, pos: pos}
}

func (l *AddressList) elementPos(index uint64) farm.Bytes32 {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], index)
	return farm.Blake2b(l.pos.Bytes(), b[:])
}

// Len returns the number of appended addresses.
func (l *AddressList) Len() (uint64, error) {
	storage, err := l.context.state.GetStorage(l.context.address, l.pos)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(storage[24:]), nil
}

// Append adds an address at the end of the list and returns the new length.
func (l *AddressList) Append(addr farm.Address) (uint64, error) {
	length, err := l.Len()
	if err != nil {
		return 0, err
	}
	l.context.state.SetStorage(l.context.address, l.elementPos(length), farm.BytesToBytes32(addr.Bytes()))

	var b farm.Bytes32
	binary.BigEndian.PutUint64(b[24:], length+1)
	l.context.state.SetStorage(l.context.address, l.pos, b)
	return length + 1, nil
}

// Get returns the address at the given index.
func (l *AddressList) Get(index uint64) (farm.Address, error) {
	length, err := l.Len()
	if err != nil {
		return farm.Address{}, err
	}
	if index >= length {
		return farm.Address{}, errors.New("index out of range")
	}
	storage, err := l.context.state.GetStorage(l.context.address, l.elementPos(index))
	if err != nil {
		return farm.Address{}, err
	}
	return farm.BytesToAddress(storage.Bytes()), nil
}

// Iter iterates all appended addresses in insertion order.
func (l *AddressList) Iter(cb func(farm.Address) error) error {
	length, err := l.Len()
	if err != nil {
		return err
	}
	for i := uint64(0); i < length; i++ {
		storage, err := l.context.state.GetStorage(l.context.address, l.elementPos(i))
		if err != nil {
			return err
		}
		if err := cb(farm.BytesToAddress(storage.Bytes())); err != nil {
			return err
		}
	}
	return nil
}
