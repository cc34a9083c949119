// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/farm"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/kv"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/stackedmap"
)

// storageBucket prefixes all persisted storage entries.
const storageBucket = kv.Bucket("s")

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// storageKey identifies a storage entry of an address.
type storageKey struct {
	addr farm.Address
	key  farm.Bytes32
}

// State manages the ledger world state.
//
// All reads/writes go through a stacked map keeping key revisions, so that a
// mutating operation can open a checkpoint and wholly revert its writes on
// failure. Nothing hits the backing store until Commit.
type State struct {
	store kv.GetPutter
	sm    *stackedmap.StackedMap[storageKey, rlp.RawValue]
}

// New creates a state object backed by the given store.
func New(store kv.GetPutter) *State {
	bucketed := storageBucket.NewStore(store)
	state := &State{store: bucketed}
	state.sm = stackedmap.New(state.srcGetter)
	// base level, collects writes to be committed
	state.sm.Push()
	return state
}

// srcGetter loads a storage entry from the backing store.
func (s *State) srcGetter(k storageKey) (rlp.RawValue, bool, error) {
	raw, err := s.store.Get(append(k.addr.Bytes(), k.key.Bytes()...))
	if err != nil {
		if s.store.IsNotFound(err) {
			return nil, true, nil
		}
		return nil, false, &Error{err}
	}
	return raw, true, nil
}

// GetRawStorage returns the raw rlp encoded storage value for the given address and key.
func (s *State) GetRawStorage(addr farm.Address, key farm.Bytes32) (rlp.RawValue, error) {
	raw, _, err := s.sm.Get(storageKey{addr, key})
	return raw, err
}

// SetRawStorage sets the raw rlp encoded storage value. Empty raw clears the entry.
func (s *State) SetRawStorage(addr farm.Address, key farm.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr farm.Address, key farm.Bytes32) (farm.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return farm.Bytes32{}, err
	}
	if len(raw) == 0 {
		return farm.Bytes32{}, nil
	}
	_, content, _, err := rlp.Split(raw)
	if err != nil {
		return farm.Bytes32{}, &Error{err}
	}
	return farm.BytesToBytes32(content), nil
}

// SetStorage sets storage value for the given address and key.
func (s *State) SetStorage(addr farm.Address, key, value farm.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// DecodeStorage gets and decodes storage value.
func (s *State) DecodeStorage(addr farm.Address, key farm.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// EncodeStorage encodes and sets storage value.
func (s *State) EncodeStorage(addr farm.Address, key farm.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// GetStructuredStorage gets and decodes a structured storage value.
// If val implements StorageDecoder the custom codec is used, otherwise rlp.
func (s *State) GetStructuredStorage(addr farm.Address, key farm.Bytes32, val any) error {
	return s.DecodeStorage(addr, key, func(raw []byte) error {
		if dec, ok := val.(StorageDecoder); ok {
			return dec.Decode(raw)
		}
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, val)
	})
}

// SetStructuredStorage encodes and sets a structured storage value.
// If val implements StorageEncoder the custom codec is used, otherwise rlp.
func (s *State) SetStructuredStorage(addr farm.Address, key farm.Bytes32, val any) error {
	return s.EncodeStorage(addr, key, func() ([]byte, error) {
		if enc, ok := val.(StorageEncoder); ok {
			return enc.Encode()
		}
		return rlp.EncodeToBytes(val)
	})
}

// NewCheckpoint makes a checkpoint of current state.
// It returns a checkpoint that can be passed to RevertTo.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo reverts the state to the given checkpoint.
func (s *State) RevertTo(checkpoint int) {
	s.sm.PopTo(checkpoint)
}

// Commit writes all accumulated changes into the backing store atomically,
// then resets the in-memory revision stack.
func (s *State) Commit() error {
	batch := s.store.NewBatch()

	var werr error
	s.sm.Journal(func(k storageKey, v rlp.RawValue) bool {
		key := append(k.addr.Bytes(), k.key.Bytes()...)
		if len(v) == 0 {
			werr = batch.Delete(key)
		} else {
			werr = batch.Put(key, v)
		}
		return werr == nil
	})
	if werr != nil {
		return &Error{werr}
	}
	if err := batch.Write(); err != nil {
		return &Error{err}
	}

	s.sm = stackedmap.New(s.srcGetter)
	s.sm.Push()
	return nil
}
