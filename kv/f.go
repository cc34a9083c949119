// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

type (
	// GetFunc adapts a function to Getter.Get.
	GetFunc func(key []byte) ([]byte, error)
	// HasFunc adapts a function to Getter.Has.
	HasFunc func(key []byte) (bool, error)
	// IsNotFoundFunc adapts a function to Getter.IsNotFound.
	IsNotFoundFunc func(err error) bool
	// NewIteratorFunc adapts a function to Getter.NewIterator.
	NewIteratorFunc func(r Range) Iterator
	// PutFunc adapts a function to Putter.Put.
	PutFunc func(key, val []byte) error
	// DeleteFunc adapts a function to Putter.Delete.
	DeleteFunc func(key []byte) error
	// NewBatchFunc adapts a function to Putter.NewBatch.
	NewBatchFunc func() Batch
)

func (f GetFunc) Get(key []byte) ([]byte, error)       { return f(key) }
func (f HasFunc) Has(key []byte) (bool, error)         { return f(key) }
func (f IsNotFoundFunc) IsNotFound(err error) bool     { return f(err) }
func (f NewIteratorFunc) NewIterator(r Range) Iterator { return f(r) }
func (f PutFunc) Put(key, val []byte) error            { return f(key, val) }
func (f DeleteFunc) Delete(key []byte) error           { return f(key) }
func (f NewBatchFunc) NewBatch() Batch                 { return f() }
