// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

// StorageEncoder encodes a storage value into raw bytes.
// Returning empty bytes clears the storage entry.
type StorageEncoder interface {
	Encode() ([]byte, error)
}

// StorageDecoder decodes a storage value from raw bytes.
// It is fed empty bytes when the entry does not exist, and is expected to
// reset the value to its zero form in that case.
type StorageDecoder interface {
	Decode([]byte) error
}
