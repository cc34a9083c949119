// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/state"
)

// Config is the farm-wide reward configuration record.
type Config struct {
	MinPerBlock *big.Int
	MaxPerBlock *big.Int
	FeePercent  uint32 // percent, 0..100
	UpdatedAt   uint64 // wall-clock time of the last update
}

var (
	_ state.StorageEncoder = (*Config)(nil)
	_ state.StorageDecoder = (*Config)(nil)
)

// Encode implements state.StorageEncoder.
func (c *Config) Encode() ([]byte, error) {
	if (c.MinPerBlock == nil || c.MinPerBlock.Sign() == 0) &&
		(c.MaxPerBlock == nil || c.MaxPerBlock.Sign() == 0) &&
		c.FeePercent == 0 &&
		c.UpdatedAt == 0 {
		return nil, nil
	}
	return rlp.EncodeToBytes(c)
}

// Decode implements state.StorageDecoder.
func (c *Config) Decode(data []byte) error {
	if len(data) == 0 {
		*c = Config{MinPerBlock: &big.Int{}, MaxPerBlock: &big.Int{}}
		return nil
	}
	return rlp.DecodeBytes(data, c)
}
