// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package farm

import "math/big"

// Constants of the farm protocol.
const (
	BlockInterval uint64 = 10 // time interval between two consecutive blocks, in seconds.

	// BpsDenominator basis-point denominator, 10000 bps == 100%.
	BpsDenominator uint64 = 10000

	// MaxFeeBps ceiling for any configurable fee rate, 10%.
	MaxFeeBps uint32 = 1000

	// MaxStakers upper bound of the append-only staker index.
	MaxStakers = 1000

	// MaxAccrualWindow max number of elapsed blocks a single settlement may
	// cover. Bounds per-call cost and the compounding from stale checkpoints.
	MaxAccrualWindow uint32 = 100_000
)

// Initial values of farm reward params.
var (
	// MinDeposit minimum amount accepted by deposit, 5 tokens.
	MinDeposit = new(big.Int).Mul(big.NewInt(5), big.NewInt(1e18))

	InitialMinRewardPerBlock = big.NewInt(1e14) // 0.0001 token per block
	InitialMaxRewardPerBlock = big.NewInt(1e18) // 1 token per block
)
