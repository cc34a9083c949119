// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	"math/big"
)

// Strategy is a pure reward calculation, polymorphic so the operator can
// swap the algorithm without redeploying the ledger. Swapping never
// recomputes already-settled rewards; only future accrual uses the new
// strategy.
type Strategy interface {
	Name() string

	// Calculate returns the reward accrued over blocksElapsed blocks by an
	// account holding stake out of totalStaked, given the configured
	// min/max per-block rates. Must return zero when totalStaked or stake
	// is zero.
	Calculate(blocksElapsed uint32, stake, totalStaked, minRate, maxRate *big.Int) *big.Int
}

// Proportional is the shipped strategy: reward proportional to the account's
// share of the pool, scaled by the average of the min/max per-block rates.
// The elapsed window is clamped to bound single-call cost and to avoid
// unbounded compounding from stale checkpoints.
type Proportional struct {
	window uint32
}

func NewProportional(window uint32) *Proportional {
	return &Proportional{window: window}
}

func (p *Proportional) Name() string {
	return "proportional-v1"
}

func (p *Proportional) Calculate(blocksElapsed uint32, stake, totalStaked, minRate, maxRate *big.Int) *big.Int {
	if stake == nil || totalStaked == nil || stake.Sign() == 0 || totalStaked.Sign() == 0 {
		return &big.Int{}
	}
	if blocksElapsed > p.window {
		blocksElapsed = p.window
	}
	if blocksElapsed == 0 {
		return &big.Int{}
	}

	// avg(min, max) per block
	rate := new(big.Int).Add(minRate, maxRate)
	rate.Div(rate, big.NewInt(2))

	r := new(big.Int).SetUint64(uint64(blocksElapsed))
	r.Mul(r, rate)
	r.Mul(r, stake)
	return r.Div(r, totalStaked)
}

// FlatRate is the revision-2 formula:
// blocksElapsed × ratePerBlock × stake / totalStaked.
func FlatRate(blocksElapsed uint32, ratePerBlock, stake, totalStaked *big.Int) *big.Int {
	if stake == nil || totalStaked == nil || stake.Sign() == 0 || totalStaked.Sign() == 0 {
		return &big.Int{}
	}
	r := new(big.Int).SetUint64(uint64(blocksElapsed))
	r.Mul(r, ratePerBlock)
	r.Mul(r, stake)
	return r.Div(r, totalStaked)
}
