// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	"math/big"

	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/tokenfarm/ledger"
)

// Engine applies accrual against account checkpoints.
//
// Settlement must happen before any balance-changing operation, otherwise an
// intervening balance change would dilute or inflate the reward.
type Engine struct {
	strategy Strategy
}

func NewEngine(strategy Strategy) *Engine {
	return &Engine{strategy: strategy}
}

// Strategy returns the active strategy.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// SetStrategy swaps the active strategy and returns the previous one.
// Already-settled rewards are untouched; only future accrual is affected.
func (e *Engine) SetStrategy(strategy Strategy) (old Strategy) {
	old, e.strategy = e.strategy, strategy
	return
}

// Pending computes the unsettled accrual of an account up to block, without
// mutating the record. flatRate selects the revision-2 formula when nonzero.
func (e *Engine) Pending(acc *ledger.Account, block uint32, totalStaked *big.Int, cfg *Config, flatRate *big.Int) *big.Int {
	if block <= acc.Checkpoint {
		return &big.Int{}
	}
	if totalStaked == nil || totalStaked.Sign() == 0 {
		return &big.Int{}
	}
	if acc.Balance == nil || acc.Balance.Sign() == 0 {
		return &big.Int{}
	}

	blocks := block - acc.Checkpoint
	if flatRate != nil && flatRate.Sign() > 0 {
		return FlatRate(blocks, flatRate, acc.Balance, totalStaked)
	}
	return e.strategy.Calculate(blocks, acc.Balance, totalStaked, cfg.MinPerBlock, cfg.MaxPerBlock)
}

// Settle folds the accrual up to block into the record and advances the
// checkpoint. It returns the settled delta. A no-op (zero balance, empty
// pool, or stale block) leaves the record untouched and returns zero.
func (e *Engine) Settle(acc *ledger.Account, block uint32, totalStaked *big.Int, cfg *Config, flatRate *big.Int) *big.Int {
	if block <= acc.Checkpoint {
		return &big.Int{}
	}
	if totalStaked == nil || totalStaked.Sign() == 0 ||
		acc.Balance == nil || acc.Balance.Sign() == 0 {
		return &big.Int{}
	}

	delta := e.Pending(acc, block, totalStaked, cfg, flatRate)
	acc.PendingRewards = new(big.Int).Add(acc.PendingRewards, delta)
	acc.Checkpoint = block
	return delta
}
