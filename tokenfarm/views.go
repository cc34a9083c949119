// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokenfarm

import (
	"bytes"
	"math/big"

	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/farm"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/tokenfarm/farmstate"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/tokenfarm/ledger"
)

// projectionWindow is the horizon of the SimulateRewards projection, one day
// worth of blocks.
const projectionWindow = uint32(86400 / farm.BlockInterval)

// GetUserInfo returns the read-side projection of a staker account.
func (f *Farm) GetUserInfo(addr farm.Address) (*UserInfo, error) {
	acc, err := f.ledger.GetAccount(addr)
	if err != nil {
		return nil, err
	}
	return &UserInfo{
		Address:        addr,
		Balance:        acc.Balance,
		Checkpoint:     acc.Checkpoint,
		PendingRewards: acc.PendingRewards,
		TotalClaimed:   acc.TotalClaimed,
		DepositTime:    acc.DepositTime,
		HasStaked:      acc.HasStaked,
		IsStaking:      acc.IsStaking,
	}, nil
}

// GetContractStats returns the farm-wide aggregate view.
func (f *Farm) GetContractStats() (*Stats, error) {
	totalStaked, err := f.ledger.TotalStaked()
	if err != nil {
		return nil, err
	}
	totalDistributed, err := f.totalDistributed.Get()
	if err != nil {
		return nil, err
	}
	stakerCount, err := f.ledger.StakerCount()
	if err != nil {
		return nil, err
	}
	active, err := f.ledger.ActiveStakers()
	if err != nil {
		return nil, err
	}
	status, err := f.status.Get()
	if err != nil {
		return nil, err
	}
	version, err := f.Version()
	if err != nil {
		return nil, err
	}
	cfg, err := f.rewardConfig()
	if err != nil {
		return nil, err
	}
	rewardPerBlock, err := f.rewardPerBlock.Get()
	if err != nil {
		return nil, err
	}
	withdrawBps, err := f.fees.WithdrawFeeBps()
	if err != nil {
		return nil, err
	}
	claimBps, err := f.fees.ClaimFeeBps()
	if err != nil {
		return nil, err
	}
	stakingPool, err := f.fees.StakingPool()
	if err != nil {
		return nil, err
	}
	rewardPool, err := f.fees.RewardPool()
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalStaked:       totalStaked,
		TotalDistributed:  totalDistributed,
		StakerCount:       stakerCount,
		ActiveStakerCount: uint64(len(active)),
		Status:            status,
		StatusName:        status.String(),
		Version:           version,
		StrategyName:      f.StrategyName(),
		MinRewardPerBlock: cfg.MinPerBlock,
		MaxRewardPerBlock: cfg.MaxPerBlock,
		RewardPerBlock:    rewardPerBlock,
		WithdrawFeeBps:    withdrawBps,
		ClaimFeeBps:       claimBps,
		StakingFeePool:    stakingPool,
		RewardFeePool:     rewardPool,
	}, nil
}

// SimulateRewards returns what a claim at env.BlockNumber would settle
// (pending) and the additional accrual expected over the next day of blocks
// at the current pool composition (projected). Nothing is mutated.
func (f *Farm) SimulateRewards(env Env, addr farm.Address) (pending, projected *big.Int, err error) {
	acc, err := f.ledger.GetAccount(addr)
	if err != nil {
		return nil, nil, err
	}
	totalStaked, err := f.ledger.TotalStaked()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := f.rewardConfig()
	if err != nil {
		return nil, nil, err
	}
	flatRate, err := f.flatRate()
	if err != nil {
		return nil, nil, err
	}

	unsettled := f.engine.Pending(acc, env.BlockNumber, totalStaked, cfg, flatRate)
	pending = new(big.Int).Add(acc.PendingRewards, unsettled)

	future := ledger.Account{Balance: acc.Balance, Checkpoint: env.BlockNumber}
	projected = f.engine.Pending(&future, env.BlockNumber+projectionWindow, totalStaked, cfg, flatRate)
	return pending, projected, nil
}

// CanWithdraw reports whether a withdrawal by addr would be honored right
// now, and the wall-clock time at which the position unlocks (zero when no
// lock applies).
func (f *Farm) CanWithdraw(env Env, addr farm.Address) (bool, uint64, error) {
	acc, err := f.ledger.GetAccount(addr)
	if err != nil {
		return false, 0, err
	}
	if !acc.IsStaking || acc.Balance.Sign() == 0 {
		return false, 0, nil
	}

	status, err := f.status.Get()
	if err != nil {
		return false, 0, err
	}
	if status == farmstate.StatusEmergency {
		// lock periods do not apply in emergency
		enabled, err := f.EmergencyWithdrawEnabled()
		if err != nil {
			return false, 0, err
		}
		return enabled, 0, nil
	}

	lock, err := f.LockPeriod()
	if err != nil {
		return false, 0, err
	}
	if lock == 0 {
		return true, 0, nil
	}
	unlock := acc.DepositTime + lock
	return env.BlockTime >= unlock, unlock, nil
}

// GetActiveStakers returns the addresses currently staking, in registration
// order.
func (f *Farm) GetActiveStakers() ([]farm.Address, error) {
	return f.ledger.ActiveStakers()
}

// Status returns the operational state of the farm.
func (f *Farm) Status() (farmstate.Status, error) {
	return f.status.Get()
}

// StrategyName returns the persisted name of the active accrual strategy.
func (f *Farm) StrategyName() string {
	v, err := f.state.GetStorage(f.Address(), slotStrategyName)
	if err != nil {
		return ""
	}
	return string(bytes.TrimLeft(v.Bytes(), "\x00"))
}

// TotalDistributed returns the lifetime gross settled reward amount.
func (f *Farm) TotalDistributed() (*big.Int, error) {
	return f.totalDistributed.Get()
}
