// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokenfarm

import (
	"math/big"

	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/farm"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/tokenfarm/farmstate"
)

// Env carries the per-operation execution context: who calls, at which block
// height and wall-clock time. Block number and time are the only clock-like
// inputs of the farm.
type Env struct {
	Caller      farm.Address
	BlockNumber uint32
	BlockTime   uint64
}

// UserInfo is the read-side projection of a staker account.
type UserInfo struct {
	Address        farm.Address `json:"address"`
	Balance        *big.Int     `json:"balance"`
	Checkpoint     uint32       `json:"checkpoint"`
	PendingRewards *big.Int     `json:"pendingRewards"`
	TotalClaimed   *big.Int     `json:"totalClaimed"`
	DepositTime    uint64       `json:"depositTime"`
	HasStaked      bool         `json:"hasStaked"`
	IsStaking      bool         `json:"isStaking"`
}

// Stats is the read-side projection of the farm-wide state.
type Stats struct {
	TotalStaked       *big.Int         `json:"totalStaked"`
	TotalDistributed  *big.Int         `json:"totalDistributed"`
	StakerCount       uint64           `json:"stakerCount"`
	ActiveStakerCount uint64           `json:"activeStakerCount"`
	Status            farmstate.Status `json:"-"`
	StatusName        string           `json:"status"`
	Version           uint32           `json:"version"`
	StrategyName      string           `json:"strategy"`
	MinRewardPerBlock *big.Int         `json:"minRewardPerBlock"`
	MaxRewardPerBlock *big.Int         `json:"maxRewardPerBlock"`
	RewardPerBlock    *big.Int         `json:"rewardPerBlock"`
	WithdrawFeeBps    uint32           `json:"withdrawFeeBps"`
	ClaimFeeBps       uint32           `json:"claimFeeBps"`
	StakingFeePool    *big.Int         `json:"stakingFeePool"`
	RewardFeePool     *big.Int         `json:"rewardFeePool"`
}
