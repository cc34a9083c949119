// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package fees

import (
	"math/big"

	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/farm"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/sstore"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/tokenfarm/reverts"
)

// Revision-2 storage. These slots extend the revision-1 layout by strict
// append; none of them is touched by revision-1 code paths.
var (
	slotWithdrawFeeBps = farm.BytesToBytes32([]byte("withdraw-fee-bps"))
	slotClaimFeeBps    = farm.BytesToBytes32([]byte("claim-fee-bps"))
	slotFeeCollector   = farm.BytesToBytes32([]byte("fee-collector"))
	slotStakingPool    = farm.BytesToBytes32([]byte("staking-fee-pool"))
	slotRewardPool     = farm.BytesToBytes32([]byte("reward-fee-pool"))
)

// Service computes basis-point fees and accumulates them in two independent
// pools: one denominated in the staking (deposit) asset, one in the reward
// asset.
type Service struct {
	withdrawBps *sstore.Uint256
	claimBps    *sstore.Uint256
	collector   *sstore.Address
	stakingPool *sstore.Uint256
	rewardPool  *sstore.Uint256

	maxBps uint32
}

func New(context *sstore.Context, maxBps uint32) *Service {
	return &Service{
		withdrawBps: sstore.NewUint256(context, slotWithdrawFeeBps),
		claimBps:    sstore.NewUint256(context, slotClaimFeeBps),
		collector:   sstore.NewAddress(context, slotFeeCollector),
		stakingPool: sstore.NewUint256(context, slotStakingPool),
		rewardPool:  sstore.NewUint256(context, slotRewardPool),

		maxBps: maxBps,
	}
}

// WithdrawFeeBps returns the withdrawal fee rate in basis points.
func (s *Service) WithdrawFeeBps() (uint32, error) {
	v, err := s.withdrawBps.Get()
	if err != nil {
		return 0, err
	}
	return uint32(v.Uint64()), nil
}

// ClaimFeeBps returns the claim fee rate in basis points.
func (s *Service) ClaimFeeBps() (uint32, error) {
	v, err := s.claimBps.Get()
	if err != nil {
		return 0, err
	}
	return uint32(v.Uint64()), nil
}

// SetRates updates both fee rates. Rates above the ceiling are rejected.
func (s *Service) SetRates(withdrawBps, claimBps uint32) error {
	if withdrawBps > s.maxBps || claimBps > s.maxBps {
		return reverts.ErrInvalidConfiguration.With("fee rate exceeds %d bps", s.maxBps)
	}
	s.withdrawBps.Set(new(big.Int).SetUint64(uint64(withdrawBps)))
	s.claimBps.Set(new(big.Int).SetUint64(uint64(claimBps)))
	return nil
}

// Collector returns the fee collector address.
func (s *Service) Collector() (farm.Address, error) {
	return s.collector.Get()
}

// SetCollector updates the fee collector address. The zero address is rejected.
func (s *Service) SetCollector(addr farm.Address) error {
	if addr.IsZero() {
		return reverts.ErrInvalidConfiguration.With("fee collector is the zero address")
	}
	s.collector.Set(addr)
	return nil
}

// Compute returns amount × bps / 10000.
func Compute(amount *big.Int, bps uint32) *big.Int {
	if amount == nil || amount.Sign() == 0 || bps == 0 {
		return &big.Int{}
	}
	fee := new(big.Int).SetUint64(uint64(bps))
	fee.Mul(fee, amount)
	return fee.Div(fee, new(big.Int).SetUint64(farm.BpsDenominator))
}

// AddStakingFee accumulates a deposit-asset fee.
func (s *Service) AddStakingFee(amount *big.Int) error {
	return s.stakingPool.Add(amount)
}

// AddRewardFee accumulates a reward-asset fee.
func (s *Service) AddRewardFee(amount *big.Int) error {
	return s.rewardPool.Add(amount)
}

// StakingPool returns the accumulated deposit-asset fees.
func (s *Service) StakingPool() (*big.Int, error) {
	return s.stakingPool.Get()
}

// RewardPool returns the accumulated reward-asset fees.
func (s *Service) RewardPool() (*big.Int, error) {
	return s.rewardPool.Get()
}

// DrainStakingPool zeroes the deposit-asset pool and returns the drained
// amount. An empty pool is rejected.
func (s *Service) DrainStakingPool() (*big.Int, error) {
	return drain(s.stakingPool)
}

// DrainRewardPool zeroes the reward-asset pool and returns the drained
// amount. An empty pool is rejected.
func (s *Service) DrainRewardPool() (*big.Int, error) {
	return drain(s.rewardPool)
}

func drain(pool *sstore.Uint256) (*big.Int, error) {
	amount, err := pool.Get()
	if err != nil {
		return nil, err
	}
	if amount.Sign() == 0 {
		return nil, reverts.ErrNoFeesAvailable
	}
	pool.Set(&big.Int{})
	return amount, nil
}
