// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokenfarm_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/farm"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/lvldb"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/state"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/token"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/tokenfarm"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/tokenfarm/farmstate"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/tokenfarm/reverts"
)

var (
	farmAddr       = farm.BytesToAddress([]byte("farm"))
	stakingAddr    = farm.BytesToAddress([]byte("staking-token"))
	rewardAddr     = farm.BytesToAddress([]byte("reward-token"))
	owner          = farm.BytesToAddress([]byte("owner"))
	alice          = farm.BytesToAddress([]byte("alice"))
	bob            = farm.BytesToAddress([]byte("bob"))
	collector      = farm.BytesToAddress([]byte("collector"))
	oneToken       = new(big.Int).SetUint64(1e18)
	genesisMinRate = big.NewInt(10) // avg(min, max) gives 20 per block
	genesisMaxRate = big.NewInt(30)
)

func units(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), oneToken)
}

func env(caller farm.Address, block uint32, time uint64) tokenfarm.Env {
	return tokenfarm.Env{Caller: caller, BlockNumber: block, BlockTime: time}
}

type harness struct {
	st      *state.State
	farm    *tokenfarm.Farm
	staking *token.Token
	reward  *token.Token
	events  []tokenfarm.Event
}

// newHarness spins up an initialized farm with two funded stakers that have
// pre-approved the farm for the staking asset.
func newHarness(t *testing.T, lockPeriod uint64) *harness {
	kv, _ := lvldb.NewMem()
	st := state.New(kv)

	h := &harness{
		st:      st,
		farm:    tokenfarm.New(farmAddr, st),
		staking: token.New(stakingAddr, st),
		reward:  token.New(rewardAddr, st),
	}
	h.farm.SetEventSink(tokenfarm.EventSinkFunc(func(events []tokenfarm.Event) error {
		h.events = append(h.events, events...)
		return nil
	}))

	h.staking.SetMaster(owner)
	h.reward.SetMaster(farmAddr)
	for _, holder := range []farm.Address{alice, bob} {
		assert.NoError(t, h.staking.Mint(owner, holder, units(10000)))
		assert.NoError(t, h.staking.Approve(holder, farmAddr, units(10000)))
	}

	assert.NoError(t, h.farm.Initialize(env(owner, 1, 1000), &tokenfarm.Config{
		Owner:             owner,
		StakingToken:      stakingAddr,
		RewardToken:       rewardAddr,
		MinRewardPerBlock: genesisMinRate,
		MaxRewardPerBlock: genesisMaxRate,
		LockPeriod:        lockPeriod,
	}))
	h.events = h.events[:0]
	return h
}

func (h *harness) upgradeV2(t *testing.T, cfg *tokenfarm.ConfigV2) {
	assert.NoError(t, h.farm.InitializeV2(env(owner, 2, 1020), cfg))
	h.events = h.events[:0]
}

// checkSumInvariant asserts the global staking total equals the sum of all
// account balances.
func (h *harness) checkSumInvariant(t *testing.T) {
	stats, err := h.farm.GetContractStats()
	assert.NoError(t, err)

	sum := &big.Int{}
	stakers, err := h.farm.GetActiveStakers()
	assert.NoError(t, err)
	for _, addr := range stakers {
		info, err := h.farm.GetUserInfo(addr)
		assert.NoError(t, err)
		sum.Add(sum, info.Balance)
	}
	assert.Zero(t, stats.TotalStaked.Cmp(sum))
}

func TestInitialize(t *testing.T) {
	h := newHarness(t, 0)

	version, err := h.farm.Version()
	assert.NoError(t, err)
	assert.Equal(t, tokenfarm.Revision1, version)
	assert.Equal(t, "proportional-v1", h.farm.StrategyName())

	// genesis runs at most once
	err = h.farm.Initialize(env(owner, 2, 1010), &tokenfarm.Config{
		Owner:        owner,
		StakingToken: stakingAddr,
		RewardToken:  rewardAddr,
	})
	assert.True(t, errors.Is(err, reverts.ErrAlreadyInitialized))
}

func TestInitializeRejectsBadConfig(t *testing.T) {
	kv, _ := lvldb.NewMem()
	f := tokenfarm.New(farmAddr, state.New(kv))

	err := f.Initialize(env(owner, 1, 1000), &tokenfarm.Config{
		Owner:       owner,
		RewardToken: rewardAddr, // staking token missing
	})
	assert.True(t, errors.Is(err, reverts.ErrInvalidConfiguration))

	err = f.Initialize(env(owner, 1, 1000), &tokenfarm.Config{
		Owner:             owner,
		StakingToken:      stakingAddr,
		RewardToken:       rewardAddr,
		MinRewardPerBlock: big.NewInt(30),
		MaxRewardPerBlock: big.NewInt(10), // out of order
	})
	assert.True(t, errors.Is(err, reverts.ErrInvalidConfiguration))

	// nothing was written
	version, err := f.Version()
	assert.NoError(t, err)
	assert.Equal(t, tokenfarm.RevisionNone, version)
}

func TestDeposit(t *testing.T) {
	h := newHarness(t, 0)

	assert.NoError(t, h.farm.Deposit(env(alice, 5, 1050), units(100)))

	info, err := h.farm.GetUserInfo(alice)
	assert.NoError(t, err)
	assert.Zero(t, units(100).Cmp(info.Balance))
	assert.Equal(t, uint32(5), info.Checkpoint)
	assert.Equal(t, uint64(1050), info.DepositTime)
	assert.True(t, info.HasStaked)
	assert.True(t, info.IsStaking)

	// the asset moved into custody
	bal, _ := h.staking.BalanceOf(alice)
	assert.Zero(t, units(9900).Cmp(bal))
	bal, _ = h.staking.BalanceOf(farmAddr)
	assert.Zero(t, units(100).Cmp(bal))

	stats, err := h.farm.GetContractStats()
	assert.NoError(t, err)
	assert.Zero(t, units(100).Cmp(stats.TotalStaked))
	assert.Equal(t, uint64(1), stats.StakerCount)
	assert.Equal(t, uint64(1), stats.ActiveStakerCount)

	assert.Len(t, h.events, 1)
	assert.Equal(t, tokenfarm.EventDeposit, h.events[0].Name)
	assert.Equal(t, alice, *h.events[0].User)
	assert.Zero(t, units(100).Cmp(h.events[0].Amount))

	h.checkSumInvariant(t)
}

func TestDepositBelowMinimum(t *testing.T) {
	h := newHarness(t, 0)

	err := h.farm.Deposit(env(alice, 5, 1050), units(1))
	assert.True(t, errors.Is(err, reverts.ErrInvalidAmount))

	// nothing changed, nothing was emitted
	info, _ := h.farm.GetUserInfo(alice)
	assert.False(t, info.HasStaked)
	stats, _ := h.farm.GetContractStats()
	assert.Zero(t, stats.TotalStaked.Sign())
	assert.Equal(t, uint64(0), stats.StakerCount)
	bal, _ := h.staking.BalanceOf(alice)
	assert.Zero(t, units(10000).Cmp(bal))
	assert.Empty(t, h.events)
}

func TestDepositRevertsOnTransferFailure(t *testing.T) {
	h := newHarness(t, 0)

	// drop the allowance below the deposit
	assert.NoError(t, h.staking.Approve(alice, farmAddr, units(10)))

	err := h.farm.Deposit(env(alice, 5, 1050), units(100))
	assert.True(t, errors.Is(err, reverts.ErrAssetTransferFailed))

	// the ledger writes made before the transfer were rolled back
	info, _ := h.farm.GetUserInfo(alice)
	assert.False(t, info.HasStaked)
	assert.Zero(t, info.Balance.Sign())
	stats, _ := h.farm.GetContractStats()
	assert.Zero(t, stats.TotalStaked.Sign())
	assert.Equal(t, uint64(0), stats.StakerCount)
	assert.Empty(t, h.events)
}

func TestAccrual(t *testing.T) {
	h := newHarness(t, 0)

	assert.NoError(t, h.farm.Deposit(env(alice, 1, 1010), units(100)))
	assert.NoError(t, h.farm.Deposit(env(bob, 1, 1010), units(300)))
	h.events = h.events[:0]

	count, total, err := h.farm.DistributeRewardsAll(env(owner, 11, 1110))
	assert.NoError(t, err)
	assert.Equal(t, uint64(2), count)

	// 10 blocks at avg rate 20, split by pool share
	aliceExpected := big.NewInt(20 * 10 / 4) // 25% share
	bobExpected := big.NewInt(20 * 10 * 3 / 4)
	assert.Zero(t, new(big.Int).Add(aliceExpected, bobExpected).Cmp(total))

	info, _ := h.farm.GetUserInfo(alice)
	assert.Zero(t, aliceExpected.Cmp(info.PendingRewards))
	assert.Equal(t, uint32(11), info.Checkpoint)
	info, _ = h.farm.GetUserInfo(bob)
	assert.Zero(t, bobExpected.Cmp(info.PendingRewards))

	// accrual stays within the configured per-block bounds
	lower := new(big.Int).Div(new(big.Int).Mul(genesisMinRate, big.NewInt(10)), big.NewInt(4))
	upper := new(big.Int).Div(new(big.Int).Mul(genesisMaxRate, big.NewInt(10)), big.NewInt(4))
	pending, _ := h.farm.GetUserInfo(alice)
	assert.True(t, pending.PendingRewards.Cmp(lower) >= 0)
	assert.True(t, pending.PendingRewards.Cmp(upper) <= 0)

	distributed, err := h.farm.TotalDistributed()
	assert.NoError(t, err)
	assert.Zero(t, total.Cmp(distributed))

	assert.Len(t, h.events, 1)
	assert.Equal(t, tokenfarm.EventRewardsDistributed, h.events[0].Name)

	// distributing again at the same block settles nothing
	count, total, err = h.farm.DistributeRewardsAll(env(owner, 11, 1110))
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), count)
	assert.Zero(t, total.Sign())

	h.checkSumInvariant(t)
}

func TestClaimRewards(t *testing.T) {
	h := newHarness(t, 0)
	h.upgradeV2(t, &tokenfarm.ConfigV2{
		WithdrawFeeBps: 0,
		ClaimFeeBps:    500, // 5%
		FeeCollector:   collector,
	})

	assert.NoError(t, h.farm.Deposit(env(alice, 1, 1010), units(100)))
	_, _, err := h.farm.DistributeRewardsAll(env(owner, 11, 1110))
	assert.NoError(t, err)

	info, _ := h.farm.GetUserInfo(alice)
	pending := new(big.Int).Set(info.PendingRewards)
	assert.Zero(t, big.NewInt(200).Cmp(pending)) // full share, 10 blocks at avg 20
	h.events = h.events[:0]

	// claim at the settle block, so the fee math is exact
	net, err := h.farm.ClaimRewards(env(alice, 11, 1110))
	assert.NoError(t, err)

	fee := new(big.Int).Div(new(big.Int).Mul(pending, big.NewInt(500)), big.NewInt(10000))
	assert.Zero(t, new(big.Int).Sub(pending, fee).Cmp(net))

	// the net amount was minted, the fee accumulated in the reward pool
	bal, _ := h.reward.BalanceOf(alice)
	assert.Zero(t, net.Cmp(bal))
	stats, _ := h.farm.GetContractStats()
	assert.Zero(t, fee.Cmp(stats.RewardFeePool))

	info, _ = h.farm.GetUserInfo(alice)
	assert.Zero(t, info.PendingRewards.Sign())
	assert.Zero(t, net.Cmp(info.TotalClaimed))

	assert.Len(t, h.events, 1)
	assert.Equal(t, tokenfarm.EventRewardsClaimed, h.events[0].Name)

	// nothing left to claim
	_, err = h.farm.ClaimRewards(env(alice, 11, 1110))
	assert.True(t, errors.Is(err, reverts.ErrNoRewardsAvailable))
}

func TestFlatRateOverridesStrategy(t *testing.T) {
	h := newHarness(t, 0)
	h.upgradeV2(t, &tokenfarm.ConfigV2{
		FeeCollector:   collector,
		RewardPerBlock: big.NewInt(40),
	})

	assert.NoError(t, h.farm.Deposit(env(alice, 1, 1010), units(100)))
	_, total, err := h.farm.DistributeRewardsAll(env(owner, 11, 1110))
	assert.NoError(t, err)

	// 10 blocks at flat 40, full share
	assert.Zero(t, big.NewInt(400).Cmp(total))

	// a zero rate falls back to the pluggable strategy
	assert.NoError(t, h.farm.SetRewardPerBlock(env(owner, 11, 1110), &big.Int{}))
	_, total, err = h.farm.DistributeRewardsAll(env(owner, 21, 1210))
	assert.NoError(t, err)
	assert.Zero(t, big.NewInt(200).Cmp(total))
}

func TestWithdrawRoundTrip(t *testing.T) {
	h := newHarness(t, 0)

	assert.NoError(t, h.farm.Deposit(env(alice, 5, 1050), units(100)))
	h.events = h.events[:0]

	// no fee configured at revision 1: the full principal comes back
	net, err := h.farm.Withdraw(env(alice, 5, 1050))
	assert.NoError(t, err)
	assert.Zero(t, units(100).Cmp(net))

	bal, _ := h.staking.BalanceOf(alice)
	assert.Zero(t, units(10000).Cmp(bal))
	bal, _ = h.staking.BalanceOf(farmAddr)
	assert.Zero(t, bal.Sign())

	info, _ := h.farm.GetUserInfo(alice)
	assert.Zero(t, info.Balance.Sign())
	assert.False(t, info.IsStaking)
	assert.True(t, info.HasStaked)

	stats, _ := h.farm.GetContractStats()
	assert.Zero(t, stats.TotalStaked.Sign())
	assert.Equal(t, uint64(1), stats.StakerCount) // the index never shrinks
	assert.Equal(t, uint64(0), stats.ActiveStakerCount)

	assert.Len(t, h.events, 1)
	assert.Equal(t, tokenfarm.EventWithdraw, h.events[0].Name)

	// no position left to close
	_, err = h.farm.Withdraw(env(alice, 6, 1060))
	assert.True(t, errors.Is(err, reverts.ErrNotStaking))
}

func TestWithdrawFee(t *testing.T) {
	h := newHarness(t, 0)
	h.upgradeV2(t, &tokenfarm.ConfigV2{
		WithdrawFeeBps: 250, // 2.5%
		FeeCollector:   collector,
	})

	assert.NoError(t, h.farm.Deposit(env(alice, 5, 1050), units(100)))

	net, err := h.farm.Withdraw(env(alice, 5, 1050))
	assert.NoError(t, err)

	fee := new(big.Int).Div(new(big.Int).Mul(units(100), big.NewInt(250)), big.NewInt(10000))
	assert.Zero(t, new(big.Int).Sub(units(100), fee).Cmp(net))

	stats, _ := h.farm.GetContractStats()
	assert.Zero(t, fee.Cmp(stats.StakingFeePool))

	// the fee stays in custody until drained to the collector
	bal, _ := h.staking.BalanceOf(farmAddr)
	assert.Zero(t, fee.Cmp(bal))

	drained, err := h.farm.WithdrawLpFees(env(owner, 6, 1060))
	assert.NoError(t, err)
	assert.Zero(t, fee.Cmp(drained))
	bal, _ = h.staking.BalanceOf(collector)
	assert.Zero(t, fee.Cmp(bal))

	// the pool is empty now
	_, err = h.farm.WithdrawLpFees(env(owner, 7, 1070))
	assert.True(t, errors.Is(err, reverts.ErrNoFeesAvailable))
}

func TestWithdrawSettlesBeforeClosing(t *testing.T) {
	h := newHarness(t, 0)

	assert.NoError(t, h.farm.Deposit(env(alice, 1, 1010), units(100)))

	// the position closes but the accrual up to the withdrawal stays claimable
	_, err := h.farm.Withdraw(env(alice, 11, 1110))
	assert.NoError(t, err)

	info, _ := h.farm.GetUserInfo(alice)
	assert.Zero(t, big.NewInt(200).Cmp(info.PendingRewards))

	net, err := h.farm.ClaimRewards(env(alice, 11, 1110))
	assert.NoError(t, err)
	assert.Zero(t, big.NewInt(200).Cmp(net))
}

func TestLockPeriod(t *testing.T) {
	h := newHarness(t, 3600)

	assert.NoError(t, h.farm.Deposit(env(alice, 5, 1000), units(100)))

	_, err := h.farm.Withdraw(env(alice, 6, 1100))
	assert.True(t, errors.Is(err, reverts.ErrStillLocked))

	ok, unlock, err := h.farm.CanWithdraw(env(alice, 6, 1100), alice)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, uint64(4600), unlock)

	ok, _, err = h.farm.CanWithdraw(env(alice, 400, 4600), alice)
	assert.NoError(t, err)
	assert.True(t, ok)

	_, err = h.farm.Withdraw(env(alice, 400, 4600))
	assert.NoError(t, err)
}

func TestPauseResume(t *testing.T) {
	h := newHarness(t, 0)

	assert.NoError(t, h.farm.Deposit(env(alice, 5, 1050), units(100)))
	h.events = h.events[:0]

	assert.NoError(t, h.farm.PauseFarm(env(owner, 6, 1060)))
	status, _ := h.farm.Status()
	assert.Equal(t, farmstate.StatusPaused, status)
	assert.Len(t, h.events, 1)
	assert.Equal(t, tokenfarm.EventStateChanged, h.events[0].Name)
	assert.Equal(t, "active->paused", h.events[0].Memo)

	// a second pause changes nothing and emits nothing
	assert.NoError(t, h.farm.PauseFarm(env(owner, 7, 1070)))
	assert.Len(t, h.events, 1)

	// deposits and claims are gated, withdrawals are not
	err := h.farm.Deposit(env(bob, 7, 1070), units(100))
	assert.True(t, errors.Is(err, reverts.ErrFarmStopped))
	_, err = h.farm.ClaimRewards(env(alice, 7, 1070))
	assert.True(t, errors.Is(err, reverts.ErrFarmStopped))
	_, err = h.farm.Withdraw(env(alice, 7, 1070))
	assert.NoError(t, err)

	assert.NoError(t, h.farm.ResumeFarm(env(owner, 8, 1080)))
	assert.NoError(t, h.farm.Deposit(env(bob, 8, 1080), units(100)))
}

func TestEmergencyStop(t *testing.T) {
	h := newHarness(t, 3600)
	h.upgradeV2(t, &tokenfarm.ConfigV2{
		WithdrawFeeBps: 250,
		FeeCollector:   collector,
	})

	assert.NoError(t, h.farm.Deposit(env(alice, 5, 1000), units(100)))
	h.events = h.events[:0]

	assert.NoError(t, h.farm.EmergencyStop(env(owner, 6, 1060)))
	status, _ := h.farm.Status()
	assert.Equal(t, farmstate.StatusEmergency, status)
	assert.Len(t, h.events, 2)
	assert.Equal(t, tokenfarm.EventStateChanged, h.events[0].Name)
	assert.Equal(t, tokenfarm.EventEmergencyStop, h.events[1].Name)

	// idempotent, no redundant events
	assert.NoError(t, h.farm.EmergencyStop(env(owner, 7, 1070)))
	assert.Len(t, h.events, 2)

	// deposits are dead, and so are resume/pause
	err := h.farm.Deposit(env(bob, 7, 1070), units(100))
	assert.True(t, errors.Is(err, reverts.ErrFarmStopped))
	assert.True(t, errors.Is(h.farm.ResumeFarm(env(owner, 7, 1070)), reverts.ErrEmergencyStop))
	assert.True(t, errors.Is(h.farm.PauseFarm(env(owner, 7, 1070)), reverts.ErrEmergencyStop))

	// withdrawals need the toggle
	_, err = h.farm.Withdraw(env(alice, 7, 1070))
	assert.True(t, errors.Is(err, reverts.ErrEmergencyStop))

	assert.NoError(t, h.farm.SetEmergencyWithdrawEnabled(env(owner, 7, 1070), true))

	// emergency withdrawal ignores the lock and pays the full principal,
	// fee-free, despite the configured withdraw fee
	net, err := h.farm.Withdraw(env(alice, 7, 1070))
	assert.NoError(t, err)
	assert.Zero(t, units(100).Cmp(net))

	stats, _ := h.farm.GetContractStats()
	assert.Zero(t, stats.StakingFeePool.Sign())
	bal, _ := h.staking.BalanceOf(alice)
	assert.Zero(t, units(10000).Cmp(bal))
}

func TestInitializeV2(t *testing.T) {
	kv, _ := lvldb.NewMem()
	f := tokenfarm.New(farmAddr, state.New(kv))

	// revision 2 cannot run before genesis, for any caller; the owner slot is
	// still the zero address at this point and must not be consulted
	err := f.InitializeV2(env(owner, 1, 1000), &tokenfarm.ConfigV2{FeeCollector: collector})
	assert.True(t, errors.Is(err, reverts.ErrInvalidConfiguration))
	err = f.InitializeV2(env(farm.Address{}, 1, 1000), &tokenfarm.ConfigV2{FeeCollector: collector})
	assert.True(t, errors.Is(err, reverts.ErrInvalidConfiguration))

	h := newHarness(t, 1800)

	// fee knobs are revision-2 surface
	err = h.farm.UpdateFees(env(owner, 2, 1020), 100, 100)
	assert.True(t, errors.Is(err, reverts.ErrInvalidConfiguration))
	err = h.farm.SetRewardPerBlock(env(owner, 2, 1020), big.NewInt(40))
	assert.True(t, errors.Is(err, reverts.ErrInvalidConfiguration))

	assert.NoError(t, h.farm.InitializeV2(env(owner, 2, 1020), &tokenfarm.ConfigV2{
		WithdrawFeeBps: 100,
		ClaimFeeBps:    200,
		FeeCollector:   collector,
		RewardPerBlock: big.NewInt(40),
	}))

	version, _ := h.farm.Version()
	assert.Equal(t, tokenfarm.Revision2, version)
	stats, _ := h.farm.GetContractStats()
	assert.Equal(t, uint32(100), stats.WithdrawFeeBps)
	assert.Equal(t, uint32(200), stats.ClaimFeeBps)
	assert.Zero(t, big.NewInt(40).Cmp(stats.RewardPerBlock))

	// one-time only
	err = h.farm.InitializeV2(env(owner, 3, 1030), &tokenfarm.ConfigV2{FeeCollector: collector})
	assert.True(t, errors.Is(err, reverts.ErrAlreadyInitialized))

	// every revision-1 accessor reads the same values as before the upgrade
	assert.Equal(t, "proportional-v1", h.farm.StrategyName())
	lock, _ := h.farm.LockPeriod()
	assert.Equal(t, uint64(1800), lock)
	assert.Zero(t, genesisMinRate.Cmp(stats.MinRewardPerBlock))
	assert.Zero(t, genesisMaxRate.Cmp(stats.MaxRewardPerBlock))
}

func TestUpdateFees(t *testing.T) {
	h := newHarness(t, 0)
	h.upgradeV2(t, &tokenfarm.ConfigV2{FeeCollector: collector})

	assert.NoError(t, h.farm.UpdateFees(env(owner, 3, 1030), 300, 400))
	stats, _ := h.farm.GetContractStats()
	assert.Equal(t, uint32(300), stats.WithdrawFeeBps)
	assert.Equal(t, uint32(400), stats.ClaimFeeBps)

	// above the cap: rejected, stored rates untouched
	err := h.farm.UpdateFees(env(owner, 4, 1040), farm.MaxFeeBps+1, 0)
	assert.True(t, errors.Is(err, reverts.ErrInvalidConfiguration))
	stats, _ = h.farm.GetContractStats()
	assert.Equal(t, uint32(300), stats.WithdrawFeeBps)
	assert.Equal(t, uint32(400), stats.ClaimFeeBps)
}

func TestUnauthorized(t *testing.T) {
	h := newHarness(t, 0)

	assert.True(t, errors.Is(h.farm.PauseFarm(env(alice, 2, 1020)), reverts.ErrUnauthorized))
	assert.True(t, errors.Is(h.farm.EmergencyStop(env(alice, 2, 1020)), reverts.ErrUnauthorized))
	_, _, err := h.farm.DistributeRewardsAll(env(alice, 2, 1020))
	assert.True(t, errors.Is(err, reverts.ErrUnauthorized))
	assert.True(t, errors.Is(h.farm.UpdateFees(env(alice, 2, 1020), 1, 1), reverts.ErrUnauthorized))
	assert.True(t, errors.Is(h.farm.SetFeeCollector(env(alice, 2, 1020), alice), reverts.ErrUnauthorized))
	err = h.farm.InitializeV2(env(alice, 2, 1020), &tokenfarm.ConfigV2{FeeCollector: collector})
	assert.True(t, errors.Is(err, reverts.ErrUnauthorized))
}

func TestSimulateRewards(t *testing.T) {
	h := newHarness(t, 0)

	assert.NoError(t, h.farm.Deposit(env(alice, 1, 1010), units(100)))

	// simulation matches what a settle would produce, without mutating
	pending, projected, err := h.farm.SimulateRewards(env(alice, 11, 1110), alice)
	assert.NoError(t, err)
	assert.Zero(t, big.NewInt(200).Cmp(pending))
	assert.True(t, projected.Sign() > 0)

	info, _ := h.farm.GetUserInfo(alice)
	assert.Zero(t, info.PendingRewards.Sign())
	assert.Equal(t, uint32(1), info.Checkpoint)

	_, total, err := h.farm.DistributeRewardsAll(env(owner, 11, 1110))
	assert.NoError(t, err)
	assert.Zero(t, pending.Cmp(total))
}

func TestSumInvariantAcrossOperations(t *testing.T) {
	h := newHarness(t, 0)

	assert.NoError(t, h.farm.Deposit(env(alice, 2, 1020), units(100)))
	h.checkSumInvariant(t)

	assert.NoError(t, h.farm.Deposit(env(bob, 3, 1030), units(250)))
	h.checkSumInvariant(t)

	assert.NoError(t, h.farm.Deposit(env(alice, 4, 1040), units(50)))
	h.checkSumInvariant(t)

	_, err := h.farm.Withdraw(env(alice, 10, 1100))
	assert.NoError(t, err)
	h.checkSumInvariant(t)

	_, _, err = h.farm.DistributeRewardsAll(env(owner, 12, 1120))
	assert.NoError(t, err)
	h.checkSumInvariant(t)

	_, err = h.farm.Withdraw(env(bob, 14, 1140))
	assert.NoError(t, err)
	h.checkSumInvariant(t)

	stats, _ := h.farm.GetContractStats()
	assert.Zero(t, stats.TotalStaked.Sign())
}

func TestStrategySwap(t *testing.T) {
	h := newHarness(t, 0)

	err := h.farm.UpdateRewardStrategy(env(owner, 2, 1020), nil)
	assert.True(t, errors.Is(err, reverts.ErrInvalidConfiguration))

	assert.NoError(t, h.farm.Deposit(env(alice, 2, 1020), units(100)))
	_, _, err = h.farm.DistributeRewardsAll(env(owner, 12, 1120))
	assert.NoError(t, err)
	info, _ := h.farm.GetUserInfo(alice)
	settled := new(big.Int).Set(info.PendingRewards)

	h.events = h.events[:0]
	assert.NoError(t, h.farm.UpdateRewardStrategy(env(owner, 12, 1120), flatTen{}))
	assert.Equal(t, "flat-ten", h.farm.StrategyName())
	assert.Len(t, h.events, 1)
	assert.Equal(t, tokenfarm.EventStrategyUpdated, h.events[0].Name)
	assert.Equal(t, "proportional-v1->flat-ten", h.events[0].Memo)

	// settled rewards are untouched, future accrual uses the new strategy
	info, _ = h.farm.GetUserInfo(alice)
	assert.Zero(t, settled.Cmp(info.PendingRewards))

	_, total, err := h.farm.DistributeRewardsAll(env(owner, 22, 1220))
	assert.NoError(t, err)
	assert.Zero(t, big.NewInt(100).Cmp(total)) // 10 blocks at flat 10, full share
}

type flatTen struct{}

func (flatTen) Name() string { return "flat-ten" }

func (flatTen) Calculate(blocks uint32, stake, total, _, _ *big.Int) *big.Int {
	if stake == nil || total == nil || stake.Sign() == 0 || total.Sign() == 0 {
		return &big.Int{}
	}
	r := new(big.Int).SetUint64(uint64(blocks) * 10)
	r.Mul(r, stake)
	return r.Div(r, total)
}

func TestUpdateRewardConfig(t *testing.T) {
	h := newHarness(t, 0)

	err := h.farm.UpdateRewardConfig(env(owner, 2, 1020), big.NewInt(30), big.NewInt(10), 0)
	assert.True(t, errors.Is(err, reverts.ErrInvalidConfiguration))
	err = h.farm.UpdateRewardConfig(env(owner, 2, 1020), big.NewInt(10), big.NewInt(30), 101)
	assert.True(t, errors.Is(err, reverts.ErrInvalidConfiguration))

	assert.NoError(t, h.farm.UpdateRewardConfig(env(owner, 2, 1020), big.NewInt(40), big.NewInt(80), 2))
	stats, _ := h.farm.GetContractStats()
	assert.Zero(t, big.NewInt(40).Cmp(stats.MinRewardPerBlock))
	assert.Zero(t, big.NewInt(80).Cmp(stats.MaxRewardPerBlock))
}

func TestMaxStakersBound(t *testing.T) {
	h := newHarness(t, 0)

	// the cap counts accounts that ever staked, not active ones
	count := uint64(0)
	assert.NoError(t, h.farm.Deposit(env(alice, 2, 1020), units(100)))
	count++
	_, err := h.farm.Withdraw(env(alice, 2, 1020))
	assert.NoError(t, err)

	stats, _ := h.farm.GetContractStats()
	assert.Equal(t, count, stats.StakerCount)

	// re-depositing does not register twice
	assert.NoError(t, h.farm.Deposit(env(alice, 3, 1030), units(100)))
	stats, _ = h.farm.GetContractStats()
	assert.Equal(t, count, stats.StakerCount)
}

func TestCommitSurvivesRestart(t *testing.T) {
	kv, _ := lvldb.NewMem()
	st := state.New(kv)

	f := tokenfarm.New(farmAddr, st)
	staking := token.New(stakingAddr, st)
	reward := token.New(rewardAddr, st)
	staking.SetMaster(owner)
	reward.SetMaster(farmAddr)
	assert.NoError(t, staking.Mint(owner, alice, units(1000)))
	assert.NoError(t, staking.Approve(alice, farmAddr, units(1000)))

	assert.NoError(t, f.Initialize(env(owner, 1, 1000), &tokenfarm.Config{
		Owner:        owner,
		StakingToken: stakingAddr,
		RewardToken:  rewardAddr,
	}))
	assert.NoError(t, f.Deposit(env(alice, 2, 1020), units(100)))
	assert.NoError(t, st.Commit())

	// a fresh farm over the same store picks up the committed ledger
	f2 := tokenfarm.New(farmAddr, state.New(kv))
	info, err := f2.GetUserInfo(alice)
	assert.NoError(t, err)
	assert.Zero(t, units(100).Cmp(info.Balance))
	assert.True(t, info.IsStaking)
	version, _ := f2.Version()
	assert.Equal(t, tokenfarm.Revision1, version)
}
