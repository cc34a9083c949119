// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokenfarm

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/farm"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/log"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/sstore"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/state"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/token"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/tokenfarm/farmstate"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/tokenfarm/fees"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/tokenfarm/ledger"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/tokenfarm/reverts"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/tokenfarm/reward"
)

var logger = log.WithContext("pkg", "tokenfarm")

// SetLogger overrides the package logger, for tests.
func SetLogger(l log.Logger) {
	logger = l
}

// Config is the genesis configuration of a farm instance.
type Config struct {
	Owner        farm.Address
	StakingToken farm.Address
	RewardToken  farm.Address

	MinRewardPerBlock *big.Int
	MaxRewardPerBlock *big.Int
	LockPeriod        uint64 // seconds; zero disables the lock
}

// Farm is the yield-farm contract: a staking ledger with checkpoint-based
// reward accrual, dual fee pools and an operational state machine, persisted
// in structured storage under a single contract address.
//
// Every mutating operation runs inside a state checkpoint: it either fully
// commits, or reverts every write it made and returns the error. The
// mutation discipline is validate, settle rewards, apply ledger effects,
// and move external assets last.
type Farm struct {
	ctx   *sstore.Context
	state *state.State

	ledger *ledger.Service
	engine *reward.Engine
	fees   *fees.Service
	status *farmstate.Service

	owner            *sstore.Address
	stakingTokenAddr *sstore.Address
	rewardTokenAddr  *sstore.Address
	totalDistributed *sstore.Uint256
	startBlock       *sstore.Uint256
	lockPeriod       *sstore.Uint256
	schemaVersion    *sstore.Uint256
	rewardPerBlock   *sstore.Uint256

	sink    EventSink
	journal []Event
}

// New creates a farm instance bound to the given contract address on state.
func New(addr farm.Address, st *state.State) *Farm {
	ctx := sstore.NewContext(addr, st)
	return &Farm{
		ctx:   ctx,
		state: st,

		ledger: ledger.New(ctx, farm.MaxStakers),
		engine: reward.NewEngine(reward.NewProportional(farm.MaxAccrualWindow)),
		fees:   fees.New(ctx, farm.MaxFeeBps),
		status: farmstate.New(ctx),

		owner:            sstore.NewAddress(ctx, slotOwner),
		stakingTokenAddr: sstore.NewAddress(ctx, slotStakingToken),
		rewardTokenAddr:  sstore.NewAddress(ctx, slotRewardToken),
		totalDistributed: sstore.NewUint256(ctx, slotTotalDistributed),
		startBlock:       sstore.NewUint256(ctx, slotStartBlock),
		lockPeriod:       sstore.NewUint256(ctx, slotLockPeriod),
		schemaVersion:    sstore.NewUint256(ctx, slotSchemaVersion),
		rewardPerBlock:   sstore.NewUint256(ctx, slotRewardPerBlock),
	}
}

// Address returns the farm contract address.
func (f *Farm) Address() farm.Address {
	return f.ctx.Address()
}

// SetEventSink directs committed events to the given sink.
func (f *Farm) SetEventSink(sink EventSink) {
	f.sink = sink
}

// run executes a mutating operation inside a checkpoint. On failure every
// write of the operation is reverted and no event leaves the journal.
func (f *Farm) run(name string, fn func() error) error {
	checkpoint := f.state.NewCheckpoint()
	f.journal = f.journal[:0]

	if err := fn(); err != nil {
		f.state.RevertTo(checkpoint)
		f.journal = f.journal[:0]
		if reverts.IsRevert(err) {
			logger.Info(name+" rejected", "error", err)
		} else {
			logger.Error(name+" failed", "error", err)
		}
		return err
	}

	if f.sink != nil && len(f.journal) > 0 {
		if err := f.sink.Post(f.journal); err != nil {
			logger.Warn("event sink rejected events", "op", name, "error", err)
		}
	}
	return nil
}

//
// Initialization and revisioning
//

// Initialize runs the genesis (revision 1) initialization. It executes at
// most once per farm instance.
func (f *Farm) Initialize(env Env, cfg *Config) error {
	return f.run("initialize", func() error {
		version, err := f.Version()
		if err != nil {
			return err
		}
		if version != RevisionNone {
			return reverts.ErrAlreadyInitialized
		}
		if cfg.Owner.IsZero() || cfg.StakingToken.IsZero() || cfg.RewardToken.IsZero() {
			return reverts.ErrInvalidConfiguration.With("zero address in genesis config")
		}
		minRate, maxRate := cfg.MinRewardPerBlock, cfg.MaxRewardPerBlock
		if minRate == nil {
			minRate = farm.InitialMinRewardPerBlock
		}
		if maxRate == nil {
			maxRate = farm.InitialMaxRewardPerBlock
		}
		if minRate.Sign() < 0 || maxRate.Cmp(minRate) < 0 {
			return reverts.ErrInvalidConfiguration.With("reward bounds out of order")
		}

		f.owner.Set(cfg.Owner)
		f.stakingTokenAddr.Set(cfg.StakingToken)
		f.rewardTokenAddr.Set(cfg.RewardToken)
		f.startBlock.Set(new(big.Int).SetUint64(uint64(env.BlockNumber)))
		f.lockPeriod.Set(new(big.Int).SetUint64(cfg.LockPeriod))
		if err := f.setRewardConfig(&reward.Config{
			MinPerBlock: minRate,
			MaxPerBlock: maxRate,
			UpdatedAt:   env.BlockTime,
		}); err != nil {
			return err
		}
		f.setStrategyName(f.engine.Strategy().Name())
		f.schemaVersion.Set(new(big.Int).SetUint64(uint64(Revision1)))

		logger.Info("farm initialized",
			"owner", cfg.Owner,
			"stakingToken", cfg.StakingToken,
			"rewardToken", cfg.RewardToken,
			"startBlock", env.BlockNumber)
		return nil
	})
}

//
// Staker operations
//

// Deposit pulls amount of the staking asset from the caller into custody
// and accounts it to the caller's staking balance.
func (f *Farm) Deposit(env Env, amount *big.Int) error {
	return f.run("deposit", func() error {
		logger.Debug("depositing", "user", env.Caller, "amount", amount)

		if err := f.requireActive(); err != nil {
			return err
		}
		if amount == nil || amount.Cmp(farm.MinDeposit) < 0 {
			return reverts.ErrInvalidAmount.With("minimum deposit is %v", farm.MinDeposit)
		}

		acc, err := f.ledger.GetAccount(env.Caller)
		if err != nil {
			return err
		}
		if !acc.HasStaked {
			if err := f.ledger.Register(env.Caller); err != nil {
				return err
			}
			acc.HasStaked = true
		}

		// settle before the balance changes, otherwise the new stake would
		// accrue for blocks it was not present
		if _, err := f.settleAccount(env, acc); err != nil {
			return err
		}

		acc.Balance = new(big.Int).Add(acc.Balance, amount)
		acc.Checkpoint = env.BlockNumber
		acc.DepositTime = env.BlockTime
		acc.IsStaking = true
		if err := f.ledger.SetAccount(env.Caller, acc); err != nil {
			return err
		}
		if err := f.ledger.AddStake(amount); err != nil {
			return err
		}

		// interactions last
		stakingToken, err := f.StakingToken()
		if err != nil {
			return err
		}
		ok, err := stakingToken.TransferFrom(f.Address(), env.Caller, f.Address(), amount)
		if err != nil {
			return err
		}
		if !ok {
			return reverts.ErrAssetTransferFailed.With("deposit of %v from %v", amount, env.Caller)
		}

		f.emit(env, EventDeposit, &env.Caller, amount, nil, "")
		metricDeposits().Add(1)
		f.gaugeTotalStaked()

		logger.Info("deposited", "user", env.Caller, "amount", amount)
		return nil
	})
}

// Withdraw closes the caller's staking position and returns the custody
// balance minus the withdrawal fee. During an emergency stop, withdrawals
// skip settlement, lock checks and fees entirely, but require the
// emergency-withdraw toggle. It returns the net amount paid out.
func (f *Farm) Withdraw(env Env) (*big.Int, error) {
	var net *big.Int
	err := f.run("withdraw", func() error {
		logger.Debug("withdrawing", "user", env.Caller)

		acc, err := f.ledger.GetAccount(env.Caller)
		if err != nil {
			return err
		}
		if !acc.IsStaking || acc.Balance.Sign() == 0 {
			return reverts.ErrNotStaking
		}

		status, err := f.status.Get()
		if err != nil {
			return err
		}
		emergency := status == farmstate.StatusEmergency
		if emergency {
			enabled, err := f.EmergencyWithdrawEnabled()
			if err != nil {
				return err
			}
			if !enabled {
				return reverts.ErrEmergencyStop.With("emergency withdrawals disabled")
			}
		} else {
			lock, err := f.LockPeriod()
			if err != nil {
				return err
			}
			if lock > 0 && env.BlockTime < acc.DepositTime+lock {
				return reverts.ErrStillLocked.With("unlocks at %d", acc.DepositTime+lock)
			}
			if _, err := f.settleAccount(env, acc); err != nil {
				return err
			}
		}

		principal := acc.Balance
		var fee *big.Int
		if emergency {
			fee = &big.Int{}
		} else {
			bps, err := f.fees.WithdrawFeeBps()
			if err != nil {
				return err
			}
			fee = fees.Compute(principal, bps)
		}
		net = new(big.Int).Sub(principal, fee)

		acc.Balance = &big.Int{}
		acc.IsStaking = false
		if err := f.ledger.SetAccount(env.Caller, acc); err != nil {
			return err
		}
		if err := f.ledger.SubStake(principal); err != nil {
			return err
		}
		if fee.Sign() > 0 {
			if err := f.fees.AddStakingFee(fee); err != nil {
				return err
			}
		}

		stakingToken, err := f.StakingToken()
		if err != nil {
			return err
		}
		ok, err := stakingToken.Transfer(f.Address(), env.Caller, net)
		if err != nil {
			return err
		}
		if !ok {
			return reverts.ErrAssetTransferFailed.With("withdrawal of %v to %v", net, env.Caller)
		}

		f.emit(env, EventWithdraw, &env.Caller, net, fee, "")
		metricWithdrawals().Add(1)
		f.gaugeTotalStaked()

		logger.Info("withdrew", "user", env.Caller, "net", net, "fee", fee, "emergency", emergency)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return net, nil
}

// ClaimRewards settles the caller's accrual, zeroes the pending balance and
// mints the net payout in the reward asset. The claim fee goes to the
// reward-asset fee pool. It returns the net amount minted.
func (f *Farm) ClaimRewards(env Env) (*big.Int, error) {
	var net *big.Int
	err := f.run("claimRewards", func() error {
		logger.Debug("claiming rewards", "user", env.Caller)

		if err := f.requireActive(); err != nil {
			return err
		}

		acc, err := f.ledger.GetAccount(env.Caller)
		if err != nil {
			return err
		}
		if _, err := f.settleAccount(env, acc); err != nil {
			return err
		}

		pending := acc.PendingRewards
		if pending.Sign() == 0 {
			return reverts.ErrNoRewardsAvailable
		}

		bps, err := f.fees.ClaimFeeBps()
		if err != nil {
			return err
		}
		fee := fees.Compute(pending, bps)
		net = new(big.Int).Sub(pending, fee)

		acc.PendingRewards = &big.Int{}
		acc.TotalClaimed = new(big.Int).Add(acc.TotalClaimed, net)
		if err := f.ledger.SetAccount(env.Caller, acc); err != nil {
			return err
		}
		if fee.Sign() > 0 {
			if err := f.fees.AddRewardFee(fee); err != nil {
				return err
			}
		}

		rewardToken, err := f.RewardToken()
		if err != nil {
			return err
		}
		if err := rewardToken.Mint(f.Address(), env.Caller, net); err != nil {
			return reverts.ErrAssetTransferFailed.With("reward mint: %v", err)
		}

		f.emit(env, EventRewardsClaimed, &env.Caller, net, fee, "")
		metricClaims().Add(1)

		logger.Info("claimed rewards", "user", env.Caller, "net", net, "fee", fee)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return net, nil
}

//
// Operator operations
//

// DistributeRewardsAll settles every account currently staking, in one
// atomic batch. It returns the number of settled accounts and the total
// settled amount.
func (f *Farm) DistributeRewardsAll(env Env) (count uint64, total *big.Int, err error) {
	total = &big.Int{}
	err = f.run("distributeRewardsAll", func() error {
		logger.Debug("distributing rewards", "block", env.BlockNumber)

		if err := f.requireOwner(env); err != nil {
			return err
		}
		if err := f.requireActive(); err != nil {
			return err
		}

		// iterates every account that ever staked; bounded by the index cap
		err := f.ledger.IterStakers(func(addr farm.Address, acc *ledger.Account) error {
			if !acc.IsStaking {
				return nil
			}
			delta, err := f.settleAccount(env, acc)
			if err != nil {
				return err
			}
			if delta.Sign() == 0 {
				return nil
			}
			if err := f.ledger.SetAccount(addr, acc); err != nil {
				return err
			}
			count++
			total.Add(total, delta)
			return nil
		})
		if err != nil {
			return err
		}

		f.emit(env, EventRewardsDistributed, nil, total, new(big.Int).SetUint64(count), "")
		logger.Info("distributed rewards", "stakers", count, "total", total)
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return count, total, nil
}

// UpdateRewardStrategy swaps the accrual strategy. Already-settled rewards
// are untouched; only future accrual uses the new strategy.
func (f *Farm) UpdateRewardStrategy(env Env, strategy reward.Strategy) error {
	return f.run("updateRewardStrategy", func() error {
		if err := f.requireOwner(env); err != nil {
			return err
		}
		if strategy == nil {
			return reverts.ErrInvalidConfiguration.With("nil strategy")
		}

		old := f.engine.SetStrategy(strategy)
		f.setStrategyName(strategy.Name())

		f.emit(env, EventStrategyUpdated, nil, nil, nil, old.Name()+"->"+strategy.Name())
		logger.Info("updated reward strategy", "old", old.Name(), "new", strategy.Name())
		return nil
	})
}

// UpdateRewardConfig updates the min/max per-block reward bounds and the
// legacy fee percent.
func (f *Farm) UpdateRewardConfig(env Env, minRate, maxRate *big.Int, feePercent uint32) error {
	return f.run("updateRewardConfig", func() error {
		if err := f.requireOwner(env); err != nil {
			return err
		}
		if minRate == nil || maxRate == nil || minRate.Sign() < 0 || maxRate.Cmp(minRate) < 0 {
			return reverts.ErrInvalidConfiguration.With("reward bounds out of order")
		}
		if feePercent > 100 {
			return reverts.ErrInvalidConfiguration.With("fee percent %d beyond 100", feePercent)
		}

		if err := f.setRewardConfig(&reward.Config{
			MinPerBlock: minRate,
			MaxPerBlock: maxRate,
			FeePercent:  feePercent,
			UpdatedAt:   env.BlockTime,
		}); err != nil {
			return err
		}

		f.emit(env, EventRewardConfigUpdated, nil, minRate, maxRate, "")
		logger.Info("updated reward config", "min", minRate, "max", maxRate, "feePercent", feePercent)
		return nil
	})
}

// PauseFarm moves the farm to PAUSED. A second pause is a silent no-op.
func (f *Farm) PauseFarm(env Env) error {
	return f.transition(env, "pauseFarm", f.status.Pause)
}

// ResumeFarm moves the farm back to ACTIVE. Rejected during emergency stop.
func (f *Farm) ResumeFarm(env Env) error {
	return f.transition(env, "resumeFarm", f.status.Resume)
}

// EmergencyStop moves the farm to EMERGENCY_STOP from any state.
// Idempotent; the second call emits nothing.
func (f *Farm) EmergencyStop(env Env) error {
	return f.run("emergencyStop", func() error {
		if err := f.requireOwner(env); err != nil {
			return err
		}
		changed, old, err := f.status.EmergencyStop()
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}
		f.emit(env, EventStateChanged, nil, nil, nil, old.String()+"->"+farmstate.StatusEmergency.String())
		f.emit(env, EventEmergencyStop, nil, nil, nil, "")
		logger.Warn("emergency stop", "old", old.String())
		return nil
	})
}

func (f *Farm) transition(env Env, name string, op func() (bool, farmstate.Status, error)) error {
	return f.run(name, func() error {
		if err := f.requireOwner(env); err != nil {
			return err
		}
		changed, old, err := op()
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}
		current, err := f.status.Get()
		if err != nil {
			return err
		}
		f.emit(env, EventStateChanged, nil, nil, nil, old.String()+"->"+current.String())
		logger.Info("farm state changed", "old", old.String(), "new", current.String())
		return nil
	})
}

// SetEmergencyWithdrawEnabled toggles whether withdrawals are honored while
// the farm is in emergency stop.
func (f *Farm) SetEmergencyWithdrawEnabled(env Env, enabled bool) error {
	return f.run("setEmergencyWithdrawEnabled", func() error {
		if err := f.requireOwner(env); err != nil {
			return err
		}
		var v farm.Bytes32
		if enabled {
			v[31] = 1
		}
		f.state.SetStorage(f.Address(), slotEmergencyWithdraw, v)
		logger.Info("set emergency withdrawals", "enabled", enabled)
		return nil
	})
}

// WithdrawFees drains the reward-asset fee pool to the collector, minting
// the drained amount. Draining an empty pool is rejected.
func (f *Farm) WithdrawFees(env Env) (*big.Int, error) {
	return f.drainPool(env, "withdrawFees", "reward", f.fees.DrainRewardPool, func(collector farm.Address, amount *big.Int) error {
		rewardToken, err := f.RewardToken()
		if err != nil {
			return err
		}
		if err := rewardToken.Mint(f.Address(), collector, amount); err != nil {
			return reverts.ErrAssetTransferFailed.With("fee mint: %v", err)
		}
		return nil
	})
}

// WithdrawLpFees drains the deposit-asset fee pool to the collector,
// transferring from custody. Draining an empty pool is rejected.
func (f *Farm) WithdrawLpFees(env Env) (*big.Int, error) {
	return f.drainPool(env, "withdrawLpFees", "staking", f.fees.DrainStakingPool, func(collector farm.Address, amount *big.Int) error {
		stakingToken, err := f.StakingToken()
		if err != nil {
			return err
		}
		ok, err := stakingToken.Transfer(f.Address(), collector, amount)
		if err != nil {
			return err
		}
		if !ok {
			return reverts.ErrAssetTransferFailed.With("fee transfer of %v", amount)
		}
		return nil
	})
}

func (f *Farm) drainPool(env Env, name, pool string, drain func() (*big.Int, error), pay func(farm.Address, *big.Int) error) (*big.Int, error) {
	var amount *big.Int
	err := f.run(name, func() error {
		if err := f.requireOwner(env); err != nil {
			return err
		}
		collector, err := f.fees.Collector()
		if err != nil {
			return err
		}
		if collector.IsZero() {
			return reverts.ErrInvalidConfiguration.With("fee collector not set")
		}

		amount, err = drain()
		if err != nil {
			return err
		}
		if err := pay(collector, amount); err != nil {
			return err
		}

		f.emit(env, EventFeesWithdrawn, &collector, amount, nil, pool)
		logger.Info("withdrew fees", "pool", pool, "collector", collector, "amount", amount)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return amount, nil
}

// UpdateFees updates the withdraw and claim fee rates, in basis points.
// Requires the revision-2 initialization to have run.
func (f *Farm) UpdateFees(env Env, withdrawBps, claimBps uint32) error {
	return f.run("updateFees", func() error {
		if err := f.requireOwner(env); err != nil {
			return err
		}
		if err := f.requireRevision(Revision2); err != nil {
			return err
		}
		if err := f.fees.SetRates(withdrawBps, claimBps); err != nil {
			return err
		}

		f.emit(env, EventFeesUpdated, nil,
			new(big.Int).SetUint64(uint64(withdrawBps)),
			new(big.Int).SetUint64(uint64(claimBps)), "")
		logger.Info("updated fees", "withdrawBps", withdrawBps, "claimBps", claimBps)
		return nil
	})
}

// SetRewardPerBlock updates the revision-2 flat accrual rate. A zero rate
// falls back to the pluggable strategy.
func (f *Farm) SetRewardPerBlock(env Env, rate *big.Int) error {
	return f.run("setRewardPerBlock", func() error {
		if err := f.requireOwner(env); err != nil {
			return err
		}
		if err := f.requireRevision(Revision2); err != nil {
			return err
		}
		if rate == nil || rate.Sign() < 0 {
			return reverts.ErrInvalidConfiguration.With("negative reward per block")
		}
		f.rewardPerBlock.Set(rate)
		logger.Info("set reward per block", "rate", rate)
		return nil
	})
}

// SetFeeCollector updates the fee collector address.
func (f *Farm) SetFeeCollector(env Env, collector farm.Address) error {
	return f.run("setFeeCollector", func() error {
		if err := f.requireOwner(env); err != nil {
			return err
		}
		if err := f.fees.SetCollector(collector); err != nil {
			return err
		}
		f.emit(env, EventFeeCollectorUpdated, &collector, nil, nil, "")
		logger.Info("set fee collector", "collector", collector)
		return nil
	})
}

//
// Internals
//

// settleAccount folds the account's accrual up to env.BlockNumber into its
// pending rewards and tracks the gross settled amount farm-wide. The caller
// persists the account.
func (f *Farm) settleAccount(env Env, acc *ledger.Account) (*big.Int, error) {
	totalStaked, err := f.ledger.TotalStaked()
	if err != nil {
		return nil, err
	}
	cfg, err := f.rewardConfig()
	if err != nil {
		return nil, err
	}
	flatRate, err := f.flatRate()
	if err != nil {
		return nil, err
	}

	delta := f.engine.Settle(acc, env.BlockNumber, totalStaked, cfg, flatRate)
	if delta.Sign() > 0 {
		if err := f.totalDistributed.Add(delta); err != nil {
			return nil, err
		}
		metricSettlements().Add(1)
	}
	return delta, nil
}

// flatRate returns the revision-2 reward-per-block rate, or nil when the
// pluggable strategy applies.
func (f *Farm) flatRate() (*big.Int, error) {
	version, err := f.Version()
	if err != nil {
		return nil, err
	}
	if version < Revision2 {
		return nil, nil
	}
	rate, err := f.rewardPerBlock.Get()
	if err != nil {
		return nil, err
	}
	if rate.Sign() == 0 {
		return nil, nil
	}
	return rate, nil
}

func (f *Farm) requireOwner(env Env) error {
	owner, err := f.owner.Get()
	if err != nil {
		return err
	}
	if env.Caller != owner {
		return reverts.ErrUnauthorized
	}
	return nil
}

func (f *Farm) requireActive() error {
	status, err := f.status.Get()
	if err != nil {
		return err
	}
	if status != farmstate.StatusActive {
		return reverts.ErrFarmStopped.With("farm is %s", status)
	}
	return nil
}

func (f *Farm) requireRevision(revision uint32) error {
	version, err := f.Version()
	if err != nil {
		return err
	}
	if version < revision {
		return reverts.ErrInvalidConfiguration.With("requires revision %d, farm is at %d", revision, version)
	}
	return nil
}

func (f *Farm) rewardConfig() (*reward.Config, error) {
	var cfg reward.Config
	if err := f.state.GetStructuredStorage(f.Address(), slotRewardConfig, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to get reward config")
	}
	return &cfg, nil
}

func (f *Farm) setRewardConfig(cfg *reward.Config) error {
	if err := f.state.SetStructuredStorage(f.Address(), slotRewardConfig, cfg); err != nil {
		return errors.Wrap(err, "failed to set reward config")
	}
	return nil
}

func (f *Farm) setStrategyName(name string) {
	f.state.SetStorage(f.Address(), slotStrategyName, farm.BytesToBytes32([]byte(name)))
}

// StakingToken returns the deposit asset ledger.
func (f *Farm) StakingToken() (*token.Token, error) {
	addr, err := f.stakingTokenAddr.Get()
	if err != nil {
		return nil, err
	}
	return token.New(addr, f.state), nil
}

// RewardToken returns the reward asset ledger. The farm address is expected
// to be its master so claims can mint.
func (f *Farm) RewardToken() (*token.Token, error) {
	addr, err := f.rewardTokenAddr.Get()
	if err != nil {
		return nil, err
	}
	return token.New(addr, f.state), nil
}

// EmergencyWithdrawEnabled returns the emergency-withdraw toggle.
func (f *Farm) EmergencyWithdrawEnabled() (bool, error) {
	v, err := f.state.GetStorage(f.Address(), slotEmergencyWithdraw)
	if err != nil {
		return false, err
	}
	return v[31] != 0, nil
}

// LockPeriod returns the configured lock period in seconds.
func (f *Farm) LockPeriod() (uint64, error) {
	v, err := f.lockPeriod.Get()
	if err != nil {
		return 0, err
	}
	return v.Uint64(), nil
}

func (f *Farm) gaugeTotalStaked() {
	if total, err := f.ledger.TotalStaked(); err == nil && total.IsInt64() {
		metricTotalStaked().Set(total.Int64())
	}
}
