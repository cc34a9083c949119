// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"encoding/binary"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/farm"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/kv"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/state"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/token"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/tokenfarm"
)

// headBucket keeps the node's clock position across restarts.
const headBucket = kv.Bucket("n")

var headKey = []byte("head")

// Node drives the farm with a solo block clock: one block every
// farm.BlockInterval seconds, each tick committed to the backing store.
type Node struct {
	store kv.GetPutter
	state *state.State
	farm  *tokenfarm.Farm
	owner farm.Address

	distributeEvery uint64

	mu    sync.Mutex // guards the clock position
	block uint32
	time  uint64

	// ledgerMu serializes state access: ticks mutate and commit the backing
	// state, API handlers read it through the same State instance.
	ledgerMu sync.Mutex
}

func newNode(store kv.GetPutter, st *state.State, f *tokenfarm.Farm, owner farm.Address, distributeEvery uint64) (*Node, error) {
	n := &Node{
		store:           store,
		state:           st,
		farm:            f,
		owner:           owner,
		distributeEvery: distributeEvery,
		time:            uint64(time.Now().Unix()),
	}

	head := headBucket.NewStore(store)
	raw, err := head.Get(headKey)
	if err != nil {
		if !head.IsNotFound(err) {
			return nil, errors.Wrap(err, "failed to read head")
		}
	} else if len(raw) == 8 {
		n.block = uint32(binary.BigEndian.Uint64(raw))
	}
	return n, nil
}

// Env returns the environment of the current head, for read-side views.
func (n *Node) Env() tokenfarm.Env {
	n.mu.Lock()
	defer n.mu.Unlock()
	return tokenfarm.Env{BlockNumber: n.block, BlockTime: n.time}
}

// OwnerEnv returns the current environment with the farm owner as caller.
func (n *Node) OwnerEnv() tokenfarm.Env {
	env := n.Env()
	env.Caller = n.owner
	return env
}

// Locker returns the mutex serializing ledger access. The API server takes it
// around every state read so a tick never commits under a running request.
func (n *Node) Locker() sync.Locker { return &n.ledgerMu }

// Run advances the block clock until the context is done.
func (n *Node) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Duration(farm.BlockInterval) * time.Second)
	defer ticker.Stop()

	logger.Info("block clock started", "head", n.Env().BlockNumber, "interval", farm.BlockInterval)
	for {
		select {
		case <-ctx.Done():
			logger.Info("block clock stopped", "head", n.Env().BlockNumber)
			return nil
		case <-ticker.C:
			if err := n.tick(); err != nil {
				return err
			}
		}
	}
}

func (n *Node) tick() error {
	n.mu.Lock()
	n.block++
	n.time = uint64(time.Now().Unix())
	block := n.block
	n.mu.Unlock()

	n.ledgerMu.Lock()
	defer n.ledgerMu.Unlock()

	if n.distributeEvery > 0 && uint64(block)%n.distributeEvery == 0 {
		count, total, err := n.farm.DistributeRewardsAll(n.OwnerEnv())
		if err != nil {
			logger.Warn("batch settlement failed", "block", block, "error", err)
		} else {
			logger.Debug("batch settlement", "block", block, "stakers", count, "total", total)
		}
	}

	if err := n.state.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit state")
	}

	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], uint64(block))
	if err := headBucket.NewStore(n.store).Put(headKey, raw[:]); err != nil {
		return errors.Wrap(err, "failed to persist head")
	}
	return nil
}

// bootstrap initializes a fresh farm and seeds genesis balances. A farm that
// is already initialized is left untouched.
func bootstrap(n *Node, cfg *FarmConfig) error {
	version, err := n.farm.Version()
	if err != nil {
		return err
	}
	if version == tokenfarm.RevisionNone {
		owner, err := cfg.address("owner", cfg.Owner)
		if err != nil {
			return err
		}
		stakingAddr, err := cfg.address("stakingToken", cfg.StakingToken)
		if err != nil {
			return err
		}
		rewardAddr, err := cfg.address("rewardToken", cfg.RewardToken)
		if err != nil {
			return err
		}
		minRate, err := parseAmount("minRewardPerBlock", cfg.MinRewardPerBlock)
		if err != nil {
			return err
		}
		maxRate, err := parseAmount("maxRewardPerBlock", cfg.MaxRewardPerBlock)
		if err != nil {
			return err
		}

		// the farm must be reward-token master so claims can mint
		token.New(rewardAddr, n.state).SetMaster(n.farm.Address())
		stakingToken := token.New(stakingAddr, n.state)
		stakingToken.SetMaster(owner)

		if err := n.farm.Initialize(n.Env(), &tokenfarm.Config{
			Owner:             owner,
			StakingToken:      stakingAddr,
			RewardToken:       rewardAddr,
			MinRewardPerBlock: minRate,
			MaxRewardPerBlock: maxRate,
			LockPeriod:        cfg.LockPeriod,
		}); err != nil {
			return err
		}

		for account, amount := range cfg.GenesisBalances {
			addr, err := cfg.address("genesisBalances", account)
			if err != nil {
				return err
			}
			balance, err := parseAmount("genesisBalances", amount)
			if err != nil {
				return err
			}
			if err := stakingToken.Mint(owner, addr, balance); err != nil {
				return err
			}
			// pre-approve the farm, so the dev harness can deposit right away
			if err := stakingToken.Approve(addr, n.farm.Address(), balance); err != nil {
				return err
			}
		}
		version = tokenfarm.Revision1
	}

	if cfg.InitializeV2 && version < tokenfarm.Revision2 {
		collector, err := cfg.address("feeCollector", cfg.FeeCollector)
		if err != nil {
			return err
		}
		rewardPerBlock, err := parseAmount("rewardPerBlock", cfg.RewardPerBlock)
		if err != nil {
			return err
		}
		if err := n.farm.InitializeV2(n.OwnerEnv(), &tokenfarm.ConfigV2{
			WithdrawFeeBps: cfg.WithdrawFeeBps,
			ClaimFeeBps:    cfg.ClaimFeeBps,
			FeeCollector:   collector,
			RewardPerBlock: rewardPerBlock,
		}); err != nil {
			return err
		}
	}

	return n.state.Commit()
}
