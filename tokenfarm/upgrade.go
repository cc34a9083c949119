// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokenfarm

import (
	"math/big"

	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/farm"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/tokenfarm/reverts"
)

// ConfigV2 carries the parameters of the one-time revision-2 initialization.
type ConfigV2 struct {
	WithdrawFeeBps uint32
	ClaimFeeBps    uint32
	FeeCollector   farm.Address
	RewardPerBlock *big.Int // zero keeps the pluggable strategy active
}

// InitializeV2 runs the one-time revision-2 migration: it validates and
// writes the appended fee and flat-rate slots, then bumps the stored schema
// version. The version counter makes the call non-repeatable; a second call
// fails with AlreadyInitialized and changes nothing.
//
// Every revision-1 slot is left untouched, so all revision-1 accessors keep
// operating unchanged afterwards.
func (f *Farm) InitializeV2(env Env, cfg *ConfigV2) error {
	return f.run("initializeV2", func() error {
		// The owner slot is only written by the genesis initialization, so the
		// revision guard has to run first; otherwise a pre-genesis call would be
		// judged against the zero address.
		version, err := f.Version()
		if err != nil {
			return err
		}
		if version == RevisionNone {
			return reverts.ErrInvalidConfiguration.With("genesis initialization has not run")
		}
		if err := f.requireOwner(env); err != nil {
			return err
		}
		if version >= Revision2 {
			return reverts.ErrAlreadyInitialized
		}
		if cfg.FeeCollector.IsZero() {
			return reverts.ErrInvalidConfiguration.With("fee collector is the zero address")
		}
		if cfg.RewardPerBlock != nil && cfg.RewardPerBlock.Sign() < 0 {
			return reverts.ErrInvalidConfiguration.With("negative reward per block")
		}

		if err := f.fees.SetRates(cfg.WithdrawFeeBps, cfg.ClaimFeeBps); err != nil {
			return err
		}
		if err := f.fees.SetCollector(cfg.FeeCollector); err != nil {
			return err
		}
		if cfg.RewardPerBlock != nil && cfg.RewardPerBlock.Sign() > 0 {
			f.rewardPerBlock.Set(cfg.RewardPerBlock)
		}
		f.schemaVersion.Set(new(big.Int).SetUint64(uint64(Revision2)))

		f.emit(env, EventFeesUpdated, nil,
			new(big.Int).SetUint64(uint64(cfg.WithdrawFeeBps)),
			new(big.Int).SetUint64(uint64(cfg.ClaimFeeBps)), "")
		f.emit(env, EventFeeCollectorUpdated, &cfg.FeeCollector, nil, nil, "")

		logger.Info("revision 2 initialized",
			"withdrawBps", cfg.WithdrawFeeBps,
			"claimBps", cfg.ClaimFeeBps,
			"collector", cfg.FeeCollector)
		return nil
	})
}

// Version reports the logic revision of the farm. Zero means the genesis
// initialization has not run yet.
func (f *Farm) Version() (uint32, error) {
	v, err := f.schemaVersion.Get()
	if err != nil {
		return 0, err
	}
	return uint32(v.Uint64()), nil
}
