// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokenfarm

import "github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/farm"

// Storage layout.
//
// Slot positions are names, not ordinals, so upgrades cannot reorder or
// retype what an earlier revision wrote. The discipline is strict append:
// a new revision only introduces new slot names (see tokenfarm/fees for the
// rest of the revision-2 slots) and never touches the meaning of an old one.
var (
	// revision 1
	slotOwner             = farm.BytesToBytes32([]byte("farm-owner"))
	slotStakingToken      = farm.BytesToBytes32([]byte("staking-token-address"))
	slotRewardToken       = farm.BytesToBytes32([]byte("reward-token-address"))
	slotRewardConfig      = farm.BytesToBytes32([]byte("reward-config"))
	slotTotalDistributed  = farm.BytesToBytes32([]byte("total-rewards-distributed"))
	slotStartBlock        = farm.BytesToBytes32([]byte("farm-start-block"))
	slotLockPeriod        = farm.BytesToBytes32([]byte("lock-period"))
	slotEmergencyWithdraw = farm.BytesToBytes32([]byte("emergency-withdraw-enabled"))
	slotSchemaVersion     = farm.BytesToBytes32([]byte("schema-version"))
	slotStrategyName      = farm.BytesToBytes32([]byte("reward-strategy-name"))

	// revision 2, appended
	slotRewardPerBlock = farm.BytesToBytes32([]byte("reward-per-block"))
)
