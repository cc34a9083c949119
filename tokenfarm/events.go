// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokenfarm

import (
	"math/big"

	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/farm"
)

// Event names.
const (
	EventDeposit             = "Deposit"
	EventWithdraw            = "Withdraw"
	EventRewardsClaimed      = "RewardsClaimed"
	EventRewardsDistributed  = "RewardsDistributed"
	EventFeesWithdrawn       = "FeesWithdrawn"
	EventRewardConfigUpdated = "RewardConfigUpdated"
	EventStateChanged        = "StateChanged"
	EventStrategyUpdated     = "StrategyUpdated"
	EventEmergencyStop       = "EmergencyStop"
	EventFeesUpdated         = "FeesUpdated"
	EventFeeCollectorUpdated = "FeeCollectorUpdated"
)

// Event is an observable fact emitted by a committed farm operation.
// Amount/Aux carry the two numeric payload fields of the event, Memo carries
// the textual one (old->new state, strategy names, pool name).
type Event struct {
	Name        string        `json:"name"`
	BlockNumber uint32        `json:"blockNumber"`
	BlockTime   uint64        `json:"blockTime"`
	User        *farm.Address `json:"user,omitempty"`
	Amount      *big.Int      `json:"amount,omitempty"`
	Aux         *big.Int      `json:"aux,omitempty"`
	Memo        string        `json:"memo,omitempty"`
}

// EventSink receives the events of an operation after it has fully
// succeeded. Failed operations emit nothing.
type EventSink interface {
	Post(events []Event) error
}

// EventSinkFunc adapts a function to the EventSink interface.
type EventSinkFunc func(events []Event) error

func (f EventSinkFunc) Post(events []Event) error { return f(events) }

// emit journals an event for the running operation. The journal is flushed
// to the sink only when the operation commits.
func (f *Farm) emit(env Env, name string, user *farm.Address, amount, aux *big.Int, memo string) {
	f.journal = append(f.journal, Event{
		Name:        name,
		BlockNumber: env.BlockNumber,
		BlockTime:   env.BlockTime,
		User:        user,
		Amount:      amount,
		Aux:         aux,
		Memo:        memo,
	})
}
