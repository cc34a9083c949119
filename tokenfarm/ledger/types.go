// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/state"
)

// Account is the per-staker ledger record.
type Account struct {
	Balance        *big.Int // deposited amount held in custody
	Checkpoint     uint32   // block height rewards were last settled at
	PendingRewards *big.Int // accrued but unclaimed rewards
	TotalClaimed   *big.Int // lifetime claimed amount, never decreases
	DepositTime    uint64   // wall-clock time of the most recent deposit
	HasStaked      bool     // set once on first deposit, never cleared
	IsStaking      bool     // true while balance is nonzero
}

var (
	_ state.StorageEncoder = (*Account)(nil)
	_ state.StorageDecoder = (*Account)(nil)
)

// Encode implements state.StorageEncoder.
func (a *Account) Encode() ([]byte, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	return rlp.EncodeToBytes(a)
}

// Decode implements state.StorageDecoder.
func (a *Account) Decode(data []byte) error {
	if len(data) == 0 {
		*a = Account{
			Balance:        &big.Int{},
			PendingRewards: &big.Int{},
			TotalClaimed:   &big.Int{},
		}
		return nil
	}
	return rlp.DecodeBytes(data, a)
}

// IsEmpty returns whether the record carries no information.
// Empty records are not persisted.
func (a *Account) IsEmpty() bool {
	return !a.HasStaked &&
		!a.IsStaking &&
		a.Checkpoint == 0 &&
		a.DepositTime == 0 &&
		(a.Balance == nil || a.Balance.Sign() == 0) &&
		(a.PendingRewards == nil || a.PendingRewards.Sign() == 0) &&
		(a.TotalClaimed == nil || a.TotalClaimed.Sign() == 0)
}
