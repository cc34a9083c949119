// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/farm"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/sstore"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/tokenfarm/reverts"
)

var (
	slotAccounts    = farm.BytesToBytes32([]byte("staker-accounts"))
	slotStakerIndex = farm.BytesToBytes32([]byte("staker-index"))
	slotTotalStaked = farm.BytesToBytes32([]byte("total-staking-balance"))
)

// Service owns the per-account records, the append-only staker index and the
// global staking total.
//
// Invariant: the total always equals the sum of all account balances between
// operations.
type Service struct {
	accounts    *sstore.Mapping[farm.Address, Account]
	index       *sstore.AddressList
	totalStaked *sstore.Uint256

	maxStakers uint64
}

func New(context *sstore.Context, maxStakers uint64) *Service {
	return &Service{
		accounts:    sstore.NewMapping[farm.Address, Account](context, slotAccounts),
		index:       sstore.NewAddressList(context, slotStakerIndex),
		totalStaked: sstore.NewUint256(context, slotTotalStaked),

		maxStakers: maxStakers,
	}
}

// GetAccount returns the record for the given staker.
// A never-seen address yields an empty record, not an error.
func (s *Service) GetAccount(addr farm.Address) (*Account, error) {
	acc, err := s.accounts.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get account")
	}
	return &acc, nil
}

// SetAccount persists the record for the given staker.
func (s *Service) SetAccount(addr farm.Address, acc *Account) error {
	if err := s.accounts.Set(addr, *acc); err != nil {
		return errors.Wrap(err, "failed to set account")
	}
	return nil
}

// Register adds a first-time staker to the append-only index.
// It fails when the index has reached its maximum cardinality.
func (s *Service) Register(addr farm.Address) error {
	count, err := s.index.Len()
	if err != nil {
		return errors.Wrap(err, "failed to read staker index")
	}
	if count >= s.maxStakers {
		return reverts.ErrMaxAccountsReached
	}
	if _, err := s.index.Append(addr); err != nil {
		return errors.Wrap(err, "failed to extend staker index")
	}
	return nil
}

// StakerCount returns the number of accounts that ever staked.
func (s *Service) StakerCount() (uint64, error) {
	return s.index.Len()
}

// IterStakers iterates every account that ever staked, in registration order.
func (s *Service) IterStakers(cb func(farm.Address, *Account) error) error {
	return s.index.Iter(func(addr farm.Address) error {
		acc, err := s.GetAccount(addr)
		if err != nil {
			return err
		}
		return cb(addr, acc)
	})
}

// ActiveStakers returns the addresses currently staking.
func (s *Service) ActiveStakers() ([]farm.Address, error) {
	var active []farm.Address
	err := s.IterStakers(func(addr farm.Address, acc *Account) error {
		if acc.IsStaking {
			active = append(active, addr)
		}
		return nil
	})
	return active, err
}

// TotalStaked returns the global staking balance.
func (s *Service) TotalStaked() (*big.Int, error) {
	return s.totalStaked.Get()
}

// AddStake increases the global staking balance.
func (s *Service) AddStake(amount *big.Int) error {
	return s.totalStaked.Add(amount)
}

// SubStake decreases the global staking balance.
func (s *Service) SubStake(amount *big.Int) error {
	return s.totalStaked.Sub(amount)
}
