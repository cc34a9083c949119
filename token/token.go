// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/farm"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/state"
)

var (
	totalSupplyKey = farm.Blake2b([]byte("total-supply"))
	masterKey      = farm.Blake2b([]byte("master"))
)

func balanceKey(holder farm.Address) farm.Bytes32 {
	return farm.BytesToBytes32(append([]byte("b"), holder.Bytes()...))
}

func allowanceKey(holder farm.Address, spender farm.Address) farm.Bytes32 {
	return farm.Blake2b(holder.Bytes(), spender.Bytes())
}

// Token implements a fungible asset ledger kept in state: balances,
// allowances, total supply and a master account allowed to mint.
type Token struct {
	addr  farm.Address
	state *state.State
}

// New create a token instance bound to the given contract address.
func New(addr farm.Address, state *state.State) *Token {
	return &Token{addr, state}
}

// Address returns the token contract address.
func (t *Token) Address() farm.Address {
	return t.addr
}

// Master returns the account allowed to mint.
func (t *Token) Master() (farm.Address, error) {
	storage, err := t.state.GetStorage(t.addr, masterKey)
	if err != nil {
		return farm.Address{}, err
	}
	return farm.BytesToAddress(storage.Bytes()), nil
}

// SetMaster sets the account allowed to mint.
func (t *Token) SetMaster(master farm.Address) {
	t.state.SetStorage(t.addr, masterKey, farm.BytesToBytes32(master.Bytes()))
}

// TotalSupply returns the total minted supply.
func (t *Token) TotalSupply() (*big.Int, error) {
	supply := new(big.Int)
	if err := t.state.GetStructuredStorage(t.addr, totalSupplyKey, supply); err != nil {
		return nil, err
	}
	return supply, nil
}

// BalanceOf returns the token balance of an account.
func (t *Token) BalanceOf(holder farm.Address) (*big.Int, error) {
	bal := new(big.Int)
	if err := t.state.GetStructuredStorage(t.addr, balanceKey(holder), bal); err != nil {
		return nil, err
	}
	return bal, nil
}

func (t *Token) setBalance(holder farm.Address, bal *big.Int) error {
	if bal.Sign() == 0 {
		t.state.SetRawStorage(t.addr, balanceKey(holder), nil)
		return nil
	}
	return t.state.SetStructuredStorage(t.addr, balanceKey(holder), bal)
}

// Mint creates amount tokens on the balance of to.
// Only the master account may mint.
func (t *Token) Mint(caller farm.Address, to farm.Address, amount *big.Int) error {
	master, err := t.Master()
	if err != nil {
		return err
	}
	if caller != master {
		return errors.New("mint: caller is not token master")
	}
	if amount.Sign() == 0 {
		return nil
	}

	bal, err := t.BalanceOf(to)
	if err != nil {
		return err
	}
	if err := t.setBalance(to, new(big.Int).Add(bal, amount)); err != nil {
		return err
	}

	supply, err := t.TotalSupply()
	if err != nil {
		return err
	}
	return t.state.SetStructuredStorage(t.addr, totalSupplyKey, new(big.Int).Add(supply, amount))
}

// Transfer moves amount from one account to another.
// It returns false, without mutating anything, when the balance is short.
func (t *Token) Transfer(from farm.Address, to farm.Address, amount *big.Int) (bool, error) {
	fromBal, err := t.BalanceOf(from)
	if err != nil {
		return false, err
	}
	if fromBal.Cmp(amount) < 0 {
		return false, nil
	}
	if amount.Sign() == 0 || from == to {
		return true, nil
	}
	if err := t.setBalance(from, new(big.Int).Sub(fromBal, amount)); err != nil {
		return false, err
	}
	toBal, err := t.BalanceOf(to)
	if err != nil {
		return false, err
	}
	return true, t.setBalance(to, new(big.Int).Add(toBal, amount))
}

// Approve sets the allowance of spender over holder's tokens.
func (t *Token) Approve(holder farm.Address, spender farm.Address, amount *big.Int) error {
	return t.state.SetStructuredStorage(t.addr, allowanceKey(holder, spender), amount)
}

// Allowance returns the remaining allowance of spender over holder's tokens.
func (t *Token) Allowance(holder farm.Address, spender farm.Address) (*big.Int, error) {
	allowance := new(big.Int)
	if err := t.state.GetStructuredStorage(t.addr, allowanceKey(holder, spender), allowance); err != nil {
		return nil, err
	}
	return allowance, nil
}

// TransferFrom moves amount from holder to to, spending spender's allowance.
// It returns false, without mutating anything, when the balance or the
// allowance is short.
func (t *Token) TransferFrom(spender farm.Address, holder farm.Address, to farm.Address, amount *big.Int) (bool, error) {
	if spender != holder {
		allowance, err := t.Allowance(holder, spender)
		if err != nil {
			return false, err
		}
		if allowance.Cmp(amount) < 0 {
			return false, nil
		}
		bal, err := t.BalanceOf(holder)
		if err != nil {
			return false, err
		}
		if bal.Cmp(amount) < 0 {
			return false, nil
		}
		if err := t.Approve(holder, spender, new(big.Int).Sub(allowance, amount)); err != nil {
			return false, err
		}
	}
	return t.Transfer(holder, to, amount)
}
