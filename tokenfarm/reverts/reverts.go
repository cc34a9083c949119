// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"
)

// ErrRevert is the error returned when a farm operation is rejected.
// Every ErrRevert aborts the whole operation; all ledger mutations performed
// by it are rolled back.
type ErrRevert struct {
	code    string
	message string
}

func New(code, message string) *ErrRevert {
	return &ErrRevert{
		code:    code,
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

// Code returns the taxonomy code of the revert.
func (e *ErrRevert) Code() string {
	return e.code
}

// With returns a copy of e with extra detail appended to the message.
func (e *ErrRevert) With(format string, args ...any) *ErrRevert {
	return &ErrRevert{
		code:    e.code,
		message: e.message + ": " + fmt.Sprintf(format, args...),
	}
}

// Is reports whether target is a revert with the same code, which makes
// errors.Is work across With copies.
func (e *ErrRevert) Is(target error) bool {
	var re *ErrRevert
	if !errors.As(target, &re) {
		return false
	}
	return e.code == re.code
}

// IsRevert returns whether err is (or wraps) an ErrRevert.
func IsRevert(err error) bool {
	if err == nil {
		return false
	}
	var re *ErrRevert
	return errors.As(err, &re)
}

// Rejection taxonomy. Every operation failure maps onto one of these.
var (
	ErrInvalidAmount        = New("InvalidAmount", "amount below minimum or zero-balance operation")
	ErrNotStaking           = New("NotStaking", "no active staking position")
	ErrFarmStopped          = New("FarmStopped", "operation disallowed while farm is paused or stopped")
	ErrEmergencyStop        = New("EmergencyStop", "operation disallowed during emergency stop")
	ErrNoRewardsAvailable   = New("NoRewardsAvailable", "no rewards available")
	ErrNoFeesAvailable      = New("NoFeesAvailable", "fee pool is empty")
	ErrAssetTransferFailed  = New("AssetTransferFailed", "asset transfer failed")
	ErrMaxAccountsReached   = New("MaxAccountsReached", "staker index is full")
	ErrStillLocked          = New("StillLocked", "lock period has not elapsed")
	ErrInvalidConfiguration = New("InvalidConfiguration", "configuration value out of range")
	ErrUnauthorized         = New("Unauthorized", "caller is not the farm operator")
	ErrAlreadyInitialized   = New("AlreadyInitialized", "revision already initialized")
)
