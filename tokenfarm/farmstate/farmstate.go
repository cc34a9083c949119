// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package farmstate

import (
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/farm"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/sstore"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/tokenfarm/reverts"
)

// Status is the farm-wide operational state.
type Status uint8

const (
	StatusActive Status = iota
	StatusPaused
	StatusEmergency
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusPaused:
		return "paused"
	case StatusEmergency:
		return "emergency-stop"
	default:
		return "unknown"
	}
}

var slotStatus = farm.BytesToBytes32([]byte("farm-status"))

// Service gates which farm operations are permitted.
type Service struct {
	context *sstore.Context
}

func New(context *sstore.Context) *Service {
	return &Service{context: context}
}

// Get returns the current status.
func (s *Service) Get() (Status, error) {
	storage, err := s.context.State().GetStorage(s.context.Address(), slotStatus)
	if err != nil {
		return StatusActive, err
	}
	return Status(storage[31]), nil
}

func (s *Service) set(status Status) {
	var storage farm.Bytes32
	storage[31] = byte(status)
	s.context.State().SetStorage(s.context.Address(), slotStatus, storage)
}

// Pause moves the farm from ACTIVE to PAUSED.
// Pausing an already paused farm is a no-op. Pausing during an emergency
// stop is rejected; the emergency state has no automatic exit.
func (s *Service) Pause() (changed bool, old Status, err error) {
	old, err = s.Get()
	if err != nil {
		return false, old, err
	}
	switch old {
	case StatusEmergency:
		return false, old, reverts.ErrEmergencyStop
	case StatusPaused:
		return false, old, nil
	default:
		s.set(StatusPaused)
		return true, old, nil
	}
}

// Resume moves the farm from PAUSED back to ACTIVE.
// Resuming an active farm is a no-op. Resuming during an emergency stop is
// rejected.
func (s *Service) Resume() (changed bool, old Status, err error) {
	old, err = s.Get()
	if err != nil {
		return false, old, err
	}
	switch old {
	case StatusEmergency:
		return false, old, reverts.ErrEmergencyStop
	case StatusActive:
		return false, old, nil
	default:
		s.set(StatusActive)
		return true, old, nil
	}
}

// EmergencyStop moves the farm into EMERGENCY_STOP from any state.
// Idempotent: a second call changes nothing.
func (s *Service) EmergencyStop() (changed bool, old Status, err error) {
	old, err = s.Get()
	if err != nil {
		return false, old, err
	}
	if old == StatusEmergency {
		return false, old, nil
	}
	s.set(StatusEmergency)
	return true, old, nil
}
