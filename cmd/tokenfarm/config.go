// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math/big"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/farm"
)

// FarmConfig is the yaml configuration of a farm deployment.
type FarmConfig struct {
	FarmAddress  string `yaml:"farmAddress"`
	Owner        string `yaml:"owner"`
	StakingToken string `yaml:"stakingToken"`
	RewardToken  string `yaml:"rewardToken"`

	MinRewardPerBlock string `yaml:"minRewardPerBlock"`
	MaxRewardPerBlock string `yaml:"maxRewardPerBlock"`
	LockPeriod        uint64 `yaml:"lockPeriod"`

	// revision 2, applied when initializeV2 is true
	InitializeV2   bool   `yaml:"initializeV2"`
	WithdrawFeeBps uint32 `yaml:"withdrawFeeBps"`
	ClaimFeeBps    uint32 `yaml:"claimFeeBps"`
	FeeCollector   string `yaml:"feeCollector"`
	RewardPerBlock string `yaml:"rewardPerBlock"`

	// staking-token balances minted at bootstrap, with the farm pre-approved
	GenesisBalances map[string]string `yaml:"genesisBalances"`
}

func defaultFarmConfig() *FarmConfig {
	return &FarmConfig{
		FarmAddress:  "0x0000000000000000000000000000000000f00001",
		Owner:        "0x0000000000000000000000000000000000000001",
		StakingToken: "0x0000000000000000000000000000000000f00002",
		RewardToken:  "0x0000000000000000000000000000000000f00003",
	}
}

func loadFarmConfig(path string) (*FarmConfig, error) {
	if path == "" {
		return defaultFarmConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read farm config")
	}
	cfg := defaultFarmConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse farm config")
	}
	return cfg, nil
}

func (c *FarmConfig) address(field, s string) (farm.Address, error) {
	if s == "" {
		return farm.Address{}, nil
	}
	addr, err := farm.ParseAddress(s)
	if err != nil {
		return farm.Address{}, errors.WithMessage(err, field)
	}
	return *addr, nil
}

func parseAmount(field, s string) (*big.Int, error) {
	if s == "" {
		return nil, nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Errorf("%s: malformed amount %q", field, s)
	}
	if v.Sign() < 0 {
		return nil, errors.Errorf("%s: negative amount", field)
	}
	return v, nil
}
