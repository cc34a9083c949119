// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadFarmConfigDefaults(t *testing.T) {
	cfg, err := loadFarmConfig("")
	assert.NoError(t, err)
	assert.Equal(t, "0x0000000000000000000000000000000000f00001", cfg.FarmAddress)
	assert.False(t, cfg.InitializeV2)
	assert.Empty(t, cfg.GenesisBalances)
}

func TestLoadFarmConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "farm.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(`
owner: "0x00000000000000000000000000000000000000aa"
lockPeriod: 3600
initializeV2: true
withdrawFeeBps: 250
claimFeeBps: 500
feeCollector: "0x00000000000000000000000000000000000000bb"
genesisBalances:
  "0x00000000000000000000000000000000000000cc": "5000000000000000000"
`), 0o600))

	cfg, err := loadFarmConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, "0x00000000000000000000000000000000000000aa", cfg.Owner)
	assert.Equal(t, uint64(3600), cfg.LockPeriod)
	assert.True(t, cfg.InitializeV2)
	assert.Equal(t, uint32(250), cfg.WithdrawFeeBps)
	assert.Equal(t, uint32(500), cfg.ClaimFeeBps)
	assert.Len(t, cfg.GenesisBalances, 1)

	// unset fields keep the defaults
	assert.Equal(t, "0x0000000000000000000000000000000000f00002", cfg.StakingToken)

	_, err = loadFarmConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfigAddress(t *testing.T) {
	cfg := defaultFarmConfig()

	addr, err := cfg.address("owner", cfg.Owner)
	assert.NoError(t, err)
	assert.False(t, addr.IsZero())

	addr, err = cfg.address("feeCollector", "")
	assert.NoError(t, err)
	assert.True(t, addr.IsZero())

	_, err = cfg.address("owner", "bogus")
	assert.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	v, err := parseAmount("minRewardPerBlock", "1000000000000000000")
	assert.NoError(t, err)
	assert.Equal(t, "1000000000000000000", v.String())

	v, err = parseAmount("minRewardPerBlock", "")
	assert.NoError(t, err)
	assert.Nil(t, v)

	_, err = parseAmount("minRewardPerBlock", "12x")
	assert.Error(t, err)
	_, err = parseAmount("minRewardPerBlock", "-5")
	assert.Error(t, err)
}
