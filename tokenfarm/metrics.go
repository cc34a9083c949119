// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokenfarm

import "github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/metrics"

var (
	metricDeposits    = metrics.LazyLoadCounter("farm_deposits_count")
	metricWithdrawals = metrics.LazyLoadCounter("farm_withdrawals_count")
	metricClaims      = metrics.LazyLoadCounter("farm_claims_count")
	metricSettlements = metrics.LazyLoadCounter("farm_settlements_count")
	metricTotalStaked = metrics.LazyLoadGauge("farm_total_staked_gauge")
)
