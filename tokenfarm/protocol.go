// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokenfarm

// Logic revisions of the farm. The stored schema version selects behavior:
// revision 2 adds basis-point fees and flat-rate accrual on top of the
// revision 1 ledger, which keeps operating unchanged.
const (
	// RevisionNone marks a farm whose genesis initialization has not run.
	RevisionNone uint32 = 0

	// Revision1 is the genesis logic: ledger, proportional accrual,
	// percent-based reward config, state machine.
	Revision1 uint32 = 1

	// Revision2 appends fee pools, bps fee rates, the fee collector and the
	// flat reward-per-block accrual formula.
	Revision2 uint32 = 2
)
