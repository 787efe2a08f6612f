package voting

import (
	sdk "github.com/bnb-chain/tokenvote/types"
)

// PctBase is 100%. Percentages are fixed point numbers scaled by PctBase.
const PctBase int64 = 1e18

// MeetsPercentage reports whether value is at least pct of total, with pct
// scaled by PctBase. An empty total never meets anything, and a zero value
// only meets a zero percentage.
func MeetsPercentage(value, total, pct int64) bool {
	if total == 0 {
		return false
	}
	if value == 0 {
		return pct == 0
	}
	// value/total >= pct/PctBase, compared without dividing
	return sdk.CmpProducts(value, PctBase, pct, total) >= 0
}
