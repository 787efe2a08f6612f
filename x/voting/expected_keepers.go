package voting

import (
	sdk "github.com/bnb-chain/tokenvote/types"
	"github.com/bnb-chain/tokenvote/x/acl"
)

// WeightOracle reports voting weight as of a committed point. Answers for a
// point must never change once that point is committed.
type WeightOracle interface {
	WeightOfAt(ctx sdk.Context, addr sdk.AccAddress, point int64) int64
	TotalWeightAt(ctx sdk.Context, point int64) int64
	IterateWeightsAt(ctx sdk.Context, point int64, fn func(addr sdk.AccAddress, weight int64) (stop bool))
}

// CapabilityGate decides whether an address may perform a gated operation.
type CapabilityGate interface {
	HasCapability(ctx sdk.Context, addr sdk.AccAddress, cap acl.Capability) bool
}
