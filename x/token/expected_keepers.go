package token

import (
	sdk "github.com/bnb-chain/tokenvote/types"
	"github.com/bnb-chain/tokenvote/x/acl"
)

// CapabilityGate decides whether a caller may mint.
type CapabilityGate interface {
	HasCapability(ctx sdk.Context, addr sdk.AccAddress, cap acl.Capability) bool
}
