package acl

import (
	"fmt"

	sdk "github.com/bnb-chain/tokenvote/types"
)

// GenesisState lists the grants present at genesis.
type GenesisState struct {
	Grants []Grant `json:"grants"`
}

func NewGenesisState(grants []Grant) GenesisState {
	return GenesisState{Grants: grants}
}

// DefaultGenesisState gives every capability to admin.
func DefaultGenesisState(admin sdk.AccAddress) GenesisState {
	grants := make([]Grant, 0, len(allCapabilities))
	for _, cap := range allCapabilities {
		grants = append(grants, Grant{Address: admin, Capability: cap})
	}
	return NewGenesisState(grants)
}

func ValidateGenesis(data GenesisState) error {
	for i, g := range data.Grants {
		if g.Address.Empty() {
			return fmt.Errorf("grant %d has an empty address", i)
		}
		if !g.Capability.Valid() {
			return fmt.Errorf("grant %d has unknown capability %q", i, string(g.Capability))
		}
	}
	return nil
}

func InitGenesis(ctx sdk.Context, k Keeper, data GenesisState) {
	for _, g := range data.Grants {
		if err := k.Grant(ctx, g.Address, g.Capability); err != nil {
			panic(err)
		}
	}
}

func ExportGenesis(ctx sdk.Context, k Keeper) GenesisState {
	var grants []Grant
	k.IterateGrants(ctx, func(grant Grant) bool {
		grants = append(grants, grant)
		return false
	})
	return NewGenesisState(grants)
}
