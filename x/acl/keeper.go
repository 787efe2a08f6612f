package acl

import (
	"github.com/tendermint/tendermint/libs/log"

	sdk "github.com/bnb-chain/tokenvote/types"
)

var grantedMarker = []byte{0x01}

// Keeper stores which address holds which capability.
type Keeper struct {
	storeKey  sdk.StoreKey
	codespace sdk.CodespaceType
}

func NewKeeper(key sdk.StoreKey, codespace sdk.CodespaceType) Keeper {
	return Keeper{
		storeKey:  key,
		codespace: codespace,
	}
}

func (k Keeper) Codespace() sdk.CodespaceType {
	return k.codespace
}

func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+ModuleName)
}

// HasCapability reports whether addr currently holds cap.
func (k Keeper) HasCapability(ctx sdk.Context, addr sdk.AccAddress, cap Capability) bool {
	if addr.Empty() {
		return false
	}
	return ctx.KVStore(k.storeKey).Has(GetGrantKey(cap, addr))
}

// Grant gives cap to addr. Granting twice is a no-op.
func (k Keeper) Grant(ctx sdk.Context, addr sdk.AccAddress, cap Capability) sdk.Error {
	if !cap.Valid() {
		return ErrInvalidCapability(k.codespace, cap)
	}
	if addr.Empty() {
		return sdk.ErrInvalidAddress("grantee is empty")
	}
	ctx.KVStore(k.storeKey).Set(GetGrantKey(cap, addr), grantedMarker)
	ctx.EventManager().EmitEvent(sdk.NewEvent(EventTypeGrant,
		sdk.NewAttribute(AttributeKeyGrantee, addr.String()),
		sdk.NewAttribute(AttributeKeyCapability, cap.String()),
	))
	k.Logger(ctx).Info("capability granted", "grantee", addr.String(), "capability", cap)
	return nil
}

// Revoke takes cap away from addr. Revoking a missing grant is a no-op.
func (k Keeper) Revoke(ctx sdk.Context, addr sdk.AccAddress, cap Capability) sdk.Error {
	if !cap.Valid() {
		return ErrInvalidCapability(k.codespace, cap)
	}
	ctx.KVStore(k.storeKey).Delete(GetGrantKey(cap, addr))
	ctx.EventManager().EmitEvent(sdk.NewEvent(EventTypeRevoke,
		sdk.NewAttribute(AttributeKeyGrantee, addr.String()),
		sdk.NewAttribute(AttributeKeyCapability, cap.String()),
	))
	k.Logger(ctx).Info("capability revoked", "grantee", addr.String(), "capability", cap)
	return nil
}

// IterateGrants calls fn for every grant until fn returns true.
func (k Keeper) IterateGrants(ctx sdk.Context, fn func(grant Grant) (stop bool)) {
	iterator := sdk.KVStorePrefixIterator(ctx.KVStore(k.storeKey), GrantKeyPrefix)
	defer iterator.Close()
	for ; iterator.Valid(); iterator.Next() {
		cap, addr := splitGrantKey(iterator.Key())
		if fn(Grant{Address: addr, Capability: cap}) {
			break
		}
	}
}

// GetHolders lists every address holding cap.
func (k Keeper) GetHolders(ctx sdk.Context, cap Capability) []sdk.AccAddress {
	var holders []sdk.AccAddress
	iterator := sdk.KVStorePrefixIterator(ctx.KVStore(k.storeKey), GetCapabilityPrefix(cap))
	defer iterator.Close()
	for ; iterator.Valid(); iterator.Next() {
		_, addr := splitGrantKey(iterator.Key())
		holders = append(holders, addr)
	}
	return holders
}

// Grant pairs an address with one of its capabilities.
type Grant struct {
	Address    sdk.AccAddress `json:"address"`
	Capability Capability     `json:"capability"`
}
