package token

import (
	"fmt"
	"strconv"

	lru "github.com/hashicorp/golang-lru"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/bnb-chain/tokenvote/codec"
	sdk "github.com/bnb-chain/tokenvote/types"
)

const DefaultWeightCacheSize = 4096

// Keeper is the balance ledger. Live balances are read from the working
// store, weights at a point are read from the committed version of that
// point and never change afterwards.
type Keeper struct {
	storeKey  sdk.StoreKey
	cdc       *codec.Codec
	codespace sdk.CodespaceType

	// committed versions are immutable, so lookups at a point can be cached
	weightCache *lru.Cache
}

func NewKeeper(cdc *codec.Codec, key sdk.StoreKey, cacheSize int, codespace sdk.CodespaceType) Keeper {
	if cacheSize <= 0 {
		cacheSize = DefaultWeightCacheSize
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		panic(err)
	}
	return Keeper{
		storeKey:    key,
		cdc:         cdc,
		codespace:   codespace,
		weightCache: cache,
	}
}

func (k Keeper) Codespace() sdk.CodespaceType {
	return k.codespace
}

func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+ModuleName)
}

// BalanceOf returns the live balance of addr.
func (k Keeper) BalanceOf(ctx sdk.Context, addr sdk.AccAddress) int64 {
	return k.decodeAmount(ctx.KVStore(k.storeKey).Get(GetBalanceKey(addr)))
}

// TotalSupply returns the live total supply.
func (k Keeper) TotalSupply(ctx sdk.Context) int64 {
	return k.decodeAmount(ctx.KVStore(k.storeKey).Get(TotalSupplyKey))
}

// WeightOfAt returns the balance addr held when point was committed. Points
// that were never committed have no weight.
func (k Keeper) WeightOfAt(ctx sdk.Context, addr sdk.AccAddress, point int64) int64 {
	return k.weightAt(ctx, GetBalanceKey(addr), point)
}

// TotalWeightAt returns the total supply as of the committed point.
func (k Keeper) TotalWeightAt(ctx sdk.Context, point int64) int64 {
	return k.weightAt(ctx, TotalSupplyKey, point)
}

// IterateWeightsAt calls fn for every holder with a nonzero balance at the
// committed point, in address order, until fn returns true.
func (k Keeper) IterateWeightsAt(ctx sdk.Context, point int64, fn func(addr sdk.AccAddress, weight int64) (stop bool)) {
	if point <= 0 {
		return
	}
	ctx.VersionedStore(k.storeKey).IterateVersioned(BalanceKeyPrefix, point, func(key, value []byte) bool {
		return fn(addressFromBalanceKey(key), k.decodeAmount(value))
	})
}

func (k Keeper) weightAt(ctx sdk.Context, key []byte, point int64) int64 {
	if point <= 0 {
		return 0
	}
	history := ctx.VersionedStore(k.storeKey)
	if !history.VersionExists(point) {
		return 0
	}

	cacheKey := strconv.FormatInt(point, 10) + "/" + string(key)
	if v, ok := k.weightCache.Get(cacheKey); ok {
		return v.(int64)
	}
	weight := k.decodeAmount(history.GetVersioned(key, point))
	k.weightCache.Add(cacheKey, weight)
	return weight
}

// Mint creates amount new tokens owned by to.
func (k Keeper) Mint(ctx sdk.Context, to sdk.AccAddress, amount int64) sdk.Error {
	if amount <= 0 {
		return ErrNonPositiveAmount(amount)
	}
	if to.Empty() {
		return sdk.ErrInvalidAddress("recipient is empty")
	}
	supply, ok := sdk.Add64(k.TotalSupply(ctx), amount)
	if !ok {
		return ErrSupplyOverflow(k.codespace)
	}
	// balance <= supply, so it cannot overflow once supply does not
	k.setBalance(ctx, to, k.BalanceOf(ctx, to)+amount)
	k.setTotalSupply(ctx, supply)

	ctx.EventManager().EmitEvent(sdk.NewEvent(EventTypeMint,
		sdk.NewAttribute(AttributeKeyRecipient, to.String()),
		sdk.NewAttribute(AttributeKeyAmount, strconv.FormatInt(amount, 10)),
	))
	return nil
}

// Burn destroys amount tokens held by from.
func (k Keeper) Burn(ctx sdk.Context, from sdk.AccAddress, amount int64) sdk.Error {
	if amount <= 0 {
		return ErrNonPositiveAmount(amount)
	}
	balance := k.BalanceOf(ctx, from)
	if balance < amount {
		return ErrInsufficientBalance(k.codespace, from, balance, amount)
	}
	k.setBalance(ctx, from, balance-amount)
	k.setTotalSupply(ctx, k.TotalSupply(ctx)-amount)

	ctx.EventManager().EmitEvent(sdk.NewEvent(EventTypeBurn,
		sdk.NewAttribute(AttributeKeySender, from.String()),
		sdk.NewAttribute(AttributeKeyAmount, strconv.FormatInt(amount, 10)),
	))
	return nil
}

// Transfer moves amount tokens from one holder to another.
func (k Keeper) Transfer(ctx sdk.Context, from, to sdk.AccAddress, amount int64) sdk.Error {
	if amount <= 0 {
		return ErrNonPositiveAmount(amount)
	}
	if to.Empty() {
		return sdk.ErrInvalidAddress("recipient is empty")
	}
	balance := k.BalanceOf(ctx, from)
	if balance < amount {
		return ErrInsufficientBalance(k.codespace, from, balance, amount)
	}
	k.setBalance(ctx, from, balance-amount)
	k.setBalance(ctx, to, k.BalanceOf(ctx, to)+amount)

	ctx.EventManager().EmitEvent(sdk.NewEvent(EventTypeTransfer,
		sdk.NewAttribute(AttributeKeySender, from.String()),
		sdk.NewAttribute(AttributeKeyRecipient, to.String()),
		sdk.NewAttribute(AttributeKeyAmount, strconv.FormatInt(amount, 10)),
	))
	return nil
}

// IterateBalances calls fn for every nonzero balance until fn returns true.
func (k Keeper) IterateBalances(ctx sdk.Context, fn func(addr sdk.AccAddress, balance int64) (stop bool)) {
	iterator := sdk.KVStorePrefixIterator(ctx.KVStore(k.storeKey), BalanceKeyPrefix)
	defer iterator.Close()
	for ; iterator.Valid(); iterator.Next() {
		if fn(addressFromBalanceKey(iterator.Key()), k.decodeAmount(iterator.Value())) {
			break
		}
	}
}

func (k Keeper) setBalance(ctx sdk.Context, addr sdk.AccAddress, balance int64) {
	kvStore := ctx.KVStore(k.storeKey)
	if balance == 0 {
		kvStore.Delete(GetBalanceKey(addr))
		return
	}
	kvStore.Set(GetBalanceKey(addr), k.cdc.MustMarshalBinaryBare(balance))
}

func (k Keeper) setTotalSupply(ctx sdk.Context, supply int64) {
	ctx.KVStore(k.storeKey).Set(TotalSupplyKey, k.cdc.MustMarshalBinaryBare(supply))
}

func (k Keeper) decodeAmount(bz []byte) int64 {
	if bz == nil {
		return 0
	}
	var amount int64
	if err := k.cdc.UnmarshalBinaryBare(bz, &amount); err != nil {
		panic(fmt.Sprintf("corrupted amount in token store: %v", err))
	}
	return amount
}
