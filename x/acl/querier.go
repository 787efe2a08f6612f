package acl

import (
	"fmt"

	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/bnb-chain/tokenvote/codec"
	sdk "github.com/bnb-chain/tokenvote/types"
)

// query endpoints supported by the acl Querier
const (
	QueryHolders       = "holders"
	QueryHasCapability = "has"
)

// QueryHoldersParams is the params for query 'custom/acl/holders'
type QueryHoldersParams struct {
	Capability Capability `json:"capability"`
}

// QueryHasCapabilityParams is the params for query 'custom/acl/has'
type QueryHasCapabilityParams struct {
	Address    sdk.AccAddress `json:"address"`
	Capability Capability     `json:"capability"`
}

func NewQuerier(k Keeper) sdk.Querier {
	return func(ctx sdk.Context, path []string, req abci.RequestQuery) ([]byte, sdk.Error) {
		if len(path) == 0 {
			return nil, sdk.ErrUnknownRequest("empty acl query path")
		}
		switch path[0] {
		case QueryHolders:
			return queryHolders(ctx, req, k)
		case QueryHasCapability:
			return queryHasCapability(ctx, req, k)
		default:
			return nil, sdk.ErrUnknownRequest("unknown acl query endpoint")
		}
	}
}

func queryHolders(ctx sdk.Context, req abci.RequestQuery, k Keeper) ([]byte, sdk.Error) {
	var params QueryHoldersParams
	if err := msgCdc.UnmarshalJSON(req.Data, &params); err != nil {
		return nil, sdk.ErrUnknownRequest(fmt.Sprintf("incorrectly formatted request data: %s", err.Error()))
	}
	if !params.Capability.Valid() {
		return nil, ErrInvalidCapability(k.codespace, params.Capability)
	}
	holders := k.GetHolders(ctx, params.Capability)
	if holders == nil {
		holders = []sdk.AccAddress{}
	}
	return marshalResult(holders)
}

func queryHasCapability(ctx sdk.Context, req abci.RequestQuery, k Keeper) ([]byte, sdk.Error) {
	var params QueryHasCapabilityParams
	if err := msgCdc.UnmarshalJSON(req.Data, &params); err != nil {
		return nil, sdk.ErrUnknownRequest(fmt.Sprintf("incorrectly formatted request data: %s", err.Error()))
	}
	return marshalResult(k.HasCapability(ctx, params.Address, params.Capability))
}

func marshalResult(v interface{}) ([]byte, sdk.Error) {
	bz, err := codec.MarshalJSONIndent(msgCdc, v)
	if err != nil {
		return nil, sdk.ErrInternal(sdk.AppendMsgToErr("could not marshal result to JSON", err.Error()))
	}
	return bz, nil
}
