package token

import (
	"fmt"

	abci "github.com/tendermint/tendermint/abci/types"

	"github.com/bnb-chain/tokenvote/codec"
	sdk "github.com/bnb-chain/tokenvote/types"
)

// query endpoints supported by the token Querier
const (
	QueryBalance  = "balance"
	QuerySupply   = "supply"
	QueryWeightAt = "weight_at"
)

// QueryBalanceParams is the params for query 'custom/token/balance'
type QueryBalanceParams struct {
	Address sdk.AccAddress `json:"address"`
}

// QueryWeightAtParams is the params for query 'custom/token/weight_at'. An
// empty address asks for the total weight.
type QueryWeightAtParams struct {
	Address sdk.AccAddress `json:"address"`
	Point   int64          `json:"point"`
}

func NewQuerier(k Keeper) sdk.Querier {
	return func(ctx sdk.Context, path []string, req abci.RequestQuery) ([]byte, sdk.Error) {
		if len(path) == 0 {
			return nil, sdk.ErrUnknownRequest("empty token query path")
		}
		switch path[0] {
		case QueryBalance:
			var params QueryBalanceParams
			if err := msgCdc.UnmarshalJSON(req.Data, &params); err != nil {
				return nil, sdk.ErrUnknownRequest(fmt.Sprintf("incorrectly formatted request data: %s", err.Error()))
			}
			return marshalResult(k.BalanceOf(ctx, params.Address))
		case QuerySupply:
			return marshalResult(k.TotalSupply(ctx))
		case QueryWeightAt:
			var params QueryWeightAtParams
			if err := msgCdc.UnmarshalJSON(req.Data, &params); err != nil {
				return nil, sdk.ErrUnknownRequest(fmt.Sprintf("incorrectly formatted request data: %s", err.Error()))
			}
			if params.Address.Empty() {
				return marshalResult(k.TotalWeightAt(ctx, params.Point))
			}
			return marshalResult(k.WeightOfAt(ctx, params.Address, params.Point))
		default:
			return nil, sdk.ErrUnknownRequest("unknown token query endpoint")
		}
	}
}

func marshalResult(v interface{}) ([]byte, sdk.Error) {
	bz, err := codec.MarshalJSONIndent(msgCdc, v)
	if err != nil {
		return nil, sdk.ErrInternal(sdk.AppendMsgToErr("could not marshal result to JSON", err.Error()))
	}
	return bz, nil
}
