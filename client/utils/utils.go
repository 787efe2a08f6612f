package utils

import (
	"fmt"
	"strconv"

	"github.com/bnb-chain/tokenvote/client/context"
	"github.com/bnb-chain/tokenvote/client/input"
	sdk "github.com/bnb-chain/tokenvote/types"
)

// CompleteAndBroadcastTxCli validates msg, asks for confirmation unless
// skipped and executes it in a new block. The result, with the events it
// emitted, is printed to the context's output.
func CompleteAndBroadcastTxCli(cliCtx context.CLIContext, msg sdk.Msg) error {
	if err := msg.ValidateBasic(); err != nil {
		return fmt.Errorf("invalid message: %s", err.ABCILog())
	}

	if cliCtx.DryRun {
		return cliCtx.PrintOutput(msg)
	}

	if !cliCtx.SkipConfirm {
		bz, err := cliCtx.MarshalOutput(msg)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cliCtx.Output, "%s\n\n", bz)
		ok, err := input.GetConfirmation("confirm transaction before executing", cliCtx.Input)
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(cliCtx.Output, "canceled transaction")
			return nil
		}
	}

	res, err := cliCtx.BroadcastMsg(msg)
	if err != nil {
		return err
	}
	return cliCtx.PrintOutput(NewTxResponse(res))
}

// TxResponse is the printable form of a msg result.
type TxResponse struct {
	Code   sdk.CodeType `json:"code"`
	Data   string       `json:"data,omitempty"`
	Log    string       `json:"log,omitempty"`
	Events sdk.Events   `json:"events,omitempty"`
}

// NewTxResponse renders a result. Eight byte data, the id returned by
// proposal creation, is shown as a number.
func NewTxResponse(res sdk.Result) TxResponse {
	out := TxResponse{Code: res.Code, Log: res.Log, Events: res.Events}
	if len(res.Data) == 8 {
		out.Data = strconv.FormatInt(sdk.BigEndianToInt64(res.Data), 10)
	} else if len(res.Data) > 0 {
		out.Data = fmt.Sprintf("%X", res.Data)
	}
	return out
}
