package voting

import (
	"fmt"

	sdk "github.com/bnb-chain/tokenvote/types"
)

const (
	DefaultCodespace sdk.CodespaceType = 6

	CodeInvalidConfig     sdk.CodeType = 101
	CodeAlreadyConfigured sdk.CodeType = 102
	CodeNotConfigured     sdk.CodeType = 103
	CodeNoSuchProposal    sdk.CodeType = 104
	CodeNotOpen           sdk.CodeType = 105
	CodeZeroWeight        sdk.CodeType = 106
	CodeAlreadyExecuted   sdk.CodeType = 107
	CodeNotDecided        sdk.CodeType = 108
	CodeExecutionFailed   sdk.CodeType = 109
	CodeNoVotingPower     sdk.CodeType = 110
	CodeInvalidScript     sdk.CodeType = 111
	CodeInvalidAction     sdk.CodeType = 112
)

func ErrInvalidConfig(codespace sdk.CodespaceType, msg string) sdk.Error {
	return sdk.NewError(codespace, CodeInvalidConfig, msg)
}

func ErrAlreadyConfigured(codespace sdk.CodespaceType) sdk.Error {
	return sdk.NewError(codespace, CodeAlreadyConfigured, "voting is already configured")
}

func ErrNotConfigured(codespace sdk.CodespaceType) sdk.Error {
	return sdk.NewError(codespace, CodeNotConfigured, "voting is not configured")
}

func ErrNoSuchProposal(codespace sdk.CodespaceType, id int64) sdk.Error {
	return sdk.NewError(codespace, CodeNoSuchProposal, "proposal %d does not exist", id)
}

func ErrNotOpen(codespace sdk.CodespaceType, id int64) sdk.Error {
	return sdk.NewError(codespace, CodeNotOpen, "proposal %d is not open for voting", id)
}

func ErrZeroWeight(codespace sdk.CodespaceType, voter sdk.AccAddress, point int64) sdk.Error {
	return sdk.NewError(codespace, CodeZeroWeight, "%s had no voting weight at %d", voter.String(), point)
}

func ErrAlreadyExecuted(codespace sdk.CodespaceType, id int64) sdk.Error {
	return sdk.NewError(codespace, CodeAlreadyExecuted, "proposal %d is already executed", id)
}

func ErrNotDecided(codespace sdk.CodespaceType, id int64) sdk.Error {
	return sdk.NewError(codespace, CodeNotDecided, "proposal %d is not decided", id)
}

// ErrExecutionFailed names the failing action and carries the reason it gave.
func ErrExecutionFailed(codespace sdk.CodespaceType, index int, cause sdk.Error) sdk.Error {
	reason := "unknown"
	if cause != nil {
		reason = cause.ABCILog()
	}
	return sdk.NewError(codespace, CodeExecutionFailed, "action %d failed: %s", index, reason)
}

func ErrNoVotingPower(codespace sdk.CodespaceType, point int64) sdk.Error {
	return sdk.NewError(codespace, CodeNoVotingPower, "no voting weight exists at %d", point)
}

func ErrInvalidScript(codespace sdk.CodespaceType, msg string) sdk.Error {
	return sdk.NewError(codespace, CodeInvalidScript, msg)
}

func ErrInvalidAction(codespace sdk.CodespaceType, msg string) sdk.Error {
	return sdk.NewError(codespace, CodeInvalidAction, msg)
}

// ErrUnknownTarget is returned for actions whose target has no handler.
func ErrUnknownTarget(target string) sdk.Error {
	return sdk.ErrUnknownRequest(fmt.Sprintf("no action handler for target %q", target))
}
