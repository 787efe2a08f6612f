package acl

import (
	"fmt"

	sdk "github.com/bnb-chain/tokenvote/types"
)

const (
	DefaultCodespace sdk.CodespaceType = 8

	CodeInvalidCapability sdk.CodeType = 101
	CodeInvalidAction     sdk.CodeType = 102
)

func ErrInvalidCapability(codespace sdk.CodespaceType, cap Capability) sdk.Error {
	return sdk.NewError(codespace, CodeInvalidCapability, "unknown capability %q", string(cap))
}

func ErrInvalidAction(codespace sdk.CodespaceType, msg string) sdk.Error {
	return sdk.NewError(codespace, CodeInvalidAction, msg)
}

// ErrMissingCapability is returned by every module when a caller lacks a capability.
func ErrMissingCapability(addr sdk.AccAddress, cap Capability) sdk.Error {
	return sdk.ErrUnauthorized(fmt.Sprintf("%s does not hold capability %s", addr, cap))
}
