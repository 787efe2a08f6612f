package token

import (
	"fmt"

	sdk "github.com/bnb-chain/tokenvote/types"
)

const (
	DefaultCodespace sdk.CodespaceType = 7

	CodeInsufficientBalance sdk.CodeType = 101
	CodeSupplyOverflow      sdk.CodeType = 102
	CodeInvalidAction       sdk.CodeType = 103
)

func ErrInsufficientBalance(codespace sdk.CodespaceType, addr sdk.AccAddress, balance, amount int64) sdk.Error {
	return sdk.NewError(codespace, CodeInsufficientBalance, "%s has %d, needs %d", addr.String(), balance, amount)
}

func ErrSupplyOverflow(codespace sdk.CodespaceType) sdk.Error {
	return sdk.NewError(codespace, CodeSupplyOverflow, "total supply would overflow")
}

func ErrInvalidAction(codespace sdk.CodespaceType, msg string) sdk.Error {
	return sdk.NewError(codespace, CodeInvalidAction, msg)
}

func ErrNonPositiveAmount(amount int64) sdk.Error {
	return sdk.ErrInvalidCoins(fmt.Sprintf("amount must be positive, got %d", amount))
}
