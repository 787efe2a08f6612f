package token

import (
	"fmt"

	sdk "github.com/bnb-chain/tokenvote/types"
)

// Balance is one holder's genesis allocation.
type Balance struct {
	Address sdk.AccAddress `json:"address"`
	Amount  int64          `json:"amount"`
}

// GenesisState - all token state that must be provided at genesis
type GenesisState struct {
	Balances []Balance `json:"balances"`
}

func NewGenesisState(balances []Balance) GenesisState {
	return GenesisState{Balances: balances}
}

func DefaultGenesisState() GenesisState {
	return GenesisState{Balances: []Balance{}}
}

func ValidateGenesis(data GenesisState) error {
	var total int64
	seen := make(map[string]bool, len(data.Balances))
	for i, b := range data.Balances {
		if b.Address.Empty() {
			return fmt.Errorf("balance %d has an empty address", i)
		}
		if b.Amount <= 0 {
			return fmt.Errorf("balance %d of %s must be positive, got %d", i, b.Address, b.Amount)
		}
		if seen[string(b.Address)] {
			return fmt.Errorf("duplicate balance for %s", b.Address)
		}
		seen[string(b.Address)] = true
		var ok bool
		if total, ok = sdk.Add64(total, b.Amount); !ok {
			return fmt.Errorf("total supply overflows")
		}
	}
	return nil
}

func InitGenesis(ctx sdk.Context, k Keeper, data GenesisState) {
	for _, b := range data.Balances {
		if err := k.Mint(ctx, b.Address, b.Amount); err != nil {
			panic(err)
		}
	}
}

func ExportGenesis(ctx sdk.Context, k Keeper) GenesisState {
	balances := make([]Balance, 0)
	k.IterateBalances(ctx, func(addr sdk.AccAddress, balance int64) bool {
		balances = append(balances, Balance{Address: addr, Amount: balance})
		return false
	})
	return NewGenesisState(balances)
}
