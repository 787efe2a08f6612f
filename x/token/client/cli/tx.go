package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bnb-chain/tokenvote/client"
	"github.com/bnb-chain/tokenvote/client/context"
	"github.com/bnb-chain/tokenvote/client/utils"
	"github.com/bnb-chain/tokenvote/codec"
	sdk "github.com/bnb-chain/tokenvote/types"
	"github.com/bnb-chain/tokenvote/x/token"
)

// GetTxCmd returns the transaction commands for this module
func GetTxCmd(cdc *codec.Codec) *cobra.Command {
	tokenTxCmd := &cobra.Command{
		Use:   token.ModuleName,
		Short: "Token transactions subcommands",
	}
	tokenTxCmd.AddCommand(client.PostCommands(
		MintCmd(cdc),
		TransferCmd(cdc),
	)...)
	return tokenTxCmd
}

// MintCmd creates new tokens for an address. The sender needs the mint capability.
func MintCmd(cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:     "mint [to] [amount]",
		Short:   "Mint tokens to an address",
		Example: `$ tvd tx token mint alice 100 --from admin`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewCLIContext().WithCodec(cdc)

			from, err := cliCtx.GetFromAddress()
			if err != nil {
				return err
			}
			to, amount, err := parseRecipientAndAmount(args[0], args[1])
			if err != nil {
				return err
			}

			msg := token.NewMsgMint(from, to, amount)
			return utils.CompleteAndBroadcastTxCli(cliCtx, msg)
		},
	}
}

// TransferCmd moves tokens between holders.
func TransferCmd(cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "transfer [to] [amount]",
		Short: "Transfer tokens to an address",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewCLIContext().WithCodec(cdc)

			from, err := cliCtx.GetFromAddress()
			if err != nil {
				return err
			}
			to, amount, err := parseRecipientAndAmount(args[0], args[1])
			if err != nil {
				return err
			}

			msg := token.NewMsgTransfer(from, to, amount)
			return utils.CompleteAndBroadcastTxCli(cliCtx, msg)
		},
	}
}

func parseRecipientAndAmount(toStr, amountStr string) (sdk.AccAddress, int64, error) {
	to, err := context.ParseAddress(toStr)
	if err != nil {
		return nil, 0, err
	}
	amount, err := strconv.ParseInt(amountStr, 10, 64)
	if err != nil {
		return nil, 0, fmt.Errorf("amount %s is not an integer", amountStr)
	}
	return to, amount, nil
}
