package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bnb-chain/tokenvote/client"
	"github.com/bnb-chain/tokenvote/client/context"
	"github.com/bnb-chain/tokenvote/codec"
	"github.com/bnb-chain/tokenvote/x/token"
)

const flagAddress = "address"

// GetQueryCmd returns the cli query commands for this module
func GetQueryCmd(cdc *codec.Codec) *cobra.Command {
	tokenQueryCmd := &cobra.Command{
		Use:   token.ModuleName,
		Short: "Querying commands for the token module",
	}
	tokenQueryCmd.AddCommand(client.GetCommands(
		GetCmdQueryBalance(cdc),
		GetCmdQuerySupply(cdc),
		GetCmdQueryWeightAt(cdc),
	)...)
	return tokenQueryCmd
}

func GetCmdQueryBalance(cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "balance [address]",
		Short: "Query the current balance of an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewCLIContext().WithCodec(cdc)

			addr, err := context.ParseAddress(args[0])
			if err != nil {
				return err
			}
			bz := cdc.MustMarshalJSON(token.QueryBalanceParams{Address: addr})
			res, err := cliCtx.QueryWithData(customPath(token.QueryBalance), bz)
			if err != nil {
				return err
			}
			return cliCtx.PrintRaw(res)
		},
	}
}

func GetCmdQuerySupply(cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "supply",
		Short: "Query the current total supply",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewCLIContext().WithCodec(cdc)

			res, err := cliCtx.QueryWithData(customPath(token.QuerySupply), nil)
			if err != nil {
				return err
			}
			return cliCtx.PrintRaw(res)
		},
	}
}

// GetCmdQueryWeightAt reads the weight of --address, or the total weight,
// as committed at a past block height.
func GetCmdQueryWeightAt(cdc *codec.Codec) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "weight-at [height]",
		Short:   "Query the voting weight at a past block height",
		Example: `$ tvd query token weight-at 12 --address alice`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewCLIContext().WithCodec(cdc)

			point, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("height %s is not an integer", args[0])
			}
			params := token.QueryWeightAtParams{Point: point}
			if s := viper.GetString(flagAddress); s != "" {
				if params.Address, err = context.ParseAddress(s); err != nil {
					return err
				}
			}

			res, err := cliCtx.QueryWithData(customPath(token.QueryWeightAt), cdc.MustMarshalJSON(params))
			if err != nil {
				return err
			}
			return cliCtx.PrintRaw(res)
		},
	}
	cmd.Flags().String(flagAddress, "", "address to weigh, omit for the total weight")
	return cmd
}

func customPath(endpoint string) string {
	return fmt.Sprintf("custom/%s/%s", token.QuerierRoute, endpoint)
}
