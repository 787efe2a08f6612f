package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnb-chain/tokenvote/client"
	"github.com/bnb-chain/tokenvote/client/context"
	"github.com/bnb-chain/tokenvote/client/utils"
	"github.com/bnb-chain/tokenvote/codec"
	sdk "github.com/bnb-chain/tokenvote/types"
	"github.com/bnb-chain/tokenvote/x/acl"
)

// GetTxCmd returns the transaction commands for this module
func GetTxCmd(cdc *codec.Codec) *cobra.Command {
	aclTxCmd := &cobra.Command{
		Use:   acl.ModuleName,
		Short: "Capability transactions subcommands",
	}
	aclTxCmd.AddCommand(client.PostCommands(
		GrantCmd(cdc),
		RevokeCmd(cdc),
	)...)
	return aclTxCmd
}

// GetQueryCmd returns the cli query commands for this module
func GetQueryCmd(cdc *codec.Codec) *cobra.Command {
	aclQueryCmd := &cobra.Command{
		Use:   acl.ModuleName,
		Short: "Querying commands for the acl module",
	}
	aclQueryCmd.AddCommand(client.GetCommands(
		GetCmdQueryHolders(cdc),
		GetCmdQueryHas(cdc),
	)...)
	return aclQueryCmd
}

func GrantCmd(cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:     "grant [address] [capability]",
		Short:   "Grant a capability, needs manage_acl",
		Example: `$ tvd tx acl grant alice create_proposal --from admin`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewCLIContext().WithCodec(cdc)

			from, grantee, capability, err := parseGrantArgs(cliCtx, args)
			if err != nil {
				return err
			}
			return utils.CompleteAndBroadcastTxCli(cliCtx, acl.NewMsgGrant(from, grantee, capability))
		},
	}
}

func RevokeCmd(cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "revoke [address] [capability]",
		Short: "Revoke a capability, needs manage_acl",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewCLIContext().WithCodec(cdc)

			from, revokee, capability, err := parseGrantArgs(cliCtx, args)
			if err != nil {
				return err
			}
			return utils.CompleteAndBroadcastTxCli(cliCtx, acl.NewMsgRevoke(from, revokee, capability))
		},
	}
}

func GetCmdQueryHolders(cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "holders [capability]",
		Short: "Query every address holding a capability",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewCLIContext().WithCodec(cdc)

			capability, err := acl.CapabilityFromString(args[0])
			if err != nil {
				return err
			}
			bz := cdc.MustMarshalJSON(acl.QueryHoldersParams{Capability: capability})
			res, err := cliCtx.QueryWithData(customPath(acl.QueryHolders), bz)
			if err != nil {
				return err
			}
			return cliCtx.PrintRaw(res)
		},
	}
}

func GetCmdQueryHas(cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "has [address] [capability]",
		Short: "Query whether an address holds a capability",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewCLIContext().WithCodec(cdc)

			addr, err := context.ParseAddress(args[0])
			if err != nil {
				return err
			}
			capability, err := acl.CapabilityFromString(args[1])
			if err != nil {
				return err
			}
			bz := cdc.MustMarshalJSON(acl.QueryHasCapabilityParams{Address: addr, Capability: capability})
			res, err := cliCtx.QueryWithData(customPath(acl.QueryHasCapability), bz)
			if err != nil {
				return err
			}
			return cliCtx.PrintRaw(res)
		},
	}
}

func parseGrantArgs(cliCtx context.CLIContext, args []string) (from, addr sdk.AccAddress, capability acl.Capability, err error) {
	if from, err = cliCtx.GetFromAddress(); err != nil {
		return
	}
	if addr, err = context.ParseAddress(args[0]); err != nil {
		return
	}
	capability, err = acl.CapabilityFromString(args[1])
	return
}

func customPath(endpoint string) string {
	return fmt.Sprintf("custom/%s/%s", acl.QuerierRoute, endpoint)
}
