package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bnb-chain/tokenvote/client"
	"github.com/bnb-chain/tokenvote/client/context"
	"github.com/bnb-chain/tokenvote/codec"
	"github.com/bnb-chain/tokenvote/x/voting"
)

const (
	flagStatus = "status"
	flagLimit  = "limit"
)

// GetQueryCmd returns the cli query commands for this module
func GetQueryCmd(cdc *codec.Codec) *cobra.Command {
	votingQueryCmd := &cobra.Command{
		Use:   voting.ModuleName,
		Short: "Querying commands for the voting module",
	}

	votingQueryCmd.AddCommand(client.GetCommands(
		GetCmdQueryConfig(cdc),
		GetCmdQueryProposal(cdc),
		GetCmdQueryProposals(cdc),
		GetCmdQueryVoter(cdc),
		GetCmdQueryCanExecute(cdc),
		GetCmdQueryCanVote(cdc),
	)...)

	return votingQueryCmd
}

// GetCmdQueryConfig implements the query config command.
func GetCmdQueryConfig(cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Query the current voting rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewCLIContext().WithCodec(cdc)

			res, err := cliCtx.QueryWithData(customPath(voting.QueryConfig), nil)
			if err != nil {
				return err
			}
			return cliCtx.PrintRaw(res)
		},
	}
}

// GetCmdQueryProposal implements the query proposal command.
func GetCmdQueryProposal(cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:     "proposal [proposal-id]",
		Short:   "Query a proposal with its current status",
		Example: `$ tvd query voting proposal 1`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return queryByProposal(cdc, voting.QueryProposal, args[0])
		},
	}
}

// GetCmdQueryProposals implements a query proposals command.
func GetCmdQueryProposals(cdc *codec.Codec) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proposals",
		Short: "Query proposals, optionally filtered by status",
		Long: `Query proposals, newest first.

Example:
$ tvd query voting proposals --status Open --limit 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewCLIContext().WithCodec(cdc)

			var params voting.QueryProposalsParams
			if s := viper.GetString(flagStatus); s != "" {
				status, err := voting.ProposalStatusFromString(s)
				if err != nil {
					return err
				}
				params.Status = status
			}
			params.Limit = viper.GetInt64(flagLimit)

			res, err := cliCtx.QueryWithData(customPath(voting.QueryProposals), cdc.MustMarshalJSON(params))
			if err != nil {
				return err
			}
			return cliCtx.PrintRaw(res)
		},
	}

	cmd.Flags().String(flagStatus, "", "(optional) filter proposals by status: Open, Decided, Rejected or Executed")
	cmd.Flags().Int64(flagLimit, 0, "(optional) limit to latest [number] proposals, 0 for all")
	return cmd
}

// GetCmdQueryVoter implements the query voter command.
func GetCmdQueryVoter(cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:     "voter [proposal-id] [address]",
		Short:   "Query how an address voted and its snapshot weight",
		Example: `$ tvd query voting voter 1 alice`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return queryByVoter(cdc, voting.QueryVoter, args[0], args[1])
		},
	}
}

// GetCmdQueryCanExecute implements the query can-execute command.
func GetCmdQueryCanExecute(cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "can-execute [proposal-id]",
		Short: "Query whether a proposal is decided and not yet executed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return queryByProposal(cdc, voting.QueryCanExecute, args[0])
		},
	}
}

// GetCmdQueryCanVote implements the query can-vote command.
func GetCmdQueryCanVote(cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "can-vote [proposal-id] [address]",
		Short: "Query whether an address may vote on a proposal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return queryByVoter(cdc, voting.QueryCanVote, args[0], args[1])
		},
	}
}

func queryByProposal(cdc *codec.Codec, endpoint, id string) error {
	cliCtx := context.NewCLIContext().WithCodec(cdc)

	proposalID, err := parseProposalID(id)
	if err != nil {
		return err
	}
	params := voting.QueryProposalParams{ProposalID: proposalID}

	res, err := cliCtx.QueryWithData(customPath(endpoint), cdc.MustMarshalJSON(params))
	if err != nil {
		return err
	}
	return cliCtx.PrintRaw(res)
}

func queryByVoter(cdc *codec.Codec, endpoint, id, addr string) error {
	cliCtx := context.NewCLIContext().WithCodec(cdc)

	proposalID, err := parseProposalID(id)
	if err != nil {
		return err
	}
	voter, err := context.ParseAddress(addr)
	if err != nil {
		return err
	}
	params := voting.QueryVoterParams{ProposalID: proposalID, Voter: voter}

	res, err := cliCtx.QueryWithData(customPath(endpoint), cdc.MustMarshalJSON(params))
	if err != nil {
		return err
	}
	return cliCtx.PrintRaw(res)
}

func customPath(endpoint string) string {
	return fmt.Sprintf("custom/%s/%s", voting.QuerierRoute, endpoint)
}
