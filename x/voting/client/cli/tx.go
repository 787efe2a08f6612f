package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bnb-chain/tokenvote/client"
	"github.com/bnb-chain/tokenvote/client/context"
	"github.com/bnb-chain/tokenvote/client/utils"
	"github.com/bnb-chain/tokenvote/codec"
	"github.com/bnb-chain/tokenvote/x/voting"
)

const (
	flagSupport          = "support"
	flagQuorum           = "quorum"
	flagDuration         = "duration"
	flagScript           = "script"
	flagMetadata         = "metadata"
	flagNoVote           = "no-vote"
	flagNoExecute        = "no-execute"
	flagExecuteIfDecided = "execute"
)

// GetTxCmd returns the transaction commands for this module
func GetTxCmd(cdc *codec.Codec) *cobra.Command {
	votingTxCmd := &cobra.Command{
		Use:   voting.ModuleName,
		Short: "Voting transactions subcommands",
	}

	votingTxCmd.AddCommand(client.PostCommands(
		GetCmdConfigure(cdc),
		GetCmdNewVote(cdc),
		GetCmdVote(cdc),
		GetCmdExecute(cdc),
		GetCmdChangeQuorum(cdc),
		GetCmdChangeSupport(cdc),
		GetCmdForward(cdc),
	)...)

	return votingTxCmd
}

// GetCmdConfigure implements the configure command.
func GetCmdConfigure(cdc *codec.Codec) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Set the voting rules, once",
		Example: `$ tvd tx voting configure --support 50% --quorum 20% --duration 24h --from admin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewCLIContext().WithCodec(cdc)

			from, err := cliCtx.GetFromAddress()
			if err != nil {
				return err
			}
			support, err := voting.ParsePct(viper.GetString(flagSupport))
			if err != nil {
				return err
			}
			quorum, err := voting.ParsePct(viper.GetString(flagQuorum))
			if err != nil {
				return err
			}
			config := voting.NewGovernanceConfig(support, quorum, viper.GetDuration(flagDuration))

			msg := voting.NewMsgConfigure(from, config)
			return utils.CompleteAndBroadcastTxCli(cliCtx, msg)
		},
	}

	defaults := voting.DefaultGovernanceConfig()
	cmd.Flags().String(flagSupport, voting.FormatPct(defaults.SupportRequiredPct), "share of cast weight that must support a proposal")
	cmd.Flags().String(flagQuorum, voting.FormatPct(defaults.MinAcceptQuorumPct), "share of total weight that must support a proposal")
	cmd.Flags().Duration(flagDuration, defaults.VoteDuration, "how long proposals stay open")
	return cmd
}

// GetCmdNewVote implements the new-vote command.
func GetCmdNewVote(cdc *codec.Codec) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new-vote",
		Short: "Open a proposal carrying a script",
		Long: `Open a proposal. The script file lists the actions run once the proposal is decided:

{"actions": [
  {"target": "token", "action": {"type": "tokenvote/token/MintAction", "value": {"to": "tv1...", "amount": "10"}}}
]}

Without --no-vote the creator votes yea with its snapshot weight, and without
--no-execute the script runs at once if that vote decides the proposal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewCLIContext().WithCodec(cdc)

			from, err := cliCtx.GetFromAddress()
			if err != nil {
				return err
			}
			script, err := ReadScriptFile(cdc, viper.GetString(flagScript))
			if err != nil {
				return err
			}

			msg := voting.NewMsgNewVote(from, script, viper.GetString(flagMetadata),
				!viper.GetBool(flagNoVote), !viper.GetBool(flagNoExecute))
			return utils.CompleteAndBroadcastTxCli(cliCtx, msg)
		},
	}

	cmd.Flags().String(flagScript, "", "path of the script file, empty for no actions")
	cmd.Flags().String(flagMetadata, "", "free form description of the proposal")
	cmd.Flags().Bool(flagNoVote, false, "do not cast the creator's vote")
	cmd.Flags().Bool(flagNoExecute, false, "do not execute even if the proposal is decided")
	return cmd
}

// GetCmdVote implements the vote command.
func GetCmdVote(cdc *codec.Codec) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "vote [proposal-id] [yea|nay]",
		Short:   "Vote on an open proposal, replacing an earlier vote",
		Example: `$ tvd tx voting vote 1 yea --execute --from alice`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewCLIContext().WithCodec(cdc)

			from, err := cliCtx.GetFromAddress()
			if err != nil {
				return err
			}
			proposalID, err := parseProposalID(args[0])
			if err != nil {
				return err
			}
			supports, err := parseSupports(args[1])
			if err != nil {
				return err
			}

			msg := voting.NewMsgVote(from, proposalID, supports, viper.GetBool(flagExecuteIfDecided))
			return utils.CompleteAndBroadcastTxCli(cliCtx, msg)
		},
	}

	cmd.Flags().Bool(flagExecuteIfDecided, false, "execute the script if this vote decides the proposal")
	return cmd
}

// GetCmdExecute implements the execute command.
func GetCmdExecute(cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "execute [proposal-id]",
		Short: "Run the script of a decided proposal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewCLIContext().WithCodec(cdc)

			from, err := cliCtx.GetFromAddress()
			if err != nil {
				return err
			}
			proposalID, err := parseProposalID(args[0])
			if err != nil {
				return err
			}

			msg := voting.NewMsgExecute(from, proposalID)
			return utils.CompleteAndBroadcastTxCli(cliCtx, msg)
		},
	}
}

// GetCmdChangeQuorum implements the change-quorum command.
func GetCmdChangeQuorum(cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:     "change-quorum [pct]",
		Short:   "Change the minimum accept quorum of future proposals",
		Example: `$ tvd tx voting change-quorum 25% --from admin`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewCLIContext().WithCodec(cdc)

			from, err := cliCtx.GetFromAddress()
			if err != nil {
				return err
			}
			pct, err := voting.ParsePct(args[0])
			if err != nil {
				return err
			}

			msg := voting.NewMsgChangeQuorum(from, pct)
			return utils.CompleteAndBroadcastTxCli(cliCtx, msg)
		},
	}
}

// GetCmdChangeSupport implements the change-support command.
func GetCmdChangeSupport(cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "change-support [pct]",
		Short: "Change the required support of future proposals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewCLIContext().WithCodec(cdc)

			from, err := cliCtx.GetFromAddress()
			if err != nil {
				return err
			}
			pct, err := voting.ParsePct(args[0])
			if err != nil {
				return err
			}

			msg := voting.NewMsgChangeSupport(from, pct)
			return utils.CompleteAndBroadcastTxCli(cliCtx, msg)
		},
	}
}

// GetCmdForward implements the forward command.
func GetCmdForward(cdc *codec.Codec) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forward",
		Short: "Open a proposal for a script, voting and executing where possible",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := context.NewCLIContext().WithCodec(cdc)

			from, err := cliCtx.GetFromAddress()
			if err != nil {
				return err
			}
			script, err := ReadScriptFile(cdc, viper.GetString(flagScript))
			if err != nil {
				return err
			}

			msg := voting.NewMsgForward(from, script)
			return utils.CompleteAndBroadcastTxCli(cliCtx, msg)
		},
	}

	cmd.Flags().String(flagScript, "", "path of the script file")
	return cmd
}

func parseProposalID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("proposal-id %s is not a valid id", s)
	}
	return id, nil
}

func parseSupports(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yea", "yes", "y":
		return true, nil
	case "nay", "no", "n":
		return false, nil
	}
	return false, fmt.Errorf("vote option %q must be yea or nay", s)
}
