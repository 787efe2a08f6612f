package client

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// nolint
const (
	FlagHome             = "home"
	FlagFrom             = "from"
	FlagHeight           = "height"
	FlagIndentResponse   = "indent"
	FlagSkipConfirmation = "yes"
	FlagDryRun           = "dry-run"
)

// LineBreak can be included in a command list to provide a blank line
// to help with readability
var LineBreak = &cobra.Command{Run: func(*cobra.Command, []string) {}}

// GetCommands adds common flags to query commands
func GetCommands(cmds ...*cobra.Command) []*cobra.Command {
	for _, c := range cmds {
		c.Flags().Bool(FlagIndentResponse, false, "Add indent to JSON response")
		c.Flags().Int64(FlagHeight, 0, "block height to query, omit to get most recent provable block")
		bindFlags(c)
	}
	return cmds
}

// PostCommands adds common flags for commands to post tx
func PostCommands(cmds ...*cobra.Command) []*cobra.Command {
	for _, c := range cmds {
		c.Flags().Bool(FlagIndentResponse, false, "Add indent to JSON response")
		c.Flags().String(FlagFrom, "", "Bech32 address or account name of the sender")
		c.Flags().BoolP(FlagSkipConfirmation, "y", false, "Skip tx broadcasting prompt confirmation")
		c.Flags().Bool(FlagDryRun, false, "print the message without executing it")
		bindFlags(c)
	}
	return cmds
}

// flags are bound when the command runs so that sibling commands sharing a
// flag name do not overwrite each other's binding
func bindFlags(c *cobra.Command) {
	preRun := c.PreRunE
	c.PreRunE = func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}
		if preRun != nil {
			return preRun(cmd, args)
		}
		return nil
	}
}
