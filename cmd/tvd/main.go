package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bnb-chain/tokenvote/app"
	"github.com/bnb-chain/tokenvote/client"
	"github.com/bnb-chain/tokenvote/client/context"
	"github.com/bnb-chain/tokenvote/codec"
	"github.com/bnb-chain/tokenvote/config"
	"github.com/bnb-chain/tokenvote/server"
	aclcli "github.com/bnb-chain/tokenvote/x/acl/client/cli"
	tokencli "github.com/bnb-chain/tokenvote/x/token/client/cli"
	votingcli "github.com/bnb-chain/tokenvote/x/voting/client/cli"
)

// envPrefix makes every flag settable as TV_<FLAG>, e.g. TV_HOME.
const envPrefix = "TV"

func main() {
	cdc := app.MakeCodec()
	rootCmd := NewRootCmd(cdc)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// NewRootCmd builds the tvd command tree.
func NewRootCmd(cdc *codec.Codec) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tvd",
		Short: "Token weighted governance voting",
		// node access is wired before any subcommand runs
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := viper.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			cfg, err := config.LoadConfig(viper.GetString(client.FlagHome))
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg, os.Stderr)
			if err != nil {
				return err
			}
			context.RegisterNodeOpener(nodeOpener(cfg, logger))
			return nil
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String(client.FlagHome, config.DefaultHome(), "directory for config and data")
	_ = viper.BindPFlag(client.FlagHome, rootCmd.PersistentFlags().Lookup(client.FlagHome))
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(
		InitCmd(cdc),
		StartCmd(cdc),
		ExportCmd(cdc),
		client.LineBreak,
		txCmd(cdc),
		queryCmd(cdc),
		client.LineBreak,
		versionCmd(),
	)
	return rootCmd
}

func txCmd(cdc *codec.Codec) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"t"},
		Short:   "Execute messages, one block per command",
	}
	cmd.AddCommand(
		votingcli.GetTxCmd(cdc),
		tokencli.GetTxCmd(cdc),
		aclcli.GetTxCmd(cdc),
	)
	return cmd
}

func queryCmd(cdc *codec.Codec) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "query",
		Aliases: []string{"q"},
		Short:   "Query committed state",
	}
	cmd.AddCommand(
		votingcli.GetQueryCmd(cdc),
		tokencli.GetQueryCmd(cdc),
		aclcli.GetQueryCmd(cdc),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(server.Version)
		},
	}
}
