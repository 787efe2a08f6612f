package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bnb-chain/tokenvote/client"
	"github.com/bnb-chain/tokenvote/codec"
	"github.com/bnb-chain/tokenvote/config"
)

// ExportCmd dumps the committed state as a genesis document.
func ExportCmd(cdc *codec.Codec) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export committed state as genesis JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(viper.GetString(client.FlagHome))
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg, os.Stderr)
			if err != nil {
				return err
			}
			tvApp, db, err := openApp(cfg, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			bz, err := codec.MarshalJSONIndent(cdc, tvApp.ExportGenesis())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(bz, '\n'))
			return err
		},
	}
}
