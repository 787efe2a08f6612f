package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bnb-chain/tokenvote/app"
	"github.com/bnb-chain/tokenvote/client"
	"github.com/bnb-chain/tokenvote/client/context"
	"github.com/bnb-chain/tokenvote/codec"
	"github.com/bnb-chain/tokenvote/config"
	"github.com/bnb-chain/tokenvote/x/voting"
)

const (
	flagChainID   = "chain-id"
	flagAdmin     = "admin"
	flagSupply    = "supply"
	flagOverwrite = "overwrite"
)

type initOutput struct {
	ChainID string `json:"chain_id"`
	Height  int64  `json:"height"`
	AppHash string `json:"app_hash"`
	Home    string `json:"home"`
}

// InitCmd writes the config and genesis files of a new home and commits
// the genesis block.
func InitCmd(cdc *codec.Codec) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the config, genesis and database of a home directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(viper.GetString(client.FlagHome))
			if err != nil {
				return err
			}
			if s := viper.GetString(flagChainID); s != "" {
				cfg.Genesis.ChainID = s
			}
			if s := viper.GetString(flagAdmin); s != "" {
				cfg.Genesis.Admin = s
			}
			if cmd.Flags().Changed(flagSupply) {
				cfg.Genesis.InitialSupply = viper.GetInt64(flagSupply)
			}

			if _, err := os.Stat(cfg.GenesisFile()); err == nil {
				if !viper.GetBool(flagOverwrite) {
					return errors.Errorf("genesis file %s already exists, use --%s to replace it", cfg.GenesisFile(), flagOverwrite)
				}
				if err := os.RemoveAll(cfg.DBPath()); err != nil {
					return err
				}
			}

			genesis, err := genesisFromConfig(cfg.Genesis)
			if err != nil {
				return err
			}
			if err := app.ValidateGenesis(genesis); err != nil {
				return err
			}
			if err := config.WriteConfigFile(cfg); err != nil {
				return err
			}
			if err := app.WriteGenesisFile(cdc, cfg.GenesisFile(), genesis); err != nil {
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
			commitID, err := tvApp.InitChain(genesis)
			if err != nil {
				return err
			}

			cliCtx := context.NewCLIContext().WithCodec(cdc)
			cliCtx.Indent = true
			return cliCtx.PrintOutput(initOutput{
				ChainID: genesis.ChainID,
				Height:  commitID.Version,
				AppHash: fmt.Sprintf("%X", commitID.Hash),
				Home:    cfg.RootDir,
			})
		},
	}
	cmd.Flags().String(flagChainID, "", "genesis chain id, defaults to the config's")
	cmd.Flags().String(flagAdmin, "", "address or name receiving every capability and the initial supply")
	cmd.Flags().Int64(flagSupply, 0, "initial token supply owned by the admin")
	cmd.Flags().Bool(flagOverwrite, false, "replace an existing genesis and wipe the database")
	return cmd
}

func genesisFromConfig(gc config.GenesisConfig) (app.GenesisState, error) {
	admin, err := context.ParseAddress(gc.Admin)
	if err != nil {
		return app.GenesisState{}, errors.Wrap(err, "invalid genesis admin")
	}
	genesis := app.NewDefaultGenesisState(gc.ChainID, admin, gc.InitialSupply)

	votingConfig := genesis.Voting.Config
	if gc.SupportRequired != "" {
		if votingConfig.SupportRequiredPct, err = voting.ParsePct(gc.SupportRequired); err != nil {
			return genesis, errors.Wrap(err, "invalid genesis support_required")
		}
	}
	if gc.MinAcceptQuorum != "" {
		if votingConfig.MinAcceptQuorumPct, err = voting.ParsePct(gc.MinAcceptQuorum); err != nil {
			return genesis, errors.Wrap(err, "invalid genesis min_accept_quorum")
		}
	}
	if gc.VoteDuration != "" {
		if votingConfig.VoteDuration, err = time.ParseDuration(gc.VoteDuration); err != nil {
			return genesis, errors.Wrap(err, "invalid genesis vote_duration")
		}
	}
	genesis.Voting.Config = votingConfig
	return genesis, nil
}
