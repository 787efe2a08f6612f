package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/bnb-chain/tokenvote/app"
	"github.com/bnb-chain/tokenvote/client"
	"github.com/bnb-chain/tokenvote/client/context"
	"github.com/bnb-chain/tokenvote/codec"
	"github.com/bnb-chain/tokenvote/config"
	"github.com/bnb-chain/tokenvote/pubsub"
	"github.com/bnb-chain/tokenvote/server"
	"github.com/bnb-chain/tokenvote/x/voting"
)

const (
	flagListenAddr = "laddr"
	flagPrometheus = "prometheus"
)

var allTopics = []pubsub.Topic{
	pubsub.ProposalCreatedTopic,
	pubsub.VoteCastTopic,
	pubsub.ProposalExecutedTopic,
	pubsub.QuorumChangedTopic,
	pubsub.SupportChangedTopic,
}

// StartCmd runs the daemon: the app over the home database, behind the REST
// server, with committed events logged as they are published.
func StartCmd(cdc *codec.Codec) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Serve the REST API and metrics over the home database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(viper.GetString(client.FlagHome))
			if err != nil {
				return err
			}
			if s := viper.GetString(flagListenAddr); s != "" {
				cfg.REST.ListenAddr = s
			}
			if viper.GetBool(flagPrometheus) {
				cfg.Instrumentation.Prometheus = true
			}
			logger, err := newLogger(cfg, os.Stdout)
			if err != nil {
				return err
			}

			publisher := pubsub.NewPublisher("EventPublisher", logger.With("module", "pubsub"))
			if err := publisher.Start(); err != nil {
				return err
			}
			if err := subscribeEventLogger(publisher, logger.With("module", "events")); err != nil {
				return err
			}

			options := []func(*app.TokenVoteApp){app.SetPublisher(publisher)}
			if cfg.Instrumentation.Prometheus {
				options = append(options, app.SetMetrics(voting.PrometheusMetrics(cfg.Instrumentation.Namespace)))
			}
			tvApp, db, err := openApp(cfg, logger, options...)
			if err != nil {
				return err
			}
			if tvApp.LastBlockHeight() == 0 {
				db.Close()
				return fmt.Errorf("%s holds no chain, run tvd init first", cfg.DBPath())
			}
			logger.Info("Loaded chain", "chain_id", tvApp.LastHeader().ChainID,
				"height", tvApp.LastBlockHeight(), "app_hash", fmt.Sprintf("%X", tvApp.LastCommitID().Hash))

			cliCtx := context.NewCLIContext().WithCodec(cdc).WithNode(context.StaticNode(tvApp))
			rs := server.NewRestServer(cliCtx, cdc, cfg.REST.ListenAddr, cfg.Instrumentation.Prometheus,
				logger.With("module", "rest-server"))
			if err := rs.Start(); err != nil {
				db.Close()
				return err
			}

			cmn.TrapSignal(logger, func() {
				if rs.IsRunning() {
					_ = rs.Stop()
				}
				if publisher.IsRunning() {
					_ = publisher.Stop()
				}
				db.Close()
			})
			select {}
		},
	}
	addServerFlags(cmd.Flags())
	return cmd
}

func addServerFlags(flags *pflag.FlagSet) {
	flags.String(flagListenAddr, "", "REST listen address, overrides rest.listen_addr")
	flags.Bool(flagPrometheus, false, "serve prometheus metrics, overrides instrumentation.prometheus")
}

func subscribeEventLogger(publisher *pubsub.Publisher, logger log.Logger) error {
	sub, err := publisher.NewSubscriber("event-logger")
	if err != nil {
		return err
	}
	for _, topic := range allTopics {
		if err := sub.Subscribe(topic, func(event pubsub.Event) {
			logger.Info("Committed event", "topic", event.GetTopic(), "event", fmt.Sprintf("%+v", event))
		}); err != nil {
			return err
		}
	}
	return nil
}
