package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"
	dbm "github.com/tendermint/tendermint/libs/db"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/bnb-chain/tokenvote/app"
	"github.com/bnb-chain/tokenvote/client/context"
	"github.com/bnb-chain/tokenvote/config"
)

// options for the home database
var levelDBOptions = &opt.Options{
	BlockCacheCapacity:     16 * opt.MiB,
	WriteBuffer:            8 * opt.MiB,
	OpenFilesCacheCapacity: 64,
}

func newLogger(cfg config.Config, w io.Writer) (log.Logger, error) {
	option, err := cfg.LogOption()
	if err != nil {
		return nil, err
	}
	logger := log.NewTMLogger(log.NewSyncWriter(w))
	return log.NewFilter(logger, option), nil
}

func openDB(cfg config.Config) (dbm.DB, error) {
	switch cfg.DBBackend {
	case config.MemDBBackend:
		return dbm.NewMemDB(), nil
	case config.GoLevelDBBackend:
		if err := os.MkdirAll(cfg.DBPath(), 0755); err != nil {
			return nil, err
		}
		db, err := dbm.NewGoLevelDBWithOpts(config.DefaultDBName, cfg.DBPath(), levelDBOptions)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open database in %s", cfg.DBPath())
		}
		return db, nil
	default:
		return nil, errors.Errorf("unsupported db_backend %q", cfg.DBBackend)
	}
}

// openApp opens the home database and loads the latest committed block.
func openApp(cfg config.Config, logger log.Logger, options ...func(*app.TokenVoteApp)) (*app.TokenVoteApp, dbm.DB, error) {
	db, err := openDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	options = append(options, app.SetWeightCacheSize(cfg.WeightCacheSize))
	tvApp := app.NewTokenVoteApp(logger.With("module", "app"), db, options...)
	if err := tvApp.LoadLatestVersion(); err != nil {
		db.Close()
		return nil, nil, err
	}
	return tvApp, db, nil
}

// nodeOpener opens the home database for one command. The database is
// locked while open, so commands cannot run next to a started daemon.
func nodeOpener(cfg config.Config, logger log.Logger) context.NodeOpener {
	return func() (context.Node, func(), error) {
		tvApp, db, err := openApp(cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		if tvApp.LastBlockHeight() == 0 {
			db.Close()
			return nil, nil, errors.Errorf("%s holds no chain, run tvd init first", cfg.DBPath())
		}
		return tvApp, func() { db.Close() }, nil
	}
}
