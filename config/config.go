package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	toml "github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	DefaultHomeDir    = "~/.tvd"
	DefaultConfigDir  = "config"
	DefaultDataDir    = "data"
	ConfigFileName    = "config.toml"
	GenesisFileName   = "genesis.json"
	DefaultDBName     = "tokenvote"
	GoLevelDBBackend  = "goleveldb"
	MemDBBackend      = "memdb"
	DefaultListenAddr = "tcp://127.0.0.1:1317"
)

// Config is the content of $HOME/config/config.toml.
type Config struct {
	// home directory, set from --home and never written
	RootDir string `toml:"-" mapstructure:"-"`

	DBBackend       string `toml:"db_backend" mapstructure:"db_backend" comment:"goleveldb or memdb"`
	DBDir           string `toml:"db_dir" mapstructure:"db_dir" comment:"database directory, relative to the home directory"`
	LogLevel        string `toml:"log_level" mapstructure:"log_level" comment:"debug, info, error or none"`
	WeightCacheSize int    `toml:"weight_cache_size" mapstructure:"weight_cache_size" comment:"historical weights kept in memory"`

	REST            RESTConfig            `toml:"rest" mapstructure:"rest"`
	Instrumentation InstrumentationConfig `toml:"instrumentation" mapstructure:"instrumentation"`
	Genesis         GenesisConfig         `toml:"genesis" mapstructure:"genesis"`
}

type RESTConfig struct {
	ListenAddr string `toml:"listen_addr" mapstructure:"listen_addr"`
}

type InstrumentationConfig struct {
	Prometheus bool   `toml:"prometheus" mapstructure:"prometheus" comment:"serve /metrics next to the REST routes"`
	Namespace  string `toml:"namespace" mapstructure:"namespace"`
}

// GenesisConfig seeds the genesis file written by init.
type GenesisConfig struct {
	ChainID         string `toml:"chain_id" mapstructure:"chain_id"`
	Admin           string `toml:"admin" mapstructure:"admin" comment:"bech32 address or account name holding every capability"`
	InitialSupply   int64  `toml:"initial_supply" mapstructure:"initial_supply"`
	SupportRequired string `toml:"support_required" mapstructure:"support_required"`
	MinAcceptQuorum string `toml:"min_accept_quorum" mapstructure:"min_accept_quorum"`
	VoteDuration    string `toml:"vote_duration" mapstructure:"vote_duration"`
}

func DefaultConfig() Config {
	return Config{
		DBBackend:       GoLevelDBBackend,
		DBDir:           DefaultDataDir,
		LogLevel:        "info",
		WeightCacheSize: 4096,
		REST: RESTConfig{
			ListenAddr: DefaultListenAddr,
		},
		Instrumentation: InstrumentationConfig{
			Prometheus: true,
			Namespace:  "tokenvote",
		},
		Genesis: GenesisConfig{
			ChainID:         "tokenvote",
			Admin:           "admin",
			InitialSupply:   1000000,
			SupportRequired: "50%",
			MinAcceptQuorum: "20%",
			VoteDuration:    "24h",
		},
	}
}

// DefaultHome returns the expanded default home directory.
func DefaultHome() string {
	home, err := homedir.Expand(DefaultHomeDir)
	if err != nil {
		return ".tvd"
	}
	return home
}

// SetRoot returns a copy of the config rooted at home.
func (cfg Config) SetRoot(home string) Config {
	cfg.RootDir = home
	return cfg
}

func (cfg Config) ConfigFile() string {
	return filepath.Join(cfg.RootDir, DefaultConfigDir, ConfigFileName)
}

func (cfg Config) GenesisFile() string {
	return filepath.Join(cfg.RootDir, DefaultConfigDir, GenesisFileName)
}

// DBPath is the database directory. Relative db_dir values are taken from
// the home directory.
func (cfg Config) DBPath() string {
	if filepath.IsAbs(cfg.DBDir) {
		return cfg.DBDir
	}
	return filepath.Join(cfg.RootDir, cfg.DBDir)
}

// LogOption turns log_level into a filter option for a tendermint logger.
func (cfg Config) LogOption() (log.Option, error) {
	return log.AllowLevel(cfg.LogLevel)
}

func (cfg Config) ValidateBasic() error {
	switch cfg.DBBackend {
	case GoLevelDBBackend, MemDBBackend:
	default:
		return fmt.Errorf("unsupported db_backend %q", cfg.DBBackend)
	}
	if cfg.DBDir == "" {
		return errors.New("db_dir is empty")
	}
	if _, err := cfg.LogOption(); err != nil {
		return errors.Wrap(err, "invalid log_level")
	}
	if cfg.WeightCacheSize <= 0 {
		return errors.New("weight_cache_size must be positive")
	}
	if cfg.REST.ListenAddr == "" {
		return errors.New("rest.listen_addr is empty")
	}
	if cfg.Genesis.VoteDuration != "" {
		if _, err := time.ParseDuration(cfg.Genesis.VoteDuration); err != nil {
			return errors.Wrap(err, "invalid genesis.vote_duration")
		}
	}
	return nil
}

// LoadConfig reads home's config file over the defaults. A missing file
// leaves the defaults in place.
func LoadConfig(home string) (Config, error) {
	cfg := DefaultConfig().SetRoot(home)

	v := viper.New()
	v.SetConfigFile(cfg.ConfigFile())
	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(cfg.ConfigFile()); os.IsNotExist(statErr) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "failed to read %s", cfg.ConfigFile())
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrapf(err, "failed to decode %s", cfg.ConfigFile())
	}
	cfg.RootDir = home
	return cfg, cfg.ValidateBasic()
}

// WriteConfigFile writes cfg as TOML to its home's config file.
func WriteConfigFile(cfg Config) error {
	bz, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to encode config")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.ConfigFile()), 0755); err != nil {
		return err
	}
	return ioutil.WriteFile(cfg.ConfigFile(), bz, 0644)
}
