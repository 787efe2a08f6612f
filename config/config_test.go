package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func tempHome(t *testing.T) string {
	home, err := ioutil.TempDir("", "tvd-config")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(home) })
	return home
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig().SetRoot("/tmp/tvd")
	require.NoError(t, cfg.ValidateBasic())
	require.Equal(t, "/tmp/tvd/config/config.toml", cfg.ConfigFile())
	require.Equal(t, "/tmp/tvd/config/genesis.json", cfg.GenesisFile())
	require.Equal(t, "/tmp/tvd/data", cfg.DBPath())

	cfg.DBDir = "/var/lib/tvd"
	require.Equal(t, "/var/lib/tvd", cfg.DBPath())
}

func TestValidateBasic(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"backend", func(c *Config) { c.DBBackend = "rocksdb" }},
		{"db dir", func(c *Config) { c.DBDir = "" }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
		{"cache", func(c *Config) { c.WeightCacheSize = 0 }},
		{"listen", func(c *Config) { c.REST.ListenAddr = "" }},
		{"duration", func(c *Config) { c.Genesis.VoteDuration = "a day" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)
			require.Error(t, cfg.ValidateBasic())
		})
	}
}

func TestLoadMissingConfig(t *testing.T) {
	home := tempHome(t)
	cfg, err := LoadConfig(home)
	require.NoError(t, err)
	require.Equal(t, DefaultConfig().SetRoot(home), cfg)
}

func TestWriteAndLoadConfig(t *testing.T) {
	home := tempHome(t)
	cfg := DefaultConfig().SetRoot(home)
	cfg.LogLevel = "error"
	cfg.WeightCacheSize = 16
	cfg.REST.ListenAddr = "tcp://0.0.0.0:8080"
	cfg.Instrumentation.Prometheus = false
	cfg.Genesis.ChainID = "testnet"
	cfg.Genesis.InitialSupply = 42
	require.NoError(t, WriteConfigFile(cfg))

	bz, err := ioutil.ReadFile(filepath.Join(home, "config", "config.toml"))
	require.NoError(t, err)
	require.Contains(t, string(bz), "listen_addr")

	loaded, err := LoadConfig(home)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestLoadInvalidConfig(t *testing.T) {
	home := tempHome(t)
	require.NoError(t, os.MkdirAll(filepath.Join(home, "config"), 0755))
	require.NoError(t, ioutil.WriteFile(filepath.Join(home, "config", "config.toml"),
		[]byte("db_backend = \"rocksdb\"\n"), 0644))

	_, err := LoadConfig(home)
	require.Error(t, err)
}
