package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug           = "debug"
	ConfigFile            = "config"
	ConfigPlayers         = "players"
	ConfigHandSize        = "hand-size"
	ConfigMaxRank         = "max-rank"
	ConfigCopies          = "copies"
	ConfigJokers          = "jokers"
	ConfigThreads         = "threads"
	ConfigNodeLimit       = "node-limit"
	ConfigSearchTimeout   = "search-timeout"
	ConfigMaxTilesPerMove = "max-tiles-per-move"
	ConfigValidateMoves   = "validate-moves"
)

// EnvPrefix is prepended to every key when read from the environment, with
// dashes turned into underscores: RUMMY_HAND_SIZE.
const EnvPrefix = "RUMMY"

type Config struct {
	*viper.Viper
}

// DefaultConfig returns a config holding the defaults only. It does not read
// the environment or any file.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigPlayers, 2)
	c.SetDefault(ConfigHandSize, 14)
	c.SetDefault(ConfigMaxRank, 13)
	c.SetDefault(ConfigCopies, 2)
	c.SetDefault(ConfigJokers, 2)
	c.SetDefault(ConfigThreads, 1)
	c.SetDefault(ConfigNodeLimit, 0)
	c.SetDefault(ConfigSearchTimeout, 10*time.Second)
	c.SetDefault(ConfigMaxTilesPerMove, 0)
	c.SetDefault(ConfigValidateMoves, false)
	return c
}

// Load layers flags, environment and an optional YAML file over the
// defaults. Flags win over the environment, which wins over the file.
func (c *Config) Load(fs *pflag.FlagSet) error {
	if fs != nil {
		if err := c.BindPFlags(fs); err != nil {
			return err
		}
	}
	c.SetEnvPrefix(EnvPrefix)
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if path := c.GetString(ConfigFile); path != "" {
		c.SetConfigFile(path)
		c.SetConfigType("yaml")
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	return c.validate()
}

func (c *Config) validate() error {
	for _, k := range []string{ConfigPlayers, ConfigHandSize, ConfigMaxRank, ConfigCopies} {
		if c.GetInt(k) < 1 {
			return fmt.Errorf("%s must be positive, got %d", k, c.GetInt(k))
		}
	}
	for _, k := range []string{ConfigJokers, ConfigThreads, ConfigNodeLimit, ConfigMaxTilesPerMove} {
		if c.GetInt(k) < 0 {
			return fmt.Errorf("%s must not be negative, got %d", k, c.GetInt(k))
		}
	}
	return nil
}
