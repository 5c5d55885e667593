package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tilebench/rummy/config"
)

var (
	GitVersion string

	cfg = config.DefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:           "rummy",
	Short:         "rummy move generator and self-play runner",
	Version:       GitVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Load(cmd.Flags()); err != nil {
			return err
		}
		setupLogging(cfg.GetBool(config.ConfigDebug))
		log.Debug().Interface("settings", cfg.AllSettings()).Msg("loaded-config")
		return nil
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.String(config.ConfigFile, "", "YAML config file")
	f.Bool(config.ConfigDebug, false, "debug logging")
	f.Int(config.ConfigPlayers, 2, "number of players")
	f.Int(config.ConfigHandSize, 14, "tiles dealt to each player")
	f.Int(config.ConfigMaxRank, 13, "highest tile rank")
	f.Int(config.ConfigCopies, 2, "copies of every colored tile")
	f.Int(config.ConfigJokers, 2, "number of jokers")
	f.Int(config.ConfigThreads, 1, "goroutines per move search")
	f.Int(config.ConfigNodeLimit, 0, "solver node budget per subset, 0 for none")
	f.Duration(config.ConfigSearchTimeout, 10*time.Second, "time limit per move search, 0 for none")
	f.Int(config.ConfigMaxTilesPerMove, 0, "most hand tiles one move may lay down, 0 for no cap")
	f.Bool(config.ConfigValidateMoves, false, "fully check every applied move")

	rootCmd.AddCommand(autoplayCmd, analyzeCmd, genCmd, validateCmd, shellCmd)
}

func setupLogging(debug bool) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("")
		os.Exit(1)
	}
}
