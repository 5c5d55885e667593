package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tilebench/rummy/automatic"
	"github.com/tilebench/rummy/config"
	"github.com/tilebench/rummy/meld"
	"github.com/tilebench/rummy/movegen"
	"github.com/tilebench/rummy/shell"
	"github.com/tilebench/rummy/tile"
)

var autoplayCmd = &cobra.Command{
	Use:   "autoplay",
	Short: "play computer vs computer games and summarize them",
	RunE:  runAutoplay,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <game-log.csv>",
	Short: "summarize a game log written by autoplay",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := automatic.AnalyzeLogFile(args[0])
		if err != nil {
			return err
		}
		return printSummary(cmd, s)
	},
}

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "list the lay-downs for a hand and table",
	RunE:  runGen,
}

var validateCmd = &cobra.Command{
	Use:   "validate <tiles> [<tiles>...]",
	Short: "check melds; each argument is one meld",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "interactive position analysis",
	RunE:  runShell,
}

func init() {
	f := autoplayCmd.Flags()
	f.Int("games", 100, "number of games")
	f.Int("parallel", 1, "games played at once")
	f.StringSlice("selectors", []string{automatic.MostTilesSelector},
		"move selector per seat: most-tiles or random")
	f.String("seeds", "", "read game seeds from this file instead of generating them")
	f.String("save-seeds", "", "write the game seeds to this file")
	f.String("logfile", "", "write one CSV row per game to this file")
	f.Bool("yaml", false, "print the summary as YAML")

	analyzeCmd.Flags().Bool("yaml", false, "print the summary as YAML")

	genCmd.Flags().String("hand", "", "hand tiles, e.g. \"R1 R2 J\"")
	genCmd.Flags().String("table", "", "table melds separated by |, e.g. \"B2 B3 B4 | R7 Y7 K7\"")
	genCmd.MarkFlagRequired("hand")
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func runAutoplay(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	games, _ := f.GetInt("games")
	parallel, _ := f.GetInt("parallel")
	selectors, _ := f.GetStringSlice("selectors")
	seedsFile, _ := f.GetString("seeds")
	saveSeeds, _ := f.GetString("save-seeds")
	logfile, _ := f.GetString("logfile")

	var seeds [][32]byte
	if seedsFile != "" {
		var err error
		if seeds, err = automatic.LoadSeeds(seedsFile); err != nil {
			return err
		}
	} else {
		seeds = automatic.GenerateSeeds(games)
	}
	if saveSeeds != "" {
		if err := automatic.SaveSeeds(seeds, saveSeeds); err != nil {
			return err
		}
	}

	ctx, cancel := signalContext()
	defer cancel()
	log.Info().Int("games", len(seeds)).Int("parallel", parallel).
		Strs("selectors", selectors).Msg("autoplay")
	results, err := automatic.StartCompVCompStaticGames(ctx, cfg, seeds, parallel, selectors, logfile)
	if err != nil {
		return err
	}
	return printSummary(cmd, automatic.Summarize(results))
}

func printSummary(cmd *cobra.Command, s *automatic.Summary) error {
	if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
		out, err := s.YAML()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	return s.Report(cmd.OutOrStdout())
}

func runGen(cmd *cobra.Command, args []string) error {
	handStr, _ := cmd.Flags().GetString("hand")
	tableStr, _ := cmd.Flags().GetString("table")
	hand, err := tile.ParseList(handStr)
	if err != nil {
		return err
	}
	table, err := meld.ParseTable(tableStr)
	if err != nil {
		return err
	}
	if !meld.IsTableValid(table) {
		return fmt.Errorf("table %v holds an invalid meld", table)
	}

	ctx, cancel := signalContext()
	defer cancel()
	if timeout := cfg.GetDuration(config.ConfigSearchTimeout); timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	gen := movegen.NewGenerator(
		movegen.WithThreads(cfg.GetInt(config.ConfigThreads)),
		movegen.WithMaxTiles(cfg.GetInt(config.ConfigMaxTilesPerMove)),
		movegen.WithNodeLimit(cfg.GetInt(config.ConfigNodeLimit)),
	)
	moves, err := gen.PossibleMoves(ctx, hand, table)
	if err != nil {
		log.Warn().Err(err).Int("moves", len(moves)).Msg("search-incomplete")
	}
	w := cmd.OutOrStdout()
	for i, m := range moves {
		fmt.Fprintln(w, shell.MoveTableRow(i, m))
	}
	if len(moves) == 0 {
		fmt.Fprintln(w, "no moves")
	}
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	var table meld.Table
	w := cmd.OutOrStdout()
	for _, a := range args {
		tiles, err := tile.ParseList(a)
		if err != nil {
			return err
		}
		m := meld.Meld(tiles)
		table = append(table, m)
		fmt.Fprintf(w, "%v: %v\n", m, meld.IsValidMeld(tiles))
	}
	if len(args) > 1 {
		fmt.Fprintf(w, "table: %v\n", meld.IsTableValid(table))
	}
	return nil
}

func runShell(cmd *cobra.Command, args []string) error {
	sc, err := shell.NewShellController(cfg)
	if err != nil {
		return err
	}
	done := make(chan struct{})
	sig := make(chan os.Signal, 1)
	go func() {
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Debug().Msg("got quit signal...")
		close(done)
	}()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sc.Loop(ctx, sig)
	<-done
	return nil
}
