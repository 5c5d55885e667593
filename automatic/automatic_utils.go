package automatic

// Batch self-play: many computer vs computer games over a list of seeds.

import (
	"context"
	"encoding/csv"
	"errors"
	"expvar"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/tilebench/rummy/config"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

var gameLogHeader = []string{"gameID", "seed", "winner", "blocked", "turns", "handValues"}

// StartCompVCompStaticGames plays one game per seed on up to `threads`
// goroutines and returns the results in seed order. If outputFilename is
// set, one CSV row per game is written there; AnalyzeLogFile reads it back.
// Cancelling ctx stops the batch and returns the context error.
func StartCompVCompStaticGames(ctx context.Context, cfg *config.Config, seeds [][32]byte,
	threads int, selectors []string, outputFilename string) ([]*GameResult, error) {

	if IsPlaying.Value() > 0 {
		return nil, errors.New("games are already being played, please wait till complete")
	}
	if threads < 1 {
		threads = 1
	}
	// fail on a bad config before starting any goroutine
	if _, err := NewGameRunner(cfg, selectors...); err != nil {
		return nil, err
	}
	log.Debug().Int("games", len(seeds)).Int("threads", threads).Msg("starting-autoplay")

	IsPlaying.Add(1)
	defer IsPlaying.Add(-1)
	CVCCounter.Set(0)

	results := make([]*GameResult, len(seeds))
	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(threads)
	for i, seed := range seeds {
		i, seed := i, seed
		if ectx.Err() != nil {
			break
		}
		eg.Go(func() error {
			r, err := NewGameRunner(cfg, selectors...)
			if err != nil {
				return err
			}
			res, err := r.PlayGame(ectx, seed)
			if err != nil {
				return err
			}
			results[i] = res
			CVCCounter.Add(1)
			if n := CVCCounter.Value(); n%1000 == 0 {
				log.Info().Int64("games", n).Msg("autoplay-progress")
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Info().Int("games", len(results)).Msg("all-games-finished")

	if outputFilename != "" {
		if err := writeGameLog(outputFilename, results); err != nil {
			return results, err
		}
	}
	return results, nil
}

func writeGameLog(path string, results []*GameResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(gameLogHeader); err != nil {
		return err
	}
	for _, r := range results {
		vals := make([]string, len(r.HandValues))
		for i, v := range r.HandValues {
			vals[i] = strconv.Itoa(v)
		}
		err := w.Write([]string{
			r.GameID,
			seedString(r.Seed),
			strconv.Itoa(r.Winner),
			strconv.FormatBool(r.Blocked),
			strconv.Itoa(r.Turns),
			strings.Join(vals, " "),
		})
		if err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
