// Package automatic plays computer-vs-computer games with the rules engine.
// It is used to exercise the move generator over whole games and to collect
// statistics such as game length and first-player advantage.
package automatic

import (
	"context"
	"encoding/base64"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tilebench/rummy/config"
	"github.com/tilebench/rummy/game"
	"github.com/tilebench/rummy/move"
	"github.com/tilebench/rummy/movegen"
	"github.com/tilebench/rummy/tile"
)

// GameRunner plays one game at a time. It is not safe for concurrent use;
// run one per goroutine.
type GameRunner struct {
	game      *game.Game
	config    *config.Config
	rules     *game.GameRules
	movegen   movegen.MoveGenerator
	selectors []string
	players   []MoveSelector
	timeout   time.Duration
	validate  bool
}

// GameResult is the outcome of one finished game.
type GameResult struct {
	GameID     string
	Seed       [32]byte
	Winner     int
	Blocked    bool
	Turns      int
	HandValues []int
}

// NewGameRunner sets up a runner from the config. selectors name the move
// selector of each seat in order; missing seats reuse the list from the
// start, and an empty list means MostTilesSelector everywhere.
func NewGameRunner(cfg *config.Config, selectors ...string) (*GameRunner, error) {
	rules, err := game.NewGameRules(cfg)
	if err != nil {
		return nil, err
	}
	if len(selectors) == 0 {
		selectors = []string{MostTilesSelector}
	}
	for _, s := range selectors {
		if _, err := NewSelector(s, [32]byte{}); err != nil {
			return nil, err
		}
	}
	return &GameRunner{
		config: cfg,
		rules:  rules,
		movegen: movegen.NewGenerator(
			movegen.WithThreads(cfg.GetInt(config.ConfigThreads)),
			movegen.WithMaxTiles(cfg.GetInt(config.ConfigMaxTilesPerMove)),
			movegen.WithNodeLimit(cfg.GetInt(config.ConfigNodeLimit)),
		),
		selectors: selectors,
		timeout:   cfg.GetDuration(config.ConfigSearchTimeout),
		validate:  cfg.GetBool(config.ConfigValidateMoves),
	}, nil
}

// Init creates a fresh game for the seed. Each seat's selector gets its own
// seed derived from the game seed.
func (r *GameRunner) Init(seed [32]byte) error {
	g, err := game.NewGame(r.rules,
		game.WithSeed(seed),
		game.WithMoveGenerator(r.movegen),
		game.WithMoveValidation(r.validate))
	if err != nil {
		return err
	}
	r.game = g
	r.players = make([]MoveSelector, r.rules.Players())
	for i := range r.players {
		s := seed
		s[len(s)-1] ^= byte(i + 1)
		r.players[i], err = NewSelector(r.selectors[i%len(r.selectors)], s)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *GameRunner) StartGame() {
	r.game.StartGame()
}

func (r *GameRunner) Game() *game.Game {
	return r.game
}

// PlayTurn lets the player on turn lay down for as long as the selector
// finds moves, then ends the turn: without a lay-down the player draws, or
// passes once the stock is empty.
func (r *GameRunner) PlayTurn(ctx context.Context) error {
	g := r.game
	p := g.PlayerOnTurn()
	placed := false
	for g.Playing() == game.Playing {
		moves, err := r.enumerate(ctx, p)
		if err != nil {
			return err
		}
		if len(moves) == 0 {
			break
		}
		m := r.players[p].Select(moves)
		before := tile.ListString(g.Hand(p))
		if err := g.ApplyMove(p, m); err != nil {
			return err
		}
		placed = true
		log.Debug().Str("player", g.Nickname(p)).Int("turn", g.Turn()).
			Str("hand", before).Str("play", m.ShortDescription()).
			Int("choices", len(moves)).Int("stock", g.StockRemaining()).Msg("lay-down")
	}
	if g.Playing() == game.GameOver {
		return nil
	}
	switch {
	case placed:
		return g.NextPlayer(true)
	case g.StockRemaining() > 0:
		return g.NextPlayer(false)
	}
	return g.Pass()
}

// enumerate runs one bounded search. A search that times out still yields
// whatever moves it found.
func (r *GameRunner) enumerate(ctx context.Context, player int) ([]*move.Move, error) {
	sctx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		sctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	moves, err := r.game.EnumerateMoves(sctx, player)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		log.Debug().Int("player", player).Int("moves", len(moves)).Msg("search-timeout")
	}
	return moves, nil
}

// PlayGame plays a whole game from the seed.
func (r *GameRunner) PlayGame(ctx context.Context, seed [32]byte) (*GameResult, error) {
	if err := r.Init(seed); err != nil {
		return nil, err
	}
	r.StartGame()
	for r.game.Playing() == game.Playing {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.PlayTurn(ctx); err != nil {
			return nil, err
		}
	}
	res := &GameResult{
		GameID:  seedString(seed)[:8],
		Seed:    seed,
		Winner:  r.game.Winner(),
		Blocked: r.game.Blocked(),
		Turns:   r.game.Turn(),
	}
	for p := 0; p < r.game.NumPlayers(); p++ {
		res.HandValues = append(res.HandValues, r.game.HandValue(p))
	}
	log.Debug().Str("game", res.GameID).Int("winner", res.Winner).
		Bool("blocked", res.Blocked).Int("turns", res.Turns).Msg("game-finished")
	return res, nil
}

func seedString(seed [32]byte) string {
	return base64.RawURLEncoding.EncodeToString(seed[:])
}
