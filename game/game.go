// Package game holds the authoritative state of one rummy game: the stock,
// the hands and the table. It deals, applies lay-downs and runs the turn
// cycle. How a move is chosen is up to the caller.
package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/tilebench/rummy/meld"
	"github.com/tilebench/rummy/move"
	"github.com/tilebench/rummy/movegen"
	"github.com/tilebench/rummy/tile"
)

var (
	ErrInvalidMove   = errors.New("invalid move")
	ErrEmptyStock    = errors.New("stock is empty")
	ErrGameOver      = errors.New("game is over")
	ErrInvalidPlayer = errors.New("invalid player")
	ErrMustDraw      = errors.New("must draw while the stock has tiles")
)

// NoWinner is returned by Winner while the game runs, and after a blocked
// game that ended in a tie.
const NoWinner = -1

type PlayState uint8

const (
	Playing PlayState = iota
	GameOver
)

func (p PlayState) String() string {
	if p == GameOver {
		return "game-over"
	}
	return "playing"
}

const (
	rngBufSize = 1024
	rngRounds  = 12
)

// Game is single-writer: one goroutine at a time may change it.
// EnumerateMoves only reads.
type Game struct {
	rules    *GameRules
	movegen  movegen.MoveGenerator
	validate bool

	seed   [32]byte
	seeded bool
	// stock shuffles so far; each one draws from its own stream
	shuffles int

	stock   []tile.Tile
	players []*playerState
	table   meld.Table

	playing        PlayState
	onturn         int
	turnnum        int
	placedThisTurn bool
	// turns in a row that ended with an empty stock and nothing laid down or drawn
	idleTurns int
	winner    int
	blocked   bool
}

type GameOption func(*Game)

// WithMoveGenerator replaces the default generator used by EnumerateMoves.
func WithMoveGenerator(mg movegen.MoveGenerator) GameOption {
	return func(g *Game) {
		g.movegen = mg
	}
}

// WithSeed makes the shuffle reproducible.
func WithSeed(seed [32]byte) GameOption {
	return func(g *Game) {
		g.seed = seed
		g.seeded = true
	}
}

// WithMoveValidation turns on full checking in ApplyMove: the player must be
// on turn, the new table must be valid, and it must hold exactly the old
// table tiles plus the used tiles.
func WithMoveValidation(v bool) GameOption {
	return func(g *Game) {
		g.validate = v
	}
}

// NewGame creates a game. Call StartGame to shuffle and deal.
func NewGame(rules *GameRules, opts ...GameOption) (*Game, error) {
	if rules == nil {
		return nil, errors.New("nil rules")
	}
	g := &Game{rules: rules, winner: NoWinner}
	for _, o := range opts {
		o(g)
	}
	if g.movegen == nil {
		g.movegen = movegen.NewGenerator()
	}
	if !g.seeded {
		frand.Read(g.seed[:])
	}
	g.players = make([]*playerState, rules.players)
	for i := range g.players {
		g.players[i] = newPlayerState(fmt.Sprintf("p%d", i+1))
	}
	return g, nil
}

// StartGame shuffles a fresh pool and deals every player a hand. Dealing
// stops early if the stock runs out. Starting again with the same seed
// deals the same hands.
func (g *Game) StartGame() {
	r := g.rules
	g.stock = tile.Pool(r.maxRank, r.copies, r.jokers)
	g.shuffles = 0
	g.shuffleStock()
	g.table = nil
	for _, p := range g.players {
		p.hand = nil
		for i := 0; i < r.handSize && len(g.stock) > 0; i++ {
			p.hand = append(p.hand, g.draw())
		}
	}
	g.playing = Playing
	g.onturn = 0
	g.turnnum = 0
	g.placedThisTurn = false
	g.idleTurns = 0
	g.winner = NoWinner
	g.blocked = false
	log.Debug().Str("rules", r.String()).Int("stock", len(g.stock)).Msg("game-started")
}

func (g *Game) draw() tile.Tile {
	t := g.stock[len(g.stock)-1]
	g.stock = g.stock[:len(g.stock)-1]
	return t
}

func (g *Game) checkPlayer(player int) error {
	if player < 0 || player >= len(g.players) {
		return fmt.Errorf("%w: %d", ErrInvalidPlayer, player)
	}
	return nil
}

// EnumerateMoves lists the lay-downs available to the player on the
// current table. Drawing and passing are never in the list.
func (g *Game) EnumerateMoves(ctx context.Context, player int) ([]*move.Move, error) {
	if err := g.checkPlayer(player); err != nil {
		return nil, err
	}
	return g.movegen.PossibleMoves(ctx, g.Hand(player), g.table)
}

// ApplyMove lays down the move's used tiles from the player's hand and
// replaces the table. A player may lay down several times in one turn.
// Emptying a hand ends the game with that player as the winner.
func (g *Game) ApplyMove(player int, m *move.Move) error {
	if g.playing == GameOver {
		return ErrGameOver
	}
	if err := g.checkPlayer(player); err != nil {
		return err
	}
	if m == nil || len(m.Used()) == 0 {
		return fmt.Errorf("%w: no tiles laid down", ErrInvalidMove)
	}
	p := g.players[player]
	left, err := tile.Subtract(p.hand, m.Used())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}
	if g.validate {
		if err := g.validateMove(player, m); err != nil {
			return err
		}
	}

	p.hand = left
	g.table = m.Table().Clone()
	g.placedThisTurn = true
	g.idleTurns = 0
	log.Debug().Int("player", player).Str("used", tile.ListString(m.Used())).
		Int("left", len(left)).Msg("apply-move")

	if len(left) == 0 {
		g.playing = GameOver
		g.winner = player
		log.Debug().Int("winner", player).Int("turn", g.turnnum).Msg("game-over")
	}
	return nil
}

func (g *Game) validateMove(player int, m *move.Move) error {
	if player != g.onturn {
		return fmt.Errorf("%w: player %d is not on turn", ErrInvalidMove, player)
	}
	if !meld.IsTableValid(m.Table()) {
		return fmt.Errorf("%w: table %v has an invalid meld", ErrInvalidMove, m.Table())
	}
	want := append(g.table.Tiles(), m.Used()...)
	if !tile.Equal(m.Table().Tiles(), want) {
		return fmt.Errorf("%w: table tiles do not match the old table plus %v",
			ErrInvalidMove, tile.ListString(m.Used()))
	}
	return nil
}

// NextPlayer ends the turn. A player who did not lay down draws one tile
// first; with an empty stock that fails with ErrEmptyStock and nothing
// changes.
func (g *Game) NextPlayer(placed bool) error {
	if g.playing == GameOver {
		return ErrGameOver
	}
	if !placed {
		if len(g.stock) == 0 {
			return ErrEmptyStock
		}
		p := g.players[g.onturn]
		p.hand = append(p.hand, g.draw())
	}
	g.endTurn(!placed)
	return nil
}

// Pass ends the turn without drawing. It is only allowed after laying down
// this turn or once the stock is empty.
func (g *Game) Pass() error {
	if g.playing == GameOver {
		return ErrGameOver
	}
	if len(g.stock) > 0 && !g.placedThisTurn {
		return ErrMustDraw
	}
	g.endTurn(false)
	return nil
}

// endTurn counts a turn as idle only when nothing was laid down or drawn
// and the stock is empty. A player who drew the last tile still gets a turn
// to use it before the game can block.
func (g *Game) endTurn(drew bool) {
	if !g.placedThisTurn && !drew && len(g.stock) == 0 {
		g.idleTurns++
	} else {
		g.idleTurns = 0
	}
	g.placedThisTurn = false
	g.onturn = (g.onturn + 1) % len(g.players)
	g.turnnum++
	if g.idleTurns >= len(g.players) {
		g.endBlocked()
	}
}

// endBlocked finishes a game nobody can move in. The lowest hand value
// wins; a tie has no winner.
func (g *Game) endBlocked() {
	g.playing = GameOver
	g.blocked = true
	g.winner = NoWinner
	best := 0
	for i := range g.players {
		v := g.HandValue(i)
		switch {
		case i == 0 || v < best:
			best = v
			g.winner = i
		case v == best:
			g.winner = NoWinner
		}
	}
	log.Debug().Int("winner", g.winner).Int("turn", g.turnnum).Msg("game-blocked")
}
