package game

import (
	"context"
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/tilebench/rummy/config"
	"github.com/tilebench/rummy/meld"
	"github.com/tilebench/rummy/move"
	"github.com/tilebench/rummy/tile"
)

var testSeed = [32]byte{1, 2, 3, 4, 5}

func newTestGame(t *testing.T, opts ...GameOption) *Game {
	t.Helper()
	g, err := NewGame(DefaultRules(), append([]GameOption{WithSeed(testSeed)}, opts...)...)
	if err != nil {
		t.Fatal(err)
	}
	g.StartGame()
	return g
}

func TestInitialState(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t)
	is.Equal(g.NumPlayers(), 2)
	is.Equal(len(g.Hand(0)), 14)
	is.Equal(len(g.Hand(1)), 14)
	is.Equal(g.StockRemaining(), 106-28)
	is.Equal(len(g.Table()), 0)
	is.Equal(g.PlayerOnTurn(), 0)
	is.Equal(g.Playing(), Playing)
	is.Equal(g.Winner(), NoWinner)
	is.Equal(g.TotalTiles(), g.Rules().PoolSize())
}

func TestRulesFromConfig(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigPlayers, 4)
	cfg.Set(config.ConfigMaxRank, 5)
	cfg.Set(config.ConfigHandSize, 12)
	rules, err := NewGameRules(cfg)
	is.NoErr(err)
	is.Equal(rules.PoolSize(), 2*4*5+2)

	g, err := NewGame(rules, WithSeed(testSeed))
	is.NoErr(err)
	g.StartGame()
	// 42 tiles run out before the last hand is full
	is.Equal(len(g.Hand(0)), 12)
	is.Equal(len(g.Hand(3)), 42-36)
	is.Equal(g.StockRemaining(), 0)
	is.Equal(g.TotalTiles(), 42)

	cfg.Set(config.ConfigCopies, 0)
	_, err = NewGameRules(cfg)
	is.True(err != nil)
}

func TestSeedReproducible(t *testing.T) {
	is := is.New(t)
	a := newTestGame(t)
	b := newTestGame(t)
	is.Equal(a.Hand(0), b.Hand(0))
	is.Equal(a.Hand(1), b.Hand(1))

	other, err := NewGame(DefaultRules(), WithSeed([32]byte{9}))
	is.NoErr(err)
	other.StartGame()
	is.True(!tile.Equal(other.Hand(0), a.Hand(0)) || !tile.Equal(other.Hand(1), a.Hand(1)))

	// restarting deals the same hands again
	h := a.Hand(0)
	is.NoErr(a.NextPlayer(false))
	a.StartGame()
	is.Equal(a.Hand(0), h)
}

// setPosition gives player 0 a hand and lays out a table, keeping the tile
// count intact.
func setPosition(t *testing.T, g *Game, hand, table string) {
	t.Helper()
	// clear both hands first so any tile is available
	for p := 0; p < g.NumPlayers(); p++ {
		if err := g.SetHand(p, nil); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.SetTable(meld.MustParseTable(table)); err != nil {
		t.Fatal(err)
	}
	if err := g.SetHand(0, tile.MustParseList(hand)); err != nil {
		t.Fatal(err)
	}
}

func TestEnumerateAndApply(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	g := newTestGame(t)
	setPosition(t, g, "R1 R2 K9", "J R3")
	is.Equal(g.TotalTiles(), 106)

	moves, err := g.EnumerateMoves(ctx, 0)
	is.NoErr(err)
	is.Equal(len(moves), 3)

	_, err = g.EnumerateMoves(ctx, 2)
	is.True(errors.Is(err, ErrInvalidPlayer))

	// the move laying down both tiles
	m := moves[2]
	is.Equal(m.TilesPlayed(), 2)
	is.NoErr(g.ApplyMove(0, m))
	is.Equal(g.Hand(0), tile.MustParseList("K9"))
	is.Equal(g.Table().Signature(), "J R1 R2 R3")
	is.True(g.PlacedThisTurn())
	is.Equal(g.Playing(), Playing)
	is.Equal(g.TotalTiles(), 106)
}

func TestApplyMoveErrors(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t)
	setPosition(t, g, "B1", "B2 B3")

	err := g.ApplyMove(0, move.NewLayDown(meld.MustParseTable("B2 B3"), nil))
	is.True(errors.Is(err, ErrInvalidMove))

	// R13 is not in the hand
	err = g.ApplyMove(0, move.NewLayDown(meld.MustParseTable("B2 B3 | R13"), tile.MustParseList("R13")))
	is.True(errors.Is(err, ErrInvalidMove))

	// one B1 in hand cannot pay for two
	err = g.ApplyMove(0, move.NewLayDown(meld.MustParseTable("B1 B2 B3"), tile.MustParseList("B1 B1")))
	is.True(errors.Is(err, ErrInvalidMove))

	err = g.ApplyMove(5, move.NewLayDown(meld.MustParseTable("B1 B2 B3"), tile.MustParseList("B1")))
	is.True(errors.Is(err, ErrInvalidPlayer))

	is.Equal(g.Hand(0), tile.MustParseList("B1"))
}

func TestApplyMoveWins(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t)
	setPosition(t, g, "B1", "B2 B3")
	is.NoErr(g.ApplyMove(0, move.NewLayDown(meld.MustParseTable("B1 B2 B3"), tile.MustParseList("B1"))))
	is.Equal(g.Playing(), GameOver)
	is.Equal(g.Winner(), 0)
	is.True(!g.Blocked())
	is.Equal(len(g.Hand(0)), 0)

	is.True(errors.Is(g.ApplyMove(1, move.NewLayDown(nil, tile.MustParseList("R1"))), ErrGameOver))
	is.True(errors.Is(g.NextPlayer(false), ErrGameOver))
	is.True(errors.Is(g.Pass(), ErrGameOver))
}

func TestMoveValidation(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t, WithMoveValidation(true))
	setPosition(t, g, "B1 B4 R7", "B2 B3")

	// invalid meld on the new table
	err := g.ApplyMove(0, move.NewLayDown(meld.MustParseTable("B2 B3 | B1"), tile.MustParseList("B1")))
	is.True(errors.Is(err, ErrInvalidMove))

	// table drops a tile that was already there
	err = g.ApplyMove(0, move.NewLayDown(meld.MustParseTable("B2 B3 B4"), tile.MustParseList("B1 B4")))
	is.True(errors.Is(err, ErrInvalidMove))

	// player 1 is not on turn
	is.NoErr(g.SetHand(1, tile.MustParseList("B4")))
	err = g.ApplyMove(1, move.NewLayDown(meld.MustParseTable("B2 B3 B4"), tile.MustParseList("B4")))
	is.True(errors.Is(err, ErrInvalidMove))

	is.NoErr(g.ApplyMove(0, move.NewLayDown(meld.MustParseTable("B1 B2 B3"), tile.MustParseList("B1"))))
	is.Equal(g.TotalTiles(), 106)
}

func TestNextPlayer(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t)
	stock := g.StockRemaining()

	is.NoErr(g.NextPlayer(false))
	is.Equal(g.StockRemaining(), stock-1)
	is.Equal(len(g.Hand(0)), 15)
	is.Equal(g.PlayerOnTurn(), 1)
	is.Equal(g.Turn(), 1)

	// placed: no draw
	is.NoErr(g.NextPlayer(true))
	is.Equal(g.StockRemaining(), stock-1)
	is.Equal(g.PlayerOnTurn(), 0)
	is.Equal(g.TotalTiles(), 106)
}

func TestNextPlayerEmptyStock(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t)
	for g.StockRemaining() > 0 {
		is.NoErr(g.NextPlayer(false))
	}
	onturn, turn := g.PlayerOnTurn(), g.Turn()
	is.True(errors.Is(g.NextPlayer(false), ErrEmptyStock))
	is.Equal(g.PlayerOnTurn(), onturn)
	is.Equal(g.Turn(), turn)
	is.Equal(g.TotalTiles(), 106)
}

func TestPass(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t)
	is.True(errors.Is(g.Pass(), ErrMustDraw))

	setPosition(t, g, "B1 R9", "B2 B3")
	is.NoErr(g.ApplyMove(0, move.NewLayDown(meld.MustParseTable("B1 B2 B3"), tile.MustParseList("B1"))))
	stock := g.StockRemaining()
	is.NoErr(g.Pass())
	is.Equal(g.StockRemaining(), stock)
	is.Equal(g.PlayerOnTurn(), 1)
	is.True(!g.PlacedThisTurn())
}

func TestStalemate(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t)
	for g.StockRemaining() > 0 {
		is.NoErr(g.NextPlayer(false))
	}
	for g.Playing() == Playing {
		is.NoErr(g.Pass())
	}
	is.True(g.Blocked())
	is.Equal(g.Playing(), GameOver)

	v0, v1 := g.HandValue(0), g.HandValue(1)
	switch {
	case v0 < v1:
		is.Equal(g.Winner(), 0)
	case v1 < v0:
		is.Equal(g.Winner(), 1)
	default:
		is.Equal(g.Winner(), NoWinner)
	}
}

func TestStalemateTie(t *testing.T) {
	is := is.New(t)
	// four tiles of rank 1, two per hand: the stock is empty from the start
	// and both hands are worth 2
	rules := &GameRules{players: 2, handSize: 2, maxRank: 1, copies: 1, jokers: 0}
	g, err := NewGame(rules, WithSeed(testSeed))
	is.NoErr(err)
	g.StartGame()
	is.Equal(g.StockRemaining(), 0)
	is.NoErr(g.Pass())
	is.Equal(g.Playing(), Playing)
	is.NoErr(g.Pass())
	is.True(g.Blocked())
	is.Equal(g.Winner(), NoWinner)
}

func TestCopyIsIndependent(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t)
	c := g.Copy()
	is.NoErr(c.NextPlayer(false))
	is.Equal(len(g.Hand(0)), 14)
	is.Equal(len(c.Hand(0)), 15)
	is.Equal(g.PlayerOnTurn(), 0)
	is.True(g.String() != "")
}

func TestLastDrawIsNotIdle(t *testing.T) {
	is := is.New(t)
	rules := &GameRules{players: 2, handSize: 2, maxRank: 3, copies: 1, jokers: 0}
	g, err := NewGame(rules, WithSeed(testSeed))
	is.NoErr(err)
	g.StartGame()
	is.NoErr(g.SetHand(0, nil))
	is.NoErr(g.SetHand(1, nil))
	is.NoErr(g.SetHand(0, tile.MustParseList("B2 B3")))
	is.NoErr(g.SetHand(1, tile.MustParseList("R1 R2 R3 Y1 Y2 Y3 K1 K2 K3")))
	is.Equal(g.StockRemaining(), 1)

	// seat 0 draws the last tile, seat 1 passes
	is.NoErr(g.NextPlayer(false))
	is.Equal(g.StockRemaining(), 0)
	is.NoErr(g.Pass())
	is.Equal(g.Playing(), Playing)
	is.True(!g.Blocked())
	is.Equal(g.PlayerOnTurn(), 0)

	moves, err := g.EnumerateMoves(context.Background(), 0)
	is.NoErr(err)
	is.Equal(len(moves), 1)
	is.NoErr(g.ApplyMove(0, moves[0]))
	is.Equal(g.Playing(), GameOver)
	is.Equal(g.Winner(), 0)
	is.True(!g.Blocked())
}

func TestLastDrawThenBlocked(t *testing.T) {
	is := is.New(t)
	rules := &GameRules{players: 2, handSize: 2, maxRank: 3, copies: 1, jokers: 0}
	g, err := NewGame(rules, WithSeed(testSeed))
	is.NoErr(err)
	g.StartGame()
	is.NoErr(g.SetHand(0, nil))
	is.NoErr(g.SetHand(1, nil))
	is.NoErr(g.SetHand(0, tile.MustParseList("B2")))
	is.NoErr(g.SetHand(1, tile.MustParseList("R1 R2 Y1 Y2 Y3 K1 K2 K3 B3 R3")))
	is.Equal(g.StockRemaining(), 1)

	is.NoErr(g.NextPlayer(false))
	is.NoErr(g.Pass())
	is.Equal(g.Playing(), Playing)
	is.NoErr(g.Pass())
	is.True(g.Blocked())
	// seat 0 holds B2 B1, worth 3
	is.Equal(g.Winner(), 0)
}

func TestCopyShufflesLikeOriginal(t *testing.T) {
	is := is.New(t)
	g := newTestGame(t)
	is.NoErr(g.SetHand(0, tile.MustParseList("R1 R2 R3")))
	c := g.Copy()

	hand := tile.MustParseList("B5 B6 B7")
	is.NoErr(g.SetHand(1, hand))
	is.NoErr(c.SetHand(1, hand))
	is.Equal(g.stock, c.stock)

	is.NoErr(g.SetTable(meld.MustParseTable("Y9 Y10 Y11")))
	is.NoErr(c.SetTable(meld.MustParseTable("Y9 Y10 Y11")))
	is.Equal(g.stock, c.stock)
}
