package game

import (
	"encoding/binary"
	"fmt"

	"lukechampine.com/frand"

	"github.com/tilebench/rummy/meld"
	"github.com/tilebench/rummy/tile"
)

// Hand returns a copy of the player's hand. It panics on a bad index, like a
// slice would.
func (g *Game) Hand(player int) []tile.Tile {
	h := make([]tile.Tile, len(g.players[player].hand))
	copy(h, g.players[player].hand)
	return h
}

// Table returns a deep copy of the table.
func (g *Game) Table() meld.Table {
	return g.table.Clone()
}

func (g *Game) Rules() *GameRules     { return g.rules }
func (g *Game) Seed() [32]byte        { return g.seed }
func (g *Game) StockRemaining() int   { return len(g.stock) }
func (g *Game) PlayerOnTurn() int     { return g.onturn }
func (g *Game) NumPlayers() int       { return len(g.players) }
func (g *Game) Playing() PlayState    { return g.playing }
func (g *Game) Turn() int             { return g.turnnum }
func (g *Game) PlacedThisTurn() bool  { return g.placedThisTurn }
func (g *Game) Blocked() bool         { return g.blocked }
func (g *Game) Nickname(p int) string { return g.players[p].nickname }

// Winner is the winning player, or NoWinner.
func (g *Game) Winner() int {
	return g.winner
}

// HandValue is the penalty left in a hand: face value per tile, jokers
// counting tile.JokerValue.
func (g *Game) HandValue(player int) int {
	return tile.SumValue(g.players[player].hand)
}

// TotalTiles counts every tile in the stock, the hands and on the table. It
// equals Rules().PoolSize() for the whole game.
func (g *Game) TotalTiles() int {
	n := len(g.stock) + g.table.NumTiles()
	for _, p := range g.players {
		n += len(p.hand)
	}
	return n
}

// Copy returns a deep copy that can be played on independently.
func (g *Game) Copy() *Game {
	c := *g
	c.stock = make([]tile.Tile, len(g.stock))
	copy(c.stock, g.stock)
	c.table = g.table.Clone()
	c.players = make([]*playerState, len(g.players))
	for i, p := range g.players {
		c.players[i] = p.copy()
	}
	return &c
}

// SetHand gives the player exactly these tiles. The old hand goes back to
// the stock and the new tiles are taken out of it, so the tile count stays
// the same. The stock is reshuffled afterwards.
func (g *Game) SetHand(player int, tiles []tile.Tile) error {
	if err := g.checkPlayer(player); err != nil {
		return err
	}
	p := g.players[player]
	stock := append(g.stock, p.hand...)
	left, err := tile.Subtract(stock, tiles)
	if err != nil {
		return fmt.Errorf("cannot set hand: %w", err)
	}
	g.stock = left
	p.hand = append([]tile.Tile(nil), tiles...)
	g.shuffleStock()
	return nil
}

// SetTable lays out a table the same way SetHand deals a hand: the old
// table goes back to the stock and the new table's tiles come out of it.
func (g *Game) SetTable(t meld.Table) error {
	stock := append(g.stock, g.table.Tiles()...)
	left, err := tile.Subtract(stock, t.Tiles())
	if err != nil {
		return fmt.Errorf("cannot set table: %w", err)
	}
	g.stock = left
	g.table = t.Clone()
	g.shuffleStock()
	return nil
}

// shuffleStock seeds shuffle n from the game seed with n mixed into its
// last word. The first shuffle uses the seed as is. A copy carries the
// counter, so it shuffles the same way the original would.
func (g *Game) shuffleStock() {
	seed := g.seed
	last := binary.LittleEndian.Uint64(seed[24:])
	binary.LittleEndian.PutUint64(seed[24:], last^uint64(g.shuffles))
	g.shuffles++
	rng := frand.NewCustom(seed[:], rngBufSize, rngRounds)
	rng.Shuffle(len(g.stock), func(i, j int) {
		g.stock[i], g.stock[j] = g.stock[j], g.stock[i]
	})
}
