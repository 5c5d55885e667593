package move

import (
	"fmt"

	"github.com/tilebench/rummy/meld"
	"github.com/tilebench/rummy/tile"
)

// Move is a lay-down: the table layout after the move and the hand tiles it
// consumed. Passing and drawing are not moves; the game handles them when
// the turn ends.
type Move struct {
	table       meld.Table
	used        []tile.Tile
	tilesPlayed int
	value       int
	equity      float64
}

// NewLayDown creates a lay-down move. The table and tile slices are copied.
func NewLayDown(table meld.Table, used []tile.Tile) *Move {
	u := make([]tile.Tile, len(used))
	copy(u, used)
	return &Move{
		table:       table.Clone(),
		used:        u,
		tilesPlayed: len(u),
		value:       tile.SumValue(u),
	}
}

// Table is the new table layout.
func (m *Move) Table() meld.Table {
	return m.table
}

// Used are the hand tiles this move puts on the table.
func (m *Move) Used() []tile.Tile {
	return m.used
}

func (m *Move) TilesPlayed() int {
	return m.tilesPlayed
}

// Value is the total face value of the used tiles, jokers counting as
// tile.JokerValue.
func (m *Move) Value() int {
	return m.value
}

// Equity is whatever a move selector decided this move is worth.
func (m *Move) Equity() float64 {
	return m.equity
}

func (m *Move) SetEquity(e float64) {
	m.equity = e
}

// Signature is the canonical signature of the resulting table.
func (m *Move) Signature() string {
	return m.table.Signature()
}

// ShortDescription lists the tiles laid down, e.g. "+R1 R2".
func (m *Move) ShortDescription() string {
	return "+" + tile.ListString(m.used)
}

// String provides a string just for debugging purposes.
func (m *Move) String() string {
	return fmt.Sprintf("<%p action: lay-down used: %v tp: %v table: %v equity: %.3f>",
		m, tile.ListString(m.used), m.tilesPlayed, m.table, m.equity)
}
