package movegen

import (
	"github.com/tilebench/rummy/meld"
	"github.com/tilebench/rummy/tile"
)

// PreFilterUnplayable splits the hand into tiles that might take part in a
// new meld and tiles that cannot. A tile is kept when the hand and table
// together hold at least two partners, counting copies and jokers, for a
// group or for a three-tile run window around it. The check
// over-approximates: it never drops a tile that some full layout could use.
// Both outputs keep hand order.
func PreFilterUnplayable(hand []tile.Tile, table meld.Table) (playable, unplayable []tile.Tile) {
	counts := tile.Counts(append(table.Tiles(), hand...))
	jokers := counts[tile.NewJoker()]

	verdicts := map[tile.Tile]bool{}
	for _, t := range hand {
		ok, cached := verdicts[t]
		if !cached {
			ok = t.IsJoker() || canGroup(t, counts, jokers) || canRun(t, counts, jokers)
			verdicts[t] = ok
		}
		if ok {
			playable = append(playable, t)
		} else {
			unplayable = append(unplayable, t)
		}
	}
	return playable, unplayable
}

func canGroup(t tile.Tile, counts map[tile.Tile]int, jokers int) bool {
	others := 0
	for _, c := range tile.Suits {
		if c != t.Color {
			others += counts[tile.New(t.Rank, c)]
		}
	}
	return others+jokers >= 2
}

// runWindows are the rank offsets of the other two slots of every
// three-tile window containing the tile.
var runWindows = [3][2]int{{-2, -1}, {-1, 1}, {1, 2}}

func canRun(t tile.Tile, counts map[tile.Tile]int, jokers int) bool {
	count := func(rank int) int {
		if rank < 1 {
			return 0
		}
		return counts[tile.New(rank, t.Color)]
	}
	for _, w := range runWindows {
		if count(t.Rank+w[0])+count(t.Rank+w[1])+jokers >= 2 {
			return true
		}
	}
	return false
}
