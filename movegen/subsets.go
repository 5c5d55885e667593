package movegen

import "github.com/tilebench/rummy/tile"

// subMultisets lists every distinct non-empty sub-multiset of tiles with at
// most maxSize tiles (all sizes when maxSize <= 0). Smaller subsets come
// first; within a size the order follows the sorted distinct values.
// Value-equal duplicates never produce the same subset twice.
func subMultisets(tiles []tile.Tile, maxSize int) [][]tile.Tile {
	distinct := tile.Distinct(tiles)
	counts := tile.Counts(tiles)
	if maxSize <= 0 || maxSize > len(tiles) {
		maxSize = len(tiles)
	}

	var out [][]tile.Tile
	cur := make([]tile.Tile, 0, maxSize)
	var rec func(i, left int)
	rec = func(i, left int) {
		if left == 0 {
			sub := make([]tile.Tile, len(cur))
			copy(sub, cur)
			out = append(out, sub)
			return
		}
		if i == len(distinct) {
			return
		}
		for n := min(counts[distinct[i]], left); n >= 0; n-- {
			for k := 0; k < n; k++ {
				cur = append(cur, distinct[i])
			}
			rec(i+1, left-n)
			cur = cur[:len(cur)-n]
		}
	}
	for r := 1; r <= maxSize; r++ {
		rec(0, r)
	}
	return out
}
