// Package meldgen enumerates every meld that can be built out of a tile
// multiset. It is the main cost center of move generation, so callers that
// search many sub-multisets of one pool should generate once over the whole
// pool and narrow the result with Filter.
package meldgen

import (
	"sort"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/tilebench/rummy/meld"
	"github.com/tilebench/rummy/tile"
)

// Generate returns every distinct meld, in canonical form, whose tiles fit
// inside the given multiset. The result is sorted with meld.Compare.
func Generate(tiles []tile.Tile) []meld.Meld {
	if len(tiles) < meld.MinMeldSize {
		return nil
	}
	counts := tile.Counts(tiles)
	jokers := counts[tile.NewJoker()]

	byRank := map[int][]tile.Color{}
	byColor := map[tile.Color][]int{}
	for _, t := range tile.Distinct(tiles) {
		if t.IsJoker() {
			continue
		}
		// Distinct is sorted by rank then color, so both lists come out
		// ordered.
		byRank[t.Rank] = append(byRank[t.Rank], t.Color)
		byColor[t.Color] = append(byColor[t.Color], t.Rank)
	}

	seen := map[string]struct{}{}
	var melds []meld.Meld
	add := func(m meld.Meld) {
		m = m.Canonical()
		k := m.Key()
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		melds = append(melds, m)
	}

	genGroups(byRank, jokers, add)
	genRuns(byColor, jokers, add)

	meld.SortMelds(melds)
	log.Trace().Int("tiles", len(tiles)).Int("melds", len(melds)).Msg("generated-melds")
	return melds
}

func withJokers(tiles []tile.Tile, n int) meld.Meld {
	m := make(meld.Meld, 0, len(tiles)+n)
	m = append(m, tiles...)
	for i := 0; i < n; i++ {
		m = append(m, tile.NewJoker())
	}
	return m
}

// choose returns all k-subsets of 0..n-1. k == 0 yields the single empty
// subset.
func choose(n, k int) [][]int {
	if k < 0 || k > n {
		return nil
	}
	return combin.Combinations(n, k)
}

func genGroups(byRank map[int][]tile.Color, jokers int, add func(meld.Meld)) {
	ranks := make([]int, 0, len(byRank))
	for r := range byRank {
		ranks = append(ranks, r)
	}
	sort.Ints(ranks)

	for _, r := range ranks {
		colors := byRank[r]
		for s := 1; s <= min(len(colors), meld.MaxGroupSize); s++ {
			for _, idxs := range choose(len(colors), s) {
				base := make([]tile.Tile, len(idxs))
				for i, ci := range idxs {
					base[i] = tile.New(r, colors[ci])
				}
				for g := max(0, meld.MinMeldSize-s); g <= min(jokers, meld.MaxGroupSize-s); g++ {
					m := withJokers(base, g)
					if meld.IsValidGroup(m) {
						add(m)
					}
				}
			}
		}
	}
	// A group made of jokers alone is only possible with a large joker
	// count.
	for g := meld.MinMeldSize; g <= min(jokers, meld.MaxGroupSize); g++ {
		add(withJokers(nil, g))
	}
}

func genRuns(byColor map[tile.Color][]int, jokers int, add func(meld.Meld)) {
	for _, c := range tile.Suits {
		ranks := byColor[c]
		for i := range ranks {
			for j := i; j < len(ranks); j++ {
				span := ranks[j] - ranks[i] + 1
				// ranks inside [ranks[i], ranks[j]] with no tile at all
				gaps := span - (j - i + 1)
				if gaps > jokers {
					// gaps only grow as j moves right
					break
				}
				interior := 0
				if j > i {
					interior = j - i - 1
				}
				for omit := 0; omit <= interior && gaps+omit <= jokers; omit++ {
					for _, dropped := range choose(interior, omit) {
						base := runTiles(c, ranks, i, j, dropped)
						for k := gaps + omit; k <= jokers; k++ {
							if len(base)+k < meld.MinMeldSize {
								continue
							}
							m := withJokers(base, k)
							if meld.IsValidRun(m) {
								add(m)
							}
						}
					}
				}
			}
		}
	}
}

// runTiles builds the non-joker part of a run: ranks[i], ranks[j] and every
// rank strictly between them except the interior offsets in dropped.
func runTiles(c tile.Color, ranks []int, i, j int, dropped []int) []tile.Tile {
	skip := make(map[int]bool, len(dropped))
	for _, d := range dropped {
		skip[i+1+d] = true
	}
	tiles := make([]tile.Tile, 0, j-i+1)
	for x := i; x <= j; x++ {
		if skip[x] {
			continue
		}
		tiles = append(tiles, tile.New(ranks[x], c))
	}
	return tiles
}

// Filter returns the melds of universe that fit inside the tile multiset.
// Order is preserved.
func Filter(universe []meld.Meld, tiles []tile.Tile) []meld.Meld {
	counts := tile.Counts(tiles)
	out := make([]meld.Meld, 0, len(universe))
	for _, m := range universe {
		if fits(m, counts) {
			out = append(out, m)
		}
	}
	return out
}

func fits(m meld.Meld, counts map[tile.Tile]int) bool {
	// canonical melds keep equal tiles adjacent
	for i := 0; i < len(m); {
		j := i
		for j < len(m) && m[j] == m[i] {
			j++
		}
		if counts[m[i]] < j-i {
			return false
		}
		i = j
	}
	return true
}
