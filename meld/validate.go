// Package meld holds the meld and table types and the pure predicates that
// decide whether a collection of tiles is a legal group, run, meld or table.
package meld

import (
	"github.com/tilebench/rummy/tile"
)

const (
	MinMeldSize  = 3
	MaxGroupSize = 4
)

// IsValidGroup reports whether tiles form a group: 3 or 4 tiles, every
// non-joker of the same rank and no two non-jokers of the same color.
// Jokers fill the remaining slots.
func IsValidGroup(tiles []tile.Tile) bool {
	if len(tiles) < MinMeldSize || len(tiles) > MaxGroupSize {
		return false
	}
	rank := -1
	var seen [tile.Joker]bool
	for _, t := range tiles {
		if t.IsJoker() {
			continue
		}
		if rank == -1 {
			rank = t.Rank
		} else if t.Rank != rank {
			return false
		}
		if int(t.Color) >= len(seen) || seen[t.Color] {
			return false
		}
		seen[t.Color] = true
	}
	return true
}

// IsValidRun reports whether tiles form a run: at least 3 tiles, every
// non-joker of one color with pairwise distinct ranks, and the rank span of
// the non-jokers no longer than the run. Jokers fill gaps or extend either
// end. A run needs at least one non-joker.
func IsValidRun(tiles []tile.Tile) bool {
	if len(tiles) < MinMeldSize {
		return false
	}
	var (
		color     tile.Color
		lo, hi    int
		nonJokers int
		ranks     = make(map[int]struct{}, len(tiles))
	)
	for _, t := range tiles {
		if t.IsJoker() {
			continue
		}
		if nonJokers == 0 {
			color = t.Color
			lo, hi = t.Rank, t.Rank
		} else if t.Color != color {
			return false
		}
		if _, dup := ranks[t.Rank]; dup {
			return false
		}
		ranks[t.Rank] = struct{}{}
		lo = min(lo, t.Rank)
		hi = max(hi, t.Rank)
		nonJokers++
	}
	if nonJokers == 0 {
		return false
	}
	return hi-lo+1 <= len(tiles)
}

// IsValidMeld is true for a valid group or a valid run.
func IsValidMeld(tiles []tile.Tile) bool {
	return IsValidGroup(tiles) || IsValidRun(tiles)
}

// IsTableValid is true when the table is empty or every meld on it is valid.
func IsTableValid(t Table) bool {
	for _, m := range t {
		if !IsValidMeld(m) {
			return false
		}
	}
	return true
}
