package tile

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Counts returns the multiplicity of every distinct tile value.
func Counts(tiles []Tile) map[Tile]int {
	return lo.CountValues(tiles)
}

// Distinct returns the distinct values among tiles, sorted.
func Distinct(tiles []Tile) []Tile {
	d := lo.Uniq(tiles)
	Sort(d)
	return d
}

// Subtract removes sub from `from`, one physical copy per entry in sub, and
// returns what is left in the original order. It returns an error if sub is
// not a sub-multiset of from.
func Subtract(from, sub []Tile) ([]Tile, error) {
	need := Counts(sub)
	left := make([]Tile, 0, len(from))
	for _, t := range from {
		if need[t] > 0 {
			need[t]--
			continue
		}
		left = append(left, t)
	}
	var missing []string
	for _, t := range Distinct(sub) {
		if n := need[t]; n > 0 {
			missing = append(missing, fmt.Sprintf("%v (%d missing)", t, n))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("tiles not present: %s", strings.Join(missing, ", "))
	}
	return left, nil
}

// ContainsAll reports whether sub is a sub-multiset of from.
func ContainsAll(from, sub []Tile) bool {
	have := Counts(from)
	for _, t := range sub {
		if have[t] == 0 {
			return false
		}
		have[t]--
	}
	return true
}

// Equal reports multiset equality.
func Equal(a, b []Tile) bool {
	if len(a) != len(b) {
		return false
	}
	return ContainsAll(a, b)
}

// SumValue is the total penalty value of the tiles.
func SumValue(tiles []Tile) int {
	return lo.SumBy(tiles, func(t Tile) int { return t.Value() })
}

// Pool builds a full game pool: `copies` of every rank in 1..maxRank for
// each suit, followed by the jokers. The result is not shuffled.
func Pool(maxRank, copies, jokers int) []Tile {
	pool := make([]Tile, 0, PoolSize(maxRank, copies, jokers))
	for i := 0; i < copies; i++ {
		for _, c := range Suits {
			for r := 1; r <= maxRank; r++ {
				pool = append(pool, New(r, c))
			}
		}
	}
	for i := 0; i < jokers; i++ {
		pool = append(pool, NewJoker())
	}
	return pool
}

func PoolSize(maxRank, copies, jokers int) int {
	return copies*len(Suits)*maxRank + jokers
}
