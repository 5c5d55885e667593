package meld

import (
	"sort"
	"strings"

	"github.com/cespare/xxhash"

	"github.com/tilebench/rummy/tile"
)

// A Meld is a group or a run. Tile order inside a meld carries no meaning;
// Canonical gives the sorted form used for comparison.
type Meld []tile.Tile

// Canonical returns a sorted copy of the meld.
func (m Meld) Canonical() Meld {
	return Meld(tile.Sorted(m))
}

// Key is a stable string for the canonical meld.
func (m Meld) Key() string {
	return tile.ListString(m.Canonical())
}

func (m Meld) String() string {
	return "[" + tile.ListString(m) + "]"
}

// Compare orders two melds lexicographically, tile by tile, a shorter prefix
// first. Both melds are expected to be canonical already.
func Compare(a, b Meld) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := a[i].Compare(b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// SortMelds sorts canonical melds in place.
func SortMelds(melds []Meld) {
	sort.Slice(melds, func(i, j int) bool {
		return Compare(melds[i], melds[j]) < 0
	})
}

// A Table is the list of melds laid out on the table. Display order is kept
// as is; two tables are the same layout when their signatures match.
type Table []Meld

// Tiles flattens the table into one tile multiset.
func (t Table) Tiles() []tile.Tile {
	n := 0
	for _, m := range t {
		n += len(m)
	}
	tiles := make([]tile.Tile, 0, n)
	for _, m := range t {
		tiles = append(tiles, m...)
	}
	return tiles
}

// NumTiles counts the tiles on the table.
func (t Table) NumTiles() int {
	n := 0
	for _, m := range t {
		n += len(m)
	}
	return n
}

// Clone deep-copies the table.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	c := make(Table, len(t))
	for i, m := range t {
		c[i] = make(Meld, len(m))
		copy(c[i], m)
	}
	return c
}

// Canonical sorts the tiles inside every meld and then sorts the melds.
func (t Table) Canonical() Table {
	c := make(Table, len(t))
	for i, m := range t {
		c[i] = m.Canonical()
	}
	SortMelds(c)
	return c
}

// Signature is the canonical string form of the table. Two layouts are the
// same exactly when their signatures are equal.
func (t Table) Signature() string {
	c := t.Canonical()
	keys := make([]string, len(c))
	for i, m := range c {
		keys[i] = tile.ListString(m)
	}
	return strings.Join(keys, "|")
}

// Hash is a 64-bit hash of the signature.
func (t Table) Hash() uint64 {
	return xxhash.Sum64String(t.Signature())
}

// SameLayout reports whether both tables hold the same melds.
func SameLayout(a, b Table) bool {
	return a.Signature() == b.Signature()
}

func (t Table) String() string {
	if len(t) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(t))
	for i, m := range t {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

// ParseTable parses melds separated by '|' or ';', e.g. "B2 B3 B4 | R7 Y7 K7".
func ParseTable(s string) (Table, error) {
	var t Table
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ';' }) {
		tiles, err := tile.ParseList(part)
		if err != nil {
			return nil, err
		}
		if len(tiles) == 0 {
			continue
		}
		t = append(t, Meld(tiles))
	}
	return t, nil
}

// MustParseTable is ParseTable for literals known to be good.
func MustParseTable(s string) Table {
	t, err := ParseTable(s)
	if err != nil {
		panic(err)
	}
	return t
}
