// Package tile defines the basic tile value type shared by the validator,
// the meld generator, the solver and the game engine.
package tile

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Color is the suit of a tile. Joker is a color of its own; the rank of a
// joker tile carries no meaning.
type Color uint8

const (
	Red Color = iota
	Blue
	Yellow
	Black
	Joker
)

// Suits lists the four non-joker colors in tile order.
var Suits = [...]Color{Red, Blue, Yellow, Black}

// JokerValue is the hand penalty for a joker left over at the end of a game.
const JokerValue = 30

var ErrBadTile = errors.New("bad tile")

var colorLetters = map[Color]byte{
	Red:    'R',
	Blue:   'B',
	Yellow: 'Y',
	Black:  'K',
	Joker:  'J',
}

func (c Color) String() string {
	switch c {
	case Red:
		return "Red"
	case Blue:
		return "Blue"
	case Yellow:
		return "Yellow"
	case Black:
		return "Black"
	case Joker:
		return "Joker"
	}
	return "Color(" + strconv.Itoa(int(c)) + ")"
}

// Tile is a (rank, color) value. Tiles compare equal by value; a game pool
// holds value-equal duplicates, so collections of tiles are multisets.
type Tile struct {
	Rank  int
	Color Color
}

// New creates a tile. Jokers are normalized to rank 0 so that every joker
// is value-equal to every other joker.
func New(rank int, c Color) Tile {
	if c == Joker {
		return Tile{Color: Joker}
	}
	return Tile{Rank: rank, Color: c}
}

// NewJoker returns the joker tile.
func NewJoker() Tile {
	return Tile{Color: Joker}
}

func (t Tile) IsJoker() bool {
	return t.Color == Joker
}

// Value is the penalty the tile carries when left in a hand.
func (t Tile) Value() int {
	if t.IsJoker() {
		return JokerValue
	}
	return t.Rank
}

// Less orders tiles by rank, then by color.
func (t Tile) Less(o Tile) bool {
	if t.Rank != o.Rank {
		return t.Rank < o.Rank
	}
	return t.Color < o.Color
}

// Compare returns -1, 0 or 1.
func (t Tile) Compare(o Tile) int {
	switch {
	case t.Less(o):
		return -1
	case o.Less(t):
		return 1
	}
	return 0
}

func (t Tile) String() string {
	if t.IsJoker() {
		return "J"
	}
	l, ok := colorLetters[t.Color]
	if !ok {
		l = '?'
	}
	return string(l) + strconv.Itoa(t.Rank)
}

// Parse turns a string such as R7, b12, K1 or J into a tile. K stands for
// black.
func Parse(s string) (Tile, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return Tile{}, fmt.Errorf("%w: empty", ErrBadTile)
	}
	if s == "J" || s == "JK" || s == "*" {
		return NewJoker(), nil
	}
	var c Color
	switch s[0] {
	case 'R':
		c = Red
	case 'B':
		c = Blue
	case 'Y':
		c = Yellow
	case 'K':
		c = Black
	default:
		return Tile{}, fmt.Errorf("%w: unknown color in %q", ErrBadTile, s)
	}
	rank, err := strconv.Atoi(s[1:])
	if err != nil || rank < 1 {
		return Tile{}, fmt.Errorf("%w: bad rank in %q", ErrBadTile, s)
	}
	return New(rank, c), nil
}

// ParseList parses a whitespace- or comma-separated list of tiles.
func ParseList(s string) ([]Tile, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	tiles := make([]Tile, 0, len(fields))
	for _, f := range fields {
		t, err := Parse(f)
		if err != nil {
			return nil, err
		}
		tiles = append(tiles, t)
	}
	return tiles, nil
}

// MustParseList is ParseList for literals known to be good. It panics on a
// bad tile and is meant for tests and fixed tables.
func MustParseList(s string) []Tile {
	tiles, err := ParseList(s)
	if err != nil {
		panic(err)
	}
	return tiles
}

// ListString renders tiles space-separated, in the order given.
func ListString(tiles []Tile) string {
	var sb strings.Builder
	for i, t := range tiles {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.String())
	}
	return sb.String()
}

// Sort sorts tiles in place.
func Sort(tiles []Tile) {
	sort.Slice(tiles, func(i, j int) bool {
		return tiles[i].Less(tiles[j])
	})
}

// Sorted returns a sorted copy.
func Sorted(tiles []Tile) []Tile {
	c := make([]Tile, len(tiles))
	copy(c, tiles)
	Sort(c)
	return c
}
