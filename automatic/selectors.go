package automatic

import (
	"fmt"

	"lukechampine.com/frand"

	"github.com/tilebench/rummy/move"
)

const (
	MostTilesSelector = "most-tiles"
	RandomSelector    = "random"
)

// MoveSelector picks one of the generated lay-downs. moves is never empty.
type MoveSelector interface {
	Name() string
	Select(moves []*move.Move) *move.Move
}

// NewSelector builds a selector by name. The seed makes random choices
// reproducible.
func NewSelector(name string, seed [32]byte) (MoveSelector, error) {
	switch name {
	case MostTilesSelector:
		return mostTiles{}, nil
	case RandomSelector:
		return &randomSelector{rng: frand.NewCustom(seed[:], 1024, 12)}, nil
	}
	return nil, fmt.Errorf("unknown selector %q", name)
}

// mostTiles sheds as many tiles as it can, and among those the most
// valuable ones. The earliest move wins a tie.
type mostTiles struct{}

func (mostTiles) Name() string { return MostTilesSelector }

func (mostTiles) Select(moves []*move.Move) *move.Move {
	var best *move.Move
	for _, m := range moves {
		m.SetEquity(float64(m.TilesPlayed()*1000 + m.Value()))
		if best == nil || m.Equity() > best.Equity() {
			best = m
		}
	}
	return best
}

type randomSelector struct {
	rng *frand.RNG
}

func (*randomSelector) Name() string { return RandomSelector }

func (r *randomSelector) Select(moves []*move.Move) *move.Move {
	return moves[r.rng.Intn(len(moves))]
}
