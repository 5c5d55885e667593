// Package movegen finds every distinct table a player can reach by laying
// down part of their hand. It filters out hopeless hand tiles, then asks the
// solver for one witness layout per sub-multiset of what is left.
package movegen

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/tilebench/rummy/meld"
	"github.com/tilebench/rummy/meldgen"
	"github.com/tilebench/rummy/move"
	"github.com/tilebench/rummy/solver"
	"github.com/tilebench/rummy/tile"
)

// MoveGenerator is what the game needs from a move generator.
type MoveGenerator interface {
	PossibleMoves(ctx context.Context, hand []tile.Tile, table meld.Table) ([]*move.Move, error)
}

// Generator is the default MoveGenerator. It holds no per-call state and is
// safe for concurrent use.
type Generator struct {
	threads   int
	maxTiles  int
	nodeLimit int
}

type Option func(*Generator)

// WithThreads searches subsets on up to n goroutines. The result does not
// depend on n.
func WithThreads(n int) Option {
	return func(g *Generator) {
		g.threads = n
	}
}

// WithMaxTiles caps the number of hand tiles a single move may lay down.
// Zero means no cap.
func WithMaxTiles(n int) Option {
	return func(g *Generator) {
		g.maxTiles = n
	}
}

// WithNodeLimit bounds every solver call. A subset whose search runs out of
// nodes counts as having no move.
func WithNodeLimit(n int) Option {
	return func(g *Generator) {
		g.nodeLimit = n
	}
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{threads: 1}
	for _, o := range opts {
		o(g)
	}
	if g.threads < 1 {
		g.threads = 1
	}
	return g
}

// PossibleMoves returns one move per distinct reachable table layout. Moves
// that lay down fewer tiles come first. If ctx is cancelled the moves found
// so far are returned with the context error.
func (g *Generator) PossibleMoves(ctx context.Context, hand []tile.Tile,
	table meld.Table) ([]*move.Move, error) {

	playable, unplayable := PreFilterUnplayable(hand, table)
	if len(playable) == 0 {
		log.Debug().Int("hand", len(hand)).Msg("no-playable-tiles")
		return nil, nil
	}

	universe := meldgen.Generate(append(table.Tiles(), playable...))
	s := solver.New(solver.WithCandidates(universe), solver.WithNodeLimit(g.nodeLimit))
	subsets := subMultisets(playable, g.maxTiles)

	log.Debug().Int("playable", len(playable)).Int("unplayable", len(unplayable)).
		Int("subsets", len(subsets)).Int("melds", len(universe)).Msg("possible-moves")

	witnesses := make([]meld.Table, len(subsets))
	var err error
	if g.threads == 1 {
		err = g.searchSerial(ctx, s, subsets, table, witnesses)
	} else {
		err = g.searchThreaded(ctx, s, subsets, table, witnesses)
	}

	seen := map[string]struct{}{}
	var moves []*move.Move
	for i, w := range witnesses {
		if w == nil {
			continue
		}
		sig := w.Signature()
		if _, ok := seen[sig]; ok {
			continue
		}
		seen[sig] = struct{}{}
		moves = append(moves, move.NewLayDown(w, subsets[i]))
	}
	log.Debug().Int("moves", len(moves)).Msg("generated-moves")
	return moves, err
}

// witness runs the first-only search for one subset. Running out of nodes
// is not an error for the caller; it just means no move for this subset.
func (g *Generator) witness(ctx context.Context, s *solver.Solver, sub []tile.Tile,
	table meld.Table) (meld.Table, error) {

	layouts, err := s.FindAllValidMoves(ctx, sub, table, true)
	if errors.Is(err, solver.ErrNodeLimit) {
		log.Debug().Str("subset", tile.ListString(sub)).Msg("node-limit")
		err = nil
	}
	if err != nil {
		return nil, err
	}
	if len(layouts) == 0 {
		return nil, nil
	}
	return layouts[0], nil
}

func (g *Generator) searchSerial(ctx context.Context, s *solver.Solver, subsets [][]tile.Tile,
	table meld.Table, witnesses []meld.Table) error {

	for i, sub := range subsets {
		w, err := g.witness(ctx, s, sub, table)
		if err != nil {
			return err
		}
		witnesses[i] = w
	}
	return nil
}

// searchThreaded fills witnesses using a bounded errgroup. Each goroutine
// writes only its own slot so the merge can keep enumeration order.
func (g *Generator) searchThreaded(ctx context.Context, s *solver.Solver, subsets [][]tile.Tile,
	table meld.Table, witnesses []meld.Table) error {

	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(g.threads)
	for i, sub := range subsets {
		i, sub := i, sub
		if ectx.Err() != nil {
			break
		}
		eg.Go(func() error {
			w, err := g.witness(ectx, s, sub, table)
			if err != nil {
				return err
			}
			witnesses[i] = w
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	// the loop may have stopped early on the parent context
	return ctx.Err()
}
