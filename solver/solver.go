// Package solver partitions a tile multiset into melds that cover it
// exactly. It is the expensive half of move generation: given a hand and a
// table it finds every layout that puts all of those tiles on the table.
package solver

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/tilebench/rummy/meld"
	"github.com/tilebench/rummy/meldgen"
	"github.com/tilebench/rummy/tile"
)

// ErrNodeLimit is returned when the search visits more nodes than allowed.
var ErrNodeLimit = errors.New("solver node limit reached")

const ctxCheckInterval = 1024

// Solver runs exact-cover searches. The zero value is ready to use and has
// no node limit.
type Solver struct {
	nodeLimit int
	universe  []meld.Meld
}

type Option func(*Solver)

// WithNodeLimit bounds the number of search nodes per call. Zero or less
// means unbounded.
func WithNodeLimit(n int) Option {
	return func(s *Solver) {
		s.nodeLimit = n
	}
}

// WithCandidates supplies a precomputed meld universe built over a superset
// of every pool the solver will see. It is narrowed to each pool with
// meldgen.Filter instead of generating melds again.
func WithCandidates(universe []meld.Meld) Option {
	return func(s *Solver) {
		s.universe = universe
	}
}

func New(opts ...Option) *Solver {
	s := &Solver{}
	for _, o := range opts {
		o(s)
	}
	return s
}

// FindAllValidMoves runs a default solver.
func FindAllValidMoves(ctx context.Context, hand []tile.Tile, table meld.Table,
	firstOnly bool) ([]meld.Table, error) {

	return New().FindAllValidMoves(ctx, hand, table, firstOnly)
}

// FindAllValidMoves returns every distinct layout of hand ∪ table into valid
// melds, excluding the current table layout. Every returned layout puts all
// of the hand tiles down. With firstOnly the search stops at the first
// accepted layout. Layouts are returned in canonical form, in the order they
// were found.
//
// If the context is cancelled or the node limit is hit, the layouts found so
// far are returned together with the error.
func (s *Solver) FindAllValidMoves(ctx context.Context, hand []tile.Tile, table meld.Table,
	firstOnly bool) ([]meld.Table, error) {

	pool := append(table.Tiles(), hand...)
	if len(pool) == 0 || len(hand) == 0 {
		return nil, nil
	}

	var cands []meld.Meld
	if s.universe != nil {
		cands = meldgen.Filter(s.universe, pool)
	} else {
		cands = meldgen.Generate(pool)
	}
	if len(cands) == 0 {
		return nil, nil
	}

	st := newSearch(ctx, pool, cands)
	st.nodeLimit = s.nodeLimit
	st.firstOnly = firstOnly
	st.tableSig = table.Signature()

	st.solve()

	log.Trace().Int("pool", len(pool)).Int("candidates", len(cands)).
		Int("nodes", st.nodes).Int("layouts", len(st.found)).Msg("exact-cover")
	return st.found, st.err
}

// need is the count of one tile id a candidate meld requires.
type need struct {
	id, n int
}

type search struct {
	ctx       context.Context
	firstOnly bool
	nodeLimit int
	tableSig  string

	// Tile values are mapped to dense ids in sorted order, so the lowest id
	// wins ties in the most-constrained choice.
	counts    []int
	remaining int
	melds     []meld.Meld
	needs     [][]need
	byTile    [][]int

	chosen []int
	nodes  int
	seen   map[string]struct{}
	found  []meld.Table
	err    error
	done   bool
}

func newSearch(ctx context.Context, pool []tile.Tile, cands []meld.Meld) *search {
	distinct := tile.Distinct(pool)
	ids := make(map[tile.Tile]int, len(distinct))
	for i, t := range distinct {
		ids[t] = i
	}
	counts := make([]int, len(distinct))
	for _, t := range pool {
		counts[ids[t]]++
	}

	st := &search{
		ctx:       ctx,
		counts:    counts,
		remaining: len(pool),
		melds:     cands,
		needs:     make([][]need, len(cands)),
		byTile:    make([][]int, len(distinct)),
		seen:      map[string]struct{}{},
	}
	for ci, m := range cands {
		// canonical melds keep equal tiles adjacent
		for i := 0; i < len(m); {
			j := i
			for j < len(m) && m[j] == m[i] {
				j++
			}
			id := ids[m[i]]
			st.needs[ci] = append(st.needs[ci], need{id: id, n: j - i})
			st.byTile[id] = append(st.byTile[id], ci)
			i = j
		}
	}
	return st
}

func (st *search) feasible(ci int) bool {
	for _, nd := range st.needs[ci] {
		if st.counts[nd.id] < nd.n {
			return false
		}
	}
	return true
}

func (st *search) apply(ci, sign int) {
	for _, nd := range st.needs[ci] {
		st.counts[nd.id] -= sign * nd.n
		st.remaining -= sign * nd.n
	}
}

// pick returns the tile id still to cover with the fewest feasible melds,
// and that count.
func (st *search) pick() (int, int) {
	best, bestN := -1, 0
	for id, c := range st.counts {
		if c == 0 {
			continue
		}
		n := 0
		for _, ci := range st.byTile[id] {
			if st.feasible(ci) {
				n++
			}
		}
		if best == -1 || n < bestN {
			best, bestN = id, n
			if n == 0 {
				break
			}
		}
	}
	return best, bestN
}

func (st *search) solve() {
	if st.done {
		return
	}
	st.nodes++
	if st.nodeLimit > 0 && st.nodes > st.nodeLimit {
		st.stop(ErrNodeLimit)
		return
	}
	if st.nodes%ctxCheckInterval == 1 {
		if err := st.ctx.Err(); err != nil {
			st.stop(err)
			return
		}
	}

	if st.remaining == 0 {
		st.record()
		return
	}
	id, n := st.pick()
	if n == 0 {
		return
	}
	for _, ci := range st.byTile[id] {
		if !st.feasible(ci) {
			continue
		}
		st.apply(ci, 1)
		st.chosen = append(st.chosen, ci)
		st.solve()
		st.chosen = st.chosen[:len(st.chosen)-1]
		st.apply(ci, -1)
		if st.done {
			return
		}
	}
}

func (st *search) stop(err error) {
	st.err = err
	st.done = true
}

func (st *search) record() {
	layout := make(meld.Table, len(st.chosen))
	for i, ci := range st.chosen {
		m := make(meld.Meld, len(st.melds[ci]))
		copy(m, st.melds[ci])
		layout[i] = m
	}
	layout = layout.Canonical()
	sig := layout.Signature()
	if sig == st.tableSig {
		return
	}
	if _, ok := st.seen[sig]; ok {
		return
	}
	st.seen[sig] = struct{}{}
	st.found = append(st.found, layout)
	if st.firstOnly {
		st.done = true
	}
}
