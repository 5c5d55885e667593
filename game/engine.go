package game

import (
	"context"

	"github.com/tilebench/rummy/move"
)

// Engine is the surface a player or an environment drives a game through.
type Engine interface {
	EnumerateMoves(ctx context.Context, player int) ([]*move.Move, error)
	ApplyMove(player int, m *move.Move) error
	NextPlayer(placed bool) error
}

var _ Engine = (*Game)(nil)
