package game

import (
	"fmt"

	"github.com/tilebench/rummy/config"
	"github.com/tilebench/rummy/tile"
)

// GameRules holds the table size and tile set of a game.
type GameRules struct {
	players  int
	handSize int
	maxRank  int
	copies   int
	jokers   int
}

// DefaultRules is the two-deck game: ranks 1 through 13 in four colors, two
// copies of each, two jokers, 14 tiles per hand, two players.
func DefaultRules() *GameRules {
	return &GameRules{players: 2, handSize: 14, maxRank: 13, copies: 2, jokers: 2}
}

// NewGameRules reads the rules out of the config.
func NewGameRules(cfg *config.Config) (*GameRules, error) {
	r := &GameRules{
		players:  cfg.GetInt(config.ConfigPlayers),
		handSize: cfg.GetInt(config.ConfigHandSize),
		maxRank:  cfg.GetInt(config.ConfigMaxRank),
		copies:   cfg.GetInt(config.ConfigCopies),
		jokers:   cfg.GetInt(config.ConfigJokers),
	}
	if r.players < 1 || r.handSize < 1 || r.maxRank < 1 || r.copies < 1 || r.jokers < 0 {
		return nil, fmt.Errorf("bad rules: %v", r)
	}
	return r, nil
}

func (r *GameRules) Players() int  { return r.players }
func (r *GameRules) HandSize() int { return r.handSize }
func (r *GameRules) MaxRank() int  { return r.maxRank }
func (r *GameRules) Copies() int   { return r.copies }
func (r *GameRules) Jokers() int   { return r.jokers }

// PoolSize is the number of tiles in play for the lifetime of a game.
func (r *GameRules) PoolSize() int {
	return tile.PoolSize(r.maxRank, r.copies, r.jokers)
}

func (r *GameRules) String() string {
	return fmt.Sprintf("players=%d hand=%d ranks=1..%d copies=%d jokers=%d",
		r.players, r.handSize, r.maxRank, r.copies, r.jokers)
}
