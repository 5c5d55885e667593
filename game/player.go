package game

import (
	"fmt"

	"github.com/tilebench/rummy/tile"
)

type playerState struct {
	nickname string
	hand     []tile.Tile
}

func newPlayerState(nickname string) *playerState {
	return &playerState{nickname: nickname}
}

func (p *playerState) copy() *playerState {
	h := make([]tile.Tile, len(p.hand))
	copy(h, p.hand)
	return &playerState{nickname: p.nickname, hand: h}
}

func (p *playerState) stateString(myturn bool) string {
	onturn := ""
	if myturn {
		onturn = "-> "
	}
	return fmt.Sprintf("%4v%-6v %2d tiles  %v", onturn, p.nickname, len(p.hand),
		tile.ListString(tile.Sorted(p.hand)))
}
