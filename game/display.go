package game

import (
	"fmt"
	"strings"
)

// String renders the game for the shell and for debugging.
func (g *Game) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "turn %d, %s, stock %d\n", g.turnnum, g.playing, len(g.stock))
	for i, p := range g.players {
		sb.WriteString(p.stateString(i == g.onturn && g.playing == Playing))
		sb.WriteByte('\n')
	}
	sb.WriteString("table: ")
	sb.WriteString(g.table.String())
	sb.WriteByte('\n')
	if g.playing == GameOver {
		switch {
		case g.winner == NoWinner:
			sb.WriteString("blocked, no winner\n")
		case g.blocked:
			fmt.Fprintf(&sb, "blocked, %s wins on hand value\n", g.players[g.winner].nickname)
		default:
			fmt.Fprintf(&sb, "%s went out\n", g.players[g.winner].nickname)
		}
	}
	return sb.String()
}
