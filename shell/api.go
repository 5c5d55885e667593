package shell

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/tilebench/rummy/config"
	"github.com/tilebench/rummy/meld"
	"github.com/tilebench/rummy/meldgen"
	"github.com/tilebench/rummy/move"
	"github.com/tilebench/rummy/movegen"
	"github.com/tilebench/rummy/tile"
)

const defaultShownPlays = 15

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (sc *ShellController) position() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Hand:  %s (%d tiles, value %d)\n",
		tile.ListString(tile.Sorted(sc.hand)), len(sc.hand), tile.SumValue(sc.hand))
	fmt.Fprintf(&sb, "Table: %s", sc.table)
	return sb.String()
}

// setHand replaces the hand with the tiles given, or shows it.
func (sc *ShellController) setHand(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(sc.position()), nil
	}
	hand, err := tile.ParseList(strings.Join(cmd.args, " "))
	if err != nil {
		return nil, err
	}
	sc.hand = hand
	sc.curGenPlays = nil
	return msg(sc.position()), nil
}

// setTable replaces the table. Melds are separated with | and the whole
// table is usually quoted. "table clear" empties it.
func (sc *ShellController) setTable(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(sc.position()), nil
	}
	line := strings.Join(cmd.args, " ")
	var table meld.Table
	if line != "clear" {
		var err error
		if table, err = meld.ParseTable(line); err != nil {
			return nil, err
		}
	}
	sc.table = table
	sc.curGenPlays = nil
	if !meld.IsTableValid(table) {
		return msg(sc.position() + "\nWarning: the table holds an invalid meld"), nil
	}
	return msg(sc.position()), nil
}

func moveTableHeader() string {
	return "     Move                     Tiles Value  Table"
}

func MoveTableRow(idx int, m *move.Move) string {
	return fmt.Sprintf("%3d: %-25s%-6d%-7d%s", idx+1,
		m.ShortDescription(), m.TilesPlayed(), m.Value(), m.Table())
}

// generate lists the lay-downs for the current position, most tiles first.
// -n sets how many are shown.
func (sc *ShellController) generate(ctx context.Context, cmd *shellcmd) (*Response, error) {
	n, err := cmd.options.IntDefault("n", defaultShownPlays)
	if err != nil {
		return nil, err
	}
	timeout := sc.config.GetDuration(config.ConfigSearchTimeout)
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	moves, err := sc.gen.PossibleMoves(ctx, sc.hand, sc.table)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}
	// largest lay-downs are the interesting ones; enumeration order breaks ties
	sorted := make([]*move.Move, len(moves))
	copy(sorted, moves)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TilesPlayed() > sorted[j].TilesPlayed()
	})
	sc.curGenPlays = sorted
	log.Debug().Int("moves", len(sorted)).Msg("shell-gen")

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d moves", len(sorted))
	if err != nil {
		sb.WriteString(" (search timed out, list is partial)")
	}
	if len(sorted) == 0 {
		return msg(sb.String()), nil
	}
	sb.WriteString("\n" + moveTableHeader())
	for i, m := range sorted {
		if i == n {
			break
		}
		sb.WriteString("\n" + MoveTableRow(i, m))
	}
	return msg(sb.String()), nil
}

// play commits a generated move to the analyzed position: its tiles leave
// the hand and its layout becomes the table.
func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("play takes one argument, the move number from gen")
	}
	id, err := strconv.Atoi(strings.TrimPrefix(cmd.args[0], "#"))
	if err != nil {
		return nil, err
	}
	if id < 1 || id > len(sc.curGenPlays) {
		return nil, errors.New("play outside range; run gen first")
	}
	m := sc.curGenPlays[id-1]
	left, err := tile.Subtract(sc.hand, m.Used())
	if err != nil {
		return nil, err
	}
	sc.hand = left
	sc.table = m.Table().Clone()
	sc.curGenPlays = nil
	return msg("Played " + m.ShortDescription() + "\n" + sc.position()), nil
}

func (sc *ShellController) filter(cmd *shellcmd) (*Response, error) {
	playable, unplayable := movegen.PreFilterUnplayable(sc.hand, sc.table)
	return msg(fmt.Sprintf("Playable:   %s\nUnplayable: %s",
		tile.ListString(playable), tile.ListString(unplayable))), nil
}

// valid checks one meld, or with -table a whole layout.
func (sc *ShellController) valid(cmd *shellcmd) (*Response, error) {
	if t := cmd.options.String("table"); t != "" {
		table, err := meld.ParseTable(t)
		if err != nil {
			return nil, err
		}
		return msg(fmt.Sprintf("%v: %v", table, verdict(meld.IsTableValid(table)))), nil
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("valid needs tiles, or -table")
	}
	tiles, err := tile.ParseList(strings.Join(cmd.args, " "))
	if err != nil {
		return nil, err
	}
	m := meld.Meld(tiles)
	var kind string
	switch {
	case meld.IsValidGroup(tiles) && meld.IsValidRun(tiles):
		kind = " (group or run)"
	case meld.IsValidGroup(tiles):
		kind = " (group)"
	case meld.IsValidRun(tiles):
		kind = " (run)"
	}
	return msg(fmt.Sprintf("%v: %v%s", m, verdict(meld.IsValidMeld(tiles)), kind)), nil
}

func verdict(ok bool) string {
	if ok {
		return "valid"
	}
	return "invalid"
}

// melds lists every meld buildable from the tiles given, or from the hand
// and table together.
func (sc *ShellController) melds(cmd *shellcmd) (*Response, error) {
	tiles := append(sc.table.Tiles(), sc.hand...)
	if len(cmd.args) > 0 {
		var err error
		if tiles, err = tile.ParseList(strings.Join(cmd.args, " ")); err != nil {
			return nil, err
		}
	}
	melds := meldgen.Generate(tiles)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d melds", len(melds))
	for _, m := range melds {
		sb.WriteString("\n  " + m.String())
	}
	return msg(sb.String()), nil
}

var settable = []string{config.ConfigThreads, config.ConfigNodeLimit,
	config.ConfigMaxTilesPerMove, config.ConfigSearchTimeout}

// set changes a search setting. With no arguments it lists them.
func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		var sb strings.Builder
		sb.WriteString("Settings:")
		for _, k := range settable {
			fmt.Fprintf(&sb, "\n  %s: %v", k, sc.config.Get(k))
		}
		return msg(sb.String()), nil
	}
	if len(cmd.args) != 2 {
		return nil, errors.New("set <setting> <value>")
	}
	key, val := cmd.args[0], cmd.args[1]
	switch key {
	case config.ConfigThreads, config.ConfigNodeLimit, config.ConfigMaxTilesPerMove:
		n, err := strconv.Atoi(val)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%s needs a non-negative integer", key)
		}
		sc.config.Set(key, n)
	case config.ConfigSearchTimeout:
		sc.config.Set(key, val)
		if sc.config.GetDuration(key) == 0 && val != "0" && val != "0s" {
			return nil, fmt.Errorf("cannot parse duration %q", val)
		}
	default:
		return nil, fmt.Errorf("unknown setting %q", key)
	}
	sc.resetGenerator()
	return msg(fmt.Sprintf("%s set to %v", key, sc.config.Get(key))), nil
}
