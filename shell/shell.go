// Package shell is an interactive position analyzer. It holds one hand and
// one table, and lists the lay-downs the move generator finds for them.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/tilebench/rummy/config"
	"github.com/tilebench/rummy/meld"
	"github.com/tilebench/rummy/move"
	"github.com/tilebench/rummy/movegen"
	"github.com/tilebench/rummy/tile"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errExit              = errors.New("exit requested")
)

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

type ShellController struct {
	l      *readline.Instance
	out    io.Writer
	config *config.Config

	hand        []tile.Tile
	table       meld.Table
	gen         *movegen.Generator
	curGenPlays []*move.Move
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func writeln(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// NewShellController sets up readline on the terminal.
func NewShellController(cfg *config.Config) (*ShellController, error) {
	sc := newController(cfg, nil)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mrummy>\033[0m ",
		HistoryFile:     "/tmp/rummy_readline.tmp",
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	sc.l = l
	sc.out = l.Stderr()
	return sc, nil
}

func newController(cfg *config.Config, out io.Writer) *ShellController {
	sc := &ShellController{out: out, config: cfg}
	sc.resetGenerator()
	return sc
}

func (sc *ShellController) resetGenerator() {
	sc.gen = movegen.NewGenerator(
		movegen.WithThreads(sc.config.GetInt(config.ConfigThreads)),
		movegen.WithMaxTiles(sc.config.GetInt(config.ConfigMaxTilesPerMove)),
		movegen.WithNodeLimit(sc.config.GetInt(config.ConfigNodeLimit)),
	)
	sc.curGenPlays = nil
}

func (sc *ShellController) showMessage(msg string) {
	writeln(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

// extractFields splits a line into a command, its positional arguments and
// its -key value options. Quoting follows the shell, so a table can be
// passed as one argument: table "R1 R2 R3 | B5 Y5 K5".
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := &shellcmd{cmd: fields[0], options: CmdOptions{}}
	for i := 1; i < len(fields); i++ {
		f := fields[i]
		if !strings.HasPrefix(f, "-") {
			cmd.args = append(cmd.args, f)
			continue
		}
		if i+1 >= len(fields) {
			return nil, errWrongOptionSyntax
		}
		key := strings.TrimPrefix(f, "-")
		cmd.options[key] = append(cmd.options[key], fields[i+1])
		i++
	}
	return cmd, nil
}

func (sc *ShellController) executeCommand(ctx context.Context, cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "exit", "bye":
		return nil, errExit
	case "help":
		return sc.help(cmd)
	case "hand", "h":
		return sc.setHand(cmd)
	case "table", "t":
		return sc.setTable(cmd)
	case "show", "s":
		return msg(sc.position()), nil
	case "gen", "g":
		return sc.generate(ctx, cmd)
	case "play", "p":
		return sc.play(cmd)
	case "filter":
		return sc.filter(cmd)
	case "valid":
		return sc.valid(cmd)
	case "melds":
		return sc.melds(cmd)
	case "set":
		return sc.set(cmd)
	}
	return nil, fmt.Errorf("command %v not found", strconv.Quote(cmd.cmd))
}

// Execute runs one line. It reports errExit when the line asked to leave.
func (sc *ShellController) Execute(ctx context.Context, line string) error {
	cmd, err := extractFields(line)
	if err == errNoData {
		return nil
	}
	if err != nil {
		sc.showError(err)
		return nil
	}
	resp, err := sc.executeCommand(ctx, cmd)
	if err == errExit {
		return err
	}
	if err != nil {
		sc.showError(err)
		return nil
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
	return nil
}

// Loop reads commands until exit, EOF or an interrupt on an empty line.
func (sc *ShellController) Loop(ctx context.Context, sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if err := sc.Execute(ctx, line); err == errExit {
			sig <- syscall.SIGINT
			break
		}
	}
	log.Debug().Msg("exiting-readline-loop")
}
