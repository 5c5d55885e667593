package shell

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/tilebench/rummy/config"
)

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"gen -n 5",
			&shellcmd{"gen", nil, CmdOptions{"n": {"5"}}},
			nil},
		{"hand R1 R2 J",
			&shellcmd{"hand", []string{"R1", "R2", "J"}, CmdOptions{}},
			nil},
		{`table "R1 R2 R3 | B5 Y5 K5"`,
			&shellcmd{"table", []string{"R1 R2 R3 | B5 Y5 K5"}, CmdOptions{}},
			nil},
		{`valid -table "B1 B2 B3" `,
			&shellcmd{"valid", nil, CmdOptions{"table": {"B1 B2 B3"}}},
			nil},
		{"gen -n", nil, errWrongOptionSyntax},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
	_, err := extractFields(`table "R1 R2`)
	is.True(err != nil)
}

func newTestShell() (*ShellController, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg := config.DefaultConfig()
	return newController(cfg, &buf), &buf
}

// run executes lines and returns what the last one printed.
func run(t *testing.T, sc *ShellController, buf *bytes.Buffer, lines ...string) string {
	t.Helper()
	for _, l := range lines {
		buf.Reset()
		if err := sc.Execute(context.Background(), l); err != nil {
			t.Fatalf("%q: %v", l, err)
		}
	}
	return buf.String()
}

func TestGenAndPlay(t *testing.T) {
	is := is.New(t)
	sc, buf := newTestShell()
	out := run(t, sc, buf, "hand R1 R2 K9", `table "J R3"`)
	is.True(strings.Contains(out, "Hand:  R1 R2 K9 (3 tiles, value 12)"))
	is.True(strings.Contains(out, "Table: [J R3]"))

	out = run(t, sc, buf, "gen")
	is.True(strings.HasPrefix(out, "3 moves\n"))
	lines := strings.Split(strings.TrimSpace(out), "\n")
	is.Equal(len(lines), 5)
	// both tiles at once is listed first
	is.True(strings.Contains(lines[2], "+R1 R2"))

	out = run(t, sc, buf, "gen -n 1")
	is.Equal(len(strings.Split(strings.TrimSpace(out), "\n")), 3)

	out = run(t, sc, buf, "play 1")
	is.True(strings.Contains(out, "Played +R1 R2"))
	is.Equal(sc.table.Signature(), "J R1 R2 R3")
	is.Equal(len(sc.hand), 1)

	// the list is gone after a play
	out = run(t, sc, buf, "play 1")
	is.True(strings.HasPrefix(out, "Error: play outside range"))
}

func TestFilterValidMelds(t *testing.T) {
	is := is.New(t)
	sc, buf := newTestShell()
	out := run(t, sc, buf, "hand R5 B9 J Y1", `table "B5 Y5 | B8 B10"`, "filter")
	is.Equal(out, "Playable:   R5 B9 J\nUnplayable: Y1\n")

	out = run(t, sc, buf, "valid R7 R7 R8")
	is.Equal(out, "[R7 R7 R8]: invalid\n")
	out = run(t, sc, buf, "valid J J J")
	is.Equal(out, "[J J J]: valid (group)\n")
	out = run(t, sc, buf, "valid R12 R13 J")
	is.Equal(out, "[R12 R13 J]: valid (run)\n")
	out = run(t, sc, buf, `valid -table "B1 B2 B3 | R7 Y7 K7"`)
	is.True(strings.HasSuffix(out, ": valid\n"))
	out = run(t, sc, buf, "valid Q9")
	is.True(strings.HasPrefix(out, "Error:"))

	out = run(t, sc, buf, "melds R1 R2 R3")
	is.True(strings.HasPrefix(out, "1 melds\n"))
}

func TestTableWarningsAndClear(t *testing.T) {
	is := is.New(t)
	sc, buf := newTestShell()
	out := run(t, sc, buf, `table "R1 R2"`)
	is.True(strings.Contains(out, "Warning"))
	out = run(t, sc, buf, "table clear")
	is.True(strings.Contains(out, "Table: (empty)"))
	is.Equal(len(sc.table), 0)
}

func TestSet(t *testing.T) {
	is := is.New(t)
	sc, buf := newTestShell()
	out := run(t, sc, buf, "set threads 4")
	is.Equal(out, "threads set to 4\n")
	is.Equal(sc.config.GetInt(config.ConfigThreads), 4)

	out = run(t, sc, buf, "set search-timeout 2s")
	is.Equal(out, "search-timeout set to 2s\n")

	out = run(t, sc, buf, "set colors 2")
	is.True(strings.HasPrefix(out, "Error: unknown setting"))
	out = run(t, sc, buf, "set threads many")
	is.True(strings.HasPrefix(out, "Error:"))

	out = run(t, sc, buf, "set")
	is.True(strings.Contains(out, "max-tiles-per-move: 0"))
}

func TestHelpAndExit(t *testing.T) {
	is := is.New(t)
	sc, buf := newTestShell()
	out := run(t, sc, buf, "help")
	is.True(strings.HasPrefix(out, "Commands:"))
	out = run(t, sc, buf, "help gen")
	is.True(strings.Contains(out, "-n N"))
	out = run(t, sc, buf, "help nothing")
	is.True(strings.Contains(out, "There is no help text"))
	is.Equal(helpTopics(), []string{"gen", "table", "tiles"})

	out = run(t, sc, buf, "frobnicate")
	is.True(strings.Contains(out, `command "frobnicate" not found`))

	is.Equal(sc.Execute(context.Background(), "exit"), errExit)
}

func TestCompleter(t *testing.T) {
	is := is.New(t)
	sc, _ := newTestShell()
	c := NewShellCompleter(sc)

	got, n := c.Do([]rune("me"), 2)
	is.Equal(n, 2)
	is.Equal(got, [][]rune{[]rune("lds ")})

	got, _ = c.Do([]rune("set max"), 7)
	is.Equal(got, [][]rune{[]rune("-tiles-per-move ")})

	got, _ = c.Do([]rune("gen -"), 5)
	is.Equal(got, [][]rune{[]rune("n ")})

	got, _ = c.Do([]rune("set threads "), 12)
	is.Equal(len(got), 0)
}
