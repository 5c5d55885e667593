package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestValidate(t *testing.T) {
	is := is.New(t)
	out := execute(t, "validate", "R1 R2 R3", "R7 R7 R8")
	is.Equal(out, "[R1 R2 R3]: true\n[R7 R7 R8]: false\ntable: false\n")
}

func TestGen(t *testing.T) {
	is := is.New(t)
	out := execute(t, "gen", "--hand", "R1 R2 K9", "--table", "J R3")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	is.Equal(len(lines), 3)
	is.True(strings.Contains(lines[2], "+R1 R2"))

	out = execute(t, "gen", "--hand", "R9", "--table", "")
	is.Equal(out, "no moves\n")
}

func TestAutoplayAndAnalyze(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	seeds := filepath.Join(dir, "seeds.txt")
	logfile := filepath.Join(dir, "games.csv")
	out := execute(t, "autoplay", "--games", "3", "--max-rank", "6", "--copies", "1",
		"--jokers", "1", "--hand-size", "5", "--max-tiles-per-move", "3",
		"--save-seeds", seeds, "--logfile", logfile, "--yaml")
	is.True(strings.Contains(out, "games: 3"))

	out = execute(t, "analyze", logfile, "--yaml")
	is.True(strings.Contains(out, "games: 3"))
}
