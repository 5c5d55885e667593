package shell

import (
	"sort"
	"strings"

	"github.com/kballard/go-shellquote"
)

// ShellCompleter completes command names, options and setting names.
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

type CommandMetadata struct {
	Options []string
	Args    []string
}

var commandMetadata = map[string]CommandMetadata{
	"gen":    {Options: []string{"-n"}},
	"valid":  {Options: []string{"-table"}},
	"table":  {Args: []string{"clear"}},
	"set":    {Args: settable},
	"help":   {Args: helpTopics()},
	"hand":   {},
	"show":   {},
	"play":   {},
	"filter": {},
	"melds":  {},
	"exit":   {},
}

var commandNames = func() []string {
	names := make([]string, 0, len(commandMetadata))
	for k := range commandMetadata {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}()

// Do implements readline.AutoCompleter.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	fields, err := shellquote.Split(text)
	if err != nil {
		// unterminated quote while typing a table
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string
	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		meta := commandMetadata[fields[0]]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		if strings.HasPrefix(prefix, "-") {
			completions = meta.Options
		} else {
			completions = meta.Args
		}
		if fields[0] == "set" && len(fields) > 1 && (endsWithSpace || len(fields) > 2) {
			// the value, not the setting name
			completions = nil
		}
	}
	return completeFrom(completions, prefix), len(prefix)
}

func completeFrom(candidates []string, prefix string) [][]rune {
	var out [][]rune
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			out = append(out, []rune(c[len(prefix):]+" "))
		}
	}
	return out
}
