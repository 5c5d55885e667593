package automatic

import (
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/tilebench/rummy/game"
	"github.com/tilebench/rummy/stats"
)

const confidence = 95

// Summary aggregates a batch of games.
type Summary struct {
	Games   int   `yaml:"games"`
	Wins    []int `yaml:"wins"`
	Blocked int   `yaml:"blocked"`
	Ties    int   `yaml:"ties"`

	FirstPlayerWinRate float64    `yaml:"first_player_win_rate"`
	FirstPlayerWinCI   [2]float64 `yaml:"first_player_win_ci,flow"`

	MeanTurns  float64 `yaml:"mean_turns"`
	StdevTurns float64 `yaml:"stdev_turns"`
	MinTurns   int     `yaml:"min_turns"`
	MaxTurns   int     `yaml:"max_turns"`

	MeanLoserHandValue float64 `yaml:"mean_loser_hand_value"`

	turns []float64
}

// Summarize folds game results into a Summary. Results from games that did
// not finish (nil) are skipped.
func Summarize(results []*GameResult) *Summary {
	s := &Summary{}
	turns := &stats.Statistic{}
	loser := &stats.Statistic{}
	first := &stats.Proportion{}

	for _, r := range results {
		if r == nil {
			continue
		}
		s.Games++
		for len(s.Wins) < len(r.HandValues) {
			s.Wins = append(s.Wins, 0)
		}
		if r.Blocked {
			s.Blocked++
		}
		if r.Winner == game.NoWinner {
			s.Ties++
		} else {
			s.Wins[r.Winner]++
		}
		first.Add(r.Winner == 0)
		turns.Push(float64(r.Turns))
		s.turns = append(s.turns, float64(r.Turns))
		for p, v := range r.HandValues {
			if p != r.Winner {
				loser.Push(float64(v))
			}
		}
	}

	s.FirstPlayerWinRate = first.Rate()
	s.FirstPlayerWinCI[0], s.FirstPlayerWinCI[1] = first.Interval(confidence)
	s.MeanTurns = turns.Mean()
	s.StdevTurns = turns.Stdev()
	s.MinTurns = int(turns.Min())
	s.MaxTurns = int(turns.Max())
	s.MeanLoserHandValue = loser.Mean()
	return s
}

func (s *Summary) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}

// Report writes a human readable summary followed by a histogram of game
// lengths.
func (s *Summary) Report(w io.Writer) error {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "Games played: %d\n", s.Games)
	for i, n := range s.Wins {
		p.Fprintf(w, "p%d wins: %d (%.2f%%)\n", i+1, n, pct(n, s.Games))
	}
	p.Fprintf(w, "Blocked games: %d, no winner: %d\n", s.Blocked, s.Ties)
	p.Fprintf(w, "First player win rate: %.3f (%d%% CI %.3f - %.3f)\n",
		s.FirstPlayerWinRate, confidence, s.FirstPlayerWinCI[0], s.FirstPlayerWinCI[1])
	p.Fprintf(w, "Turns: mean %.2f stdev %.2f min %d max %d\n",
		s.MeanTurns, s.StdevTurns, s.MinTurns, s.MaxTurns)
	p.Fprintf(w, "Mean hand value left by losers: %.2f\n", s.MeanLoserHandValue)
	if len(s.turns) == 0 {
		return nil
	}
	fmt.Fprintln(w, "\nGame length (turns):")
	return histogram.Fprint(w, histogram.Hist(10, s.turns), histogram.Linear(40))
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
