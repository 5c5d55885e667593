package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ZVal returns the two-tailed z-value for a confidence level given in
// percent.
func ZVal(confidence float64) float64 {
	dist := distuv.Normal{Mu: 0, Sigma: 1}
	return dist.Quantile((1 + confidence/100) / 2)
}

// Proportion counts successes out of trials, such as games won by the
// first player.
type Proportion struct {
	hits   int
	trials int
}

func (p *Proportion) Add(hit bool) {
	p.trials++
	if hit {
		p.hits++
	}
}

func (p *Proportion) Hits() int   { return p.hits }
func (p *Proportion) Trials() int { return p.trials }

func (p *Proportion) Rate() float64 {
	if p.trials == 0 {
		return 0
	}
	return float64(p.hits) / float64(p.trials)
}

// Interval is the Wald interval of the rate clipped to [0, 1].
func (p *Proportion) Interval(confidence float64) (float64, float64) {
	if p.trials == 0 {
		return 0, 1
	}
	r := p.Rate()
	d := ZVal(confidence) * math.Sqrt(r*(1-r)/float64(p.trials))
	return math.Max(0, r-d), math.Min(1, r+d)
}
