// Package stats keeps running summaries of self-play results.
package stats

import "math"

const Epsilon = 1e-6

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Statistic is a running mean and variance over a stream of values, using
// Welford's update so no values are stored.
type Statistic struct {
	n    int
	mean float64
	m2   float64
	min  float64
	max  float64
	last float64
}

func (s *Statistic) Push(val float64) {
	s.n++
	s.last = val
	if s.n == 1 {
		s.mean, s.m2, s.min, s.max = val, 0, val, val
		return
	}
	delta := val - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (val - s.mean)
	s.min = math.Min(s.min, val)
	s.max = math.Max(s.max, val)
}

func (s *Statistic) Iterations() int { return s.n }
func (s *Statistic) Last() float64   { return s.last }
func (s *Statistic) Min() float64    { return s.min }
func (s *Statistic) Max() float64    { return s.max }

func (s *Statistic) Mean() float64 {
	if s.n == 0 {
		return 0
	}
	return s.mean
}

// Variance is the sample variance.
func (s *Statistic) Variance() float64 {
	if s.n <= 1 {
		return 0
	}
	return s.m2 / float64(s.n-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

func (s *Statistic) StandardError() float64 {
	if s.n == 0 {
		return 0
	}
	return math.Sqrt(s.Variance() / float64(s.n))
}

// Interval is the normal-approximation confidence interval of the mean.
// confidence is a percentage, e.g. 95.
func (s *Statistic) Interval(confidence float64) (float64, float64) {
	d := ZVal(confidence) * s.StandardError()
	return s.Mean() - d, s.Mean() + d
}
