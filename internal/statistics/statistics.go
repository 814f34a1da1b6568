// Package statistics accumulates game scores without storing them: a
// streaming mean and variance per metric, a score histogram and a failure
// count, all mergeable across workers.
package statistics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// MaxScore is the highest score a game can reach
const MaxScore = 25

// Accumulator keeps a running mean and variance using Welford's update
type Accumulator struct {
	n    int
	mean float64
	m2   float64
}

// Add incorporates one observation
func (a *Accumulator) Add(x float64) {
	a.n++
	delta := x - a.mean
	a.mean += delta / float64(a.n)
	a.m2 += delta * (x - a.mean)
}

// Merge folds other into a using Chan's parallel formula. The result is the
// same as if every observation had been added to one accumulator.
func (a *Accumulator) Merge(other Accumulator) {
	if other.n == 0 {
		return
	}
	if a.n == 0 {
		*a = other
		return
	}
	n := a.n + other.n
	delta := other.mean - a.mean
	a.mean += delta * float64(other.n) / float64(n)
	a.m2 += other.m2 + delta*delta*float64(a.n)*float64(other.n)/float64(n)
	a.n = n
}

// Count returns the number of observations
func (a *Accumulator) Count() int { return a.n }

// Mean returns the arithmetic mean
func (a *Accumulator) Mean() float64 { return a.mean }

// Variance returns the sample variance
func (a *Accumulator) Variance() float64 {
	if a.n < 2 {
		return 0
	}
	return a.m2 / float64(a.n-1)
}

// StdDev returns the sample standard deviation
func (a *Accumulator) StdDev() float64 {
	return math.Sqrt(a.Variance())
}

// StdError returns the standard error of the mean
func (a *Accumulator) StdError() float64 {
	if a.n == 0 {
		return 0
	}
	return a.StdDev() / math.Sqrt(float64(a.n))
}

// ConfidenceInterval95 returns the two-sided 95% interval for the mean from
// the Student t distribution
func (a *Accumulator) ConfidenceInterval95() (float64, float64) {
	if a.n < 2 {
		return a.mean, a.mean
	}
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(a.n - 1)}
	margin := t.Quantile(0.975) * a.StdError()
	return a.mean - margin, a.mean + margin
}

// Tally tracks the results of a batch of games
type Tally struct {
	Scores    Accumulator
	Wins      Accumulator // 1 for a game at or above WinScore, else 0
	Histogram [MaxScore + 1]int
	Failures  int

	// WinScore is the score that counts as a win; zero means MaxScore
	WinScore int
}

// NewTally returns a tally that counts scores of at least winScore as wins
func NewTally(winScore int) *Tally {
	return &Tally{WinScore: winScore}
}

func (t *Tally) winScore() int {
	if t.WinScore <= 0 {
		return MaxScore
	}
	return t.WinScore
}

// Add records the score of a completed game
func (t *Tally) Add(score int) {
	score = max(0, min(score, MaxScore))
	t.Scores.Add(float64(score))
	if score >= t.winScore() {
		t.Wins.Add(1)
	} else {
		t.Wins.Add(0)
	}
	t.Histogram[score]++
}

// AddFailure records a game that ended on an illegal action. It does not
// contribute to any score statistic.
func (t *Tally) AddFailure() {
	t.Failures++
}

// Merge folds other into t
func (t *Tally) Merge(other *Tally) {
	t.Scores.Merge(other.Scores)
	t.Wins.Merge(other.Wins)
	for i, n := range other.Histogram {
		t.Histogram[i] += n
	}
	t.Failures += other.Failures
}

// Games returns the number of completed games
func (t *Tally) Games() int { return t.Scores.Count() }

// Mean returns the mean score
func (t *Tally) Mean() float64 { return t.Scores.Mean() }

// StdError returns the standard error of the mean score
func (t *Tally) StdError() float64 { return t.Scores.StdError() }

// WinRate returns the fraction of games that reached the win score
func (t *Tally) WinRate() float64 { return t.Wins.Mean() }

// Median returns the median score from the histogram
func (t *Tally) Median() float64 {
	return t.Percentile(0.5)
}

// Percentile returns the score at the given percentile (0.0 to 1.0),
// interpolating between neighbouring ranks
func (t *Tally) Percentile(p float64) float64 {
	n := t.Games()
	if n == 0 {
		return 0
	}
	index := p * float64(n-1)
	lower := int(index)
	weight := index - float64(lower)
	lo := t.nth(lower)
	if lower+1 >= n {
		return float64(lo)
	}
	return float64(lo)*(1-weight) + float64(t.nth(lower+1))*weight
}

// nth returns the i-th smallest score
func (t *Tally) nth(i int) int {
	for score, count := range t.Histogram {
		if i < count {
			return score
		}
		i -= count
	}
	return MaxScore
}

// Validate checks the tally is internally consistent
func (t *Tally) Validate() error {
	total := 0
	for _, n := range t.Histogram {
		total += n
	}
	if total != t.Scores.Count() {
		return fmt.Errorf("histogram holds %d games but %d scores were recorded", total, t.Scores.Count())
	}
	if t.Wins.Count() != t.Scores.Count() {
		return fmt.Errorf("win count (%d) does not match game count (%d)", t.Wins.Count(), t.Scores.Count())
	}
	if t.Failures < 0 {
		return fmt.Errorf("invalid failure count: %d", t.Failures)
	}
	return nil
}

// Summary is a flat view of a tally for reports
type Summary struct {
	Games     int     `json:"games"`
	Failures  int     `json:"failures"`
	Mean      float64 `json:"mean"`
	StdDev    float64 `json:"std_dev"`
	StdError  float64 `json:"std_error"`
	CILow     float64 `json:"ci_low"`
	CIHigh    float64 `json:"ci_high"`
	Median    float64 `json:"median"`
	WinRate   float64 `json:"win_rate"`
	WinStdErr float64 `json:"win_std_error"`
	Histogram []int   `json:"histogram"`
}

// Summary returns the headline numbers of the tally
func (t *Tally) Summary() Summary {
	low, high := t.Scores.ConfidenceInterval95()
	return Summary{
		Games:     t.Games(),
		Failures:  t.Failures,
		Mean:      t.Mean(),
		StdDev:    t.Scores.StdDev(),
		StdError:  t.StdError(),
		CILow:     low,
		CIHigh:    high,
		Median:    t.Median(),
		WinRate:   t.WinRate(),
		WinStdErr: t.Wins.StdError(),
		Histogram: append([]int(nil), t.Histogram[:]...),
	}
}
