/*
PURPOSE:
  Turns parsed epochs into per-epoch summaries: best time, best profit
  and the two averages.

REQUIREMENTS:
  User-specified:
  - minTime is the smallest time in the epoch.
  - maxProfit is the negated smallest stored profit.
  - Sentinel values (math.MaxFloat64) mean "no solution" and must never
    be sign-flipped or averaged.
  - Empty epochs produce "no data", never a crash or a zero.
  - The historical tool averaged times when asked for the profit mean.
    That stays the default (Legacy) so charts match old runs; Corrected
    averages the true profits.

  Implementation-discovered:
  - Means use gonum's stat.Mean over the non-sentinel entries only, so
    one sentinel cannot push the sum to +Inf.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Consumes: []model.Epoch
  - Produces: []model.Summary, model.Series

ERROR HANDLING:
  - Nothing here is fatal. Empty epochs are returned as *EmptyEpochError
    values next to the summaries so the caller can log them.

IMPLEMENTATION RULES:
  - The sign flip happens exactly once, in maxProfit/meanProfit.
  - Never touch Value.V when State != Measured.

USAGE:
  agg := aggregate.New(aggregate.Legacy)
  summaries, warnings := agg.Summarize(epochs)

SELF-HEALING INSTRUCTIONS:
  - If the log ever stores profit un-negated, change profitOf only.

RELATED FILES:
  - internal/model/types.go
  - internal/aggregate/series.go

MAINTENANCE:
  - Resolve the Legacy/Corrected question with the owners of the
    optimizer data, then flip the default.
*/

package aggregate

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/daryltucker/epoch-viz/internal/model"
)

// ErrEmptyEpochGroup marks an epoch without candidates.
var ErrEmptyEpochGroup = errors.New("empty epoch group")

// EmptyEpochError names the epoch that had no candidates.
type EmptyEpochError struct {
	Index   int
	EpochID string
}

func (e *EmptyEpochError) Error() string {
	return fmt.Sprintf("epoch %q (#%d): %v", e.EpochID, e.Index, ErrEmptyEpochGroup)
}

func (e *EmptyEpochError) Is(target error) bool {
	return target == ErrEmptyEpochGroup
}

// MeanProfitMode selects how Summary.MeanProfit is computed.
type MeanProfitMode int

const (
	// Legacy reproduces the historical output: the mean of the times.
	// Unlike the historical tool, sentinel times are left out of the
	// average, so an epoch holding a sentinel time reports the mean of its
	// real times where the old charts showed an overflowed value.
	Legacy MeanProfitMode = iota
	// Corrected averages the true (negated stored) profits.
	Corrected
)

func (m MeanProfitMode) String() string {
	switch m {
	case Legacy:
		return "legacy"
	case Corrected:
		return "corrected"
	default:
		return fmt.Sprintf("MeanProfitMode(%d)", int(m))
	}
}

// ParseMeanProfitMode accepts "legacy" or "corrected" (case-insensitive).
// An empty string selects Legacy.
func ParseMeanProfitMode(s string) (MeanProfitMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy":
		return Legacy, nil
	case "corrected":
		return Corrected, nil
	default:
		return Legacy, fmt.Errorf("unknown mean profit mode %q (want legacy or corrected)", s)
	}
}

// Aggregator computes epoch summaries.
type Aggregator struct {
	MeanProfit MeanProfitMode
}

// New creates an Aggregator.
func New(mode MeanProfitMode) *Aggregator {
	return &Aggregator{MeanProfit: mode}
}

// Summarize returns one summary per epoch, in order, plus an
// *EmptyEpochError for every epoch without candidates.
func (a *Aggregator) Summarize(epochs []model.Epoch) ([]model.Summary, []error) {
	summaries := make([]model.Summary, 0, len(epochs))
	var warnings []error
	for i, e := range epochs {
		s := a.SummarizeEpoch(e)
		if s.Empty() {
			warnings = append(warnings, &EmptyEpochError{Index: i, EpochID: e.ID})
		}
		summaries = append(summaries, s)
	}
	return summaries, warnings
}

// SummarizeEpoch computes the summary of a single epoch.
func (a *Aggregator) SummarizeEpoch(e model.Epoch) model.Summary {
	s := model.Summary{EpochID: e.ID, Candidates: len(e.Candidates)}
	if len(e.Candidates) == 0 {
		noData := model.Value{State: model.NoData}
		s.MinTime, s.MaxProfit, s.MeanTime, s.MeanProfit = noData, noData, noData, noData
		return s
	}

	times := make([]float64, len(e.Candidates))
	stored := make([]float64, len(e.Candidates))
	for i, c := range e.Candidates {
		times[i] = c.Time
		stored[i] = c.ProfitStored
	}

	s.MinTime = minTime(times)
	s.MaxProfit = maxProfit(stored)
	s.MeanTime = mean(times, identity)
	switch a.MeanProfit {
	case Corrected:
		s.MeanProfit = mean(stored, profitOf)
	default:
		s.MeanProfit = mean(times, identity)
	}
	return s
}

func isSentinel(v float64) bool {
	return math.Abs(v) == model.Sentinel
}

func identity(v float64) float64 { return v }

// profitOf converts a stored profit into a true profit.
func profitOf(stored float64) float64 { return -stored }

func minTime(times []float64) model.Value {
	m := floats.Min(times)
	if isSentinel(m) {
		return model.Value{State: model.NoSolution}
	}
	return model.MeasuredValue(m)
}

// maxProfit takes the minimum of the stored (negated) profits, which is
// the best true profit, and flips the sign once. A sentinel minimum is
// a marker, not a measurement, so it is not flipped.
func maxProfit(stored []float64) model.Value {
	raw := floats.Min(stored)
	if isSentinel(raw) {
		return model.Value{State: model.NoSolution}
	}
	return model.MeasuredValue(profitOf(raw))
}

func mean(xs []float64, f func(float64) float64) model.Value {
	vals := make([]float64, 0, len(xs))
	for _, x := range xs {
		if isSentinel(x) {
			continue
		}
		vals = append(vals, f(x))
	}
	if len(vals) == 0 {
		return model.Value{State: model.NoSolution}
	}
	return model.MeasuredValue(stat.Mean(vals, nil))
}
