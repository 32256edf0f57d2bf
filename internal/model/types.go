/*
PURPOSE:
  Defines the core data structures used throughout epoch-viz.
  These models represent parsed log content and the per-epoch summaries
  derived from it.

REQUIREMENTS:
  User-specified:
  - Candidate is a (time, stored profit) pair, profit stored negated.
  - Summaries report best time, best profit and the two averages.

  Implementation-discovered:
  - The log format overloads math.MaxFloat64 as "no value". Inside the
    program that is carried by Value.State instead, and only turned back
    into the literal at the output boundary (Value.Float).
  - JSON tags for the summary writer.

ARCHITECTURE INTEGRATION:
  - Used by: internal/parser, internal/aggregate, internal/render,
    internal/output, internal/engine
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data structs).

IMPLEMENTATION RULES:
  - Keep structs simple and public.
  - Never do arithmetic on Value.V unless State == Measured.

USAGE:
  v := model.MeasuredValue(3.5)
  if v.Valid() { ... }

SELF-HEALING INSTRUCTIONS:
  - If new metrics are needed, add a field to Summary and update the
    CSV/JSON/table writers and aggregate.Series.

RELATED FILES:
  - internal/output/csv.go
  - internal/output/json.go

MAINTENANCE:
  - Update when the log format grows new objectives.
*/

package model

import (
	"encoding/json"
	"math"
)

// Sentinel is the value the optimizer writes when it has no real
// measurement for an objective.
const Sentinel = math.MaxFloat64

// Candidate is one recorded solution within an epoch.
// ProfitStored keeps the log's sign convention: lower is better.
type Candidate struct {
	Time         float64 `json:"time"`
	ProfitStored float64 `json:"profit_stored"`
}

// Profit returns the true profit of the candidate.
func (c Candidate) Profit() float64 {
	return -c.ProfitStored
}

// Epoch is an identifier taken verbatim from a marker line together with
// the candidates recorded before the next marker.
type Epoch struct {
	ID         string      `json:"id"`
	Candidates []Candidate `json:"candidates"`
}

// State tells whether a Value holds a real measurement.
type State int

const (
	// Measured values carry a real number in V.
	Measured State = iota
	// NoSolution means the log held only sentinel values for the metric.
	NoSolution
	// NoData means the epoch had no candidates at all.
	NoData
)

func (s State) String() string {
	switch s {
	case Measured:
		return "measured"
	case NoSolution:
		return "no_solution"
	case NoData:
		return "no_data"
	default:
		return "unknown"
	}
}

// Value is an optional aggregate.
type Value struct {
	V     float64
	State State
}

// MeasuredValue wraps a real measurement.
func MeasuredValue(v float64) Value {
	return Value{V: v, State: Measured}
}

// Valid reports whether v holds a real measurement.
func (v Value) Valid() bool {
	return v.State == Measured
}

// Float converts v back to the log's external representation: NoSolution
// becomes the positive sentinel and NoData becomes NaN.
func (v Value) Float() float64 {
	switch v.State {
	case Measured:
		return v.V
	case NoSolution:
		return Sentinel
	default:
		return math.NaN()
	}
}

// MarshalJSON writes measured values as numbers, NoSolution as the
// sentinel and NoData as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.State {
	case Measured:
		return json.Marshal(v.V)
	case NoSolution:
		return json.Marshal(Sentinel)
	default:
		return []byte("null"), nil
	}
}

// Summary is the derived, read-only statistics of one epoch.
type Summary struct {
	EpochID    string `json:"epoch"`
	Candidates int    `json:"candidates"`
	MinTime    Value  `json:"min_time"`
	MaxProfit  Value  `json:"max_profit"`
	MeanTime   Value  `json:"mean_time"`
	MeanProfit Value  `json:"mean_profit"`
}

// Empty reports whether the epoch had no candidates.
func (s Summary) Empty() bool {
	return s.Candidates == 0
}

// Point is one (epoch, value) sample of a Series.
type Point struct {
	EpochID string
	Value   Value
}

// Series is the per-epoch sequence of one metric, as consumed by a chart.
type Series struct {
	Metric string // e.g. "minTimes"
	Label  string // legend entry, e.g. "times"
	Points []Point
}

// X returns the epoch identifiers of s in order.
func (s Series) X() []string {
	xs := make([]string, len(s.Points))
	for i, p := range s.Points {
		xs[i] = p.EpochID
	}
	return xs
}

// Y returns the values of s in order.
func (s Series) Y() []Value {
	ys := make([]Value, len(s.Points))
	for i, p := range s.Points {
		ys[i] = p.Value
	}
	return ys
}
