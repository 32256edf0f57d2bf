package aggregate

import (
	"fmt"
	"strings"

	"github.com/daryltucker/epoch-viz/internal/model"
)

// Metric names one per-epoch statistic that can be charted.
type Metric int

const (
	MinTime Metric = iota
	MaxProfit
	MeanTime
	MeanProfit
)

// Metrics lists every metric in chart order.
var Metrics = []Metric{MinTime, MaxProfit, MeanTime, MeanProfit}

// Label is the y-axis label, also used for output file names.
func (m Metric) Label() string {
	switch m {
	case MinTime:
		return "minTimes"
	case MaxProfit:
		return "maxProfits"
	case MeanTime:
		return "aveTimes"
	case MeanProfit:
		return "aveProfits"
	default:
		return fmt.Sprintf("metric%d", int(m))
	}
}

// SeriesLabel is the legend entry for the metric's line.
func (m Metric) SeriesLabel() string {
	switch m {
	case MaxProfit, MeanProfit:
		return "profits"
	default:
		return "times"
	}
}

func (m Metric) String() string {
	return m.Label()
}

// ParseMetric accepts a metric label such as "minTimes" (case-insensitive).
func ParseMetric(s string) (Metric, error) {
	for _, m := range Metrics {
		if strings.EqualFold(s, m.Label()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown metric %q", s)
}

func (m Metric) value(s model.Summary) model.Value {
	switch m {
	case MaxProfit:
		return s.MaxProfit
	case MeanTime:
		return s.MeanTime
	case MeanProfit:
		return s.MeanProfit
	default:
		return s.MinTime
	}
}

// Series extracts one metric from the summaries as (epoch, value) points.
func Series(summaries []model.Summary, m Metric) model.Series {
	points := make([]model.Point, len(summaries))
	for i, s := range summaries {
		points[i] = model.Point{EpochID: s.EpochID, Value: m.value(s)}
	}
	return model.Series{Metric: m.Label(), Label: m.SeriesLabel(), Points: points}
}
