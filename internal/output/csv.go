/*
PURPOSE:
  Writes epoch summaries as CSV.

REQUIREMENTS:
  User-specified:
  - One row per epoch, in log order.

  Implementation-discovered:
  - Spreadsheet users paste these next to the old tool's numbers, so
    "no solution" is written as the literal sentinel the optimizer uses
    and "no data" as an empty cell.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (summary command)
  - Consumes: internal/model.Summary

ERROR HANDLING:
  - Returns error on write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Flush() after every write.

USAGE:
  w, err := output.NewCSVWriter(os.Stdout)
  w.Write(summary)
  w.Close()

SELF-HEALING INSTRUCTIONS:
  - If Summary gains fields, update header and record conversion.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update Write() mapping when Summary struct changes.
*/

package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/daryltucker/epoch-viz/internal/model"
)

// CSVHeader is the first row written by CSVWriter.
var CSVHeader = []string{
	"epoch", "candidates",
	"min_time", "max_profit", "mean_time", "mean_profit",
	"status",
}

// CSVWriter handles writing summaries to CSV.
type CSVWriter struct {
	writer *csv.Writer
}

// NewCSVWriter creates a new CSVWriter and writes the header.
func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return nil, err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	return &CSVWriter{writer: cw}, nil
}

// Write writes a single summary row.
func (cw *CSVWriter) Write(s model.Summary) error {
	record := []string{
		s.EpochID,
		strconv.Itoa(s.Candidates),
		FormatValue(s.MinTime),
		FormatValue(s.MaxProfit),
		FormatValue(s.MeanTime),
		FormatValue(s.MeanProfit),
		Status(s),
	}

	if err := cw.writer.Write(record); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close flushes pending rows.
func (cw *CSVWriter) Close() error {
	cw.writer.Flush()
	return cw.writer.Error()
}

// FormatValue renders v at the external boundary: shortest float text,
// the literal sentinel for NoSolution, empty for NoData.
func FormatValue(v model.Value) string {
	switch v.State {
	case model.Measured, model.NoSolution:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	default:
		return ""
	}
}

// Status summarizes the worst state of a summary's values.
func Status(s model.Summary) string {
	if s.Empty() {
		return model.NoData.String()
	}
	for _, v := range []model.Value{s.MinTime, s.MaxProfit, s.MeanTime, s.MeanProfit} {
		if v.State != model.Measured {
			return v.State.String()
		}
	}
	return model.Measured.String()
}
