package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/daryltucker/epoch-viz/internal/model"
)

// TableWriter prints aligned summary columns for terminals.
type TableWriter struct {
	tw *tabwriter.Writer
}

// NewTableWriter writes the header row and returns the writer.
// Rows are aligned on Close.
func NewTableWriter(w io.Writer) *TableWriter {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(CSVHeader, "\t")))
	return &TableWriter{tw: tw}
}

func (t *TableWriter) Write(s model.Summary) error {
	_, err := fmt.Fprintf(t.tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
		s.EpochID, s.Candidates,
		tableValue(s.MinTime), tableValue(s.MaxProfit),
		tableValue(s.MeanTime), tableValue(s.MeanProfit),
		Status(s))
	return err
}

func (t *TableWriter) Close() error {
	return t.tw.Flush()
}

func tableValue(v model.Value) string {
	switch v.State {
	case model.Measured:
		return fmt.Sprintf("%.4f", v.V)
	case model.NoSolution:
		return "none"
	default:
		return "-"
	}
}

// SummaryWriter is implemented by every summary format.
type SummaryWriter interface {
	Write(model.Summary) error
	Close() error
}

// Formats lists the names accepted by NewSummaryWriter.
var Formats = []string{"table", "csv", "json"}

// NewSummaryWriter returns the writer for format.
func NewSummaryWriter(format string, w io.Writer) (SummaryWriter, error) {
	switch strings.ToLower(format) {
	case "", "table":
		return NewTableWriter(w), nil
	case "csv":
		return NewCSVWriter(w)
	case "json", "jsonl":
		return NewJSONWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown summary format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

// WriteSummaries writes all summaries through sw and closes it.
func WriteSummaries(sw SummaryWriter, summaries []model.Summary) error {
	for _, s := range summaries {
		if err := sw.Write(s); err != nil {
			sw.Close()
			return fmt.Errorf("failed to write summary for epoch %s: %w", s.EpochID, err)
		}
	}
	return sw.Close()
}
