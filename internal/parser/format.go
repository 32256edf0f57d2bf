package parser

import (
	"strconv"
	"strings"

	"github.com/daryltucker/epoch-viz/internal/model"
)

// FormatCandidate writes c in the decorated log form, e.g. "[1.5, -20]".
// Floats use the shortest representation that parses back to the same bits.
func FormatCandidate(c model.Candidate) string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(strconv.FormatFloat(c.Time, 'g', -1, 64))
	b.WriteString(", ")
	b.WriteString(strconv.FormatFloat(c.ProfitStored, 'g', -1, 64))
	b.WriteByte(']')
	return b.String()
}

// FormatEpoch writes the marker line followed by one line per candidate.
func FormatEpoch(e model.Epoch) string {
	var b strings.Builder
	b.WriteString(MarkerToken)
	b.WriteByte(' ')
	b.WriteString(e.ID)
	b.WriteByte('\n')
	for _, c := range e.Candidates {
		b.WriteString(FormatCandidate(c))
		b.WriteByte('\n')
	}
	return b.String()
}
