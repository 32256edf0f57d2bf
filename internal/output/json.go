/*
PURPOSE:
  Writes epoch summaries as JSON Lines (NDJSON).
  Optimized for machine parsing (jq and friends).

REQUIREMENTS:
  User-specified:
  - JSON output for easier parsing.

  Implementation-discovered:
  - JSON has no NaN, so NoData values are written as null; NoSolution
    keeps the sentinel number (see model.Value.MarshalJSON).

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli (summary command)
  - Consumes: internal/model.Summary

ERROR HANDLING:
  - Returns error on write failure.

IMPLEMENTATION RULES:
  - Use encoding/json.NewEncoder.

USAGE:
  w := output.NewJSONWriter(os.Stdout)
  w.Write(summary)
  w.Close()

SELF-HEALING INSTRUCTIONS:
  - None specific.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update if we switch to plain JSON array (not recommended for streaming).
*/

package output

import (
	"encoding/json"
	"io"

	"github.com/daryltucker/epoch-viz/internal/model"
)

// JSONWriter handles writing summaries as JSON lines.
type JSONWriter struct {
	encoder *json.Encoder
}

type jsonSummary struct {
	model.Summary
	Status string `json:"status"`
}

// NewJSONWriter creates a new JSONWriter.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{encoder: json.NewEncoder(w)}
}

// Write writes a single summary as a JSON line.
func (jw *JSONWriter) Write(s model.Summary) error {
	return jw.encoder.Encode(jsonSummary{Summary: s, Status: Status(s)})
}

// Close is a no-op; the caller owns the underlying writer.
func (jw *JSONWriter) Close() error {
	return nil
}
