/*
PURPOSE:
  Reads an optimizer log and splits it into epochs of (time, profit)
  candidates.

REQUIREMENTS:
  User-specified:
  - A line whose first token is "Epoch:" starts a new epoch; its second
    token is the identifier, kept verbatim.
  - Every other line is one candidate: bracket/comma decorated numbers,
    the first two being (time, stored profit).
  - Marker count must equal group count; a mismatch is reported, not
    swallowed, and does not throw away the parsed data.

  Implementation-discovered:
  - Optimizer logs are written by Java, so the sentinel shows up as
    1.7976931348623157E308. strconv handles the upper-case exponent.
  - Lines can be long for wide objective vectors; the scanner buffer is
    raised to 1 MiB.
  - Blank lines carry no tokens and are skipped.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine
  - Produces: []model.Epoch via Result.Epochs()

ERROR HANDLING:
  - Malformed markers and candidates fail fast with the 1-based line number.
  - Count mismatch returns (result, *CountMismatchError).

IMPLEMENTATION RULES:
  - No sign handling here. Profits stay as stored; the aggregator owns
    the negation.
  - One pass, no global state.

USAGE:
  res, err := parser.ParseFile("a280-n1395.txt")
  if err != nil && !errors.Is(err, parser.ErrCountMismatch) { return err }

SELF-HEALING INSTRUCTIONS:
  - If the optimizer changes its decoration, adjust cleanToken only.

RELATED FILES:
  - internal/parser/format.go
  - internal/aggregate/aggregator.go

MAINTENANCE:
  - Update MarkerToken if the optimizer renames its epoch banner.
*/

package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/daryltucker/epoch-viz/internal/model"
)

// MarkerToken is the first token of an epoch marker line.
const MarkerToken = "Epoch:"

const maxLineSize = 1024 * 1024

// Result is the outcome of one parse pass.
// Groups[i] holds the candidates read after IDs[i] when the counts match.
type Result struct {
	IDs    []string
	Groups [][]model.Candidate
	Lines  int
}

// Check returns a *CountMismatchError when IDs and Groups differ in length.
func (r *Result) Check() error {
	if len(r.IDs) != len(r.Groups) {
		return &CountMismatchError{Markers: len(r.IDs), Groups: len(r.Groups)}
	}
	return nil
}

// Epochs pairs identifiers with their groups. On a count mismatch only the
// first min(len(IDs), len(Groups)) pairs are returned.
func (r *Result) Epochs() []model.Epoch {
	n := min(len(r.IDs), len(r.Groups))
	epochs := make([]model.Epoch, n)
	for i := 0; i < n; i++ {
		epochs[i] = model.Epoch{ID: r.IDs[i], Candidates: r.Groups[i]}
	}
	return epochs
}

// Candidates returns the total number of parsed candidates.
func (r *Result) Candidates() int {
	total := 0
	for _, g := range r.Groups {
		total += len(g)
	}
	return total
}

// ParseFile opens path, parses it and closes it again on every path.
func ParseFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log %s: %w", path, err)
	}
	defer f.Close()

	res, err := Parse(f)
	if err != nil && !errors.Is(err, ErrCountMismatch) {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, err
}

// Parse reads the whole log from r.
//
// A fatal error returns a nil Result. A count mismatch returns the full
// Result together with a *CountMismatchError.
func Parse(r io.Reader) (*Result, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	res := &Result{IDs: []string{}, Groups: [][]model.Candidate{}}
	var current []model.Candidate
	scanned := false
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if fields[0] == MarkerToken {
			if len(fields) < 2 {
				return nil, &MarkerError{Line: lineNo, Text: line}
			}
			res.IDs = append(res.IDs, fields[1])
			// The first marker closes nothing; later ones close the
			// previous epoch, even when it stayed empty.
			if scanned {
				res.Groups = append(res.Groups, current)
			}
			current = []model.Candidate{}
			scanned = true
			continue
		}

		c, err := parseCandidate(fields)
		if err != nil {
			err.Line = lineNo
			err.Text = line
			return nil, err
		}
		current = append(current, c)
		scanned = true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log at line %d: %w", lineNo+1, err)
	}

	if scanned {
		if current == nil {
			current = []model.Candidate{}
		}
		res.Groups = append(res.Groups, current)
	}
	res.Lines = lineNo

	return res, res.Check()
}

func parseCandidate(fields []string) (model.Candidate, *CandidateError) {
	nums := make([]float64, 0, 2)
	for _, tok := range fields {
		v, err := parseNumber(tok)
		if err != nil {
			return model.Candidate{}, &CandidateError{Token: tok, Err: err}
		}
		nums = append(nums, v)
	}
	if len(nums) < 2 {
		return model.Candidate{}, &CandidateError{
			Err: fmt.Errorf("need at least 2 numbers, got %d", len(nums)),
		}
	}
	return model.Candidate{Time: nums[0], ProfitStored: nums[1]}, nil
}

func parseNumber(tok string) (float64, error) {
	v, err := strconv.ParseFloat(cleanToken(tok), 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			return 0, numErr.Err
		}
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("not a finite number")
	}
	return v, nil
}

// cleanToken strips one leading '[' and any trailing ',' or ']'.
func cleanToken(tok string) string {
	tok = strings.TrimPrefix(tok, "[")
	return strings.TrimRight(tok, ",]")
}
