package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedMarker is returned for an "Epoch:" line without an identifier.
	ErrMalformedMarker = errors.New("malformed epoch marker")
	// ErrMalformedCandidate is returned for a candidate line with fewer than
	// two numbers or with a token that is not a finite number.
	ErrMalformedCandidate = errors.New("malformed candidate")
	// ErrCountMismatch reports that markers and candidate groups do not line up.
	// It is recoverable: the parse result is still returned.
	ErrCountMismatch = errors.New("epoch count mismatch")
)

// MarkerError describes a malformed epoch marker line.
type MarkerError struct {
	Line int
	Text string
}

func (e *MarkerError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, ErrMalformedMarker, e.Text)
}

func (e *MarkerError) Is(target error) bool {
	return target == ErrMalformedMarker
}

// CandidateError describes a malformed candidate line.
// Token is empty when the line simply has too few numbers.
type CandidateError struct {
	Line  int
	Text  string
	Token string
	Err   error
}

func (e *CandidateError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("line %d: %v: token %q in %q: %v", e.Line, ErrMalformedCandidate, e.Token, e.Text, e.Err)
	}
	return fmt.Sprintf("line %d: %v: %q: %v", e.Line, ErrMalformedCandidate, e.Text, e.Err)
}

func (e *CandidateError) Is(target error) bool {
	return target == ErrMalformedCandidate
}

func (e *CandidateError) Unwrap() error {
	return e.Err
}

// CountMismatchError is returned alongside a usable Result when the number
// of epoch markers differs from the number of candidate groups.
type CountMismatchError struct {
	Markers int
	Groups  int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("%v: %d epoch markers but %d candidate groups", ErrCountMismatch, e.Markers, e.Groups)
}

func (e *CountMismatchError) Is(target error) bool {
	return target == ErrCountMismatch
}
