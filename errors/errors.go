package errors

import "fmt"

// ParseError wraps a read failure with the input line it occurred on.
type ParseError struct {
	Line   int
	Record []string
	Err    error
}

func (e *ParseError) Error() string {
	if len(e.Record) == 0 {
		return fmt.Sprintf("parse error at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("parse error at line %d: %v (record: %v)", e.Line, e.Err, e.Record)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// RowError explains why a single row was not admitted.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row rejected at line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Row rejection reasons and configuration errors.
var (
	ErrMalformedTimestamp = fmt.Errorf("malformed timestamp")
	ErrMissingField       = fmt.Errorf("missing field")
	ErrAnomalousDuration  = fmt.Errorf("anomalous duration")
	ErrOutOfDomain        = fmt.Errorf("call received outside year filter")
	ErrInvalidYear        = fmt.Errorf("invalid year")
)
