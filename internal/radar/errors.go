package radar

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord matches records without a field separator.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrInvalidNumber matches records whose fields are not valid readings.
	ErrInvalidNumber = errors.New("invalid number")
)

// MalformedRecordError is reported for a record missing the ':' separator.
type MalformedRecordError struct {
	Record string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record %q: missing ':' separator", e.Record)
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// InvalidNumberError is reported for a record whose angle or distance is not
// an unsigned decimal integer, or whose angle is outside the sweep.
type InvalidNumberError struct {
	Record string
	Field  string // "angle" or "distance"
	Value  string
	Err    error
}

func (e *InvalidNumberError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("record %q: invalid %s %q: %v", e.Record, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("record %q: invalid %s %q", e.Record, e.Field, e.Value)
}

func (e *InvalidNumberError) Is(target error) bool {
	return target == ErrInvalidNumber
}

func (e *InvalidNumberError) Unwrap() error {
	return e.Err
}
