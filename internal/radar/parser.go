package radar

import (
	"bytes"
	"errors"
	"iter"
	"strconv"
	"strings"

	"github.com/Vladimir-Herdman/Ultrasonic-Raycaster/internal/config"
)

const (
	// Delimiter terminates every record on the wire.
	Delimiter = '|'
	// Separator splits a record into angle and distance.
	Separator = ':'
)

var errOutsideSweep = errors.New("outside sweep")

// StreamParser decodes the sensor byte stream into readings. Bytes that do
// not yet form a complete record are kept until the next Feed, so chunks may
// split a record anywhere. The accumulator is unbounded; a stream that never
// sends a delimiter grows it forever.
type StreamParser struct {
	buf []byte
}

// NewStreamParser creates a parser with an empty accumulator.
func NewStreamParser() *StreamParser {
	return &StreamParser{}
}

// Feed appends chunk to the accumulator and returns a sequence over the
// complete records now available. Each step yields either a reading or the
// error for a skipped record. Records not consumed because the caller
// stopped early stay buffered for the next Feed.
func (p *StreamParser) Feed(chunk []byte) iter.Seq2[Reading, error] {
	p.buf = append(p.buf, chunk...)

	return func(yield func(Reading, error) bool) {
		for {
			i := bytes.IndexByte(p.buf, Delimiter)
			if i < 0 {
				return
			}
			record := string(p.buf[:i])
			p.buf = p.buf[i+1:]
			if len(p.buf) == 0 {
				p.buf = nil
			}

			if !yield(decodeRecord(record)) {
				return
			}
		}
	}
}

// Pending returns the number of buffered bytes not yet terminated by a
// delimiter (plus any complete records left unconsumed).
func (p *StreamParser) Pending() int {
	return len(p.buf)
}

// Reset drops all buffered bytes.
func (p *StreamParser) Reset() {
	p.buf = nil
}

func decodeRecord(record string) (Reading, error) {
	angleStr, distStr, ok := strings.Cut(record, string(Separator))
	if !ok {
		return Reading{}, &MalformedRecordError{Record: record}
	}

	angle, err := parseField(angleStr)
	if err != nil {
		return Reading{}, &InvalidNumberError{Record: record, Field: "angle", Value: angleStr, Err: err}
	}
	if angle < config.MinAngle || angle > config.MaxAngle {
		return Reading{}, &InvalidNumberError{Record: record, Field: "angle", Value: angleStr, Err: errOutsideSweep}
	}

	dist, err := parseField(distStr)
	if err != nil {
		return Reading{}, &InvalidNumberError{Record: record, Field: "distance", Value: distStr, Err: err}
	}

	return Reading{Angle: angle, Distance: dist}, nil
}

// parseField accepts only unsigned ASCII decimal digits.
func parseField(s string) (int, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Only overflow can get here.
		return 0, strconv.ErrRange
	}
	return n, nil
}
