package radar

import (
	"errors"
	"fmt"
	"image"

	"github.com/Vladimir-Herdman/Ultrasonic-Raycaster/internal/config"
)

// Display receives every rendered frame. Show is called synchronously from
// the update loop and should return once the frame has been handed off.
type Display interface {
	Show(frame *image.RGBA) error
}

// DisplayFunc adapts a function to the Display interface.
type DisplayFunc func(frame *image.RGBA) error

// Show calls f(frame).
func (f DisplayFunc) Show(frame *image.RGBA) error {
	return f(frame)
}

// Stats counts what the state has processed since it was created.
type Stats struct {
	Readings      int
	Malformed     int
	InvalidNumber int
	DisplayErrors int
}

// ParseErrors returns the total of skipped records.
func (s Stats) ParseErrors() int {
	return s.Malformed + s.InvalidNumber
}

// State owns the parser, history, range map and renderer, and pushes a new
// frame to the display for every reading. It is not safe for concurrent
// use; all calls must come from the same goroutine.
type State struct {
	parser   *StreamParser
	history  *History
	ranges   *RangeMap
	renderer *Renderer
	display  Display
	report   func(error)

	latest    Reading
	hasLatest bool
	stats     Stats
}

// Option configures a State.
type Option func(*State)

// WithHistoryCapacity overrides the trail length.
func WithHistoryCapacity(n int) Option {
	return func(s *State) {
		s.history = NewHistory(n)
	}
}

// WithErrorReporter sets the function that receives skipped-record and
// display errors. The default drops them.
func WithErrorReporter(fn func(error)) Option {
	return func(s *State) {
		if fn != nil {
			s.report = fn
		}
	}
}

// NewState creates a State drawing with renderer onto display.
func NewState(renderer *Renderer, display Display, opts ...Option) *State {
	s := &State{
		parser:   NewStreamParser(),
		history:  NewHistory(config.HistoryCapacity),
		ranges:   NewRangeMap(),
		renderer: renderer,
		display:  display,
		report:   func(error) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest feeds raw transport bytes through the parser and observes every
// complete reading. Skipped records are reported and counted. It returns the
// number of readings observed.
func (s *State) Ingest(chunk []byte) int {
	n := 0
	for reading, err := range s.parser.Feed(chunk) {
		if err != nil {
			s.countParseError(err)
			s.report(err)
			continue
		}
		if err := s.Observe(reading); err != nil {
			s.report(err)
		}
		n++
	}
	return n
}

// Discard feeds chunk through the parser and drops every complete record.
// Framing stays aligned while readings are not wanted. It returns the number
// of readings dropped.
func (s *State) Discard(chunk []byte) int {
	n := 0
	for _, err := range s.parser.Feed(chunk) {
		if err == nil {
			n++
		}
	}
	return n
}

// Observe records a reading, redraws the frame and hands it to the display.
// A display error is returned but the reading is still recorded.
func (s *State) Observe(r Reading) error {
	s.history.Push(r)
	s.latest = r
	s.hasLatest = true
	s.stats.Readings++

	var showErr error
	frame := s.renderer.Render(s.history, r)
	if err := s.display.Show(frame); err != nil {
		s.stats.DisplayErrors++
		showErr = fmt.Errorf("show frame for %s: %w", r, err)
	}

	s.ranges.Record(r)
	return showErr
}

// ShowTemplate draws the empty radar. Used before the first reading arrives.
func (s *State) ShowTemplate() error {
	if err := s.display.Show(s.renderer.Template()); err != nil {
		s.stats.DisplayErrors++
		return fmt.Errorf("show template: %w", err)
	}
	return nil
}

func (s *State) countParseError(err error) {
	switch {
	case errors.Is(err, ErrMalformedRecord):
		s.stats.Malformed++
	case errors.Is(err, ErrInvalidNumber):
		s.stats.InvalidNumber++
	}
}

// History returns the trail history.
func (s *State) History() *History {
	return s.history
}

// Ranges returns the first-seen range map.
func (s *State) Ranges() *RangeMap {
	return s.ranges
}

// Latest returns the most recent reading.
func (s *State) Latest() (Reading, bool) {
	return s.latest, s.hasLatest
}

// Stats returns the processing counters.
func (s *State) Stats() Stats {
	return s.stats
}

// Pending returns the bytes buffered in the parser.
func (s *State) Pending() int {
	return s.parser.Pending()
}
