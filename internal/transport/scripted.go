package transport

import (
	"io"
	"sync"
)

// Scripted is an in-memory Source that returns one scripted chunk per Read,
// then Err (io.EOF when nil). It stands in for the serial port in tests and
// replays.
type Scripted struct {
	mu     sync.Mutex
	chunks [][]byte
	Err    error

	ReadCalls int
	Closed    bool
}

// NewScripted creates a source that yields the given chunks in order.
func NewScripted(chunks ...string) *Scripted {
	s := &Scripted{}
	for _, c := range chunks {
		s.chunks = append(s.chunks, []byte(c))
	}
	return s
}

func (s *Scripted) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ReadCalls++
	if s.Closed {
		return 0, io.ErrClosedPipe
	}
	if len(s.chunks) == 0 {
		if s.Err != nil {
			return 0, s.Err
		}
		return 0, io.EOF
	}

	n := copy(p, s.chunks[0])
	if n < len(s.chunks[0]) {
		s.chunks[0] = s.chunks[0][n:]
	} else {
		s.chunks = s.chunks[1:]
	}
	return n, nil
}

func (s *Scripted) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Closed = true
	return nil
}
