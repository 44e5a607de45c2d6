package radar

import "iter"

// HistoryEntry is a reading with its age in the history (0 = newest).
type HistoryEntry struct {
	Reading
	Age int
}

// History is a fixed-capacity circular buffer of readings, iterated newest
// first. Pushing into a full buffer evicts the oldest reading.
type History struct {
	buf   []Reading
	pos   int // Next write slot
	count int
}

// NewHistory creates a history holding at most capacity readings.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{
		buf: make([]Reading, capacity),
	}
}

// Push adds a reading at the front.
func (h *History) Push(r Reading) {
	h.buf[h.pos] = r
	h.pos = (h.pos + 1) % len(h.buf)
	if h.count < len(h.buf) {
		h.count++
	}
}

// All iterates the readings newest to oldest, yielding each with its age.
func (h *History) All() iter.Seq2[int, Reading] {
	return func(yield func(int, Reading) bool) {
		for age := 0; age < h.count; age++ {
			idx := (h.pos - 1 - age + 2*len(h.buf)) % len(h.buf)
			if !yield(age, h.buf[idx]) {
				return
			}
		}
	}
}

// Entries returns a copy of the history, newest first.
func (h *History) Entries() []HistoryEntry {
	if h.count == 0 {
		return nil
	}
	result := make([]HistoryEntry, 0, h.count)
	for age, r := range h.All() {
		result = append(result, HistoryEntry{Reading: r, Age: age})
	}
	return result
}

// Latest returns the most recent reading.
func (h *History) Latest() (Reading, bool) {
	if h.count == 0 {
		return Reading{}, false
	}
	return h.buf[(h.pos-1+len(h.buf))%len(h.buf)], true
}

// Len returns the number of stored readings.
func (h *History) Len() int {
	return h.count
}

// Cap returns the capacity.
func (h *History) Cap() int {
	return len(h.buf)
}
