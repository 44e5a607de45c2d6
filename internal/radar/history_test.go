package radar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vladimir-Herdman/Ultrasonic-Raycaster/internal/config"
)

func TestHistory_SizeInvariant(t *testing.T) {
	for _, n := range []int{0, 1, 39, 40, 41, 100} {
		h := NewHistory(config.HistoryCapacity)
		for i := 0; i < n; i++ {
			h.Push(Reading{Angle: i % 181, Distance: i})
		}

		want := min(n, config.HistoryCapacity)
		require.Equal(t, want, h.Len(), "after %d pushes", n)

		entries := h.Entries()
		require.Len(t, entries, want)
		for age, e := range entries {
			// Newest first: entry at age k is the (n-1-k)th push.
			assert.Equal(t, n-1-age, e.Distance)
			assert.Equal(t, age, e.Age)
		}
	}
}

func TestHistory_DuplicatesRetained(t *testing.T) {
	h := NewHistory(4)
	h.Push(Reading{90, 10})
	h.Push(Reading{90, 10})
	h.Push(Reading{90, 12})

	assert.Equal(t, []HistoryEntry{
		{Reading: Reading{90, 12}, Age: 0},
		{Reading: Reading{90, 10}, Age: 1},
		{Reading: Reading{90, 10}, Age: 2},
	}, h.Entries())
}

func TestHistory_Latest(t *testing.T) {
	h := NewHistory(2)
	_, ok := h.Latest()
	assert.False(t, ok)

	h.Push(Reading{1, 1})
	h.Push(Reading{2, 2})
	h.Push(Reading{3, 3})

	latest, ok := h.Latest()
	require.True(t, ok)
	assert.Equal(t, Reading{3, 3}, latest)
	assert.Equal(t, 2, h.Cap())
}

func TestHistory_AllStopsEarly(t *testing.T) {
	h := NewHistory(5)
	for i := 0; i < 5; i++ {
		h.Push(Reading{Angle: i})
	}

	var seen []int
	for age, r := range h.All() {
		seen = append(seen, r.Angle)
		if age == 1 {
			break
		}
	}
	assert.Equal(t, []int{4, 3}, seen)
}

func TestHistory_EmptyEntries(t *testing.T) {
	assert.Nil(t, NewHistory(3).Entries())
	assert.Equal(t, 1, NewHistory(0).Cap())
}
