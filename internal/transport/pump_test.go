package transport

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vladimir-Herdman/Ultrasonic-Raycaster/internal/radar"
)

func TestPump_DeliversChunksInOrder(t *testing.T) {
	src := NewScripted("10:2", "0|30:", "40|")
	var chunks []string

	err := Pump(context.Background(), src, func(b []byte) {
		chunks = append(chunks, string(b))
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"10:2", "0|30:", "40|"}, chunks)
}

func TestPump_DrivesParser(t *testing.T) {
	src := NewScripted("abc|1", "0:5|90", ":4", "9|")
	p := radar.NewStreamParser()
	var readings []radar.Reading
	var errs []error

	err := Pump(context.Background(), src, func(b []byte) {
		for r, err := range p.Feed(b) {
			if err != nil {
				errs = append(errs, err)
				continue
			}
			readings = append(readings, r)
		}
	})

	require.NoError(t, err)
	assert.Equal(t, []radar.Reading{{Angle: 10, Distance: 5}, {Angle: 90, Distance: 49}}, readings)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], radar.ErrMalformedRecord)
}

func TestPump_ReadError(t *testing.T) {
	unplugged := errors.New("device unplugged")
	src := NewScripted("1:1|")
	src.Err = unplugged

	err := Pump(context.Background(), src, func([]byte) {})

	assert.ErrorIs(t, err, unplugged)
	assert.ErrorContains(t, err, "read transport")
}

func TestPump_ClosedSourceEndsCleanly(t *testing.T) {
	src := NewScripted("1:1|", "2:2|")
	require.NoError(t, src.Close())

	var got int
	err := Pump(context.Background(), src, func([]byte) { got++ })

	assert.NoError(t, err)
	assert.Zero(t, got)
}

func TestPump_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := NewScripted("1:1|")

	err := Pump(ctx, src, func([]byte) {})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, src.ReadCalls)
}

func TestPump_ChunksAreCopies(t *testing.T) {
	long := strings.Repeat("1:1|", 100) // Longer than one read buffer
	src := NewScripted(long)
	var chunks [][]byte

	require.NoError(t, Pump(context.Background(), src, func(b []byte) {
		chunks = append(chunks, b)
	}))

	require.Greater(t, len(chunks), 1)
	var sb strings.Builder
	for _, c := range chunks {
		sb.Write(c)
	}
	assert.Equal(t, long, sb.String())
}

func TestScripted_SplitsLargeChunks(t *testing.T) {
	src := NewScripted("abcdef")
	buf := make([]byte, 4)

	n, err := src.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "abcd", string(buf[:n]))

	n, err = src.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "ef", string(buf[:n]))

	_, err = src.Read(buf)
	assert.Error(t, err)
	assert.True(t, isClosed(err))
}
