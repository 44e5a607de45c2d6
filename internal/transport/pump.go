// Package transport provides the byte sources the radar reads from and the
// blocking read loop that hands their bytes to the update loop.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Vladimir-Herdman/Ultrasonic-Raycaster/internal/config"
)

// Source is a blocking byte stream. Closing it must unblock a pending Read.
type Source interface {
	io.Reader
	io.Closer
}

// Pump reads src until EOF, a read error, ctx cancellation or the source
// being closed, passing each chunk to sink. Every chunk is a fresh copy, so
// sink may hand it to another goroutine. A closed source or EOF ends the
// pump without error.
//
// Cancellation is only noticed between reads; close the source to interrupt
// a blocked Read.
func Pump(ctx context.Context, src io.Reader, sink func([]byte)) error {
	buf := make([]byte, config.ReadBufferSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := src.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			sink(chunk)
		}
		if err != nil {
			if isClosed(err) {
				return nil
			}
			return fmt.Errorf("read transport: %w", err)
		}
	}
}

func isClosed(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrClosedPipe) ||
		isPortClosed(err)
}
