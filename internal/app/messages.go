package app

import "time"

// TickMsg triggers a refresh of the cached trail snapshot.
type TickMsg time.Time

// ChunkMsg carries bytes read from the transport.
type ChunkMsg []byte

// SourceClosedMsg reports that the transport pump has ended. Err is nil
// when the source reached EOF or was closed.
type SourceClosedMsg struct {
	Err error
}

// ExportedMsg reports the result of an export.
type ExportedMsg struct {
	Paths []string
	Err   error
}
