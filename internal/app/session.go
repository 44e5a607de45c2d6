package app

import (
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/Vladimir-Herdman/Ultrasonic-Raycaster/internal/export"
	"github.com/Vladimir-Herdman/Ultrasonic-Raycaster/internal/radar"
)

// ErrExportDisabled is returned when an export is requested without an
// export directory.
var ErrExportDisabled = errors.New("export directory not set")

// Session owns the radar state for one run and applies user controls to it.
// Both display surfaces drive a Session, always from their own update
// goroutine. It is the radar.Display the state draws onto: it keeps the
// latest frame for the surface to present.
type Session struct {
	state    *radar.State
	exporter *export.Exporter

	scanning bool
	closed   bool
	closeErr error

	frame  *image.RGBA
	frames int
}

// NewSession creates a session rendering with renderer. exportDir may be
// empty to disable exports.
func NewSession(renderer *radar.Renderer, exportDir string) *Session {
	s := &Session{scanning: true}
	if exportDir != "" {
		s.exporter = export.New(exportDir)
	}
	s.state = radar.NewState(renderer, s, radar.WithErrorReporter(func(err error) {
		log.Printf("radar: %v", err)
	}))
	if err := s.state.ShowTemplate(); err != nil {
		log.Printf("radar: %v", err)
	}
	return s
}

// Show keeps frame as the one to present.
func (s *Session) Show(frame *image.RGBA) error {
	s.frame = frame
	s.frames++
	return nil
}

// Frame returns the latest frame and how many frames have been shown so
// far. The count changes whenever the frame does.
func (s *Session) Frame() (*image.RGBA, int) {
	return s.frame, s.frames
}

// Ingest handles bytes from the transport. While paused the bytes are still
// parsed so the stream stays framed, but the readings are dropped.
func (s *Session) Ingest(chunk []byte) int {
	if !s.scanning {
		s.state.Discard(chunk)
		return 0
	}
	return s.state.Ingest(chunk)
}

// Pause stops applying readings.
func (s *Session) Pause() {
	s.scanning = false
}

// Resume applies readings again.
func (s *Session) Resume() {
	s.scanning = true
}

// Scanning reports whether readings are being applied.
func (s *Session) Scanning() bool {
	return s.scanning
}

// SourceClosed records that the transport has ended.
func (s *Session) SourceClosed(err error) {
	s.closed = true
	s.closeErr = err
	if err != nil {
		log.Printf("transport: %v", err)
	} else {
		log.Printf("transport: source closed")
	}
}

// Closed reports whether the transport has ended, and why.
func (s *Session) Closed() (bool, error) {
	return s.closed, s.closeErr
}

// State returns the radar state.
func (s *Session) State() *radar.State {
	return s.state
}

// ExportJob snapshots the current frame and range map and returns a job that
// writes them. The job touches no session state and may run on any
// goroutine.
func (s *Session) ExportJob() (func() ([]string, error), error) {
	if s.exporter == nil {
		return nil, ErrExportDisabled
	}
	frame := s.frame
	ranges := s.state.Ranges().Snapshot()
	exporter := s.exporter

	return func() ([]string, error) {
		var paths []string
		if frame != nil {
			path, err := exporter.Frame(frame)
			if err != nil {
				return paths, fmt.Errorf("export frame: %w", err)
			}
			paths = append(paths, path)
		}
		written, err := exporter.RangeMap(ranges)
		paths = append(paths, written...)
		if err != nil {
			return paths, fmt.Errorf("export range map: %w", err)
		}
		return paths, nil
	}, nil
}

// Finish exports the range map when exports are enabled and anything was
// mapped. It returns the written paths.
func (s *Session) Finish() ([]string, error) {
	if s.exporter == nil || s.state.Ranges().Len() == 0 {
		return nil, nil
	}
	paths, err := s.exporter.RangeMap(s.state.Ranges().Snapshot())
	if err != nil {
		return paths, fmt.Errorf("export range map: %w", err)
	}
	log.Printf("range map written to %v", paths)
	return paths, nil
}
