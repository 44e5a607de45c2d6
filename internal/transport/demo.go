package transport

import (
	"context"
	"io"
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/Vladimir-Herdman/Ultrasonic-Raycaster/internal/config"
)

// obstacle is a simulated object occupying an arc of the sweep.
type obstacle struct {
	from, to int // Degrees
	distance float64
	wobble   float64 // Amplitude of slow distance drift (cm)
}

var demoScene = []obstacle{
	{from: 20, to: 45, distance: 38, wobble: 3},
	{from: 70, to: 82, distance: 12, wobble: 2},
	{from: 100, to: 118, distance: 25, wobble: 6},
	{from: 150, to: 165, distance: 44, wobble: 2},
}

// Demo simulates the servo-mounted sensor: it sweeps 0→180→0 and writes
// wire-format records in randomly sized chunks, the way a serial port
// delivers them.
type Demo struct {
	rng      *rand.Rand
	interval time.Duration
	angle    int
	step     int
	elapsed  float64

	pr     *io.PipeReader
	pw     *io.PipeWriter
	cancel context.CancelFunc
}

// NewDemo creates a demo source. The same seed produces the same stream.
func NewDemo(seed int64, interval time.Duration) *Demo {
	pr, pw := io.Pipe()
	return &Demo{
		rng:      rand.New(rand.NewSource(seed)),
		interval: interval,
		step:     config.DemoStepDeg,
		pr:       pr,
		pw:       pw,
	}
}

// Start begins emitting records in a goroutine.
func (d *Demo) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	go d.loop(ctx)
}

func (d *Demo) loop(ctx context.Context) {
	defer d.pw.Close()

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := d.emit(d.nextRecord()); err != nil {
				return
			}
		}
	}
}

// emit writes record split at random points.
func (d *Demo) emit(record []byte) error {
	for len(record) > 0 {
		n := 1 + d.rng.Intn(config.DemoMaxChunk)
		if n > len(record) {
			n = len(record)
		}
		if _, err := d.pw.Write(record[:n]); err != nil {
			return err
		}
		record = record[n:]
	}
	return nil
}

// nextRecord advances the servo one step and measures.
func (d *Demo) nextRecord() []byte {
	angle := d.angle
	dist := d.measure(angle)

	d.elapsed += d.interval.Seconds()
	d.angle += d.step
	if d.angle > config.MaxAngle || d.angle < config.MinAngle {
		d.step = -d.step
		d.angle += 2 * d.step
	}

	rec := strconv.AppendInt(nil, int64(angle), 10)
	rec = append(rec, ':')
	rec = strconv.AppendInt(rec, int64(dist), 10)
	return append(rec, '|')
}

// measure returns the simulated echo distance at angle. Angles with no
// obstacle report well beyond the display range.
func (d *Demo) measure(angle int) int {
	for i, o := range demoScene {
		if angle < o.from || angle > o.to {
			continue
		}
		drift := o.wobble * math.Sin(d.elapsed*0.3+float64(i))
		noise := (d.rng.Float64()*2 - 1) * config.DemoNoiseCm
		dist := o.distance + drift + noise
		if dist < 0 {
			dist = 0
		}
		return int(dist)
	}
	return 200 + d.rng.Intn(800)
}

func (d *Demo) Read(p []byte) (int, error) {
	return d.pr.Read(p)
}

// Close stops the generator and unblocks any pending Read.
func (d *Demo) Close() error {
	if d.cancel != nil {
		d.cancel()
	}
	return d.pr.Close()
}
