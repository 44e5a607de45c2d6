// Package window presents the radar in a desktop window.
package window

import (
	"context"
	"errors"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Vladimir-Herdman/Ultrasonic-Raycaster/internal/app"
	"github.com/Vladimir-Herdman/Ultrasonic-Raycaster/internal/config"
	"github.com/Vladimir-Herdman/Ultrasonic-Raycaster/internal/transport"
)

const chunkBacklog = 64

type exportResult struct {
	paths []string
	err   error
}

// game drives a session from ebiten's update loop. Transport chunks arrive
// on a channel and are applied in Update, so the session only ever runs on
// that goroutine.
type game struct {
	session *app.Session
	width   int
	height  int

	chunks  chan []byte
	closed  chan error
	exports chan exportResult

	img    *ebiten.Image
	imgSeq int
}

// Run opens the window, pumps source into session and blocks until the
// window is closed or Q is pressed.
func Run(session *app.Session, source transport.Source) error {
	frame, _ := session.Frame()
	b := frame.Bounds()

	g := &game{
		session: session,
		width:   b.Dx(),
		height:  b.Dy(),
		chunks:  make(chan []byte, chunkBacklog),
		closed:  make(chan error, 1),
		exports: make(chan exportResult, 1),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		g.closed <- transport.Pump(ctx, source, func(chunk []byte) {
			select {
			case g.chunks <- chunk:
			case <-ctx.Done():
			}
		})
	}()
	defer source.Close()

	ebiten.SetWindowTitle(config.WindowName)
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetTPS(60)

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (g *game) Update() error {
	g.drain()

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.session.Pause()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.session.Resume()
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		g.export()
	}
	return nil
}

// drain applies every chunk that is already waiting without blocking.
func (g *game) drain() {
	for {
		select {
		case chunk := <-g.chunks:
			g.session.Ingest(chunk)
		case err := <-g.closed:
			g.session.SourceClosed(err)
		case res := <-g.exports:
			if res.err != nil {
				log.Printf("export: %v", res.err)
			} else {
				log.Printf("exported %v", res.paths)
			}
		default:
			return
		}
	}
}

func (g *game) export() {
	job, err := g.session.ExportJob()
	if err != nil {
		log.Printf("export: %v", err)
		return
	}
	go func() {
		paths, err := job()
		g.exports <- exportResult{paths: paths, err: err}
	}()
}

func (g *game) Draw(screen *ebiten.Image) {
	frame, seq := g.session.Frame()
	if frame == nil {
		return
	}
	if g.img == nil {
		g.img = ebiten.NewImage(g.width, g.height)
	}
	if seq != g.imgSeq {
		g.img.WritePixels(frame.Pix)
		g.imgSeq = seq
	}
	screen.DrawImage(g.img, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
