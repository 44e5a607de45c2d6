package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Vladimir-Herdman/Ultrasonic-Raycaster/internal/config"
	"github.com/Vladimir-Herdman/Ultrasonic-Raycaster/internal/radar"
	"github.com/Vladimir-Herdman/Ultrasonic-Raycaster/internal/transport"
	"github.com/Vladimir-Herdman/Ultrasonic-Raycaster/internal/ui"
)

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	session *Session
	source  transport.Source
	cancel  context.CancelFunc

	// Half-block rendering of the last frame, rebuilt when the frame or
	// panel size changes.
	panel     string
	panelSeq  int
	panelSize [2]int
}

// AppModel is the root Bubble Tea model for the radar.
type AppModel struct {
	width  int
	height int

	sourceName   string
	showRanges   bool
	scrollOffset int
	notice       string
	failed       bool

	shared *shared

	// Cached snapshot
	entries []radar.HistoryEntry
}

// New creates a new AppModel reading from source.
func New(session *Session, source transport.Source, sourceName string) AppModel {
	return AppModel{
		sourceName: sourceName,
		shared: &shared{
			session: session,
			source:  source,
		},
	}
}

// Session returns the model's session.
func (m AppModel) Session() *Session {
	return m.shared.session
}

func (m AppModel) Init() tea.Cmd {
	return tickCmd()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.entries = m.shared.session.State().History().Entries()
		return m, tickCmd()

	case ChunkMsg:
		m.shared.session.Ingest(msg)
		return m, nil

	case SourceClosedMsg:
		m.shared.session.SourceClosed(msg.Err)
		if msg.Err != nil {
			m.notice, m.failed = "source error: "+msg.Err.Error(), true
		} else {
			m.notice, m.failed = "source closed", false
		}
		return m, nil

	case ExportedMsg:
		if msg.Err != nil {
			m.notice, m.failed = msg.Err.Error(), true
		} else {
			m.notice, m.failed = fmt.Sprintf("exported %d files to %s", len(msg.Paths), exportDir(msg.Paths)), false
		}
		return m, nil
	}

	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	session := m.shared.session

	switch msg.String() {
	case "q", "Q", "ctrl+c":
		m.StopSource()
		return m, tea.Quit

	case "s", "S":
		session.Resume()

	case "p", "P":
		session.Pause()

	case "m", "M":
		m.showRanges = !m.showRanges

	case "x", "X":
		job, err := session.ExportJob()
		if err != nil {
			m.notice, m.failed = err.Error(), true
			return m, nil
		}
		return m, func() tea.Msg {
			paths, err := job()
			return ExportedMsg{Paths: paths, Err: err}
		}

	case "up", "k":
		if m.scrollOffset > 0 {
			m.scrollOffset--
		}

	case "down", "j":
		if m.scrollOffset < len(m.entries)-1 {
			m.scrollOffset++
		}

	case "home":
		m.scrollOffset = 0

	case "end":
		if len(m.entries) > 0 {
			m.scrollOffset = len(m.entries) - 1
		}
	}

	return m, nil
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing radar..."
	}

	menuH := 1
	statusH := 1
	bodyH := m.height - menuH - statusH
	if bodyH < 5 {
		bodyH = 5
	}

	radarW := m.width * 3 / 4
	if radarW < 30 {
		radarW = 30
	}
	listW := m.width - radarW
	if listW < 15 {
		listW = 15
		radarW = m.width - listW
	}

	session := m.shared.session
	menuBar := ui.RenderMenuBar(m.width, m.sourceName, session.Scanning())

	var radarPanel string
	if m.showRanges {
		radarPanel = ui.RenderRangePanel(session.State().Ranges(), radarW, bodyH)
	} else {
		radarPanel = m.radarPanel(radarW, bodyH)
	}

	trailList := ui.RenderTrailList(m.entries, listW, bodyH, m.scrollOffset)

	statusBar := ui.RenderStatusBar(m.width, ui.StatusInfo{
		Scanning: session.Scanning(),
		Stats:    session.State().Stats(),
		Mapped:   session.State().Ranges().Len(),
		Pending:  session.State().Pending(),
		Notice:   m.notice,
		Failed:   m.failed,
	})

	return ui.ComposeLayout(menuBar, radarPanel, trailList, statusBar, bodyH)
}

func (m AppModel) radarPanel(width, height int) string {
	sh := m.shared
	frame, seq := sh.session.Frame()
	size := [2]int{width, height}
	if sh.panel == "" || seq != sh.panelSeq || size != sh.panelSize {
		sh.panel = ui.RenderRadarPanel(width, height, frame)
		sh.panelSeq = seq
		sh.panelSize = size
	}
	return sh.panel
}

// StartSource pumps the transport into p on its own goroutine. Must be
// called before p.Run().
func (m *AppModel) StartSource(p *tea.Program) {
	ctx, cancel := context.WithCancel(context.Background())
	m.shared.cancel = cancel
	go func() {
		err := transport.Pump(ctx, m.shared.source, func(chunk []byte) {
			p.Send(ChunkMsg(chunk))
		})
		p.Send(SourceClosedMsg{Err: err})
	}()
}

// StopSource ends the pump by closing the transport.
func (m *AppModel) StopSource() {
	if m.shared.cancel != nil {
		m.shared.cancel()
	}
	if m.shared.source != nil {
		_ = m.shared.source.Close()
	}
}

func exportDir(paths []string) string {
	if len(paths) == 0 {
		return "?"
	}
	return filepath.Dir(paths[0])
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(config.TargetFPS), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
