package app

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vladimir-Herdman/Ultrasonic-Raycaster/internal/transport"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	require.True(t, ok)
	return am, cmd
}

func newTestModel(t *testing.T, exportDir string) (AppModel, *transport.Scripted) {
	t.Helper()
	src := transport.NewScripted()
	return New(newTestSession(t, exportDir), src, "scripted"), src
}

func TestAppModel_ChunksReachState(t *testing.T) {
	m, _ := newTestModel(t, "")

	m, _ = update(t, m, ChunkMsg("10:2"))
	m, _ = update(t, m, ChunkMsg("0|bad|30:40|"))

	st := m.Session().State()
	assert.Equal(t, 2, st.Stats().Readings)
	assert.Equal(t, 1, st.Stats().Malformed)
}

func TestAppModel_PauseAndResume(t *testing.T) {
	m, _ := newTestModel(t, "")

	m, _ = update(t, m, key("p"))
	assert.False(t, m.Session().Scanning())
	m, _ = update(t, m, ChunkMsg("10:20|"))
	assert.Zero(t, m.Session().State().Stats().Readings)

	m, _ = update(t, m, key("s"))
	m, _ = update(t, m, ChunkMsg("10:20|"))
	assert.Equal(t, 1, m.Session().State().Stats().Readings)
}

func TestAppModel_TickRefreshesTrail(t *testing.T) {
	m, _ := newTestModel(t, "")
	m, _ = update(t, m, ChunkMsg("10:20|11:21|"))
	assert.Empty(t, m.entries)

	m, cmd := update(t, m, TickMsg{})
	assert.NotNil(t, cmd)
	assert.Len(t, m.entries, 2)
	assert.Equal(t, 11, m.entries[0].Angle)
}

func TestAppModel_ExportWithoutDir(t *testing.T) {
	m, _ := newTestModel(t, "")

	m, cmd := update(t, m, key("x"))
	assert.Nil(t, cmd)
	assert.True(t, m.failed)
	assert.Contains(t, m.notice, "export directory not set")
}

func TestAppModel_ExportRunsAsCommand(t *testing.T) {
	m, _ := newTestModel(t, t.TempDir())
	m, _ = update(t, m, ChunkMsg("90:20|"))

	m, cmd := update(t, m, key("x"))
	require.NotNil(t, cmd)

	msg := cmd()
	exported, ok := msg.(ExportedMsg)
	require.True(t, ok)
	require.NoError(t, exported.Err)
	assert.Len(t, exported.Paths, 3)

	m, _ = update(t, m, exported)
	assert.False(t, m.failed)
	assert.Contains(t, m.notice, "exported 3 files")
}

func TestAppModel_SourceClosed(t *testing.T) {
	m, _ := newTestModel(t, "")

	m, _ = update(t, m, SourceClosedMsg{Err: errors.New("unplugged")})

	closed, err := m.Session().Closed()
	assert.True(t, closed)
	assert.EqualError(t, err, "unplugged")
	assert.True(t, m.failed)
	assert.Contains(t, m.notice, "unplugged")
}

func TestAppModel_QuitClosesSource(t *testing.T) {
	m, src := newTestModel(t, "")

	_, cmd := update(t, m, key("q"))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, src.Closed)
}

func TestAppModel_View(t *testing.T) {
	m, _ := newTestModel(t, "")
	assert.Equal(t, "Initializing radar...", m.View())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = update(t, m, ChunkMsg("45:20|"))
	m, _ = update(t, m, TickMsg{})

	v := m.View()
	assert.Contains(t, v, "Radar")
	assert.Contains(t, v, "TRAIL [1]")
	assert.Contains(t, v, "Readings: 1")

	m, _ = update(t, m, key("m"))
	assert.Contains(t, m.View(), "RANGE MAP")
}
