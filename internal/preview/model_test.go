package preview

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/prism/internal/buffer"
	"github.com/san-kum/prism/internal/gradient"
	"github.com/san-kum/prism/internal/pattern"
	"github.com/san-kum/prism/internal/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeThemes map[string]*gradient.Gradient

func (f fakeThemes) Gradient(name string) (*gradient.Gradient, error) {
	g, ok := f[name]
	if !ok {
		return nil, fmt.Errorf("unknown theme %q", name)
	}
	return g, nil
}

func (f fakeThemes) Names() []string { return []string{"a", "b"} }

func newTestModel(t *testing.T) Model {
	t.Helper()
	themes := fakeThemes{
		"a": gradient.MustCompile(gradient.Spec{Stops: []gradient.Stop{gradient.RGB(1, 0, 0), gradient.RGB(0, 0, 1)}}),
		"b": gradient.MustCompile(gradient.Spec{Stops: []gradient.Stop{gradient.RGB(0, 1, 0), gradient.RGB(1, 1, 1)}}),
	}
	m, err := New(Options{Themes: themes, Pattern: pattern.Plasma, Theme: "b", Width: 12, Height: 4})
	require.NoError(t, err)
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func send(m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func TestNewPositionsCursor(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, int(pattern.Plasma), m.cursor[focusPatterns])
	assert.Equal(t, 1, m.cursor[focusThemes])
	assert.Equal(t, "b", m.Theme())
}

func TestNewUnknownTheme(t *testing.T) {
	_, err := New(Options{Themes: fakeThemes{}, Theme: "missing"})
	assert.Error(t, err)
}

func TestMovePattern(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(m, runes("j"))
	assert.Equal(t, pattern.Ripple, m.Pattern())

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, pattern.Diagonal, m.Pattern())
}

func TestMovePatternWraps(t *testing.T) {
	m := newTestModel(t)
	for range int(pattern.Plasma) + 1 {
		m, _ = send(m, runes("k"))
	}
	assert.Equal(t, pattern.PixelRain, m.Pattern())
}

func TestSwitchToThemes(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab}, runes("j"))
	assert.Equal(t, "a", m.Theme())
	assert.Equal(t, pattern.Plasma, m.Pattern())
	assert.NoError(t, m.Err())
}

func TestTickAdvancesClock(t *testing.T) {
	m := newTestModel(t)
	m, cmd := send(m, TickMsg(time.Now()), TickMsg(time.Now()), TickMsg(time.Now()))
	assert.NotNil(t, cmd)
	assert.InDelta(t, 3.0/fps, m.Time(), 1e-9)
	assert.Len(t, m.brightness, 3)
	for _, b := range m.brightness {
		assert.GreaterOrEqual(t, b, 0.0)
		assert.LessOrEqual(t, b, 1.0)
	}
}

func TestPauseFreezesClock(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(m, tea.KeyMsg{Type: tea.KeySpace})
	require.False(t, m.Running())
	m, _ = send(m, TickMsg(time.Now()))
	assert.Zero(t, m.Time())

	m, _ = send(m, runes("+"), tea.KeyMsg{Type: tea.KeySpace}, TickMsg(time.Now()))
	assert.InDelta(t, 1.1/fps, m.Time(), 1e-9)
}

func TestChooseQuits(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(m, runes("j"))
	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, Result{Pattern: pattern.Ripple, Theme: "b", Chosen: true}, m.Result())
}

func TestQuitWithoutChoice(t *testing.T) {
	m := newTestModel(t)
	m, cmd := send(m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.False(t, m.Result().Chosen)
}

func TestWindowSizeResizesCanvas(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	f := m.frame()
	assert.Equal(t, 100-listWidth-6, f.Width)
	assert.Equal(t, 22, f.Height)

	m, _ = send(m, tea.WindowSizeMsg{Width: 10, Height: 5})
	f = m.frame()
	assert.Equal(t, minCanvasWidth, f.Width)
	assert.Equal(t, minCanvasHeight, f.Height)
}

func TestViewListsPatternsAndThemes(t *testing.T) {
	m := newTestModel(t)
	view := m.View()
	assert.Contains(t, view, "PATTERNS")
	assert.Contains(t, view, "THEMES")
	assert.Contains(t, view, pattern.PixelRain.Name())
	assert.True(t, strings.Contains(view, "> "+pattern.Plasma.Name()))
}

func TestBrightness(t *testing.T) {
	m := newTestModel(t)
	f := m.frame()
	for i := range f.Cells {
		f.Cells[i].Color = buffer.RGB{255, 255, 255}
	}
	assert.InDelta(t, 1.0, brightness(f), 1e-9)
	assert.Zero(t, brightness(renderer.Frame{}))
}
