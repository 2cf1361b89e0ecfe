package renderer

import (
	"strings"
	"testing"

	"github.com/san-kum/prism/internal/terminal"
)

func TestKeyMapEvent(t *testing.T) {
	rk := func(r rune) terminal.Key { return terminal.Key{Code: terminal.KeyRune, Rune: r} }
	ck := func(c terminal.KeyCode) terminal.Key { return terminal.Key{Code: c} }

	tests := []struct {
		key  terminal.Key
		want Event
	}{
		{rk('q'), Quit{}},
		{ck(terminal.KeyCtrlC), Quit{}},
		{ck(terminal.KeyEscape), Quit{}},
		{rk(' '), TogglePause{}},
		{rk('+'), SpeedDelta{Delta: SpeedStep}},
		{rk('-'), SpeedDelta{Delta: -SpeedStep}},
		{ck(terminal.KeyTab), SelectParam{Dir: 1}},
		{ck(terminal.KeyBacktab), SelectParam{Dir: -1}},
		{ck(terminal.KeyRight), NudgeParam{Dir: 1}},
		{rk('h'), NudgeParam{Dir: -1}},
		{rk('p'), CyclePattern{Dir: 1}},
		{rk('P'), CyclePattern{Dir: -1}},
		{rk('t'), CycleTheme{Dir: 1}},
		{rk('.'), SceneStep{Dir: 1}},
		{ck(terminal.KeyDown), Scroll{Lines: 1}},
		{ck(terminal.KeyPageUp), ScrollPage{Dir: -1}},
		{ck(terminal.KeyEnd), ScrollEdge{Bottom: true}},
		{rk('r'), ResetClock{}},
		{rk('?'), ToggleHelp{}},
	}

	m := DefaultKeyMap()
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			got, ok := m.Event(tt.key)
			if !ok || got != tt.want {
				t.Errorf("expected %#v, got %#v (%v)", tt.want, got, ok)
			}
		})
	}

	if _, ok := m.Event(rk('x')); ok {
		t.Error("expected x to be unbound")
	}
}

func TestKeyMapDisabledBinding(t *testing.T) {
	m := DefaultKeyMap()
	m.Quit.SetEnabled(false)
	if _, ok := m.Event(terminal.Key{Code: terminal.KeyRune, Rune: 'q'}); ok {
		t.Error("expected disabled binding to be ignored")
	}
}

func TestHelpText(t *testing.T) {
	text := HelpText(DefaultKeyMap().ShortHelp())
	if !strings.HasPrefix(text, "q quit • space pause") {
		t.Errorf("unexpected help text %q", text)
	}
}
