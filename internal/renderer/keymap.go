package renderer

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/san-kum/prism/internal/terminal"
)

// KeyMap binds decoded keys to events.
type KeyMap struct {
	Quit        key.Binding
	Pause       key.Binding
	Faster      key.Binding
	Slower      key.Binding
	NextParam   key.Binding
	PrevParam   key.Binding
	Increase    key.Binding
	Decrease    key.Binding
	NextPattern key.Binding
	PrevPattern key.Binding
	NextTheme   key.Binding
	PrevTheme   key.Binding
	NextScene   key.Binding
	PrevScene   key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Reset       key.Binding
	Status      key.Binding
	Help        key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:        key.NewBinding(key.WithKeys("q", "esc", "ctrl+c", "ctrl+d"), key.WithHelp("q", "quit")),
		Pause:       key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "pause")),
		Faster:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "faster")),
		Slower:      key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "slower")),
		NextParam:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next param")),
		PrevParam:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev param")),
		Increase:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "increase")),
		Decrease:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "decrease")),
		NextPattern: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "next pattern")),
		PrevPattern: key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "prev pattern")),
		NextTheme:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "next theme")),
		PrevTheme:   key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "prev theme")),
		NextScene:   key.NewBinding(key.WithKeys(".", ">"), key.WithHelp(".", "next scene")),
		PrevScene:   key.NewBinding(key.WithKeys(",", "<"), key.WithHelp(",", "prev scene")),
		ScrollUp:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "scroll up")),
		ScrollDown:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "scroll down")),
		PageUp:      key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Top:         key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home", "top")),
		Bottom:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end", "bottom")),
		Reset:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset clock")),
		Status:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

func matches(k terminal.Key, b key.Binding) bool {
	return b.Enabled() && slices.Contains(b.Keys(), k.String())
}

// Event maps k to an event. The second result is false for unbound keys.
func (m KeyMap) Event(k terminal.Key) (Event, bool) {
	switch {
	case matches(k, m.Quit):
		return Quit{}, true
	case matches(k, m.Pause):
		return TogglePause{}, true
	case matches(k, m.Faster):
		return SpeedDelta{Delta: SpeedStep}, true
	case matches(k, m.Slower):
		return SpeedDelta{Delta: -SpeedStep}, true
	case matches(k, m.NextParam):
		return SelectParam{Dir: 1}, true
	case matches(k, m.PrevParam):
		return SelectParam{Dir: -1}, true
	case matches(k, m.Increase):
		return NudgeParam{Dir: 1}, true
	case matches(k, m.Decrease):
		return NudgeParam{Dir: -1}, true
	case matches(k, m.NextPattern):
		return CyclePattern{Dir: 1}, true
	case matches(k, m.PrevPattern):
		return CyclePattern{Dir: -1}, true
	case matches(k, m.NextTheme):
		return CycleTheme{Dir: 1}, true
	case matches(k, m.PrevTheme):
		return CycleTheme{Dir: -1}, true
	case matches(k, m.NextScene):
		return SceneStep{Dir: 1}, true
	case matches(k, m.PrevScene):
		return SceneStep{Dir: -1}, true
	case matches(k, m.ScrollUp):
		return Scroll{Lines: -1}, true
	case matches(k, m.ScrollDown):
		return Scroll{Lines: 1}, true
	case matches(k, m.PageUp):
		return ScrollPage{Dir: -1}, true
	case matches(k, m.PageDown):
		return ScrollPage{Dir: 1}, true
	case matches(k, m.Top):
		return ScrollEdge{}, true
	case matches(k, m.Bottom):
		return ScrollEdge{Bottom: true}, true
	case matches(k, m.Reset):
		return ResetClock{}, true
	case matches(k, m.Status):
		return ToggleStatus{}, true
	case matches(k, m.Help):
		return ToggleHelp{}, true
	}
	return nil, false
}

// ShortHelp lists the bindings shown on the help line.
func (m KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{m.Quit, m.Pause, m.Faster, m.Slower, m.NextPattern, m.NextTheme, m.NextParam, m.Increase, m.Decrease}
}

// HelpText renders bindings as "key desc" pairs separated by " • ".
func HelpText(bindings []key.Binding) string {
	var out []byte
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		if len(out) > 0 {
			out = append(out, " • "...)
		}
		h := b.Help()
		out = append(out, h.Key...)
		out = append(out, ' ')
		out = append(out, h.Desc...)
	}
	return string(out)
}
