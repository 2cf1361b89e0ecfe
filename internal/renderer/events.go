package renderer

import (
	"github.com/san-kum/prism/internal/gradient"
	"github.com/san-kum/prism/internal/pattern"
)

// Event is a discrete input applied between ticks.
type Event interface{ event() }

type (
	// TogglePause flips between Running and Paused.
	TogglePause struct{}
	// SpeedDelta adds Delta to the clock speed.
	SpeedDelta struct{ Delta float64 }
	// SelectParam moves the parameter cursor by Dir.
	SelectParam struct{ Dir int }
	// NudgeParam steps the selected parameter by Dir.
	NudgeParam struct{ Dir int }
	// SetParam assigns a parameter by name.
	SetParam struct {
		Name  string
		Value float64
	}
	// SetPattern swaps to Params, or to the defaults of Kind when Params is nil.
	SetPattern struct {
		Kind   pattern.Kind
		Params pattern.Params
	}
	CyclePattern struct{ Dir int }
	// SetTheme swaps to a named theme. A non-nil Gradient is installed as is,
	// otherwise the name is resolved through the theme source.
	SetTheme struct {
		Name     string
		Gradient *gradient.Gradient
	}
	CycleTheme struct{ Dir int }
	Scroll     struct{ Lines int }
	ScrollPage struct{ Dir int }
	ScrollEdge struct{ Bottom bool }
	// SceneStep moves the playlist by Dir scenes.
	SceneStep    struct{ Dir int }
	ResetClock   struct{}
	ToggleStatus struct{}
	ToggleHelp   struct{}
	Resize       struct{ Width, Height int }
	Quit         struct{}
)

func (TogglePause) event()  {}
func (SpeedDelta) event()   {}
func (SelectParam) event()  {}
func (NudgeParam) event()   {}
func (SetParam) event()     {}
func (SetPattern) event()   {}
func (CyclePattern) event() {}
func (SetTheme) event()     {}
func (CycleTheme) event()   {}
func (Scroll) event()       {}
func (ScrollPage) event()   {}
func (ScrollEdge) event()   {}
func (SceneStep) event()    {}
func (ResetClock) event()   {}
func (ToggleStatus) event() {}
func (ToggleHelp) event()   {}
func (Resize) event()       {}
func (Quit) event()         {}
