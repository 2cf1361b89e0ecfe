package renderer

import (
	"math"
	"strings"

	"github.com/san-kum/prism/internal/logging"
	"github.com/san-kum/prism/internal/mathx"
	"github.com/san-kum/prism/internal/pattern"
	"github.com/san-kum/prism/internal/playlist"
)

// Handle applies one event. Events that change nothing return nil; an
// unknown theme or pattern is reported and leaves the current one in place.
func (r *Renderer) Handle(ev Event) error {
	switch ev := ev.(type) {
	case Quit:
		r.state = Terminating
	case TogglePause:
		next := Paused
		if r.state == Paused {
			next = Running
		}
		return r.setState(next)
	case SpeedDelta:
		s := mathx.Clamp(r.engine.Clock().Speed+ev.Delta, MinSpeed, MaxSpeed)
		r.engine.SetSpeed(math.Round(s*100) / 100)
	case SelectParam:
		if n := len(pattern.Names(r.engine.Params())); n > 0 {
			r.param = ((r.param+ev.Dir)%n + n) % n
		}
	case NudgeParam:
		name := r.SelectedParam()
		if name == "" {
			return nil
		}
		p, err := pattern.Nudge(r.engine.Params(), name, ev.Dir)
		if err != nil {
			return err
		}
		r.engine.SetParams(p)
	case SetParam:
		p, err := pattern.Set(r.engine.Params(), ev.Name, ev.Value)
		if err != nil {
			return err
		}
		r.engine.SetParams(p)
	case SetPattern:
		return r.setPattern(ev.Kind, ev.Params)
	case CyclePattern:
		list := pattern.List()
		i := (int(r.engine.Kind())+ev.Dir)%len(list) + len(list)
		return r.setPattern(list[i%len(list)].Kind, nil)
	case SetTheme:
		return r.setTheme(ev)
	case CycleTheme:
		names := r.themes.Names()
		if len(names) == 0 {
			return nil
		}
		i := 0
		for j, n := range names {
			if strings.EqualFold(n, r.theme) {
				i = (j + ev.Dir) % len(names)
				break
			}
		}
		return r.setTheme(SetTheme{Name: names[(i+len(names))%len(names)]})
	case Scroll:
		r.moveScroll(r.scroll.By(ev.Lines))
	case ScrollPage:
		r.moveScroll(r.scroll.Page(ev.Dir))
	case ScrollEdge:
		if ev.Bottom {
			r.moveScroll(r.scroll.End())
		} else {
			r.moveScroll(r.scroll.Home())
		}
	case SceneStep:
		if r.sched != nil && r.sched.Len() > 0 {
			return r.applyScene(r.sched.Step(ev.Dir))
		}
	case ResetClock:
		r.engine.Reset()
	case ToggleStatus:
		r.status = !r.status
		r.layout()
	case ToggleHelp:
		r.help = !r.help
		r.layout()
	case Resize:
		return r.Resize(ev.Width, ev.Height)
	}
	return nil
}

func (r *Renderer) moveScroll(changed bool) {
	if changed && r.buf != nil {
		r.buf.SetScroll(r.scroll.Top)
	}
}

func (r *Renderer) setPattern(k pattern.Kind, p pattern.Params) error {
	if p == nil {
		p = pattern.Defaults(k)
		if p == nil {
			return pattern.ErrUnknownPattern
		}
	}
	r.startFade()
	r.engine.SetParams(p)
	r.param = 0
	logging.Logger().Debug("pattern changed", "pattern", p.Kind().String())
	return nil
}

func (r *Renderer) setTheme(ev SetTheme) error {
	g := ev.Gradient
	if g == nil {
		var err error
		if g, err = r.themes.Gradient(ev.Name); err != nil {
			return err
		}
	}
	r.startFade()
	r.grad = g
	r.theme = ev.Name
	logging.Logger().Debug("theme changed", "theme", ev.Name)
	return nil
}

func (r *Renderer) applyScene(sc playlist.Scene) error {
	if err := r.setTheme(SetTheme{Name: sc.Theme}); err != nil {
		return err
	}
	return r.setPattern(sc.Params.Kind(), sc.Params)
}
