package renderer

import (
	"github.com/san-kum/prism/internal/gradient"
	"github.com/san-kum/prism/internal/mathx"
	"github.com/san-kum/prism/internal/pattern"
)

// crossfade blends the outgoing pattern and gradient into the new ones.
type crossfade struct {
	from     pattern.Sampler
	fromGrad *gradient.Gradient
	elapsed  float64
	duration float64
}

func (f *crossfade) alpha() float64 {
	return mathx.Smoothstep(mathx.Clamp01(f.elapsed / f.duration))
}

func (f *crossfade) done() bool { return f.elapsed >= f.duration }

// startFade captures what is on screen before a swap. Several swaps within
// one tick keep the first capture.
func (r *Renderer) startFade() {
	if !r.cfg.Smooth || r.buf == nil {
		return
	}
	if r.fade != nil && r.fade.elapsed == 0 {
		return
	}
	r.fade = &crossfade{
		from:     r.engine.Sampler(),
		fromGrad: r.grad,
		duration: r.cfg.Crossfade.Seconds(),
	}
}
