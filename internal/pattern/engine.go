package pattern

import (
	"fmt"
	"math"
	"time"

	"github.com/san-kum/prism/internal/logging"
	"github.com/san-kum/prism/internal/mathx"
	"golang.org/x/time/rate"
)

const (
	DefaultAspect = 0.5
	MinAspect     = 0.1
	MaxAspect     = 2.0
)

// Clock is the animation clock. Only Engine mutates it.
type Clock struct {
	Time   float64
	Speed  float64
	Paused bool
}

// Advance moves the clock by dt*Speed unless paused. Non-finite or
// negative dt is ignored.
func (c *Clock) Advance(dt float64) {
	if c.Paused || !(dt > 0) || math.IsInf(dt, 0) {
		return
	}
	c.Time += dt * c.Speed
}

// Options configures an Engine at construction.
type Options struct {
	Seed          uint32
	Speed         float64
	CorrectAspect bool
	Aspect        float64
}

// Engine owns the clock and the active pattern configuration.
// It is not safe for concurrent mutation; readers use Sampler.
type Engine struct {
	clock         Clock
	params        Params
	width, height int
	correctAspect bool
	aspect        float64
	tb            tables
}

var clampLog = &rate.Sometimes{First: 3, Interval: 10 * time.Second}

// NewEngine builds an engine for params. Nil params select the horizontal
// pattern with defaults.
func NewEngine(params Params, opts Options) *Engine {
	if params == nil {
		params = Defaults(Horizontal)
	}
	if !(opts.Speed > 0) {
		opts.Speed = 1
	}
	if opts.Aspect == 0 {
		opts.Aspect = DefaultAspect
	}
	e := &Engine{
		clock:         Clock{Speed: opts.Speed},
		width:         1,
		height:        1,
		correctAspect: opts.CorrectAspect,
		aspect:        mathx.Clamp(opts.Aspect, MinAspect, MaxAspect),
		tb: tables{
			trig:  mathx.DefaultTrigTable,
			noise: mathx.NewNoise(opts.Seed),
		},
	}
	e.SetParams(params)
	return e
}

// Update advances the clock by dt seconds scaled by speed.
func (e *Engine) Update(dt float64) { e.clock.Advance(dt) }

func (e *Engine) Clock() Clock     { return e.clock }
func (e *Engine) Time() float64    { return e.clock.Time }
func (e *Engine) Kind() Kind       { return e.params.Kind() }
func (e *Engine) Params() Params   { return e.params }
func (e *Engine) Seed() uint32     { return e.tb.noise.Seed() }
func (e *Engine) Size() (int, int) { return e.width, e.height }

func (e *Engine) SetPaused(p bool) { e.clock.Paused = p }

// SetSpeed sets the clock multiplier. Non-positive values are ignored.
func (e *Engine) SetSpeed(s float64) {
	if s > 0 && !math.IsInf(s, 0) {
		e.clock.Speed = s
	}
}

// SetTime places the clock at an absolute logical time, used for export.
func (e *Engine) SetTime(t float64) {
	if mathx.Finite(t) {
		e.clock.Time = t
	}
}

// Reset rewinds the clock to zero.
func (e *Engine) Reset() { e.clock.Time = 0 }

// Resize sets the grid the engine normalizes against.
func (e *Engine) Resize(width, height int) {
	e.width = max(width, 1)
	e.height = max(height, 1)
}

// SetParams installs a clamped copy of params. The caller's record is
// never retained, so later edits to it cannot tear a frame.
func (e *Engine) SetParams(params Params) {
	if params == nil {
		return
	}
	clamped, n := Clamp(params)
	if n > 0 {
		clampLog.Do(func() {
			logging.Logger().Debug("pattern params clamped", "pattern", params.Kind().String(), "fields", n)
		})
	}
	e.params = clamped
}

// SetPattern switches to k with default params.
func (e *Engine) SetPattern(k Kind) error {
	p := Defaults(k)
	if p == nil {
		return fmt.Errorf("%w: %d", ErrUnknownPattern, k)
	}
	e.SetParams(p)
	return nil
}

// ValueAt evaluates the active pattern at cell (x, y) for the current time.
func (e *Engine) ValueAt(x, y int) float64 {
	return e.Sampler().ValueAt(x, y)
}

// Sampler snapshots the engine for one tick.
func (e *Engine) Sampler() Sampler {
	return Sampler{
		params:        e.params,
		time:          e.clock.Time,
		width:         e.width,
		height:        e.height,
		correctAspect: e.correctAspect,
		aspect:        e.aspect,
		tb:            e.tb,
	}
}

// Sampler is an immutable per-tick view of an Engine. Copies may be used
// from any number of goroutines.
type Sampler struct {
	params        Params
	time          float64
	width, height int
	correctAspect bool
	aspect        float64
	tb            tables
}

func (s Sampler) Time() float64  { return s.time }
func (s Sampler) Params() Params { return s.params }

// At returns a copy of s evaluated at logical time t.
func (s Sampler) At(t float64) Sampler {
	s.time = t
	return s
}

// Resized returns a copy of s normalizing against a width x height grid.
func (s Sampler) Resized(width, height int) Sampler {
	s.width = max(width, 1)
	s.height = max(height, 1)
	return s
}

// ValueAt returns the pattern value for cell (x, y) in [0,1].
func (s Sampler) ValueAt(x, y int) float64 {
	return s.ValueAtCoord(Normalize(x, y, s.width, s.height, s.correctAspect, s.aspect))
}

var nonFiniteLog = &rate.Sometimes{First: 1, Interval: 30 * time.Second}

// ValueAtCoord dispatches to the active pattern. Non-finite results fall
// back to 0.5; everything else is clamped to [0,1].
func (s Sampler) ValueAtCoord(c Coord) float64 {
	v := s.eval(c)
	if !mathx.Finite(v) {
		nonFiniteLog.Do(func() {
			logging.Logger().Debug("pattern produced non-finite value", "pattern", s.params.Kind().String())
		})
		return 0.5
	}
	return mathx.Clamp01(v)
}

func (s Sampler) eval(c Coord) float64 {
	t := s.time
	switch p := s.params.(type) {
	case *HorizontalParams:
		return horizontal(c, t, p)
	case *DiagonalParams:
		return diagonal(c, t, p, s.tb)
	case *PlasmaParams:
		return plasma(c, t, p, s.tb)
	case *RippleParams:
		return ripple(c, t, p, s.tb)
	case *WaveParams:
		return wave(c, t, p, s.tb)
	case *SpiralParams:
		return spiral(c, t, p, s.tb)
	case *CheckerboardParams:
		return checkerboard(c, t, p, s.tb)
	case *DiamondParams:
		return diamond(c, t, p, s.tb)
	case *PerlinParams:
		return perlin(c, t, p, s.tb)
	case *FireParams:
		return fire(c, t, p, s.tb)
	case *AuroraParams:
		return aurora(c, t, p, s.tb)
	case *KaleidoscopeParams:
		return kaleidoscope(c, t, p, s.tb)
	case *PixelRainParams:
		return pixelRain(c, t, p, s.tb)
	}
	return 0.5
}
