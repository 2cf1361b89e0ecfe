package gradient

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/prism/internal/mathx"
)

// Stop is one color of a gradient. Pos is honoured only when HasPos is set.
// Name is display-only.
type Stop struct {
	Color  colorful.Color
	Pos    float64
	HasPos bool
	Name   string
}

// RGB builds a stop without an explicit position.
func RGB(r, g, b float64) Stop {
	return Stop{Color: colorful.Color{R: r, G: g, B: b}}
}

// At returns s with an explicit position.
func (s Stop) At(pos float64) Stop {
	s.Pos, s.HasPos = pos, true
	return s
}

// Spec is the uncompiled description of a gradient.
type Spec struct {
	Stops  []Stop
	Dist   Distribution
	Repeat Repeat
	Ease   Easing
	Speed  float64
}

// Gradient is a compiled Spec. The zero value is not usable; use Compile.
type Gradient struct {
	pos    []float64
	colors []colorful.Color
	names  []string
	dist   Distribution
	repeat Repeat
	ease   Easing
	speed  float64
}

// Validate checks stop count, channel ranges and explicit positions.
func (s Spec) Validate() error {
	if len(s.Stops) < 2 {
		return ErrTooFewStops
	}
	for i, st := range s.Stops {
		for _, ch := range [3]float64{st.Color.R, st.Color.G, st.Color.B} {
			if !mathx.Finite(ch) || ch < 0 || ch > 1 {
				return &StopError{Index: i, Err: ErrInvalidChannel}
			}
		}
		if st.HasPos && (!mathx.Finite(st.Pos) || st.Pos < 0 || st.Pos > 1) {
			return &StopError{Index: i, Err: ErrInvalidPosition}
		}
	}
	return nil
}

// Compile validates s and resolves its stop positions.
func Compile(s Spec) (*Gradient, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	n := len(s.Stops)
	g := &Gradient{
		pos:    resolvePositions(s.Stops),
		colors: make([]colorful.Color, n),
		names:  make([]string, n),
		dist:   s.Dist,
		repeat: s.Repeat,
		ease:   s.Ease,
		speed:  s.Speed,
	}
	if !(g.speed > 0) || !mathx.Finite(g.speed) {
		g.speed = 1
	}
	if !mathx.Finite(g.repeat.Rate) {
		g.repeat.Rate = defaultRate
	}
	for i, st := range s.Stops {
		g.colors[i] = st.Color
		g.names[i] = st.Name
	}
	for i := 1; i < n-1; i++ {
		g.pos[i] = g.dist.remap(g.pos[i])
	}
	return g, nil
}

// MustCompile is Compile for built-in specs known to be valid.
func MustCompile(s Spec) *Gradient {
	g, err := Compile(s)
	if err != nil {
		panic(err)
	}
	return g
}

// resolvePositions fills missing positions, forces them into a
// non-decreasing sequence and rescales so the ends are exactly 0 and 1.
func resolvePositions(stops []Stop) []float64 {
	n := len(stops)
	pos := make([]float64, n)
	known := make([]bool, n)
	explicit := 0
	for i, s := range stops {
		if s.HasPos {
			pos[i], known[i] = s.Pos, true
			explicit++
		}
	}
	if explicit == 0 {
		return uniform(n)
	}
	if !known[0] {
		pos[0], known[0] = 0, true
	}
	if !known[n-1] {
		pos[n-1], known[n-1] = 1, true
	}
	for i := 1; i < n; {
		if known[i] {
			i++
			continue
		}
		j := i
		for !known[j] {
			j++
		}
		lo, hi := pos[i-1], pos[j]
		span := float64(j - i + 1)
		for k := i; k < j; k++ {
			pos[k] = lo + (hi-lo)*float64(k-i+1)/span
		}
		i = j
	}

	for i := range pos {
		pos[i] = mathx.Clamp(pos[i], 0, 1)
		if i > 0 && pos[i] < pos[i-1] {
			pos[i] = pos[i-1]
		}
	}
	lo, hi := pos[0], pos[n-1]
	if hi-lo <= 0 {
		return uniform(n)
	}
	for i := range pos {
		pos[i] = (pos[i] - lo) / (hi - lo)
	}
	pos[0], pos[n-1] = 0, 1
	return pos
}

func uniform(n int) []float64 {
	pos := make([]float64, n)
	for i := range pos {
		pos[i] = float64(i) / float64(n-1)
	}
	pos[n-1] = 1
	return pos
}

// ColorAt samples the gradient at position t and elapsed seconds.
func (g *Gradient) ColorAt(t, elapsed float64) colorful.Color {
	if !mathx.Finite(t) {
		t = 0
	}
	e := elapsed * g.speed
	if !mathx.Finite(e) {
		e = 0
	}
	return g.lookup(g.repeat.fold(t, e))
}

// RGB8 is ColorAt quantised to 8-bit channels.
func (g *Gradient) RGB8(t, elapsed float64) [3]uint8 {
	r, gr, b := g.ColorAt(t, elapsed).RGB255()
	return [3]uint8{r, gr, b}
}

func (g *Gradient) lookup(u float64) colorful.Color {
	if u <= g.pos[0] {
		return g.colors[0]
	}
	last := len(g.pos) - 1
	for i := 0; i < last; i++ {
		a, b := g.pos[i], g.pos[i+1]
		if u > b {
			continue
		}
		span := b - a
		if span <= 0 {
			return g.colors[i]
		}
		f := (u - a) / span
		if f <= 0 {
			return g.colors[i]
		}
		if f >= 1 {
			return g.colors[i+1]
		}
		return g.colors[i].BlendRgb(g.colors[i+1], g.ease.apply(f)).Clamped()
	}
	return g.colors[last]
}

// Sample returns n colors spread evenly over [0,1], for swatches.
func (g *Gradient) Sample(n int, elapsed float64) []colorful.Color {
	if n < 1 {
		return nil
	}
	out := make([]colorful.Color, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = g.ColorAt(t, elapsed)
	}
	return out
}

// Positions returns a copy of the resolved stop positions.
func (g *Gradient) Positions() []float64 { return append([]float64(nil), g.pos...) }

// Stops returns the compiled stops with their resolved positions.
func (g *Gradient) Stops() []Stop {
	out := make([]Stop, len(g.pos))
	for i := range out {
		out[i] = Stop{Color: g.colors[i], Pos: g.pos[i], HasPos: true, Name: g.names[i]}
	}
	return out
}

func (g *Gradient) Distribution() Distribution { return g.dist }
func (g *Gradient) Repeat() Repeat             { return g.repeat }
func (g *Gradient) Easing() Easing             { return g.ease }
func (g *Gradient) Speed() float64             { return g.speed }
