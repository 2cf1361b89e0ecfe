package gradient

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/prism/internal/mathx"
)

// Distribution remaps resolved stop positions. Every curve is a monotonic
// bijection on [0,1] that keeps both endpoints.
type Distribution uint8

const (
	Even Distribution = iota
	Front
	Back
	Center
	Alt
)

var distributionNames = [...]string{"even", "front", "back", "center", "alt"}

func (d Distribution) String() string {
	if int(d) < len(distributionNames) {
		return distributionNames[d]
	}
	return fmt.Sprintf("Distribution(%d)", d)
}

func ParseDistribution(s string) (Distribution, error) {
	s = normalizeName(s)
	if s == "" {
		return Even, nil
	}
	for i, n := range distributionNames {
		if n == s {
			return Distribution(i), nil
		}
	}
	return Even, fmt.Errorf("%w: distribution %q", ErrUnknownPolicy, s)
}

const (
	altWaves     = 2
	altAmplitude = 0.8
)

func (d Distribution) remap(p float64) float64 {
	switch d {
	case Front:
		return p * p
	case Back:
		q := 1 - p
		return 1 - q*q
	case Center:
		c := p - 0.5
		return 0.5 + 4*c*c*c
	case Alt:
		w := 2 * math.Pi * altWaves
		return p - altAmplitude*math.Sin(w*p)/w
	}
	return p
}

// RepeatMode decides how sample positions outside [0,1] are folded.
type RepeatMode uint8

const (
	None RepeatMode = iota
	Mirror
	Tile
	Pulse
	Rotate
)

var repeatNames = [...]string{"none", "mirror", "repeat", "pulse", "rotate"}

func (m RepeatMode) String() string {
	if int(m) < len(repeatNames) {
		return repeatNames[m]
	}
	return fmt.Sprintf("RepeatMode(%d)", m)
}

// Repeat is a repeat policy. Rate is only meaningful for Pulse and Rotate.
type Repeat struct {
	Mode RepeatMode
	Rate float64
}

func (r Repeat) String() string {
	if r.Mode == Pulse || r.Mode == Rotate {
		return fmt.Sprintf("%s(%s)", r.Mode, strconv.FormatFloat(r.Rate, 'g', -1, 64))
	}
	return r.Mode.String()
}

const defaultRate = 1.0

// ParseRepeat accepts none, mirror, repeat, pulse, rotate, and the
// rate-carrying forms pulse(r) and rotate(r).
func ParseRepeat(s string) (Repeat, error) {
	s = normalizeName(s)
	if s == "" {
		return Repeat{Mode: None}, nil
	}
	name, arg, hasArg := strings.Cut(s, "(")
	var mode RepeatMode
	found := false
	for i, n := range repeatNames {
		if n == name {
			mode, found = RepeatMode(i), true
			break
		}
	}
	if !found {
		return Repeat{}, fmt.Errorf("%w: repeat %q", ErrUnknownPolicy, s)
	}
	r := Repeat{Mode: mode}
	if mode == Pulse || mode == Rotate {
		r.Rate = defaultRate
	}
	if !hasArg {
		return r, nil
	}
	if mode != Pulse && mode != Rotate {
		return Repeat{}, fmt.Errorf("%w: %s takes no rate", ErrInvalidRepeatArg, name)
	}
	arg, ok := strings.CutSuffix(arg, ")")
	if !ok {
		return Repeat{}, fmt.Errorf("%w: %q", ErrInvalidRepeatArg, s)
	}
	rate, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
	if err != nil || !mathx.Finite(rate) {
		return Repeat{}, fmt.Errorf("%w: %q", ErrInvalidRepeatArg, s)
	}
	r.Rate = rate
	return r, nil
}

const pulseDepth = 0.25

// fold maps t into [0,1]. e is the speed-scaled elapsed time.
func (r Repeat) fold(t, e float64) float64 {
	switch r.Mode {
	case Mirror:
		u := math.Mod(t, 2)
		if u < 0 {
			u += 2
		}
		if u > 1 {
			u = 2 - u
		}
		return u
	case Tile:
		if t >= 0 && t <= 1 {
			return t
		}
		return mathx.Fract(t)
	case Pulse:
		return mathx.Clamp(t+pulseDepth*mathx.DefaultTrigTable.Sin(math.Pi*r.Rate*e), 0, 1)
	case Rotate:
		return mathx.Fract(t + e*r.Rate)
	}
	return mathx.Clamp(t, 0, 1)
}

// Easing shapes the fraction between two adjacent stops.
type Easing uint8

const (
	Linear Easing = iota
	Smooth
	Smoother
	Sine
	Exp
	Elastic
)

var easingNames = [...]string{"linear", "smooth", "smoother", "sine", "exp", "elastic"}

func (e Easing) String() string {
	if int(e) < len(easingNames) {
		return easingNames[e]
	}
	return fmt.Sprintf("Easing(%d)", e)
}

func ParseEasing(s string) (Easing, error) {
	s = normalizeName(s)
	if s == "" {
		return Linear, nil
	}
	for i, n := range easingNames {
		if n == s {
			return Easing(i), nil
		}
	}
	return Linear, fmt.Errorf("%w: easing %q", ErrUnknownPolicy, s)
}

// apply expects f strictly inside (0,1); callers handle the endpoints.
func (e Easing) apply(f float64) float64 {
	switch e {
	case Smooth:
		return f * f * (3 - 2*f)
	case Smoother:
		return f * f * f * (f*(f*6-15) + 10)
	case Sine:
		return 0.5 - 0.5*mathx.DefaultTrigTable.Cos(math.Pi*f)
	case Exp:
		return (math.Exp2(10*f) - 1) / 1023
	case Elastic:
		return math.Exp2(-10*f)*mathx.DefaultTrigTable.Sin((10*f-0.75)*(2*math.Pi/3)) + 1
	}
	return f
}

// Distributions, RepeatModes and Easings list the policy names for help text.
func Distributions() []string { return append([]string(nil), distributionNames[:]...) }
func RepeatModes() []string   { return append([]string(nil), repeatNames[:]...) }
func Easings() []string       { return append([]string(nil), easingNames[:]...) }

func normalizeName(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "")
}
