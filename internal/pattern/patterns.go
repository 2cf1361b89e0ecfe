package pattern

import (
	"math"

	"github.com/san-kum/prism/internal/mathx"
)

// Coord is a cell position in normalized, aspect-corrected space,
// roughly [-0.5, 0.5] on both axes.
type Coord struct {
	X, Y float64
}

// Normalize maps cell (x, y) of a w×h grid into normalized space. When
// correct is set, x is scaled by the character aspect ratio so circles
// stay round on cells that are taller than wide.
func Normalize(x, y, w, h int, correct bool, aspect float64) Coord {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := Coord{
		X: float64(x)/float64(w) - 0.5,
		Y: float64(y)/float64(h) - 0.5,
	}
	if correct {
		c.X *= aspect
	}
	return c
}

// tables are the shared read-only lookups handed to every generator.
type tables struct {
	trig  *mathx.TrigTable
	noise *mathx.Noise
}

const (
	pi    = math.Pi
	tau   = 2 * math.Pi
	toRad = math.Pi / 180
)

func horizontal(c Coord, t float64, p *HorizontalParams) float64 {
	v := mathx.Fract(c.X + 0.5 + t*0.5)
	if p.Invert {
		return 1 - v
	}
	return v
}

func diagonal(c Coord, t float64, p *DiagonalParams, tb tables) float64 {
	s, co := tb.trig.SinCos(p.Angle * toRad)
	pos := (c.X+0.5)*co + (c.Y+0.5)*s
	return mathx.Fract(pos + t*p.Frequency)
}

func plasma(c Coord, t float64, p *PlasmaParams, tb tables) float64 {
	sin := tb.trig.Sin
	time := t * pi
	x, y := c.X+0.5, c.Y+0.5
	base := p.Frequency * p.Scale * 2

	cx := 0.5 + 0.3*sin(time*0.4)
	cy := 0.5 + 0.3*tb.trig.Cos(time*0.43)
	d1 := math.Hypot(x-cx, y-cy)

	sum := sin(d1*6*base+time*0.6) * 0.8
	div := 0.8

	sum += sin(x*5*base+time*0.4)*1.2 + sin(y*5*base+time*0.47)*1.2
	div += 2.4

	sa, ca := tb.trig.SinCos(time * 0.2)
	rx := x*ca - y*sa
	ry := x*sa + y*ca
	sum += sin((rx+ry)*4*base) * 1.4
	div += 1.4

	sum += sin((x+y)*4*base+time*0.3) + sin((x-y)*4*base+time*0.35)
	div += 2

	for i := 0; i < int(p.Complexity); i++ {
		fi := float64(i)
		speed := 0.2 + fi*0.04
		ox := 0.5 + 0.4*sin(time*speed)
		oy := 0.5 + 0.4*tb.trig.Cos(time*speed+pi*0.3)
		dist := math.Hypot(x-ox, y-oy)
		w := 1 / (fi + 1)
		sum += sin(dist*(2.5+fi)*base+time*(0.4+fi*0.1)) * w
		div += w
	}

	n := sum / div * 1.1
	return (sin(n*pi*0.8) + 1) * 0.5
}

func ripple(c Coord, t float64, p *RippleParams, tb tables) float64 {
	sin := tb.trig.Sin
	dx := c.X + 0.5 - p.CenterX
	dy := c.Y + 0.5 - p.CenterY
	dist := math.Hypot(dx, dy)

	tf := t * p.Frequency * tau
	v := sin(dist/p.Wavelength*pi*10 + tf)
	amp := math.Max(math.Exp(-dist*p.Damping*5), 0.2)

	angle := 0.0
	if dx != 0 || dy != 0 {
		angle = math.Atan2(dy, dx)
	}
	mod := sin(tf*0.5)*0.3 +
		sin(tf+dist*pi*4)*0.2 +
		sin(tf*0.7)*sin(angle*2+tf*0.1)*0.2

	return (v*amp + mod + 1) * 0.5
}

func wave(c Coord, t float64, p *WaveParams, tb tables) float64 {
	sin := tb.trig.Sin
	timeBase := t * p.BaseFreq * pi
	slow := timeBase * 0.7
	phase := p.Phase + t*p.PhaseDrift*tau
	x, y := c.X+0.5, c.Y+0.5

	freq := p.Frequency * (1 + sin(slow*0.5)*0.2)
	primary := sin(x*freq*tau+phase+timeBase) * p.Amplitude
	secondary := sin(y*freq*pi+slow*0.7+x*pi*0.5) * p.Amplitude * 0.3
	travel := sin((x+y+slow*0.3)*tau) * 0.15

	d2 := c.X*c.X + c.Y*c.Y
	distMod := sin((math.Sqrt(d2)*4+slow)*pi) * 0.12 * math.Exp(-d2*2)
	pulse := sin(slow) * 0.08 * math.Max(1-d2, 0)

	return p.Offset + primary + secondary + travel + distMod + pulse
}

func spiral(c Coord, t float64, p *SpiralParams, tb tables) float64 {
	sin := tb.trig.Sin
	timeBase := t * p.Frequency * pi
	slow := timeBase * 0.3

	angle := math.Atan2(c.Y, c.X)
	if !p.Clockwise {
		angle = -angle
	}
	d2 := c.X*c.X + c.Y*c.Y
	dist := math.Sqrt(d2)

	rot := (p.Rotation + timeBase*10) * toRad
	flow := sin(dist*tau+slow) * 0.2
	expansion := 1 + sin(slow*0.5)*0.2
	sa := angle + dist*p.Density*p.Expansion*expansion + flow + rot

	primary := mathx.Fract((sa + slow) / tau)
	combined := primary +
		sin(dist*pi*1.5+slow*0.8)*0.15 +
		sin(slow*0.5+angle*2+dist*pi)*0.12 +
		math.Max(1-dist, 0)*sin(slow)*0.1

	smoothed := (sin(combined*tau) + 1) * 0.5
	return smoothed * math.Max(1-d2*0.1, 0.2)
}

func checkerboard(c Coord, t float64, p *CheckerboardParams, tb tables) float64 {
	x, y := c.X*p.Scale, c.Y*p.Scale
	s, co := tb.trig.SinCos((p.Rotation + t*45) * toRad)
	xr := x*co - y*s
	yr := x*s + y*co

	size := float64(p.Size) * (tb.trig.Sin(t*pi)*0.2 + 1)
	gx, gy := xr*size, yr*size
	base := 0.0
	if (int(math.Floor(gx))+int(math.Floor(gy)))&1 == 0 {
		base = 1
	}
	if p.Blur <= 0 {
		return base
	}

	fx, fy := mathx.Fract(gx), mathx.Fract(gy)
	edge := math.Min(math.Min(fx, 1-fx), math.Min(fy, 1-fy))
	width := p.Blur * (tb.trig.Sin(t*tau)*0.2 + 0.8) * 0.5
	if edge >= width {
		return base
	}
	k := 0.5 + 0.5*mathx.Smoothstep(edge/width)
	return base*k + (1-base)*(1-k)
}

func diamond(c Coord, t float64, p *DiamondParams, tb tables) float64 {
	sin := tb.trig.Sin
	s, co := tb.trig.SinCos(p.Rotation * toRad)
	xr := c.X*co - c.Y*s
	yr := c.X*s + c.Y*co

	time := t * pi * p.Speed
	anim := 1.0
	switch p.Mode {
	case "zoom":
		anim = 1 + sin(time*0.5)*0.5
	case "scroll":
		anim = 1 + time*0.1
	}

	scale := 2 * p.Size * anim
	d := math.Abs(xr*scale) + math.Abs(yr*scale)
	rep := d - math.Floor(d)
	sharp := p.Sharpness * (1 + sin(time*0.7)*0.2)
	v := mathx.Clamp01(sin(rep*sharp*pi) + p.Offset)

	d2 := xr*xr + yr*yr
	return v + sin(time*2)*0.05*math.Exp(-d2*3)
}

func perlin(c Coord, t float64, p *PerlinParams, tb tables) float64 {
	x, y := c.X+0.5, c.Y+0.5
	total, amp, freq, maxAmp := 0.0, 1.0, p.Scale, 0.0
	for i := 0; i < p.Octaves; i++ {
		total += tb.noise.Noise2D(x*freq+t, y*freq+t) * amp
		maxAmp += amp
		amp *= p.Persistence
		freq *= 2
	}
	return (total/maxAmp + 1) * 0.5
}

func fire(c Coord, t float64, p *FireParams, tb tables) float64 {
	x := c.X + 0.5
	y := 0.5 - c.Y
	time := t * p.Speed

	if p.Wind {
		off := tb.noise.Noise2D(x+time*1.5, y*2.5) * p.WindStrength * math.Pow(math.Max(y, 0), 0.8)
		x = mathx.Fract(x + off)
	}
	if y > p.Height {
		return 0
	}

	base := math.Pow(1-y/p.Height, 0.35)
	n := tb.noise.Noise2D
	turb := (n(x*6+time*2, y*6+time*3)*0.5 +
		n(x*12-time*1.5, y*12+time*2.5)*0.3 +
		n(x*18+time*3, y*15-time*4)*0.2) * p.Turbulence * (1 + y*0.5)

	v := math.Pow(math.Max(base*(1+turb), 0), 0.8) * p.Intensity
	if y < 0.3 && n(x*15+time*4, y*10-time*3) > 0.5 {
		v = math.Max(v, 0.85)
	}

	// steepen the mid range into distinct flame bands
	switch {
	case v < 0.2:
	case v < 0.4:
		v = 0.2 + (v-0.2)*2
	case v < 0.6:
		v = 0.4 + (v-0.4)*2
	case v < 0.8:
		v = 0.6 + (v-0.6)*2
	default:
		v = 0.8 + (v-0.8)*2
	}
	return v
}

func aurora(c Coord, t float64, p *AuroraParams, tb tables) float64 {
	sin := tb.trig.Sin
	x, y := c.X+0.5, c.Y+0.5
	if y > 0.8+p.Height || y < 0.1 {
		return 0
	}

	time := t * p.Speed
	slow := time * 0.3
	baseSin, baseCos := tb.trig.SinCos(slow)
	wx, wy := x*2+slow, y*2+slow*0.8
	wav := p.Waviness * 2
	boost := p.Intensity * 1.2

	total, maxV := 0.0, 0.0
	for i := 0; i < p.Layers; i++ {
		lo := float64(i) / float64(p.Layers)
		lp := lo * pi
		lx := wx + lo*slow*0.8
		ly := wy + lo*slow*0.6

		primary := tb.noise.Noise2D(lx*wav*(1+lo*0.5), ly*wav*(1+lo*0.3))
		detail := tb.noise.Noise2D(lx*wav*2, ly*wav*2)
		flow := (primary*2 - 1) + detail*0.5*(1+baseSin*0.3)

		pos := (y + flow*0.3*p.Waviness - (0.3 + lo*p.Spread)) / p.Height
		band := math.Exp(-pos * pos * 3)

		xw := x + flow*0.15*(1-lo*0.3)
		wv := (sin(xw*4+time+lp)*0.5 + 0.5) * (1 + sin(slow*1.5+lp)*0.3)
		curtain := sin(x*3+flow*0.15+slow+lp)*0.5 + 0.5
		intensity := boost * (1 - lo*0.2) * (1 + curtain*0.5)

		pulse := sin(slow*(1.5+lo)+lp)*0.25 + 0.85
		shimmer := tb.noise.Noise2D(x*10+time, y*10-time*0.5)*0.15 + 0.85

		total += band * wv * intensity * pulse * shimmer
		maxV += intensity
	}
	if maxV <= 0 {
		return 0
	}
	v := total / maxV * p.Intensity
	return 0.5 + (v-0.5)*(1.2+baseCos*0.1)
}

func kaleidoscope(c Coord, t float64, p *KaleidoscopeParams, tb tables) float64 {
	sin, cos := tb.trig.Sin, tb.trig.Cos
	baseTime := t * p.RotationSpeed * 0.5
	flowTime := t * p.ColorFlow * 0.3
	timeSin, timeCos := tb.trig.SinCos(baseTime * pi)
	flowSin, flowCos := tb.trig.SinCos(flowTime * pi)

	x, y := c.X*p.Zoom, c.Y*p.Zoom
	angle := math.Atan2(y, x)
	dist := math.Hypot(x, y)

	seg := tau / float64(p.Segments)
	m := math.Mod(angle, seg)
	if m < 0 {
		m += seg
	}
	if m > seg*0.5 {
		m = seg - m
	}
	total := m + baseTime*pi*0.3 + timeSin*0.2
	cx := float64(p.Complexity)

	v := 0.0
	spiralBase := total + dist*2 + baseTime
	for i := 0; i < p.Complexity; i++ {
		fi := float64(i)
		v += sin(spiralBase*(1+fi*0.7)+baseTime*(0.8+fi*0.3)) * (0.4 / (fi + 1))
	}
	v += sin(dist*6*cx-baseTime) * 0.4

	geo := cx * 2
	gt := baseTime * 0.5
	hx := x*geo*1.732 + gt
	hy := y*geo*2 + gt
	hz := (hx - hy*0.577) + gt
	v += sin(hx) * sin(hz) * sin(hy*1.155) * 0.3

	mandala := total*4 + baseTime
	for i := 0; i < 2; i++ {
		fi := float64(i)
		v += sin(dist*(3+fi)+baseTime*(0.5+fi*0.2)) * cos(mandala*(1+fi*0.5)) * 0.25
	}

	if p.Distortion > 0.001 {
		ns := 3 * cx
		v += tb.noise.Noise2D(x*ns+baseTime*0.7, y*ns-baseTime*0.5) * p.Distortion * 0.6
	}
	v += flowSin*0.25*(1+dist*2) + flowCos*0.15*(1+dist*3)

	intensity := math.Exp(-dist*0.6) * 1.4
	v *= intensity
	v += (timeSin*1.5*0.15 + timeCos*0.8*0.1) * (1 - dist)
	v += (1 - mathx.Fract(dist*float64(p.Segments)*0.5)) * 0.15 * intensity

	v = mathx.Clamp(v*0.6+0.5, 0.05, 0.95)
	v = math.Pow(v, 0.9)
	return (v - 0.05) / 0.9
}

func pixelRain(c Coord, t float64, p *PixelRainParams, tb tables) float64 {
	time := t * p.Speed
	x, y := c.X+0.5, c.Y+0.5

	cw := 0.015 * p.Density
	col := math.Floor(x / cw)
	dx := math.Abs(x-col*cw-cw/2) / cw
	if dx >= 0.5 {
		return 0
	}
	ci := int(col)
	h1 := tb.noise.Hash01(ci, 0)
	h2 := tb.noise.Hash01(ci*31, 0)
	h3 := tb.noise.Hash01(ci*73, 0)

	group := math.Floor(h1*4) / 4
	speed := 0.05 + (group*0.7+h2*0.3+h3*0.2)*0.8*p.SpeedVar
	stream := mathx.Fract(time*speed + h1*2000 + h2*1000)

	trail := p.Length * math.Max(1.2-speed, 0.3)
	chars := int(trail * 2)
	v := 0.0
	for i := 0; i < chars; i++ {
		cy := mathx.Fract(stream + float64(i)*0.1)
		if math.Abs(y-cy) >= 0.1 {
			continue
		}
		bright := 1.0
		if i > 0 {
			fade := math.Pow(1-float64(i)/float64(chars), 1.2+speed)
			bright = fade * (0.7 + h2*0.3)
		}
		pulse := tb.trig.Sin(time*2+h1*tau+float64(i)*0.5)*0.15 + 0.85
		v = math.Max(v, bright*pulse*(1-dx*2))
	}

	if p.Glitch && v > 0.1 {
		gt := time * p.GlitchFreq
		if int(math.Floor(gt*20))%(3+int(h1*4)) == 0 && h2 > 0.7 {
			v += tb.trig.Sin(gt+h1*pi*4) * 0.3 * v
		}
		if h1 > 0.95 && h2 > 0.98 && int(math.Floor(time*5))&1 == 0 {
			v = math.Max(v, 0.95)
		}
	}
	return v
}
