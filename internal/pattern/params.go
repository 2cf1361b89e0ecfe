package pattern

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// FieldKind is the storage type of a parameter.
type FieldKind uint8

const (
	FloatField FieldKind = iota
	IntField
	BoolField
	ChoiceField
)

// Field describes one named parameter and its closed range.
// Bool fields use 0 and 1; choice fields use the index into Choices.
type Field struct {
	Name    string
	Kind    FieldKind
	Min     float64
	Max     float64
	Default float64
	Step    float64
	Choices []string
}

type binding struct {
	Field
	f *float64
	i *int
	b *bool
	s *string
}

func floatField(name string, lo, hi, def, step float64, p *float64) binding {
	return binding{Field: Field{Name: name, Kind: FloatField, Min: lo, Max: hi, Default: def, Step: step}, f: p}
}

func intField(name string, lo, hi, def int, p *int) binding {
	return binding{Field: Field{Name: name, Kind: IntField, Min: float64(lo), Max: float64(hi), Default: float64(def), Step: 1}, i: p}
}

func boolField(name string, def bool, p *bool) binding {
	d := 0.0
	if def {
		d = 1
	}
	return binding{Field: Field{Name: name, Kind: BoolField, Min: 0, Max: 1, Default: d, Step: 1}, b: p}
}

func choiceField(name string, choices []string, def int, p *string) binding {
	return binding{Field: Field{Name: name, Kind: ChoiceField, Min: 0, Max: float64(len(choices) - 1), Default: float64(def), Step: 1, Choices: choices}, s: p}
}

func (b binding) get() float64 {
	switch b.Kind {
	case IntField:
		return float64(*b.i)
	case BoolField:
		if *b.b {
			return 1
		}
		return 0
	case ChoiceField:
		for i, c := range b.Choices {
			if c == *b.s {
				return float64(i)
			}
		}
		return b.Default
	default:
		return *b.f
	}
}

// set stores v clamped to the field range and reports whether clamping changed it.
func (b binding) set(v float64) bool {
	changed := false
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v, changed = b.Default, true
	}
	if v < b.Min {
		v, changed = b.Min, true
	}
	if v > b.Max {
		v, changed = b.Max, true
	}
	switch b.Kind {
	case IntField:
		*b.i = int(math.Round(v))
	case BoolField:
		*b.b = v >= 0.5
	case ChoiceField:
		*b.s = b.Choices[int(math.Round(v))]
	default:
		*b.f = v
	}
	return changed
}

func (b binding) text() string {
	switch b.Kind {
	case IntField:
		return strconv.Itoa(*b.i)
	case BoolField:
		return strconv.FormatBool(*b.b)
	case ChoiceField:
		return *b.s
	default:
		return strconv.FormatFloat(*b.f, 'g', 4, 64)
	}
}

// Params is the parameter record of one pattern. The concrete types are
// the *XxxParams structs of this package.
type Params interface {
	Kind() Kind
	bindings() []binding
	clone() Params
}

type HorizontalParams struct {
	Invert bool
}

type DiagonalParams struct {
	Angle     float64
	Frequency float64
}

type PlasmaParams struct {
	Complexity float64
	Scale      float64
	Frequency  float64
}

type RippleParams struct {
	CenterX    float64
	CenterY    float64
	Wavelength float64
	Damping    float64
	Frequency  float64
}

type WaveParams struct {
	Amplitude  float64
	Frequency  float64
	Phase      float64
	PhaseDrift float64
	Offset     float64
	BaseFreq   float64
}

type SpiralParams struct {
	Density   float64
	Rotation  float64
	Expansion float64
	Clockwise bool
	Frequency float64
}

type CheckerboardParams struct {
	Size     int
	Blur     float64
	Rotation float64
	Scale    float64
}

type DiamondParams struct {
	Size      float64
	Offset    float64
	Sharpness float64
	Rotation  float64
	Speed     float64
	Mode      string
}

type PerlinParams struct {
	Octaves     int
	Persistence float64
	Scale       float64
}

type FireParams struct {
	Intensity    float64
	Speed        float64
	Turbulence   float64
	Height       float64
	Wind         bool
	WindStrength float64
}

type AuroraParams struct {
	Intensity float64
	Speed     float64
	Waviness  float64
	Layers    int
	Height    float64
	Spread    float64
}

type KaleidoscopeParams struct {
	Segments      int
	RotationSpeed float64
	Zoom          float64
	Complexity    int
	ColorFlow     float64
	Distortion    float64
}

type PixelRainParams struct {
	Speed      float64
	Density    float64
	Length     float64
	Glitch     bool
	GlitchFreq float64
	SpeedVar   float64
}

// DiamondModes are the animation modes of the diamond pattern.
var DiamondModes = []string{"zoom", "scroll", "static"}

func (*HorizontalParams) Kind() Kind   { return Horizontal }
func (*DiagonalParams) Kind() Kind     { return Diagonal }
func (*PlasmaParams) Kind() Kind       { return Plasma }
func (*RippleParams) Kind() Kind       { return Ripple }
func (*WaveParams) Kind() Kind         { return Wave }
func (*SpiralParams) Kind() Kind       { return Spiral }
func (*CheckerboardParams) Kind() Kind { return Checkerboard }
func (*DiamondParams) Kind() Kind      { return Diamond }
func (*PerlinParams) Kind() Kind       { return Perlin }
func (*FireParams) Kind() Kind         { return Fire }
func (*AuroraParams) Kind() Kind       { return Aurora }
func (*KaleidoscopeParams) Kind() Kind { return Kaleidoscope }
func (*PixelRainParams) Kind() Kind    { return PixelRain }

func (p *HorizontalParams) clone() Params   { c := *p; return &c }
func (p *DiagonalParams) clone() Params     { c := *p; return &c }
func (p *PlasmaParams) clone() Params       { c := *p; return &c }
func (p *RippleParams) clone() Params       { c := *p; return &c }
func (p *WaveParams) clone() Params         { c := *p; return &c }
func (p *SpiralParams) clone() Params       { c := *p; return &c }
func (p *CheckerboardParams) clone() Params { c := *p; return &c }
func (p *DiamondParams) clone() Params      { c := *p; return &c }
func (p *PerlinParams) clone() Params       { c := *p; return &c }
func (p *FireParams) clone() Params         { c := *p; return &c }
func (p *AuroraParams) clone() Params       { c := *p; return &c }
func (p *KaleidoscopeParams) clone() Params { c := *p; return &c }
func (p *PixelRainParams) clone() Params    { c := *p; return &c }

func (p *HorizontalParams) bindings() []binding {
	return []binding{boolField("invert", false, &p.Invert)}
}

func (p *DiagonalParams) bindings() []binding {
	return []binding{
		floatField("angle", 0, 360, 45, 5, &p.Angle),
		floatField("frequency", 0.1, 10, 1, 0.1, &p.Frequency),
	}
}

func (p *PlasmaParams) bindings() []binding {
	return []binding{
		floatField("complexity", 1, 10, 3, 1, &p.Complexity),
		floatField("scale", 0.1, 5, 1, 0.1, &p.Scale),
		floatField("frequency", 0.1, 10, 1, 0.1, &p.Frequency),
	}
}

func (p *RippleParams) bindings() []binding {
	return []binding{
		floatField("center_x", 0, 1, 0.5, 0.05, &p.CenterX),
		floatField("center_y", 0, 1, 0.5, 0.05, &p.CenterY),
		floatField("wavelength", 0.1, 5, 1, 0.1, &p.Wavelength),
		floatField("damping", 0, 1, 0.5, 0.05, &p.Damping),
		floatField("frequency", 0.1, 10, 1, 0.1, &p.Frequency),
	}
}

func (p *WaveParams) bindings() []binding {
	return []binding{
		floatField("amplitude", 0.1, 2, 1, 0.1, &p.Amplitude),
		floatField("frequency", 0.1, 5, 1, 0.1, &p.Frequency),
		floatField("phase", 0, 2*math.Pi, 0, 0.1, &p.Phase),
		floatField("phase_drift", 0, 2, 0, 0.1, &p.PhaseDrift),
		floatField("offset", 0, 1, 0.5, 0.05, &p.Offset),
		floatField("base_freq", 0.1, 10, 1, 0.1, &p.BaseFreq),
	}
}

func (p *SpiralParams) bindings() []binding {
	return []binding{
		floatField("density", 0.1, 5, 1, 0.1, &p.Density),
		floatField("rotation", 0, 360, 0, 5, &p.Rotation),
		floatField("expansion", 0.1, 2, 1, 0.1, &p.Expansion),
		boolField("clockwise", true, &p.Clockwise),
		floatField("frequency", 0.1, 10, 1, 0.1, &p.Frequency),
	}
}

func (p *CheckerboardParams) bindings() []binding {
	return []binding{
		intField("size", 1, 10, 2, &p.Size),
		floatField("blur", 0, 1, 0.1, 0.05, &p.Blur),
		floatField("rotation", 0, 360, 0, 5, &p.Rotation),
		floatField("scale", 0.1, 5, 1, 0.1, &p.Scale),
	}
}

func (p *DiamondParams) bindings() []binding {
	return []binding{
		floatField("size", 0.1, 5, 1, 0.1, &p.Size),
		floatField("offset", 0, 1, 0, 0.05, &p.Offset),
		floatField("sharpness", 0.1, 5, 1, 0.1, &p.Sharpness),
		floatField("rotation", 0, 360, 0, 5, &p.Rotation),
		floatField("speed", 0, 5, 1, 0.1, &p.Speed),
		choiceField("mode", DiamondModes, 0, &p.Mode),
	}
}

func (p *PerlinParams) bindings() []binding {
	return []binding{
		intField("octaves", 1, 8, 4, &p.Octaves),
		floatField("persistence", 0, 1, 0.5, 0.05, &p.Persistence),
		floatField("scale", 0.1, 5, 1, 0.1, &p.Scale),
	}
}

func (p *FireParams) bindings() []binding {
	return []binding{
		floatField("intensity", 0.1, 2, 1, 0.1, &p.Intensity),
		floatField("speed", 0.1, 5, 1, 0.1, &p.Speed),
		floatField("turbulence", 0, 1, 0.5, 0.05, &p.Turbulence),
		floatField("height", 0.1, 2, 1, 0.1, &p.Height),
		boolField("wind", true, &p.Wind),
		floatField("wind_strength", 0, 1, 0.3, 0.05, &p.WindStrength),
	}
}

func (p *AuroraParams) bindings() []binding {
	return []binding{
		floatField("intensity", 0.1, 2, 1, 0.1, &p.Intensity),
		floatField("speed", 0.1, 5, 1, 0.1, &p.Speed),
		floatField("waviness", 0.1, 2, 1, 0.1, &p.Waviness),
		intField("layers", 1, 5, 3, &p.Layers),
		floatField("height", 0.1, 1, 0.5, 0.05, &p.Height),
		floatField("spread", 0.1, 1, 0.3, 0.05, &p.Spread),
	}
}

func (p *KaleidoscopeParams) bindings() []binding {
	return []binding{
		intField("segments", 3, 12, 6, &p.Segments),
		floatField("rotation_speed", 0.1, 5, 1, 0.1, &p.RotationSpeed),
		floatField("zoom", 0.5, 3, 1, 0.1, &p.Zoom),
		intField("complexity", 1, 5, 2, &p.Complexity),
		floatField("color_flow", 0, 2, 1, 0.1, &p.ColorFlow),
		floatField("distortion", 0, 1, 0.3, 0.05, &p.Distortion),
	}
}

func (p *PixelRainParams) bindings() []binding {
	return []binding{
		floatField("speed", 0.1, 5, 1, 0.1, &p.Speed),
		floatField("density", 0.1, 2, 1, 0.1, &p.Density),
		floatField("length", 1, 10, 3, 0.5, &p.Length),
		boolField("glitch", true, &p.Glitch),
		floatField("glitch_freq", 0.1, 5, 1, 0.1, &p.GlitchFreq),
		floatField("speed_var", 0, 1, 0.5, 0.05, &p.SpeedVar),
	}
}

func zero(k Kind) Params {
	switch k {
	case Horizontal:
		return &HorizontalParams{}
	case Diagonal:
		return &DiagonalParams{}
	case Plasma:
		return &PlasmaParams{}
	case Ripple:
		return &RippleParams{}
	case Wave:
		return &WaveParams{}
	case Spiral:
		return &SpiralParams{}
	case Checkerboard:
		return &CheckerboardParams{}
	case Diamond:
		return &DiamondParams{}
	case Perlin:
		return &PerlinParams{}
	case Fire:
		return &FireParams{}
	case Aurora:
		return &AuroraParams{}
	case Kaleidoscope:
		return &KaleidoscopeParams{}
	case PixelRain:
		return &PixelRainParams{}
	}
	return nil
}

// Defaults returns the default record for k, or nil for an unknown kind.
func Defaults(k Kind) Params {
	p := zero(k)
	if p == nil {
		return nil
	}
	for _, b := range p.bindings() {
		b.set(b.Default)
	}
	return p
}

// Fields lists the parameters of k in declaration order.
func Fields(k Kind) []Field {
	p := zero(k)
	if p == nil {
		return nil
	}
	bs := p.bindings()
	out := make([]Field, len(bs))
	for i, b := range bs {
		out[i] = b.Field
	}
	return out
}

func find(p Params, name string) (binding, bool) {
	name = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for _, b := range p.bindings() {
		if b.Name == name {
			return b, true
		}
	}
	return binding{}, false
}

// Set returns a copy of p with name set to v clamped into range.
func Set(p Params, name string, v float64) (Params, error) {
	c := p.clone()
	b, ok := find(c, name)
	if !ok {
		return p, fmt.Errorf("%w: %s has no %q", ErrUnknownParam, p.Kind(), name)
	}
	b.set(v)
	return c, nil
}

// SetText parses text according to the field kind: a number, true/false,
// or one of the field's choices.
func SetText(p Params, name, text string) (Params, error) {
	c := p.clone()
	b, ok := find(c, name)
	if !ok {
		return p, fmt.Errorf("%w: %s has no %q", ErrUnknownParam, p.Kind(), name)
	}
	text = strings.TrimSpace(text)
	switch b.Kind {
	case BoolField:
		v, err := strconv.ParseBool(text)
		if err != nil {
			return p, fmt.Errorf("pattern: %s: %w", name, err)
		}
		*b.b = v
	case ChoiceField:
		for _, choice := range b.Choices {
			if strings.EqualFold(choice, text) {
				*b.s = choice
				return c, nil
			}
		}
		return p, fmt.Errorf("pattern: %s must be one of %s, got %q", name, strings.Join(b.Choices, "|"), text)
	default:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return p, fmt.Errorf("pattern: %s: %w", name, err)
		}
		b.set(v)
	}
	return c, nil
}

// Nudge moves name by dir steps and returns the modified copy.
func Nudge(p Params, name string, dir int) (Params, error) {
	b, ok := find(p, name)
	if !ok {
		return p, fmt.Errorf("%w: %s has no %q", ErrUnknownParam, p.Kind(), name)
	}
	v := b.get() + float64(dir)*b.Step
	if b.Kind == ChoiceField {
		n := float64(len(b.Choices))
		v = math.Mod(math.Mod(v, n)+n, n)
	}
	return Set(p, name, v)
}

// Clamp returns a copy of p with every field forced into range, and the
// number of fields that had to change.
func Clamp(p Params) (Params, int) {
	c := p.clone()
	n := 0
	for _, b := range c.bindings() {
		if b.set(b.get()) {
			n++
		}
	}
	return c, n
}

// Values reports every parameter as a number.
func Values(p Params) map[string]float64 {
	bs := p.bindings()
	out := make(map[string]float64, len(bs))
	for _, b := range bs {
		out[b.Name] = b.get()
	}
	return out
}

// Text formats one parameter for display.
func Text(p Params, name string) (string, bool) {
	b, ok := find(p, name)
	if !ok {
		return "", false
	}
	return b.text(), true
}

// Names returns the parameter names of p in declaration order.
func Names(p Params) []string {
	bs := p.bindings()
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.Name
	}
	return out
}

// Apply sets every name=text pair on a copy of p. Keys are applied in
// sorted order so errors are reported deterministically.
func Apply(p Params, values map[string]string) (Params, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var err error
	for _, k := range keys {
		if p, err = SetText(p, k, values[k]); err != nil {
			return p, err
		}
	}
	return p, nil
}
