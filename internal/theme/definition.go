package theme

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/prism/internal/gradient"
)

var (
	ErrUnknownTheme = errors.New("theme: unknown theme")
	ErrInvalidTheme = errors.New("theme: invalid definition")
)

// Error ties a validation failure to the theme that produced it.
type Error struct {
	Name string
	Err  error
}

func (e *Error) Error() string { return fmt.Sprintf("theme %q: %v", e.Name, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// ColorStop is one entry of a theme's colors list. In YAML it is either a
// sequence [r, g, b, position?, name?] or a mapping with color (hex) or
// r/g/b plus optional position and name.
type ColorStop struct {
	R, G, B  float64
	Position *float64
	Name     string
}

func (c *ColorStop) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.SequenceNode:
		if len(n.Content) < 3 || len(n.Content) > 5 {
			return fmt.Errorf("line %d: color must be [r, g, b, position?, name?]", n.Line)
		}
		ch := [3]*float64{&c.R, &c.G, &c.B}
		for i, p := range ch {
			if err := n.Content[i].Decode(p); err != nil {
				return err
			}
		}
		if len(n.Content) > 3 && n.Content[3].Tag != "!!null" {
			var pos float64
			if err := n.Content[3].Decode(&pos); err != nil {
				return err
			}
			c.Position = &pos
		}
		if len(n.Content) > 4 {
			return n.Content[4].Decode(&c.Name)
		}
		return nil

	case yaml.MappingNode:
		var raw struct {
			Color    string   `yaml:"color"`
			R        *float64 `yaml:"r"`
			G        *float64 `yaml:"g"`
			B        *float64 `yaml:"b"`
			Position *float64 `yaml:"position"`
			Name     string   `yaml:"name"`
		}
		if err := n.Decode(&raw); err != nil {
			return err
		}
		switch {
		case raw.Color != "":
			hex := raw.Color
			if !strings.HasPrefix(hex, "#") {
				hex = "#" + hex
			}
			col, err := colorful.Hex(hex)
			if err != nil {
				return fmt.Errorf("line %d: %w", n.Line, err)
			}
			c.R, c.G, c.B = col.R, col.G, col.B
		case raw.R != nil && raw.G != nil && raw.B != nil:
			c.R, c.G, c.B = *raw.R, *raw.G, *raw.B
		default:
			return fmt.Errorf("line %d: color needs either color or r, g and b", n.Line)
		}
		c.Position, c.Name = raw.Position, raw.Name
		return nil
	}
	return fmt.Errorf("line %d: unexpected color node", n.Line)
}

func (c ColorStop) MarshalYAML() (interface{}, error) {
	out := map[string]interface{}{"color": c.Hex()}
	if c.Position != nil {
		out["position"] = *c.Position
	}
	if c.Name != "" {
		out["name"] = c.Name
	}
	return out, nil
}

func (c ColorStop) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// Definition is a theme as written in YAML.
type Definition struct {
	Name     string      `yaml:"name"`
	Desc     string      `yaml:"desc"`
	Category string      `yaml:"category,omitempty"`
	Colors   []ColorStop `yaml:"colors"`
	Dist     string      `yaml:"dist,omitempty"`
	Repeat   string      `yaml:"repeat,omitempty"`
	Speed    *float64    `yaml:"speed,omitempty"`
	Ease     string      `yaml:"ease,omitempty"`
}

// Spec converts d into a gradient spec, validating policies, speed and
// color ranges.
func (d Definition) Spec() (gradient.Spec, error) {
	if strings.TrimSpace(d.Name) == "" {
		return gradient.Spec{}, fmt.Errorf("%w: missing name", ErrInvalidTheme)
	}
	wrap := func(err error) error { return &Error{Name: d.Name, Err: err} }

	dist, err := gradient.ParseDistribution(d.Dist)
	if err != nil {
		return gradient.Spec{}, wrap(err)
	}
	rep, err := gradient.ParseRepeat(d.Repeat)
	if err != nil {
		return gradient.Spec{}, wrap(err)
	}
	ease, err := gradient.ParseEasing(d.Ease)
	if err != nil {
		return gradient.Spec{}, wrap(err)
	}
	speed := 1.0
	if d.Speed != nil {
		speed = *d.Speed
		if !(speed > 0) {
			return gradient.Spec{}, wrap(fmt.Errorf("%w: speed must be positive, got %g", ErrInvalidTheme, speed))
		}
	}

	s := gradient.Spec{
		Stops:  make([]gradient.Stop, len(d.Colors)),
		Dist:   dist,
		Repeat: rep,
		Ease:   ease,
		Speed:  speed,
	}
	for i, c := range d.Colors {
		st := gradient.Stop{Color: colorful.Color{R: c.R, G: c.G, B: c.B}, Name: c.Name}
		if c.Position != nil {
			st = st.At(*c.Position)
		}
		s.Stops[i] = st
	}
	if err := s.Validate(); err != nil {
		return gradient.Spec{}, wrap(err)
	}
	return s, nil
}

// Validate reports the first problem with d, if any.
func (d Definition) Validate() error {
	_, err := d.Spec()
	return err
}

// Compile validates d and returns its gradient.
func (d Definition) Compile() (*gradient.Gradient, error) {
	s, err := d.Spec()
	if err != nil {
		return nil, err
	}
	return gradient.Compile(s)
}

// Parse decodes a YAML document holding a list of definitions. A single
// mapping is accepted as a one-theme list.
func Parse(data []byte) ([]Definition, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("theme: parse: %w", err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidTheme)
	}
	doc := root.Content[0]

	var defs []Definition
	switch doc.Kind {
	case yaml.SequenceNode:
		if err := doc.Decode(&defs); err != nil {
			return nil, fmt.Errorf("theme: parse: %w", err)
		}
	case yaml.MappingNode:
		var d Definition
		if err := doc.Decode(&d); err != nil {
			return nil, fmt.Errorf("theme: parse: %w", err)
		}
		defs = []Definition{d}
	default:
		return nil, fmt.Errorf("%w: expected a list of themes", ErrInvalidTheme)
	}

	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
	}
	return defs, nil
}
