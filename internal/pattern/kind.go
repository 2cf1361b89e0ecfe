package pattern

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind identifies one pattern of the closed set.
type Kind uint8

const (
	Horizontal Kind = iota
	Diagonal
	Plasma
	Ripple
	Wave
	Spiral
	Checkerboard
	Diamond
	Perlin
	Fire
	Aurora
	Kaleidoscope
	PixelRain

	numKinds
)

// Info describes a pattern for listings and menus.
type Info struct {
	Kind        Kind
	ID          string
	Description string
}

var infos = [numKinds]Info{
	{Horizontal, "horizontal", "Simple horizontal gradient"},
	{Diagonal, "diagonal", "Gradient at an angle with wave animation"},
	{Plasma, "plasma", "Psychedelic plasma from layered sine components"},
	{Ripple, "ripple", "Ripples emanating from a center point"},
	{Wave, "wave", "Travelling wave with configurable shape"},
	{Spiral, "spiral", "Spiral rotating from the center"},
	{Checkerboard, "checkerboard", "Rotating checkerboard with soft edges"},
	{Diamond, "diamond", "Diamond tiling with zoom and scroll modes"},
	{Perlin, "perlin", "Multi-octave gradient noise"},
	{Fire, "fire", "Rising flames with turbulence and wind"},
	{Aurora, "aurora", "Layered aurora curtains"},
	{Kaleidoscope, "kaleidoscope", "Mirrored kaleidoscope segments"},
	{PixelRain, "pixel_rain", "Matrix-style digital rain"},
}

func (k Kind) String() string {
	if k >= numKinds {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return infos[k].ID
}

// Name is the display name, e.g. "Pixel Rain".
func (k Kind) Name() string {
	return DisplayName(k.String())
}

// DisplayName turns an identifier like pixel_rain into "Pixel Rain".
func DisplayName(id string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(id, "_", " "))
}

func (k Kind) Info() Info {
	if k >= numKinds {
		return Info{Kind: k, ID: k.String()}
	}
	return infos[k]
}

// Lookup resolves a pattern id. Matching ignores case and accepts '-' for '_'.
func Lookup(id string) (Kind, error) {
	id = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(id)), "-", "_")
	for _, info := range infos {
		if info.ID == id {
			return info.Kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownPattern, id)
}

// List returns every pattern in declaration order.
func List() []Info {
	out := make([]Info, len(infos))
	copy(out, infos[:])
	return out
}

// IDs returns every pattern id in declaration order.
func IDs() []string {
	ids := make([]string, len(infos))
	for i, info := range infos {
		ids[i] = info.ID
	}
	return ids
}
