package config

import (
	"maps"
	"sort"
)

// Presets are keyed by pattern id, then preset name.
var Presets = map[string]map[string]*Config{
	"plasma": {
		"lava": {
			Pattern: "plasma", Theme: "lava", Speed: 0.6,
			Params: map[string]any{"complexity": 4, "scale": 1.5, "frequency": 0.8},
		},
		"psychedelic": {
			Pattern: "plasma", Theme: "rave", Speed: 1.5,
			Params: map[string]any{"complexity": 8, "scale": 0.6, "frequency": 2.0},
		},
	},
	"ripple": {
		"pond": {
			Pattern: "ripple", Theme: "ocean", Speed: 0.8,
			Params: map[string]any{"wavelength": 0.6, "damping": 0.7},
		},
		"pulse": {
			Pattern: "ripple", Theme: "neon", Speed: 1.4,
			Params: map[string]any{"wavelength": 0.3, "damping": 0.2, "frequency": 3},
		},
	},
	"fire": {
		"campfire": {
			Pattern: "fire", Theme: "sunset", Speed: 1.0,
			Params: map[string]any{"intensity": 1.2, "turbulence": 0.6, "wind": false},
		},
		"inferno": {
			Pattern: "fire", Theme: "lava", Speed: 1.6,
			Params: map[string]any{"intensity": 2, "height": 1.6, "wind_strength": 0.8},
		},
	},
	"aurora": {
		"borealis": {
			Pattern: "aurora", Theme: "aurora_borealis", Speed: 0.7,
			Params: map[string]any{"layers": 4, "waviness": 1.4, "spread": 0.5},
		},
	},
	"spiral": {
		"hypnotic": {
			Pattern: "spiral", Theme: "vaporwave", Speed: 1.2,
			Params: map[string]any{"density": 3, "expansion": 1.5},
		},
	},
	"kaleidoscope": {
		"mandala": {
			Pattern: "kaleidoscope", Theme: "pastel", Speed: 0.8,
			Params: map[string]any{"segments": 8, "complexity": 3, "distortion": 0.2},
		},
	},
	"pixel_rain": {
		"matrix": {
			Pattern: "pixel_rain", Theme: "matrix", Speed: 1.0,
			Params: map[string]any{"density": 1.5, "length": 6, "glitch": true},
		},
	},
	"perlin": {
		"clouds": {
			Pattern: "perlin", Theme: "calm", Speed: 0.4,
			Params: map[string]any{"octaves": 6, "persistence": 0.55, "scale": 1.2},
		},
	},
	"wave": {
		"tide": {
			Pattern: "wave", Theme: "ocean", Speed: 0.6,
			Params: map[string]any{"amplitude": 1.4, "frequency": 0.8, "phase_drift": 0.5},
		},
	},
}

// GetPreset returns a copy of a preset, or nil when it does not exist.
func GetPreset(patternID, name string) *Config {
	byName, ok := Presets[patternID]
	if !ok {
		return nil
	}
	p, ok := byName[name]
	if !ok {
		return nil
	}
	c := *p
	c.Params = maps.Clone(p.Params)
	return &c
}

// ListPresets returns the preset names for a pattern, sorted.
func ListPresets(patternID string) []string {
	byName, ok := Presets[patternID]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FindPreset looks a preset up by name alone.
func FindPreset(name string) *Config {
	for _, id := range PresetPatterns() {
		if p := GetPreset(id, name); p != nil {
			return p
		}
	}
	return nil
}

// PresetPatterns lists the pattern ids that have presets, sorted.
func PresetPatterns() []string {
	ids := make([]string, 0, len(Presets))
	for id := range Presets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ApplyPreset copies the preset's pattern, theme, speed and params onto c.
func (c *Config) ApplyPreset(p *Config) {
	if p == nil {
		return
	}
	c.Pattern = p.Pattern
	if p.Theme != "" {
		c.Theme = p.Theme
	}
	if p.Speed > 0 {
		c.Speed = p.Speed
	}
	c.Params = maps.Clone(p.Params)
}
