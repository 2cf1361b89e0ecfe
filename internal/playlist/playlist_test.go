package playlist

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/prism/internal/pattern"
)

const sample = `
entries:
  - name: Warm up
    pattern: plasma
    theme: sunset
    duration: 10
    params:
      complexity: 5
      scale: 1.5
  - pattern: pixel-rain
    theme: matrix
    duration: 4.5
`

func knownThemes(names ...string) ThemeChecker {
	return func(name string) error {
		for _, n := range names {
			if n == name {
				return nil
			}
		}
		return fmt.Errorf("unknown theme %q", name)
	}
}

func TestParseAndResolve(t *testing.T) {
	p, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	scenes, err := p.Scenes(knownThemes("sunset", "matrix"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("expected 2 scenes, got %d", len(scenes))
	}

	pl, ok := scenes[0].Params.(*pattern.PlasmaParams)
	if !ok {
		t.Fatalf("expected plasma params, got %T", scenes[0].Params)
	}
	if pl.Complexity != 5 || pl.Scale != 1.5 {
		t.Errorf("expected complexity 5 scale 1.5, got %v %v", pl.Complexity, pl.Scale)
	}
	if scenes[0].Name != "Warm up" {
		t.Errorf("expected name 'Warm up', got %q", scenes[0].Name)
	}
	if scenes[1].Params.Kind() != pattern.PixelRain {
		t.Errorf("expected pixel_rain, got %v", scenes[1].Params.Kind())
	}
	if scenes[1].Name != "Pixel Rain / matrix" {
		t.Errorf("expected generated name, got %q", scenes[1].Name)
	}
}

func TestScenesValidation(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  error
	}{
		{"unknown pattern", Entry{Pattern: "lava", Theme: "sunset", Duration: 5}, pattern.ErrUnknownPattern},
		{"zero duration", Entry{Pattern: "plasma", Theme: "sunset"}, ErrInvalidDuration},
		{"negative duration", Entry{Pattern: "plasma", Theme: "sunset", Duration: -1}, ErrInvalidDuration},
		{"nan duration", Entry{Pattern: "plasma", Theme: "sunset", Duration: math.NaN()}, ErrInvalidDuration},
		{"unknown param", Entry{Pattern: "plasma", Theme: "sunset", Duration: 5, Params: map[string]string{"warp": "1"}}, pattern.ErrUnknownParam},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Playlist{Entries: []Entry{tt.entry}}
			_, err := p.Scenes(nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			var ee *EntryError
			if !errors.As(err, &ee) || ee.Index != 0 {
				t.Errorf("expected EntryError for index 0, got %v", err)
			}
		})
	}
}

func TestScenesUnknownTheme(t *testing.T) {
	p := &Playlist{Entries: []Entry{
		{Pattern: "plasma", Theme: "sunset", Duration: 5},
		{Pattern: "wave", Theme: "nope", Duration: 5},
	}}
	_, err := p.Scenes(knownThemes("sunset"))
	var ee *EntryError
	if !errors.As(err, &ee) || ee.Index != 1 {
		t.Fatalf("expected EntryError for index 1, got %v", err)
	}
}

func TestEmptyPlaylist(t *testing.T) {
	p, err := Parse([]byte("entries: []"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Scenes(nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.yaml")
	in := &Playlist{Entries: []Entry{{Name: "a", Pattern: "fire", Theme: "sunset", Duration: 3}}}
	if err := Save(path, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out.Entries) != 1 || out.Entries[0].Pattern != "fire" || out.Entries[0].Duration != 3 {
		t.Errorf("expected round trip, got %+v", out.Entries)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
