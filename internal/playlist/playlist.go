// Package playlist loads scene playlists and schedules them over time.
package playlist

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/prism/internal/pattern"
	"gopkg.in/yaml.v3"
)

var (
	ErrEmpty           = errors.New("playlist: no entries")
	ErrInvalidDuration = errors.New("playlist: duration must be positive")
)

// Entry is one scene as written in a playlist file. Duration is in seconds.
type Entry struct {
	Name     string            `yaml:"name,omitempty"`
	Pattern  string            `yaml:"pattern"`
	Theme    string            `yaml:"theme"`
	Duration float64           `yaml:"duration"`
	Params   map[string]string `yaml:"params,omitempty"`
}

// Playlist is the file format.
type Playlist struct {
	Entries []Entry `yaml:"entries"`
}

// Scene is a resolved entry ready to be shown.
type Scene struct {
	Name     string
	Params   pattern.Params
	Theme    string
	Duration float64
}

// ThemeChecker reports whether a theme name resolves.
type ThemeChecker func(name string) error

// EntryError ties a validation failure to its entry.
type EntryError struct {
	Index int
	Name  string
	Err   error
}

func (e *EntryError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("playlist: entry %d (%s): %v", e.Index, e.Name, e.Err)
	}
	return fmt.Sprintf("playlist: entry %d: %v", e.Index, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }

// Scene resolves e against the pattern catalogue.
func (e Entry) Scene() (Scene, error) {
	if !(e.Duration > 0) {
		return Scene{}, ErrInvalidDuration
	}
	k, err := pattern.Lookup(e.Pattern)
	if err != nil {
		return Scene{}, err
	}
	params, err := pattern.Apply(pattern.Defaults(k), e.Params)
	if err != nil {
		return Scene{}, err
	}
	name := e.Name
	if name == "" {
		name = k.Name() + " / " + e.Theme
	}
	return Scene{Name: name, Params: params, Theme: e.Theme, Duration: e.Duration}, nil
}

// Scenes validates every entry and resolves them in order. A nil checker
// skips theme validation.
func (p *Playlist) Scenes(themes ThemeChecker) ([]Scene, error) {
	if len(p.Entries) == 0 {
		return nil, ErrEmpty
	}
	scenes := make([]Scene, 0, len(p.Entries))
	var errs []error
	for i, e := range p.Entries {
		sc, err := e.Scene()
		if err == nil && themes != nil {
			err = themes(e.Theme)
		}
		if err != nil {
			errs = append(errs, &EntryError{Index: i, Name: e.Name, Err: err})
			continue
		}
		scenes = append(scenes, sc)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return scenes, nil
}

// Parse decodes a playlist document.
func Parse(data []byte) (*Playlist, error) {
	var p Playlist
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("playlist: %w", err)
	}
	for i := range p.Entries {
		p.Entries[i].Pattern = strings.TrimSpace(p.Entries[i].Pattern)
		p.Entries[i].Theme = strings.TrimSpace(p.Entries[i].Theme)
	}
	return &p, nil
}

// Load reads and decodes a playlist file.
func Load(path string) (*Playlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("playlist: %w", err)
	}
	return Parse(data)
}

// Save writes p as YAML.
func Save(path string, p *Playlist) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
