// Package recipe saves and restores renderer setups.
package recipe

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/prism/internal/pattern"
)

var ErrInvalidID = errors.New("recipe: invalid id")

// Recipe captures everything needed to reproduce a look.
type Recipe struct {
	ID      string            `json:"id"`
	Name    string            `json:"name,omitempty"`
	Created time.Time         `json:"created"`
	Pattern string            `json:"pattern"`
	Theme   string            `json:"theme"`
	Seed    uint32            `json:"seed"`
	Speed   float64           `json:"speed"`
	Params  map[string]string `json:"params"`
	Scenes  []Scene           `json:"scenes,omitempty"`
}

// Scene is one step of a saved playlist.
type Scene struct {
	Pattern  string  `json:"pattern"`
	Theme    string  `json:"theme"`
	Duration float64 `json:"duration"`
}

// Capture records params and the surrounding settings.
func Capture(name string, params pattern.Params, theme string, seed uint32, speed float64) *Recipe {
	values := make(map[string]string)
	for _, n := range pattern.Names(params) {
		values[n], _ = pattern.Text(params, n)
	}
	return &Recipe{
		Name:    name,
		Pattern: params.Kind().String(),
		Theme:   theme,
		Seed:    seed,
		Speed:   speed,
		Params:  values,
	}
}

// PatternParams rebuilds the pattern params the recipe was captured from.
func (r *Recipe) PatternParams() (pattern.Params, error) {
	k, err := pattern.Lookup(r.Pattern)
	if err != nil {
		return nil, err
	}
	return pattern.Apply(pattern.Defaults(k), r.Params)
}

// WriteJSON writes r as indented JSON.
func (r *Recipe) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// DefaultDir is the recipes directory under the user config dir.
func DefaultDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "prism", "recipes"), nil
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) path(id string) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return filepath.Join(s.baseDir, id+".json"), nil
}

// Save assigns an id and creation time when missing and writes the recipe.
func (s *Store) Save(r *Recipe) (string, error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Created.IsZero() {
		r.Created = time.Now().UTC()
	}
	p, err := s.path(r.ID)
	if err != nil {
		return "", err
	}
	if err := s.Init(); err != nil {
		return "", err
	}

	f, err := os.Create(p)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := r.WriteJSON(f); err != nil {
		return "", err
	}
	return r.ID, f.Close()
}

// Load reads one recipe. A unique id prefix is accepted.
func (s *Store) Load(id string) (*Recipe, error) {
	if _, err := uuid.Parse(id); err != nil {
		full, rerr := s.resolve(id)
		if rerr != nil {
			return nil, rerr
		}
		id = full
	}
	p, err := s.path(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}

	var r Recipe
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("recipe: %s: %w", id, err)
	}
	return &r, nil
}

func (s *Store) resolve(prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidID)
	}
	all, err := s.List()
	if err != nil {
		return "", err
	}
	var match string
	for _, r := range all {
		if strings.HasPrefix(r.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("%w: %q is ambiguous", ErrInvalidID, prefix)
			}
			match = r.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %q not found", ErrInvalidID, prefix)
	}
	return match, nil
}

// List returns every readable recipe, oldest first. Unreadable files are
// skipped.
func (s *Store) List() ([]Recipe, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Recipe{}, nil
		}
		return nil, err
	}

	recipes := make([]Recipe, 0)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		var r Recipe
		if err := json.Unmarshal(data, &r); err != nil {
			continue
		}
		recipes = append(recipes, r)
	}

	sort.Slice(recipes, func(i, j int) bool {
		return recipes[i].Created.Before(recipes[j].Created)
	})
	return recipes, nil
}
