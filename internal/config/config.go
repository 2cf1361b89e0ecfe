package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/san-kum/prism/internal/buffer"
	"github.com/san-kum/prism/internal/pattern"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPattern   = "horizontal"
	DefaultTheme     = "rainbow"
	DefaultFPS       = 30
	MaxFPS           = 144
	DefaultSpeed     = 1.0
	DefaultCrossfade = 1.0
	DefaultAspect    = 0.5
	MinAspect        = 0.1
	MaxAspect        = 2.0
)

var (
	ErrUnknownFormat = errors.New("config: unknown file format")
	ErrInvalid       = errors.New("config: invalid")
)

type Config struct {
	Pattern   string         `yaml:"pattern" toml:"pattern"`
	Theme     string         `yaml:"theme" toml:"theme"`
	ThemeFile string         `yaml:"theme_file,omitempty" toml:"theme_file,omitempty"`
	FPS       int            `yaml:"fps" toml:"fps"`
	Speed     float64        `yaml:"speed" toml:"speed"`
	Seed      uint32         `yaml:"seed" toml:"seed"`
	Smooth    bool           `yaml:"smooth" toml:"smooth"`
	Crossfade float64        `yaml:"crossfade" toml:"crossfade"`
	Workers   int            `yaml:"workers" toml:"workers"`
	Fill      string         `yaml:"fill" toml:"fill"`
	Status    bool           `yaml:"status" toml:"status"`
	Aspect    AspectConfig   `yaml:"aspect" toml:"aspect"`
	Params    map[string]any `yaml:"params,omitempty" toml:"params,omitempty"`
	Playlist  string         `yaml:"playlist,omitempty" toml:"playlist,omitempty"`
}

type AspectConfig struct {
	Correct bool    `yaml:"correct" toml:"correct"`
	Ratio   float64 `yaml:"ratio" toml:"ratio"`
}

func DefaultConfig() *Config {
	return &Config{
		Pattern:   DefaultPattern,
		Theme:     DefaultTheme,
		FPS:       DefaultFPS,
		Speed:     DefaultSpeed,
		Crossfade: DefaultCrossfade,
		Fill:      buffer.Foreground.String(),
		Status:    true,
		Aspect: AspectConfig{
			Correct: true,
			Ratio:   DefaultAspect,
		},
	}
}

type format int

const (
	formatYAML format = iota
	formatTOML
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".toml":
		return formatTOML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Load reads a YAML or TOML file over the defaults. The format follows the
// file extension.
func Load(path string) (*Config, error) {
	f, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	switch f {
	case formatTOML:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
		if extra := md.Undecoded(); len(extra) > 0 {
			return nil, fmt.Errorf("%w: %s: unknown keys %v", ErrInvalid, path, extra)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}
	var data []byte
	switch f {
	case formatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return err
		}
		data = buf.Bytes()
	default:
		if data, err = yaml.Marshal(cfg); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	k, err := pattern.Lookup(c.Pattern)
	if err != nil {
		errs = append(errs, err)
	}
	if c.FPS < 1 || c.FPS > MaxFPS {
		bad("fps %d outside 1..%d", c.FPS, MaxFPS)
	}
	if !(c.Speed > 0) {
		bad("speed must be positive, got %v", c.Speed)
	}
	if c.Crossfade < 0 {
		bad("crossfade must not be negative, got %v", c.Crossfade)
	}
	if c.Workers < 0 {
		bad("workers must not be negative, got %d", c.Workers)
	}
	if _, ok := buffer.ParseFillMode(c.Fill); !ok {
		bad("fill %q is not foreground or background", c.Fill)
	}
	if c.Aspect.Ratio < MinAspect || c.Aspect.Ratio > MaxAspect {
		bad("aspect ratio %v outside %v..%v", c.Aspect.Ratio, MinAspect, MaxAspect)
	}
	if err == nil && len(c.Params) > 0 {
		if _, perr := pattern.Apply(pattern.Defaults(k), c.ParamText()); perr != nil {
			errs = append(errs, perr)
		}
	}
	return errors.Join(errs...)
}

// ParamText renders Params as the text form pattern.Apply takes.
func (c *Config) ParamText() map[string]string {
	out := make(map[string]string, len(c.Params))
	for k, v := range c.Params {
		out[k] = fmt.Sprint(v)
	}
	return out
}

// PatternParams resolves the pattern and applies Params to its defaults.
func (c *Config) PatternParams() (pattern.Params, error) {
	k, err := pattern.Lookup(c.Pattern)
	if err != nil {
		return nil, err
	}
	return pattern.Apply(pattern.Defaults(k), c.ParamText())
}

// FillMode returns the parsed fill mode, defaulting to foreground.
func (c *Config) FillMode() buffer.FillMode {
	m, _ := buffer.ParseFillMode(c.Fill)
	return m
}

// SetParam records name=value, replacing any earlier value.
func (c *Config) SetParam(name, value string) {
	if c.Params == nil {
		c.Params = make(map[string]any)
	}
	c.Params[name] = value
}

// ParamNames lists the configured parameter names in order.
func (c *Config) ParamNames() []string {
	names := make([]string, 0, len(c.Params))
	for k := range c.Params {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
