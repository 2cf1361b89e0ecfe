// Package export writes rendered frames to files. Frames are taken at
// logical times start + i/fps, so the same settings always produce the same
// bytes.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
	"github.com/san-kum/prism/internal/buffer"
	"github.com/san-kum/prism/internal/renderer"
)

type Format string

const (
	ANSI Format = "ansi"
	SVG  Format = "svg"
	PNG  Format = "png"
	GIF  Format = "gif"
	JSON Format = "json"
)

var Formats = []Format{ANSI, SVG, PNG, GIF, JSON}

var (
	ErrUnknownFormat = errors.New("export: unknown format")
	ErrInvalidSize   = errors.New("export: invalid size")
)

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Ext is the usual file extension for f.
func (f Format) Ext() string {
	if f == ANSI {
		return ".ans"
	}
	return "." + string(f)
}

// Source renders a frame at a logical time. *renderer.Renderer satisfies it.
type Source interface {
	Snapshot(width, height int, t float64) renderer.Frame
}

type Options struct {
	Width, Height int
	Frames        int
	FPS           int
	Start         float64
	// CellWidth and CellHeight are the pixel size of one cell in images.
	CellWidth, CellHeight int
	Profile               termenv.Profile
	Fill                  buffer.FillMode
}

func (o *Options) normalize() error {
	if o.Width < 1 || o.Height < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, o.Width, o.Height)
	}
	o.Frames = max(o.Frames, 1)
	if o.FPS <= 0 {
		o.FPS = renderer.DefaultFPS
	}
	if o.CellWidth <= 0 {
		o.CellWidth = 8
	}
	if o.CellHeight <= 0 {
		o.CellHeight = 16
	}
	return nil
}

// Frames renders opts.Frames frames from src.
func Frames(src Source, opts Options) ([]renderer.Frame, error) {
	if err := opts.normalize(); err != nil {
		return nil, err
	}
	frames := make([]renderer.Frame, opts.Frames)
	for i := range frames {
		t := opts.Start + float64(i)/float64(opts.FPS)
		frames[i] = src.Snapshot(opts.Width, opts.Height, t)
	}
	return frames, nil
}

// Write renders frames from src and encodes them as f. SVG and PNG take the
// first frame only.
func Write(w io.Writer, f Format, src Source, opts Options) error {
	if err := opts.normalize(); err != nil {
		return err
	}
	if f == SVG || f == PNG {
		opts.Frames = 1
	}
	frames, err := Frames(src, opts)
	if err != nil {
		return err
	}
	switch f {
	case ANSI:
		return writeANSI(w, frames, opts)
	case SVG:
		return writeSVG(w, frames[0], opts)
	case PNG:
		return writePNG(w, frames[0], opts)
	case GIF:
		return writeGIF(w, frames, opts)
	case JSON:
		return writeJSON(w, frames, opts)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

func hex(c buffer.RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}
