// Package colorize writes text to an ordinary output stream with every
// glyph colored by the active pattern and theme. Static colors a whole
// document as one frame; Stream colors lines as they arrive.
package colorize

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/san-kum/prism/internal/buffer"
	"github.com/san-kum/prism/internal/gradient"
	"github.com/san-kum/prism/internal/logging"
	"github.com/san-kum/prism/internal/pattern"
	"github.com/san-kum/prism/internal/renderer"
)

const (
	DefaultBufferSize = 8192
	DefaultLineStep   = 0.1
	DefaultRows       = 24
)

// Options controls output.
type Options struct {
	Profile termenv.Profile
	Fill    buffer.FillMode
	// Width wraps lines at this many cells. Zero keeps every line whole.
	Width int
	// Start is the logical time of the first line.
	Start float64
	// LineStep is the time a streamed line advances the pattern.
	LineStep float64
	// Rows is how many streamed lines the pattern spans before it repeats.
	Rows int
	// BufferSize is the read buffer for streamed input.
	BufferSize int
}

func (o *Options) normalize() {
	if o.LineStep <= 0 {
		o.LineStep = DefaultLineStep
	}
	if o.Rows <= 0 {
		o.Rows = DefaultRows
	}
	if o.BufferSize <= 0 {
		o.BufferSize = DefaultBufferSize
	}
}

// Stats reports what was processed. Lines counts input lines, Rows the
// output rows after wrapping.
type Stats struct {
	Lines   int
	Rows    int
	Bytes   int
	Elapsed time.Duration
}

func (s Stats) LinesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Lines) / s.Elapsed.Seconds()
}

// Static reads all of src and writes it as one frame: the pattern spans the
// whole document at logical time opts.Start.
func Static(w io.Writer, r *renderer.Renderer, src io.Reader, opts Options) (Stats, error) {
	opts.normalize()
	began := time.Now()
	data, err := io.ReadAll(src)
	if err != nil {
		return Stats{}, err
	}
	c := renderer.NewContent(ansi.Strip(string(data)), 1)
	c.Reflow(layoutWidth(c, opts.Width))
	st := Stats{Lines: c.SourceLines(), Bytes: len(data)}

	enc := buffer.NewLineEncoder(w, buffer.Options{Profile: opts.Profile, Fill: opts.Fill})
	if c.Len() > 0 {
		f := r.SnapshotContent(c, opts.Start)
		for y := range c.Len() {
			row := f.Cells[y*f.Width : y*f.Width+c.RowWidth(y)]
			enc.WriteRow(row)
			st.Rows++
		}
	}
	st.Elapsed = time.Since(began)
	return st, enc.Flush()
}

func layoutWidth(c *renderer.Content, width int) int {
	if width > 0 {
		return width
	}
	return max(c.NaturalWidth(), 1)
}

// Stream colors src line by line until EOF or ctx is done. Each line is
// one row of a pattern Rows lines tall, and the pattern time advances by
// LineStep per line so the colors drift down the stream. Output is flushed
// whenever no further input is waiting.
func Stream(ctx context.Context, w io.Writer, r *renderer.Renderer, src io.Reader, opts Options) (Stats, error) {
	opts.normalize()
	began := time.Now()
	lines := make(chan string, 64)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		errc <- readLines(ctx, src, opts.BufferSize, lines)
	}()

	s := &streamer{
		enc:  buffer.NewLineEncoder(w, buffer.Options{Profile: opts.Profile, Fill: opts.Fill}),
		s:    r.Engine().Sampler(),
		g:    r.Gradient(),
		opts: opts,
	}
	finish := func(err error) (Stats, error) {
		s.st.Elapsed = time.Since(began)
		err = errors.Join(err, s.enc.Flush())
		logging.Logger().Info("stream complete",
			"lines", s.st.Lines, "rows", s.st.Rows, "bytes", s.st.Bytes,
			"lines_per_sec", s.st.LinesPerSecond())
		return s.st, err
	}
	for {
		select {
		case <-ctx.Done():
			return finish(nil)
		case line, ok := <-lines:
			if !ok {
				return finish(<-errc)
			}
			s.line(line)
			if len(lines) == 0 {
				if err := s.enc.Flush(); err != nil {
					return finish(err)
				}
			}
		}
	}
}

func readLines(ctx context.Context, src io.Reader, size int, out chan<- string) error {
	br := bufio.NewReaderSize(src, size)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			select {
			case out <- line:
			case <-ctx.Done():
				return nil
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

type streamer struct {
	enc  *buffer.LineEncoder
	s    pattern.Sampler
	g    *gradient.Gradient
	opts Options
	st   Stats
	row  int
}

func (s *streamer) line(raw string) {
	s.st.Bytes += len(raw)
	text := ansi.Strip(strings.TrimRight(raw, "\r\n"))
	c := renderer.NewContent(text, 1)
	c.Reflow(layoutWidth(c, s.opts.Width))
	if c.Len() == 0 {
		s.enc.WriteRow(nil)
		s.row++
		s.st.Rows++
		s.st.Lines++
		return
	}
	t := s.opts.Start + float64(s.st.Lines)*s.opts.LineStep
	sampler := s.s.At(t).Resized(c.Width(), s.opts.Rows)
	for y := range c.Len() {
		n := c.RowWidth(y)
		cells := make([]buffer.Cell, n)
		py := s.row % s.opts.Rows
		for x := range n {
			col := s.g.ColorAt(sampler.ValueAt(x, py), t)
			r, g, b := col.RGB255()
			cells[x] = buffer.Cell{Ch: c.Glyph(x, y), Color: buffer.RGB{r, g, b}}
		}
		s.enc.WriteRow(cells)
		s.row++
		s.st.Rows++
	}
	s.st.Lines++
}
