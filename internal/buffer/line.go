package buffer

import (
	"bufio"
	"fmt"
	"io"
)

// LineEncoder writes rows of cells as plain inline text, for output that
// scrolls instead of being painted at fixed positions. An SGR is emitted
// only when the color changes and every row ends with a reset and a newline.
// With the Ascii profile only the glyphs are written.
type LineEncoder struct {
	bw    *bufio.Writer
	style *styler
}

// NewLineEncoder buffers output for w.
func NewLineEncoder(w io.Writer, opts Options) *LineEncoder {
	return &LineEncoder{
		bw:    bufio.NewWriterSize(w, 64*1024),
		style: newStyler(opts.Profile, opts.Fill),
	}
}

// WriteRow encodes one row. Continuation cells are skipped. It returns the
// number of glyphs written.
func (e *LineEncoder) WriteRow(cells []Cell) int {
	var last RGB
	styled := false
	written := 0
	for _, c := range cells {
		if c.Ch == Continuation {
			continue
		}
		if !styled || c.Color != last {
			styled = e.style.write(e.bw, c.Color)
			last = c.Color
		}
		r := c.Ch
		if r < ' ' {
			r = ' '
		}
		e.bw.WriteRune(r)
		written++
	}
	if styled {
		e.bw.Write(sgrReset)
	}
	e.bw.WriteByte('\n')
	return written
}

// Flush writes everything buffered so far.
func (e *LineEncoder) Flush() error {
	if err := e.bw.Flush(); err != nil {
		return fmt.Errorf("buffer: flush lines: %w", err)
	}
	return nil
}

// Buffered is the number of bytes waiting for Flush.
func (e *LineEncoder) Buffered() int { return e.bw.Buffered() }
