package export

import (
	"fmt"
	"io"

	"github.com/san-kum/prism/internal/buffer"
	"github.com/san-kum/prism/internal/renderer"
)

// writeANSI plays the frames through a frame buffer, so every frame after
// the first only carries the cells that changed.
func writeANSI(w io.Writer, frames []renderer.Frame, opts Options) error {
	if _, err := io.WriteString(w, "\x1b[2J"); err != nil {
		return err
	}
	buf := buffer.New(opts.Width, opts.Height, buffer.Options{Profile: opts.Profile, Fill: opts.Fill})
	for _, f := range frames {
		for y := range f.Height {
			for x := range f.Width {
				buf.WriteCell(x, y, f.At(x, y))
			}
		}
		if _, err := buf.Flush(w); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\x1b[%d;1H\n", opts.Height+1)
	return err
}
