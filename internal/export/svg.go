package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/san-kum/prism/internal/renderer"
)

// writeSVG draws one rect per horizontal run of equal color.
func writeSVG(w io.Writer, f renderer.Frame, opts Options) error {
	cw, ch := opts.CellWidth, opts.CellHeight
	width, height := f.Width*cw, f.Height*ch

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">
<rect width="100%%" height="100%%" fill="#000000"/>
`, width, height, width, height)

	for y := range f.Height {
		x := 0
		for x < f.Width {
			c := f.At(x, y).Color
			run := 1
			for x+run < f.Width && f.At(x+run, y).Color == c {
				run++
			}
			fmt.Fprintf(bw, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>
`, x*cw, y*ch, run*cw, ch, hex(c))
			x += run
		}
	}
	bw.WriteString("</svg>\n")
	return bw.Flush()
}
