package buffer

import (
	"bufio"
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

// Options configures the SGR output of a Buffer.
type Options struct {
	Profile termenv.Profile
	Fill    FillMode
}

// Buffer holds the front grid (what the terminal shows) and the back grid
// (the frame being composed). Both always share the same dimensions.
// A Buffer is not safe for concurrent use, except that WriteCell may be
// called from several goroutines as long as they touch disjoint cells and
// nothing else runs at the same time.
type Buffer struct {
	width, height int
	front, back   []Cell
	dirty         []bool
	offset        int

	style *styler
	bw    *bufio.Writer
	dst   io.Writer
}

// New allocates a width×height buffer with every cell dirty.
func New(width, height int, opts Options) *Buffer {
	b := &Buffer{style: newStyler(opts.Profile, opts.Fill)}
	b.Resize(width, height)
	return b
}

func (b *Buffer) Size() (int, int) { return b.width, b.height }
func (b *Buffer) Fill() FillMode   { return b.style.fill }

// Profile reports the color profile used by Flush.
func (b *Buffer) Profile() termenv.Profile { return b.style.profile }

// Resize reallocates both grids. The previous front state no longer
// matches the screen, so every cell is dirty afterwards.
func (b *Buffer) Resize(width, height int) {
	b.width = max(width, 0)
	b.height = max(height, 0)
	n := b.width * b.height
	b.front = make([]Cell, n)
	b.back = make([]Cell, n)
	b.dirty = make([]bool, n)
	for i := range b.back {
		b.back[i] = Blank
		b.front[i] = Cell{Ch: invalid}
		b.dirty[i] = true
	}
}

func (b *Buffer) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return 0, false
	}
	return y*b.width + x, true
}

// WriteCell stores c at (x, y) in the back grid. The cell is dirty exactly
// when it differs from what the front grid holds. Out-of-range writes are
// ignored.
func (b *Buffer) WriteCell(x, y int, c Cell) {
	i, ok := b.index(x, y)
	if !ok {
		return
	}
	b.back[i] = c
	b.dirty[i] = c != b.front[i]
}

// Set is WriteCell with the fields spelled out.
func (b *Buffer) Set(x, y int, ch rune, color RGB) {
	b.WriteCell(x, y, Cell{Ch: ch, Color: color})
}

// At returns the back cell at (x, y).
func (b *Buffer) At(x, y int) Cell {
	i, ok := b.index(x, y)
	if !ok {
		return Cell{}
	}
	return b.back[i]
}

// Row returns a copy of back row y.
func (b *Buffer) Row(y int) []Cell {
	if y < 0 || y >= b.height {
		return nil
	}
	return append([]Cell(nil), b.back[y*b.width:(y+1)*b.width]...)
}

// Cells returns a copy of the whole back grid in row-major order.
func (b *Buffer) Cells() []Cell { return append([]Cell(nil), b.back...) }

func (b *Buffer) Dirty(x, y int) bool {
	i, ok := b.index(x, y)
	return ok && b.dirty[i]
}

// DirtyCount reports how many cells the next Flush would write.
func (b *Buffer) DirtyCount() int {
	n := 0
	for _, d := range b.dirty {
		if d {
			n++
		}
	}
	return n
}

// Offset is the first content line shown in row 0.
func (b *Buffer) Offset() int { return b.offset }

// SetScroll moves the viewport to content line offset. Rows showing lines
// that were not on screen before are invalidated.
func (b *Buffer) SetScroll(offset int) {
	if offset < 0 {
		offset = 0
	}
	delta := offset - b.offset
	b.offset = offset
	switch {
	case delta == 0:
		return
	case delta >= b.height || -delta >= b.height:
		b.invalidateRows(0, b.height)
	case delta > 0:
		b.invalidateRows(b.height-delta, b.height)
	default:
		b.invalidateRows(0, -delta)
	}
}

// Invalidate forces a full repaint on the next Flush.
func (b *Buffer) Invalidate() { b.invalidateRows(0, b.height) }

func (b *Buffer) invalidateRows(from, to int) {
	from, to = max(from, 0), min(to, b.height)
	for i := from * b.width; i < to*b.width; i++ {
		b.front[i] = Cell{Ch: invalid}
		b.dirty[i] = true
	}
}

// Flush writes every dirty cell to w in row-major order and, only if all
// bytes were written, promotes the back grid to front. On error the dirty
// state is left untouched so the same diff can be retried.
func (b *Buffer) Flush(w io.Writer) (int, error) {
	if b.DirtyCount() == 0 {
		return 0, nil
	}
	if b.bw == nil {
		b.bw = bufio.NewWriterSize(w, 64*1024)
		b.dst = w
	} else if b.dst != w {
		b.bw.Reset(w)
		b.dst = w
	}
	bw := b.bw

	written := 0
	curX, curY := -1, -1
	var last RGB
	styled := false

	for y := 0; y < b.height; y++ {
		row := y * b.width
		for x := 0; x < b.width; x++ {
			i := row + x
			if !b.dirty[i] {
				continue
			}
			c := b.back[i]
			if c.Ch == Continuation {
				continue
			}
			if x != curX || y != curY {
				writeCursorPos(bw, x, y)
				curX, curY = x, y
			}
			if !styled || c.Color != last {
				styled = b.style.write(bw, c.Color)
				last = c.Color
			}
			r := c.Ch
			if r < ' ' {
				r = ' '
			}
			if r < 0x80 {
				bw.WriteByte(byte(r))
			} else {
				bw.WriteRune(r)
			}
			curX += max(runewidth.RuneWidth(r), 1)
			written++
		}
	}
	bw.Write(sgrReset)

	if err := bw.Flush(); err != nil {
		// Drop whatever is still buffered; the retry rewrites the diff.
		bw.Reset(b.dst)
		return 0, fmt.Errorf("buffer: flush: %w", err)
	}

	for i, d := range b.dirty {
		if d {
			b.front[i] = b.back[i]
			b.dirty[i] = false
		}
	}
	return written, nil
}
