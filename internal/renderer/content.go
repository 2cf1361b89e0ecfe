package renderer

import (
	"bufio"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/san-kum/prism/internal/buffer"
)

const tabWidth = 4

// Content is text laid out into display rows of a fixed width. Each row
// holds exactly width cells; the right half of a wide glyph is stored as
// buffer.Continuation.
type Content struct {
	width int
	lines []string
	rows  [][]rune
}

// NewContent lays text out for a grid width cells wide.
func NewContent(text string, width int) *Content {
	c := &Content{lines: splitLines(text)}
	c.Reflow(width)
	return c
}

// ReadContent reads r fully and lays it out.
func ReadContent(r io.Reader, width int) (*Content, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	c := &Content{lines: lines}
	c.Reflow(width)
	return c, nil
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// Reflow wraps the source lines again for a new width.
func (c *Content) Reflow(width int) {
	c.width = max(width, 1)
	c.rows = c.rows[:0]
	for _, line := range c.lines {
		c.rows = append(c.rows, wrap(line, c.width)...)
	}
}

func (c *Content) Width() int { return c.width }
func (c *Content) Len() int   { return len(c.rows) }

// SourceLines is the number of lines before wrapping.
func (c *Content) SourceLines() int { return len(c.lines) }

// NaturalWidth is the display width of the widest source line, so content
// laid out at that width never wraps.
func (c *Content) NaturalWidth() int {
	w := 0
	for _, line := range c.lines {
		w = max(w, runewidth.StringWidth(expandTabs(line)))
	}
	return w
}

// RowWidth is the number of cells in display row y up to its last
// non-blank glyph.
func (c *Content) RowWidth(y int) int {
	if y < 0 || y >= len(c.rows) {
		return 0
	}
	row := c.rows[y]
	n := len(row)
	for n > 0 && row[n-1] == ' ' {
		n--
	}
	return n
}

// Glyph returns the cell at column x of display row y. Positions outside
// the content are blank.
func (c *Content) Glyph(x, y int) rune {
	if c == nil || y < 0 || y >= len(c.rows) || x < 0 || x >= c.width {
		return ' '
	}
	return c.rows[y][x]
}

// wrap splits one line into rows of exactly width cells. A wide glyph that
// would straddle the right edge moves to the next row.
func wrap(line string, width int) [][]rune {
	var rows [][]rune
	row := newRow(width)
	x := 0
	for _, r := range expandTabs(line) {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			if r < ' ' {
				r, w = ' ', 1
			} else {
				continue
			}
		}
		if w > width {
			r, w = '?', 1
		}
		if x+w > width {
			rows = append(rows, row)
			row = newRow(width)
			x = 0
		}
		row[x] = r
		if w == 2 {
			row[x+1] = buffer.Continuation
		}
		x += w
	}
	return append(rows, row)
}

func newRow(width int) []rune {
	row := make([]rune, width)
	for i := range row {
		row[i] = ' '
	}
	return row
}

func expandTabs(line string) string {
	if !strings.ContainsRune(line, '\t') {
		return line
	}
	var sb strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return sb.String()
}
