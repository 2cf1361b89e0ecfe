package demo

import (
	"embed"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/mattn/go-runewidth"
)

//go:embed art/*.txt
var artFS embed.FS

// Minimum generated size; smaller requests are raised to it.
const (
	MinWidth  = 40
	MinHeight = 10
)

const shades = "█▓▒░ "

// Settings controls generation.
type Settings struct {
	Width, Height int
	Seed          uint64
	// Headers puts a titled divider before each piece of All.
	Headers bool
}

// DefaultSettings is an 80x24 area with headers.
func DefaultSettings() Settings {
	return Settings{Width: 80, Height: 24, Seed: 42, Headers: true}
}

func (s Settings) normalize() Settings {
	s.Width = max(s.Width, MinWidth)
	s.Height = max(s.Height, MinHeight)
	return s
}

// Generate returns the text of a, one line per row, ending in a newline.
func Generate(a Art, s Settings) string {
	s = s.normalize()
	var sb strings.Builder
	if a != All {
		writeLines(&sb, generate(a, s))
		return sb.String()
	}
	for _, info := range infos[:All] {
		if s.Headers {
			sb.WriteString(divider(" "+info.Name+" ", s.Width))
			sb.WriteString("\n\n")
		}
		writeLines(&sb, generate(info.Art, s))
		sb.WriteByte('\n')
	}
	sb.WriteString(strings.Repeat("=", s.Width))
	sb.WriteByte('\n')
	return sb.String()
}

func writeLines(sb *strings.Builder, lines []string) {
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
}

func divider(title string, width int) string {
	pad := max(width-runewidth.StringWidth(title), 0)
	left := pad / 2
	return strings.Repeat("=", left) + title + strings.Repeat("=", pad-left)
}

func generate(a Art, s Settings) []string {
	rng := rand.New(rand.NewPCG(s.Seed, s.Seed^0x9e3779b97f4a7c15))
	switch a {
	case Logo:
		return centered(embedded("logo"), s)
	case Code:
		return centered(embedded("code"), s)
	case Matrix:
		return matrix(rng, s)
	case Waves:
		return waves(rng, s)
	case Spiral:
		return field(s, func(dx, dy, r, theta float64) float64 {
			return (math.Sin(r*0.15-theta) + 1) / 2
		})
	case Boxes:
		return boxes(s)
	case Mandala:
		return field(s, func(dx, dy, r, theta float64) float64 {
			return math.Abs(math.Sin(r*0.15 + theta*6))
		})
	case Maze:
		return maze(rng, s)
	case Cells:
		return cells(rng, s)
	}
	return nil
}

func embedded(name string) []string {
	data, err := artFS.ReadFile("art/" + name + ".txt")
	if err != nil {
		panic(err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// centered pads lines into the middle of the area. Lines wider than the
// area are kept whole.
func centered(lines []string, s Settings) []string {
	widest := 0
	for _, l := range lines {
		widest = max(widest, runewidth.StringWidth(l))
	}
	left := strings.Repeat(" ", max(s.Width-widest, 0)/2)
	top := max(s.Height-len(lines), 0) / 2

	out := make([]string, 0, max(s.Height, len(lines)))
	for range top {
		out = append(out, "")
	}
	for _, l := range lines {
		out = append(out, strings.TrimRight(left+l, " "))
	}
	for len(out) < s.Height {
		out = append(out, "")
	}
	return out
}

func shade(v float64) rune {
	r := []rune(shades)
	i := int(v * float64(len(r)-1))
	return r[min(max(i, 0), len(r)-1)]
}

// field shades every cell from its offset to the center, with rows
// doubled to account for tall character cells.
func field(s Settings, fn func(dx, dy, r, theta float64) float64) []string {
	cx, cy := float64(s.Width)/2, float64(s.Height)/2
	out := make([]string, s.Height)
	row := make([]rune, s.Width)
	for y := range s.Height {
		for x := range s.Width {
			dx := float64(x) - cx
			dy := (float64(y) - cy) * 2
			row[x] = shade(fn(dx, dy, math.Hypot(dx, dy), math.Atan2(dy, dx)))
		}
		out[y] = strings.TrimRight(string(row), " ")
	}
	return out
}

func matrix(rng *rand.Rand, s Settings) []string {
	out := make([]string, s.Height)
	row := make([]rune, s.Width)
	for y := range s.Height {
		for x := range s.Width {
			row[x] = ' '
			if rng.Float64() < 0.7 {
				row[x] = rune('0' + rng.IntN(2))
			}
		}
		out[y] = strings.TrimRight(string(row), " ")
	}
	return out
}

func waves(rng *rand.Rand, s Settings) []string {
	layers := [...]struct{ fx, fy, amp, speed float64 }{
		{0.07, 0.03, 0.5, 0.8},
		{0.05, 0.04, 0.3, 1.2},
		{0.03, 0.06, 0.2, 0.6},
	}
	phase := rng.Float64() * 2 * math.Pi
	out := make([]string, s.Height)
	row := make([]rune, s.Width)
	for y := range s.Height {
		for x := range s.Width {
			v := 0.0
			for _, l := range layers {
				v += math.Sin(float64(x)*l.fx+phase*l.speed+float64(y)*l.fy) * l.amp
			}
			row[x] = shade(min(max((v+1)/2, 0), 1))
		}
		out[y] = strings.TrimRight(string(row), " ")
	}
	return out
}

func boxes(s Settings) []string {
	const size = 6
	out := make([]string, s.Height)
	row := make([]rune, s.Width)
	for y := range s.Height {
		for x := range s.Width {
			onCol, onRow := x%size == 0, y%size == 0
			switch {
			case onCol && onRow:
				row[x] = [2][2]rune{{'┌', '┐'}, {'└', '┘'}}[(y/size)%2][(x/size)%2]
			case onCol:
				row[x] = '│'
			case onRow:
				row[x] = '─'
			case (x/size+y/size)%2 == 0:
				row[x] = '█'
			default:
				row[x] = ' '
			}
		}
		out[y] = strings.TrimRight(string(row), " ")
	}
	return out
}

// maze carves a perfect maze with an iterative backtracker. Cells sit on
// odd coordinates; walls are the even rows and columns between them.
func maze(rng *rand.Rand, s Settings) []string {
	w, h := s.Width, s.Height
	if w%2 == 0 {
		w--
	}
	if h%2 == 0 {
		h--
	}
	grid := make([][]rune, h)
	for y := range grid {
		grid[y] = []rune(strings.Repeat("█", w))
	}
	type cell struct{ x, y int }
	dirs := [4]cell{{2, 0}, {-2, 0}, {0, 2}, {0, -2}}
	stack := []cell{{1, 1}}
	grid[1][1] = ' '
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		var open []cell
		for _, d := range dirs {
			n := cell{c.x + d.x, c.y + d.y}
			if n.x > 0 && n.x < w-1 && n.y > 0 && n.y < h-1 && grid[n.y][n.x] != ' ' {
				open = append(open, n)
			}
		}
		if len(open) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		n := open[rng.IntN(len(open))]
		grid[(c.y+n.y)/2][(c.x+n.x)/2] = ' '
		grid[n.y][n.x] = ' '
		stack = append(stack, n)
	}
	out := make([]string, len(grid))
	for y, row := range grid {
		out[y] = string(row)
	}
	return out
}

// cells runs elementary rule 30 down the area from a random first row,
// wrapping at the edges.
func cells(rng *rand.Rand, s Settings) []string {
	const rule = 30
	cur := make([]bool, s.Width)
	for i := range cur {
		cur[i] = rng.IntN(4) == 0
	}
	next := make([]bool, s.Width)
	out := make([]string, s.Height)
	row := make([]rune, s.Width)
	for y := range s.Height {
		for x, alive := range cur {
			row[x] = ' '
			if alive {
				row[x] = '█'
			}
		}
		out[y] = strings.TrimRight(string(row), " ")
		for x := range cur {
			l := cur[(x+s.Width-1)%s.Width]
			r := cur[(x+1)%s.Width]
			idx := 0
			if l {
				idx |= 4
			}
			if cur[x] {
				idx |= 2
			}
			if r {
				idx |= 1
			}
			next[x] = rule>>idx&1 == 1
		}
		cur, next = next, cur
	}
	return out
}
