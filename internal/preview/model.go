package preview

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/prism/internal/buffer"
	"github.com/san-kum/prism/internal/pattern"
	"github.com/san-kum/prism/internal/renderer"
	"github.com/san-kum/prism/internal/theme"
)

const (
	fps             = 30
	listWidth       = 26
	defaultWidth    = 48
	defaultHeight   = 14
	minCanvasWidth  = 8
	minCanvasHeight = 4
	historyCapacity = 60
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, true, false, false).BorderForeground(lipgloss.Color("240")).Padding(1, 1).Width(listWidth)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	itemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	footerStyle = lipgloss.NewStyle().Padding(0, 2)
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg { return TickMsg(t) })
}

type focus int

const (
	focusPatterns focus = iota
	focusThemes
)

// Options seeds the browser.
type Options struct {
	Themes  renderer.Themes
	Pattern pattern.Kind
	Theme   string
	Seed    uint32
	Fill    buffer.FillMode
	// Width and Height size the preview canvas until the first window size
	// message arrives.
	Width, Height int
}

// Result is what the user picked. Chosen is false when the browser was
// quit without a selection.
type Result struct {
	Pattern pattern.Kind
	Theme   string
	Chosen  bool
}

// Model is the bubbletea model for the browser.
type Model struct {
	keys   keyMap
	help   help.Model
	r      *renderer.Renderer
	fill   buffer.FillMode
	kinds  []pattern.Info
	themes []string
	focus  focus
	cursor [2]int

	width, height int
	t, speed      float64
	running       bool
	brightness    []float64
	result        Result
	err           error
}

// New builds a browser positioned on opts.Pattern and opts.Theme.
func New(opts Options) (Model, error) {
	if opts.Themes == nil {
		opts.Themes = theme.Default()
	}
	if opts.Theme == "" {
		opts.Theme = theme.DefaultName
	}
	r, err := renderer.New(renderer.Config{Seed: opts.Seed, Fill: opts.Fill, CorrectAspect: true}, pattern.Defaults(opts.Pattern), opts.Theme, opts.Themes)
	if err != nil {
		return Model{}, err
	}
	m := Model{
		keys:    defaultKeys(),
		help:    help.New(),
		r:       r,
		fill:    opts.Fill,
		kinds:   pattern.List(),
		themes:  opts.Themes.Names(),
		width:   max(opts.Width, minCanvasWidth),
		height:  max(opts.Height, minCanvasHeight),
		speed:   1,
		running: true,
	}
	if opts.Width == 0 {
		m.width = defaultWidth
	}
	if opts.Height == 0 {
		m.height = defaultHeight
	}
	m.cursor[focusPatterns] = int(r.Engine().Kind())
	for i, name := range m.themes {
		if strings.EqualFold(name, r.Theme()) {
			m.cursor[focusThemes] = i
		}
	}
	return m, nil
}

func (m Model) Init() tea.Cmd { return tick() }

// Result reports the selection once the program has exited.
func (m Model) Result() Result { return m.result }

// Err is the last error from applying a selection.
func (m Model) Err() error { return m.err }

func (m Model) Pattern() pattern.Kind { return m.r.Engine().Kind() }
func (m Model) Theme() string         { return m.r.Theme() }
func (m Model) Time() float64         { return m.t }
func (m Model) Running() bool         { return m.running }

// Update handles input and advances the preview clock.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Choose):
			m.result = Result{Pattern: m.Pattern(), Theme: m.Theme(), Chosen: true}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.move(-1)
		case key.Matches(msg, m.keys.Down):
			m.move(1)
		case key.Matches(msg, m.keys.Switch):
			m.focus = 1 - m.focus
		case key.Matches(msg, m.keys.Pause):
			m.running = !m.running
		case key.Matches(msg, m.keys.Faster):
			m.speed = min(m.speed+renderer.SpeedStep, renderer.MaxSpeed)
		case key.Matches(msg, m.keys.Slower):
			m.speed = max(m.speed-renderer.SpeedStep, renderer.MinSpeed)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	case tea.WindowSizeMsg:
		m.width = max(msg.Width-listWidth-6, minCanvasWidth)
		m.height = max(msg.Height-8, minCanvasHeight)
		m.help.Width = msg.Width
	case TickMsg:
		if m.running {
			m.t += m.speed / fps
			m.brightness = append(m.brightness, brightness(m.frame()))
			if len(m.brightness) > historyCapacity {
				m.brightness = m.brightness[1:]
			}
		}
		return m, tick()
	}
	return m, nil
}

// move steps the cursor of the focused list and applies the new selection.
func (m *Model) move(dir int) {
	n := len(m.kinds)
	if m.focus == focusThemes {
		n = len(m.themes)
	}
	if n == 0 {
		return
	}
	i := ((m.cursor[m.focus]+dir)%n + n) % n
	m.cursor[m.focus] = i
	var err error
	if m.focus == focusPatterns {
		err = m.r.Handle(renderer.SetPattern{Kind: m.kinds[i].Kind})
	} else {
		err = m.r.Handle(renderer.SetTheme{Name: m.themes[i]})
	}
	m.err = err
	m.brightness = m.brightness[:0]
}

func (m Model) frame() renderer.Frame { return m.r.Snapshot(m.width, m.height, m.t) }

// brightness is the mean luma of a frame in [0,1].
func brightness(f renderer.Frame) float64 {
	if len(f.Cells) == 0 {
		return 0
	}
	sum := 0
	for _, c := range f.Cells {
		sum += 299*int(c.Color[0]) + 587*int(c.Color[1]) + 114*int(c.Color[2])
	}
	return float64(sum) / float64(len(f.Cells)) / (255 * 1000)
}

func hex(c buffer.RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}

// canvas renders f with one lipgloss style per color run.
func (m Model) canvas(f renderer.Frame) string {
	var s strings.Builder
	for y := 0; y < f.Height; y++ {
		row := f.Cells[y*f.Width : (y+1)*f.Width]
		for x := 0; x < len(row); {
			end := x + 1
			for end < len(row) && row[end].Color == row[x].Color {
				end++
			}
			run := make([]rune, 0, end-x)
			for _, c := range row[x:end] {
				if c.Ch != buffer.Continuation {
					run = append(run, c.Ch)
				}
			}
			style := lipgloss.NewStyle().Foreground(hex(row[x].Color))
			if m.fill == buffer.Background {
				style = lipgloss.NewStyle().Background(hex(row[x].Color))
			}
			s.WriteString(style.Render(string(run)))
			x = end
		}
		if y < f.Height-1 {
			s.WriteByte('\n')
		}
	}
	return s.String()
}

func (m Model) list(title string, f focus, items []string) string {
	var s strings.Builder
	header := title
	if m.focus == f {
		header = "▸ " + title
	}
	s.WriteString(headerStyle.Render(header) + "\n")
	for i, item := range items {
		if i == m.cursor[f] {
			s.WriteString(cursorStyle.Render("> "+item) + "\n")
		} else {
			s.WriteString(itemStyle.Render("  "+item) + "\n")
		}
	}
	return s.String()
}

// View renders the lists, the preview canvas and the help footer.
func (m Model) View() string {
	names := make([]string, len(m.kinds))
	for i, info := range m.kinds {
		names[i] = info.Kind.Name()
	}
	lists := m.list("PATTERNS", focusPatterns, names) + "\n" + m.list("THEMES", focusThemes, m.themes)
	side := panelStyle.Render(lists)

	var main strings.Builder
	main.WriteString(canvasStyle.Render(m.canvas(m.frame())) + "\n")
	info := m.kinds[m.cursor[focusPatterns]]
	status := fmt.Sprintf("%s | %s | %.1fx | t=%.1fs", info.Kind.Name(), m.Theme(), m.speed, m.t)
	if !m.running {
		status += " | paused"
	}
	main.WriteString(footerStyle.Render(status) + "\n")
	main.WriteString(footerStyle.Render(dimStyle.Render(info.Description)) + "\n")
	if len(m.brightness) > 1 {
		chart := asciigraph.Plot(m.brightness, asciigraph.Height(3), asciigraph.Width(min(m.width, 40)), asciigraph.Caption("brightness"))
		main.WriteString(footerStyle.Render(graphStyle.Render(chart)) + "\n")
	}
	if m.err != nil {
		main.WriteString(footerStyle.Render(cursorStyle.Render(m.err.Error())) + "\n")
	}
	main.WriteString(footerStyle.Render(m.help.View(m.keys)))
	return lipgloss.JoinHorizontal(lipgloss.Top, side, main.String())
}

// Run starts the browser on the alternate screen and returns the selection.
func Run(opts Options) (Result, error) {
	m, err := New(opts)
	if err != nil {
		return Result{}, err
	}
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return Result{}, err
	}
	return final.(Model).Result(), nil
}
