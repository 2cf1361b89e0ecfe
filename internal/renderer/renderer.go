package renderer

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"github.com/san-kum/prism/internal/buffer"
	"github.com/san-kum/prism/internal/gradient"
	"github.com/san-kum/prism/internal/logging"
	"github.com/san-kum/prism/internal/mathx"
	"github.com/san-kum/prism/internal/pattern"
	"github.com/san-kum/prism/internal/playlist"
	"github.com/san-kum/prism/internal/theme"
)

const (
	DefaultFPS       = 30
	MaxFPS           = 144
	DefaultCrossfade = time.Second

	SpeedStep = 0.1
	MinSpeed  = 0.1
	MaxSpeed  = 10.0

	// rows handed to one worker at a time
	minRowChunk = 4
)

// Themes resolves theme names to compiled gradients. *theme.Registry
// satisfies it.
type Themes interface {
	Gradient(name string) (*gradient.Gradient, error)
	Names() []string
}

// Config holds the renderer settings. Zero values pick defaults.
type Config struct {
	FPS           int
	Speed         float64
	Seed          uint32
	Smooth        bool
	Crossfade     time.Duration
	Workers       int
	Fill          buffer.FillMode
	Profile       termenv.Profile
	Status        bool
	CorrectAspect bool
	Aspect        float64
	// Glyph fills cells when there is no content. Zero selects a full block
	// for foreground fill and a space for background fill.
	Glyph  rune
	Keys   *KeyMap
	Output io.Writer
}

func (c *Config) normalize() {
	if c.FPS <= 0 {
		c.FPS = DefaultFPS
	}
	c.FPS = min(c.FPS, MaxFPS)
	if !(c.Speed > 0) || math.IsInf(c.Speed, 0) {
		c.Speed = 1
	}
	if c.Crossfade <= 0 {
		c.Crossfade = DefaultCrossfade
	}
	if c.Glyph == 0 {
		c.Glyph = '█'
		if c.Fill == buffer.Background {
			c.Glyph = ' '
		}
	}
	if c.Output == nil {
		c.Output = io.Discard
	}
}

// Stats describes the most recent frame.
type Stats struct {
	Frames  uint64
	Compute time.Duration
	Flush   time.Duration
	Written int
	// FPS is an exponential moving average over frame deltas.
	FPS float64
}

// Renderer owns the pattern engine, the active gradient and the frame
// buffer. All methods must be called from the goroutine running the frame
// loop, except Post.
type Renderer struct {
	cfg    Config
	keys   KeyMap
	themes Themes

	state  State
	engine *pattern.Engine
	grad   *gradient.Gradient
	theme  string

	buf     *buffer.Buffer
	content *Content
	scroll  ScrollState
	fade    *crossfade
	sched   *playlist.Scheduler

	status, help bool
	param        int
	stats        Stats
	events       chan Event
}

// New builds a renderer showing params through the named theme. A nil
// themes uses the built-in catalogue.
func New(cfg Config, params pattern.Params, themeName string, themes Themes) (*Renderer, error) {
	cfg.normalize()
	if themes == nil {
		themes = theme.Default()
	}
	g, err := themes.Gradient(themeName)
	if err != nil {
		return nil, err
	}
	keys := DefaultKeyMap()
	if cfg.Keys != nil {
		keys = *cfg.Keys
	}
	r := &Renderer{
		cfg:    cfg,
		keys:   keys,
		themes: themes,
		engine: pattern.NewEngine(params, pattern.Options{
			Seed:          cfg.Seed,
			Speed:         cfg.Speed,
			CorrectAspect: cfg.CorrectAspect,
			Aspect:        cfg.Aspect,
		}),
		grad:   g,
		theme:  themeName,
		status: cfg.Status,
		events: make(chan Event, 16),
	}
	return r, nil
}

func (r *Renderer) State() State                 { return r.state }
func (r *Renderer) Engine() *pattern.Engine      { return r.engine }
func (r *Renderer) Gradient() *gradient.Gradient { return r.grad }
func (r *Renderer) Theme() string                { return r.theme }
func (r *Renderer) Stats() Stats                 { return r.stats }
func (r *Renderer) Scroll() ScrollState          { return r.scroll }
func (r *Renderer) Buffer() *buffer.Buffer       { return r.buf }
func (r *Renderer) Fading() bool                 { return r.fade != nil }

// SetOutput changes where frames are flushed.
func (r *Renderer) SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	r.cfg.Output = w
}

// SetScheduler hands pattern and theme selection to a playlist. The
// scheduler's current scene is applied at once.
func (r *Renderer) SetScheduler(s *playlist.Scheduler) error {
	r.sched = s
	if s == nil || s.Len() == 0 {
		return nil
	}
	return r.applyScene(s.Current())
}

func (r *Renderer) setState(next State) error {
	s, ok := r.state.transition(next)
	if !ok {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidState, r.state, next)
	}
	r.state = s
	r.engine.SetPaused(s == Paused)
	return nil
}

// Start allocates the frame buffer for a width x height grid and enters
// Running.
func (r *Renderer) Start(width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if err := r.setState(Running); err != nil {
		return err
	}
	r.buf = buffer.New(width, height, buffer.Options{Profile: r.cfg.Profile, Fill: r.cfg.Fill})
	r.engine.Resize(width, height)
	r.layout()
	logging.Logger().Info("renderer started", "width", width, "height", height, "fps", r.cfg.FPS)
	return nil
}

// Stop moves to Terminating and releases the frame buffer.
func (r *Renderer) Stop() {
	r.state = Terminating
	r.engine.SetPaused(true)
	r.buf = nil
	r.fade = nil
}

// Resize reallocates the buffer; the next frame repaints every cell.
func (r *Renderer) Resize(width, height int) error {
	if !r.state.Active() {
		return ErrNotRunning
	}
	if width < 1 || height < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	r.buf.Resize(width, height)
	r.engine.Resize(width, height)
	if r.content != nil {
		r.content.Reflow(width)
	}
	if r.fade != nil {
		r.fade.from = r.fade.from.Resized(width, height)
	}
	r.layout()
	return nil
}

func (r *Renderer) footerRows() int {
	if r.buf == nil {
		return 0
	}
	if _, h := r.buf.Size(); h > 1 && (r.status || r.help) {
		return 1
	}
	return 0
}

func (r *Renderer) layout() {
	if r.buf == nil {
		return
	}
	_, h := r.buf.Size()
	r.scroll.SetViewport(h - r.footerRows())
	total := 0
	if r.content != nil {
		total = r.content.Len()
	}
	r.scroll.SetTotal(total)
	r.buf.SetScroll(r.scroll.Top)
}

func (r *Renderer) setContent(c *Content) {
	r.content = c
	if c != nil && r.buf != nil {
		if w, _ := r.buf.Size(); c.Width() != w {
			c.Reflow(w)
		}
	}
	r.layout()
}

// RenderFrame advances the clock by dt seconds, composes every visible
// cell into the back buffer and flushes the diff. A nil content renders
// the bare pattern. On a flush failure the returned *RenderError wraps the
// cause and the dirty cells are kept for the next attempt.
func (r *Renderer) RenderFrame(content *Content, dt float64) error {
	if !r.state.Active() {
		return ErrNotRunning
	}
	if content != r.content {
		r.setContent(content)
	}
	r.advance(dt)

	start := time.Now()
	r.compose()
	r.stats.Compute = time.Since(start)

	start = time.Now()
	n, err := r.buf.Flush(r.cfg.Output)
	r.stats.Flush = time.Since(start)
	r.stats.Frames++
	r.stats.Written = n
	if err != nil {
		return &RenderError{Frame: r.stats.Frames, Op: "flush", Err: err}
	}
	return nil
}

func (r *Renderer) advance(dt float64) {
	if !(dt > 0) || !mathx.Finite(dt) {
		return
	}
	if inst := 1 / dt; r.stats.FPS == 0 {
		r.stats.FPS = inst
	} else {
		r.stats.FPS += 0.1 * (inst - r.stats.FPS)
	}
	if r.state != Running {
		return
	}
	r.engine.Update(dt)
	if r.fade != nil {
		r.fade.elapsed += dt
		if r.fade.done() {
			r.fade = nil
		}
	}
	if r.sched != nil {
		if sc, ok := r.sched.Tick(dt); ok {
			if err := r.applyScene(sc); err != nil {
				logging.Logger().Warn("scene change failed", "scene", sc.Name, "err", err)
			}
		}
	}
}

// compose fills the back buffer from one snapshot of the engine, the
// gradient and the crossfade. Rows are split across workers; each worker
// writes only its own rows.
func (r *Renderer) compose() {
	w, _ := r.buf.Size()
	f := frameSource{
		s:       r.engine.Sampler(),
		g:       r.grad,
		content: r.content,
		top:     r.scroll.Top,
		glyph:   r.cfg.Glyph,
	}
	if r.fade != nil {
		fade := *r.fade
		fade.from = fade.from.At(f.s.Time())
		f.fade = &fade
	}
	rows := r.scroll.Viewport
	mathx.ParallelFor(rows, minRowChunk, r.cfg.Workers, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				r.buf.WriteCell(x, y, f.cell(x, y))
			}
		}
	})
	if r.footerRows() > 0 {
		r.drawFooter(rows)
	}
}

// frameSource is the immutable view shared by the compute workers.
type frameSource struct {
	s       pattern.Sampler
	g       *gradient.Gradient
	fade    *crossfade
	content *Content
	top     int
	glyph   rune
}

func (f *frameSource) cell(x, y int) buffer.Cell {
	t := f.s.Time()
	c := f.g.ColorAt(f.s.ValueAt(x, y), t)
	if f.fade != nil {
		old := f.fade.fromGrad.ColorAt(f.fade.from.ValueAt(x, y), t)
		c = old.BlendRgb(c, f.fade.alpha()).Clamped()
	}
	r, g, b := c.RGB255()
	ch := f.glyph
	if f.content != nil {
		ch = f.content.Glyph(x, f.top+y)
	}
	return buffer.Cell{Ch: ch, Color: buffer.RGB{r, g, b}}
}

var (
	footerFg = buffer.RGB{235, 235, 235}
	footerBg = buffer.RGB{24, 24, 24}
)

func (r *Renderer) drawFooter(y int) {
	w, _ := r.buf.Size()
	text := r.StatusLine()
	if r.help {
		text = HelpText(r.keys.ShortHelp())
	}
	row := wrap(" "+text, w)[0]
	color := footerFg
	if r.buf.Fill() == buffer.Background {
		color = footerBg
	}
	for x, ch := range row {
		r.buf.Set(x, y, ch, color)
	}
}

// StatusLine describes the current pattern, theme, speed and the selected
// parameter.
func (r *Renderer) StatusLine() string {
	p := r.engine.Params()
	parts := []string{
		p.Kind().Name(),
		r.theme,
		fmt.Sprintf("%.1fx", r.engine.Clock().Speed),
		fmt.Sprintf("%.0f fps", r.stats.FPS),
	}
	if name := r.SelectedParam(); name != "" {
		v, _ := pattern.Text(p, name)
		parts = append(parts, name+"="+v)
	}
	if r.sched != nil && r.sched.Len() > 0 {
		parts = append(parts, fmt.Sprintf("scene %d/%d", r.sched.Index()+1, r.sched.Len()))
	}
	if r.state == Paused {
		parts = append(parts, "paused")
	}
	return strings.Join(parts, " | ")
}

// SelectedParam is the parameter NudgeParam acts on.
func (r *Renderer) SelectedParam() string {
	names := pattern.Names(r.engine.Params())
	if len(names) == 0 {
		return ""
	}
	return names[r.param%len(names)]
}

// Frame is one rendered grid, row-major.
type Frame struct {
	Width, Height int
	Time          float64
	Cells         []buffer.Cell
}

func (f Frame) At(x, y int) buffer.Cell { return f.Cells[y*f.Width+x] }

// Snapshot renders a width x height frame at logical time t. It reads the
// current pattern, params, theme and content but never the live clock,
// crossfade or status line, so equal configuration and t give identical
// frames.
func (r *Renderer) Snapshot(width, height int, t float64) Frame {
	width, height = max(width, 1), max(height, 1)
	var content *Content
	if r.content != nil {
		content = &Content{lines: r.content.lines}
		content.Reflow(width)
	}
	return r.frame(content, width, height, t)
}

// SnapshotContent renders c at its own layout: c.Width() columns and one
// row per display row, with the pattern stretched over the whole text.
// The live content is not touched.
func (r *Renderer) SnapshotContent(c *Content, t float64) Frame {
	return r.frame(c, c.Width(), max(c.Len(), 1), t)
}

func (r *Renderer) frame(content *Content, width, height int, t float64) Frame {
	f := frameSource{
		s:       r.engine.Sampler().At(t).Resized(width, height),
		g:       r.grad,
		content: content,
		glyph:   r.cfg.Glyph,
	}
	out := Frame{Width: width, Height: height, Time: t, Cells: make([]buffer.Cell, width*height)}
	mathx.ParallelFor(height, minRowChunk, r.cfg.Workers, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := range width {
				out.Cells[y*width+x] = f.cell(x, y)
			}
		}
	})
	return out
}
