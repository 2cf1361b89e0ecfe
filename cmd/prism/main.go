package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/muesli/termenv"
	"github.com/san-kum/prism/internal/config"
	"github.com/san-kum/prism/internal/logging"
	"github.com/san-kum/prism/internal/pattern"
	"github.com/san-kum/prism/internal/playlist"
	"github.com/san-kum/prism/internal/recipe"
	"github.com/san-kum/prism/internal/renderer"
	"github.com/san-kum/prism/internal/terminal"
	"github.com/san-kum/prism/internal/theme"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	dataDir string
	// Renderer settings
	patternID    string
	themeName    string
	themeFile    string
	watchTheme   bool
	frameRate    int
	speed        float64
	seed         uint32
	paramFlags   []string
	configFile   string
	preset       string
	recipeID     string
	playlistFile string
	showcase     bool
	smooth       bool
	fill         string
	workers      int
	showStatus   bool
	contentFile  string
	artName      string
	startTime    float64
	// Colorize
	static     bool
	noColor    bool
	lineStep   float64
	bufferSize int
	showStats  bool
	wrapCells  int
	// Logging
	logFile  string
	logLevel string
	// Plot, bench and export
	overTime   bool
	samples    int
	frameCount int
	width      int
	height     int
	format     string
	outFile    string
	// Bench keeps its own size and frame count; the export defaults differ.
	benchFrames int
	benchWidth  int
	benchHeight int
	// Listings
	category string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "prism",
		Short: "real-time terminal pattern renderer",
		Long: `Render animated color patterns full screen.

When stdin is piped and no --file is given, the input is colored line by
line and written to stdout instead, like 'prism colorize'.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runRender,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "write logs to this file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	}
	addRenderFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "render a pattern full screen",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	addRenderFlags(runCmd)

	patternsCmd := &cobra.Command{
		Use:   "patterns",
		Short: "list patterns and their parameters",
		Args:  cobra.NoArgs,
		RunE:  listPatterns,
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list themes",
		Args:  cobra.NoArgs,
		RunE:  listThemes,
	}
	themesCmd.Flags().StringVar(&category, "category", "", "only list this category")
	themesCmd.Flags().StringVar(&themeFile, "theme-file", "", "also load themes from this YAML file")

	presetsCmd := &cobra.Command{
		Use:   "presets [pattern]",
		Short: "list presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [pattern]",
		Short: "plot pattern values along the middle row or over time",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotPattern,
	}
	addPatternFlags(plotCmd)
	plotCmd.Flags().BoolVar(&overTime, "over-time", false, "plot the center cell over time")
	plotCmd.Flags().IntVar(&samples, "samples", 120, "samples for --over-time")
	plotCmd.Flags().IntVar(&width, "width", 80, "grid width")
	plotCmd.Flags().IntVar(&height, "height", 24, "grid height")
	plotCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "sample rate for --over-time")

	benchCmd := &cobra.Command{
		Use:   "bench [pattern]",
		Short: "benchmark frame compute and flush",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchPattern,
	}
	addPatternFlags(benchCmd)
	benchCmd.Flags().IntVar(&benchFrames, "frames", 300, "frames to render")
	benchCmd.Flags().IntVar(&benchWidth, "width", 120, "grid width")
	benchCmd.Flags().IntVar(&benchHeight, "height", 40, "grid height")
	benchCmd.Flags().IntVar(&workers, "workers", 0, "compute workers (0 = GOMAXPROCS)")
	benchCmd.Flags().StringVar(&fill, "fill", "fg", "color the glyph (fg) or the background (bg)")

	exportCmd := &cobra.Command{
		Use:   "export [pattern]",
		Short: "export frames as ansi, svg, png, gif or json",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportPattern,
	}
	addPatternFlags(exportCmd)
	exportCmd.Flags().StringVar(&format, "format", "png", "output format (ansi, svg, png, gif, json)")
	exportCmd.Flags().IntVar(&frameCount, "frames", 1, "frames to export")
	exportCmd.Flags().IntVar(&width, "width", 80, "grid width")
	exportCmd.Flags().IntVar(&height, "height", 24, "grid height")
	exportCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frames per second of logical time")
	exportCmd.Flags().Float64Var(&startTime, "start", 0, "logical time of the first frame")
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (- for stdout)")
	exportCmd.Flags().StringVar(&fill, "fill", "fg", "color the glyph (fg) or the background (bg)")

	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "browse patterns and themes interactively",
		Args:  cobra.NoArgs,
		RunE:  browse,
	}
	browseCmd.Flags().StringVar(&patternID, "pattern", config.DefaultPattern, "starting pattern")
	browseCmd.Flags().StringVar(&themeName, "theme", config.DefaultTheme, "starting theme")
	browseCmd.Flags().StringVar(&themeFile, "theme-file", "", "also load themes from this YAML file")
	browseCmd.Flags().Uint32Var(&seed, "seed", 0, "noise seed")

	artsCmd := &cobra.Command{
		Use:   "arts",
		Short: "list built-in demo art",
		Args:  cobra.NoArgs,
		RunE:  listArts,
	}

	rootCmd.AddCommand(runCmd, patternsCmd, themesCmd, presetsCmd, plotCmd, benchCmd, exportCmd, browseCmd,
		newColorizeCmd(), artsCmd, newRecipeCmd(), newPlaylistCmd())
	return rootCmd
}

// addPatternFlags registers the flags that pick a pattern, theme and params.
func addPatternFlags(c *cobra.Command) {
	f := c.Flags()
	f.StringVar(&patternID, "pattern", config.DefaultPattern, "pattern id")
	f.StringVar(&themeName, "theme", config.DefaultTheme, "theme name")
	f.StringVar(&themeFile, "theme-file", "", "also load themes from this YAML file")
	f.Float64Var(&speed, "speed", config.DefaultSpeed, "animation speed multiplier")
	f.Uint32Var(&seed, "seed", 0, "noise seed")
	f.StringArrayVar(&paramFlags, "param", nil, "pattern parameter as name=value (repeatable)")
	f.StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	f.StringVar(&preset, "preset", "", "use a named preset")
	f.StringVar(&recipeID, "recipe", "", "load a saved recipe by id or prefix")
}

func addRenderFlags(c *cobra.Command) {
	addPatternFlags(c)
	f := c.Flags()
	f.BoolVar(&watchTheme, "watch", false, "reload --theme-file when it changes")
	f.IntVar(&frameRate, "fps", config.DefaultFPS, "target frame rate")
	f.StringVar(&playlistFile, "playlist", "", "playlist file")
	f.BoolVar(&showcase, "showcase", false, "rotate through patterns and themes")
	f.BoolVar(&smooth, "smooth", false, "crossfade pattern and theme changes")
	f.StringVar(&fill, "fill", "fg", "color the glyph (fg) or the background (bg)")
	f.IntVar(&workers, "workers", 0, "compute workers (0 = GOMAXPROCS)")
	f.BoolVar(&showStatus, "status", true, "show the status line")
	f.StringVar(&contentFile, "file", "", "text to display over the pattern (- for stdin)")
	f.StringVar(&artName, "art", "", "display built-in demo art over the pattern (see 'prism arts')")
	f.Float64Var(&startTime, "start", 0, "initial animation time in seconds")
}

func setupLogging() error {
	if logFile == "" {
		return nil
	}
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	logging.SetLogger(logging.NewText(f, level))
	return nil
}

func recipeStore() (*recipe.Store, error) {
	if dataDir != "" {
		return recipe.New(filepath.Join(dataDir, "recipes")), nil
	}
	dir, err := recipe.DefaultDir()
	if err != nil {
		return nil, err
	}
	return recipe.New(dir), nil
}

// buildConfig layers the config file, a preset or recipe, and changed flags
// over the defaults. args may name the pattern positionally.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if preset != "" {
		p := config.FindPreset(preset)
		if p == nil {
			var names []string
			for _, id := range config.PresetPatterns() {
				names = append(names, config.ListPresets(id)...)
			}
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, names)
		}
		cfg.ApplyPreset(p)
	}
	if recipeID != "" {
		st, err := recipeStore()
		if err != nil {
			return nil, err
		}
		rec, err := st.Load(recipeID)
		if err != nil {
			return nil, err
		}
		cfg.Pattern, cfg.Theme, cfg.Seed, cfg.Speed = rec.Pattern, rec.Theme, rec.Seed, rec.Speed
		cfg.Params = nil
		for k, v := range rec.Params {
			cfg.SetParam(k, v)
		}
	}

	flags := cmd.Flags()
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}
	pick := patternID
	if len(args) > 0 {
		pick = args[0]
	}
	if (changed("pattern") || len(args) > 0) && pick != cfg.Pattern {
		cfg.Pattern = pick
		cfg.Params = nil
	}
	if changed("theme") {
		cfg.Theme = themeName
	}
	if changed("theme-file") {
		cfg.ThemeFile = themeFile
	}
	if changed("fps") {
		cfg.FPS = frameRate
	}
	if changed("speed") {
		cfg.Speed = speed
	}
	if changed("seed") {
		cfg.Seed = seed
	}
	if changed("smooth") {
		cfg.Smooth = smooth
	}
	if changed("fill") {
		cfg.Fill = fill
	}
	if changed("workers") {
		cfg.Workers = workers
	}
	if changed("status") {
		cfg.Status = showStatus
	}
	if changed("playlist") {
		cfg.Playlist = playlistFile
	}
	for _, kv := range paramFlags {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --param %q: want name=value", kv)
		}
		cfg.SetParam(strings.TrimSpace(name), strings.TrimSpace(value))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadThemes returns the registry with cfg.ThemeFile merged in.
func loadThemes(cfg *config.Config) (*theme.Registry, error) {
	reg := theme.Default()
	if cfg.ThemeFile != "" {
		if _, err := reg.LoadFile(cfg.ThemeFile); err != nil {
			return nil, err
		}
	}
	if _, err := reg.Get(cfg.Theme); err != nil {
		return nil, err
	}
	return reg, nil
}

func rendererConfig(cfg *config.Config, profile termenv.Profile) renderer.Config {
	return renderer.Config{
		FPS:           cfg.FPS,
		Speed:         cfg.Speed,
		Seed:          cfg.Seed,
		Smooth:        cfg.Smooth,
		Crossfade:     time.Duration(cfg.Crossfade * float64(time.Second)),
		Workers:       cfg.Workers,
		Fill:          cfg.FillMode(),
		Profile:       profile,
		Status:        cfg.Status,
		CorrectAspect: cfg.Aspect.Correct,
		Aspect:        cfg.Aspect.Ratio,
	}
}

// newRenderer builds a renderer from flags and config for the subcommands
// that render off screen.
func newRenderer(cmd *cobra.Command, args []string, profile termenv.Profile) (*renderer.Renderer, *config.Config, error) {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return nil, nil, err
	}
	reg, err := loadThemes(cfg)
	if err != nil {
		return nil, nil, err
	}
	params, err := cfg.PatternParams()
	if err != nil {
		return nil, nil, err
	}
	r, err := renderer.New(rendererConfig(cfg, profile), params, cfg.Theme, reg)
	if err != nil {
		return nil, nil, err
	}
	return r, cfg, nil
}

// scheduler builds the playlist or showcase rotation, or nil when neither
// is requested.
func scheduler(cfg *config.Config, reg *theme.Registry) (*playlist.Scheduler, error) {
	checker := func(name string) error {
		_, err := reg.Get(name)
		return err
	}
	switch {
	case cfg.Playlist != "":
		pl, err := playlist.Load(cfg.Playlist)
		if err != nil {
			return nil, err
		}
		scenes, err := pl.Scenes(checker)
		if err != nil {
			return nil, err
		}
		return playlist.NewScheduler(scenes), nil
	case showcase:
		var kinds []pattern.Kind
		for _, info := range pattern.List() {
			kinds = append(kinds, info.Kind)
		}
		return playlist.NewScheduler(playlist.Showcase(kinds, reg.Names(), 0)), nil
	}
	return nil, nil
}

// openInput reads the content file, or generates the demo art, and picks
// the terminal. When content comes from stdin, keys are read from /dev/tty
// instead.
func openInput(path, art string) (*renderer.Content, *terminal.Terminal, error) {
	if path == "" {
		term := terminal.Stdio()
		if art == "" {
			return nil, term, nil
		}
		size := term.Size()
		text, err := demoText(art, size.Width, size.Height)
		if err != nil {
			return nil, nil, err
		}
		return renderer.NewContent(text, size.Width), term, nil
	}
	var (
		src io.Reader
		in  = os.Stdin
	)
	if path == "-" {
		tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
		if err != nil {
			return nil, nil, fmt.Errorf("stdin is the content, and no terminal is available for keys: %w", err)
		}
		src, in = os.Stdin, tty
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		src = f
	}
	content, err := renderer.ReadContent(src, terminal.DefaultSize.Width)
	if err != nil {
		return nil, nil, err
	}
	return content, terminal.New(in, os.Stdout), nil
}

func runRender(cmd *cobra.Command, args []string) error {
	if contentFile == "" && artName == "" && !isTTY(os.Stdin) {
		return runColorize(cmd, nil)
	}
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	reg, err := loadThemes(cfg)
	if err != nil {
		return err
	}
	params, err := cfg.PatternParams()
	if err != nil {
		return err
	}
	profile := termenv.NewOutput(os.Stdout).EnvColorProfile()
	r, err := renderer.New(rendererConfig(cfg, profile), params, cfg.Theme, reg)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("start") {
		r.Engine().SetTime(startTime)
	}
	sched, err := scheduler(cfg, reg)
	if err != nil {
		return err
	}
	if sched != nil {
		if err := r.SetScheduler(sched); err != nil {
			return err
		}
	}

	content, term, err := openInput(contentFile, artName)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logging.Logger().Info("starting", "pattern", cfg.Pattern, "theme", cfg.Theme, "fps", cfg.FPS, "profile", profile)
	g, gctx := errgroup.WithContext(ctx)
	if watchTheme && cfg.ThemeFile != "" {
		g.Go(func() error {
			return theme.Watch(gctx, cfg.ThemeFile, func(defs []theme.Definition, err error) {
				reloadTheme(r, reg, cfg.Theme, defs, err)
			})
		})
	}
	g.Go(func() error {
		defer cancel()
		return r.Run(gctx, term, content)
	})
	return g.Wait()
}

// reloadTheme registers reloaded definitions and swaps in the one named
// current, or the first one when current is not among them.
func reloadTheme(r *renderer.Renderer, reg *theme.Registry, current string, defs []theme.Definition, err error) {
	log := logging.Logger()
	if err != nil {
		log.Warn("theme reload failed", "err", err)
		return
	}
	if len(defs) == 0 {
		return
	}
	if err := reg.Add(theme.CustomCategory, defs...); err != nil {
		log.Warn("theme reload failed", "err", err)
		return
	}
	pick := defs[0]
	for _, d := range defs {
		if strings.EqualFold(d.Name, current) {
			pick = d
		}
	}
	g, err := pick.Compile()
	if err != nil {
		log.Warn("theme reload failed", "theme", pick.Name, "err", err)
		return
	}
	if !r.Post(renderer.SetTheme{Name: pick.Name, Gradient: g}) {
		log.Warn("theme reload dropped, event queue full", "theme", pick.Name)
	}
}
