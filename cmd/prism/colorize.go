package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/muesli/termenv"
	"github.com/san-kum/prism/internal/colorize"
	"github.com/san-kum/prism/internal/demo"
	"github.com/san-kum/prism/internal/renderer"
	"github.com/san-kum/prism/internal/terminal"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newColorizeCmd() *cobra.Command {
	colorizeCmd := &cobra.Command{
		Use:   "colorize [file...]",
		Short: "color text with a pattern and write it to stdout",
		Long: `Color text with a pattern and write it to stdout.

Files are colored as one frame each. Piped stdin, or a "-" argument, is
colored line by line as it arrives unless --static is given. With no files
and a terminal on stdin the built-in demo art is colored instead.`,
		RunE: runColorize,
	}
	addPatternFlags(colorizeCmd)
	f := colorizeCmd.Flags()
	f.BoolVar(&static, "static", false, "read stdin fully and color it as one frame")
	f.BoolVar(&noColor, "no-color", false, "write plain text")
	f.IntVar(&wrapCells, "width", 0, "wrap at this many cells (default: terminal width, or no wrap when piped)")
	f.StringVar(&fill, "fill", "fg", "color the glyph (fg) or the background (bg)")
	f.Float64Var(&startTime, "start", 0, "pattern time of the first line")
	f.Float64Var(&lineStep, "line-step", colorize.DefaultLineStep, "pattern time each streamed line advances")
	f.IntVar(&bufferSize, "buffer-size", colorize.DefaultBufferSize, "read buffer for streamed input in bytes")
	f.BoolVar(&showStats, "stats", false, "print line and throughput counts to stderr")
	f.StringVar(&artName, "art", "", "color this demo art instead of input (see 'prism arts')")
	return colorizeCmd
}

func isTTY(f *os.File) bool { return term.IsTerminal(int(f.Fd())) }

// colorProfile is the profile for w; NO_COLOR and --no-color give Ascii.
func colorProfile(w io.Writer) termenv.Profile {
	if noColor {
		return termenv.Ascii
	}
	return termenv.NewOutput(w).EnvColorProfile()
}

// wrapWidth is the --width flag, else the terminal width when stdout is a
// terminal, else 0 for no wrapping.
func wrapWidth(cmd *cobra.Command) int {
	if f := cmd.Flags().Lookup("width"); f != nil && f.Changed {
		return max(wrapCells, 0)
	}
	if isTTY(os.Stdout) {
		return terminal.Stdio().Size().Width
	}
	return 0
}

func runColorize(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	profile := colorProfile(out)
	r, cfg, err := newRenderer(cmd, nil, profile)
	if err != nil {
		return err
	}
	opts := colorize.Options{
		Profile:    profile,
		Fill:       cfg.FillMode(),
		Width:      wrapWidth(cmd),
		Start:      startTime,
		LineStep:   lineStep,
		BufferSize: bufferSize,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case artName != "":
		return colorizeArt(cmd, r, opts)
	case len(args) == 0 && isTTY(os.Stdin):
		return colorizeArt(cmd, r, opts)
	case len(args) == 0:
		args = []string{"-"}
	}

	for _, path := range args {
		st, err := colorizeInput(ctx, out, r, path, opts)
		if err != nil {
			return err
		}
		if showStats {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d lines, %d rows, %d bytes in %v (%.0f lines/s)\n",
				path, st.Lines, st.Rows, st.Bytes, st.Elapsed.Round(time.Microsecond), st.LinesPerSecond())
		}
		if ctx.Err() != nil {
			return nil
		}
	}
	return nil
}

func colorizeInput(ctx context.Context, out io.Writer, r *renderer.Renderer, path string, opts colorize.Options) (colorize.Stats, error) {
	if path == "-" {
		if static {
			return colorize.Static(out, r, os.Stdin, opts)
		}
		return colorize.Stream(ctx, out, r, os.Stdin, opts)
	}
	f, err := os.Open(path)
	if err != nil {
		return colorize.Stats{}, err
	}
	defer f.Close()
	return colorize.Static(out, r, f, opts)
}

func colorizeArt(cmd *cobra.Command, r *renderer.Renderer, opts colorize.Options) error {
	text, err := demoText(artName, opts.Width, 0)
	if err != nil {
		return err
	}
	_, err = colorize.Static(cmd.OutOrStdout(), r, strings.NewReader(text), opts)
	return err
}

// demoText generates the named art, or the logo for an empty name, sized
// to w x h. Zero sizes use the demo defaults.
func demoText(name string, w, h int) (string, error) {
	a := demo.Logo
	if name != "" {
		var err error
		if a, err = demo.Lookup(name); err != nil {
			return "", err
		}
	}
	s := demo.DefaultSettings()
	if w > 0 {
		s.Width = w
	}
	if h > 0 {
		s.Height = h
	}
	if seed != 0 {
		s.Seed = uint64(seed)
	}
	return demo.Generate(a, s), nil
}

func listArts(cmd *cobra.Command, args []string) error {
	t := newTable("ID", "NAME", "DESCRIPTION")
	for _, info := range demo.List() {
		t.Row(info.ID, info.Name, info.Description)
	}
	fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	return nil
}
