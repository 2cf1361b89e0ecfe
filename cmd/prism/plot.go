package main

import (
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/muesli/termenv"
	"github.com/san-kum/prism/internal/pattern"
	"github.com/san-kum/prism/internal/renderer"
	"github.com/spf13/cobra"
)

// rowProfile samples every cell of the middle row.
func rowProfile(s pattern.Sampler, w, h int) []float64 {
	data := make([]float64, w)
	for x := range data {
		data[x] = s.ValueAt(x, h/2)
	}
	return data
}

// timeSeries samples cell (x, y) n times, fps samples per second.
func timeSeries(s pattern.Sampler, x, y, n, fps int) []float64 {
	data := make([]float64, n)
	for i := range data {
		data[i] = s.At(s.Time() + float64(i)/float64(fps)).ValueAt(x, y)
	}
	return data
}

func plotPattern(cmd *cobra.Command, args []string) error {
	if width < 2 || height < 1 {
		return fmt.Errorf("invalid size %dx%d", width, height)
	}
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	params, err := cfg.PatternParams()
	if err != nil {
		return err
	}
	e := pattern.NewEngine(params, pattern.Options{
		Seed:          cfg.Seed,
		Speed:         cfg.Speed,
		CorrectAspect: cfg.Aspect.Correct,
		Aspect:        cfg.Aspect.Ratio,
	})
	e.Resize(width, height)

	var data []float64
	caption := fmt.Sprintf("%s: row %d, t=0", params.Kind().Name(), height/2)
	if overTime {
		data = timeSeries(e.Sampler(), width/2, height/2, max(samples, 2), max(frameRate, 1))
		caption = fmt.Sprintf("%s: cell (%d,%d) over %d samples at %d/s", params.Kind().Name(), width/2, height/2, len(data), max(frameRate, 1))
	} else {
		data = rowProfile(e.Sampler(), width, height)
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.Caption(caption),
	)
	fmt.Fprintln(cmd.OutOrStdout(), graph)
	return nil
}

// benchStats summarises frame times.
type benchStats struct {
	Min, Max, Mean, P95 time.Duration
}

func summarize(times []time.Duration) benchStats {
	if len(times) == 0 {
		return benchStats{}
	}
	sorted := append([]time.Duration(nil), times...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	var total time.Duration
	for _, t := range sorted {
		total += t
	}
	p95 := sorted[min(len(sorted)-1, len(sorted)*95/100)]
	return benchStats{
		Min:  sorted[0],
		Max:  sorted[len(sorted)-1],
		Mean: total / time.Duration(len(sorted)),
		P95:  p95,
	}
}

// renderFrames renders n frames off screen and returns compute+flush time
// per frame along with the mean bytes written per frame.
func renderFrames(r *renderer.Renderer, w, h, n, fps int) ([]time.Duration, int, error) {
	if err := r.Start(w, h); err != nil {
		return nil, 0, err
	}
	defer r.Stop()
	times := make([]time.Duration, 0, n)
	dt := 1 / float64(max(fps, 1))
	bytes := 0
	for range n {
		if err := r.RenderFrame(nil, dt); err != nil {
			return nil, 0, err
		}
		st := r.Stats()
		times = append(times, st.Compute+st.Flush)
		bytes += st.Written
	}
	return times, bytes / max(n, 1), nil
}

func benchPattern(cmd *cobra.Command, args []string) error {
	r, cfg, err := newRenderer(cmd, args, termenv.TrueColor)
	if err != nil {
		return err
	}
	times, written, err := renderFrames(r, benchWidth, benchHeight, max(benchFrames, 1), cfg.FPS)
	if err != nil {
		return err
	}
	st := summarize(times)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "pattern: %s\n", cfg.Pattern)
	fmt.Fprintf(out, "grid: %dx%d, frames: %d\n\n", benchWidth, benchHeight, len(times))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MIN\tMEAN\tP95\tMAX\tBYTES/FRAME\tMAX FPS")
	maxFPS := 0.0
	if st.Mean > 0 {
		maxFPS = float64(time.Second) / float64(st.Mean)
	}
	fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%d\t%.0f\n", st.Min, st.Mean, st.P95, st.Max, written, maxFPS)
	if err := w.Flush(); err != nil {
		return err
	}

	ms := make([]float64, len(times))
	for i, t := range times {
		ms[i] = float64(t.Microseconds()) / 1000
	}
	if len(ms) > 1 {
		graph := asciigraph.Plot(ms,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("frame time (ms)"),
		)
		fmt.Fprintf(out, "\n%s\n", graph)
	}
	if budget := time.Second / time.Duration(cfg.FPS); st.P95 > budget {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: p95 frame time %v exceeds the %d fps budget of %v\n", st.P95, cfg.FPS, budget)
	}
	return nil
}
