package colorize

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/san-kum/prism/internal/pattern"
	"github.com/san-kum/prism/internal/renderer"
	"github.com/san-kum/prism/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer(t *testing.T, k pattern.Kind) *renderer.Renderer {
	t.Helper()
	r, err := renderer.New(renderer.Config{Seed: 1}, pattern.Defaults(k), theme.DefaultName, theme.Default())
	require.NoError(t, err)
	return r
}

func TestStaticWithoutColorWritesPlainText(t *testing.T) {
	var out bytes.Buffer
	in := "\x1b[31mred\x1b[0m\nplain  \n"
	st, err := Static(&out, newRenderer(t, pattern.Plasma), strings.NewReader(in), Options{Profile: termenv.Ascii})
	require.NoError(t, err)

	assert.Equal(t, "red\nplain\n", out.String())
	assert.Equal(t, 2, st.Lines)
	assert.Equal(t, 2, st.Rows)
	assert.Equal(t, len(in), st.Bytes)
}

func TestStaticColorsEveryLine(t *testing.T) {
	var out bytes.Buffer
	r := newRenderer(t, pattern.Diagonal)
	_, err := Static(&out, r, strings.NewReader("hello\nworld 世界\n"), Options{Profile: termenv.TrueColor})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "\x1b[38;2;")
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		assert.True(t, strings.HasSuffix(line, "\x1b[0m"), "line %q not reset", line)
	}
	assert.Equal(t, "hello\nworld 世界\n", ansi.Strip(text))

	var again bytes.Buffer
	_, err = Static(&again, r, strings.NewReader("hello\nworld 世界\n"), Options{Profile: termenv.TrueColor})
	require.NoError(t, err)
	assert.Equal(t, text, again.String())
}

func TestStaticWraps(t *testing.T) {
	var out bytes.Buffer
	st, err := Static(&out, newRenderer(t, pattern.Horizontal), strings.NewReader("abcdef"), Options{Profile: termenv.Ascii, Width: 4})
	require.NoError(t, err)
	assert.Equal(t, "abcd\nef\n", out.String())
	assert.Equal(t, 1, st.Lines)
	assert.Equal(t, 2, st.Rows)
}

func TestStaticEmptyInput(t *testing.T) {
	var out bytes.Buffer
	st, err := Static(&out, newRenderer(t, pattern.Horizontal), strings.NewReader(""), Options{})
	require.NoError(t, err)
	assert.Empty(t, out.String())
	assert.Zero(t, st.Rows)
}

func TestStreamKeepsLines(t *testing.T) {
	var out bytes.Buffer
	in := "one\r\n\nthree"
	st, err := Stream(context.Background(), &out, newRenderer(t, pattern.Ripple), strings.NewReader(in), Options{Profile: termenv.TrueColor})
	require.NoError(t, err)

	assert.Equal(t, "one\n\nthree\n", ansi.Strip(out.String()))
	assert.Equal(t, 3, st.Lines)
	assert.Equal(t, 3, st.Rows)
	assert.Equal(t, len(in), st.Bytes)
}

func TestStreamWithoutColor(t *testing.T) {
	var out bytes.Buffer
	_, err := Stream(context.Background(), &out, newRenderer(t, pattern.Wave), strings.NewReader("\x1b[33mwarn\x1b[0m x\n"), Options{Profile: termenv.Ascii})
	require.NoError(t, err)
	assert.Equal(t, "warn x\n", out.String())
}

func TestStreamWrapsLongLines(t *testing.T) {
	var out bytes.Buffer
	st, err := Stream(context.Background(), &out, newRenderer(t, pattern.Wave), strings.NewReader("abcdefgh\n"), Options{Profile: termenv.Ascii, Width: 3})
	require.NoError(t, err)
	assert.Equal(t, "abc\ndef\ngh\n", out.String())
	assert.Equal(t, 1, st.Lines)
	assert.Equal(t, 3, st.Rows)
}

func TestStreamStopsOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	ctx, cancel := context.WithCancel(context.Background())

	r := newRenderer(t, pattern.Plasma)
	done := make(chan error, 1)
	go func() {
		_, err := Stream(ctx, io.Discard, r, pr, Options{Profile: termenv.Ascii})
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not stop after cancel")
	}
}

type failReader struct{}

var errRead = errors.New("read failed")

func (failReader) Read([]byte) (int, error) { return 0, errRead }

func TestStreamReportsReadError(t *testing.T) {
	_, err := Stream(context.Background(), io.Discard, newRenderer(t, pattern.Plasma), failReader{}, Options{})
	assert.ErrorIs(t, err, errRead)
}

func TestLinesPerSecond(t *testing.T) {
	assert.Zero(t, Stats{Lines: 5}.LinesPerSecond())
	assert.InDelta(t, 50, Stats{Lines: 100, Elapsed: 2 * time.Second}.LinesPerSecond(), 1e-9)
}
