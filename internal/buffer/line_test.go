package buffer

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineEncoderCoalescesColors(t *testing.T) {
	var out bytes.Buffer
	e := NewLineEncoder(&out, Options{Profile: termenv.TrueColor})
	red, blue := RGB{255, 0, 0}, RGB{0, 0, 255}

	n := e.WriteRow([]Cell{{'a', red}, {'b', red}, {'c', blue}})
	require.NoError(t, e.Flush())

	assert.Equal(t, 3, n)
	assert.Equal(t, "\x1b[38;2;255;0;0mab\x1b[38;2;0;0;255mc\x1b[0m\n", out.String())
}

func TestLineEncoderSkipsContinuation(t *testing.T) {
	var out bytes.Buffer
	e := NewLineEncoder(&out, Options{Profile: termenv.Ascii})
	n := e.WriteRow([]Cell{{'世', RGB{}}, {Continuation, RGB{}}, {'x', RGB{9, 9, 9}}})
	require.NoError(t, e.Flush())

	assert.Equal(t, 2, n)
	assert.Equal(t, "世x\n", out.String(), "ascii profile writes glyphs only")
}

func TestLineEncoderEmptyRow(t *testing.T) {
	var out bytes.Buffer
	e := NewLineEncoder(&out, Options{Profile: termenv.TrueColor})
	e.WriteRow(nil)
	assert.Positive(t, e.Buffered())
	require.NoError(t, e.Flush())
	assert.Equal(t, "\n", out.String())
}
