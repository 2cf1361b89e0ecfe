package renderer

import (
	"strings"
	"testing"

	"github.com/san-kum/prism/internal/buffer"
)

func rowString(c *Content, y int) string {
	var sb strings.Builder
	for x := 0; x < c.Width(); x++ {
		r := c.Glyph(x, y)
		if r == buffer.Continuation {
			r = '_'
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestContentLayout(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		rows  []string
	}{
		{"short", "hi", 4, []string{"hi  "}},
		{"wrap", "abcdefg", 3, []string{"abc", "def", "g  "}},
		{"empty line kept", "a\n\nb", 2, []string{"a ", "  ", "b "}},
		{"crlf", "a\r\nb\r\n", 1, []string{"a", "b"}},
		{"tab", "a\tb", 6, []string{"a   b "}},
		{"wide", "日本", 4, []string{"日_本_"}},
		{"wide straddles edge", "a日", 2, []string{"a ", "日_"}},
		{"wide in one column", "日", 1, []string{"?"}},
		{"control", "a\x01b", 3, []string{"a b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewContent(tt.text, tt.width)
			if c.Len() != len(tt.rows) {
				t.Fatalf("expected %d rows, got %d", len(tt.rows), c.Len())
			}
			for y, want := range tt.rows {
				if got := rowString(c, y); got != want {
					t.Errorf("row %d: expected %q, got %q", y, want, got)
				}
			}
		})
	}
}

func TestContentReflow(t *testing.T) {
	c := NewContent("abcdef", 2)
	if c.Len() != 3 {
		t.Fatalf("expected 3 rows, got %d", c.Len())
	}
	c.Reflow(6)
	if c.Len() != 1 || rowString(c, 0) != "abcdef" {
		t.Errorf("expected single row after reflow, got %d", c.Len())
	}
}

func TestContentGlyphOutOfRange(t *testing.T) {
	c := NewContent("ab", 2)
	for _, p := range [][2]int{{-1, 0}, {2, 0}, {0, 1}, {0, -1}} {
		if g := c.Glyph(p[0], p[1]); g != ' ' {
			t.Errorf("expected blank at %v, got %q", p, g)
		}
	}
	var nilContent *Content
	if nilContent.Glyph(0, 0) != ' ' {
		t.Error("expected blank from nil content")
	}
}

func TestReadContent(t *testing.T) {
	c, err := ReadContent(strings.NewReader("one\ntwo\n"), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 2 || rowString(c, 1) != "two  " {
		t.Errorf("expected two rows, got %d", c.Len())
	}
}

func TestContentNaturalAndRowWidth(t *testing.T) {
	c := NewContent("ab\n\tx\n世界 \n", 3)
	if got := c.NaturalWidth(); got != 5 {
		t.Errorf("expected natural width 5, got %d", got)
	}
	c.Reflow(c.NaturalWidth())
	if c.Len() != 3 {
		t.Fatalf("expected no wrapping at natural width, got %d rows", c.Len())
	}
	tests := []struct {
		y    int
		want int
	}{
		{0, 2},
		{1, 5},
		{2, 4},
		{3, 0},
	}
	for _, tt := range tests {
		if got := c.RowWidth(tt.y); got != tt.want {
			t.Errorf("row %d: expected width %d, got %d", tt.y, tt.want, got)
		}
	}
}
