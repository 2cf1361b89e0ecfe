package buffer

import (
	"bufio"
	"fmt"

	"github.com/muesli/termenv"
)

var (
	csi      = []byte(termenv.CSI)
	sgrReset = []byte(termenv.CSI + termenv.ResetSeq + "m")
	fgRGB    = []byte("38;2;")
	bgRGB    = []byte("48;2;")
)

func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	if n < 1000 {
		w.WriteByte(byte(n/100) + '0')
		w.WriteByte(byte(n/10%10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	var buf [10]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(n%10) + '0'
		n /= 10
	}
	w.Write(buf[i:])
}

// writeCursorPos moves to 0-indexed (x, y).
func writeCursorPos(w *bufio.Writer, x, y int) {
	w.Write(csi)
	writeInt(w, y+1)
	w.WriteByte(';')
	writeInt(w, x+1)
	w.WriteByte('H')
}

func writeRGB(w *bufio.Writer, prefix []byte, c RGB) {
	w.Write(prefix)
	writeInt(w, int(c[0]))
	w.WriteByte(';')
	writeInt(w, int(c[1]))
	w.WriteByte(';')
	writeInt(w, int(c[2]))
}

// styler renders SGR sequences for one color profile. Conversions for
// reduced profiles are cached since patterns revisit the same colors.
type styler struct {
	profile termenv.Profile
	fill    FillMode
	fg, bg  map[RGB]string
}

func newStyler(p termenv.Profile, fill FillMode) *styler {
	return &styler{
		profile: p,
		fill:    fill,
		fg:      make(map[RGB]string),
		bg:      make(map[RGB]string),
	}
}

func (s *styler) seq(c RGB, bg bool) string {
	cache := s.fg
	if bg {
		cache = s.bg
	}
	if seq, ok := cache[c]; ok {
		return seq
	}
	seq := s.profile.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])).Sequence(bg)
	cache[c] = seq
	return seq
}

// write emits the SGR for cell color c. It reports false when the
// profile produces no color at all.
func (s *styler) write(w *bufio.Writer, c RGB) bool {
	if s.profile == termenv.Ascii {
		return false
	}
	w.Write(csi)
	if s.profile == termenv.TrueColor {
		if s.fill == Background {
			writeRGB(w, bgRGB, c)
			w.WriteByte(';')
			writeRGB(w, fgRGB, contrast(c))
		} else {
			writeRGB(w, fgRGB, c)
		}
		w.WriteByte('m')
		return true
	}
	if s.fill == Background {
		w.WriteString(s.seq(c, true))
		w.WriteByte(';')
		w.WriteString(s.seq(contrast(c), false))
	} else {
		w.WriteString(s.seq(c, false))
	}
	w.WriteByte('m')
	return true
}
