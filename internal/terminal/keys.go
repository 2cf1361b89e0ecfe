package terminal

import (
	"strings"
	"unicode/utf8"
)

// KeyCode identifies a decoded key.
type KeyCode uint8

const (
	KeyNone KeyCode = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyCtrlC
	KeyCtrlD
	KeyCtrlL
	KeyCtrlZ
)

var keyNames = map[KeyCode]string{
	KeyNone:      "none",
	KeyRune:      "rune",
	KeyEscape:    "esc",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBacktab:   "shift+tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdown",
	KeyCtrlC:     "ctrl+c",
	KeyCtrlD:     "ctrl+d",
	KeyCtrlL:     "ctrl+l",
	KeyCtrlZ:     "ctrl+z",
}

// Key is one decoded keypress. Rune is set for KeyRune.
type Key struct {
	Code KeyCode
	Rune rune
}

func (k Key) String() string {
	if k.Code == KeyRune {
		if k.Rune == ' ' {
			return "space"
		}
		return string(k.Rune)
	}
	return keyNames[k.Code]
}

var csiFinal = map[byte]KeyCode{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
	'Z': KeyBacktab,
}

var csiTilde = map[string]KeyCode{
	"1": KeyHome,
	"3": KeyDelete,
	"4": KeyEnd,
	"5": KeyPageUp,
	"6": KeyPageDown,
	"7": KeyHome,
	"8": KeyEnd,
}

// Decode splits raw terminal input into keys. Unknown escape sequences
// are dropped whole; a lone ESC is reported as KeyEscape.
func Decode(b []byte) []Key {
	var keys []Key
	for len(b) > 0 {
		k, n := decodeOne(b)
		if k.Code != KeyNone {
			keys = append(keys, k)
		}
		b = b[n:]
	}
	return keys
}

// DecodePartial is Decode for a stream read in pieces. Keys are returned for
// every complete sequence; an unfinished escape sequence or UTF-8 rune at the
// end is returned as rest to be prefixed to the next read.
func DecodePartial(b []byte) (keys []Key, rest []byte) {
	for len(b) > 0 {
		if incomplete(b) {
			return keys, b
		}
		k, n := decodeOne(b)
		if k.Code != KeyNone {
			keys = append(keys, k)
		}
		b = b[n:]
	}
	return keys, nil
}

// incomplete reports whether b holds only the start of a sequence.
func incomplete(b []byte) bool {
	switch c := b[0]; {
	case c == 0x1b:
		if len(b) == 1 {
			return true
		}
		switch b[1] {
		case '[':
			i := 2
			for i < len(b) && b[i] >= 0x20 && b[i] <= 0x3f {
				i++
			}
			return i >= len(b)
		case 'O':
			return len(b) == 2
		}
		return false
	case c >= 0x80:
		return !utf8.FullRune(b)
	}
	return false
}

func decodeOne(b []byte) (Key, int) {
	c := b[0]
	switch {
	case c == 0x1b:
		return decodeEscape(b)
	case c == '\r' || c == '\n':
		return Key{Code: KeyEnter}, 1
	case c == '\t':
		return Key{Code: KeyTab}, 1
	case c == 0x7f || c == 0x08:
		return Key{Code: KeyBackspace}, 1
	case c == 0x03:
		return Key{Code: KeyCtrlC}, 1
	case c == 0x04:
		return Key{Code: KeyCtrlD}, 1
	case c == 0x0c:
		return Key{Code: KeyCtrlL}, 1
	case c == 0x1a:
		return Key{Code: KeyCtrlZ}, 1
	case c < 0x20:
		return Key{}, 1
	}
	r, n := utf8.DecodeRune(b)
	if r == utf8.RuneError && n <= 1 {
		return Key{}, 1
	}
	return Key{Code: KeyRune, Rune: r}, n
}

func decodeEscape(b []byte) (Key, int) {
	if len(b) == 1 {
		return Key{Code: KeyEscape}, 1
	}
	switch b[1] {
	case '[':
		return decodeCSI(b)
	case 'O':
		// SS3 cursor keys from application mode.
		if len(b) >= 3 {
			if code, ok := csiFinal[b[2]]; ok {
				return Key{Code: code}, 3
			}
			return Key{}, 3
		}
		return Key{}, len(b)
	}
	return Key{Code: KeyEscape}, 1
}

func decodeCSI(b []byte) (Key, int) {
	// Parameters are 0x30-0x3f, intermediates 0x20-0x2f, final 0x40-0x7e.
	i := 2
	for i < len(b) && b[i] >= 0x20 && b[i] <= 0x3f {
		i++
	}
	if i >= len(b) {
		return Key{}, len(b)
	}
	final := b[i]
	params := string(b[2:i])
	n := i + 1

	if final == '~' {
		if j := strings.IndexByte(params, ';'); j >= 0 {
			params = params[:j]
		}
		if code, ok := csiTilde[params]; ok {
			return Key{Code: code}, n
		}
		return Key{}, n
	}
	if code, ok := csiFinal[final]; ok {
		return Key{Code: code}, n
	}
	return Key{}, n
}
