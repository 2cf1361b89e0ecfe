package terminal

import (
	"reflect"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Key
	}{
		{"letters", "ab", []Key{{Code: KeyRune, Rune: 'a'}, {Code: KeyRune, Rune: 'b'}}},
		{"utf8", "é", []Key{{Code: KeyRune, Rune: 'é'}}},
		{"space", " ", []Key{{Code: KeyRune, Rune: ' '}}},
		{"enter", "\r", []Key{{Code: KeyEnter}}},
		{"ctrl-c", "\x03", []Key{{Code: KeyCtrlC}}},
		{"backspace", "\x7f", []Key{{Code: KeyBackspace}}},
		{"lone escape", "\x1b", []Key{{Code: KeyEscape}}},
		{"arrows", "\x1b[A\x1b[B\x1b[C\x1b[D", []Key{{Code: KeyUp}, {Code: KeyDown}, {Code: KeyRight}, {Code: KeyLeft}}},
		{"ss3 arrows", "\x1bOA", []Key{{Code: KeyUp}}},
		{"page keys", "\x1b[5~\x1b[6~", []Key{{Code: KeyPageUp}, {Code: KeyPageDown}}},
		{"modified home", "\x1b[1;5H", []Key{{Code: KeyHome}}},
		{"delete with modifier", "\x1b[3;2~", []Key{{Code: KeyDelete}}},
		{"backtab", "\x1b[Z", []Key{{Code: KeyBacktab}}},
		{"unknown csi dropped", "\x1b[99~x", []Key{{Code: KeyRune, Rune: 'x'}}},
		{"truncated csi", "\x1b[1;", nil},
		{"escape then letter", "\x1bq", []Key{{Code: KeyEscape}, {Code: KeyRune, Rune: 'q'}}},
		{"other control ignored", "\x01z", []Key{{Code: KeyRune, Rune: 'z'}}},
		{"invalid utf8", "\xffa", []Key{{Code: KeyRune, Rune: 'a'}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode([]byte(tt.in))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDecodePartial(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		want     []Key
		wantRest string
	}{
		{"complete", "a\x1b[A", []Key{{Code: KeyRune, Rune: 'a'}, {Code: KeyUp}}, ""},
		{"trailing escape", "a\x1b", []Key{{Code: KeyRune, Rune: 'a'}}, "\x1b"},
		{"csi without final", "\x1b[1;", nil, "\x1b[1;"},
		{"ss3 prefix", "x\x1bO", []Key{{Code: KeyRune, Rune: 'x'}}, "\x1bO"},
		{"split rune", "b\xc3", []Key{{Code: KeyRune, Rune: 'b'}}, "\xc3"},
		{"escape then letter", "\x1bq", []Key{{Code: KeyEscape}, {Code: KeyRune, Rune: 'q'}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rest := DecodePartial([]byte(tt.in))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if string(rest) != tt.wantRest {
				t.Errorf("expected rest %q, got %q", tt.wantRest, rest)
			}
		})
	}
}

func TestFeedJoinsSplitSequences(t *testing.T) {
	term := New(nil, nil)

	if keys := term.feed([]byte("j\x1b[")); !reflect.DeepEqual(keys, []Key{{Code: KeyRune, Rune: 'j'}}) {
		t.Fatalf("expected only j before the split, got %v", keys)
	}
	if keys := term.feed([]byte("Bk")); !reflect.DeepEqual(keys, []Key{{Code: KeyDown}, {Code: KeyRune, Rune: 'k'}}) {
		t.Errorf("expected down then k, got %v", keys)
	}

	if keys := term.feed([]byte{0xc3}); keys != nil {
		t.Fatalf("expected half a rune to be held, got %v", keys)
	}
	if keys := term.feed([]byte{0xa9}); !reflect.DeepEqual(keys, []Key{{Code: KeyRune, Rune: 'é'}}) {
		t.Errorf("expected é, got %v", keys)
	}

	term.feed([]byte("\x1b"))
	if keys := term.feed(nil); !reflect.DeepEqual(keys, []Key{{Code: KeyEscape}}) {
		t.Errorf("expected held ESC to flush as escape on an empty poll, got %v", keys)
	}
	if keys := term.feed(nil); keys != nil {
		t.Errorf("expected nothing after flush, got %v", keys)
	}
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{Key{Code: KeyRune, Rune: 'p'}, "p"},
		{Key{Code: KeyRune, Rune: ' '}, "space"},
		{Key{Code: KeyPageDown}, "pgdown"},
		{Key{Code: KeyCtrlC}, "ctrl+c"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}
