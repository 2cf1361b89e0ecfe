package terminal

import (
	"io"

	"github.com/muesli/termenv"
)

var (
	seqAltScreenEnter = termenv.CSI + termenv.AltScreenSeq
	seqAltScreenExit  = termenv.CSI + termenv.ExitAltScreenSeq
	seqCursorHide     = termenv.CSI + termenv.HideCursorSeq
	seqCursorShow     = termenv.CSI + termenv.ShowCursorSeq
	seqAutoWrapOff    = termenv.CSI + "?7l"
	seqAutoWrapOn     = termenv.CSI + "?7h"
	seqClear          = termenv.CSI + "2J" + termenv.CSI + "H"
	seqReset          = termenv.CSI + termenv.ResetSeq + "m"
)

// EmergencyReset writes the sequences that leave the alternate screen and
// restore the cursor. It does not touch termios; use it when no Terminal
// value is reachable.
func EmergencyReset(w io.Writer) {
	io.WriteString(w, seqReset+seqCursorShow+seqAltScreenExit+seqAutoWrapOn)
}
