//go:build !windows

package config

import (
	"os"

	"golang.org/x/term"
)

const forbiddenRunes = ""

func reservedName(string) bool {
	return false
}

// EnableColorOutput reports whether stream is a terminal willing to show
// colors, NO_COLOR and TERM=dumb turn colors off.
func EnableColorOutput(stream *os.File) bool {
	if len(os.Getenv("NO_COLOR")) > 0 || os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(stream.Fd()))
}
