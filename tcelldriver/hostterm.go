package tcelldriver

import (
	"golang.org/x/term"

	"github.com/framegrace/raze/core"
)

// HostSize returns the size of the terminal on fd, or the contract default
// when fd is not a terminal.
func HostSize(fd int) (uint16, uint16) {
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return core.DefaultWidth, core.DefaultHeight
	}
	return clamp16(w), clamp16(h)
}

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}
