// Copyright © 2025 RAZE contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ansistyle/ansistyle.go
// Summary: Renders contract styles as ANSI escape sequences.
// Usage: For Go components that print styled text instead of driving a
// screen (log viewers, the raze-abi layout table).

package ansistyle

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/framegrace/raze/core"
)

// Color converts c into a termenv colour for profile p. Default colours,
// and every colour under the Ascii profile, become NoColor.
func Color(c core.Color, p termenv.Profile) termenv.Color {
	c = c.Resolve()
	var out termenv.Color
	switch c.Mode {
	case core.ColorModeIndexed:
		if c.R < 16 {
			out = termenv.ANSIColor(c.R)
		} else {
			out = termenv.ANSI256Color(c.R)
		}
	case core.ColorModeRGB:
		out = termenv.RGBColor(c.String())
	default:
		return termenv.NoColor{}
	}
	return p.Convert(out)
}

// Render wraps text in the SGR sequences for style under profile p. The
// Ascii profile returns text unchanged.
func Render(style core.Style, text string, p termenv.Profile) string {
	s := p.String(text)
	if fg := Color(style.Fg, p); !isNoColor(fg) {
		s = s.Foreground(fg)
	}
	if bg := Color(style.Bg, p); !isNoColor(bg) {
		s = s.Background(bg)
	}
	if style.Bold {
		s = s.Bold()
	}
	if style.Italic {
		s = s.Italic()
	}
	if style.Underline {
		s = s.Underline()
	}
	return s.String()
}

func isNoColor(c termenv.Color) bool {
	_, ok := c.(termenv.NoColor)
	return ok || c == nil
}

// Lipgloss returns the equivalent lipgloss style. Default colours are left
// unset so the terminal's own colours show through.
func Lipgloss(style core.Style) lipgloss.Style {
	ls := lipgloss.NewStyle().
		Bold(style.Bold).
		Italic(style.Italic).
		Underline(style.Underline)
	if c, ok := lipglossColor(style.Fg); ok {
		ls = ls.Foreground(c)
	}
	if c, ok := lipglossColor(style.Bg); ok {
		ls = ls.Background(c)
	}
	return ls
}

func lipglossColor(c core.Color) (lipgloss.Color, bool) {
	c = c.Resolve()
	switch c.Mode {
	case core.ColorModeIndexed:
		return lipgloss.Color(strconv.Itoa(int(c.R))), true
	case core.ColorModeRGB:
		return lipgloss.Color(c.String()), true
	}
	return "", false
}

// DetectProfile reports the colour profile of the process's stdout.
func DetectProfile() termenv.Profile {
	return termenv.ColorProfile()
}
