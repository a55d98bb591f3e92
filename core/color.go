// Copyright © 2025 RAZE contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/color.go
// Summary: Tagged colour value and the style record composed from two of them.
// Usage: Renderers translate these into their own colour types; see
// tcelldriver and ansistyle.

package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ColorMode selects how the channels of a Color are interpreted.
type ColorMode uint8

const (
	// ColorModeDefault is the terminal's own colour; channels are zero.
	ColorModeDefault ColorMode = 0
	// ColorModeIndexed is a 256-colour palette entry held in R.
	ColorModeIndexed ColorMode = 1
	// ColorModeRGB is a 24-bit colour.
	ColorModeRGB ColorMode = 2
)

func (m ColorMode) String() string {
	switch m {
	case ColorModeDefault:
		return "default"
	case ColorModeIndexed:
		return "indexed"
	case ColorModeRGB:
		return "rgb"
	default:
		return fmt.Sprintf("ColorMode(%d)", uint8(m))
	}
}

// ErrInvalidColor is returned by ParseColor.
var ErrInvalidColor = errors.New("core: invalid color")

// Color is a terminal-default, palette or RGB colour in four bytes.
type Color struct {
	R    uint8
	G    uint8
	B    uint8
	Mode ColorMode
}

// DefaultColor is the terminal's default colour.
func DefaultColor() Color {
	return Color{}
}

// ANSIColor selects entry index of the 256-colour palette.
func ANSIColor(index uint8) Color {
	return Color{R: index, Mode: ColorModeIndexed}
}

// RGBColor is a 24-bit colour.
func RGBColor(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Mode: ColorModeRGB}
}

// Resolve returns the canonical form of c. Unrecognised modes render as the
// terminal default.
func (c Color) Resolve() Color {
	switch c.Mode {
	case ColorModeIndexed:
		return ANSIColor(c.R)
	case ColorModeRGB:
		return c
	default:
		return DefaultColor()
	}
}

// IsDefault reports whether c renders as the terminal default.
func (c Color) IsDefault() bool {
	return c.Resolve().Mode == ColorModeDefault
}

// Hex packs an RGB colour as 0xRRGGBB. Other modes return 0.
func (c Color) Hex() uint32 {
	if c.Mode != ColorModeRGB {
		return 0
	}
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// String renders c in the form ParseColor accepts.
func (c Color) String() string {
	c = c.Resolve()
	switch c.Mode {
	case ColorModeIndexed:
		return strconv.Itoa(int(c.R))
	case ColorModeRGB:
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	default:
		return "default"
	}
}

// ParseColor reads "default" (or ""), a palette index 0-255, or "#rrggbb".
func ParseColor(value string) (Color, error) {
	value = strings.TrimSpace(value)
	switch {
	case value == "" || strings.EqualFold(value, "default"):
		return DefaultColor(), nil
	case strings.HasPrefix(value, "#"):
		if len(value) != 7 {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, value)
		}
		rgb, err := strconv.ParseUint(value[1:], 16, 32)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, value)
		}
		return RGBColor(uint8(rgb>>16), uint8(rgb>>8), uint8(rgb)), nil
	default:
		idx, err := strconv.ParseUint(value, 10, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, value)
		}
		return ANSIColor(uint8(idx)), nil
	}
}

// Style pairs foreground and background colours with independent text
// attributes. The zero value is the default style.
type Style struct {
	Fg        Color
	Bg        Color
	Bold      bool
	Italic    bool
	Underline bool
}

// DefaultStyle uses default colours and no attributes.
func DefaultStyle() Style {
	return Style{}
}

func (s Style) WithFg(c Color) Style {
	s.Fg = c
	return s
}

func (s Style) WithBg(c Color) Style {
	s.Bg = c
	return s
}

func (s Style) WithBold(on bool) Style {
	s.Bold = on
	return s
}

func (s Style) WithItalic(on bool) Style {
	s.Italic = on
	return s
}

func (s Style) WithUnderline(on bool) Style {
	s.Underline = on
	return s
}
