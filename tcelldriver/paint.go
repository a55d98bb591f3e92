package tcelldriver

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/raze/core"
)

// ToTcellColor maps a contract colour onto tcell. Unknown modes resolve to
// the terminal default.
func ToTcellColor(c core.Color) tcell.Color {
	c = c.Resolve()
	switch c.Mode {
	case core.ColorModeIndexed:
		return tcell.PaletteColor(int(c.R))
	case core.ColorModeRGB:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	default:
		return tcell.ColorDefault
	}
}

// ToTcellStyle composes colours and attributes.
func ToTcellStyle(s core.Style) tcell.Style {
	return tcell.StyleDefault.
		Foreground(ToTcellColor(s.Fg)).
		Background(ToTcellColor(s.Bg)).
		Bold(s.Bold).
		Italic(s.Italic).
		Underline(s.Underline)
}

// FillRect paints every cell of r with ch.
func FillRect(screen tcell.Screen, r core.Rect, style core.Style, ch rune) {
	if r.Empty() {
		return
	}
	st := ToTcellStyle(style)
	x0, y0 := int(r.X), int(r.Y)
	for y := y0; y < y0+int(r.Height); y++ {
		for x := x0; x < x0+int(r.Width); x++ {
			screen.SetContent(x, y, ch, nil, st)
		}
	}
}

// DrawText writes text on the first row of r, clipped to its width. Wide
// runes that would straddle the right edge are dropped; zero-width runes
// combine with the previous cell. It returns the number of cells used.
func DrawText(screen tcell.Screen, r core.Rect, style core.Style, text string) int {
	if r.Empty() {
		return 0
	}
	st := ToTcellStyle(style)
	x0, y := int(r.X), int(r.Y)
	limit := int(r.Width)
	col := 0
	var (
		lastRune rune
		lastComb []rune
		lastX    = -1
	)
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			if lastX >= 0 {
				lastComb = append(lastComb, ch)
				screen.SetContent(lastX, y, lastRune, lastComb, st)
			}
			continue
		}
		if col+w > limit {
			break
		}
		lastRune, lastComb, lastX = ch, nil, x0+col
		screen.SetContent(lastX, y, ch, nil, st)
		col += w
	}
	return col
}
