package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/raze/config"
	"github.com/framegrace/raze/core"
	"github.com/framegrace/raze/protocol"
	"github.com/framegrace/raze/tcelldriver"
)

const maxHistory = 50

type theme struct {
	base   core.Style
	accent core.Style
	focus  core.Style
}

func themeFrom(cfg config.Config) theme {
	base := core.Style{
		Fg: cfg.GetColor("theme", "fg", core.DefaultColor()),
		Bg: cfg.GetColor("theme", "bg", core.DefaultColor()),
	}
	return theme{
		base:   base,
		accent: base.WithFg(cfg.GetColor("theme", "accent", core.ANSIColor(12))).WithBold(true),
		focus:  base.WithFg(cfg.GetColor("theme", "focus", core.ANSIColor(11))).WithUnderline(true),
	}
}

type widget struct {
	id    uint32
	kind  core.WidgetKind
	rect  core.Rect
	label string
}

// Widget ids double as indices into demoApp.widgets.
const (
	idPanel = iota
	idTitle
	idInput
	idSubmit
	idClear
	idHistory
	widgetCount
)

var focusOrder = []int{idInput, idSubmit, idClear}

// demoApp is the application side of the demo: it owns the widget records
// and reacts to contract events. Placement is fixed; the demo does not lay
// widgets out.
type demoApp struct {
	theme   theme
	widgets [widgetCount]widget
	focus   int
	input   []rune
	history []string
	last    string
}

func newDemoApp(th theme) *demoApp {
	a := &demoApp{theme: th, focus: 0}
	a.widgets[idPanel] = widget{id: idPanel, kind: core.WidgetPanel}
	a.widgets[idTitle] = widget{id: idTitle, kind: core.WidgetLabel, label: "RAZE demo  (Tab: focus, Enter: submit, Esc: quit)"}
	a.widgets[idInput] = widget{id: idInput, kind: core.WidgetInput}
	a.widgets[idSubmit] = widget{id: idSubmit, kind: core.WidgetButton, label: "[Submit]"}
	a.widgets[idClear] = widget{id: idClear, kind: core.WidgetButton, label: "[Clear]"}
	a.widgets[idHistory] = widget{id: idHistory, kind: core.WidgetList}
	a.place(core.DefaultWidth, core.DefaultHeight)
	return a
}

func sub(a, b uint16) uint16 {
	if a < b {
		return 0
	}
	return a - b
}

func (a *demoApp) place(w, h uint16) {
	a.widgets[idPanel].rect = core.NewRect(0, 0, w, h)
	a.widgets[idTitle].rect = core.NewRect(2, 1, sub(w, 4), 1)
	a.widgets[idInput].rect = core.NewRect(2, 3, sub(w, 4), 1)
	a.widgets[idSubmit].rect = core.NewRect(2, 5, 8, 1)
	a.widgets[idClear].rect = core.NewRect(12, 5, 7, 1)
	a.widgets[idHistory].rect = core.NewRect(2, 7, sub(w, 4), sub(h, 8))
}

func (a *demoApp) focused() int {
	return focusOrder[a.focus]
}

// handle applies ev to the application. It reports whether anything visible
// changed and whether the user asked to quit.
func (a *demoApp) handle(ev core.Event) (changed, quit bool) {
	switch ev.Kind {
	case core.EventKey:
		a.last = ev.String()
		return true, a.key(ev)
	case core.EventMouse:
		a.last = ev.String()
		a.click(ev.MouseX, ev.MouseY)
		return true, false
	}
	return false, false
}

func (a *demoApp) key(ev core.Event) bool {
	if r, ok := ev.Rune(); ok {
		if ev.Has(core.ModCtrl) {
			return r == 'c' || r == 'q'
		}
		if a.focused() == idInput && !ev.Has(core.ModAlt) && !ev.Has(core.ModMeta) {
			a.input = append(a.input, r)
		}
		return false
	}
	switch ev.KeyCode {
	case core.KeyEscape:
		return true
	case core.KeyTab:
		a.focus = (a.focus + 1) % len(focusOrder)
	case core.KeyBackTab:
		a.focus = (a.focus + len(focusOrder) - 1) % len(focusOrder)
	case core.KeyBackspace:
		if a.focused() == idInput && len(a.input) > 0 {
			a.input = a.input[:len(a.input)-1]
		}
	case core.KeyEnter:
		a.activate(a.focused())
	}
	return false
}

func (a *demoApp) click(x, y uint16) {
	for i, id := range focusOrder {
		if a.widgets[id].rect.Contains(x, y) {
			a.focus = i
			if a.widgets[id].kind == core.WidgetButton {
				a.activate(id)
			}
			return
		}
	}
}

func (a *demoApp) activate(id int) {
	switch id {
	case idInput, idSubmit:
		if len(a.input) == 0 {
			return
		}
		a.history = append(a.history, string(a.input))
		if len(a.history) > maxHistory {
			a.history = a.history[len(a.history)-maxHistory:]
		}
		a.input = a.input[:0]
	case idClear:
		a.history = nil
	}
}

func (a *demoApp) styleFor(w widget) core.Style {
	switch {
	case w.id == idTitle:
		return a.theme.accent
	case w.id == uint32(a.focused()):
		return a.theme.focus
	}
	return a.theme.base
}

// draw paints every widget for state. The caller shows the screen.
func (a *demoApp) draw(screen tcell.Screen, state core.TuiState) {
	a.place(state.Width, state.Height)
	a.widgets[idInput].label = "> " + string(a.input)

	screen.Clear()
	tcelldriver.FillRect(screen, a.widgets[idPanel].rect, a.theme.base, ' ')
	for _, w := range a.widgets[idTitle:idHistory] {
		tcelldriver.DrawText(screen, w.rect, a.styleFor(w), w.label)
	}

	list := a.widgets[idHistory].rect
	if list.Empty() {
		return
	}
	status := fmt.Sprintf("v%d  %dx%d  last: %s", state.Version, state.Width, state.Height, a.last)
	tcelldriver.DrawText(screen, core.NewRect(list.X, list.Y, list.Width, 1), a.theme.base.WithItalic(true), status)
	rows := int(list.Height) - 1
	start := 0
	if len(a.history) > rows {
		start = len(a.history) - rows
	}
	for i, line := range a.history[start:] {
		row := core.NewRect(list.X, list.Y+1+uint16(i), list.Width, 1)
		tcelldriver.DrawText(screen, row, a.theme.base, line)
	}
}

// frames describes the widgets as the render layer sees them.
func (a *demoApp) frames() []protocol.WidgetFrame {
	out := make([]protocol.WidgetFrame, 0, widgetCount)
	for _, w := range a.widgets {
		out = append(out, protocol.WidgetFrame{
			ID:    w.id,
			Kind:  w.kind,
			Rect:  w.rect,
			Style: a.styleFor(w),
			Label: w.label,
		})
	}
	return out
}
