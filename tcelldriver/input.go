// Copyright © 2025 RAZE contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tcelldriver/input.go
// Summary: Translates tcell events into contract events.
// Usage: Driver.Poll feeds every tcell event through TranslateEvent; other
// Go input drivers can call it directly.

package tcelldriver

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/raze/core"
)

// namedKeys maps tcell keys onto the fixed key-code space. A terminal sends
// the same byte for Ctrl-M and Return (likewise Ctrl-H, Ctrl-I, Ctrl-[), and
// tcell's parser reports those bytes as KeyEnter, KeyBackspace, KeyTab and
// KeyEscape, so they arrive here as the named keys. The KeyCtrlA..Z codes
// only appear for chords tcell can tell apart and become letter plus Ctrl.
var namedKeys = map[tcell.Key]uint32{
	tcell.KeyEnter:      core.KeyEnter,
	tcell.KeyEscape:     core.KeyEscape,
	tcell.KeyBackspace:  core.KeyBackspace,
	tcell.KeyBackspace2: core.KeyBackspace,
	tcell.KeyTab:        core.KeyTab,
	tcell.KeyBacktab:    core.KeyBackTab,
	tcell.KeyUp:         core.KeyUp,
	tcell.KeyDown:       core.KeyDown,
	tcell.KeyLeft:       core.KeyLeft,
	tcell.KeyRight:      core.KeyRight,
	tcell.KeyHome:       core.KeyHome,
	tcell.KeyEnd:        core.KeyEnd,
	tcell.KeyPgUp:       core.KeyPgUp,
	tcell.KeyPgDn:       core.KeyPgDn,
	tcell.KeyInsert:     core.KeyInsert,
	tcell.KeyDelete:     core.KeyDelete,
	tcell.KeyF1:         core.KeyF1,
	tcell.KeyF2:         core.KeyF2,
	tcell.KeyF3:         core.KeyF3,
	tcell.KeyF4:         core.KeyF4,
	tcell.KeyF5:         core.KeyF5,
	tcell.KeyF6:         core.KeyF6,
	tcell.KeyF7:         core.KeyF7,
	tcell.KeyF8:         core.KeyF8,
	tcell.KeyF9:         core.KeyF9,
	tcell.KeyF10:        core.KeyF10,
	tcell.KeyF11:        core.KeyF11,
	tcell.KeyF12:        core.KeyF12,
}

// tcell's modifier bits use the same values as the contract.
const modMask = tcell.ModShift | tcell.ModCtrl | tcell.ModAlt | tcell.ModMeta

func modifiers(m tcell.ModMask) core.Modifier {
	return core.Modifier(m & modMask)
}

// TranslateEvent converts ev into a contract event. It reports false for
// events the contract has no kind for (focus, paste, unknown keys). A nil
// event means the screen was finalised and becomes a quit.
func TranslateEvent(ev tcell.Event) (core.Event, bool) {
	switch ev := ev.(type) {
	case nil:
		return core.QuitEvent(), true
	case *tcell.EventKey:
		return translateKey(ev)
	case *tcell.EventMouse:
		x, y := ev.Position()
		return core.MouseEvent(clamp16(x), clamp16(y), modifiers(ev.Modifiers())), true
	case *tcell.EventResize:
		return core.ResizeEvent(), true
	case *tcell.EventInterrupt:
		return core.QuitEvent(), true
	}
	return core.Event{}, false
}

func translateKey(ev *tcell.EventKey) (core.Event, bool) {
	mods := modifiers(ev.Modifiers())
	key := ev.Key()
	if key == tcell.KeyRune {
		r := ev.Rune()
		if r < 0 || r >= core.KeySpecialBase || (r >= 0xD800 && r <= 0xDFFF) {
			return core.Event{}, false
		}
		return core.RuneEvent(r, mods), true
	}
	if code, ok := namedKeys[key]; ok {
		return core.KeyEvent(code, mods), true
	}
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return core.RuneEvent(rune('a'+(key-tcell.KeyCtrlA)), mods|core.ModCtrl), true
	}
	return core.Event{}, false
}

func clamp16(v int) uint16 {
	switch {
	case v < 0:
		return 0
	case v > 0xFFFF:
		return 0xFFFF
	}
	return uint16(v)
}
