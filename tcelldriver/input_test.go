package tcelldriver

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/raze/core"
)

func TestTranslateNamedKeys(t *testing.T) {
	seen := map[uint32]bool{}
	for key, code := range namedKeys {
		ev, ok := TranslateEvent(tcell.NewEventKey(key, 0, tcell.ModNone))
		if !ok {
			t.Fatalf("key %v not translated", key)
		}
		if ev != core.KeyEvent(code, core.ModNone) {
			t.Fatalf("key %v became %v", key, ev)
		}
		seen[code] = true
	}
	for _, code := range core.NamedKeys() {
		if !seen[code] {
			t.Fatalf("named key %s has no tcell mapping", core.KeyName(code))
		}
	}
}

func TestTranslateRunesAndModifiers(t *testing.T) {
	ev, ok := TranslateEvent(tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModAlt|tcell.ModShift))
	if !ok || ev != core.RuneEvent('é', core.ModAlt|core.ModShift) {
		t.Fatalf("rune event %v", ev)
	}
	if r, ok := ev.Rune(); !ok || r != 'é' {
		t.Fatalf("rune lost: %q", r)
	}

	ev, ok = TranslateEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModMeta))
	if !ok || ev != core.KeyEvent(core.KeyUp, core.ModMeta) {
		t.Fatalf("modified arrow %v", ev)
	}
}

func TestTranslateCtrlLetters(t *testing.T) {
	cases := map[tcell.Key]rune{
		tcell.KeyCtrlA: 'a',
		tcell.KeyCtrlC: 'c',
		tcell.KeyCtrlQ: 'q',
		tcell.KeyCtrlZ: 'z',
	}
	for key, want := range cases {
		ev, ok := TranslateEvent(tcell.NewEventKey(key, 0, tcell.ModCtrl))
		if !ok || ev != core.RuneEvent(want, core.ModCtrl) {
			t.Fatalf("%v became %v", key, ev)
		}
	}
	// A distinguishable Ctrl-M is a letter chord like the others.
	ev, ok := TranslateEvent(tcell.NewEventKey(tcell.KeyCtrlM, 0, tcell.ModCtrl))
	if !ok || ev != core.RuneEvent('m', core.ModCtrl) {
		t.Fatalf("Ctrl-M became %v", ev)
	}
}

func TestTranslateTerminalControlBytes(t *testing.T) {
	// What tcell's parser posts for CR, BS, HT and ESC from a terminal.
	cases := map[tcell.Key]uint32{
		tcell.KeyCR:  core.KeyEnter,
		tcell.KeyBS:  core.KeyBackspace,
		tcell.KeyTAB: core.KeyTab,
		tcell.KeyESC: core.KeyEscape,
	}
	for key, want := range cases {
		ev, ok := TranslateEvent(tcell.NewEventKey(key, 0, tcell.ModNone))
		if !ok || ev != core.KeyEvent(want, core.ModNone) {
			t.Fatalf("control key %v became %v", key, ev)
		}
	}
}

func TestTranslateUnknownKey(t *testing.T) {
	if _, ok := TranslateEvent(tcell.NewEventKey(tcell.KeyF40, 0, tcell.ModNone)); ok {
		t.Fatalf("F40 has no contract key")
	}
	if _, ok := TranslateEvent(tcell.NewEventFocus(true)); ok {
		t.Fatalf("focus events are not part of the contract")
	}
}

func TestTranslateMouseResizeQuit(t *testing.T) {
	ev, ok := TranslateEvent(tcell.NewEventMouse(12, 7, tcell.Button1, tcell.ModCtrl))
	if !ok || ev != core.MouseEvent(12, 7, core.ModCtrl) {
		t.Fatalf("mouse %v", ev)
	}
	ev, _ = TranslateEvent(tcell.NewEventMouse(-3, 70000, tcell.ButtonNone, tcell.ModNone))
	if ev.MouseX != 0 || ev.MouseY != 0xFFFF {
		t.Fatalf("mouse not clamped: %v", ev)
	}

	ev, ok = TranslateEvent(tcell.NewEventResize(100, 40))
	if !ok || ev != core.ResizeEvent() {
		t.Fatalf("resize %v", ev)
	}

	ev, ok = TranslateEvent(tcell.NewEventInterrupt(nil))
	if !ok || ev != core.QuitEvent() {
		t.Fatalf("interrupt %v", ev)
	}
	ev, ok = TranslateEvent(nil)
	if !ok || ev != core.QuitEvent() {
		t.Fatalf("nil event %v", ev)
	}
}
