// Copyright © 2025 RAZE contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/event.go
// Summary: Flat-union input event record and its discriminant.
// Usage: Produced by input drivers, consumed by the dispatch loop.

package core

import "fmt"

// EventKind identifies which payload fields of an Event are meaningful.
// Values are part of the memory contract: append only, never renumber.
type EventKind uint32

const (
	EventNone   EventKind = 0
	EventKey    EventKind = 1
	EventMouse  EventKind = 2
	EventResize EventKind = 3
	EventQuit   EventKind = 4
)

func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "None"
	case EventKey:
		return "Key"
	case EventMouse:
		return "Mouse"
	case EventResize:
		return "Resize"
	case EventQuit:
		return "Quit"
	default:
		return fmt.Sprintf("EventKind(%d)", uint32(k))
	}
}

// Modifier is a bit set of keyboard modifiers held during a key or mouse
// event.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta

	ModNone Modifier = 0
)

// Event is a fixed-shape record able to carry any EventKind. Every payload
// field is always present; fields that do not apply to Kind are zero.
type Event struct {
	Kind      EventKind
	KeyCode   uint32
	Modifiers Modifier
	_         uint8
	MouseX    uint16
	MouseY    uint16
	_         [2]uint8
}

// NoneEvent is the idle-poll result: kind None, zero payload.
func NoneEvent() Event {
	return Event{}
}

// QuitEvent requests shutdown of the main loop.
func QuitEvent() Event {
	return Event{Kind: EventQuit}
}

// KeyEvent builds a key press from a code in the shared key-code space.
func KeyEvent(code uint32, mods Modifier) Event {
	return Event{Kind: EventKey, KeyCode: code, Modifiers: mods}
}

// RuneEvent builds a key press for a printable character.
func RuneEvent(r rune, mods Modifier) Event {
	if r < 0 || r >= KeySpecialBase {
		r = 0
	}
	return KeyEvent(uint32(r), mods)
}

// MouseEvent builds a mouse event at the given cell.
func MouseEvent(x, y uint16, mods Modifier) Event {
	return Event{Kind: EventMouse, Modifiers: mods, MouseX: x, MouseY: y}
}

// ResizeEvent signals that the terminal changed size. It carries no
// payload; consumers read the new dimensions from the driver or TuiState.
func ResizeEvent() Event {
	return Event{Kind: EventResize}
}

// Canonical returns a copy with every field that is not meaningful for
// the event's kind cleared. Unknown kinds keep no payload at all.
func (e Event) Canonical() Event {
	switch e.Kind {
	case EventKey:
		return KeyEvent(e.KeyCode, e.Modifiers)
	case EventMouse:
		return MouseEvent(e.MouseX, e.MouseY, e.Modifiers)
	default:
		return Event{Kind: e.Kind}
	}
}

// Rune returns the character carried by a key event when its code lies in
// the Unicode scalar range.
func (e Event) Rune() (rune, bool) {
	if e.Kind != EventKey || e.KeyCode >= KeySpecialBase {
		return 0, false
	}
	if e.KeyCode >= 0xD800 && e.KeyCode <= 0xDFFF {
		return 0, false
	}
	return rune(e.KeyCode), true
}

// Has reports whether all bits of m are held.
func (e Event) Has(m Modifier) bool {
	return e.Modifiers&m == m
}

func (e Event) String() string {
	switch e.Kind {
	case EventKey:
		if r, ok := e.Rune(); ok {
			return fmt.Sprintf("Key(%q mods=%#x)", r, uint8(e.Modifiers))
		}
		return fmt.Sprintf("Key(%s mods=%#x)", KeyName(e.KeyCode), uint8(e.Modifiers))
	case EventMouse:
		return fmt.Sprintf("Mouse(%d,%d mods=%#x)", e.MouseX, e.MouseY, uint8(e.Modifiers))
	default:
		return e.Kind.String()
	}
}
