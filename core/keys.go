// Copyright © 2025 RAZE contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/keys.go
// Summary: Shared key-code space carried in Event.KeyCode.

package core

import "fmt"

// KeySpecialBase is the first code above the Unicode scalar range. Codes
// below it are characters; codes at or above it name non-character keys.
const KeySpecialBase = 0x110000

// Named keys. Append only: the values are shared with every component.
const (
	KeyEnter uint32 = KeySpecialBase + iota
	KeyEscape
	KeyBackspace
	KeyTab
	KeyBackTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDn
	KeyInsert
	KeyDelete
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	keyLast = KeyF12
)

var keyNames = [...]string{
	"Enter", "Escape", "Backspace", "Tab", "BackTab",
	"Up", "Down", "Left", "Right",
	"Home", "End", "PgUp", "PgDn", "Insert", "Delete",
	"F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9", "F10", "F11", "F12",
}

// IsNamedKey reports whether code is one of the named non-character keys.
func IsNamedKey(code uint32) bool {
	return code >= KeySpecialBase && code <= keyLast
}

// KeyName returns a readable name for a key code.
func KeyName(code uint32) string {
	if IsNamedKey(code) {
		return keyNames[code-KeySpecialBase]
	}
	if code < KeySpecialBase {
		return fmt.Sprintf("%q", rune(code))
	}
	return fmt.Sprintf("Key(%#x)", code)
}

// NamedKeys lists every named key code in ascending order.
func NamedKeys() []uint32 {
	keys := make([]uint32, 0, len(keyNames))
	for code := uint32(KeySpecialBase); code <= keyLast; code++ {
		keys = append(keys, code)
	}
	return keys
}
