// Copyright © 2025 RAZE contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/state.go
// Summary: Root shared state record and its change-version counter.
// Usage: Owned by the dispatch loop; read by renderers that compare Version
// across two observations to decide whether to redraw.

package core

// Default screen size used before the driver reports a real one.
const (
	DefaultWidth  uint16 = 80
	DefaultHeight uint16 = 24
)

// TuiState is the single root of shared mutable state.
//
// The layout matches the C record {u16 width; u16 height; bool running;
// u64 version}: three padding bytes follow Running so Version lands on
// offset 8. Foreign components write the exported fields directly, so any
// write must be followed by Touch. Go code should prefer SetSize and
// SetRunning, which do both.
type TuiState struct {
	Width   uint16
	Height  uint16
	Running bool
	_       [3]byte
	Version uint64
}

// NewTuiState returns the start-of-process state: 80x24, not running,
// version 0.
func NewTuiState() TuiState {
	return TuiState{Width: DefaultWidth, Height: DefaultHeight}
}

// Touch marks the state as modified. Version wraps to 0 after MaxUint64.
func (s *TuiState) Touch() {
	s.Version++
}

// SetSize updates the screen dimensions and touches the state when they
// differ from the current ones. It reports whether anything changed.
func (s *TuiState) SetSize(width, height uint16) bool {
	if s.Width == width && s.Height == height {
		return false
	}
	s.Width = width
	s.Height = height
	s.Touch()
	return true
}

// SetRunning updates the running flag, touching the state on change.
func (s *TuiState) SetRunning(running bool) bool {
	if s.Running == running {
		return false
	}
	s.Running = running
	s.Touch()
	return true
}

// ChangedSince reports whether the state moved past an earlier observed
// version.
func (s TuiState) ChangedSince(version uint64) bool {
	return s.Version != version
}

// RedrawGate lets a renderer skip frames when the state version has not
// moved since the last frame it drew.
type RedrawGate struct {
	last   uint64
	primed bool
}

// Due reports whether state differs from the last marked frame. The first
// call on a fresh gate is always due.
func (g *RedrawGate) Due(state *TuiState) bool {
	return !g.primed || state.Version != g.last
}

// Mark records that state has been rendered.
func (g *RedrawGate) Mark(state *TuiState) {
	g.last = state.Version
	g.primed = true
}

// Reset forces the next Due call to report true.
func (g *RedrawGate) Reset() {
	g.primed = false
}
