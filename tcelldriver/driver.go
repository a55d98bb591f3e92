// Copyright © 2025 RAZE contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tcelldriver/driver.go
// Summary: Wraps a tcell.Screen as the input driver and render target.
// Usage: The demo creates a Driver, calls Init for the first TuiState, then
// loops on Poll/Apply and redraws when the state version moves.

package tcelldriver

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/raze/core"
	"github.com/framegrace/raze/internal/logging"
)

var debugLog = logging.Debug("tcelldriver")

// SetVerboseLogging toggles event tracing.
func SetVerboseLogging(enable bool) {
	logging.Toggle(debugLog, enable)
}

// Driver adapts a tcell.Screen.
type Driver struct {
	screen tcell.Screen
}

// New wraps screen. Use tcell.NewScreen for a real terminal or
// tcell.NewSimulationScreen in tests.
func New(screen tcell.Screen) *Driver {
	return &Driver{screen: screen}
}

// Init initialises the screen and returns the initial state sized to it.
func (d *Driver) Init() (core.TuiState, error) {
	state := core.NewTuiState()
	if err := d.screen.Init(); err != nil {
		return state, err
	}
	d.screen.EnableMouse()
	d.screen.HideCursor()
	w, h := d.Size()
	state.SetSize(w, h)
	return state, nil
}

// Poll blocks for the next event the contract can express. Once ctx is
// done it returns QuitEvent.
func (d *Driver) Poll(ctx context.Context) core.Event {
	if ctx.Err() != nil {
		return core.QuitEvent()
	}
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			// Wake PollEvent; it comes back as an interrupt.
			_ = d.screen.PostEvent(tcell.NewEventInterrupt(ctx))
		case <-stop:
		}
	}()

	for {
		raw := d.screen.PollEvent()
		ev, ok := TranslateEvent(raw)
		if !ok {
			debugLog.Debug("dropped", "event", raw)
			continue
		}
		if ctx.Err() != nil {
			return core.QuitEvent()
		}
		debugLog.Debug("event", "ev", ev)
		return ev
	}
}

// Apply folds driver-level events into state through its setters and
// reports whether the state changed. Key and mouse events belong to the
// application and leave the state alone.
func (d *Driver) Apply(state *core.TuiState, ev core.Event) bool {
	switch ev.Kind {
	case core.EventResize:
		d.screen.Sync()
		w, h := d.Size()
		return state.SetSize(w, h)
	case core.EventQuit:
		return state.SetRunning(false)
	}
	return false
}

// Size reports the screen dimensions clamped to the contract range.
func (d *Driver) Size() (uint16, uint16) {
	w, h := d.screen.Size()
	return clamp16(w), clamp16(h)
}

// Clear blanks the back buffer.
func (d *Driver) Clear() {
	d.screen.Clear()
}

// Show flushes pending cell changes to the terminal.
func (d *Driver) Show() {
	d.screen.Show()
}

// Fini restores the terminal.
func (d *Driver) Fini() {
	d.screen.Fini()
}

// Screen exposes the wrapped screen for painting.
func (d *Driver) Screen() tcell.Screen {
	return d.screen
}
