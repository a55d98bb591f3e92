// Copyright © 2025 RAZE contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/geometry.go
// Summary: Axis-aligned cell rectangle used to describe widget placement.

package core

// Rect is an axis-aligned rectangle in cells. A zero width or height is a
// valid empty region. Nothing here keeps a rect inside the screen; that is
// the layout layer's job.
type Rect struct {
	X      uint16
	Y      uint16
	Width  uint16
	Height uint16
}

// NewRect stores its arguments verbatim.
func NewRect(x, y, width, height uint16) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Empty reports whether the rect covers no cells.
func (r Rect) Empty() bool {
	return r.Width == 0 || r.Height == 0
}

// Contains reports whether the cell (x, y) lies inside the rect.
func (r Rect) Contains(x, y uint16) bool {
	if r.Empty() {
		return false
	}
	px, py := uint32(x), uint32(y)
	return px >= uint32(r.X) && px < uint32(r.X)+uint32(r.Width) &&
		py >= uint32(r.Y) && py < uint32(r.Y)+uint32(r.Height)
}
