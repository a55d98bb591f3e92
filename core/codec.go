// Copyright © 2025 RAZE contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/codec.go
// Summary: Packs and unpacks contract records at their pinned offsets.
// Notes: Padding is written as zero and never read. Any non-zero byte
// decodes as true. Enum values are kept verbatim, known or not.

package core

import (
	"encoding/binary"
	"errors"
)

var (
	ErrShortBuffer   = errors.New("core: buffer shorter than record")
	ErrTrailingBytes = errors.New("core: buffer longer than record")
)

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}

func checkLen(data []byte, size int) error {
	switch {
	case len(data) < size:
		return ErrShortBuffer
	case len(data) > size:
		return ErrTrailingBytes
	}
	return nil
}

// PutTuiState writes s into b[:TuiStateSize]. It panics if b is short, like
// the encoding/binary Put functions.
func PutTuiState(b []byte, order binary.ByteOrder, s TuiState) {
	_ = b[TuiStateSize-1]
	order.PutUint16(b[0:2], s.Width)
	order.PutUint16(b[2:4], s.Height)
	b[4] = boolByte(s.Running)
	b[5], b[6], b[7] = 0, 0, 0
	order.PutUint64(b[8:16], s.Version)
}

// GetTuiState reads a TuiState from b[:TuiStateSize].
func GetTuiState(b []byte, order binary.ByteOrder) TuiState {
	_ = b[TuiStateSize-1]
	return TuiState{
		Width:   order.Uint16(b[0:2]),
		Height:  order.Uint16(b[2:4]),
		Running: b[4] != 0,
		Version: order.Uint64(b[8:16]),
	}
}

// PutEvent writes e into b[:EventSize].
func PutEvent(b []byte, order binary.ByteOrder, e Event) {
	_ = b[EventSize-1]
	order.PutUint32(b[0:4], uint32(e.Kind))
	order.PutUint32(b[4:8], e.KeyCode)
	b[8] = byte(e.Modifiers)
	b[9] = 0
	order.PutUint16(b[10:12], e.MouseX)
	order.PutUint16(b[12:14], e.MouseY)
	b[14], b[15] = 0, 0
}

// GetEvent reads an Event from b[:EventSize]. The result is not
// canonicalised; a foreign writer that left junk in inactive fields is
// visible to the caller.
func GetEvent(b []byte, order binary.ByteOrder) Event {
	_ = b[EventSize-1]
	return Event{
		Kind:      EventKind(order.Uint32(b[0:4])),
		KeyCode:   order.Uint32(b[4:8]),
		Modifiers: Modifier(b[8]),
		MouseX:    order.Uint16(b[10:12]),
		MouseY:    order.Uint16(b[12:14]),
	}
}

// PutWidgetKind writes k into b[:WidgetKindSize].
func PutWidgetKind(b []byte, order binary.ByteOrder, k WidgetKind) {
	order.PutUint32(b[:WidgetKindSize], uint32(k))
}

// GetWidgetKind reads a WidgetKind from b[:WidgetKindSize].
func GetWidgetKind(b []byte, order binary.ByteOrder) WidgetKind {
	return WidgetKind(order.Uint32(b[:WidgetKindSize]))
}

// PutRect writes r into b[:RectSize].
func PutRect(b []byte, order binary.ByteOrder, r Rect) {
	_ = b[RectSize-1]
	order.PutUint16(b[0:2], r.X)
	order.PutUint16(b[2:4], r.Y)
	order.PutUint16(b[4:6], r.Width)
	order.PutUint16(b[6:8], r.Height)
}

// GetRect reads a Rect from b[:RectSize].
func GetRect(b []byte, order binary.ByteOrder) Rect {
	_ = b[RectSize-1]
	return Rect{
		X:      order.Uint16(b[0:2]),
		Y:      order.Uint16(b[2:4]),
		Width:  order.Uint16(b[4:6]),
		Height: order.Uint16(b[6:8]),
	}
}

// PutColor writes c into b[:ColorSize]. Colours are byte-wide, so no order
// is needed.
func PutColor(b []byte, c Color) {
	_ = b[ColorSize-1]
	b[0], b[1], b[2], b[3] = c.R, c.G, c.B, byte(c.Mode)
}

// GetColor reads a Color from b[:ColorSize].
func GetColor(b []byte) Color {
	_ = b[ColorSize-1]
	return Color{R: b[0], G: b[1], B: b[2], Mode: ColorMode(b[3])}
}

// PutStyle writes s into b[:StyleSize].
func PutStyle(b []byte, s Style) {
	_ = b[StyleSize-1]
	PutColor(b[0:4], s.Fg)
	PutColor(b[4:8], s.Bg)
	b[8] = boolByte(s.Bold)
	b[9] = boolByte(s.Italic)
	b[10] = boolByte(s.Underline)
}

// GetStyle reads a Style from b[:StyleSize].
func GetStyle(b []byte) Style {
	_ = b[StyleSize-1]
	return Style{
		Fg:        GetColor(b[0:4]),
		Bg:        GetColor(b[4:8]),
		Bold:      b[8] != 0,
		Italic:    b[9] != 0,
		Underline: b[10] != 0,
	}
}

// MarshalBinary encodes s in ByteOrder.
func (s TuiState) MarshalBinary() ([]byte, error) {
	return s.AppendBinary(make([]byte, 0, TuiStateSize))
}

// AppendBinary appends the encoded state to b.
func (s TuiState) AppendBinary(b []byte) ([]byte, error) {
	b = append(b, make([]byte, TuiStateSize)...)
	PutTuiState(b[len(b)-TuiStateSize:], ByteOrder, s)
	return b, nil
}

// UnmarshalBinary decodes exactly TuiStateSize bytes.
func (s *TuiState) UnmarshalBinary(data []byte) error {
	if err := checkLen(data, TuiStateSize); err != nil {
		return err
	}
	*s = GetTuiState(data, ByteOrder)
	return nil
}

func (e Event) MarshalBinary() ([]byte, error) {
	return e.AppendBinary(make([]byte, 0, EventSize))
}

func (e Event) AppendBinary(b []byte) ([]byte, error) {
	b = append(b, make([]byte, EventSize)...)
	PutEvent(b[len(b)-EventSize:], ByteOrder, e)
	return b, nil
}

func (e *Event) UnmarshalBinary(data []byte) error {
	if err := checkLen(data, EventSize); err != nil {
		return err
	}
	*e = GetEvent(data, ByteOrder)
	return nil
}

func (k WidgetKind) MarshalBinary() ([]byte, error) {
	return k.AppendBinary(make([]byte, 0, WidgetKindSize))
}

func (k WidgetKind) AppendBinary(b []byte) ([]byte, error) {
	b = append(b, make([]byte, WidgetKindSize)...)
	PutWidgetKind(b[len(b)-WidgetKindSize:], ByteOrder, k)
	return b, nil
}

func (k *WidgetKind) UnmarshalBinary(data []byte) error {
	if err := checkLen(data, WidgetKindSize); err != nil {
		return err
	}
	*k = GetWidgetKind(data, ByteOrder)
	return nil
}

func (r Rect) MarshalBinary() ([]byte, error) {
	return r.AppendBinary(make([]byte, 0, RectSize))
}

func (r Rect) AppendBinary(b []byte) ([]byte, error) {
	b = append(b, make([]byte, RectSize)...)
	PutRect(b[len(b)-RectSize:], ByteOrder, r)
	return b, nil
}

func (r *Rect) UnmarshalBinary(data []byte) error {
	if err := checkLen(data, RectSize); err != nil {
		return err
	}
	*r = GetRect(data, ByteOrder)
	return nil
}

func (c Color) MarshalBinary() ([]byte, error) {
	return c.AppendBinary(make([]byte, 0, ColorSize))
}

func (c Color) AppendBinary(b []byte) ([]byte, error) {
	return append(b, c.R, c.G, c.B, byte(c.Mode)), nil
}

func (c *Color) UnmarshalBinary(data []byte) error {
	if err := checkLen(data, ColorSize); err != nil {
		return err
	}
	*c = GetColor(data)
	return nil
}

func (s Style) MarshalBinary() ([]byte, error) {
	return s.AppendBinary(make([]byte, 0, StyleSize))
}

func (s Style) AppendBinary(b []byte) ([]byte, error) {
	b = append(b, make([]byte, StyleSize)...)
	PutStyle(b[len(b)-StyleSize:], s)
	return b, nil
}

func (s *Style) UnmarshalBinary(data []byte) error {
	if err := checkLen(data, StyleSize); err != nil {
		return err
	}
	*s = GetStyle(data)
	return nil
}
