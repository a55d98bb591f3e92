// Copyright © 2025 RAZE contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/view.go
// Summary: In-place accessors over an encoded TuiState in shared memory.
// Usage: Wrap a mapped segment so a Go component can read and write the
// same bytes a foreign component sees, without copying the record.

package core

// StateView reads and writes one TuiState record stored in ByteOrder. The
// view is not synchronised; a single writer is assumed.
type StateView []byte

// NewStateView wraps b, which must hold at least TuiStateSize bytes.
func NewStateView(b []byte) (StateView, error) {
	if len(b) < TuiStateSize {
		return nil, ErrShortBuffer
	}
	return StateView(b[:TuiStateSize:TuiStateSize]), nil
}

func (v StateView) Width() uint16   { return ByteOrder.Uint16(v[0:2]) }
func (v StateView) Height() uint16  { return ByteOrder.Uint16(v[2:4]) }
func (v StateView) Running() bool   { return v[4] != 0 }
func (v StateView) Version() uint64 { return ByteOrder.Uint64(v[8:16]) }

// Touch increments the stored version, wrapping on overflow.
func (v StateView) Touch() {
	ByteOrder.PutUint64(v[8:16], v.Version()+1)
}

// SetSize writes new dimensions and touches the record when they change.
func (v StateView) SetSize(width, height uint16) bool {
	if v.Width() == width && v.Height() == height {
		return false
	}
	ByteOrder.PutUint16(v[0:2], width)
	ByteOrder.PutUint16(v[2:4], height)
	v.Touch()
	return true
}

// SetRunning writes the running flag and touches the record on change.
func (v StateView) SetRunning(running bool) bool {
	if v.Running() == running {
		return false
	}
	v[4] = boolByte(running)
	v.Touch()
	return true
}

// Snapshot copies the record out of shared memory.
func (v StateView) Snapshot() TuiState {
	return GetTuiState(v, ByteOrder)
}

// Store overwrites the record with s verbatim, version included. Callers
// publishing a locally mutated copy should have touched it first.
func (v StateView) Store(s TuiState) {
	PutTuiState(v, ByteOrder, s)
}
