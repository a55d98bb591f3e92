// Copyright © 2025 RAZE contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/shm/shm.go
// Summary: File-backed shared segment holding one TuiState record.
// Usage: The logic component creates the segment; renderers in other
// processes open it and read the state in place through core.StateView.

package shm

import (
	"errors"

	"github.com/framegrace/raze/core"
)

const (
	headerSize = 16
	// SegmentSize is the mapped length: header plus one state record.
	SegmentSize = headerSize + core.TuiStateSize
)

var segmentMagic = [4]byte{'R', 'A', 'Z', 'E'}

var (
	ErrUnsupported = errors.New("shm: shared segments are not supported on this platform")
	ErrBadMagic    = errors.New("shm: file is not a state segment")
	ErrTooSmall    = errors.New("shm: segment file truncated")
	ErrClosed      = errors.New("shm: segment closed")
	ErrFingerprint = errors.New("shm: segment written by a different layout")
)

// writeHeader stamps the magic and the layout fingerprint. Bytes 8:16 are
// reserved and left zero.
func writeHeader(b []byte) {
	copy(b[0:4], segmentMagic[:])
	core.ByteOrder.PutUint32(b[4:8], core.Fingerprint())
	for i := 8; i < headerSize; i++ {
		b[i] = 0
	}
}

func checkHeader(b []byte) error {
	if len(b) < SegmentSize {
		return ErrTooSmall
	}
	if [4]byte(b[0:4]) != segmentMagic {
		return ErrBadMagic
	}
	if core.ByteOrder.Uint32(b[4:8]) != core.Fingerprint() {
		return ErrFingerprint
	}
	return nil
}
