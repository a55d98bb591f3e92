// Copyright © 2025 RAZE contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/protocol.go
// Summary: Frame header and framing for contract records sent between processes.
// Usage: Used by internal/link when a component does not share memory with its peers.
// Notes: Keep changes backward-compatible; any additions require coordinated version bumps.

package protocol

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
	"io"
)

const (
	magic      uint32 = 0x52415a01 // "RAZ\x01"
	headerSize        = 36
)

// Flag bits for the header Flags byte.
const (
	FlagChecksum uint8 = 0x01
)

// Version is the framing version implemented by this package.
const Version uint8 = 1

// MaxPayload bounds a single frame; contract records are tiny.
const MaxPayload = 1 << 20

// MessageType enumerates the frames exchanged between components.
type MessageType uint8

const (
	MsgHello MessageType = iota
	MsgWelcome
	MsgEvent
	MsgState
	MsgWidget
	MsgPing
	MsgPong
	MsgError
	MsgDisconnect
)

var messageTypeNames = [...]string{
	"Hello", "Welcome", "Event", "State", "Widget", "Ping", "Pong", "Error", "Disconnect",
}

func (t MessageType) String() string {
	if int(t) < len(messageTypeNames) {
		return messageTypeNames[t]
	}
	return "Unknown"
}

// Role names the part a component plays around the shared state.
type Role uint8

const (
	RoleUnknown Role = iota
	RoleInput
	RoleRender
	RoleLogic
	RoleMonitor
)

func (r Role) String() string {
	switch r {
	case RoleInput:
		return "input"
	case RoleRender:
		return "render"
	case RoleLogic:
		return "logic"
	case RoleMonitor:
		return "monitor"
	default:
		return "unknown"
	}
}

// Header describes the fixed portion of every frame.
type Header struct {
	Version     uint8
	Type        MessageType
	Flags       uint8
	Role        Role
	Sequence    uint64
	PayloadLen  uint32
	Fingerprint uint32
	Checksum    uint32
	Reserved    uint32
}

var (
	ErrInvalidMagic     = errors.New("protocol: invalid magic")
	ErrUnsupportedVer   = errors.New("protocol: unsupported version")
	ErrShortPayload     = errors.New("protocol: payload shorter than declared length")
	ErrChecksumMismatch = errors.New("protocol: checksum mismatch")
	ErrPayloadTooLarge  = errors.New("protocol: payload exceeds limit")
	ErrFingerprint      = errors.New("protocol: layout fingerprint mismatch")
)

func checksum(hdr []byte, payload []byte) uint32 {
	crc := crc32.NewIEEE()
	_, _ = crc.Write(hdr[4:28])
	if len(payload) > 0 {
		_, _ = crc.Write(payload)
	}
	return crc.Sum32()
}

// WriteMessage serialises the header and payload to w. The payload slice is
// written as-is; callers retain ownership of the buffer.
func WriteMessage(w io.Writer, hdr Header, payload []byte) error {
	if len(payload) > MaxPayload {
		return ErrPayloadTooLarge
	}
	hdr.PayloadLen = uint32(len(payload))

	buf := make([]byte, headerSize, headerSize+len(payload))
	binary.LittleEndian.PutUint32(buf[0:], magic)
	buf[4] = hdr.Version
	buf[5] = byte(hdr.Type)
	buf[6] = hdr.Flags
	buf[7] = byte(hdr.Role)
	binary.LittleEndian.PutUint64(buf[8:16], hdr.Sequence)
	binary.LittleEndian.PutUint32(buf[16:20], hdr.PayloadLen)
	binary.LittleEndian.PutUint32(buf[20:24], hdr.Fingerprint)
	binary.LittleEndian.PutUint32(buf[24:28], hdr.Reserved)

	sum := hdr.Checksum
	if hdr.Flags&FlagChecksum != 0 {
		sum = checksum(buf, payload)
	}
	binary.LittleEndian.PutUint32(buf[28:32], sum)
	// Bytes 32:36 stay zero; they keep the payload 4-byte aligned.

	// One write per frame so concurrent readers never see a split header.
	buf = append(buf, payload...)
	_, err := w.Write(buf)
	return err
}

// ReadMessage reads a header and payload from r. The returned payload is a
// freshly allocated slice sized to the declared length.
func ReadMessage(r io.Reader) (Header, []byte, error) {
	var hdr Header
	buf := make([]byte, headerSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return hdr, nil, err
	}

	if binary.LittleEndian.Uint32(buf[0:4]) != magic {
		return hdr, nil, ErrInvalidMagic
	}

	hdr.Version = buf[4]
	hdr.Type = MessageType(buf[5])
	hdr.Flags = buf[6]
	hdr.Role = Role(buf[7])
	hdr.Sequence = binary.LittleEndian.Uint64(buf[8:16])
	hdr.PayloadLen = binary.LittleEndian.Uint32(buf[16:20])
	hdr.Fingerprint = binary.LittleEndian.Uint32(buf[20:24])
	hdr.Reserved = binary.LittleEndian.Uint32(buf[24:28])
	hdr.Checksum = binary.LittleEndian.Uint32(buf[28:32])

	if hdr.Version != Version {
		return hdr, nil, ErrUnsupportedVer
	}
	if hdr.PayloadLen > MaxPayload {
		return hdr, nil, ErrPayloadTooLarge
	}

	payload := make([]byte, hdr.PayloadLen)
	if hdr.PayloadLen > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
				return hdr, nil, ErrShortPayload
			}
			return hdr, nil, err
		}
	}

	if hdr.Flags&FlagChecksum != 0 && checksum(buf, payload) != hdr.Checksum {
		return hdr, nil, ErrChecksumMismatch
	}

	return hdr, payload, nil
}
