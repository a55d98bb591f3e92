// Copyright © 2025 RAZE contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/protocol_test.go
// Summary: Exercises frame encoding to ensure the transport definitions remain reliable.
// Usage: Executed during `go test` to guard against regressions.

package protocol

import (
	"bytes"
	"errors"
	"testing"

	"github.com/framegrace/raze/core"
)

func TestWriteReadRoundTrip(t *testing.T) {
	header := Header{
		Version:     Version,
		Type:        MsgEvent,
		Flags:       FlagChecksum,
		Role:        RoleInput,
		Sequence:    42,
		Fingerprint: core.Fingerprint(),
	}
	payload := []byte("hello world")

	buf := &bytes.Buffer{}
	if err := WriteMessage(buf, header, payload); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if buf.Len() != headerSize+len(payload) {
		t.Fatalf("unexpected frame length %d", buf.Len())
	}

	gotHeader, gotPayload, err := ReadMessage(buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if gotHeader.Type != header.Type || gotHeader.Sequence != header.Sequence ||
		gotHeader.Role != header.Role || gotHeader.Fingerprint != header.Fingerprint {
		t.Fatalf("header mismatch: %+v vs %+v", gotHeader, header)
	}
	if !bytes.Equal(gotPayload, payload) {
		t.Fatalf("payload mismatch: %q vs %q", gotPayload, payload)
	}
}

func TestReadMessageInvalidMagic(t *testing.T) {
	data := make([]byte, headerSize)
	if _, _, err := ReadMessage(bytes.NewReader(data)); !errors.Is(err, ErrInvalidMagic) {
		t.Fatalf("expected ErrInvalidMagic, got %v", err)
	}
}

func TestChecksumMismatch(t *testing.T) {
	header := Header{Version: Version, Type: MsgPing, Flags: FlagChecksum}
	buf := &bytes.Buffer{}
	if err := WriteMessage(buf, header, []byte("ping")); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	raw := buf.Bytes()
	raw[len(raw)-1] ^= 0xFF // flip a payload byte

	if _, _, err := ReadMessage(bytes.NewReader(raw)); !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("expected checksum mismatch, got %v", err)
	}
}

func TestChecksumCoversRole(t *testing.T) {
	header := Header{Version: Version, Type: MsgState, Flags: FlagChecksum, Role: RoleLogic}
	buf := &bytes.Buffer{}
	if err := WriteMessage(buf, header, nil); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	raw := buf.Bytes()
	raw[7] = byte(RoleRender)
	if _, _, err := ReadMessage(bytes.NewReader(raw)); !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("expected checksum mismatch, got %v", err)
	}
}

func TestUnsupportedVersion(t *testing.T) {
	header := Header{Version: Version, Type: MsgHello}
	buf := &bytes.Buffer{}
	if err := WriteMessage(buf, header, nil); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	data := buf.Bytes()
	data[4] = Version + 1

	if _, _, err := ReadMessage(bytes.NewReader(data)); !errors.Is(err, ErrUnsupportedVer) {
		t.Fatalf("expected unsupported version, got %v", err)
	}
}

func TestShortPayload(t *testing.T) {
	header := Header{Version: Version, Type: MsgHello, Flags: FlagChecksum}
	buf := &bytes.Buffer{}
	if err := WriteMessage(buf, header, []byte("payload")); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	truncated := buf.Bytes()[:headerSize+2]
	if _, _, err := ReadMessage(bytes.NewReader(truncated)); !errors.Is(err, ErrShortPayload) {
		t.Fatalf("expected short payload error, got %v", err)
	}
}

func TestPayloadLimit(t *testing.T) {
	if err := WriteMessage(&bytes.Buffer{}, Header{Version: Version}, make([]byte, MaxPayload+1)); !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("expected payload limit error, got %v", err)
	}
}
