// Copyright © 2025 RAZE contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/link/link.go
// Summary: Framed connection between two components exchanging contract records.
// Usage: raze-demo dials a monitor; raze-monitor accepts. Either side may send
// events, state snapshots and widget records.

package link

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/framegrace/raze/core"
	"github.com/framegrace/raze/internal/logging"
	"github.com/framegrace/raze/protocol"
)

var (
	errUnexpectedMessage = errors.New("link: unexpected message type")
	// ErrClosed is returned by Receive after the peer said goodbye.
	ErrClosed = errors.New("link: peer disconnected")
)

var debugLog = logging.Debug("link")

// SetVerboseLogging toggles frame-level logging.
func SetVerboseLogging(enable bool) {
	logging.Toggle(debugLog, enable)
}

// Peer identifies the component on the other end.
type Peer struct {
	Role protocol.Role
	Name string
}

// Link wraps a connection after a successful handshake.
type Link struct {
	conn    net.Conn
	role    protocol.Role
	peer    Peer
	writeMu sync.Mutex
	seq     uint64
	readMu  sync.Mutex
	// verified is set once the handshake compared fingerprints; frames
	// from then on must carry the same one.
	verified bool
}

// Dial performs the client side of the handshake over conn: it sends Hello
// and waits for Welcome.
func Dial(ctx context.Context, conn net.Conn, role protocol.Role, name string) (*Link, error) {
	l := &Link{conn: conn, role: role}
	if err := l.Send(protocol.Hello{Role: role, Name: name, Fingerprint: core.Fingerprint()}); err != nil {
		return nil, fmt.Errorf("link: send hello: %w", err)
	}
	hdr, payload, err := l.read(ctx)
	if err != nil {
		return nil, err
	}
	switch hdr.Type {
	case protocol.MsgWelcome:
	case protocol.MsgError:
		frame, _ := protocol.DecodeErrorFrame(payload)
		return nil, fmt.Errorf("link: rejected by peer: %s", frame.Message)
	default:
		return nil, errUnexpectedMessage
	}
	welcome, err := protocol.DecodeWelcome(payload)
	if err != nil {
		return nil, err
	}
	l.peer = Peer{Role: welcome.Role, Name: welcome.Name}
	l.verified = true
	debugLog.Debug("connected", "peer", welcome.Name, "role", welcome.Role)
	return l, nil
}

// Accept performs the server side of the handshake. A peer built against a
// different layout receives an error frame and the call fails with
// protocol.ErrFingerprint.
func Accept(ctx context.Context, conn net.Conn, role protocol.Role, name string) (*Link, error) {
	l := &Link{conn: conn, role: role}
	hdr, payload, err := l.read(ctx)
	if err != nil {
		return nil, err
	}
	if hdr.Type != protocol.MsgHello {
		return nil, errUnexpectedMessage
	}
	hello, err := protocol.DecodeHello(payload)
	if err != nil {
		return nil, err
	}
	if hello.Fingerprint != core.Fingerprint() {
		msg := fmt.Sprintf("layout fingerprint %08x, want %08x", hello.Fingerprint, core.Fingerprint())
		_ = l.Send(protocol.ErrorFrame{Code: 409, Message: msg})
		return nil, fmt.Errorf("%w: %s", protocol.ErrFingerprint, msg)
	}
	if err := l.Send(protocol.Welcome{Role: role, Name: name}); err != nil {
		return nil, fmt.Errorf("link: send welcome: %w", err)
	}
	l.peer = Peer{Role: hello.Role, Name: hello.Name}
	l.verified = true
	debugLog.Debug("accepted", "peer", hello.Name, "role", hello.Role)
	return l, nil
}

// Peer returns the identity announced during the handshake.
func (l *Link) Peer() Peer {
	return l.peer
}

// Send encodes msg and writes it as one frame. Safe for concurrent use.
func (l *Link) Send(msg interface{}) error {
	typ, payload, err := protocol.Encode(msg)
	if err != nil {
		return err
	}
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	l.seq++
	hdr := protocol.Header{
		Version:     protocol.Version,
		Type:        typ,
		Flags:       protocol.FlagChecksum,
		Role:        l.role,
		Sequence:    l.seq,
		Fingerprint: core.Fingerprint(),
	}
	debugLog.Debug("tx", "type", typ, "seq", l.seq, "len", len(payload))
	return protocol.WriteMessage(l.conn, hdr, payload)
}

// SendEvent is shorthand for Send(protocol.EventFrame{Event: ev}).
func (l *Link) SendEvent(ev core.Event) error {
	return l.Send(protocol.EventFrame{Event: ev})
}

// SendState is shorthand for Send(protocol.StateFrame{State: s}).
func (l *Link) SendState(s core.TuiState) error {
	return l.Send(protocol.StateFrame{State: s})
}

// Receive blocks for the next frame and returns the decoded message. Pings
// are answered transparently. A disconnect notice yields ErrClosed.
func (l *Link) Receive(ctx context.Context) (interface{}, error) {
	for {
		hdr, payload, err := l.read(ctx)
		if err != nil {
			return nil, err
		}
		msg, err := protocol.Decode(hdr.Type, payload)
		if err != nil {
			return nil, fmt.Errorf("link: decode %s: %w", hdr.Type, err)
		}
		switch m := msg.(type) {
		case protocol.Ping:
			if err := l.Send(protocol.Pong{Timestamp: m.Timestamp}); err != nil {
				return nil, err
			}
			continue
		case protocol.DisconnectNotice:
			debugLog.Debug("peer disconnected", "reason", m.ReasonCode, "message", m.Message)
			return m, ErrClosed
		}
		return msg, nil
	}
}

// Close tells the peer we are leaving and closes the connection.
func (l *Link) Close() error {
	_ = l.Send(protocol.DisconnectNotice{ReasonCode: 0, Message: "closing"})
	return l.conn.Close()
}

func (l *Link) read(ctx context.Context) (protocol.Header, []byte, error) {
	l.readMu.Lock()
	defer l.readMu.Unlock()

	if err := ctx.Err(); err != nil {
		return protocol.Header{}, nil, err
	}
	_ = l.conn.SetReadDeadline(time.Time{})

	fired := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		// Unblock the pending read.
		_ = l.conn.SetReadDeadline(time.Now())
		close(fired)
	})
	defer func() {
		if !stop() {
			// The callback owns the deadline until it returns; clear it so
			// the next read starts clean.
			<-fired
			_ = l.conn.SetReadDeadline(time.Time{})
		}
	}()

	hdr, payload, err := protocol.ReadMessage(l.conn)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return hdr, nil, ctxErr
		}
		return hdr, nil, err
	}
	if l.verified && hdr.Fingerprint != core.Fingerprint() {
		return hdr, nil, protocol.ErrFingerprint
	}
	debugLog.Debug("rx", "type", hdr.Type, "seq", hdr.Sequence, "len", len(payload))
	return hdr, payload, nil
}
