// Copyright © 2025 RAZE contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/testutil/memconn.go
// Summary: In-memory net.Conn pair for transport tests.
// Notes: Not shipped with production binaries; only used in test code.

package testutil

import (
	"errors"
	"io"
	"net"
	"sync"
	"time"
)

// ErrDeadline is returned when a read or write outlives its deadline.
var ErrDeadline = errors.New("memconn: deadline reached")

// MemConn implements net.Conn using in-memory channels, allowing predictable
// behaviour without relying on OS sockets. Writes are delivered as chunks;
// a read smaller than a chunk keeps the remainder for the next read.
type MemConn struct {
	readCh   <-chan []byte
	writeCh  chan []byte
	mu       sync.Mutex
	pending  []byte
	closed   bool
	deadline time.Time
	wake     chan struct{}
}

// NewMemPipe returns two endpoints backed by mirrored channels.
func NewMemPipe(buffer int) (*MemConn, *MemConn) {
	if buffer <= 0 {
		buffer = 16
	}
	leftChan := make(chan []byte, buffer)
	rightChan := make(chan []byte, buffer)
	left := &MemConn{readCh: rightChan, writeCh: leftChan, wake: make(chan struct{})}
	right := &MemConn{readCh: leftChan, writeCh: rightChan, wake: make(chan struct{})}
	return left, right
}

func (m *MemConn) Read(b []byte) (int, error) {
	for {
		m.mu.Lock()
		if len(m.pending) > 0 {
			n := copy(b, m.pending)
			m.pending = m.pending[n:]
			m.mu.Unlock()
			return n, nil
		}
		closed := m.closed
		deadline := m.deadline
		wake := m.wake
		m.mu.Unlock()
		if closed {
			return 0, io.EOF
		}

		var (
			timer *time.Timer
			fired <-chan time.Time
		)
		if !deadline.IsZero() {
			wait := time.Until(deadline)
			if wait <= 0 {
				return 0, ErrDeadline
			}
			timer = time.NewTimer(wait)
			fired = timer.C
		}

		select {
		case data, ok := <-m.readCh:
			if timer != nil {
				timer.Stop()
			}
			if !ok {
				return 0, io.EOF
			}
			n := copy(b, data)
			if n < len(data) {
				m.mu.Lock()
				m.pending = data[n:]
				m.mu.Unlock()
			}
			return n, nil
		case <-fired:
			return 0, ErrDeadline
		case <-wake:
			// Deadline changed while blocked; re-evaluate.
			if timer != nil {
				timer.Stop()
			}
		}
	}
}

func (m *MemConn) Write(b []byte) (int, error) {
	m.mu.Lock()
	closed := m.closed
	deadline := m.deadline
	m.mu.Unlock()
	if closed {
		return 0, io.ErrClosedPipe
	}

	payload := make([]byte, len(b))
	copy(payload, b)

	var timer <-chan time.Time
	if !deadline.IsZero() {
		t := time.NewTimer(time.Until(deadline))
		defer t.Stop()
		timer = t.C
	}

	select {
	case m.writeCh <- payload:
		return len(b), nil
	case <-timer:
		return 0, ErrDeadline
	}
}

func (m *MemConn) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	close(m.wake)
	m.wake = make(chan struct{})
	m.mu.Unlock()

	close(m.writeCh)
	return nil
}

func (m *MemConn) LocalAddr() net.Addr  { return memAddr("mem") }
func (m *MemConn) RemoteAddr() net.Addr { return memAddr("mem") }

func (m *MemConn) SetDeadline(t time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deadline = t
	close(m.wake)
	m.wake = make(chan struct{})
	return nil
}

func (m *MemConn) SetReadDeadline(t time.Time) error  { return m.SetDeadline(t) }
func (m *MemConn) SetWriteDeadline(t time.Time) error { return m.SetDeadline(t) }

type memAddr string

func (d memAddr) Network() string { return string(d) }
func (d memAddr) String() string  { return string(d) }
