package main

import (
	"context"
	"errors"
	"net"

	"github.com/charmbracelet/log"

	"github.com/framegrace/raze/core"
	"github.com/framegrace/raze/internal/journal"
	"github.com/framegrace/raze/internal/link"
	"github.com/framegrace/raze/internal/shm"
	"github.com/framegrace/raze/protocol"
)

// mirror publishes events and state to the optional observers: a shared
// segment, a journal and a monitor link. A failing observer is logged and
// detached; the demo keeps running.
type mirror struct {
	logger  *log.Logger
	segment *shm.Segment
	view    core.StateView
	journal *journal.Journal
	link    *link.Link
}

func (m *mirror) attachSegment(path string) error {
	seg, err := shm.Create(path)
	if err != nil {
		return err
	}
	view, err := seg.State()
	if err != nil {
		seg.Close()
		return err
	}
	m.segment, m.view = seg, view
	return nil
}

func (m *mirror) attachJournal(path string) error {
	j, err := journal.Open(path)
	if err != nil {
		return err
	}
	m.journal = j
	return nil
}

func (m *mirror) attachMonitor(ctx context.Context, socket string) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", socket)
	if err != nil {
		return err
	}
	lk, err := link.Dial(ctx, conn, protocol.RoleLogic, "raze-demo")
	if err != nil {
		conn.Close()
		return err
	}
	m.link = lk
	go m.drain(ctx, lk)
	return nil
}

// drain keeps reading so pings are answered and a departing monitor is
// noticed.
func (m *mirror) drain(ctx context.Context, lk *link.Link) {
	for {
		msg, err := lk.Receive(ctx)
		if err != nil {
			if !errors.Is(err, link.ErrClosed) && !errors.Is(err, net.ErrClosed) && ctx.Err() == nil {
				m.logger.Warn("monitor link failed", "err", err)
			}
			return
		}
		m.logger.Debug("monitor says", "msg", msg)
	}
}

func (m *mirror) event(ev core.Event, version uint64) {
	if m.journal != nil {
		if err := m.journal.Record(ev, version); err != nil {
			m.logger.Error("journal event", "err", err)
			m.journal = nil
		}
	}
	if m.link != nil {
		if err := m.link.SendEvent(ev); err != nil {
			m.dropLink(err)
		}
	}
}

func (m *mirror) state(s core.TuiState, widgets []protocol.WidgetFrame) {
	if m.view != nil {
		m.view.Store(s)
	}
	if m.journal != nil {
		if err := m.journal.RecordState(s); err != nil {
			m.logger.Error("journal state", "err", err)
			m.journal = nil
		}
	}
	if m.link == nil {
		return
	}
	if err := m.link.SendState(s); err != nil {
		m.dropLink(err)
		return
	}
	for _, w := range widgets {
		if err := m.link.Send(w); err != nil {
			m.dropLink(err)
			return
		}
	}
}

func (m *mirror) dropLink(err error) {
	m.logger.Warn("monitor detached", "err", err)
	if m.link != nil {
		_ = m.link.Close()
	}
	m.link = nil
}

func (m *mirror) close() {
	if m.link != nil {
		m.link.Close()
	}
	if m.journal != nil {
		m.journal.Close()
	}
	if m.segment != nil {
		m.segment.Close()
	}
}
