package main

import (
	"context"
	"errors"
	"net"

	"github.com/charmbracelet/log"

	"github.com/framegrace/raze/internal/journal"
	"github.com/framegrace/raze/internal/link"
	"github.com/framegrace/raze/protocol"
)

// stats counts what one session mirrored.
type stats struct {
	events  int
	states  int
	widgets int
}

// serve runs one monitor session. A clean goodbye from the peer ends it
// without error.
func serve(ctx context.Context, conn net.Conn, logger *log.Logger) error {
	lk, err := link.Accept(ctx, conn, protocol.RoleMonitor, "raze-monitor")
	if err != nil {
		return err
	}
	peer := lk.Peer()
	sl := logger.With("peer", peer.Name, "role", peer.Role)
	sl.Info("connected")

	var st stats
	defer func() {
		sl.Info("disconnected", "events", st.events, "states", st.states, "widgets", st.widgets)
	}()
	for {
		msg, err := lk.Receive(ctx)
		if err != nil {
			if errors.Is(err, link.ErrClosed) || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		report(sl, msg, &st)
	}
}

func report(l *log.Logger, msg interface{}, st *stats) {
	switch m := msg.(type) {
	case protocol.EventFrame:
		st.events++
		l.Info("event", "ev", m.Event)
	case protocol.StateFrame:
		st.states++
		s := m.State
		l.Info("state", "version", s.Version, "width", s.Width, "height", s.Height, "running", s.Running)
	case protocol.WidgetFrame:
		st.widgets++
		l.Debug("widget", "id", m.ID, "kind", m.Kind, "rect", m.Rect, "label", m.Label)
	case protocol.ErrorFrame:
		l.Warn("peer error", "code", m.Code, "message", m.Message)
	default:
		l.Debug("ignored", "msg", msg)
	}
}

// replay prints a recorded session from a journal file.
func replay(ctx context.Context, path string, logger *log.Logger) error {
	j, err := journal.Open(path)
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.Events(ctx, 0, 0)
	if err != nil {
		return err
	}
	for _, e := range entries {
		logger.Info("event", "seq", e.Seq, "at", e.Timestamp.Format("15:04:05.000"), "version", e.Version, "ev", e.Event)
	}
	s, err := j.LatestState(ctx)
	switch {
	case errors.Is(err, journal.ErrNoState):
		logger.Info("no state recorded")
	case err != nil:
		return err
	default:
		logger.Info("last state", "version", s.Version, "width", s.Width, "height", s.Height, "running", s.Running)
	}
	return nil
}
