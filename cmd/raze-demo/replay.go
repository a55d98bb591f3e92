package main

import (
	"context"

	"github.com/framegrace/raze/core"
	"github.com/framegrace/raze/internal/journal"
)

// poller yields contract events. The tcell driver is one; a journal replay
// is another.
type poller interface {
	Poll(ctx context.Context) core.Event
}

// replaySource feeds recorded events back into the loop and ends with Quit.
type replaySource struct {
	entries []journal.Entry
	next    int
}

func loadReplay(ctx context.Context, path string) (*replaySource, error) {
	j, err := journal.Open(path)
	if err != nil {
		return nil, err
	}
	defer j.Close()
	entries, err := j.Events(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	return &replaySource{entries: entries}, nil
}

func (r *replaySource) Poll(ctx context.Context) core.Event {
	if ctx.Err() != nil || r.next >= len(r.entries) {
		return core.QuitEvent()
	}
	ev := r.entries[r.next].Event
	r.next++
	return ev
}
