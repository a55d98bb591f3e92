package link

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/framegrace/raze/core"
	"github.com/framegrace/raze/internal/testutil"
	"github.com/framegrace/raze/protocol"
)

func connectPair(t *testing.T) (*Link, *Link) {
	t.Helper()
	left, right := testutil.NewMemPipe(16)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	type result struct {
		l   *Link
		err error
	}
	accepted := make(chan result, 1)
	go func() {
		l, err := Accept(ctx, right, protocol.RoleMonitor, "monitor")
		accepted <- result{l, err}
	}()

	client, err := Dial(ctx, left, protocol.RoleLogic, "demo")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	res := <-accepted
	if res.err != nil {
		t.Fatalf("accept: %v", res.err)
	}
	return client, res.l
}

func TestHandshakeExchangesIdentity(t *testing.T) {
	client, server := connectPair(t)
	if client.Peer() != (Peer{Role: protocol.RoleMonitor, Name: "monitor"}) {
		t.Fatalf("client saw %+v", client.Peer())
	}
	if server.Peer() != (Peer{Role: protocol.RoleLogic, Name: "demo"}) {
		t.Fatalf("server saw %+v", server.Peer())
	}
}

func TestSendReceiveContractRecords(t *testing.T) {
	client, server := connectPair(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	state := core.NewTuiState()
	state.SetSize(132, 43)
	if err := client.SendEvent(core.RuneEvent('q', core.ModCtrl)); err != nil {
		t.Fatalf("send event: %v", err)
	}
	if err := client.SendState(state); err != nil {
		t.Fatalf("send state: %v", err)
	}

	msg, err := server.Receive(ctx)
	if err != nil {
		t.Fatalf("receive event: %v", err)
	}
	if ev, ok := msg.(protocol.EventFrame); !ok || ev.Event != core.RuneEvent('q', core.ModCtrl) {
		t.Fatalf("unexpected message %#v", msg)
	}
	msg, err = server.Receive(ctx)
	if err != nil {
		t.Fatalf("receive state: %v", err)
	}
	if st, ok := msg.(protocol.StateFrame); !ok || st.State != state {
		t.Fatalf("unexpected message %#v", msg)
	}
}

func TestPingIsAnsweredTransparently(t *testing.T) {
	client, server := connectPair(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Send(protocol.Ping{Timestamp: 77}); err != nil {
		t.Fatalf("send ping: %v", err)
	}
	if err := client.SendEvent(core.QuitEvent()); err != nil {
		t.Fatalf("send quit: %v", err)
	}
	msg, err := server.Receive(ctx)
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if ev, ok := msg.(protocol.EventFrame); !ok || ev.Event.Kind != core.EventQuit {
		t.Fatalf("ping leaked to caller: %#v", msg)
	}
	msg, err = client.Receive(ctx)
	if err != nil {
		t.Fatalf("receive pong: %v", err)
	}
	if pong, ok := msg.(protocol.Pong); !ok || pong.Timestamp != 77 {
		t.Fatalf("expected pong, got %#v", msg)
	}
}

func TestCloseReportsDisconnect(t *testing.T) {
	client, server := connectPair(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := server.Receive(ctx); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestReceiveHonoursContext(t *testing.T) {
	_, server := connectPair(t)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := server.Receive(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestAcceptRejectsForeignLayout(t *testing.T) {
	left, right := testutil.NewMemPipe(16)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	payload, _ := protocol.EncodeHello(protocol.Hello{Role: protocol.RoleRender, Name: "old", Fingerprint: core.Fingerprint() + 1})
	var buf bytes.Buffer
	if err := protocol.WriteMessage(&buf, protocol.Header{Version: protocol.Version, Type: protocol.MsgHello}, payload); err != nil {
		t.Fatalf("write hello: %v", err)
	}
	if _, err := left.Write(buf.Bytes()); err != nil {
		t.Fatalf("send hello: %v", err)
	}

	if _, err := Accept(ctx, right, protocol.RoleLogic, "core"); !errors.Is(err, protocol.ErrFingerprint) {
		t.Fatalf("expected fingerprint error, got %v", err)
	}
	hdr, body, err := protocol.ReadMessage(left)
	if err != nil {
		t.Fatalf("read rejection: %v", err)
	}
	if hdr.Type != protocol.MsgError {
		t.Fatalf("expected error frame, got %s", hdr.Type)
	}
	frame, _ := protocol.DecodeErrorFrame(body)
	if frame.Code != 409 {
		t.Fatalf("unexpected rejection %#v", frame)
	}
}

// The handshake context in connectPair is cancelled as soon as it returns;
// that must never leak a deadline into later reads.
func TestCancelledHandshakeContextDoesNotPoisonLaterReads(t *testing.T) {
	for i := 0; i < 200; i++ {
		client, server := connectPair(t)
		ev := core.RuneEvent(rune('a'+i%26), core.ModNone)
		if err := client.SendEvent(ev); err != nil {
			t.Fatalf("iteration %d: send: %v", i, err)
		}
		msg, err := server.Receive(context.Background())
		if err != nil {
			t.Fatalf("iteration %d: receive under a live context: %v", i, err)
		}
		if got, ok := msg.(protocol.EventFrame); !ok || got.Event != ev {
			t.Fatalf("iteration %d: unexpected message %#v", i, msg)
		}
	}
}

func TestCancelDuringReadLeavesLinkUsable(t *testing.T) {
	client, server := connectPair(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := server.Receive(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}

	if err := client.SendEvent(core.QuitEvent()); err != nil {
		t.Fatalf("send: %v", err)
	}
	msg, err := server.Receive(context.Background())
	if err != nil {
		t.Fatalf("receive after cancelled read: %v", err)
	}
	if got, ok := msg.(protocol.EventFrame); !ok || got.Event.Kind != core.EventQuit {
		t.Fatalf("unexpected message %#v", msg)
	}
}
