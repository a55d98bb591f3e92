package protocol

import (
	"errors"
	"strings"
	"testing"

	"github.com/framegrace/raze/core"
)

func TestHelloRoundTrip(t *testing.T) {
	hello := Hello{Role: RoleRender, Name: "ada-renderer", Fingerprint: 0xdeadbeef}
	payload, err := EncodeHello(hello)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err := DecodeHello(payload)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != hello {
		t.Fatalf("mismatch: %#v vs %#v", decoded, hello)
	}
}

func TestWelcomeRejectsTrailingData(t *testing.T) {
	payload, _ := EncodeWelcome(Welcome{Role: RoleLogic, Name: "core"})
	if _, err := DecodeWelcome(append(payload, 0)); !errors.Is(err, errExtraBytes) {
		t.Fatalf("expected trailing data error, got %v", err)
	}
}

func TestEventFrameIsContractRecord(t *testing.T) {
	ev := core.KeyEvent(core.KeyPgDn, core.ModShift)
	payload, err := EncodeEvent(EventFrame{Event: ev})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if len(payload) != core.EventSize || payload[0] != byte(core.EventKey) || payload[8] != byte(core.ModShift) {
		t.Fatalf("unexpected bytes % x", payload)
	}
	decoded, err := DecodeEvent(payload)
	if err != nil || decoded.Event != ev {
		t.Fatalf("round trip: %#v %v", decoded, err)
	}
}

func TestEventFrameCanonicalises(t *testing.T) {
	payload, _ := EncodeEvent(EventFrame{Event: core.Event{Kind: core.EventQuit, KeyCode: 7, MouseX: 3}})
	decoded, err := DecodeEvent(payload)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded.Event != core.QuitEvent() {
		t.Fatalf("stale payload survived: %#v", decoded.Event)
	}
}

func TestStateFrameRoundTrip(t *testing.T) {
	st := core.NewTuiState()
	st.SetRunning(true)
	payload, _ := EncodeState(StateFrame{State: st})
	decoded, err := DecodeState(payload)
	if err != nil || decoded.State != st {
		t.Fatalf("round trip: %+v %v", decoded.State, err)
	}
	if _, err := DecodeState(payload[:10]); !errors.Is(err, errPayloadShort) {
		t.Fatalf("expected short payload, got %v", err)
	}
}

func TestWidgetFrameRoundTrip(t *testing.T) {
	frame := WidgetFrame{
		ID:    9,
		Kind:  core.WidgetButton,
		Rect:  core.NewRect(2, 3, 12, 1),
		Style: core.DefaultStyle().WithFg(core.RGBColor(200, 100, 50)).WithBold(true),
		Label: "OK",
	}
	payload, err := EncodeWidget(frame)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err := DecodeWidget(payload)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != frame {
		t.Fatalf("mismatch: %#v vs %#v", decoded, frame)
	}
	if _, err := EncodeWidget(WidgetFrame{Label: strings.Repeat("x", 0x10000)}); !errors.Is(err, errStringTooLong) {
		t.Fatalf("expected string limit, got %v", err)
	}
}

func TestErrorAndDisconnectRoundTrip(t *testing.T) {
	payload, _ := EncodeErrorFrame(ErrorFrame{Code: 500, Message: "bad things"})
	frame, err := DecodeErrorFrame(payload)
	if err != nil || frame.Code != 500 || frame.Message != "bad things" {
		t.Fatalf("error frame: %#v %v", frame, err)
	}
	payload, _ = EncodeDisconnectNotice(DisconnectNotice{ReasonCode: 3, Message: "shutdown"})
	notice, err := DecodeDisconnectNotice(payload)
	if err != nil || notice.ReasonCode != 3 || notice.Message != "shutdown" {
		t.Fatalf("disconnect: %#v %v", notice, err)
	}
}

func TestGenericEncodeDecode(t *testing.T) {
	msgs := []interface{}{
		Hello{Role: RoleInput, Name: "zig-input", Fingerprint: 1},
		EventFrame{Event: core.MouseEvent(4, 5, 0)},
		StateFrame{State: core.NewTuiState()},
		Ping{Timestamp: -12},
		Pong{Timestamp: 99},
	}
	for _, msg := range msgs {
		typ, payload, err := Encode(msg)
		if err != nil {
			t.Fatalf("encode %T: %v", msg, err)
		}
		got, err := Decode(typ, payload)
		if err != nil {
			t.Fatalf("decode %s: %v", typ, err)
		}
		if got != msg {
			t.Fatalf("%s mismatch: %#v vs %#v", typ, got, msg)
		}
	}
	if _, _, err := Encode(42); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected unknown type, got %v", err)
	}
	if _, err := Decode(MessageType(200), nil); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected unknown type, got %v", err)
	}
}

func TestFixedPayloadsRejectTrailingData(t *testing.T) {
	ping, _ := EncodePing(Ping{Timestamp: 5})
	if _, err := DecodePing(append(ping, 0)); !errors.Is(err, errExtraBytes) {
		t.Fatalf("ping: expected trailing data error, got %v", err)
	}
	if _, err := DecodePong(append(ping, 0)); !errors.Is(err, errExtraBytes) {
		t.Fatalf("pong: expected trailing data error, got %v", err)
	}
	errFrame, _ := EncodeErrorFrame(ErrorFrame{Code: 409, Message: "layout"})
	if _, err := DecodeErrorFrame(append(errFrame, 'x')); !errors.Is(err, errExtraBytes) {
		t.Fatalf("error frame: expected trailing data error, got %v", err)
	}
	bye, _ := EncodeDisconnectNotice(DisconnectNotice{ReasonCode: 1, Message: "bye"})
	if _, err := DecodeDisconnectNotice(append(bye, 0, 0)); !errors.Is(err, errExtraBytes) {
		t.Fatalf("disconnect: expected trailing data error, got %v", err)
	}
	if _, err := Decode(MsgPong, append(ping, 1)); !errors.Is(err, errExtraBytes) {
		t.Fatalf("Decode: expected trailing data error, got %v", err)
	}
}
