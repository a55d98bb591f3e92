package protocol

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/framegrace/raze/core"
)

var (
	errStringTooLong = errors.New("protocol: string exceeds 64KB limit")
	errPayloadShort  = errors.New("protocol: payload too short")
	errExtraBytes    = errors.New("protocol: payload has trailing data")
)

// Hello opens a connection and announces the sender's role and the layout
// it was built against.
type Hello struct {
	Role        Role
	Name        string
	Fingerprint uint32
}

// Welcome answers Hello once the fingerprints agree.
type Welcome struct {
	Role Role
	Name string
}

// EventFrame carries one input event.
type EventFrame struct {
	Event core.Event
}

// StateFrame publishes a snapshot of the shared state.
type StateFrame struct {
	State core.TuiState
}

// WidgetFrame describes one widget record as the render layer sees it.
type WidgetFrame struct {
	ID    uint32
	Kind  core.WidgetKind
	Rect  core.Rect
	Style core.Style
	Label string
}

// Ping/Pong keep the connection alive.
type Ping struct {
	Timestamp int64
}

type Pong struct {
	Timestamp int64
}

// ErrorFrame communicates protocol-level errors.
type ErrorFrame struct {
	Code    uint16
	Message string
}

// DisconnectNotice informs the peer that the connection is closing.
type DisconnectNotice struct {
	ReasonCode uint16
	Message    string
}

func encodeString(buf *bytes.Buffer, value string) error {
	if len(value) > 0xFFFF {
		return errStringTooLong
	}
	if err := binary.Write(buf, binary.LittleEndian, uint16(len(value))); err != nil {
		return err
	}
	if len(value) > 0 {
		if _, err := buf.WriteString(value); err != nil {
			return err
		}
	}
	return nil
}

func decodeString(b []byte) (string, []byte, error) {
	if len(b) < 2 {
		return "", nil, errPayloadShort
	}
	length := binary.LittleEndian.Uint16(b[:2])
	b = b[2:]
	if len(b) < int(length) {
		return "", nil, errPayloadShort
	}
	return string(b[:length]), b[length:], nil
}

func expectEnd(rest []byte) error {
	if len(rest) != 0 {
		return errExtraBytes
	}
	return nil
}

func EncodeHello(h Hello) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 8+len(h.Name)))
	buf.WriteByte(byte(h.Role))
	if err := encodeString(buf, h.Name); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.LittleEndian, h.Fingerprint); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeHello(b []byte) (Hello, error) {
	var h Hello
	if len(b) < 1 {
		return h, errPayloadShort
	}
	h.Role = Role(b[0])
	name, rest, err := decodeString(b[1:])
	if err != nil {
		return h, err
	}
	h.Name = name
	if len(rest) < 4 {
		return h, errPayloadShort
	}
	h.Fingerprint = binary.LittleEndian.Uint32(rest[:4])
	return h, expectEnd(rest[4:])
}

func EncodeWelcome(w Welcome) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 4+len(w.Name)))
	buf.WriteByte(byte(w.Role))
	if err := encodeString(buf, w.Name); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeWelcome(b []byte) (Welcome, error) {
	var w Welcome
	if len(b) < 1 {
		return w, errPayloadShort
	}
	w.Role = Role(b[0])
	name, rest, err := decodeString(b[1:])
	if err != nil {
		return w, err
	}
	w.Name = name
	return w, expectEnd(rest)
}

// EncodeEvent writes the 16-byte contract record in little-endian order.
func EncodeEvent(f EventFrame) ([]byte, error) {
	b := make([]byte, core.EventSize)
	core.PutEvent(b, binary.LittleEndian, f.Event)
	return b, nil
}

// DecodeEvent canonicalises the record so stale payload from a careless
// writer never reaches the dispatcher.
func DecodeEvent(b []byte) (EventFrame, error) {
	if len(b) < core.EventSize {
		return EventFrame{}, errPayloadShort
	}
	ev := core.GetEvent(b, binary.LittleEndian).Canonical()
	return EventFrame{Event: ev}, expectEnd(b[core.EventSize:])
}

func EncodeState(f StateFrame) ([]byte, error) {
	b := make([]byte, core.TuiStateSize)
	core.PutTuiState(b, binary.LittleEndian, f.State)
	return b, nil
}

func DecodeState(b []byte) (StateFrame, error) {
	if len(b) < core.TuiStateSize {
		return StateFrame{}, errPayloadShort
	}
	return StateFrame{State: core.GetTuiState(b, binary.LittleEndian)}, expectEnd(b[core.TuiStateSize:])
}

const widgetFixedSize = 4 + core.WidgetKindSize + core.RectSize + core.StyleSize

func EncodeWidget(f WidgetFrame) ([]byte, error) {
	buf := make([]byte, widgetFixedSize, widgetFixedSize+2+len(f.Label))
	binary.LittleEndian.PutUint32(buf[0:4], f.ID)
	core.PutWidgetKind(buf[4:8], binary.LittleEndian, f.Kind)
	core.PutRect(buf[8:16], binary.LittleEndian, f.Rect)
	core.PutStyle(buf[16:27], f.Style)
	out := bytes.NewBuffer(buf)
	if err := encodeString(out, f.Label); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func DecodeWidget(b []byte) (WidgetFrame, error) {
	var f WidgetFrame
	if len(b) < widgetFixedSize {
		return f, errPayloadShort
	}
	f.ID = binary.LittleEndian.Uint32(b[0:4])
	f.Kind = core.GetWidgetKind(b[4:8], binary.LittleEndian)
	f.Rect = core.GetRect(b[8:16], binary.LittleEndian)
	f.Style = core.GetStyle(b[16:27])
	label, rest, err := decodeString(b[widgetFixedSize:])
	if err != nil {
		return f, err
	}
	f.Label = label
	return f, expectEnd(rest)
}

func EncodePing(p Ping) ([]byte, error) {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(p.Timestamp))
	return b, nil
}

func DecodePing(b []byte) (Ping, error) {
	var p Ping
	if len(b) < 8 {
		return p, errPayloadShort
	}
	p.Timestamp = int64(binary.LittleEndian.Uint64(b[:8]))
	return p, expectEnd(b[8:])
}

func EncodePong(p Pong) ([]byte, error) {
	return EncodePing(Ping{Timestamp: p.Timestamp})
}

func DecodePong(b []byte) (Pong, error) {
	ping, err := DecodePing(b)
	if err != nil {
		return Pong{}, err
	}
	return Pong{Timestamp: ping.Timestamp}, nil
}

func encodeCodeMessage(code uint16, msg string) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 4+len(msg)))
	if err := binary.Write(buf, binary.LittleEndian, code); err != nil {
		return nil, err
	}
	if err := encodeString(buf, msg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeCodeMessage(b []byte) (uint16, string, error) {
	if len(b) < 2 {
		return 0, "", errPayloadShort
	}
	code := binary.LittleEndian.Uint16(b[:2])
	msg, rest, err := decodeString(b[2:])
	if err != nil {
		return code, "", err
	}
	return code, msg, expectEnd(rest)
}

func EncodeErrorFrame(e ErrorFrame) ([]byte, error) {
	return encodeCodeMessage(e.Code, e.Message)
}

func DecodeErrorFrame(b []byte) (ErrorFrame, error) {
	code, msg, err := decodeCodeMessage(b)
	return ErrorFrame{Code: code, Message: msg}, err
}

func EncodeDisconnectNotice(d DisconnectNotice) ([]byte, error) {
	return encodeCodeMessage(d.ReasonCode, d.Message)
}

func DecodeDisconnectNotice(b []byte) (DisconnectNotice, error) {
	code, msg, err := decodeCodeMessage(b)
	return DisconnectNotice{ReasonCode: code, Message: msg}, err
}

// Decode turns a frame payload into the message value matching t.
func Decode(t MessageType, payload []byte) (interface{}, error) {
	switch t {
	case MsgHello:
		return DecodeHello(payload)
	case MsgWelcome:
		return DecodeWelcome(payload)
	case MsgEvent:
		return DecodeEvent(payload)
	case MsgState:
		return DecodeState(payload)
	case MsgWidget:
		return DecodeWidget(payload)
	case MsgPing:
		return DecodePing(payload)
	case MsgPong:
		return DecodePong(payload)
	case MsgError:
		return DecodeErrorFrame(payload)
	case MsgDisconnect:
		return DecodeDisconnectNotice(payload)
	default:
		return nil, ErrUnknownType
	}
}

// Encode picks the encoder for a message value and reports its type.
func Encode(msg interface{}) (MessageType, []byte, error) {
	var (
		t   MessageType
		b   []byte
		err error
	)
	switch m := msg.(type) {
	case Hello:
		t = MsgHello
		b, err = EncodeHello(m)
	case Welcome:
		t = MsgWelcome
		b, err = EncodeWelcome(m)
	case EventFrame:
		t = MsgEvent
		b, err = EncodeEvent(m)
	case StateFrame:
		t = MsgState
		b, err = EncodeState(m)
	case WidgetFrame:
		t = MsgWidget
		b, err = EncodeWidget(m)
	case Ping:
		t = MsgPing
		b, err = EncodePing(m)
	case Pong:
		t = MsgPong
		b, err = EncodePong(m)
	case ErrorFrame:
		t = MsgError
		b, err = EncodeErrorFrame(m)
	case DisconnectNotice:
		t = MsgDisconnect
		b, err = EncodeDisconnectNotice(m)
	default:
		return 0, nil, ErrUnknownType
	}
	return t, b, err
}

// ErrUnknownType is returned for message types this version cannot handle.
var ErrUnknownType = errors.New("protocol: unknown message type")
