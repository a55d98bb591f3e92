package core

import (
	"errors"
	"testing"
)

func TestCanonicalEvents(t *testing.T) {
	none := NoneEvent()
	if none.Kind != EventNone || none.KeyCode != 0 || none.Modifiers != 0 || none.MouseX != 0 || none.MouseY != 0 {
		t.Fatalf("none event has payload: %#v", none)
	}
	quit := QuitEvent()
	if quit.Kind != EventQuit || quit.KeyCode != 0 || quit.Modifiers != 0 || quit.MouseX != 0 || quit.MouseY != 0 {
		t.Fatalf("quit event has payload: %#v", quit)
	}
	if none != (Event{}) {
		t.Fatalf("none event differs from zero value")
	}
}

func TestEventConstructorsZeroInactiveFields(t *testing.T) {
	key := KeyEvent(KeyUp, ModShift|ModCtrl)
	if key.MouseX != 0 || key.MouseY != 0 {
		t.Fatalf("key event carries mouse data: %#v", key)
	}
	mouse := MouseEvent(10, 20, ModAlt)
	if mouse.KeyCode != 0 || mouse.Kind != EventMouse || mouse.MouseX != 10 || mouse.MouseY != 20 {
		t.Fatalf("unexpected mouse event: %#v", mouse)
	}
	if ResizeEvent() != (Event{Kind: EventResize}) {
		t.Fatalf("resize event carries payload")
	}
}

func TestEventCanonical(t *testing.T) {
	dirty := Event{Kind: EventKey, KeyCode: 'x', Modifiers: ModCtrl, MouseX: 9, MouseY: 9}
	if got := dirty.Canonical(); got != KeyEvent('x', ModCtrl) {
		t.Fatalf("canonical key: %#v", got)
	}
	dirty.Kind = EventQuit
	if got := dirty.Canonical(); got != QuitEvent() {
		t.Fatalf("canonical quit: %#v", got)
	}
	dirty.Kind = EventKind(42)
	if got := dirty.Canonical(); got != (Event{Kind: 42}) {
		t.Fatalf("canonical unknown: %#v", got)
	}
}

func TestEventRune(t *testing.T) {
	if r, ok := RuneEvent('é', 0).Rune(); !ok || r != 'é' {
		t.Fatalf("rune lost: %q %v", r, ok)
	}
	if _, ok := KeyEvent(KeyEnter, 0).Rune(); ok {
		t.Fatalf("named key reported as rune")
	}
	if _, ok := MouseEvent(1, 1, 0).Rune(); ok {
		t.Fatalf("mouse event reported as rune")
	}
	if !KeyEvent('a', ModCtrl|ModShift).Has(ModCtrl) {
		t.Fatalf("modifier lookup failed")
	}
}

func TestKeyNames(t *testing.T) {
	keys := NamedKeys()
	if len(keys) != 27 || keys[0] != KeySpecialBase || keys[len(keys)-1] != KeyF12 {
		t.Fatalf("unexpected named keys: %v", keys)
	}
	if KeyName(KeyF5) != "F5" || KeyName(KeyEscape) != "Escape" {
		t.Fatalf("bad names: %s %s", KeyName(KeyF5), KeyName(KeyEscape))
	}
	if IsNamedKey('a') || IsNamedKey(KeyF12+1) {
		t.Fatalf("IsNamedKey accepted out-of-range code")
	}
}

func TestDiscriminantValues(t *testing.T) {
	events := map[EventKind]uint32{EventNone: 0, EventKey: 1, EventMouse: 2, EventResize: 3, EventQuit: 4}
	for k, v := range events {
		if uint32(k) != v {
			t.Fatalf("%s = %d, want %d", k, uint32(k), v)
		}
	}
	widgets := map[WidgetKind]uint32{WidgetNone: 0, WidgetLabel: 1, WidgetInput: 2, WidgetButton: 3, WidgetPanel: 4, WidgetList: 5}
	for k, v := range widgets {
		if uint32(k) != v {
			t.Fatalf("%s = %d, want %d", k, uint32(k), v)
		}
	}
	if EventKind(9).String() != "EventKind(9)" || WidgetKind(6).Known() {
		t.Fatalf("unknown discriminants mishandled")
	}
}

func TestRectVerbatim(t *testing.T) {
	r := NewRect(1, 2, 3, 4)
	if r.X != 1 || r.Y != 2 || r.Width != 3 || r.Height != 4 {
		t.Fatalf("rect fields changed: %+v", r)
	}
	if (Rect{}) != NewRect(0, 0, 0, 0) || !(Rect{}).Empty() {
		t.Fatalf("zero rect mismatch")
	}
	edge := NewRect(65530, 0, 10, 1)
	if !edge.Contains(65535, 0) || edge.Contains(65529, 0) {
		t.Fatalf("contains overflowed at the edge")
	}
	if NewRect(0, 0, 0, 5).Contains(0, 0) {
		t.Fatalf("empty rect contains a cell")
	}
}

func TestColorConstructors(t *testing.T) {
	if c := DefaultColor(); c != (Color{}) || c.Mode != ColorModeDefault {
		t.Fatalf("default color: %+v", c)
	}
	for i := 0; i < 256; i++ {
		c := ANSIColor(uint8(i))
		if c.Mode != ColorModeIndexed || c.R != uint8(i) || c.G != 0 || c.B != 0 {
			t.Fatalf("ansi(%d) = %+v", i, c)
		}
	}
	for _, rgb := range [][3]uint8{{0, 0, 0}, {255, 128, 1}, {12, 34, 56}} {
		c := RGBColor(rgb[0], rgb[1], rgb[2])
		if c.Mode != ColorModeRGB || c.R != rgb[0] || c.G != rgb[1] || c.B != rgb[2] {
			t.Fatalf("rgb%v = %+v", rgb, c)
		}
	}
}

func TestColorResolve(t *testing.T) {
	if got := (Color{R: 1, G: 2, B: 3, Mode: 7}).Resolve(); got != DefaultColor() {
		t.Fatalf("unknown mode should render as default, got %+v", got)
	}
	if got := (Color{R: 5, G: 6, B: 7, Mode: ColorModeIndexed}).Resolve(); got != ANSIColor(5) {
		t.Fatalf("indexed resolve: %+v", got)
	}
	if !(Color{Mode: 9}).IsDefault() || RGBColor(1, 1, 1).IsDefault() {
		t.Fatalf("IsDefault mismatch")
	}
	if RGBColor(0x12, 0x34, 0x56).Hex() != 0x123456 {
		t.Fatalf("hex packing wrong")
	}
}

func TestParseColor(t *testing.T) {
	cases := map[string]Color{
		"":        DefaultColor(),
		"default": DefaultColor(),
		"Default": DefaultColor(),
		"0":       ANSIColor(0),
		"208":     ANSIColor(208),
		"#ff8000": RGBColor(0xff, 0x80, 0x00),
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		if err != nil || got != want {
			t.Fatalf("ParseColor(%q) = %+v, %v; want %+v", in, got, err, want)
		}
		again, err := ParseColor(got.String())
		if err != nil || again != got {
			t.Fatalf("String round trip for %q: %+v %v", in, again, err)
		}
	}
	for _, bad := range []string{"256", "#fff", "#gggggg", "red", "-1"} {
		if _, err := ParseColor(bad); !errors.Is(err, ErrInvalidColor) {
			t.Fatalf("ParseColor(%q) err = %v", bad, err)
		}
	}
}

func TestStyleDefaultsAndBuilders(t *testing.T) {
	if DefaultStyle() != (Style{}) {
		t.Fatalf("default style differs from zero value")
	}
	s := DefaultStyle().WithFg(ANSIColor(3)).WithBg(RGBColor(1, 2, 3)).WithBold(true).WithUnderline(true)
	if s.Fg != ANSIColor(3) || s.Bg != RGBColor(1, 2, 3) || !s.Bold || s.Italic || !s.Underline {
		t.Fatalf("builders lost data: %+v", s)
	}
	if DefaultStyle().Bold {
		t.Fatalf("builders mutated the receiver")
	}
}
