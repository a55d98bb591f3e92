package tcelldriver

import (
	"os"
	"testing"

	"github.com/creack/pty"

	"github.com/framegrace/raze/core"
)

func TestHostSizeFallsBackOffTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "notty")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	w, h := HostSize(int(f.Fd()))
	if w != core.DefaultWidth || h != core.DefaultHeight {
		t.Fatalf("expected default size, got %dx%d", w, h)
	}
	if IsTerminal(int(f.Fd())) {
		t.Fatalf("regular file reported as terminal")
	}
}

func TestHostSizeReadsPty(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: 33, Cols: 101}); err != nil {
		t.Skipf("cannot size pty: %v", err)
	}
	w, h := HostSize(int(tty.Fd()))
	if w != 101 || h != 33 {
		t.Fatalf("expected 101x33, got %dx%d", w, h)
	}
}
