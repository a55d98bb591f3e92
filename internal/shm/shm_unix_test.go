//go:build unix

package shm

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/framegrace/raze/core"
)

func TestCreateOpenShareState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.seg")
	owner, err := Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer owner.Close()

	reader, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer reader.Close()

	w, err := owner.State()
	if err != nil {
		t.Fatalf("owner view: %v", err)
	}
	r, err := reader.State()
	if err != nil {
		t.Fatalf("reader view: %v", err)
	}
	if r.Snapshot() != core.NewTuiState() {
		t.Fatalf("fresh segment holds %+v", r.Snapshot())
	}

	w.SetSize(120, 40)
	w.SetRunning(true)
	got := r.Snapshot()
	if got.Width != 120 || got.Height != 40 || !got.Running || got.Version != 2 {
		t.Fatalf("reader did not observe writes: %+v", got)
	}
	if err := owner.Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}
}

func TestOpenRejectsForeignFiles(t *testing.T) {
	dir := t.TempDir()

	short := filepath.Join(dir, "short")
	if err := os.WriteFile(short, []byte("RAZE"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(short); !errors.Is(err, ErrTooSmall) {
		t.Fatalf("expected ErrTooSmall, got %v", err)
	}

	junk := filepath.Join(dir, "junk")
	if err := os.WriteFile(junk, make([]byte, SegmentSize), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(junk); !errors.Is(err, ErrBadMagic) {
		t.Fatalf("expected ErrBadMagic, got %v", err)
	}

	stale := make([]byte, SegmentSize)
	writeHeader(stale)
	core.ByteOrder.PutUint32(stale[4:8], core.Fingerprint()^1)
	old := filepath.Join(dir, "old")
	if err := os.WriteFile(old, stale, 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(old); !errors.Is(err, ErrFingerprint) {
		t.Fatalf("expected ErrFingerprint, got %v", err)
	}
}

func TestClosedSegment(t *testing.T) {
	seg, err := Create(filepath.Join(t.TempDir(), "s"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := seg.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := seg.State(); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if err := seg.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
