//go:build unix

package shm

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/framegrace/raze/core"
)

// Segment is a mapped state segment. The mapping stays valid until Close.
type Segment struct {
	mu   sync.Mutex
	file *os.File
	data []byte
}

// Create makes (or truncates) path, stamps a fresh header and stores the
// default state.
func Create(path string) (*Segment, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return nil, fmt.Errorf("shm: create %s: %w", path, err)
	}
	if err := f.Truncate(SegmentSize); err != nil {
		f.Close()
		return nil, fmt.Errorf("shm: size %s: %w", path, err)
	}
	seg, err := mapFile(f)
	if err != nil {
		return nil, err
	}
	writeHeader(seg.data)
	view, _ := core.NewStateView(seg.data[headerSize:])
	view.Store(core.NewTuiState())
	return seg, nil
}

// Open maps an existing segment after validating its header.
func Open(path string) (*Segment, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("shm: open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.Size() < SegmentSize {
		f.Close()
		return nil, ErrTooSmall
	}
	seg, err := mapFile(f)
	if err != nil {
		return nil, err
	}
	if err := checkHeader(seg.data); err != nil {
		seg.Close()
		return nil, err
	}
	return seg, nil
}

func mapFile(f *os.File) (*Segment, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, SegmentSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("shm: mmap: %w", err)
	}
	return &Segment{file: f, data: data}, nil
}

// State returns an in-place view of the shared record.
func (s *Segment) State() (core.StateView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, ErrClosed
	}
	return core.NewStateView(s.data[headerSize:])
}

// Sync flushes the mapping to the backing file.
func (s *Segment) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return ErrClosed
	}
	return unix.Msync(s.data, unix.MS_SYNC)
}

// Close unmaps the segment. Views obtained from State must not be used
// afterwards.
func (s *Segment) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil
	}
	err := unix.Munmap(s.data)
	s.data = nil
	if cerr := s.file.Close(); err == nil {
		err = cerr
	}
	return err
}
