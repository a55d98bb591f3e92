//go:build !unix

package shm

import "github.com/framegrace/raze/core"

// Segment is unavailable on this platform.
type Segment struct{}

func Create(path string) (*Segment, error) { return nil, ErrUnsupported }
func Open(path string) (*Segment, error)   { return nil, ErrUnsupported }

func (s *Segment) State() (core.StateView, error) { return nil, ErrUnsupported }
func (s *Segment) Sync() error                    { return ErrUnsupported }
func (s *Segment) Close() error                   { return nil }
