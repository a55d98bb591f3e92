// Copyright © 2025 RAZE contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/logging/logging.go
// Summary: Logger construction shared by the binaries and library packages.
// Usage: Binaries call New once; packages hold a Debug logger that discards
// output until toggled through their SetVerboseLogging function.

package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the process logger.
type Options struct {
	// File, when set, receives all output through a rotating writer. A
	// full-screen UI owns stderr, so the demo always sets it.
	File string
	// MaxSizeMB caps one log file before rotation. Default: 10.
	MaxSizeMB int
	Verbose   bool
	Prefix    string
}

var (
	mu   sync.Mutex
	sink io.Writer = os.Stderr
)

// New builds the process logger. The returned close function flushes and
// closes the log file, if any; it is safe to call when File is empty.
func New(opts Options) (*log.Logger, func() error, error) {
	var (
		out     io.Writer = os.Stderr
		closeFn           = func() error { return nil }
	)
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, nil, err
		}
		size := opts.MaxSizeMB
		if size <= 0 {
			size = 10
		}
		rotating := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    size, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		out = rotating
		closeFn = rotating.Close
	}

	logger := log.NewWithOptions(out, log.Options{
		Prefix:          opts.Prefix,
		ReportTimestamp: true,
	})
	if opts.Verbose {
		logger.SetLevel(log.DebugLevel)
	}
	SetSink(out)
	return logger, closeFn, nil
}

// SetSink changes where enabled debug loggers write.
func SetSink(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	sink = w
}

// Debug returns a debug-level logger that discards output until toggled.
func Debug(prefix string) *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{
		Prefix:          prefix,
		Level:           log.DebugLevel,
		ReportTimestamp: true,
	})
}

// Toggle points l at the current sink when enable is set and discards
// otherwise.
func Toggle(l *log.Logger, enable bool) {
	if !enable {
		l.SetOutput(io.Discard)
		return
	}
	mu.Lock()
	w := sink
	mu.Unlock()
	l.SetOutput(w)
}
