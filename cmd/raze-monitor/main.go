// Copyright © 2025 RAZE contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/raze-monitor/main.go
// Summary: Listens for a RAZE component and logs every contract record it mirrors.
// Usage: raze-monitor [-socket /tmp/raze.sock] [-replay session.db]

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/framegrace/raze/config"
	"github.com/framegrace/raze/internal/link"
	"github.com/framegrace/raze/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "Path to raze.json (default: user config dir)")
	socketPath := flag.String("socket", "", "Unix socket path (default: monitor.socket from config)")
	replayPath := flag.String("replay", "", "Print the events and last state recorded in a journal, then exit")
	logFile := flag.String("log", "", "Write to this file instead of stderr")
	verboseLogs := flag.Bool("verbose-logs", false, "Enable frame-level logging")
	flag.Parse()

	if err := run(*configPath, *socketPath, *replayPath, *logFile, *verboseLogs); err != nil {
		fmt.Fprintf(os.Stderr, "raze-monitor: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, socketPath, replayPath, logFile string, verboseLogs bool) error {
	if configPath != "" {
		config.SetPathOverride(configPath)
	}
	cfg := config.System()

	verbose := verboseLogs || cfg.GetBool("log", "verbose", false)
	logger, closeLog, err := logging.New(logging.Options{File: logFile, Verbose: verbose, Prefix: "raze-monitor"})
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()
	link.SetVerboseLogging(verbose)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if replayPath != "" {
		return replay(ctx, replayPath, logger)
	}

	socket := socketPath
	if socket == "" {
		socket = cfg.GetString("monitor", "socket", "")
	}
	if socket == "" {
		socket = config.DataPath("monitor.sock")
	}
	return listen(ctx, socket, logger)
}

// listen serves connections on a unix socket until ctx ends.
func listen(ctx context.Context, socket string, logger *log.Logger) error {
	if err := os.Remove(socket); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove stale socket: %w", err)
	}
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "unix", socket)
	if err != nil {
		return err
	}
	defer os.Remove(socket)
	logger.Info("listening", "socket", socket)

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer conn.Close()
			if err := serve(ctx, conn, logger); err != nil {
				logger.Warn("session ended", "err", err)
			}
		}()
	}
}
