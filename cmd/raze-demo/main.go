// Copyright © 2025 RAZE contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/raze-demo/main.go
// Summary: Interactive demo that owns a TuiState and redraws on version change.
// Usage: raze-demo [-monitor /tmp/raze.sock] [-shm /dev/shm/raze] [-journal session.db]
//        raze-demo -replay session.db [-monitor /tmp/raze.sock]
// Notes: Logs go to a rotating file because the screen owns the terminal.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/raze/config"
	"github.com/framegrace/raze/core"
	"github.com/framegrace/raze/internal/journal"
	"github.com/framegrace/raze/internal/link"
	"github.com/framegrace/raze/internal/logging"
	"github.com/framegrace/raze/tcelldriver"
)

type options struct {
	configPath  string
	socket      string
	shmPath     string
	journalPath string
	replayPath  string
	logFile     string
	verbose     bool
}

func main() {
	tcell.SetEncodingFallback(tcell.EncodingFallbackASCII)

	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to raze.json (default: user config dir)")
	flag.StringVar(&opts.socket, "monitor", "", "Unix socket of a raze-monitor to mirror frames to")
	flag.StringVar(&opts.shmPath, "shm", "", "Publish the state in a shared segment at this path")
	flag.StringVar(&opts.journalPath, "journal", "", "Record events and states in this SQLite file")
	flag.StringVar(&opts.replayPath, "replay", "", "Replay the events of a journal headless, then exit")
	flag.StringVar(&opts.logFile, "log", "", "Log file (default: user cache dir)")
	flag.BoolVar(&opts.verbose, "verbose-logs", false, "Enable verbose logging")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "raze-demo: %v\n", err)
		os.Exit(1)
	}
}

// run wires config, logging and the mirror around one session. Every
// resource it opens is released before it returns.
func run(opts options) error {
	if opts.configPath != "" {
		config.SetPathOverride(opts.configPath)
	}
	cfg := config.System()

	verbose := opts.verbose || cfg.GetBool("log", "verbose", false)
	file := firstNonEmpty(opts.logFile, cfg.GetString("log", "file", ""), config.DataPath("raze-demo.log"))
	logger, closeLog, err := logging.New(logging.Options{File: file, Verbose: verbose, Prefix: "raze-demo"})
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()
	if err := config.Err(); err != nil {
		logger.Warn("config", "err", err)
	}
	link.SetVerboseLogging(verbose)
	journal.SetVerboseLogging(verbose)
	tcelldriver.SetVerboseLogging(verbose)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := &mirror{logger: logger}
	defer m.close()
	if opts.shmPath != "" {
		if err := m.attachSegment(opts.shmPath); err != nil {
			logger.Error("shared segment", "path", opts.shmPath, "err", err)
		}
	}
	// A replay never records into the configured journal.
	if path := opts.journalPath; path != "" || (opts.replayPath == "" && cfg.GetBool("journal", "enabled", false)) {
		path = firstNonEmpty(path, cfg.GetString("journal", "path", ""), config.DataPath("journal.db"))
		if err := m.attachJournal(path); err != nil {
			logger.Error("journal", "path", path, "err", err)
		}
	}
	if s := firstNonEmpty(opts.socket, cfg.GetString("monitor", "socket", "")); s != "" {
		if err := m.attachMonitor(ctx, s); err != nil {
			logger.Error("monitor", "socket", s, "err", err)
		}
	}

	var (
		screen tcell.Screen
		source poller
	)
	if opts.replayPath != "" {
		src, err := loadReplay(ctx, opts.replayPath)
		if err != nil {
			return fmt.Errorf("load replay: %w", err)
		}
		source = src
		screen = tcell.NewSimulationScreen("")
	} else {
		if !tcelldriver.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("needs a terminal; use -replay for headless runs")
		}
		screen, err = tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create screen: %w", err)
		}
	}
	drv := tcelldriver.New(screen)
	if source == nil {
		source = drv
	}
	app := newDemoApp(themeFrom(cfg))

	state, err := drv.Init()
	if err != nil {
		return fmt.Errorf("initialise screen: %w", err)
	}
	if sim, ok := screen.(tcell.SimulationScreen); ok {
		sim.SetSize(cfg.GetInt("screen", "width", int(core.DefaultWidth)), cfg.GetInt("screen", "height", int(core.DefaultHeight)))
		w, h := drv.Size()
		state.SetSize(w, h)
	}
	final := loop(ctx, drv, source, state, app, m)
	drv.Fini()
	if opts.replayPath != "" {
		fmt.Printf("replayed %s: version %d, %dx%d, %d lines submitted\n",
			opts.replayPath, final.Version, final.Width, final.Height, len(app.history))
	}
	logger.Info("exit", "version", final.Version, "width", final.Width, "height", final.Height)
	return nil
}

// loop drives the event loop on an initialised driver until the state stops
// running and returns the final state. Events come from events, which is
// usually drv itself. Frames are drawn only when the version moved.
func loop(ctx context.Context, drv *tcelldriver.Driver, events poller, state core.TuiState, app *demoApp, m *mirror) core.TuiState {
	state.SetRunning(true)

	var gate core.RedrawGate
	for state.Running {
		if gate.Due(&state) {
			app.draw(drv.Screen(), state)
			drv.Show()
			gate.Mark(&state)
			m.state(state, app.frames())
		}

		ev := events.Poll(ctx)
		m.event(ev, state.Version)
		drv.Apply(&state, ev)
		changed, quit := app.handle(ev)
		if changed {
			state.Touch()
		}
		if quit {
			state.SetRunning(false)
		}
	}
	m.state(state, nil)
	return state
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
