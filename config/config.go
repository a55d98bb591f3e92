// Copyright © 2025 RAZE contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: System configuration store for the raze binaries (raze.json).

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/framegrace/raze/internal/logging"
)

const systemConfigName = "raze.json"

// Config stores configuration sections as JSON-compatible data.
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section.
type Section map[string]interface{}

var (
	mu           sync.RWMutex
	once         sync.Once
	system       Config
	loadErr      error
	pathOverride string
)

var debugLog = logging.Debug("config")

// SetVerboseLogging toggles load/save tracing.
func SetVerboseLogging(enable bool) {
	logging.Toggle(debugLog, enable)
}

// SetPathOverride points the store at an explicit file (the --config flag).
// It must be called before the first access; later calls take effect on
// the next Reload.
func SetPathOverride(path string) {
	mu.Lock()
	defer mu.Unlock()
	pathOverride = path
}

// Err returns the most recent load error.
func Err() error {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return loadErr
}

// System returns the loaded configuration with defaults applied.
func System() Config {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return system
}

// Path reports the file the store reads and writes.
func Path() (string, error) {
	mu.RLock()
	defer mu.RUnlock()
	return systemConfigPath()
}

// Reload re-reads the configuration file.
func Reload() error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	loadErr = loadSystemLocked()
	return loadErr
}

// SaveSystem persists the current configuration.
func SaveSystem() error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	path, err := systemConfigPath()
	if err != nil {
		return err
	}
	return writeConfig(path, system)
}

// SetSystem replaces the in-memory configuration. Defaults are applied to
// the copy so getters keep working on partial input.
func SetSystem(cfg Config) {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	system = Clone(cfg)
	if system == nil {
		system = make(Config)
	}
	applySystemDefaults(system)
}

// Clone returns a copy of cfg with every section copied one level deep.
func Clone(cfg Config) Config {
	if cfg == nil {
		return nil
	}
	out := make(Config, len(cfg))
	for name, raw := range cfg {
		var src map[string]interface{}
		switch v := raw.(type) {
		case Section:
			src = v
		case map[string]interface{}:
			src = v
		default:
			out[name] = v
			continue
		}
		sec := make(Section, len(src))
		for k, val := range src {
			sec[k] = val
		}
		out[name] = sec
	}
	return out
}

func initStore() {
	mu.Lock()
	defer mu.Unlock()
	system = make(Config)
	loadErr = loadSystemLocked()
}

// loadSystemLocked reads the file, applies defaults and writes the result
// back when the file did not exist yet, so users get a template to edit.
func loadSystemLocked() error {
	path, err := systemConfigPath()
	if err != nil {
		debugLog.Warn("cannot resolve config path", "err", err)
		system = make(Config)
		applySystemDefaults(system)
		return err
	}

	cfg, exists, readErr := readConfig(path)
	if readErr != nil {
		debugLog.Warn("cannot read config", "path", path, "err", readErr)
	}
	if cfg == nil {
		cfg = make(Config)
	}
	applySystemDefaults(cfg)

	if !exists {
		if err := writeConfig(path, cfg); err != nil {
			debugLog.Warn("cannot write default config", "path", path, "err", err)
			if readErr == nil {
				readErr = err
			}
		}
	}
	system = cfg
	if readErr == nil {
		debugLog.Debug("loaded", "path", path, "created", !exists)
	}
	return readErr
}

func readConfig(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

func writeConfig(path string, cfg Config) error {
	if cfg == nil {
		cfg = make(Config)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
