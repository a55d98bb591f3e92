// Copyright © 2025 RAZE contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/types.go
// Summary: Typed getters over the JSON sections, including contract colours.

package config

import (
	"encoding/json"
	"strconv"

	"github.com/framegrace/raze/core"
)

// Section returns the named section or nil if missing. The empty name
// addresses the top level.
func (c Config) Section(name string) Section {
	if c == nil {
		return nil
	}
	if name == "" {
		return Section(c)
	}
	switch v := c[name].(type) {
	case Section:
		return v
	case map[string]interface{}:
		return Section(v)
	}
	return nil
}

// RegisterDefaults fills keys missing from a section. Existing values win.
func (c Config) RegisterDefaults(name string, defaults Section) {
	if c == nil {
		return
	}
	for key, value := range defaults {
		if _, ok := c.lookup(name, key); !ok {
			c.Set(name, key, value)
		}
	}
}

// Set stores value under section/key, creating the section when needed.
func (c Config) Set(name, key string, value interface{}) {
	if c == nil {
		return
	}
	section := c.Section(name)
	if section == nil {
		section = make(Section)
		c[name] = section
	}
	section[key] = value
}

func (c Config) lookup(name, key string) (interface{}, bool) {
	section := c.Section(name)
	if section == nil {
		return nil, false
	}
	v, ok := section[key]
	return v, ok
}

// scalarText renders a JSON scalar so string and numeric spellings parse
// the same way.
func scalarText(v interface{}) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	}
	return "", false
}

func (c Config) GetString(name, key, def string) string {
	if v, ok := c.lookup(name, key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// GetInt accepts JSON numbers and numeric strings. Fractions truncate.
func (c Config) GetInt(name, key string, def int) int {
	v, ok := c.lookup(name, key)
	if !ok {
		return def
	}
	text, ok := scalarText(v)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return def
	}
	return int(f)
}

// GetBool accepts booleans, strconv.ParseBool spellings and numbers
// (nonzero is true).
func (c Config) GetBool(name, key string, def bool) bool {
	v, ok := c.lookup(name, key)
	if !ok {
		return def
	}
	if b, ok := v.(bool); ok {
		return b
	}
	text, ok := scalarText(v)
	if !ok {
		return def
	}
	if b, err := strconv.ParseBool(text); err == nil {
		return b
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f != 0
	}
	return def
}

// GetColor parses "default", a palette index or "#rrggbb". JSON numbers
// are palette indices. Invalid values fall back to def.
func (c Config) GetColor(name, key string, def core.Color) core.Color {
	v, ok := c.lookup(name, key)
	if !ok {
		return def
	}
	text, ok := scalarText(v)
	if !ok {
		return def
	}
	col, err := core.ParseColor(text)
	if err != nil {
		debugLog.Warn("invalid colour", "section", name, "key", key, "value", text, "err", err)
		return def
	}
	return col
}
