// Copyright © 2025 RAZE contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: abi/abi.go
// Summary: Foreign-language declarations generated from the layout tables.
// Usage: raze-abi gen writes headers for the C, Zig, Rust and Ada components;
// raze-abi check compares hand-maintained copies against the tables.

package abi

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/framegrace/raze/core"
)

// Language names a generator target.
type Language string

const (
	LangC    Language = "c"
	LangZig  Language = "zig"
	LangRust Language = "rust"
	LangAda  Language = "ada"
)

// ErrUnknownLanguage is returned for targets without a generator.
var ErrUnknownLanguage = errors.New("abi: unknown language")

// Languages lists every supported target.
func Languages() []Language {
	return []Language{LangC, LangZig, LangRust, LangAda}
}

// ParseLanguage accepts the target names used on the command line.
func ParseLanguage(name string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "c", "h":
		return LangC, nil
	case "zig":
		return LangZig, nil
	case "rust", "rs":
		return LangRust, nil
	case "ada", "ads":
		return LangAda, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
}

// Extension returns the conventional file extension for generated output.
func (l Language) Extension() string {
	switch l {
	case LangC:
		return ".h"
	case LangZig:
		return ".zig"
	case LangRust:
		return ".rs"
	case LangAda:
		return ".ads"
	}
	return ""
}

// Generate renders the whole contract for lang.
func Generate(lang Language) (string, error) {
	layouts, enums := core.Layouts(), core.Enums()
	var g generator
	switch lang {
	case LangC:
		g = cGen{}
	case LangZig:
		g = zigGen{}
	case LangRust:
		g = rustGen{}
	case LangAda:
		g = adaGen{}
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}
	var sb strings.Builder
	g.header(&sb)
	for _, e := range enums {
		g.enum(&sb, e)
	}
	for _, l := range layouts {
		g.record(&sb, l)
	}
	g.footer(&sb, layouts, enums)
	return sb.String(), nil
}

type generator interface {
	header(sb *strings.Builder)
	enum(sb *strings.Builder, e core.Enum)
	record(sb *strings.Builder, l core.Layout)
	footer(sb *strings.Builder, layouts []core.Layout, enums []core.Enum)
}

func banner(comment string) string {
	return fmt.Sprintf("%s Generated by raze-abi. Do not edit.\n%s Layout fingerprint: %08x\n\n",
		comment, comment, core.Fingerprint())
}

// words splits CamelCase and snake_case identifiers into lower-case words.
// Digits stay attached to the preceding letters, so "F12" is one word.
func words(name string) []string {
	var (
		out []string
		cur []rune
	)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}
	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '_':
			flush()
			continue
		case unicode.IsUpper(r) && i > 0 && !unicode.IsUpper(runes[i-1]) && runes[i-1] != '_':
			flush()
		}
		cur = append(cur, r)
	}
	flush()
	return out
}

func snake(name string) string { return strings.Join(words(name), "_") }

func upperSnake(name string) string { return strings.ToUpper(snake(name)) }

// adaName renders Tui_State style identifiers.
func adaName(name string) string {
	ws := words(name)
	for i, w := range ws {
		ws[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(ws, "_")
}

// normalize folds every naming convention onto one key so symbols from
// different languages can be compared.
func normalize(name string) string {
	n := strings.ToLower(strings.ReplaceAll(name, "_", ""))
	return strings.TrimPrefix(n, "raze")
}

func isPad(f core.Field) bool { return f.Type == core.FieldPad }

func enumByName(enums []core.Enum, name string) (core.Enum, bool) {
	for _, e := range enums {
		if e.Name == name {
			return e, true
		}
	}
	return core.Enum{}, false
}
