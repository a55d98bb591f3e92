// Copyright © 2025 RAZE contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: abi/check.go
// Summary: Detects drift between foreign declarations and the layout tables.
// Usage: Scans a C, Zig, Rust or Ada source for enum values, constants and
// size assertions, and reports every value that disagrees with core.

package abi

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/framegrace/raze/core"
)

// ErrNoSymbols means the source declared nothing recognisable for the
// language, usually because the wrong language was chosen.
var ErrNoSymbols = errors.New("abi: no contract symbols found")

// Drift is one value that differs from the tables.
type Drift struct {
	Symbol string
	Want   uint64
	Got    uint64
	// Size is set when the value is a record or enum size in bytes.
	Size bool
}

func (d Drift) String() string {
	what := "value"
	if d.Size {
		what = "size"
	}
	return fmt.Sprintf("%s: %s is %d, want %d", d.Symbol, what, d.Got, d.Want)
}

// Report summarises one Check run.
type Report struct {
	Language Language
	Matched  int
	Drift    []Drift
	// Unknown lists value symbols the tables do not define, such as a
	// variant appended on the foreign side only.
	Unknown []string
}

// OK reports whether the source agrees with the tables.
func (r Report) OK() bool {
	return len(r.Drift) == 0 && len(r.Unknown) == 0
}

const literal = `(16#[0-9A-Fa-f_]+#|0[xX][0-9A-Fa-f_]+|[0-9][0-9_]*)`

// scanner extracts symbols for one language. Block patterns capture an
// enum name and its body; the body is split with entry. Flat patterns
// capture a fully prefixed name and its value.
type scanner struct {
	blocks []*regexp.Regexp
	// blockNameLast is set when the block pattern captures body then name.
	blockNameLast bool
	// blockPrefixed is set when entries already carry the enum prefix.
	blockPrefixed bool
	entry         *regexp.Regexp
	flat          []*regexp.Regexp
	sizes         *regexp.Regexp
	sizeInBits    bool
}

var scanners = map[Language]scanner{
	LangC: {
		blocks:        []*regexp.Regexp{regexp.MustCompile(`typedef\s+enum\s*\w*\s*\{([^}]*)\}\s*(\w+)\s*;`)},
		blockNameLast: true,
		blockPrefixed: true,
		entry:         regexp.MustCompile(`(\w+)\s*=\s*` + literal),
		flat:          []*regexp.Regexp{regexp.MustCompile(`#define[ \t]+(\w+)[ \t]+\(?` + literal)},
		sizes:         regexp.MustCompile(`sizeof\s*\(\s*(\w+)\s*\)\s*==\s*` + literal),
	},
	LangZig: {
		blocks: []*regexp.Regexp{regexp.MustCompile(`const\s+(\w+)\s*=\s*enum\s*\([^)]*\)\s*\{([^}]*)\}`)},
		entry:  regexp.MustCompile(`(\w+)\s*=\s*` + literal),
		flat:   []*regexp.Regexp{regexp.MustCompile(`const\s+(\w+)\s*:\s*u\d+\s*=\s*` + literal)},
		sizes:  regexp.MustCompile(`@sizeOf\(\s*(\w+)\s*\)\s*==\s*` + literal),
	},
	LangRust: {
		blocks: []*regexp.Regexp{regexp.MustCompile(`enum\s+(\w+)\s*\{([^}]*)\}`)},
		entry:  regexp.MustCompile(`(\w+)\s*=\s*` + literal),
		flat:   []*regexp.Regexp{regexp.MustCompile(`const\s+(\w+)\s*:\s*u\d+\s*=\s*` + literal)},
		sizes:  regexp.MustCompile(`size_of::<\s*(\w+)\s*>\(\)\s*==\s*` + literal),
	},
	LangAda: {
		blocks:     []*regexp.Regexp{regexp.MustCompile(`(?i)for\s+(\w+)\s+use\s*\(([^)]*)\)\s*;`)},
		entry:      regexp.MustCompile(`(\w+)\s*=>\s*` + literal),
		flat:       []*regexp.Regexp{regexp.MustCompile(`(?i)(\w+)\s*:\s*constant\s*:=\s*` + literal)},
		sizes:      regexp.MustCompile(`(?i)for\s+(\w+)'Size\s+use\s+` + literal),
		sizeInBits: true,
	},
}

func parseLiteral(s string) (uint64, error) {
	s = strings.ReplaceAll(s, "_", "")
	switch {
	case strings.HasPrefix(s, "16#"):
		return strconv.ParseUint(strings.Trim(s[3:], "#"), 16, 64)
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		return strconv.ParseUint(s[2:], 16, 64)
	}
	return strconv.ParseUint(s, 10, 64)
}

type symbols struct {
	values map[string]uint64
	sizes  map[string]uint64
}

func (sc scanner) scan(src string) symbols {
	out := symbols{values: map[string]uint64{}, sizes: map[string]uint64{}}
	for _, re := range sc.blocks {
		for _, m := range re.FindAllStringSubmatch(src, -1) {
			name, body := m[1], m[2]
			if sc.blockNameLast {
				name, body = m[2], m[1]
			}
			for _, e := range sc.entry.FindAllStringSubmatch(body, -1) {
				v, err := parseLiteral(e[2])
				if err != nil {
					continue
				}
				key := normalize(e[1])
				if !sc.blockPrefixed {
					key = normalize(name) + key
				}
				out.values[key] = v
			}
		}
	}
	for _, re := range sc.flat {
		for _, m := range re.FindAllStringSubmatch(src, -1) {
			if v, err := parseLiteral(m[2]); err == nil {
				out.values[normalize(m[1])] = v
			}
		}
	}
	for _, m := range sc.sizes.FindAllStringSubmatch(src, -1) {
		v, err := parseLiteral(m[2])
		if err != nil {
			continue
		}
		if sc.sizeInBits {
			v /= 8
		}
		out.sizes[normalize(m[1])] = v
	}
	return out
}

// expected builds the reference symbols from the tables.
func expected() symbols {
	out := symbols{values: map[string]uint64{}, sizes: map[string]uint64{}}
	for _, e := range core.Enums() {
		for _, v := range e.Variants {
			out.values[normalize(e.Name+v.Name)] = uint64(v.Value)
		}
		if e.Kind == core.EnumDiscriminant {
			out.sizes[normalize(e.Name)] = uint64(e.Size)
		}
	}
	for _, l := range core.Layouts() {
		out.sizes[normalize(l.Name)] = uint64(l.Size)
	}
	return out
}

// Check compares src, written in lang, against the tables. Symbols the
// source omits are not reported; a partial binding is fine as long as what
// it declares is right.
func Check(lang Language, src []byte) (Report, error) {
	sc, ok := scanners[lang]
	if !ok {
		return Report{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}
	found := sc.scan(string(src))
	want := expected()
	rep := Report{Language: lang}

	for name, got := range found.values {
		w, ok := want.values[name]
		if !ok {
			rep.Unknown = append(rep.Unknown, name)
			continue
		}
		rep.Matched++
		if got != w {
			rep.Drift = append(rep.Drift, Drift{Symbol: name, Want: w, Got: got})
		}
	}
	for name, got := range found.sizes {
		w, ok := want.sizes[name]
		if !ok {
			continue
		}
		rep.Matched++
		if got != w {
			rep.Drift = append(rep.Drift, Drift{Symbol: name, Want: w, Got: got, Size: true})
		}
	}
	if rep.Matched == 0 && len(rep.Unknown) == 0 {
		return rep, ErrNoSymbols
	}
	sort.Slice(rep.Drift, func(i, j int) bool { return rep.Drift[i].Symbol < rep.Drift[j].Symbol })
	sort.Strings(rep.Unknown)
	return rep, nil
}
