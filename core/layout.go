// Copyright © 2025 RAZE contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: core/layout.go
// Summary: Pinned binary layout of every contract record.
// Usage: Descriptor tables drive the abi generators; Put*/Get* pack records
// for shared memory (native order) and the wire (little-endian).
// Notes: Any change here breaks foreign components silently. Append only.

package core

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"strings"
)

// Record sizes in bytes, including trailing padding.
const (
	TuiStateSize   = 16
	EventSize      = 16
	EventKindSize  = 4
	WidgetKindSize = 4
	RectSize       = 8
	ColorSize      = 4
	StyleSize      = 11
)

// ByteOrder is the order used for records in shared memory. Records never
// cross machines through memory, so the host order is the contract.
var ByteOrder binary.ByteOrder = binary.NativeEndian

// FieldType is the storage class of a record field.
type FieldType uint8

const (
	FieldU8 FieldType = iota + 1
	FieldU16
	FieldU32
	FieldU64
	FieldBool
	FieldEnum
	FieldRecord
	FieldPad
)

var fieldTypeNames = map[FieldType]string{
	FieldU8:     "u8",
	FieldU16:    "u16",
	FieldU32:    "u32",
	FieldU64:    "u64",
	FieldBool:   "bool",
	FieldEnum:   "enum",
	FieldRecord: "record",
	FieldPad:    "pad",
}

func (t FieldType) String() string {
	if name, ok := fieldTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("FieldType(%d)", uint8(t))
}

// Field describes one member of a record. Ref names the enum or record a
// FieldEnum/FieldRecord member refers to; for plain integers it may name a
// constant set documenting the values.
type Field struct {
	Name   string
	Offset int
	Size   int
	Type   FieldType
	Ref    string
}

// Layout describes one record.
type Layout struct {
	Name   string
	Size   int
	Align  int
	Fields []Field
}

// Field returns the named field.
func (l Layout) Field(name string) (Field, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// EnumKind says how an enum is stored.
type EnumKind uint8

const (
	// EnumDiscriminant is a C-int sized tag stored in a record field.
	EnumDiscriminant EnumKind = iota + 1
	// EnumConstants is a set of named values for a plain integer field.
	EnumConstants
	// EnumFlags is a set of bit flags for a plain integer field.
	EnumFlags
)

// Variant is one named value of an enum.
type Variant struct {
	Name  string
	Value uint32
}

// Enum describes a set of pinned numeric values.
type Enum struct {
	Name     string
	Kind     EnumKind
	Size     int
	Variants []Variant
}

var layouts = []Layout{
	{
		Name: "TuiState", Size: TuiStateSize, Align: 8,
		Fields: []Field{
			{Name: "width", Offset: 0, Size: 2, Type: FieldU16},
			{Name: "height", Offset: 2, Size: 2, Type: FieldU16},
			{Name: "running", Offset: 4, Size: 1, Type: FieldBool},
			{Name: "_pad0", Offset: 5, Size: 3, Type: FieldPad},
			{Name: "version", Offset: 8, Size: 8, Type: FieldU64},
		},
	},
	{
		Name: "Event", Size: EventSize, Align: 4,
		Fields: []Field{
			{Name: "kind", Offset: 0, Size: 4, Type: FieldEnum, Ref: "EventKind"},
			{Name: "key_code", Offset: 4, Size: 4, Type: FieldU32, Ref: "Key"},
			{Name: "modifiers", Offset: 8, Size: 1, Type: FieldU8, Ref: "Modifier"},
			{Name: "_pad0", Offset: 9, Size: 1, Type: FieldPad},
			{Name: "mouse_x", Offset: 10, Size: 2, Type: FieldU16},
			{Name: "mouse_y", Offset: 12, Size: 2, Type: FieldU16},
			{Name: "_pad1", Offset: 14, Size: 2, Type: FieldPad},
		},
	},
	{
		Name: "Rect", Size: RectSize, Align: 2,
		Fields: []Field{
			{Name: "x", Offset: 0, Size: 2, Type: FieldU16},
			{Name: "y", Offset: 2, Size: 2, Type: FieldU16},
			{Name: "width", Offset: 4, Size: 2, Type: FieldU16},
			{Name: "height", Offset: 6, Size: 2, Type: FieldU16},
		},
	},
	{
		Name: "Color", Size: ColorSize, Align: 1,
		Fields: []Field{
			{Name: "r", Offset: 0, Size: 1, Type: FieldU8},
			{Name: "g", Offset: 1, Size: 1, Type: FieldU8},
			{Name: "b", Offset: 2, Size: 1, Type: FieldU8},
			{Name: "mode", Offset: 3, Size: 1, Type: FieldU8, Ref: "ColorMode"},
		},
	},
	{
		Name: "Style", Size: StyleSize, Align: 1,
		Fields: []Field{
			{Name: "fg", Offset: 0, Size: ColorSize, Type: FieldRecord, Ref: "Color"},
			{Name: "bg", Offset: 4, Size: ColorSize, Type: FieldRecord, Ref: "Color"},
			{Name: "bold", Offset: 8, Size: 1, Type: FieldBool},
			{Name: "italic", Offset: 9, Size: 1, Type: FieldBool},
			{Name: "underline", Offset: 10, Size: 1, Type: FieldBool},
		},
	},
}

func buildEnums() []Enum {
	keys := make([]Variant, 0, len(keyNames))
	for i, name := range keyNames {
		keys = append(keys, Variant{Name: name, Value: KeySpecialBase + uint32(i)})
	}
	return []Enum{
		{
			Name: "EventKind", Kind: EnumDiscriminant, Size: EventKindSize,
			Variants: []Variant{
				{"None", uint32(EventNone)},
				{"Key", uint32(EventKey)},
				{"Mouse", uint32(EventMouse)},
				{"Resize", uint32(EventResize)},
				{"Quit", uint32(EventQuit)},
			},
		},
		{
			Name: "WidgetKind", Kind: EnumDiscriminant, Size: WidgetKindSize,
			Variants: []Variant{
				{"None", uint32(WidgetNone)},
				{"Label", uint32(WidgetLabel)},
				{"Input", uint32(WidgetInput)},
				{"Button", uint32(WidgetButton)},
				{"Panel", uint32(WidgetPanel)},
				{"List", uint32(WidgetList)},
			},
		},
		{
			Name: "ColorMode", Kind: EnumConstants, Size: 1,
			Variants: []Variant{
				{"Default", uint32(ColorModeDefault)},
				{"Indexed", uint32(ColorModeIndexed)},
				{"Rgb", uint32(ColorModeRGB)},
			},
		},
		{
			Name: "Modifier", Kind: EnumFlags, Size: 1,
			Variants: []Variant{
				{"Shift", uint32(ModShift)},
				{"Ctrl", uint32(ModCtrl)},
				{"Alt", uint32(ModAlt)},
				{"Meta", uint32(ModMeta)},
			},
		},
		{Name: "Key", Kind: EnumConstants, Size: 4, Variants: keys},
	}
}

var enums = buildEnums()

// Layouts returns the record descriptors in dependency order (a record only
// refers to records listed before it, except Style which refers to Color).
func Layouts() []Layout {
	out := make([]Layout, len(layouts))
	for i, l := range layouts {
		l.Fields = append([]Field(nil), l.Fields...)
		out[i] = l
	}
	return out
}

// Enums returns the enum and constant-set descriptors.
func Enums() []Enum {
	out := make([]Enum, len(enums))
	for i, e := range enums {
		e.Variants = append([]Variant(nil), e.Variants...)
		out[i] = e
	}
	return out
}

// LayoutOf returns the descriptor for the named record.
func LayoutOf(name string) (Layout, bool) {
	for _, l := range Layouts() {
		if l.Name == name {
			return l, true
		}
	}
	return Layout{}, false
}

// EnumOf returns the descriptor for the named enum.
func EnumOf(name string) (Enum, bool) {
	for _, e := range Enums() {
		if e.Name == name {
			return e, true
		}
	}
	return Enum{}, false
}

// Describe renders the tables as canonical text, one line per entry.
func Describe() string {
	var sb strings.Builder
	for _, l := range layouts {
		fmt.Fprintf(&sb, "record %s size=%d align=%d\n", l.Name, l.Size, l.Align)
		for _, f := range l.Fields {
			fmt.Fprintf(&sb, "  %s @%d:%d %s", f.Name, f.Offset, f.Size, f.Type)
			if f.Ref != "" {
				fmt.Fprintf(&sb, " %s", f.Ref)
			}
			sb.WriteByte('\n')
		}
	}
	for _, e := range enums {
		fmt.Fprintf(&sb, "enum %s kind=%d size=%d\n", e.Name, e.Kind, e.Size)
		for _, v := range e.Variants {
			fmt.Fprintf(&sb, "  %s=%d\n", v.Name, v.Value)
		}
	}
	return sb.String()
}

// Fingerprint identifies this exact contract. Two components agree on the
// layout when their fingerprints match.
func Fingerprint() uint32 {
	return crc32.ChecksumIEEE([]byte(Describe()))
}
