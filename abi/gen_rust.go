package abi

import (
	"fmt"
	"strings"

	"github.com/framegrace/raze/core"
)

type rustGen struct{}

func rustType(f core.Field) string {
	switch f.Type {
	case core.FieldU8:
		return "u8"
	case core.FieldU16:
		return "u16"
	case core.FieldU32:
		return "u32"
	case core.FieldU64:
		return "u64"
	case core.FieldBool:
		return "bool"
	case core.FieldEnum, core.FieldRecord:
		return f.Ref
	}
	return "u8"
}

func (rustGen) header(sb *strings.Builder) {
	sb.WriteString(banner("//"))
}

func (rustGen) enum(sb *strings.Builder, e core.Enum) {
	if e.Kind == core.EnumDiscriminant {
		sb.WriteString("#[repr(C)]\n#[derive(Debug, Clone, Copy, PartialEq, Eq)]\n")
		fmt.Fprintf(sb, "pub enum %s {\n", e.Name)
		for _, v := range e.Variants {
			fmt.Fprintf(sb, "    %s = %d,\n", v.Name, v.Value)
		}
		sb.WriteString("}\n\n")
		return
	}
	prefix := upperSnake(e.Name) + "_"
	for _, v := range e.Variants {
		fmt.Fprintf(sb, "pub const %s%s: u%d = 0x%X;\n", prefix, upperSnake(v.Name), e.Size*8, v.Value)
	}
	sb.WriteByte('\n')
}

func (rustGen) record(sb *strings.Builder, l core.Layout) {
	sb.WriteString("#[repr(C)]\n#[derive(Debug, Clone, Copy)]\n")
	fmt.Fprintf(sb, "pub struct %s {\n", l.Name)
	for _, f := range l.Fields {
		if isPad(f) {
			fmt.Fprintf(sb, "    pub %s: [u8; %d],\n", f.Name, f.Size)
			continue
		}
		fmt.Fprintf(sb, "    pub %s: %s,\n", f.Name, rustType(f))
	}
	sb.WriteString("}\n\n")
}

func (rustGen) footer(sb *strings.Builder, layouts []core.Layout, enums []core.Enum) {
	for _, e := range enums {
		if e.Kind == core.EnumDiscriminant {
			fmt.Fprintf(sb, "const _: () = assert!(core::mem::size_of::<%s>() == %d);\n", e.Name, e.Size)
		}
	}
	for _, l := range layouts {
		fmt.Fprintf(sb, "const _: () = assert!(core::mem::size_of::<%s>() == %d);\n", l.Name, l.Size)
	}
}
