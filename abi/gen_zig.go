package abi

import (
	"fmt"
	"strings"

	"github.com/framegrace/raze/core"
)

type zigGen struct{}

func zigType(f core.Field) string {
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

func zigIntType(size int) string {
	return fmt.Sprintf("u%d", size*8)
}

func (zigGen) header(sb *strings.Builder) {
	sb.WriteString(banner("//"))
	sb.WriteString("const std = @import(\"std\");\n\n")
}

func (zigGen) enum(sb *strings.Builder, e core.Enum) {
	if e.Kind == core.EnumDiscriminant {
		fmt.Fprintf(sb, "pub const %s = enum(c_int) {\n", e.Name)
		for _, v := range e.Variants {
			fmt.Fprintf(sb, "    %s = %d,\n", snake(v.Name), v.Value)
		}
		sb.WriteString("    _,\n};\n\n")
		return
	}
	prefix := snake(e.Name) + "_"
	for _, v := range e.Variants {
		fmt.Fprintf(sb, "pub const %s%s: %s = 0x%X;\n", prefix, snake(v.Name), zigIntType(e.Size), v.Value)
	}
	sb.WriteByte('\n')
}

func (zigGen) record(sb *strings.Builder, l core.Layout) {
	fmt.Fprintf(sb, "pub const %s = extern struct {\n", l.Name)
	for _, f := range l.Fields {
		if isPad(f) {
			fmt.Fprintf(sb, "    %s: [%d]u8 = [_]u8{0} ** %d,\n", f.Name, f.Size, f.Size)
			continue
		}
		fmt.Fprintf(sb, "    %s: %s,\n", f.Name, zigType(f))
	}
	sb.WriteString("};\n\n")
}

func (zigGen) footer(sb *strings.Builder, layouts []core.Layout, enums []core.Enum) {
	sb.WriteString("comptime {\n")
	for _, e := range enums {
		if e.Kind == core.EnumDiscriminant {
			fmt.Fprintf(sb, "    std.debug.assert(@sizeOf(%s) == %d);\n", e.Name, e.Size)
		}
	}
	for _, l := range layouts {
		fmt.Fprintf(sb, "    std.debug.assert(@sizeOf(%s) == %d);\n", l.Name, l.Size)
	}
	sb.WriteString("}\n")
}
