package abi

import (
	"fmt"
	"strings"

	"github.com/framegrace/raze/core"
)

type cGen struct{}

func cType(f core.Field) string {
	switch f.Type {
	case core.FieldU8:
		return "uint8_t"
	case core.FieldU16:
		return "uint16_t"
	case core.FieldU32:
		return "uint32_t"
	case core.FieldU64:
		return "uint64_t"
	case core.FieldBool:
		return "bool"
	case core.FieldEnum, core.FieldRecord:
		return "Raze" + f.Ref
	}
	return "uint8_t"
}

func (cGen) header(sb *strings.Builder) {
	sb.WriteString(banner("//"))
	sb.WriteString("#ifndef RAZE_CONTRACT_H\n#define RAZE_CONTRACT_H\n\n")
	sb.WriteString("#include <stdbool.h>\n#include <stdint.h>\n\n")
}

func (cGen) enum(sb *strings.Builder, e core.Enum) {
	prefix := "RAZE_" + upperSnake(e.Name) + "_"
	if e.Kind == core.EnumDiscriminant {
		sb.WriteString("typedef enum {\n")
		for _, v := range e.Variants {
			fmt.Fprintf(sb, "    %s%s = %d,\n", prefix, upperSnake(v.Name), v.Value)
		}
		fmt.Fprintf(sb, "} Raze%s;\n\n", e.Name)
		return
	}
	for _, v := range e.Variants {
		fmt.Fprintf(sb, "#define %s%s %s\n", prefix, upperSnake(v.Name), cLiteral(v.Value))
	}
	sb.WriteByte('\n')
}

func cLiteral(v uint32) string {
	if v >= 0x10000 {
		return fmt.Sprintf("0x%Xu", v)
	}
	return fmt.Sprintf("%du", v)
}

func (cGen) record(sb *strings.Builder, l core.Layout) {
	sb.WriteString("typedef struct {\n")
	for _, f := range l.Fields {
		if isPad(f) {
			fmt.Fprintf(sb, "    uint8_t %s[%d];\n", f.Name, f.Size)
			continue
		}
		fmt.Fprintf(sb, "    %s %s;\n", cType(f), f.Name)
	}
	fmt.Fprintf(sb, "} Raze%s;\n\n", l.Name)
}

func (cGen) footer(sb *strings.Builder, layouts []core.Layout, enums []core.Enum) {
	for _, e := range enums {
		if e.Kind == core.EnumDiscriminant {
			fmt.Fprintf(sb, "_Static_assert(sizeof(Raze%s) == %d, \"Raze%s size\");\n", e.Name, e.Size, e.Name)
		}
	}
	for _, l := range layouts {
		fmt.Fprintf(sb, "_Static_assert(sizeof(Raze%s) == %d, \"Raze%s size\");\n", l.Name, l.Size, l.Name)
	}
	sb.WriteString("\n#endif /* RAZE_CONTRACT_H */\n")
}
