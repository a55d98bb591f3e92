package abi

import (
	"fmt"
	"strings"

	"github.com/framegrace/raze/core"
)

type adaGen struct{}

func adaType(f core.Field) string {
	switch f.Type {
	case core.FieldU8:
		return "Unsigned_8"
	case core.FieldU16:
		return "Unsigned_16"
	case core.FieldU32:
		return "Unsigned_32"
	case core.FieldU64:
		return "Unsigned_64"
	case core.FieldBool:
		return "Boolean"
	case core.FieldEnum, core.FieldRecord:
		return adaName(f.Ref)
	}
	return "Unsigned_8"
}

func adaHex(v uint32) string {
	return fmt.Sprintf("16#%X#", v)
}

func (adaGen) header(sb *strings.Builder) {
	sb.WriteString(banner("--"))
	sb.WriteString("with Interfaces; use Interfaces;\n\npackage Raze_Contract is\n\n")
}

func (adaGen) enum(sb *strings.Builder, e core.Enum) {
	name := adaName(e.Name)
	if e.Kind == core.EnumDiscriminant {
		lits := make([]string, len(e.Variants))
		reps := make([]string, len(e.Variants))
		for i, v := range e.Variants {
			lits[i] = adaName(v.Name)
			reps[i] = fmt.Sprintf("%s => %d", adaName(v.Name), v.Value)
		}
		fmt.Fprintf(sb, "   type %s is (%s)\n     with Convention => C;\n", name, strings.Join(lits, ", "))
		fmt.Fprintf(sb, "   for %s use (%s);\n", name, strings.Join(reps, ", "))
		fmt.Fprintf(sb, "   for %s'Size use %d;\n\n", name, e.Size*8)
		return
	}
	for _, v := range e.Variants {
		fmt.Fprintf(sb, "   %s_%s : constant := %s;\n", name, adaName(v.Name), adaHex(v.Value))
	}
	sb.WriteByte('\n')
}

func (adaGen) record(sb *strings.Builder, l core.Layout) {
	name := adaName(l.Name)
	fmt.Fprintf(sb, "   type %s is record\n", name)
	for _, f := range l.Fields {
		if isPad(f) {
			continue
		}
		fmt.Fprintf(sb, "      %s : %s;\n", adaName(f.Name), adaType(f))
	}
	sb.WriteString("   end record\n     with Convention => C;\n")
	fmt.Fprintf(sb, "   for %s use record\n", name)
	for _, f := range l.Fields {
		if isPad(f) {
			continue
		}
		fmt.Fprintf(sb, "      %s at %d range 0 .. %d;\n", adaName(f.Name), f.Offset, f.Size*8-1)
	}
	sb.WriteString("   end record;\n")
	fmt.Fprintf(sb, "   for %s'Size use %d;\n\n", name, l.Size*8)
}

func (adaGen) footer(sb *strings.Builder, layouts []core.Layout, enums []core.Enum) {
	sb.WriteString("end Raze_Contract;\n")
}
