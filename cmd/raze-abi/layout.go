package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/framegrace/raze/core"
)

func newLayoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout",
		Short: "Print the record and enum tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, l := range core.Layouts() {
				fmt.Fprintln(out, titleStyle.Render(l.Name)+mutedStyle.Render(fmt.Sprintf("  size %d, align %d", l.Size, l.Align)))
				t := table.New().
					Border(lipgloss.NormalBorder()).
					Headers("field", "offset", "size", "type", "ref")
				for _, f := range l.Fields {
					t.Row(f.Name, strconv.Itoa(f.Offset), strconv.Itoa(f.Size), f.Type.String(), f.Ref)
				}
				fmt.Fprintln(out, t.String())
			}
			for _, e := range core.Enums() {
				fmt.Fprintln(out, titleStyle.Render(e.Name)+mutedStyle.Render(fmt.Sprintf("  %d bytes", e.Size)))
				t := table.New().
					Border(lipgloss.NormalBorder()).
					Headers("name", "value")
				for _, v := range e.Variants {
					t.Row(v.Name, fmt.Sprintf("%d (%#x)", v.Value, v.Value))
				}
				fmt.Fprintln(out, t.String())
			}
			return nil
		},
	}
}

func newFingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the layout fingerprint peers compare at handshake",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%08x\n", core.Fingerprint())
		},
	}
}
