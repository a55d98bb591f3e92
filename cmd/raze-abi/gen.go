package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/framegrace/raze/abi"
	"github.com/framegrace/raze/ansistyle"
)

func newGenCmd() *cobra.Command {
	var (
		outDir string
		color  string
	)
	cmd := &cobra.Command{
		Use:   "gen [c|zig|rust|ada]...",
		Short: "Generate declarations for one or more languages",
		Long: `Generate declarations for the contract records and enums.

Without --out the result is printed; on a terminal it is syntax highlighted.
With --out one file per language is written (raze.h, raze.zig, raze.rs,
raze.ads).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			langs, err := languageArgs(args)
			if err != nil {
				return err
			}
			for _, lang := range langs {
				src, err := abi.Generate(lang)
				if err != nil {
					return err
				}
				if outDir != "" {
					path := filepath.Join(outDir, "raze"+lang.Extension())
					if err := writeFile(path, src); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("wrote ")+path)
					continue
				}
				printSource(cmd.OutOrStdout(), lang, src, profileFor(cmd.OutOrStdout(), color))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory to write generated files into")
	cmd.Flags().StringVar(&color, "color", "auto", "highlight output: auto, always or never")
	return cmd
}

func writeFile(path, src string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(src), 0644)
}

// profileFor picks the colour profile for w. Auto colours only terminals.
func profileFor(w io.Writer, mode string) termenv.Profile {
	switch mode {
	case "always":
		return termenv.TrueColor
	case "never":
		return termenv.Ascii
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return ansistyle.DetectProfile()
	}
	return termenv.Ascii
}

func printSource(w io.Writer, lang abi.Language, src string, p termenv.Profile) {
	fmt.Fprint(w, abi.Highlight(lang, src, p))
}
