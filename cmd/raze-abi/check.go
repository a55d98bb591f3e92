package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/framegrace/raze/abi"
)

var errDrift = errors.New("declarations drifted from the contract")

func newCheckCmd() *cobra.Command {
	var (
		langName string
		showDiff bool
	)
	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Check foreign declarations against the contract",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			drifted := false
			for _, path := range args {
				src, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				var lang abi.Language
				if langName != "" {
					lang, err = abi.ParseLanguage(langName)
				} else {
					lang, err = abi.DetectLanguage(path, src)
				}
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				rep, err := abi.Check(lang, src)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if rep.OK() {
					fmt.Fprintf(out, "%s %s (%s, %d symbols)\n", okStyle.Render("ok"), path, lang, rep.Matched)
					continue
				}
				drifted = true
				fmt.Fprintf(out, "%s %s (%s)\n", errorStyle.Render("drift"), path, lang)
				for _, d := range rep.Drift {
					fmt.Fprintf(out, "  %s\n", d)
				}
				for _, name := range rep.Unknown {
					fmt.Fprintf(out, "  %s: not defined by the contract\n", name)
				}
				if showDiff {
					want, _ := abi.Generate(lang)
					fmt.Fprintln(out, mutedStyle.Render("--- generated  +++ "+path))
					fmt.Fprint(out, abi.Diff(want, string(src)))
				}
			}
			if drifted {
				return errDrift
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&langName, "lang", "l", "", "source language (detected when omitted)")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "show a diff against the generated declarations")
	return cmd
}
