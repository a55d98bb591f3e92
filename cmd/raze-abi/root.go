package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/framegrace/raze/abi"
	"github.com/framegrace/raze/ansistyle"
	"github.com/framegrace/raze/config"
	"github.com/framegrace/raze/core"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444"))
)

// applyTheme takes the accent colour from the user's theme section.
func applyTheme(cfg config.Config) {
	accent := cfg.GetColor("theme", "accent", core.DefaultColor())
	if accent.IsDefault() {
		return
	}
	titleStyle = ansistyle.Lipgloss(core.DefaultStyle().WithFg(accent).WithBold(true))
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile string
		verbose bool
	)
	root := &cobra.Command{
		Use:           "raze-abi",
		Short:         "Generate and verify foreign bindings for the RAZE contract",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cfgFile != "" {
				config.SetPathOverride(cfgFile)
			}
			config.SetVerboseLogging(verbose)
			applyTheme(config.System())
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/raze/raze.json)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newGenCmd(), newCheckCmd(), newLayoutCmd(), newFingerprintCmd())
	return root
}

func languageArgs(args []string) ([]abi.Language, error) {
	if len(args) == 0 {
		return abi.Languages(), nil
	}
	out := make([]abi.Language, 0, len(args))
	for _, a := range args {
		lang, err := abi.ParseLanguage(a)
		if err != nil {
			return nil, err
		}
		out = append(out, lang)
	}
	return out, nil
}
