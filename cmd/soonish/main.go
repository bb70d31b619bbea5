// Package main provides the soonish CLI: parse natural date phrases, get
// completions, and run the reminder daemon.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"soonish/internal/config"
	"soonish/pkg/glossary"
	"soonish/pkg/locale"
	"soonish/pkg/phrase"
)

// Global flags
var (
	configPath string
	langFlag   string
	localeFlag string
)

var rootCmd = &cobra.Command{
	Use:   "soonish",
	Short: "Turn natural date phrases into future reminders",
	Long: `soonish resolves phrases like "next friday 3pm", "in 2 weeks" or
"05/06/24" into a concrete future moment, and can run a daemon that
fires reminders when those moments arrive.

Examples:
  soonish parse "next friday 3pm"      # Resolve a phrase
  soonish suggest "tomo"               # Complete a partial phrase
  soonish serve                        # Run the reminder daemon
  soonish add "tomorrow 9am" -m "standup"`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to soonish.yaml (defaults are used if not set)")
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "Glossary language (overrides config)")
	rootCmd.PersistentFlags().StringVar(&localeFlag, "locale", "", "Locale tag for numeric date order, e.g. en-US (overrides config and environment)")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(rmCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		os.Exit(1)
	}
}

// loadSettings returns the effective configuration, applying file values and
// flag overrides.
func loadSettings() (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if langFlag != "" {
		cfg.Language = langFlag
	}
	if localeFlag != "" {
		cfg.Locale = localeFlag
	}
	return cfg, nil
}

// newInterpreter builds a phrase interpreter from the configuration,
// merging any glossary files over the builtin tables.
func newInterpreter(cfg *config.Config) (*phrase.Interpreter, *glossary.Table, error) {
	tbl := glossary.Builtin(cfg.Language)
	if cfg.GlossaryDir != "" {
		tables, err := glossary.LoadDir(cfg.GlossaryDir)
		if err != nil {
			return nil, nil, fmt.Errorf("load glossaries: %w", err)
		}
		if t, ok := tables[cfg.Language]; ok {
			tbl = t
		}
	}
	if tbl == nil {
		return nil, nil, fmt.Errorf("no glossary for language %q", cfg.Language)
	}

	profile := locale.Detect()
	if cfg.Locale != "" {
		profile = locale.FromTag(cfg.Locale)
	}

	interp, err := phrase.New(cfg.Language,
		phrase.WithTable(tbl),
		phrase.WithProfile(profile),
	)
	if err != nil {
		return nil, nil, err
	}
	return interp, tbl, nil
}
