package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"soonish/pkg/suggest"
)

var suggestLimit int

var suggestCmd = &cobra.Command{
	Use:   "suggest <partial phrase>",
	Short: "Complete a partial date phrase",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings()
		if err != nil {
			return err
		}
		interp, tbl, err := newInterpreter(cfg)
		if err != nil {
			return err
		}

		text := strings.Join(args, " ")
		suggestions := suggest.Complete(interp, tbl, text, time.Now(), suggestLimit)
		if len(suggestions) == 0 {
			return fmt.Errorf("%q: no completions", text)
		}

		for _, s := range suggestions {
			fmt.Printf("%-30s %s\n", s.Phrase, s.At.Format("Mon Jan 2 2006 15:04"))
		}
		return nil
	},
}

func init() {
	suggestCmd.Flags().IntVar(&suggestLimit, "limit", suggest.DefaultLimit, "Maximum number of suggestions")
}
