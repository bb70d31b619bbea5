package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	parseRef  string
	parseJSON bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <phrase>",
	Short: "Resolve a date phrase to a future moment",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings()
		if err != nil {
			return err
		}
		interp, _, err := newInterpreter(cfg)
		if err != nil {
			return err
		}

		ref := time.Now()
		if parseRef != "" {
			ref, err = time.Parse(time.RFC3339, parseRef)
			if err != nil {
				return fmt.Errorf("invalid --ref: %w", err)
			}
		}

		text := strings.Join(args, " ")
		at, err := interp.Interpret(text, ref)
		if err != nil {
			return fmt.Errorf("%q: no result", text)
		}

		if parseJSON {
			fmt.Printf("{\"phrase\":%q,\"at\":%q}\n", text, at.Format(time.RFC3339))
			return nil
		}
		fmt.Println(at.Format("Mon Jan 2 2006 15:04:05 MST"))
		return nil
	},
}

func init() {
	parseCmd.Flags().StringVar(&parseRef, "ref", "", "Reference moment as RFC3339 (defaults to now)")
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Output in JSON format")
}
