package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	addMessage  string
	addSchedule string
	listStatus  string
)

// daemonURL builds the base URL for the daemon API from the configured
// listen address.
func daemonURL(listen string) string {
	addr := listen
	if strings.HasPrefix(addr, ":") {
		addr = "127.0.0.1" + addr
	}
	return "http://" + addr
}

type apiReminder struct {
	ID       string     `json:"id"`
	Phrase   string     `json:"phrase"`
	Message  string     `json:"message"`
	At       time.Time  `json:"at"`
	Schedule string     `json:"schedule"`
	Status   string     `json:"status"`
	NextFire *time.Time `json:"next_fire"`
}

// callDaemon performs one API request and decodes the JSON response into out.
func callDaemon(method, url string, body any, out any) error {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("daemon unreachable (is `soonish serve` running?): %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}
		return fmt.Errorf("daemon returned %s", resp.Status)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var addCmd = &cobra.Command{
	Use:   "add <phrase>",
	Short: "Create a reminder on the running daemon",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings()
		if err != nil {
			return err
		}

		req := map[string]string{
			"phrase":   strings.Join(args, " "),
			"message":  addMessage,
			"schedule": addSchedule,
		}
		var rem apiReminder
		if err := callDaemon(http.MethodPost, daemonURL(cfg.Listen)+"/api/v1/reminders", req, &rem); err != nil {
			return err
		}

		fmt.Printf("%s  %s\n", rem.ID, rem.At.Format("Mon Jan 2 2006 15:04"))
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List reminders on the running daemon",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings()
		if err != nil {
			return err
		}

		url := daemonURL(cfg.Listen) + "/api/v1/reminders"
		if listStatus != "" {
			url += "?status=" + listStatus
		}
		var reminders []apiReminder
		if err := callDaemon(http.MethodGet, url, nil, &reminders); err != nil {
			return err
		}

		if len(reminders) == 0 {
			fmt.Println("no reminders")
			return nil
		}
		for _, r := range reminders {
			line := fmt.Sprintf("%s  %-9s %s  %q", r.ID, r.Status, r.At.Format("Mon Jan 2 2006 15:04"), r.Phrase)
			if r.Message != "" {
				line += "  " + r.Message
			}
			fmt.Println(line)
		}
		return nil
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel a pending reminder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings()
		if err != nil {
			return err
		}

		url := daemonURL(cfg.Listen) + "/api/v1/reminders/" + args[0] + "/cancel"
		var rem apiReminder
		if err := callDaemon(http.MethodPut, url, nil, &rem); err != nil {
			return err
		}
		fmt.Printf("canceled %s\n", rem.ID)
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a reminder and its fire history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings()
		if err != nil {
			return err
		}

		url := daemonURL(cfg.Listen) + "/api/v1/reminders/" + args[0]
		if err := callDaemon(http.MethodDelete, url, nil, nil); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", args[0])
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addMessage, "message", "m", "", "Message attached to the reminder")
	addCmd.Flags().StringVar(&addSchedule, "cron", "", "Cron expression for a recurring reminder")
	listCmd.Flags().StringVar(&listStatus, "status", "", "Filter by status (pending, fired, canceled)")
}
