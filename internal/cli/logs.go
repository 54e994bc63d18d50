package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

type logEntry struct {
	Timestamp string            `json:"ts"`
	Level     string            `json:"level"`
	Service   string            `json:"service"`
	Message   string            `json:"msg"`
	Fields    map[string]string `json:"fields"`
}

func newLogsCmd() *cobra.Command {
	var (
		path  string
		lines int
	)
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the tail of the ava log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				path = cfg.Log.File
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("logs: %w", err)
			}
			entries := strings.Split(strings.TrimSpace(string(data)), "\n")
			if lines > 0 && len(entries) > lines {
				entries = entries[len(entries)-lines:]
			}
			out := cmd.OutOrStdout()
			for _, line := range entries {
				var entry logEntry
				if err := json.Unmarshal([]byte(line), &entry); err != nil {
					fmt.Fprintln(out, line)
					continue
				}
				fmt.Fprintf(out, "%s [%s] %s: %s\n", entry.Timestamp, entry.Level, entry.Service, entry.Message)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "log file path (defaults to log.file from config)")
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "lines to show")
	return cmd
}
