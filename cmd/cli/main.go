package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "concilia",
		Short: "Concilia CLI tool",
		Long:  `A command line interface for interacting with the Concilia reconciliation API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Concilia API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		listCmd(),
		summaryCmd(),
		importCmd(),
		exportCmd(),
		backupCmd(),
		restoreCmd(),
		normalizeCmd(),
		reconcileCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func listCmd() *cobra.Command {
	var (
		query   string
		status  string
		account string
		page    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries",
		Run: func(cmd *cobra.Command, args []string) {
			params := url.Values{}
			if query != "" {
				params.Set("q", query)
			}
			if status != "" {
				params.Set("status", status)
			}
			if account != "" {
				params.Set("account", account)
			}
			if page > 1 {
				params.Set("page", fmt.Sprint(page))
			}

			body := getJSON("/api/v1/entries/?" + params.Encode())
			printEntryTable(body)
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Free-text filter")
	cmd.Flags().StringVar(&status, "status", "", "Status filter")
	cmd.Flags().StringVar(&account, "account", "", "Account filter")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")

	return cmd
}

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show credit/debit totals and reconciliation progress",
		Run: func(cmd *cobra.Command, args []string) {
			var result map[string]any
			decodeJSON(getJSON("/api/v1/entries/summary"), &result)
			printJSON(result)
		},
	}
}

func importCmd() *cobra.Command {
	var separator string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import entries from a CSV or JSON file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			data, err := os.ReadFile(args[0])
			if err != nil {
				fail("Error reading file: %v", err)
			}

			var result map[string]any
			if strings.EqualFold(filepath.Ext(args[0]), ".json") {
				decodeJSON(postJSON("/api/v1/import/json", data), &result)
			} else {
				payload, _ := json.Marshal(map[string]string{
					"text":      string(data),
					"separator": separator,
				})
				decodeJSON(postJSON("/api/v1/import/csv", payload), &result)
			}
			fmt.Printf("Imported %v entries\n", result["imported"])
		},
	}

	cmd.Flags().StringVar(&separator, "separator", "", "Field separator (defaults to comma)")

	return cmd
}

func exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entries as CSV",
		Run: func(cmd *cobra.Command, args []string) {
			body := getJSON("/api/v1/export/csv")
			writeOutput(output, body)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (defaults to stdout)")

	return cmd
}

func backupCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Download a JSON backup of all entries",
		Run: func(cmd *cobra.Command, args []string) {
			body := getJSON("/api/v1/backup")
			writeOutput(output, body)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (defaults to stdout)")

	return cmd
}

func restoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <backup.json>",
		Short: "Replace all entries with the contents of a backup file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			data, err := os.ReadFile(args[0])
			if err != nil {
				fail("Error reading file: %v", err)
			}

			var result map[string]any
			decodeJSON(postJSON("/api/v1/restore", data), &result)
			fmt.Printf("Restored %v entries\n", result["imported"])
		},
	}
}

func normalizeCmd() *cobra.Command {
	var (
		trim          bool
		uppercaseType bool
		mapStatus     bool
		fixDates      bool
	)

	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Run a bulk cleanup pass over all entries",
		Run: func(cmd *cobra.Command, args []string) {
			payload, _ := json.Marshal(map[string]bool{
				"trim":           trim,
				"uppercase_type": uppercaseType,
				"map_status":     mapStatus,
				"fix_dates":      fixDates,
			})

			var result map[string]any
			decodeJSON(postJSON("/api/v1/normalize", payload), &result)
			fmt.Printf("Normalized %v entries\n", result["changed"])
		},
	}

	cmd.Flags().BoolVar(&trim, "trim", true, "Trim whitespace from text fields")
	cmd.Flags().BoolVar(&uppercaseType, "uppercase-type", true, "Uppercase and validate entry types")
	cmd.Flags().BoolVar(&mapStatus, "map-status", true, "Map status synonyms to canonical values")
	cmd.Flags().BoolVar(&fixDates, "fix-dates", true, "Rewrite dates to ISO form")

	return cmd
}

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Pair matching credits and debits and mark them reconciled",
		Run: func(cmd *cobra.Command, args []string) {
			var result map[string]any
			decodeJSON(postJSON("/api/v1/reconcile/suggest", []byte(`{}`)), &result)
			fmt.Printf("Marked %v entries as reconciled\n", result["marked"])
		},
	}
}

func getJSON(path string) []byte {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fail("Error making request: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fail("Request failed (Status: %d)\nResponse: %s", resp.StatusCode, string(body))
	}

	return body
}

func postJSON(path string, payload []byte) []byte {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		fail("Error making request: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fail("Request failed (Status: %d)\nResponse: %s", resp.StatusCode, string(body))
	}

	return body
}

func decodeJSON(body []byte, out any) {
	if err := json.Unmarshal(body, out); err != nil {
		fail("Failed to parse response: %v", err)
	}
}

func printEntryTable(body []byte) {
	var page struct {
		Entries []struct {
			ID      string      `json:"id"`
			Date    string      `json:"date"`
			Account string      `json:"account"`
			Desc    string      `json:"description"`
			Type    string      `json:"type"`
			Amount  json.Number `json:"amount"`
			Status  string      `json:"status"`
		} `json:"entries"`
		Total    int `json:"total"`
		Filtered int `json:"filtered"`
		Page     int `json:"page"`
		MaxPage  int `json:"max_page"`
	}
	decodeJSON(body, &page)

	fmt.Printf("%-12s %-20s %-30s %-7s %12s %-12s\n", "DATE", "ACCOUNT", "DESCRIPTION", "TYPE", "AMOUNT", "STATUS")
	for _, e := range page.Entries {
		fmt.Printf("%-12s %-20s %-30s %-7s %12s %-12s\n",
			e.Date, truncate(e.Account, 20), truncate(e.Desc, 30), e.Type, e.Amount, e.Status)
	}
	fmt.Printf("\nPage %d/%d, showing %d of %d entries\n", page.Page, page.MaxPage, len(page.Entries), page.Filtered)
}

func printJSON(v any) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(data))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func writeOutput(path string, data []byte) {
	if path == "" {
		fmt.Print(string(data))
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fail("Error writing file: %v", err)
	}
	fmt.Printf("Wrote %s\n", path)
}

func fail(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
	os.Exit(1)
}
