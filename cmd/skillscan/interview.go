package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillscan/internal/interview"
)

var interviewCmd = &cobra.Command{
	Use:   "interview [role]",
	Short: "Fetch interview questions for a role",
	Long:  "Scrape the question bank for a role and print each question with its answer. Use --list to see the known roles.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInterview,
}

var (
	interviewList    bool
	interviewLimit   int
	interviewBrowser bool
	interviewFormat  string
)

func init() {
	interviewCmd.Flags().BoolVar(&interviewList, "list", false, "List the roles with a question bank")
	interviewCmd.Flags().IntVarP(&interviewLimit, "limit", "n", interview.DefaultLimit, "Maximum number of questions")
	interviewCmd.Flags().BoolVar(&interviewBrowser, "browser", false, "Fall back to a headless browser for script-rendered pages")
	interviewCmd.Flags().StringVarP(&interviewFormat, "format", "f", "text", "Output format: text or json")
	rootCmd.AddCommand(interviewCmd)
}

func runInterview(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if interviewList {
		for _, role := range interview.Roles() {
			_, _ = fmt.Fprintln(out, role)
		}
		return nil
	}

	if err := checkFormat(interviewFormat, "text", "json"); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("role is required (see --list)")
	}
	if interviewLimit < 1 {
		return fmt.Errorf("--limit must be at least 1")
	}

	bank, err := interview.Fetch(cmd.Context(), args[0], &interview.Options{
		UseBrowser: interviewBrowser || appConfig.UseBrowser,
		Limit:      interviewLimit,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	if interviewFormat == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(bank)
	}

	_, _ = fmt.Fprintf(out, "%s interview questions (%s)\n\n", bank.Role, bank.SourceURL)
	for i, qa := range bank.Questions {
		_, _ = fmt.Fprintf(out, "Q%d. %s\n", i+1, qa.Question)
		_, _ = fmt.Fprintf(out, "%s\n\n", strings.TrimSpace(qa.Answer))
	}
	return nil
}
