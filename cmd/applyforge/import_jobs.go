package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/applyforge/internal/joblist"
	"github.com/jonathan/applyforge/internal/observability"
)

var importJobsCmd = &cobra.Command{
	Use:   "import-jobs",
	Short: "Preview a job list CSV import",
	Long:  "Parse a job list CSV and print the imported job targets without generating anything. Useful for verifying column mapping before a generation run.",
	RunE:  runImportJobs,
}

var (
	importJobsInput  string
	importJobsOutput string
)

func init() {
	importJobsCmd.Flags().StringVarP(&importJobsInput, "in", "i", "", "Path to job list CSV file")
	importJobsCmd.Flags().StringVarP(&importJobsOutput, "out", "o", "", "Path to output JSON file (optional)")
	_ = importJobsCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(importJobsCmd)
}

func runImportJobs(_ *cobra.Command, _ []string) error {
	data, err := os.ReadFile(importJobsInput)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	jobs := joblist.ParseCSV(string(data))
	if len(jobs) == 0 {
		return fmt.Errorf("no jobs imported from %s (check headers: company, position)", importJobsInput)
	}

	observability.NewPrinter(os.Stdout).PrintJobList(jobs)

	if importJobsOutput != "" {
		jsonBytes, err := json.MarshalIndent(jobs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		if err := os.WriteFile(importJobsOutput, jsonBytes, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", importJobsOutput)
	}

	return nil
}
