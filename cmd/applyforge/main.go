// Package main provides the entry point for the ApplyForge CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "applyforge",
	Short: "ApplyForge document generator",
	Long:  "ApplyForge generates tailored, styled HTML resumes and cover letters for a list of target jobs using a two-stage LLM pipeline.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
