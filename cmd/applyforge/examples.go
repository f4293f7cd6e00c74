package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/applyforge/internal/examples"
)

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "Inspect or manage the example text cache",
	Long: `Inspect the cached example texts that bias generation and formatting output, or replace them with custom text files.

Known keys: ` + examples.KeyExampleResume + `, ` + examples.KeyExampleCoverLetter + `, ` + examples.KeyStyledResume + `, ` + examples.KeyStyledCoverLetter,
	RunE: runExamples,
}

var (
	examplesCacheDir   string
	examplesSetKey     string
	examplesSetFile    string
	examplesInvalidate string
	examplesClear      bool
)

func init() {
	examplesCmd.Flags().StringVar(&examplesCacheDir, "cache-dir", ".applyforge-cache", "Directory for the example text cache")
	examplesCmd.Flags().StringVar(&examplesSetKey, "set", "", "Cache key to set from --file")
	examplesCmd.Flags().StringVar(&examplesSetFile, "file", "", "Text file to store under --set key")
	examplesCmd.Flags().StringVar(&examplesInvalidate, "invalidate", "", "Cache key to remove")
	examplesCmd.Flags().BoolVar(&examplesClear, "clear", false, "Remove all cached example texts")

	rootCmd.AddCommand(examplesCmd)
}

func runExamples(_ *cobra.Command, _ []string) error {
	fileStore := examples.NewFileStore(examplesCacheDir)
	cache := examples.NewCache(fileStore, nil)

	switch {
	case examplesClear:
		if err := cache.Clear(); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		_, _ = fmt.Fprintln(os.Stdout, "Cleared example cache")
		return nil

	case examplesInvalidate != "":
		if err := cache.Invalidate(examplesInvalidate); err != nil {
			return fmt.Errorf("failed to invalidate %s: %w", examplesInvalidate, err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "Invalidated: %s\n", examplesInvalidate)
		return nil

	case examplesSetKey != "":
		if examplesSetFile == "" {
			return fmt.Errorf("--file is required with --set")
		}
		data, err := os.ReadFile(examplesSetFile)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		if err := cache.Put(examplesSetKey, string(data)); err != nil {
			return fmt.Errorf("failed to store example: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "Stored %d characters under %s\n", len(data), examplesSetKey)
		return nil
	}

	// Default: report which keys are cached
	keys := []string{
		examples.KeyExampleResume,
		examples.KeyExampleCoverLetter,
		examples.KeyStyledResume,
		examples.KeyStyledCoverLetter,
	}
	for _, key := range keys {
		value, ok, err := fileStore.Get(key)
		if err != nil {
			return fmt.Errorf("failed to read cache: %w", err)
		}
		if ok {
			_, _ = fmt.Fprintf(os.Stdout, "%-32s cached (%d characters)\n", key, len(value))
		} else {
			_, _ = fmt.Fprintf(os.Stdout, "%-32s not cached\n", key)
		}
	}

	return nil
}
