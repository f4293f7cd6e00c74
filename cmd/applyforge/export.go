package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/applyforge/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render generated HTML documents to PDF",
	Long:  "Render previously generated HTML files to letter-size PDFs using headless Chrome. Requires Chrome or Chromium (set CHROME_PATH to override discovery).",
	RunE:  runExport,
}

var (
	exportInputDir  string
	exportOutputDir string
)

func init() {
	exportCmd.Flags().StringVarP(&exportInputDir, "in", "i", "output", "Directory containing generated .html files")
	exportCmd.Flags().StringVarP(&exportOutputDir, "out", "o", "", "Output directory for PDFs (defaults to the input directory)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	if exportOutputDir == "" {
		exportOutputDir = exportInputDir
	}

	htmlPaths, err := filepath.Glob(filepath.Join(exportInputDir, "*.html"))
	if err != nil {
		return fmt.Errorf("failed to list HTML files: %w", err)
	}
	if len(htmlPaths) == 0 {
		return fmt.Errorf("no .html files found in %s", exportInputDir)
	}

	if err := os.MkdirAll(exportOutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ctx := context.Background()
	renderer := export.NewPDFRenderer()

	var exported int
	for _, htmlPath := range htmlPaths {
		html, err := os.ReadFile(htmlPath)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", htmlPath, err)
		}

		pdfData, err := renderer.RenderHTMLToPDF(ctx, string(html))
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to render %s: %v\n", htmlPath, err)
			continue
		}

		base := strings.TrimSuffix(filepath.Base(htmlPath), ".html")
		pdfPath := filepath.Join(exportOutputDir, base+".pdf")
		if err := os.WriteFile(pdfPath, pdfData, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", pdfPath, err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "Wrote: %s\n", pdfPath)
		exported++
	}

	if exported == 0 {
		return fmt.Errorf("no PDFs were exported")
	}
	_, _ = fmt.Fprintf(os.Stdout, "Exported %d of %d documents\n", exported, len(htmlPaths))

	return nil
}
