package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/applyforge/internal/config"
	"github.com/jonathan/applyforge/internal/examples"
	"github.com/jonathan/applyforge/internal/export"
	"github.com/jonathan/applyforge/internal/formatting"
	"github.com/jonathan/applyforge/internal/generation"
	"github.com/jonathan/applyforge/internal/ingestion"
	"github.com/jonathan/applyforge/internal/joblist"
	"github.com/jonathan/applyforge/internal/llm"
	"github.com/jonathan/applyforge/internal/observability"
	"github.com/jonathan/applyforge/internal/pipeline"
	"github.com/jonathan/applyforge/internal/store"
	"github.com/jonathan/applyforge/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate tailored documents for every job in a CSV job list",
	Long: `Runs the full generation pipeline: resume ingestion -> example loading -> content generation -> HTML formatting -> export.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runGenerateCmd,
}

var (
	genConfigPath    string
	genResumePath    string
	genPortfolioPath string
	genJobsCSV       string
	genDocumentType  string
	genOutputDir     string
	genCacheDir      string
	genSelect        string
	genWebhookURL    string
	genDatabaseURL   string
	genExportPDF     bool
	genVerbose       bool
)

func init() {
	// Config file flag (processed first)
	generateCmd.Flags().StringVar(&genConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	generateCmd.Flags().StringVarP(&genResumePath, "resume", "r", "", "Path to resume file (.pdf or .json)")
	generateCmd.Flags().StringVarP(&genPortfolioPath, "portfolio", "p", "", "Path to portfolio JSON file (optional)")
	generateCmd.Flags().StringVarP(&genJobsCSV, "jobs", "j", "", "Path to job list CSV file")
	generateCmd.Flags().StringVarP(&genDocumentType, "type", "t", "", "Documents to generate: resume, cover-letter, or both")
	generateCmd.Flags().StringVarP(&genOutputDir, "out", "o", "", "Output directory for generated HTML files")
	generateCmd.Flags().StringVar(&genCacheDir, "cache-dir", "", "Directory for the example text cache")
	generateCmd.Flags().StringVar(&genSelect, "select", "all", "Jobs to generate for: \"all\" or comma-separated 1-based row numbers (e.g. 1,3)")
	generateCmd.Flags().StringVar(&genWebhookURL, "webhook-url", "", "Webhook URL notified when a run completes (optional)")
	generateCmd.Flags().BoolVar(&genExportPDF, "pdf", false, "Also export PDF files (requires Chrome)")
	generateCmd.Flags().BoolVarP(&genVerbose, "verbose", "v", false, "Print detailed debug information")

	// Database URL for settings snapshot persistence
	generateCmd.Flags().StringVar(&genDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(generateCmd)
}

func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if genConfigPath != "" {
		loadedCfg, err := config.LoadConfig(genConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
		if genVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", genConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("resume") {
		cfg.ResumePath = genResumePath
	}
	if cmd.Flags().Changed("portfolio") {
		cfg.PortfolioPath = genPortfolioPath
	}
	if cmd.Flags().Changed("jobs") {
		cfg.JobsCSV = genJobsCSV
	}
	if cmd.Flags().Changed("type") {
		cfg.DocumentType = genDocumentType
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputDir = genOutputDir
	}
	if cmd.Flags().Changed("cache-dir") {
		cfg.CacheDir = genCacheDir
	}
	if cmd.Flags().Changed("webhook-url") {
		cfg.WebhookURL = genWebhookURL
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = genDatabaseURL
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = genVerbose
	}

	// Step 3: Fill unset values from the environment, then defaults
	cfg = cfg.MergeWithDefaults(config.FromEnv())
	cfg = cfg.MergeWithDefaults(config.Config{
		DocumentType: string(types.DocTypeBoth),
		OutputDir:    "output",
		CacheDir:     ".applyforge-cache",
	})

	// Step 4: Validate required fields
	if cfg.ResumePath == "" {
		return fmt.Errorf("--resume is required (via flag or config)")
	}
	if cfg.JobsCSV == "" {
		return fmt.Errorf("--jobs is required (via flag or config)")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Step 5: API key handling
	if cfg.GeminiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required (resume parsing)")
	}
	if cfg.OpenAIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable is required (content generation)")
	}
	if cfg.AnthropicKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY environment variable is required (document formatting)")
	}

	printer := observability.NewPrinter(os.Stdout)

	// Step 6: Parse the resume
	client, err := llm.NewGeminiClient(ctx, cfg.GeminiKey, "")
	if err != nil {
		return fmt.Errorf("failed to create parsing client: %w", err)
	}
	defer func() { _ = client.Close() }()

	parser := ingestion.NewResumeParser(client)

	resumeData, err := os.ReadFile(cfg.ResumePath)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}
	resume, err := parser.ParseResumeFile(ctx, filepath.Base(cfg.ResumePath), resumeData)
	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}
	if cfg.Verbose {
		printer.PrintResumeSummary(resume)
	}

	// Step 7: Import the job list
	csvData, err := os.ReadFile(cfg.JobsCSV)
	if err != nil {
		return fmt.Errorf("failed to read job list: %w", err)
	}
	jobs := joblist.ParseCSV(string(csvData))
	if len(jobs) == 0 {
		return fmt.Errorf("no jobs imported from %s", cfg.JobsCSV)
	}
	if err := applySelection(jobs, genSelect); err != nil {
		return err
	}
	if cfg.Verbose {
		printer.PrintJobList(jobs)
	}

	// Step 8: Optional portfolio data
	var portfolio types.PortfolioData
	if cfg.PortfolioPath != "" {
		portfolioData, err := os.ReadFile(cfg.PortfolioPath)
		if err != nil {
			return fmt.Errorf("failed to read portfolio file: %w", err)
		}
		portfolio, err = ingestion.ParsePortfolioJSON(portfolioData)
		if err != nil {
			return fmt.Errorf("failed to parse portfolio file: %w", err)
		}
	}

	// Step 9: Load example texts (cached defaults)
	exampleCache := examples.NewCache(examples.NewFileStore(cfg.CacheDir), parser)
	exampleTexts := exampleCache.Load(ctx)

	// Step 10: Optional settings snapshot persistence
	opts := pipeline.Options{
		Resume:       resume,
		Jobs:         jobs,
		DocumentType: types.DocumentType(cfg.DocumentType),
		Examples:     exampleTexts,
		Portfolio:    portfolio,
		Content:      generation.NewOpenAIProvider(cfg.OpenAIKey),
		Formatter:    formatting.NewFormatter(formatting.NewClaudeProvider(cfg.AnthropicKey, "")),
		WebhookURL:   cfg.WebhookURL,
		Verbose:      cfg.Verbose,
	}
	if cfg.DatabaseURL != "" {
		db, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		if err := db.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("failed to ensure database schema: %w", err)
		}
		opts.Store = db
	}

	// Step 11: Run the pipeline
	result, err := pipeline.Run(ctx, opts)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		printer.PrintRunSummary(result.Documents, result.JobsCompleted, len(types.SelectedJobs(jobs)))
	}
	if !result.Success {
		return fmt.Errorf("generation failed: %s", result.Err)
	}

	// Step 12: Write output files
	paths, err := export.WriteDocuments(cfg.OutputDir, result.Documents, jobs)
	if err != nil {
		return fmt.Errorf("failed to write documents: %w", err)
	}
	for _, p := range paths {
		_, _ = fmt.Fprintf(os.Stdout, "Wrote: %s\n", p)
	}

	if genExportPDF {
		pdfPaths, err := export.ExportPDFs(ctx, cfg.OutputDir, result.Documents, jobs)
		if err != nil {
			return fmt.Errorf("failed to export PDFs: %w", err)
		}
		for _, p := range pdfPaths {
			_, _ = fmt.Fprintf(os.Stdout, "Wrote: %s\n", p)
		}
	}

	_, _ = fmt.Fprintf(os.Stdout, "Generated %d documents for %d jobs\n", len(result.Documents), result.JobsCompleted)

	return nil
}

// applySelection marks the jobs to generate for: "all", or comma-separated
// 1-based row numbers in CSV order.
func applySelection(jobs []types.JobTarget, selection string) error {
	selection = strings.TrimSpace(selection)
	if selection == "" || selection == "all" {
		types.SetAllSelected(jobs, true)
		return nil
	}

	types.SetAllSelected(jobs, false)
	for _, part := range strings.Split(selection, ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return fmt.Errorf("invalid --select value %q: %w", part, err)
		}
		if idx < 1 || idx > len(jobs) {
			return fmt.Errorf("--select row %d out of range (1-%d)", idx, len(jobs))
		}
		jobs[idx-1].Selected = true
	}
	return nil
}
