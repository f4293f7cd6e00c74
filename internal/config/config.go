// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via
// CLI flags or environment variables.
type Config struct {
	// Inputs
	ResumePath    string `json:"resume,omitempty"`    // Path to resume file (.pdf or .json)
	PortfolioPath string `json:"portfolio,omitempty"` // Path to portfolio JSON file
	JobsCSV       string `json:"jobs_csv,omitempty"`  // Path to job listings CSV

	// Behavior
	DocumentType string `json:"document_type,omitempty"` // resume | cover-letter | both
	OutputDir    string `json:"output_dir,omitempty"`    // Directory for generated documents
	CacheDir     string `json:"cache_dir,omitempty"`     // Directory for the example cache
	Verbose      bool   `json:"verbose,omitempty"`       // Print detailed debug information

	// API keys
	OpenAIKey    string `json:"openai_api_key,omitempty"`    // Content-generation model key
	AnthropicKey string `json:"anthropic_api_key,omitempty"` // Formatting model key
	GeminiKey    string `json:"gemini_api_key,omitempty"`    // Resume-parsing model key

	// Integration
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	WebhookURL  string `json:"webhook_url,omitempty"`  // Automation hook for run results
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns a Config populated from environment variables. Used as the
// lowest-precedence layer under config files and CLI flags.
func FromEnv() Config {
	return Config{
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		GeminiKey:    os.Getenv("GEMINI_API_KEY"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		WebhookURL:   os.Getenv("WEBHOOK_URL"),
	}
}

// Validate checks that the configuration has valid values.
// Required fields are handled by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.DocumentType != "" {
		switch c.DocumentType {
		case "resume", "cover-letter", "both":
		default:
			return fmt.Errorf("config error: 'document_type' must be resume, cover-letter, or both")
		}
	}

	if c.ResumePath != "" {
		if _, err := os.Stat(c.ResumePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.ResumePath)
		}
	}
	if c.JobsCSV != "" {
		if _, err := os.Stat(c.JobsCSV); os.IsNotExist(err) {
			return fmt.Errorf("config error: jobs CSV file not found: %s", c.JobsCSV)
		}
	}
	if c.PortfolioPath != "" {
		if _, err := os.Stat(c.PortfolioPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: portfolio file not found: %s", c.PortfolioPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags, and environment values under both.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.ResumePath == "" {
		result.ResumePath = defaults.ResumePath
	}
	if result.PortfolioPath == "" {
		result.PortfolioPath = defaults.PortfolioPath
	}
	if result.JobsCSV == "" {
		result.JobsCSV = defaults.JobsCSV
	}
	if result.DocumentType == "" {
		result.DocumentType = defaults.DocumentType
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.CacheDir == "" {
		result.CacheDir = defaults.CacheDir
	}
	if result.OpenAIKey == "" {
		result.OpenAIKey = defaults.OpenAIKey
	}
	if result.AnthropicKey == "" {
		result.AnthropicKey = defaults.AnthropicKey
	}
	if result.GeminiKey == "" {
		result.GeminiKey = defaults.GeminiKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.WebhookURL == "" {
		result.WebhookURL = defaults.WebhookURL
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
