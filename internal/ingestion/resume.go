// Package ingestion turns uploaded resume and portfolio files into the
// structured data the rest of the system works with. PDF resumes go through
// the multimodal parsing model; JSON resumes are decoded directly.
package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jonathan/applyforge/internal/llm"
	"github.com/jonathan/applyforge/internal/prompts"
	"github.com/jonathan/applyforge/internal/schemas"
	"github.com/jonathan/applyforge/internal/types"
)

// Parser ingests resume files. Implementations may call a parsing model.
type Parser interface {
	ParseResumeFile(ctx context.Context, fileName string, data []byte) (*types.ParsedResumeData, error)
}

// ResumeParser parses resume files, delegating PDF extraction to a
// multimodal model client.
type ResumeParser struct {
	client llm.Client
}

func NewResumeParser(client llm.Client) *ResumeParser {
	return &ResumeParser{client: client}
}

// ParseResumeFile dispatches on file extension. PDFs are parsed by the model;
// JSON files are decoded and schema-checked directly. Anything else is an
// input error.
func (p *ResumeParser) ParseResumeFile(ctx context.Context, fileName string, data []byte) (*types.ParsedResumeData, error) {
	if len(data) == 0 {
		return nil, &InputError{FileName: fileName, Message: "file is empty"}
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return p.parsePDF(ctx, fileName, data)
	case ".json":
		return parseJSONResume(fileName, data)
	default:
		return nil, &InputError{FileName: fileName, Message: "unsupported file type, expected .pdf or .json"}
	}
}

// parsePDF asks the model for structured JSON. A response that fails to
// decode or validate still yields a usable resume: the raw response text
// becomes the extraction text and the structured fields stay empty.
func (p *ResumeParser) parsePDF(ctx context.Context, fileName string, data []byte) (*types.ParsedResumeData, error) {
	prompt := prompts.MustGet("parsing.json", "parse-resume")

	response, err := p.client.GenerateFromPDF(ctx, prompt, data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	cleaned := llm.CleanJSONBlock(response)

	var parsed types.ParsedResumeData
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return &types.ParsedResumeData{RawText: response}, nil
	}
	if err := schemas.ValidateResumeJSON([]byte(cleaned)); err != nil {
		return &types.ParsedResumeData{RawText: response}, nil
	}
	if !parsed.HasRawText() {
		parsed.RawText = cleaned
	}
	return &parsed, nil
}

func parseJSONResume(fileName string, data []byte) (*types.ParsedResumeData, error) {
	if err := schemas.ValidateResumeJSON(data); err != nil {
		return nil, fmt.Errorf("resume %s: %w", fileName, err)
	}

	var parsed types.ParsedResumeData
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &ParseError{Message: fmt.Sprintf("decoding resume %s", fileName), Cause: err}
	}
	if !parsed.HasRawText() {
		parsed.RawText = string(data)
	}
	return &parsed, nil
}

// ParsePortfolioJSON accepts an optional portfolio description. The content
// is treated as an opaque JSON document; only well-formedness is checked.
func ParsePortfolioJSON(data []byte) (types.PortfolioData, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if !json.Valid(data) {
		return nil, &InputError{Message: "portfolio file is not valid JSON"}
	}
	return types.PortfolioData(data), nil
}
