package types

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// DocumentKind identifies a single generated document type.
type DocumentKind string

// Document kinds produced by the pipeline.
const (
	KindResume      DocumentKind = "resume"
	KindCoverLetter DocumentKind = "cover-letter"
)

// DocumentType selects which document kinds a generation run produces.
type DocumentType string

// Document type selector values.
const (
	DocTypeResume      DocumentType = "resume"
	DocTypeCoverLetter DocumentType = "cover-letter"
	DocTypeBoth        DocumentType = "both"
)

// Valid reports whether the selector holds a known value.
func (d DocumentType) Valid() bool {
	switch d {
	case DocTypeResume, DocTypeCoverLetter, DocTypeBoth:
		return true
	}
	return false
}

// Includes reports whether the selector covers the given document kind.
func (d DocumentType) Includes(kind DocumentKind) bool {
	if d == DocTypeBoth {
		return true
	}
	return string(d) == string(kind)
}

// Kinds returns the ordered document kinds this selector requests.
func (d DocumentType) Kinds() []DocumentKind {
	switch d {
	case DocTypeResume:
		return []DocumentKind{KindResume}
	case DocTypeCoverLetter:
		return []DocumentKind{KindCoverLetter}
	case DocTypeBoth:
		return []DocumentKind{KindResume, KindCoverLetter}
	}
	return nil
}

// StyleName returns the display label the settings store records for this selector.
func (d DocumentType) StyleName() string {
	switch d {
	case DocTypeResume:
		return "Resume Only"
	case DocTypeCoverLetter:
		return "Cover Letter Only"
	default:
		return "Resume + Cover Letter"
	}
}

// GeneratedDocument is one finished output. Created once per (job, kind) pair
// per run and never mutated afterwards; JobID is a back-reference, not ownership.
type GeneratedDocument struct {
	Type        DocumentKind `json:"type"`
	RawContent  string       `json:"rawContent"`
	HTMLContent string       `json:"htmlContent"`
	JobID       string       `json:"jobId,omitempty"`
}

// ExampleTexts holds optional example documents used to bias LLM output.
// Never mutated after load.
type ExampleTexts struct {
	ExampleResumeText      string `json:"exampleResumeText,omitempty"`
	ExampleCoverLetterText string `json:"exampleCoverLetterText,omitempty"`
	StyledResumeText       string `json:"styledResumeText,omitempty"`
	StyledCoverLetterText  string `json:"styledCoverLetterText,omitempty"`
}

// ContentExample returns the content-style example text for a document kind.
func (e ExampleTexts) ContentExample(kind DocumentKind) string {
	if kind == KindCoverLetter {
		return e.ExampleCoverLetterText
	}
	return e.ExampleResumeText
}

// StyledExample returns the visually-styled example text for a document kind.
func (e ExampleTexts) StyledExample(kind DocumentKind) string {
	if kind == KindCoverLetter {
		return e.StyledCoverLetterText
	}
	return e.StyledResumeText
}

// PortfolioData is an opaque JSON blob describing an external portfolio site.
// The pipeline only walks it for section-anchor URL extraction.
type PortfolioData json.RawMessage

// MarshalJSON implements json.Marshaler passing the blob through unchanged.
func (p PortfolioData) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("null"), nil
	}
	return p, nil
}

// UnmarshalJSON implements json.Unmarshaler retaining the raw bytes.
func (p *PortfolioData) UnmarshalJSON(data []byte) error {
	if p == nil {
		return fmt.Errorf("types.PortfolioData: UnmarshalJSON on nil pointer")
	}
	*p = append((*p)[:0], data...)
	return nil
}

// RequestData is the single unit of work the pipeline processes per job.
type RequestData struct {
	ParsedResumeData *ParsedResumeData `json:"parsedResumeData" validate:"required"`
	JobTarget        JobTarget         `json:"jobTarget" validate:"required"`
	DocumentType     DocumentType      `json:"documentType" validate:"required,oneof=resume cover-letter both"`
	Examples         ExampleTexts      `json:"examples,omitempty"`
	Portfolio        PortfolioData     `json:"portfolioData,omitempty"`
}

var requestValidator = validator.New()

// Validate checks the struct-level constraints on a unit of work.
func (r RequestData) Validate() error {
	return requestValidator.Struct(r)
}
