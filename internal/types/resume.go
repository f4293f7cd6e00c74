// Package types provides type definitions for structured data used throughout the applyforge system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// PersonalInfo holds the candidate's contact details as extracted from the resume.
// Values are treated as immutable once parsed; generated documents must use them verbatim.
type PersonalInfo struct {
	FullName  string `json:"fullName,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	LinkedIn  string `json:"linkedIn,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// WorkExperience represents a single position. Responsibility order is
// significant (chronological as supplied by the source resume).
type WorkExperience struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Period           string   `json:"period"`
	Responsibilities []string `json:"responsibilities"`
}

// Education represents a degree or program entry.
type Education struct {
	ID           string   `json:"id"`
	Degree       string   `json:"degree"`
	Institution  string   `json:"institution"`
	Period       string   `json:"period"`
	Achievements []string `json:"achievements,omitempty"`
}

// Skill groups skill items under a category name. Categories are unique by
// name within one resume by convention, but uniqueness is not enforced.
type Skill struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// Reference is a professional reference. Order is preserved and every entry
// must be reproduced verbatim in generated resume output.
type Reference struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Contact string `json:"contact"`
}

// ParsedResumeData is the aggregate produced by the parsing collaborator.
// RawText is mandatory and serves as the fallback source of truth when
// structured fields are absent. Consumed read-only by the pipeline.
type ParsedResumeData struct {
	RawText        string           `json:"rawText"`
	PersonalInfo   *PersonalInfo    `json:"personalInfo,omitempty"`
	WorkExperience []WorkExperience `json:"workExperience,omitempty"`
	Education      []Education      `json:"education,omitempty"`
	Skills         []Skill          `json:"skills,omitempty"`
	Certifications []string         `json:"certifications,omitempty"`
	Achievements   []string         `json:"achievements,omitempty"`
	References     []Reference      `json:"references,omitempty"`
}

// FullName returns the candidate name, or empty string when personal info is absent.
func (r *ParsedResumeData) FullName() string {
	if r == nil || r.PersonalInfo == nil {
		return ""
	}
	return strings.TrimSpace(r.PersonalInfo.FullName)
}

// PortfolioURL returns the bare portfolio URL from personal info, if any.
func (r *ParsedResumeData) PortfolioURL() string {
	if r == nil || r.PersonalInfo == nil {
		return ""
	}
	return strings.TrimSpace(r.PersonalInfo.Portfolio)
}

// HasStructuredReferences reports whether at least one structured reference entry exists.
func (r *ParsedResumeData) HasStructuredReferences() bool {
	return r != nil && len(r.References) > 0
}

// HasRawText reports whether the mandatory raw text is present and non-blank.
func (r *ParsedResumeData) HasRawText() bool {
	return r != nil && strings.TrimSpace(r.RawText) != ""
}
