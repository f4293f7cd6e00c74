// Package promptbuild renders parsed resume data and a job target into
// content-generation prompts. All builders are pure: no I/O, no network.
package promptbuild

import (
	"fmt"
	"strings"

	"github.com/jonathan/applyforge/internal/prompts"
)

// PromptSpec is a typed prompt under construction: a template reference plus
// named section values. Rendering fails when a required section was never
// filled, so a missing field cannot silently vanish from the prompt.
type PromptSpec struct {
	file     string
	key      string
	required []string
	values   map[string]string
}

// NewPromptSpec creates a spec for the given embedded template. The required
// names must all be set before Render succeeds.
func NewPromptSpec(file, key string, required ...string) *PromptSpec {
	return &PromptSpec{
		file:     file,
		key:      key,
		required: required,
		values:   make(map[string]string),
	}
}

// Set assigns a section value by placeholder name.
func (s *PromptSpec) Set(name, value string) *PromptSpec {
	s.values[name] = value
	return s
}

// Render loads the template, substitutes all section values, and verifies
// completeness. Any required section left unset and any unfilled placeholder
// remaining in the output is an error.
func (s *PromptSpec) Render() (string, error) {
	template, err := prompts.Get(s.file, s.key)
	if err != nil {
		return "", err
	}

	for _, name := range s.required {
		if _, ok := s.values[name]; !ok {
			return "", fmt.Errorf("prompt %s/%s: required section %q not set", s.file, s.key, name)
		}
	}

	result := prompts.Format(template, s.values)
	if idx := strings.Index(result, "{{."); idx >= 0 {
		end := strings.Index(result[idx:], "}}")
		placeholder := result[idx:]
		if end >= 0 {
			placeholder = result[idx : idx+end+2]
		}
		return "", fmt.Errorf("prompt %s/%s: unfilled placeholder %s", s.file, s.key, placeholder)
	}

	return result, nil
}
