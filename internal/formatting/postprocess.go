package formatting

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	portfolioMarkerRe = regexp.MustCompile(`\[PORTFOLIO_LINK text="([^"]*)" url="([^"]*)"\]`)

	// Bracketed fill-in slots the formatting model is forbidden to emit,
	// e.g. [Your Name], [Insert Date], [Company Address].
	placeholderRe = regexp.MustCompile(`\[(?:Your|Insert|Candidate|Company|Recipient|Hiring)[^\]\n]*\]`)
)

// StripCodeFences removes a wrapping markdown code fence from model output.
// Handles ```html, ```, and trailing fences; interior fences are left alone.
func StripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	// Drop the opening fence line, including any language identifier.
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	} else {
		return ""
	}

	trimmed = strings.TrimRight(trimmed, " \t\r\n")
	if strings.HasSuffix(trimmed, "```") {
		trimmed = strings.TrimRight(trimmed[:len(trimmed)-3], " \t\r\n")
	}
	return strings.TrimSpace(trimmed)
}

// ConvertPortfolioMarkers rewrites every inline portfolio marker into an
// anchor tag with the marker's exact text and url values. Output with no
// markers passes through untouched.
func ConvertPortfolioMarkers(html string) string {
	return portfolioMarkerRe.ReplaceAllString(html, `<a href="$2">$1</a>`)
}

// ScrubPlaceholders rejects output that still carries placeholder values the
// prompts forbid. It never rewrites; unusable output fails the document.
func ScrubPlaceholders(html string) error {
	if strings.Contains(html, "Not provided") {
		return &ValidationError{Message: `output contains the placeholder "Not provided"`}
	}
	if m := placeholderRe.FindString(html); m != "" {
		return &ValidationError{Message: fmt.Sprintf("output contains the placeholder %q", m)}
	}
	return nil
}

// EnsureHTMLDocument verifies the output is a full document rather than a
// fragment or refusal prose.
func EnsureHTMLDocument(html string) error {
	lowered := strings.ToLower(html)
	if !strings.HasPrefix(lowered, "<!doctype html") && !strings.HasPrefix(lowered, "<html") {
		return &ValidationError{Message: "output is not a complete HTML document"}
	}
	return nil
}
