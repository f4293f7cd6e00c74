package formatting

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/jonathan/applyforge/internal/prompts"
	"github.com/jonathan/applyforge/internal/types"
)

//go:embed css/*.css
var cssFiles embed.FS

const formattingFile = "formatting.json"

// FormatInput carries everything needed to format one generated document.
type FormatInput struct {
	RawContent    string
	Kind          types.DocumentKind
	PersonalInfo  *types.PersonalInfo
	StyledExample string
	References    []types.Reference
	Portfolio     types.PortfolioData
}

// Formatter turns raw generated text into a finished HTML document.
type Formatter struct {
	provider FormattingProvider
}

func NewFormatter(provider FormattingProvider) *Formatter {
	return &Formatter{provider: provider}
}

// Format builds the formatting prompt, invokes the model, and applies the
// deterministic post-pipeline. Post-checks fail the document rather than
// silently shipping broken HTML.
func (f *Formatter) Format(ctx context.Context, input FormatInput) (string, error) {
	prompt, err := buildFormattingPrompt(input)
	if err != nil {
		return "", fmt.Errorf("building formatting prompt: %w", err)
	}

	raw, err := f.provider.FormatHTML(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("formatting %s: %w", input.Kind, err)
	}

	doc := StripCodeFences(raw)
	doc = ConvertPortfolioMarkers(doc)
	if input.Kind == types.KindResume {
		doc = EnforceReferencesBlock(doc, input.References)
	}
	if err := EnsureHTMLDocument(doc); err != nil {
		return "", err
	}
	if err := ScrubPlaceholders(doc); err != nil {
		return "", err
	}
	return doc, nil
}

func buildFormattingPrompt(input FormatInput) (string, error) {
	css, sections, label, err := kindAssets(input.Kind)
	if err != nil {
		return "", err
	}

	template, err := prompts.Get(formattingFile, "format-document")
	if err != nil {
		return "", err
	}

	referencesInstruction := ""
	if input.Kind == types.KindResume && len(input.References) > 0 {
		instr, err := prompts.Get(formattingFile, "references-instruction")
		if err != nil {
			return "", err
		}
		referencesInstruction = prompts.Format(instr, map[string]string{
			"ReferencesHTML": RenderReferencesTable(input.References),
		})
	}

	portfolioInstruction := ""
	if strings.Contains(input.RawContent, "[PORTFOLIO_LINK") {
		portfolioInstruction, err = prompts.Get(formattingFile, "portfolio-instruction")
		if err != nil {
			return "", err
		}
	}

	return prompts.Format(template, map[string]string{
		"DocTypeLabel":          label,
		"CSSFramework":          css,
		"Content":               input.RawContent,
		"IdentityBlock":         identityBlock(input.PersonalInfo),
		"StyledExampleBlock":    styledExampleBlock(input.StyledExample),
		"ReferencesInstruction": referencesInstruction,
		"PortfolioInstruction":  portfolioInstruction,
		"SectionInstructions":   sections,
	}), nil
}

func kindAssets(kind types.DocumentKind) (css, sections, label string, err error) {
	var cssName, sectionKey string
	switch kind {
	case types.KindCoverLetter:
		cssName, sectionKey, label = "css/coverletter.css", "cover-letter-sections", "cover letter"
	default:
		cssName, sectionKey, label = "css/resume.css", "resume-sections", "resume"
	}
	data, err := cssFiles.ReadFile(cssName)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to read CSS framework %s: %w", cssName, err)
	}
	sections, err = prompts.Get(formattingFile, sectionKey)
	if err != nil {
		return "", "", "", err
	}
	return string(data), sections, label, nil
}

func identityBlock(pi *types.PersonalInfo) string {
	if pi == nil {
		return "No identity values supplied. Derive the header from the content itself."
	}
	var b strings.Builder
	write := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, value)
		}
	}
	write("Name", pi.FullName)
	write("Email", pi.Email)
	write("Phone", pi.Phone)
	write("Address", pi.Address)
	write("LinkedIn", pi.LinkedIn)
	write("Portfolio", pi.Portfolio)
	return strings.TrimRight(b.String(), "\n")
}

func styledExampleBlock(example string) string {
	if strings.TrimSpace(example) == "" {
		return ""
	}
	return "## STYLED EXAMPLE (imitate this document's visual structure, not its facts):\n" + example + "\n"
}
