package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/applyforge/internal/promptbuild"
	"github.com/jonathan/applyforge/internal/types"
)

// Generator turns one (resume, job, kind) triple into raw document text.
type Generator struct {
	provider ContentProvider
}

func NewGenerator(provider ContentProvider) *Generator {
	return &Generator{provider: provider}
}

// Generate builds the prompt for the requested document kind and asks the
// content model for the text. The returned string is plain prose, possibly
// carrying portfolio link markers, not HTML.
func (g *Generator) Generate(ctx context.Context, kind types.DocumentKind, resume *types.ParsedResumeData, job types.JobTarget, exampleText string, portfolio types.PortfolioData) (string, error) {
	userPrompt, err := promptbuild.BuildPrompt(kind, resume, job, exampleText, portfolio)
	if err != nil {
		return "", fmt.Errorf("building %s prompt: %w", kind, err)
	}

	content, err := g.provider.GenerateContent(ctx, SystemPrompt(), userPrompt)
	if err != nil {
		return "", fmt.Errorf("generating %s for %s: %w", kind, job.Label(), err)
	}
	if strings.Contains(content, "Not provided") {
		return "", &ValidationError{Message: "generated content contains a placeholder value"}
	}
	return content, nil
}
