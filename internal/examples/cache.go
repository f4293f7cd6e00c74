package examples

import (
	"context"
	"embed"
	"fmt"

	"github.com/jonathan/applyforge/internal/ingestion"
	"github.com/jonathan/applyforge/internal/types"
)

//go:embed defaults/*.pdf
var defaultFiles embed.FS

// Fixed cache keys. Styled variants hold fully formatted documents the user
// supplied; they have no bundled defaults.
const (
	KeyExampleResume      = "default_example_resume"
	KeyExampleCoverLetter = "default_example_coverletter"
	KeyStyledResume       = "default_styled_resume"
	KeyStyledCoverLetter  = "default_styled_coverletter"
)

var defaultSources = map[string]string{
	KeyExampleResume:      "defaults/resume.pdf",
	KeyExampleCoverLetter: "defaults/coverletter.pdf",
}

// Cache resolves example texts from the store, falling back to bundled
// default documents parsed through the resume-parsing collaborator.
type Cache struct {
	store  Store
	parser ingestion.Parser
}

func NewCache(store Store, parser ingestion.Parser) *Cache {
	return &Cache{store: store, parser: parser}
}

// Load assembles the example texts for a run. A missing key is filled from
// its bundled default when one exists and the parser cooperates; anything
// that cannot be resolved is left empty rather than failing the run.
func (c *Cache) Load(ctx context.Context) types.ExampleTexts {
	return types.ExampleTexts{
		ExampleResumeText:      c.resolve(ctx, KeyExampleResume),
		ExampleCoverLetterText: c.resolve(ctx, KeyExampleCoverLetter),
		StyledResumeText:       c.resolve(ctx, KeyStyledResume),
		StyledCoverLetterText:  c.resolve(ctx, KeyStyledCoverLetter),
	}
}

func (c *Cache) resolve(ctx context.Context, key string) string {
	if value, ok, err := c.store.Get(key); err == nil && ok {
		return value
	}

	source, hasDefault := defaultSources[key]
	if !hasDefault || c.parser == nil {
		return ""
	}
	data, err := defaultFiles.ReadFile(source)
	if err != nil {
		return ""
	}
	parsed, err := c.parser.ParseResumeFile(ctx, source, data)
	if err != nil || !parsed.HasRawText() {
		return ""
	}

	// Cache failures only cost a re-parse next run.
	_ = c.store.Set(key, parsed.RawText)
	return parsed.RawText
}

// Put stores a user-supplied example under a known key.
func (c *Cache) Put(key, value string) error {
	if _, ok := defaultSources[key]; !ok && key != KeyStyledResume && key != KeyStyledCoverLetter {
		return fmt.Errorf("unknown example key %q", key)
	}
	return c.store.Set(key, value)
}

// Invalidate drops one cached entry.
func (c *Cache) Invalidate(key string) error {
	return c.store.Delete(key)
}

// Clear drops every cached entry.
func (c *Cache) Clear() error {
	return c.store.Clear()
}
