package formatting

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/applyforge/internal/types"
)

type fakeFormatProvider struct {
	response   string
	err        error
	lastPrompt string
}

func (f *fakeFormatProvider) FormatHTML(_ context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func baseInput() FormatInput {
	return FormatInput{
		RawContent: "JANE DOE\nProfessional Summary\nStaff engineer.",
		Kind:       types.KindResume,
		PersonalInfo: &types.PersonalInfo{
			FullName: "Jane Doe",
			Email:    "jane@example.com",
		},
	}
}

func TestFormatter_StripsFencesAndConvertsMarkers(t *testing.T) {
	provider := &fakeFormatProvider{
		response: "```html\n<!DOCTYPE html>\n<html><body>" +
			`<p>Led the [PORTFOLIO_LINK text="billing rewrite" url="https://j.dev/work#billing"].</p>` +
			"</body></html>\n```",
	}
	f := NewFormatter(provider)

	doc, err := f.Format(context.Background(), baseInput())
	require.NoError(t, err)
	assert.NotContains(t, doc, "```")
	assert.NotContains(t, doc, "PORTFOLIO_LINK")
	assert.Contains(t, doc, `<a href="https://j.dev/work#billing">billing rewrite</a>`)
}

func TestFormatter_PromptCarriesCSSAndIdentity(t *testing.T) {
	provider := &fakeFormatProvider{response: "<!DOCTYPE html>\n<html><body></body></html>"}
	f := NewFormatter(provider)

	_, err := f.Format(context.Background(), baseInput())
	require.NoError(t, err)
	assert.Contains(t, provider.lastPrompt, "font-family: Georgia")
	assert.Contains(t, provider.lastPrompt, "Name: Jane Doe")
	assert.Contains(t, provider.lastPrompt, "jane@example.com")
	assert.Contains(t, provider.lastPrompt, "in exactly this order")
	assert.NotContains(t, provider.lastPrompt, "{{.")
}

func TestFormatter_ReferencesInstructionOnlyWithReferences(t *testing.T) {
	provider := &fakeFormatProvider{response: "<!DOCTYPE html>\n<html><body></body></html>"}
	f := NewFormatter(provider)

	input := baseInput()
	_, err := f.Format(context.Background(), input)
	require.NoError(t, err)
	assert.NotContains(t, provider.lastPrompt, "PRE-BUILT REFERENCES BLOCK")

	input.References = threeRefs
	doc, err := f.Format(context.Background(), input)
	require.NoError(t, err)
	assert.Contains(t, provider.lastPrompt, "PRE-BUILT REFERENCES BLOCK")
	assert.Contains(t, provider.lastPrompt, "Alan Grant")
	// The model dropped the block, so the post-pass restored it.
	assert.Contains(t, doc, referencesStart)
	assert.Contains(t, doc, "Ian Malcolm")
}

func TestFormatter_CoverLetterAssets(t *testing.T) {
	provider := &fakeFormatProvider{response: "<!DOCTYPE html>\n<html><body></body></html>"}
	f := NewFormatter(provider)

	input := baseInput()
	input.Kind = types.KindCoverLetter
	input.References = threeRefs

	doc, err := f.Format(context.Background(), input)
	require.NoError(t, err)
	assert.Contains(t, provider.lastPrompt, "cover letter")
	assert.Contains(t, provider.lastPrompt, "Sender address block")
	assert.Contains(t, provider.lastPrompt, "signature-block")
	// Cover letters never get a references table.
	assert.NotContains(t, doc, referencesStart)
}

func TestFormatter_RejectsPlaceholderOutput(t *testing.T) {
	provider := &fakeFormatProvider{
		response: "<!DOCTYPE html>\n<html><body><p>Sincerely, [Your Name]</p></body></html>",
	}
	f := NewFormatter(provider)

	_, err := f.Format(context.Background(), baseInput())
	require.Error(t, err)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestFormatter_RejectsNonDocumentOutput(t *testing.T) {
	provider := &fakeFormatProvider{response: "Here is your resume as requested."}
	f := NewFormatter(provider)

	_, err := f.Format(context.Background(), baseInput())
	assert.Error(t, err)
}

func TestFormatter_MarkerInstructionOnlyWhenMarkersPresent(t *testing.T) {
	provider := &fakeFormatProvider{response: "<!DOCTYPE html>\n<html><body></body></html>"}
	f := NewFormatter(provider)

	input := baseInput()
	_, err := f.Format(context.Background(), input)
	require.NoError(t, err)
	assert.NotContains(t, provider.lastPrompt, "PORTFOLIO LINKS")

	input.RawContent += `Shipped the [PORTFOLIO_LINK text="pipeline" url="https://j.dev#p"].`
	_, err = f.Format(context.Background(), input)
	require.NoError(t, err)
	assert.Contains(t, provider.lastPrompt, "PORTFOLIO LINKS")
}

func TestClaudeProvider_SendRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, ClaudeAPIVersion, r.Header.Get("Anthropic-Version"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"content":[{"type":"text","text":"<!DOCTYPE html><html></html>"}]}`))
	}))
	defer server.Close()

	p := NewClaudeProvider("test-key", "")
	p.endpoint = server.URL

	text, err := p.FormatHTML(context.Background(), "format this")
	require.NoError(t, err)
	assert.Equal(t, "<!DOCTYPE html><html></html>", text)
}

func TestClaudeProvider_RetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"content":[{"type":"text","text":"ok"}]}`))
	}))
	defer server.Close()

	p := NewClaudeProvider("test-key", "")
	p.endpoint = server.URL

	text, err := p.FormatHTML(context.Background(), "format this")
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClaudeProvider_NonRetryableStatus(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"type":"authentication_error","message":"bad key"}}`))
	}))
	defer server.Close()

	p := NewClaudeProvider("bad-key", "")
	p.endpoint = server.URL

	_, err := p.FormatHTML(context.Background(), "format this")
	require.Error(t, err)
	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClaudeProvider_DefaultModel(t *testing.T) {
	p := NewClaudeProvider("k", "")
	assert.Equal(t, ClaudeModel, p.model)
	p = NewClaudeProvider("k", "claude-opus-4-1")
	assert.Equal(t, "claude-opus-4-1", p.model)
}
