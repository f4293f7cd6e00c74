package ingestion

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	response   string
	err        error
	lastPrompt string
	gotPDF     []byte
}

func (s *stubClient) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	return s.response, s.err
}

func (s *stubClient) GenerateFromPDF(_ context.Context, prompt string, pdfData []byte) (string, error) {
	s.lastPrompt = prompt
	s.gotPDF = pdfData
	return s.response, s.err
}

func (s *stubClient) Close() error { return nil }

const structuredResponse = `{
	"rawText": "Jane Doe\nStaff engineer at Initech.",
	"personalInfo": {"fullName": "Jane Doe", "email": "jane@example.com"},
	"workExperience": [
		{"title": "Staff Engineer", "company": "Initech", "period": "2019-2024",
		 "responsibilities": ["Led the billing rewrite"]}
	]
}`

func TestParseResumeFile_PDF(t *testing.T) {
	client := &stubClient{response: structuredResponse}
	parser := NewResumeParser(client)

	resume, err := parser.ParseResumeFile(context.Background(), "resume.pdf", []byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", resume.PersonalInfo.FullName)
	assert.Len(t, resume.WorkExperience, 1)
	assert.True(t, resume.HasRawText())
	assert.Equal(t, []byte("%PDF-1.4 fake"), client.gotPDF)
	assert.Contains(t, client.lastPrompt, "JSON")
}

func TestParseResumeFile_PDFWithFencedResponse(t *testing.T) {
	client := &stubClient{response: "```json\n" + structuredResponse + "\n```"}
	parser := NewResumeParser(client)

	resume, err := parser.ParseResumeFile(context.Background(), "resume.pdf", []byte("pdf"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", resume.PersonalInfo.FullName)
}

func TestParseResumeFile_PDFFallbackOnBadJSON(t *testing.T) {
	client := &stubClient{response: "Jane Doe is a staff engineer with ten years of experience."}
	parser := NewResumeParser(client)

	resume, err := parser.ParseResumeFile(context.Background(), "resume.pdf", []byte("pdf"))
	require.NoError(t, err)
	assert.Nil(t, resume.PersonalInfo)
	assert.Equal(t, client.response, resume.RawText)
}

func TestParseResumeFile_PDFFallbackOnSchemaViolation(t *testing.T) {
	client := &stubClient{response: `{"rawText": 42, "salary": "lots"}`}
	parser := NewResumeParser(client)

	resume, err := parser.ParseResumeFile(context.Background(), "resume.pdf", []byte("pdf"))
	require.NoError(t, err)
	assert.Nil(t, resume.PersonalInfo)
	assert.True(t, resume.HasRawText())
}

func TestParseResumeFile_PDFModelError(t *testing.T) {
	client := &stubClient{err: errors.New("quota exceeded")}
	parser := NewResumeParser(client)

	_, err := parser.ParseResumeFile(context.Background(), "resume.pdf", []byte("pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resume.pdf")
}

func TestParseResumeFile_JSON(t *testing.T) {
	parser := NewResumeParser(nil)

	resume, err := parser.ParseResumeFile(context.Background(), "resume.json", []byte(structuredResponse))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", resume.PersonalInfo.FullName)
}

func TestParseResumeFile_JSONSchemaViolation(t *testing.T) {
	parser := NewResumeParser(nil)

	_, err := parser.ParseResumeFile(context.Background(), "resume.json", []byte(`{"salary": 100}`))
	require.Error(t, err)
}

func TestParseResumeFile_UnsupportedExtension(t *testing.T) {
	parser := NewResumeParser(nil)

	_, err := parser.ParseResumeFile(context.Background(), "resume.docx", []byte("data"))
	require.Error(t, err)
	var inputErr *InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestParseResumeFile_EmptyFile(t *testing.T) {
	parser := NewResumeParser(nil)

	_, err := parser.ParseResumeFile(context.Background(), "resume.pdf", nil)
	require.Error(t, err)
	var inputErr *InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestParsePortfolioJSON(t *testing.T) {
	portfolio, err := ParsePortfolioJSON([]byte(`{"home": "https://j.dev"}`))
	require.NoError(t, err)
	assert.NotEmpty(t, portfolio)

	portfolio, err = ParsePortfolioJSON(nil)
	require.NoError(t, err)
	assert.Nil(t, portfolio)

	_, err = ParsePortfolioJSON([]byte(`{broken`))
	require.Error(t, err)
	var inputErr *InputError
	assert.ErrorAs(t, err, &inputErr)
}
