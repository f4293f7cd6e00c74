package promptbuild

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/applyforge/internal/types"
)

func fullResume() *types.ParsedResumeData {
	return &types.ParsedResumeData{
		RawText: "Jane Doe\njane@example.com\nStaff engineer with ten years of experience.",
		PersonalInfo: &types.PersonalInfo{
			FullName:  "Jane Doe",
			Email:     "jane@example.com",
			Phone:     "555-0100",
			Address:   "12 Elm St, Springfield",
			Portfolio: "https://janedoe.dev",
		},
		WorkExperience: []types.WorkExperience{
			{ID: "exp-1", Title: "Staff Engineer", Company: "Initech", Period: "2019-2024",
				Responsibilities: []string{"Led the billing platform rewrite", "Mentored six engineers"}},
		},
		Education: []types.Education{
			{ID: "edu-1", Degree: "BSc Computer Science", Institution: "State University", Period: "2011-2015",
				Achievements: []string{"Graduated summa cum laude"}},
		},
		Skills: []types.Skill{
			{Category: "Languages", Items: []string{"Go", "Python"}},
		},
		Certifications: []string{"AWS Solutions Architect"},
		Achievements:   []string{"Speaker at GopherCon 2023"},
		References: []types.Reference{
			{Name: "Alan Grant", Title: "VP Engineering, Initech", Contact: "alan@initech.com"},
			{Name: "Ellie Sattler", Title: "CTO, Hooli", Contact: "ellie@hooli.com"},
			{Name: "Ian Malcolm", Title: "Principal, Chaos Labs", Contact: "ian@chaoslabs.io"},
		},
	}
}

func targetJob() types.JobTarget {
	return types.JobTarget{
		ID:             "job-1",
		CompanyName:    "Acme Corp",
		Position:       "Backend Engineer",
		JobDescription: "Build Go services for the payments team.",
		Location:       "Remote",
	}
}

func TestBuildResumePrompt_IncludesAllReferences(t *testing.T) {
	prompt, err := BuildResumePrompt(fullResume(), targetJob(), "", nil)
	require.NoError(t, err)

	assert.Contains(t, prompt, "Alan Grant")
	assert.Contains(t, prompt, "Ellie Sattler")
	assert.Contains(t, prompt, "Ian Malcolm")
	assert.Contains(t, prompt, "verbatim")
}

func TestBuildResumePrompt_CoreSections(t *testing.T) {
	prompt, err := BuildResumePrompt(fullResume(), targetJob(), "", nil)
	require.NoError(t, err)

	assert.Contains(t, prompt, "Backend Engineer")
	assert.Contains(t, prompt, "Acme Corp")
	assert.Contains(t, prompt, "Staff Engineer at Initech (2019-2024)")
	assert.Contains(t, prompt, "Led the billing platform rewrite")
	assert.Contains(t, prompt, "BSc Computer Science, State University")
	assert.Contains(t, prompt, "Languages: Go, Python")
	assert.Contains(t, prompt, "AWS Solutions Architect")
	assert.Contains(t, prompt, "Speaker at GopherCon 2023")
	assert.Contains(t, prompt, "Build Go services for the payments team.")
	assert.Contains(t, prompt, "Academic scores, GPAs, honors, and academic awards may appear ONLY in the Education section.")
	assert.NotContains(t, prompt, "{{.")
}

func TestBuildResumePrompt_RawTextFallbackForMissingReferences(t *testing.T) {
	resume := fullResume()
	resume.References = nil

	prompt, err := BuildResumePrompt(resume, targetJob(), "", nil)
	require.NoError(t, err)

	assert.Contains(t, prompt, "Extract the candidate's references from the RESUME RAW TEXT")
	assert.Contains(t, prompt, "RESUME RAW TEXT")
	assert.Contains(t, prompt, "Staff engineer with ten years of experience.")
	// The fallback path must never surface a placeholder value.
	assert.NotContains(t, prompt, "References:\nNot provided")
}

func TestBuildResumePrompt_NoRawTextBlockWhenComplete(t *testing.T) {
	prompt, err := BuildResumePrompt(fullResume(), targetJob(), "", nil)
	require.NoError(t, err)

	assert.NotContains(t, prompt, "RESUME RAW TEXT")
}

func TestBuildResumePrompt_ExampleIncluded(t *testing.T) {
	prompt, err := BuildResumePrompt(fullResume(), targetJob(), "Example resume body with crisp bullet points.", nil)
	require.NoError(t, err)

	assert.Contains(t, prompt, "STYLE EXAMPLE")
	assert.Contains(t, prompt, "Example resume body with crisp bullet points.")
	assert.Contains(t, prompt, "do not copy its facts")
}

func TestBuildResumePrompt_RawTextOnlyResume(t *testing.T) {
	resume := &types.ParsedResumeData{
		RawText: "John Smith, plumber, 20 years of residential work.",
	}
	prompt, err := BuildResumePrompt(resume, targetJob(), "", nil)
	require.NoError(t, err)

	assert.Contains(t, prompt, "Extract the candidate's work history from the RESUME RAW TEXT")
	assert.Contains(t, prompt, "John Smith, plumber")
}

func TestBuildCoverLetterPrompt_ClicheBansAndName(t *testing.T) {
	prompt, err := BuildCoverLetterPrompt(fullResume(), targetJob(), "", nil)
	require.NoError(t, err)

	assert.Contains(t, prompt, "Jane Doe")
	assert.Contains(t, prompt, "I am writing to apply")
	assert.Contains(t, prompt, "To whom it may concern")
	assert.Contains(t, prompt, "results-driven")
	assert.Contains(t, prompt, "never use bullet lists in the letter body")
	assert.Contains(t, prompt, "RETURN ADDRESS")
	assert.Contains(t, prompt, "12 Elm St, Springfield")
	assert.NotContains(t, prompt, "{{.")
}

func TestBuildPrompt_Dispatch(t *testing.T) {
	resumePrompt, err := BuildPrompt(types.KindResume, fullResume(), targetJob(), "", nil)
	require.NoError(t, err)
	letterPrompt, err := BuildPrompt(types.KindCoverLetter, fullResume(), targetJob(), "", nil)
	require.NoError(t, err)

	assert.NotEqual(t, resumePrompt, letterPrompt)
	assert.Contains(t, letterPrompt, "cover letter")
}

func TestAnchorLinks_CollectsFragmentURLs(t *testing.T) {
	portfolio := types.PortfolioData(`{
		"name": "Jane Doe",
		"sections": [
			{"title": "Data Pipelines", "link": "https://janedoe.dev/work#data-pipelines"},
			{"title": "Open Source", "link": "https://janedoe.dev/work#open_source"}
		],
		"home": "https://janedoe.dev"
	}`)

	links := AnchorLinks(portfolio)
	require.Len(t, links, 2)
	urls := []string{links[0].URL, links[1].URL}
	assert.Contains(t, urls, "https://janedoe.dev/work#data-pipelines")
	assert.Contains(t, urls, "https://janedoe.dev/work#open_source")
	for _, l := range links {
		switch l.URL {
		case "https://janedoe.dev/work#data-pipelines":
			assert.Equal(t, "data pipelines", l.Topic)
		case "https://janedoe.dev/work#open_source":
			assert.Equal(t, "open source", l.Topic)
		}
	}
}

func TestAnchorLinks_DeterministicOrder(t *testing.T) {
	portfolio := types.PortfolioData(`{
		"b": "https://site.dev/p#beta",
		"a": "https://site.dev/p#alpha",
		"c": "https://site.dev/p#gamma"
	}`)

	first := AnchorLinks(portfolio)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, AnchorLinks(portfolio))
	}
	require.Len(t, first, 3)
	assert.Equal(t, "https://site.dev/p#alpha", first[0].URL)
}

func TestAnchorLinks_IgnoresNonAnchorStrings(t *testing.T) {
	portfolio := types.PortfolioData(`{
		"home": "https://site.dev",
		"note": "see section #3 of the handbook",
		"trailing": "https://site.dev/page#"
	}`)
	assert.Empty(t, AnchorLinks(portfolio))
}

func TestAnchorLinks_InvalidJSON(t *testing.T) {
	assert.Nil(t, AnchorLinks(types.PortfolioData(`{not json`)))
	assert.Nil(t, AnchorLinks(nil))
}

func TestBuildResumePrompt_PortfolioAnchorsInstruction(t *testing.T) {
	portfolio := types.PortfolioData(`{"work": "https://janedoe.dev/work#billing"}`)
	prompt, err := BuildResumePrompt(fullResume(), targetJob(), "", portfolio)
	require.NoError(t, err)

	assert.Contains(t, prompt, "PORTFOLIO SECTION LINKS")
	assert.Contains(t, prompt, "https://janedoe.dev/work#billing")
	assert.Contains(t, prompt, `[PORTFOLIO_LINK text=`)
	assert.Contains(t, prompt, "view my portfolio")
}

func TestBuildResumePrompt_BareURLPortfolio(t *testing.T) {
	prompt, err := BuildResumePrompt(fullResume(), targetJob(), "", nil)
	require.NoError(t, err)

	// No anchor data, but the personal-info portfolio URL still drives links.
	assert.Contains(t, prompt, "https://janedoe.dev")
	assert.Contains(t, prompt, "[PORTFOLIO_LINK text=")
}

func TestBuildResumePrompt_NoPortfolioAtAll(t *testing.T) {
	resume := fullResume()
	resume.PersonalInfo.Portfolio = ""
	prompt, err := BuildResumePrompt(resume, targetJob(), "", nil)
	require.NoError(t, err)

	assert.NotContains(t, prompt, "PORTFOLIO_LINK")
}

func TestPromptSpec_MissingRequiredSection(t *testing.T) {
	spec := NewPromptSpec(generationFile, "resume-content", "Position")
	_, err := spec.Render()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Position"`)
}

func TestPromptSpec_UnfilledPlaceholderDetected(t *testing.T) {
	// Only one of many placeholders filled; Render must refuse.
	spec := NewPromptSpec(generationFile, "resume-content")
	spec.Set("Position", "Backend Engineer")
	_, err := spec.Render()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unfilled placeholder")
}

func TestJobBlock_OmitsEmptyFields(t *testing.T) {
	block := jobBlock(types.JobTarget{CompanyName: "Acme", Position: "Engineer"})
	assert.Contains(t, block, "Position: Engineer")
	assert.Contains(t, block, "Company: Acme")
	assert.False(t, strings.Contains(block, "Location:"))
	assert.False(t, strings.Contains(block, "Description:"))
}

func TestJobBlock_PreservesDescriptionForm(t *testing.T) {
	// Descriptions imported as HTML must reach the model in their stored
	// form; tag stripping is for display only.
	html := "<ul><li>Build APIs with <strong>Go</strong></li></ul>"
	block := jobBlock(types.JobTarget{
		CompanyName:    "Acme",
		Position:       "Engineer",
		JobDescription: html,
	})
	assert.Contains(t, block, "Description:\n"+html)
}

func TestBuildResumePrompt_HTMLDescriptionPassedThrough(t *testing.T) {
	job := targetJob()
	job.JobDescription = "<ul><li>Build APIs with <strong>Go</strong></li></ul>"

	prompt, err := BuildResumePrompt(fullResume(), job, "", nil)
	require.NoError(t, err)

	assert.Contains(t, prompt, job.JobDescription)
}

func TestBuildResumePrompt_SectionHeadingsAppearOnce(t *testing.T) {
	prompt, err := BuildResumePrompt(fullResume(), targetJob(), "", nil)
	require.NoError(t, err)

	for _, heading := range []string{
		"CANDIDATE INFORMATION:",
		"WORK EXPERIENCE:",
		"EDUCATION:",
		"SKILLS:",
		"CERTIFICATIONS:",
		"KEY ACHIEVEMENTS:",
		"REFERENCES:",
		"TARGET JOB:",
	} {
		assert.Equal(t, 1, strings.Count(prompt, heading), heading)
	}
}
