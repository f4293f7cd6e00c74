package promptbuild

import (
	"strings"

	"github.com/jonathan/applyforge/internal/types"
)

const generationFile = "generation.json"

// BuildResumePrompt assembles the content-generation prompt for a resume
// tailored to one job. Missing structured sections degrade to extraction
// instructions backed by the raw resume text instead of placeholders.
func BuildResumePrompt(resume *types.ParsedResumeData, job types.JobTarget, exampleText string, portfolio types.PortfolioData) (string, error) {
	experience, expFallback := experienceBlock(resume)
	education, eduFallback := educationBlock(resume)
	skills, skillsFallback := skillsBlock(resume)
	certs, certsFallback := certificationsBlock(resume)
	achievements, achFallback := achievementsBlock(resume)
	references, refsFallback := referencesBlock(resume)
	needsRaw := expFallback || eduFallback || skillsFallback || certsFallback || achFallback || refsFallback

	spec := NewPromptSpec(generationFile, "resume-content",
		"Position", "Company", "CandidateBlock", "ExperienceBlock", "EducationBlock",
		"SkillsBlock", "CertificationsBlock", "AchievementsBlock", "ReferencesBlock",
		"RawTextBlock", "JobBlock", "ExampleBlock", "PortfolioBlock")
	spec.Set("Position", job.Position).
		Set("Company", job.CompanyName).
		Set("CandidateBlock", candidateBlock(resume)).
		Set("ExperienceBlock", experience).
		Set("EducationBlock", education).
		Set("SkillsBlock", skills).
		Set("CertificationsBlock", certs).
		Set("AchievementsBlock", achievements).
		Set("ReferencesBlock", references).
		Set("RawTextBlock", rawTextBlock(resume, needsRaw)).
		Set("JobBlock", jobBlock(job)).
		Set("ExampleBlock", exampleBlock(exampleText)).
		Set("PortfolioBlock", portfolioBlock(portfolio, portfolioURL(resume)))
	return spec.Render()
}

// BuildCoverLetterPrompt assembles the content-generation prompt for a cover
// letter addressed to one job.
func BuildCoverLetterPrompt(resume *types.ParsedResumeData, job types.JobTarget, exampleText string, portfolio types.PortfolioData) (string, error) {
	experience, expFallback := experienceBlock(resume)
	achievements, achFallback := achievementsBlock(resume)
	needsRaw := expFallback || achFallback

	name := "the candidate"
	if resume != nil {
		if n := strings.TrimSpace(resume.FullName()); n != "" {
			name = n
		}
	}

	spec := NewPromptSpec(generationFile, "cover-letter-content",
		"Position", "Company", "CandidateName", "CandidateBlock", "ExperienceBlock",
		"AchievementsBlock", "ReturnAddressBlock", "RawTextBlock", "JobBlock",
		"ExampleBlock", "PortfolioBlock")
	spec.Set("Position", job.Position).
		Set("Company", job.CompanyName).
		Set("CandidateName", name).
		Set("CandidateBlock", candidateBlock(resume)).
		Set("ExperienceBlock", experience).
		Set("AchievementsBlock", achievements).
		Set("ReturnAddressBlock", returnAddressBlock(resume)).
		Set("RawTextBlock", rawTextBlock(resume, needsRaw)).
		Set("JobBlock", jobBlock(job)).
		Set("ExampleBlock", exampleBlock(exampleText)).
		Set("PortfolioBlock", portfolioBlock(portfolio, portfolioURL(resume)))
	return spec.Render()
}

// BuildPrompt dispatches on document kind.
func BuildPrompt(kind types.DocumentKind, resume *types.ParsedResumeData, job types.JobTarget, exampleText string, portfolio types.PortfolioData) (string, error) {
	if kind == types.KindCoverLetter {
		return BuildCoverLetterPrompt(resume, job, exampleText, portfolio)
	}
	return BuildResumePrompt(resume, job, exampleText, portfolio)
}

func portfolioURL(resume *types.ParsedResumeData) string {
	if resume == nil {
		return ""
	}
	return resume.PortfolioURL()
}
