package promptbuild

import (
	"fmt"
	"strings"

	"github.com/jonathan/applyforge/internal/types"
)

// extractionNote tells the model to pull a missing section out of the raw
// resume text instead of inventing it or emitting a placeholder.
func extractionNote(what string) string {
	return fmt.Sprintf("No structured %s supplied. Extract the candidate's %s from the RESUME RAW TEXT section below, using only details that actually appear there.", what, what)
}

// Section headings come from the prompt template; block functions emit only
// the section body.
func candidateBlock(resume *types.ParsedResumeData) string {
	if resume == nil || resume.PersonalInfo == nil {
		return extractionNote("personal details")
	}
	var b strings.Builder
	pi := resume.PersonalInfo
	writeField := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, value)
		}
	}
	writeField("Name", pi.FullName)
	writeField("Email", pi.Email)
	writeField("Phone", pi.Phone)
	writeField("Address", pi.Address)
	writeField("LinkedIn", pi.LinkedIn)
	writeField("Portfolio", pi.Portfolio)
	return strings.TrimRight(b.String(), "\n")
}

func experienceBlock(resume *types.ParsedResumeData) (string, bool) {
	if resume == nil || len(resume.WorkExperience) == 0 {
		return extractionNote("work history"), true
	}
	var b strings.Builder
	for _, exp := range resume.WorkExperience {
		fmt.Fprintf(&b, "- %s at %s (%s)\n", exp.Title, exp.Company, exp.Period)
		for _, r := range exp.Responsibilities {
			fmt.Fprintf(&b, "  * %s\n", r)
		}
	}
	return strings.TrimRight(b.String(), "\n"), false
}

func educationBlock(resume *types.ParsedResumeData) (string, bool) {
	if resume == nil || len(resume.Education) == 0 {
		return extractionNote("education history"), true
	}
	var b strings.Builder
	for _, edu := range resume.Education {
		fmt.Fprintf(&b, "- %s, %s (%s)\n", edu.Degree, edu.Institution, edu.Period)
		for _, a := range edu.Achievements {
			fmt.Fprintf(&b, "  * %s\n", a)
		}
	}
	return strings.TrimRight(b.String(), "\n"), false
}

func skillsBlock(resume *types.ParsedResumeData) (string, bool) {
	if resume == nil || len(resume.Skills) == 0 {
		return extractionNote("skills"), true
	}
	var b strings.Builder
	for _, s := range resume.Skills {
		fmt.Fprintf(&b, "- %s: %s\n", s.Category, strings.Join(s.Items, ", "))
	}
	return strings.TrimRight(b.String(), "\n"), false
}

func listBlock(what string, items []string) (string, bool) {
	if len(items) == 0 {
		return extractionNote(what) + " Omit the section entirely if the raw text has none.", true
	}
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "- %s\n", item)
	}
	return strings.TrimRight(b.String(), "\n"), false
}

func certificationsBlock(resume *types.ParsedResumeData) (string, bool) {
	var items []string
	if resume != nil {
		items = resume.Certifications
	}
	return listBlock("certifications", items)
}

func achievementsBlock(resume *types.ParsedResumeData) (string, bool) {
	var items []string
	if resume != nil {
		items = resume.Achievements
	}
	return listBlock("notable achievements", items)
}

// referencesBlock serializes every structured reference. When none exist but
// raw text does, the model is told to carry references over from the raw text.
func referencesBlock(resume *types.ParsedResumeData) (string, bool) {
	if resume == nil || !resume.HasStructuredReferences() {
		return extractionNote("references") + " If the raw text lists no references, omit the section.", true
	}
	var b strings.Builder
	b.WriteString("Include every one of these, verbatim:\n")
	for _, ref := range resume.References {
		fmt.Fprintf(&b, "- %s, %s, %s\n", ref.Name, ref.Title, ref.Contact)
	}
	return strings.TrimRight(b.String(), "\n"), false
}

// rawTextBlock is included only when at least one structured section was
// missing and the raw extraction text is available to fall back on.
func rawTextBlock(resume *types.ParsedResumeData, needed bool) string {
	if !needed || resume == nil || !resume.HasRawText() {
		return ""
	}
	return "RESUME RAW TEXT (authoritative fallback for any missing section above):\n" + resume.RawText
}

func jobBlock(job types.JobTarget) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Position: %s\n", job.Position)
	fmt.Fprintf(&b, "Company: %s\n", job.CompanyName)
	if job.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", job.Location)
	}
	if job.WorkType != "" {
		fmt.Fprintf(&b, "Work type: %s\n", job.WorkType)
	}
	if job.Seniority != "" {
		fmt.Fprintf(&b, "Seniority: %s\n", job.Seniority)
	}
	// The description keeps its stored form, HTML or plain; stripping is a
	// display concern only.
	if desc := strings.TrimSpace(job.JobDescription); desc != "" {
		b.WriteString("Description:\n")
		b.WriteString(desc)
	}
	return strings.TrimRight(b.String(), "\n")
}

func exampleBlock(exampleText string) string {
	if strings.TrimSpace(exampleText) == "" {
		return ""
	}
	return "STYLE EXAMPLE (match the tone, structure, and level of detail of this document; do not copy its facts):\n" + exampleText
}

func returnAddressBlock(resume *types.ParsedResumeData) string {
	if resume == nil || resume.PersonalInfo == nil {
		return ""
	}
	pi := resume.PersonalInfo
	var lines []string
	for _, v := range []string{pi.FullName, pi.Address, pi.Phone, pi.Email} {
		if strings.TrimSpace(v) != "" {
			lines = append(lines, v)
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return "RETURN ADDRESS (use as the letter heading):\n" + strings.Join(lines, "\n")
}
