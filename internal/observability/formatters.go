// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/applyforge/internal/joblist"
	"github.com/jonathan/applyforge/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResumeSummary outputs a human-readable summary of the parsed resume.
func (p *Printer) PrintResumeSummary(resume *types.ParsedResumeData) {
	if resume == nil {
		return
	}

	var sb strings.Builder

	name := resume.FullName()
	if name == "" {
		name = "(from raw text)"
	}
	sb.WriteString(fmt.Sprintf("Candidate: %s\n", name))
	sb.WriteString(fmt.Sprintf("Raw text:  %d characters\n", len(resume.RawText)))
	sb.WriteString("\n")

	if len(resume.WorkExperience) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(resume.WorkExperience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := resume.WorkExperience[i]
			sb.WriteString(fmt.Sprintf("  • %s, %s\n", exp.Title, exp.Company))
		}
		if len(resume.WorkExperience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(resume.WorkExperience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Education:      %d entries\n", len(resume.Education)))
	sb.WriteString(fmt.Sprintf("Skills:         %d categories\n", len(resume.Skills)))
	sb.WriteString(fmt.Sprintf("Certifications: %d\n", len(resume.Certifications)))
	sb.WriteString(fmt.Sprintf("References:     %d", len(resume.References)))

	p.printBox("PARSED RESUME", sb.String())
}

// PrintJobList outputs the imported job targets with selection markers.
func (p *Printer) PrintJobList(jobs []types.JobTarget) {
	if len(jobs) == 0 {
		return
	}

	var sb strings.Builder
	selected := len(types.SelectedJobs(jobs))
	sb.WriteString(fmt.Sprintf("%d jobs imported, %d selected:\n\n", len(jobs), selected))

	count := min(len(jobs), maxItemsToShow)
	for i := 0; i < count; i++ {
		job := jobs[i]
		marker := " "
		if job.Selected {
			marker = "✓"
		}
		label := job.Label()
		if len(label) > 48 {
			label = label[:45] + "..."
		}
		sb.WriteString(fmt.Sprintf("[%s] %s\n", marker, label))
		// Stored descriptions may be HTML; display always shows plain text.
		if desc := joblist.PlainText(job.JobDescription); desc != "" {
			if len(desc) > 44 {
				desc = desc[:41] + "..."
			}
			sb.WriteString(fmt.Sprintf("    %s\n", desc))
		}
	}
	if len(jobs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more jobs", len(jobs)-maxItemsToShow))
	}

	p.printBox("JOB TARGETS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRunSummary outputs the outcome of a generation run.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRunSummary(documents []types.GeneratedDocument, jobsCompleted, jobsTotal int) {
	if len(documents) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "⚠ NO DOCUMENTS GENERATED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Jobs completed: %d of %d\n", jobsCompleted, jobsTotal))
	sb.WriteString(fmt.Sprintf("Documents:      %d\n\n", len(documents)))

	count := min(len(documents), maxItemsToShow)
	for i := 0; i < count; i++ {
		doc := documents[i]
		sb.WriteString(fmt.Sprintf("• %s (%s, %d bytes html)\n", doc.Type, doc.JobID, len(doc.HTMLContent)))
	}
	if len(documents) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more documents", len(documents)-maxItemsToShow))
	}

	p.printBox("GENERATION RESULT", strings.TrimSuffix(sb.String(), "\n"))
}
