// Package joblist turns uploaded CSV job lists into normalized JobTarget records.
package joblist

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jonathan/applyforge/internal/types"
)

// maxDescriptionLen caps stored job descriptions after trimming.
const maxDescriptionLen = 2000

// Fallback values for rows that carry only one of the two identifying fields.
const (
	unknownCompany  = "Unknown Company"
	unknownPosition = "Unknown Position"
)

// columnSynonyms maps each JobTarget field to the header names that may carry
// it. Matching is case-insensitive and order within a list is priority order.
var columnSynonyms = map[string][]string{
	"companyName":    {"company", "companyname", "company_name", "employer"},
	"position":       {"title", "position", "job_title", "jobtitle", "role"},
	"jobDescription": {"descriptiontext", "description", "job_description", "jobdescription", "descriptionhtml"},
	"location":       {"location", "city", "place"},
	"companyUrl":     {"companyurl", "company_url", "url", "link"},
	"workType":       {"worktype", "work_type", "type", "employment_type"},
	"seniority":      {"seniority", "level", "experience_level"},
	"postedAt":       {"postedat", "posted_at", "date", "posted_date"},
}

// ParseCSV parses raw CSV text into an ordered list of job targets, all with
// Selected=false. Malformed input (header present but fewer than 2 lines)
// yields an empty list, not an error; the caller is responsible for surfacing
// a "no jobs imported" signal when the result is empty but the input was
// non-trivial. Rows missing both company name and position are skipped.
func ParseCSV(csvText string) []types.JobTarget {
	var lines []string
	for _, line := range strings.Split(csvText, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return nil
	}

	header := parseLine(lines[0])
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	indices := map[string]int{}
	for field, names := range columnSynonyms {
		indices[field] = columnIndex(header, names)
	}

	var jobs []types.JobTarget
	for _, line := range lines[1:] {
		values := parseLine(line)

		companyName := fieldValue(values, indices["companyName"])
		position := fieldValue(values, indices["position"])
		if companyName == "" && position == "" {
			continue
		}
		if companyName == "" {
			companyName = unknownCompany
		}
		if position == "" {
			position = unknownPosition
		}

		jobs = append(jobs, types.JobTarget{
			ID:             "job-" + uuid.NewString(),
			CompanyName:    companyName,
			Position:       position,
			JobDescription: capDescription(fieldValue(values, indices["jobDescription"])),
			Location:       fieldValue(values, indices["location"]),
			CompanyURL:     fieldValue(values, indices["companyUrl"]),
			WorkType:       fieldValue(values, indices["workType"]),
			Seniority:      fieldValue(values, indices["seniority"]),
			PostedAt:       fieldValue(values, indices["postedAt"]),
			Selected:       false,
		})
	}

	return jobs
}

// parseLine splits one CSV line into fields. It is quote-aware: commas inside
// double-quoted fields do not split, and a doubled quote inside a quoted
// field produces a literal quote. A naive strings.Split is insufficient for
// exported job-board data.
func parseLine(line string) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	fields = append(fields, current.String())

	return fields
}

// columnIndex returns the index of the first synonym found in the header, or -1.
func columnIndex(header []string, names []string) int {
	for _, name := range names {
		for i, h := range header {
			if h == name {
				return i
			}
		}
	}
	return -1
}

// fieldValue extracts and trims the value at idx, tolerating short rows.
func fieldValue(values []string, idx int) string {
	if idx < 0 || idx >= len(values) {
		return ""
	}
	return strings.TrimSpace(values[idx])
}

// capDescription trims the description and caps its length. The stored value
// keeps its original form, HTML or plain, for prompt use; callers strip tags
// for display via PlainText. The cap never splits a multi-byte rune.
func capDescription(desc string) string {
	if len(desc) <= maxDescriptionLen {
		return desc
	}
	cut := maxDescriptionLen
	for cut > 0 && !utf8.RuneStart(desc[cut]) {
		cut--
	}
	return desc[:cut]
}
