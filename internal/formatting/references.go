package formatting

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/jonathan/applyforge/internal/types"
)

const (
	referencesStart = "<!-- REFERENCES_BLOCK_START -->"
	referencesEnd   = "<!-- REFERENCES_BLOCK_END -->"
)

var referencesBlockRe = regexp.MustCompile(`(?s)` + regexp.QuoteMeta(referencesStart) + `.*?` + regexp.QuoteMeta(referencesEnd))

// RenderReferencesTable builds the canonical references HTML: a heading and a
// two-column table, wrapped in sentinel comments so the block can be located
// and restored after formatting. Returns "" when there are no references.
func RenderReferencesTable(refs []types.Reference) string {
	if len(refs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(referencesStart + "\n")
	b.WriteString("<h2>References</h2>\n")
	b.WriteString(`<table class="references-table">` + "\n")
	for i := 0; i < len(refs); i += 2 {
		b.WriteString("<tr>\n")
		b.WriteString(referenceCell(refs[i]))
		if i+1 < len(refs) {
			b.WriteString(referenceCell(refs[i+1]))
		} else {
			b.WriteString("<td></td>\n")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table>\n")
	b.WriteString(referencesEnd)
	return b.String()
}

func referenceCell(ref types.Reference) string {
	return fmt.Sprintf("<td><strong>%s</strong><br>%s<br>%s</td>\n",
		html.EscapeString(ref.Name),
		html.EscapeString(ref.Title),
		html.EscapeString(ref.Contact))
}

// EnforceReferencesBlock guarantees the canonical block survived formatting.
// A mutated block between the sentinels is replaced wholesale; a missing
// block is appended before </body> so no reference is ever dropped.
func EnforceReferencesBlock(doc string, refs []types.Reference) string {
	canonical := RenderReferencesTable(refs)
	if canonical == "" {
		return doc
	}
	if referencesBlockRe.MatchString(doc) {
		return referencesBlockRe.ReplaceAllStringFunc(doc, func(string) string { return canonical })
	}
	if idx := strings.LastIndex(doc, "</body>"); idx >= 0 {
		return doc[:idx] + canonical + "\n" + doc[idx:]
	}
	return doc + "\n" + canonical
}
