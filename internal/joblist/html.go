package joblist

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var htmlTagHint = regexp.MustCompile(`<[a-zA-Z/][^>]*>`)

// PlainText strips HTML markup from a job description for on-screen display.
// Stored JobTarget values keep the original form; prompts receive that stored
// form and only display goes through this. Plain-text input passes through
// with whitespace collapsed.
func PlainText(html string) string {
	if html == "" {
		return ""
	}
	if !htmlTagHint.MatchString(html) {
		return collapseWhitespace(html)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return collapseWhitespace(html)
	}
	doc.Find("script, style, noscript").Remove()

	return collapseWhitespace(doc.Text())
}

func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
