package promptbuild

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/applyforge/internal/types"
)

// AnchorLink is a portfolio URL that targets a specific page section, paired
// with a human-readable topic derived from its fragment.
type AnchorLink struct {
	Topic string
	URL   string
}

// AnchorLinks walks the portfolio JSON and collects every string value that
// looks like a section-anchor URL, in deterministic order. Object keys are
// visited sorted so repeated runs over the same blob agree.
func AnchorLinks(portfolio types.PortfolioData) []AnchorLink {
	if len(portfolio) == 0 {
		return nil
	}
	var root any
	if err := json.Unmarshal(portfolio, &root); err != nil {
		return nil
	}

	var links []AnchorLink
	seen := make(map[string]bool)
	var walk func(node any)
	walk = func(node any) {
		switch v := node.(type) {
		case string:
			if isAnchorURL(v) && !seen[v] {
				seen[v] = true
				links = append(links, AnchorLink{Topic: topicFromAnchor(v), URL: v})
			}
		case []any:
			for _, item := range v {
				walk(item)
			}
		case map[string]any:
			keys := make([]string, 0, len(v))
			for k := range v {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				walk(v[k])
			}
		}
	}
	walk(root)
	return links
}

func isAnchorURL(s string) bool {
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return false
	}
	idx := strings.Index(s, "#")
	return idx > 0 && idx < len(s)-1
}

// topicFromAnchor turns "https://site.dev/work#data-pipelines" into
// "data pipelines".
func topicFromAnchor(u string) string {
	fragment := u[strings.Index(u, "#")+1:]
	fragment = strings.ReplaceAll(fragment, "-", " ")
	fragment = strings.ReplaceAll(fragment, "_", " ")
	return strings.TrimSpace(fragment)
}

// portfolioBlock instructs the model how to weave portfolio links into the
// generated text. With section anchors present it demands inline link markers
// tied to matching accomplishments; with only a bare URL it asks for a few
// natural mentions; with no portfolio at all it contributes nothing.
func portfolioBlock(portfolio types.PortfolioData, portfolioURL string) string {
	anchors := AnchorLinks(portfolio)
	if len(anchors) > 0 {
		var b strings.Builder
		b.WriteString("PORTFOLIO SECTION LINKS:\n")
		for _, a := range anchors {
			fmt.Fprintf(&b, "- %s: %s\n", a.Topic, a.URL)
		}
		b.WriteString("Where the document mentions work matching one of these topics, embed the marker ")
		b.WriteString(`[PORTFOLIO_LINK text="<the exact phrase being linked>" url="<the matching URL>"] `)
		b.WriteString("inline at that phrase. Link specific accomplishments, not generic phrases such as 'view my portfolio'. ")
		b.WriteString("Use each link at most once and only where the surrounding text genuinely relates to it.")
		return strings.TrimRight(b.String(), "\n")
	}
	if strings.TrimSpace(portfolioURL) != "" {
		return fmt.Sprintf("PORTFOLIO:\nThe candidate's portfolio is at %s. Mention it naturally in two or three places where concrete work is described, using the marker [PORTFOLIO_LINK text=\"<the exact phrase being linked>\" url=\"%s\"] inline at the phrase.", portfolioURL, portfolioURL)
	}
	return ""
}
