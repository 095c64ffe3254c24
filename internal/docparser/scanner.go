package docparser

import (
	"regexp"
)

var (
	// memberHeaderPattern matches the opening tag of a member header, e.g.
	// <h4 class="name" id="getDuration">.
	memberHeaderPattern = regexp.MustCompile(`(?i)<h4\b[^>]*\bclass\s*=\s*"name"[^>]*>`)
	memberIDPattern     = regexp.MustCompile(`(?i)\bid\s*=\s*"([^"]+)"`)
	horizontalRule      = regexp.MustCompile(`(?i)<hr\b[^>]*>`)
)

// Section is the raw markup of one member, from its header up to the next
// header, a horizontal rule or the end of the page.
type Section struct {
	MemberID string
	Text     string
}

// ScanSections splits a class page into member sections in document order.
// Headers without an id are not section starts. A page without headers
// yields no sections.
func ScanSections(page string) []Section {
	starts := memberHeaders(page)

	sections := make([]Section, 0, len(starts))
	for i, h := range starts {
		end := len(page)
		if i+1 < len(starts) {
			end = starts[i+1].offset
		}
		// The header tag itself may not contain a rule, so search after it.
		if loc := horizontalRule.FindStringIndex(page[h.bodyStart:end]); loc != nil {
			end = h.bodyStart + loc[0]
		}
		sections = append(sections, Section{
			MemberID: h.id,
			Text:     page[h.offset:end],
		})
	}
	return sections
}

// Prelude returns the markup preceding the first member header, which holds
// the class-level documentation.
func Prelude(page string) string {
	starts := memberHeaders(page)
	if len(starts) == 0 {
		return page
	}
	return page[:starts[0].offset]
}

type memberHeader struct {
	id        string
	offset    int
	bodyStart int
}

func memberHeaders(page string) []memberHeader {
	var headers []memberHeader
	for _, loc := range memberHeaderPattern.FindAllStringIndex(page, -1) {
		tag := page[loc[0]:loc[1]]
		m := memberIDPattern.FindStringSubmatch(tag)
		if m == nil {
			continue
		}
		headers = append(headers, memberHeader{
			id:        m[1],
			offset:    loc[0],
			bodyStart: loc[1],
		})
	}
	return headers
}
