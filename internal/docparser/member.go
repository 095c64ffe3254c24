package docparser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	// "name :number" style annotation; wins over the method form.
	propertyTypePattern = regexp.MustCompile(`:\s*(\w+)`)
	// "name(a, b) → {Type}" style annotation.
	returnTypePattern = regexp.MustCompile(`→\s*\{([^}]+)\}`)
	// "NestedObject.html#getParent" -> "NestedObject"
	inheritedHrefPattern = regexp.MustCompile(`^([^.]+)\.html#`)
	whitespacePattern    = regexp.MustCompile(`\s+`)
)

// ExtractMember recovers member metadata from one raw section. The second
// return value is false when no member name can be found, in which case the
// section should be ignored.
func ExtractMember(sec Section) (MemberInfo, bool, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sec.Text))
	if err != nil {
		return MemberInfo{}, false, fmt.Errorf("parse section %s: %w", sec.MemberID, err)
	}

	header := doc.Find("h4.name").First()
	name := leadingText(header)
	if name == "" {
		return MemberInfo{}, false, nil
	}

	member := MemberInfo{
		ID:         sec.MemberID,
		Name:       name,
		ReturnType: VoidType,
	}

	header.Find("span.type-signature").Each(func(_ int, span *goquery.Selection) {
		applyTypeSignature(&member, span.Text())
	})

	member.Description = firstParagraph(doc.Find("div.description.usertext").First())
	member.Parameters = extractParameters(doc.Find("table.params").First())
	member.ReturnDescription = returnDescription(doc)
	member.InheritedFrom = inheritedFrom(doc)

	return member, true, nil
}

// applyTypeSignature records the property or return type found in one
// type-signature span. The property form is checked first.
func applyTypeSignature(m *MemberInfo, text string) {
	if match := propertyTypePattern.FindStringSubmatch(text); match != nil {
		m.IsProperty = true
		m.ReturnType = match[1]
		return
	}
	if match := returnTypePattern.FindStringSubmatch(text); match != nil {
		if t := strings.TrimSpace(match[1]); t != "" {
			m.ReturnType = t
		}
	}
}

// leadingText returns the plain text that precedes the first child element.
func leadingText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	var b strings.Builder
	for n := sel.Get(0).FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode {
			break
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
	}
	return strings.TrimSpace(b.String())
}

// firstParagraph returns the first <p> of a description block. Later
// paragraphs are dropped. A block without paragraphs yields its whole text.
func firstParagraph(block *goquery.Selection) string {
	if block.Length() == 0 {
		return ""
	}
	if p := block.Find("p").First(); p.Length() > 0 {
		return inlineText(p, true)
	}
	return inlineText(block, true)
}

func extractParameters(table *goquery.Selection) []Parameter {
	if table.Length() == 0 {
		return nil
	}

	var params []Parameter
	// Only rows owned by this table; nested property tables are skipped.
	table.ChildrenFiltered("thead, tbody").ChildrenFiltered("tr").Each(func(_ int, row *goquery.Selection) {
		var p Parameter
		row.ChildrenFiltered("td").Each(func(_ int, cell *goquery.Selection) {
			class, _ := cell.Attr("class")
			text := inlineText(cell, false)
			switch {
			case strings.Contains(class, "name"):
				p.Name = text
			case strings.Contains(class, "type"):
				p.Type = text
			case strings.Contains(class, "description"):
				p.Description = text
			}
		})
		if p.Name != "" {
			params = append(params, p)
		}
	})
	return params
}

// returnDescription finds the param-desc block following a "Returns:"
// heading and keeps its last non-empty paragraph. Text outside paragraphs is
// ignored.
func returnDescription(doc *goquery.Document) string {
	var desc string
	doc.Find("h5").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if strings.TrimSpace(h.Text()) != "Returns:" {
			return true
		}
		block := h.NextAllFiltered("div.param-desc").First()
		if block.Length() == 0 {
			return true
		}
		block.Find("p").Each(func(_ int, p *goquery.Selection) {
			if text := inlineText(p, true); text != "" {
				desc = text
			}
		})
		return false
	})
	return desc
}

// inheritedFrom returns the class named by the first link in the
// "Inherited From" definition, or "".
func inheritedFrom(doc *goquery.Document) string {
	var ancestor string
	doc.Find("dt.inherited-from").EachWithBreak(func(_ int, dt *goquery.Selection) bool {
		links := dt.Find("a[href]").AddSelection(dt.NextFiltered("dd").Find("a[href]"))
		links.EachWithBreak(func(_ int, a *goquery.Selection) bool {
			href, _ := a.Attr("href")
			if m := inheritedHrefPattern.FindStringSubmatch(href); m != nil {
				ancestor = m[1]
				return false
			}
			return true
		})
		return ancestor == ""
	})
	return ancestor
}

// inlineText flattens a node's text, joining text runs with single spaces.
// With codeTicks set, <code> spans are rendered as `literal`.
func inlineText(sel *goquery.Selection, codeTicks bool) string {
	var parts []string
	for _, n := range sel.Nodes {
		collectText(n, codeTicks, &parts)
	}
	joined := strings.Join(parts, " ")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(joined, " "))
}

func collectText(n *html.Node, codeTicks bool, parts *[]string) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if text := strings.TrimSpace(c.Data); text != "" {
				*parts = append(*parts, text)
			}
		case html.ElementNode:
			if codeTicks && c.Data == "code" {
				var inner []string
				collectText(c, false, &inner)
				if code := strings.Join(inner, " "); code != "" {
					*parts = append(*parts, "`"+code+"`")
				}
				continue
			}
			collectText(c, codeTicks, parts)
		}
	}
}
