// Package typemap converts documentation type tokens into TypeScript type
// expressions.
//
// Resolution order is fixed: manual overrides for the exact use (parameter or
// return), then the free-text return description, then the raw token, and
// finally the "| undefined" adjustment.
package typemap

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

// Resolved type names with special meaning.
const (
	Void      = "void"
	Any       = "any"
	Undefined = "undefined"
)

var (
	backtickPattern   = regexp.MustCompile("`([^`]+)`")
	arrayUnionPattern = regexp.MustCompile(`(?i)array\s+of.*\s+or\s+`)
	orWordPattern     = regexp.MustCompile(`\bor\b`)
	innerArrayPattern = regexp.MustCompile(`Array\.<([^<>]+)>`)
	typeNamePattern   = regexp.MustCompile(`^[A-Za-z_$][\w$.]*$`)
)

// rawTypes maps raw documentation tokens to target types.
var rawTypes = map[string]string{
	"string":    "string",
	"number":    "number",
	"boolean":   "boolean",
	"object":    Any,
	"array":     "any[]",
	"Array":     "any[]",
	"function":  "Function",
	"Function":  "Function",
	"undefined": Undefined,
	"null":      "null",
}

// descriptionTypes maps type words found in return descriptions. Words not
// listed are used as written, so `true` stays the literal type true.
var descriptionTypes = map[string]string{
	"string":   "string",
	"number":   "number",
	"boolean":  "boolean",
	"function": "Function",
	"Function": "Function",
}

// Normalizer resolves parameter and return types for the renderer.
type Normalizer struct {
	overrides *Overrides
}

// New creates a normalizer backed by the given override tables. A nil table
// disables overrides.
func New(overrides *Overrides) *Normalizer {
	if overrides == nil {
		overrides = NewOverrides()
	}
	return &Normalizer{overrides: overrides}
}

// Param resolves the type of one parameter. Return overrides never apply here.
func (n *Normalizer) Param(class, member, param, raw string) string {
	if t, ok := n.overrides.Param(class, member, param); ok {
		return t
	}
	return ConvertRaw(raw)
}

// Return resolves a member's return or property type, using desc (the
// "Returns:" text) when it describes the type more precisely than raw.
func (n *Normalizer) Return(class, member, raw, desc string) string {
	if t, ok := n.overrides.Return(class, member); ok {
		return t
	}

	result, ok := ParseReturnDescription(desc)
	if !ok {
		result = ConvertRaw(raw)
	}
	return withUndefined(result, desc)
}

// ParseReturnDescription recovers a type from prose such as
// "an `array` of `array` of `number`". It reports false when the text names
// no types or is too ambiguous to trust.
func ParseReturnDescription(desc string) (string, bool) {
	if desc == "" {
		return "", false
	}

	var names []string
	for _, m := range backtickPattern.FindAllStringSubmatch(desc, -1) {
		name := strings.TrimSpace(m[1])
		if !typeNamePattern.MatchString(name) {
			return "", false
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return "", false
	}

	// "array of X or Y" -> (X | Y)[]
	if arrayUnionPattern.MatchString(desc) {
		var elems []string
		for _, name := range names {
			if name != "array" {
				elems = append(elems, name)
			}
		}
		if len(elems) > 1 {
			return "(" + strings.Join(elems, " | ") + ")[]", true
		}
	}

	lower := strings.ToLower(desc)
	if orWordPattern.MatchString(lower) && !strings.Contains(lower, "array") {
		return "", false
	}

	// Innermost type is named last.
	var result string
	for i := len(names) - 1; i >= 0; i-- {
		name := names[i]
		if name == "array" {
			if result == "" {
				result = "any[]"
			} else {
				result += "[]"
			}
			continue
		}
		if mapped, ok := descriptionTypes[name]; ok {
			result = mapped
		} else {
			result = name
		}
	}
	return result, result != ""
}

// ConvertRaw maps a raw documentation token to a target type.
func ConvertRaw(raw string) string {
	raw = strings.TrimSpace(html.UnescapeString(raw))
	if raw == "" || raw == Void {
		return Void
	}

	if arms := splitUnion(raw); len(arms) > 1 {
		for i, arm := range arms {
			arms[i] = ConvertRaw(arm)
		}
		return strings.Join(arms, " | ")
	}

	if strings.HasSuffix(raw, "[]") {
		return raw
	}
	if mapped, ok := rawTypes[raw]; ok {
		return mapped
	}
	if strings.Contains(raw, "Array.<") {
		return unwrapArrays(raw)
	}
	if startsUpper(raw) {
		return raw
	}
	return Any
}

// unwrapArrays rewrites Array.<T> as T[], innermost first.
func unwrapArrays(t string) string {
	for {
		loc := innerArrayPattern.FindStringSubmatchIndex(t)
		if loc == nil {
			return t
		}
		inner := ConvertRaw(t[loc[2]:loc[3]])
		if len(splitUnion(inner)) > 1 {
			inner = "(" + inner + ")"
		}
		t = t[:loc[0]] + inner + "[]" + t[loc[1]:]
	}
}

// splitUnion splits on "|" outside of <> and () nesting.
func splitUnion(t string) []string {
	var (
		arms  []string
		depth int
		start int
	)
	for i, r := range t {
		switch r {
		case '<', '(':
			depth++
		case '>', ')':
			depth--
		case '|':
			if depth == 0 {
				arms = append(arms, strings.TrimSpace(t[start:i]))
				start = i + 1
			}
		}
	}
	return append(arms, strings.TrimSpace(t[start:]))
}

// withUndefined appends "| undefined" when desc says the value may be
// undefined and the type does not already allow it.
func withUndefined(result, desc string) string {
	if !strings.Contains(desc, "`"+Undefined+"`") || result == Void {
		return result
	}
	for _, arm := range splitUnion(result) {
		if arm == Undefined {
			return result
		}
	}
	return result + " | " + Undefined
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}
