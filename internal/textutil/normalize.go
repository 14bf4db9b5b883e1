package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// NormalizeName tidies a business name for display and query building:
// whitespace is collapsed and all-caps or all-lower names are title cased.
func NormalizeName(name string) string {
	name = CollapseWhitespace(name)
	if name == "" {
		return ""
	}
	if name == strings.ToUpper(name) || name == strings.ToLower(name) {
		return titleCaser.String(strings.ToLower(name))
	}
	return name
}

// CollapseWhitespace trims the input and collapses interior whitespace runs
// into single spaces.
func CollapseWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// Snippet shortens text to at most limit runes for log and error output,
// flattening newlines first.
func Snippet(value string, limit int) string {
	value = CollapseWhitespace(value)
	if value == "" {
		return "<empty>"
	}
	if limit <= 0 {
		limit = 160
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit]) + "..."
}
