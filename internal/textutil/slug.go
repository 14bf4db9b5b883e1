package textutil

import (
	"regexp"
	"strings"
)

var slugDropPattern = regexp.MustCompile(`[^\w\s-]`)
var slugCollapsePattern = regexp.MustCompile(`[-\s]+`)

// Slug converts arbitrary text into a lowercase hyphen-separated URL segment.
func Slug(parts ...string) string {
	text := strings.ToLower(strings.TrimSpace(strings.Join(parts, " ")))
	if text == "" {
		return ""
	}
	text = slugDropPattern.ReplaceAllString(text, "")
	text = slugCollapsePattern.ReplaceAllString(text, "-")
	return strings.Trim(text, "-")
}
