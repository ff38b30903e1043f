package utils

import (
	"regexp"
	"strings"
)

func AssertInvariant(condition bool, message string) {
	if !condition {
		panic("invariant violated - " + message)
	}
}

var hashtagSanitizer = regexp.MustCompile(`[^a-zA-Z0-9]`)

// FormatHashtags renders a list of tags as space-separated hashtags.
// Tags are stripped down to alphanumeric characters so that values like
// "employee advocacy" or "ai/ml" still produce valid hashtags.
func FormatHashtags(tags []string) string {
	formatted := make([]string, 0, len(tags))
	for _, tag := range tags {
		clean := hashtagSanitizer.ReplaceAllString(tag, "")
		if clean == "" {
			continue
		}
		formatted = append(formatted, "#"+clean)
	}
	return strings.Join(formatted, " ")
}
