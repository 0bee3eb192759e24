// Package extractors holds the regex-table extraction strategies, one per
// document kind. Extractors never return errors: malformed or unrelated
// input yields nil or an empty slice and the caller decides what that means.
package extractors

import (
	"regexp"
	"strings"
)

func compileAll(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile(`(?i)` + p)
	}
	return res
}

// firstSubmatch returns the first capture group of the first pattern that
// matches, trimmed. Empty string when nothing matches.
func firstSubmatch(patterns []*regexp.Regexp, text string) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil && len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// flatten collapses whitespace runs so label/value pairs split across lines
// still match the single-line field patterns.
func flatten(text string) string {
	return whitespaceRun.ReplaceAllString(text, " ")
}

// countKeywords reports how many of the given keywords occur in text,
// case-insensitively. The recognition gates require a minimum count before
// an extractor claims a document.
func countKeywords(text string, keywords []string) int {
	lower := strings.ToLower(text)
	n := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			n++
		}
	}
	return n
}
