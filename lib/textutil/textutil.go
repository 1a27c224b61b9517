package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Normalize replaces non-breaking spaces with regular spaces, collapses
// every whitespace run into a single space and trims both ends.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NewMatchSet builds a lower-cased lookup set from a list of labels.
// An empty input yields a nil set, which Match treats as "match everything".
func NewMatchSet(labels []string) map[string]bool {
	if len(labels) == 0 {
		return nil
	}
	set := make(map[string]bool, len(labels))
	for _, l := range labels {
		l = strings.ToLower(strings.TrimSpace(l))
		if l != "" {
			set[l] = true
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}

func Match(set map[string]bool, label string) bool {
	if set == nil {
		return true
	}
	return set[strings.ToLower(label)]
}
