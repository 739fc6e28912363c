package search

import (
	"regexp"
	"strings"
)

var tagTokenPattern = regexp.MustCompile(`[a-z0-9_]+`)

// queryTags extracts candidate tag tokens from the user query.
// Any case-folded alphanumeric run of length >= 3 qualifies.
func queryTags(query string) map[string]bool {
	tokens := tagTokenPattern.FindAllString(strings.ToLower(query), -1)
	tags := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		if len(token) >= 3 {
			tags[token] = true
		}
	}
	return tags
}
