package domain

import "github.com/lithammer/fuzzysearch/fuzzy"

// maxSuggestionDistance bounds how far a candidate may be from the input to be suggested.
const maxSuggestionDistance = 3

// Suggest returns the candidate nearest to input, or "" when none is close enough.
// Ties keep the earlier candidate.
func Suggest(input string, candidates []string) string {
	best := ""
	bestDistance := maxSuggestionDistance
	for _, c := range candidates {
		if c == input {
			continue
		}
		if d := fuzzy.LevenshteinDistance(input, c); d < bestDistance {
			best, bestDistance = c, d
		}
	}
	return best
}
