package nlu

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// normalize lowercases and trims ASCII whitespace, the single
// normalization rule spec §4.6 defines for both transcripts and trigger
// phrases.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// nameWithSpaces turns a command's underscore_separated name into its
// space-separated form for matching against free speech, e.g.
// "zoom_to" → "zoom to".
func nameWithSpaces(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

// levenshteinSimilarity computes 1 - distance/max(|a|,|b|) over already
// normalized strings, using github.com/antzucaro/matchr's Levenshtein
// distance — the same fuzzy-matching library the retrieval pack's
// MrWong99-glyphoxa example uses for matching free-form text.
func levenshteinSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 0
	}
	dist := matchr.Levenshtein(a, b)
	return 1 - float64(dist)/float64(maxLen)
}
