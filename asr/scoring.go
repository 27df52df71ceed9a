package asr

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// scorePhrases scores text against each candidate phrase with the same
// Levenshtein similarity formula the rule-based NLU engine uses
// (1 - distance/max(len(a),len(b))), then normalizes the scores to sum
// to 1 across phrases when any score is positive, per spec §4.4's
// guided_match contract.
func scorePhrases(text string, phrases []string) []float64 {
	scores := make([]float64, len(phrases))
	a := strings.ToLower(strings.TrimSpace(text))
	var total float64
	for i, p := range phrases {
		b := strings.ToLower(strings.TrimSpace(p))
		scores[i] = levenshteinSimilarity(a, b)
		total += scores[i]
	}
	if total > 0 {
		for i := range scores {
			scores[i] /= total
		}
	}
	return scores
}

// levenshteinSimilarity computes 1 - distance/max(|a|,|b|), using
// github.com/antzucaro/matchr's Levenshtein distance (the fuzzy-string
// library the MrWong99-glyphoxa example in the retrieval pack uses for
// matching against free-form text).
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

// argmaxLowestIndexTie returns the index of the maximum value, with
// lowest-index tie-break, per spec §4.4.
func argmaxLowestIndexTie(scores []float64) (index int, best float64) {
	index = -1
	for i, s := range scores {
		if index == -1 || s > best {
			index = i
			best = s
		}
	}
	return
}
