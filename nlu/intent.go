package nlu

import (
	"strings"

	"github.com/vinadenenko/voice-command/command"
)

// intentMatch is the outcome of step 1: the best-scoring descriptor and
// the trigger phrase (or descriptor name) that produced that score.
type intentMatch struct {
	descriptor    command.CommandDescriptor
	matchedPhrase string
	score         float64
}

// matchIntent runs spec §4.6 step 1 over the normalized transcript: for
// every descriptor, every trigger phrase and the descriptor's
// underscore-to-space name are scored by Levenshtein similarity, boosted
// to at least 0.8 when the normalized phrase appears verbatim as a
// substring of the transcript. Ties are resolved by first-seen, so
// descriptors and their phrases must be visited in a stable order.
func matchIntent(normTranscript string, descriptors []command.CommandDescriptor) (intentMatch, bool) {
	var best intentMatch
	found := false

	consider := func(d command.CommandDescriptor, phrase string) {
		normPhrase := normalize(phrase)
		if normPhrase == "" {
			return
		}
		score := levenshteinSimilarity(normTranscript, normPhrase)
		if strings.Contains(normTranscript, normPhrase) && score < 0.8 {
			score = 0.8
		}
		if !found || score > best.score {
			best = intentMatch{descriptor: d, matchedPhrase: normPhrase, score: score}
			found = true
		}
	}

	for _, d := range descriptors {
		for _, t := range d.TriggerPhrases {
			consider(d, t)
		}
		consider(d, nameWithSpaces(d.Name))
	}

	return best, found
}
