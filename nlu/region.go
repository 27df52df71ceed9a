package nlu

import "strings"

// extractArgumentRegion runs spec §4.6 step 2: locate the matched
// trigger inside the normalized transcript and return whatever follows
// it. A verbatim substring match wins outright; otherwise the trigger is
// slid word-by-word over the transcript looking for the window with the
// highest fraction of exact word matches, and the words after that
// window are returned if the fraction clears 0.5. Failing both, the
// whole transcript is the region.
func extractArgumentRegion(normTranscript, matchedPhrase string) string {
	if idx := strings.Index(normTranscript, matchedPhrase); idx >= 0 {
		suffix := normTranscript[idx+len(matchedPhrase):]
		return strings.TrimLeft(suffix, " \t\n\r")
	}

	transcriptWords := strings.Fields(normTranscript)
	triggerWords := strings.Fields(matchedPhrase)
	if len(transcriptWords) == 0 || len(triggerWords) == 0 {
		return normTranscript
	}

	bestFraction := -1.0
	bestEnd := -1
	for start := 0; start+len(triggerWords) <= len(transcriptWords); start++ {
		matches := 0
		for i, tw := range triggerWords {
			if transcriptWords[start+i] == tw {
				matches++
			}
		}
		fraction := float64(matches) / float64(len(triggerWords))
		if fraction > bestFraction {
			bestFraction = fraction
			bestEnd = start + len(triggerWords)
		}
	}

	if bestFraction >= 0.5 && bestEnd >= 0 {
		return strings.Join(transcriptWords[bestEnd:], " ")
	}
	return normTranscript
}
