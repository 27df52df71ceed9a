package nlu

import (
	"regexp"
	"strings"

	"github.com/vinadenenko/voice-command/command"
)

var (
	integerRe = regexp.MustCompile(`\b\d+\b`)
	doubleRe  = regexp.MustCompile(`\b\d+\.?\d*\b`)
)

var (
	trueWords  = map[string]bool{"yes": true, "true": true, "enable": true, "on": true}
	falseWords = map[string]bool{"no": true, "false": true, "disable": true, "off": true}
)

var prepositions = []string{"to", "at", "near", "called", "named"}

// extractParams runs spec §4.6 step 3 over the argument region, one
// descriptor parameter at a time. Only non-empty extractions are
// inserted into the result map.
func extractParams(region string, params []command.ParamDescriptor) map[string]string {
	out := make(map[string]string, len(params))
	for _, p := range params {
		var v string
		switch p.Type {
		case command.ParamInteger:
			v = extractInteger(region, p.Name)
		case command.ParamDouble:
			v = extractDouble(region)
		case command.ParamBool:
			v = extractBool(region)
		case command.ParamEnum:
			v = extractEnum(region, p.EnumValues)
		case command.ParamString:
			v = extractString(region, p.Name)
		}
		if v != "" {
			out[p.Name] = v
		}
	}
	return out
}

// extractInteger scans all \b\d+\b occurrences; with one match it is
// returned, with many the one positionally closest to the parameter's
// name (underscores as spaces) wins, and if the name is absent the
// first match wins.
func extractInteger(region, paramName string) string {
	locs := integerRe.FindAllStringIndex(region, -1)
	if len(locs) == 0 {
		return ""
	}
	if len(locs) == 1 {
		return region[locs[0][0]:locs[0][1]]
	}

	nameIdx := strings.Index(region, nameWithSpaces(paramName))
	if nameIdx < 0 {
		return region[locs[0][0]:locs[0][1]]
	}

	bestLoc := locs[0]
	bestDist := -1
	for _, loc := range locs {
		dist := loc[0] - nameIdx
		if dist < 0 {
			dist = -dist
		}
		if bestDist == -1 || dist < bestDist {
			bestDist = dist
			bestLoc = loc
		}
	}
	return region[bestLoc[0]:bestLoc[1]]
}

// extractDouble scans \b\d+\.?\d*\b occurrences and returns the first,
// per spec §4.6's simplified policy for doubles.
func extractDouble(region string) string {
	loc := doubleRe.FindString(region)
	return loc
}

// extractBool reports "true" if any of {yes,true,enable,on} appears
// case-insensitively, "false" if any of {no,false,disable,off} appears,
// empty otherwise. The true-word set is checked first, matching spec
// §4.6's listed rule order.
func extractBool(region string) string {
	words := strings.Fields(strings.ToLower(region))
	for _, w := range words {
		w = strings.Trim(w, ".,!?;:")
		if trueWords[w] {
			return "true"
		}
	}
	for _, w := range words {
		w = strings.Trim(w, ".,!?;:")
		if falseWords[w] {
			return "false"
		}
	}
	return ""
}

// extractEnum returns the first enumValues entry that appears as a
// case-insensitive substring of region, in declaration order.
func extractEnum(region string, enumValues []string) string {
	lower := strings.ToLower(region)
	for _, v := range enumValues {
		if strings.Contains(lower, strings.ToLower(v)) {
			return v
		}
	}
	return ""
}

// extractString implements spec §4.6's three-tier string rule: prefer
// words following the parameter's own name, then words following a
// preposition, then the whole region — always stripping trailing
// punctuation.
func extractString(region, paramName string) string {
	words := strings.Fields(region)
	if len(words) == 0 {
		return ""
	}

	name := nameWithSpaces(paramName)
	if name != "" {
		if idx := indexOfWordSequence(words, strings.Fields(name)); idx >= 0 {
			start := idx + len(strings.Fields(name))
			return stripTrailingPunctuation(joinUpTo(words, start, 3))
		}
	}

	for i, w := range words {
		for _, prep := range prepositions {
			if strings.EqualFold(strings.Trim(w, ".,!?;:"), prep) {
				return stripTrailingPunctuation(joinUpTo(words, i+1, 4))
			}
		}
	}

	return stripTrailingPunctuation(strings.Join(words, " "))
}

// indexOfWordSequence finds the start index of needle inside haystack as
// a contiguous, case-insensitive word sequence, or -1.
func indexOfWordSequence(haystack, needle []string) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for start := 0; start+len(needle) <= len(haystack); start++ {
		match := true
		for i, n := range needle {
			if !strings.EqualFold(haystack[start+i], n) {
				match = false
				break
			}
		}
		if match {
			return start
		}
	}
	return -1
}

// joinUpTo joins up to n words from words starting at start.
func joinUpTo(words []string, start, n int) string {
	end := start + n
	if end > len(words) {
		end = len(words)
	}
	if start >= end {
		return ""
	}
	return strings.Join(words[start:end], " ")
}

func stripTrailingPunctuation(s string) string {
	return strings.TrimRight(s, ".,!?;: \t")
}
