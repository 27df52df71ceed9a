package nlu

import "github.com/vinadenenko/voice-command/command"

// DefaultMinConfidence is the intent-match threshold below which
// RuleEngine reports no match, per spec §4.6.
const DefaultMinConfidence = 0.5

// RuleEngine is the rule-based NLU engine: Levenshtein trigger matching
// followed by regex/keyword parameter extraction, with no external
// dependency beyond the fuzzy-matching library.
type RuleEngine struct {
	MinConfidence float64
}

// NewRuleEngine creates a RuleEngine with spec §4.6's default threshold.
func NewRuleEngine() *RuleEngine {
	return &RuleEngine{MinConfidence: DefaultMinConfidence}
}

func (e *RuleEngine) minConfidence() float64 {
	if e.MinConfidence > 0 {
		return e.MinConfidence
	}
	return DefaultMinConfidence
}

// Process implements Engine.
func (e *RuleEngine) Process(transcript string, descriptors []command.CommandDescriptor) Result {
	if normalize(transcript) == "" || len(descriptors) == 0 {
		return Result{Success: false, Error: "nlu: empty transcript or no descriptors"}
	}

	normTranscript := normalize(transcript)
	match, ok := matchIntent(normTranscript, descriptors)
	if !ok {
		return Result{Success: false, Error: "nlu: no command matched"}
	}
	if match.score < e.minConfidence() {
		return Result{Success: false, Error: "nlu: confidence below threshold, no command matched"}
	}

	region := extractArgumentRegion(normTranscript, match.matchedPhrase)
	params := extractParams(region, match.descriptor.Parameters)

	return Result{
		Success:         true,
		CommandName:     match.descriptor.Name,
		Confidence:      match.score,
		ExtractedParams: params,
	}
}
