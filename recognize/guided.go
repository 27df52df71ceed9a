package recognize

import (
	"strings"
	"time"

	"github.com/vinadenenko/voice-command/asr"
	"github.com/vinadenenko/voice-command/command"
)

// GuidedStrategy matches captured audio directly against the registry's
// trigger phrases via the ASR engine's closed-list scoring, producing no
// parameters. It is the cheaper of the two strategies and the default
// when no registered command declares parameters (spec §4.7, §4.8).
type GuidedStrategy struct {
	Engine        asr.Engine
	Registry      descriptorsSource
	MinConfidence float64
}

// NewGuidedStrategy creates a GuidedStrategy with spec §4.7's default
// min_confidence (0.3).
func NewGuidedStrategy(engine asr.Engine, registry descriptorsSource) *GuidedStrategy {
	return &GuidedStrategy{Engine: engine, Registry: registry, MinConfidence: DefaultMinGuidedConfidence}
}

func (s *GuidedStrategy) minConfidence() float64 {
	if s.MinConfidence > 0 {
		return s.MinConfidence
	}
	return DefaultMinGuidedConfidence
}

// Recognize implements Strategy. It rebuilds the phrase list on every
// call since the registry can change between calls (spec §4.7).
func (s *GuidedStrategy) Recognize(samples []float32) Result {
	start := time.Now()

	phraseToCommand, phrases := buildPhraseIndex(s.Registry.AllDescriptors())
	if len(phrases) == 0 {
		return Result{Success: false, Error: "recognize: no registered trigger phrases"}
	}

	match, err := s.Engine.GuidedMatch(samples, phrases)
	asrTimeMs := match.ProcessingTimeMs
	if err != nil {
		return Result{Success: false, Error: err.Error(), ASRTimeMs: asrTimeMs, TotalTimeMs: time.Since(start).Milliseconds()}
	}
	if !match.Success {
		return Result{Success: false, Error: match.Error, ASRTimeMs: asrTimeMs, TotalTimeMs: time.Since(start).Milliseconds()}
	}
	if match.BestScore < s.minConfidence() {
		return Result{Success: false, Error: "recognize: confidence below threshold", ASRTimeMs: asrTimeMs, TotalTimeMs: time.Since(start).Milliseconds()}
	}

	commandName := phraseToCommand[strings.ToLower(match.BestMatch)]
	return Result{
		Success:     true,
		CommandName: commandName,
		Confidence:  match.BestScore,
		ASRTimeMs:   asrTimeMs,
		TotalTimeMs: time.Since(start).Milliseconds(),
	}
}

// buildPhraseIndex builds a lowercase phrase→command_name map and an
// ordered phrase list across every descriptor's trigger phrases, per
// spec §4.7.
func buildPhraseIndex(descriptors []command.CommandDescriptor) (map[string]string, []string) {
	index := make(map[string]string)
	var phrases []string
	for _, d := range descriptors {
		for _, t := range d.TriggerPhrases {
			lower := strings.ToLower(t)
			index[lower] = d.Name
			phrases = append(phrases, t)
		}
	}
	return index, phrases
}
