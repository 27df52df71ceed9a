// Package recognize implements the two recognition strategies (spec
// §4.7, component C9) that turn a window of audio samples into a
// command name plus parameters: a guided closed-list match, and a full
// transcribe-then-NLU pipeline.
package recognize

import "github.com/vinadenenko/voice-command/command"

// DefaultMinGuidedConfidence is the guided strategy's default
// best_score threshold.
const DefaultMinGuidedConfidence = 0.3

// DefaultMinTranscriptionConfidence is the NLU strategy's default
// transcription-confidence threshold; spec §4.7 defaults it to 0,
// effectively disabling it unless explicitly configured.
const DefaultMinTranscriptionConfidence = 0

// DefaultMinNLUConfidence is the NLU strategy's default NLU-confidence
// threshold.
const DefaultMinNLUConfidence = 0.3

// Result is the outcome of a recognition call.
type Result struct {
	Success       bool
	CommandName   string
	Confidence    float64
	Params        map[string]string
	RawTranscript string
	Error         string

	ASRTimeMs   int64
	NLUTimeMs   int64
	TotalTimeMs int64
}

// Strategy is the recognition port.
type Strategy interface {
	Recognize(samples []float32) Result
}

// descriptorsSource is the narrow registry contract both strategies
// need.
type descriptorsSource interface {
	AllDescriptors() []command.CommandDescriptor
}
