package recognize

import (
	"math"
	"time"

	"github.com/vinadenenko/voice-command/asr"
	"github.com/vinadenenko/voice-command/nlu"
)

// NLUStrategy transcribes captured audio, then runs the transcript
// through an NLU engine to pick a command and extract its parameters.
// It is the default strategy once any registered command declares
// parameters (spec §4.7, §4.8).
type NLUStrategy struct {
	ASR      asr.Engine
	NLU      nlu.Engine
	Registry descriptorsSource

	MinTranscriptionConfidence float64
	MinNLUConfidence           float64
}

// NewNLUStrategy creates an NLUStrategy with spec §4.7's defaults
// (min_transcription_confidence=0, min_nlu_confidence=0.3).
func NewNLUStrategy(asrEngine asr.Engine, nluEngine nlu.Engine, registry descriptorsSource) *NLUStrategy {
	return &NLUStrategy{
		ASR:                        asrEngine,
		NLU:                        nluEngine,
		Registry:                   registry,
		MinTranscriptionConfidence: DefaultMinTranscriptionConfidence,
		MinNLUConfidence:           DefaultMinNLUConfidence,
	}
}

func (s *NLUStrategy) minNLUConfidence() float64 {
	if s.MinNLUConfidence > 0 {
		return s.MinNLUConfidence
	}
	return DefaultMinNLUConfidence
}

// Recognize implements Strategy.
func (s *NLUStrategy) Recognize(samples []float32) Result {
	start := time.Now()

	transcribeStart := time.Now()
	tr, err := s.ASR.Transcribe(samples)
	asrTimeMs := time.Since(transcribeStart).Milliseconds()
	if err != nil {
		return s.fail(err.Error(), asrTimeMs, 0, start)
	}
	if !tr.Success || tr.Text == "" {
		msg := tr.Error
		if msg == "" {
			msg = "recognize: empty transcript"
		}
		return s.fail(msg, asrTimeMs, 0, start)
	}

	confidence := math.Exp(tr.LogprobMin)
	if confidence < s.MinTranscriptionConfidence {
		return s.fail("recognize: transcription confidence below threshold", asrTimeMs, 0, start)
	}

	nluStart := time.Now()
	res := s.NLU.Process(tr.Text, s.Registry.AllDescriptors())
	nluTimeMs := time.Since(nluStart).Milliseconds()

	if !res.Success || res.Confidence < s.minNLUConfidence() {
		msg := res.Error
		if msg == "" {
			msg = "recognize: NLU confidence below threshold"
		}
		return Result{
			Success:       false,
			Error:         msg,
			RawTranscript: tr.Text,
			ASRTimeMs:     asrTimeMs,
			NLUTimeMs:     nluTimeMs,
			TotalTimeMs:   time.Since(start).Milliseconds(),
		}
	}

	return Result{
		Success:       true,
		CommandName:   res.CommandName,
		Confidence:    res.Confidence,
		Params:        res.ExtractedParams,
		RawTranscript: tr.Text,
		ASRTimeMs:     asrTimeMs,
		NLUTimeMs:     nluTimeMs,
		TotalTimeMs:   time.Since(start).Milliseconds(),
	}
}

func (s *NLUStrategy) fail(msg string, asrTimeMs, nluTimeMs int64, start time.Time) Result {
	return Result{
		Success:     false,
		Error:       msg,
		ASRTimeMs:   asrTimeMs,
		NLUTimeMs:   nluTimeMs,
		TotalTimeMs: time.Since(start).Milliseconds(),
	}
}
