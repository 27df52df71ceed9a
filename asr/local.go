package asr

import (
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// LocalConfig configures an in-process local ASR model, per spec §6's
// LocalAsrConfig.
type LocalConfig struct {
	ModelPath    string
	NumThreads   int // default 4
	MaxTokens    int // default 32
	AudioCtx     int
	Language     string // default "en"
	Translate    bool
	UseGPU       bool
	FlashAttn    bool
	PrintSpecial bool
	Temperature  float64
	BeamSize     int // default 5
}

// Model is the narrow contract LocalEngine needs from an in-process
// model handle (e.g. a whisper.cpp or DeepSpeech binding). It is
// injected rather than hard-linked so this package compiles without any
// cgo dependency; the `deepspeech` build tag wires a concrete adapter
// over github.com/asticode/go-astideepspeech in local_deepspeech.go.
type Model interface {
	// TranscribeSamples returns the recognized text plus a per-token
	// log-probability trace, most negative token first is not
	// required; only Min and Sum are used.
	TranscribeSamples(samples []float32, sampleRate int) (text string, logprobs []float64, err error)
}

// LocalEngine wraps an injected Model behind the Engine port.
type LocalEngine struct {
	cfg   LocalConfig
	model Model
}

// NewLocalEngine creates a local ASR engine over model, configured by
// cfg.
func NewLocalEngine(cfg LocalConfig, model Model) (*LocalEngine, error) {
	if model == nil {
		return nil, errors.New("asr: local engine requires a model")
	}
	return &LocalEngine{cfg: cfg, model: model}, nil
}

func (e *LocalEngine) ExpectedSampleRate() int { return ExpectedSampleRateHz }

// Transcribe implements Engine.
func (e *LocalEngine) Transcribe(samples []float32) (TranscribeResult, error) {
	start := time.Now()
	text, logprobs, err := e.model.TranscribeSamples(samples, ExpectedSampleRateHz)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		return TranscribeResult{Success: false, Error: err.Error(), ProcessingTimeMs: elapsed}, nil
	}

	min, sum := logprobMinSum(logprobs)
	return TranscribeResult{
		Success:          true,
		Text:             strings.TrimSpace(text),
		LogprobMin:       min,
		LogprobSum:       sum,
		NumTokens:        len(logprobs),
		ProcessingTimeMs: elapsed,
	}, nil
}

// GuidedMatch scores samples against phrases by transcribing once and
// comparing the transcript to each candidate phrase with the same
// Levenshtein similarity the rule-based NLU engine uses, normalizing
// scores to sum to 1 across the provided phrases.
func (e *LocalEngine) GuidedMatch(samples []float32, phrases []string) (GuidedMatchResult, error) {
	start := time.Now()
	tr, err := e.Transcribe(samples)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		return GuidedMatchResult{}, err
	}
	if !tr.Success {
		return GuidedMatchResult{Success: false, Error: tr.Error, ProcessingTimeMs: elapsed}, nil
	}

	scores := scorePhrases(tr.Text, phrases)
	bestIndex, bestScore := argmaxLowestIndexTie(scores)
	var bestMatch string
	if bestIndex >= 0 {
		bestMatch = phrases[bestIndex]
	}
	return GuidedMatchResult{
		Success:          true,
		BestIndex:        bestIndex,
		BestMatch:        bestMatch,
		BestScore:        bestScore,
		AllScores:        scores,
		ProcessingTimeMs: elapsed,
	}, nil
}

func logprobMinSum(logprobs []float64) (min, sum float64) {
	if len(logprobs) == 0 {
		return 0, 0
	}
	min = logprobs[0]
	for _, l := range logprobs {
		sum += l
		if l < min {
			min = l
		}
	}
	return min, sum
}

// Confidence converts a transcription's logprob_min into the (0,1]
// confidence spec §4.4 defines: exp(logprob_min).
func Confidence(r TranscribeResult) float64 {
	return math.Exp(r.LogprobMin)
}
