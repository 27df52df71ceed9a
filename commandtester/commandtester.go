// Package commandtester implements a bypass harness (spec §4.11,
// component C11) that runs transcripts straight through NLU and the
// dispatcher, with no audio capture or ASR involved — useful for
// exercising a command registry's trigger phrases and parameter rules
// without a microphone.
package commandtester

import (
	"github.com/vinadenenko/voice-command/command"
	"github.com/vinadenenko/voice-command/nlu"
)

// DefaultMinConfidence mirrors the rule-based NLU engine's own default
// intent-match threshold (spec §4.6).
const DefaultMinConfidence = 0.5

// TestResult is the outcome of processing one transcript.
type TestResult struct {
	Recognised      bool
	CommandName     string
	Confidence      float64
	Params          map[string]string
	ExecutionResult command.Result
	RawTranscript   string
	Error           string
}

// CommandTester builds a fresh registry and dispatcher and runs
// transcripts through a given (or default) NLU engine.
type CommandTester struct {
	Registry      *command.Registry
	Dispatcher    *command.Dispatcher
	NLU           nlu.Engine
	MinConfidence float64
}

// New builds a CommandTester with a fresh registry+dispatcher. If
// nluEngine is nil, a default rule-based engine is used, per spec
// §4.11's init(nlu?) contract.
func New(nluEngine nlu.Engine) *CommandTester {
	registry := command.NewRegistry()
	if nluEngine == nil {
		nluEngine = nlu.NewRuleEngine()
	}
	return &CommandTester{
		Registry:      registry,
		Dispatcher:    command.NewDispatcher(registry),
		NLU:           nluEngine,
		MinConfidence: DefaultMinConfidence,
	}
}

// Register adds a command to the tester's registry, returning false if
// the name is already taken (command.Registry.Register's contract).
func (t *CommandTester) Register(descriptor command.CommandDescriptor, handler command.Handler) bool {
	return t.Registry.Register(descriptor, handler)
}

func (t *CommandTester) minConfidence() float64 {
	if t.MinConfidence > 0 {
		return t.MinConfidence
	}
	return DefaultMinConfidence
}

// ProcessText runs transcript through NLU then the dispatcher, with no
// audio or ASR involved. A confidence below MinConfidence reports a
// threshold error without invoking the handler, per spec §4.11.
func (t *CommandTester) ProcessText(transcript string) TestResult {
	res := t.NLU.Process(transcript, t.Registry.AllDescriptors())
	if !res.Success {
		msg := res.Error
		if msg == "" {
			msg = "commandtester: no command matched"
		}
		return TestResult{Recognised: false, RawTranscript: transcript, Error: msg}
	}
	if res.Confidence < t.minConfidence() {
		return TestResult{
			Recognised:    true,
			CommandName:   res.CommandName,
			Confidence:    res.Confidence,
			Params:        res.ExtractedParams,
			RawTranscript: transcript,
			Error:         "commandtester: confidence below threshold",
		}
	}

	ctx := command.NewContext(res.ExtractedParams, transcript, res.Confidence)
	execResult := t.Dispatcher.Dispatch(res.CommandName, ctx)

	return TestResult{
		Recognised:      true,
		CommandName:     res.CommandName,
		Confidence:      res.Confidence,
		Params:          res.ExtractedParams,
		ExecutionResult: execResult,
		RawTranscript:   transcript,
	}
}

// ProcessBatch runs ProcessText over every transcript in order.
func (t *CommandTester) ProcessBatch(transcripts []string) []TestResult {
	results := make([]TestResult, len(transcripts))
	for i, tr := range transcripts {
		results[i] = t.ProcessText(tr)
	}
	return results
}
