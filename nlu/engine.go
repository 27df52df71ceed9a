// Package nlu turns a raw transcript into a command name plus extracted
// parameters (spec §4.6, component C8): a rule-based engine grounded on
// Levenshtein trigger matching, and a second engine speaking the remote
// LLM classifier's wire contract (spec §6).
package nlu

import "github.com/vinadenenko/voice-command/command"

// Result is the outcome of a process call.
type Result struct {
	Success         bool
	CommandName     string
	Confidence      float64
	ExtractedParams map[string]string
	Error           string
}

// Engine is the NLU port.
type Engine interface {
	Process(transcript string, descriptors []command.CommandDescriptor) Result
}
