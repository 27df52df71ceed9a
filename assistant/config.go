package assistant

import (
	astiptr "github.com/asticode/go-astitools/ptr"

	"github.com/vinadenenko/voice-command/audioengine"
)

// Config is VoiceAssistantConfig from spec §6: every tunable the
// orchestrator reads at Init time. Zero-valued fields fall back to the
// documented defaults in defaulted().
type Config struct {
	AudioConfig audioengine.Config

	VadCheckDurationMs       int // default 2000
	CommandCaptureDurationMs int // default 8000
	PollIntervalMs           int // default 100
	MaxQueueDepth            int // default 10

	// AutoSelectStrategy is a tri-state, mirroring the teacher corpus's
	// astiptr.Bool convention for fields that must distinguish "unset"
	// from false: nil means "apply spec §6's default (true)", so a
	// Config{} literal that omits the field still gets strategy
	// auto-selection through defaulted() rather than silently landing
	// on Go's zero value. Use WithAutoSelect to opt out explicitly.
	AutoSelectStrategy *bool
	ForceNLUStrategy   bool

	ListeningMode      ListeningMode
	WakeWord           string
	WakeWordTimeoutMs  int     // default 5000
	WakeWordConfidence float64 // default 0.5

	// ErrorThrottleMs bounds how often repeated ErrorEvents reach
	// subscribers; 0 disables throttling.
	ErrorThrottleMs int
}

const (
	defaultVadCheckDurationMs       = 2000
	defaultCommandCaptureDurationMs = 8000
	defaultPollIntervalMs           = 100
	defaultMaxQueueDepth            = 10
	defaultWakeWordTimeoutMs        = 5000
	defaultWakeWordConfidence       = 0.5
)

// defaulted returns a copy of cfg with every zero-valued tunable
// replaced by spec §6's documented default, including a nil
// AutoSelectStrategy resolving to true. Init and InitWithEngine both
// call this, so even a Config{} struct literal built without NewConfig
// gets the documented default; callers that want auto-selection off
// must set AutoSelectStrategy explicitly, e.g. via WithAutoSelect.
func (cfg Config) defaulted() Config {
	out := cfg
	if out.AutoSelectStrategy == nil {
		out.AutoSelectStrategy = astiptr.Bool(true)
	}
	if out.VadCheckDurationMs <= 0 {
		out.VadCheckDurationMs = defaultVadCheckDurationMs
	}
	if out.CommandCaptureDurationMs <= 0 {
		out.CommandCaptureDurationMs = defaultCommandCaptureDurationMs
	}
	if out.PollIntervalMs <= 0 {
		out.PollIntervalMs = defaultPollIntervalMs
	}
	if out.MaxQueueDepth <= 0 {
		out.MaxQueueDepth = defaultMaxQueueDepth
	}
	if out.WakeWordTimeoutMs <= 0 {
		out.WakeWordTimeoutMs = defaultWakeWordTimeoutMs
	}
	if out.WakeWordConfidence <= 0 {
		out.WakeWordConfidence = defaultWakeWordConfidence
	}
	return out
}

// NewConfig returns a Config with every documented default applied,
// per spec §6.
func NewConfig() Config {
	return Config{}.defaulted()
}

// WithAutoSelect returns a copy of cfg with AutoSelectStrategy pinned
// to on, for callers that want to opt out of (or explicitly confirm)
// the spec §6 default rather than relying on defaulted()'s nil
// resolution.
func (cfg Config) WithAutoSelect(on bool) Config {
	out := cfg
	out.AutoSelectStrategy = astiptr.Bool(on)
	return out
}
