package main

import (
	astiptr "github.com/asticode/go-astitools/ptr"

	"github.com/vinadenenko/voice-command/assistant"
	"github.com/vinadenenko/voice-command/asr"
	"github.com/vinadenenko/voice-command/audiocapture"
	"github.com/vinadenenko/voice-command/nlu"
	"github.com/vinadenenko/voice-command/vad"
)

// Configuration is the demo's full tunable surface, merged from a
// defaults value, an optional toml file, and command-line flags, in
// that order of increasing priority (see newConfiguration).
type Configuration struct {
	HTTPAddr string `toml:"http_addr"`

	Capture audiocapture.Config `toml:"capture"`
	Vad     vad.Config          `toml:"vad"`

	ListeningMode      string  `toml:"listening_mode"` // continuous|wake_word|push_to_talk
	WakeWord           string  `toml:"wake_word"`
	WakeWordTimeoutMs  int     `toml:"wake_word_timeout_ms"`
	WakeWordConfidence float64 `toml:"wake_word_confidence"`

	VadCheckDurationMs       int  `toml:"vad_check_duration_ms"`
	CommandCaptureDurationMs int  `toml:"command_capture_duration_ms"`
	PollIntervalMs           int  `toml:"poll_interval_ms"`
	MaxQueueDepth            int  `toml:"max_queue_depth"`
	AutoSelectStrategy       bool `toml:"auto_select_strategy"`
	ForceNLUStrategy         bool `toml:"force_nlu_strategy"`

	ASRServerURL string `toml:"asr_server_url"`
	ASRModelPath string `toml:"asr_model_path"`

	NLURemoteURL   string `toml:"nlu_remote_url"`
	NLURemoteModel string `toml:"nlu_remote_model"`
	NLUAPIKey      string `toml:"nlu_api_key"`
}

func defaultConfiguration() *Configuration {
	return &Configuration{
		HTTPAddr: "127.0.0.1:6970",
		Capture: audiocapture.Config{
			DeviceID:         -1,
			SampleRateHz:     16000,
			Channels:         1,
			BufferDurationMs: 30000,
		},
		Vad: vad.Config{
			WindowMs:        500,
			EnergyThreshold: 0.5,
			HPFCutoffHz:     80,
			SampleRateHz:    16000,
		},
		ListeningMode:            "continuous",
		WakeWordTimeoutMs:        5000,
		WakeWordConfidence:       0.5,
		VadCheckDurationMs:       2000,
		CommandCaptureDurationMs: 8000,
		PollIntervalMs:           100,
		MaxQueueDepth:            10,
		AutoSelectStrategy:       true,
	}
}

func (c *Configuration) listeningMode() assistant.ListeningMode {
	switch c.ListeningMode {
	case "wake_word":
		return assistant.ModeWakeWord
	case "push_to_talk":
		return assistant.ModePushToTalk
	default:
		return assistant.ModeContinuous
	}
}

func (c *Configuration) assistantConfig() assistant.Config {
	return assistant.Config{
		AudioConfig:              audioEngineConfig(c),
		VadCheckDurationMs:       c.VadCheckDurationMs,
		CommandCaptureDurationMs: c.CommandCaptureDurationMs,
		PollIntervalMs:           c.PollIntervalMs,
		MaxQueueDepth:            c.MaxQueueDepth,
		AutoSelectStrategy:       astiptr.Bool(c.AutoSelectStrategy),
		ForceNLUStrategy:         c.ForceNLUStrategy,
		ListeningMode:            c.listeningMode(),
		WakeWord:                 c.WakeWord,
		WakeWordTimeoutMs:        c.WakeWordTimeoutMs,
		WakeWordConfidence:       c.WakeWordConfidence,
		ErrorThrottleMs:          5000,
	}
}

func (c *Configuration) asrRemoteConfig() asr.RemoteConfig {
	return asr.RemoteConfig{
		ServerURL: c.ASRServerURL,
		TimeoutMs: 30000,
	}
}

func (c *Configuration) asrLocalConfig() asr.LocalConfig {
	return asr.LocalConfig{
		ModelPath:  c.ASRModelPath,
		NumThreads: 4,
		MaxTokens:  32,
		Language:   "en",
		BeamSize:   5,
	}
}

func (c *Configuration) nluRemoteConfig() nlu.RemoteConfig {
	return nlu.RemoteConfig{
		ServerURL: c.NLURemoteURL,
		Model:     c.NLURemoteModel,
		APIKey:    c.NLUAPIKey,
		TimeoutMs: 30000,
		MaxTokens: 256,
	}
}
