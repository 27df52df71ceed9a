// Package audioengine composes an audiocapture backend and a vad
// detector behind a single façade (spec §4.3, component C3).
package audioengine

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/vinadenenko/voice-command/audiocapture"
	"github.com/vinadenenko/voice-command/vad"
)

// Config selects the capture backend and initial configuration for both
// halves of the engine.
type Config struct {
	Backend       audiocapture.BackendKind
	CaptureConfig audiocapture.Config
	VadConfig     vad.Config
}

// Engine composes one capture backend and one VAD.
type Engine struct {
	capture *audiocapture.Capture

	mu  sync.RWMutex
	vad vad.Config
}

// New constructs the selected backend and a VAD. Compilation may
// disable any backend (see audiocapture.BackendKind); the variant tag
// chooses among the ones available at runtime.
func New(cfg Config) (*Engine, error) {
	cap := audiocapture.New(cfg.CaptureConfig)
	if err := cap.Init(cfg.Backend); err != nil {
		return nil, errors.Wrap(err, "audioengine: initializing capture failed")
	}
	return &Engine{capture: cap, vad: cfg.VadConfig}, nil
}

// NewWithBackend constructs an engine over an already-built backend,
// for tests and for consumers supplying their own Sdl/Qt binding.
func NewWithBackend(backend audiocapture.Backend, captureCfg audiocapture.Config, vadCfg vad.Config) *Engine {
	cap := audiocapture.New(captureCfg)
	cap.InitWithBackend(backend)
	return &Engine{capture: cap, vad: vadCfg}
}

// Start delegates to the capture backend.
func (e *Engine) Start() error { return e.capture.Start() }

// Stop delegates to the capture backend. If the engine is stopped while
// running, capture is halted before anything else is released — callers
// that additionally drop the engine should call Stop first.
func (e *Engine) Stop() error { return e.capture.Stop() }

// Clear delegates to the capture backend.
func (e *Engine) Clear() error { return e.capture.Clear() }

// GetAudio delegates to the capture backend.
func (e *Engine) GetAudio(durationMs int) []float32 { return e.capture.GetAudio(durationMs) }

// IsRunning delegates to the capture backend.
func (e *Engine) IsRunning() bool { return e.capture.IsRunning() }

// SampleRate delegates to the capture backend.
func (e *Engine) SampleRate() int { return e.capture.SampleRate() }

// DetectSpeech delegates to the VAD using the current VAD config.
func (e *Engine) DetectSpeech(samples []float32) vad.Result {
	e.mu.RLock()
	cfg := e.vad
	e.mu.RUnlock()
	return vad.Detect(cfg, samples)
}

// SetVadConfig updates the VAD at runtime without stopping capture.
func (e *Engine) SetVadConfig(cfg vad.Config) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vad = cfg
}

// VadConfig returns the currently active VAD config.
func (e *Engine) VadConfig() vad.Config {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.vad
}
