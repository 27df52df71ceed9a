// Package assistant implements the orchestrator (spec §4.8, component
// C10): it wires together an audio engine, an ASR engine, an NLU
// engine, a command registry/dispatcher, and one recognition strategy,
// and runs the polling and processing loops that turn captured audio
// into dispatched commands.
package assistant

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/vinadenenko/voice-command/asr"
	"github.com/vinadenenko/voice-command/audioengine"
	"github.com/vinadenenko/voice-command/command"
	"github.com/vinadenenko/voice-command/nlu"
	"github.com/vinadenenko/voice-command/recognize"
)

// VoiceAssistant is the orchestrator. The zero value is not usable;
// build one with New.
type VoiceAssistant struct {
	registry   *command.Registry
	dispatcher *command.Dispatcher
	asrEngine  asr.Engine
	ownsASR    bool

	notifier *Notifier

	cfg    Config
	engine *audioengine.Engine
	q      *queue
	sm     *stateMachine

	nluEngine nlu.Engine

	running atomic.Bool

	// mu guards forceNLU and strategy: SetForceNLUStrategy can be
	// called from any goroutine while the processing worker reads
	// strategy on every process() call (spec §4.8 allows
	// force_nlu_strategy to flip at runtime while running).
	mu       sync.Mutex
	forceNLU bool
	strategy recognize.Strategy

	oStart *sync.Once
	oStop  *sync.Once

	wg       sync.WaitGroup
	stopPoll chan struct{}
}

// New creates a VoiceAssistant over an existing registry and ASR
// engine. ownsASR controls whether Shutdown closes asrEngine if it
// implements a Close method — the ASR engine may be shared across
// multiple consumers (spec §4.8: "ASR engine (borrowed or owned)").
func New(registry *command.Registry, asrEngine asr.Engine, ownsASR bool) *VoiceAssistant {
	return &VoiceAssistant{
		registry:   registry,
		dispatcher: command.NewDispatcher(registry),
		asrEngine:  asrEngine,
		ownsASR:    ownsASR,
		notifier:   NewNotifier(0),
		oStart:     &sync.Once{},
		oStop:      &sync.Once{},
	}
}

// Init configures the assistant from cfg and binds an NLU engine. It
// builds the audio engine and state machine but does not start capture.
// It returns false, leaving the assistant releasable by Shutdown, if
// WakeWord mode is selected with an empty wake word.
//
// cfg is passed through Config.defaulted(), so a Config{} struct
// literal built without NewConfig still gets every spec §6 default,
// including AutoSelectStrategy's tri-state resolving to true.
func (a *VoiceAssistant) Init(cfg Config, nluEngine nlu.Engine) (bool, error) {
	engine, err := audioengine.New(cfg.AudioConfig)
	if err != nil {
		return false, errors.Wrap(err, "assistant: building audio engine failed")
	}
	return a.initWithEngine(cfg, nluEngine, engine)
}

// InitWithEngine configures the assistant exactly as Init does, but over
// an already-built audio engine rather than one constructed from
// cfg.AudioConfig. Consumers supplying their own audiocapture.Backend
// (an SDL/Qt binding, or a test fake) use this instead of Init.
func (a *VoiceAssistant) InitWithEngine(cfg Config, nluEngine nlu.Engine, engine *audioengine.Engine) (bool, error) {
	return a.initWithEngine(cfg, nluEngine, engine)
}

func (a *VoiceAssistant) initWithEngine(cfg Config, nluEngine nlu.Engine, engine *audioengine.Engine) (bool, error) {
	cfg = cfg.defaulted()
	if cfg.ListeningMode == ModeWakeWord && cfg.WakeWord == "" {
		return false, errors.New("assistant: wake word mode requires a non-empty wake word")
	}

	a.cfg = cfg
	a.engine = engine
	a.nluEngine = nluEngine
	a.notifier = NewNotifier(time.Duration(cfg.ErrorThrottleMs) * time.Millisecond)
	a.q = newQueue(cfg.MaxQueueDepth)
	a.sm = newStateMachine(cfg.ListeningMode, engine, a.asrEngine, a.notifier, a.q.enqueue)
	a.sm.wakeWord = cfg.WakeWord
	a.sm.wakeWordTimeoutMs = cfg.WakeWordTimeoutMs
	a.sm.wakeWordConfidence = cfg.WakeWordConfidence
	a.sm.vadCheckDurationMs = cfg.VadCheckDurationMs
	a.sm.commandCaptureDurationMs = cfg.CommandCaptureDurationMs

	return true, nil
}

// Subscribe registers a callback for every orchestrator/state-machine
// event (spec §6).
func (a *VoiceAssistant) Subscribe(fn func(Event)) { a.notifier.Subscribe(fn) }

// GetRegistry returns the bound command registry.
func (a *VoiceAssistant) GetRegistry() *command.Registry { return a.registry }

// IsRunning reports whether the assistant is between Start and Stop.
func (a *VoiceAssistant) IsRunning() bool { return a.running.Load() }

// ListeningMode reports the configured listening mode.
func (a *VoiceAssistant) ListeningMode() ListeningMode { return a.cfg.ListeningMode }

// ListeningState reports the state machine's current state.
func (a *VoiceAssistant) ListeningState() ListeningState { return a.sm.currentState() }

// SetForceNLUStrategy flips force_nlu_strategy and, if running,
// re-selects the active strategy immediately (spec §4.8).
func (a *VoiceAssistant) SetForceNLUStrategy(force bool) {
	a.mu.Lock()
	a.forceNLU = force
	a.mu.Unlock()
	if a.running.Load() {
		a.setStrategy(a.selectStrategy())
	}
}

func (a *VoiceAssistant) selectStrategy() recognize.Strategy {
	a.mu.Lock()
	force := a.forceNLU || a.cfg.ForceNLUStrategy
	a.mu.Unlock()

	wantsNLU := force || (*a.cfg.AutoSelectStrategy && a.registry.HasParameterizedCommands())
	if wantsNLU && a.nluEngine != nil {
		return recognize.NewNLUStrategy(a.asrEngine, a.nluEngine, a.registry)
	}
	return recognize.NewGuidedStrategy(a.asrEngine, a.registry)
}

func (a *VoiceAssistant) setStrategy(s recognize.Strategy) {
	a.mu.Lock()
	a.strategy = s
	a.mu.Unlock()
}

func (a *VoiceAssistant) getStrategy() recognize.Strategy {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.strategy
}

// Start selects a strategy, starts the audio engine, and launches the
// polling and processing goroutines. Subsequent Start calls before a
// matching Stop are no-ops, mirroring the teacher's BaseRunnable
// sync.Once start/stop pairing (runnable.go).
func (a *VoiceAssistant) Start() (started bool, err error) {
	a.oStart.Do(func() {
		a.setStrategy(a.selectStrategy())

		if startErr := a.engine.Start(); startErr != nil {
			err = errors.Wrap(startErr, "assistant: starting audio engine failed")
			return
		}

		a.running.Store(true)
		a.oStop = &sync.Once{}
		a.stopPoll = make(chan struct{})

		a.wg.Add(2)
		go a.runPoll()
		go a.runWorker()

		started = true
	})
	return
}

func (a *VoiceAssistant) runPoll() {
	defer a.wg.Done()
	interval := time.Duration(a.cfg.PollIntervalMs) * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stopPoll:
			return
		case <-ticker.C:
			a.sm.tick(time.Now())
		}
	}
}

func (a *VoiceAssistant) runWorker() {
	defer a.wg.Done()
	for {
		samples, ok := a.q.dequeue()
		if !ok {
			return
		}
		a.process(samples)
	}
}

func (a *VoiceAssistant) process(samples []float32) {
	result := a.getStrategy().Recognize(samples)
	if !result.Success {
		if result.RawTranscript != "" {
			a.notifier.Emit(Event{Kind: UnrecognisedSpeech, Transcript: result.RawTranscript})
		} else {
			a.notifier.logError("assistant: recognition failed: %s", result.Error)
		}
		return
	}

	ctx := command.NewContext(result.Params, result.RawTranscript, result.Confidence)
	dispatchResult := a.dispatcher.Dispatch(result.CommandName, ctx)
	a.notifier.Emit(Event{
		Kind:        CommandExecuted,
		CommandName: result.CommandName,
		Result:      dispatchResult,
		Context:     ctx,
	})
}

// StartCapture begins a PushToTalk capture window. See stateMachine's
// startCapture for the rejection rule.
func (a *VoiceAssistant) StartCapture() bool {
	if !a.running.Load() {
		return false
	}
	return a.sm.startCapture(time.Now())
}

// StopCapture ends a PushToTalk capture window. See stateMachine's
// stopCapture for the rejection rule.
func (a *VoiceAssistant) StopCapture() bool {
	if !a.running.Load() {
		return false
	}
	return a.sm.stopCapture(time.Now())
}

// Stop halts the polling and processing goroutines, stops the audio
// engine, drains the queue, and resets the state machine to its mode's
// initial state. Subsequent Stop calls before a matching Start are
// no-ops.
func (a *VoiceAssistant) Stop() (err error) {
	a.oStop.Do(func() {
		if a.stopPoll == nil {
			// Never started: no goroutines, queue or capture to release.
			a.oStart = &sync.Once{}
			return
		}
		a.running.Store(false)
		close(a.stopPoll)
		a.q.close()
		a.wg.Wait()

		if stopErr := a.engine.Stop(); stopErr != nil {
			err = errors.Wrap(stopErr, "assistant: stopping audio engine failed")
		}
		a.q.drain()
		a.sm = newStateMachine(a.cfg.ListeningMode, a.engine, a.asrEngine, a.notifier, a.q.enqueue)
		a.sm.wakeWord = a.cfg.WakeWord
		a.sm.wakeWordTimeoutMs = a.cfg.WakeWordTimeoutMs
		a.sm.wakeWordConfidence = a.cfg.WakeWordConfidence
		a.sm.vadCheckDurationMs = a.cfg.VadCheckDurationMs
		a.sm.commandCaptureDurationMs = a.cfg.CommandCaptureDurationMs

		a.oStart = &sync.Once{}
	})
	return
}

// closer is implemented by owned ASR engines that hold a releasable
// resource (e.g. a loaded local model).
type closer interface {
	Close()
}

// Shutdown stops the assistant then releases every owned component in
// reverse-dependency order: the audio engine was already released by
// Stop, so only the optionally-owned ASR engine remains.
func (a *VoiceAssistant) Shutdown() error {
	if err := a.Stop(); err != nil {
		return err
	}
	if a.ownsASR {
		if c, ok := a.asrEngine.(closer); ok {
			c.Close()
		}
	}
	return nil
}
