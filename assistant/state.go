package assistant

import (
	"sync"
	"time"

	"github.com/vinadenenko/voice-command/asr"
	"github.com/vinadenenko/voice-command/audioengine"
)

// ListeningMode selects which of the three tick/event tables in spec
// §4.10 governs the state machine.
type ListeningMode int

const (
	ModeContinuous ListeningMode = iota
	ModeWakeWord
	ModePushToTalk
)

// String implements fmt.Stringer.
func (m ListeningMode) String() string {
	switch m {
	case ModeContinuous:
		return "continuous"
	case ModeWakeWord:
		return "wake_word"
	case ModePushToTalk:
		return "push_to_talk"
	default:
		return "unknown"
	}
}

// ListeningState is a state of the listening state machine.
type ListeningState int

const (
	StateIdle ListeningState = iota
	StateListening
	StateWakeWordActive
	StateCapturing
)

// String implements fmt.Stringer.
func (s ListeningState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateListening:
		return "listening"
	case StateWakeWordActive:
		return "wake_word_active"
	case StateCapturing:
		return "capturing"
	default:
		return "unknown"
	}
}

// stateMachine implements spec §4.10's tick/event table. It owns no
// goroutine of its own; the orchestrator's polling task calls tick
// repeatedly and start_capture/stop_capture on external PTT events.
type stateMachine struct {
	mode ListeningMode

	engine *audioengine.Engine
	asr    asr.Engine

	wakeWord           string
	wakeWordTimeoutMs  int
	wakeWordConfidence float64

	vadCheckDurationMs       int
	commandCaptureDurationMs int

	notifier *Notifier
	enqueue  func([]float32) bool

	// mu guards state, wakeWordExpiry, and captureStarted: tick,
	// startCapture, and stopCapture run on the orchestrator's polling
	// goroutine while currentState is read from any subscriber
	// goroutine (e.g. the HTTP status handler).
	mu             sync.Mutex
	state          ListeningState
	wakeWordExpiry time.Time
	captureStarted time.Time
}

// newStateMachine creates a state machine in its mode's initial state.
// It does not validate the wake word; VoiceAssistant's Init rejects
// WakeWord mode with an empty wake_word before building one.
func newStateMachine(mode ListeningMode, engine *audioengine.Engine, asrEngine asr.Engine, notifier *Notifier, enqueue func([]float32) bool) *stateMachine {
	sm := &stateMachine{
		mode:     mode,
		engine:   engine,
		asr:      asrEngine,
		notifier: notifier,
		enqueue:  enqueue,
	}
	switch mode {
	case ModeContinuous, ModeWakeWord:
		sm.state = StateListening
	case ModePushToTalk:
		sm.state = StateIdle
	}
	return sm
}

// transition assumes the caller already holds sm.mu.
func (sm *stateMachine) transition(next ListeningState) {
	old := sm.state
	sm.state = next
	if old != next {
		sm.notifier.Emit(Event{Kind: ListeningStateChanged, OldState: old, NewState: next})
	}
}

// tick runs one polling iteration. now is injected so tests can control
// wake-word timeout behavior deterministically.
func (sm *stateMachine) tick(now time.Time) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	switch sm.mode {
	case ModeContinuous:
		sm.tickContinuous()
	case ModeWakeWord:
		sm.tickWakeWord(now)
	case ModePushToTalk:
		// Idle and Capturing states have no tick action; all motion
		// comes from startCapture/stopCapture.
	}
}

// tickContinuous assumes the caller already holds sm.mu.
func (sm *stateMachine) tickContinuous() {
	samples := sm.engine.GetAudio(sm.vadCheckDurationMs)
	result := sm.engine.DetectSpeech(samples)
	if !result.SpeechEnded {
		return
	}

	window := sm.engine.GetAudio(sm.commandCaptureDurationMs)
	sm.enqueueWindow(window)
	_ = sm.engine.Clear()
}

// tickWakeWord assumes the caller already holds sm.mu.
func (sm *stateMachine) tickWakeWord(now time.Time) {
	switch sm.state {
	case StateListening:
		samples := sm.engine.GetAudio(sm.vadCheckDurationMs)
		result := sm.engine.DetectSpeech(samples)
		if !result.SpeechEnded {
			return
		}
		match, err := sm.asr.GuidedMatch(samples, []string{sm.wakeWord})
		if err == nil && match.Success && match.BestScore >= sm.wakeWordConfidence {
			sm.wakeWordExpiry = now.Add(time.Duration(sm.wakeWordTimeoutMs) * time.Millisecond)
			sm.notifier.Emit(Event{Kind: WakeWordDetected})
			sm.transition(StateWakeWordActive)
		}
		_ = sm.engine.Clear()

	case StateWakeWordActive:
		if now.After(sm.wakeWordExpiry) {
			sm.transition(StateListening)
			_ = sm.engine.Clear()
			return
		}
		samples := sm.engine.GetAudio(sm.vadCheckDurationMs)
		result := sm.engine.DetectSpeech(samples)
		if !result.SpeechEnded {
			return
		}
		window := sm.engine.GetAudio(sm.commandCaptureDurationMs)
		sm.enqueueWindow(window)
		sm.transition(StateListening)
	}
}

func (sm *stateMachine) enqueueWindow(window []float32) {
	if sm.enqueue(window) {
		sm.notifier.Emit(Event{Kind: SpeechDetected})
	} else {
		sm.notifier.logError("assistant: audio queue full, dropping captured window")
	}
}

// startCapture handles the PushToTalk start event. It reports false,
// without changing state, unless mode is PushToTalk and state is Idle.
func (sm *stateMachine) startCapture(now time.Time) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.mode != ModePushToTalk || sm.state != StateIdle {
		return false
	}
	_ = sm.engine.Clear()
	sm.captureStarted = now
	sm.transition(StateCapturing)
	sm.notifier.Emit(Event{Kind: CaptureStarted})
	return true
}

// stopCapture handles the PushToTalk stop event. It reports false,
// without changing state, unless state is Capturing.
func (sm *stateMachine) stopCapture(now time.Time) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.state != StateCapturing {
		return false
	}
	elapsedMs := int(now.Sub(sm.captureStarted) / time.Millisecond)
	window := sm.engine.GetAudio(elapsedMs)
	sm.enqueueWindow(window)
	_ = sm.engine.Clear()
	sm.transition(StateIdle)
	sm.notifier.Emit(Event{Kind: CaptureEnded})
	return true
}

// currentState reports the state machine's current state.
func (sm *stateMachine) currentState() ListeningState {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.state
}
