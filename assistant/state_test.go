package assistant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinadenenko/voice-command/asr"
	"github.com/vinadenenko/voice-command/audiocapture"
	"github.com/vinadenenko/voice-command/audioengine"
	"github.com/vinadenenko/voice-command/vad"
)

type fakeBackend struct {
	sampleRate int
	write      func([]float32)
}

func (f *fakeBackend) Start(write func(samples []float32)) error {
	f.write = write
	return nil
}
func (f *fakeBackend) Stop() error     { return nil }
func (f *fakeBackend) SampleRate() int { return f.sampleRate }

type fakeWakeASR struct {
	match asr.GuidedMatchResult
}

func (f *fakeWakeASR) Transcribe(samples []float32) (asr.TranscribeResult, error) {
	return asr.TranscribeResult{}, nil
}
func (f *fakeWakeASR) GuidedMatch(samples []float32, phrases []string) (asr.GuidedMatchResult, error) {
	return f.match, nil
}
func (f *fakeWakeASR) ExpectedSampleRate() int { return asr.ExpectedSampleRateHz }

func newTestEngine(t *testing.T, sampleRate int) (*audioengine.Engine, *fakeBackend) {
	b := &fakeBackend{sampleRate: sampleRate}
	captureCfg := audiocapture.Config{SampleRateHz: sampleRate, BufferDurationMs: 10000}
	vadCfg := vad.Config{WindowMs: 500, EnergyThreshold: 0.5, SampleRateHz: sampleRate}
	e := audioengine.NewWithBackend(b, captureCfg, vadCfg)
	require.NoError(t, e.Start())
	return e, b
}

func feedSilence(b *fakeBackend, n int) {
	b.write(make([]float32, n))
}

func TestStateMachineContinuousEnqueuesOnSpeechEnded(t *testing.T) {
	e, b := newTestEngine(t, 1000)
	defer e.Stop()

	var enqueued [][]float32
	enqueue := func(s []float32) bool { enqueued = append(enqueued, s); return true }
	notifier := NewNotifier(0)

	sm := newStateMachine(ModeContinuous, e, nil, notifier, enqueue)
	sm.vadCheckDurationMs = 2000
	sm.commandCaptureDurationMs = 1000

	feedSilence(b, 3000)
	sm.tick(time.Now())

	assert.Len(t, enqueued, 1)
}

func TestStateMachineWakeWordInitialStateIsListening(t *testing.T) {
	e, _ := newTestEngine(t, 1000)
	defer e.Stop()
	sm := newStateMachine(ModeWakeWord, e, &fakeWakeASR{}, NewNotifier(0), func([]float32) bool { return true })
	assert.Equal(t, StateListening, sm.currentState())
}

func TestStateMachineWakeWordTransitionsToActive(t *testing.T) {
	e, b := newTestEngine(t, 1000)
	defer e.Stop()

	notifier := NewNotifier(0)
	var events []Event
	notifier.Subscribe(func(ev Event) { events = append(events, ev) })

	asrEngine := &fakeWakeASR{match: asr.GuidedMatchResult{Success: true, BestScore: 0.9}}
	sm := newStateMachine(ModeWakeWord, e, asrEngine, notifier, func([]float32) bool { return true })
	sm.wakeWord = "computer"
	sm.wakeWordConfidence = 0.5
	sm.wakeWordTimeoutMs = 5000
	sm.vadCheckDurationMs = 2000

	feedSilence(b, 3000)
	sm.tick(time.Now())

	assert.Equal(t, StateWakeWordActive, sm.currentState())

	var sawWake, sawTransition bool
	for _, ev := range events {
		if ev.Kind == WakeWordDetected {
			sawWake = true
		}
		if ev.Kind == ListeningStateChanged {
			sawTransition = true
		}
	}
	assert.True(t, sawWake)
	assert.True(t, sawTransition)
}

func TestStateMachineWakeWordActiveTimesOut(t *testing.T) {
	e, _ := newTestEngine(t, 1000)
	defer e.Stop()

	sm := newStateMachine(ModeWakeWord, e, &fakeWakeASR{}, NewNotifier(0), func([]float32) bool { return true })
	sm.state = StateWakeWordActive
	sm.wakeWordExpiry = time.Now().Add(-time.Second)

	sm.tick(time.Now())
	assert.Equal(t, StateListening, sm.currentState())
}

func TestStateMachinePushToTalkStartCaptureRejectedOutsideIdle(t *testing.T) {
	e, _ := newTestEngine(t, 1000)
	defer e.Stop()
	sm := newStateMachine(ModePushToTalk, e, nil, NewNotifier(0), func([]float32) bool { return true })
	sm.state = StateCapturing
	assert.False(t, sm.startCapture(time.Now()))
}

func TestStateMachinePushToTalkStartThenStopCapture(t *testing.T) {
	e, b := newTestEngine(t, 1000)
	defer e.Stop()

	var enqueued [][]float32
	sm := newStateMachine(ModePushToTalk, e, nil, NewNotifier(0), func(s []float32) bool {
		enqueued = append(enqueued, s)
		return true
	})

	start := time.Now()
	assert.True(t, sm.startCapture(start))
	assert.Equal(t, StateCapturing, sm.currentState())

	feedSilence(b, 1000)
	assert.True(t, sm.stopCapture(start.Add(500*time.Millisecond)))
	assert.Equal(t, StateIdle, sm.currentState())
	assert.Len(t, enqueued, 1)
}

func TestStateMachinePushToTalkStopRejectedOutsideCapturing(t *testing.T) {
	e, _ := newTestEngine(t, 1000)
	defer e.Stop()
	sm := newStateMachine(ModePushToTalk, e, nil, NewNotifier(0), func([]float32) bool { return true })
	assert.False(t, sm.stopCapture(time.Now()))
}
