package assistant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	astiptr "github.com/asticode/go-astitools/ptr"

	"github.com/vinadenenko/voice-command/asr"
	"github.com/vinadenenko/voice-command/audiocapture"
	"github.com/vinadenenko/voice-command/audioengine"
	"github.com/vinadenenko/voice-command/command"
	"github.com/vinadenenko/voice-command/nlu"
	"github.com/vinadenenko/voice-command/recognize"
	"github.com/vinadenenko/voice-command/vad"
)

// newTestAssistant builds a VoiceAssistant wired to a fake capture
// backend, bypassing Init's real audioengine.New (which only succeeds
// for the portaudio backend kind, out of scope for these unit tests).
func newTestAssistant(t *testing.T, mode ListeningMode, asrEngine asr.Engine, nluEngine nlu.Engine) (*VoiceAssistant, *fakeBackend, *command.Registry) {
	registry := command.NewRegistry()
	ok := registry.Register(command.CommandDescriptor{
		Name:           "show_help",
		TriggerPhrases: []string{"show help"},
	}, command.HandlerFunc(func(ctx *command.Context) command.Result { return command.Success }))
	require.True(t, ok)

	a := New(registry, asrEngine, false)

	backend := &fakeBackend{sampleRate: 1000}
	captureCfg := audiocapture.Config{SampleRateHz: 1000, BufferDurationMs: 10000}
	vadCfg := vad.Config{WindowMs: 500, EnergyThreshold: 0.5, SampleRateHz: 1000}
	engine := audioengine.NewWithBackend(backend, captureCfg, vadCfg)

	cfg := Config{
		ListeningMode:            mode,
		VadCheckDurationMs:       2000,
		CommandCaptureDurationMs: 1000,
		PollIntervalMs:           10,
		MaxQueueDepth:            4,
		AutoSelectStrategy:       astiptr.Bool(true),
		WakeWord:                 "computer",
	}.defaulted()

	a.cfg = cfg
	a.engine = engine
	a.nluEngine = nluEngine
	a.notifier = NewNotifier(0)
	a.q = newQueue(cfg.MaxQueueDepth)
	a.sm = newStateMachine(mode, engine, asrEngine, a.notifier, a.q.enqueue)
	a.sm.wakeWord = cfg.WakeWord
	a.sm.wakeWordTimeoutMs = cfg.WakeWordTimeoutMs
	a.sm.wakeWordConfidence = cfg.WakeWordConfidence
	a.sm.vadCheckDurationMs = cfg.VadCheckDurationMs
	a.sm.commandCaptureDurationMs = cfg.CommandCaptureDurationMs

	return a, backend, registry
}

func TestVoiceAssistantPushToTalkEndToEnd(t *testing.T) {
	asrEngine := &fakeWakeASR{match: asr.GuidedMatchResult{Success: true, BestMatch: "show help", BestScore: 0.9}}
	a, backend, _ := newTestAssistant(t, ModePushToTalk, asrEngine, nil)

	var events []Event
	a.Subscribe(func(ev Event) { events = append(events, ev) })

	started, err := a.Start()
	require.NoError(t, err)
	require.True(t, started)
	defer a.Shutdown()

	require.True(t, a.StartCapture())
	backend.write(make([]float32, 500))
	require.True(t, a.StopCapture())

	assert.Eventually(t, func() bool {
		for _, ev := range events {
			if ev.Kind == CommandExecuted {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)
}

func TestVoiceAssistantStartCaptureRejectedOutsidePTT(t *testing.T) {
	asrEngine := &fakeWakeASR{}
	a, _, _ := newTestAssistant(t, ModeContinuous, asrEngine, nil)

	started, err := a.Start()
	require.NoError(t, err)
	require.True(t, started)
	defer a.Shutdown()

	assert.False(t, a.StartCapture())
}

func TestVoiceAssistantDoubleStartIsNoOp(t *testing.T) {
	asrEngine := &fakeWakeASR{}
	a, _, _ := newTestAssistant(t, ModePushToTalk, asrEngine, nil)

	started1, err := a.Start()
	require.NoError(t, err)
	require.True(t, started1)
	defer a.Shutdown()

	started2, err := a.Start()
	require.NoError(t, err)
	assert.False(t, started2)
}

func TestVoiceAssistantSelectsNLUStrategyForParameterizedCommands(t *testing.T) {
	registry := command.NewRegistry()
	registry.Register(command.CommandDescriptor{
		Name:           "zoom_to",
		TriggerPhrases: []string{"zoom to"},
		Parameters:     []command.ParamDescriptor{{Name: "level", Type: command.ParamInteger, Required: true}},
	}, command.HandlerFunc(func(ctx *command.Context) command.Result { return command.Success }))

	asrEngine := &fakeWakeASR{}
	a := New(registry, asrEngine, false)

	backend := &fakeBackend{sampleRate: 1000}
	engine := audioengine.NewWithBackend(backend,
		audiocapture.Config{SampleRateHz: 1000, BufferDurationMs: 10000},
		vad.Config{WindowMs: 500, SampleRateHz: 1000})

	cfg := NewConfig()
	cfg.ListeningMode = ModePushToTalk
	cfg.PollIntervalMs = 10
	a.cfg = cfg
	a.engine = engine
	a.notifier = NewNotifier(0)
	a.q = newQueue(cfg.MaxQueueDepth)
	a.sm = newStateMachine(cfg.ListeningMode, engine, asrEngine, a.notifier, a.q.enqueue)
	a.nluEngine = &recordingNLU{}

	started, err := a.Start()
	require.NoError(t, err)
	require.True(t, started)
	defer a.Shutdown()

	_, isNLU := a.getStrategy().(*recognize.NLUStrategy)
	assert.True(t, isNLU)
}

type recordingNLU struct{}

func (r *recordingNLU) Process(transcript string, descriptors []command.CommandDescriptor) nlu.Result {
	return nlu.Result{}
}
