package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinadenenko/voice-command/assistant"
	"github.com/vinadenenko/voice-command/audiocapture"
	"github.com/vinadenenko/voice-command/audioengine"
	"github.com/vinadenenko/voice-command/command"
	"github.com/vinadenenko/voice-command/vad"
)

func alwaysSucceeds(ctx *command.Context) command.Result { return command.Success }

type fakeBackend struct{ sampleRate int }

func (f *fakeBackend) Start(write func(samples []float32)) error { return nil }
func (f *fakeBackend) Stop() error                               { return nil }
func (f *fakeBackend) SampleRate() int                            { return f.sampleRate }

func newTestHandler(t *testing.T) *Handler {
	registry := command.NewRegistry()
	ok := registry.Register(command.CommandDescriptor{
		Name:           "show_help",
		Description:    "shows help",
		TriggerPhrases: []string{"show help"},
	}, command.HandlerFunc(alwaysSucceeds))
	require.True(t, ok)

	a := assistant.New(registry, nil, false)
	engine := audioengine.NewWithBackend(
		&fakeBackend{sampleRate: 1000},
		audiocapture.Config{SampleRateHz: 1000, BufferDurationMs: 1000},
		vad.Config{WindowMs: 500, EnergyThreshold: 0.5, SampleRateHz: 1000},
	)
	ok2, err := a.InitWithEngine(assistant.NewConfig(), nil, engine)
	require.NoError(t, err)
	require.True(t, ok2)

	return NewHandler(registry, a)
}

func TestGetCommands(t *testing.T) {
	h := newTestHandler(t)
	srv := httptest.NewServer(Router(h))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/commands")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var descriptors []command.CommandDescriptor
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&descriptors))
	require.Len(t, descriptors, 1)
	assert.Equal(t, "show_help", descriptors[0].Name)
}

func TestGetStatus(t *testing.T) {
	h := newTestHandler(t)
	srv := httptest.NewServer(Router(h))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var status statusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "continuous", status.ListeningMode)
	assert.Equal(t, "listening", status.ListeningState)
	assert.False(t, status.Running)
}
