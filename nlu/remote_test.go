package nlu

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vinadenenko/voice-command/command"
)

func TestRemoteEngineProcessSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"here you go {\"command\":\"zoom_to\",\"confidence\":0.9,\"params\":{\"level\":15}} thanks"}}]}`))
	}))
	defer srv.Close()

	e := NewRemoteEngine(RemoteConfig{ServerURL: srv.URL, APIKey: "secret", Model: "gpt-test"})
	r := e.Process("zoom to 15", []command.CommandDescriptor{zoomToDescriptor()})
	require.True(t, r.Success)
	assert.Equal(t, "zoom_to", r.CommandName)
	assert.Equal(t, 0.9, r.Confidence)
	assert.Equal(t, "15", r.ExtractedParams["level"])
}

func TestRemoteEngineProcessEmptySentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"command\":\"\",\"confidence\":0,\"params\":{}}"}}]}`))
	}))
	defer srv.Close()

	e := NewRemoteEngine(RemoteConfig{ServerURL: srv.URL})
	r := e.Process("gibberish", []command.CommandDescriptor{zoomToDescriptor()})
	assert.False(t, r.Success)
}

func TestBuildSystemPromptEnumeratesCommands(t *testing.T) {
	prompt := buildSystemPrompt([]command.CommandDescriptor{zoomToDescriptor()})
	assert.Contains(t, prompt, `1. "zoom_to"`)
	assert.Contains(t, prompt, "level (integer, required")
	assert.Contains(t, prompt, "min=1")
	assert.Contains(t, prompt, "max=20")
}

func TestParseClassificationFindsFirstObject(t *testing.T) {
	cls, err := parseClassification(`some preamble {"command":"show_help","confidence":1,"params":{}} trailing`)
	require.NoError(t, err)
	assert.Equal(t, "show_help", cls.Command)
}

func TestParseClassificationNoObject(t *testing.T) {
	_, err := parseClassification("no json here")
	assert.Error(t, err)
}

func TestStringifyParamValue(t *testing.T) {
	assert.Equal(t, "15", stringifyParamValue(float64(15)))
	assert.Equal(t, "true", stringifyParamValue(true))
	assert.Equal(t, "green", stringifyParamValue("green"))
}
