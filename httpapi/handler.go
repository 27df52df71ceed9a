package httpapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/vinadenenko/voice-command/assistant"
	"github.com/vinadenenko/voice-command/command"
)

// statusResponse is the GET /status JSON body, per spec §4.12.
type statusResponse struct {
	ListeningMode  string `json:"listening_mode"`
	ListeningState string `json:"listening_state"`
	Running        bool   `json:"running"`
}

// Handler binds the introspection routes to a live assistant and its
// registry, mirroring the teacher's BaseOperatable holding the state it
// renders (operatable.go).
type Handler struct {
	Registry  *command.Registry
	Assistant *assistant.VoiceAssistant
}

// NewHandler builds a Handler over a running (or not-yet-started)
// assistant and its registry.
func NewHandler(registry *command.Registry, a *assistant.VoiceAssistant) *Handler {
	return &Handler{Registry: registry, Assistant: a}
}

// GetCommands handles GET /commands: a JSON array of every registered
// command's descriptor.
func (h *Handler) GetCommands(rw http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	APIWriteData(rw, h.Registry.AllDescriptors())
}

// GetStatus handles GET /status: the assistant's current listening mode,
// listening state, and running flag.
func (h *Handler) GetStatus(rw http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	APIWriteData(rw, statusResponse{
		ListeningMode:  h.Assistant.ListeningMode().String(),
		ListeningState: h.Assistant.ListeningState().String(),
		Running:        h.Assistant.IsRunning(),
	})
}
