package audiocapture

import "github.com/pkg/errors"

// BackendKind selects an AudioEngine's capture backend, per spec §6's
// AudioEngineConfig.backend enum.
type BackendKind string

const (
	// BackendSdl and BackendQt name the two concrete multimedia
	// libraries spec.md §1 places out of scope ("concrete audio
	// capture backends... appear only through their contracts").
	// Neither is linked into this build; constructing either returns
	// an error so the contract is still exercised end to end.
	BackendSdl BackendKind = "sdl"
	BackendQt  BackendKind = "qt"
	// BackendPortaudio is a reference backend, real when built with
	// the `portaudio` build tag (see backend_portaudio.go), grounded
	// in the teacher's own capture backend.
	BackendPortaudio BackendKind = "portaudio"
)

// Backend is the producer side of the contract: a platform device that
// delivers samples by calling the write func it is given on Start, on a
// thread it owns.
type Backend interface {
	// Start begins delivering samples to write until Stop is called.
	// write is expected to be cheap and non-blocking; it must not be
	// retained past Stop.
	Start(write func(samples []float32)) error
	Stop() error
	SampleRate() int
	// Device enumeration is not part of this interface; see the
	// package-level ListDevices.
}

// DeviceInfo describes a capture device as returned by ListDevices.
type DeviceInfo struct {
	ID   int
	Name string
}

// NewBackend constructs the backend selected by kind. Only
// BackendPortaudio (when built with the `portaudio` tag) produces a
// working implementation; BackendSdl/BackendQt are contract
// placeholders for the out-of-scope external libraries.
func NewBackend(kind BackendKind, cfg Config) (Backend, error) {
	switch kind {
	case BackendSdl:
		return nil, errors.New("audiocapture: sdl backend is not linked in this build")
	case BackendQt:
		return nil, errors.New("audiocapture: qt backend is not linked in this build")
	case BackendPortaudio:
		return newPortaudioBackend(cfg)
	default:
		return nil, errors.Errorf("audiocapture: unknown backend kind %q", kind)
	}
}
