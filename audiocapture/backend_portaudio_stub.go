//go:build !portaudio

package audiocapture

import "github.com/pkg/errors"

// newPortaudioBackend is the default (non-cgo) stub: the real
// implementation lives in backend_portaudio.go behind the `portaudio`
// build tag, mirroring how the teacher's own portaudio stream requires
// its cgo binding to be linked in.
func newPortaudioBackend(cfg Config) (Backend, error) {
	return nil, errors.New("audiocapture: built without the portaudio tag")
}

func listPortaudioDevices() ([]DeviceInfo, error) {
	return nil, errors.New("audiocapture: built without the portaudio tag")
}
