package audiocapture

// ListDevices enumerates available devices for the given backend kind.
// The Sdl/Qt backends are contract placeholders (see backend.go) and
// report no devices; the portaudio reference backend reports real ones
// when built with the `portaudio` tag.
func ListDevices(kind BackendKind) ([]DeviceInfo, error) {
	switch kind {
	case BackendPortaudio:
		return listPortaudioDevices()
	default:
		return nil, nil
	}
}
