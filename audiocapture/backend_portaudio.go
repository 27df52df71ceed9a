//go:build portaudio

package audiocapture

import (
	"github.com/asticode/go-astilog"
	"github.com/gordonklaus/portaudio"
	"github.com/pkg/errors"
)

// portaudioBackend is a reference Backend implementation over
// github.com/gordonklaus/portaudio, adapted from the teacher's
// portaudio/stream.go (astiportaudio.Stream) with the debug WAV-dump
// cruft removed. It is a stand-in for the out-of-scope Sdl/Qt backends
// spec.md §1/§6 name, not a claim that portaudio is the production
// choice (see SPEC_FULL.md §4.1).
type portaudioBackend struct {
	cfg    Config
	in     []int32
	stream *portaudio.Stream
	stop   chan struct{}
	done   chan struct{}
}

func newPortaudioBackend(cfg Config) (Backend, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, errors.Wrap(err, "audiocapture: initializing portaudio failed")
	}
	return &portaudioBackend{cfg: cfg, in: make([]int32, 0)}, nil
}

func (b *portaudioBackend) deviceInfo() (*portaudio.DeviceInfo, error) {
	if b.cfg.DeviceID < 0 && b.cfg.DeviceName == "" {
		return portaudio.DefaultInputDevice()
	}

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, errors.Wrap(err, "audiocapture: listing devices failed")
	}
	for i, d := range devices {
		if b.cfg.DeviceName != "" && d.Name == b.cfg.DeviceName {
			return d, nil
		}
		if b.cfg.DeviceID >= 0 && i == b.cfg.DeviceID {
			return d, nil
		}
	}
	return nil, errors.Errorf("audiocapture: no device matching id=%d name=%q", b.cfg.DeviceID, b.cfg.DeviceName)
}

func (b *portaudioBackend) Start(write func(samples []float32)) error {
	device, err := b.deviceInfo()
	if err != nil {
		return err
	}

	framesPerBuffer := b.cfg.SampleRateHz / 10
	if framesPerBuffer <= 0 {
		framesPerBuffer = 1600
	}
	b.in = make([]int32, framesPerBuffer*b.cfg.Channels)

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   device,
			Channels: b.cfg.Channels,
			Latency:  device.DefaultLowInputLatency,
		},
		SampleRate:      float64(b.cfg.SampleRateHz),
		FramesPerBuffer: framesPerBuffer,
	}

	if b.stream, err = portaudio.OpenStream(params, b.in); err != nil {
		return errors.Wrap(err, "audiocapture: opening stream failed")
	}
	if err = b.stream.Start(); err != nil {
		return errors.Wrap(err, "audiocapture: starting stream failed")
	}

	b.stop = make(chan struct{})
	b.done = make(chan struct{})
	go b.readLoop(write)
	return nil
}

// readLoop runs on its own goroutine, standing in for the "thread owned
// by the backend" spec.md §5 describes; it never blocks on the
// orchestrator's queue, only on the device read itself.
func (b *portaudioBackend) readLoop(write func(samples []float32)) {
	defer close(b.done)
	for {
		select {
		case <-b.stop:
			return
		default:
		}
		if err := b.stream.Read(); err != nil {
			astilog.Error(errors.Wrap(err, "audiocapture: reading from portaudio stream failed"))
			return
		}
		write(toFloat32(b.in))
	}
}

// toFloat32 converts the device's int32 samples into the [-1,1] float32
// domain spec.md §3 mandates for AudioSamples. go-astitools/pcm's
// Normalize rescales samples between integer bit depths and keeps them
// as ints (see speech_to_text/runnable.go: `ss = astipcm.Normalize(ss,
// s.BitDepth)` reassigns a []int), so it has no home here; this
// conversion is a direct, justified stdlib computation instead.
func toFloat32(in []int32) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v) / float32(1<<31)
	}
	return out
}

func (b *portaudioBackend) Stop() error {
	if b.stop != nil {
		close(b.stop)
		<-b.done
	}
	if b.stream == nil {
		return nil
	}
	if err := b.stream.Stop(); err != nil {
		return errors.Wrap(err, "audiocapture: stopping stream failed")
	}
	if err := b.stream.Close(); err != nil {
		return errors.Wrap(err, "audiocapture: closing stream failed")
	}
	return nil
}

func (b *portaudioBackend) SampleRate() int { return b.cfg.SampleRateHz }

func listPortaudioDevices() ([]DeviceInfo, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, errors.Wrap(err, "audiocapture: initializing portaudio failed")
	}
	defer portaudio.Terminate()

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, errors.Wrap(err, "audiocapture: listing devices failed")
	}

	out := make([]DeviceInfo, 0, len(devices))
	for i, d := range devices {
		out = append(out, DeviceInfo{ID: i, Name: d.Name})
	}
	return out, nil
}
