// Package audiocapture implements a thread-safe float-mono-PCM circular
// buffer fed by a platform capture backend (spec §4.1, component C1).
package audiocapture

import (
	"sync/atomic"

	"github.com/asticode/go-astilog"
	"github.com/pkg/errors"
)

// Config is the capture device configuration. SampleRateHz *
// BufferDurationMs / 1000 is the ring buffer's capacity in samples.
type Config struct {
	DeviceID         int // -1 = default
	DeviceName       string
	SampleRateHz     int
	Channels         int
	BufferDurationMs int
}

func (c Config) capacity() int {
	return c.SampleRateHz * c.BufferDurationMs / 1000
}

// Capture owns a ring buffer and, once Init is called, a backend that
// feeds it. All buffer access is serialized by the ring buffer's own
// lock; IsRunning is an atomic flag.
type Capture struct {
	cfg     Config
	backend Backend
	ring    *ringBuffer
	running atomic.Bool
}

// New creates a capture with no backend attached. Call Init to select
// one.
func New(cfg Config) *Capture {
	return &Capture{cfg: cfg, ring: newRingBuffer(cfg.capacity())}
}

// Init attaches a backend constructed for kind. Does not start capture.
func (c *Capture) Init(kind BackendKind) error {
	b, err := NewBackend(kind, c.cfg)
	if err != nil {
		return errors.Wrapf(err, "audiocapture: initializing backend %s failed", kind)
	}
	c.backend = b
	return nil
}

// InitWithBackend attaches an already-constructed backend, for callers
// that build their own (e.g. tests, or a consumer-supplied Sdl/Qt
// binding that satisfies the Backend contract).
func (c *Capture) InitWithBackend(b Backend) {
	c.backend = b
}

// Start begins capture. Fails if no backend is attached or capture is
// already running.
func (c *Capture) Start() error {
	if c.backend == nil {
		return errors.New("audiocapture: no backend attached, call Init first")
	}
	if !c.running.CompareAndSwap(false, true) {
		return errors.New("audiocapture: already running")
	}
	if err := c.backend.Start(c.ring.write); err != nil {
		c.running.Store(false)
		return errors.Wrap(err, "audiocapture: starting backend failed")
	}
	astilog.Debugf("audiocapture: started with capacity %d samples", c.ring.capacity())
	return nil
}

// Stop halts capture. No-op if not running.
func (c *Capture) Stop() error {
	if !c.running.CompareAndSwap(true, false) {
		return nil
	}
	if err := c.backend.Stop(); err != nil {
		return errors.Wrap(err, "audiocapture: stopping backend failed")
	}
	return nil
}

// Clear empties the ring buffer without stopping capture.
func (c *Capture) Clear() error {
	c.ring.clear()
	return nil
}

// GetAudio copies the most recent durationMs worth of samples into a
// freshly allocated slice. Returns fewer samples than requested if the
// buffer does not yet hold that much (audio underflow is not an error).
func (c *Capture) GetAudio(durationMs int) []float32 {
	if c.backend == nil {
		return nil
	}
	n := c.SampleRate() * durationMs / 1000
	return c.ring.read(n)
}

// SampleRate returns the configured sample rate.
func (c *Capture) SampleRate() int { return c.cfg.SampleRateHz }

// BufferDurationMs returns the configured ring buffer duration.
func (c *Capture) BufferDurationMs() int { return c.cfg.BufferDurationMs }

// IsRunning reports whether capture is currently active.
func (c *Capture) IsRunning() bool { return c.running.Load() }

// Occupancy returns how many samples the ring buffer currently holds.
func (c *Capture) Occupancy() int { return c.ring.occupancy() }

// Capacity returns the ring buffer's capacity in samples.
func (c *Capture) Capacity() int { return c.ring.capacity() }
