// Package vad implements an energy-based "speech ended" detector, as a
// pure function over a config value and a window of samples.
package vad

import "math"

// Config holds the VAD's tunables. Held by value; pure function, no
// mutable state.
type Config struct {
	WindowMs        int
	EnergyThreshold float64
	HPFCutoffHz     float64 // 0 disables the high-pass filter
	SampleRateHz    int
	Verbose         bool
}

// Result is the outcome of a single Detect call.
type Result struct {
	SpeechEnded bool
	EnergyAll   float64
	EnergyLast  float64
}

// Detect reports whether the trailing WindowMs window of samples looks
// quieter than the threshold fraction of the whole input's energy,
// which is this package's definition of "speech ended".
func Detect(cfg Config, samples []float32) Result {
	working := samples
	if cfg.HPFCutoffHz > 0 {
		working = highPass(samples, cfg.HPFCutoffHz, cfg.SampleRateHz)
	}

	nTotal := len(working)
	nLast := int(float64(cfg.SampleRateHz) * float64(cfg.WindowMs) / 1000)

	energyAll := meanAbs(working)

	if nLast >= nTotal {
		// Insufficient window: not an error, just indecision.
		return Result{SpeechEnded: false, EnergyAll: energyAll, EnergyLast: energyAll}
	}

	last := working[nTotal-nLast:]
	energyLast := meanAbs(last)

	return Result{
		SpeechEnded: energyLast <= cfg.EnergyThreshold*energyAll,
		EnergyAll:   energyAll,
		EnergyLast:  energyLast,
	}
}

// meanAbs computes mean(|x_i|) over samples. No third-party PCM energy
// helper in the corpus (github.com/asticode/go-astitools/audio's
// AudioLevel) operates on the float32 [-1,1] domain spec.md §3 mandates
// for AudioSamples — it works over int32 device samples — so this is a
// direct, justified stdlib-only computation.
func meanAbs(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		v := float64(s)
		if v < 0 {
			v = -v
		}
		sum += v
	}
	return sum / float64(len(samples))
}

// highPass applies a one-pole high-pass filter to a copy of samples,
// per spec §4.2: alpha = dt/(RC+dt), RC = 1/(2*pi*cutoff).
func highPass(samples []float32, cutoffHz float64, sampleRateHz int) []float32 {
	out := make([]float32, len(samples))
	if len(samples) == 0 || sampleRateHz <= 0 {
		copy(out, samples)
		return out
	}

	dt := 1.0 / float64(sampleRateHz)
	rc := 1.0 / (2 * math.Pi * cutoffHz)
	alpha := dt / (rc + dt)

	var prevIn, prevOut float64
	for i, s := range samples {
		in := float64(s)
		o := alpha * (prevOut + in - prevIn)
		out[i] = float32(o)
		prevIn = in
		prevOut = o
	}
	return out
}
