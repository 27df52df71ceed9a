package vad

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func flat(n int, amplitude float32) []float32 {
	s := make([]float32, n)
	for i := range s {
		s[i] = amplitude
	}
	return s
}

func TestDetectSpeechEndedOnTrailingSilence(t *testing.T) {
	cfg := Config{WindowMs: 100, EnergyThreshold: 0.5, SampleRateHz: 1000}
	samples := append(flat(800, 1.0), flat(100, 0.01)...)
	r := Detect(cfg, samples)
	assert.True(t, r.SpeechEnded)
}

func TestDetectSpeechNotEndedWhenLoudThroughout(t *testing.T) {
	cfg := Config{WindowMs: 100, EnergyThreshold: 0.5, SampleRateHz: 1000}
	samples := flat(900, 1.0)
	r := Detect(cfg, samples)
	assert.False(t, r.SpeechEnded)
}

func TestDetectInsufficientWindowReturnsFalse(t *testing.T) {
	cfg := Config{WindowMs: 1000, EnergyThreshold: 0.5, SampleRateHz: 1000}
	samples := flat(100, 0.01)
	r := Detect(cfg, samples)
	assert.False(t, r.SpeechEnded)
}

func TestDetectWithHighPassFilterDoesNotPanic(t *testing.T) {
	cfg := Config{WindowMs: 100, EnergyThreshold: 0.5, SampleRateHz: 1000, HPFCutoffHz: 80}
	samples := append(flat(800, 1.0), flat(100, 0.01)...)
	r := Detect(cfg, samples)
	assert.GreaterOrEqual(t, r.EnergyAll, 0.0)
}

func TestDetectEmptyInput(t *testing.T) {
	cfg := Config{WindowMs: 100, EnergyThreshold: 0.5, SampleRateHz: 1000}
	r := Detect(cfg, nil)
	assert.False(t, r.SpeechEnded)
}
