package asr

import (
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

// EncodeWAV produces the little-endian 16-bit mono WAV payload the
// remote ASR wire contract requires (spec §6): a 44-byte RIFF/WAVE/
// fmt(16)/data header followed by int16 sample data clipped from
// float32*32767. Built on the teacher's own WAV dependency
// (github.com/go-audio/wav, github.com/go-audio/audio), used elsewhere
// in the corpus for recorded speech samples.
func EncodeWAV(samples []float32, sampleRateHz int) ([]byte, error) {
	buf := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: 1, SampleRate: sampleRateHz},
		Data:   make([]int, len(samples)),
	}
	for i, s := range samples {
		buf.Data[i] = clipToInt16(s)
	}

	out := &memWriteSeeker{}
	enc := wav.NewEncoder(out, sampleRateHz, 16, 1, 1)
	if err := enc.Write(buf); err != nil {
		return nil, errors.Wrap(err, "asr: encoding wav failed")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "asr: closing wav encoder failed")
	}
	return out.buf, nil
}

// memWriteSeeker is a minimal in-memory io.WriteSeeker. go-audio/wav's
// Encoder needs Seek to patch chunk sizes after streaming samples, and
// spec.md §6 requires no on-disk file for the WAV payload, so this
// avoids a temp file.
type memWriteSeeker struct {
	buf []byte
	pos int64
}

func (m *memWriteSeeker) Write(p []byte) (int, error) {
	end := m.pos + int64(len(p))
	if end > int64(len(m.buf)) {
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	copy(m.buf[m.pos:end], p)
	m.pos = end
	return len(p), nil
}

func (m *memWriteSeeker) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = m.pos
	case io.SeekEnd:
		base = int64(len(m.buf))
	}
	m.pos = base + offset
	return m.pos, nil
}

// clipToInt16 converts a float32 PCM sample in [-1,1] to its int16
// representation, rounding to the nearest integer and clamping to the
// int16 range.
func clipToInt16(s float32) int {
	v := int(s*32767 + sign(s)*0.5)
	if v > 32767 {
		v = 32767
	}
	if v < -32768 {
		v = -32768
	}
	return v
}

func sign(s float32) float32 {
	if s < 0 {
		return -1
	}
	return 1
}
