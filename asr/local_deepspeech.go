//go:build deepspeech

package asr

import (
	astideepspeech "github.com/asticode/go-astideepspeech"
	"github.com/pkg/errors"
)

// DeepSpeechModel adapts github.com/asticode/go-astideepspeech's model
// handle to the Model interface LocalEngine expects, mirroring the
// teacher's abilities/speech_to_text/deepspeech package. It is a
// reference local backend (spec.md §1 names the concrete local speech
// model as an external collaborator), gated behind the `deepspeech`
// build tag since it requires the DeepSpeech cgo library to link.
type DeepSpeechModel struct {
	m *astideepspeech.Model
}

// NewDeepSpeechModel loads a DeepSpeech model from modelPath.
func NewDeepSpeechModel(modelPath string) (*DeepSpeechModel, error) {
	m := astideepspeech.New(modelPath)
	if m == nil {
		return nil, errors.Errorf("asr: loading deepspeech model %s failed", modelPath)
	}
	return &DeepSpeechModel{m: m}, nil
}

// TranscribeSamples implements Model.
func (d *DeepSpeechModel) TranscribeSamples(samples []float32, sampleRate int) (string, []float64, error) {
	pcm := make([]int16, len(samples))
	for i, s := range samples {
		pcm[i] = int16(s * 32767)
	}
	text := d.m.SpeechToText(pcm, uint(len(pcm)), uint(sampleRate))
	// go-astideepspeech's basic API does not expose per-token
	// logprobs; a single pseudo-logprob of 0 (confidence 1) is
	// reported so downstream confidence thresholds still apply
	// sensibly to a backend that does not measure its own certainty.
	return text, []float64{0}, nil
}

// Close releases the underlying model.
func (d *DeepSpeechModel) Close() {
	d.m.Close()
}
