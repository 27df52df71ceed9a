//go:build deepspeech

package main

import (
	"github.com/pkg/errors"

	"github.com/vinadenenko/voice-command/asr"
)

// buildLocalASR loads a DeepSpeech model and wraps it in a LocalEngine.
// The returned func releases the model; call it on shutdown.
func buildLocalASR(cfg asr.LocalConfig) (asr.Engine, func(), error) {
	model, err := asr.NewDeepSpeechModel(cfg.ModelPath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "voicecmddemo: loading deepspeech model failed")
	}

	engine, err := asr.NewLocalEngine(cfg, model)
	if err != nil {
		model.Close()
		return nil, nil, errors.Wrap(err, "voicecmddemo: building local asr engine failed")
	}

	return engine, model.Close, nil
}
