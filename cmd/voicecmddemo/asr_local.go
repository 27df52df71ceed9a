//go:build !deepspeech

package main

import (
	"github.com/pkg/errors"

	"github.com/vinadenenko/voice-command/asr"
)

// buildLocalASR is the default (non-cgo) stub: the real implementation
// lives in asr_local_deepspeech.go behind the deepspeech build tag,
// mirroring audiocapture's own portaudio-tag stub/real split.
func buildLocalASR(cfg asr.LocalConfig) (asr.Engine, func(), error) {
	return nil, nil, errors.New("voicecmddemo: built without the deepspeech tag, use -asr-server instead")
}
