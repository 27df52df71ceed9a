package asr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/asticode/go-astilog"
	"github.com/pkg/errors"
)

// RemoteConfig configures a remote HTTP transcription server, per
// spec §6's AudioCaptureConfig-adjacent configuration surface.
type RemoteConfig struct {
	ServerURL     string
	InferencePath string // default "/inference"
	TimeoutMs     int    // default 30000
	Language      string
	Translate     bool
	Temperature   float64
}

func (c RemoteConfig) inferencePath() string {
	if c.InferencePath == "" {
		return "/inference"
	}
	return c.InferencePath
}

func (c RemoteConfig) timeout() time.Duration {
	if c.TimeoutMs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// RemoteEngine speaks the remote ASR wire contract from spec §6: a
// multipart/form-data POST of a WAV file to {base}{inference_path},
// expecting back JSON {text} or {error}. The remote transcription
// server itself is an external collaborator (spec.md §1); this is the
// client half of its contract.
type RemoteEngine struct {
	cfg    RemoteConfig
	client *http.Client
}

// NewRemoteEngine creates a remote ASR engine client.
func NewRemoteEngine(cfg RemoteConfig) *RemoteEngine {
	return &RemoteEngine{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.timeout()},
	}
}

func (e *RemoteEngine) ExpectedSampleRate() int { return ExpectedSampleRateHz }

type remoteResponse struct {
	Text  string `json:"text"`
	Error string `json:"error"`
}

// Transcribe implements Engine.
func (e *RemoteEngine) Transcribe(samples []float32) (TranscribeResult, error) {
	start := time.Now()

	body, contentType, err := e.buildMultipartBody(samples, false)
	if err != nil {
		return TranscribeResult{}, errors.Wrap(err, "asr: building remote request failed")
	}

	resp, err := e.post(body, contentType)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		return TranscribeResult{Success: false, Error: err.Error(), ProcessingTimeMs: elapsed}, nil
	}

	if resp.Error != "" {
		return TranscribeResult{Success: false, Error: resp.Error, ProcessingTimeMs: elapsed}, nil
	}

	text := strings.TrimSpace(resp.Text)
	return TranscribeResult{
		Success:          true,
		Text:             text,
		ProcessingTimeMs: elapsed,
	}, nil
}

// GuidedMatch is not part of the remote transcription server's wire
// contract (spec §6 only describes full transcription for it), so this
// always reports failure rather than guessing at an endpoint. The
// orchestrator does not check for this: a guided strategy or a
// wake-word check running over a RemoteEngine never matches.
func (e *RemoteEngine) GuidedMatch(samples []float32, phrases []string) (GuidedMatchResult, error) {
	return GuidedMatchResult{Success: false, Error: "asr: remote engine does not support guided matching"}, nil
}

func (e *RemoteEngine) buildMultipartBody(samples []float32, translate bool) (*bytes.Buffer, string, error) {
	wavBytes, err := EncodeWAV(samples, ExpectedSampleRateHz)
	if err != nil {
		return nil, "", err
	}

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	part, err := w.CreateFormFile("file", "audio.wav")
	if err != nil {
		return nil, "", errors.Wrap(err, "asr: creating form file failed")
	}
	if _, err := part.Write(wavBytes); err != nil {
		return nil, "", errors.Wrap(err, "asr: writing wav part failed")
	}

	_ = w.WriteField("response_format", "json")
	if e.cfg.Language != "" {
		_ = w.WriteField("language", e.cfg.Language)
	}
	_ = w.WriteField("temperature", strconv.FormatFloat(e.cfg.Temperature, 'f', -1, 64))
	if e.cfg.Translate || translate {
		_ = w.WriteField("translate", "true")
	}

	if err := w.Close(); err != nil {
		return nil, "", errors.Wrap(err, "asr: closing multipart writer failed")
	}
	return buf, w.FormDataContentType(), nil
}

func (e *RemoteEngine) post(body *bytes.Buffer, contentType string) (remoteResponse, error) {
	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.timeout())
	defer cancel()

	url := fmt.Sprintf("%s%s", e.cfg.ServerURL, e.cfg.inferencePath())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return remoteResponse{}, errors.Wrap(err, "asr: building request failed")
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := e.client.Do(req)
	if err != nil {
		return remoteResponse{}, errors.Wrap(err, "asr: request failed")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return remoteResponse{}, errors.Wrap(err, "asr: reading response body failed")
	}

	var out remoteResponse
	if err := json.Unmarshal(data, &out); err != nil {
		astilog.Error(errors.Wrapf(err, "asr: unmarshaling response %s failed", data))
		return remoteResponse{}, errors.Wrap(err, "asr: unmarshaling response failed")
	}
	return out, nil
}
