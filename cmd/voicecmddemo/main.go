// Command voicecmddemo wires every package in this module into a
// runnable voice-command pipeline: it captures audio through portaudio
// (built without the `portaudio` tag, the audio backend fails to
// initialize and the demo exits, unless -test-text is given), runs it
// through VAD, ASR and NLU, and dispatches recognized commands
// against a small demo command set, exposing an introspection HTTP API
// alongside it.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/asticode/go-astilog"
	"github.com/asticode/go-astitools/config"
	"github.com/pkg/errors"

	"github.com/vinadenenko/voice-command/assistant"
	"github.com/vinadenenko/voice-command/asr"
	"github.com/vinadenenko/voice-command/audiocapture"
	"github.com/vinadenenko/voice-command/audioengine"
	"github.com/vinadenenko/voice-command/command"
	"github.com/vinadenenko/voice-command/commandtester"
	"github.com/vinadenenko/voice-command/httpapi"
	"github.com/vinadenenko/voice-command/nlu"
)

var (
	configPath       = flag.String("c", "", "the config path")
	httpAddr         = flag.String("a", "", "the introspection http server addr")
	listeningMode    = flag.String("m", "", "listening mode: continuous, wake_word or push_to_talk")
	wakeWord         = flag.String("w", "", "the wake word, required when mode is wake_word")
	asrServerURL     = flag.String("asr-server", "", "remote asr server base url; local deepspeech used otherwise")
	asrModelPath     = flag.String("asr-model", "", "local deepspeech model path, requires the deepspeech build tag")
	nluRemoteURL     = flag.String("nlu-server", "", "remote llm nlu server base url; rule-based engine used otherwise")
	forceNLUStrategy = flag.Bool("force-nlu", false, "force the nlu recognition strategy")
	testText         = flag.String("test-text", "", "bypass audio entirely and run this transcript through the command tester, then exit")
)

func main() {
	flag.Parse()
	astilog.FlagInit()

	cfg := newConfiguration()

	registry := command.NewRegistry()
	registerDemoCommands(registry)

	if *testText != "" {
		runCommandTester(registry, cfg, *testText)
		return
	}

	asrEngine, closeASR, err := buildASREngine(cfg)
	if err != nil {
		astilog.Fatal(errors.Wrap(err, "voicecmddemo: building asr engine failed"))
	}
	defer closeASR()

	nluEngine := buildNLUEngine(cfg)

	a := assistant.New(registry, asrEngine, false)
	if ok, initErr := a.Init(cfg.assistantConfig(), nluEngine); initErr != nil {
		astilog.Fatal(errors.Wrap(initErr, "voicecmddemo: initializing assistant failed"))
	} else if !ok {
		astilog.Fatal(errors.New("voicecmddemo: assistant configuration rejected"))
	}

	a.Subscribe(func(e assistant.Event) {
		astilog.Infof("voicecmddemo: event %s", e.Kind)
	})

	if *forceNLUStrategy {
		a.SetForceNLUStrategy(true)
	}

	if _, startErr := a.Start(); startErr != nil {
		astilog.Fatal(errors.Wrap(startErr, "voicecmddemo: starting assistant failed"))
	}

	srv := startHTTPServer(cfg, registry, a)

	ctx, cancel := context.WithCancel(context.Background())
	handleSignals(cancel)
	<-ctx.Done()

	astilog.Info("voicecmddemo: shutting down")
	if srv != nil {
		srv.Close()
	}
	if shutdownErr := a.Shutdown(); shutdownErr != nil {
		astilog.Error(errors.Wrap(shutdownErr, "voicecmddemo: shutting down assistant failed"))
	}
}

func newConfiguration() *Configuration {
	gc := defaultConfiguration()

	fc := &Configuration{
		HTTPAddr:         *httpAddr,
		ListeningMode:    *listeningMode,
		WakeWord:         *wakeWord,
		ASRServerURL:     *asrServerURL,
		ASRModelPath:     *asrModelPath,
		NLURemoteURL:     *nluRemoteURL,
		ForceNLUStrategy: *forceNLUStrategy,
	}

	c, err := asticonfig.New(gc, *configPath, fc)
	if err != nil {
		astilog.Fatal(errors.Wrap(err, "voicecmddemo: building configuration failed"))
	}
	return c.(*Configuration)
}

func buildASREngine(cfg *Configuration) (asr.Engine, func(), error) {
	if cfg.ASRServerURL != "" {
		return asr.NewRemoteEngine(cfg.asrRemoteConfig()), func() {}, nil
	}
	if cfg.ASRModelPath == "" {
		return nil, nil, errors.New("voicecmddemo: one of -asr-server or -asr-model is required")
	}
	return buildLocalASR(cfg.asrLocalConfig())
}

func buildNLUEngine(cfg *Configuration) nlu.Engine {
	if cfg.NLURemoteURL != "" {
		return nlu.NewRemoteEngine(cfg.nluRemoteConfig())
	}
	return nlu.NewRuleEngine()
}

func startHTTPServer(cfg *Configuration, registry *command.Registry, a *assistant.VoiceAssistant) *http.Server {
	if cfg.HTTPAddr == "" {
		return nil
	}
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: httpapi.Router(httpapi.NewHandler(registry, a))}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			astilog.Error(errors.Wrap(err, "voicecmddemo: http server failed"))
		}
	}()
	astilog.Infof("voicecmddemo: introspection api listening on %s", cfg.HTTPAddr)
	return srv
}

func runCommandTester(registry *command.Registry, cfg *Configuration, text string) {
	ct := commandtester.New(buildNLUEngine(cfg))
	ct.Registry = registry
	ct.Dispatcher = command.NewDispatcher(registry)

	r := ct.ProcessText(text)
	if !r.Recognised {
		astilog.Infof("voicecmddemo: %q not recognised: %s", text, r.Error)
		return
	}
	astilog.Infof("voicecmddemo: %q -> %s (confidence=%.2f, params=%v, result=%v)", text, r.CommandName, r.Confidence, r.Params, r.ExecutionResult)
}

func audioEngineConfig(cfg *Configuration) audioengine.Config {
	return audioengine.Config{
		Backend:       audiocapture.BackendPortaudio,
		CaptureConfig: cfg.Capture,
		VadConfig:     cfg.Vad,
	}
}

func handleSignals(cancel context.CancelFunc) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		s := <-ch
		astilog.Debugf("voicecmddemo: received signal %s", s)
		cancel()
	}()
}
