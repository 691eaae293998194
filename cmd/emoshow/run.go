package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gaips/go-elmo/internal/log"
	"github.com/gaips/go-elmo/pkg/centering"
	"github.com/gaips/go-elmo/pkg/elmo"
	"github.com/gaips/go-elmo/pkg/game"
	"github.com/gaips/go-elmo/pkg/results"
	"github.com/gaips/go-elmo/pkg/vision"
	"github.com/gaips/go-elmo/pkg/web"
)

func run(ctx context.Context, cfg *Config) error {
	if cfg.logFile != "" {
		if err := log.InitWithFile(cfg.logLevel, cfg.logFile); err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
	} else {
		log.Init(cfg.logLevel)
	}
	defer log.Close()

	channel, err := newChannel(cfg)
	if err != nil {
		return err
	}
	defer channel.Close()

	locator, err := newLocator(cfg)
	if err != nil {
		return err
	}

	recognizer := newRecognizer(cfg)
	centerer := centering.New(locator, channel, centering.DefaultConfig())

	var store *results.Store
	if cfg.resultsDB != "" {
		store, err = results.Open(cfg.resultsDB)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	gameCfg := game.DefaultGameConfig()
	gameCfg.FrameDir = cfg.frameDir
	if cfg.frameDir != "" {
		if err := os.MkdirAll(cfg.frameDir, 0o755); err != nil {
			return fmt.Errorf("create frame dir: %w", err)
		}
	}

	var recorder game.Recorder
	if store != nil {
		recorder = store
	}
	session := game.New(channel, recognizer, centerer, recorder, gameCfg)

	server := web.NewServer(cfg.listen, session, channel, store)
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-ctx.Done():
	case sig := <-sigCh:
		log.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("control panel: %w", err)
		}
	}

	session.Stop()
	return server.Shutdown()
}

func newChannel(cfg *Config) (elmo.Channel, error) {
	if cfg.debug {
		log.Info("debug mode: robot commands are logged only")
		return elmo.NewDebugChannel(), nil
	}

	chCfg := elmo.DefaultConfig(cfg.elmoIP)
	chCfg.Port = cfg.elmoPort
	chCfg.ConnectMode = cfg.connect
	channel, err := elmo.NewUDPChannel(chCfg)
	if err != nil {
		return nil, fmt.Errorf("robot link: %w", err)
	}
	return channel, nil
}

func newLocator(cfg *Config) (vision.FaceLocator, error) {
	if cfg.debug {
		return &vision.StubLocator{}, nil
	}
	locator, err := vision.NewHaarLocator(vision.HaarConfig{
		ModelPath:    cfg.faceModel,
		ScaleFactor:  vision.DefaultHaarConfig().ScaleFactor,
		MinNeighbors: vision.DefaultHaarConfig().MinNeighbors,
		MinSize:      vision.DefaultHaarConfig().MinSize,
	})
	if err != nil {
		return nil, fmt.Errorf("face locator: %w", err)
	}
	return locator, nil
}

func newRecognizer(cfg *Config) vision.Recognizer {
	if cfg.visionURL == "" {
		log.Warn("no vision service configured, every turn scores 0")
		return &vision.StubRecognizer{}
	}
	return vision.NewHTTPRecognizer(cfg.visionURL, cfg.visionTimeout)
}
