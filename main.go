package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"sn8ke/backend/periph"
	"sn8ke/backend/raylib"
	"sn8ke/backend/terminal"
	"sn8ke/config"
	"sn8ke/hal"
)

// terminalLogFile keeps log lines off the screen tcell draws on.
const terminalLogFile = "sn8ke.log"

func main() {
	configPath := flag.String("config", "sn8ke.yaml", "Path to the YAML config file")
	backend := flag.String("backend", "", "Backend override: raylib, terminal or periph")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load config", "err", err)
	}
	if *backend != "" {
		cfg.Backend = *backend
		if err := cfg.Validate(); err != nil {
			log.Fatal("invalid backend", "err", err)
		}
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		log.Fatal("failed to open log file", "err", err)
	}
	defer closeLog()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	dev, err := openDevice(cfg, logger, cancel)
	if err != nil {
		logger.Fatal("failed to open device", "backend", cfg.Backend, "err", err)
	}

	err = run(ctx, cfg, dev, logger)
	dev.Close()
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		logger.Info("bye")
	case errors.Is(err, errBootGate):
		logger.Info("not starting", "reason", err)
	default:
		logger.Error("session failed", "err", err)
		closeLog()
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) (*log.Logger, func(), error) {
	var w io.Writer = os.Stderr
	closeLog := func() {}

	path := cfg.Log.File
	if path == "" && cfg.Backend == config.BackendTerminal {
		path = terminalLogFile
	}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closeLog = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "sn8ke",
	})
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", cfg.Log.Level)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger, closeLog, nil
}

func openDevice(cfg *config.Config, logger *log.Logger, cancel context.CancelFunc) (hal.Device, error) {
	switch cfg.Backend {
	case config.BackendTerminal:
		return terminal.Open(cfg.Terminal, logger, cancel)
	case config.BackendPeriph:
		return periph.Open(cfg.Periph, logger)
	default:
		return raylib.Open(cfg.Raylib, cfg.Session.Title, logger, cancel)
	}
}
