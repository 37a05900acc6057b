// Package config loads the YAML settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	BackendRaylib   = "raylib"
	BackendTerminal = "terminal"
	BackendPeriph   = "periph"
)

var ErrUnknownBackend = errors.New("unknown backend")

type Config struct {
	Backend string `yaml:"backend"`
	// Seed fixes the food sequence. Zero seeds from the clock.
	Seed     uint64         `yaml:"seed"`
	Log      LogConfig      `yaml:"log"`
	Game     GameConfig     `yaml:"game"`
	Session  SessionConfig  `yaml:"session"`
	Raylib   RaylibConfig   `yaml:"raylib"`
	Terminal TerminalConfig `yaml:"terminal"`
	Periph   PeriphConfig   `yaml:"periph"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type GameConfig struct {
	InitialDelayMs int `yaml:"initial_delay_ms"`
	DelayStepMs    int `yaml:"delay_step_ms"`
}

type SessionConfig struct {
	Title           string `yaml:"title"`
	SplashMs        int    `yaml:"splash_ms"`
	PauseMs         int    `yaml:"pause_ms"`
	PollMs          int    `yaml:"poll_ms"`
	ResetHoldMs     int    `yaml:"reset_hold_ms"`
	RequireBootHold bool   `yaml:"require_boot_hold"`
	Autopilot       bool   `yaml:"autopilot"`
}

// PlanConfig places the grid on the display, in pixels.
type PlanConfig struct {
	Left     int `yaml:"left"`
	Top      int `yaml:"top"`
	Right    int `yaml:"right"`
	Bottom   int `yaml:"bottom"`
	CellSize int `yaml:"cell_size"`
}

type RaylibConfig struct {
	Width  int        `yaml:"width"`
	Height int        `yaml:"height"`
	Scale  int        `yaml:"scale"`
	FPS    int        `yaml:"fps"`
	Plan   PlanConfig `yaml:"plan"`
}

type TerminalConfig struct {
	// HoldMs is how long an unread key press stays pending.
	HoldMs int        `yaml:"hold_ms"`
	Plan   PlanConfig `yaml:"plan"`
}

type PeriphConfig struct {
	SPI       string        `yaml:"spi"`
	DCPin     string        `yaml:"dc_pin"`
	Width     int           `yaml:"width"`
	Height    int           `yaml:"height"`
	Buttons   ButtonsConfig `yaml:"buttons"`
	ActiveLow bool          `yaml:"active_low"`
	Plan      PlanConfig    `yaml:"plan"`
}

type ButtonsConfig struct {
	Down  string `yaml:"down"`
	Up    string `yaml:"up"`
	Enter string `yaml:"enter"`
}

func Default() *Config {
	return &Config{
		Backend: BackendRaylib,
		Log: LogConfig{
			Level: "info",
		},
		Game: GameConfig{
			InitialDelayMs: 150,
			DelayStepMs:    9,
		},
		Session: SessionConfig{
			Title:       "sn8ke",
			SplashMs:    3000,
			PauseMs:     1000,
			PollMs:      10,
			ResetHoldMs: 1000,
		},
		Raylib: RaylibConfig{
			Width:  240,
			Height: 320,
			Scale:  2,
			FPS:    60,
			Plan:   PlanConfig{Left: 5, Top: 15, Right: 5, Bottom: 5, CellSize: 4},
		},
		Terminal: TerminalConfig{
			HoldMs: 150,
			Plan:   PlanConfig{Left: 1, Top: 2, Right: 1, Bottom: 1, CellSize: 1},
		},
		Periph: PeriphConfig{
			DCPin:     "GPIO25",
			Width:     128,
			Height:    64,
			Buttons:   ButtonsConfig{Down: "GPIO5", Up: "GPIO6", Enter: "GPIO13"},
			ActiveLow: true,
			Plan:      PlanConfig{Left: 2, Top: 14, Right: 2, Bottom: 2, CellSize: 2},
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendRaylib, BackendTerminal, BackendPeriph:
	default:
		return fmt.Errorf("%w %q", ErrUnknownBackend, c.Backend)
	}

	if c.Game.InitialDelayMs < 0 {
		return fmt.Errorf("game.initial_delay_ms must be >= 0, got %d", c.Game.InitialDelayMs)
	}
	if c.Game.DelayStepMs < 0 {
		return fmt.Errorf("game.delay_step_ms must be >= 0, got %d", c.Game.DelayStepMs)
	}
	if c.Session.PollMs <= 0 {
		return fmt.Errorf("session.poll_ms must be > 0, got %d", c.Session.PollMs)
	}
	if c.Session.PauseMs < 0 || c.Session.SplashMs < 0 || c.Session.ResetHoldMs < 0 {
		return fmt.Errorf("session durations must be >= 0")
	}

	plans := map[string]PlanConfig{
		BackendRaylib:   c.Raylib.Plan,
		BackendTerminal: c.Terminal.Plan,
		BackendPeriph:   c.Periph.Plan,
	}
	for name, p := range plans {
		if p.CellSize <= 0 {
			return fmt.Errorf("%s.plan.cell_size must be > 0, got %d", name, p.CellSize)
		}
		if p.Left < 0 || p.Top < 0 || p.Right < 0 || p.Bottom < 0 {
			return fmt.Errorf("%s.plan margins must be >= 0", name)
		}
	}

	if c.Raylib.Width <= 0 || c.Raylib.Height <= 0 || c.Raylib.Scale <= 0 {
		return fmt.Errorf("raylib width, height and scale must be > 0")
	}
	if c.Periph.Width <= 0 || c.Periph.Height <= 0 {
		return fmt.Errorf("periph width and height must be > 0")
	}
	return nil
}

// PlanFor returns the plan layout of the selected backend.
func (c *Config) PlanFor(backend string) PlanConfig {
	switch backend {
	case BackendTerminal:
		return c.Terminal.Plan
	case BackendPeriph:
		return c.Periph.Plan
	default:
		return c.Raylib.Plan
	}
}
