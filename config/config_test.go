package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sn8ke.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != BackendRaylib {
		t.Errorf("expected backend %q, got %q", BackendRaylib, cfg.Backend)
	}
	if cfg.Game.InitialDelayMs != 150 || cfg.Game.DelayStepMs != 9 {
		t.Errorf("expected delay 150/9, got %d/%d", cfg.Game.InitialDelayMs, cfg.Game.DelayStepMs)
	}
	if cfg.Session.SplashMs != 3000 || cfg.Session.PauseMs != 1000 || cfg.Session.PollMs != 10 {
		t.Errorf("unexpected session defaults: %+v", cfg.Session)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Raylib.Plan.CellSize != 4 {
		t.Errorf("expected default cell size 4, got %d", cfg.Raylib.Plan.CellSize)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
backend: terminal
seed: 42
log:
  level: debug
game:
  initial_delay_ms: 200
session:
  autopilot: true
  require_boot_hold: true
terminal:
  hold_ms: 90
  plan:
    cell_size: 2
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != BackendTerminal {
		t.Errorf("expected terminal backend, got %q", cfg.Backend)
	}
	if cfg.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Seed)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected debug level, got %q", cfg.Log.Level)
	}
	if cfg.Game.InitialDelayMs != 200 {
		t.Errorf("expected delay 200, got %d", cfg.Game.InitialDelayMs)
	}
	if cfg.Game.DelayStepMs != 9 {
		t.Errorf("expected untouched step 9, got %d", cfg.Game.DelayStepMs)
	}
	if !cfg.Session.Autopilot || !cfg.Session.RequireBootHold {
		t.Errorf("expected session flags set, got %+v", cfg.Session)
	}
	if cfg.Terminal.HoldMs != 90 {
		t.Errorf("expected hold 90, got %d", cfg.Terminal.HoldMs)
	}
	// unset keys of a nested block keep their defaults
	if p := cfg.PlanFor(BackendTerminal); p.CellSize != 2 || p.Top != 2 {
		t.Errorf("unexpected terminal plan: %+v", p)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "unknown field", body: "speed: 3\n"},
		{name: "unknown backend", body: "backend: vga\n", wantErr: ErrUnknownBackend},
		{name: "negative delay", body: "game:\n  initial_delay_ms: -1\n"},
		{name: "zero poll", body: "session:\n  poll_ms: 0\n"},
		{name: "zero cell size", body: "periph:\n  plan:\n    cell_size: 0\n"},
		{name: "negative margin", body: "raylib:\n  plan:\n    left: -3\n"},
		{name: "malformed", body: "game: [1, 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestPlanFor(t *testing.T) {
	cfg := Default()
	tests := []struct {
		backend  string
		wantCell int
	}{
		{backend: BackendRaylib, wantCell: 4},
		{backend: BackendTerminal, wantCell: 1},
		{backend: BackendPeriph, wantCell: 2},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			if got := cfg.PlanFor(tt.backend).CellSize; got != tt.wantCell {
				t.Errorf("expected cell size %d, got %d", tt.wantCell, got)
			}
		})
	}
}

func TestExampleFileMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "sn8ke.example.yaml"))
	if err != nil {
		t.Fatalf("example config does not load: %v", err)
	}
	def := Default()
	if cfg.Game != def.Game || cfg.Session != def.Session || cfg.Raylib != def.Raylib {
		t.Errorf("expected the example to spell out the defaults")
	}
	if cfg.Terminal != def.Terminal || cfg.Periph != def.Periph {
		t.Errorf("expected the example backend blocks to match the defaults")
	}
}
