package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/postviz/internal/scene"
	"github.com/san-kum/postviz/internal/solver"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.PostSize != 3.5 {
		t.Errorf("expected post size 3.5, got %f", cfg.PostSize)
	}
	if cfg.View.FPS <= 0 {
		t.Error("fps should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadSave(t *testing.T) {
	t.Setenv(solver.EnvBaseURL, "")
	path := filepath.Join(t.TempDir(), "nested", "postviz.yaml")

	cfg := DefaultConfig()
	cfg.PostSize = 5.5
	cfg.View.Camera.Position = [3]float64{0, 100, 800}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.PostSize != 5.5 {
		t.Errorf("expected post size 5.5, got %f", got.PostSize)
	}
	if got.View.Camera.Position != [3]float64{0, 100, 800} {
		t.Errorf("expected camera position to round trip, got %v", got.View.Camera.Position)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	t.Setenv(solver.EnvBaseURL, "")
	path := filepath.Join(t.TempDir(), "c.yaml")
	if err := os.WriteFile(path, []byte("post_size: 4\nview:\n  fps: 30\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.View.FPS != 30 || cfg.View.Width != DefaultWidth {
		t.Errorf("expected fps 30 and default width, got %d and %d", cfg.View.FPS, cfg.View.Width)
	}
	if cfg.Solver.URL != DefaultSolverURL {
		t.Errorf("expected default solver url, got %s", cfg.Solver.URL)
	}
}

func TestLoadOrDefault(t *testing.T) {
	t.Setenv(solver.EnvBaseURL, "http://env")
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("expected defaults, got %v", err)
	}
	if cfg.Solver.URL != "http://env" {
		t.Errorf("expected env solver url, got %s", cfg.Solver.URL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"post size", func(c *Config) { c.PostSize = 0 }},
		{"fps", func(c *Config) { c.View.FPS = -1 }},
		{"size", func(c *Config) { c.View.Height = 0 }},
		{"fov", func(c *Config) { c.View.Camera.FOV = 180 }},
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", tt.name, err)
		}
	}
}

func TestLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "debug"
	lvl, err := cfg.Level()
	if err != nil || lvl != slog.LevelDebug {
		t.Errorf("expected debug, got %v (%v)", lvl, err)
	}
}

func TestViewOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.View.FPS = 24
	opts := cfg.ViewOptions()

	if opts.FPS != 24 {
		t.Errorf("expected fps 24, got %d", opts.FPS)
	}
	if opts.CameraPosition != scene.V3(50, 50, 500) || opts.CameraTarget != scene.V3(50, 24, 0) {
		t.Errorf("unexpected camera %v -> %v", opts.CameraPosition, opts.CameraTarget)
	}
}

func TestGetPreset(t *testing.T) {
	in := GetPreset("yard", "tree")
	if in == nil {
		t.Fatal("expected preset, got nil")
	}
	if err := in.Validate(); err != nil {
		t.Errorf("preset should validate: %v", err)
	}

	in.Obstructions[0].Size = 1
	if Presets["yard"]["tree"].Obstructions[0].Size != 24 {
		t.Error("GetPreset must return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("fence", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "short") != nil {
		t.Error("expected nil for nonexistent group")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("fence")
	if len(presets) != 3 || presets[0] != "gate" {
		t.Errorf("expected sorted fence presets, got %v", presets)
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent group")
	}
	for _, g := range PresetGroups() {
		for _, name := range ListPresets(g) {
			if err := GetPreset(g, name).Validate(); err != nil {
				t.Errorf("%s/%s: %v", g, name, err)
			}
		}
	}
}
