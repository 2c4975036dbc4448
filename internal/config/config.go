package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/postviz/internal/layout"
	"github.com/san-kum/postviz/internal/scene"
	"github.com/san-kum/postviz/internal/solver"
	"github.com/san-kum/postviz/internal/viewer"
)

const (
	DefaultSolverURL = "http://localhost:8080"
	DefaultTimeout   = 30 * time.Second
	DefaultDataDir   = "runs"
	DefaultFPS       = 60
	DefaultWidth     = 1280
	DefaultHeight    = 720
	DefaultFOV       = 60.0
	DefaultLogLevel  = "info"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Solver   SolverConfig `yaml:"solver"`
	DataDir  string       `yaml:"data_dir"`
	PostSize float64      `yaml:"post_size"`
	View     ViewConfig   `yaml:"view"`
	LogLevel string       `yaml:"log_level"`
}

type SolverConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

type ViewConfig struct {
	FPS    int          `yaml:"fps"`
	Width  int          `yaml:"width"`
	Height int          `yaml:"height"`
	Camera CameraConfig `yaml:"camera"`
}

type CameraConfig struct {
	FOV      float64    `yaml:"fov"`
	Position [3]float64 `yaml:"position"`
	Target   [3]float64 `yaml:"target"`
}

func DefaultConfig() *Config {
	return &Config{
		Solver:   SolverConfig{URL: DefaultSolverURL, Timeout: DefaultTimeout},
		DataDir:  DefaultDataDir,
		PostSize: layout.DefaultPostSize,
		View: ViewConfig{
			FPS:    DefaultFPS,
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Camera: CameraConfig{
				FOV:      DefaultFOV,
				Position: [3]float64{50, 50, 500},
				Target:   [3]float64{50, 24, 0},
			},
		},
		LogLevel: DefaultLogLevel,
	}
}

// Load reads path over the defaults. The APP_API_URL environment variable
// overrides the solver URL.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is Load that falls back to the defaults when path does not
// exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
		cfg.ApplyEnv()
		return cfg, nil
	}
	return cfg, err
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) ApplyEnv() {
	if env := os.Getenv(solver.EnvBaseURL); env != "" {
		c.Solver.URL = env
	}
}

func (c *Config) Validate() error {
	var problems []string
	if !(c.PostSize > 0) {
		problems = append(problems, "post_size must be positive")
	}
	if c.View.FPS <= 0 {
		problems = append(problems, "view.fps must be positive")
	}
	if c.View.Width <= 0 || c.View.Height <= 0 {
		problems = append(problems, "view.width and view.height must be positive")
	}
	if c.View.Camera.FOV <= 0 || c.View.Camera.FOV >= 180 {
		problems = append(problems, "view.camera.fov must be in (0, 180)")
	}
	if _, err := c.Level(); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// ViewOptions builds the viewer options for the configured camera.
func (c *Config) ViewOptions() viewer.Options {
	opts := viewer.DefaultOptions()
	opts.FPS = c.View.FPS
	opts.FOV = c.View.Camera.FOV
	p, t := c.View.Camera.Position, c.View.Camera.Target
	opts.CameraPosition = scene.V3(p[0], p[1], p[2])
	opts.CameraTarget = scene.V3(t[0], t[1], t[2])
	return opts
}

// SolverClient returns a client for the configured solver.
func (c *Config) SolverClient() *solver.Client {
	cl := solver.New(c.Solver.URL)
	if c.Solver.Timeout > 0 {
		cl.HTTP = &http.Client{Timeout: c.Solver.Timeout}
	}
	return cl
}
