package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Sim     SimConfig     `toml:"sim"`
	Level   LevelConfig   `toml:"level"`
	View    ViewConfig    `toml:"view"`
	Logging LoggingConfig `toml:"logging"`
}

type SimConfig struct {
	FrameRate        time.Duration `toml:"frame_rate"`
	MaxEditsPerFrame int           `toml:"max_edits_per_frame"`
	ScriptsDir       string        `toml:"scripts_dir"` // Lua gate scripts; empty = built-in tables
}

type LevelConfig struct {
	List     string `toml:"list"`      // level_list.yaml
	TilesDir string `toml:"tiles_dir"` // {id}.txt layout files
	ID       int    `toml:"id"`        // level opened at start
}

type ViewConfig struct {
	Headless bool `toml:"headless"`
	Frames   int  `toml:"frames"` // frames to run when headless
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // empty = stderr
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Sim.FrameRate <= 0 {
		return fmt.Errorf("sim.frame_rate must be positive, got %s", c.Sim.FrameRate)
	}
	if c.Sim.MaxEditsPerFrame <= 0 {
		return fmt.Errorf("sim.max_edits_per_frame must be positive, got %d", c.Sim.MaxEditsPerFrame)
	}
	if c.View.Headless && c.View.Frames < 0 {
		return fmt.Errorf("view.frames must not be negative, got %d", c.View.Frames)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Sim: SimConfig{
			FrameRate:        16 * time.Millisecond,
			MaxEditsPerFrame: 64,
			ScriptsDir:       "scripts",
		},
		Level: LevelConfig{
			List:     "data/yaml/level_list.yaml",
			TilesDir: "data/levels",
			ID:       1,
		},
		View: ViewConfig{
			Headless: false,
			Frames:   1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "circuit.log",
		},
	}
}
