package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_missingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sim.FrameRate != 16*time.Millisecond || cfg.Level.ID != 1 || cfg.Logging.Format != "console" {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoad_overlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.toml")
	body := `
[sim]
frame_rate = "40ms"

[level]
id = 2

[view]
headless = true
frames = 10
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sim.FrameRate != 40*time.Millisecond {
		t.Errorf("frame_rate = %s", cfg.Sim.FrameRate)
	}
	if cfg.Level.ID != 2 || !cfg.View.Headless || cfg.View.Frames != 10 {
		t.Errorf("level/view = %+v %+v", cfg.Level, cfg.View)
	}
	if cfg.Sim.MaxEditsPerFrame != 64 || cfg.Level.List != "data/yaml/level_list.yaml" {
		t.Errorf("unset keys lost their defaults: %+v %+v", cfg.Sim, cfg.Level)
	}
}

func TestLoad_invalid(t *testing.T) {
	for name, body := range map[string]string{
		"zero frame rate": "[sim]\nframe_rate = \"0s\"\n",
		"no edits":        "[sim]\nmax_edits_per_frame = 0\n",
		"negative frames": "[view]\nheadless = true\nframes = -1\n",
		"syntax":          "[sim\n",
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.toml")
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), path) {
				t.Errorf("Load error = %v", err)
			}
		})
	}
}

func TestLoad_shippedConfig(t *testing.T) {
	if _, err := Load(filepath.Join("..", "..", "config", "circuit.toml")); err != nil {
		t.Fatal(err)
	}
}
