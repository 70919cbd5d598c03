package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/wricardo/mcp-training/sokoban/game/engine"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("Default settings should validate: %v", err)
	}
	if s.MapsDir != "assets/maps" || s.FirstLevel != "0-tutorial.lvl" || !s.StrictGrid {
		t.Errorf("Unexpected defaults %+v", s)
	}
	if s.EngineOptions().Policy != engine.PushIndependent {
		t.Error("Default push policy should be independent")
	}
}

func TestParseSettingsOverrides(t *testing.T) {
	data := []byte(`
maps_dir: levels
strict_grid: false
push_policy: coupled
box_chain_blocking: true
physics:
  player:
    model: constant
    speed: 5
    snap_on_idle: true
player:
  height: 0.6
`)

	s, err := ParseSettings(data)
	if err != nil {
		t.Fatalf("Failed to parse settings: %v", err)
	}
	if s.MapsDir != "levels" || s.StrictGrid {
		t.Errorf("Overrides not applied: %+v", s)
	}
	if s.AssetsDir != "assets" || s.FirstLevel != "0-tutorial.lvl" {
		t.Errorf("Absent keys should keep defaults: %+v", s)
	}

	opts := s.EngineOptions()
	if opts.Policy != engine.PushCoupled || !opts.BoxChainBlocking {
		t.Errorf("Unexpected engine options %+v", opts)
	}

	body := s.Physics.Player.Body()
	if body.Model != engine.ModelConstant || body.Speed != 5 || !body.SnapOnIdle {
		t.Errorf("Unexpected player body %+v", body)
	}

	lvlOpts := s.LevelOptions(nil)
	if lvlOpts.StrictGrid || lvlOpts.PlayerHeight != 0.6 || lvlOpts.Paths.MapsDir != "levels" {
		t.Errorf("Unexpected level options %+v", lvlOpts)
	}
}

func TestParseSettingsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "maps_dir: [unclosed"},
		{"unknown policy", "push_policy: sticky"},
		{"zero mass", "physics:\n  player:\n    mass: 0"},
		{"unknown model", "physics:\n  box:\n    model: rocket"},
		{"player too tall", "player:\n  height: 1.5"},
		{"empty maps dir", "maps_dir: \"\""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseSettings([]byte(test.data))
			if !errors.Is(err, ErrInvalidSettings) {
				t.Errorf("Expected ErrInvalidSettings, got %v", err)
			}
		})
	}
}

func TestLoadSettingsOrDefault(t *testing.T) {
	s, err := LoadSettingsOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Missing file should fall back to defaults, got %v", err)
	}
	if s.MapsDir != "assets/maps" {
		t.Errorf("Expected default maps dir, got %q", s.MapsDir)
	}

	path := filepath.Join(t.TempDir(), "sokoban.yaml")
	os.WriteFile(path, []byte("first_level: 2-final.lvl\n"), 0644)
	s, err = LoadSettingsOrDefault(path)
	if err != nil {
		t.Fatalf("Failed to load settings: %v", err)
	}
	if s.FirstLevel != "2-final.lvl" {
		t.Errorf("Expected first level from file, got %q", s.FirstLevel)
	}

	if _, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadSettings should fail for a missing file")
	}
}
