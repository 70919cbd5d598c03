package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wricardo/mcp-training/sokoban/game/engine"
	"github.com/wricardo/mcp-training/sokoban/game/level"
)

// Settings is the YAML game configuration
type Settings struct {
	AssetsDir        string          `yaml:"assets_dir"`
	MapsDir          string          `yaml:"maps_dir"`
	FirstLevel       string          `yaml:"first_level"`
	StrictGrid       bool            `yaml:"strict_grid"`
	PushPolicy       string          `yaml:"push_policy"`
	BoxChainBlocking bool            `yaml:"box_chain_blocking"`
	Physics          PhysicsSettings `yaml:"physics"`
	Player           PlayerSettings  `yaml:"player"`
}

// PhysicsSettings holds the per-class bodies
type PhysicsSettings struct {
	Player BodySettings `yaml:"player"`
	Box    BodySettings `yaml:"box"`
}

// BodySettings mirrors engine.Body
type BodySettings struct {
	Model      string  `yaml:"model"`
	Mass       float32 `yaml:"mass"`
	Drag       float32 `yaml:"drag"`
	Force      float32 `yaml:"force"`
	Speed      float32 `yaml:"speed"`
	SnapOnIdle bool    `yaml:"snap_on_idle"`
}

// PlayerSettings sizes and skins the player
type PlayerSettings struct {
	Height float32 `yaml:"height"`
	Sprite string  `yaml:"sprite"`
}

// DefaultSettings returns the settings used when no file is given
func DefaultSettings() *Settings {
	player := engine.DefaultPlayerBody()
	box := engine.DefaultBoxBody()
	return &Settings{
		AssetsDir:  level.DefaultAssetsDir,
		MapsDir:    level.DefaultMapsDir,
		FirstLevel: "0-tutorial.lvl",
		StrictGrid: true,
		PushPolicy: engine.PushIndependent.String(),
		Physics: PhysicsSettings{
			Player: fromBody(player),
			Box:    fromBody(box),
		},
		Player: PlayerSettings{
			Height: engine.DefaultPlayerHeight,
			Sprite: level.DefaultPlayerSprite,
		},
	}
}

func fromBody(b engine.Body) BodySettings {
	return BodySettings{
		Model:      string(b.Model),
		Mass:       b.Mass,
		Drag:       b.Drag,
		Force:      b.Force,
		Speed:      b.Speed,
		SnapOnIdle: b.SnapOnIdle,
	}
}

// Body converts the settings to an engine body
func (b BodySettings) Body() engine.Body {
	return engine.Body{
		Model:      engine.Model(b.Model),
		Mass:       b.Mass,
		Drag:       b.Drag,
		Force:      b.Force,
		Speed:      b.Speed,
		SnapOnIdle: b.SnapOnIdle,
	}
}

// LoadSettings reads a YAML file over the defaults and validates the result
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	return ParseSettings(data)
}

// ParseSettings decodes YAML over the defaults; absent keys keep their default
func ParseSettings(data []byte) (*Settings, error) {
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadSettingsOrDefault returns the defaults when path does not exist
func LoadSettingsOrDefault(path string) (*Settings, error) {
	if path == "" {
		return DefaultSettings(), nil
	}
	s, err := LoadSettings(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultSettings(), nil
	}
	return s, err
}

// Validate rejects unusable physics constants and unknown enum values
func (s *Settings) Validate() error {
	if s.MapsDir == "" {
		return fmt.Errorf("%w: maps_dir must not be empty", ErrInvalidSettings)
	}
	if s.FirstLevel == "" {
		return fmt.Errorf("%w: first_level must not be empty", ErrInvalidSettings)
	}
	if _, err := engine.ParsePushPolicy(s.PushPolicy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if err := engine.ValidateBody(s.Physics.Player.Body()); err != nil {
		return fmt.Errorf("%w: physics.player: %v", ErrInvalidSettings, err)
	}
	if err := engine.ValidateBody(s.Physics.Box.Body()); err != nil {
		return fmt.Errorf("%w: physics.box: %v", ErrInvalidSettings, err)
	}
	if s.Player.Height <= 0 || s.Player.Height > 1 {
		return fmt.Errorf("%w: player.height must be in (0, 1], got %v", ErrInvalidSettings, s.Player.Height)
	}
	return nil
}

// EngineOptions returns the push resolution options
func (s *Settings) EngineOptions() engine.Options {
	policy, _ := engine.ParsePushPolicy(s.PushPolicy)
	return engine.Options{Policy: policy, BoxChainBlocking: s.BoxChainBlocking}
}

// LevelOptions returns the loader options with the given texture loader
func (s *Settings) LevelOptions(textures level.TextureLoader) level.Options {
	return level.Options{
		Paths:        level.AssetPaths{AssetsDir: s.AssetsDir, MapsDir: s.MapsDir},
		Textures:     textures,
		StrictGrid:   s.StrictGrid,
		PlayerSprite: s.Player.Sprite,
		PlayerHeight: s.Player.Height,
		PlayerBody:   s.Physics.Player.Body(),
		BoxBody:      s.Physics.Box.Body(),
	}
}
