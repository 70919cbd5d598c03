// Command desktop plays Sokoban levels in a window.
//
// It runs the engine locally: every frame it reads the keyboard or the
// first gamepad, steps the engine with the frame time and draws the map,
// the boxes and the player through a fixed 20x16 tile camera.
//
// Keys: WASD or arrows move, R restarts the level, Enter loads the next
// level once the current one is complete, Escape quits.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/wricardo/mcp-training/sokoban/game/config"
)

const (
	screenWidth  = 800
	screenHeight = 592
	sampleRate   = 44100
)

func main() {
	settingsPath := flag.String("settings", "sokoban.yaml", "YAML settings file")
	levelName := flag.String("level", "", "Level to start on (default: first_level from settings)")
	flag.Parse()

	settings, err := config.LoadSettingsOrDefault(*settingsPath)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	textures := newTextureCache()
	levels, err := config.NewManager(settings, textures)
	if err != nil {
		log.Fatalf("Failed to create level manager: %v", err)
	}

	start := *levelName
	if start == "" {
		start = levels.DefaultLevel()
	}

	game := NewGame(levels, newJukebox(audio.NewContext(sampleRate)))
	game.Load(start)

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Sokoban")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
