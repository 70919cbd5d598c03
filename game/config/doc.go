// Package config provides settings and level management for the Sokoban game.
//
// The config package handles:
//   - Loading game settings from a YAML file over built-in defaults
//   - Settings validation (physics constants, push policy)
//   - Level discovery, loading and caching from the maps directory
//   - Hot reload: invalidating cached levels when .lvl or .map files change
//
// Settings Format:
//
//	assets_dir: assets
//	maps_dir: assets/maps
//	first_level: 0-tutorial.lvl
//	strict_grid: true
//	push_policy: independent   # or coupled
//	box_chain_blocking: false
//	physics:
//	  player: {model: drag, mass: 1, drag: 10, force: 70, snap_on_idle: false}
//	player:
//	  height: 0.8
//	  sprite: player.bmp
//
// Usage:
//
//	settings, err := config.LoadSettingsOrDefault("sokoban.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager, err := config.NewManager(settings, level.HeadlessLoader{})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load a level; every call returns an independent copy
//	lvl, err := manager.LoadLevel("0-tutorial")
//
//	// Watch for edits
//	watcher, err := config.NewWatcher(settings.MapsDir)
//	manager.WatchLevels(watcher, nil)
package config
