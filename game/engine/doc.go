// Package engine provides the core simulation of the Sokoban game.
//
// The engine package implements the game mechanics including:
//   - The tile grid (Map) with bottom-up coordinates and bounds-aware lookups
//   - Entity movement integration (force, drag, velocity, position)
//   - All-or-nothing wall collision and box push resolution
//   - Win detection (every box resting on a target tile)
//   - Read-only state snapshots for external renderers
//
// Core Types:
//
// Map owns the tiles, the boxes and the level metadata. Entity models both
// the player and the boxes; only the player is driven by input. Engine
// sequences one frame of simulation per Step call and never drives timing
// or rendering itself.
//
// Usage:
//
//	m, err := engine.NewMap(rows)
//	if err != nil {
//		log.Fatal(err)
//	}
//	m.Boxes = append(m.Boxes, engine.NewBox(geom.Vec(3, 2), engine.Sprite{}))
//
//	player := engine.NewPlayer(geom.Vec(2, 2), 0.8, 0.8, engine.Sprite{}, engine.DefaultPlayerBody())
//	eng, err := engine.NewEngine(m, player, engine.DefaultOptions())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Once per frame
//	result := eng.Step(dt, geom.Vec(1, 0))
//	if result.Complete {
//		// level solved
//	}
//
// Coordinates:
//
// Level files list rows top-down. In memory row 0 is the bottom row and Y
// grows upward. NewMap flips the rows exactly once; TileAt reads the store
// directly.
package engine
