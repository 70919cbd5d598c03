// Package geom provides the 2D primitives used by the Sokoban engine.
//
// The package implements:
//   - Vector2, a float32 vector with the arithmetic needed by movement integration
//   - Rect2, an axis-aligned box with (X0, Y0) at the lower-left corner
//   - Directional collision tests that report which face of a rectangle was struck
//
// Coordinates are right-handed: Y grows upward. One unit is one tile.
//
// Usage:
//
//	player := geom.FromPointAndDimensions(geom.Vec(5, 5), 1, 1)
//	wall := geom.FromPointAndDimensions(geom.Vec(6, 5), 1, 1)
//
//	target := player.Translate(geom.Vec(0.5, 0))
//	if edge, ok := target.CollidesWith(wall); ok {
//		// edge runs along the struck face of wall
//		_ = edge
//	}
//
// Overlap is strict on both axes: rectangles that only share an edge do not collide.
package geom
