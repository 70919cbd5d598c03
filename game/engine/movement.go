package engine

import (
	"math"

	"github.com/wricardo/mcp-training/sokoban/game/geom"
)

// maxSampleStep bounds the distance between two tested positions along a
// movement, as a fraction of the moving rectangle's smaller side.
const maxSampleStep = 0.5

// Integrate advances the entity's velocity for one frame and returns the
// tentative movement. Position is not modified. A zero input stops the
// entity immediately and, with SnapOnIdle, re-centres it on its tile.
func Integrate(e *Entity, input geom.Vector2, dt float32) geom.Vector2 {
	direction := input.Normalized()
	if direction.IsZero() {
		e.Velocity = geom.Zero()
		e.Acceleration = geom.Zero()
		if e.Body.SnapOnIdle {
			e.CenterInTile()
		}
		return geom.Zero()
	}

	switch e.Body.Model {
	case ModelConstant:
		e.Acceleration = geom.Zero()
		e.Velocity = direction.Scale(e.Body.Speed)
	default:
		force := direction.Scale(e.Body.Force)
		e.Acceleration = force.Div(e.Body.Mass).Sub(e.Velocity.Scale(e.Body.Drag))
		e.Velocity.AddAssign(e.Acceleration.Scale(dt))
	}

	return e.Velocity.Scale(dt)
}

// samples splits movement into evenly spaced offsets so that no two tested
// positions are farther apart than half the rectangle's smaller side. The
// last offset is always the full movement.
func samples(rect geom.Rect2, movement geom.Vector2) []geom.Vector2 {
	step := min(rect.Width(), rect.Height()) * maxSampleStep
	if step <= 0 {
		return []geom.Vector2{movement}
	}

	n := int(math.Ceil(float64(movement.Length() / step)))
	if n <= 1 {
		return []geom.Vector2{movement}
	}

	offsets := make([]geom.Vector2, n)
	for i := 1; i < n; i++ {
		offsets[i-1] = movement.Scale(float32(i) / float32(n))
	}
	offsets[n-1] = movement
	return offsets
}

// ConstrainMovement tests rect moved by movement against every wall of the
// map. A wall either rejects the whole movement, returning zero, or does not
// block at all; there is no sliding and no partial approach.
func (m *Map) ConstrainMovement(rect geom.Rect2, movement geom.Vector2) geom.Vector2 {
	if movement.IsZero() || m.NCols() == 0 {
		return movement
	}

	target := rect.Translate(movement)
	sweep := geom.BoundingRect(rect, target)

	x0 := max(0, int(math.Floor(float64(sweep.X0))))
	y0 := max(0, int(math.Floor(float64(sweep.Y0))))
	x1 := min(m.NCols()-1, int(math.Ceil(float64(sweep.X1)))-1)
	y1 := min(m.NLines()-1, int(math.Ceil(float64(sweep.Y1)))-1)

	offsets := samples(rect, movement)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if m.TileAt(x, y) != Wall {
				continue
			}
			tileRect := m.TileRect(x, y)
			for _, off := range offsets {
				if rect.Translate(off).Overlaps(tileRect) {
					return geom.Zero()
				}
			}
		}
	}

	return movement
}

// CollisionAgainstTiles constrains an entity's movement against the map's walls
func CollisionAgainstTiles(e *Entity, m *Map, movement geom.Vector2) geom.Vector2 {
	return m.ConstrainMovement(e.CollisionRect(), movement)
}

// CollisionAgainstEntities returns the index of the first entity struck by
// rect moved by movement, or -1. skip excludes one index from the scan.
func CollisionAgainstEntities(rect geom.Rect2, entities []Entity, movement geom.Vector2, skip int) int {
	if movement.IsZero() {
		return -1
	}

	offsets := samples(rect, movement)
	for i := range entities {
		if i == skip {
			continue
		}
		other := entities[i].CollisionRect()
		for _, off := range offsets {
			if rect.Translate(off).Overlaps(other) {
				return i
			}
		}
	}
	return -1
}
