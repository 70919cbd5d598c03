package engine

// IsOnTarget reports whether the entity's truncated position is a target tile
func IsOnTarget(m *Map, e *Entity) bool {
	if e.Position.X < 0 || e.Position.Y < 0 {
		return false
	}
	tile := e.Tile()
	t, ok := m.Lookup(tile.X, tile.Y)
	return ok && t == Target
}

// LevelComplete reports whether every box is on a target. A map without
// boxes is never complete.
func LevelComplete(m *Map) bool {
	if len(m.Boxes) == 0 {
		return false
	}
	for i := range m.Boxes {
		if !IsOnTarget(m, &m.Boxes[i]) {
			return false
		}
	}
	return true
}

// BoxesOnTarget counts the boxes resting on target tiles
func BoxesOnTarget(m *Map) int {
	count := 0
	for i := range m.Boxes {
		if IsOnTarget(m, &m.Boxes[i]) {
			count++
		}
	}
	return count
}

// CountTiles counts the cells of a given type
func (m *Map) CountTiles(tileType TileType) int {
	count := 0
	for _, t := range m.tiles {
		if t == tileType {
			count++
		}
	}
	return count
}

// TilePositions returns every cell of the given type, bottom row first
func (m *Map) TilePositions(tileType TileType) []Position {
	var positions []Position
	for y := 0; y < m.NLines(); y++ {
		for x := 0; x < m.NCols(); x++ {
			if m.TileAt(x, y) == tileType {
				positions = append(positions, Position{X: x, Y: y})
			}
		}
	}
	return positions
}

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(from, to Position) int {
	dx := from.X - to.X
	if dx < 0 {
		dx = -dx
	}
	dy := from.Y - to.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Reachable flood-fills the non-solid cells 4-connected to start
func (m *Map) Reachable(start Position) map[Position]bool {
	visited := make(map[Position]bool)
	if !m.InBounds(start.X, start.Y) || m.IsSolidAt(start.X, start.Y) {
		return visited
	}

	queue := []Position{start}
	visited[start] = true
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, n := range m.Neighbors(current.X, current.Y) {
			if visited[n.Position] || n.Tile.IsSolid() {
				continue
			}
			visited[n.Position] = true
			queue = append(queue, n.Position)
		}
	}
	return visited
}
