package engine

import (
	"errors"
	"fmt"

	"github.com/wricardo/mcp-training/sokoban/game/geom"
)

var ErrRaggedRows = errors.New("tile rows have different lengths")

// Texture is an opaque handle to a loaded image. Only Width and Height
// take part in the engine's math.
type Texture struct {
	Handle any    `json:"-"`
	Path   string `json:"path,omitempty"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// MapData bundles the textures a level is drawn with
type MapData struct {
	Floor  Texture `json:"floor"`
	Wall   Texture `json:"wall"`
	Target Texture `json:"target"`
	Box    Texture `json:"box"`

	BoxFrameWidth  int `json:"box_frame_width"`
	BoxFrameHeight int `json:"box_frame_height"`
}

// Map is the tile grid of a level plus the boxes living on it.
// Tiles are immutable after construction; Boxes are moved in place.
type Map struct {
	tiles  []TileType // row-major, row 0 at the bottom
	stride int

	Data  MapData
	Boxes []Entity

	Name      string
	Music     string
	NextLevel string
}

// Neighbor is an in-bounds tile adjacent to a cell
type Neighbor struct {
	Direction Direction
	Position  Position
	Tile      TileType
}

// NewMap builds a map from rows listed top-down, as they appear in a level
// file. Every row must have the same length.
func NewMap(rows [][]TileType) (*Map, error) {
	m := &Map{}
	if len(rows) == 0 {
		return m, nil
	}

	stride := len(rows[0])
	for i, row := range rows {
		if len(row) != stride {
			return nil, fmt.Errorf("%w: row %d has %d tiles, expected %d", ErrRaggedRows, i+1, len(row), stride)
		}
	}

	nLines := len(rows)
	m.stride = stride
	m.tiles = make([]TileType, 0, stride*nLines)
	for y := 0; y < nLines; y++ {
		m.tiles = append(m.tiles, rows[FlipRow(y, nLines)]...)
	}

	return m, nil
}

// NCols returns the number of columns, or 0 for an empty map
func (m *Map) NCols() int {
	if m.stride <= 0 {
		return 0
	}
	return m.stride
}

// NLines returns the number of rows, or 0 for an empty map
func (m *Map) NLines() int {
	if m.stride <= 0 {
		return 0
	}
	return len(m.tiles) / m.stride
}

// InBounds reports whether (x, y) addresses a tile
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.NCols() && y < m.NLines()
}

// TileAt returns the tile at (x, y) with y counted from the bottom row.
// Out-of-range coordinates are a programming error and panic.
func (m *Map) TileAt(x, y int) TileType {
	if !m.InBounds(x, y) {
		panic(fmt.Sprintf("engine: tile (%d,%d) outside %dx%d map", x, y, m.NCols(), m.NLines()))
	}
	return m.tiles[y*m.stride+x]
}

// Lookup is the bounds-aware variant of TileAt
func (m *Map) Lookup(x, y int) (TileType, bool) {
	if !m.InBounds(x, y) {
		return Blank, false
	}
	return m.tiles[y*m.stride+x], true
}

// IsSolidAt reports whether an in-bounds wall occupies (x, y)
func (m *Map) IsSolidAt(x, y int) bool {
	tile, ok := m.Lookup(x, y)
	return ok && tile.IsSolid()
}

// Neighbor returns the tile one step from (x, y) in direction d
func (m *Map) Neighbor(x, y int, d Direction) (TileType, bool) {
	off := d.Offset()
	return m.Lookup(x+off.X, y+off.Y)
}

// Neighbors returns the in-bounds 4-connected neighbours of (x, y)
func (m *Map) Neighbors(x, y int) []Neighbor {
	neighbors := make([]Neighbor, 0, 4)
	for _, d := range Directions {
		pos := Position{X: x, Y: y}.Add(d.Offset())
		if tile, ok := m.Lookup(pos.X, pos.Y); ok {
			neighbors = append(neighbors, Neighbor{Direction: d, Position: pos, Tile: tile})
		}
	}
	return neighbors
}

// TileRect returns the unit square covered by tile (x, y)
func (m *Map) TileRect(x, y int) geom.Rect2 {
	return geom.FromPointAndDimensions(geom.Vec(float32(x), float32(y)), 1, 1)
}

// Rows returns a copy of the tiles in file order, top row first
func (m *Map) Rows() [][]TileType {
	nLines := m.NLines()
	rows := make([][]TileType, nLines)
	for y := 0; y < nLines; y++ {
		row := make([]TileType, m.stride)
		copy(row, m.tiles[y*m.stride:(y+1)*m.stride])
		rows[FlipRow(y, nLines)] = row
	}
	return rows
}

// Grid returns a copy of the tiles indexed [y][x], bottom row first
func (m *Map) Grid() [][]TileType {
	nLines := m.NLines()
	grid := make([][]TileType, nLines)
	for y := 0; y < nLines; y++ {
		row := make([]TileType, m.stride)
		copy(row, m.tiles[y*m.stride:(y+1)*m.stride])
		grid[y] = row
	}
	return grid
}

// BoxIndexAt returns the index of the first box whose tile is (x, y), or -1
func (m *Map) BoxIndexAt(x, y int) int {
	for i := range m.Boxes {
		if m.Boxes[i].Tile() == (Position{X: x, Y: y}) {
			return i
		}
	}
	return -1
}

// Clone returns a copy whose boxes can move independently. The tile store is
// shared since tiles never change after construction.
func (m *Map) Clone() *Map {
	c := *m
	c.Boxes = append([]Entity(nil), m.Boxes...)
	return &c
}
