package engine

import (
	"fmt"

	"github.com/wricardo/mcp-training/sokoban/game/geom"
)

// TileType represents the kind of a grid cell
type TileType int

const (
	Floor TileType = iota
	Wall
	Target
	Blank
)

// Tile codes used by .map files
const (
	CodeFloor       = 0
	CodeWall        = 1
	CodeBoxStart    = 2
	CodePlayerStart = 3
	CodeTarget      = 4
	CodeBlank       = 5
)

const (
	// DefaultSpriteFPS is the frame rate of sprite sheet animations
	DefaultSpriteFPS = 16

	// DefaultPlayerHeight is the collision height of the player in tiles
	DefaultPlayerHeight = 0.8

	// FixedTimestep is used when the caller has no frame clock of its own
	FixedTimestep = float32(1.0 / 60.0)
)

// TileTypeFromCode decodes a .map tile code. Codes 2 and 3 mark box and
// player starts and decode to Floor.
func TileTypeFromCode(code int) (TileType, bool) {
	switch code {
	case CodeFloor, CodeBoxStart, CodePlayerStart:
		return Floor, true
	case CodeWall:
		return Wall, true
	case CodeTarget:
		return Target, true
	case CodeBlank:
		return Blank, true
	default:
		return Floor, false
	}
}

// Code returns the representative .map code for the tile type
func (t TileType) Code() int {
	switch t {
	case Wall:
		return CodeWall
	case Target:
		return CodeTarget
	case Blank:
		return CodeBlank
	default:
		return CodeFloor
	}
}

// IsSolid reports whether the tile blocks movement. Only walls do.
func (t TileType) IsSolid() bool {
	return t == Wall
}

// String returns the tile name
func (t TileType) String() string {
	switch t {
	case Floor:
		return "floor"
	case Wall:
		return "wall"
	case Target:
		return "target"
	case Blank:
		return "blank"
	default:
		return fmt.Sprintf("tile(%d)", int(t))
	}
}

// MarshalText encodes the tile as its name
func (t TileType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a tile name
func (t *TileType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "floor":
		*t = Floor
	case "wall":
		*t = Wall
	case "target":
		*t = Target
	case "blank":
		*t = Blank
	default:
		return fmt.Errorf("unknown tile type %q", string(text))
	}
	return nil
}

// Position is an integer grid cell
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Vector returns the lower-left corner of the cell
func (p Position) Vector() geom.Vector2 {
	return geom.Vec(float32(p.X), float32(p.Y))
}

// Add offsets p by d
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// FlipRow converts a row index between the top-down file order and the
// bottom-up grid order. Applying it twice with the same nLines is the identity.
func FlipRow(row, nLines int) int {
	return nLines - row - 1
}

// Direction is one of the four movement directions
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// Directions lists all directions in a stable order
var Directions = []Direction{Up, Down, Left, Right}

// ParseDirection validates a direction name
func ParseDirection(s string) (Direction, bool) {
	switch d := Direction(s); d {
	case Up, Down, Left, Right:
		return d, true
	default:
		return "", false
	}
}

// Offset returns the grid step for d. Up increases Y.
func (d Direction) Offset() Position {
	switch d {
	case Up:
		return Position{0, 1}
	case Down:
		return Position{0, -1}
	case Left:
		return Position{-1, 0}
	case Right:
		return Position{1, 0}
	default:
		return Position{}
	}
}

// Vector returns the unit input vector for d
func (d Direction) Vector() geom.Vector2 {
	return d.Offset().Vector()
}

// EntityState is the renderer-facing view of an entity
type EntityState struct {
	Kind     Kind         `json:"kind"`
	Position geom.Vector2 `json:"position"`
	Velocity geom.Vector2 `json:"velocity"`
	Rect     geom.Rect2   `json:"rect"`
	DrawRect geom.Rect2   `json:"draw_rect"`
	Tile     Position     `json:"tile"`
	Frame    SpriteFrame  `json:"frame"`
	OnTarget bool         `json:"on_target,omitempty"`
}

// GameState is a read-only snapshot of a running level.
// Tiles is indexed [y][x] with row 0 at the bottom.
type GameState struct {
	LevelName     string        `json:"level_name"`
	Music         string        `json:"music,omitempty"`
	NextLevel     string        `json:"next_level,omitempty"`
	Cols          int           `json:"cols"`
	Lines         int           `json:"lines"`
	Tiles         [][]TileType  `json:"tiles"`
	Player        EntityState   `json:"player"`
	Boxes         []EntityState `json:"boxes"`
	BoxesOnTarget int           `json:"boxes_on_target"`
	TotalBoxes    int           `json:"total_boxes"`
	Complete      bool          `json:"complete"`
	Frame         uint64        `json:"frame"`
	Elapsed       float64       `json:"elapsed"`
}

// StepResult describes what happened during one frame
type StepResult struct {
	Requested     geom.Vector2 `json:"requested"`
	Movement      geom.Vector2 `json:"movement"`
	Blocked       bool         `json:"blocked"`
	PushedBox     int          `json:"pushed_box"`
	BoxMovement   geom.Vector2 `json:"box_movement"`
	Complete      bool         `json:"complete"`
	JustCompleted bool         `json:"just_completed,omitempty"`
}
