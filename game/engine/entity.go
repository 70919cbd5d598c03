package engine

import (
	"math"

	"github.com/wricardo/mcp-training/sokoban/game/geom"
)

// Kind distinguishes input-driven entities from push-driven ones
type Kind string

const (
	KindPlayer Kind = "player"
	KindBox    Kind = "box"
)

// SpriteFrame is the source rectangle of the current animation frame, in texels
type SpriteFrame struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Sprite slices a horizontal sprite sheet into frames and advances them over time
type Sprite struct {
	Texture     Texture `json:"texture"`
	FrameX      int     `json:"frame_x"`
	FrameY      int     `json:"frame_y"`
	FrameWidth  int     `json:"frame_width"`
	FrameHeight int     `json:"frame_height"`
	FPS         int     `json:"fps"`

	accumulated float32
}

// NewSprite creates a sprite showing frames of frameWidth x frameHeight texels
func NewSprite(texture Texture, frameWidth, frameHeight int) Sprite {
	return Sprite{
		Texture:     texture,
		FrameWidth:  frameWidth,
		FrameHeight: frameHeight,
		FPS:         DefaultSpriteFPS,
	}
}

// Advance accumulates dt and steps one frame every 1/FPS seconds,
// wrapping back to the first frame at the end of the sheet.
func (s *Sprite) Advance(dt float32) {
	if s.FPS <= 0 || s.FrameWidth <= 0 {
		return
	}
	frameTime := 1 / float32(s.FPS)

	s.accumulated += dt
	for s.accumulated >= frameTime {
		s.accumulated -= frameTime
		s.FrameX += s.FrameWidth
		if s.FrameX >= s.Texture.Width {
			s.FrameX = 0
		}
	}
}

// Rewind returns to the first frame
func (s *Sprite) Rewind() {
	s.FrameX = 0
	s.accumulated = 0
}

// Frame returns the current source rectangle
func (s Sprite) Frame() SpriteFrame {
	return SpriteFrame{X: s.FrameX, Y: s.FrameY, Width: s.FrameWidth, Height: s.FrameHeight}
}

// Entity is a movable, collidable, sprite-bearing object. Position is the
// lower-left corner of its collision rectangle in grid space.
type Entity struct {
	Kind         Kind         `json:"kind"`
	Position     geom.Vector2 `json:"position"`
	Velocity     geom.Vector2 `json:"velocity"`
	Acceleration geom.Vector2 `json:"acceleration"`

	Width  float32 `json:"width"`
	Height float32 `json:"height"`

	DrawWidth  float32 `json:"draw_width"`
	DrawHeight float32 `json:"draw_height"`

	Body   Body   `json:"body"`
	Sprite Sprite `json:"sprite"`
}

// NewPlayer creates the input-driven entity
func NewPlayer(position geom.Vector2, width, height float32, sprite Sprite, body Body) Entity {
	return Entity{
		Kind:       KindPlayer,
		Position:   position,
		Width:      width,
		Height:     height,
		DrawWidth:  width,
		DrawHeight: height,
		Body:       body,
		Sprite:     sprite,
	}
}

// NewBox creates a one-tile box. Boxes only move when pushed.
func NewBox(position geom.Vector2, sprite Sprite) Entity {
	return Entity{
		Kind:       KindBox,
		Position:   position,
		Width:      1,
		Height:     1,
		DrawWidth:  1,
		DrawHeight: 1,
		Body:       DefaultBoxBody(),
		Sprite:     sprite,
	}
}

// CollisionRect returns the rectangle used for collision tests
func (e *Entity) CollisionRect() geom.Rect2 {
	return geom.FromPointAndDimensions(e.Position, e.Width, e.Height)
}

// DrawRect returns the rectangle the sprite is drawn into. It shares the
// lower-left corner with the collision rectangle and may be taller.
func (e *Entity) DrawRect() geom.Rect2 {
	w, h := e.DrawWidth, e.DrawHeight
	if w <= 0 {
		w = e.Width
	}
	if h <= 0 {
		h = e.Height
	}
	return geom.FromPointAndDimensions(e.Position, w, h)
}

// Tile returns the cell containing the entity's lower-left corner
func (e *Entity) Tile() Position {
	return Position{
		X: int(math.Floor(float64(e.Position.X))),
		Y: int(math.Floor(float64(e.Position.Y))),
	}
}

// CenterInTile moves the entity to the middle of the tile it currently occupies
func (e *Entity) CenterInTile() {
	xDiff := float32(math.Ceil(float64(e.Width))) - e.Width
	yDiff := float32(math.Ceil(float64(e.Height))) - e.Height

	e.Position.X = float32(math.Floor(float64(e.Position.X))) + xDiff*0.5
	e.Position.Y = float32(math.Floor(float64(e.Position.Y))) + yDiff*0.5
}

// State returns the renderer-facing view of the entity
func (e *Entity) State() EntityState {
	return EntityState{
		Kind:     e.Kind,
		Position: e.Position,
		Velocity: e.Velocity,
		Rect:     e.CollisionRect(),
		DrawRect: e.DrawRect(),
		Tile:     e.Tile(),
		Frame:    e.Sprite.Frame(),
	}
}
