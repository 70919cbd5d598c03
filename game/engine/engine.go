package engine

import (
	"errors"
	"fmt"
	"log"

	"github.com/wricardo/mcp-training/sokoban/game/geom"
)

var ErrNilMap = errors.New("engine: map cannot be nil")

// Simulation is the frame-step contract exposed to drivers
type Simulation interface {
	Step(dt float32, input geom.Vector2) StepResult
	Reset()
	IsComplete() bool
	Snapshot() *GameState
	Map() *Map
	Player() *Entity
}

// Engine orchestrates one level: player movement, pushes and the win check.
// It is single-threaded; callers serialise access.
type Engine struct {
	level  *Map
	player Entity
	opts   Options

	initialPlayer Entity
	initialBoxes  []Entity

	complete bool
	frames   uint64
	elapsed  float64
}

var _ Simulation = (*Engine)(nil)

// NewEngine creates an engine for a loaded map and player
func NewEngine(m *Map, player Entity, opts Options) (*Engine, error) {
	if m == nil {
		return nil, ErrNilMap
	}
	if err := ValidateBody(player.Body); err != nil {
		return nil, fmt.Errorf("player: %w", err)
	}

	e := &Engine{
		level:         m,
		player:        player,
		opts:          opts,
		initialPlayer: player,
		initialBoxes:  append([]Entity(nil), m.Boxes...),
	}
	return e, nil
}

// Map returns the level map. Renderers must treat it as read-only.
func (e *Engine) Map() *Map {
	return e.level
}

// Player returns the player entity
func (e *Engine) Player() *Entity {
	return &e.player
}

// Options returns the engine options
func (e *Engine) Options() Options {
	return e.opts
}

// IsComplete reports whether every box rests on a target
func (e *Engine) IsComplete() bool {
	return e.complete
}

// Frames returns the number of simulated frames since the last reset
func (e *Engine) Frames() uint64 {
	return e.frames
}

// Step advances the simulation by dt seconds with the given input direction.
// Once the level is complete further steps do nothing.
func (e *Engine) Step(dt float32, input geom.Vector2) StepResult {
	result := StepResult{PushedBox: -1, Complete: e.complete}
	if e.complete {
		return result
	}

	e.frames++
	e.elapsed += float64(dt)

	player := &e.player
	requested := Integrate(player, input, dt)
	allowed := CollisionAgainstTiles(player, e.level, requested)
	result.Requested = requested

	if !requested.IsZero() && allowed.IsZero() {
		result.Blocked = true
		player.Velocity = geom.Zero()
	}

	if !allowed.IsZero() {
		if idx := CollisionAgainstEntities(player.CollisionRect(), e.level.Boxes, allowed, -1); idx >= 0 {
			boxMove := e.pushBox(idx, allowed, dt)
			result.PushedBox = idx
			result.BoxMovement = boxMove

			if e.opts.Policy == PushCoupled {
				allowed = boxMove
				if allowed.IsZero() {
					result.Blocked = true
					player.Velocity = geom.Zero()
				}
			}
		}
		player.Position.AddAssign(allowed)
	}
	result.Movement = allowed

	if allowed.IsZero() {
		player.Sprite.Rewind()
	} else {
		player.Sprite.Advance(dt)
	}

	if LevelComplete(e.level) {
		e.complete = true
		result.JustCompleted = true
		log.Printf("Level %q complete after %d frames (%.2fs)", e.level.Name, e.frames, e.elapsed)
	}
	result.Complete = e.complete

	return result
}

// pushBox constrains movement from the box's own position and applies it.
// The box is copied before the constraint is computed so the slice is only
// written once the result is known.
func (e *Engine) pushBox(idx int, movement geom.Vector2, dt float32) geom.Vector2 {
	box := e.level.Boxes[idx]

	boxMove := CollisionAgainstTiles(&box, e.level, movement)
	if e.opts.BoxChainBlocking && !boxMove.IsZero() {
		if CollisionAgainstEntities(box.CollisionRect(), e.level.Boxes, boxMove, idx) >= 0 {
			boxMove = geom.Zero()
		}
	}

	target := &e.level.Boxes[idx]
	target.Position.AddAssign(boxMove)
	if !boxMove.IsZero() {
		target.Sprite.Advance(dt)
	}
	return boxMove
}

// Reset restores the initial placement of the player and every box
func (e *Engine) Reset() {
	e.player = e.initialPlayer
	e.level.Boxes = append(e.level.Boxes[:0], e.initialBoxes...)
	e.complete = false
	e.frames = 0
	e.elapsed = 0
}

// Snapshot returns a copy of the renderer-facing state
func (e *Engine) Snapshot() *GameState {
	m := e.level
	state := &GameState{
		LevelName:  m.Name,
		Music:      m.Music,
		NextLevel:  m.NextLevel,
		Cols:       m.NCols(),
		Lines:      m.NLines(),
		Tiles:      m.Grid(),
		Player:     e.player.State(),
		Boxes:      make([]EntityState, 0, len(m.Boxes)),
		TotalBoxes: len(m.Boxes),
		Complete:   e.complete,
		Frame:      e.frames,
		Elapsed:    e.elapsed,
	}

	for i := range m.Boxes {
		box := m.Boxes[i].State()
		box.OnTarget = IsOnTarget(m, &m.Boxes[i])
		if box.OnTarget {
			state.BoxesOnTarget++
		}
		state.Boxes = append(state.Boxes, box)
	}

	return state
}
