package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/sokoban/game/engine"
	"github.com/wricardo/mcp-training/sokoban/game/geom"
	"github.com/wricardo/mcp-training/sokoban/game/level"
)

var (
	ErrLevelNotComplete = errors.New("level is not complete")
	ErrNoNextLevel      = errors.New("level has no next level")
	ErrInvalidDirection = errors.New("invalid direction")
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	levels   LevelManager
	mu       sync.Mutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, levels LevelManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		levels:   levels,
	}
}

func newSessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		LevelID:        sess.LevelName,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.Snapshot(),
	}
}

// loadLevel wraps a missing level with the list of playable identifiers
func (s *gameServiceImpl) loadLevel(levelName string) (*level.Level, error) {
	lvl, err := s.levels.LoadLevel(levelName)
	if err == nil {
		return lvl, nil
	}

	available, listErr := s.levels.ListLevels()
	if listErr != nil || len(available) == 0 {
		return nil, fmt.Errorf("failed to load level %s: %w", levelName, err)
	}
	ids := make([]string, 0, len(available))
	for _, info := range available {
		ids = append(ids, info.LevelID)
	}
	return nil, fmt.Errorf("failed to load level %s (available levels: %v): %w", levelName, ids, err)
}

// getSession fetches a session and refreshes its access time
func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

// CreateSession creates a new game session playing levelName, or the first
// level when levelName is empty
func (s *gameServiceImpl) CreateSession(ctx context.Context, levelName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if levelName == "" {
		levelName = s.levels.DefaultLevel()
	}
	id := level.ID(levelName)

	lvl, err := s.loadLevel(id)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.Create("", id, lvl, s.levels.EngineOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	log.Printf("Session %s started on level %q", sess.ID, lvl.Map.Name)
	return newSessionInfo(sess), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return newSessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, newSessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Step advances a session by a single frame. A non-positive dt falls back to
// the fixed timestep and large values are clamped.
func (s *gameServiceImpl) Step(ctx context.Context, sessionID string, req StepRequest) (*StepResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	dt := req.DT
	if dt <= 0 || math.IsNaN(float64(dt)) {
		dt = engine.FixedTimestep
	}
	dt = min(dt, MaxStepDelta)

	result := sess.Engine.Step(dt, geom.Vec(req.X, req.Y))
	return &StepResult{
		Result:    result,
		GameState: sess.Engine.Snapshot(),
	}, nil
}

// Move holds a direction for duration seconds at the fixed timestep, then
// releases it. A non-positive duration moves the player exactly one tile,
// stopping early when blocked. Pushes, blocks and completion are reported as
// events.
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string, duration float64) (*MoveResult, error) {
	dir, ok := engine.ParseDirection(direction)
	if !ok {
		return nil, fmt.Errorf("%w: %q (use up, down, left or right)", ErrInvalidDirection, direction)
	}
	oneTile := duration <= 0 || math.IsNaN(duration)
	if oneTile {
		duration = MaxMoveDuration
	}
	duration = min(duration, MaxMoveDuration)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	eng := sess.Engine
	player := eng.Player()
	frames := int(math.Ceil(duration / float64(engine.FixedTimestep)))

	result := &MoveResult{
		Direction: string(dir),
		StartTile: player.Tile(),
	}

	start := player.Position
	heading := dir.Vector()
	onTarget := engine.BoxesOnTarget(eng.Map())
	lastPushed := -1
	wasBlocked := false

	for i := 0; i < frames && !eng.IsComplete(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		step := eng.Step(engine.FixedTimestep, dir.Vector())
		result.Frames++
		now := time.Now()

		if step.Blocked {
			result.BlockedFrames++
			if !wasBlocked {
				result.Events = append(result.Events, GameEvent{
					Type:      "blocked",
					Message:   fmt.Sprintf("Blocked moving %s", dir),
					Timestamp: now,
					Position:  player.Tile(),
				})
			}
		}
		wasBlocked = step.Blocked

		if step.PushedBox >= 0 && !step.BoxMovement.IsZero() {
			result.Pushes++
			if step.PushedBox != lastPushed {
				box := eng.Map().Boxes[step.PushedBox]
				result.Events = append(result.Events, GameEvent{
					Type:      "push",
					Message:   fmt.Sprintf("Pushed box %d %s", step.PushedBox, dir),
					Timestamp: now,
					Position:  box.Tile(),
				})
			}
			lastPushed = step.PushedBox
		} else {
			lastPushed = -1
		}

		if n := engine.BoxesOnTarget(eng.Map()); n > onTarget {
			result.Events = append(result.Events, GameEvent{
				Type:      "box_on_target",
				Message:   fmt.Sprintf("%d of %d boxes on target", n, len(eng.Map().Boxes)),
				Timestamp: now,
				Position:  player.Tile(),
			})
		}
		onTarget = engine.BoxesOnTarget(eng.Map())

		if step.JustCompleted {
			result.Events = append(result.Events, GameEvent{
				Type:      "level_complete",
				Message:   fmt.Sprintf("Level %q complete", eng.Map().Name),
				Timestamp: now,
				Position:  player.Tile(),
			})
		}

		if oneTile && (step.Blocked || travelled(start, player.Position, heading) >= 1) {
			closeGap(eng, start.Add(heading))
			break
		}
	}

	// Release the key
	if !eng.IsComplete() {
		eng.Step(engine.FixedTimestep, geom.Zero())
	}

	result.EndTile = player.Tile()
	result.Completed = eng.IsComplete()
	result.GameState = eng.Snapshot()
	return result, nil
}

// travelled returns the distance covered from start along heading
func travelled(start, pos, heading geom.Vector2) float32 {
	d := pos.Sub(start)
	return d.X*heading.X + d.Y*heading.Y
}

// closeGap puts the player on target when no wall or box lies between. It
// drops the overshoot of the last frame of a one-tile move, or covers the
// rest of the way when that frame was rejected for going too far.
func closeGap(eng *engine.Engine, target geom.Vector2) {
	player := eng.Player()
	rest := target.Sub(player.Position)
	if rest.IsZero() {
		return
	}
	if engine.CollisionAgainstTiles(player, eng.Map(), rest).IsZero() {
		return
	}
	if engine.CollisionAgainstEntities(player.CollisionRect(), eng.Map().Boxes, rest, -1) >= 0 {
		return
	}
	player.Position.AddAssign(rest)
}

// Reset restores the initial placement of the session's level
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Engine.Reset()
	return sess.Engine.Snapshot(), nil
}

// NextLevel replaces a completed session's level with the one it links to
func (s *gameServiceImpl) NextLevel(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.Engine.IsComplete() {
		return nil, ErrLevelNotComplete
	}

	next := sess.Engine.Map().NextLevel
	if next == "" {
		return nil, ErrNoNextLevel
	}
	id := level.ID(next)

	lvl, err := s.loadLevel(id)
	if err != nil {
		return nil, err
	}
	eng, err := engine.NewEngine(lvl.Map, lvl.Player, s.levels.EngineOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	sess.LevelName = id
	sess.Level = lvl
	sess.Engine = eng

	log.Printf("Session %s advanced to level %q", sess.ID, lvl.Map.Name)
	return newSessionInfo(sess), nil
}

// GetGameState returns the current game state for a session
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.Snapshot(), nil
}

// ExportSession writes the live map and player of a session as level text
func (s *gameServiceImpl) ExportSession(ctx context.Context, sessionID string) (*ExportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	mapName := sess.LevelName + level.MapExt
	if sess.Level != nil && sess.Level.Description != nil && sess.Level.Description.TileMap != "" {
		mapName = sess.Level.Description.TileMap
	}

	var lvl, grid bytes.Buffer
	if err := level.Export(&lvl, &grid, sess.Engine.Map(), sess.Engine.Player(), mapName, s.levels.AssetPaths()); err != nil {
		return nil, err
	}
	return &ExportResult{Level: lvl.String(), Map: grid.String()}, nil
}

// ListLevels returns all playable levels
func (s *gameServiceImpl) ListLevels(ctx context.Context) ([]*LevelInfo, error) {
	return s.levels.ListLevels()
}

// LoadLevel returns a fresh copy of a level
func (s *gameServiceImpl) LoadLevel(ctx context.Context, levelName string) (*level.Level, error) {
	return s.levels.LoadLevel(levelName)
}

// ValidateLevel checks a level and optionally searches for a solution
func (s *gameServiceImpl) ValidateLevel(ctx context.Context, levelName string, solve bool) (*ValidationResult, error) {
	lvl, err := s.levels.LoadLevel(levelName)
	if err != nil {
		return nil, err
	}

	report := level.Validate(lvl, level.ValidateOptions{Solve: solve})
	result := &ValidationResult{
		LevelID:  level.ID(levelName),
		Valid:    report.Valid(),
		Problems: report.Messages(),
	}
	if report.Solution != nil {
		result.Moves = report.Solution.Moves
		result.Pushes = report.Solution.Pushes
	}
	return result, nil
}
