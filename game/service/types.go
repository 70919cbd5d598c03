package service

import (
	"time"

	"github.com/wricardo/mcp-training/sokoban/game/engine"
	"github.com/wricardo/mcp-training/sokoban/game/level"
)

// MaxStepDelta caps the dt of a single step
const MaxStepDelta = 0.25

// MaxMoveDuration caps how long a direction may be held in one move call,
// including a one-tile move
const MaxMoveDuration = 5.0

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string            `json:"id"`
	LevelID        string            `json:"level_id"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	GameState      *engine.GameState `json:"game_state"`
}

// StepRequest advances a session by one frame
type StepRequest struct {
	DT float32 `json:"dt"`
	X  float32 `json:"x"`
	Y  float32 `json:"y"`
}

// StepResult contains the outcome of one frame
type StepResult struct {
	Result    engine.StepResult `json:"result"`
	GameState *engine.GameState `json:"game_state"`
}

// MoveResult contains the result of holding a direction for a duration
type MoveResult struct {
	Direction     string            `json:"direction"`
	Frames        int               `json:"frames"`
	BlockedFrames int               `json:"blocked_frames"`
	Pushes        int               `json:"pushes"`
	StartTile     engine.Position   `json:"start_tile"`
	EndTile       engine.Position   `json:"end_tile"`
	Completed     bool              `json:"completed"`
	GameState     *engine.GameState `json:"game_state"`
	Events        []GameEvent       `json:"events,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string          `json:"type"` // "push", "blocked", "box_on_target", "level_complete", "reset", "level_loaded"
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Position  engine.Position `json:"position"`
}

// LevelInfo provides information about a level file
type LevelInfo struct {
	Filename  string `json:"filename"`
	LevelID   string `json:"level_id"` // The identifier to use for session creation
	Name      string `json:"name"`     // Display name
	Cols      int    `json:"cols"`
	Lines     int    `json:"lines"`
	Boxes     int    `json:"boxes"`
	Targets   int    `json:"targets"`
	NextLevel string `json:"next_level,omitempty"`
	Music     string `json:"music,omitempty"`
}

// NewLevelInfo summarises a loaded level
func NewLevelInfo(filename string, l *level.Level) *LevelInfo {
	return &LevelInfo{
		Filename:  filename,
		LevelID:   level.ID(filename),
		Name:      l.Map.Name,
		Cols:      l.Map.NCols(),
		Lines:     l.Map.NLines(),
		Boxes:     len(l.Map.Boxes),
		Targets:   l.Map.CountTiles(engine.Target),
		NextLevel: l.Map.NextLevel,
		Music:     l.Map.Music,
	}
}

// ExportResult holds the .lvl and .map text of a live session
type ExportResult struct {
	Level string `json:"level"`
	Map   string `json:"map"`
}

// ValidationResult is the outcome of validating a level
type ValidationResult struct {
	LevelID  string             `json:"level_id"`
	Valid    bool               `json:"valid"`
	Problems []string           `json:"problems,omitempty"`
	Moves    []engine.Direction `json:"moves,omitempty"`
	Pushes   int                `json:"pushes,omitempty"`
}
