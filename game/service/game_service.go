package service

import (
	"context"
	"time"

	"github.com/wricardo/mcp-training/sokoban/game/engine"
	"github.com/wricardo/mcp-training/sokoban/game/level"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, levelName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Step(ctx context.Context, sessionID string, req StepRequest) (*StepResult, error)
	Move(ctx context.Context, sessionID, direction string, duration float64) (*MoveResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.GameState, error)
	NextLevel(ctx context.Context, sessionID string) (*SessionInfo, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	ExportSession(ctx context.Context, sessionID string) (*ExportResult, error)

	// Levels
	ListLevels(ctx context.Context) ([]*LevelInfo, error)
	LoadLevel(ctx context.Context, levelName string) (*level.Level, error)
	ValidateLevel(ctx context.Context, levelName string, solve bool) (*ValidationResult, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, levelName string, lvl *level.Level, opts engine.Options) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// LevelManager handles level loading. LoadLevel returns a copy the caller
// may mutate.
type LevelManager interface {
	LoadLevel(name string) (*level.Level, error)
	ListLevels() ([]*LevelInfo, error)
	DefaultLevel() string
	EngineOptions() engine.Options
	AssetPaths() level.AssetPaths
}

// Session represents an active game session
type Session struct {
	ID             string
	LevelName      string
	Level          *level.Level
	Engine         *engine.Engine
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
