package service_test

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/wricardo/mcp-training/sokoban/game/config"
	"github.com/wricardo/mcp-training/sokoban/game/engine"
	"github.com/wricardo/mcp-training/sokoban/game/level"
	"github.com/wricardo/mcp-training/sokoban/game/service"
	"github.com/wricardo/mcp-training/sokoban/game/session"
)

const corridorLevel = `level_name = %NAME%
next_level = %NEXT%
wall_tile = wall.bmp
floor_tile = floor.bmp
target_tile = target.bmp
box_sprite_sheet = box.bmp
box_sprite_width = 32
box_sprite_height = 32
tile_map = %MAP%
player_position = (1, 1)
box_positions = {(2, 1)}
`

// The target sits in the middle of the corridor so the box crosses it
const corridorMap = `1 1 1 1 1 1 1
1 0 0 4 0 0 1
1 1 1 1 1 1 1
`

func writeLevel(t *testing.T, dir, id, name, next string) {
	t.Helper()
	text := strings.NewReplacer("%NAME%", name, "%NEXT%", next, "%MAP%", id+".map").Replace(corridorLevel)
	if err := os.WriteFile(filepath.Join(dir, id+".lvl"), []byte(text), 0644); err != nil {
		t.Fatalf("Failed to write level: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, id+".map"), []byte(corridorMap), 0644); err != nil {
		t.Fatalf("Failed to write map: %v", err)
	}
}

func newTestService(t *testing.T) service.GameService {
	t.Helper()
	dir := t.TempDir()
	writeLevel(t, dir, "0-first", "First", "1-second.lvl")
	writeLevel(t, dir, "1-second", "Second", "")

	settings := config.DefaultSettings()
	settings.AssetsDir = dir
	settings.MapsDir = dir
	settings.FirstLevel = "0-first.lvl"

	levels, err := config.NewManager(settings, level.FixedSizeLoader{Width: 32, Height: 32})
	if err != nil {
		t.Fatalf("Failed to create level manager: %v", err)
	}
	return service.NewGameService(session.NewManager(), levels)
}

func TestCreateSession(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		levelName string
		wantLevel string
		wantErr   bool
	}{
		{name: "default level", levelName: "", wantLevel: "0-first"},
		{name: "by identifier", levelName: "1-second", wantLevel: "1-second"},
		{name: "by file name", levelName: "1-second.lvl", wantLevel: "1-second"},
		{name: "unknown level", levelName: "nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := svc.CreateSession(ctx, tt.levelName)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error")
				}
				if !errors.Is(err, config.ErrLevelNotFound) {
					t.Errorf("Expected ErrLevelNotFound, got %v", err)
				}
				if !strings.Contains(err.Error(), "0-first") {
					t.Errorf("Expected available levels in error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateSession failed: %v", err)
			}
			if info.LevelID != tt.wantLevel {
				t.Errorf("Expected level %s, got %s", tt.wantLevel, info.LevelID)
			}
			if len(info.ID) != 4 {
				t.Errorf("Expected 4-character session ID, got %q", info.ID)
			}
			if info.GameState == nil || info.GameState.TotalBoxes != 1 {
				t.Errorf("Expected a game state with one box, got %+v", info.GameState)
			}
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, _ := svc.CreateSession(ctx, "")
	second, _ := svc.CreateSession(ctx, "1-second")

	sessions, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("Expected 2 sessions, got %d", len(sessions))
	}

	if _, err := svc.GetSession(ctx, first.ID); err != nil {
		t.Errorf("GetSession failed: %v", err)
	}
	if err := svc.DeleteSession(ctx, second.ID); err != nil {
		t.Errorf("DeleteSession failed: %v", err)
	}
	if _, err := svc.GetSession(ctx, second.ID); !errors.Is(err, session.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound after delete, got %v", err)
	}
}

func TestStep(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "")
	start := info.GameState.Player.Position

	tests := []struct {
		name        string
		req         service.StepRequest
		wantFrame   uint64
		wantElapsed float64
		wantMoving  bool
	}{
		{name: "default dt", req: service.StepRequest{X: 1}, wantFrame: 1, wantElapsed: 1.0 / 60, wantMoving: true},
		{name: "clamped dt", req: service.StepRequest{DT: 10}, wantFrame: 2, wantElapsed: 1.0/60 + 0.25},
		{name: "explicit dt", req: service.StepRequest{DT: 0.02, X: 1}, wantFrame: 3, wantElapsed: 1.0/60 + 0.27, wantMoving: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Step(ctx, info.ID, tt.req)
			if err != nil {
				t.Fatalf("Step failed: %v", err)
			}
			if res.GameState.Frame != tt.wantFrame {
				t.Errorf("Expected frame %d, got %d", tt.wantFrame, res.GameState.Frame)
			}
			if math.Abs(res.GameState.Elapsed-tt.wantElapsed) > 1e-4 {
				t.Errorf("Expected elapsed %.4f, got %.4f", tt.wantElapsed, res.GameState.Elapsed)
			}
			if moving := !res.Result.Movement.IsZero(); moving != tt.wantMoving {
				t.Errorf("Expected moving=%v, got movement %v", tt.wantMoving, res.Result.Movement)
			}
		})
	}

	state, _ := svc.GetGameState(ctx, info.ID)
	if state.Player.Position.X <= start.X {
		t.Errorf("Expected player to move right from %v, got %v", start, state.Player.Position)
	}

	if _, err := svc.Step(ctx, "zzzz", service.StepRequest{}); !errors.Is(err, session.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestMove(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	t.Run("invalid direction", func(t *testing.T) {
		info, _ := svc.CreateSession(ctx, "")
		if _, err := svc.Move(ctx, info.ID, "sideways", 0); !errors.Is(err, service.ErrInvalidDirection) {
			t.Errorf("Expected ErrInvalidDirection, got %v", err)
		}
	})

	t.Run("blocked by wall", func(t *testing.T) {
		info, _ := svc.CreateSession(ctx, "")
		res, err := svc.Move(ctx, info.ID, "left", 0.5)
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if res.BlockedFrames == 0 {
			t.Error("Expected blocked frames against the left wall")
		}
		if !hasEvent(res.Events, "blocked") {
			t.Errorf("Expected a blocked event, got %+v", res.Events)
		}
		if res.EndTile != (engine.Position{X: 1, Y: 1}) {
			t.Errorf("Expected to stay on tile (1,1), got %v", res.EndTile)
		}
		if !res.GameState.Player.Velocity.IsZero() {
			t.Errorf("Expected player to stop after the move, got %v", res.GameState.Player.Velocity)
		}
	})

	t.Run("push box onto target", func(t *testing.T) {
		info, _ := svc.CreateSession(ctx, "")
		res, err := svc.Move(ctx, info.ID, "right", 1)
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if res.Pushes == 0 {
			t.Error("Expected the box to be pushed")
		}
		if !res.Completed || !res.GameState.Complete {
			t.Fatalf("Expected level complete, got %+v", res.GameState)
		}
		for _, want := range []string{"push", "box_on_target", "level_complete"} {
			if !hasEvent(res.Events, want) {
				t.Errorf("Expected %s event, got %+v", want, res.Events)
			}
		}
		if res.Frames >= 60 {
			t.Errorf("Expected the move to stop at completion, ran %d frames", res.Frames)
		}
	})
}

const roomLevel = `level_name = Room
wall_tile = wall.bmp
floor_tile = floor.bmp
target_tile = target.bmp
box_sprite_sheet = box.bmp
box_sprite_width = 32
box_sprite_height = 32
tile_map = room.map
player_position = (2, 2)
box_positions = {(1, 1)}
`

const roomMap = `1 1 1 1 1
1 0 0 4 1
1 0 0 0 1
1 0 0 0 1
1 1 1 1 1
`

// newRoomService serves a single 3x3 room with the player in the middle
func newRoomService(t *testing.T) service.GameService {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "room.lvl"), []byte(roomLevel), 0644); err != nil {
		t.Fatalf("Failed to write level: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "room.map"), []byte(roomMap), 0644); err != nil {
		t.Fatalf("Failed to write map: %v", err)
	}

	settings := config.DefaultSettings()
	settings.AssetsDir = dir
	settings.MapsDir = dir
	settings.FirstLevel = "room.lvl"

	levels, err := config.NewManager(settings, level.FixedSizeLoader{Width: 32, Height: 32})
	if err != nil {
		t.Fatalf("Failed to create level manager: %v", err)
	}
	return service.NewGameService(session.NewManager(), levels)
}

func TestMoveOneTile(t *testing.T) {
	svc := newRoomService(t)
	ctx := context.Background()

	tests := []struct {
		direction string
		offset    engine.Position
	}{
		{"up", engine.Position{X: 0, Y: 1}},
		{"down", engine.Position{X: 0, Y: -1}},
		{"left", engine.Position{X: -1, Y: 0}},
		{"right", engine.Position{X: 1, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.direction, func(t *testing.T) {
			info, err := svc.CreateSession(ctx, "")
			if err != nil {
				t.Fatalf("CreateSession failed: %v", err)
			}
			start := info.GameState.Player

			res, err := svc.Move(ctx, info.ID, tt.direction, 0)
			if err != nil {
				t.Fatalf("Move failed: %v", err)
			}
			if want := start.Tile.Add(tt.offset); res.EndTile != want {
				t.Errorf("Expected end tile %v, got %v (start %v)", want, res.EndTile, res.StartTile)
			}

			got := res.GameState.Player.Position
			want := start.Position.Add(tt.offset.Vector())
			if math.Abs(float64(got.X-want.X)) > 1e-4 || math.Abs(float64(got.Y-want.Y)) > 1e-4 {
				t.Errorf("Expected player at %v, got %v", want, got)
			}
			if res.Frames >= 60 {
				t.Errorf("Expected one tile to take well under a second, ran %d frames", res.Frames)
			}
			if !res.GameState.Player.Velocity.IsZero() {
				t.Errorf("Expected player to stop after the move, got %v", res.GameState.Player.Velocity)
			}
		})
	}

	t.Run("blocked stops early", func(t *testing.T) {
		svc := newTestService(t)
		info, _ := svc.CreateSession(ctx, "")

		res, err := svc.Move(ctx, info.ID, "up", 0)
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if res.EndTile != res.StartTile {
			t.Errorf("Expected to stay on %v in the corridor, got %v", res.StartTile, res.EndTile)
		}
		if res.BlockedFrames == 0 || res.Frames >= 60 {
			t.Errorf("Expected a short blocked move, got %d frames (%d blocked)", res.Frames, res.BlockedFrames)
		}
	})
}

func TestConcurrentSessionAccess(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	info, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := svc.GetSession(ctx, info.ID); err != nil {
					t.Errorf("GetSession failed: %v", err)
					return
				}
				if _, err := svc.ListSessions(ctx); err != nil {
					t.Errorf("ListSessions failed: %v", err)
					return
				}
				if _, err := svc.GetGameState(ctx, info.ID); err != nil {
					t.Errorf("GetGameState failed: %v", err)
					return
				}
				if i%2 == 0 {
					svc.Step(ctx, info.ID, service.StepRequest{X: -1})
				}
			}
		}(i)
	}
	wg.Wait()
}

func hasEvent(events []service.GameEvent, kind string) bool {
	for _, ev := range events {
		if ev.Type == kind {
			return true
		}
	}
	return false
}

func TestResetAndNextLevel(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "")

	if _, err := svc.NextLevel(ctx, info.ID); !errors.Is(err, service.ErrLevelNotComplete) {
		t.Errorf("Expected ErrLevelNotComplete, got %v", err)
	}

	svc.Move(ctx, info.ID, "right", 1)
	state, err := svc.Reset(ctx, info.ID)
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if state.Complete || state.Boxes[0].Tile != (engine.Position{X: 2, Y: 1}) {
		t.Errorf("Expected reset to restore the box, got %+v", state.Boxes[0])
	}

	svc.Move(ctx, info.ID, "right", 1)
	next, err := svc.NextLevel(ctx, info.ID)
	if err != nil {
		t.Fatalf("NextLevel failed: %v", err)
	}
	if next.LevelID != "1-second" || next.GameState.LevelName != "Second" {
		t.Errorf("Expected level Second, got %s (%s)", next.LevelID, next.GameState.LevelName)
	}
	if next.GameState.Complete {
		t.Error("Next level should start incomplete")
	}

	svc.Move(ctx, info.ID, "right", 1)
	if _, err := svc.NextLevel(ctx, info.ID); !errors.Is(err, service.ErrNoNextLevel) {
		t.Errorf("Expected ErrNoNextLevel, got %v", err)
	}
}

func TestExportSession(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	info, _ := svc.CreateSession(ctx, "")

	export, err := svc.ExportSession(ctx, info.ID)
	if err != nil {
		t.Fatalf("ExportSession failed: %v", err)
	}
	if export.Map != corridorMap {
		t.Errorf("Expected exported map %q, got %q", corridorMap, export.Map)
	}
	for _, want := range []string{
		"level_name = First",
		"tile_map = 0-first.map",
		"player_position = (1, 1)",
		"box_positions = {(2, 1)}",
	} {
		if !strings.Contains(export.Level, want) {
			t.Errorf("Expected %q in exported level:\n%s", want, export.Level)
		}
	}
}

func TestLevels(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	levels, err := svc.ListLevels(ctx)
	if err != nil {
		t.Fatalf("ListLevels failed: %v", err)
	}
	if len(levels) != 2 || levels[0].LevelID != "0-first" {
		t.Fatalf("Expected two levels starting with 0-first, got %+v", levels)
	}
	if levels[0].Boxes != 1 || levels[0].Targets != 1 || levels[0].Cols != 7 {
		t.Errorf("Unexpected level info %+v", levels[0])
	}

	lvl, err := svc.LoadLevel(ctx, "1-second")
	if err != nil {
		t.Fatalf("LoadLevel failed: %v", err)
	}
	if lvl.Map.Name != "Second" {
		t.Errorf("Expected Second, got %s", lvl.Map.Name)
	}

	result, err := svc.ValidateLevel(ctx, "0-first", true)
	if err != nil {
		t.Fatalf("ValidateLevel failed: %v", err)
	}
	if !result.Valid {
		t.Errorf("Expected valid level, got problems %v", result.Problems)
	}
	if len(result.Moves) != 1 || result.Moves[0] != engine.Right || result.Pushes != 1 {
		t.Errorf("Expected a single push right, got %v (%d pushes)", result.Moves, result.Pushes)
	}
}
