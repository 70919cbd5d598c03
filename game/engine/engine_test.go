package engine

import (
	"errors"
	"testing"

	"github.com/wricardo/mcp-training/sokoban/game/geom"
)

// unitBody moves exactly one tile per 0.5s step
func unitBody() Body {
	return Body{Model: ModelConstant, Mass: 1, Speed: 2}
}

func corridorEngine(t *testing.T, opts Options, player Position, boxes ...Position) *Engine {
	t.Helper()
	m := buildMap(t,
		"#######",
		"#....x#",
		"#######",
	)
	m.Name = "corridor"
	for _, b := range boxes {
		m.Boxes = append(m.Boxes, NewBox(b.Vector(), Sprite{}))
	}

	e, err := NewEngine(m, NewPlayer(player.Vector(), 1, 1, Sprite{}, unitBody()), opts)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return e
}

var right = geom.Vec(1, 0)

func TestNewEngineErrors(t *testing.T) {
	if _, err := NewEngine(nil, Entity{}, DefaultOptions()); !errors.Is(err, ErrNilMap) {
		t.Errorf("Expected ErrNilMap, got %v", err)
	}

	m := buildMap(t, "...", "...", "...")
	bad := NewPlayer(geom.Zero(), 1, 1, Sprite{}, Body{Model: ModelDrag, Mass: 0})
	if _, err := NewEngine(m, bad, DefaultOptions()); err == nil {
		t.Error("Expected error for massless player")
	}
}

func TestEngineStepMovesPlayer(t *testing.T) {
	e := corridorEngine(t, DefaultOptions(), Position{1, 1})

	result := e.Step(0.5, right)
	if result.Blocked {
		t.Error("Free movement should not be blocked")
	}
	if result.PushedBox != -1 {
		t.Errorf("Expected no push, got box %d", result.PushedBox)
	}
	if e.Player().Position != geom.Vec(2, 1) {
		t.Errorf("Expected player at (2,1), got %v", e.Player().Position)
	}
	if e.Frames() != 1 {
		t.Errorf("Expected 1 frame, got %d", e.Frames())
	}
}

func TestEngineStepBlockedByWall(t *testing.T) {
	e := corridorEngine(t, DefaultOptions(), Position{1, 1})

	result := e.Step(0.5, geom.Vec(-1, 0))
	if !result.Blocked || !result.Movement.IsZero() {
		t.Errorf("Expected blocked step, got %+v", result)
	}
	if e.Player().Position != geom.Vec(1, 1) {
		t.Errorf("Player should not move into the wall, got %v", e.Player().Position)
	}
	if !e.Player().Velocity.IsZero() {
		t.Errorf("Blocked player should stop, got velocity %v", e.Player().Velocity)
	}
}

func TestEnginePushChain(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		player    Position
		boxes     []Position
		wantPlyr  geom.Vector2
		wantBoxes []geom.Vector2
		blocked   bool
	}{
		{
			name:      "free push moves box and player",
			opts:      DefaultOptions(),
			player:    Position{1, 1},
			boxes:     []Position{{2, 1}},
			wantPlyr:  geom.Vec(2, 1),
			wantBoxes: []geom.Vector2{geom.Vec(3, 1)},
		},
		{
			name:      "independent push against wall lets player overlap",
			opts:      Options{Policy: PushIndependent},
			player:    Position{4, 1},
			boxes:     []Position{{5, 1}},
			wantPlyr:  geom.Vec(5, 1),
			wantBoxes: []geom.Vector2{geom.Vec(5, 1)},
		},
		{
			name:      "coupled push against wall holds player",
			opts:      Options{Policy: PushCoupled},
			player:    Position{4, 1},
			boxes:     []Position{{5, 1}},
			wantPlyr:  geom.Vec(4, 1),
			wantBoxes: []geom.Vector2{geom.Vec(5, 1)},
			blocked:   true,
		},
		{
			name:      "box chains do not propagate",
			opts:      DefaultOptions(),
			player:    Position{1, 1},
			boxes:     []Position{{2, 1}, {3, 1}},
			wantPlyr:  geom.Vec(2, 1),
			wantBoxes: []geom.Vector2{geom.Vec(3, 1), geom.Vec(3, 1)},
		},
		{
			name:      "box chain blocking stops the first box",
			opts:      Options{Policy: PushCoupled, BoxChainBlocking: true},
			player:    Position{1, 1},
			boxes:     []Position{{2, 1}, {3, 1}},
			wantPlyr:  geom.Vec(1, 1),
			wantBoxes: []geom.Vector2{geom.Vec(2, 1), geom.Vec(3, 1)},
			blocked:   true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			e := corridorEngine(t, test.opts, test.player, test.boxes...)

			result := e.Step(0.5, right)
			if result.PushedBox != 0 {
				t.Errorf("Expected box 0 to be pushed, got %d", result.PushedBox)
			}
			if result.Blocked != test.blocked {
				t.Errorf("Expected blocked=%v, got %v", test.blocked, result.Blocked)
			}
			if e.Player().Position != test.wantPlyr {
				t.Errorf("Expected player at %v, got %v", test.wantPlyr, e.Player().Position)
			}
			for i, want := range test.wantBoxes {
				if got := e.Map().Boxes[i].Position; got != want {
					t.Errorf("Box %d: expected %v, got %v", i, want, got)
				}
			}
		})
	}
}

func TestLevelComplete(t *testing.T) {
	m := buildMap(t,
		"....",
		".x..",
		"..x.",
		"....",
	)
	// targets at (1,2) and (2,1) bottom-up
	tests := []struct {
		name     string
		boxes    []geom.Vector2
		expected bool
	}{
		{"no boxes", nil, false},
		{"all on targets", []geom.Vector2{geom.Vec(1, 2), geom.Vec(2, 1)}, true},
		{"fractional positions truncate", []geom.Vector2{geom.Vec(1.6, 2.9), geom.Vec(2.2, 1.4)}, true},
		{"one off target", []geom.Vector2{geom.Vec(1, 2), geom.Vec(0, 0)}, false},
		{"out of bounds", []geom.Vector2{geom.Vec(1, 2), geom.Vec(-0.5, 1)}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m.Boxes = nil
			for _, b := range test.boxes {
				m.Boxes = append(m.Boxes, NewBox(b, Sprite{}))
			}
			if got := LevelComplete(m); got != test.expected {
				t.Errorf("Expected %v, got %v", test.expected, got)
			}
		})
	}
}

func TestEngineWinAndTerminal(t *testing.T) {
	e := corridorEngine(t, DefaultOptions(), Position{3, 1}, Position{4, 1})

	result := e.Step(0.5, right)
	if !result.Complete || !result.JustCompleted {
		t.Fatalf("Expected level to complete, got %+v", result)
	}
	if !e.IsComplete() {
		t.Error("Engine should report completion")
	}

	frames := e.Frames()
	player := e.Player().Position
	result = e.Step(0.5, geom.Vec(-1, 0))
	if !result.Complete || result.JustCompleted {
		t.Errorf("Completed level should stay complete without re-triggering, got %+v", result)
	}
	if e.Frames() != frames || e.Player().Position != player {
		t.Error("Steps after completion must not change state")
	}
}

func TestEngineReset(t *testing.T) {
	e := corridorEngine(t, DefaultOptions(), Position{3, 1}, Position{4, 1})
	e.Step(0.5, right)

	e.Reset()
	if e.IsComplete() {
		t.Error("Reset should clear completion")
	}
	if e.Player().Position != geom.Vec(3, 1) {
		t.Errorf("Expected player back at (3,1), got %v", e.Player().Position)
	}
	if e.Map().Boxes[0].Position != geom.Vec(4, 1) {
		t.Errorf("Expected box back at (4,1), got %v", e.Map().Boxes[0].Position)
	}
	if e.Frames() != 0 {
		t.Errorf("Expected frame counter reset, got %d", e.Frames())
	}
}

func TestEngineSnapshot(t *testing.T) {
	e := corridorEngine(t, DefaultOptions(), Position{1, 1}, Position{5, 1}, Position{2, 1})

	state := e.Snapshot()
	if state.LevelName != "corridor" {
		t.Errorf("Expected level name corridor, got %q", state.LevelName)
	}
	if state.Cols != 7 || state.Lines != 3 {
		t.Errorf("Expected 7x3, got %dx%d", state.Cols, state.Lines)
	}
	if state.TotalBoxes != 2 || state.BoxesOnTarget != 1 {
		t.Errorf("Expected 1 of 2 boxes on target, got %d of %d", state.BoxesOnTarget, state.TotalBoxes)
	}
	if !state.Boxes[0].OnTarget || state.Boxes[1].OnTarget {
		t.Error("Per-box target flags are wrong")
	}
	if state.Complete {
		t.Error("Level should not be complete")
	}
	if state.Tiles[1][5] != Target {
		t.Errorf("Expected target in snapshot at [1][5], got %v", state.Tiles[1][5])
	}

	state.Boxes[0].Position = geom.Vec(0, 0)
	if e.Map().Boxes[0].Position != geom.Vec(5, 1) {
		t.Error("Snapshot must not alias engine state")
	}
}
