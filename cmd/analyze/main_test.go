package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wricardo/mcp-training/sokoban/game/engine"
	"github.com/wricardo/mcp-training/sokoban/game/geom"
	"github.com/wricardo/mcp-training/sokoban/game/level"
)

// roomLevel builds a 4x2 room with a target in its top-right corner:
//
//	1 1 1 1 1 1
//	1 0 0 0 4 1
//	1 0 0 0 0 1
//	1 1 1 1 1 1
func roomLevel(t *testing.T, boxes ...engine.Position) *level.Level {
	t.Helper()
	w, f, g := engine.Wall, engine.Floor, engine.Target
	m, err := engine.NewMap([][]engine.TileType{
		{w, w, w, w, w, w},
		{w, f, f, f, g, w},
		{w, f, f, f, f, w},
		{w, w, w, w, w, w},
	})
	if err != nil {
		t.Fatalf("Failed to build map: %v", err)
	}
	m.Name = "Room"
	for _, b := range boxes {
		m.Boxes = append(m.Boxes, engine.NewBox(b.Vector(), engine.Sprite{}))
	}

	player := engine.NewPlayer(geom.Vec(2.1, 1.1), 0.8, 0.8, engine.Sprite{}, engine.DefaultPlayerBody())
	return &level.Level{Map: m, Player: player}
}

func TestAnalyzeLevel(t *testing.T) {
	tests := []struct {
		name           string
		boxes          []engine.Position
		wantOnTarget   int
		wantLowerBound int
		wantStuck      int
	}{
		{"box in the open", []engine.Position{{X: 3, Y: 1}}, 0, 2, 0},
		{"box on target", []engine.Position{{X: 4, Y: 2}}, 1, 0, 0},
		{"box in a corner", []engine.Position{{X: 1, Y: 1}}, 0, 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := analyzeLevel(roomLevel(t, tt.boxes...))

			if stats.Cols != 6 || stats.Lines != 4 {
				t.Errorf("Expected 6x4, got %dx%d", stats.Cols, stats.Lines)
			}
			if stats.OpenCells != 8 || stats.Reachable != 8 {
				t.Errorf("Expected 8 open and reachable cells, got %d and %d", stats.OpenCells, stats.Reachable)
			}
			if stats.Targets != 1 || stats.Boxes != len(tt.boxes) {
				t.Errorf("Unexpected counts: %d targets, %d boxes", stats.Targets, stats.Boxes)
			}
			// Three floor corners; the target corner does not count
			if len(stats.DeadCorners) != 3 {
				t.Errorf("Expected 3 dead corners, got %v", stats.DeadCorners)
			}
			if stats.BoxesOnTarget != tt.wantOnTarget {
				t.Errorf("Expected %d boxes on target, got %d", tt.wantOnTarget, stats.BoxesOnTarget)
			}
			if stats.PushLowerBound != tt.wantLowerBound {
				t.Errorf("Expected push lower bound %d, got %d", tt.wantLowerBound, stats.PushLowerBound)
			}
			if len(stats.BoxesInCorners) != tt.wantStuck {
				t.Errorf("Expected %d stuck boxes, got %v", tt.wantStuck, stats.BoxesInCorners)
			}
		})
	}
}

func TestPrintStats(t *testing.T) {
	tests := []struct {
		name     string
		stats    LevelStats
		contains []string
	}{
		{
			name:     "healthy",
			stats:    LevelStats{Name: "Room", Cols: 6, Lines: 4, Boxes: 1, Targets: 1},
			contains: []string{"Name: Room", "Grid Size: 6 x 4", "✅ Every box is reachable"},
		},
		{
			name:     "missing targets",
			stats:    LevelStats{Boxes: 2, Targets: 1},
			contains: []string{"2 boxes but only 1 targets"},
		},
		{
			name: "stuck and unreachable",
			stats: LevelStats{
				Boxes: 1, Targets: 1,
				BoxesInCorners: []engine.Position{{X: 1, Y: 1}},
				Unreachable:    []engine.Position{{X: 1, Y: 1}},
			},
			contains: []string{"Stuck box: (1, 1)", "Unreachable: (1, 1)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			printStats(&out, tt.stats)
			for _, want := range tt.contains {
				if !strings.Contains(out.String(), want) {
					t.Errorf("Expected output to contain %q, got:\n%s", want, out.String())
				}
			}
		})
	}
}

func TestIsCorner(t *testing.T) {
	m := roomLevel(t).Map

	tests := []struct {
		x, y int
		want bool
	}{
		{1, 1, true},
		{1, 2, true},
		{4, 1, true},
		{2, 1, false},
		{2, 2, false},
	}
	for _, tt := range tests {
		if got := isCorner(m, tt.x, tt.y); got != tt.want {
			t.Errorf("isCorner(%d, %d) = %v, expected %v", tt.x, tt.y, got, tt.want)
		}
	}
}
