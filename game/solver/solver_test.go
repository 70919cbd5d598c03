package solver

import (
	"errors"
	"testing"

	"github.com/wricardo/mcp-training/sokoban/game/engine"
)

func buildMap(t *testing.T, layout ...string) *engine.Map {
	t.Helper()
	rows := make([][]engine.TileType, len(layout))
	for i, line := range layout {
		for _, c := range line {
			switch c {
			case '#':
				rows[i] = append(rows[i], engine.Wall)
			case 'x':
				rows[i] = append(rows[i], engine.Target)
			default:
				rows[i] = append(rows[i], engine.Floor)
			}
		}
	}
	m, err := engine.NewMap(rows)
	if err != nil {
		t.Fatalf("Failed to build map: %v", err)
	}
	return m
}

func TestSolveCorridor(t *testing.T) {
	m := buildMap(t,
		"######",
		"#...x#",
		"######",
	)

	sol, err := Solve(m, engine.Position{X: 1, Y: 1}, []engine.Position{{X: 2, Y: 1}}, Options{})
	if err != nil {
		t.Fatalf("Expected solution, got %v", err)
	}
	if len(sol.Moves) != 2 || sol.Pushes != 2 {
		t.Errorf("Expected two pushes right, got %v (%d pushes)", sol.Moves, sol.Pushes)
	}
	for _, d := range sol.Moves {
		if d != engine.Right {
			t.Errorf("Expected only right moves, got %v", sol.Moves)
		}
	}
}

func TestSolveTwoBoxes(t *testing.T) {
	m := buildMap(t,
		"#######",
		"#.....#",
		"#.x.x.#",
		"#.....#",
		"#.....#",
		"#######",
	)
	boxes := []engine.Position{{X: 2, Y: 2}, {X: 4, Y: 2}}

	sol, err := Solve(m, engine.Position{X: 1, Y: 1}, boxes, Options{})
	if err != nil {
		t.Fatalf("Expected solution, got %v", err)
	}
	if sol.Pushes != 2 {
		t.Errorf("Expected 2 pushes, got %d", sol.Pushes)
	}

	// replay on the grid
	player := engine.Position{X: 1, Y: 1}
	current := append([]engine.Position(nil), boxes...)
	for _, d := range sol.Moves {
		next := player.Add(d.Offset())
		for i := range current {
			if current[i] == next {
				current[i] = next.Add(d.Offset())
			}
		}
		player = next
	}
	for _, b := range current {
		if m.TileAt(b.X, b.Y) != engine.Target {
			t.Errorf("Box %v not on a target after replay", b)
		}
	}
}

func TestSolveErrors(t *testing.T) {
	m := buildMap(t,
		"#####",
		"#..x#",
		"#...#",
		"#####",
	)

	if _, err := Solve(m, engine.Position{X: 1, Y: 1}, nil, Options{}); !errors.Is(err, ErrUnsolvable) {
		t.Errorf("Expected ErrUnsolvable without boxes, got %v", err)
	}

	// box in the bottom-right corner never leaves it
	_, err := Solve(m, engine.Position{X: 1, Y: 1}, []engine.Position{{X: 3, Y: 1}}, Options{})
	if !errors.Is(err, ErrUnsolvable) {
		t.Errorf("Expected ErrUnsolvable for a cornered box, got %v", err)
	}

	// box reachable but the budget is too small
	wide := buildMap(t,
		"##########",
		"#........#",
		"#........#",
		"#.......x#",
		"##########",
	)
	_, err = Solve(wide, engine.Position{X: 1, Y: 1}, []engine.Position{{X: 2, Y: 2}}, Options{MaxStates: 5})
	if !errors.Is(err, ErrBudgetExceeded) {
		t.Errorf("Expected ErrBudgetExceeded, got %v", err)
	}
}

func TestSolveAlreadySolved(t *testing.T) {
	m := buildMap(t,
		"####",
		"#.x#",
		"####",
	)

	sol, err := Solve(m, engine.Position{X: 1, Y: 1}, []engine.Position{{X: 2, Y: 1}}, Options{})
	if err != nil {
		t.Fatalf("Expected solution, got %v", err)
	}
	if len(sol.Moves) != 0 {
		t.Errorf("Expected no moves, got %v", sol.Moves)
	}
}
