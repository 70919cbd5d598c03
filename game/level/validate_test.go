package level

import (
	"errors"
	"strings"
	"testing"

	"github.com/wricardo/mcp-training/sokoban/game/engine"
)

func loadFixture(t *testing.T, lvl, grid string) *Level {
	t.Helper()
	opts := writeFixture(t, t.TempDir(), "fixture.lvl", lvl, "tutorial.map", grid)
	l, err := LoadFile("fixture.lvl", opts)
	if err != nil {
		t.Fatalf("Failed to load fixture: %v", err)
	}
	return l
}

func TestValidateTutorial(t *testing.T) {
	l := loadFixture(t, tutorialLevel, tutorialMap)

	report := Validate(l, ValidateOptions{Solve: true})
	if !report.Valid() {
		t.Fatalf("Expected valid level, got %v", report.Err())
	}
	if report.Boxes != 1 || report.Targets != 1 {
		t.Errorf("Unexpected counts boxes=%d targets=%d", report.Boxes, report.Targets)
	}
	if report.Solution == nil {
		t.Fatal("Expected a solution")
	}
	want := []engine.Direction{engine.Up, engine.Right}
	if len(report.Solution.Moves) != len(want) {
		t.Fatalf("Expected moves %v, got %v", want, report.Solution.Moves)
	}
	for i := range want {
		if report.Solution.Moves[i] != want[i] {
			t.Errorf("Move %d: expected %v, got %v", i, want[i], report.Solution.Moves[i])
		}
	}
}

func TestValidateProblems(t *testing.T) {
	tests := []struct {
		name    string
		lvl     string
		grid    string
		wantErr []error
	}{
		{
			name:    "player on wall",
			lvl:     strings.Replace(tutorialLevel, "(0, 2)", "(0, 0)", 1),
			grid:    tutorialMap,
			wantErr: []error{ErrSolidStart},
		},
		{
			name:    "duplicate boxes",
			lvl:     strings.Replace(tutorialLevel, "{(1, 1)}", "{(1, 1), (1, 1)}", 1),
			grid:    tutorialMap,
			wantErr: []error{ErrDuplicateBox, ErrNotEnoughTargets},
		},
		{
			name:    "sealed target",
			lvl:     tutorialLevel,
			grid:    "1 0 0\n0 0 1\n0 1 4\n",
			wantErr: []error{ErrUnreachable},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			l := loadFixture(t, test.lvl, test.grid)

			report := Validate(l, ValidateOptions{})
			if report.Valid() {
				t.Fatal("Expected problems")
			}
			for _, want := range test.wantErr {
				if !errors.Is(report.Err(), want) {
					t.Errorf("Expected %v among %v", want, report.Messages())
				}
			}
		})
	}
}

func TestValidateUnsolvable(t *testing.T) {
	// a box starting in a corner can never reach the target
	lvl := strings.Replace(tutorialLevel, "{(1, 1)}", "{(2, 2)}", 1)
	l := loadFixture(t, lvl, tutorialMap)

	report := Validate(l, ValidateOptions{Solve: true})
	if report.Valid() {
		t.Fatal("Expected the solver to reject the level")
	}
	if report.Solution != nil {
		t.Error("Unexpected solution")
	}
}
