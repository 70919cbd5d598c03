package level

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/wricardo/mcp-training/sokoban/game/engine"
)

func TestReadGrid(t *testing.T) {
	text := "1 1 1 1\n1 3 2 1\n\n1 0 4 1\n5 5 5 5\n"

	grid, err := ReadGrid(strings.NewReader(text), true)
	if err != nil {
		t.Fatalf("Failed to read grid: %v", err)
	}

	if grid.Cols() != 4 || grid.Lines() != 4 {
		t.Fatalf("Expected 4x4, got %dx%d", grid.Cols(), grid.Lines())
	}
	if grid.Rows[2][2] != engine.Target || grid.Rows[3][0] != engine.Blank {
		t.Errorf("Unexpected tiles %v", grid.Rows)
	}
	if grid.Rows[1][1] != engine.Floor || grid.Rows[1][2] != engine.Floor {
		t.Error("Start markers should decode to floor")
	}

	// file row 1 is grid row 2 in a 4-line map
	if grid.Player == nil || *grid.Player != (engine.Position{X: 1, Y: 2}) {
		t.Errorf("Expected player marker at (1,2), got %v", grid.Player)
	}
	if len(grid.Boxes) != 1 || grid.Boxes[0] != (engine.Position{X: 2, Y: 2}) {
		t.Errorf("Expected box marker at (2,2), got %v", grid.Boxes)
	}
}

func TestReadGridUnknownCode(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		line   int
		column int
	}{
		{"out of range code", "0 0\n0 9\n", 2, 2},
		{"not a number", "0 x\n0 0\n", 1, 2},
		{"negative", "-1 0\n", 1, 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ReadGrid(strings.NewReader(test.text), true)

			var codeErr *TileCodeError
			if !errors.As(err, &codeErr) {
				t.Fatalf("Expected TileCodeError, got %v", err)
			}
			if !errors.Is(err, ErrUnknownTileCode) {
				t.Error("TileCodeError should wrap ErrUnknownTileCode")
			}
			if codeErr.Line != test.line || codeErr.Column != test.column {
				t.Errorf("Expected line %d column %d, got %d %d", test.line, test.column, codeErr.Line, codeErr.Column)
			}
		})
	}
}

func TestReadGridRaggedRows(t *testing.T) {
	text := "1 1 1\n1 0\n1 1 1 1\n"

	_, err := ReadGrid(strings.NewReader(text), true)
	var rowErr *RowLengthError
	if !errors.As(err, &rowErr) {
		t.Fatalf("Expected RowLengthError in strict mode, got %v", err)
	}
	if rowErr.Line != 2 || rowErr.Want != 3 || rowErr.Got != 2 {
		t.Errorf("Unexpected error details %+v", rowErr)
	}

	grid, err := ReadGrid(strings.NewReader(text), false)
	if err != nil {
		t.Fatalf("Lenient mode should accept ragged rows, got %v", err)
	}
	for i, row := range grid.Rows {
		if len(row) != 3 {
			t.Errorf("Row %d should be fitted to 3 tiles, got %d", i, len(row))
		}
	}
	if grid.Rows[1][2] != engine.Blank {
		t.Errorf("Short row should be padded with blank, got %v", grid.Rows[1][2])
	}
}

func TestReadGridEmpty(t *testing.T) {
	_, err := ReadGrid(strings.NewReader("\n  \n"), true)
	if !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("Expected ErrEmptyGrid, got %v", err)
	}
}

func TestWriteGridRoundTrip(t *testing.T) {
	text := "1 1 1\n1 2 4\n5 3 0\n"

	grid, err := ReadGrid(strings.NewReader(text), true)
	if err != nil {
		t.Fatalf("Failed to read grid: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteGrid(&buf, grid.Rows); err != nil {
		t.Fatalf("Failed to write grid: %v", err)
	}
	if buf.String() != "1 1 1\n1 0 4\n5 0 0\n" {
		t.Errorf("Unexpected output %q", buf.String())
	}

	again, err := ReadGrid(&buf, true)
	if err != nil {
		t.Fatalf("Written grid does not parse: %v", err)
	}
	for y := range grid.Rows {
		for x := range grid.Rows[y] {
			if again.Rows[y][x] != grid.Rows[y][x] {
				t.Errorf("Tile (%d,%d) changed from %v to %v", x, y, grid.Rows[y][x], again.Rows[y][x])
			}
		}
	}
}

func TestAssetPaths(t *testing.T) {
	p := DefaultAssetPaths()

	tests := []struct {
		category Category
		name     string
		expected string
	}{
		{Sound, "guitar.mp3", "assets/guitar.mp3"},
		{Sprite, "wall.bmp", "assets/wall.bmp"},
		{MapFile, "0-tutorial.map", "assets/maps/0-tutorial.map"},
		{LevelFile, "0-tutorial.lvl", "assets/maps/0-tutorial.lvl"},
	}

	for _, test := range tests {
		got := p.Resolve(test.category, test.name)
		if got != test.expected {
			t.Errorf("Resolve(%q): expected %q, got %q", test.name, test.expected, got)
		}
		if back := p.RemovePrefix(test.category, got); back != test.name {
			t.Errorf("RemovePrefix(%q): expected %q, got %q", got, test.name, back)
		}
	}

	if p.Resolve(Sound, "") != "" {
		t.Error("Empty names should stay empty")
	}
	if got := p.RemovePrefix(Sprite, "elsewhere/wall.bmp"); got != "elsewhere/wall.bmp" {
		t.Errorf("Paths outside the prefix should be unchanged, got %q", got)
	}
}
