package level

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/wricardo/mcp-training/sokoban/game/engine"
)

// Grid is a decoded .map file. Rows are in file order, top row first.
// Player and box markers are already converted to bottom-up coordinates.
type Grid struct {
	Rows   [][]engine.TileType
	Player *engine.Position
	Boxes  []engine.Position
}

// Cols returns the row length
func (g *Grid) Cols() int {
	if len(g.Rows) == 0 {
		return 0
	}
	return len(g.Rows[0])
}

// Lines returns the number of rows
func (g *Grid) Lines() int {
	return len(g.Rows)
}

type marker struct {
	code     int
	col, row int
}

// ReadGridFile opens and decodes a .map file
func ReadGridFile(path string, strict bool) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open tile map: %w", err)
	}
	defer f.Close()

	grid, err := ReadGrid(f, strict)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return grid, nil
}

// ReadGrid decodes whitespace-separated tile codes, one row per non-empty
// line. With strict set a row whose length differs from the first row is an
// error; otherwise the mismatch is logged and the row is padded with Blank
// tiles or truncated.
func ReadGrid(r io.Reader, strict bool) (*Grid, error) {
	grid := &Grid{}
	var markers []marker

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			continue
		}

		rowIndex := len(grid.Rows)
		row := make([]engine.TileType, 0, len(tokens))
		for i, token := range tokens {
			code, err := strconv.Atoi(token)
			tile, ok := engine.TileTypeFromCode(code)
			if err != nil || !ok {
				return nil, &TileCodeError{Line: lineNo, Column: i + 1, Token: token}
			}
			row = append(row, tile)

			if code == engine.CodeBoxStart || code == engine.CodePlayerStart {
				markers = append(markers, marker{code: code, col: i, row: rowIndex})
			}
		}

		if rowIndex > 0 && len(row) != grid.Cols() {
			if strict {
				return nil, &RowLengthError{Line: lineNo, Want: grid.Cols(), Got: len(row)}
			}
			log.Printf("level: line %d: expected %d tiles, got %d", lineNo, grid.Cols(), len(row))
			row = fitRow(row, grid.Cols())
		}
		grid.Rows = append(grid.Rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tile map: %w", err)
	}
	if len(grid.Rows) == 0 {
		return nil, ErrEmptyGrid
	}

	nLines := grid.Lines()
	for _, mk := range markers {
		if mk.col >= grid.Cols() {
			continue
		}
		pos := engine.Position{X: mk.col, Y: engine.FlipRow(mk.row, nLines)}
		switch mk.code {
		case engine.CodeBoxStart:
			grid.Boxes = append(grid.Boxes, pos)
		case engine.CodePlayerStart:
			if grid.Player != nil {
				log.Printf("level: more than one player marker, keeping %v", *grid.Player)
				continue
			}
			grid.Player = &pos
		}
	}

	return grid, nil
}

func fitRow(row []engine.TileType, cols int) []engine.TileType {
	if len(row) > cols {
		return row[:cols]
	}
	for len(row) < cols {
		row = append(row, engine.Blank)
	}
	return row
}

// WriteGrid writes rows top-down as .map text
func WriteGrid(w io.Writer, rows [][]engine.TileType) error {
	bw := bufio.NewWriter(w)
	for _, row := range rows {
		for x, tile := range row {
			if x > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.Itoa(tile.Code()))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
