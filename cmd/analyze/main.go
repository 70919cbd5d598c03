// Command analyze prints quick, human-readable heuristics about the levels in
// a maps directory. It summarizes dimensions, counts of boxes and targets,
// the cells the player can reach, and highlights boxes that start in dead
// corners or that no target can be reached from.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/wricardo/mcp-training/sokoban/game/engine"
	"github.com/wricardo/mcp-training/sokoban/game/level"
)

// LevelStats is a summary of one loaded level
type LevelStats struct {
	Name          string
	Cols, Lines   int
	OpenCells     int
	Reachable     int
	Boxes         int
	Targets       int
	BoxesOnTarget int
	// PushLowerBound sums, per box, the Manhattan distance to its nearest target
	PushLowerBound int
	DeadCorners    []engine.Position
	BoxesInCorners []engine.Position
	Unreachable    []engine.Position
}

func main() {
	dir := level.DefaultMapsDir
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*"+level.LevelExt))
	if err != nil || len(paths) == 0 {
		fmt.Printf("No levels found in %s\n", dir)
		os.Exit(1)
	}
	sort.Strings(paths)

	opts := level.DefaultOptions()
	opts.Paths.MapsDir = dir
	opts.Paths.AssetsDir = filepath.Dir(dir)

	for _, path := range paths {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(path))
		l, err := level.LoadFile(path, opts)
		if err != nil {
			fmt.Printf("Error loading level: %v\n", err)
			continue
		}
		printStats(os.Stdout, analyzeLevel(l))
	}
}

func analyzeLevel(l *level.Level) LevelStats {
	m := l.Map
	stats := LevelStats{
		Name:    m.Name,
		Cols:    m.NCols(),
		Lines:   m.NLines(),
		Boxes:   len(m.Boxes),
		Targets: m.CountTiles(engine.Target),
	}

	targets := m.TilePositions(engine.Target)
	reach := m.Reachable(l.Player.Tile())
	stats.Reachable = len(reach)

	for y := 0; y < m.NLines(); y++ {
		for x := 0; x < m.NCols(); x++ {
			if m.IsSolidAt(x, y) {
				continue
			}
			stats.OpenCells++
			if m.TileAt(x, y) != engine.Target && isCorner(m, x, y) {
				stats.DeadCorners = append(stats.DeadCorners, engine.Position{X: x, Y: y})
			}
		}
	}

	dead := make(map[engine.Position]bool, len(stats.DeadCorners))
	for _, p := range stats.DeadCorners {
		dead[p] = true
	}

	for i := range m.Boxes {
		box := m.Boxes[i].Tile()
		if engine.IsOnTarget(m, &m.Boxes[i]) {
			stats.BoxesOnTarget++
		}
		if dead[box] {
			stats.BoxesInCorners = append(stats.BoxesInCorners, box)
		}
		if !reach[box] {
			stats.Unreachable = append(stats.Unreachable, box)
		}

		nearest := -1
		for _, t := range targets {
			if d := engine.ManhattanDistance(box, t); nearest < 0 || d < nearest {
				nearest = d
			}
		}
		if nearest > 0 {
			stats.PushLowerBound += nearest
		}
	}

	return stats
}

// isCorner reports whether (x, y) has a solid neighbour on both a vertical
// and a horizontal side. A box pushed there can never leave.
func isCorner(m *engine.Map, x, y int) bool {
	solid := func(d engine.Direction) bool {
		t, ok := m.Neighbor(x, y, d)
		return !ok || t.IsSolid()
	}
	return (solid(engine.Up) || solid(engine.Down)) && (solid(engine.Left) || solid(engine.Right))
}

func printStats(w io.Writer, s LevelStats) {
	fmt.Fprintf(w, "Name: %s\n", s.Name)
	fmt.Fprintf(w, "Grid Size: %d x %d\n", s.Cols, s.Lines)
	fmt.Fprintf(w, "Open Cells: %d (%d reachable)\n", s.OpenCells, s.Reachable)
	fmt.Fprintf(w, "Boxes: %d (%d on target)\n", s.Boxes, s.BoxesOnTarget)
	fmt.Fprintf(w, "Targets: %d\n", s.Targets)
	fmt.Fprintf(w, "Push Lower Bound: %d\n", s.PushLowerBound)

	if s.Targets < s.Boxes {
		fmt.Fprintf(w, "⚠️  CRITICAL: %d boxes but only %d targets!\n", s.Boxes, s.Targets)
	}

	if len(s.BoxesInCorners) > 0 {
		fmt.Fprintf(w, "⚠️  CRITICAL: %d boxes start in dead corners!\n", len(s.BoxesInCorners))
		for _, p := range s.BoxesInCorners {
			fmt.Fprintf(w, "   Stuck box: (%d, %d)\n", p.X, p.Y)
		}
	}

	if len(s.Unreachable) > 0 {
		fmt.Fprintf(w, "⚠️  WARNING: %d boxes are unreachable from the player!\n", len(s.Unreachable))
		for i, p := range s.Unreachable {
			if i < 5 {
				fmt.Fprintf(w, "   Unreachable: (%d, %d)\n", p.X, p.Y)
			}
		}
		if len(s.Unreachable) > 5 {
			fmt.Fprintf(w, "   ... and %d more\n", len(s.Unreachable)-5)
		}
	}

	if len(s.BoxesInCorners) == 0 && len(s.Unreachable) == 0 && s.Targets >= s.Boxes {
		fmt.Fprintf(w, "✅ Every box is reachable and movable (%d dead corners)\n", len(s.DeadCorners))
	}
}
