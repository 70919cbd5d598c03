// Package solver searches for push sequences that solve a level on the
// discrete grid: one step per move and boxes pushed one cell at a time.
package solver

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/wricardo/mcp-training/sokoban/game/engine"
)

var (
	ErrUnsolvable     = errors.New("level cannot be solved")
	ErrBudgetExceeded = errors.New("search budget exceeded")
)

// DefaultMaxStates bounds the breadth-first search
const DefaultMaxStates = 200000

type Options struct {
	MaxStates int
}

// Solution is a shortest sequence of moves, counted in steps
type Solution struct {
	Moves    []engine.Direction `json:"moves"`
	Pushes   int                `json:"pushes"`
	Explored int                `json:"explored"`
}

type state struct {
	player engine.Position
	boxes  []engine.Position // sorted
}

func (s state) key() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(s.player.X))
	b.WriteByte(',')
	b.WriteString(strconv.Itoa(s.player.Y))
	for _, p := range s.boxes {
		b.WriteByte(';')
		b.WriteString(strconv.Itoa(p.X))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(p.Y))
	}
	return b.String()
}

func (s state) boxAt(p engine.Position) int {
	for i, b := range s.boxes {
		if b == p {
			return i
		}
	}
	return -1
}

type node struct {
	state  state
	parent int
	move   engine.Direction
	pushed bool
}

func comparePositions(a, b engine.Position) int {
	if a.X != b.X {
		return a.X - b.X
	}
	return a.Y - b.Y
}

// Solve runs a breadth-first search from the player cell and box cells.
// Cells outside the map and walls block both the player and boxes.
func Solve(m *engine.Map, player engine.Position, boxes []engine.Position, opts Options) (*Solution, error) {
	if len(boxes) == 0 {
		return nil, ErrUnsolvable
	}
	maxStates := opts.MaxStates
	if maxStates <= 0 {
		maxStates = DefaultMaxStates
	}

	walkable := func(p engine.Position) bool {
		tile, ok := m.Lookup(p.X, p.Y)
		return ok && !tile.IsSolid()
	}
	dead := deadCells(m)

	start := state{player: player, boxes: slices.Clone(boxes)}
	slices.SortFunc(start.boxes, comparePositions)

	nodes := []node{{state: start, parent: -1}}
	visited := map[string]bool{start.key(): true}

	for head := 0; head < len(nodes); head++ {
		current := nodes[head].state
		if solved(m, current.boxes) {
			return path(nodes, head), nil
		}

		for _, d := range engine.Directions {
			next := current.player.Add(d.Offset())
			if !walkable(next) {
				continue
			}

			nextBoxes := current.boxes
			pushed := false
			if idx := current.boxAt(next); idx >= 0 {
				beyond := next.Add(d.Offset())
				if !walkable(beyond) || current.boxAt(beyond) >= 0 || dead[beyond] {
					continue
				}
				nextBoxes = slices.Clone(current.boxes)
				nextBoxes[idx] = beyond
				slices.SortFunc(nextBoxes, comparePositions)
				pushed = true
			}

			candidate := state{player: next, boxes: nextBoxes}
			key := candidate.key()
			if visited[key] {
				continue
			}
			if len(visited) >= maxStates {
				return nil, ErrBudgetExceeded
			}
			visited[key] = true
			nodes = append(nodes, node{state: candidate, parent: head, move: d, pushed: pushed})
		}
	}

	return nil, ErrUnsolvable
}

func solved(m *engine.Map, boxes []engine.Position) bool {
	for _, b := range boxes {
		tile, ok := m.Lookup(b.X, b.Y)
		if !ok || tile != engine.Target {
			return false
		}
	}
	return true
}

func path(nodes []node, end int) *Solution {
	sol := &Solution{Explored: len(nodes)}
	for i := end; nodes[i].parent >= 0; i = nodes[i].parent {
		sol.Moves = append(sol.Moves, nodes[i].move)
		if nodes[i].pushed {
			sol.Pushes++
		}
	}
	slices.Reverse(sol.Moves)
	return sol
}

// deadCells marks non-target corners: a box pushed there can never leave
func deadCells(m *engine.Map) map[engine.Position]bool {
	blocked := func(x, y int) bool {
		tile, ok := m.Lookup(x, y)
		return !ok || tile.IsSolid()
	}

	dead := make(map[engine.Position]bool)
	for y := 0; y < m.NLines(); y++ {
		for x := 0; x < m.NCols(); x++ {
			tile := m.TileAt(x, y)
			if tile.IsSolid() || tile == engine.Target {
				continue
			}
			vertical := blocked(x, y+1) || blocked(x, y-1)
			horizontal := blocked(x-1, y) || blocked(x+1, y)
			if vertical && horizontal {
				dead[engine.Position{X: x, Y: y}] = true
			}
		}
	}
	return dead
}
