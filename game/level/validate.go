package level

import (
	"errors"
	"fmt"

	"github.com/wricardo/mcp-training/sokoban/game/engine"
	"github.com/wricardo/mcp-training/sokoban/game/solver"
)

var (
	ErrSolidStart       = errors.New("start position is on a wall")
	ErrDuplicateBox     = errors.New("two boxes share a cell")
	ErrNotEnoughTargets = errors.New("fewer targets than boxes")
	ErrUnreachable      = errors.New("cell not reachable from the player")
)

// ValidateOptions enables the optional solver pass
type ValidateOptions struct {
	Solve     bool
	MaxStates int
}

// Report collects everything wrong with a level
type Report struct {
	Name     string           `json:"name"`
	Cols     int              `json:"cols"`
	Lines    int              `json:"lines"`
	Boxes    int              `json:"boxes"`
	Targets  int              `json:"targets"`
	Problems []error          `json:"-"`
	Solution *solver.Solution `json:"solution,omitempty"`
}

// Valid reports whether no problem was found
func (r *Report) Valid() bool {
	return len(r.Problems) == 0
}

// Err joins all problems, or returns nil
func (r *Report) Err() error {
	return errors.Join(r.Problems...)
}

// Messages returns the problems as strings
func (r *Report) Messages() []string {
	messages := make([]string, len(r.Problems))
	for i, p := range r.Problems {
		messages[i] = p.Error()
	}
	return messages
}

// Validate checks a loaded level for starts on walls, overlapping boxes,
// missing targets and cells the player cannot reach.
func Validate(l *Level, opts ValidateOptions) *Report {
	m := l.Map
	report := &Report{
		Name:    m.Name,
		Cols:    m.NCols(),
		Lines:   m.NLines(),
		Boxes:   len(m.Boxes),
		Targets: m.CountTiles(engine.Target),
	}
	problem := func(err error) {
		report.Problems = append(report.Problems, err)
	}

	player := l.Player.Tile()
	if m.IsSolidAt(player.X, player.Y) {
		problem(fmt.Errorf("player at %v: %w", player, ErrSolidStart))
	}

	boxes := make([]engine.Position, 0, len(m.Boxes))
	seen := make(map[engine.Position]bool)
	for i := range m.Boxes {
		pos := m.Boxes[i].Tile()
		if m.IsSolidAt(pos.X, pos.Y) {
			problem(fmt.Errorf("box %d at %v: %w", i, pos, ErrSolidStart))
		}
		if seen[pos] {
			problem(fmt.Errorf("box %d at %v: %w", i, pos, ErrDuplicateBox))
		}
		seen[pos] = true
		boxes = append(boxes, pos)
	}

	if report.Targets < report.Boxes {
		problem(fmt.Errorf("%w: %d targets for %d boxes", ErrNotEnoughTargets, report.Targets, report.Boxes))
	}

	reach := m.Reachable(player)
	for i, pos := range boxes {
		if !reach[pos] {
			problem(fmt.Errorf("box %d at %v: %w", i, pos, ErrUnreachable))
		}
	}
	for _, pos := range m.TilePositions(engine.Target) {
		if !reach[pos] {
			problem(fmt.Errorf("target at %v: %w", pos, ErrUnreachable))
		}
	}

	if opts.Solve && report.Valid() {
		sol, err := solver.Solve(m, player, boxes, solver.Options{MaxStates: opts.MaxStates})
		if err != nil {
			problem(err)
		} else {
			report.Solution = sol
		}
	}

	return report
}
