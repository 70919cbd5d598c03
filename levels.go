package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/sokoban/game/level"
	"github.com/wricardo/mcp-training/sokoban/game/solver"
)

func newValidateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Check level files (all levels when none are named)",
		ArgsUsage: "[level...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "solve",
				Usage: "Also search for a solution",
			},
			&cli.IntFlag{
				Name:  "max-states",
				Value: solver.DefaultMaxStates,
				Usage: "Solver search budget",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			names := cmd.Args().Slice()
			if len(names) == 0 {
				infos, err := a.levels.ListLevels()
				if err != nil {
					return err
				}
				for _, info := range infos {
					names = append(names, info.LevelID)
				}
			}
			if len(names) == 0 {
				return fmt.Errorf("no levels found in %s", a.settings.MapsDir)
			}

			opts := level.ValidateOptions{
				Solve:     cmd.Bool("solve"),
				MaxStates: int(cmd.Int("max-states")),
			}
			failed := validateLevels(cmd.Root().Writer, a, names, opts)
			if failed > 0 {
				return cli.Exit(fmt.Sprintf("%d of %d levels failed validation", failed, len(names)), 1)
			}
			return nil
		},
	}
}

// validateLevels prints one report per level and returns how many failed
func validateLevels(w io.Writer, a *app, names []string, opts level.ValidateOptions) int {
	failed := 0
	for _, name := range names {
		lvl, err := a.levels.LoadLevel(name)
		if err != nil {
			fmt.Fprintf(w, "✗ %s: %v\n", name, err)
			failed++
			continue
		}

		report := level.Validate(lvl, opts)
		if !report.Valid() {
			fmt.Fprintf(w, "✗ %s (%s)\n", level.ID(name), report.Name)
			for _, msg := range report.Messages() {
				fmt.Fprintf(w, "   %s\n", msg)
			}
			failed++
			continue
		}

		fmt.Fprintf(w, "✓ %s (%s) %dx%d, %d boxes, %d targets\n",
			level.ID(name), report.Name, report.Cols, report.Lines, report.Boxes, report.Targets)
		if report.Solution != nil {
			moves := make([]string, len(report.Solution.Moves))
			for i, d := range report.Solution.Moves {
				moves[i] = string(d)
			}
			fmt.Fprintf(w, "   solution (%d moves, %d pushes): %s\n",
				len(moves), report.Solution.Pushes, strings.Join(moves, " "))
		}
	}
	return failed
}

func newExportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Write a level back out as .lvl and .map text",
		ArgsUsage: "<level>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "out",
				Value: ".",
				Usage: "Output directory",
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: "Base name of the written files (default <level>-export)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return cli.Exit("export takes exactly one level", 2)
			}
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}

			id := level.ID(cmd.Args().First())
			base := cmd.String("name")
			if base == "" {
				base = id + "-export"
			}

			lvlPath, mapPath, err := exportLevel(a, id, cmd.String("out"), base)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.Root().Writer, "Wrote %s and %s\n", lvlPath, mapPath)
			return nil
		},
	}
}

// exportLevel loads id and writes dir/base.lvl and dir/base.map
func exportLevel(a *app, id, dir, base string) (string, string, error) {
	lvl, err := a.levels.LoadLevel(id)
	if err != nil {
		return "", "", err
	}

	mapName := base + level.MapExt
	var lvlText, mapText bytes.Buffer
	if err := level.Export(&lvlText, &mapText, lvl.Map, &lvl.Player, mapName, a.levels.AssetPaths()); err != nil {
		return "", "", fmt.Errorf("failed to export %s: %w", id, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}
	lvlPath := filepath.Join(dir, base+level.LevelExt)
	mapPath := filepath.Join(dir, mapName)
	if err := os.WriteFile(lvlPath, lvlText.Bytes(), 0o644); err != nil {
		return "", "", err
	}
	if err := os.WriteFile(mapPath, mapText.Bytes(), 0o644); err != nil {
		return "", "", err
	}
	return lvlPath, mapPath, nil
}
