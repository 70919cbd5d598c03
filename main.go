// Command sokoban runs the Sokoban game server and its level tools.
//
// Subcommands:
//  1. "serve" (default) – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//  3. "validate" – checks level files, optionally solving them
//  4. "export" – writes a loaded level back out as .lvl and .map text
//
// Flags control host/port, the settings file, debug logging, and optional
// ngrok tunneling for easy external access during development.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/sokoban/game/config"
	"github.com/wricardo/mcp-training/sokoban/game/level"
	"github.com/wricardo/mcp-training/sokoban/game/service"
	"github.com/wricardo/mcp-training/sokoban/game/session"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Sokoban Server"
)

const (
	defaultPort     = 8080
	defaultHost     = "localhost"
	defaultSettings = "sokoban.yaml"

	sessionCleanupInterval = 1 * time.Hour
	sessionMaxAge          = 24 * time.Hour
)

// app holds the wired services shared by every subcommand
type app struct {
	settings *config.Settings
	levels   *config.Manager
	sessions *session.Manager
	game     service.GameService
}

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	if err := newRootCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatalf("%v", err)
	}
}

// newRootCommand builds the command tree. Flags are global so every
// subcommand sees them. Running without a subcommand serves.
func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:    "sokoban",
		Usage:   AppName,
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "settings",
				Value:   defaultSettings,
				Usage:   "YAML settings file (built-in defaults when missing)",
				Sources: cli.EnvVars("SOKOBAN_SETTINGS"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.StringFlag{
				Name:    "host",
				Value:   defaultHost,
				Usage:   "HTTP server host",
				Sources: cli.EnvVars("SOKOBAN_HOST", "HOST"),
			},
			&cli.IntFlag{
				Name:    "port",
				Value:   defaultPort,
				Usage:   "HTTP server port",
				Sources: cli.EnvVars("SOKOBAN_PORT", "PORT"),
			},
			&cli.BoolFlag{
				Name:    "ngrok",
				Usage:   "Enable ngrok tunnel",
				Sources: cli.EnvVars("NGROK_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "ngrok-auth",
				Usage:   "Ngrok auth token",
				Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "ngrok-domain",
				Usage:   "Custom ngrok domain (optional)",
				Sources: cli.EnvVars("NGROK_DOMAIN"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				log.SetFlags(log.LstdFlags | log.Lshortfile)
			} else {
				log.SetFlags(log.LstdFlags)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run HTTP server with API, WebSocket, and MCP endpoint",
				Action: runServe,
			},
			{
				Name:    "mcp",
				Aliases: []string{"stdio-mcp", "mcp-stdio"},
				Usage:   "Run MCP stdio server, reusing the API on --host/--port or starting an internal one",
				Action:  runStdioMCP,
			},
			newValidateCommand(),
			newExportCommand(),
		},
		Action: runServe,
	}
}

// loadApp reads the settings named by --settings and wires the services
func loadApp(cmd *cli.Command) (*app, error) {
	settings, err := config.LoadSettingsOrDefault(cmd.String("settings"))
	if err != nil {
		return nil, err
	}
	return initializeServices(settings)
}

// initializeServices wires the session and level managers into the game service
func initializeServices(settings *config.Settings) (*app, error) {
	levels, err := config.NewManager(settings, level.HeadlessLoader{})
	if err != nil {
		return nil, fmt.Errorf("failed to create level manager: %w", err)
	}

	sessions := session.NewManager()

	return &app{
		settings: settings,
		levels:   levels,
		sessions: sessions,
		game:     service.NewGameService(sessions, levels),
	}, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been accessed
// within maxAge, until ctx is cancelled.
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := manager.CleanupExpiredSessions(maxAge)
			if removed > 0 {
				log.Printf("Cleaned up %d expired sessions", removed)
			}
		}
	}
}
