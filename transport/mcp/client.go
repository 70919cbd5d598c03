package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/mcp-training/sokoban/game/engine"
	"github.com/wricardo/mcp-training/sokoban/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Sokoban",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Sokoban - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Push every box onto a target. Boxes can only be pushed, never pulled.

AVAILABLE TOOLS:
- create_session: Start a level (defaults to the first one)
- list_sessions / get_session: Inspect running sessions
- list_levels: List playable levels
- game_state: Current map with player and boxes
- move: Hold a direction for a duration (seconds)
- step: Advance a single frame with an input vector
- reset_game: Put every box back where it started
- next_level: Continue once the level is complete
- validate_level: Check a level and optionally solve it
- game_instructions: Rules and map legend

NOTE: The 'intent' parameter on move serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

func sessionSchema(extra map[string]interface{}, required ...string) mcp.ToolInputSchema {
	props := map[string]interface{}{
		"session_id": map[string]interface{}{
			"type":        "string",
			"description": "Session ID",
		},
	}
	for k, v := range extra {
		props[k] = v
	}
	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: props,
		Required:   append([]string{"session_id"}, required...),
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session on a level",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"level": map[string]interface{}{
					"type":        "string",
					"description": "Level identifier, e.g. 0-tutorial (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: sessionSchema(nil),
	}, c.handleGetSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_levels",
		Description: "List available levels",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListLevels)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state",
		InputSchema: sessionSchema(nil),
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Hold a direction for a duration, then release it",
		InputSchema: sessionSchema(map[string]interface{}{
			"direction": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"up", "down", "left", "right"},
				"description": "Direction to move",
			},
			"duration": map[string]interface{}{
				"type":        "number",
				"description": "Seconds to hold the direction, max 5. Omit to move exactly one tile",
			},
			"intent": map[string]interface{}{
				"type":        "string",
				"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
			},
		}, "direction"),
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "step",
		Description: "Advance the simulation by one frame",
		InputSchema: sessionSchema(map[string]interface{}{
			"dt": map[string]interface{}{
				"type":        "number",
				"description": "Frame duration in seconds (default 1/60)",
			},
			"x": map[string]interface{}{
				"type":        "number",
				"description": "Horizontal input, -1 left to 1 right",
			},
			"y": map[string]interface{}{
				"type":        "number",
				"description": "Vertical input, -1 down to 1 up",
			},
		}),
	}, c.handleStep)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the level to its initial state",
		InputSchema: sessionSchema(nil),
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "next_level",
		Description: "Load the next level after completing the current one",
		InputSchema: sessionSchema(nil),
	}, c.handleNextLevel)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "validate_level",
		Description: "Validate a level and optionally search for a solution",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"level": map[string]interface{}{
					"type":        "string",
					"description": "Level identifier",
				},
				"solve": map[string]interface{}{
					"type":        "boolean",
					"description": "Also search for a solution",
				},
			},
			Required: []string{"level"},
		},
	}, c.handleValidateLevel)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

func sessionPath(args map[string]interface{}, suffix string) (string, error) {
	sessionID, _ := args["session_id"].(string)
	if sessionID == "" {
		return "", fmt.Errorf("session_id is required")
	}
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix, nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	levelName, _ := args["level"].(string)

	body := map[string]string{}
	if levelName != "" {
		body["level"] = levelName
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nLevel: %s\n\n%s", session.ID, session.LevelID, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}
	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		fmt.Fprintf(&b, "- %s (Level: %s, Created: %s)\n", s.ID, s.LevelID, s.CreatedAt.Format("15:04:05"))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", path, nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleListLevels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var levels []service.LevelInfo
	if err := c.apiCall(ctx, "GET", "/api/levels", nil, &levels); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Levels:\n\n")
	for _, l := range levels {
		fmt.Fprintf(&b, "• %s - %s\n  Grid: %dx%d, Boxes: %d, Targets: %d\n", l.LevelID, l.Name, l.Cols, l.Lines, l.Boxes, l.Targets)
		if l.NextLevel != "" {
			fmt.Fprintf(&b, "  Next: %s\n", l.NextLevel)
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/state")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", path, nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/move")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	direction, _ := args["direction"].(string)
	duration, _ := args["duration"].(float64)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = args["intent"]

	body := map[string]interface{}{
		"direction": direction,
		"duration":  duration,
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", path, body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleStep(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	path, err := sessionPath(args, "/step")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	dt, _ := args["dt"].(float64)
	x, _ := args["x"].(float64)
	y, _ := args["y"].(float64)
	body := service.StepRequest{DT: float32(dt), X: float32(x), Y: float32(y)}

	var result service.StepResult
	if err := c.apiCall(ctx, "POST", path, body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	r := result.Result
	summary := fmt.Sprintf("Frame advanced. Movement: (%.3f, %.3f)", r.Movement.X, r.Movement.Y)
	if r.Blocked {
		summary += " BLOCKED"
	}
	if r.PushedBox >= 0 {
		summary += fmt.Sprintf(" pushed box %d", r.PushedBox)
	}
	return mcp.NewToolResultText(summary + "\n\n" + formatGameState(result.GameState)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/reset")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}
	if err := c.apiCall(ctx, "POST", path, nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleNextLevel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(arguments(request), "/next")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", path, nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Advanced to next level\n\n" + formatSessionInfo(&session)), nil
}

func (c *Client) handleValidateLevel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	levelName, _ := args["level"].(string)
	if levelName == "" {
		return mcp.NewToolResultError("level is required"), nil
	}
	solve, _ := args["solve"].(bool)

	path := fmt.Sprintf("/api/levels/%s/validate?solve=%t", url.PathEscape(levelName), solve)
	var result service.ValidationResult
	if err := c.apiCall(ctx, "GET", path, nil, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatValidation(&result)), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

const instructions = `Sokoban - Complete Instructions

GAME OBJECTIVE:
Push every box onto a target tile. The level is complete the moment all
boxes rest on targets.

MAP LEGEND:
• @ - Player
• + - Player standing on a target
• B - Box
• * - Box on a target
• x - Target
• . - Floor
• # - Wall
• (space) - Blank, outside the playable area

COORDINATES:
Tile (0,0) is the bottom-left corner of the map. x grows to the right and
y grows upward, so "up" increases y. The map is printed top row first.

MOVEMENT:
• Movement is continuous. The player accelerates while a direction is held
  and stops as soon as it is released.
• move holds a direction for "duration" seconds. Without a duration it
  moves exactly one tile, or stops when blocked.
• step advances exactly one frame for fine positioning.
• A movement that would overlap a wall is rejected for that frame.

PUSHING:
• Walking into a box pushes it in the same direction.
• A box that would hit a wall does not move.
• Boxes cannot be pulled. A box pushed into a corner that is not a target
  can never be recovered; use reset_game.

LEVELS:
• list_levels shows every level with its box and target counts.
• After completing a level, next_level continues with the following one.
• validate_level with solve=true returns a push sequence that solves it.

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has a unique 4-character ID
- Sessions are independent and live only while the server runs`

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nLevel: %s\nCreated: %s\nLast accessed: %s\n\n%s",
		session.ID, session.LevelID,
		session.CreatedAt.Format(time.RFC3339), session.LastAccessedAt.Format(time.RFC3339),
		formatGameState(session.GameState))
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Level: %s\n", state.LevelName)
	fmt.Fprintf(&b, "Player tile: (%d,%d)\n", state.Player.Tile.X, state.Player.Tile.Y)
	fmt.Fprintf(&b, "Boxes on target: %d/%d\n", state.BoxesOnTarget, state.TotalBoxes)
	for i, box := range state.Boxes {
		mark := ""
		if box.OnTarget {
			mark = " (on target)"
		}
		fmt.Fprintf(&b, "  box %d at (%d,%d)%s\n", i, box.Tile.X, box.Tile.Y, mark)
	}
	if state.Complete {
		b.WriteString("🎉 LEVEL COMPLETE!")
		if state.NextLevel != "" {
			fmt.Fprintf(&b, " Next level: %s", state.NextLevel)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(renderMap(state))
	return b.String()
}

// renderMap draws the tiles top row first with the player and boxes overlaid
func renderMap(state *engine.GameState) string {
	if len(state.Tiles) == 0 {
		return ""
	}

	boxes := make(map[engine.Position]bool, len(state.Boxes))
	for _, box := range state.Boxes {
		boxes[box.Tile] = true
	}

	var b strings.Builder
	for y := len(state.Tiles) - 1; y >= 0; y-- {
		for x, tile := range state.Tiles[y] {
			pos := engine.Position{X: x, Y: y}
			target := tile == engine.Target
			switch {
			case pos == state.Player.Tile && target:
				b.WriteByte('+')
			case pos == state.Player.Tile:
				b.WriteByte('@')
			case boxes[pos] && target:
				b.WriteByte('*')
			case boxes[pos]:
				b.WriteByte('B')
			default:
				b.WriteByte(tileChar(tile))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func tileChar(t engine.TileType) byte {
	switch t {
	case engine.Wall:
		return '#'
	case engine.Target:
		return 'x'
	case engine.Blank:
		return ' '
	default:
		return '.'
	}
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder

	switch {
	case result.Frames > 0 && result.BlockedFrames == result.Frames:
		fmt.Fprintf(&b, "✗ Blocked moving %s\n", result.Direction)
	default:
		fmt.Fprintf(&b, "✓ Moved %s\n", result.Direction)
	}
	fmt.Fprintf(&b, "Tile: (%d,%d) -> (%d,%d)\n", result.StartTile.X, result.StartTile.Y, result.EndTile.X, result.EndTile.Y)
	fmt.Fprintf(&b, "Frames: %d (blocked %d), push frames: %d\n", result.Frames, result.BlockedFrames, result.Pushes)

	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		for _, ev := range result.Events {
			fmt.Fprintf(&b, "  - %s: %s\n", ev.Type, ev.Message)
		}
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatValidation(result *service.ValidationResult) string {
	var b strings.Builder
	if result.Valid {
		fmt.Fprintf(&b, "✓ Level %s is valid\n", result.LevelID)
	} else {
		fmt.Fprintf(&b, "✗ Level %s has problems:\n", result.LevelID)
		for _, p := range result.Problems {
			fmt.Fprintf(&b, "  - %s\n", p)
		}
	}
	if len(result.Moves) > 0 {
		moves := make([]string, len(result.Moves))
		for i, m := range result.Moves {
			moves[i] = string(m)
		}
		fmt.Fprintf(&b, "Solution (%d moves, %d pushes): %s\n", len(moves), result.Pushes, strings.Join(moves, " "))
	}
	return b.String()
}
