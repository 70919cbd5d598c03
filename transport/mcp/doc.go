// Package mcp exposes the Sokoban game to AI agents over the Model Context
// Protocol.
//
// The Client is a thin proxy: every tool call becomes a request against the
// REST API, and the response is rendered as text with an ASCII map.
//
// MCP Tools:
//   - create_session, list_sessions, get_session: session management
//   - list_levels, validate_level: level discovery and checking
//   - game_state: Current map, player tile and box placement
//   - move: Hold a direction for a duration in seconds
//   - step: Advance one frame with an input vector
//   - reset_game, next_level: Level control
//   - game_instructions: Rules and map legend
//
// Transport Modes:
//
// The same server runs behind stdio for local MCP clients or behind the /mcp
// HTTP endpoint of the game server.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	if err := server.ServeStdio(client.GetMCPServer()); err != nil {
//		log.Fatal(err)
//	}
package mcp
