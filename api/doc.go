// Package api provides HTTP REST API handlers for the Sokoban game.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session, body {"level": "0-tutorial"}
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current game state
//   - POST /api/sessions/{id}/step - One frame, body {"dt": 0.016, "x": 1, "y": 0}
//   - POST /api/sessions/{id}/move - Hold a direction, body {"direction": "up", "duration": 0.5}
//   - POST /api/sessions/{id}/reset - Restore the level's initial placement
//   - POST /api/sessions/{id}/next - Load the next level once complete
//   - GET /api/sessions/{id}/export - Live map as .lvl and .map text
//
// Levels:
//   - GET /api/levels - List levels
//   - GET /api/levels/{name} - Level description, tiles and entities
//   - GET /api/levels/{name}/validate - Validate (?solve=true runs the solver)
//
// Other:
//   - GET /api/health
//   - GET /ws?session={id} - Live state updates
//
// Grid coordinates in responses put row 0 at the bottom of the map and grow
// upward, the opposite of the row order in .map files.
//
// Error Handling:
//
// Errors are returned as JSON with an HTTP status derived from the error:
//
//	{"error": "session zzzz: session not found"}
//
// 404 for unknown sessions and levels, 400 for bad input, 409 when a level
// transition is not possible yet and 422 for levels that fail to load.
package api
