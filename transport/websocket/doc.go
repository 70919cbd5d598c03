// Package websocket pushes live game state to browser viewers.
//
// A central Hub tracks the clients watching each session. Every client gets a
// read and a write goroutine; the hub loop is the only writer of the session
// map.
//
// Message Protocol:
//
// Outgoing messages are JSON objects:
//
//	{"session_id": "ab12", "event": "state_update", "game_state": {...}}
//	{"session_id": "ab12", "event": "level_complete", "data": "Tutorial"}
//
// Clients pick their session with the ?session= query parameter when they
// connect. Session IDs match case-insensitively. Anything a client sends is
// discarded; moves go through the REST API.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	hub.BroadcastToSession(sessionID, state)
package websocket
