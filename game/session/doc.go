// Package session keeps the play sessions of a running server.
//
// A session owns a private copy of a level and the engine stepping it, so
// pushes in one session never show up in another. Sessions live in memory
// and disappear with the process; there is no save/load.
//
// Identifiers are matched case-insensitively. An empty identifier asks the
// manager for a fresh 4-character hex one. Identifiers may not contain
// spaces, tabs, newlines or slashes since they appear in URL paths.
//
// Manager is safe for concurrent use. It guards the session index only; a
// session's engine is single-threaded and its callers serialise steps.
//
//	manager := session.NewManager()
//	lvl, err := levels.LoadLevel("0-tutorial")
//	if err != nil {
//		log.Fatal(err)
//	}
//	sess, err := manager.Create("", "0-tutorial", lvl, engine.DefaultOptions())
//
// Idle sessions are dropped with CleanupExpiredSessions, which the server
// calls from a ticker.
package session
