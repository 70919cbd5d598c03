// Package service provides the business logic layer for the Sokoban game.
//
// The service package implements:
//   - Multi-session game management
//   - Frame stepping and held-direction moves
//   - Level progression, export and validation
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// LevelManager loads levels and hands out copies a session may mutate.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Each session owns its own level copy and engine instance,
// so pushing a box in one session never shows up in another.
//
// Usage:
//
//	settings, _ := config.LoadSettingsOrDefault("sokoban.yaml")
//	levels, _ := config.NewManager(settings, level.HeadlessLoader{})
//	gameService := service.NewGameService(session.NewManager(), levels)
//
//	info, err := gameService.CreateSession(ctx, "0-tutorial")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Hold right for a quarter second
//	result, err := gameService.Move(ctx, info.ID, "right", 0.25)
//
// Remote clients without a frame clock use Move; clients that render their own
// frames call Step with their frame delta.
package service
