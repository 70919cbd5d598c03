package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/wricardo/mcp-training/sokoban/game/geom"
)

// Stick values inside this band read as zero
const deadZone = 10000.0 / 32768.0

// readInput returns the movement direction for this frame. The gamepad
// wins whenever its left stick is outside the dead zone.
func readInput() geom.Vector2 {
	if stick := gamepadInput(); !stick.IsZero() {
		return stick.Normalized()
	}
	return keyboardInput().Normalized()
}

func keyboardInput() geom.Vector2 {
	var v geom.Vector2
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		v.Y += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		v.Y -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		v.X -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		v.X += 1
	}
	return v
}

func gamepadInput() geom.Vector2 {
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		// Screen y grows downwards
		y := -ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		return geom.Vec(axis(x), axis(y))
	}
	return geom.Vector2{}
}

func axis(v float64) float32 {
	if v > -deadZone && v < deadZone {
		return 0
	}
	return float32(v)
}
