package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/wricardo/mcp-training/sokoban/game/config"
	"github.com/wricardo/mcp-training/sokoban/game/engine"
	"github.com/wricardo/mcp-training/sokoban/game/level"
)

// The camera shows this many tiles from the lower-left corner of the map
const (
	cameraWidth  = 20
	cameraHeight = 16

	tileWidth  = screenWidth / cameraWidth
	tileHeight = screenHeight / cameraHeight
)

var background = color.RGBA{20, 20, 30, 255}

// Game drives one engine per loaded level
type Game struct {
	levels *config.Manager
	music  *jukebox

	levelName  string
	engine     *engine.Engine
	diagnostic string

	lastUpdate time.Time
	frameTime  float64
}

func NewGame(levels *config.Manager, music *jukebox) *Game {
	return &Game{levels: levels, music: music}
}

// Load replaces the running level. A level that fails to load leaves a
// diagnostic on screen instead.
func (g *Game) Load(name string) {
	g.levelName = level.ID(name)
	g.engine = nil

	lvl, err := g.levels.LoadLevel(g.levelName)
	if err == nil {
		g.engine, err = engine.NewEngine(lvl.Map, lvl.Player, g.levels.EngineOptions())
	}
	if err != nil {
		log.Printf("Failed to load level %s: %v", g.levelName, err)
		g.diagnostic = fmt.Sprintf("Failed to load level %s:\n\n%v\n\nR: retry   Esc: quit", g.levelName, err)
		g.music.Stop()
		return
	}

	g.diagnostic = ""
	g.music.Play(lvl.Map.Music)
	log.Printf("Loaded level %s (%s)", g.levelName, lvl.Map.Name)
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	now := time.Now()
	if !g.lastUpdate.IsZero() {
		g.frameTime = now.Sub(g.lastUpdate).Seconds()
	}
	g.lastUpdate = now

	dt := 1.0 / float64(ebiten.TPS())
	g.music.Update(dt)

	if g.engine == nil {
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.Load(g.levelName)
		}
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.engine.Reset()
		return nil
	}

	if g.engine.IsComplete() {
		next := g.engine.Map().NextLevel
		if next != "" && (inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyN)) {
			g.Load(next)
		}
		return nil
	}

	result := g.engine.Step(float32(dt), readInput())
	if result.JustCompleted {
		log.Printf("Level %s complete after %d frames", g.levelName, g.engine.Frames())
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	if g.engine == nil {
		ebitenutil.DebugPrintAt(screen, g.diagnostic, 16, 16)
		return
	}

	m := g.engine.Map()
	g.drawMap(screen, m)
	for i := range m.Boxes {
		drawEntity(screen, &m.Boxes[i])
	}
	drawEntity(screen, g.engine.Player())

	g.drawHUD(screen)
}

func (g *Game) drawMap(screen *ebiten.Image, m *engine.Map) {
	for y := 0; y < min(m.NLines(), cameraHeight); y++ {
		for x := 0; x < min(m.NCols(), cameraWidth); x++ {
			var tex engine.Texture
			switch m.TileAt(x, y) {
			case engine.Floor:
				tex = m.Data.Floor
			case engine.Wall:
				tex = m.Data.Wall
			case engine.Target:
				tex = m.Data.Target
			default:
				continue
			}
			img := imageOf(tex)
			if img == nil {
				continue
			}

			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(float64(tileWidth)/float64(tex.Width), float64(tileHeight)/float64(tex.Height))
			op.GeoM.Translate(float64(x*tileWidth), float64(screenHeight-(y+1)*tileHeight))
			screen.DrawImage(img, op)
		}
	}
}

// drawEntity draws the current sprite frame into the entity's draw rectangle
func drawEntity(screen *ebiten.Image, e *engine.Entity) {
	img := imageOf(e.Sprite.Texture)
	if img == nil {
		return
	}

	frame := e.Sprite.Frame()
	src := img
	if frame.Width > 0 && frame.Height > 0 {
		src = img.SubImage(image.Rect(frame.X, frame.Y, frame.X+frame.Width, frame.Y+frame.Height)).(*ebiten.Image)
	}
	b := src.Bounds()

	r := e.DrawRect()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(
		float64(r.Width())*tileWidth/float64(b.Dx()),
		float64(r.Height())*tileHeight/float64(b.Dy()),
	)
	op.GeoM.Translate(float64(r.X0)*tileWidth, screenHeight-float64(r.Y1)*tileHeight)
	screen.DrawImage(src, op)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	state := g.engine.Snapshot()

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frame time: %.3f", g.frameTime), 16, 12)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  boxes %d/%d", state.LevelName, state.BoxesOnTarget, state.TotalBoxes), 16, 28)

	if !state.Complete {
		return
	}
	msg := "LEVEL COMPLETE! R: play again"
	if state.NextLevel != "" {
		msg = "LEVEL COMPLETE! Enter: next level   R: play again"
	}
	ebitenutil.DebugPrintAt(screen, msg, screenWidth/2-150, screenHeight/2)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
