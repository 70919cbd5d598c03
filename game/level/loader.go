package level

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/wricardo/mcp-training/sokoban/game/engine"
)

const (
	DefaultPlayerSprite = "player.bmp"
	DefaultBoxSprite    = "box.bmp"
)

// Options controls how a description becomes a playable level
type Options struct {
	Paths    AssetPaths
	Textures TextureLoader

	// StrictGrid rejects tile maps with rows of different lengths
	StrictGrid bool

	// PlayerSprite is used when the level does not name one
	PlayerSprite string
	PlayerHeight float32
	PlayerBody   engine.Body
	BoxBody      engine.Body
}

// DefaultOptions loads from assets/ with headless textures and a strict grid
func DefaultOptions() Options {
	return Options{
		Paths:        DefaultAssetPaths(),
		Textures:     HeadlessLoader{},
		StrictGrid:   true,
		PlayerSprite: DefaultPlayerSprite,
		PlayerHeight: engine.DefaultPlayerHeight,
		PlayerBody:   engine.DefaultPlayerBody(),
		BoxBody:      engine.DefaultBoxBody(),
	}
}

func (o Options) withDefaults() Options {
	if o.Textures == nil {
		o.Textures = HeadlessLoader{}
	}
	if o.PlayerSprite == "" {
		o.PlayerSprite = DefaultPlayerSprite
	}
	if o.PlayerHeight <= 0 {
		o.PlayerHeight = engine.DefaultPlayerHeight
	}
	if o.PlayerBody.Model == "" {
		o.PlayerBody = engine.DefaultPlayerBody()
	}
	if o.BoxBody.Model == "" {
		o.BoxBody = engine.DefaultBoxBody()
	}
	return o
}

// Assets holds the resolved file paths of a level
type Assets struct {
	Music        string `json:"music,omitempty"`
	NextLevel    string `json:"next_level,omitempty"`
	Wall         string `json:"wall"`
	Floor        string `json:"floor"`
	Target       string `json:"target"`
	BoxSheet     string `json:"box_sheet"`
	PlayerSprite string `json:"player_sprite"`
	TileMap      string `json:"tile_map"`
}

// Level is a loaded level ready to hand to an engine
type Level struct {
	Description *Description
	Assets      Assets
	Grid        *Grid
	Map         *engine.Map
	Player      engine.Entity
}

// ResolveAssets turns the asset names of d into paths
func (p AssetPaths) ResolveAssets(d *Description, playerSprite string) Assets {
	if d.PlayerSprite != "" {
		playerSprite = d.PlayerSprite
	}
	return Assets{
		Music:        p.Resolve(Sound, d.Music),
		NextLevel:    p.Resolve(LevelFile, d.NextLevel),
		Wall:         p.Resolve(Sprite, d.WallTile),
		Floor:        p.Resolve(Sprite, d.FloorTile),
		Target:       p.Resolve(Sprite, d.TargetTile),
		BoxSheet:     p.Resolve(Sprite, d.BoxSpriteSheet),
		PlayerSprite: p.Resolve(Sprite, playerSprite),
		TileMap:      p.Resolve(MapFile, d.TileMap),
	}
}

// LoadFile parses a .lvl file and builds the level. name is resolved against
// the maps directory unless it already points at an existing file.
func LoadFile(name string, opts Options) (*Level, error) {
	path := name
	if _, err := os.Stat(path); err != nil {
		path = opts.Paths.Resolve(LevelFile, name)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open level: %w", err)
	}
	defer f.Close()

	desc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return Build(desc, opts)
}

// Build loads the textures and tile map named by d and places the player and
// boxes. Declared positions are converted from file rows to grid rows here.
func Build(d *Description, opts Options) (*Level, error) {
	opts = opts.withDefaults()
	assets := opts.Paths.ResolveAssets(d, opts.PlayerSprite)

	grid, err := ReadGridFile(assets.TileMap, opts.StrictGrid)
	if err != nil {
		return nil, err
	}
	return assemble(d, assets, grid, opts)
}

func assemble(d *Description, assets Assets, grid *Grid, opts Options) (*Level, error) {
	data, err := loadMapData(d, assets, opts.Textures)
	if err != nil {
		return nil, err
	}

	m, err := engine.NewMap(grid.Rows)
	if err != nil {
		return nil, err
	}
	m.Data = data
	m.Name = d.Name
	m.Music = assets.Music
	m.NextLevel = d.NextLevel

	nLines := grid.Lines()
	playerPos, err := toGrid(m, d.PlayerPosition, nLines)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", KeyPlayerPosition, err)
	}
	if grid.Player != nil && *grid.Player != playerPos {
		log.Printf("level %q: player_position %v differs from map marker at %v", d.Name, playerPos, *grid.Player)
	}

	boxSprite := engine.NewSprite(data.Box, data.BoxFrameWidth, data.BoxFrameHeight)
	for i, t := range d.BoxPositions {
		pos, err := toGrid(m, t, nLines)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", KeyBoxPositions, i, err)
		}
		box := engine.NewBox(pos.Vector(), boxSprite)
		box.Body = opts.BoxBody
		m.Boxes = append(m.Boxes, box)
	}
	if len(grid.Boxes) > 0 && len(grid.Boxes) != len(m.Boxes) {
		log.Printf("level %q: %d box_positions but %d box markers in map", d.Name, len(m.Boxes), len(grid.Boxes))
	}

	player, err := newPlayer(playerPos, assets.PlayerSprite, opts)
	if err != nil {
		return nil, err
	}

	return &Level{
		Description: d,
		Assets:      assets,
		Grid:        grid,
		Map:         m,
		Player:      player,
	}, nil
}

func loadMapData(d *Description, assets Assets, loader TextureLoader) (engine.MapData, error) {
	var data engine.MapData
	textures := []struct {
		path string
		dst  *engine.Texture
	}{
		{assets.Floor, &data.Floor},
		{assets.Wall, &data.Wall},
		{assets.Target, &data.Target},
		{assets.BoxSheet, &data.Box},
	}
	for _, t := range textures {
		tex, err := loader.Load(t.path)
		if err != nil {
			return data, err
		}
		*t.dst = tex
	}

	data.BoxFrameWidth = d.BoxSpriteWidth
	data.BoxFrameHeight = d.BoxSpriteHeight
	return data, nil
}

func toGrid(m *engine.Map, t Tuple, nLines int) (engine.Position, error) {
	pos := engine.Position{X: t.Col, Y: engine.FlipRow(t.Row, nLines)}
	if !m.InBounds(pos.X, pos.Y) {
		return pos, fmt.Errorf("%w: %v in %dx%d map", ErrPositionOutOfBounds, t, m.NCols(), m.NLines())
	}
	return pos, nil
}

// newPlayer sizes the player from its texture aspect ratio and centres it
// in its start tile
func newPlayer(pos engine.Position, spritePath string, opts Options) (engine.Entity, error) {
	tex, err := opts.Textures.Load(spritePath)
	if err != nil {
		return engine.Entity{}, err
	}

	ratio := float32(1)
	if tex.Width > 0 && tex.Height > 0 {
		ratio = float32(tex.Width) / float32(tex.Height)
	}
	height := opts.PlayerHeight
	width := height * ratio

	sprite := engine.NewSprite(tex, tex.Width, tex.Height)
	player := engine.NewPlayer(pos.Vector(), width, height, sprite, opts.PlayerBody)
	player.DrawHeight = 1
	player.DrawWidth = ratio
	player.CenterInTile()
	return player, nil
}

// FromMapFile builds a level from a marker-bearing .map file alone, using
// default asset names. Codes 3 and 2 place the player and the boxes.
func FromMapFile(path string, opts Options) (*Level, error) {
	opts = opts.withDefaults()

	grid, err := ReadGridFile(path, opts.StrictGrid)
	if err != nil {
		return nil, err
	}
	if grid.Player == nil {
		return nil, fmt.Errorf("%w: %s has no player marker", ErrMissingField, path)
	}

	nLines := grid.Lines()
	d := &Description{
		Name:           trimExt(filepath.Base(path)),
		WallTile:       "wall.bmp",
		FloorTile:      "floor.bmp",
		TargetTile:     "target.bmp",
		BoxSpriteSheet: DefaultBoxSprite,
		TileMap:        filepath.Base(path),
		PlayerPosition: Tuple{Col: grid.Player.X, Row: engine.FlipRow(grid.Player.Y, nLines)},
		BoxPositions:   make([]Tuple, 0, len(grid.Boxes)),
	}
	for _, b := range grid.Boxes {
		d.BoxPositions = append(d.BoxPositions, Tuple{Col: b.X, Row: engine.FlipRow(b.Y, nLines)})
	}

	assets := opts.Paths.ResolveAssets(d, opts.PlayerSprite)
	assets.TileMap = path

	level, err := assemble(d, assets, grid, opts)
	if err != nil {
		return nil, err
	}

	// box sheets without declared frame sizes use the whole texture
	box := level.Map.Data.Box
	if level.Map.Data.BoxFrameWidth == 0 {
		level.Map.Data.BoxFrameWidth = box.Width
		level.Map.Data.BoxFrameHeight = box.Height
		d.BoxSpriteWidth = box.Width
		d.BoxSpriteHeight = box.Height
		for i := range level.Map.Boxes {
			level.Map.Boxes[i].Sprite = engine.NewSprite(box, box.Width, box.Height)
		}
	}
	return level, nil
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}

// Clone returns a copy of the level with its own boxes and player
func (l *Level) Clone() *Level {
	c := *l
	c.Map = l.Map.Clone()
	return &c
}
