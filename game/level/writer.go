package level

import (
	"fmt"
	"io"

	"github.com/wricardo/mcp-training/sokoban/game/engine"
)

// Describe captures a live map and player as a description. Asset names are
// recovered from the texture paths by removing their directory prefix.
func Describe(m *engine.Map, player *engine.Entity, mapName string, paths AssetPaths) *Description {
	nLines := m.NLines()
	toTuple := func(p engine.Position) Tuple {
		return Tuple{Col: p.X, Row: engine.FlipRow(p.Y, nLines)}
	}

	d := &Description{
		Name:            m.Name,
		Music:           paths.RemovePrefix(Sound, m.Music),
		NextLevel:       m.NextLevel,
		WallTile:        paths.RemovePrefix(Sprite, m.Data.Wall.Path),
		FloorTile:       paths.RemovePrefix(Sprite, m.Data.Floor.Path),
		TargetTile:      paths.RemovePrefix(Sprite, m.Data.Target.Path),
		BoxSpriteSheet:  paths.RemovePrefix(Sprite, m.Data.Box.Path),
		BoxSpriteWidth:  m.Data.BoxFrameWidth,
		BoxSpriteHeight: m.Data.BoxFrameHeight,
		TileMap:         mapName,
		PlayerPosition:  toTuple(player.Tile()),
		BoxPositions:    make([]Tuple, 0, len(m.Boxes)),
	}
	if sprite := paths.RemovePrefix(Sprite, player.Sprite.Texture.Path); sprite != DefaultPlayerSprite {
		d.PlayerSprite = sprite
	}
	for i := range m.Boxes {
		d.BoxPositions = append(d.BoxPositions, toTuple(m.Boxes[i].Tile()))
	}
	return d
}

// Export writes a live map as .lvl text to lvl and .map text to grid
func Export(lvl, grid io.Writer, m *engine.Map, player *engine.Entity, mapName string, paths AssetPaths) error {
	if len(m.Boxes) == 0 {
		return fmt.Errorf("%w: %s needs at least one box", ErrMissingField, KeyBoxPositions)
	}
	if err := Describe(m, player, mapName, paths).Format(lvl); err != nil {
		return fmt.Errorf("failed to write level: %w", err)
	}
	if err := WriteGrid(grid, m.Rows()); err != nil {
		return fmt.Errorf("failed to write tile map: %w", err)
	}
	return nil
}
