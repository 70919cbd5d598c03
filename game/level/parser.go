package level

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
)

// Keys recognised in a .lvl file
const (
	KeyLevelName       = "level_name"
	KeyLevelMusic      = "level_music"
	KeyNextLevel       = "next_level"
	KeyWallTile        = "wall_tile"
	KeyFloorTile       = "floor_tile"
	KeyTargetTile      = "target_tile"
	KeyBoxSpriteSheet  = "box_sprite_sheet"
	KeyBoxSpriteWidth  = "box_sprite_width"
	KeyBoxSpriteHeight = "box_sprite_height"
	KeyTileMap         = "tile_map"
	KeyPlayerPosition  = "player_position"
	KeyBoxPositions    = "box_positions"
	KeyPlayerSprite    = "player_sprite"
)

const commentMarker = "//"

// RequiredKeys lists the keys every level must define, in file order
var RequiredKeys = []string{
	KeyLevelName,
	KeyWallTile,
	KeyFloorTile,
	KeyTargetTile,
	KeyBoxSpriteSheet,
	KeyBoxSpriteWidth,
	KeyBoxSpriteHeight,
	KeyTileMap,
	KeyPlayerPosition,
	KeyBoxPositions,
}

// Description is the parsed content of a .lvl file. Asset fields hold the
// names as written; AssetPaths resolves them.
type Description struct {
	Name      string `json:"level_name"`
	Music     string `json:"level_music,omitempty"`
	NextLevel string `json:"next_level,omitempty"`

	WallTile   string `json:"wall_tile"`
	FloorTile  string `json:"floor_tile"`
	TargetTile string `json:"target_tile"`

	BoxSpriteSheet  string `json:"box_sprite_sheet"`
	BoxSpriteWidth  int    `json:"box_sprite_width"`
	BoxSpriteHeight int    `json:"box_sprite_height"`

	PlayerSprite string `json:"player_sprite,omitempty"`

	TileMap        string  `json:"tile_map"`
	PlayerPosition Tuple   `json:"player_position"`
	BoxPositions   []Tuple `json:"box_positions"`
}

// ParseString parses a .lvl document held in memory
func ParseString(text string) (*Description, error) {
	return Parse(strings.NewReader(text))
}

// Parse reads a .lvl document. Unknown keys and lines without '=' are logged
// and skipped. A required key that is absent or fails to parse aborts the
// parse with an error wrapping ErrMissingField or the value's own error.
func Parse(r io.Reader) (*Description, error) {
	desc := &Description{}
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentMarker) {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			log.Printf("level: line %d: ignoring %q, expected key = value", lineNo, line)
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if seen[key] {
			log.Printf("level: line %d: %s defined again, last value wins", lineNo, key)
		}

		known, err := desc.set(key, value)
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", lineNo, key, err)
		}
		if !known {
			log.Printf("level: line %d: ignoring unknown key %q", lineNo, key)
			continue
		}
		seen[key] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read level: %w", err)
	}

	var missing []string
	for _, key := range RequiredKeys {
		if !seen[key] {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}

	return desc, nil
}

// set stores one key. It reports false for keys it does not know.
func (d *Description) set(key, value string) (bool, error) {
	var err error
	switch key {
	case KeyLevelName:
		d.Name = value
	case KeyLevelMusic:
		d.Music = value
	case KeyNextLevel:
		d.NextLevel = value
	case KeyWallTile:
		d.WallTile = value
	case KeyFloorTile:
		d.FloorTile = value
	case KeyTargetTile:
		d.TargetTile = value
	case KeyBoxSpriteSheet:
		d.BoxSpriteSheet = value
	case KeyBoxSpriteWidth:
		d.BoxSpriteWidth, err = parseUint(value)
	case KeyBoxSpriteHeight:
		d.BoxSpriteHeight, err = parseUint(value)
	case KeyTileMap:
		d.TileMap = value
	case KeyPlayerSprite:
		d.PlayerSprite = value
	case KeyPlayerPosition:
		d.PlayerPosition, err = ParseTuple(value)
	case KeyBoxPositions:
		d.BoxPositions, err = ParseTupleList(value)
	default:
		return false, nil
	}
	return true, err
}

func parseUint(value string) (int, error) {
	n, err := strconv.ParseUint(value, 10, 31)
	if err != nil {
		return 0, fmt.Errorf("%q is not an unsigned integer: %w", value, err)
	}
	return int(n), nil
}

// Format writes the description back as .lvl text. Optional keys are
// omitted when empty.
func (d *Description) Format(w io.Writer) error {
	bw := bufio.NewWriter(w)

	write := func(key, value string) {
		fmt.Fprintf(bw, "%s = %s\n", key, value)
	}
	writeOptional := func(key, value string) {
		if value != "" {
			write(key, value)
		}
	}

	write(KeyLevelName, d.Name)
	writeOptional(KeyLevelMusic, d.Music)
	writeOptional(KeyNextLevel, d.NextLevel)
	bw.WriteString("\n")
	write(KeyWallTile, d.WallTile)
	write(KeyFloorTile, d.FloorTile)
	write(KeyTargetTile, d.TargetTile)
	write(KeyBoxSpriteSheet, d.BoxSpriteSheet)
	write(KeyBoxSpriteWidth, strconv.Itoa(d.BoxSpriteWidth))
	write(KeyBoxSpriteHeight, strconv.Itoa(d.BoxSpriteHeight))
	writeOptional(KeyPlayerSprite, d.PlayerSprite)
	bw.WriteString("\n")
	write(KeyTileMap, d.TileMap)
	write(KeyPlayerPosition, d.PlayerPosition.String())
	write(KeyBoxPositions, FormatTupleList(d.BoxPositions))

	return bw.Flush()
}
