// Package level reads and writes Sokoban level descriptions.
//
// A level is described by two files. The .lvl file is a line-oriented
// key = value document naming the level, its assets, the tile map and the
// start positions:
//
//	// comments start with two slashes
//	level_name = Tutorial
//	level_music = guitar.mp3
//	next_level = 1-corridor.lvl
//	wall_tile = wall.bmp
//	floor_tile = floor.bmp
//	target_tile = target.bmp
//	box_sprite_sheet = box.bmp
//	box_sprite_width = 32
//	box_sprite_height = 32
//	tile_map = 0-tutorial.map
//	player_position = (1, 1)
//	box_positions = {(2, 2), (3, 2)}
//
// The .map file is a grid of whitespace-separated tile codes, one row per
// line, top row first. Positions in the .lvl file are (column, row) in that
// same top-down order; Load converts them to the engine's bottom-up grid.
//
// Asset names are resolved against AssetPaths: sounds and sprites live under
// the assets directory, maps and levels under the maps directory.
package level
