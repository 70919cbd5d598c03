package level

import (
	"path/filepath"
	"strings"
)

// Category groups assets that share a directory
type Category int

const (
	Sound Category = iota
	Sprite
	MapFile
	LevelFile
)

const (
	DefaultAssetsDir = "assets"
	DefaultMapsDir   = "assets/maps"
)

// AssetPaths maps asset names to file paths
type AssetPaths struct {
	AssetsDir string
	MapsDir   string
}

// DefaultAssetPaths returns the assets/ and assets/maps/ layout
func DefaultAssetPaths() AssetPaths {
	return AssetPaths{AssetsDir: DefaultAssetsDir, MapsDir: DefaultMapsDir}
}

func (p AssetPaths) dir(c Category) string {
	switch c {
	case MapFile, LevelFile:
		return p.MapsDir
	default:
		return p.AssetsDir
	}
}

// Resolve prefixes name with its category directory. Empty names stay empty.
func (p AssetPaths) Resolve(c Category, name string) string {
	if name == "" {
		return ""
	}
	return filepath.Join(p.dir(c), name)
}

// RemovePrefix is the inverse of Resolve. Paths outside the category
// directory are returned unchanged.
func (p AssetPaths) RemovePrefix(c Category, path string) string {
	prefix := filepath.Clean(p.dir(c)) + string(filepath.Separator)
	if rest, ok := strings.CutPrefix(filepath.Clean(path), prefix); ok {
		return filepath.ToSlash(rest)
	}
	return path
}

// File extensions of level descriptions and tile maps
const (
	LevelExt = ".lvl"
	MapExt   = ".map"
)

// ID returns the catalogue identifier of a level file: its name without ".lvl"
func ID(filename string) string {
	return strings.TrimSuffix(filepath.Base(filename), LevelExt)
}

// Filename returns the level file name for an identifier or file name
func Filename(id string) string {
	if strings.HasSuffix(id, LevelExt) {
		return id
	}
	return id + LevelExt
}
