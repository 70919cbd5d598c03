package level

import (
	"fmt"
	"image"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"

	"github.com/wricardo/mcp-training/sokoban/game/engine"
)

// TextureLoader loads an image and reports its dimensions. Renderers
// attach their own handle; the engine only reads Width and Height.
type TextureLoader interface {
	Load(path string) (engine.Texture, error)
}

// TextureLoaderFunc adapts a function to TextureLoader
type TextureLoaderFunc func(path string) (engine.Texture, error)

func (f TextureLoaderFunc) Load(path string) (engine.Texture, error) {
	return f(path)
}

// HeadlessLoader decodes only the image header. It serves servers and tools
// that need sprite dimensions without a graphics context.
type HeadlessLoader struct{}

func (HeadlessLoader) Load(path string) (engine.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return engine.Texture{}, fmt.Errorf("failed to open texture: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return engine.Texture{}, fmt.Errorf("failed to decode texture %s: %w", path, err)
	}
	return engine.Texture{Path: path, Width: cfg.Width, Height: cfg.Height}, nil
}

// FixedSizeLoader reports the same dimensions for every path without
// touching the filesystem
type FixedSizeLoader struct {
	Width  int
	Height int
}

func (l FixedSizeLoader) Load(path string) (engine.Texture, error) {
	return engine.Texture{Path: path, Width: l.Width, Height: l.Height}, nil
}
