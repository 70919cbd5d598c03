package main

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"

	"github.com/wricardo/mcp-training/sokoban/game/engine"
)

// textureCache loads images into ebiten and keeps them by path. It is the
// level.TextureLoader of the desktop client; the image rides in Texture.Handle.
type textureCache struct {
	mu     sync.Mutex
	images map[string]*ebiten.Image
}

func newTextureCache() *textureCache {
	return &textureCache{images: make(map[string]*ebiten.Image)}
}

func (c *textureCache) Load(path string) (engine.Texture, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if img, ok := c.images[path]; ok {
		return textureOf(path, img), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return engine.Texture{}, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer file.Close()

	decoded, _, err := image.Decode(file)
	if err != nil {
		return engine.Texture{}, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	img := ebiten.NewImageFromImage(decoded)
	c.images[path] = img
	return textureOf(path, img), nil
}

func textureOf(path string, img *ebiten.Image) engine.Texture {
	b := img.Bounds()
	return engine.Texture{Handle: img, Path: path, Width: b.Dx(), Height: b.Dy()}
}

// imageOf returns the ebiten image behind a texture, or nil
func imageOf(t engine.Texture) *ebiten.Image {
	img, _ := t.Handle.(*ebiten.Image)
	return img
}
