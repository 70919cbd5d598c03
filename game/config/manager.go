package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wricardo/mcp-training/sokoban/game/engine"
	"github.com/wricardo/mcp-training/sokoban/game/level"
	"github.com/wricardo/mcp-training/sokoban/game/service"
)

var (
	ErrLevelNotFound   = errors.New("level not found")
	ErrInvalidLevel    = errors.New("invalid level")
	ErrInvalidSettings = errors.New("invalid settings")
)

// Manager handles level loading and caching
type Manager struct {
	settings *Settings
	textures level.TextureLoader
	levels   map[string]*level.Level
	mu       sync.RWMutex
}

var _ service.LevelManager = (*Manager)(nil)

// NewManager creates a new level manager over settings.MapsDir
func NewManager(settings *Settings, textures level.TextureLoader) (*Manager, error) {
	if settings == nil {
		settings = DefaultSettings()
	}
	if _, err := os.Stat(settings.MapsDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("maps directory does not exist: %s", settings.MapsDir)
	}
	if textures == nil {
		textures = level.HeadlessLoader{}
	}

	return &Manager{
		settings: settings,
		textures: textures,
		levels:   make(map[string]*level.Level),
	}, nil
}

// Settings returns the settings the manager loads with
func (m *Manager) Settings() *Settings {
	return m.settings
}

// LoadLevel loads a level by identifier or file name and returns a fresh copy
func (m *Manager) LoadLevel(name string) (*level.Level, error) {
	id := level.ID(name)

	m.mu.RLock()
	// Check cache first
	if cached, exists := m.levels[id]; exists {
		m.mu.RUnlock()
		return cached.Clone(), nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if cached, exists := m.levels[id]; exists {
		return cached.Clone(), nil
	}

	path := filepath.Join(m.settings.MapsDir, level.Filename(id))
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
		}
		return nil, fmt.Errorf("failed to stat level: %w", err)
	}

	loaded, err := level.LoadFile(path, m.settings.LevelOptions(m.textures))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidLevel, id, err)
	}

	m.levels[id] = loaded
	return loaded.Clone(), nil
}

// ListLevels returns information about all loadable levels, sorted by file name
func (m *Manager) ListLevels() ([]*service.LevelInfo, error) {
	entries, err := os.ReadDir(m.settings.MapsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read maps directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), level.LevelExt) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	levels := make([]*service.LevelInfo, 0, len(names))
	for _, name := range names {
		l, err := m.LoadLevel(name)
		if err != nil {
			// Skip invalid levels
			log.Printf("Skipping level %s: %v", name, err)
			continue
		}
		levels = append(levels, service.NewLevelInfo(name, l))
	}

	return levels, nil
}

// DefaultLevel returns the identifier of the first level
func (m *Manager) DefaultLevel() string {
	return level.ID(m.settings.FirstLevel)
}

// EngineOptions returns the push options from the settings
func (m *Manager) EngineOptions() engine.Options {
	return m.settings.EngineOptions()
}

// AssetPaths returns the directories levels are resolved against
func (m *Manager) AssetPaths() level.AssetPaths {
	return m.settings.LevelOptions(nil).Paths
}

// RefreshCache drops every cached level
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.levels = make(map[string]*level.Level)
}

// InvalidatePath drops cached levels read from path, either the .lvl file
// itself or the .map file it references. It reports how many were dropped.
func (m *Manager) InvalidatePath(path string) int {
	abs := absPath(path)

	m.mu.Lock()
	defer m.mu.Unlock()

	dropped := 0
	for id, l := range m.levels {
		lvlPath := absPath(filepath.Join(m.settings.MapsDir, level.Filename(id)))
		if lvlPath == abs || absPath(l.Assets.TileMap) == abs {
			delete(m.levels, id)
			dropped++
		}
	}
	return dropped
}

// Cached reports whether a level is in the cache
func (m *Manager) Cached(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.levels[level.ID(name)]
	return ok
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
