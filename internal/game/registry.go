package game

import (
	"fmt"
	"sort"
	"sync"

	"telegram-boardgame-bot/internal/engine"
)

// Entry pairs a game's rule definition with its presentation adapter.
type Entry struct {
	Def     *engine.GameDefinition
	Adapter PresentationAdapter
}

// Catalog manages game registration and lookup. Registration happens once
// at startup; afterwards the catalog is read-only. There is no package
// level default instance: callers construct and inject their own, which
// keeps tests isolated.
type Catalog struct {
	games map[string]Entry
	mu    sync.RWMutex
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		games: make(map[string]Entry),
	}
}

// Register adds a game to the catalog. Malformed definitions and duplicate
// names are startup wiring errors and are reported as such.
func (c *Catalog) Register(def *engine.GameDefinition, adapter PresentationAdapter) error {
	if def == nil || adapter == nil {
		return fmt.Errorf("cannot register nil game")
	}
	if def.Name == "" {
		return fmt.Errorf("game name cannot be empty")
	}
	if def.Setup == nil {
		return fmt.Errorf("game %q has no setup function", def.Name)
	}
	if len(def.Moves) == 0 {
		return fmt.Errorf("game %q has no moves", def.Name)
	}
	if def.Turn.MoveLimit < 1 {
		return fmt.Errorf("game %q has move limit %d, must be at least 1", def.Name, def.Turn.MoveLimit)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.games[def.Name]; exists {
		return fmt.Errorf("game %q is already registered", def.Name)
	}
	c.games[def.Name] = Entry{Def: def, Adapter: adapter}
	return nil
}

// Get retrieves a game by name.
func (c *Catalog) Get(name string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.games[name]
	return e, ok
}

// Names returns all registered game names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.games))
	for name := range c.games {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered games.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.games)
}
