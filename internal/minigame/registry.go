package minigame

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/campus-dex/internal/dex"
)

// ErrUnknownGame is returned by Create for an id nobody registered.
var ErrUnknownGame = errors.New("unknown mini-game")

// DefaultGame is used when a requested puzzle is not registered.
const DefaultGame = dex.AI

// Info contains metadata about a registered puzzle.
type Info struct {
	ID    dex.ID
	Name  string
	Title string
}

// Factory creates a new puzzle instance.
type Factory func() Puzzle

type entry struct {
	name    string
	title   string
	factory Factory
}

var (
	entries = make(map[dex.ID]entry)
	mu      sync.RWMutex
)

// Register adds a puzzle factory for id.
// Typically called from a puzzle package's init() function.
// Panics if the id or name is already registered.
func Register(id dex.ID, name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("minigame: game %d already registered", id))
	}
	for _, e := range entries {
		if e.name == name {
			panic(fmt.Sprintf("minigame: game %q already registered", name))
		}
	}

	entries[id] = entry{name: name, title: f().Title(), factory: f}
}

// List returns all registered puzzles sorted by id.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(entries))
	for id, e := range entries {
		result = append(result, Info{ID: id, Name: e.name, Title: e.title})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates the puzzle registered for id.
func Create(id dex.ID) (Puzzle, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	if !ok {
		return nil, fmt.Errorf("minigame: game %d: %w", id, ErrUnknownGame)
	}
	return e.factory(), nil
}

// CreateOrDefault instantiates the puzzle for id, falling back to
// DefaultGame when id is unknown. It returns nil only when neither is
// registered.
func CreateOrDefault(id dex.ID) Puzzle {
	if p, err := Create(id); err == nil {
		return p
	}
	p, err := Create(DefaultGame)
	if err != nil {
		return nil
	}
	return p
}

// Lookup resolves a registered puzzle name to its id.
func Lookup(name string) (dex.ID, bool) {
	mu.RLock()
	defer mu.RUnlock()

	for id, e := range entries {
		if e.name == name {
			return id, true
		}
	}
	return 0, false
}
