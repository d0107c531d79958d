// Package dex defines the collectible creatures and the player's collection.
package dex

import (
	"sort"

	"github.com/vovakirdan/campus-dex/internal/core"
)

// ID identifies both a creature and the mini-game that catches it.
type ID int

const (
	AI                  ID = 1 // mosaic
	DataScience         ID = 2 // spot
	CyberSecurity       ID = 3 // cipher
	ComputerEngineering ID = 4 // circuit
	AIDataScience       ID = 5 // ladder
)

// Count is the number of catchable creatures.
const Count = 5

// Valid reports whether id names a catchable creature.
func (id ID) Valid() bool {
	return id >= AI && id <= AIDataScience
}

// Creature describes one dex entry.
type Creature struct {
	ID    ID
	Name  string
	Major string
	Game  string // registered mini-game name
	Color core.Color
}

var creatures = [...]Creature{
	{ID: AI, Name: "Ingjwi", Major: "Artificial Intelligence", Game: "mosaic", Color: core.ColorBrightMagenta},
	{ID: DataScience, Name: "Dairy", Major: "Data Science", Game: "spot", Color: core.ColorBrightCyan},
	{ID: CyberSecurity, Name: "Secu", Major: "Cyber Security", Game: "cipher", Color: core.ColorBrightGreen},
	{ID: ComputerEngineering, Name: "Cocomo", Major: "Computer Engineering", Game: "circuit", Color: core.ColorOrange},
	{ID: AIDataScience, Name: "Ingdebyu", Major: "AI + Data Science", Game: "ladder", Color: core.ColorBrightYellow},
}

// Legend is the sixth creature. It is never caught directly; it appears once
// the other five are in the collection.
var Legend = Creature{Name: "Iai", Major: "AI College", Color: core.ColorBrightWhite}

// All returns the five catchable creatures in id order.
func All() []Creature {
	return append([]Creature(nil), creatures[:]...)
}

// Lookup returns the creature for id.
func Lookup(id ID) (Creature, bool) {
	if !id.Valid() {
		return Creature{}, false
	}
	return creatures[id-1], true
}

// Name returns the creature name for id, or "???" for an unknown id.
func (id ID) Name() string {
	if c, ok := Lookup(id); ok {
		return c.Name
	}
	return "???"
}

// Collection is the set of creatures caught in one session.
type Collection struct {
	caught map[ID]bool
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{caught: make(map[ID]bool, Count)}
}

// Add records a catch. Ids outside 1..5 are ignored. Reports whether the
// collection grew.
func (c *Collection) Add(id ID) bool {
	if !id.Valid() || c.caught[id] {
		return false
	}
	c.caught[id] = true
	return true
}

// Has reports whether id has been caught.
func (c *Collection) Has(id ID) bool {
	return c.caught[id]
}

// Len returns how many creatures have been caught.
func (c *Collection) Len() int {
	return len(c.caught)
}

// Cleared returns the caught ids in ascending order.
func (c *Collection) Cleared() []ID {
	ids := make([]ID, 0, len(c.caught))
	for id := range c.caught {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Uncleared returns the ids not yet caught in ascending order.
func (c *Collection) Uncleared() []ID {
	ids := make([]ID, 0, Count)
	for id := AI; id <= AIDataScience; id++ {
		if !c.caught[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

// Complete reports whether all five creatures have been caught.
func (c *Collection) Complete() bool {
	return len(c.caught) == Count
}

// Reset empties the collection.
func (c *Collection) Reset() {
	clear(c.caught)
}
