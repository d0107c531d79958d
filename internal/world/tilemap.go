// Package world holds the static overworld: the tile grid, the grass areas
// and the catch zones placed inside them.
package world

import (
	"math"

	"github.com/vovakirdan/campus-dex/internal/core"
)

// Tile is the kind of one map cell.
type Tile uint8

const (
	TileWalkable Tile = iota
	TileBlocked
	TileGrass
)

// String returns the tile name.
func (t Tile) String() string {
	switch t {
	case TileWalkable:
		return "walkable"
	case TileBlocked:
		return "blocked"
	case TileGrass:
		return "grass"
	default:
		return "unknown"
	}
}

// TileMap is an immutable rows x cols grid of tiles.
type TileMap struct {
	tiles [][]Tile
}

// NewTileMap creates a width x height map (in tiles) where every cell is
// walkable. Non-positive sizes yield an empty map on which nothing is walkable.
func NewTileMap(width, height int) *TileMap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width) // zero value is TileWalkable
	}
	return &TileMap{tiles: tiles}
}

// Width returns the number of columns.
func (m *TileMap) Width() int {
	if m == nil || len(m.tiles) == 0 {
		return 0
	}
	return len(m.tiles[0])
}

// Height returns the number of rows.
func (m *TileMap) Height() int {
	if m == nil {
		return 0
	}
	return len(m.tiles)
}

// PixelSize returns the map extent in pixels.
func (m *TileMap) PixelSize(tileSize int) core.Vec {
	return core.V(float64(m.Width()*tileSize), float64(m.Height()*tileSize))
}

// TileAt returns the tile at tile coordinates, or false when out of range.
func (m *TileMap) TileAt(tx, ty int) (Tile, bool) {
	if m == nil || ty < 0 || ty >= len(m.tiles) || tx < 0 || tx >= len(m.tiles[ty]) {
		return TileBlocked, false
	}
	return m.tiles[ty][tx], true
}

// IsWalkable reports whether a tile-sized body with its top-left corner at
// pos lies fully inside the map and its anchor tile can be entered.
func (m *TileMap) IsWalkable(pos core.Vec, tileSize int) bool {
	if m == nil || tileSize <= 0 {
		return false
	}
	size := m.PixelSize(tileSize)
	ts := float64(tileSize)
	if pos.X < 0 || pos.X+ts > size.X || pos.Y < 0 || pos.Y+ts > size.Y {
		return false
	}
	tile, ok := m.TileAt(TileOf(pos, tileSize))
	if !ok {
		return false
	}
	return tile == TileWalkable || tile == TileGrass
}

// TileOf converts a pixel position to tile coordinates.
func TileOf(pos core.Vec, tileSize int) (int, int) {
	ts := float64(tileSize)
	return int(math.Floor(pos.X / ts)), int(math.Floor(pos.Y / ts))
}
