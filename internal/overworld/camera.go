package overworld

import "github.com/vovakirdan/campus-dex/internal/core"

// CameraOffset returns the top-left of the viewport in world pixels. The
// player is centered when possible; near the map edges the offset is clamped
// so the viewport never shows outside the map. A viewport larger than the
// map pins that axis to 0.
func CameraOffset(player, mapSize, viewport core.Vec) core.Vec {
	return core.V(
		cameraAxis(player.X, mapSize.X, viewport.X),
		cameraAxis(player.Y, mapSize.Y, viewport.Y),
	)
}

func cameraAxis(player, mapSize, viewport float64) float64 {
	return core.ClampF(player-viewport/2, 0, max(0, mapSize-viewport))
}

// Camera caches the last offset and recomputes only when an input changes.
type Camera struct {
	player   core.Vec
	mapSize  core.Vec
	viewport core.Vec
	offset   core.Vec
	valid    bool
}

// Update returns the offset for the given inputs.
func (c *Camera) Update(player, mapSize, viewport core.Vec) core.Vec {
	if c.valid && player == c.player && mapSize == c.mapSize && viewport == c.viewport {
		return c.offset
	}
	c.player, c.mapSize, c.viewport = player, mapSize, viewport
	c.offset = CameraOffset(player, mapSize, viewport)
	c.valid = true
	return c.offset
}

// Offset returns the last computed offset.
func (c *Camera) Offset() core.Vec {
	return c.offset
}

// Viewport returns the last viewport size.
func (c *Camera) Viewport() core.Vec {
	return c.viewport
}
