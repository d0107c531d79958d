package world

import (
	"github.com/vovakirdan/campus-dex/internal/config"
	"github.com/vovakirdan/campus-dex/internal/core"
)

// Area is a grass patch in tile coordinates.
type Area = core.Rect

// GrassAreas converts the configured grass areas to tile rects.
func GrassAreas(cfg []config.AreaConfig) []Area {
	areas := make([]Area, len(cfg))
	for i, a := range cfg {
		areas[i] = core.NewRect(a.X, a.Y, a.Width, a.Height)
	}
	return areas
}

// DefaultGrassAreas returns the campus map's fourteen grass patches.
func DefaultGrassAreas() []Area {
	return GrassAreas(config.DefaultWorldConfig().Zones.GrassAreas)
}
