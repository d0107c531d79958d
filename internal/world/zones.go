package world

import (
	"math/rand"

	"github.com/vovakirdan/campus-dex/internal/core"
)

// Zone is a square catch zone in tile coordinates.
type Zone struct {
	core.Rect
	Area int // index of the grass area the zone was placed in
}

// Zones holds the catch zones of one overworld session.
type Zones struct {
	areas      []Area
	size       int
	limit      int
	zones      []Zone
	generation int
}

// NewZones creates an empty registry that places size x size zones, at most
// limit of them, inside the given grass areas.
func NewZones(areas []Area, size, limit int) *Zones {
	return &Zones{
		areas: append([]Area(nil), areas...),
		size:  size,
		limit: limit,
	}
}

// Regenerate discards the current zones and places new ones: the grass areas
// are shuffled and the first limit of them each get one zone at a random
// offset. The zone's far edge stays inside its area; an area narrower than a
// zone gets offset 0 and the zone overflows it.
func (z *Zones) Regenerate(rng *rand.Rand) []Zone {
	order := rng.Perm(len(z.areas))
	n := core.Clamp(z.limit, 0, len(order))

	z.zones = make([]Zone, 0, n)
	for _, idx := range order[:n] {
		area := z.areas[idx]
		offX := rng.Intn(core.Max(1, area.W-z.size))
		offY := rng.Intn(core.Max(1, area.H-z.size))
		z.zones = append(z.zones, Zone{
			Rect: core.NewRect(area.X+offX, area.Y+offY, z.size, z.size),
			Area: idx,
		})
	}
	z.generation++
	return z.Zones()
}

// Inside reports whether zone lies fully within the grass area it was placed
// in. Zones in areas smaller than a zone overflow.
func (z *Zones) Inside(zone Zone) bool {
	if zone.Area < 0 || zone.Area >= len(z.areas) {
		return false
	}
	return z.areas[zone.Area].ContainsRect(zone.Rect)
}

// Zones returns a copy of the current zones.
func (z *Zones) Zones() []Zone {
	return append([]Zone(nil), z.zones...)
}

// Areas returns a copy of the grass areas.
func (z *Zones) Areas() []Area {
	return append([]Area(nil), z.areas...)
}

// Len returns the number of zones left.
func (z *Zones) Len() int {
	return len(z.zones)
}

// Generation returns how many times Regenerate has run.
func (z *Zones) Generation() int {
	return z.generation
}

// At returns the first zone containing the tile under pos.
func (z *Zones) At(pos core.Vec, tileSize int) (Zone, bool) {
	i := z.index(pos, tileSize)
	if i < 0 {
		return Zone{}, false
	}
	return z.zones[i], true
}

// IsInteractable reports whether the tile under pos lies in any zone.
func (z *Zones) IsInteractable(pos core.Vec, tileSize int) bool {
	return z.index(pos, tileSize) >= 0
}

// RemoveAt removes the first zone containing the tile under pos.
// It is a no-op when no zone matches.
func (z *Zones) RemoveAt(pos core.Vec, tileSize int) (Zone, bool) {
	i := z.index(pos, tileSize)
	if i < 0 {
		return Zone{}, false
	}
	removed := z.zones[i]
	z.zones = append(z.zones[:i], z.zones[i+1:]...)
	return removed, true
}

// Nearby samples a tile-stepped square of radius rangePx around pos and
// returns the sample points that are interactable.
func (z *Zones) Nearby(pos core.Vec, rangePx, tileSize int) []core.Vec {
	if tileSize <= 0 || rangePx < 0 {
		return nil
	}
	var found []core.Vec
	for dx := -rangePx; dx <= rangePx; dx += tileSize {
		for dy := -rangePx; dy <= rangePx; dy += tileSize {
			p := pos.Add(core.V(float64(dx), float64(dy)))
			if z.IsInteractable(p, tileSize) {
				found = append(found, p)
			}
		}
	}
	return found
}

func (z *Zones) index(pos core.Vec, tileSize int) int {
	if z == nil || tileSize <= 0 {
		return -1
	}
	tx, ty := TileOf(pos, tileSize)
	for i, zone := range z.zones {
		if zone.Contains(tx, ty) {
			return i
		}
	}
	return -1
}
