package world

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/campus-dex/internal/core"
)

const tileSize = 16

func TestNewTileMap(t *testing.T) {
	m := NewTileMap(80, 60)

	if m.Width() != 80 || m.Height() != 60 {
		t.Fatalf("NewTileMap(80, 60) = %dx%d", m.Width(), m.Height())
	}
	if got := m.PixelSize(tileSize); got != core.V(1280, 960) {
		t.Errorf("PixelSize() = %+v, want {1280 960}", got)
	}
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if tile, _ := m.TileAt(x, y); tile != TileWalkable {
				t.Fatalf("tile (%d, %d) = %v, want walkable", x, y, tile)
			}
		}
	}
	if _, ok := m.TileAt(80, 0); ok {
		t.Error("TileAt past the last column should report false")
	}
}

func TestIsWalkable(t *testing.T) {
	m := NewTileMap(80, 60)

	tests := []struct {
		name     string
		pos      core.Vec
		expected bool
	}{
		{"origin", core.V(0, 0), true},
		{"player start", core.V(625, 770), true},
		{"last full tile", core.V(1264, 944), true},
		{"fractional inside", core.V(1263.5, 943.5), true},
		{"negative x", core.V(-1, 10), false},
		{"negative y", core.V(10, -0.5), false},
		{"body past right edge", core.V(1265, 10), false},
		{"body past bottom edge", core.V(10, 945), false},
		{"far outside", core.V(5000, 5000), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := m.IsWalkable(tc.pos, tileSize); got != tc.expected {
				t.Errorf("IsWalkable(%+v) = %v, want %v", tc.pos, got, tc.expected)
			}
		})
	}
}

func TestIsWalkableBlockedTile(t *testing.T) {
	m := NewTileMap(4, 4)
	m.tiles[1][1] = TileBlocked
	m.tiles[2][2] = TileGrass

	if m.IsWalkable(core.V(16, 16), tileSize) {
		t.Error("blocked tile should not be walkable")
	}
	if !m.IsWalkable(core.V(32, 32), tileSize) {
		t.Error("grass tile should be walkable")
	}
}

func TestIsWalkableNilMap(t *testing.T) {
	var m *TileMap
	if m.IsWalkable(core.V(0, 0), tileSize) {
		t.Error("nil map should never be walkable")
	}
	if m.Width() != 0 || m.Height() != 0 {
		t.Error("nil map should have zero size")
	}
}

func TestTileOf(t *testing.T) {
	tests := []struct {
		pos    core.Vec
		tx, ty int
	}{
		{core.V(625, 770), 39, 48},
		{core.V(15.9, 16), 0, 1},
		{core.V(-0.5, -16), -1, -1},
	}

	for _, tc := range tests {
		tx, ty := TileOf(tc.pos, tileSize)
		if tx != tc.tx || ty != tc.ty {
			t.Errorf("TileOf(%+v) = (%d, %d), want (%d, %d)", tc.pos, tx, ty, tc.tx, tc.ty)
		}
	}
}

func TestDefaultGrassAreas(t *testing.T) {
	areas := DefaultGrassAreas()
	if len(areas) != 14 {
		t.Fatalf("len(DefaultGrassAreas()) = %d, want 14", len(areas))
	}
	if areas[0] != core.NewRect(2, 32, 7, 14) {
		t.Errorf("first area = %+v, want {2 32 7 14}", areas[0])
	}
	if areas[13] != core.NewRect(60, 51, 3, 3) {
		t.Errorf("last area = %+v, want {60 51 3 3}", areas[13])
	}
}

func TestRegeneratePlacement(t *testing.T) {
	areas := DefaultGrassAreas()

	for seed := int64(0); seed < 200; seed++ {
		z := NewZones(areas, 5, 5)
		zones := z.Regenerate(rand.New(rand.NewSource(seed)))

		if len(zones) != 5 {
			t.Fatalf("seed %d: %d zones, want 5", seed, len(zones))
		}
		used := make(map[int]bool)
		for _, zone := range zones {
			if used[zone.Area] {
				t.Fatalf("seed %d: area %d used twice", seed, zone.Area)
			}
			used[zone.Area] = true

			if zone.W != 5 || zone.H != 5 {
				t.Fatalf("seed %d: zone size %dx%d, want 5x5", seed, zone.W, zone.H)
			}
			area := areas[zone.Area]
			if fits := area.W >= 5 && area.H >= 5; z.Inside(zone) != fits {
				t.Errorf("seed %d: Inside(%+v) = %v, want %v", seed, zone.Rect, !fits, fits)
			}
			if area.W >= 5 {
				if zone.X < area.X || zone.Right() > area.Right() {
					t.Errorf("seed %d: zone %+v escapes area %+v horizontally", seed, zone.Rect, area)
				}
			} else if zone.X != area.X {
				t.Errorf("seed %d: small area %+v should pin zone x, got %d", seed, area, zone.X)
			}
			if area.H >= 5 {
				if zone.Y < area.Y || zone.Bottom() > area.Bottom() {
					t.Errorf("seed %d: zone %+v escapes area %+v vertically", seed, zone.Rect, area)
				}
			} else if zone.Y != area.Y {
				t.Errorf("seed %d: small area %+v should pin zone y, got %d", seed, area, zone.Y)
			}
		}
	}
}

func TestRegenerateReplacesAndCounts(t *testing.T) {
	z := NewZones(DefaultGrassAreas(), 5, 5)
	if z.Len() != 0 || z.Generation() != 0 {
		t.Fatalf("new registry: len %d gen %d, want 0 0", z.Len(), z.Generation())
	}

	rng := rand.New(rand.NewSource(7))
	z.Regenerate(rng)
	z.RemoveAt(center(z.Zones()[0]), tileSize)
	z.Regenerate(rng)

	if z.Len() != 5 {
		t.Errorf("Len() after regenerate = %d, want 5", z.Len())
	}
	if z.Generation() != 2 {
		t.Errorf("Generation() = %d, want 2", z.Generation())
	}
}

func TestRegenerateFewerAreasThanCap(t *testing.T) {
	areas := []Area{core.NewRect(0, 0, 10, 10), core.NewRect(20, 20, 3, 3)}
	z := NewZones(areas, 5, 5)
	if got := len(z.Regenerate(rand.New(rand.NewSource(1)))); got != 2 {
		t.Errorf("zones = %d, want 2 (one per area)", got)
	}
	for _, zone := range z.Zones() {
		if got, want := z.Inside(zone), zone.Area == 0; got != want {
			t.Errorf("Inside(area %d) = %v, want %v", zone.Area, got, want)
		}
	}
	if z.Inside(Zone{Rect: core.NewRect(0, 0, 5, 5), Area: 9}) {
		t.Error("Inside() true for an unknown area")
	}
}

func TestZonesReturnsCopy(t *testing.T) {
	z := NewZones(DefaultGrassAreas(), 5, 5)
	z.Regenerate(rand.New(rand.NewSource(3)))

	snapshot := z.Zones()
	snapshot[0].X = -100
	if z.Zones()[0].X == -100 {
		t.Error("mutating the snapshot changed the registry")
	}
}

func TestRemoveAt(t *testing.T) {
	z := NewZones(nil, 5, 5)
	z.zones = []Zone{
		{Rect: core.NewRect(18, 18, 5, 5), Area: 1},
		{Rect: core.NewRect(20, 20, 5, 5), Area: 2}, // overlaps the first
		{Rect: core.NewRect(44, 24, 5, 5), Area: 7},
	}
	pos := core.V(21*tileSize, 21*tileSize)

	removed, ok := z.RemoveAt(pos, tileSize)
	if !ok || removed.Area != 1 {
		t.Fatalf("RemoveAt = %+v, %v, want first matching zone (area 1)", removed, ok)
	}
	if z.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (only one zone removed)", z.Len())
	}

	removed, ok = z.RemoveAt(pos, tileSize)
	if !ok || removed.Area != 2 {
		t.Fatalf("second RemoveAt = %+v, %v, want overlapping zone (area 2)", removed, ok)
	}
	if _, ok := z.RemoveAt(pos, tileSize); ok {
		t.Error("RemoveAt with no zone under the player should be a no-op")
	}
	if z.Len() != 1 {
		t.Errorf("Len() = %d, want 1", z.Len())
	}
}

func TestIsInteractable(t *testing.T) {
	z := NewZones(nil, 5, 5)
	z.zones = []Zone{{Rect: core.NewRect(18, 18, 5, 5)}}

	tests := []struct {
		name     string
		pos      core.Vec
		expected bool
	}{
		{"zone origin", core.V(18*tileSize, 18*tileSize), true},
		{"inside last tile", core.V(23*tileSize-1, 23*tileSize-1), true},
		{"right edge", core.V(23*tileSize, 18*tileSize), false},
		{"player start", core.V(625, 770), false},
		{"negative", core.V(-5, -5), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := z.IsInteractable(tc.pos, tileSize); got != tc.expected {
				t.Errorf("IsInteractable(%+v) = %v, want %v", tc.pos, got, tc.expected)
			}
		})
	}
}

func TestPlayerStartNeverInteractable(t *testing.T) {
	start := core.V(625, 770)
	for seed := int64(0); seed < 100; seed++ {
		z := NewZones(DefaultGrassAreas(), 5, 5)
		z.Regenerate(rand.New(rand.NewSource(seed)))
		if z.IsInteractable(start, tileSize) {
			t.Fatalf("seed %d: start position should not be in a catch zone", seed)
		}
	}
}

func TestNearby(t *testing.T) {
	z := NewZones(nil, 5, 5)
	z.zones = []Zone{{Rect: core.NewRect(10, 10, 5, 5)}}

	// Two tiles left of the zone: only the column at +2 and +3 tiles reaches it.
	pos := core.V(8*tileSize, 12*tileSize)
	hits := z.Nearby(pos, 48, tileSize)
	if len(hits) == 0 {
		t.Fatal("Nearby found nothing next to a zone")
	}
	for _, p := range hits {
		if !z.IsInteractable(p, tileSize) {
			t.Errorf("Nearby returned non-interactable point %+v", p)
		}
	}
	// dx in {+32, +48} and dy in {-32..+32} (rows 10..14): 2 x 5 points.
	if len(hits) != 10 {
		t.Errorf("len(Nearby) = %d, want 10", len(hits))
	}

	if far := z.Nearby(core.V(0, 0), 48, tileSize); len(far) != 0 {
		t.Errorf("Nearby far from zones = %v, want none", far)
	}
}

func center(z Zone) core.Vec {
	cx, cy := z.Center()
	return core.V(float64(cx*tileSize), float64(cy*tileSize))
}
