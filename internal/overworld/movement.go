// Package overworld runs the exploration layer: walking the campus map,
// following the player with the camera, and opening catch puzzles from the
// zone the player stands in.
package overworld

import (
	"time"

	"github.com/vovakirdan/campus-dex/internal/config"
	"github.com/vovakirdan/campus-dex/internal/core"
	"github.com/vovakirdan/campus-dex/internal/world"
)

// MoveState is the movement state machine.
type MoveState int

const (
	MoveIdle MoveState = iota
	MoveMoving
)

// String returns the state name.
func (s MoveState) String() string {
	if s == MoveMoving {
		return "moving"
	}
	return "idle"
}

// Joystick turns a pointer displacement into a walking direction.
type Joystick struct {
	MaxThrow float64 // displacement is clamped to this radius
	DeadZone float64 // displacements at or below this count as idle
}

// Direction clamps (dx, dy) to MaxThrow, keeping its angle, and normalizes
// it by MaxThrow so each component lies in [-1, 1]. active reports whether
// the displacement leaves the dead zone.
func (j Joystick) Direction(dx, dy float64) (dir core.Vec, active bool) {
	if j.MaxThrow <= 0 {
		return core.Vec{}, false
	}
	d := core.V(dx, dy)
	dist := d.Len()
	if dist > j.MaxThrow {
		d = d.Scale(j.MaxThrow / dist)
	}
	return d.Scale(1 / j.MaxThrow), dist > j.DeadZone
}

// Mover owns the player position and walks it on a fixed tick while the
// joystick is thrown.
type Mover struct {
	joystick Joystick
	speed    float64
	period   time.Duration
	tileSize int

	sched *core.Scheduler
	tiles *world.TileMap
	task  *core.Task

	pos   core.Vec
	dir   core.Vec
	state MoveState
	steps int // committed moves, for tests and stats
}

// NewMover creates a mover that schedules its ticks on sched.
func NewMover(cfg config.World, sched *core.Scheduler) *Mover {
	return &Mover{
		joystick: Joystick{MaxThrow: cfg.Input.MaxThrow, DeadZone: cfg.Input.DeadZone},
		speed:    cfg.Player.Speed,
		period:   cfg.Player.MoveTick(),
		tileSize: cfg.Map.TileSize,
		sched:    sched,
	}
}

// SetMap installs the map movement is checked against. With no map every
// movement request is a no-op.
func (m *Mover) SetMap(tiles *world.TileMap) {
	m.tiles = tiles
}

// Place puts the player at pos without a walkability check.
func (m *Mover) Place(pos core.Vec) {
	m.pos = pos
}

// Position returns the player position in pixels.
func (m *Mover) Position() core.Vec {
	return m.pos
}

// State returns the movement state.
func (m *Mover) State() MoveState {
	return m.state
}

// Direction returns the current normalized direction.
func (m *Mover) Direction() core.Vec {
	return m.dir
}

// Steps returns how many ticks moved the player.
func (m *Mover) Steps() int {
	return m.steps
}

// Drag feeds a joystick displacement. Leaving the dead zone starts the
// movement tick; returning into it stops the tick.
func (m *Mover) Drag(dx, dy float64) {
	if m.tiles == nil {
		return
	}
	dir, active := m.joystick.Direction(dx, dy)
	if !active {
		m.Release()
		return
	}
	m.dir = dir
	if m.state == MoveIdle {
		m.state = MoveMoving
		m.task = m.sched.Every(m.period, m.tick)
	}
}

// Release ends the input: direction is zeroed and the tick is cancelled.
func (m *Mover) Release() {
	m.task.Cancel()
	m.task = nil
	m.dir = core.Vec{}
	m.state = MoveIdle
}

// tick commits one step if the destination is walkable. Blocked steps leave
// the position unchanged; there is no sliding along walls.
func (m *Mover) tick() {
	if m.tiles == nil || m.dir.IsZero() {
		return
	}
	next := m.pos.Add(m.dir.Scale(m.speed))
	if !m.tiles.IsWalkable(next, m.tileSize) {
		return
	}
	m.pos = next
	m.steps++
}
