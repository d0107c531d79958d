package overworld

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/campus-dex/internal/config"
	"github.com/vovakirdan/campus-dex/internal/core"
	"github.com/vovakirdan/campus-dex/internal/dex"
	"github.com/vovakirdan/campus-dex/internal/minigame"
	"github.com/vovakirdan/campus-dex/internal/world"
)

// Phase is what the session is currently showing.
type Phase int

const (
	PhaseStopped Phase = iota
	PhaseExploring
	PhaseInGame
	PhaseCaught
	PhaseComplete
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseStopped:
		return "stopped"
	case PhaseExploring:
		return "exploring"
	case PhaseInGame:
		return "in-game"
	case PhaseCaught:
		return "caught"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Recorder receives attempt and run results. Errors are logged and otherwise
// ignored; play never depends on them.
type Recorder interface {
	RecordAttempt(game dex.ID, success bool, reason string, elapsed time.Duration) error
	RecordRun(caught int, elapsed time.Duration) error
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the event logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRecorder sets where attempts and finished runs are recorded.
func WithRecorder(r Recorder) Option {
	return func(s *Session) {
		s.recorder = r
	}
}

// WithPuzzles replaces the puzzle factory. The default uses the minigame
// registry with its fallback to the default puzzle.
func WithPuzzles(create func(dex.ID) minigame.Puzzle) Option {
	return func(s *Session) {
		if create != nil {
			s.create = create
		}
	}
}

// Session owns all state of one playthrough: the map, the catch zones, the
// collection, the player and the running puzzle. It is driven from a single
// goroutine by Step.
type Session struct {
	cfg      config.World
	games    config.MiniGames
	log      *log.Logger
	recorder Recorder
	create   func(dex.ID) minigame.Puzzle

	rng        *rand.Rand
	sched      *core.Scheduler
	tiles      *world.TileMap
	zones      *world.Zones
	collection *dex.Collection
	mover      *Mover
	camera     Camera
	resolver   *Resolver

	phase      Phase
	game       *minigame.Session
	keyRelease *core.Task
	gameStart  time.Duration
	runStart   time.Duration
	clock      time.Duration
	lastCatch  dex.ID
	message    string
}

// NewSession creates a stopped session. Call Start to play.
func NewSession(cfg config.World, games config.MiniGames, opts ...Option) *Session {
	s := &Session{
		cfg:        cfg,
		games:      games,
		log:        log.New(io.Discard),
		create:     minigame.CreateOrDefault,
		collection: dex.NewCollection(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the map, places the catch zones once and spawns the player.
func (s *Session) Start(seed int64) {
	s.Stop()

	s.rng = rand.New(rand.NewSource(seed))
	s.sched = core.NewScheduler()
	s.tiles = world.NewTileMap(s.cfg.Map.Cols(), s.cfg.Map.Rows())
	s.zones = world.NewZones(world.GrassAreas(s.cfg.Zones.GrassAreas), s.cfg.Zones.Size, s.cfg.Zones.Cap)
	zones := s.zones.Regenerate(s.rng)
	s.collection.Reset()

	s.mover = NewMover(s.cfg, s.sched)
	s.mover.SetMap(s.tiles)
	s.mover.Place(core.V(s.cfg.Player.StartX, s.cfg.Player.StartY))
	s.camera = Camera{}
	s.resolver = NewResolver(s.zones, s.collection, s.rng, s.cfg.Map.TileSize)

	s.clock = 0
	s.runStart = 0
	s.lastCatch = 0
	s.message = "Find the tall grass and press c to search it."
	s.phase = PhaseExploring

	s.log.Info("session started", "seed", seed, "zones", len(zones))
	for _, z := range zones {
		s.log.Debug("catch zone", "x", z.X, "y", z.Y, "area", z.Area)
	}
}

// Restart begins a new run after the ending: the collection is emptied, the
// zones are placed again and the player returns to the start.
func (s *Session) Restart(seed int64) {
	s.log.Info("session restarted")
	s.Start(seed)
}

// Stop closes any running puzzle and cancels every scheduled task.
func (s *Session) Stop() {
	if s.game != nil {
		s.game.Close()
		s.game = nil
	}
	if s.sched != nil {
		s.sched.Stop()
	}
	s.keyRelease = nil
	s.phase = PhaseStopped
}

// Drag feeds a joystick displacement while exploring.
func (s *Session) Drag(dx, dy float64) {
	if s.phase != PhaseExploring {
		return
	}
	s.keyRelease.Cancel()
	s.mover.Drag(dx, dy)
}

// Release ends joystick input.
func (s *Session) Release() {
	if s.mover == nil {
		return
	}
	s.keyRelease.Cancel()
	s.mover.Release()
}

// Step applies one frame of input and advances time by dt.
func (s *Session) Step(in core.InputFrame, dt time.Duration) {
	switch s.phase {
	case PhaseExploring:
		s.stepExploring(in)
		if s.phase == PhaseExploring {
			s.sched.Advance(dt)
		}
	case PhaseInGame:
		s.game.Step(in, dt)
		s.drainOutcome()
	case PhaseCaught:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionSelect) || in.Has(core.ActionBack) || in.Has(core.ActionInteract) {
			s.acknowledgeCatch()
		}
	case PhaseComplete:
		if in.Has(core.ActionRestart) {
			s.Restart(s.rng.Int63())
		}
	}
	if s.phase != PhaseStopped {
		s.clock += dt
	}
}

// stepExploring turns held direction keys into a full joystick throw. Each
// key press keeps the stick thrown for the configured hold time, so terminal
// key repeat reads as holding the key.
func (s *Session) stepExploring(in core.InputFrame) {
	if in.Has(core.ActionInteract) || in.Has(core.ActionConfirm) {
		s.Interact()
		return
	}

	var dx, dy float64
	if in.Has(core.ActionLeft) {
		dx--
	}
	if in.Has(core.ActionRight) {
		dx++
	}
	if in.Has(core.ActionUp) {
		dy--
	}
	if in.Has(core.ActionDown) {
		dy++
	}
	if dx == 0 && dy == 0 {
		return
	}

	throw := s.cfg.Input.MaxThrow
	s.mover.Drag(dx*throw, dy*throw)
	s.keyRelease.Cancel()
	s.keyRelease = s.sched.After(s.cfg.Input.KeyHold(), s.mover.Release)
}

// Interact tries to open a puzzle at the player's position.
func (s *Session) Interact() Interaction {
	switch s.phase {
	case PhaseInGame:
		return Interaction{Kind: InteractBusy}
	case PhaseExploring:
	default:
		return Interaction{Kind: InteractNone}
	}

	result := s.resolver.Resolve(s.mover.Position())
	switch result.Kind {
	case InteractNone:
		s.message = "Nothing rustles here."
	case InteractAllComplete:
		s.message = "Every creature is already in your dex."
		s.phase = PhaseComplete
	case InteractOpen:
		puzzle := s.create(result.Game)
		if puzzle == nil {
			s.log.Warn("no puzzle available", "game", result.Game)
			return Interaction{Kind: InteractNone}
		}
		s.Release()
		s.game = minigame.NewSession(result.Game, puzzle, s.games, s.rng)
		s.game.Open()
		s.gameStart = s.clock
		s.phase = PhaseInGame
		s.message = ""
		s.log.Info("puzzle opened", "game", result.Game, "title", puzzle.Title())
	}
	return result
}

// CloseGame abandons the running puzzle, which counts as a failure.
func (s *Session) CloseGame() {
	if s.phase != PhaseInGame {
		return
	}
	s.game.Close()
	s.drainOutcome()
}

// drainOutcome consumes the puzzle outcome once it is delivered.
func (s *Session) drainOutcome() {
	select {
	case o := <-s.game.Done():
		s.consume(o)
	default:
	}
}

func (s *Session) consume(o minigame.Outcome) {
	s.game = nil
	elapsed := s.clock - s.gameStart
	s.log.Info("puzzle closed", "game", o.Game, "success", o.Success, "reason", o.Reason)
	if s.recorder != nil {
		if err := s.recorder.RecordAttempt(o.Game, o.Success, o.Reason, elapsed); err != nil {
			s.log.Warn("record attempt", "err", err)
		}
	}

	if !o.Success {
		s.message = o.Game.Name() + " got away."
		if o.Reason == minigame.ReasonAbandoned {
			s.message = "You left " + o.Game.Name() + " alone."
		}
		s.phase = PhaseExploring
		return
	}

	s.collection.Add(o.Game)
	if _, ok := s.zones.RemoveAt(s.mover.Position(), s.cfg.Map.TileSize); !ok {
		s.log.Debug("no zone under player after catch", "game", o.Game)
	}
	s.lastCatch = o.Game
	s.phase = PhaseCaught

	if s.collection.Complete() {
		s.log.Info("run complete", "elapsed", s.clock-s.runStart)
		if s.recorder != nil {
			if err := s.recorder.RecordRun(s.collection.Len(), s.clock-s.runStart); err != nil {
				s.log.Warn("record run", "err", err)
			}
		}
	}
}

func (s *Session) acknowledgeCatch() {
	if s.collection.Complete() {
		s.phase = PhaseComplete
		s.message = ""
		return
	}
	s.message = "Caught " + s.lastCatch.Name() + "!"
	s.phase = PhaseExploring
}

// Phase returns what the session is showing.
func (s *Session) Phase() Phase {
	return s.phase
}

// Position returns the player position in pixels.
func (s *Session) Position() core.Vec {
	if s.mover == nil {
		return core.V(s.cfg.Player.StartX, s.cfg.Player.StartY)
	}
	return s.mover.Position()
}

// Moving reports whether the player is walking.
func (s *Session) Moving() bool {
	return s.mover != nil && s.mover.State() == MoveMoving
}

// Zones returns a snapshot of the remaining catch zones.
func (s *Session) Zones() []world.Zone {
	if s.zones == nil {
		return nil
	}
	return s.zones.Zones()
}

// GrassAreas returns the grass areas zones are drawn from.
func (s *Session) GrassAreas() []world.Area {
	return world.GrassAreas(s.cfg.Zones.GrassAreas)
}

// InZone reports whether the player stands in a catch zone.
func (s *Session) InZone() bool {
	return s.zones != nil && s.mover != nil && s.zones.IsInteractable(s.mover.Position(), s.cfg.Map.TileSize)
}

// Nearby returns interactable points around the player.
func (s *Session) Nearby() []core.Vec {
	if s.zones == nil || s.mover == nil {
		return nil
	}
	return s.zones.Nearby(s.mover.Position(), s.cfg.Zones.NearbyRange, s.cfg.Map.TileSize)
}

// Caught reports whether id is in the collection.
func (s *Session) Caught(id dex.ID) bool {
	return s.collection.Has(id)
}

// CaughtCount returns the collection size.
func (s *Session) CaughtCount() int {
	return s.collection.Len()
}

// Complete reports whether all five creatures are caught.
func (s *Session) Complete() bool {
	return s.collection.Complete()
}

// LastCatch returns the most recently caught creature.
func (s *Session) LastCatch() dex.ID {
	return s.lastCatch
}

// Game returns the running puzzle session, or nil.
func (s *Session) Game() *minigame.Session {
	return s.game
}

// Message returns the status line.
func (s *Session) Message() string {
	return s.message
}

// Elapsed returns the play time of the current run.
func (s *Session) Elapsed() time.Duration {
	return s.clock - s.runStart
}

// MapSize returns the map size in pixels.
func (s *Session) MapSize() core.Vec {
	return core.V(float64(s.cfg.Map.Width), float64(s.cfg.Map.Height))
}

// TileSize returns the tile edge in pixels.
func (s *Session) TileSize() int {
	return s.cfg.Map.TileSize
}

// View returns the last camera offset and viewport size in pixels.
func (s *Session) View() (offset, size core.Vec) {
	return s.camera.Offset(), s.camera.Viewport()
}

// CameraFor returns the camera offset for a viewport in pixels.
func (s *Session) CameraFor(viewport core.Vec) core.Vec {
	return s.camera.Update(s.Position(), s.MapSize(), viewport)
}
