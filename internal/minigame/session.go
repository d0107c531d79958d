package minigame

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/campus-dex/internal/config"
	"github.com/vovakirdan/campus-dex/internal/core"
	"github.com/vovakirdan/campus-dex/internal/dex"
)

// Phase is the lifecycle state of a Session.
type Phase int

const (
	PhaseClosed Phase = iota
	PhaseInitializing
	PhaseActive
	PhaseResolved
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseClosed:
		return "closed"
	case PhaseInitializing:
		return "initializing"
	case PhaseActive:
		return "active"
	case PhaseResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// ActionClose is the input that abandons an active puzzle.
const ActionClose = core.ActionBack

// ReasonAbandoned is the outcome reason for a session closed before it
// delivered on its own.
const ReasonAbandoned = "abandoned"

// Outcome is the single result of one opened session.
type Outcome struct {
	Game    dex.ID
	Success bool
	Reason  string
}

// Session drives one puzzle through open, play, resolution and close.
// Every open produces exactly one Outcome on Done. Resolution is shown for
// the configured result delay before the outcome is delivered.
type Session struct {
	id     dex.ID
	puzzle Puzzle
	cfg    config.MiniGames
	rng    *rand.Rand

	phase     Phase
	timers    *core.Scheduler
	verdict   Verdict
	done      chan Outcome
	delivered bool
}

// NewSession wraps puzzle for game id. rng is shared across opens and
// supplies every shuffle the puzzle performs.
func NewSession(id dex.ID, puzzle Puzzle, cfg config.MiniGames, rng *rand.Rand) *Session {
	return &Session{
		id:     id,
		puzzle: puzzle,
		cfg:    cfg,
		rng:    rng,
		timers: core.NewScheduler(),
		done:   make(chan Outcome, 1),
	}
}

// Open starts a new run. A session that is still open is closed first,
// which delivers its abandoned outcome on the previous Done channel.
func (s *Session) Open() {
	if s.phase != PhaseClosed {
		s.Close()
	}

	s.phase = PhaseInitializing
	s.timers = core.NewScheduler()
	s.verdict = Pending()
	s.done = make(chan Outcome, 1)
	s.delivered = false

	s.puzzle.Reset(Env{Rand: s.rng, Timers: s.timers, Config: s.cfg})
	s.phase = PhaseActive
}

// Step applies input and advances the session clock by dt.
func (s *Session) Step(in core.InputFrame, dt time.Duration) {
	switch s.phase {
	case PhaseActive:
		if in.Has(ActionClose) {
			s.Close()
			return
		}
		s.puzzle.Handle(in)
		if s.checkVerdict() {
			return
		}
		s.timers.Advance(dt)
		s.checkVerdict()
	case PhaseResolved:
		s.timers.Advance(dt)
	}
}

// checkVerdict moves an active session to Resolved once the puzzle decides.
// The puzzle's own timers are stopped and replaced by the result delay.
func (s *Session) checkVerdict() bool {
	v := s.puzzle.Verdict()
	if !v.Resolved() {
		return false
	}
	s.verdict = v
	s.phase = PhaseResolved
	s.timers.Stop()
	s.timers = core.NewScheduler()
	s.timers.After(s.cfg.ResultDelay(), func() {
		s.deliver(Outcome{Game: s.id, Success: v.Status == StatusSuccess, Reason: v.Reason})
		s.shutdown()
	})
	return true
}

// Close ends the session early. If no outcome was delivered yet, a failure
// with ReasonAbandoned is. Safe to call in any phase.
func (s *Session) Close() {
	if s.phase == PhaseClosed {
		return
	}
	s.deliver(Outcome{Game: s.id, Success: false, Reason: ReasonAbandoned})
	s.shutdown()
}

func (s *Session) shutdown() {
	s.timers.Stop()
	s.phase = PhaseClosed
}

func (s *Session) deliver(o Outcome) {
	if s.delivered {
		return
	}
	s.delivered = true
	s.done <- o
}

// Done returns the channel the current run's outcome is delivered on.
// It receives exactly one value per Open.
func (s *Session) Done() <-chan Outcome {
	return s.done
}

// ID returns the game id this session plays.
func (s *Session) ID() dex.ID {
	return s.id
}

// Phase returns the lifecycle phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Verdict returns the resolution once the session is Resolved.
func (s *Session) Verdict() Verdict {
	return s.verdict
}

// Puzzle returns the wrapped puzzle.
func (s *Session) Puzzle() Puzzle {
	return s.puzzle
}

// Pending returns how many timers are live, for leak checks.
func (s *Session) Pending() int {
	return s.timers.Pending()
}

// Render draws the puzzle and, once resolved, a result banner on the last row.
func (s *Session) Render(dst *core.Screen) {
	s.puzzle.Render(dst)
	if s.phase != PhaseResolved {
		return
	}
	y := dst.Height() - 1
	for x := 0; x < dst.Width(); x++ {
		dst.Set(x, y, ' ')
	}
	switch s.verdict.Status {
	case StatusSuccess:
		dst.DrawTextCenteredColor(y, "CORRECT!", core.ColorBrightGreen)
	default:
		msg := "FAILED"
		if s.verdict.Reason != "" {
			msg += ": " + s.verdict.Reason
		}
		dst.DrawTextCenteredColor(y, msg, core.ColorBrightRed)
	}
}
