// Package minigame defines the contract every catch puzzle implements and
// the Session that drives one puzzle run from open to a single outcome.
//
// Puzzles contain pure logic with no UI dependency. The Session owns their
// timers and randomness and guarantees exactly one Outcome per open.
package minigame

import (
	"math/rand"

	"github.com/vovakirdan/campus-dex/internal/config"
	"github.com/vovakirdan/campus-dex/internal/core"
)

// Status is the resolution state of a puzzle.
type Status int

const (
	StatusPending Status = iota
	StatusSuccess
	StatusFailure
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Verdict is what a puzzle reports after each step.
type Verdict struct {
	Status Status
	Reason string
}

// Pending returns the verdict of an unresolved puzzle.
func Pending() Verdict {
	return Verdict{Status: StatusPending}
}

// Success returns a winning verdict.
func Success(reason string) Verdict {
	return Verdict{Status: StatusSuccess, Reason: reason}
}

// Failure returns a losing verdict.
func Failure(reason string) Verdict {
	return Verdict{Status: StatusFailure, Reason: reason}
}

// Resolved reports whether the verdict is final.
func (v Verdict) Resolved() bool {
	return v.Status != StatusPending
}

// Env is everything a puzzle may use while it runs. A fresh Env is built on
// every open, so nothing carries over between runs.
type Env struct {
	// Rand picks answers and shuffles choices.
	Rand *rand.Rand
	// Timers runs countdowns. It is stopped when the puzzle resolves or
	// the session closes.
	Timers *core.Scheduler
	// Config holds the per-puzzle parameters.
	Config config.MiniGames
}

// Puzzle is the interface all five catch games implement.
// The platform handles input mapping, timing, and rendering.
type Puzzle interface {
	// Title returns a human-readable name for display (e.g., "Caesar Cipher").
	Title() string

	// Hint returns a one-paragraph strategy note shown before and during play.
	Hint() string

	// Reset discards all state and deals a new round from env.
	Reset(env Env)

	// Handle applies one frame of player input.
	Handle(in core.InputFrame)

	// Verdict returns the current resolution. Once resolved it never changes.
	Verdict() Verdict

	// Render draws the puzzle into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)
}
