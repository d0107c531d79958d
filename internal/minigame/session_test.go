package minigame

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/campus-dex/internal/config"
	"github.com/vovakirdan/campus-dex/internal/core"
	"github.com/vovakirdan/campus-dex/internal/dex"
)

const frame = 33 * time.Millisecond

// stubPuzzle resolves on Confirm (success) or Clear (failure), and fails on
// its own after a countdown when one is configured.
type stubPuzzle struct {
	resets    int
	handled   int
	countdown time.Duration
	verdict   Verdict
}

func (p *stubPuzzle) Title() string { return "Stub" }
func (p *stubPuzzle) Hint() string  { return "press enter" }

func (p *stubPuzzle) Reset(env Env) {
	p.resets++
	p.handled = 0
	p.verdict = Pending()
	if p.countdown > 0 {
		env.Timers.After(p.countdown, func() { p.verdict = Failure("time up") })
	}
}

func (p *stubPuzzle) Handle(in core.InputFrame) {
	if p.verdict.Resolved() {
		return
	}
	p.handled++
	switch {
	case in.Has(core.ActionConfirm):
		p.verdict = Success("")
	case in.Has(core.ActionClear):
		p.verdict = Failure("wrong")
	}
}

func (p *stubPuzzle) Verdict() Verdict { return p.verdict }

func (p *stubPuzzle) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "stub")
}

func newTestSession(p Puzzle) *Session {
	cfg := config.DefaultMiniGamesConfig()
	return NewSession(dex.CyberSecurity, p, cfg, rand.New(rand.NewSource(1)))
}

// run steps the session n frames with empty input.
func run(s *Session, n int) {
	for i := 0; i < n; i++ {
		s.Step(core.NewInputFrame(), frame)
	}
}

func drain(t *testing.T, ch <-chan Outcome) (Outcome, bool) {
	t.Helper()
	select {
	case o := <-ch:
		return o, true
	default:
		return Outcome{}, false
	}
}

func TestSessionLifecycle(t *testing.T) {
	p := &stubPuzzle{}
	s := newTestSession(p)

	if s.Phase() != PhaseClosed {
		t.Fatalf("new session phase = %v, want closed", s.Phase())
	}

	s.Open()
	if s.Phase() != PhaseActive || p.resets != 1 {
		t.Fatalf("after Open: phase %v resets %d, want active 1", s.Phase(), p.resets)
	}

	s.Step(core.FrameOf(core.ActionConfirm), frame)
	if s.Phase() != PhaseResolved {
		t.Fatalf("phase after success = %v, want resolved", s.Phase())
	}
	if _, ok := drain(t, s.Done()); ok {
		t.Fatal("outcome delivered before the result delay")
	}

	// 1000ms delay at 33ms per frame needs 31 frames.
	run(s, 30)
	if _, ok := drain(t, s.Done()); ok {
		t.Fatal("outcome delivered before 1000ms elapsed")
	}
	run(s, 1)

	o, ok := drain(t, s.Done())
	if !ok {
		t.Fatal("no outcome after the result delay")
	}
	if !o.Success || o.Game != dex.CyberSecurity {
		t.Errorf("outcome = %+v, want success for game 3", o)
	}
	if s.Phase() != PhaseClosed {
		t.Errorf("phase after delivery = %v, want closed", s.Phase())
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d after delivery, want 0", s.Pending())
	}
}

func TestSessionFailureOutcome(t *testing.T) {
	s := newTestSession(&stubPuzzle{})
	s.Open()
	s.Step(core.FrameOf(core.ActionClear), frame)
	run(s, 40)

	o, ok := drain(t, s.Done())
	if !ok || o.Success || o.Reason != "wrong" {
		t.Errorf("outcome = %+v, %v, want failure 'wrong'", o, ok)
	}
}

func TestSessionExactlyOneOutcome(t *testing.T) {
	s := newTestSession(&stubPuzzle{})
	s.Open()
	s.Step(core.FrameOf(core.ActionConfirm), frame)
	run(s, 40)

	// Closing after delivery must not produce a second outcome.
	s.Close()
	s.Close()
	run(s, 40)

	count := 0
	for {
		if _, ok := drain(t, s.Done()); !ok {
			break
		}
		count++
	}
	if count != 1 {
		t.Errorf("delivered %d outcomes, want 1", count)
	}
}

func TestSessionCloseDuringResolution(t *testing.T) {
	s := newTestSession(&stubPuzzle{})
	s.Open()
	s.Step(core.FrameOf(core.ActionConfirm), frame)
	run(s, 5)

	s.Close()
	o, ok := drain(t, s.Done())
	if !ok || o.Success || o.Reason != ReasonAbandoned {
		t.Fatalf("close mid-resolution = %+v, %v, want abandoned failure", o, ok)
	}

	// The pending success delivery must never fire.
	run(s, 100)
	if o, ok := drain(t, s.Done()); ok {
		t.Errorf("stale outcome fired after Close: %+v", o)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d after Close, want 0", s.Pending())
	}
}

func TestSessionBackAbandons(t *testing.T) {
	p := &stubPuzzle{}
	s := newTestSession(p)
	s.Open()

	s.Step(core.FrameOf(ActionClose), frame)
	if s.Phase() != PhaseClosed {
		t.Fatalf("phase after back = %v, want closed", s.Phase())
	}
	if p.handled != 0 {
		t.Error("close input should not reach the puzzle")
	}
	o, ok := drain(t, s.Done())
	if !ok || o.Success || o.Reason != ReasonAbandoned {
		t.Errorf("outcome = %+v, %v, want abandoned", o, ok)
	}
}

func TestSessionPuzzleTimerCancelledOnClose(t *testing.T) {
	p := &stubPuzzle{countdown: 500 * time.Millisecond}
	s := newTestSession(p)
	s.Open()
	run(s, 3)

	s.Close()
	drain(t, s.Done())
	run(s, 100)
	if p.verdict.Resolved() {
		t.Error("puzzle countdown fired after Close")
	}
}

func TestSessionPuzzleTimerResolves(t *testing.T) {
	p := &stubPuzzle{countdown: 500 * time.Millisecond}
	s := newTestSession(p)
	s.Open()

	run(s, 16) // 528ms
	if s.Phase() != PhaseResolved {
		t.Fatalf("phase after countdown = %v, want resolved", s.Phase())
	}
	run(s, 31)
	o, ok := drain(t, s.Done())
	if !ok || o.Success || o.Reason != "time up" {
		t.Errorf("outcome = %+v, %v, want failure 'time up'", o, ok)
	}
}

func TestSessionReopenStartsFresh(t *testing.T) {
	p := &stubPuzzle{}
	s := newTestSession(p)

	s.Open()
	first := s.Done()
	s.Step(core.FrameOf(core.ActionClear), frame)

	// Reopen while still resolved: the old run is abandoned on its own channel.
	s.Open()
	o, ok := drain(t, first)
	if !ok || o.Reason != ReasonAbandoned {
		t.Fatalf("old run outcome = %+v, %v, want abandoned", o, ok)
	}
	if p.resets != 2 || s.Phase() != PhaseActive {
		t.Fatalf("resets %d phase %v, want 2 active", p.resets, s.Phase())
	}
	if s.Verdict().Resolved() {
		t.Error("verdict carried over into the new run")
	}

	s.Step(core.FrameOf(core.ActionConfirm), frame)
	run(s, 31)
	if o, ok := drain(t, s.Done()); !ok || !o.Success {
		t.Errorf("new run outcome = %+v, %v, want success", o, ok)
	}
}

func TestSessionRenderBanner(t *testing.T) {
	s := newTestSession(&stubPuzzle{})
	s.Open()
	s.Step(core.FrameOf(core.ActionClear), frame)

	dst := core.NewScreen(40, 10)
	s.Render(dst)
	if got := dst.Row(9); !strings.Contains(got, "FAILED: wrong") {
		t.Errorf("banner row = %q, want failure banner", got)
	}
}

func TestRegistry(t *testing.T) {
	Register(dex.ID(90), "stub-a", func() Puzzle { return &stubPuzzle{} })

	if _, err := Create(dex.ID(90)); err != nil {
		t.Fatalf("registered puzzle not found: %v", err)
	}
	if id, ok := Lookup("stub-a"); !ok || id != 90 {
		t.Errorf("Lookup(stub-a) = %d, %v", id, ok)
	}
	if _, err := Create(dex.ID(91)); !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Create(91) error = %v, want ErrUnknownGame", err)
	}

	found := false
	for _, info := range List() {
		if info.ID == 90 && info.Title == "Stub" && info.Name == "stub-a" {
			found = true
		}
	}
	if !found {
		t.Error("List() missing registered puzzle")
	}

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register(dex.ID(90), "stub-b", func() Puzzle { return &stubPuzzle{} })
}

func TestCreateOrDefaultFallsBack(t *testing.T) {
	// No real puzzles are registered in this package's tests, so the
	// default game is missing too.
	if p := CreateOrDefault(dex.ID(77)); p != nil {
		t.Errorf("CreateOrDefault without a default = %T, want nil", p)
	}

	mu.Lock()
	entries[DefaultGame] = entry{name: "default-stub", title: "Stub", factory: func() Puzzle { return &stubPuzzle{} }}
	mu.Unlock()
	defer func() {
		mu.Lock()
		delete(entries, DefaultGame)
		mu.Unlock()
	}()

	if p := CreateOrDefault(dex.ID(77)); p == nil || p.Title() != "Stub" {
		t.Errorf("CreateOrDefault(77) = %v, want default puzzle", p)
	}
}
