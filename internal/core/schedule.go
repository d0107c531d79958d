package core

import "time"

// Task is a handle to work registered on a Scheduler.
// A nil *Task is valid and behaves like an already-cancelled task.
type Task struct {
	seq       uint64
	due       time.Duration
	every     time.Duration
	fn        func()
	cancelled bool
}

// Cancel prevents any further run of the task. Safe to call repeatedly.
func (t *Task) Cancel() {
	if t == nil {
		return
	}
	t.cancelled = true
}

// Active reports whether the task can still fire.
func (t *Task) Active() bool {
	return t != nil && !t.cancelled
}

// Scheduler runs one-shot and repeating tasks against a virtual clock that
// only moves when Advance is called. Games own one Scheduler per lifetime
// scope and Stop it on teardown, so nothing registered inside the scope can
// fire after the scope is gone.
//
// A Scheduler is not safe for concurrent use; everything runs on the tick
// goroutine.
type Scheduler struct {
	now     time.Duration
	seq     uint64
	tasks   []*Task
	stopped bool
}

// NewScheduler returns a scheduler with its clock at zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the virtual time elapsed since creation.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After runs fn once, d from now.
func (s *Scheduler) After(d time.Duration, fn func()) *Task {
	return s.add(d, 0, fn)
}

// Every runs fn each period, first run one period from now.
// Periods below one millisecond are raised to one millisecond.
func (s *Scheduler) Every(period time.Duration, fn func()) *Task {
	if period < time.Millisecond {
		period = time.Millisecond
	}
	return s.add(period, period, fn)
}

func (s *Scheduler) add(d, every time.Duration, fn func()) *Task {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &Task{seq: s.seq, due: s.now + d, every: every, fn: fn}
	if s.stopped || fn == nil {
		t.cancelled = true
		return t
	}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance moves the clock forward by dt, running every task that comes due
// in time order. Tasks registered or cancelled by a running task take effect
// immediately.
func (s *Scheduler) Advance(dt time.Duration) {
	if s.stopped || dt < 0 {
		return
	}
	target := s.now + dt

	for !s.stopped {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		s.now = next.due
		if next.every > 0 {
			next.due += next.every
		} else {
			next.cancelled = true
		}
		next.fn()
	}

	if !s.stopped {
		s.now = target
	}
	s.compact()
}

// nextDue returns the earliest live task due at or before target.
func (s *Scheduler) nextDue(target time.Duration) *Task {
	var best *Task
	for _, t := range s.tasks {
		if t.cancelled || t.due > target {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (s *Scheduler) compact() {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
}

// Pending returns the number of tasks that can still fire.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Stop cancels every task. A stopped scheduler ignores Advance and hands out
// cancelled tasks.
func (s *Scheduler) Stop() {
	for _, t := range s.tasks {
		t.cancelled = true
	}
	s.tasks = nil
	s.stopped = true
}

// Stopped reports whether Stop has been called.
func (s *Scheduler) Stopped() bool {
	return s.stopped
}
