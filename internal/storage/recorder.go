package storage

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/campus-dex/internal/dex"
)

// RunRecorder writes one player's attempts and finished runs to a Store.
// Each finished run closes the current run id and opens a new one, so a
// restart after the ending is recorded as a separate run.
type RunRecorder struct {
	store  *Store
	player string

	mu    sync.Mutex
	runID string
}

// NewRunRecorder creates a recorder for player with a fresh run id.
func NewRunRecorder(store *Store, player string) *RunRecorder {
	return &RunRecorder{store: store, player: player, runID: uuid.NewString()}
}

// RunID returns the id attempts are currently recorded under.
func (r *RunRecorder) RunID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runID
}

// RecordAttempt stores one puzzle attempt under the current run.
func (r *RunRecorder) RecordAttempt(game dex.ID, success bool, reason string, elapsed time.Duration) error {
	_, err := r.store.SaveAttempt(Attempt{
		RunID:    r.RunID(),
		Player:   r.player,
		Game:     game,
		Success:  success,
		Reason:   reason,
		Duration: elapsed,
	})
	return err
}

// RecordRun stores the finished run and starts a new run id.
func (r *RunRecorder) RecordRun(caught int, elapsed time.Duration) error {
	r.mu.Lock()
	id := r.runID
	r.runID = uuid.NewString()
	r.mu.Unlock()

	return r.store.SaveRun(Run{ID: id, Player: r.player, Caught: caught, Duration: elapsed})
}
