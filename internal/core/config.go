package core

import "time"

// RuntimeConfig contains configuration passed to the engine at start.
// The platform fills it from terminal size and CLI flags.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Platform ticks per second
	Seed     int64 // RNG seed; 0 means the platform picks one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
// 33 ticks per second keeps the platform frame close to the 30 ms movement tick.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 33,
		Seed:     0,
	}
}

// TickDuration returns the wall-clock length of one platform tick.
func (c RuntimeConfig) TickDuration() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 33
	}
	return time.Second / time.Duration(c.TickRate)
}
