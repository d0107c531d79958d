// Package config provides YAML-based configuration loading for the overworld
// and the mini-games, plus difficulty presets.
package config

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrTileSize is returned when the map size is not a whole number of tiles.
	ErrTileSize = errors.New("map size must be a positive multiple of tile_size")
	// ErrBadArea is returned for a grass area with a non-positive extent.
	ErrBadArea = errors.New("grass area must have positive width and height")
)

// World contains all configuration for the overworld.
type World struct {
	Map    MapConfig    `yaml:"map"`
	Player PlayerConfig `yaml:"player"`
	Input  InputConfig  `yaml:"input"`
	Zones  ZoneConfig   `yaml:"zones"`
}

// MapConfig defines the world size in pixels.
type MapConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	TileSize int `yaml:"tile_size"`
}

// Cols returns the number of tile columns.
func (m MapConfig) Cols() int {
	return m.Width / m.TileSize
}

// Rows returns the number of tile rows.
func (m MapConfig) Rows() int {
	return m.Height / m.TileSize
}

// PlayerConfig defines the spawn point and walking speed.
type PlayerConfig struct {
	StartX     float64 `yaml:"start_x"`
	StartY     float64 `yaml:"start_y"`
	Speed      float64 `yaml:"speed"`        // pixels per movement tick
	MoveTickMs int     `yaml:"move_tick_ms"` // movement tick period
}

// MoveTick returns the movement tick period.
func (p PlayerConfig) MoveTick() time.Duration {
	return time.Duration(p.MoveTickMs) * time.Millisecond
}

// InputConfig defines the virtual joystick.
type InputConfig struct {
	MaxThrow  float64 `yaml:"max_throw"`   // joystick radius
	DeadZone  float64 `yaml:"dead_zone"`   // displacement that still counts as idle
	KeyHoldMs int     `yaml:"key_hold_ms"` // how long one key press keeps the stick thrown
}

// KeyHold returns how long a key press keeps the joystick thrown.
func (i InputConfig) KeyHold() time.Duration {
	return time.Duration(i.KeyHoldMs) * time.Millisecond
}

// ZoneConfig defines catch zone generation.
type ZoneConfig struct {
	Size        int          `yaml:"size"`         // zone edge in tiles
	Cap         int          `yaml:"cap"`          // zones per session
	NearbyRange int          `yaml:"nearby_range"` // hint scan radius in pixels
	GrassAreas  []AreaConfig `yaml:"grass_areas"`
}

// AreaConfig is a grass area in tile coordinates.
type AreaConfig struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Validate checks the invariants the overworld relies on.
func (w World) Validate() error {
	m := w.Map
	if m.TileSize <= 0 || m.Width <= 0 || m.Height <= 0 ||
		m.Width%m.TileSize != 0 || m.Height%m.TileSize != 0 {
		return fmt.Errorf("config: %dx%d with tile %d: %w", m.Width, m.Height, m.TileSize, ErrTileSize)
	}
	if w.Player.Speed <= 0 || w.Player.MoveTickMs <= 0 {
		return fmt.Errorf("config: player speed and move_tick_ms must be positive")
	}
	if w.Input.MaxThrow <= 0 || w.Input.DeadZone < 0 || w.Input.DeadZone >= w.Input.MaxThrow {
		return fmt.Errorf("config: joystick needs 0 <= dead_zone < max_throw")
	}
	if w.Zones.Size <= 0 || w.Zones.Cap < 0 {
		return fmt.Errorf("config: zone size must be positive and cap non-negative")
	}
	for i, a := range w.Zones.GrassAreas {
		if a.Width <= 0 || a.Height <= 0 {
			return fmt.Errorf("config: grass area %d: %w", i, ErrBadArea)
		}
	}
	return nil
}

// MiniGames contains configuration shared by and specific to each puzzle.
type MiniGames struct {
	ResultDelayMs int           `yaml:"result_delay_ms"`
	Mosaic        MosaicConfig  `yaml:"mosaic"`
	Spot          SpotConfig    `yaml:"spot"`
	Cipher        CipherConfig  `yaml:"cipher"`
	Circuit       CircuitConfig `yaml:"circuit"`
	Ladder        LadderConfig  `yaml:"ladder"`
}

// ResultDelay returns how long a resolved puzzle stays on screen.
func (m MiniGames) ResultDelay() time.Duration {
	return time.Duration(m.ResultDelayMs) * time.Millisecond
}

// MosaicConfig defines the silhouette guessing game.
type MosaicConfig struct {
	Names   []string `yaml:"names"`
	Choices int      `yaml:"choices"`
}

// SpotConfig defines the odd-one-out grid.
type SpotConfig struct {
	GridSize   int    `yaml:"grid_size"`
	MaxMisses  int    `yaml:"max_misses"`
	TimeLimitS int    `yaml:"time_limit_s"`
	NormalText string `yaml:"normal_text"`
	OddText    string `yaml:"odd_text"`
}

// TimeLimit returns the countdown length.
func (s SpotConfig) TimeLimit() time.Duration {
	return time.Duration(s.TimeLimitS) * time.Second
}

// CipherConfig defines the Caesar decoder.
type CipherConfig struct {
	MinShift  int              `yaml:"min_shift"`
	MaxShift  int              `yaml:"max_shift"`
	Questions []CipherQuestion `yaml:"questions"`
}

// CipherQuestion pairs an encrypted word with its decoded answer.
type CipherQuestion struct {
	CipherText string `yaml:"cipher_text"`
	Answer     string `yaml:"answer"`
}

// CircuitConfig defines the wire matching board.
type CircuitConfig struct {
	Wires []string `yaml:"wires"`
}

// LadderConfig defines the ladder draw.
type LadderConfig struct {
	Labels []string `yaml:"labels"`
	Target string   `yaml:"target"`
}

// Validate checks that every puzzle has enough content to be played.
func (m MiniGames) Validate() error {
	if m.ResultDelayMs < 0 {
		return fmt.Errorf("config: result_delay_ms must not be negative")
	}
	if m.Mosaic.Choices < 1 || len(m.Mosaic.Names) < m.Mosaic.Choices {
		return fmt.Errorf("config: mosaic needs at least %d names", m.Mosaic.Choices)
	}
	if m.Spot.GridSize < 2 || m.Spot.MaxMisses < 1 || m.Spot.TimeLimitS < 1 {
		return fmt.Errorf("config: spot grid_size, max_misses and time_limit_s too small")
	}
	if len(m.Cipher.Questions) == 0 || m.Cipher.MinShift < 0 || m.Cipher.MaxShift < m.Cipher.MinShift {
		return fmt.Errorf("config: cipher needs questions and min_shift <= max_shift")
	}
	if len(m.Circuit.Wires) < 2 {
		return fmt.Errorf("config: circuit needs at least 2 wires")
	}
	found := false
	for _, l := range m.Ladder.Labels {
		if l == m.Ladder.Target {
			found = true
		}
	}
	if !found {
		return fmt.Errorf("config: ladder target %q is not one of the labels", m.Ladder.Target)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard)", s)
	}
}

// ApplyPreset adjusts the timed and attempt-limited puzzles for a preset.
// Normal leaves the loaded values untouched.
func ApplyPreset(cfg *MiniGames, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Spot.MaxMisses = 5
		cfg.Spot.TimeLimitS = 45
		cfg.ResultDelayMs = 1500
	case DifficultyHard:
		cfg.Spot.MaxMisses = 2
		cfg.Spot.TimeLimitS = 20
		cfg.Spot.GridSize = 8
	}
}
