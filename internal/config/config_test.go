package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var world World
	if err := yaml.Unmarshal(defaultWorldYAML, &world); err != nil {
		t.Fatalf("embedded world.yaml: %v", err)
	}
	if !reflect.DeepEqual(world, DefaultWorldConfig()) {
		t.Errorf("embedded world.yaml drifted from DefaultWorldConfig:\n%+v\n%+v", world, DefaultWorldConfig())
	}

	var games MiniGames
	if err := yaml.Unmarshal(defaultMiniGamesYAML, &games); err != nil {
		t.Fatalf("embedded minigames.yaml: %v", err)
	}
	if !reflect.DeepEqual(games, DefaultMiniGamesConfig()) {
		t.Errorf("embedded minigames.yaml drifted from DefaultMiniGamesConfig:\n%+v\n%+v", games, DefaultMiniGamesConfig())
	}
}

func TestDefaultsValidate(t *testing.T) {
	if err := DefaultWorldConfig().Validate(); err != nil {
		t.Errorf("DefaultWorldConfig().Validate() = %v", err)
	}
	if err := DefaultMiniGamesConfig().Validate(); err != nil {
		t.Errorf("DefaultMiniGamesConfig().Validate() = %v", err)
	}
}

func TestDefaultWorldValues(t *testing.T) {
	w := DefaultWorldConfig()
	if w.Map.Cols() != 80 || w.Map.Rows() != 60 {
		t.Errorf("map = %dx%d tiles, want 80x60", w.Map.Cols(), w.Map.Rows())
	}
	if len(w.Zones.GrassAreas) != 14 {
		t.Errorf("grass areas = %d, want 14", len(w.Zones.GrassAreas))
	}
	if w.Player.MoveTick().Milliseconds() != 30 {
		t.Errorf("move tick = %v, want 30ms", w.Player.MoveTick())
	}
}

func TestWorldValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*World)
		wantErr error
	}{
		{"width not a tile multiple", func(w *World) { w.Map.Width = 1281 }, ErrTileSize},
		{"zero tile", func(w *World) { w.Map.TileSize = 0 }, ErrTileSize},
		{"empty area", func(w *World) { w.Zones.GrassAreas[3].Width = 0 }, ErrBadArea},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := DefaultWorldConfig()
			tc.mutate(&w)
			if err := w.Validate(); !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}

	w := DefaultWorldConfig()
	w.Input.DeadZone = 40
	if err := w.Validate(); err == nil {
		t.Error("dead zone equal to max throw should be rejected")
	}
}

func TestMiniGamesValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MiniGames)
	}{
		{"too few mosaic names", func(m *MiniGames) { m.Mosaic.Names = m.Mosaic.Names[:2] }},
		{"no cipher questions", func(m *MiniGames) { m.Cipher.Questions = nil }},
		{"inverted shift range", func(m *MiniGames) { m.Cipher.MinShift = 10; m.Cipher.MaxShift = 3 }},
		{"single wire", func(m *MiniGames) { m.Circuit.Wires = []string{"red"} }},
		{"ladder target missing", func(m *MiniGames) { m.Ladder.Target = "Cocomo" }},
		{"tiny spot grid", func(m *MiniGames) { m.Spot.GridSize = 1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := DefaultMiniGamesConfig()
			tc.mutate(&m)
			if err := m.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "minigames.yaml")
	data := []byte("spot:\n  max_misses: 7\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMiniGames(path)
	if err != nil {
		t.Fatalf("LoadMiniGames(%s) = %v", path, err)
	}
	if cfg.Spot.MaxMisses != 7 {
		t.Errorf("MaxMisses = %d, want 7", cfg.Spot.MaxMisses)
	}
	// Keys not set in the file keep their defaults.
	if cfg.Spot.GridSize != 6 || len(cfg.Cipher.Questions) != 5 {
		t.Errorf("partial file lost defaults: %+v", cfg.Spot)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadWorld(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom path should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("map: [not, a, map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadWorld(path); err == nil {
		t.Error("malformed custom config should fail")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("map:\n  width: 1000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadWorld(invalid); !errors.Is(err, ErrTileSize) {
		t.Errorf("LoadWorld(invalid) = %v, want ErrTileSize", err)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"normal", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"hard", DifficultyHard, false},
		{"nightmare", "", true},
	}

	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Errorf("ParsePreset(%q) = %q, %v", tc.in, got, err)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	easy := DefaultMiniGamesConfig()
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Spot.MaxMisses <= 3 || easy.Spot.TimeLimitS <= 30 {
		t.Errorf("easy preset should loosen spot limits: %+v", easy.Spot)
	}

	hard := DefaultMiniGamesConfig()
	ApplyPreset(&hard, DifficultyHard)
	if hard.Spot.MaxMisses >= 3 || hard.Spot.TimeLimitS >= 30 {
		t.Errorf("hard preset should tighten spot limits: %+v", hard.Spot)
	}
	if err := hard.Validate(); err != nil {
		t.Errorf("hard preset produced invalid config: %v", err)
	}

	normal := DefaultMiniGamesConfig()
	ApplyPreset(&normal, DifficultyNormal)
	if !reflect.DeepEqual(normal, DefaultMiniGamesConfig()) {
		t.Error("normal preset should leave config untouched")
	}
}
